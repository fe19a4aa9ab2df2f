package diag_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ashgb/gbsect/diag"
)

func TestStderrSink_CountsErrorsOnly(t *testing.T) {
	var buf bytes.Buffer
	sink := diag.NewSink(&buf)

	sink.Warningf(diag.KindEmptyDataDirective, "padded with fill byte")
	sink.Errorf("bad thing: %d", 1)
	sink.Errorf("bad thing: %d", 2)
	sink.Fatalf("giving up")

	assert.Equal(t, 2, sink.ErrorCount())

	out := buf.String()
	assert.True(t, strings.Contains(out, "warning: [empty data directive] padded with fill byte"))
	assert.True(t, strings.Contains(out, "error: bad thing: 1"))
	assert.True(t, strings.Contains(out, "FATAL: giving up"))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "unterminated LOAD block", diag.KindUnterminatedLoad.String())
	assert.Equal(t, "obsolete directive", diag.KindObsoleteDirective.String())
}
