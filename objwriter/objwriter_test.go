package objwriter_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashgb/gbsect/diag"
	"github.com/ashgb/gbsect/expr"
	"github.com/ashgb/gbsect/fstack"
	"github.com/ashgb/gbsect/objwriter"
	"github.com/ashgb/gbsect/options"
	"github.com/ashgb/gbsect/section"
	"github.com/ashgb/gbsect/symtab"
)

func TestWrite_ProducesMagicAndCount(t *testing.T) {
	d := diag.NewStderrSink()
	fs := fstack.NewSimple("t.asm", nil)
	st := symtab.New(expr.Symbol{Name: "@"})
	eng := section.New(d, fs, st, options.New())

	require.NoError(t, eng.NewSection("A", section.ROM0, section.Unset, section.Unset, 0, 0, section.Normal))
	require.NoError(t, eng.EmitRelative(section.PatchByte, expr.Const{V: 0x42}))

	var buf bytes.Buffer
	require.NoError(t, objwriter.Write(&buf, eng.Registry()))

	out := buf.Bytes()
	require.GreaterOrEqual(t, len(out), 4)
	assert.Equal(t, "GBOB", string(out[:4]))
	assert.Equal(t, byte(1), out[4])
}
