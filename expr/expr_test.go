package expr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ashgb/gbsect/expr"
)

func TestConst(t *testing.T) {
	c := expr.Const{V: 7}
	assert.True(t, c.IsKnown())
	assert.EqualValues(t, 7, c.Value())
	_, ok := c.SymbolOf()
	assert.False(t, ok)
}

func TestSymbolRef(t *testing.T) {
	s := expr.SymbolRef{Sym: expr.Symbol{Name: "Label"}}
	assert.False(t, s.IsKnown())
	sym, ok := s.SymbolOf()
	assert.True(t, ok)
	assert.Equal(t, "Label", sym.Name)
}

func TestDiff_IsDiffConstantOnlyAgainstItsOwnPC(t *testing.T) {
	pc := expr.Symbol{Name: "@"}
	other := expr.Symbol{Name: "other"}
	d := expr.Diff{Sym: expr.Symbol{Name: "Target"}, PC: pc, Offset: 10}

	v, ok := d.IsDiffConstant(pc)
	assert.True(t, ok)
	assert.EqualValues(t, 10, v)

	_, ok = d.IsDiffConstant(other)
	assert.False(t, ok)
}
