package section_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashgb/gbsect/diag"
	"github.com/ashgb/gbsect/expr"
	"github.com/ashgb/gbsect/fstack"
	"github.com/ashgb/gbsect/options"
	"github.com/ashgb/gbsect/section"
	"github.com/ashgb/gbsect/symtab"
)

func sprintf(format string, args ...any) string { return fmt.Sprintf(format, args...) }

func newEngine(t *testing.T) (*section.Engine, *spySink) {
	t.Helper()
	sink := &spySink{}
	fs := fstack.NewSimple("test.asm", nil)
	st := symtab.New(expr.Symbol{Name: "@"})
	eng := section.New(sink, fs, st, options.New())
	return eng, sink
}

func TestScenarioS1_SimpleROMXSection(t *testing.T) {
	eng, sink := newEngine(t)

	require.NoError(t, eng.NewSection("A", section.ROMX, section.Set(0x4000), section.Set(3), 0, 0, section.Normal))
	require.NoError(t, eng.EmitRelative(section.PatchByte, expr.Const{V: 0x11}))
	require.NoError(t, eng.EmitRelative(section.PatchByte, expr.Const{V: 0x22}))
	require.NoError(t, eng.EmitRelative(section.PatchByte, expr.Const{V: 0x33}))

	sec, ok := eng.Registry().Find("A")
	require.True(t, ok)
	assert.Equal(t, section.ROMX, sec.Type)
	org, _ := sec.Org.Get()
	assert.EqualValues(t, 0x4000, org)
	bank, _ := sec.Bank.Get()
	assert.EqualValues(t, 3, bank)
	assert.EqualValues(t, 3, sec.Size)
	assert.Equal(t, []byte{0x11, 0x22, 0x33}, sec.Data[:3])
	assert.Zero(t, sink.errorCount)
}

func TestScenarioS2_UnionMaxSize(t *testing.T) {
	eng, sink := newEngine(t)

	require.NoError(t, eng.NewSection("V", section.WRAM0, section.Unset, section.Unset, 0, 0, section.Normal))
	require.NoError(t, eng.StartUnion())
	require.NoError(t, eng.Skip(4, true))
	require.NoError(t, eng.NextUnionMember())
	require.NoError(t, eng.Skip(7, true))
	require.NoError(t, eng.NextUnionMember())
	require.NoError(t, eng.Skip(2, true))
	require.NoError(t, eng.EndUnion())

	sec, ok := eng.Registry().Find("V")
	require.True(t, ok)
	assert.EqualValues(t, 7, sec.Size)
	assert.Zero(t, sink.errorCount)
}

func TestScenarioS3_FragmentMerge(t *testing.T) {
	eng, sink := newEngine(t)

	require.NoError(t, eng.NewSection("F", section.ROMX, section.Unset, section.Unset, 4, 0, section.Normal))
	require.NoError(t, eng.EmitRelative(section.PatchByte, expr.Const{V: 0xAA}))
	require.NoError(t, eng.NewSection("F", section.ROMX, section.Unset, section.Unset, 0, 0, section.Fragment))
	require.NoError(t, eng.EmitRelative(section.PatchByte, expr.Const{V: 0xBB}))
	require.NoError(t, eng.EmitRelative(section.PatchByte, expr.Const{V: 0xCC}))

	sec, ok := eng.Registry().Find("F")
	require.True(t, ok)
	assert.EqualValues(t, 3, sec.Size)
	assert.Equal(t, []byte{0xAA, 0xBB, 0xCC}, sec.Data[:3])
	assert.EqualValues(t, 4, sec.Align)
	assert.EqualValues(t, 0, sec.AlignOfs)
	assert.Zero(t, sink.errorCount)
}

func TestScenarioS4_LoadOverlay(t *testing.T) {
	eng, sink := newEngine(t)

	require.NoError(t, eng.NewSection("Code", section.ROM0, section.Unset, section.Unset, 0, 0, section.Normal))
	require.NoError(t, eng.EmitRelative(section.PatchByte, expr.Const{V: 0x01}))
	require.NoError(t, eng.SetLoadSection("Buf", section.HRAM, section.Unset, section.Unset, 0, 0, section.Normal))

	labelSection := eng.CurrentSectionName()
	labelOffset := eng.SymbolOffset()

	require.NoError(t, eng.EmitRelative(section.PatchByte, expr.Const{V: 0x02}))
	require.NoError(t, eng.EmitRelative(section.PatchByte, expr.Const{V: 0x03}))
	require.NoError(t, eng.EndLoadSection())
	require.NoError(t, eng.EmitRelative(section.PatchByte, expr.Const{V: 0x04}))

	code, ok := eng.Registry().Find("Code")
	require.True(t, ok)
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, code.Data[:4])

	buf, ok := eng.Registry().Find("Buf")
	require.True(t, ok)
	assert.Equal(t, section.HRAM, buf.Type)
	assert.EqualValues(t, 2, buf.Size)

	assert.Equal(t, "Buf", labelSection)
	assert.EqualValues(t, 0, labelOffset)
	assert.Zero(t, sink.errorCount)
}

func TestScenarioS5_PushPopPreservingUnion(t *testing.T) {
	eng, sink := newEngine(t)

	require.NoError(t, eng.NewSection("A", section.WRAM0, section.Unset, section.Unset, 0, 0, section.Normal))
	require.NoError(t, eng.StartUnion())
	require.NoError(t, eng.Skip(3, true))
	require.NoError(t, eng.PushSection())
	require.NoError(t, eng.NewSection("B", section.WRAM0, section.Unset, section.Unset, 0, 0, section.Normal))
	require.NoError(t, eng.Skip(5, true))
	require.NoError(t, eng.PopSection())
	require.NoError(t, eng.NextUnionMember())
	require.NoError(t, eng.Skip(1, true))
	require.NoError(t, eng.EndUnion())

	a, ok := eng.Registry().Find("A")
	require.True(t, ok)
	assert.EqualValues(t, 3, a.Size)

	b, ok := eng.Registry().Find("B")
	require.True(t, ok)
	assert.EqualValues(t, 5, b.Size)

	assert.Zero(t, sink.errorCount)
}

func TestScenarioS6_JROutOfRange(t *testing.T) {
	eng, sink := newEngine(t)

	require.NoError(t, eng.NewSection("Code", section.ROM0, section.Set(0x0100), section.Unset, 0, 0, section.Normal))

	pc := expr.Symbol{Name: "@"}
	target := expr.Diff{Sym: expr.Symbol{Name: "Target"}, PC: pc, Offset: 0x0100}
	require.NoError(t, eng.EmitRelative(section.PatchJR, target))

	sec, ok := eng.Registry().Find("Code")
	require.True(t, ok)
	assert.EqualValues(t, 1, sec.Size)
	assert.Equal(t, byte(0), sec.Data[0])
	assert.Equal(t, 1, sink.errorCount)
	assert.Contains(t, sink.lastError, "JR target must be between -128 and 127")
}

// spySink is a minimal diag.Sink test double recording counts and the
// last message of each severity, enough for scenario assertions
// without pulling in the real StderrSink's formatting.
type spySink struct {
	errorCount   int
	warningCount int
	fatalCount   int
	lastError    string
	lastWarning  string
	lastFatal    string
}

func (s *spySink) Errorf(format string, args ...any) {
	s.errorCount++
	s.lastError = sprintf(format, args...)
}

func (s *spySink) Warningf(kind diag.Kind, format string, args ...any) {
	s.warningCount++
	s.lastWarning = sprintf(format, args...)
}

func (s *spySink) Fatalf(format string, args ...any) {
	s.fatalCount++
	s.lastFatal = sprintf(format, args...)
}

func (s *spySink) ErrorCount() int { return s.errorCount }
