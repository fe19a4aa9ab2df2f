package section_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashgb/gbsect/section"
)

func TestCursor_PopWithEmptyStackIsFatal(t *testing.T) {
	eng, _ := newEngine(t)

	err := eng.PopSection()
	require.Error(t, err)
	var fatal *section.FatalError
	assert.ErrorAs(t, err, &fatal)
}

func TestCursor_PushPopRoundTripRestoresWholeContext(t *testing.T) {
	eng, sink := newEngine(t)

	require.NoError(t, eng.NewSection("A", section.WRAM0, section.Unset, section.Unset, 0, 0, section.Normal))
	require.NoError(t, eng.Skip(3, true))
	beforeOffset := eng.SymbolOffset()
	beforeName := eng.CurrentSectionName()

	require.NoError(t, eng.PushSection())
	assert.Equal(t, "", eng.CurrentSectionName())

	require.NoError(t, eng.NewSection("B", section.WRAM0, section.Unset, section.Unset, 0, 0, section.Normal))
	require.NoError(t, eng.Skip(9, true))

	require.NoError(t, eng.PopSection())
	assert.Equal(t, beforeName, eng.CurrentSectionName())
	assert.Equal(t, beforeOffset, eng.SymbolOffset())
	assert.Zero(t, sink.errorCount)
}

func TestCursor_SectionNameCollisionAcrossNestedContextsIsFatal(t *testing.T) {
	eng, _ := newEngine(t)

	require.NoError(t, eng.NewSection("Shared", section.WRAM0, section.Unset, section.Unset, 0, 0, section.Normal))
	require.NoError(t, eng.PushSection())

	err := eng.NewSection("Shared", section.WRAM0, section.Unset, section.Unset, 0, 0, section.Normal)
	require.Error(t, err)
	var fatal *section.FatalError
	assert.ErrorAs(t, err, &fatal)
}

func TestCursor_EndSectionWithOpenUnionIsFatal(t *testing.T) {
	eng, _ := newEngine(t)

	require.NoError(t, eng.NewSection("A", section.WRAM0, section.Unset, section.Unset, 0, 0, section.Normal))
	require.NoError(t, eng.StartUnion())

	err := eng.EndSection()
	require.Error(t, err)
	var fatal *section.FatalError
	assert.ErrorAs(t, err, &fatal)
}

func TestCursor_MaxRecursionIsFatal(t *testing.T) {
	eng, _ := newEngine(t)

	require.NoError(t, eng.NewSection("A", section.WRAM0, section.Unset, section.Unset, 0, 0, section.Normal))
	var lastErr error
	for i := 0; i < 1000; i++ {
		lastErr = eng.PushSection()
		if lastErr != nil {
			break
		}
	}
	require.Error(t, lastErr)
	var fatal *section.FatalError
	assert.ErrorAs(t, lastErr, &fatal)
}
