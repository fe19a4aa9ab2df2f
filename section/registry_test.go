package section_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashgb/gbsect/section"
)

func TestRegistry_FragmentSiblingsChainThroughOrderedSequence(t *testing.T) {
	eng, sink := newEngine(t)

	require.NoError(t, eng.NewSection("F", section.ROMX, section.Unset, section.Unset, 0, 0, section.Normal))
	_, err := eng.InjectFragmentLiteral()
	require.NoError(t, err)
	require.NoError(t, eng.EndFragmentLiteral())
	_, err = eng.InjectFragmentLiteral()
	require.NoError(t, err)
	require.NoError(t, eng.EndFragmentLiteral())

	siblings := eng.Registry().Siblings("F")
	require.Len(t, siblings, 3)
	for i, s := range siblings {
		assert.Equal(t, i, s.SiblingIndex())
	}
	assert.Equal(t, 3, eng.Registry().Count())
	assert.Zero(t, sink.errorCount)
}

func TestRegistry_CheckSizesReportsOverflow(t *testing.T) {
	eng, sink := newEngine(t)

	require.NoError(t, eng.NewSection("Tiny", section.HRAM, section.Unset, section.Unset, 0, 0, section.Normal))
	require.NoError(t, eng.Skip(section.HRAM.MaxSize()+1, true))

	msgs := eng.Registry().CheckSizes()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "Tiny")
	assert.Zero(t, sink.errorCount)

	err := eng.Finish()
	require.Error(t, err)
	var fatal *section.FatalError
	require.ErrorAs(t, err, &fatal)
	assert.Equal(t, 1, sink.errorCount)
}

func TestRegistry_ForEachVisitsDeclarationOrder(t *testing.T) {
	eng, _ := newEngine(t)

	require.NoError(t, eng.NewSection("First", section.ROM0, section.Unset, section.Unset, 0, 0, section.Normal))
	require.NoError(t, eng.NewSection("Second", section.WRAM0, section.Unset, section.Unset, 0, 0, section.Normal))

	var names []string
	eng.Registry().ForEach(func(s *section.Section) { names = append(names, s.Name) })
	assert.Equal(t, []string{"First", "Second"}, names)
}

func TestRegistry_FindMissing(t *testing.T) {
	eng, _ := newEngine(t)
	_, ok := eng.Registry().Find("Nope")
	assert.False(t, ok)
}
