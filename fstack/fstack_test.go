package fstack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashgb/gbsect/fstack"
)

func TestSimple_IncludeAndPopRestoresParentLocation(t *testing.T) {
	s := fstack.NewSimple("main.asm", nil)
	s.SetLine(5)

	s.PushInclude("inc.asm")
	s.SetLine(2)
	assert.Equal(t, "inc.asm:2", s.CurrentSourceLocation().String())

	s.Pop()
	assert.Equal(t, "main.asm:5", s.CurrentSourceLocation().String())
}

func TestSimple_ReptLocationChainsToParent(t *testing.T) {
	s := fstack.NewSimple("main.asm", nil)
	s.SetLine(10)
	s.PushRept([]int{3})

	loc := s.CurrentSourceLocation().String()
	assert.Contains(t, loc, "REPT:1")
	assert.Contains(t, loc, "main.asm:10")
}

func TestLocation_ZeroValueIsUnknown(t *testing.T) {
	var loc fstack.Location
	assert.True(t, loc.IsZero())
	assert.Equal(t, "<unknown>", loc.String())
}

func TestArena_GetOnInvalidIndexPanics(t *testing.T) {
	a := fstack.NewArena()
	assert.Panics(t, func() { a.Get(0) })
	assert.Panics(t, func() { a.Get(99) })
}

func TestSimple_FindFileWithNoIncludeDirsReturnsNameUnchanged(t *testing.T) {
	s := fstack.NewSimple("main.asm", nil)
	path, ok := s.FindFile("data.bin")
	require.True(t, ok)
	assert.Equal(t, "data.bin", path)
}

func TestSimple_FindFileSearchesIncludeDirs(t *testing.T) {
	s := fstack.NewSimple("main.asm", []string{"assets"})
	path, ok := s.FindFile("data.bin")
	require.True(t, ok)
	assert.Equal(t, "assets/data.bin", path)
}
