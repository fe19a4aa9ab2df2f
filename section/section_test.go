package section_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ashgb/gbsect/section"
)

func TestOptInt32(t *testing.T) {
	var u section.OptInt32
	assert.False(t, u.IsSet())
	_, ok := u.Get()
	assert.False(t, ok)

	s := section.Set(42)
	assert.True(t, s.IsSet())
	v, ok := s.Get()
	assert.True(t, ok)
	assert.EqualValues(t, 42, v)
	assert.EqualValues(t, 42, s.Must())
}

func TestTypeMeta(t *testing.T) {
	assert.True(t, section.ROM0.HasData())
	assert.True(t, section.ROMX.HasData())
	assert.False(t, section.VRAM.HasData())

	assert.False(t, section.ROM0.HasBank())
	assert.True(t, section.ROMX.HasBank())
	min, max := section.ROMX.BankRange()
	assert.EqualValues(t, 1, min)
	assert.EqualValues(t, 511, max)

	assert.True(t, section.HRAM.InAddrRange(section.HRAM.StartAddr()))
	assert.False(t, section.HRAM.InAddrRange(section.HRAM.EndAddr()+1))
}

func TestPatchTypeWidth(t *testing.T) {
	assert.EqualValues(t, 1, section.PatchByte.Width())
	assert.EqualValues(t, 2, section.PatchWord.Width())
	assert.EqualValues(t, 4, section.PatchLong.Width())
	assert.EqualValues(t, 1, section.PatchJR.Width())
}
