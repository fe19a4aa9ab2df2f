package section

import (
	"math"

	"github.com/ashgb/gbsect/diag"
)

// requireSection returns the active section, reporting an error and
// returning ok=false if none is active. Per §7, "error" severity never
// halts assembly: the caller is expected to simply return nil after
// seeing ok==false.
func (e *Engine) requireSection() (*Section, bool) {
	if e.cur.Section == nil {
		e.diag.Errorf("directive used outside of a section")
		return nil, false
	}
	return e.cur.Section, true
}

// requireDataSection additionally requires the active section to have
// a backing data buffer (ROM0/ROMX).
func (e *Engine) requireDataSection() (*Section, bool) {
	sec, ok := e.requireSection()
	if !ok {
		return nil, false
	}
	if !sec.Type.HasData() {
		e.diag.Errorf("data directive used in %s section %q, which has no backing data", sec.Type, sec.Name)
		return nil, false
	}
	return sec, true
}

// outputOffset is symbolOffset + loadOffset: where the next byte
// physically lands in the parent section's data buffer (§3 "Symbol
// offset vs. output offset").
func (e *Engine) outputOffset() int32 {
	return e.cur.SymbolOffset + e.cur.LoadOffset
}

// grow implements §4.3 Grow(n): advances symbolOffset, fatal on
// 32-bit overflow, and raises the active section's (and, if a LOAD is
// active, the overlay's) Size.
func (e *Engine) grow(n int32) error {
	if e.cur.SymbolOffset > math.MaxInt32-n {
		msg := "internal offset counter overflow"
		e.diag.Fatalf("%s", msg)
		return &FatalError{Message: msg}
	}
	e.cur.SymbolOffset += n
	out := e.outputOffset()
	e.cur.Section.growSize(out)
	if e.cur.LoadSection != nil {
		e.cur.LoadSection.growSize(e.cur.SymbolOffset)
	}
	return nil
}

// writeBytes stores bs at the current output offset in the parent
// section's data buffer, if that offset is in range, then grows the
// cursor past them. Writing past the end of a has-data section's
// buffer is not itself an error here: §3 says the buffer is sized to
// the type's maximum, and exceeding it is only reported at
// finalization (Registry.CheckSizes).
func (e *Engine) writeBytes(sec *Section, bs []byte) error {
	out := e.outputOffset()
	if sec.Type.HasData() {
		for i, b := range bs {
			pos := out + int32(i)
			if pos >= 0 && int(pos) < len(sec.Data) {
				sec.Data[pos] = b
			}
		}
	}
	return e.grow(int32(len(bs)))
}

// WriteByte emits a single literal byte.
func (e *Engine) WriteByte(b byte) error {
	sec, ok := e.requireDataSection()
	if !ok {
		return nil
	}
	return e.writeBytes(sec, []byte{b})
}

// WriteWord emits a little-endian 16-bit literal.
func (e *Engine) WriteWord(v uint16) error {
	sec, ok := e.requireDataSection()
	if !ok {
		return nil
	}
	return e.writeBytes(sec, []byte{byte(v), byte(v >> 8)})
}

// WriteLong emits a little-endian 32-bit literal.
func (e *Engine) WriteLong(v uint32) error {
	sec, ok := e.requireDataSection()
	if !ok {
		return nil
	}
	return e.writeBytes(sec, []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
}

// Skip implements §4.3 Skip(n, dsFlag): in a non-data section it just
// advances the cursor; in a data section it writes n pad bytes
// (options.PadByte()), warning if dsFlag is false (the directive was
// DS used where an explicit data fill was expected, e.g. an empty
// string constant).
func (e *Engine) Skip(n int32, dsFlag bool) error {
	sec, ok := e.requireSection()
	if !ok {
		return nil
	}
	if !sec.Type.HasData() {
		return e.grow(n)
	}
	pad := make([]byte, n)
	if e.opts != nil {
		b := e.opts.PadByte()
		for i := range pad {
			pad[i] = b
		}
	}
	if !dsFlag {
		e.diag.Warningf(diag.KindEmptyDataDirective, "data was omitted and padded with the fill byte")
	}
	return e.writeBytes(sec, pad)
}
