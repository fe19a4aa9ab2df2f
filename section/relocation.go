package section

import "github.com/ashgb/gbsect/expr"

// pcShiftFor returns the pcShift a Patch records for its type: JR
// relocations resolve relative to two bytes past the instruction
// start (the full JR opcode+operand), everything else resolves
// absolute (no shift).
func pcShiftFor(pt PatchType) int32 {
	if pt == PatchJR {
		return 2
	}
	return 0
}

// EmitRelative implements §4.3's relative-emission operation and the
// §4.4 Relocation Hook together: a known expression is written
// literally; an unknown one is recorded as a Patch on the *parent*
// section (never the LOAD overlay, even if one is active) at the
// current output offset, with zero placeholder bytes written in its
// place.
func (e *Engine) EmitRelative(pt PatchType, ex expr.Expression) error {
	sec, ok := e.requireDataSection()
	if !ok {
		return nil
	}

	if pt == PatchJR {
		if diffVal, isDiff := ex.IsDiffConstant(e.symtab.PC()); isDiff {
			return e.emitJRValue(sec, diffVal-2)
		}
	}

	if ex.IsKnown() {
		v := ex.Value()
		if pt == PatchJR {
			return e.emitJRValue(sec, v)
		}
		return e.writeBytes(sec, literalBytes(pt, v))
	}

	loc := e.fstack.CurrentSourceLocation()
	sec.Patches = append(sec.Patches, Patch{
		Type:         pt,
		Expr:         ex,
		OutputOffset: e.outputOffset(),
		PCShift:      pcShiftFor(pt),
		SrcLocation:  loc,
	})
	return e.writeBytes(sec, make([]byte, pt.Width()))
}

func (e *Engine) emitJRValue(sec *Section, v int64) error {
	if v < -128 || v > 127 {
		e.diag.Errorf("JR target must be between -128 and 127")
		return e.writeBytes(sec, []byte{0})
	}
	return e.writeBytes(sec, []byte{byte(int8(v))})
}

func literalBytes(pt PatchType, v int64) []byte {
	switch pt {
	case PatchByte:
		return []byte{byte(v)}
	case PatchWord:
		return []byte{byte(v), byte(v >> 8)}
	case PatchLong:
		return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
	default:
		return nil
	}
}
