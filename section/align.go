package section

// getAlignBytes returns the minimum n >= 0 such that emitting n pad
// bytes at the current offset would land the cursor on the residue
// `offset` modulo (1 << align) (§4.3 alignment helpers). A section with
// a fixed org already has a fully determined address, so it is treated
// as maximally aligned (exponent 16): the residue is checked against
// the section's real absolute address rather than assumed relative to
// a mod-zero start. Otherwise the section's start address is taken to
// be AlignOfs modulo (1 << align); when the section's own Align is
// smaller than align, only its low Align bits are actually constrained
// and the higher bits are taken as zero.
func getAlignBytes(sec *Section, align uint8, offset int32, current int32) int32 {
	mod := int32(1) << align
	target := mod2(offset, mod)
	if org, hasOrg := sec.Org.Get(); hasOrg {
		return mod2(target-(org+current), mod)
	}
	return mod2(target-(sec.AlignOfs+current), mod)
}

// GetAlignBytes exposes getAlignBytes against the engine's active
// section and current symbol offset, for callers (e.g. the Query
// Surface) that want to know the pad count without enforcing anything.
func (e *Engine) GetAlignBytes(align uint8, offset int32) int32 {
	sec, ok := e.requireSection()
	if !ok {
		return 0
	}
	return getAlignBytes(sec, align, offset, e.cur.SymbolOffset)
}

// AlignPC implements the ALIGN directive (§4.3). It never emits bytes:
// if the active section has a fixed org, the request is only ever
// verified against the real address a mismatch is an error, not
// something padding could fix. Otherwise a weaker existing alignment is
// tightened to the requested one, becoming a fixed org outright once
// align reaches the pinned-address threshold (16).
func (e *Engine) AlignPC(align uint8, offset int32) error {
	sec, ok := e.requireSection()
	if !ok {
		return nil
	}

	if org, hasOrg := sec.Org.Get(); hasOrg {
		mod := int32(1) << align
		addr := org + e.cur.SymbolOffset
		if mod2(addr, mod) != mod2(offset, mod) {
			e.diag.Errorf("section %q: address $%04x is not aligned to %d offset %d", sec.Name, addr, align, offset)
		}
		return nil
	}

	if align <= sec.Align {
		return nil
	}
	if align >= 16 {
		sec.Org = Set(offset - e.cur.SymbolOffset)
		return nil
	}
	sec.Align = align
	sec.AlignOfs = mod2(offset-e.cur.SymbolOffset, int32(1)<<align)
	return nil
}
