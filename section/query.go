package section

// Query Surface (SPEC_FULL.md §2, component 6): read-only
// accessors the parser/expression layer uses to resolve "current
// address" style constructs (`@`, `PC`, bank-relative labels) without
// reaching into Engine's private cursor state directly.

// PushPadByte implements PUSHO, delegating to the Options collaborator.
func (e *Engine) PushPadByte(b byte) {
	if e.opts != nil {
		e.opts.PushPadByte(b)
	}
}

// PopPadByte implements POPO, delegating to the Options collaborator.
func (e *Engine) PopPadByte() {
	if e.opts != nil {
		e.opts.PopPadByte()
	}
}

// CurrentLabelSection returns the section a label defined right now
// would be owned by: the LOAD overlay if one is active (labels resolve
// to the overlay's memory region, not the parent's — GLOSSARY "LOAD
// overlay"), otherwise the active section. Returns nil if neither is
// set.
func (e *Engine) CurrentLabelSection() *Section {
	if e.cur.LoadSection != nil {
		return e.cur.LoadSection
	}
	return e.cur.Section
}

// CurrentSectionName returns the name of CurrentLabelSection, or "" if
// none is active.
func (e *Engine) CurrentSectionName() string {
	sec := e.CurrentLabelSection()
	if sec == nil {
		return ""
	}
	return sec.Name
}

// SymbolOffset returns the cursor's symbol-relative offset: the
// address a label defined right now would be given (§3 "Symbol offset
// vs. output offset").
func (e *Engine) SymbolOffset() int32 { return e.cur.SymbolOffset }

// OutputOffset returns where the next byte would physically land in
// the parent section's data buffer — identical to SymbolOffset outside
// a LOAD overlay, shifted by LoadOffset inside one.
func (e *Engine) OutputOffset() int32 { return e.outputOffset() }

// CurrentBank returns the active section's bank, if one has been
// fixed by a prior declaration.
func (e *Engine) CurrentBank() (int32, bool) {
	if e.cur.Section == nil {
		return 0, false
	}
	return e.cur.Section.Bank.Get()
}

// CurrentAddress returns the absolute address the next byte would be
// emitted at, if the active section (or, inside a LOAD, the overlay)
// has a fixed org; the second return is false for a floating section,
// where no absolute address is known until link/output time.
func (e *Engine) CurrentAddress() (int32, bool) {
	if e.cur.Section == nil {
		return 0, false
	}
	target := e.cur.Section
	if e.cur.LoadSection != nil {
		target = e.cur.LoadSection
	}
	org, ok := target.Org.Get()
	if !ok {
		return 0, false
	}
	return org + e.cur.SymbolOffset, true
}
