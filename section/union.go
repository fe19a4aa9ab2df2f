package section

// StartUnion implements the §4.5.3 UNION directive (the `UNION`
// block keyword, distinct from the Modifier of the same name used in
// `SECTION UNION "name"` declarations): it requires an active section
// and forbids has-data types, then pushes a fresh union-stack entry
// starting at the current symbol offset.
func (e *Engine) StartUnion() error {
	if e.cur.Section == nil {
		e.diag.Errorf("UNION outside of a section")
		return nil
	}
	if e.cur.Section.Type.HasData() {
		e.diag.Errorf("UNION is not allowed in %s sections", e.cur.Section.Type)
		return nil
	}
	e.cur.UnionStack = append(e.cur.UnionStack, UnionStackEntry{Start: e.cur.SymbolOffset})
	return nil
}

// endMember implements the shared "end member" behavior of
// NEXTU/ENDU: raise the top entry's MaxSize to the size of the member
// just finished, then rewind the cursor to the union's start offset.
func (e *Engine) endMember() *UnionStackEntry {
	n := len(e.cur.UnionStack)
	top := &e.cur.UnionStack[n-1]
	memberSize := e.cur.SymbolOffset - top.Start
	if memberSize > top.MaxSize {
		top.MaxSize = memberSize
	}
	e.cur.SymbolOffset = top.Start
	return top
}

// NextUnionMember implements NEXTU.
func (e *Engine) NextUnionMember() error {
	if len(e.cur.UnionStack) == 0 {
		e.diag.Errorf("NEXTU outside of a UNION")
		return nil
	}
	e.endMember()
	return nil
}

// EndUnion implements ENDU: end the current member, then advance the
// cursor past the union's widest member and pop it.
func (e *Engine) EndUnion() error {
	if len(e.cur.UnionStack) == 0 {
		e.diag.Errorf("ENDU outside of a UNION")
		return nil
	}
	top := e.endMember()
	e.cur.SymbolOffset = top.Start + top.MaxSize
	e.cur.UnionStack = e.cur.UnionStack[:len(e.cur.UnionStack)-1]
	// Section.Size already reflects the widest member: each member's
	// writes raised it via Grow before this rewind ever ran.
	return nil
}
