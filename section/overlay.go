package section

import (
	"github.com/ashgb/gbsect/diag"
	"github.com/ashgb/gbsect/symtab"
)

// NewSection implements the §4.5.1 SECTION switch.
func (e *Engine) NewSection(name string, typ Type, org OptInt32, bank OptInt32, align uint8, alignOfs int32, modifier Modifier) error {
	if e.stackHasName(name) {
		msg := "section \"" + name + "\" is already active in an outer PUSHS context"
		e.diag.Fatalf("%s", msg)
		return &FatalError{Message: msg}
	}

	if len(e.cur.UnionStack) != 0 {
		msg := "SECTION inside an unterminated UNION"
		e.diag.Fatalf("%s", msg)
		return &FatalError{Message: msg}
	}

	if e.cur.LoadSection != nil {
		e.endLoadSection("SECTION")
	}

	loc := e.fstack.CurrentSourceLocation()
	decl := Declaration{Type: typ, Modifier: modifier, Org: org, Bank: bank, Align: align, AlignOfs: alignOfs, SrcLocation: loc}

	existing, found := e.registry.Find(name)
	var sec *Section
	if found {
		if err := mergeDeclaration(existing, decl, e.diag); err != nil {
			return err
		}
		sec = existing
	} else {
		sec = newSection(name, typ, modifier, loc)
		if err := firstDeclaration(sec, decl, e.diag); err != nil {
			return err
		}
		e.registry.add(sec)
	}

	e.symtab.ResetScopes()

	symOfs := sec.Size
	if modifier == Union {
		symOfs = 0
	}
	e.cur = CursorContext{
		Section:      sec,
		SymbolOffset: symOfs,
		LoadOffset:   0,
	}
	return nil
}

// SetLoadSection implements the §4.5.2 LOAD overlay entry point.
func (e *Engine) SetLoadSection(name string, typ Type, org OptInt32, bank OptInt32, align uint8, alignOfs int32, modifier Modifier) error {
	parent := e.cur.Section
	if parent == nil || !parent.Type.HasData() {
		e.diag.Errorf("LOAD requires an active ROM0/ROMX section")
		return nil
	}
	if typ.HasData() {
		e.diag.Errorf("LOAD section %q may not be a %s section", name, typ)
		return nil
	}

	if e.cur.LoadSection != nil {
		e.endLoadSection("a nested LOAD")
	}

	loc := e.fstack.CurrentSourceLocation()
	decl := Declaration{Type: typ, Modifier: modifier, Org: org, Bank: bank, Align: align, AlignOfs: alignOfs, SrcLocation: loc}

	existing, found := e.registry.Find(name)
	var overlay *Section
	if found {
		if err := mergeDeclaration(existing, decl, e.diag); err != nil {
			return err
		}
		overlay = existing
	} else {
		overlay = newSection(name, typ, modifier, loc)
		if err := firstDeclaration(overlay, decl, e.diag); err != nil {
			return err
		}
		e.registry.add(overlay)
	}

	e.cur.LabelScopes = e.symtab.CurrentScopes()
	e.symtab.SetScopes(symtab.ScopeSnapshot{Global: overlay.Name})

	overlayBase := overlay.Size
	if modifier == Union {
		overlayBase = 0
	}
	e.cur.LoadOffset = e.cur.SymbolOffset - overlayBase
	e.cur.SymbolOffset -= e.cur.LoadOffset
	e.cur.LoadSection = overlay
	return nil
}

// EndLoadSection implements ENDL (§4.5.2).
func (e *Engine) EndLoadSection() error {
	if e.cur.LoadSection == nil {
		e.diag.Errorf("ENDL outside of a LOAD block")
		return nil
	}
	e.endLoadSection("")
	return nil
}

// endLoadSection terminates the active LOAD overlay. cause is empty for
// an explicit ENDL; otherwise it names whatever forced the implicit
// termination (SECTION, a nested LOAD, POPS, ENDSECTION), and a single
// warning citing it is raised — §4.5.2 describes one warning per event,
// not one per site.
func (e *Engine) endLoadSection(cause string) {
	e.cur.SymbolOffset += e.cur.LoadOffset
	e.cur.LoadOffset = 0
	e.cur.LoadSection = nil
	e.symtab.SetScopes(e.cur.LabelScopes)
	if cause != "" {
		e.diag.Warningf(diag.KindUnterminatedLoad, "LOAD block implicitly terminated by %s", cause)
	}
}
