package section

import (
	"fmt"

	"github.com/ashgb/gbsect/expr"
)

// InjectFragmentLiteral implements the §4.5.5 fragment-literal
// injection: a directive that opens an anonymous FRAGMENT sibling of
// the currently active section, inline, without a SECTION keyword.
// It requires an active ROM0/ROMX section. Per §4.5.6 it is forbidden
// inside an active LOAD overlay and inside
// any UNION-modifier section or UNION block (both contexts the spec
// reserves for a single contiguous member, which an injected sibling
// would fragment unpredictably).
//
// On success it pushes the current cursor context (the same mechanism
// PUSHS uses) and installs the new sibling as active at offset 0,
// returning a generated symbol naming the sibling so the caller can
// later refer back to its start address. EndFragmentLiteral is the
// matching close.
func (e *Engine) InjectFragmentLiteral() (expr.Symbol, error) {
	if e.cur.Section == nil {
		e.diag.Errorf("fragment literal used outside of a section")
		return expr.Symbol{}, nil
	}
	if !e.cur.Section.Type.HasData() {
		e.diag.Errorf("fragment literal is not allowed in %s section %q, which has no backing data", e.cur.Section.Type, e.cur.Section.Name)
		return expr.Symbol{}, nil
	}
	if e.cur.LoadSection != nil {
		e.diag.Errorf("fragment literal is not allowed inside a LOAD block")
		return expr.Symbol{}, nil
	}
	if e.cur.Section.Modifier == Union {
		e.diag.Errorf("fragment literal is not allowed in a UNION section")
		return expr.Symbol{}, nil
	}
	if len(e.cur.UnionStack) != 0 {
		e.diag.Errorf("fragment literal is not allowed inside an open UNION block")
		return expr.Symbol{}, nil
	}

	parent := e.cur.Section
	if parent.Modifier == Normal {
		parent.Modifier = Fragment
	}

	loc := e.fstack.CurrentSourceLocation()
	sib := newSection(parent.Name, parent.Type, Fragment, loc)
	if b, ok := parent.Bank.Get(); ok && b != 0 {
		sib.Bank = parent.Bank
	}
	e.registry.addSibling(sib)

	e.sectionStack = append(e.sectionStack, e.cur.clone())
	e.cur = CursorContext{Section: sib, SymbolOffset: 0}

	name := fmt.Sprintf("__fragment%d", e.nextFragmentID)
	e.nextFragmentID++
	return expr.Symbol{Name: name}, nil
}

// EndFragmentLiteral closes the sibling opened by InjectFragmentLiteral,
// restoring the cursor context that was active beforehand.
func (e *Engine) EndFragmentLiteral() error {
	if len(e.sectionStack) == 0 {
		msg := "fragment literal close with no matching injection"
		e.diag.Fatalf("%s", msg)
		return &FatalError{Message: msg}
	}
	n := len(e.sectionStack)
	e.cur = e.sectionStack[n-1]
	e.sectionStack = e.sectionStack[:n-1]
	return nil
}
