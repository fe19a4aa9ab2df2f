package section

import (
	"github.com/ashgb/gbsect/diag"
	"github.com/ashgb/gbsect/fstack"
	"github.com/ashgb/gbsect/options"
	"github.com/ashgb/gbsect/symtab"
)

// UnionStackEntry is the §3 union-stack entry: (startOffset,
// maxMemberSize).
type UnionStackEntry struct {
	Start   int32
	MaxSize int32
}

// CursorContext is the §3 cursor-context value: everything
// pushSection/popSection saves and restores as a unit (Design Notes
// bullet 6 — modeled as a single value object, never mutated
// piecemeal by push/pop).
type CursorContext struct {
	Section         *Section
	LoadSection     *Section
	LabelScopes     symtab.ScopeSnapshot
	SymbolOffset    int32
	LoadOffset      int32
	UnionStack      []UnionStackEntry
}

// clone returns a deep-enough copy so that appending to the returned
// value's UnionStack never aliases the original slice's backing
// array — required for pushSection to truly snapshot the state being
// suspended.
func (c CursorContext) clone() CursorContext {
	cp := c
	if len(c.UnionStack) > 0 {
		cp.UnionStack = append([]UnionStackEntry(nil), c.UnionStack...)
	}
	return cp
}

// Engine is the section engine: Registry + Constraint Merger +
// Cursor/Emitter + Relocation Hook + Overlay/Nesting Controller +
// Query Surface, composed into one instantiable value (Design Notes
// bullet 1). It holds no package-level state; every field lives on
// the value, so multiple Engines can coexist in the same process
// (e.g. one per test case) without interfering with each other.
type Engine struct {
	registry *Registry
	diag     diag.Sink
	fstack   fstack.FileStack
	symtab   symtab.SymbolTable
	opts     *options.Options

	cur          CursorContext
	sectionStack []CursorContext

	nextFragmentID uint32
}

// New composes an Engine from its external collaborators (§6).
func New(d diag.Sink, fs fstack.FileStack, st symtab.SymbolTable, opts *options.Options) *Engine {
	return &Engine{
		registry: NewRegistry(),
		diag:     d,
		fstack:   fs,
		symtab:   st,
		opts:     opts,
	}
}

// Registry exposes the read-only registry surface (Find/ForEach/Count)
// to callers like objwriter that need to serialize every section.
func (e *Engine) Registry() *Registry { return e.registry }

// CurrentSection returns the active section, or nil if none.
func (e *Engine) CurrentSection() *Section { return e.cur.Section }

// CurrentLoadSection returns the active LOAD overlay, or nil.
func (e *Engine) CurrentLoadSection() *Section { return e.cur.LoadSection }

// PushSection implements PUSHS (§4.5.4): snapshot the whole cursor
// context and reset to "nothing active".
func (e *Engine) PushSection() error {
	if e.opts != nil && len(e.sectionStack) >= e.opts.MaxRecursion() {
		msg := "section stack overflow: PUSHS nested beyond the configured maximum recursion depth"
		e.diag.Fatalf("%s", msg)
		return &FatalError{Message: msg}
	}
	e.sectionStack = append(e.sectionStack, e.cur.clone())
	e.cur = CursorContext{}
	return nil
}

// PopSection implements POPS (§4.5.4): fatal if the stack is empty; if
// a LOAD is active it is terminated first (with a warning); then the
// top snapshot is restored.
func (e *Engine) PopSection() error {
	if len(e.sectionStack) == 0 {
		msg := "POPS: section stack is empty"
		e.diag.Fatalf("%s", msg)
		return &FatalError{Message: msg}
	}
	if e.cur.LoadSection != nil {
		e.endLoadSection("POPS")
	}
	n := len(e.sectionStack)
	e.cur = e.sectionStack[n-1]
	e.sectionStack = e.sectionStack[:n-1]
	return nil
}

// EndSection implements ENDSECTION (§4.5.4): fatal outside a section
// or with a non-empty union stack; otherwise terminates any active
// LOAD and clears the active section without touching the section
// stack.
func (e *Engine) EndSection() error {
	if e.cur.Section == nil {
		msg := "ENDSECTION outside of a section"
		e.diag.Fatalf("%s", msg)
		return &FatalError{Message: msg}
	}
	if len(e.cur.UnionStack) != 0 {
		msg := "ENDSECTION inside an unterminated UNION"
		e.diag.Fatalf("%s", msg)
		return &FatalError{Message: msg}
	}
	if e.cur.LoadSection != nil {
		e.endLoadSection("ENDSECTION")
	}
	e.cur = CursorContext{}
	return nil
}

// stackHasName reports whether any suspended context on the section
// stack has name as its active section (§4.5.1 step 1: "name may not
// appear twice in nested contexts").
func (e *Engine) stackHasName(name string) bool {
	for _, ctx := range e.sectionStack {
		if ctx.Section != nil && ctx.Section.Name == name {
			return true
		}
	}
	return false
}
