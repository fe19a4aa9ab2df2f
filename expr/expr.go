// Package expr defines the expression-evaluator interface the section
// engine consumes (SPEC_FULL.md §6) and a minimal implementation
// sufficient to exercise it without a real parser/evaluator.
//
// Expression arithmetic is explicitly out of scope for the section
// engine (spec.md Non-goals); this package exists only so the engine
// has something concrete to call isKnown/value/symbolOf/isDiffConstant
// on in its own tests.
package expr

// Symbol is an opaque handle to a named value the symbol table knows
// about. The section engine never interprets it beyond identity
// comparisons (IsDiffConstant) and passing it through to a Patch.
type Symbol struct {
	Name string
}

// Expression is the §6 consumed interface.
type Expression interface {
	// IsKnown reports whether Value can be called right now.
	IsKnown() bool
	// Value returns the constant value of a known expression. Calling
	// it on an unknown expression is a programming error.
	Value() int64
	// SymbolOf returns the symbol this expression directly names, if
	// any. The section engine does not call it; JR's "difference with
	// current PC" detection uses IsDiffConstant.
	SymbolOf() (Symbol, bool)
	// IsDiffConstant reports whether this expression is known to equal
	// (some symbol - pc), and if so returns that constant difference.
	IsDiffConstant(pc Symbol) (int64, bool)
}

// Const is a known integer expression.
type Const struct {
	V int64
}

func (c Const) IsKnown() bool                             { return true }
func (c Const) Value() int64                              { return c.V }
func (c Const) SymbolOf() (Symbol, bool)                  { return Symbol{}, false }
func (c Const) IsDiffConstant(pc Symbol) (int64, bool)    { return 0, false }

// SymbolRef is an unknown expression that simply names a symbol
// (e.g. "DB MyLabel" before MyLabel's address is resolvable).
type SymbolRef struct {
	Sym Symbol
}

func (s SymbolRef) IsKnown() bool                          { return false }
func (s SymbolRef) Value() int64                           { panic("expr: Value called on unknown expression") }
func (s SymbolRef) SymbolOf() (Symbol, bool)                { return s.Sym, true }
func (s SymbolRef) IsDiffConstant(pc Symbol) (int64, bool) { return 0, false }

// Diff is an unknown expression equal to (Sym - pc + Offset), the
// shape JR targets take: "jr Label" compiles to a difference against
// the instruction's own PC.
type Diff struct {
	Sym    Symbol
	PC     Symbol
	Offset int64
}

func (d Diff) IsKnown() bool          { return false }
func (d Diff) Value() int64           { panic("expr: Value called on unknown expression") }
func (d Diff) SymbolOf() (Symbol, bool) { return d.Sym, true }

func (d Diff) IsDiffConstant(pc Symbol) (int64, bool) {
	if d.PC != pc {
		return 0, false
	}
	return d.Offset, true
}
