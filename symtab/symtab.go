// Package symtab is a minimal symbol table: enough of the section
// engine's §6 "Symbol table" collaborator to drive and test the
// engine without pulling in a real parser.
//
// Label *definition* is driven from outside this package: the caller
// (a parser's label-handling code, or a test) asks the section engine
// "what section am I in, and at what offset" through its Query
// Surface, then calls DefineLabel here with the answer. symtab never
// reaches into the engine itself, avoiding an import cycle between the
// two packages.
package symtab

import "github.com/ashgb/gbsect/expr"

// ScopeSnapshot is the label-scope value the section engine saves on
// LOAD entry and restores verbatim on LOAD exit; it travels inside the
// cursor context, which PUSHS/POPS copy whole (Design Notes bullet 6). It is deliberately a small comparable struct rather than a
// pointer so a copy is a true, independent snapshot.
type ScopeSnapshot struct {
	Global string
	Local  string
}

// Label records where a name resolves to: which section (by stable
// registry ID, since FRAGMENT siblings share a name) and what offset
// within it.
type Label struct {
	Name        string
	SectionName string
	SectionID   int
	Offset      int32
}

// SymbolTable is the §6 consumed interface.
type SymbolTable interface {
	CurrentScopes() ScopeSnapshot
	SetScopes(ScopeSnapshot)
	ResetScopes()
	PC() expr.Symbol
	DefineLabel(name, sectionName string, sectionID int, offset int32) error
	Lookup(name string) (*Label, bool)
}

// Table is the default SymbolTable implementation.
type Table struct {
	labels  *stringMap
	scopes  ScopeSnapshot
	pcSym   expr.Symbol
}

// New returns an empty Table. pcSym is the symbol the engine treats as
// "the current program counter" (getPC() in §6).
func New(pcSym expr.Symbol) *Table {
	return &Table{labels: newStringMap(32), pcSym: pcSym}
}

func (t *Table) CurrentScopes() ScopeSnapshot { return t.scopes }

func (t *Table) SetScopes(s ScopeSnapshot) { t.scopes = s }

// ResetScopes clears the local scope on a SECTION switch, matching
// §4.5.1 step 3 ("install it as currentSection; reset label scopes").
// The global scope survives since it is the enclosing top-level label.
func (t *Table) ResetScopes() { t.scopes.Local = "" }

func (t *Table) PC() expr.Symbol { return t.pcSym }

func (t *Table) DefineLabel(name, sectionName string, sectionID int, offset int32) error {
	t.labels.Set(name, &Label{Name: name, SectionName: sectionName, SectionID: sectionID, Offset: offset})
	return nil
}

func (t *Table) Lookup(name string) (*Label, bool) {
	return t.labels.Get(name)
}

// Count returns the number of defined labels, mostly useful for tests.
func (t *Table) Count() int { return t.labels.Count() }
