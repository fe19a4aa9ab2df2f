package section

import (
	"fmt"

	"github.com/ashgb/gbsect/fstack"
)

// Patch is a pending relocation: an emitted value that was not a known
// integer at emission time (§3 Patch entity, §4.4 Relocation Hook).
type Patch struct {
	Type        PatchType
	Expr        Expression
	OutputOffset int32
	PCShift     int32
	SrcLocation fstack.Location
}

// Expression is re-exported from the engine's point of view as the
// shape the §6 expression-evaluator collaborator must have. It is
// defined here (rather than only in package expr) so Patch and the
// emitter can refer to it without every caller importing package expr
// just to name the type; package expr's Expression satisfies it
// structurally.
type Expression interface {
	IsKnown() bool
	Value() int64
}

// Section is the §3 Section entity.
type Section struct {
	Name     string
	Type     Type
	Modifier Modifier

	Size int32

	Org      OptInt32
	Bank     OptInt32
	Align    uint8 // 0..15; 16 ("pinned") is expressed via Org instead
	AlignOfs int32 // valid modulo (1 << Align) when Align > 0

	Data    []byte // only allocated for has-data types
	Patches []Patch

	SrcLocation fstack.Location

	// siblingIndex is this section's position in the Registry's
	// ordered sequence, used to recover fragment-literal identity
	// (Design Notes bullet 3: "(head, next_sibling_index)").
	siblingIndex int
}

// newSection allocates a Section of the given type, sizing its Data
// buffer for has-data types per §3 ("data.length == type.maxSize").
func newSection(name string, typ Type, modifier Modifier, loc fstack.Location) *Section {
	s := &Section{
		Name:        name,
		Type:        typ,
		Modifier:    modifier,
		SrcLocation: loc,
	}
	if typ.HasData() {
		s.Data = make([]byte, typ.MaxSize())
	}
	return s
}

// SiblingIndex returns this section's stable position in declaration
// order, the identity used to distinguish same-named FRAGMENT/
// fragment-literal siblings (§4.1).
func (s *Section) SiblingIndex() int { return s.siblingIndex }

// growSize raises Size to at least n, never lowering it (§8 invariant
// 4: "size monotonically non-decreases ... except UNION rewinds do not
// reduce size" — a rewind simply never calls growSize with a smaller
// value).
func (s *Section) growSize(n int32) {
	if n > s.Size {
		s.Size = n
	}
}

// checkInvariants validates the §3/§8 structural invariants that must
// hold after every directive. It never mutates state. Nothing in the
// engine calls it; it is a standalone check.
func (s *Section) checkInvariants() error {
	if s.Align >= 16 {
		return invariantErrf("section %q: align %d >= 16", s.Name, s.Align)
	}
	if s.Align > 0 && s.AlignOfs >= int32(1)<<s.Align {
		return invariantErrf("section %q: alignOfs %d >= 1<<%d", s.Name, s.AlignOfs, s.Align)
	}
	if org, ok := s.Org.Get(); ok {
		if !s.Type.InAddrRange(org) {
			return invariantErrf("section %q: org $%04x outside %s address range", s.Name, org, s.Type)
		}
		if s.Align > 0 {
			mod := int32(1) << s.Align
			if mod2(org-s.AlignOfs, mod) != 0 {
				return invariantErrf("section %q: org $%04x incompatible with align %d offset %d", s.Name, org, s.Align, s.AlignOfs)
			}
		}
	}
	if s.Type.HasData() && int32(len(s.Data)) != s.Type.MaxSize() {
		return invariantErrf("section %q: data buffer length %d != type max %d", s.Name, len(s.Data), s.Type.MaxSize())
	}
	return nil
}

// mod2 returns a mod m, normalized into [0, m) even for negative a,
// matching the spec's residue arithmetic ("(addr - alignOfs) mod
// (1<<align)").
func mod2(a, m int32) int32 {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

func invariantErrf(format string, args ...any) error {
	return &invariantError{msg: fmt.Sprintf(format, args...)}
}

type invariantError struct{ msg string }

func (e *invariantError) Error() string { return e.msg }
