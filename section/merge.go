package section

import (
	"fmt"

	"github.com/ashgb/gbsect/diag"
	"github.com/ashgb/gbsect/fstack"
)

// Declaration is a new SECTION directive's parsed arguments: the input
// to the Constraint Merger (§4.2).
type Declaration struct {
	Type        Type
	Modifier    Modifier
	Org         OptInt32
	Bank        OptInt32
	Align       uint8
	AlignOfs    int32
	SrcLocation fstack.Location
}

// FatalError is returned (never panicked) when the engine hits an
// unrecoverable condition: a constraint-merger summary after
// accumulated sub-errors, section-stack over/underflow, or a 32-bit
// offset overflow (§7).
type FatalError struct {
	Message string
}

func (e *FatalError) Error() string { return e.Message }

// firstDeclaration validates and applies decl to a brand-new Section
// (one the Registry has not seen before). There is nothing to merge
// against yet, but the same range and alignment-coherence checks
// §4.2 applies to redeclarations still have to hold for an initial
// declaration, so this shares the same accumulate-then-summarize
// shape as mergeDeclaration.
func firstDeclaration(s *Section, decl Declaration, d diag.Sink) error {
	acc := &mergeAccumulator{}

	if decl.Modifier == Union && s.Type.HasData() {
		acc.add("section %q: UNION is not allowed for %s sections", s.Name, s.Type)
	}

	if org, ok := decl.Org.Get(); ok {
		if !s.Type.InAddrRange(org) {
			acc.add("section %q: fixed address $%04x outside %s address range [$%04x, $%04x]", s.Name, org, s.Type, s.Type.StartAddr(), s.Type.EndAddr())
		} else if decl.Align > 0 && mod2(org-decl.AlignOfs, int32(1)<<decl.Align) != 0 {
			acc.add("section %q: fixed address $%04x incompatible with alignment %d offset %d", s.Name, org, decl.Align, decl.AlignOfs)
		} else {
			s.Org = Set(org)
		}
	}

	if decl.Align > 0 && !s.Org.IsSet() {
		s.Align = decl.Align
		s.AlignOfs = mod2(decl.AlignOfs, int32(1)<<decl.Align)
	}

	if bank, ok := decl.Bank.Get(); ok {
		if s.Type.HasBank() {
			min, max := s.Type.BankRange()
			if bank < min || bank > max {
				acc.add("section %q: bank %d out of range [%d, %d] for %s", s.Name, bank, min, max, s.Type)
			} else {
				s.Bank = Set(bank)
			}
		} else {
			s.Bank = Set(bank)
		}
	}

	if len(acc.errs) == 0 {
		return nil
	}
	for _, msg := range acc.errs {
		d.Errorf("%s", msg)
	}
	summary := fmt.Sprintf("%d error(s) declaring section %q", len(acc.errs), s.Name)
	d.Fatalf("%s", summary)
	return &FatalError{Message: summary}
}

// mergeAccumulator collects sub-errors across a single re-declaration
// (§4.2: "accumulated across all sub-checks ... reported as a fatal
// summary").
type mergeAccumulator struct {
	errs []string
}

func (a *mergeAccumulator) add(format string, args ...any) {
	a.errs = append(a.errs, fmt.Sprintf(format, args...))
}

// mergeDeclaration mutates existing to the strictest compatible
// combination of constraints implied by decl, or returns a FatalError
// summarizing every sub-error found. Individual sub-errors are also
// reported to d at error severity before the fatal summary, per §7
// ("individual sub-messages have already been issued at error
// severity").
func mergeDeclaration(existing *Section, decl Declaration, d diag.Sink) error {
	acc := &mergeAccumulator{}

	if decl.Type != existing.Type {
		acc.add("section %q redeclared with type %s, but was declared as %s at %s", existing.Name, decl.Type, existing.Type, existing.SrcLocation)
	}

	switch decl.Modifier {
	case Normal:
		acc.add("section %q already declared at %s", existing.Name, existing.SrcLocation)

	case Union:
		if existing.Modifier != Union {
			acc.add("section %q redeclared as UNION, but was declared as %s at %s", existing.Name, existing.Modifier, existing.SrcLocation)
			break
		}
		if existing.Type.HasData() {
			acc.add("section %q: UNION is not allowed for %s sections", existing.Name, existing.Type)
			break
		}
		mergeOverlayConstraints(existing, decl, 0, acc)

	case Fragment:
		switch existing.Modifier {
		case Union:
			acc.add("section %q redeclared as FRAGMENT, but was declared as UNION at %s", existing.Name, existing.SrcLocation)
		case Normal, Fragment:
			// NORMAL -> FRAGMENT is the one allowed one-way promotion
			// (Design Notes bullet 6, generalized from fragment-literal
			// injection to explicit "SECTION FRAGMENT" redeclaration):
			// once promoted, the base section's own bytes become the
			// first fragment.
			existing.Modifier = Fragment
			mergeOverlayConstraints(existing, decl, existing.Size, acc)
		}

	default:
		acc.add("section %q: unknown modifier in redeclaration", existing.Name)
	}

	mergeBank(existing, decl, acc)

	if len(acc.errs) == 0 {
		return nil
	}
	for _, msg := range acc.errs {
		d.Errorf("%s", msg)
	}
	summary := fmt.Sprintf("%d error(s) merging section %q", len(acc.errs), existing.Name)
	d.Fatalf("%s", summary)
	return &FatalError{Message: summary}
}

// mergeOverlayConstraints implements the shared UNION/FRAGMENT org and
// alignment merge logic from §4.2. base is 0 for UNION (constraints
// evaluated "at the start of S") and existing.Size for FRAGMENT
// (constraints evaluated "at the end of S", i.e. the new piece is
// appended after base bytes already present).
func mergeOverlayConstraints(s *Section, decl Declaration, base int32, acc *mergeAccumulator) {
	if org, ok := decl.Org.Get(); ok {
		effectiveOrg := org - base
		if existingOrg, has := s.Org.Get(); has {
			if existingOrg != effectiveOrg {
				acc.add("section %q: conflicting fixed address $%04x vs previously set $%04x", s.Name, effectiveOrg, existingOrg)
				return
			}
		} else if s.Align > 0 {
			mod := int32(1) << s.Align
			if mod2(effectiveOrg-s.AlignOfs, mod) != 0 {
				acc.add("section %q: fixed address $%04x incompatible with alignment %d offset %d", s.Name, effectiveOrg, s.Align, s.AlignOfs)
				return
			}
			s.Org = Set(effectiveOrg)
		} else {
			s.Org = Set(effectiveOrg)
		}
		return
	}

	if decl.Align == 0 {
		return
	}

	mod := int32(1) << decl.Align
	effectiveOfs := mod2(decl.AlignOfs-base, mod)

	if existingOrg, has := s.Org.Get(); has {
		if mod2(existingOrg-effectiveOfs, mod) != 0 {
			acc.add("section %q: alignment %d offset %d incompatible with fixed address $%04x", s.Name, decl.Align, effectiveOfs, existingOrg)
			return
		}
	}
	if s.Align > 0 {
		existingMod := int32(1) << s.Align
		minMod := mod
		if existingMod < minMod {
			minMod = existingMod
		}
		if mod2(effectiveOfs, minMod) != mod2(s.AlignOfs, minMod) {
			acc.add("section %q: alignment offset %d incompatible with previous alignment %d offset %d", s.Name, effectiveOfs, s.Align, s.AlignOfs)
			return
		}
	}
	if decl.Align > s.Align {
		s.Align = decl.Align
		s.AlignOfs = effectiveOfs
	}
}

// mergeBank applies the bank agreement rule shared by every modifier,
// plus the supplemented range check (SPEC_FULL.md "Bank-range
// validation for banked types").
func mergeBank(s *Section, decl Declaration, acc *mergeAccumulator) {
	bank, ok := decl.Bank.Get()
	if !ok {
		return
	}
	if s.Type.HasBank() {
		min, max := s.Type.BankRange()
		if bank < min || bank > max {
			acc.add("section %q: bank %d out of range [%d, %d] for %s", s.Name, bank, min, max, s.Type)
			return
		}
	}
	if existing, has := s.Bank.Get(); has {
		if existing != bank {
			acc.add("section %q: conflicting bank %d vs previously set %d", s.Name, bank, existing)
		}
		return
	}
	s.Bank = Set(bank)
}
