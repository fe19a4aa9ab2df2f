// Package section is the section engine itself: Registry, Constraint
// Merger, Cursor & Emitter, Relocation Hook, Overlay & Nesting
// Controller, and Query Surface (SPEC_FULL.md §2, components 1-6),
// composed into a single instantiable Engine (Design Notes bullet 1).
package section

import "fmt"

// Type is the closed enum of section kinds a directive can declare
// into. Each has static metadata below: human name, address range,
// bank range, and whether it carries an emitted byte buffer.
//
// Modeled the way flapc's main.go models Arch/OS: a small int enum
// with a String() method and a table of per-value metadata, rather
// than scattering switch statements across the codebase.
type Type int

const (
	ROM0 Type = iota
	ROMX
	VRAM
	SRAM
	WRAM0
	WRAMX
	OAM
	HRAM
	numTypes
)

func (t Type) String() string {
	if m, ok := typeMeta[t]; ok {
		return m.name
	}
	return "unknown"
}

// typeInfo is the static metadata a Type carries: its human name,
// address range, bank range, and whether it has a backing data
// buffer (true iff ROM0 or ROMX, per the data model).
type typeInfo struct {
	name        string
	startAddr   int32
	maxSize     int32
	bankMin     int32
	bankMax     int32
	hasBank     bool
	hasData     bool
}

func (m typeInfo) endAddr() int32 { return m.startAddr + m.maxSize - 1 }

var typeMeta = map[Type]typeInfo{
	ROM0:  {name: "ROM0", startAddr: 0x0000, maxSize: 0x4000, hasData: true},
	ROMX:  {name: "ROMX", startAddr: 0x4000, maxSize: 0x4000, hasData: true, hasBank: true, bankMin: 1, bankMax: 511},
	VRAM:  {name: "VRAM", startAddr: 0x8000, maxSize: 0x2000, hasBank: true, bankMin: 0, bankMax: 1},
	SRAM:  {name: "SRAM", startAddr: 0xA000, maxSize: 0x2000, hasBank: true, bankMin: 0, bankMax: 15},
	WRAM0: {name: "WRAM0", startAddr: 0xC000, maxSize: 0x1000},
	WRAMX: {name: "WRAMX", startAddr: 0xD000, maxSize: 0x1000, hasBank: true, bankMin: 1, bankMax: 7},
	OAM:   {name: "OAM", startAddr: 0xFE00, maxSize: 0x00A0},
	HRAM:  {name: "HRAM", startAddr: 0xFF80, maxSize: 0x007F},
}

// StartAddr returns the type's lowest valid address.
func (t Type) StartAddr() int32 { return typeMeta[t].startAddr }

// EndAddr returns the type's highest valid address.
func (t Type) EndAddr() int32 { return typeMeta[t].endAddr() }

// MaxSize returns the type's maximum byte size.
func (t Type) MaxSize() int32 { return typeMeta[t].maxSize }

// HasData reports whether sections of this type carry an emitted byte
// buffer (true only for ROM0 and ROMX).
func (t Type) HasData() bool { return typeMeta[t].hasData }

// HasBank reports whether sections of this type are banked.
func (t Type) HasBank() bool { return typeMeta[t].hasBank }

// BankRange returns the inclusive bank-number range for a banked
// type. Calling it on an unbanked type returns (0, 0).
func (t Type) BankRange() (min, max int32) {
	m := typeMeta[t]
	return m.bankMin, m.bankMax
}

// InAddrRange reports whether addr falls within this type's address
// window.
func (t Type) InAddrRange(addr int32) bool {
	m := typeMeta[t]
	return addr >= m.startAddr && addr <= m.endAddr()
}

// Modifier is the closed enum of section declaration modifiers.
type Modifier int

const (
	Normal Modifier = iota
	Union
	Fragment
)

func (m Modifier) String() string {
	switch m {
	case Normal:
		return "NORMAL"
	case Union:
		return "UNION"
	case Fragment:
		return "FRAGMENT"
	default:
		return "unknown modifier"
	}
}

// PatchType is the closed enum of relocation widths a Patch can record
// (§3 Patch entity).
type PatchType int

const (
	PatchByte PatchType = iota
	PatchWord
	PatchLong
	PatchJR
)

func (p PatchType) String() string {
	switch p {
	case PatchByte:
		return "BYTE"
	case PatchWord:
		return "WORD"
	case PatchLong:
		return "LONG"
	case PatchJR:
		return "JR"
	default:
		return "unknown patch type"
	}
}

// Width returns the number of bytes a patch of this type reserves as
// a placeholder.
func (p PatchType) Width() int32 {
	switch p {
	case PatchByte, PatchJR:
		return 1
	case PatchWord:
		return 2
	case PatchLong:
		return 4
	default:
		return 0
	}
}

// OptInt32 is an explicit optional int32 (Design Notes bullet 4): used
// for a section's org and bank, and for INCBIN's optional start and
// length. AlignOfs is a plain int32.
//
// The source this spec distills uses a sentinel UINT32_MAX for
// "unspecified"; that is an encoding choice of the original, not part
// of the semantics, so it is not reproduced here.
type OptInt32 struct {
	isSet bool
	val   int32
}

// Set returns an OptInt32 holding v.
func Set(v int32) OptInt32 { return OptInt32{isSet: true, val: v} }

// Unset is the zero value: "no constraint".
var Unset = OptInt32{}

// IsSet reports whether a value is present.
func (o OptInt32) IsSet() bool { return o.isSet }

// Get returns the held value and whether one was set.
func (o OptInt32) Get() (int32, bool) { return o.val, o.isSet }

// Must returns the held value, panicking if unset. Only used in paths
// that have already checked IsSet().
func (o OptInt32) Must() int32 {
	if !o.isSet {
		panic("section: OptInt32.Must called on unset value")
	}
	return o.val
}

func (o OptInt32) String() string {
	if !o.isSet {
		return "<unset>"
	}
	return fmt.Sprintf("%d", o.val)
}
