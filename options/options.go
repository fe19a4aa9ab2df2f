// Package options is the §6 "Options" collaborator: pad byte,
// include-path list, max recursion depth, and fixed-point precision.
//
// Defaults are overridable through environment variables using
// github.com/xyproto/env/v2, the same override-the-default shape
// flapc's dependencies.go uses for FunctionRepository (there:
// FLAPC_<NAME> overrides a built-in map; here: GBSECT_<NAME> overrides
// a built-in default).
package options

import (
	"strings"

	"github.com/xyproto/env/v2"
)

const (
	defaultPadByte        = 0x00
	defaultMaxRecursion   = 512
	defaultFloatPrecision = 16
)

// Options bundles the knobs the section engine reads through its §6
// Options collaborator.
type Options struct {
	includeDirs    []string
	maxRecursion   int
	floatPrecision int

	padStack []byte // PUSHO/POPO stack; padStack[len-1] is the active pad byte
}

// New builds Options from the environment, falling back to the coded
// defaults flapc's style favors (a default baked in, not a required
// env var).
func New() *Options {
	pad := byte(env.Int("GBSECT_PAD_BYTE", defaultPadByte))
	dirs := splitPathList(env.Str("GBSECT_INCLUDE_PATH", ""))
	maxRec := env.Int("GBSECT_MAX_RECURSION", defaultMaxRecursion)
	prec := env.Int("GBSECT_FLOAT_PRECISION", defaultFloatPrecision)

	return &Options{
		includeDirs:    dirs,
		maxRecursion:   maxRec,
		floatPrecision: prec,
		padStack:       []byte{pad},
	}
}

func splitPathList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ":")
	dirs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			dirs = append(dirs, p)
		}
	}
	return dirs
}

// PadByte returns the byte Skip() fills reserved-but-unwritten data
// bytes with (default 0, overridable with GBSECT_PAD_BYTE or PUSHO).
func (o *Options) PadByte() byte { return o.padStack[len(o.padStack)-1] }

// PushPadByte implements PUSHO: temporarily override the pad byte.
// RGBDS-lineage assemblers let a directive stream push/pop this
// option around a region that wants a different fill value (e.g. 0xFF
// for a lookup table) without disturbing the caller's setting.
func (o *Options) PushPadByte(b byte) {
	o.padStack = append(o.padStack, b)
}

// PopPadByte implements POPO. Popping past the bottom of the stack is
// a no-op: the initial default remains in place.
func (o *Options) PopPadByte() {
	if len(o.padStack) > 1 {
		o.padStack = o.padStack[:len(o.padStack)-1]
	}
}

// IncludeDirs returns the ordered include-path search list.
func (o *Options) IncludeDirs() []string { return o.includeDirs }

// MaxRecursion returns the maximum nesting depth the engine allows for
// the section stack before treating further PUSHS as a fatal
// condition (SPEC_FULL.md §7: "overflow of internal counters").
func (o *Options) MaxRecursion() int { return o.maxRecursion }

// FloatPrecision returns the number of significant digits used when
// formatting fixed-point diagnostics (e.g. an alignment residue
// reported back to the user in a warning).
func (o *Options) FloatPrecision() int { return o.floatPrecision }
