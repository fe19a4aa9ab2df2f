package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ashgb/gbsect/diag"
	"github.com/ashgb/gbsect/expr"
	"github.com/ashgb/gbsect/section"
	"github.com/ashgb/gbsect/symtab"
)

// interpreter drives a section.Engine from a small directive grammar
// (SECTION/LOAD operands are comma-separated):
//
//	SECTION [UNION|FRAGMENT,] "name", TYPE[, ORG=$150][, BANK=3][, ALIGN=4,2]
//	LOAD [UNION|FRAGMENT,] "name", TYPE[, ORG=...][, BANK=...][, ALIGN=...]
//	ENDL / ENDSECTION / PUSHS / POPS / UNION / NEXTU / ENDU
//	DB v,v,...  |  DW v,v,...  |  DL v,v,...  |  DS n  |  JR target
//	ALIGN n[,ofs]  |  INCBIN "file"[,start[,length]]
//	PUSHO n  |  POPO
//	label:
//
// Expression arithmetic is out of scope (spec.md Non-goals); operands
// are either a literal integer (decimal or $hex) or a bare symbol
// name, resolved only far enough to drive the engine's Patch path.
type interpreter struct {
	engine *section.Engine
	symtab *symtab.Table
	diag   diag.Sink
}

// run interprets one source line. A non-nil return is either a fatal
// condition from the engine or a malformed operand (bad number,
// unknown section type, missing name); the caller should stop feeding
// it further lines.
func (ip *interpreter) run(line string) error {
	line = stripComment(line)
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	if strings.HasSuffix(line, ":") {
		ip.defineLabel(strings.TrimSuffix(line, ":"))
		return nil
	}

	kw, rest := splitKeyword(line)
	var err error
	switch strings.ToUpper(kw) {
	case "SECTION":
		err = ip.doSection(rest, false)
	case "LOAD":
		err = ip.doSection(rest, true)
	case "ENDL":
		err = ip.engine.EndLoadSection()
	case "ENDSECTION":
		err = ip.engine.EndSection()
	case "PUSHS":
		err = ip.engine.PushSection()
	case "POPS":
		err = ip.engine.PopSection()
	case "UNION":
		err = ip.engine.StartUnion()
	case "NEXTU":
		err = ip.engine.NextUnionMember()
	case "ENDU":
		err = ip.engine.EndUnion()
	case "DB":
		err = ip.doData(rest, section.PatchByte)
	case "DW":
		err = ip.doData(rest, section.PatchWord)
	case "DL":
		err = ip.doData(rest, section.PatchLong)
	case "DS":
		err = ip.doSkip(rest)
	case "JR":
		err = ip.doData(rest, section.PatchJR)
	case "ALIGN":
		err = ip.doAlign(rest)
	case "INCBIN":
		err = ip.doIncbin(rest)
	case "PUSHO":
		err = ip.doPusho(rest)
	case "POPO":
		ip.engine.PopPadByte()
	default:
		ip.diag.Errorf("unknown directive %q", kw)
	}
	return err
}

func (ip *interpreter) defineLabel(name string) {
	sec := ip.engine.CurrentSectionName()
	if sec == "" {
		ip.diag.Errorf("label %q declared outside of a section", name)
		return
	}
	id := 0
	if cur := ip.engine.CurrentLabelSection(); cur != nil {
		id = cur.SiblingIndex()
	}
	ip.symtab.DefineLabel(name, sec, id, ip.engine.SymbolOffset())
}

func (ip *interpreter) doSection(rest string, isLoad bool) error {
	fields := splitFields(rest)
	if len(fields) < 2 {
		return fmt.Errorf("SECTION/LOAD requires a name and a type")
	}

	modifier := section.Normal
	idx := 0
	switch strings.ToUpper(fields[0]) {
	case "UNION":
		modifier = section.Union
		idx = 1
	case "FRAGMENT":
		modifier = section.Fragment
		idx = 1
	}

	name := strings.Trim(fields[idx], `"`)
	typ, err := parseType(fields[idx+1])
	if err != nil {
		return err
	}

	org, bank, align, alignOfs := section.Unset, section.Unset, uint8(0), int32(0)
	for _, f := range mergeAttributeTokens(fields[idx+2:]) {
		key, val, _ := strings.Cut(f, "=")
		switch strings.ToUpper(key) {
		case "ORG":
			v, err := parseInt(val)
			if err != nil {
				return err
			}
			org = section.Set(v)
		case "BANK":
			v, err := parseInt(val)
			if err != nil {
				return err
			}
			bank = section.Set(v)
		case "ALIGN":
			a, ofs, _ := strings.Cut(val, ",")
			n, err := parseInt(a)
			if err != nil {
				return err
			}
			align = uint8(n)
			if ofs != "" {
				o, err := parseInt(ofs)
				if err != nil {
					return err
				}
				alignOfs = o
			}
		}
	}

	if isLoad {
		return ip.engine.SetLoadSection(name, typ, org, bank, align, alignOfs, modifier)
	}
	return ip.engine.NewSection(name, typ, org, bank, align, alignOfs, modifier)
}

func (ip *interpreter) doData(rest string, pt section.PatchType) error {
	for _, f := range splitFields(rest) {
		ex, err := parseExpr(f)
		if err != nil {
			return err
		}
		if err := ip.engine.EmitRelative(pt, ex); err != nil {
			return err
		}
	}
	return nil
}

func (ip *interpreter) doSkip(rest string) error {
	n, err := parseInt(strings.TrimSpace(rest))
	if err != nil {
		return err
	}
	return ip.engine.Skip(n, true)
}

func (ip *interpreter) doAlign(rest string) error {
	a, ofs, _ := strings.Cut(strings.TrimSpace(rest), ",")
	n, err := parseInt(a)
	if err != nil {
		return err
	}
	o := int32(0)
	if ofs != "" {
		o, err = parseInt(ofs)
		if err != nil {
			return err
		}
	}
	return ip.engine.AlignPC(uint8(n), o)
}

func (ip *interpreter) doIncbin(rest string) error {
	fields := splitFields(rest)
	if len(fields) == 0 {
		return fmt.Errorf("INCBIN requires a filename")
	}
	name := strings.Trim(fields[0], `"`)
	start, length := section.Unset, section.Unset
	if len(fields) > 1 {
		v, err := parseInt(fields[1])
		if err != nil {
			return err
		}
		start = section.Set(v)
	}
	if len(fields) > 2 {
		v, err := parseInt(fields[2])
		if err != nil {
			return err
		}
		length = section.Set(v)
	}
	return ip.engine.IncludeBinary(name, start, length)
}

func (ip *interpreter) doPusho(rest string) error {
	n, err := parseInt(strings.TrimSpace(rest))
	if err != nil {
		return err
	}
	ip.engine.PushPadByte(byte(n))
	return nil
}

func parseType(s string) (section.Type, error) {
	switch strings.ToUpper(s) {
	case "ROM0":
		return section.ROM0, nil
	case "ROMX":
		return section.ROMX, nil
	case "VRAM":
		return section.VRAM, nil
	case "SRAM":
		return section.SRAM, nil
	case "WRAM0":
		return section.WRAM0, nil
	case "WRAMX":
		return section.WRAMX, nil
	case "OAM":
		return section.OAM, nil
	case "HRAM":
		return section.HRAM, nil
	default:
		return 0, fmt.Errorf("unknown section type %q", s)
	}
}

func parseInt(s string) (int32, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "$") {
		v, err := strconv.ParseInt(s[1:], 16, 32)
		return int32(v), err
	}
	v, err := strconv.ParseInt(s, 10, 32)
	return int32(v), err
}

func parseExpr(tok string) (expr.Expression, error) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return nil, fmt.Errorf("empty expression")
	}
	if v, err := parseInt(tok); err == nil {
		return expr.Const{V: int64(v)}, nil
	}
	return expr.SymbolRef{Sym: expr.Symbol{Name: tok}}, nil
}

func splitKeyword(line string) (kw, rest string) {
	kw, rest, _ = strings.Cut(line, " ")
	return kw, rest
}

// splitFields splits a comma-separated operand list, trimming
// whitespace around each field; a quoted string's internal commas are
// not special-cased since none of this grammar's string operands
// (section/file names) ever contain one.
func splitFields(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

// isAttributeKey reports whether tok opens a new SECTION/LOAD
// attribute, as opposed to being the tail of the previous one (ALIGN's
// optional ",ofs" continuation, which splitFields has already cut off
// at the comma).
func isAttributeKey(tok string) bool {
	key, _, found := strings.Cut(tok, "=")
	if !found {
		return false
	}
	switch strings.ToUpper(key) {
	case "ORG", "BANK", "ALIGN":
		return true
	default:
		return false
	}
}

// mergeAttributeTokens re-joins a token that isn't itself a new
// attribute back onto the attribute before it, undoing splitFields'
// blind comma split for ALIGN's "n,ofs" form.
func mergeAttributeTokens(tokens []string) []string {
	var out []string
	for _, tok := range tokens {
		if isAttributeKey(tok) || len(out) == 0 {
			out = append(out, tok)
			continue
		}
		out[len(out)-1] += "," + tok
	}
	return out
}

func stripComment(line string) string {
	if i := strings.Index(line, ";"); i >= 0 {
		return line[:i]
	}
	return line
}
