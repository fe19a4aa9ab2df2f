// Package objwriter serializes a finished section.Registry to a
// simple binary object format, the way flapc's codegen_elf_writer.go
// walks its own in-memory model and writes it out with
// encoding/binary — without any of ELF's section-header/segment
// machinery, since the section engine's own notion of a "section" is
// already the unit this format stores.
package objwriter

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ashgb/gbsect/section"
)

const magic = "GBOB"
const version = uint8(1)

// Write serializes every section in reg, in registry order, to w.
//
// Layout (all integers little-endian):
//
//	magic      [4]byte  "GBOB"
//	version    uint8
//	count      uint32
//	count * {
//	    nameLen   uint16
//	    name      [nameLen]byte
//	    type      uint8
//	    modifier  uint8
//	    size      int32
//	    hasOrg    uint8
//	    org       int32 (present only if hasOrg)
//	    hasBank   uint8
//	    bank      int32 (present only if hasBank)
//	    align     uint8
//	    alignOfs  int32
//	    dataLen   uint32
//	    data      [dataLen]byte
//	    patchCount uint32
//	    patchCount * {
//	        patchType    uint8
//	        outputOffset int32
//	        pcShift      int32
//	    }
//	}
func Write(w io.Writer, reg *section.Registry) error {
	if _, err := io.WriteString(w, magic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, version); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(reg.Count())); err != nil {
		return err
	}

	var writeErr error
	reg.ForEach(func(s *section.Section) {
		if writeErr != nil {
			return
		}
		writeErr = writeSection(w, s)
	})
	return writeErr
}

func writeSection(w io.Writer, s *section.Section) error {
	if err := writeString(w, s.Name); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint8(s.Type)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint8(s.Modifier)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, s.Size); err != nil {
		return err
	}
	if err := writeOptInt32(w, s.Org); err != nil {
		return err
	}
	if err := writeOptInt32(w, s.Bank); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, s.Align); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, s.AlignOfs); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s.Data))); err != nil {
		return err
	}
	if len(s.Data) > 0 {
		if _, err := w.Write(s.Data); err != nil {
			return err
		}
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s.Patches))); err != nil {
		return err
	}
	for _, p := range s.Patches {
		if err := binary.Write(w, binary.LittleEndian, uint8(p.Type)); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, p.OutputOffset); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, p.PCShift); err != nil {
			return err
		}
	}
	return nil
}

func writeString(w io.Writer, s string) error {
	if len(s) > 0xFFFF {
		return fmt.Errorf("objwriter: name %q exceeds the 64KiB field limit", s)
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func writeOptInt32(w io.Writer, v section.OptInt32) error {
	val, ok := v.Get()
	present := uint8(0)
	if ok {
		present = 1
	}
	if err := binary.Write(w, binary.LittleEndian, present); err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return binary.Write(w, binary.LittleEndian, val)
}
