package section

import "os"

// IncludeBinary implements INCBIN: read length bytes starting at start
// from name (resolved through the file-stack's include search path)
// and emit them literally into the active data section, per §4.3's
// binary-file inclusion operation. An unset start defaults to 0; an
// unset length defaults to "everything from start to end of file".
func (e *Engine) IncludeBinary(name string, start, length OptInt32) error {
	sec, ok := e.requireDataSection()
	if !ok {
		return nil
	}

	path, found := e.fstack.FindFile(name)
	if !found {
		e.diag.Errorf("INCBIN: file %q not found", name)
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		e.diag.Errorf("INCBIN: %s", err)
		return nil
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		e.diag.Errorf("INCBIN: %s", err)
		return nil
	}

	startOfs := int64(0)
	if s, ok := start.Get(); ok {
		startOfs = int64(s)
	}
	n := info.Size() - startOfs
	if l, ok := length.Get(); ok {
		n = int64(l)
	}
	if startOfs < 0 || n < 0 || startOfs+n > info.Size() {
		e.diag.Errorf("INCBIN: requested range [%d, %d) is outside %q (%d bytes)", startOfs, startOfs+n, name, info.Size())
		return nil
	}

	buf := make([]byte, n)
	if _, err := f.ReadAt(buf, startOfs); err != nil {
		e.diag.Errorf("INCBIN: %s", err)
		return nil
	}

	return e.writeBytes(sec, buf)
}
