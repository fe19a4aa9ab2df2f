// Package diag is the diagnostic sink consumed by the section engine.
//
// It mirrors the severity model flapc's CLI uses for its own errors:
// warnings never change control flow, errors are reported and the
// caller keeps going, and fatal halts the run after the message has
// been flushed.
package diag

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Kind categorizes a warning. New kinds are appended, never renumbered,
// since callers may compare against them.
type Kind int

const (
	KindUnterminatedLoad Kind = iota
	KindEmptyDataDirective
	KindUnmatchedDirective
	KindBackwardsFor
	KindObsoleteDirective
)

func (k Kind) String() string {
	switch k {
	case KindUnterminatedLoad:
		return "unterminated LOAD block"
	case KindEmptyDataDirective:
		return "empty data directive"
	case KindUnmatchedDirective:
		return "unmatched directive"
	case KindBackwardsFor:
		return "backwards iteration"
	case KindObsoleteDirective:
		return "obsolete directive"
	default:
		return "warning"
	}
}

// Sink is the interface the section engine reports diagnostics
// through. Fatalf only formats and records the message; it never halts
// anything itself. The engine's own fatal conditions always also
// return a *section.FatalError value alongside the Fatalf call, and it
// is that return value — checked with errors.As — that the caller
// uses to stop the run.
type Sink interface {
	Errorf(format string, args ...any)
	Warningf(kind Kind, format string, args ...any)
	Fatalf(format string, args ...any)

	// ErrorCount returns the number of Errorf calls made so far, used
	// at end-of-input to decide the process exit code.
	ErrorCount() int
}

// StderrSink formats diagnostics the way flapc's Emit path formats its
// trace output: straight to an io.Writer, one line per call.
type StderrSink struct {
	mu     sync.Mutex
	w      io.Writer
	errors int
}

// NewStderrSink returns a Sink writing to os.Stderr.
func NewStderrSink() *StderrSink {
	return &StderrSink{w: os.Stderr}
}

// NewSink returns a Sink writing to an arbitrary writer, useful for
// tests that want to inspect the formatted text.
func NewSink(w io.Writer) *StderrSink {
	return &StderrSink{w: w}
}

func (s *StderrSink) Errorf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors++
	fmt.Fprintf(s.w, "error: %s\n", fmt.Sprintf(format, args...))
}

func (s *StderrSink) Warningf(kind Kind, format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "warning: [%s] %s\n", kind, fmt.Sprintf(format, args...))
}

func (s *StderrSink) Fatalf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "FATAL: %s\n", fmt.Sprintf(format, args...))
}

func (s *StderrSink) ErrorCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errors
}
