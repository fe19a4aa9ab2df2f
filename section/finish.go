package section

// Finish implements the SUPPLEMENTED FEATURES "checkSizes() at
// finalization" behavior: once the caller has processed every
// directive, it reports every section that grew past its type's
// maximum size as an error (one Errorf per offender) and returns a
// *FatalError summarizing the count if any were found, matching the
// accumulate-then-summarize shape the Constraint Merger already uses.
func (e *Engine) Finish() error {
	msgs := e.registry.CheckSizes()
	if len(msgs) == 0 {
		return nil
	}
	for _, msg := range msgs {
		e.diag.Errorf("%s", msg)
	}
	summary := "one or more sections exceed their maximum size"
	e.diag.Fatalf("%s", summary)
	return &FatalError{Message: summary}
}
