package engine

import "fmt"

// PLTCopyError indicates that copying the base PLT onto the project PLT path
// failed. Fatal: the project PLT would otherwise be left in an unknown state.
type PLTCopyError struct {
	Src string
	Dst string
	Err error
}

// Error returns the error message.
func (e *PLTCopyError) Error() string {
	return fmt.Sprintf("failed to copy base plt %s to %s: %v", e.Src, e.Dst, e.Err)
}

// Unwrap returns the underlying error.
func (e *PLTCopyError) Unwrap() error {
	return e.Err
}

// WarningsError reports that a fully successful run produced warnings. It is
// the only "success with caveats" outcome: the pipeline completed and the
// diagnostics are in the output file.
type WarningsError struct {
	Count      int
	OutputPath string
}

// Error returns the error message.
func (e *WarningsError) Error() string {
	return fmt.Sprintf("warnings occurred running dialyzer: %d", e.Count)
}
