// Package analyzer wraps the external Dialyzer analysis backend.
//
// The backend is an opaque capability: given a PLT path, a set of compiled
// files, and a phase mode it returns raw diagnostics and/or mutates the PLT on
// disk. This package owns the per-phase option assembly (warning gating, code
// path, consistency-check suppression) and is the only place allowed to mutate
// a PLT.
//
// Key components:
//   - Backend: interface over the external analyzer (real impl shells out to dialyzer)
//   - Invoker: normalizes per-phase options and enforces warning gating
//   - FakeBackend: in-memory implementation for tests
package analyzer

import (
	"context"
	"errors"
	"fmt"

	"github.com/danieljhkim/pltsync/internal/fileset"
)

// Phase identifies one analysis mode.
type Phase string

// Analysis phases. The three middle ones are the PLT sync sub-phases; build
// bootstraps a PLT from nothing and succ_typings is the final whole-project
// pass.
const (
	PhaseBuild       Phase = "build"
	PhaseAdd         Phase = "add"
	PhaseRemove      Phase = "remove"
	PhaseCheck       Phase = "check"
	PhaseSuccTypings Phase = "succ_typings"
)

// ErrNoPLT indicates the queried PLT file does not exist yet.
var ErrNoPLT = errors.New("plt does not exist")

// PLTReadError indicates a PLT file that exists but could not be read.
// Automatic recovery would silently discard analysis history, so this is
// fatal for the run.
type PLTReadError struct {
	Path string
	Err  error
}

// Error returns the error message.
func (e *PLTReadError) Error() string {
	return fmt.Sprintf("failed to read plt %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *PLTReadError) Unwrap() error {
	return e.Err
}

// RunRequest carries everything the backend needs for one analysis call.
type RunRequest struct {
	// Phase is the analysis mode.
	Phase Phase

	// Files is the sorted list of compiled-object files participating in
	// this phase. Never empty: callers skip phases with no work.
	Files []string

	// InitPLT is the PLT to start from. Empty for the build phase.
	InitPLT string

	// OutputPLT is the PLT the backend writes to.
	OutputPLT string

	// GetWarnings requests diagnostic emission from the backend.
	GetWarnings bool

	// WarningFlags is the warning-category flag set passed to the backend:
	// the enabled categories when warnings are requested, the full
	// suppression set otherwise.
	WarningFlags []string

	// CodePath is the list of directories the backend adds to its code
	// search path. Passed explicitly per call; no process-wide state.
	CodePath []string
}

// Backend provides an abstraction over the external analysis capability.
type Backend interface {
	// OTPVersion returns the runtime version used in PLT and output file
	// names.
	OTPVersion(ctx context.Context) (string, error)

	// PLTFiles returns the set of files the PLT at pltPath currently
	// contains. Returns ErrNoPLT if the PLT does not exist and a
	// PLTReadError if it exists but cannot be read.
	PLTFiles(ctx context.Context, pltPath string) (fileset.Set, error)

	// Run performs one analysis call, returning raw diagnostic lines.
	// Mutating phases update the PLT at req.OutputPLT on disk.
	Run(ctx context.Context, req RunRequest) ([]string, error)
}
