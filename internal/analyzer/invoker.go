package analyzer

import (
	"context"

	"go.uber.org/zap"
)

// noWarningFlags disables every optional warning category. PLT-maintenance
// phases run with this set when warning collection is off, so the backend
// cannot unexpectedly surface diagnostics.
var noWarningFlags = []string{
	"no_return",
	"no_unused",
	"no_improper_lists",
	"no_fun_app",
	"no_match",
	"no_opaque",
	"no_fail_call",
	"no_contracts",
	"no_behaviours",
	"no_undefined_callbacks",
}

// NoWarningFlags returns the suppression flag set.
func NoWarningFlags() []string {
	out := make([]string, len(noWarningFlags))
	copy(out, noWarningFlags)
	return out
}

// Invoker normalizes per-phase options for one run and dispatches to the
// backend. It holds run-scoped settings: the enabled warning categories and
// the explicit code search path.
type Invoker struct {
	backend      Backend
	warningFlags []string
	codePath     []string
	logger       *zap.Logger
}

// NewInvoker creates an Invoker for one run.
func NewInvoker(backend Backend, warningFlags, codePath []string, logger *zap.Logger) *Invoker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Invoker{
		backend:      backend,
		warningFlags: warningFlags,
		codePath:     codePath,
		logger:       logger,
	}
}

// Run performs one analysis phase over the given files.
//
// When getWarnings is false the backend is invoked with the full suppression
// set and the returned diagnostics are discarded, so the phase always counts
// zero warnings. The succ_typings phase is always called with getWarnings
// true.
func (i *Invoker) Run(ctx context.Context, phase Phase, files []string, initPLT, outputPLT string, getWarnings bool) ([]string, error) {
	flags := i.warningFlags
	if !getWarnings {
		flags = NoWarningFlags()
	}

	i.logger.Debug("invoking analysis backend",
		zap.String("phase", string(phase)),
		zap.Int("files", len(files)),
		zap.Bool("get_warnings", getWarnings),
	)

	warnings, err := i.backend.Run(ctx, RunRequest{
		Phase:        phase,
		Files:        files,
		InitPLT:      initPLT,
		OutputPLT:    outputPLT,
		GetWarnings:  getWarnings,
		WarningFlags: flags,
		CodePath:     i.codePath,
	})
	if err != nil {
		return nil, err
	}

	if !getWarnings {
		return nil, nil
	}
	return warnings, nil
}
