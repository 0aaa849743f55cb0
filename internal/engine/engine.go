// Package engine provides the core orchestration logic for pltsync runs.
//
// The engine is the state machine that sequences base-PLT construction,
// project-PLT synchronization, and the final whole-project success-typing
// pass into one restartable pipeline with aggregated warning accounting.
//
// Key components:
//   - Engine: orchestrator composing the resolver, backend, and reporter
//   - Analyze: the run's entire control flow (see analyze.go)
//   - syncPLT: the remove/check/add diff algorithm (see sync.go)
package engine

import (
	"io"

	"go.uber.org/zap"

	"github.com/danieljhkim/pltsync/internal/analyzer"
	"github.com/danieljhkim/pltsync/internal/clock"
	"github.com/danieljhkim/pltsync/internal/fsops"
	"github.com/danieljhkim/pltsync/internal/manifest"
)

// Engine orchestrates PLT maintenance and analysis.
// It is the main API surface called by the CLI.
type Engine struct {
	backend  analyzer.Backend
	resolver *manifest.Resolver
	fs       fsops.FS
	clock    clock.Clock
	console  io.Writer
	logger   *zap.Logger
}

// New creates a new Engine with the given dependencies. Warning lines are
// echoed to console as they are produced.
func New(
	backend analyzer.Backend,
	resolver *manifest.Resolver,
	fs fsops.FS,
	clk clock.Clock,
	console io.Writer,
	logger *zap.Logger,
) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		backend:  backend,
		resolver: resolver,
		fs:       fs,
		clock:    clk,
		console:  console,
		logger:   logger,
	}
}
