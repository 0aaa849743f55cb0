package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/danieljhkim/pltsync/internal/analyzer"
	"github.com/danieljhkim/pltsync/internal/config"
	"github.com/danieljhkim/pltsync/internal/fileset"
	"github.com/danieljhkim/pltsync/internal/manifest"
	"github.com/danieljhkim/pltsync/internal/report"
)

// Analyze runs the full pipeline: project-PLT update (building the shared
// base PLT first when the project PLT does not exist yet), then the
// whole-project success-typing pass. Warnings from every invoked phase
// accumulate into the run's output file and total.
//
// A total above zero is reported as a WarningsError after all phases
// complete; any other error is fatal and aborts the remaining phases
// immediately.
func (e *Engine) Analyze(ctx context.Context, req *AnalyzeRequest) (*AnalyzeResult, error) {
	opts := req.Opts
	if opts == nil {
		opts = config.DefaultOptions()
	}

	start := e.clock.Now()

	otpVersion, err := e.backend.OTPVersion(ctx)
	if err != nil {
		return nil, err
	}

	projPLT := opts.ProjectPLTPath(req.BaseDir, otpVersion)
	basePLT, err := opts.BasePLTPath(otpVersion)
	if err != nil {
		return nil, err
	}

	result := &AnalyzeResult{
		OTPVersion: otpVersion,
		ProjectPLT: projPLT,
		BasePLT:    basePLT,
		OutputPath: config.OutputPath(req.BaseDir, otpVersion),
	}

	// Run-scoped finalizer: executes exactly once no matter where the run
	// stops, fatal error paths included.
	defer func() {
		result.Elapsed = e.clock.Now().Sub(start)
		e.logger.Debug("run finished",
			zap.Duration("elapsed", result.Elapsed),
			zap.Int("total_warnings", result.TotalWarnings),
		)
	}()

	reporter := report.NewReporter(e.console, result.OutputPath)
	if err := reporter.Init(); err != nil {
		return nil, err
	}

	invoker := analyzer.NewInvoker(e.backend, opts.Warnings, req.CodePath, e.logger)

	if opts.UpdatePLT {
		n, err := e.updateProjectPLT(ctx, invoker, reporter, req, opts, projPLT, basePLT)
		if err != nil {
			return nil, err
		}
		result.SyncWarnings = n
	} else {
		e.logger.Debug("plt update disabled, skipping synchronization")
	}

	if opts.SuccTypings {
		files := manifest.ProjectFiles(req.ProjectApps)
		e.logger.Debug("running success typing analysis", zap.Int("files", files.Len()))

		// The final pass always requests warnings, independent of the
		// get_warnings setting that gates the sync phases.
		n, err := e.runPhase(ctx, invoker, reporter, analyzer.PhaseSuccTypings, files, projPLT, projPLT, true)
		if err != nil {
			return nil, err
		}
		result.SuccWarnings = n
	} else {
		e.logger.Debug("success typing disabled, skipping analysis")
	}

	result.TotalWarnings = result.SyncWarnings + result.SuccWarnings
	if result.TotalWarnings > 0 {
		return result, &WarningsError{Count: result.TotalWarnings, OutputPath: result.OutputPath}
	}
	return result, nil
}

// updateProjectPLT brings the project PLT's file set in line with what the
// project's dependencies currently require.
func (e *Engine) updateProjectPLT(
	ctx context.Context,
	invoker *analyzer.Invoker,
	reporter *report.Reporter,
	req *AnalyzeRequest,
	opts *config.Options,
	projPLT, basePLT string,
) (int, error) {
	names := make([]string, 0, len(req.DepApps)+len(opts.PLTExtraApps))
	names = append(names, req.DepApps...)
	names = append(names, opts.PLTExtraApps...)

	required, err := e.resolver.Resolve(names, req.ProjectApps)
	if err != nil {
		return 0, err
	}

	old, err := e.backend.PLTFiles(ctx, projPLT)
	switch {
	case err == nil:
		e.logger.Debug("updating existing project plt", zap.String("plt", projPLT))
		return e.syncPLT(ctx, invoker, reporter, old, required, projPLT, opts.GetWarnings)
	case errors.Is(err, analyzer.ErrNoPLT):
		return e.buildFromBase(ctx, invoker, reporter, opts, required, projPLT, basePLT)
	default:
		return 0, err
	}
}

// buildFromBase updates or builds the shared base PLT, copies it onto the
// project PLT path, and syncs the fresh copy up to the project's required
// set. The copy's known content is exactly the base's required set, so that
// pair seeds the project sync.
func (e *Engine) buildFromBase(
	ctx context.Context,
	invoker *analyzer.Invoker,
	reporter *report.Reporter,
	opts *config.Options,
	required fileset.Set,
	projPLT, basePLT string,
) (int, error) {
	baseRequired, err := e.resolver.Resolve(opts.BasePLTApps, nil)
	if err != nil {
		return 0, err
	}

	total := 0
	baseOld, err := e.backend.PLTFiles(ctx, basePLT)
	switch {
	case err == nil:
		e.logger.Debug("updating existing base plt", zap.String("plt", basePLT))
		n, err := e.syncPLT(ctx, invoker, reporter, baseOld, baseRequired, basePLT, opts.GetWarnings)
		if err != nil {
			return 0, err
		}
		total += n
	case errors.Is(err, analyzer.ErrNoPLT):
		e.logger.Debug("building base plt", zap.String("plt", basePLT), zap.Int("files", baseRequired.Len()))
		if err := e.fs.MkdirAll(filepath.Dir(basePLT), 0755); err != nil {
			return 0, fmt.Errorf("failed to create base plt directory: %w", err)
		}
		n, err := e.runPhase(ctx, invoker, reporter, analyzer.PhaseBuild, baseRequired, "", basePLT, opts.GetWarnings)
		if err != nil {
			return 0, err
		}
		total += n
	default:
		return 0, err
	}

	if err := e.fs.MkdirAll(filepath.Dir(projPLT), 0755); err != nil {
		return 0, &PLTCopyError{Src: basePLT, Dst: projPLT, Err: err}
	}
	if err := e.fs.CopyFile(basePLT, projPLT); err != nil {
		return 0, &PLTCopyError{Src: basePLT, Dst: projPLT, Err: err}
	}
	e.logger.Debug("copied base plt to project plt", zap.String("src", basePLT), zap.String("dst", projPLT))

	n, err := e.syncPLT(ctx, invoker, reporter, baseRequired, required, projPLT, opts.GetWarnings)
	if err != nil {
		return 0, err
	}
	return total + n, nil
}
