package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/danieljhkim/pltsync/internal/analyzer"
	"github.com/danieljhkim/pltsync/internal/fileset"
	"github.com/danieljhkim/pltsync/internal/report"
)

// syncPLT brings one PLT's file set from old to new by running the three
// sync sub-phases in order: remove, check, add. Remove-before-add keeps the
// PLT's working set shrinking before it grows; check runs between them so
// retained entries are re-validated before new ones are layered on. A
// sub-phase with an empty partition is skipped entirely, so the backend is
// never invoked with no work.
func (e *Engine) syncPLT(
	ctx context.Context,
	invoker *analyzer.Invoker,
	reporter *report.Reporter,
	old, new fileset.Set,
	pltPath string,
	getWarnings bool,
) (int, error) {
	remove, check, add := fileset.Partition(old, new)
	e.logger.Debug("plt sync partitions",
		zap.String("plt", pltPath),
		zap.Int("remove", remove.Len()),
		zap.Int("check", check.Len()),
		zap.Int("add", add.Len()),
	)

	steps := []struct {
		phase analyzer.Phase
		files fileset.Set
	}{
		{analyzer.PhaseRemove, remove},
		{analyzer.PhaseCheck, check},
		{analyzer.PhaseAdd, add},
	}

	total := 0
	for _, step := range steps {
		if step.files.Len() == 0 {
			continue
		}
		n, err := e.runPhase(ctx, invoker, reporter, step.phase, step.files, pltPath, pltPath, getWarnings)
		if err != nil {
			return 0, err
		}
		total += n
	}

	return total, nil
}

// runPhase performs one backend invocation and reports its warnings,
// returning the phase's warning count.
func (e *Engine) runPhase(
	ctx context.Context,
	invoker *analyzer.Invoker,
	reporter *report.Reporter,
	phase analyzer.Phase,
	files fileset.Set,
	initPLT, outputPLT string,
	getWarnings bool,
) (int, error) {
	warnings, err := invoker.Run(ctx, phase, files.Sorted(), initPLT, outputPLT, getWarnings)
	if err != nil {
		return 0, err
	}
	return reporter.Report(warnings)
}
