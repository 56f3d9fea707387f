package ccdb

import (
	"context"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ccjpost/internal/model"
	"ccjpost/internal/rewrite"
)

// Progress receives one Add(1) per processed entry. *progressbar.ProgressBar satisfies it.
type Progress interface {
	Add(num int) error
}

// Processor runs the per-entry rewrite over a whole database.
type Processor struct {
	Rules    *rewrite.RuleSet // nil applies only the fixed passes
	Jobs     int              // worker limit, <= 0 means runtime.NumCPU()
	Logger   *zap.Logger
	Progress Progress
}

// Process post-processes every entry in place over a bounded errgroup.
// Positions in the slice never change.
func (p *Processor) Process(ctx context.Context, entries []model.CompileEntry) error {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	jobs := p.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	if p.Rules != nil {
		for _, r := range p.Rules.Skipped {
			logger.Debug("skipping malformed replace rule", zap.String("rule", r))
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i := range entries {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p.Rules.Postprocess(&entries[i])
			if p.Progress != nil {
				_ = p.Progress.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	// the loop may have stopped before scheduling anything
	if err := ctx.Err(); err != nil {
		return err
	}

	logger.Info("entries processed", zap.Int("count", len(entries)), zap.Int("jobs", jobs))
	return nil
}
