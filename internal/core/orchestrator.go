package core

// orchestrator.go fans family-name searches out over a bounded pool.
//
// Each task owns its search and its report end to end. The only state
// shared between tasks is the Source and the Transformer, both read-only,
// so no locking is needed: results are written to distinct slice slots.

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/deces/internal/logging"
)

// DefaultWorkers is the default pool size.
const DefaultWorkers = 4

// Reporter renders the result set of one family name. It returns the
// path written, or "" when nothing remained to report.
type Reporter interface {
	Report(ctx context.Context, rs ResultSet) (string, error)
}

// RunnerConfig holds pool settings.
type RunnerConfig struct {
	Workers int
	// FailFast cancels the batch on the first task error. When false each
	// task failure is isolated in its TaskResult.
	FailFast bool
}

// TaskResult is the outcome of one family name.
type TaskResult struct {
	FamilyName string
	Records    int
	Path       string
	Err        error
	Duration   time.Duration
}

// Written reports whether a report file was produced.
func (r TaskResult) Written() bool {
	return r.Err == nil && r.Path != ""
}

// Runner dispatches one task per family name.
type Runner struct {
	searcher *Searcher
	reporter Reporter
	cfg      RunnerConfig
}

// NewRunner creates a runner. Workers <= 0 uses DefaultWorkers.
func NewRunner(searcher *Searcher, reporter Reporter, cfg RunnerConfig) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	return &Runner{searcher: searcher, reporter: reporter, cfg: cfg}
}

// Run processes names and blocks until every task has finished.
// Results are in the order of names. The error is non-nil only in
// fail-fast mode, where it is the first task failure.
func (r *Runner) Run(ctx context.Context, names []string) ([]TaskResult, error) {
	results := make([]TaskResult, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)

	for i, name := range names {
		g.Go(func() error {
			results[i] = r.process(gctx, name)
			if r.cfg.FailFast && results[i].Err != nil {
				return fmt.Errorf("family name %q: %w", name, results[i].Err)
			}
			return nil
		})
	}

	err := g.Wait()
	return results, err
}

func (r *Runner) process(ctx context.Context, name string) (res TaskResult) {
	ctx = logging.WithFamilyName(ctx, name)
	logger := logging.FromContext(ctx)
	start := time.Now()
	res.FamilyName = name

	defer func() {
		if p := recover(); p != nil {
			res.Err = fmt.Errorf("%w: %v", ErrTaskPanic, p)
		}
		res.Duration = time.Since(start)
		if res.Err != nil {
			info := Describe(res.Err)
			logger.Error("processing failed", "code", info.Code, "error", res.Err)
		}
		logger.Info("processing finished", "records", res.Records, "duration", res.Duration)
	}()

	if err := ctx.Err(); err != nil {
		res.Err = fmt.Errorf("not started: %w", err)
		return res
	}

	logger.Info("processing started")

	rs, err := r.searcher.Search(ctx, name)
	if err != nil {
		res.Err = err
		return res
	}
	res.Records = rs.Len()

	if rs.Empty() {
		logger.Info("no data found", "code", Describe(ErrNoMatches).Code)
		return res
	}

	path, err := r.reporter.Report(ctx, rs)
	if err != nil {
		res.Err = fmt.Errorf("writing report: %w", err)
		return res
	}
	res.Path = path
	logging.WithFields(ctx, "path", path).Debug("report written")
	if path != "" {
		logger.Info("report written", "path", path)
	}
	return res
}

// Summary counts task outcomes.
type Summary struct {
	Written int
	Empty   int
	Failed  int
}

// Summarize tallies results.
func Summarize(results []TaskResult) Summary {
	var s Summary
	for _, r := range results {
		switch {
		case r.Err != nil:
			s.Failed++
		case r.Path != "":
			s.Written++
		default:
			s.Empty++
		}
	}
	return s
}
