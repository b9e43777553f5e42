// Package application wires configuration into a complete search run.
package application

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/deces/internal/config"
	"github.com/JonMunkholm/deces/internal/core"
	"github.com/JonMunkholm/deces/internal/locale"
	"github.com/JonMunkholm/deces/internal/logging"
	"github.com/JonMunkholm/deces/internal/report"
)

// Run executes one batch described by cfg.
//
// Startup failures (missing source directory, unusable reference tables,
// bad locale or row policy) are returned as errors before any task runs.
// After that, per-name outcomes are reported through the results; the
// error is non-nil only when cfg.Search.FailFast aborted the batch.
func Run(ctx context.Context, cfg *config.Config) ([]core.TaskResult, error) {
	logger := logging.FromContext(ctx)

	if err := core.CheckSourceDir(cfg.Source.Dir); err != nil {
		return nil, err
	}

	cal, err := locale.New(cfg.Output.Locale)
	if err != nil {
		return nil, err
	}
	logger.Debug("calendar selected", "locale", cfg.Output.Locale, "language", cal.Tag().String())

	policy, err := core.ParseRowPolicy(cfg.Search.RowPolicy)
	if err != nil {
		return nil, err
	}

	refs, err := core.LoadReferences(cfg.Source.CantonPath, cfg.Source.CommunesPath)
	if err != nil {
		return nil, err
	}
	cantons, communes := refs.Sizes()
	logger.Info("reference tables loaded", "cantons", cantons, "communes", communes)

	source, err := newSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	transformer := core.NewTransformer(refs, cal, policy)
	runner := core.NewRunner(
		core.NewSearcher(source, transformer),
		report.NewWriter(cfg.Output.Dir, cal),
		core.RunnerConfig{Workers: cfg.Search.Workers, FailFast: cfg.Search.FailFast},
	)

	results, err := runner.Run(ctx, cfg.Search.FamilyNames)
	if err != nil {
		return results, fmt.Errorf("batch aborted: %w", err)
	}
	return results, nil
}

func newSource(ctx context.Context, cfg *config.Config) (core.Source, error) {
	if !cfg.Source.Preload {
		return core.DirSource{Dir: cfg.Source.Dir}, nil
	}

	snapshot, err := core.LoadSnapshot(ctx, cfg.Source.Dir)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info("source directory loaded",
		"files", snapshot.Files(),
		"rows", snapshot.Rows(),
	)
	return snapshot, nil
}
