package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/deces/internal/application"
	"github.com/JonMunkholm/deces/internal/config"
	"github.com/JonMunkholm/deces/internal/core"
	"github.com/JonMunkholm/deces/internal/logging"
)

type flagValues struct {
	dir       string
	canton    string
	communes  string
	out       string
	names     string
	workers   int
	locale    string
	rowPolicy string
	failFast  bool
}

func newRootCmd() *cobra.Command {
	var fv flagValues

	cmd := &cobra.Command{
		Use:   "deces",
		Short: "Search death-record extracts for family names",
		Long: `Scan every CSV extract of the source directory for the configured
family names and write one spreadsheet per name with matches.

Settings come from the environment (and an optional .env file);
flags override them.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Parse()
			if err != nil {
				return err
			}
			if err := applyFlags(cmd, cfg, fv); err != nil {
				return err
			}
			return run(cmd, cfg)
		},
	}

	bindFlags(cmd, &fv)

	return cmd
}

// bindFlags registers the override flags of cmd into fv.
func bindFlags(cmd *cobra.Command, fv *flagValues) {
	f := cmd.Flags()
	f.StringVar(&fv.dir, "dir", "", "source directory (SOURCE_DIR)")
	f.StringVar(&fv.canton, "canton", "", "canton reference file (CANTON_PATH)")
	f.StringVar(&fv.communes, "communes", "", "commune reference file (COMMUNES_PATH)")
	f.StringVar(&fv.out, "out", "", "output directory (OUTPUT_DIR)")
	f.StringVar(&fv.names, "names", "", "comma-separated family names (FAMILY_NAMES)")
	f.IntVar(&fv.workers, "workers", 0, "worker pool size (WORKERS)")
	f.StringVar(&fv.locale, "locale", "", "calendar locale (CALENDAR_LOCALE)")
	f.StringVar(&fv.rowPolicy, "row-policy", "", "strict or lenient (ROW_POLICY)")
	f.BoolVar(&fv.failFast, "fail-fast", false, "abort on the first failing name (FAIL_FAST)")
}

// applyFlags overrides cfg with the flags set on the command line, then
// validates the result.
func applyFlags(cmd *cobra.Command, cfg *config.Config, fv flagValues) error {
	f := cmd.Flags()
	if f.Changed("dir") {
		cfg.Source.Dir = fv.dir
	}
	if f.Changed("canton") {
		cfg.Source.CantonPath = fv.canton
	}
	if f.Changed("communes") {
		cfg.Source.CommunesPath = fv.communes
	}
	if f.Changed("out") {
		cfg.Output.Dir = fv.out
	}
	if f.Changed("names") {
		cfg.SetFamilyNames(fv.names)
	}
	if f.Changed("workers") {
		cfg.Search.Workers = fv.workers
	}
	if f.Changed("locale") {
		cfg.Output.Locale = fv.locale
	}
	if f.Changed("row-policy") {
		cfg.Search.RowPolicy = fv.rowPolicy
	}
	if f.Changed("fail-fast") {
		cfg.Search.FailFast = fv.failFast
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	return nil
}

func run(cmd *cobra.Command, cfg *config.Config) error {
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	runID := uuid.NewString()
	ctx := logging.WithRunID(cmd.Context(), runID)
	logger := logging.FromContext(ctx)

	logger.Info("configuration loaded", "config", cfg.String())

	results, err := application.Run(ctx, cfg)
	if err != nil {
		logger.Error("run failed", "code", core.Describe(err).Code, "error", err)
		return err
	}

	sum := core.Summarize(results)
	logger.Info("run finished",
		"written", sum.Written,
		"empty", sum.Empty,
		"failed", sum.Failed,
	)
	if sum.Failed > 0 {
		return fmt.Errorf("%d of %d family names failed", sum.Failed, len(results))
	}
	return nil
}
