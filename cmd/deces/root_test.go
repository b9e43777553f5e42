package main

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/deces/internal/config"
)

// withFlags loads default configuration and applies args as overrides.
func withFlags(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()
	return withEnvAndFlags(t, map[string]string{}, args...)
}

// withEnvAndFlags parses vars without validating, as the root command
// does, and applies args as overrides.
func withEnvAndFlags(t *testing.T, vars map[string]string, args ...string) (*config.Config, error) {
	t.Helper()
	cfg, err := config.ParseFrom(vars)
	if err != nil {
		t.Fatalf("ParseFrom() error = %v", err)
	}

	cmd := &cobra.Command{Use: "deces"}
	var fv flagValues
	bindFlags(cmd, &fv)
	if err := cmd.Flags().Parse(args); err != nil {
		t.Fatalf("Parse(%v) error = %v", args, err)
	}
	return cfg, applyFlags(cmd, cfg, fv)
}

func TestApplyFlags_Unset(t *testing.T) {
	cfg, err := withFlags(t)
	if err != nil {
		t.Fatalf("applyFlags() error = %v", err)
	}
	want, _ := config.LoadFrom(map[string]string{})
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("unset flags changed config (-want +got):\n%s", diff)
	}
}

func TestApplyFlags_Overrides(t *testing.T) {
	cfg, err := withFlags(t,
		"--dir", "/data/deces",
		"--out", "/tmp/out",
		"--names", "Vert, Grandi,Vert",
		"--workers", "8",
		"--row-policy", "lenient",
		"--fail-fast",
	)
	if err != nil {
		t.Fatalf("applyFlags() error = %v", err)
	}

	if cfg.Source.Dir != "/data/deces" || cfg.Output.Dir != "/tmp/out" {
		t.Errorf("dirs = %q, %q", cfg.Source.Dir, cfg.Output.Dir)
	}
	if diff := cmp.Diff([]string{"Vert", "Grandi"}, cfg.Search.FamilyNames); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if cfg.Search.Workers != 8 || cfg.Search.RowPolicy != "lenient" || !cfg.Search.FailFast {
		t.Errorf("search = %+v", cfg.Search)
	}
	if cfg.Source.CantonPath != "csv/canton_2022.csv" {
		t.Errorf("CantonPath = %q, want default", cfg.Source.CantonPath)
	}
}

func TestApplyFlags_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"zero workers", []string{"--workers", "0"}, "WORKERS"},
		{"bad policy", []string{"--row-policy", "loose"}, "ROW_POLICY"},
		{"blank names", []string{"--names", " , "}, "FAMILY_NAMES"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := withFlags(t, tt.args...)
			if err == nil {
				t.Fatal("applyFlags() expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %s", err, tt.want)
			}
		})
	}
}

func TestApplyFlags_FixesInvalidEnv(t *testing.T) {
	vars := map[string]string{"WORKERS": "0", "ROW_POLICY": "loose"}

	cfg, err := withEnvAndFlags(t, vars, "--workers", "4", "--row-policy", "strict")
	if err != nil {
		t.Fatalf("applyFlags() error = %v, want flags to override invalid env", err)
	}
	if cfg.Search.Workers != 4 || cfg.Search.RowPolicy != "strict" {
		t.Errorf("search = %+v", cfg.Search)
	}

	if _, err := withEnvAndFlags(t, vars, "--workers", "4"); err == nil || !strings.Contains(err.Error(), "ROW_POLICY") {
		t.Errorf("applyFlags() error = %v, want the remaining ROW_POLICY failure", err)
	}
}
