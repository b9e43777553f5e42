package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Load reads configuration from the process environment.
// It applies defaults for unset values and validates the result.
func Load() (*Config, error) {
	return validated(Parse())
}

// LoadFrom reads configuration from the given variables instead of the
// process environment. Unset variables take their defaults.
func LoadFrom(vars map[string]string) (*Config, error) {
	return validated(ParseFrom(vars))
}

// Parse reads the process environment without validating, for callers
// that apply further overrides first.
func Parse() (*Config, error) {
	return parse(env.Options{})
}

// ParseFrom is Parse over the given variables.
func ParseFrom(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}

	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}
	cfg.Search.FamilyNames = cleanList(cfg.Search.FamilyNames)

	return cfg, nil
}

func validated(cfg *Config, err error) (*Config, error) {
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// cleanList trims entries and drops blanks and repeats, keeping first order.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// SetFamilyNames replaces the batch with a comma-separated list.
func (c *Config) SetFamilyNames(list string) {
	c.Search.FamilyNames = cleanList(strings.Split(list, ","))
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.Source.Dir) == "" {
		errs = append(errs, "SOURCE_DIR is required")
	}
	if strings.TrimSpace(c.Source.CantonPath) == "" {
		errs = append(errs, "CANTON_PATH is required")
	}
	if strings.TrimSpace(c.Source.CommunesPath) == "" {
		errs = append(errs, "COMMUNES_PATH is required")
	}
	if strings.TrimSpace(c.Output.Dir) == "" {
		errs = append(errs, "OUTPUT_DIR is required")
	}
	if strings.TrimSpace(c.Output.Locale) == "" {
		errs = append(errs, "CALENDAR_LOCALE is required")
	}

	if len(c.Search.FamilyNames) == 0 {
		errs = append(errs, "FAMILY_NAMES must list at least one name")
	}
	if c.Search.Workers <= 0 {
		errs = append(errs, fmt.Sprintf("WORKERS (%d) must be positive", c.Search.Workers))
	}

	validPolicies := map[string]bool{"strict": true, "lenient": true}
	if !validPolicies[strings.ToLower(c.Search.RowPolicy)] {
		errs = append(errs, fmt.Sprintf("ROW_POLICY (%q) must be one of: strict, lenient", c.Search.RowPolicy))
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a compact representation of the config for logging.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Source: {Dir: %q, Canton: %q, Communes: %q, Preload: %v}, ",
		c.Source.Dir, c.Source.CantonPath, c.Source.CommunesPath, c.Source.Preload))
	b.WriteString(fmt.Sprintf("Search: {Names: %d, Workers: %d, RowPolicy: %q, FailFast: %v}, ",
		len(c.Search.FamilyNames), c.Search.Workers, c.Search.RowPolicy, c.Search.FailFast))
	b.WriteString(fmt.Sprintf("Output: {Dir: %q, Locale: %q}, ", c.Output.Dir, c.Output.Locale))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}",
		c.Logging.Level, c.Logging.Format))
	b.WriteString("}")
	return b.String()
}
