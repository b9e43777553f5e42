// Package config provides centralized configuration management for a search run.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

// Config holds all run configuration.
// All settings can be configured via environment variables and are fixed
// for the lifetime of the run.
type Config struct {
	Source  SourceConfig
	Search  SearchConfig
	Output  OutputConfig
	Logging LoggingConfig
}

// SourceConfig holds the input locations.
type SourceConfig struct {
	// Dir is the directory holding the death-record CSV extracts (default: ./deces)
	Dir string `env:"SOURCE_DIR" envDefault:"./deces"`

	// CantonPath is the fine-grained reference table (default: csv/canton_2022.csv)
	CantonPath string `env:"CANTON_PATH" envDefault:"csv/canton_2022.csv"`

	// CommunesPath is the coarse-grained reference table (default: csv/communes1943_2022.csv)
	CommunesPath string `env:"COMMUNES_PATH" envDefault:"csv/communes1943_2022.csv"`

	// Preload parses the source directory once and shares it across workers (default: true)
	Preload bool `env:"PRELOAD_SOURCES" envDefault:"true"`
}

// SearchConfig holds the batch definition.
type SearchConfig struct {
	// FamilyNames is a comma-separated list of family names to search for
	FamilyNames []string `env:"FAMILY_NAMES" envDefault:"Detronde,Marchand,Vert,Roturier,Grandi" envSeparator:","`

	// Workers is the size of the worker pool (default: 4)
	Workers int `env:"WORKERS" envDefault:"4"`

	// RowPolicy is how field failures are handled: strict or lenient (default: strict)
	RowPolicy string `env:"ROW_POLICY" envDefault:"strict"`

	// FailFast aborts the batch on the first failing family name (default: false)
	FailFast bool `env:"FAIL_FAST" envDefault:"false"`
}

// OutputConfig holds report settings.
type OutputConfig struct {
	// Dir is where spreadsheets are written (default: xlsx)
	Dir string `env:"OUTPUT_DIR" envDefault:"xlsx"`

	// Locale is the calendar locale used for dates (default: fr_FR)
	Locale string `env:"CALENDAR_LOCALE" envDefault:"fr_FR"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" envDefault:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}
