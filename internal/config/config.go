// =============================================================================
// ReportsImport - Configuration Module
// =============================================================================
//
// This module loads the optional tool configuration. Without a configuration
// file every setting takes its default and only the built-in formats are
// enabled; the proprietary formats need an external conversion engine, which
// is configured here.
//
// EXAMPLE (config.yaml):
//
//   log_level: warn
//   layout:
//     indent: "  "
//     include_declaration: true
//   crystal:
//     unrecognized_function_behavior: InsertWarning
//   engines:
//     crystal:
//       command: /opt/engines/crystal-export
//       args: ["--functions={unrecognized_function_behavior}", "{input}"]
//   formats:
//     disabled: [csv]
//   csv:
//     delimiter: ","
//     header_rows: 1
//     data_start_row: 2
//   spreadsheet:
//     sheets_as_subreports: true
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Engine names accepted under "engines".
const (
	EngineAccess        = "access"
	EngineActiveReports = "activereports"
	EngineCrystal       = "crystal"
)

// Unrecognized function behaviors accepted under "crystal".
const (
	BehaviorInsertWarning = "InsertWarning"
	BehaviorIgnore        = "Ignore"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the tool configuration.
type Config struct {
	// LogLevel controls the console trace listener.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "warn"
	LogLevel string `yaml:"log_level"`

	// Layout controls the XML layout files.
	Layout LayoutSettings `yaml:"layout"`

	// Crystal holds defaults for the Crystal Reports format. Command-line
	// sub-arguments of /crystal take precedence.
	Crystal CrystalSettings `yaml:"crystal"`

	// Engines maps an engine name (access, activereports, crystal) to the
	// external program that performs the conversion. A format backed by an
	// engine is only enabled when its engine is configured.
	Engines map[string]EngineSettings `yaml:"engines"`

	// Formats enables and disables formats.
	Formats FormatSettings `yaml:"formats"`

	// CSV contains settings for the delimited-text format.
	CSV CSVSettings `yaml:"csv"`

	// Spreadsheet contains settings for the spreadsheet format.
	Spreadsheet SpreadsheetSettings `yaml:"spreadsheet"`
}

// LayoutSettings controls the generated XML.
type LayoutSettings struct {
	// Indent is the indentation string.
	// Default: "  "
	Indent string `yaml:"indent"`

	// IncludeDeclaration writes the <?xml ...?> declaration.
	// Default: true
	IncludeDeclaration *bool `yaml:"include_declaration"`
}

// CrystalSettings holds Crystal Reports defaults.
type CrystalSettings struct {
	// UnrecognizedFunctionBehavior is used when /crystal does not set one.
	// Valid values: "InsertWarning", "Ignore"
	// Default: "InsertWarning"
	UnrecognizedFunctionBehavior string `yaml:"unrecognized_function_behavior"`
}

// EngineSettings describes an external conversion engine.
type EngineSettings struct {
	// Command is the engine executable.
	Command string `yaml:"command"`

	// Args are passed to the engine. Placeholders:
	//   {input}                          - Absolute path of the input file
	//   {output}                         - The /out path
	//   {unrecognized_function_behavior} - Crystal only
	// When no argument contains {input}, the input path is appended.
	Args []string `yaml:"args"`

	// Env adds KEY=VALUE entries to the engine environment.
	Env []string `yaml:"env"`
}

// FormatSettings enables and disables formats.
type FormatSettings struct {
	// Disabled lists format names that are not offered even when available.
	// Names: access, activereports, crystal, spreadsheet, csv
	Disabled []string `yaml:"disabled"`
}

// CSVSettings contains settings for parsing delimited-text reports.
type CSVSettings struct {
	// Delimiter is the character used to separate fields.
	// Common values: "," (comma), "|" (pipe), "\t" or "tab"
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// HeaderRows is the number of header rows. Multi-row headers are merged
	// into one caption per column.
	// Default: 1
	HeaderRows int `yaml:"header_rows"`

	// DataStartRow is the 1-indexed row where sample data begins. Sample rows
	// are only used to detect the column count.
	// Default: HeaderRows + 1
	DataStartRow int `yaml:"data_start_row"`
}

// SpreadsheetSettings contains settings for workbook reports.
type SpreadsheetSettings struct {
	// SheetsAsSubreports turns every sheet after the first into a subreport
	// written to its own file. When false, further sheets are ignored.
	// Default: true
	SheetsAsSubreports *bool `yaml:"sheets_as_subreports"`
}

// =============================================================================
// LOADING
// =============================================================================

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the configuration file at path. An empty path returns Default.
//
// PARAMETERS:
//   - path: The path to the YAML configuration file, or "".
//
// RETURNS:
//   - The configuration with defaults applied.
//   - An error if the file cannot be read, parsed or validated.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if cfg.Layout.Indent == "" {
		cfg.Layout.Indent = "  "
	}
	if cfg.Layout.IncludeDeclaration == nil {
		cfg.Layout.IncludeDeclaration = boolPtr(true)
	}
	if cfg.Crystal.UnrecognizedFunctionBehavior == "" {
		cfg.Crystal.UnrecognizedFunctionBehavior = BehaviorInsertWarning
	}
	if cfg.Engines == nil {
		cfg.Engines = make(map[string]EngineSettings)
	}
	if cfg.CSV.Delimiter == "" {
		cfg.CSV.Delimiter = ","
	}
	if cfg.CSV.HeaderRows == 0 {
		cfg.CSV.HeaderRows = 1
	}
	if cfg.CSV.DataStartRow == 0 {
		cfg.CSV.DataStartRow = cfg.CSV.HeaderRows + 1
	}
	if cfg.Spreadsheet.SheetsAsSubreports == nil {
		cfg.Spreadsheet.SheetsAsSubreports = boolPtr(true)
	}
}

// validate checks values that have no sensible fallback.
func validate(cfg *Config) error {
	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q is not one of debug, info, warn, error", cfg.LogLevel)
	}

	switch {
	case strings.EqualFold(cfg.Crystal.UnrecognizedFunctionBehavior, BehaviorInsertWarning),
		strings.EqualFold(cfg.Crystal.UnrecognizedFunctionBehavior, BehaviorIgnore):
	default:
		return fmt.Errorf("crystal.unrecognized_function_behavior %q is not one of %s, %s",
			cfg.Crystal.UnrecognizedFunctionBehavior, BehaviorInsertWarning, BehaviorIgnore)
	}

	for name, engine := range cfg.Engines {
		switch name {
		case EngineAccess, EngineActiveReports, EngineCrystal:
		default:
			return fmt.Errorf("unknown engine %q", name)
		}
		if engine.Command == "" {
			return fmt.Errorf("engine %q has no command", name)
		}
	}

	if cfg.CSV.HeaderRows < 1 {
		return fmt.Errorf("csv.header_rows must be at least 1")
	}
	if cfg.CSV.DataStartRow <= cfg.CSV.HeaderRows {
		return fmt.Errorf("csv.data_start_row must come after the header rows")
	}

	return nil
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Engine returns the engine configured under name.
func (c *Config) Engine(name string) (EngineSettings, bool) {
	engine, ok := c.Engines[name]
	return engine, ok
}

// Enabled reports whether the named format is not disabled.
func (c *Config) Enabled(format string) bool {
	for _, disabled := range c.Formats.Disabled {
		if strings.EqualFold(disabled, format) {
			return false
		}
	}
	return true
}

// IncludeDeclaration reports whether layouts start with an XML declaration.
func (c *Config) IncludeDeclaration() bool {
	return c.Layout.IncludeDeclaration == nil || *c.Layout.IncludeDeclaration
}

// SheetsAsSubreports reports whether extra workbook sheets become subreports.
func (c *Config) SheetsAsSubreports() bool {
	return c.Spreadsheet.SheetsAsSubreports == nil || *c.Spreadsheet.SheetsAsSubreports
}

func boolPtr(b bool) *bool {
	return &b
}
