package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "  ", cfg.Layout.Indent)
	assert.True(t, cfg.IncludeDeclaration())
	assert.Equal(t, BehaviorInsertWarning, cfg.Crystal.UnrecognizedFunctionBehavior)
	assert.Empty(t, cfg.Engines)
	assert.Equal(t, ",", cfg.CSV.Delimiter)
	assert.Equal(t, 1, cfg.CSV.HeaderRows)
	assert.Equal(t, 2, cfg.CSV.DataStartRow)
	assert.True(t, cfg.SheetsAsSubreports())
	assert.True(t, cfg.Enabled("csv"))
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
layout:
  indent: "\t"
  include_declaration: false
crystal:
  unrecognized_function_behavior: ignore
engines:
  crystal:
    command: /opt/engines/crystal
    args: ["{input}"]
formats:
  disabled: [CSV]
csv:
  delimiter: "|"
  header_rows: 2
spreadsheet:
  sheets_as_subreports: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "\t", cfg.Layout.Indent)
	assert.False(t, cfg.IncludeDeclaration())
	assert.Equal(t, "ignore", cfg.Crystal.UnrecognizedFunctionBehavior)

	engine, ok := cfg.Engine(EngineCrystal)
	require.True(t, ok)
	assert.Equal(t, "/opt/engines/crystal", engine.Command)
	assert.Equal(t, []string{"{input}"}, engine.Args)

	_, ok = cfg.Engine(EngineAccess)
	assert.False(t, ok)

	assert.False(t, cfg.Enabled("csv"))
	assert.True(t, cfg.Enabled("spreadsheet"))
	assert.Equal(t, "|", cfg.CSV.Delimiter)
	assert.Equal(t, 3, cfg.CSV.DataStartRow, "data start follows the header rows")
	assert.False(t, cfg.SheetsAsSubreports())
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		message string
	}{
		{name: "bad yaml", content: "log_level: [", message: "failed to parse config file"},
		{name: "bad log level", content: "log_level: loud", message: "log_level"},
		{name: "bad behavior", content: "crystal:\n  unrecognized_function_behavior: Explode", message: "unrecognized_function_behavior"},
		{name: "unknown engine", content: "engines:\n  quark:\n    command: x", message: `unknown engine "quark"`},
		{name: "engine without command", content: "engines:\n  access: {}", message: `engine "access" has no command`},
		{name: "data before header", content: "csv:\n  header_rows: 2\n  data_start_row: 2", message: "data_start_row"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.message)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})
}
