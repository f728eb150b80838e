// =============================================================================
// ReportsImport - Import Command
// =============================================================================
//
// This file wires configuration, logging and the enabled formats into the
// import pipeline for one invocation.
//
// PROCESSING PIPELINE:
//   1. Load configuration (--config, or built-in defaults)
//   2. Set up the console trace logger
//   3. Register the enabled formats
//   4. Run the import
//
// =============================================================================

package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/ginjaninja78/reports-import/internal/config"
	"github.com/ginjaninja78/reports-import/internal/converter"
	"github.com/ginjaninja78/reports-import/internal/ctxlog"
	"github.com/ginjaninja78/reports-import/internal/formats"
	"github.com/ginjaninja78/reports-import/internal/importer"
	"github.com/ginjaninja78/reports-import/internal/xmlwriter"
)

// runImport is the root command's action.
func runImport(cmd *cobra.Command, flags *globalFlags, tokens []string) error {
	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	cfg, err := config.Load(flags.cfgFile)
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 2: TRACING
	// =========================================================================
	// Warnings and errors by default; debug with --verbose.

	level := ctxlog.ParseLevel(cfg.LogLevel)
	if flags.verbose {
		level = zapcore.DebugLevel
	}
	logger := ctxlog.NewConsole(cmd.OutOrStdout(), level)
	defer func() { _ = logger.Sync() }()

	// =========================================================================
	// STEP 3: FORMATS
	// =========================================================================

	reg := converter.NewRegistry()
	if err := formats.Register(reg, cfg); err != nil {
		return err
	}

	writer := xmlwriter.New(xmlwriter.Options{
		Indent:                cfg.Layout.Indent,
		IncludeXMLDeclaration: cfg.IncludeDeclaration(),
	})

	// =========================================================================
	// STEP 4: IMPORT
	// =========================================================================

	_, err = importer.Run(cmd.Context(), tokens, importer.Options{
		Registry: reg,
		Saver:    writer,
		Logger:   logger,
	})
	return err
}

// availableFormats returns the formats enabled by the configuration file, or
// by the defaults when it cannot be loaded.
func availableFormats(cfgFile string) []converter.Format {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		cfg = config.Default()
	}
	return formats.Available(cfg)
}
