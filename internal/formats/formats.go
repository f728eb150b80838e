// =============================================================================
// ReportsImport - Formats
// =============================================================================
//
// This module assembles the formats a run can convert. Which formats are
// available depends on configuration:
//
//   FORMAT          EXTENSIONS      BACKED BY                 SUBREPORTS
//   access          .mdb .mde       external engine           no
//   activereports   .rpx            external engine           no
//   crystal         .rpt            external engine           yes
//   spreadsheet     .xlsx .xlsm     built in (excelize)       yes
//   csv             .csv .tsv       built in (encoding/csv)   no
//
// Engine-backed formats are offered only when their engine is configured.
// Any format can be switched off with formats.disabled.
//
// =============================================================================

package formats

import (
	"github.com/ginjaninja78/reports-import/internal/config"
	"github.com/ginjaninja78/reports-import/internal/converter"
	"github.com/ginjaninja78/reports-import/internal/engine"
)

// Format names.
const (
	NameAccess        = config.EngineAccess
	NameActiveReports = config.EngineActiveReports
	NameCrystal       = config.EngineCrystal
	NameSpreadsheet   = "spreadsheet"
	NameCSV           = "csv"
)

// Available returns the formats enabled by cfg, in help-text order.
func Available(cfg *config.Config) []converter.Format {
	var candidates []converter.Format

	if settings, ok := cfg.Engine(config.EngineAccess); ok {
		candidates = append(candidates, Access(settings))
	}
	if settings, ok := cfg.Engine(config.EngineActiveReports); ok {
		candidates = append(candidates, ActiveReports(settings))
	}
	if settings, ok := cfg.Engine(config.EngineCrystal); ok {
		fallback := ParseUnrecognizedFunctionBehavior(cfg.Crystal.UnrecognizedFunctionBehavior)
		candidates = append(candidates, Crystal(settings, fallback))
	}
	candidates = append(candidates,
		Spreadsheet(cfg.SheetsAsSubreports()),
		Delimited(cfg.CSV),
	)

	formats := candidates[:0]
	for _, f := range candidates {
		if cfg.Enabled(f.Name) {
			formats = append(formats, f)
		}
	}
	return formats
}

// Register adds every format enabled by cfg to reg.
func Register(reg *converter.Registry, cfg *config.Config) error {
	for _, f := range Available(cfg) {
		if err := reg.Register(f); err != nil {
			return err
		}
	}
	return nil
}

// Access converts MS Access reports through an external engine.
func Access(settings config.EngineSettings) converter.Format {
	return converter.Format{
		Name:       NameAccess,
		Extensions: []string{".mdb", ".mde"},
		Usage:      []string{"*.mdb or *.mde file matches MS Access reports."},
		New: func(setup converter.Setup) (converter.Converter, error) {
			return engine.New(NameAccess, settings, outputParams(setup), nil), nil
		},
	}
}

// ActiveReports converts ActiveReports layouts through an external engine.
func ActiveReports(settings config.EngineSettings) converter.Format {
	return converter.Format{
		Name:       NameActiveReports,
		Extensions: []string{".rpx"},
		Usage:      []string{"*.rpx file matches ActiveReports."},
		New: func(setup converter.Setup) (converter.Converter, error) {
			return engine.New(NameActiveReports, settings, outputParams(setup), nil), nil
		},
	}
}

func outputParams(setup converter.Setup) map[string]string {
	return map[string]string{engine.PlaceholderOutput: setup.OutputPath}
}
