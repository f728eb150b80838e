// =============================================================================
// ReportsImport - Converter Module
// =============================================================================
//
// This module defines the converter contract and the registry that selects a
// converter for an input file.
//
// CONVERTER CONTRACT:
//   Convert(ctx, path) turns one report file into a ConversionResult. Formats
//   that split embedded reports out of the source call the SubreportHandler
//   once per subreport, synchronously, before Convert returns. The handler
//   is the place where subreport files are written and references rewired.
//
// REGISTRY:
//   Formats register themselves with the extensions they accept. The set of
//   registered formats is assembled at startup from configuration, so the
//   selector is a lookup rather than a list of hardcoded branches.
//
// =============================================================================

package converter

import (
	"context"

	"github.com/ginjaninja78/reports-import/internal/args"
	"github.com/ginjaninja78/reports-import/internal/report"
)

// Converter turns a report file into the in-memory report model.
type Converter interface {
	Convert(ctx context.Context, path string) (*report.ConversionResult, error)
}

// Func adapts a plain function to the Converter interface.
type Func func(ctx context.Context, path string) (*report.ConversionResult, error)

// Convert calls f.
func (f Func) Convert(ctx context.Context, path string) (*report.ConversionResult, error) {
	return f(ctx, path)
}

// SubreportHandler is called once per generated subreport during Convert.
// A returned error aborts the conversion.
type SubreportHandler func(ctx context.Context, sub report.GeneratedSubreport) error

// Setup carries everything a format needs to build its converter.
type Setup struct {
	// Args is the full argument map; formats read their sub-arguments from it.
	Args *args.Map

	// OutputPath is the /out path.
	OutputPath string

	// OnSubreport is set for formats that emit subreports.
	OnSubreport SubreportHandler
}
