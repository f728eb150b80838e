// =============================================================================
// ReportsImport - Import Pipeline
// =============================================================================
//
// This module runs one import: it turns the /key:value tokens of a single
// invocation into a layout file at /out.
//
// PROCESSING PIPELINE:
//   1. Parse the tokens and require /in and /out
//   2. Resolve /in to an absolute path that must exist
//   3. Attach the trace logger to the context
//   4. Select the converter for the input extension
//   5. Convert; subreports are written next to /out as they are generated
//   6. Write the root layout to /out
//
// Usage problems are returned as *usage.Error; everything else is an
// operational error.
//
// =============================================================================

package importer

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ginjaninja78/reports-import/internal/args"
	"github.com/ginjaninja78/reports-import/internal/converter"
	"github.com/ginjaninja78/reports-import/internal/ctxlog"
	"github.com/ginjaninja78/reports-import/internal/subreport"
	"github.com/ginjaninja78/reports-import/pkg/utils"
)

// Options wires the pipeline to its collaborators.
type Options struct {
	// Registry holds the enabled formats.
	Registry *converter.Registry

	// Saver writes report layouts, for the root and for every subreport.
	Saver subreport.LayoutSaver

	// Logger receives trace messages. Nil disables tracing.
	Logger *zap.Logger
}

// Result describes a finished import.
type Result struct {
	// InputPath is the absolute input path.
	InputPath string

	// OutputPath is /out as given.
	OutputPath string

	// Format is the name of the format that converted the input.
	Format string

	// Subreports lists the sibling files, in the order they were written.
	Subreports []string
}

// Run imports one report.
//
// PARAMETERS:
//   - ctx: Bounds the conversion, including any external engine process.
//   - tokens: The /key:value command-line tokens.
//   - opts: The registry, layout saver and logger to use.
//
// RETURNS:
//   - The import result.
//   - A *usage.Error for malformed invocations, or an operational error.
func Run(ctx context.Context, tokens []string, opts Options) (*Result, error) {
	// =========================================================================
	// STEP 1: PARSE ARGUMENTS
	// =========================================================================

	a, err := args.Parse(tokens)
	if err != nil {
		return nil, err
	}

	in, err := a.Require(args.KeyIn)
	if err != nil {
		return nil, err
	}

	out, err := a.Require(args.KeyOut)
	if err != nil {
		return nil, err
	}

	// =========================================================================
	// STEP 2: RESOLVE INPUT
	// =========================================================================

	path, err := utils.ResolveExisting(in)
	if err != nil {
		return nil, err
	}

	// =========================================================================
	// STEP 3: TRACING
	// =========================================================================

	if opts.Logger != nil {
		ctx = ctxlog.WithLogger(ctx, opts.Logger)
	}
	log := ctxlog.FromContext(ctx)

	// =========================================================================
	// STEP 4: SELECT CONVERTER
	// =========================================================================

	materializer := subreport.NewMaterializer(out, opts.Saver)

	conv, format, err := opts.Registry.Select(filepath.Ext(path), a, out, materializer.Handle)
	if err != nil {
		return nil, err
	}

	log.Debug("converting", zap.String("format", format.Name), zap.String("input", path))

	// =========================================================================
	// STEP 5: CONVERT
	// =========================================================================

	result, err := conv.Convert(ctx, path)
	if err != nil {
		return nil, err
	}
	if result == nil || result.Report == nil {
		return nil, fmt.Errorf("%s converter returned no report", format.Name)
	}

	// =========================================================================
	// STEP 6: WRITE LAYOUT
	// =========================================================================

	if err := opts.Saver.Save(result.Report, out); err != nil {
		return nil, fmt.Errorf("failed to save layout: %w", err)
	}

	log.Debug("layout written",
		zap.String("output", out), zap.Int("subreports", len(materializer.Written())))

	return &Result{
		InputPath:  path,
		OutputPath: out,
		Format:     format.Name,
		Subreports: materializer.Written(),
	}, nil
}
