// =============================================================================
// ReportsImport - Subreport Materializer
// =============================================================================
//
// Formats that split embedded reports out of their source call Handle once
// per subreport while the conversion is still running. Handle writes the
// subreport next to the main output file and points the parent's subreport
// control at it:
//
//   /out:reports/sales.xml, subreport "Totals:Q1"
//     -> reports/sales_Totals_Q1.xml
//     -> parent control ReportSourceURL = "reports/sales_Totals_Q1.xml"
//
// Because Handle runs inside Convert, every subreport file exists and every
// reference is rewired before the root report itself is saved.
//
// =============================================================================

package subreport

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/ginjaninja78/reports-import/internal/ctxlog"
	"github.com/ginjaninja78/reports-import/internal/report"
)

// LayoutSaver writes a report layout to a file.
type LayoutSaver interface {
	Save(r *report.Report, path string) error
}

// Materializer writes generated subreports next to the main output file.
type Materializer struct {
	outputPath string
	saver      LayoutSaver

	written []string
}

// NewMaterializer returns a Materializer bound to the main output path.
func NewMaterializer(outputPath string, saver LayoutSaver) *Materializer {
	return &Materializer{outputPath: outputPath, saver: saver}
}

// Handle saves one subreport and rewires its parent control.
//
// PARAMETERS:
//   - ctx: Carries the trace logger.
//   - sub: The generated subreport.
//
// RETURNS:
//   - An error if the subreport has no layout or cannot be written. The
//     parent control is left untouched in that case.
func (m *Materializer) Handle(ctx context.Context, sub report.GeneratedSubreport) error {
	if sub.Report == nil {
		return fmt.Errorf("subreport %q has no layout", sub.OriginalName)
	}

	path := SiblingPath(m.outputPath, sub.OriginalName)
	if slices.Contains(m.written, path) {
		ctxlog.FromContext(ctx).Warn("subreport overwrites an earlier subreport file",
			zap.String("subreport", sub.OriginalName), zap.String("path", path))
	}

	if err := m.saver.Save(sub.Report, path); err != nil {
		return fmt.Errorf("failed to save subreport %q: %w", sub.OriginalName, err)
	}

	if sub.Control != nil {
		sub.Control.ReportSourceURL = path
	} else {
		ctxlog.FromContext(ctx).Warn("subreport has no parent control",
			zap.String("subreport", sub.OriginalName))
	}

	m.written = append(m.written, path)
	ctxlog.FromContext(ctx).Debug("subreport written",
		zap.String("subreport", sub.OriginalName), zap.String("path", path))

	return nil
}

// Written returns the subreport files written so far, in order.
func (m *Materializer) Written() []string {
	out := make([]string, len(m.written))
	copy(out, m.written)
	return out
}

// =============================================================================
// FILE NAMES
// =============================================================================

// SiblingPath returns "<dir>/<base>_<escaped name><ext>" for the main output
// path "<dir>/<base><ext>".
func SiblingPath(outputPath, subreportName string) string {
	dir := filepath.Dir(outputPath)
	ext := filepath.Ext(outputPath)
	base := strings.TrimSuffix(filepath.Base(outputPath), ext)

	return filepath.Join(dir, base+"_"+EscapeFileName(subreportName)+ext)
}

// invalidFileNameChars are the characters no file-name component may contain
// on any supported platform, in addition to control characters.
const invalidFileNameChars = `"<>|:*?\/`

// EscapeFileName replaces every character that is invalid in a file name with
// '_'. The result does not depend on the host platform.
func EscapeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || strings.ContainsRune(invalidFileNameChars, r) {
			return '_'
		}
		return r
	}, name)
}
