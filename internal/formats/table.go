package formats

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/reports-import/internal/report"
)

// Layout metrics for tabular reports, in report units.
const (
	columnWidth = 100
	rowHeight   = 20
)

// tableReport lays out a columnar report: one caption per column in the page
// header and one bound field per column in the detail band.
func tableReport(name, source string, headers []string) *report.Report {
	r := report.New(name)
	r.Source = source
	r.DataSource = name

	pageHeader := r.Band(report.BandPageHeader)
	pageHeader.Height = rowHeight
	detail := r.Band(report.BandDetail)
	detail.Height = rowHeight

	for i, caption := range headers {
		bounds := report.Bounds{X: i * columnWidth, Width: columnWidth, Height: rowHeight}

		pageHeader.Add(&report.Control{
			Kind:   report.ControlLabel,
			Name:   fmt.Sprintf("label%d", i+1),
			Text:   caption,
			Bounds: bounds,
		})
		detail.Add(&report.Control{
			Kind:       report.ControlField,
			Name:       fmt.Sprintf("field%d", i+1),
			Expression: fieldExpression(caption),
			Bounds:     bounds,
		})
	}

	return r
}

// fieldExpression returns the bracketed column reference; a closing bracket
// inside the name is doubled.
func fieldExpression(column string) string {
	return "[" + strings.ReplaceAll(column, "]", "]]") + "]"
}
