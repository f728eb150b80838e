package formats

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ginjaninja78/reports-import/internal/converter"
	"github.com/ginjaninja78/reports-import/internal/ctxlog"
	"github.com/ginjaninja78/reports-import/internal/report"
	"github.com/ginjaninja78/reports-import/internal/xlsxparser"
)

// Spreadsheet converts workbook report templates. The first sheet becomes the
// root report; with sheetsAsSubreports every further sheet becomes a
// subreport referenced from the root's report footer.
func Spreadsheet(sheetsAsSubreports bool) converter.Format {
	return converter.Format{
		Name:       NameSpreadsheet,
		Extensions: []string{".xlsx", ".xlsm"},
		Usage:      []string{"*.xlsx or *.xlsm file matches spreadsheet report templates."},

		EmitsSubreports: sheetsAsSubreports,

		New: func(setup converter.Setup) (converter.Converter, error) {
			return &spreadsheetConverter{
				sheetsAsSubreports: sheetsAsSubreports,
				onSubreport:        setup.OnSubreport,
			}, nil
		},
	}
}

type spreadsheetConverter struct {
	sheetsAsSubreports bool
	onSubreport        converter.SubreportHandler
}

func (c *spreadsheetConverter) Convert(ctx context.Context, path string) (*report.ConversionResult, error) {
	log := ctxlog.FromContext(ctx).With(zap.String("format", NameSpreadsheet))

	wb, err := xlsxparser.ParseWorkbook(path)
	if err != nil {
		return nil, err
	}

	first := wb.Sheets[0]
	root := tableReport(first.Name, path, first.Headers)
	result := &report.ConversionResult{Report: root}

	for i, sheet := range wb.Sheets[1:] {
		if !c.sheetsAsSubreports {
			log.Warn("sheet ignored", zap.String("sheet", sheet.Name))
			continue
		}

		footer := root.Band(report.BandReportFooter)
		footer.Height = rowHeight * (i + 1)
		control := footer.Add(&report.Control{
			Kind:   report.ControlSubreport,
			Name:   fmt.Sprintf("subreport%d", i+1),
			Bounds: report.Bounds{Y: rowHeight * i, Width: columnWidth * len(first.Headers), Height: rowHeight},
		})

		sub := report.GeneratedSubreport{
			OriginalName: sheet.Name,
			Report:       tableReport(sheet.Name, path, sheet.Headers),
			Control:      control,
		}

		if c.onSubreport != nil {
			if err := c.onSubreport(ctx, sub); err != nil {
				return nil, err
			}
		}

		result.Subreports = append(result.Subreports, sub)
	}

	log.Debug("workbook converted",
		zap.String("root", first.Name), zap.Int("subreports", len(result.Subreports)))

	return result, nil
}
