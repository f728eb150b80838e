package formats

import (
	"context"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ginjaninja78/reports-import/internal/config"
	"github.com/ginjaninja78/reports-import/internal/converter"
	"github.com/ginjaninja78/reports-import/internal/csvparser"
	"github.com/ginjaninja78/reports-import/internal/ctxlog"
	"github.com/ginjaninja78/reports-import/internal/report"
)

// Delimited converts delimited-text report exports. .tsv files are always
// read with a tab delimiter.
func Delimited(settings config.CSVSettings) converter.Format {
	return converter.Format{
		Name:       NameCSV,
		Extensions: []string{".csv", ".tsv"},
		Usage:      []string{"*.csv or *.tsv file matches delimited-text report exports."},
		New: func(converter.Setup) (converter.Converter, error) {
			return &delimitedConverter{settings: settings}, nil
		},
	}
}

type delimitedConverter struct {
	settings config.CSVSettings
}

func (c *delimitedConverter) Convert(ctx context.Context, path string) (*report.ConversionResult, error) {
	settings := c.settings
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		settings.Delimiter = "\t"
	}

	data, err := csvparser.Parse(path, settings)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	ctxlog.FromContext(ctx).Debug("delimited file converted",
		zap.String("format", NameCSV),
		zap.Int("columns", data.ColumnCount),
		zap.Int("sampleRows", data.RowCount))

	return &report.ConversionResult{Report: tableReport(name, path, data.Headers)}, nil
}
