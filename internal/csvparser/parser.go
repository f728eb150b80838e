// =============================================================================
// ReportsImport - CSV Parser Module
// =============================================================================
//
// This module reads delimited-text report exports. Only the header rows shape
// the report layout; data rows are read to detect columns that have values
// but no caption.
//
// SUPPORTED FORMATS:
//   - Comma-separated values (CSV)
//   - Tab-separated values (TSV)
//   - Pipe or semicolon delimited files
//   - Files with multi-line headers
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ginjaninja78/reports-import/internal/config"
)

// =============================================================================
// CSV DATA STRUCTURE
// =============================================================================

// CSVData represents the parsed file.
type CSVData struct {
	// Headers contains the column captions. For multi-line headers these are
	// the merged captions.
	Headers []string

	// SourceFile is the path to the source file.
	SourceFile string

	// RowCount is the number of non-empty data rows.
	RowCount int

	// ColumnCount is the number of columns.
	ColumnCount int
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a delimited-text file.
//
// PARAMETERS:
//   - filePath: The path to the file.
//   - settings: The CSV parsing settings.
//
// RETURNS:
//   - The parsed data.
//   - An error if the file cannot be read or has no header.
//
// PARSING PROCESS:
//   1. Configure the CSV reader with the delimiter
//   2. Read and merge header rows
//   3. Widen the header to the widest data row
//   4. Count the non-empty data rows from the configured data start row
func Parse(filePath string, settings config.CSVSettings) (*CSVData, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	csvReader := csv.NewReader(bufio.NewReader(file))
	configureReader(csvReader, settings)

	allRows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(allRows) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	headers, err := extractHeaders(allRows, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to extract headers: %w", err)
	}

	headers = widenHeaders(headers, allRows, settings)

	return &CSVData{
		Headers:     headers,
		SourceFile:  filePath,
		RowCount:    countDataRows(allRows, settings),
		ColumnCount: len(headers),
	}, nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) {
	reader.Comma = Delimiter(settings.Delimiter)

	// Allow a variable number of fields per row.
	reader.FieldsPerRecord = -1

	// Allow quotes that don't follow strict CSV rules.
	reader.LazyQuotes = true

	reader.TrimLeadingSpace = true
}

// Delimiter maps a configured delimiter name to the separator rune.
func Delimiter(name string) rune {
	switch name {
	case "\\t", "\t", "tab", "TAB":
		return '\t'
	case "|", "pipe", "PIPE":
		return '|'
	case ";", "semicolon":
		return ';'
	default:
		if r, size := utf8.DecodeRuneInString(name); size > 0 && r != utf8.RuneError {
			return r
		}
		return ','
	}
}

// extractHeaders extracts and merges the header rows.
//
// MULTI-LINE HEADER HANDLING:
//   Row 1: "Transaction", "",       "Policy", ""
//   Row 2: "Number",      "Amount", "Number", "Date"
//   Result: "Transaction Number", "Amount", "Policy Number", "Date"
func extractHeaders(allRows [][]string, settings config.CSVSettings) ([]string, error) {
	if settings.HeaderRows <= 0 {
		return nil, fmt.Errorf("header_rows must be at least 1")
	}

	if len(allRows) < settings.HeaderRows {
		return nil, fmt.Errorf("file has fewer rows than header_rows setting")
	}

	if settings.HeaderRows == 1 {
		return cleanHeaders(allRows[0]), nil
	}

	maxCols := 0
	for i := 0; i < settings.HeaderRows; i++ {
		if len(allRows[i]) > maxCols {
			maxCols = len(allRows[i])
		}
	}

	headers := make([]string, maxCols)
	for col := 0; col < maxCols; col++ {
		var parts []string

		for row := 0; row < settings.HeaderRows; row++ {
			if col < len(allRows[row]) {
				value := strings.TrimSpace(allRows[row][col])
				if value != "" {
					parts = append(parts, value)
				}
			}
		}

		headers[col] = strings.Join(parts, " ")
	}

	return cleanHeaders(headers), nil
}

// cleanHeaders trims captions and names empty ones after their position.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))

	for i, header := range headers {
		header = strings.TrimSpace(header)
		if header == "" {
			header = columnName(i)
		}
		cleaned[i] = header
	}

	return cleaned
}

// widenHeaders adds placeholder captions for data columns past the header.
func widenHeaders(headers []string, allRows [][]string, settings config.CSVSettings) []string {
	for rowIndex := dataStartIndex(settings); rowIndex < len(allRows); rowIndex++ {
		for len(headers) < len(allRows[rowIndex]) {
			headers = append(headers, columnName(len(headers)))
		}
	}
	return headers
}

// countDataRows counts the non-empty rows from the data start row on.
func countDataRows(allRows [][]string, settings config.CSVSettings) int {
	count := 0
	for rowIndex := dataStartIndex(settings); rowIndex < len(allRows); rowIndex++ {
		if !isRowEmpty(allRows[rowIndex]) {
			count++
		}
	}
	return count
}

// dataStartIndex converts the 1-indexed DataStartRow to a slice index.
func dataStartIndex(settings config.CSVSettings) int {
	startIndex := settings.DataStartRow - 1
	if startIndex < settings.HeaderRows {
		startIndex = settings.HeaderRows
	}
	return startIndex
}

func columnName(i int) string {
	return fmt.Sprintf("Column_%d", i+1)
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
