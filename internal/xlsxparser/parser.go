// =============================================================================
// ReportsImport - XLSX Parser Module
// =============================================================================
//
// This module reads spreadsheet report templates. Every worksheet describes
// one report: the first non-empty row holds the column captions, the rows
// below are sample data.
//
// WORKBOOK STRUCTURE:
//   Sheet "Sales"      -> root report
//   Sheet "Returns"    -> subreport
//   Sheet "_lookup"    -> skipped (leading underscore)
//   hidden sheets      -> skipped
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// =============================================================================
// WORKBOOK STRUCTURES
// =============================================================================

// Workbook is the parsed content of a spreadsheet file.
type Workbook struct {
	// SourceFile is the path to the workbook.
	SourceFile string

	// Sheets lists the report sheets in workbook order.
	Sheets []*Sheet
}

// Sheet is one worksheet.
type Sheet struct {
	// Name is the worksheet name.
	Name string

	// Headers holds the column captions. Empty captions are named after
	// their column letter, e.g. "Column_C".
	Headers []string

	// DataRows is the number of non-empty rows below the header.
	DataRows int
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// ParseWorkbook reads every report sheet of the workbook at path.
//
// PARAMETERS:
//   - path: The path to the XLSX file.
//
// RETURNS:
//   - The parsed workbook; sheets without any content are omitted.
//   - An error if the file cannot be opened or has no report sheet.
func ParseWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	wb := &Workbook{SourceFile: path}

	for _, sheetName := range f.GetSheetList() {
		if strings.HasPrefix(sheetName, "_") {
			continue
		}

		visible, err := f.GetSheetVisible(sheetName)
		if err != nil {
			return nil, fmt.Errorf("error reading sheet '%s': %w", sheetName, err)
		}
		if !visible {
			continue
		}

		sheet, err := parseSheet(f, sheetName)
		if err != nil {
			return nil, fmt.Errorf("error parsing sheet '%s': %w", sheetName, err)
		}
		if sheet == nil {
			continue
		}

		wb.Sheets = append(wb.Sheets, sheet)
	}

	if len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("workbook has no report sheets")
	}

	return wb, nil
}

// parseSheet reads a single sheet. It returns nil for sheets without content.
func parseSheet(f *excelize.File, sheetName string) (*Sheet, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	headerIndex := -1
	for i, row := range rows {
		if !isRowEmpty(row) {
			headerIndex = i
			break
		}
	}
	if headerIndex < 0 {
		return nil, nil
	}

	sheet := &Sheet{Name: sheetName}

	header := rows[headerIndex]
	width := len(header)
	for _, row := range rows[headerIndex+1:] {
		if isRowEmpty(row) {
			continue
		}
		sheet.DataRows++
		if len(row) > width {
			width = len(row)
		}
	}

	for col := 0; col < width; col++ {
		caption := ""
		if col < len(header) {
			caption = strings.TrimSpace(header[col])
		}
		if caption == "" {
			name, err := excelize.ColumnNumberToName(col + 1)
			if err != nil {
				return nil, err
			}
			caption = "Column_" + name
		}
		sheet.Headers = append(sheet.Headers, caption)
	}

	return sheet, nil
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
