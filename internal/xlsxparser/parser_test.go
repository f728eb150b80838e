package xlsxparser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// saveWorkbook builds a workbook from sheet name -> rows and saves it.
func saveWorkbook(t *testing.T, build func(f *excelize.File)) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	build(f)

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func setRows(t *testing.T, f *excelize.File, sheet string, rows [][]any) {
	t.Helper()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
}

func TestParseWorkbook(t *testing.T) {
	path := saveWorkbook(t, func(f *excelize.File) {
		require.NoError(t, f.SetSheetName("Sheet1", "Sales"))
		setRows(t, f, "Sales", [][]any{
			{},
			{"Region", "", "Amount"},
			{"North", "x", 10, "note"},
			{},
			{"South", "", 20},
		})

		_, err := f.NewSheet("Returns")
		require.NoError(t, err)
		setRows(t, f, "Returns", [][]any{{"Reason", "Count"}})

		_, err = f.NewSheet("_lookup")
		require.NoError(t, err)
		setRows(t, f, "_lookup", [][]any{{"Code"}})

		_, err = f.NewSheet("Hidden")
		require.NoError(t, err)
		setRows(t, f, "Hidden", [][]any{{"Secret"}})
		require.NoError(t, f.SetSheetVisible("Hidden", false))

		_, err = f.NewSheet("Blank")
		require.NoError(t, err)
	})

	wb, err := ParseWorkbook(path)
	require.NoError(t, err)
	assert.Equal(t, path, wb.SourceFile)

	require.Len(t, wb.Sheets, 2)

	sales := wb.Sheets[0]
	assert.Equal(t, "Sales", sales.Name)
	assert.Equal(t, []string{"Region", "Column_B", "Amount", "Column_D"}, sales.Headers)
	assert.Equal(t, 2, sales.DataRows)

	returns := wb.Sheets[1]
	assert.Equal(t, "Returns", returns.Name)
	assert.Equal(t, []string{"Reason", "Count"}, returns.Headers)
	assert.Equal(t, 0, returns.DataRows)
}

func TestParseWorkbook_Errors(t *testing.T) {
	t.Run("not a workbook", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "book.xlsx")
		require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0600))

		_, err := ParseWorkbook(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open workbook")
	})

	t.Run("no report sheets", func(t *testing.T) {
		path := saveWorkbook(t, func(f *excelize.File) {})

		_, err := ParseWorkbook(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no report sheets")
	})
}
