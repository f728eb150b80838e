package csvparser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/reports-import/internal/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func defaultSettings() config.CSVSettings {
	return config.CSVSettings{Delimiter: ",", HeaderRows: 1, DataStartRow: 2}
}

func TestParse_SingleHeader(t *testing.T) {
	path := writeFile(t, "orders.csv", "Order, Customer ,,Amount\n1,ACME,x,10.5\n\n2,Initech,,7,extra\n")

	data, err := Parse(path, defaultSettings())
	require.NoError(t, err)

	assert.Equal(t, []string{"Order", "Customer", "Column_3", "Amount", "Column_5"}, data.Headers)
	assert.Equal(t, 5, data.ColumnCount)
	assert.Equal(t, 2, data.RowCount, "empty rows are skipped")
	assert.Equal(t, path, data.SourceFile)
}

func TestParse_MultiLineHeader(t *testing.T) {
	path := writeFile(t, "policies.csv", "Transaction,,Policy,\nNumber,Amount,Number,Date\nT1,5,P1,2024-01-01\n")

	settings := config.CSVSettings{Delimiter: ",", HeaderRows: 2, DataStartRow: 3}
	data, err := Parse(path, settings)
	require.NoError(t, err)

	assert.Equal(t, []string{"Transaction Number", "Amount", "Policy Number", "Date"}, data.Headers)
	assert.Equal(t, 1, data.RowCount)
}

func TestParse_Tab(t *testing.T) {
	path := writeFile(t, "orders.tsv", "Order\tCustomer\n1\tACME\n")

	data, err := Parse(path, config.CSVSettings{Delimiter: "tab", HeaderRows: 1, DataStartRow: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"Order", "Customer"}, data.Headers)
}

func TestParse_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Parse(filepath.Join(t.TempDir(), "missing.csv"), defaultSettings())
		require.Error(t, err)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := Parse(writeFile(t, "empty.csv", ""), defaultSettings())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})

	t.Run("fewer rows than headers", func(t *testing.T) {
		_, err := Parse(writeFile(t, "short.csv", "a,b\n"), config.CSVSettings{Delimiter: ",", HeaderRows: 2, DataStartRow: 3})
		require.Error(t, err)
	})
}

func TestDelimiter(t *testing.T) {
	assert.Equal(t, '\t', Delimiter(`\t`))
	assert.Equal(t, '|', Delimiter("pipe"))
	assert.Equal(t, ';', Delimiter(";"))
	assert.Equal(t, ',', Delimiter(""))
	assert.Equal(t, '#', Delimiter("#"))
	assert.Equal(t, '§', Delimiter("§"), "multibyte delimiters are decoded as one rune")
}

func TestParse_MultibyteDelimiter(t *testing.T) {
	path := writeFile(t, "orders.txt", "Order§Customer\n1§ACME\n")

	data, err := Parse(path, config.CSVSettings{Delimiter: "§", HeaderRows: 1, DataStartRow: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"Order", "Customer"}, data.Headers)
	assert.Equal(t, 1, data.RowCount)
}
