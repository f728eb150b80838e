package xmlwriter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/reports-import/internal/report"
)

func sampleReport() *report.Report {
	r := report.New("Sales & Returns")
	r.Source = "sales.rpt"
	r.DataSource = "Orders"

	header := r.Band(report.BandPageHeader)
	header.Height = 20
	header.Add(&report.Control{
		Kind:   report.ControlLabel,
		Name:   "lblAmount",
		Text:   "Amount <USD>",
		Bounds: report.Bounds{Width: 100, Height: 20},
	})

	r.Band(report.BandDetail).Add(&report.Control{
		Kind:       report.ControlField,
		Name:       "fldAmount",
		Expression: "[Amount]",
	})

	r.Band(report.BandReportFooter).Add(&report.Control{
		Kind:            report.ControlSubreport,
		Name:            "Totals",
		ReportSourceURL: "out_Totals.xml",
	})

	return r
}

func TestMarshal(t *testing.T) {
	w := New(DefaultOptions())

	data, err := w.Marshal(sampleReport())
	require.NoError(t, err)

	expected := `<?xml version="1.0" encoding="UTF-8"?>
<report name="Sales &amp; Returns" source="sales.rpt" dataSource="Orders">
  <band kind="PageHeader" height="20">
    <label name="lblAmount" x="0" y="0" width="100" height="20">Amount &lt;USD&gt;</label>
  </band>
  <band kind="Detail">
    <field name="fldAmount" expression="[Amount]"/>
  </band>
  <band kind="ReportFooter">
    <subreport name="Totals" sourceUrl="out_Totals.xml"/>
  </band>
</report>
`
	assert.Equal(t, expected, string(data))
}

func TestMarshal_NoDeclaration(t *testing.T) {
	w := New(Options{Indent: "\t"})

	data, err := w.Marshal(report.New("Empty"))
	require.NoError(t, err)
	assert.Equal(t, "<report name=\"Empty\"/>\n", string(data))
}

func TestMarshal_NilReport(t *testing.T) {
	_, err := New(DefaultOptions()).Marshal(nil)
	require.Error(t, err)
}

func TestSaveAndDecode_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xml")
	original := sampleReport()
	original.Band(report.BandDetail).Add(&report.Control{
		Kind: report.ControlWarning,
		Name: "warning1",
		Text: "line one\nline \"two\"",
	})

	w := New(DefaultOptions())
	require.NoError(t, w.Save(original, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	decoded, err := Decode(f)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode(bytes.NewBufferString("<report"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode layout")
}
