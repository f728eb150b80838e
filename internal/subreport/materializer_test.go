package subreport

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/ginjaninja78/reports-import/internal/ctxlog"
	"github.com/ginjaninja78/reports-import/internal/report"
	"github.com/ginjaninja78/reports-import/internal/xmlwriter"
)

func TestEscapeFileName(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{in: "Sub:1", want: "Sub_1"},
		{in: `a<b>c"d|e*f?g\h/i`, want: "a_b_c_d_e_f_g_h_i"},
		{in: "tab\there\nnew", want: "tab_here_new"},
		{in: "Plain name-1.v2 (draft)", want: "Plain name-1.v2 (draft)"},
		{in: "Übersicht:Größe", want: "Übersicht_Größe"},
		{in: "", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got := EscapeFileName(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got, EscapeFileName(got), "escaping is idempotent")
		})
	}
}

func TestSiblingPath(t *testing.T) {
	assert.Equal(t, "out_Sub_1.xml", SiblingPath("out.xml", "Sub:1"))
	assert.Equal(t, filepath.Join("reports", "sales_Totals.xml"), SiblingPath(filepath.Join("reports", "sales.xml"), "Totals"))
	assert.Equal(t, filepath.Join("reports", "layout_Sub"), SiblingPath(filepath.Join("reports", "layout"), "Sub"))
	assert.Equal(t, "a.b_c.xml", SiblingPath("a.b.xml", "c"))
}

func TestMaterializer_Handle(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.xml")
	m := NewMaterializer(out, xmlwriter.New(xmlwriter.DefaultOptions()))

	parent := report.New("Main")
	control := parent.Band(report.BandReportFooter).Add(&report.Control{Kind: report.ControlSubreport, Name: "sub1"})

	err := m.Handle(context.Background(), report.GeneratedSubreport{
		OriginalName: "Sub:1",
		Report:       report.New("Sub:1"),
		Control:      control,
	})
	require.NoError(t, err)

	want := filepath.Join(dir, "out_Sub_1.xml")
	assert.Equal(t, want, control.ReportSourceURL)
	assert.FileExists(t, want)
	assert.Equal(t, []string{want}, m.Written())

	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<report name="Sub:1"/>`)
}

func TestMaterializer_HandleNameCollision(t *testing.T) {
	dir := t.TempDir()
	m := NewMaterializer(filepath.Join(dir, "out.xml"), xmlwriter.New(xmlwriter.DefaultOptions()))

	var logs bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), ctxlog.NewConsole(&logs, zapcore.WarnLevel))

	parent := report.New("Main")
	footer := parent.Band(report.BandReportFooter)

	for _, name := range []string{"Sub:1", "Sub_1"} {
		control := footer.Add(&report.Control{Kind: report.ControlSubreport, Name: name})
		require.NoError(t, m.Handle(ctx, report.GeneratedSubreport{
			OriginalName: name,
			Report:       report.New(name),
			Control:      control,
		}))
	}

	want := filepath.Join(dir, "out_Sub_1.xml")
	assert.Equal(t, []string{want, want}, m.Written())
	assert.Contains(t, logs.String(), "subreport overwrites an earlier subreport file")
	assert.Contains(t, logs.String(), "Sub_1")
}

type failingSaver struct{}

func (failingSaver) Save(*report.Report, string) error { return errors.New("disk full") }

func TestMaterializer_HandleErrors(t *testing.T) {
	control := &report.Control{Kind: report.ControlSubreport}

	t.Run("save failure leaves the control untouched", func(t *testing.T) {
		m := NewMaterializer("out.xml", failingSaver{})
		err := m.Handle(context.Background(), report.GeneratedSubreport{
			OriginalName: "Sub",
			Report:       report.New("Sub"),
			Control:      control,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
		assert.Empty(t, control.ReportSourceURL)
		assert.Empty(t, m.Written())
	})

	t.Run("missing layout", func(t *testing.T) {
		m := NewMaterializer("out.xml", failingSaver{})
		err := m.Handle(context.Background(), report.GeneratedSubreport{OriginalName: "Sub", Control: control})
		require.Error(t, err)
	})
}
