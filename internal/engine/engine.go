// =============================================================================
// ReportsImport - External Conversion Engine
// =============================================================================
//
// The proprietary report formats are converted by external programs. This
// module runs such a program and turns its output into a ConversionResult.
//
// ENGINE PROTOCOL:
//   The engine is started with the configured arguments, placeholders
//   expanded. It writes one conversion envelope to standard output:
//
//   <conversion>
//     <report name="Sales">...</report>
//     <subreport name="Totals:Q1" control="subTotals">
//       <report name="Totals:Q1">...</report>
//     </subreport>
//     <subreport name="Detail" parent="Totals:Q1" control="subDetail">
//       <report name="Detail">...</report>
//     </subreport>
//   </conversion>
//
//   "control" names the subreport control in the parent report; "parent"
//   names an earlier subreport and defaults to the root report. Diagnostics
//   go to standard error and are re-emitted as warnings. A non-zero exit
//   status fails the conversion.
//
// SUBREPORT ORDER:
//   The subreport handler sees nested subreports before the subreport that
//   contains them, so a parent is only written after its own references
//   were rewired.
//
// =============================================================================

package engine

import (
	"bufio"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/ginjaninja78/reports-import/internal/config"
	"github.com/ginjaninja78/reports-import/internal/converter"
	"github.com/ginjaninja78/reports-import/internal/ctxlog"
	"github.com/ginjaninja78/reports-import/internal/report"
	"github.com/ginjaninja78/reports-import/internal/xmlwriter"
)

// Placeholder names expanded in engine arguments.
const (
	PlaceholderInput  = "input"
	PlaceholderOutput = "output"
)

// Converter runs an external engine for one format.
type Converter struct {
	format      string
	settings    config.EngineSettings
	params      map[string]string
	onSubreport converter.SubreportHandler
}

// New returns a converter for format backed by the engine in settings.
//
// PARAMETERS:
//   - format: The format name, used in logs and errors.
//   - settings: The engine command, arguments and environment.
//   - params: Extra placeholder values, e.g. the unrecognized function behavior.
//   - onSubreport: Called for every subreport in the envelope; may be nil.
func New(format string, settings config.EngineSettings, params map[string]string, onSubreport converter.SubreportHandler) *Converter {
	merged := make(map[string]string, len(params))
	for k, v := range params {
		merged[k] = v
	}
	return &Converter{
		format:      format,
		settings:    settings,
		params:      merged,
		onSubreport: onSubreport,
	}
}

// Param returns the value of a placeholder parameter.
func (c *Converter) Param(name string) (string, bool) {
	v, ok := c.params[name]
	return v, ok
}

// Convert runs the engine on path.
func (c *Converter) Convert(ctx context.Context, path string) (*report.ConversionResult, error) {
	log := ctxlog.FromContext(ctx).With(zap.String("format", c.format))

	argv := c.expandArgs(path)
	log.Debug("starting engine", zap.String("command", c.settings.Command), zap.Strings("args", argv))

	cmd := exec.CommandContext(ctx, c.settings.Command, argv...)
	cmd.Env = append(os.Environ(), c.settings.Env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	relayDiagnostics(log, stderr.Bytes())

	if runErr != nil {
		if detail := firstLine(stderr.Bytes()); detail != "" {
			return nil, fmt.Errorf("%s engine failed: %w: %s", c.format, runErr, detail)
		}
		return nil, fmt.Errorf("%s engine failed: %w", c.format, runErr)
	}

	result, order, err := decodeEnvelope(stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%s engine output: %w", c.format, err)
	}

	if c.onSubreport != nil {
		for _, sub := range order {
			if err := c.onSubreport(ctx, sub); err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}

// expandArgs replaces placeholders in the configured arguments.
func (c *Converter) expandArgs(input string) []string {
	pairs := []string{"{" + PlaceholderInput + "}", input}
	for name, value := range c.params {
		if name != PlaceholderInput {
			pairs = append(pairs, "{"+name+"}", value)
		}
	}
	// One pass per argument; substituted values are never expanded again.
	replacer := strings.NewReplacer(pairs...)

	argv := make([]string, 0, len(c.settings.Args)+1)
	sawInput := false

	for _, arg := range c.settings.Args {
		if strings.Contains(arg, "{"+PlaceholderInput+"}") {
			sawInput = true
		}
		argv = append(argv, replacer.Replace(arg))
	}

	if !sawInput {
		argv = append(argv, input)
	}

	return argv
}

// maxDiagnosticLine bounds a single stderr line.
const maxDiagnosticLine = 1 << 20

// relayDiagnostics logs every non-empty stderr line as a warning.
func relayDiagnostics(log *zap.Logger, stderr []byte) {
	scanner := bufio.NewScanner(bytes.NewReader(stderr))
	scanner.Buffer(make([]byte, 0, 64*1024), maxDiagnosticLine)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			log.Warn(line)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Warn("engine diagnostics truncated", zap.Error(err))
	}
}

func firstLine(b []byte) string {
	line, _, _ := strings.Cut(strings.TrimSpace(string(b)), "\n")
	return strings.TrimSpace(line)
}

// =============================================================================
// ENVELOPE
// =============================================================================

type envelope struct {
	XMLName    xml.Name                 `xml:"conversion"`
	Report     *xmlwriter.ReportElement `xml:"report"`
	Subreports []subreportElement       `xml:"subreport"`
}

type subreportElement struct {
	Name    string                  `xml:"name,attr"`
	Parent  string                  `xml:"parent,attr"`
	Control string                  `xml:"control,attr"`
	Report  xmlwriter.ReportElement `xml:"report"`
}

// decodeEnvelope builds the conversion result and the order in which the
// subreports must be materialized: children before their parents.
func decodeEnvelope(data []byte) (*report.ConversionResult, []report.GeneratedSubreport, error) {
	var env envelope
	if err := xml.Unmarshal(data, &env); err != nil {
		return nil, nil, fmt.Errorf("failed to decode conversion envelope: %w", err)
	}
	if env.Report == nil {
		return nil, nil, fmt.Errorf("conversion envelope has no report")
	}

	result := &report.ConversionResult{Report: env.Report.Report()}

	byName := make(map[string]*report.Report, len(env.Subreports))
	children := make(map[*report.Report][]int)

	for i, se := range env.Subreports {
		if se.Name == "" {
			return nil, nil, fmt.Errorf("subreport %d has no name", i+1)
		}
		if _, dup := byName[se.Name]; dup {
			return nil, nil, fmt.Errorf("subreport %q appears twice", se.Name)
		}

		parent := result.Report
		if se.Parent != "" {
			p, ok := byName[se.Parent]
			if !ok {
				return nil, nil, fmt.Errorf("subreport %q: parent %q must precede it", se.Name, se.Parent)
			}
			parent = p
		}

		control, err := parentControl(parent, se)
		if err != nil {
			return nil, nil, err
		}

		sub := report.GeneratedSubreport{
			OriginalName: se.Name,
			Report:       se.Report.Report(),
			Control:      control,
		}
		byName[se.Name] = sub.Report
		result.Subreports = append(result.Subreports, sub)
		children[parent] = append(children[parent], i)
	}

	// Post-order walk from the root.
	order := make([]report.GeneratedSubreport, 0, len(result.Subreports))
	var visit func(parent *report.Report)
	visit = func(parent *report.Report) {
		for _, i := range children[parent] {
			sub := result.Subreports[i]
			visit(sub.Report)
			order = append(order, sub)
		}
	}
	visit(result.Report)

	return result, order, nil
}

// parentControl finds the control referencing the subreport, adding one to
// the parent's report footer when the engine did not name it.
func parentControl(parent *report.Report, se subreportElement) (*report.Control, error) {
	if se.Control == "" {
		return parent.Band(report.BandReportFooter).Add(&report.Control{
			Kind: report.ControlSubreport,
			Name: se.Name,
		}), nil
	}

	control := parent.FindControl(se.Control)
	if control == nil {
		return nil, fmt.Errorf("subreport %q: control %q not found in %q", se.Name, se.Control, parent.Name)
	}
	if control.Kind != report.ControlSubreport {
		return nil, fmt.Errorf("subreport %q: control %q is a %s, not a subreport", se.Name, se.Control, control.Kind)
	}

	return control, nil
}
