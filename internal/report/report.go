// =============================================================================
// ReportsImport - Report Model
// =============================================================================
//
// This package contains the in-memory report layout every converter produces
// and the XML writer consumes. It is shared by:
//   - converter / formats / engine (producers)
//   - subreport (rewires subreport references)
//   - xmlwriter (serialization)
//
// LAYOUT SHAPE:
//   Report
//   └── Band (ReportHeader, PageHeader, Detail, ...)
//       └── Control (Label, Field, Subreport, Warning, ...)
//
// =============================================================================

package report

// =============================================================================
// BANDS AND CONTROLS
// =============================================================================

// BandKind names a report band.
type BandKind string

const (
	BandReportHeader BandKind = "ReportHeader"
	BandPageHeader   BandKind = "PageHeader"
	BandGroupHeader  BandKind = "GroupHeader"
	BandDetail       BandKind = "Detail"
	BandGroupFooter  BandKind = "GroupFooter"
	BandPageFooter   BandKind = "PageFooter"
	BandReportFooter BandKind = "ReportFooter"
)

// ControlKind names the type of a control placed in a band.
type ControlKind string

const (
	// ControlLabel is static text.
	ControlLabel ControlKind = "label"

	// ControlField is bound to a data expression.
	ControlField ControlKind = "field"

	// ControlSubreport references another serialized report through its
	// ReportSourceURL.
	ControlSubreport ControlKind = "subreport"

	// ControlWarning is a visible marker a converter inserts where it could not
	// translate part of the source, e.g. an unrecognized formula function.
	ControlWarning ControlKind = "warning"

	// ControlPicture and ControlLine carry no binding; they are kept so a
	// layout round-trips through the engine envelope.
	ControlPicture ControlKind = "picture"
	ControlLine    ControlKind = "line"
)

// Bounds positions a control inside its band, in report units.
type Bounds struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Control is a single element of a band.
type Control struct {
	Kind ControlKind
	Name string

	// Text is the caption of labels and warnings.
	Text string

	// Expression is the data binding of fields, e.g. "[Amount]".
	Expression string

	// ReportSourceURL points a subreport control at the serialized layout of
	// the report it embeds. Converters leave it empty; the subreport
	// materializer fills it in.
	ReportSourceURL string

	Bounds Bounds
}

// Band is a horizontal section of a report.
type Band struct {
	Kind     BandKind
	Height   int
	Controls []*Control
}

// =============================================================================
// REPORT
// =============================================================================

// Report is a report layout.
type Report struct {
	// Name is the report's display name.
	Name string

	// Source is the file or object the report was converted from.
	Source string

	// DataSource names the table or query the detail band is bound to.
	DataSource string

	Bands []*Band
}

// New returns an empty report.
func New(name string) *Report {
	return &Report{Name: name}
}

// Band returns the band of the given kind, creating it when missing.
// Bands are kept in creation order.
func (r *Report) Band(kind BandKind) *Band {
	for _, b := range r.Bands {
		if b.Kind == kind {
			return b
		}
	}
	b := &Band{Kind: kind}
	r.Bands = append(r.Bands, b)
	return b
}

// Add places a control in the band and returns it.
func (b *Band) Add(c *Control) *Control {
	b.Controls = append(b.Controls, c)
	return c
}

// FindControl returns the first control with the given name, or nil.
func (r *Report) FindControl(name string) *Control {
	for _, b := range r.Bands {
		for _, c := range b.Controls {
			if c.Name == name {
				return c
			}
		}
	}
	return nil
}

// Controls returns every control of the given kind, in band order.
func (r *Report) Controls(kind ControlKind) []*Control {
	var out []*Control
	for _, b := range r.Bands {
		for _, c := range b.Controls {
			if c.Kind == kind {
				out = append(out, c)
			}
		}
	}
	return out
}

// =============================================================================
// CONVERSION RESULT
// =============================================================================

// GeneratedSubreport is a subreport a converter split out of its parent.
type GeneratedSubreport struct {
	// OriginalName is the subreport's name in the source file.
	OriginalName string

	// Report is the subreport layout.
	Report *Report

	// Control is the parent's placeholder referencing the subreport.
	Control *Control
}

// ConversionResult is what a converter returns.
type ConversionResult struct {
	// Report is the root report, saved to the /out path.
	Report *Report

	// Subreports lists the generated subreports in the order they were emitted.
	Subreports []GeneratedSubreport
}
