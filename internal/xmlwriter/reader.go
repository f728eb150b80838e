package xmlwriter

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/ginjaninja78/reports-import/internal/report"
)

// ReportElement is the decoded form of a <report> element. It is exported so
// documents that embed layouts, such as the engine envelope, can decode them
// in place.
type ReportElement struct {
	XMLName    xml.Name      `xml:"report"`
	Name       string        `xml:"name,attr"`
	Source     string        `xml:"source,attr"`
	DataSource string        `xml:"dataSource,attr"`
	Bands      []bandElement `xml:"band"`
}

type bandElement struct {
	Kind     string           `xml:"kind,attr"`
	Height   int              `xml:"height,attr"`
	Controls []controlElement `xml:",any"`
}

type controlElement struct {
	XMLName    xml.Name
	Name       string `xml:"name,attr"`
	Expression string `xml:"expression,attr"`
	SourceURL  string `xml:"sourceUrl,attr"`
	X          int    `xml:"x,attr"`
	Y          int    `xml:"y,attr"`
	Width      int    `xml:"width,attr"`
	Height     int    `xml:"height,attr"`
	Text       string `xml:",chardata"`
}

// Report converts the decoded element into the report model.
func (e *ReportElement) Report() *report.Report {
	r := &report.Report{
		Name:       e.Name,
		Source:     e.Source,
		DataSource: e.DataSource,
	}

	for _, be := range e.Bands {
		band := &report.Band{Kind: report.BandKind(be.Kind), Height: be.Height}
		for _, ce := range be.Controls {
			band.Controls = append(band.Controls, &report.Control{
				Kind:            report.ControlKind(ce.XMLName.Local),
				Name:            ce.Name,
				Text:            ce.Text,
				Expression:      ce.Expression,
				ReportSourceURL: ce.SourceURL,
				Bounds: report.Bounds{
					X:      ce.X,
					Y:      ce.Y,
					Width:  ce.Width,
					Height: ce.Height,
				},
			})
		}
		r.Bands = append(r.Bands, band)
	}

	return r
}

// Decode reads a single layout document from in.
func Decode(in io.Reader) (*report.Report, error) {
	var el ReportElement
	if err := xml.NewDecoder(in).Decode(&el); err != nil {
		return nil, fmt.Errorf("failed to decode layout: %w", err)
	}
	return el.Report(), nil
}
