// =============================================================================
// ReportsImport - XML Layout Writer
// =============================================================================
//
// This module serializes a report layout to XML. Every report, root or
// subreport, is written to its own file with the same structure:
//
//   <?xml version="1.0" encoding="UTF-8"?>
//   <report name="Sales" source="C:\reports\sales.rpt" dataSource="Orders">
//     <band kind="PageHeader" height="20">
//       <label name="lblAmount" x="0" y="0" width="100" height="20">Amount</label>
//     </band>
//     <band kind="Detail" height="20">
//       <field name="fldAmount" expression="[Amount]"/>
//     </band>
//     <band kind="ReportFooter" height="40">
//       <subreport name="Totals" sourceUrl="out_Totals.xml"/>
//     </band>
//   </report>
//
// Control elements are named after the control kind. Bounds are written only
// when at least one coordinate is set.
//
// =============================================================================

package xmlwriter

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/ginjaninja78/reports-import/internal/report"
	"github.com/ginjaninja78/reports-import/pkg/utils"
)

// =============================================================================
// GENERATION OPTIONS
// =============================================================================

// Options controls the layout output.
type Options struct {
	// Indent is the string used for one level of indentation.
	// Default: "  " (two spaces)
	Indent string

	// IncludeXMLDeclaration determines whether to write the XML declaration.
	// Default: true
	IncludeXMLDeclaration bool

	// XMLVersion is the XML version for the declaration.
	// Default: "1.0"
	XMLVersion string

	// Encoding is the encoding for the declaration.
	// Default: "UTF-8"
	Encoding string
}

// DefaultOptions returns the default generation options.
func DefaultOptions() Options {
	return Options{
		Indent:                "  ",
		IncludeXMLDeclaration: true,
		XMLVersion:            "1.0",
		Encoding:              "UTF-8",
	}
}

// =============================================================================
// WRITER
// =============================================================================

// Writer serializes report layouts.
type Writer struct {
	options Options
}

// New returns a Writer using options.
func New(options Options) *Writer {
	if options.XMLVersion == "" {
		options.XMLVersion = "1.0"
	}
	if options.Encoding == "" {
		options.Encoding = "UTF-8"
	}
	return &Writer{options: options}
}

// Save writes the layout of r to path, replacing any existing file.
//
// PARAMETERS:
//   - r: The report to serialize.
//   - path: The destination file.
//
// RETURNS:
//   - An error if the file cannot be written.
func (w *Writer) Save(r *report.Report, path string) error {
	return utils.WriteFileAtomic(path, func(out io.Writer) error {
		return w.Encode(out, r)
	})
}

// Encode writes the layout of r to out.
func (w *Writer) Encode(out io.Writer, r *report.Report) error {
	data, err := w.Marshal(r)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

// Marshal returns the layout of r as an XML document.
func (w *Writer) Marshal(r *report.Report) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("failed to marshal layout: no report")
	}

	var buffer bytes.Buffer

	if w.options.IncludeXMLDeclaration {
		buffer.WriteString(fmt.Sprintf("<?xml version=\"%s\" encoding=\"%s\"?>\n",
			w.options.XMLVersion, w.options.Encoding))
	}

	writeElement(&buffer, buildReportElement(r), w.options.Indent, 0)

	return buffer.Bytes(), nil
}

// =============================================================================
// ELEMENT TREE
// =============================================================================

// attr is a single XML attribute. Attributes keep their insertion order.
type attr struct {
	name  string
	value string
}

// element is a generic XML element.
type element struct {
	name       string
	attributes []attr
	value      string
	children   []element
}

func buildReportElement(r *report.Report) element {
	root := element{name: "report"}
	root.attributes = appendNonEmpty(root.attributes, "name", r.Name)
	root.attributes = appendNonEmpty(root.attributes, "source", r.Source)
	root.attributes = appendNonEmpty(root.attributes, "dataSource", r.DataSource)

	for _, band := range r.Bands {
		root.children = append(root.children, buildBandElement(band))
	}

	return root
}

func buildBandElement(b *report.Band) element {
	el := element{
		name: "band",
		attributes: []attr{
			{name: "kind", value: string(b.Kind)},
		},
	}
	if b.Height != 0 {
		el.attributes = append(el.attributes, attr{name: "height", value: strconv.Itoa(b.Height)})
	}

	for _, c := range b.Controls {
		el.children = append(el.children, buildControlElement(c))
	}

	return el
}

func buildControlElement(c *report.Control) element {
	el := element{name: string(c.Kind), value: c.Text}
	el.attributes = appendNonEmpty(el.attributes, "name", c.Name)
	el.attributes = appendNonEmpty(el.attributes, "expression", c.Expression)
	el.attributes = appendNonEmpty(el.attributes, "sourceUrl", c.ReportSourceURL)

	if c.Bounds != (report.Bounds{}) {
		el.attributes = append(el.attributes,
			attr{name: "x", value: strconv.Itoa(c.Bounds.X)},
			attr{name: "y", value: strconv.Itoa(c.Bounds.Y)},
			attr{name: "width", value: strconv.Itoa(c.Bounds.Width)},
			attr{name: "height", value: strconv.Itoa(c.Bounds.Height)},
		)
	}

	return el
}

func appendNonEmpty(attrs []attr, name, value string) []attr {
	if value == "" {
		return attrs
	}
	return append(attrs, attr{name: name, value: value})
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// writeElement writes an XML element to the buffer with indentation.
func writeElement(buffer *bytes.Buffer, el element, indent string, level int) {
	for i := 0; i < level; i++ {
		buffer.WriteString(indent)
	}

	buffer.WriteString("<")
	buffer.WriteString(el.name)

	for _, a := range el.attributes {
		buffer.WriteString(fmt.Sprintf(" %s=\"%s\"", a.name, escapeXML(a.value)))
	}

	// Self-closing tag.
	if len(el.children) == 0 && el.value == "" {
		buffer.WriteString("/>\n")
		return
	}

	buffer.WriteString(">")

	if el.value != "" {
		buffer.WriteString(escapeXML(el.value))
	} else {
		buffer.WriteString("\n")

		for _, child := range el.children {
			writeElement(buffer, child, indent, level+1)
		}

		for i := 0; i < level; i++ {
			buffer.WriteString(indent)
		}
	}

	buffer.WriteString("</")
	buffer.WriteString(el.name)
	buffer.WriteString(">\n")
}

// escapeXML escapes special characters for XML. Line breaks and tabs are
// written as character references so attribute values survive a round trip.
func escapeXML(s string) string {
	var buffer bytes.Buffer

	for _, r := range s {
		switch r {
		case '&':
			buffer.WriteString("&amp;")
		case '<':
			buffer.WriteString("&lt;")
		case '>':
			buffer.WriteString("&gt;")
		case '"':
			buffer.WriteString("&quot;")
		case '\'':
			buffer.WriteString("&apos;")
		case '\n':
			buffer.WriteString("&#xA;")
		case '\r':
			buffer.WriteString("&#xD;")
		case '\t':
			buffer.WriteString("&#x9;")
		default:
			buffer.WriteRune(r)
		}
	}

	return buffer.String()
}
