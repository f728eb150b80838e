package converter

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/reports-import/internal/args"
	"github.com/ginjaninja78/reports-import/internal/usage"
)

// =============================================================================
// FORMAT
// =============================================================================

// Format describes one supported input format.
type Format struct {
	// Name identifies the format in configuration and logs, e.g. "crystal".
	Name string

	// Extensions lists the accepted file extensions including the dot.
	Extensions []string

	// Usage lines describe the format in the help text, e.g.
	// "*.rpt file matches Crystal Reports."
	Usage []string

	// Options lines document format-specific arguments in the help text.
	Options []string

	// EmitsSubreports marks formats that split embedded reports into
	// separate files. Only they receive a SubreportHandler.
	EmitsSubreports bool

	// New builds a converter for one conversion.
	New func(setup Setup) (Converter, error)
}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry maps file extensions to formats.
type Registry struct {
	formats []*Format
	byExt   map[string]*Format
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byExt: make(map[string]*Format)}
}

// Register adds a format. An extension can belong to one format only.
func (r *Registry) Register(f Format) error {
	if f.Name == "" {
		return fmt.Errorf("format has no name")
	}
	if f.New == nil {
		return fmt.Errorf("format %q has no constructor", f.Name)
	}
	if len(f.Extensions) == 0 {
		return fmt.Errorf("format %q has no extensions", f.Name)
	}

	for _, ext := range f.Extensions {
		if owner, taken := r.byExt[normalizeExt(ext)]; taken {
			return fmt.Errorf("extension %s of format %q is already registered by %q", ext, f.Name, owner.Name)
		}
	}

	format := &f
	r.formats = append(r.formats, format)
	for _, ext := range f.Extensions {
		r.byExt[normalizeExt(ext)] = format
	}

	return nil
}

// Formats returns the registered formats in registration order.
func (r *Registry) Formats() []Format {
	out := make([]Format, len(r.formats))
	for i, f := range r.formats {
		out[i] = *f
	}
	return out
}

// Lookup returns the format accepting ext. ext is matched case-insensitively.
func (r *Registry) Lookup(ext string) (Format, bool) {
	f, ok := r.byExt[normalizeExt(ext)]
	if !ok {
		return Format{}, false
	}
	return *f, true
}

// Select builds the converter for an input extension.
//
// PARAMETERS:
//   - ext: The input file extension, including the dot.
//   - a: The parsed command-line arguments.
//   - outputPath: The /out path.
//   - onSubreport: The subreport handler bound to outputPath. It is passed on
//     only to formats that emit subreports.
//
// RETURNS:
//   - The configured converter and its format.
//   - A usage error if no registered format accepts ext.
func (r *Registry) Select(ext string, a *args.Map, outputPath string, onSubreport SubreportHandler) (Converter, Format, error) {
	f, ok := r.Lookup(ext)
	if !ok {
		return nil, Format{}, usage.Errorf("no enabled format accepts %q files", ext)
	}

	setup := Setup{Args: a, OutputPath: outputPath}
	if f.EmitsSubreports {
		setup.OnSubreport = onSubreport
	}

	conv, err := f.New(setup)
	if err != nil {
		return nil, f, fmt.Errorf("failed to set up %s converter: %w", f.Name, err)
	}

	return conv, f, nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
