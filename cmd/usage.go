package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/ginjaninja78/reports-import/internal/converter"
)

const (
	usageIndent  = "              "
	formatIndent = usageIndent + "      "
)

// writeUsage prints the invocation help listing the enabled formats.
func writeUsage(w io.Writer, formats []converter.Format) {
	var b strings.Builder

	b.WriteString("Imports report files of different types into a report layout file.\n\n")
	b.WriteString("Usage:\n")
	b.WriteString("ReportsImport /in:path1 /out:path2\n\n")
	b.WriteString(usageIndent + "path1 Specifies the input file's location and type.\n")

	for _, f := range formats {
		for _, line := range f.Usage {
			b.WriteString(formatIndent + line + "\n")
		}
		for _, line := range f.Options {
			b.WriteString(usageIndent + line + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(usageIndent + "path2 Specifies the output file's location.\n\n")
	b.WriteString("Commands:\n")
	b.WriteString("  version          Display the application version.\n\n")
	b.WriteString("Flags:\n")
	b.WriteString("  --config <file>  Read settings and external engines from a YAML file.\n")
	b.WriteString("  -v, --verbose    Trace debug messages.\n\n")
	b.WriteString("For more information, see https://github.com/ginjaninja78/reports-import\n")

	fmt.Fprint(w, b.String())
}
