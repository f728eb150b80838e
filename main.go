// =============================================================================
// ReportsImport - Main Entry Point
// =============================================================================
//
// This is the main entry point for the ReportsImport CLI application. It
// delegates command execution to the cmd package.
//
// USAGE:
//   ReportsImport /in:<path> /out:<path>   - Convert a report file to a layout
//   ReportsImport version                  - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Argument parsing, formats, converters and layout I/O
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/reports-import/cmd"
)

func main() {
	cmd.Execute()
}
