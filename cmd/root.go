// =============================================================================
// ReportsImport - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command
// performs the import itself; its positional arguments are the /key:value
// tokens of the import.
//
// COBRA CLI STRUCTURE:
//   rootCmd (ReportsImport /in:<path> /out:<path>)
//   └── versionCmd (ReportsImport version)
//
// EXIT STATUS:
//   0  the layout was written
//   1  operational error (message printed)
//   2  usage error (usage text printed)
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/reports-import/internal/usage"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitError      = 1
	ExitUsageError = 2
)

// globalFlags holds the persistent flag values of one invocation.
type globalFlags struct {
	// cfgFile is the path to the optional configuration file.
	cfgFile string

	// verbose enables debug tracing.
	verbose bool
}

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// newRootCmd builds the command tree. A fresh tree per invocation keeps flag
// state from leaking between runs.
func newRootCmd() (*cobra.Command, *globalFlags) {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "ReportsImport /in:<path> /out:<path> [/crystal:UnrecognizedFunctionBehavior=Ignore]",
		Short: "Imports report files of different types into a report layout file",

		// /key:value tokens are positional for cobra; the importer validates them.
		Args: cobra.ArbitraryArgs,

		// Errors and usage are rendered by Run.
		SilenceErrors: true,
		SilenceUsage:  true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, flags, args)
		},
	}

	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================

	// --config flag: optional YAML configuration file. Without it the
	// built-in defaults apply.
	rootCmd.PersistentFlags().StringVar(
		&flags.cfgFile,
		"config",
		"",
		"Path to the configuration file",
	)

	// --verbose flag: enables debug tracing.
	rootCmd.PersistentFlags().BoolVarP(
		&flags.verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	// Malformed flags are usage errors like malformed tokens.
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usage.Explainf("%v", err)
	})

	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != rootCmd {
			defaultHelp(cmd, args)
			return
		}
		writeUsage(cmd.OutOrStdout(), availableFormats(flags.cfgFile))
	})

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd, flags
}

// =============================================================================
// EXECUTE FUNCTIONS
// =============================================================================

// Execute runs the CLI with the process arguments and exits with its status.
// This is called by main.main().
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout))
}

// Run executes the CLI with argv and writes all output to stdout.
//
// PARAMETERS:
//   - argv: The command-line arguments without the program name.
//   - stdout: Receives usage text, error messages and trace output.
//
// RETURNS:
//   - The process exit status.
func Run(argv []string, stdout io.Writer) int {
	rootCmd, flags := newRootCmd()

	// cobra falls back to os.Args for a nil slice.
	if argv == nil {
		argv = []string{}
	}
	rootCmd.SetArgs(argv)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stdout)

	err := rootCmd.Execute()
	if err == nil {
		return ExitOK
	}

	if u, ok := usage.As(err); ok {
		if u.Explain {
			fmt.Fprintln(stdout, u.Reason)
		}
		writeUsage(stdout, availableFormats(flags.cfgFile))
		return ExitUsageError
	}

	fmt.Fprintln(stdout, err.Error())
	return ExitError
}
