package cli

import (
	"os"

	"github.com/oposita/studyplan/internal/obslog"
	"github.com/oposita/studyplan/internal/report"
	"github.com/spf13/cobra"
)

// addFormatFlag registers the --format flag shared by every reporting
// subcommand (SPEC_FULL.md §6).
func addFormatFlag(cmd *cobra.Command, format *string) {
	cmd.Flags().StringVar(format, "format", "table", `output format: "json" or "table"`)
}

// addVerboseFlag registers the -v/--verbose flag that turns on generation
// diagnostics (SPEC_FULL.md §4.10).
func addVerboseFlag(cmd *cobra.Command, verbose *bool) {
	cmd.Flags().BoolVarP(verbose, "verbose", "v", false, "print generation diagnostics to stderr")
}

func resolveFormat(raw string) report.Format {
	if raw == string(report.FormatJSON) {
		return report.FormatJSON
	}
	return report.FormatTable
}

func resolveObserver(verbose bool) obslog.Observer {
	if !verbose {
		return obslog.NoopObserver{}
	}
	return obslog.NewLogObserver(os.Stderr)
}

func readFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
