// Package cli implements the planner command tree (SPEC_FULL.md §6): a
// non-interactive, flag- and file-driven Cobra surface over internal/contract.
// Grounded on the teacher's internal/cli/root.go command-tree shape, stripped
// of the interactive shell and service layer that don't apply here.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level "planner" command and registers every
// subcommand (SPEC_FULL.md §6: plan, replan, capacity).
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "planner",
		Short: "Deterministic certification-exam study plan generator",
		Long: `Deterministic certification-exam study plan generator.

Every subcommand reads its JSON input(s) from disk and writes its result to
stdout. Nothing persists across invocations.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newPlanCmd(),
		newReplanCmd(),
		newCapacityCmd(),
	)
	return root
}
