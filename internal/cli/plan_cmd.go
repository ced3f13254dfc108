package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/oposita/studyplan/internal/calendar"
	"github.com/oposita/studyplan/internal/contract"
	"github.com/oposita/studyplan/internal/loader"
	"github.com/oposita/studyplan/internal/report"
	"github.com/spf13/cobra"
)

func newPlanCmd() *cobra.Command {
	var inputPath, today, format string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a fresh study plan from form inputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readFile(inputPath)
			if err != nil {
				return fmt.Errorf("reading --input: %w", err)
			}
			inputs, err := loader.ParseFormInputs(raw)
			if err != nil {
				return err
			}
			if today == "" {
				today = calendar.FormatISO(time.Now())
			}

			plan, err := contract.GeneratePlan(inputs, today, contract.GenerateOptions{
				TodayISO: today,
				Observer: resolveObserver(verbose),
			})
			if err != nil {
				return err
			}

			return report.WritePlan(os.Stdout, plan, resolveFormat(format))
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "path to a form_inputs JSON document (required)")
	cmd.Flags().StringVar(&today, "today", "", "fixed ISO today date (YYYY-MM-DD); defaults to the current date")
	_ = cmd.MarkFlagRequired("input")
	addFormatFlag(cmd, &format)
	addVerboseFlag(cmd, &verbose)

	return cmd
}
