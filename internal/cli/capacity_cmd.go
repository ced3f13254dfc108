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

func newCapacityCmd() *cobra.Command {
	var inputPath, today, format string

	cmd := &cobra.Command{
		Use:   "capacity",
		Short: "Compute planable capacity from form inputs without generating a plan",
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

			cap, err := contract.CalculateCapacity(inputs, today)
			if err != nil {
				return err
			}

			return report.WriteCapacity(os.Stdout, cap, resolveFormat(format))
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "path to a form_inputs JSON document (required)")
	cmd.Flags().StringVar(&today, "today", "", "fixed ISO today date (YYYY-MM-DD); defaults to the current date")
	_ = cmd.MarkFlagRequired("input")
	addFormatFlag(cmd, &format)

	return cmd
}
