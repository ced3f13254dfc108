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

func newReplanCmd() *cobra.Command {
	var statePath, eventsPath, today, format string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "replan",
		Short: "Apply feedback events to a student state and regenerate the plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			rawState, err := readFile(statePath)
			if err != nil {
				return fmt.Errorf("reading --state: %w", err)
			}
			inputs, s, err := loader.ParseStateDocument(rawState)
			if err != nil {
				return err
			}

			rawEvents, err := readFile(eventsPath)
			if err != nil {
				return fmt.Errorf("reading --events: %w", err)
			}
			feedback, err := loader.ParseFeedbackEvents(rawEvents)
			if err != nil {
				return err
			}

			obs := resolveObserver(verbose)
			s = contract.ApplyFeedbackEventsObserved(s, feedback, obs)

			if today == "" {
				today = calendar.FormatISO(time.Now())
			}

			plan, err := contract.GeneratePlanFromState(inputs, s, contract.GenerateOptions{
				TodayISO: today,
				Observer: obs,
			})
			if err != nil {
				return err
			}

			return report.WritePlan(os.Stdout, plan, resolveFormat(format))
		},
	}

	cmd.Flags().StringVar(&statePath, "state", "", "path to a JSON document holding form_inputs and state (required)")
	cmd.Flags().StringVar(&eventsPath, "events", "", "path to a feedback-events JSON array (required)")
	cmd.Flags().StringVar(&today, "today", "", "fixed ISO today date (YYYY-MM-DD); defaults to the current date")
	_ = cmd.MarkFlagRequired("state")
	_ = cmd.MarkFlagRequired("events")
	addFormatFlag(cmd, &format)
	addVerboseFlag(cmd, &verbose)

	return cmd
}
