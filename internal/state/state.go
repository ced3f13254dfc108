// Package state implements deriveInitialState and the StudentState lifecycle
// (spec.md §3, §4.2), grounded on the teacher's defaults-cascade shape in
// internal/generation/policies.go (ResolveWorkItemDefaults).
package state

import (
	"fmt"
	"time"

	"github.com/oposita/studyplan/internal/domain"
)

// DeriveInitial constructs the pass-1 StudentState: one UnitLedger per unit
// (required from the fixed constants, done all zero), the global ledger from
// capacity, default preferences, and an initial slack summary.
func DeriveInitial(inputs domain.FormInputs, cap domain.PlanCapacity, todayISO string) domain.StudentState {
	units := make([]domain.UnitLedger, cap.UnitsCount)
	for i := 0; i < cap.UnitsCount; i++ {
		units[i] = domain.UnitLedger{
			Key:      fmt.Sprintf("Unidad %d", i+1),
			Index:    i + 1,
			Required: domain.DefaultRequiredMinutes(),
		}
	}

	global := domain.GlobalLedger{
		CasesRequired:       cap.CasesPlanned,
		ProgrammingRequired: cap.ProgrammingPlanned,
	}

	s := domain.StudentState{
		Meta: domain.StudentMeta{
			Version:     1,
			CreatedAt:   time.Now().UTC(),
			TodayISO:    todayISO,
			ExamDateISO: inputs.ExamDate,
		},
		Units:       units,
		Global:      global,
		Preferences: domain.DefaultPreferences(),
	}
	s.Slack = recomputeSlack(s, cap.AvailableEffectiveMin)
	return s
}

// totalRequired sums every required-minutes field across units and the global ledger.
func totalRequired(s domain.StudentState) int {
	total := 0
	for _, u := range s.Units {
		total += u.Required.StudyTheme + u.Required.Review + u.Required.Podcast + u.Required.Flashcard + u.Required.Quiz
	}
	total += s.Global.CasesRequired + s.Global.ProgrammingRequired
	return total
}

// totalDone sums every done-minutes field across units and the global ledger.
func totalDone(s domain.StudentState) int {
	total := 0
	for _, u := range s.Units {
		total += u.Done.StudyTheme + u.Done.Review + u.Done.Podcast + u.Done.Flashcard + u.Done.Quiz
	}
	total += s.Global.CasesDone + s.Global.ProgrammingDone
	return total
}

// recomputeSlack recomputes SlackInfo against a fixed future capacity (spec.md §4.2).
func recomputeSlack(s domain.StudentState, effectiveCapacityFuture int) domain.SlackInfo {
	req := domain.NonNegative(totalRequired(s) - totalDone(s))
	slackMin := effectiveCapacityFuture - req
	var ratio float64
	if effectiveCapacityFuture > 0 {
		ratio = float64(slackMin) / float64(effectiveCapacityFuture)
	}
	return domain.SlackInfo{
		EffectiveCapacityFuture: effectiveCapacityFuture,
		RequiredMinutesFuture:   req,
		SlackMinutes:            slackMin,
		SlackRatio:              ratio,
		Status:                  domain.ClassifyBuffer(ratio),
	}
}
