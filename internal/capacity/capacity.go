// Package capacity implements calculateCapacity (spec.md §4.1): the pure
// mapping from calendar availability to planable minutes, grounded on the
// teacher's threshold/ratio-tiering shape in internal/scheduler/risk.go
// (ComputeRisk computes a ratio then classifies it into tiers; Calculate does
// the same for buffer ratio -> BufferStatus).
package capacity

import (
	"github.com/oposita/studyplan/internal/calendar"
	"github.com/oposita/studyplan/internal/domain"
)

// Options carries the only configuration knob the engine accepts: a fixed
// "today" for deterministic testing (spec.md §6).
type Options struct {
	TodayISO string
}

// Calculate computes PlanCapacity from (inputs, todayISO) — spec.md §4.1.
func Calculate(inputs domain.FormInputs, todayISO string) (domain.PlanCapacity, error) {
	today, err := calendar.ParseISO(todayISO, "today")
	if err != nil {
		return domain.PlanCapacity{}, err
	}
	exam, err := calendar.ParseISO(inputs.ExamDate, "exam_date")
	if err != nil {
		return domain.PlanCapacity{}, err
	}

	daysUntilExam := calendar.DiffDays(today, exam)
	totalWeeks := ceilDiv(daysUntilExam, 7)
	effectivePlanningWeeks := totalWeeks - domain.ReserveWeeks
	if effectivePlanningWeeks < 0 {
		effectivePlanningWeeks = 0
	}

	availableMin := 0
	for d := 0; d < effectivePlanningWeeks*7; d++ {
		day := calendar.AddDays(today, d)
		wd := calendar.WeekdayIndex(day)
		hours := inputs.AvailabilityHours[wd]
		if hours < 0 {
			hours = 0
		}
		availableMin += int(roundToMinute(hours * 60))
	}

	unitsCount := inputs.UnitCount()
	theoryPlanned := unitsCount * domain.TheoryEnvelopeMinutes
	casesPlanned := int(0.6 * float64(theoryPlanned))
	programmingPlanned := int(0.4 * float64(theoryPlanned))
	plannedMinutes := theoryPlanned + casesPlanned + programmingPlanned

	bufferMinutes := availableMin - plannedMinutes
	var bufferRatio float64
	if availableMin > 0 {
		bufferRatio = float64(bufferMinutes) / float64(availableMin)
	}

	return domain.PlanCapacity{
		TotalWeeks:             totalWeeks,
		EffectivePlanningWeeks: effectivePlanningWeeks,
		AvailableEffectiveMin:  availableMin,
		UnitsCount:             unitsCount,
		TheoryPlanned:          theoryPlanned,
		CasesPlanned:           casesPlanned,
		ProgrammingPlanned:     programmingPlanned,
		PlannedMinutes:         plannedMinutes,
		BufferMinutes:          bufferMinutes,
		BufferRatio:            bufferRatio,
		BufferStatus:           domain.ClassifyBuffer(bufferRatio),
	}, nil
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

func roundToMinute(v float64) float64 {
	return float64(int(v + 0.5))
}

// DaysUntilExam is a small helper re-exposed for callers (e.g. the day
// builder) that need the full span, not just the reserved planning window.
func DaysUntilExam(inputs domain.FormInputs, todayISO string) (int, error) {
	today, err := calendar.ParseISO(todayISO, "today")
	if err != nil {
		return 0, err
	}
	exam, err := calendar.ParseISO(inputs.ExamDate, "exam_date")
	if err != nil {
		return 0, err
	}
	return calendar.DiffDays(today, exam), nil
}
