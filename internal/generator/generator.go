// Package generator implements generatePlanFromState (spec.md §4.4, §4.5):
// it drains each day's available minutes through the allocator, rolls up
// weekly summaries, and assembles the immutable Plan. Grounded on the
// teacher's internal/scheduler.AllocateSlices drain-loop shape (first pass /
// tail / deferred pass over a shrinking `remaining` budget).
package generator

import (
	"fmt"
	"time"

	"github.com/oposita/studyplan/internal/calendar"
	"github.com/oposita/studyplan/internal/capacity"
	"github.com/oposita/studyplan/internal/domain"
	"github.com/oposita/studyplan/internal/obslog"
	"github.com/oposita/studyplan/internal/scheduler"
)

// Options mirrors capacity.Options' fixed "today" for deterministic testing
// (spec.md §6), plus an optional diagnostics Observer (nil means no-op).
type Options struct {
	TodayISO string
	Observer obslog.Observer
}

// FromState runs generatePlanFromState (spec.md §4.5): converts state to a
// GlobalBudget, then drives the day builder identically for every call,
// which is what makes replanning deterministic.
func FromState(inputs domain.FormInputs, s domain.StudentState, opts Options) (domain.Plan, error) {
	obs := obslog.Or(opts.Observer)
	todayISO := opts.TodayISO
	if todayISO == "" {
		todayISO = s.Meta.TodayISO
	}

	cap, err := capacity.Calculate(inputs, todayISO)
	if err != nil {
		return domain.Plan{}, err
	}

	today, err := calendar.ParseISO(todayISO, "today")
	if err != nil {
		return domain.Plan{}, err
	}
	daysUntilExam, err := capacity.DaysUntilExam(inputs, todayISO)
	if err != nil {
		return domain.Plan{}, err
	}
	if daysUntilExam < 0 {
		daysUntilExam = 0
	}

	budget := scheduler.NewBudget(s, cap)
	ctx := scheduler.NewContext()

	debug := &domain.DebugInfo{
		Capacity:        cap,
		StreamTotals:    map[domain.Stream]int{domain.StreamTheory: 0, domain.StreamCases: 0, domain.StreamProgramming: 0},
		StarvationWeeks: map[domain.Stream]int{},
	}

	availableMin := make([]int, daysUntilExam)
	for d := 0; d < daysUntilExam; d++ {
		weekOfDay := d/7 + 1
		if weekOfDay > cap.EffectivePlanningWeeks {
			continue
		}
		date := calendar.AddDays(today, d)
		wd := calendar.WeekdayIndex(date)
		hours := inputs.AvailabilityHours[wd]
		if hours < 0 {
			hours = 0
		}
		availableMin[d] = int(hours*60 + 0.5)
	}

	days := make([]domain.DayPlan, 0, daysUntilExam)
	currentWeek := 1
	ctx.WeekRemainingMin = weekTotal(availableMin, 0)

	for d := 0; d < daysUntilExam; d++ {
		date := calendar.AddDays(today, d)
		weekOfDay := d/7 + 1

		if weekOfDay != currentWeek {
			archiveWeek(debug, ctx, budget, currentWeek)
			ctx.StartWeek(weekOfDay)
			currentWeek = weekOfDay
			ctx.WeekRemainingMin = weekTotal(availableMin, d)
		}

		day := buildDay(budget, ctx, date, d, weekOfDay, cap, availableMin[d], obs)
		for _, b := range day.Blocks {
			debug.StreamTotals[domain.StreamOf(b.Activity)] += b.DurationMinutes
		}
		days = append(days, day)
	}
	archiveWeek(debug, ctx, budget, currentWeek)

	weeklySummaries := buildWeeklySummaries(days)
	explanations := buildExplanations(cap, debug)

	return domain.Plan{
		Meta: domain.PlanMeta{
			GeneratedAt: time.Now().UTC(),
			TodayISO:    todayISO,
			ExamDateISO: inputs.ExamDate,
			Region:      inputs.Region,
			Stage:       inputs.Stage,
			TotalUnits:  cap.UnitsCount,
		},
		Days:            days,
		WeeklySummaries: weeklySummaries,
		Explanations:    explanations,
		Debug:           debug,
	}, nil
}

// archiveWeek records the just-completed week's actuals and starvation.
func archiveWeek(debug *domain.DebugInfo, ctx *scheduler.Context, budget *scheduler.Budget, weekIndex int) {
	actual := domain.WeekActual{
		WeekIndex:       weekIndex,
		MinutesByStream: map[domain.Stream]int{},
	}
	for _, s := range []domain.Stream{domain.StreamTheory, domain.StreamCases, domain.StreamProgramming} {
		m := ctx.ThisWeekMinutes[s]
		actual.MinutesByStream[s] = m
		if m < domain.WeeklyMinimumMinutes {
			actual.MissingStreams = append(actual.MissingStreams, s)
		}
	}
	// Starvation: a stream with zero minutes this week while remaining > 0
	// and we're past the theory-only weeks (week >= 3 is when Stage A first applies).
	if weekIndex >= 3 {
		if actual.MinutesByStream[domain.StreamCases] == 0 && budget.CasesRemaining > 0 {
			debug.StarvationWeeks[domain.StreamCases]++
		}
		if actual.MinutesByStream[domain.StreamProgramming] == 0 && budget.ProgrammingRemaining > 0 {
			debug.StarvationWeeks[domain.StreamProgramming]++
		}
	}
	debug.WeeklyActuals = append(debug.WeeklyActuals, actual)
}

// weekTotal sums the precomputed available minutes for the 7-day week that
// contains dayIndex.
func weekTotal(availableMin []int, dayIndex int) int {
	start := (dayIndex / 7) * 7
	end := start + 7
	if end > len(availableMin) {
		end = len(availableMin)
	}
	total := 0
	for i := start; i < end; i++ {
		total += availableMin[i]
	}
	return total
}

func buildExplanations(cap domain.PlanCapacity, debug *domain.DebugInfo) []string {
	var notes []string
	notes = append(notes, fmt.Sprintf("Buffer status: %s (%.0f%% slack against planned workload).", cap.BufferStatus, cap.BufferRatio*100))

	starved := make([]domain.Stream, 0, len(debug.StarvationWeeks))
	for stream := range debug.StarvationWeeks {
		starved = append(starved, stream)
	}
	scheduler.OrderByPrecedence(starved)
	for _, stream := range starved {
		if weeks := debug.StarvationWeeks[stream]; weeks > 0 {
			notes = append(notes, fmt.Sprintf("%s was starved (zero minutes scheduled) in %d week(s).", stream, weeks))
		}
	}
	for _, w := range debug.WeeklyActuals {
		for _, s := range w.MissingStreams {
			notes = append(notes, fmt.Sprintf("Week %d: %s was under the weekly floor — forced where possible.", w.WeekIndex, s))
		}
	}
	return notes
}
