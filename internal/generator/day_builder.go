package generator

import (
	"fmt"
	"time"

	"github.com/oposita/studyplan/internal/calendar"
	"github.com/oposita/studyplan/internal/domain"
	"github.com/oposita/studyplan/internal/obslog"
	"github.com/oposita/studyplan/internal/scheduler"
)

// buildDay runs the day builder (spec.md §4.4) for a single calendar day.
func buildDay(budget *scheduler.Budget, ctx *scheduler.Context, date time.Time, dayOffset, weekOfDay int, cap domain.PlanCapacity, availableMin int, obs obslog.Observer) domain.DayPlan {
	day := domain.DayPlan{
		DateISO: calendar.FormatISO(date),
		Weekday: calendar.SundayBasedWeekday(date),
		Hours:   float64(availableMin) / 60,
	}

	if weekOfDay > cap.EffectivePlanningWeeks || availableMin < domain.MinBlockDuration {
		return day
	}

	ctx.StartDay(availableMin)
	remaining := availableMin

	// Main drain: one block per allocator call, sized by BlockDuration, while
	// at least a full-length block's worth of minutes remains.
	for remaining >= domain.MaxBlockDuration {
		decision, ok := budget.Select(ctx)
		if !ok {
			break
		}
		duration := budget.BlockDuration(decision.Activity, remaining, ctx)
		emitBlock(&day, budget, ctx, decision, duration, obs)
		remaining -= duration
	}

	// Tail (and short-day fallback, which is the same case on entry): one
	// more call, sized by BlockDuration so a STUDY_THEME tail still respects
	// the day's STUDY_THEME cap instead of taking all remaining minutes
	// unconditionally.
	if remaining >= domain.MinBlockDuration && remaining < domain.MaxBlockDuration {
		if decision, ok := budget.Select(ctx); ok {
			duration := budget.BlockDuration(decision.Activity, remaining, ctx)
			emitBlock(&day, budget, ctx, decision, duration, obs)
		}
	}

	return day
}

// emitBlock commits the allocator's decision to the budget and context, then
// appends the resulting StudyBlock to the day.
func emitBlock(day *domain.DayPlan, budget *scheduler.Budget, ctx *scheduler.Context, decision scheduler.Decision, duration int, obs obslog.Observer) {
	if duration < domain.MinBlockDuration {
		return
	}

	unit := decision.Unit
	phase, typ, format, fixedUnit := domain.MetaFor(decision.Activity)
	if fixedUnit != "" {
		unit = fixedUnit
	}

	budget.Commit(decision.Activity, unit, duration)
	ctx.RecordScheduled(decision.Activity, duration)
	ctx.TheoryUnitOverride = ""

	index := len(day.Blocks)
	unitTag := unit
	if unitTag == "" {
		unitTag = "NA"
	}

	block := domain.StudyBlock{
		ID:              fmt.Sprintf("%s__%d__%s__%s", day.DateISO, index, decision.Activity, unitTag),
		DateISO:         day.DateISO,
		Index:           index,
		Activity:        decision.Activity,
		Unit:            unit,
		DurationMinutes: duration,
		Phase:           phase,
		Type:            typ,
		Format:          format,
	}
	day.Blocks = append(day.Blocks, block)

	obs.OnEvent(obslog.Event{
		Component: "generator",
		Message:   fmt.Sprintf("%s: scheduled %s (%d min, unit=%s)", day.DateISO, decision.Activity, duration, unitTag),
	})
}
