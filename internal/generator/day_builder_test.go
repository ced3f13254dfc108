package generator

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oposita/studyplan/internal/domain"
	"github.com/oposita/studyplan/internal/obslog"
	"github.com/oposita/studyplan/internal/scheduler"
)

func freshBudgetAndContext() (*scheduler.Budget, *scheduler.Context) {
	s := domain.StudentState{
		Units: []domain.UnitLedger{
			{Key: "Unidad 1", Index: 1, Required: domain.DefaultRequiredMinutes()},
			{Key: "Unidad 2", Index: 2, Required: domain.DefaultRequiredMinutes()},
		},
		Global:      domain.GlobalLedger{CasesRequired: 2000, ProgrammingRequired: 2000},
		Preferences: domain.DefaultPreferences(),
	}
	cap := domain.PlanCapacity{TheoryPlanned: 2 * domain.TheoryEnvelopeMinutes, CasesPlanned: 2000, ProgrammingPlanned: 2000, EffectivePlanningWeeks: 10}
	budget := scheduler.NewBudget(s, cap)
	ctx := scheduler.NewContext()
	return budget, ctx
}

func TestBuildDay_FullDayFillsWithFullLengthBlocksAndDropsShortTail(t *testing.T) {
	budget, ctx := freshBudgetAndContext()
	cap := domain.PlanCapacity{EffectivePlanningWeeks: 10}
	date := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

	day := buildDay(budget, ctx, date, 0, 1, cap, 130, obslog.NoopObserver{})

	total := 0
	for _, b := range day.Blocks {
		total += b.DurationMinutes
	}
	// The drain loop places two full 60-min blocks (120 total); the 10-min
	// remainder is below MIN_BLOCK_DURATION=15, so the tail path drops it
	// rather than scheduling a too-short block (spec.md Testable Property #1).
	assert.Equal(t, 120, total)
	assert.Equal(t, 2, len(day.Blocks))
}

func TestBuildDay_ShortDayBelowMinBlockSchedulesNothing(t *testing.T) {
	budget, ctx := freshBudgetAndContext()
	cap := domain.PlanCapacity{EffectivePlanningWeeks: 10}
	date := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

	day := buildDay(budget, ctx, date, 0, 1, cap, 10, obslog.NoopObserver{})
	assert.Empty(t, day.Blocks)
}

func TestBuildDay_ShortDayFallbackTakesAllRemainingMinutes(t *testing.T) {
	budget, ctx := freshBudgetAndContext()
	cap := domain.PlanCapacity{EffectivePlanningWeeks: 10}
	date := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

	day := buildDay(budget, ctx, date, 0, 1, cap, 45, obslog.NoopObserver{})
	require.Len(t, day.Blocks, 1)
	assert.Equal(t, 45, day.Blocks[0].DurationMinutes)
}

func TestBuildDay_PastEffectivePlanningWeeksSchedulesNothing(t *testing.T) {
	budget, ctx := freshBudgetAndContext()
	cap := domain.PlanCapacity{EffectivePlanningWeeks: 1}
	date := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

	day := buildDay(budget, ctx, date, 0, 2, cap, 120, obslog.NoopObserver{})
	assert.Empty(t, day.Blocks)
}

func TestBuildDay_BlockIDsAreDeterministicAndUnique(t *testing.T) {
	budget, ctx := freshBudgetAndContext()
	cap := domain.PlanCapacity{EffectivePlanningWeeks: 10}
	date := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

	day := buildDay(budget, ctx, date, 0, 1, cap, 130, obslog.NoopObserver{})

	seen := map[string]bool{}
	for _, b := range day.Blocks {
		require.False(t, seen[b.ID], "duplicate block ID: %s", b.ID)
		seen[b.ID] = true
		assert.True(t, strings.HasPrefix(b.ID, "2026-01-05__"))
	}
}

func TestBuildDay_ProgrammingBlockGetsFixedUnitLabel(t *testing.T) {
	budget, ctx := freshBudgetAndContext()
	// Force week 3+ and starve theory/cases so programming gets picked.
	budget.CasesRemaining = 0
	ctx.WeekIndex = 3
	ctx.ThisWeekMinutes = map[domain.Stream]int{domain.StreamTheory: 1000, domain.StreamCases: 1000, domain.StreamProgramming: 0}

	cap := domain.PlanCapacity{EffectivePlanningWeeks: 10}
	date := time.Date(2026, time.January, 19, 0, 0, 0, 0, time.UTC)
	day := buildDay(budget, ctx, date, 14, 3, cap, 60, obslog.NoopObserver{})

	require.Len(t, day.Blocks, 1)
	assert.Equal(t, domain.ProgrammingBlock, day.Blocks[0].Activity)
	assert.Equal(t, "Programación", day.Blocks[0].Unit)
}
