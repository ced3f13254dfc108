package scheduler

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oposita/studyplan/internal/domain"
)

// randomBudgetAndContext builds a random but internally consistent Budget + Context pair
// to drive the allocator across a wide span of mid-plan shapes.
func randomBudgetAndContext(rng *rand.Rand, unitCount, weekIndex int) (*Budget, *Context) {
	units := make([]domain.UnitLedger, unitCount)
	for i := 0; i < unitCount; i++ {
		req := domain.DefaultRequiredMinutes()
		units[i] = domain.UnitLedger{
			Key:      "Unidad " + string(rune('1'+i)),
			Index:    i + 1,
			Required: req,
			Done: domain.DoneMinutes{
				StudyTheme: rng.Intn(req.StudyTheme + 1),
				Review:     rng.Intn(req.Review + 1),
				Podcast:    rng.Intn(req.Podcast + 1),
				Flashcard:  rng.Intn(req.Flashcard + 1),
				Quiz:       rng.Intn(req.Quiz + 1),
			},
		}
	}

	cap := domain.PlanCapacity{
		TheoryPlanned:      unitCount * domain.TheoryEnvelopeMinutes,
		CasesPlanned:       rng.Intn(2000) + 100,
		ProgrammingPlanned: rng.Intn(2000) + 100,
	}
	s := domain.StudentState{
		Units:  units,
		Global: domain.GlobalLedger{CasesRequired: cap.CasesPlanned, CasesDone: rng.Intn(cap.CasesPlanned), ProgrammingRequired: cap.ProgrammingPlanned, ProgrammingDone: rng.Intn(cap.ProgrammingPlanned)},
	}
	b := NewBudget(s, cap)

	ctx := NewContext()
	ctx.WeekIndex = weekIndex
	ctx.WeekRemainingMin = rng.Intn(2000)
	ctx.DailyAvailableMin = rng.Intn(240) + 15
	ctx.ThisWeekMinutes = map[domain.Stream]int{
		domain.StreamTheory:      rng.Intn(300),
		domain.StreamCases:       rng.Intn(300),
		domain.StreamProgramming: rng.Intn(300),
	}
	return b, ctx
}

// TestSelect_NeverReturnsNegativeRemaining property-tests that Commit never
// drives any tracked quantity negative, across randomized mid-plan states and
// repeated Select/Commit cycles.
func TestSelect_NeverReturnsNegativeRemaining(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 200; trial++ {
		unitCount := rng.Intn(5) + 1
		weekIndex := rng.Intn(10) + 1
		b, ctx := randomBudgetAndContext(rng, unitCount, weekIndex)

		for step := 0; step < 50; step++ {
			decision, ok := b.Select(ctx)
			if !ok {
				break
			}
			duration := b.BlockDuration(decision.Activity, ctx.DailyAvailableMin, ctx)
			b.Commit(decision.Activity, decision.Unit, duration)
			ctx.RecordScheduled(decision.Activity, duration)

			assert.GreaterOrEqual(t, b.TheoryRemainingTotal, 0, "trial %d step %d: theory remaining went negative", trial, step)
			assert.GreaterOrEqual(t, b.CasesRemaining, 0, "trial %d step %d: cases remaining went negative", trial, step)
			assert.GreaterOrEqual(t, b.ProgrammingRemaining, 0, "trial %d step %d: programming remaining went negative", trial, step)
			for _, u := range b.units {
				assert.GreaterOrEqual(t, u.Remaining.StudyTheme, 0, "trial %d step %d: unit %s study theme remaining negative", trial, step, u.Key)
			}
		}
	}
}

// TestSelect_DecisionDurationNeverExceedsBounds property-tests invariant 1
// (spec.md §8): every emitted block duration stays within [MIN_BLOCK_DURATION,
// MAX_BLOCK_DURATION] (or the remaining-in-day cap, whichever is smaller).
func TestSelect_DecisionDurationNeverExceedsBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(99))

	for trial := 0; trial < 200; trial++ {
		unitCount := rng.Intn(5) + 1
		weekIndex := rng.Intn(10) + 1
		b, ctx := randomBudgetAndContext(rng, unitCount, weekIndex)

		decision, ok := b.Select(ctx)
		if !ok {
			continue
		}
		duration := b.BlockDuration(decision.Activity, ctx.DailyAvailableMin, ctx)
		assert.LessOrEqual(t, duration, domain.MaxBlockDuration, "trial %d: duration exceeds max block duration", trial)
		assert.LessOrEqual(t, duration, ctx.DailyAvailableMin, "trial %d: duration exceeds minutes remaining in day", trial)
		if ctx.DailyAvailableMin >= domain.MinBlockDuration {
			assert.GreaterOrEqual(t, duration, domain.MinBlockDuration, "trial %d: duration below min block duration", trial)
		}
	}
}

// TestSelect_ProgrammingDecisionsCarryNoUnit property-tests that
// PROGRAMMING_BLOCK decisions never attribute to a theory unit.
func TestSelect_ProgrammingDecisionsCarryNoUnit(t *testing.T) {
	rng := rand.New(rand.NewSource(123))

	for trial := 0; trial < 100; trial++ {
		unitCount := rng.Intn(5) + 1
		b, ctx := randomBudgetAndContext(rng, unitCount, rng.Intn(10)+3)

		for step := 0; step < 20; step++ {
			decision, ok := b.Select(ctx)
			if !ok {
				break
			}
			if decision.Activity == domain.ProgrammingBlock {
				assert.Empty(t, decision.Unit, "trial %d step %d: PROGRAMMING_BLOCK must not carry a unit", trial, step)
			}
			duration := b.BlockDuration(decision.Activity, ctx.DailyAvailableMin, ctx)
			b.Commit(decision.Activity, decision.Unit, duration)
			ctx.RecordScheduled(decision.Activity, duration)
		}
	}
}

// TestSelect_StudyThemeNeverExceedsDailyCap property-tests invariant 3
// (spec.md §8, Testable Property #3): across a simulated day, the sum of
// STUDY_THEME minutes scheduled never exceeds studyThemeDailyCap(availableMin).
func TestSelect_StudyThemeNeverExceedsDailyCap(t *testing.T) {
	rng := rand.New(rand.NewSource(41))

	for trial := 0; trial < 200; trial++ {
		unitCount := rng.Intn(5) + 1
		weekIndex := rng.Intn(10) + 3 // past the weeks-1-2 unconditional-theory window
		b, ctx := randomBudgetAndContext(rng, unitCount, weekIndex)
		ctx.StartDay(ctx.DailyAvailableMin)

		cap := studyThemeDailyCap(ctx.DailyAvailableMin)
		remaining := ctx.DailyAvailableMin
		for step := 0; step < 20 && remaining >= domain.MinBlockDuration; step++ {
			decision, ok := b.Select(ctx)
			if !ok {
				break
			}
			duration := b.BlockDuration(decision.Activity, remaining, ctx)
			if duration < domain.MinBlockDuration {
				break
			}
			b.Commit(decision.Activity, decision.Unit, duration)
			ctx.RecordScheduled(decision.Activity, duration)
			remaining -= duration

			assert.LessOrEqual(t, ctx.DailyStudyThemeMin, cap, "trial %d step %d: STUDY_THEME day total exceeds dailyCap=%d", trial, step, cap)
		}
	}
}
