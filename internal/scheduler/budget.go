// Package scheduler implements the remaining-ratio allocator (spec.md §4.3),
// grounded on the teacher's internal/scheduler package: the same
// first-pass/extension/deferred-pass shape that drives AllocateSlices here
// drives the day builder's drain loop (see internal/generator), the same
// ratio-then-tier shape that drives ComputeRisk here drives Stage A's
// remaining-ratio comparison, and the same ScoredCandidate/clamp bookkeeping
// style here drives GlobalBudget's per-unit ledgers.
package scheduler

import "github.com/oposita/studyplan/internal/domain"

// unitBudget is the live remaining-minutes ledger for one unit, plus its
// theory-progression bookkeeping (spec.md §4.6).
type unitBudget struct {
	Key                string
	Index              int
	Remaining          domain.RequiredMinutes // required - done, never negative
	StudyThemeDone     int                     // cumulative this pass, seeded from historical done
	StudyThemeComplete bool
}

// Budget is the GlobalBudget derived from student state at generation start
// (spec.md §3, §4.5). It lives only for the duration of one generation call.
type Budget struct {
	units    []*unitBudget
	byKey    map[string]*unitBudget

	TheoryPlanned      int
	CasesPlanned       int
	ProgrammingPlanned int

	TheoryRemainingTotal int
	CasesRemaining       int
	ProgrammingRemaining int

	CasePracticeScheduled int
	CaseMockScheduled     int

	Preferences domain.Preferences
}

// NewBudget derives a GlobalBudget from a StudentState and its generation-time
// PlanCapacity (spec.md §4.5: "remaining = required − done; studyThemeDone
// starts at historical done").
func NewBudget(s domain.StudentState, cap domain.PlanCapacity) *Budget {
	b := &Budget{
		byKey:              make(map[string]*unitBudget, len(s.Units)),
		TheoryPlanned:      cap.TheoryPlanned,
		CasesPlanned:       cap.CasesPlanned,
		ProgrammingPlanned: cap.ProgrammingPlanned,
		Preferences:        s.Preferences,
	}
	for _, u := range s.Units {
		ub := &unitBudget{
			Key:   u.Key,
			Index: u.Index,
			Remaining: domain.RequiredMinutes{
				StudyTheme: domain.NonNegative(u.Required.StudyTheme - u.Done.StudyTheme),
				Review:     domain.NonNegative(u.Required.Review - u.Done.Review),
				Podcast:    domain.NonNegative(u.Required.Podcast - u.Done.Podcast),
				Flashcard:  domain.NonNegative(u.Required.Flashcard - u.Done.Flashcard),
				Quiz:       domain.NonNegative(u.Required.Quiz - u.Done.Quiz),
			},
			StudyThemeDone: u.Done.StudyTheme,
		}
		ub.StudyThemeComplete = ub.StudyThemeDone >= domain.StudyThemeCompleteThreshold
		b.units = append(b.units, ub)
		b.byKey[u.Key] = ub
		b.TheoryRemainingTotal += ub.Remaining.StudyTheme + ub.Remaining.Review + ub.Remaining.Podcast + ub.Remaining.Flashcard + ub.Remaining.Quiz
	}
	b.CasesRemaining = domain.NonNegative(s.Global.CasesRequired - s.Global.CasesDone)
	b.ProgrammingRemaining = domain.NonNegative(s.Global.ProgrammingRequired - s.Global.ProgrammingDone)
	return b
}

func (b *Budget) unit(key string) *unitBudget { return b.byKey[key] }

// Commit applies the effect of scheduling `minutes` of `activity` for `unit`
// (spec.md §4.3 "Budget update"). None of the tracked quantities may go
// negative; all decrements clamp at 0.
func (b *Budget) Commit(activity domain.Activity, unit string, minutes int) {
	if minutes <= 0 {
		return
	}
	switch domain.StreamOf(activity) {
	case domain.StreamTheory:
		ub := b.unit(unit)
		if ub == nil {
			return
		}
		switch activity {
		case domain.StudyTheme:
			ub.Remaining.StudyTheme = domain.NonNegative(ub.Remaining.StudyTheme - minutes)
			ub.StudyThemeDone += minutes
			if ub.StudyThemeDone >= domain.StudyThemeCompleteThreshold {
				ub.StudyThemeComplete = true
			}
		case domain.Review:
			ub.Remaining.Review = domain.NonNegative(ub.Remaining.Review - minutes)
		case domain.Podcast:
			ub.Remaining.Podcast = domain.NonNegative(ub.Remaining.Podcast - minutes)
		case domain.Flashcard:
			ub.Remaining.Flashcard = domain.NonNegative(ub.Remaining.Flashcard - minutes)
		case domain.Quiz:
			ub.Remaining.Quiz = domain.NonNegative(ub.Remaining.Quiz - minutes)
		}
		b.TheoryRemainingTotal = domain.NonNegative(b.TheoryRemainingTotal - minutes)
	case domain.StreamCases:
		b.CasesRemaining = domain.NonNegative(b.CasesRemaining - minutes)
		if activity == domain.CasePractice {
			b.CasePracticeScheduled += minutes
		} else {
			b.CaseMockScheduled += minutes
		}
	case domain.StreamProgramming:
		b.ProgrammingRemaining = domain.NonNegative(b.ProgrammingRemaining - minutes)
	}
}

// TheoryRemainingRatio, CasesRemainingRatio and ProgrammingRemainingRatio are
// Stage A's per-stream remaining ratios (spec.md §4.3).
func (b *Budget) TheoryRemainingRatio() float64 {
	return ratio(b.TheoryRemainingTotal, b.TheoryPlanned)
}

func (b *Budget) CasesRemainingRatio() float64 {
	return ratio(b.CasesRemaining, b.CasesPlanned)
}

func (b *Budget) ProgrammingRemainingRatio() float64 {
	return ratio(b.ProgrammingRemaining, b.ProgrammingPlanned)
}

func ratio(remaining, planned int) float64 {
	if planned <= 0 {
		return 0
	}
	return float64(remaining) / float64(planned)
}

// BlockDuration resolves the day builder's chosen duration for `activity`:
// the activity's preference target, clamped to [MIN_BLOCK_DURATION,
// MAX_BLOCK_DURATION], further capped by the minutes remaining in the day
// and, for STUDY_THEME, by the headroom left under the day's STUDY_THEME
// cap (spec.md §4.3 Testable Property #3 — selectTheory only gates entry
// into another STUDY_THEME block on the cap, it never sizes the block, so
// sizing has to clamp here or the last block of the day can overshoot it).
func (b *Budget) BlockDuration(activity domain.Activity, remainingInDay int, ctx *Context) int {
	target, ok := b.Preferences.Targets[activity]
	if !ok {
		target = domain.MaxBlockDuration
	}
	if bounds, ok := b.Preferences.Bounds[activity]; ok {
		target = domain.ClampInt(target, bounds.Lo, bounds.Hi)
	}
	if target > domain.MaxBlockDuration {
		target = domain.MaxBlockDuration
	}
	if target < domain.MinBlockDuration {
		target = domain.MinBlockDuration
	}
	if target > remainingInDay {
		target = remainingInDay
	}
	if activity == domain.StudyTheme && ctx != nil {
		if headroom := studyThemeDailyCap(ctx.DailyAvailableMin) - ctx.DailyStudyThemeMin; target > headroom {
			target = headroom
		}
	}
	return target
}
