package scheduler

import "github.com/oposita/studyplan/internal/domain"

// secondaryPrecedence is the order secondary theory activities are tried in
// (spec.md §4.3 Stage B): REVIEW first (only once a unit's STUDY_THEME is
// complete), then PODCAST, FLASHCARD, QUIZ.
var secondaryPrecedence = []domain.Activity{domain.Podcast, domain.Flashcard, domain.Quiz}

// selectTheory is Stage B (spec.md §4.3), used for weeks 1–2 unconditionally
// and whenever Stage A/A′ picks the theory stream.
func (b *Budget) selectTheory(ctx *Context) (Decision, bool) {
	dailyCap := studyThemeDailyCap(ctx.DailyAvailableMin)
	eligible := b.firstEligiblePrimaryUnit(ctx)

	if ctx.DailyStudyThemeMin >= dailyCap || eligible == "" {
		return b.selectSecondary(ctx)
	}

	if ctx.TodayUnit == "" {
		ctx.TodayUnit = eligible
	}
	return Decision{Activity: domain.StudyTheme, Unit: eligible}, true
}

// studyThemeDailyCap is the per-day STUDY_THEME minute ceiling (spec.md §4.3).
func studyThemeDailyCap(availableMin int) int {
	if availableMin >= 240 {
		return availableMin / 2
	}
	if availableMin < 120 {
		return availableMin
	}
	return 120
}

// firstEligiblePrimaryUnit finds the first unit (by index) eligible for a new
// STUDY_THEME block: remaining > 0, the start-next-unit threshold is cleared
// on the previous unit, and it doesn't conflict with today's lock.
func (b *Budget) firstEligiblePrimaryUnit(ctx *Context) string {
	for i, u := range b.units {
		if u.Remaining.StudyTheme <= 0 {
			continue
		}
		if i > 0 && b.units[i-1].StudyThemeDone < domain.StartNextUnitThreshold {
			continue
		}
		if ctx.TodayUnit != "" && ctx.TodayUnit != u.Key {
			continue
		}
		return u.Key
	}
	return ""
}

// isActivated reports whether a unit has received any STUDY_THEME minutes
// this pass (spec.md §4.6 "Activation").
func (u *unitBudget) isActivated() bool { return u.StudyThemeDone > 0 }

// activeUnits returns every unit that is Activated, plus ctx.TodayUnit (which
// may have just locked via same-day activation), in index order.
func (b *Budget) activeUnits(ctx *Context) []*unitBudget {
	var active []*unitBudget
	seen := map[string]bool{}
	for _, u := range b.units {
		if u.isActivated() || u.Key == ctx.TodayUnit {
			active = append(active, u)
			seen[u.Key] = true
		}
	}
	return active
}

// secondaryFor returns the first secondary activity with remaining > 0 for
// unit u, honoring REVIEW's extra gate (studyThemeDone >= complete threshold).
func secondaryFor(u *unitBudget) (domain.Activity, bool) {
	if u.StudyThemeComplete && u.Remaining.Review > 0 {
		return domain.Review, true
	}
	for _, a := range secondaryPrecedence {
		if remainingFor(u, a) > 0 {
			return a, true
		}
	}
	return "", false
}

func remainingFor(u *unitBudget, a domain.Activity) int {
	switch a {
	case domain.Podcast:
		return u.Remaining.Podcast
	case domain.Flashcard:
		return u.Remaining.Flashcard
	case domain.Quiz:
		return u.Remaining.Quiz
	case domain.Review:
		return u.Remaining.Review
	default:
		return 0
	}
}

// selectSecondary is Stage B's fallback path: interleave across active units
// when at least two exist, else stick with today's unit (spec.md §4.3).
func (b *Budget) selectSecondary(ctx *Context) (Decision, bool) {
	active := b.activeUnits(ctx)

	if len(active) >= 2 {
		for _, u := range active {
			if u.Key == ctx.TodayUnit {
				continue
			}
			if act, ok := secondaryFor(u); ok {
				ctx.TheoryUnitOverride = u.Key
				return Decision{Activity: act, Unit: u.Key}, true
			}
		}
	}

	// Stick with today's unit (or, absent a lock, the sole active unit).
	target := ctx.TodayUnit
	if target == "" && len(active) > 0 {
		target = active[0].Key
	}
	if target == "" {
		return Decision{}, false
	}
	if u := b.unit(target); u != nil {
		if act, ok := secondaryFor(u); ok {
			return Decision{Activity: act, Unit: target}, true
		}
	}

	// Nothing left on the target unit — scan remaining active units before giving up.
	for _, u := range active {
		if u.Key == target {
			continue
		}
		if act, ok := secondaryFor(u); ok {
			ctx.TheoryUnitOverride = u.Key
			return Decision{Activity: act, Unit: u.Key}, true
		}
	}
	return Decision{}, false
}
