package scheduler

import "github.com/oposita/studyplan/internal/domain"

// Decision is the allocator's output: the next activity and (when
// applicable) the unit it attributes to. Unit is empty for PROGRAMMING_BLOCK,
// which carries its own fixed "Programación" label at rendering time.
type Decision struct {
	Activity domain.Activity
	Unit     string
}

const weeklyFloorMin = domain.WeeklyMinimumMinutes

// streamPrecedence is the tie-break / forcing order used throughout the
// allocator: cases, then programming, then theory (spec.md §4.3).
var streamPrecedence = []domain.Stream{domain.StreamCases, domain.StreamProgramming, domain.StreamTheory}

// Select runs the full four-stage allocator (spec.md §4.3) and returns the
// next (activity, unit) to schedule, or ok=false when nothing is eligible.
func (b *Budget) Select(ctx *Context) (Decision, bool) {
	if ctx.WeekIndex < 3 {
		return b.selectTheory(ctx)
	}

	stream := b.selectStreamSmoothed(ctx)
	if stream == domain.StreamTheory {
		return b.selectTheory(ctx)
	}
	return b.selectPractical(stream)
}

// selectStream is Stage A (spec.md §4.3).
func (b *Budget) selectStream(ctx *Context) domain.Stream {
	if ctx.LastWeekCasesMin == 0 && b.CasesRemaining > 0 {
		return domain.StreamCases
	}
	if ctx.LastWeekProgrammingMin == 0 && b.ProgrammingRemaining > 0 {
		return domain.StreamProgramming
	}

	tr := b.TheoryRemainingRatio()
	cr := b.CasesRemainingRatio()
	pr := b.ProgrammingRemainingRatio()

	best := domain.StreamTheory
	bestRatio := tr
	if cr > bestRatio {
		best, bestRatio = domain.StreamCases, cr
	}
	if pr > bestRatio {
		best = domain.StreamProgramming
	}
	return best
}

// selectStreamSmoothed is Stage A′, wrapping Stage A (spec.md §4.3).
func (b *Budget) selectStreamSmoothed(ctx *Context) domain.Stream {
	missing := b.missingStreams(ctx)

	if ctx.WeekRemainingMin < 120 {
		ordered := []domain.Stream{domain.StreamTheory, domain.StreamCases, domain.StreamProgramming}
		OrderByPrecedence(ordered)
		for _, s := range ordered {
			if missing[s] {
				return s
			}
		}
	} else if least := leastScheduledStream(ctx); missing[least] {
		return least
	}

	return b.selectStream(ctx)
}

// missingStreams returns the streams below the weekly floor while remaining > 0.
func (b *Budget) missingStreams(ctx *Context) map[domain.Stream]bool {
	missing := map[domain.Stream]bool{}
	if ctx.ThisWeekMinutes[domain.StreamTheory] < weeklyFloorMin && b.TheoryRemainingTotal > 0 {
		missing[domain.StreamTheory] = true
	}
	if ctx.ThisWeekMinutes[domain.StreamCases] < weeklyFloorMin && b.CasesRemaining > 0 {
		missing[domain.StreamCases] = true
	}
	if ctx.ThisWeekMinutes[domain.StreamProgramming] < weeklyFloorMin && b.ProgrammingRemaining > 0 {
		missing[domain.StreamProgramming] = true
	}
	return missing
}

// leastScheduledStream finds the stream with the fewest minutes scheduled
// this week, tie-broken cases > programming > theory.
func leastScheduledStream(ctx *Context) domain.Stream {
	least := streamPrecedence[0]
	leastMin := ctx.ThisWeekMinutes[least]
	for _, s := range streamPrecedence[1:] {
		if ctx.ThisWeekMinutes[s] < leastMin {
			least, leastMin = s, ctx.ThisWeekMinutes[s]
		}
	}
	return least
}

// selectPractical is Stage C (spec.md §4.3).
func (b *Budget) selectPractical(stream domain.Stream) (Decision, bool) {
	if stream == domain.StreamProgramming {
		if b.ProgrammingRemaining <= 0 {
			return Decision{}, false
		}
		return Decision{Activity: domain.ProgrammingBlock}, true
	}

	if b.CasesRemaining <= 0 {
		return Decision{}, false
	}
	practiceTarget := domain.CasesSplitTarget * float64(b.CasesPlanned)
	if float64(b.CasePracticeScheduled) < practiceTarget {
		return Decision{Activity: domain.CasePractice}, true
	}
	return Decision{Activity: domain.CaseMock}, true
}
