package scheduler

import "github.com/oposita/studyplan/internal/domain"

// Context is the per-call allocator context the day builder threads through
// the week and the day (spec.md §4.3 "Context carried into each call").
type Context struct {
	WeekIndex int // 1-based

	// Weekly trackers, reset on every week-start transition.
	ThisWeekMinutes        map[domain.Stream]int
	WeekRemainingMin       int
	LastWeekCasesMin       int
	LastWeekProgrammingMin int

	// Daily trackers, reset at the start of every day.
	DailyStudyThemeMin int
	TodayUnit          string // "" if no unit locked yet today
	DailyAvailableMin  int

	// TheoryUnitOverride is set by Stage B when it picks an interleaved
	// secondary for a unit other than TodayUnit. The chosen unit also travels
	// in Decision.Unit, which the day builder uses for attribution; the day
	// builder clears this field after emitting the block.
	TheoryUnitOverride string
}

// NewContext creates a zeroed context for week 1.
func NewContext() *Context {
	return &Context{
		WeekIndex:       1,
		ThisWeekMinutes: map[domain.Stream]int{domain.StreamTheory: 0, domain.StreamCases: 0, domain.StreamProgramming: 0},
	}
}

// StartDay resets the per-day trackers (spec.md §4.4 step 4).
func (c *Context) StartDay(availableMin int) {
	c.DailyStudyThemeMin = 0
	c.TodayUnit = ""
	c.DailyAvailableMin = availableMin
	c.TheoryUnitOverride = ""
}

// StartWeek carries the just-completed week's cases and programming minutes
// into the last-week trackers, advances WeekIndex and resets the weekly
// trackers (spec.md §4.4 "Weekly trackers"). Archiving the week's actuals is
// done by the generator, not here.
func (c *Context) StartWeek(weekIndex int) {
	c.LastWeekCasesMin = c.ThisWeekMinutes[domain.StreamCases]
	c.LastWeekProgrammingMin = c.ThisWeekMinutes[domain.StreamProgramming]
	c.WeekIndex = weekIndex
	c.ThisWeekMinutes = map[domain.Stream]int{domain.StreamTheory: 0, domain.StreamCases: 0, domain.StreamProgramming: 0}
}

// RecordScheduled updates weekly and daily trackers after a block commits.
func (c *Context) RecordScheduled(activity domain.Activity, minutes int) {
	c.ThisWeekMinutes[domain.StreamOf(activity)] += minutes
	c.WeekRemainingMin = domain.NonNegative(c.WeekRemainingMin - minutes)
	if activity == domain.StudyTheme {
		c.DailyStudyThemeMin += minutes
	}
}
