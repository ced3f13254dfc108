package generator

import (
	"github.com/oposita/studyplan/internal/calendar"
	"github.com/oposita/studyplan/internal/domain"
)

// buildWeeklySummaries groups days by Monday-of-week and accumulates hours
// and minutes-per-phase for each group (spec.md §4.4 "Weekly summaries").
func buildWeeklySummaries(days []domain.DayPlan) []domain.WeekSummary {
	order := make([]string, 0)
	byWeek := map[string]*domain.WeekSummary{}

	for _, day := range days {
		date, err := calendar.ParseISO(day.DateISO, "date")
		if err != nil {
			continue
		}
		weekStart := calendar.FormatISO(calendar.MondayOf(date))

		summary, ok := byWeek[weekStart]
		if !ok {
			summary = &domain.WeekSummary{
				WeekStartISO:   weekStart,
				MinutesByPhase: map[domain.Phase]int{},
			}
			byWeek[weekStart] = summary
			order = append(order, weekStart)
		}

		summary.TotalHours += day.Hours
		for _, b := range day.Blocks {
			summary.MinutesByPhase[b.Phase] += b.DurationMinutes
		}
	}

	summaries := make([]domain.WeekSummary, 0, len(order))
	for _, weekStart := range order {
		summaries = append(summaries, *byWeek[weekStart])
	}
	return summaries
}
