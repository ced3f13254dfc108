package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oposita/studyplan/internal/domain"
)

func TestBuildWeeklySummaries_GroupsByMondayAndSumsHours(t *testing.T) {
	days := []domain.DayPlan{
		{DateISO: "2026-01-05", Hours: 2, Blocks: []domain.StudyBlock{{Phase: domain.PhaseDepth, DurationMinutes: 60}}}, // Monday
		{DateISO: "2026-01-06", Hours: 2, Blocks: []domain.StudyBlock{{Phase: domain.PhaseDepth, DurationMinutes: 60}}}, // Tuesday, same week
		{DateISO: "2026-01-12", Hours: 3, Blocks: []domain.StudyBlock{{Phase: domain.PhasePractice, DurationMinutes: 90}}}, // next Monday
	}

	summaries := buildWeeklySummaries(days)
	require.Len(t, summaries, 2)

	assert.Equal(t, "2026-01-05", summaries[0].WeekStartISO)
	assert.Equal(t, 4.0, summaries[0].TotalHours)
	assert.Equal(t, 120, summaries[0].MinutesByPhase[domain.PhaseDepth])

	assert.Equal(t, "2026-01-12", summaries[1].WeekStartISO)
	assert.Equal(t, 3.0, summaries[1].TotalHours)
	assert.Equal(t, 90, summaries[1].MinutesByPhase[domain.PhasePractice])
}

func TestBuildWeeklySummaries_EmptyDaysReturnsEmpty(t *testing.T) {
	assert.Empty(t, buildWeeklySummaries(nil))
}

func TestBuildWeeklySummaries_PreservesFirstSeenOrder(t *testing.T) {
	days := []domain.DayPlan{
		{DateISO: "2026-01-12"},
		{DateISO: "2026-01-05"},
	}
	summaries := buildWeeklySummaries(days)
	require.Len(t, summaries, 2)
	assert.Equal(t, "2026-01-12", summaries[0].WeekStartISO)
	assert.Equal(t, "2026-01-05", summaries[1].WeekStartISO)
}
