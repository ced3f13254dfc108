package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oposita/studyplan/internal/domain"
)

func samplePlan() domain.Plan {
	return domain.Plan{
		Meta: domain.PlanMeta{
			GeneratedAt: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
			TodayISO:    "2026-01-01",
			ExamDateISO: "2026-06-01",
			Region:      "Madrid",
			Stage:       domain.StagePrimaria,
			TotalUnits:  20,
		},
		Days: []domain.DayPlan{
			{DateISO: "2026-01-01", Blocks: []domain.StudyBlock{
				{Activity: domain.StudyTheme, Unit: "Unidad 1", DurationMinutes: 60},
				{Activity: domain.ProgrammingBlock, Unit: "Programación", DurationMinutes: 45},
			}},
			{DateISO: "2026-01-02"}, // no blocks, excluded from table
		},
		WeeklySummaries: []domain.WeekSummary{
			{WeekStartISO: "2025-12-29", TotalHours: 1.75, MinutesByPhase: map[domain.Phase]int{domain.PhaseDepth: 60}},
		},
		Explanations: []string{"Buffer status: good (25% slack against planned workload)."},
	}
}

func TestWritePlan_JSON_IsValidAndStable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePlan(&buf, samplePlan(), FormatJSON))

	var decoded domain.Plan
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Madrid", decoded.Meta.Region)
	assert.Len(t, decoded.Days, 2)
}

func TestWritePlan_Table_OmitsColorWhenNotATTY(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePlan(&buf, samplePlan(), FormatTable))

	out := buf.String()
	assert.Contains(t, out, "2026-01-01")
	assert.Contains(t, out, "STUDY_THEME")
	assert.Contains(t, out, "Programación")
	assert.NotContains(t, out, "\x1b[", "no ANSI codes expected when writer isn't a TTY")
	assert.NotContains(t, out, "2026-01-02", "days with no blocks are omitted from the table")
}

func TestWriteCapacity_TableAndJSON(t *testing.T) {
	cap := domain.PlanCapacity{TotalWeeks: 22, EffectivePlanningWeeks: 20, UnitsCount: 20, BufferStatus: domain.BufferGood, BufferRatio: 0.25}

	var tableBuf bytes.Buffer
	require.NoError(t, WriteCapacity(&tableBuf, cap, FormatTable))
	assert.Contains(t, tableBuf.String(), "good")

	var jsonBuf bytes.Buffer
	require.NoError(t, WriteCapacity(&jsonBuf, cap, FormatJSON))
	var decoded domain.PlanCapacity
	require.NoError(t, json.Unmarshal(jsonBuf.Bytes(), &decoded))
	assert.Equal(t, 22, decoded.TotalWeeks)
}

func TestRenderTable_PadsColumnsToWidestCell(t *testing.T) {
	out := RenderTable([]string{"A", "B"}, [][]string{{"short", "x"}, {"a much longer cell", "y"}}, false)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4) // header, rule, 2 rows
	assert.True(t, strings.HasPrefix(lines[0], "A"))
}

func TestRenderTable_EmptyHeadersReturnsEmptyString(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil, false))
}

func TestColorCapable_FalseForNonTTYWriter(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, ColorCapable(&buf))
}
