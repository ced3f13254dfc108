package capacity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oposita/studyplan/internal/domain"
)

func baseInputs() domain.FormInputs {
	return domain.FormInputs{
		ExamDate:          "2026-03-12",
		AvailabilityHours: [7]float64{2, 2, 2, 2, 2, 3, 1},
		Region:            "Madrid",
		Stage:             domain.StagePrimaria,
	}
}

func TestCalculate_DefaultUnitsAndEnvelope(t *testing.T) {
	cap, err := Calculate(baseInputs(), "2026-01-01")
	require.NoError(t, err)

	assert.Equal(t, domain.UnitDefaultCount, cap.UnitsCount)
	assert.Equal(t, domain.UnitDefaultCount*domain.TheoryEnvelopeMinutes, cap.TheoryPlanned)
	assert.Equal(t, int(0.6*float64(cap.TheoryPlanned)), cap.CasesPlanned)
	assert.Equal(t, int(0.4*float64(cap.TheoryPlanned)), cap.ProgrammingPlanned)
	assert.Equal(t, cap.TheoryPlanned+cap.CasesPlanned+cap.ProgrammingPlanned, cap.PlannedMinutes)
}

func TestCalculate_ReservesLastTwoWeeks(t *testing.T) {
	cap, err := Calculate(baseInputs(), "2026-01-01")
	require.NoError(t, err)
	assert.Equal(t, cap.TotalWeeks-domain.ReserveWeeks, cap.EffectivePlanningWeeks)
}

func TestCalculate_BufferStatusTiers(t *testing.T) {
	inputs := baseInputs()
	inputs.AvailabilityHours = [7]float64{8, 8, 8, 8, 8, 8, 8}
	cap, err := Calculate(inputs, "2026-01-01")
	require.NoError(t, err)
	assert.Equal(t, domain.BufferGood, cap.BufferStatus)

	tight := baseInputs()
	tight.AvailabilityHours = [7]float64{0, 0, 0, 0, 0, 0, 0}
	tightCap, err := Calculate(tight, "2026-01-01")
	require.NoError(t, err)
	assert.Equal(t, domain.BufferWarning, tightCap.BufferStatus)
	assert.Equal(t, 0, tightCap.AvailableEffectiveMin)
}

func TestCalculate_RejectsMalformedDates(t *testing.T) {
	inputs := baseInputs()
	inputs.ExamDate = "not-a-date"
	_, err := Calculate(inputs, "2026-01-01")
	require.Error(t, err)
}

func TestCalculate_PastExamDate_ZeroWeeks(t *testing.T) {
	inputs := baseInputs()
	inputs.ExamDate = "2025-01-01"
	cap, err := Calculate(inputs, "2026-01-01")
	require.NoError(t, err)
	assert.Equal(t, 0, cap.TotalWeeks)
	assert.Equal(t, 0, cap.EffectivePlanningWeeks)
	assert.Equal(t, 0, cap.AvailableEffectiveMin)
}

func TestCalculate_CustomThemeCount(t *testing.T) {
	inputs := baseInputs()
	inputs.ThemeCount = 15
	cap, err := Calculate(inputs, "2026-01-01")
	require.NoError(t, err)
	assert.Equal(t, 15, cap.UnitsCount)
}
