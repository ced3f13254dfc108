// Package loader parses and validates the CLI's JSON boundary documents
// (SPEC_FULL.md §4.8), collecting every offending field into a single
// ValidationError instead of failing on the first one. Grounded on the
// teacher's internal/importer validate-then-map shape.
package loader

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/oposita/studyplan/internal/calendar"
	"github.com/oposita/studyplan/internal/domain"
	"github.com/oposita/studyplan/internal/state"
)

// ValidationError collects every offending field from one parse attempt.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %s", strings.Join(e.Fields, "; "))
}

func (e *ValidationError) add(field, reason string) {
	e.Fields = append(e.Fields, fmt.Sprintf("%s: %s", field, reason))
}

// planDocument is the wire shape accepted by `planner plan` and `planner
// capacity` (SPEC_FULL.md §4.8).
type planDocument struct {
	FormInputs formInputsWire `json:"form_inputs"`
}

type formInputsWire struct {
	ExamDate          string    `json:"exam_date"`
	AvailabilityHours []float64 `json:"availability_hours"`
	PresentedBefore   bool      `json:"presented_before"`
	AlreadyStudying   bool      `json:"already_studying"`
	Region            string    `json:"region"`
	Stage             string    `json:"stage"`
	ThemeCount        int       `json:"theme_count"`
	PlanProgramming   *bool     `json:"plan_programming"`
	StudentType       string    `json:"student_type"`
}

// eventWire is one element of the bare JSON array of feedback events
// accepted by `planner replan`'s --events file.
type eventWire struct {
	Kind             string `json:"kind"`
	Unit             string `json:"unit"`
	Score            *int   `json:"score"`
	Activity         string `json:"activity"`
	CompletedMinutes *int   `json:"completed_minutes"`
	Feel             string `json:"feel"`
}

// ParseFormInputs parses and validates a plan-document JSON payload into
// domain.FormInputs (SPEC_FULL.md §4.8).
func ParseFormInputs(raw []byte) (domain.FormInputs, error) {
	var doc planDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.FormInputs{}, fmt.Errorf("parsing input: %w", err)
	}
	return validateFormInputs(doc.FormInputs)
}

// stateDocument is the wire shape accepted by `planner replan`'s --state
// file: the original form inputs alongside the evolving StudentState, so a
// replan has everything calculateCapacity needs without re-deriving it from
// the state alone (SPEC_FULL.md §4.8).
type stateDocument struct {
	FormInputs formInputsWire      `json:"form_inputs"`
	State      domain.StudentState `json:"state"`
}

// ParseStateDocument parses a --state file into (FormInputs, StudentState).
func ParseStateDocument(raw []byte) (domain.FormInputs, domain.StudentState, error) {
	var doc stateDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.FormInputs{}, domain.StudentState{}, fmt.Errorf("parsing state: %w", err)
	}
	inputs, err := validateFormInputs(doc.FormInputs)
	if err != nil {
		return domain.FormInputs{}, domain.StudentState{}, err
	}
	return inputs, doc.State, nil
}

func validateFormInputs(w formInputsWire) (domain.FormInputs, error) {
	verr := &ValidationError{}

	if _, err := calendar.ParseISO(w.ExamDate, "exam_date"); err != nil {
		verr.add("form_inputs.exam_date", "must be a valid YYYY-MM-DD date")
	}

	var availability [7]float64
	if len(w.AvailabilityHours) != 7 {
		verr.add("form_inputs.availability_hours", fmt.Sprintf("must have exactly 7 entries, got %d", len(w.AvailabilityHours)))
	} else {
		copy(availability[:], w.AvailabilityHours)
		for i, h := range w.AvailabilityHours {
			if math.IsNaN(h) || math.IsInf(h, 0) || h < 0 {
				verr.add(fmt.Sprintf("form_inputs.availability_hours[%d]", i), "must be finite and >= 0")
			}
		}
	}
	stage := domain.Stage(w.Stage)
	if stage != domain.StageInfantil && stage != domain.StagePrimaria {
		verr.add("form_inputs.stage", "must be Infantil or Primaria")
	}
	if w.ThemeCount != 0 && w.ThemeCount != 15 && w.ThemeCount != 20 && w.ThemeCount != 25 {
		verr.add("form_inputs.theme_count", "must be 15, 20 or 25 when present")
	}
	if strings.TrimSpace(w.Region) == "" {
		verr.add("form_inputs.region", "must be non-empty")
	}
	studentType := domain.StudentType(w.StudentType)
	if w.StudentType != "" && studentType != domain.StudentNew && studentType != domain.StudentRepeat {
		verr.add("form_inputs.student_type", "must be new or repeat")
	}

	if len(verr.Fields) > 0 {
		return domain.FormInputs{}, verr
	}

	return domain.FormInputs{
		ExamDate:          w.ExamDate,
		AvailabilityHours: availability,
		PresentedBefore:   w.PresentedBefore,
		AlreadyStudying:   w.AlreadyStudying,
		Region:            w.Region,
		Stage:             stage,
		ThemeCount:        w.ThemeCount,
		PlanProgramming:   w.PlanProgramming,
		StudentType:       studentType,
	}, nil
}

// ParseFeedbackEvents parses a bare JSON array of feedback events
// (SPEC_FULL.md §4.8).
func ParseFeedbackEvents(raw []byte) ([]state.FeedbackEvent, error) {
	var wire []eventWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("parsing events: %w", err)
	}

	verr := &ValidationError{}
	events := make([]state.FeedbackEvent, 0, len(wire))
	for i, w := range wire {
		kind := domain.EventKind(w.Kind)
		switch kind {
		case domain.EventQuizResult, domain.EventBlockCompleted, domain.EventSessionFeedback:
		default:
			verr.add(fmt.Sprintf("events[%d].kind", i), "must be one of QUIZ_RESULT, BLOCK_COMPLETED, SESSION_FEEDBACK")
			continue
		}

		ev := state.FeedbackEvent{Kind: kind, Unit: w.Unit, Activity: domain.Activity(w.Activity)}
		if w.Activity != "" {
			switch ev.Activity {
			case domain.StudyTheme, domain.Review, domain.Podcast, domain.Flashcard, domain.Quiz,
				domain.CasePractice, domain.CaseMock, domain.ProgrammingBlock:
			default:
				verr.add(fmt.Sprintf("events[%d].activity", i), "must be a known activity tag")
				continue
			}
		}
		if w.Score != nil {
			if *w.Score < 0 || *w.Score > 100 {
				verr.add(fmt.Sprintf("events[%d].score", i), "must be between 0 and 100")
				continue
			}
			ev.Score = *w.Score
		}
		if w.CompletedMinutes != nil {
			ev.CompletedMinutes = *w.CompletedMinutes
		}
		if w.Feel != "" {
			feel := domain.Feel(w.Feel)
			if feel != domain.FeelTooMuch && feel != domain.FeelOK && feel != domain.FeelMore {
				verr.add(fmt.Sprintf("events[%d].feel", i), "must be one of too_much, ok, more")
				continue
			}
			ev.Feel = feel
		}
		events = append(events, ev)
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}
	return events, nil
}
