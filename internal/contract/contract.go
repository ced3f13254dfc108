// Package contract is the engine's public surface (spec.md §6): thin type
// aliases and forwarding functions over internal/domain, internal/capacity,
// internal/state and internal/generator, so callers (the CLI) depend on one
// stable package instead of reaching into internals.
// Grounded on the teacher's internal/contract re-export layer.
package contract

import (
	"github.com/oposita/studyplan/internal/capacity"
	"github.com/oposita/studyplan/internal/domain"
	"github.com/oposita/studyplan/internal/generator"
	"github.com/oposita/studyplan/internal/obslog"
	"github.com/oposita/studyplan/internal/state"
)

type (
	FormInputs      = domain.FormInputs
	PlanCapacity    = domain.PlanCapacity
	StudentState    = domain.StudentState
	Plan            = domain.Plan
	FeedbackEvent   = state.FeedbackEvent
	Preferences     = domain.Preferences
	Stage           = domain.Stage
	StudentType     = domain.StudentType
	Activity        = domain.Activity
	EventKind       = domain.EventKind
	Feel            = domain.Feel
	BufferStatus    = domain.BufferStatus
	Observer        = obslog.Observer
)

const (
	StageInfantil = domain.StageInfantil
	StagePrimaria = domain.StagePrimaria

	StudentNew    = domain.StudentNew
	StudentRepeat = domain.StudentRepeat

	EventQuizResult      = domain.EventQuizResult
	EventBlockCompleted  = domain.EventBlockCompleted
	EventSessionFeedback = domain.EventSessionFeedback

	FeelTooMuch = domain.FeelTooMuch
	FeelOK      = domain.FeelOK
	FeelMore    = domain.FeelMore
)

// CalculateCapacity computes PlanCapacity from form inputs and a fixed
// "today" (spec.md §4.1).
func CalculateCapacity(inputs FormInputs, todayISO string) (PlanCapacity, error) {
	return capacity.Calculate(inputs, todayISO)
}

// DeriveInitialState constructs the pass-1 StudentState (spec.md §4.2).
func DeriveInitialState(inputs FormInputs, cap PlanCapacity, todayISO string) StudentState {
	return state.DeriveInitial(inputs, cap, todayISO)
}

// ApplyFeedbackEvents folds a list of feedback events into a new
// StudentState, leaving the input untouched (spec.md §4.2).
func ApplyFeedbackEvents(s StudentState, events []FeedbackEvent) StudentState {
	return state.ApplyFeedbackEvents(s, events)
}

// ApplyFeedbackEventsObserved is ApplyFeedbackEvents with diagnostics routed
// to obs (nil is treated as a no-op observer).
func ApplyFeedbackEventsObserved(s StudentState, events []FeedbackEvent, obs Observer) StudentState {
	return state.ApplyFeedbackEventsObserved(s, events, obs)
}

// GenerateOptions configures a single generation call.
type GenerateOptions struct {
	TodayISO string
	Observer Observer
}

// GeneratePlanFromState runs the generator against an existing StudentState
// (spec.md §4.5); calling it twice with the same state yields byte-identical
// plans apart from the generation timestamp.
func GeneratePlanFromState(inputs FormInputs, s StudentState, opts GenerateOptions) (Plan, error) {
	return generator.FromState(inputs, s, generator.Options{TodayISO: opts.TodayISO, Observer: opts.Observer})
}

// GeneratePlan composes CalculateCapacity, DeriveInitialState and
// GeneratePlanFromState for a fresh plan with no feedback history (spec.md §6).
func GeneratePlan(inputs FormInputs, todayISO string, opts GenerateOptions) (Plan, error) {
	cap, err := CalculateCapacity(inputs, todayISO)
	if err != nil {
		return Plan{}, err
	}
	s := DeriveInitialState(inputs, cap, todayISO)
	return GeneratePlanFromState(inputs, s, opts)
}
