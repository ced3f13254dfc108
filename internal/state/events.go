package state

import (
	"fmt"

	"github.com/oposita/studyplan/internal/domain"
	"github.com/oposita/studyplan/internal/obslog"
)

// FeedbackEvent is a tagged union over the three feedback kinds (spec.md §4.2).
// Exactly one of the kind-specific fields is meaningful, selected by Kind.
type FeedbackEvent struct {
	Kind domain.EventKind

	// QUIZ_RESULT
	Unit  string
	Score int

	// BLOCK_COMPLETED
	Activity         domain.Activity
	CompletedMinutes int

	// SESSION_FEEDBACK
	Feel domain.Feel
}

// ApplyFeedbackEvents folds a list of events over a StudentState, producing a
// new state (spec.md §4.2). The input state is never mutated.
func ApplyFeedbackEvents(s domain.StudentState, events []FeedbackEvent) domain.StudentState {
	return ApplyFeedbackEventsObserved(s, events, nil)
}

// ApplyFeedbackEventsObserved is ApplyFeedbackEvents with an optional
// diagnostics observer (spec.md §4.10) for unknown-unit warnings.
func ApplyFeedbackEventsObserved(s domain.StudentState, events []FeedbackEvent, obs obslog.Observer) domain.StudentState {
	obs = obslog.Or(obs)
	next := cloneState(s)
	for _, ev := range events {
		switch ev.Kind {
		case domain.EventQuizResult:
			applyQuizResult(&next, ev, obs)
		case domain.EventBlockCompleted:
			applyBlockCompleted(&next, ev, obs)
		case domain.EventSessionFeedback:
			applySessionFeedback(&next, ev)
		}
	}
	next.Slack = recomputeSlack(next, next.Slack.EffectiveCapacityFuture)
	return next
}

func cloneState(s domain.StudentState) domain.StudentState {
	next := s
	next.Units = make([]domain.UnitLedger, len(s.Units))
	copy(next.Units, s.Units)

	targets := make(map[domain.Activity]int, len(s.Preferences.Targets))
	for k, v := range s.Preferences.Targets {
		targets[k] = v
	}
	bounds := make(map[domain.Activity]domain.PreferenceBounds, len(s.Preferences.Bounds))
	for k, v := range s.Preferences.Bounds {
		bounds[k] = v
	}
	next.Preferences = domain.Preferences{Targets: targets, Bounds: bounds}
	return next
}

// applyQuizResult bumps Unidad review requirement by ReviewBoostMinutes on a
// failing score. Unknown units and passing scores are no-ops (spec.md §4.2).
func applyQuizResult(s *domain.StudentState, ev FeedbackEvent, obs obslog.Observer) {
	if ev.Score >= domain.QuizFailThreshold {
		return
	}
	u := s.UnitByKey(ev.Unit)
	if u == nil {
		obs.OnEvent(obslog.Event{Component: "feedback", Message: fmt.Sprintf("QUIZ_RESULT: unknown unit %q, skipped", ev.Unit)})
		return
	}
	u.Required.Review += domain.ReviewBoostMinutes
}

// applyBlockCompleted adds completed minutes to the matching done counter,
// clamped so done never exceeds required for that field (spec.md §4.2).
func applyBlockCompleted(s *domain.StudentState, ev FeedbackEvent, obs obslog.Observer) {
	minutes := domain.NonNegative(ev.CompletedMinutes)

	switch ev.Activity {
	case domain.StudyTheme, domain.Review, domain.Podcast, domain.Flashcard, domain.Quiz:
		u := s.UnitByKey(ev.Unit)
		if u == nil {
			obs.OnEvent(obslog.Event{Component: "feedback", Message: fmt.Sprintf("BLOCK_COMPLETED: missing unit %q for %s, skipped", ev.Unit, ev.Activity)})
			return
		}
		switch ev.Activity {
		case domain.StudyTheme:
			u.Done.StudyTheme = domain.ClampInt(u.Done.StudyTheme+minutes, 0, u.Required.StudyTheme)
		case domain.Review:
			u.Done.Review = domain.ClampInt(u.Done.Review+minutes, 0, u.Required.Review)
		case domain.Podcast:
			u.Done.Podcast = domain.ClampInt(u.Done.Podcast+minutes, 0, u.Required.Podcast)
		case domain.Flashcard:
			u.Done.Flashcard = domain.ClampInt(u.Done.Flashcard+minutes, 0, u.Required.Flashcard)
		case domain.Quiz:
			u.Done.Quiz = domain.ClampInt(u.Done.Quiz+minutes, 0, u.Required.Quiz)
		}
	case domain.CasePractice, domain.CaseMock:
		s.Global.CasesDone = domain.ClampInt(s.Global.CasesDone+minutes, 0, s.Global.CasesRequired)
	case domain.ProgrammingBlock:
		s.Global.ProgrammingDone = domain.ClampInt(s.Global.ProgrammingDone+minutes, 0, s.Global.ProgrammingRequired)
	}
}

// applySessionFeedback adjusts an activity's preferred block duration by
// SessionFeedbackStep minutes, clamped into the activity's bounds (spec.md §4.2).
func applySessionFeedback(s *domain.StudentState, ev FeedbackEvent) {
	switch ev.Feel {
	case domain.FeelTooMuch:
		s.Preferences.Adjust(ev.Activity, -domain.SessionFeedbackStep)
	case domain.FeelMore:
		s.Preferences.Adjust(ev.Activity, domain.SessionFeedbackStep)
	case domain.FeelOK:
		// no-op
	}
}
