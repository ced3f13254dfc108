package domain

// Activity is the closed set of schedulable block tags.
type Activity string

const (
	StudyTheme       Activity = "STUDY_THEME"
	Review           Activity = "REVIEW"
	Podcast          Activity = "PODCAST"
	Flashcard        Activity = "FLASHCARD"
	Quiz             Activity = "QUIZ"
	CasePractice     Activity = "CASE_PRACTICE"
	CaseMock         Activity = "CASE_MOCK"
	ProgrammingBlock Activity = "PROGRAMMING_BLOCK"
)

// Stream is one of the three top-level allocation buckets.
type Stream string

const (
	StreamTheory      Stream = "theory"
	StreamCases       Stream = "cases"
	StreamProgramming Stream = "programming"
)

// StreamOf returns the stream an activity belongs to.
func StreamOf(a Activity) Stream {
	switch a {
	case StudyTheme, Review, Podcast, Flashcard, Quiz:
		return StreamTheory
	case CasePractice, CaseMock:
		return StreamCases
	case ProgrammingBlock:
		return StreamProgramming
	default:
		return StreamTheory
	}
}

// Phase is the closed set of pedagogical phase tags.
type Phase string

const (
	PhaseContext    Phase = "P1_CONTEXT"
	PhaseDepth      Phase = "P2_DEPTH"
	PhaseEvalReview Phase = "P3_EVAL_REVIEW"
	PhasePractice   Phase = "P4_PRACTICE"
)

// Stage is the exam stage a student is preparing for.
type Stage string

const (
	StageInfantil Stage = "Infantil"
	StagePrimaria Stage = "Primaria"
)

// StudentType distinguishes new vs. repeat candidates.
type StudentType string

const (
	StudentNew    StudentType = "new"
	StudentRepeat StudentType = "repeat"
)

// BufferStatus tiers capacity slack against planned workload.
type BufferStatus string

const (
	BufferGood    BufferStatus = "good"
	BufferEdge    BufferStatus = "edge"
	BufferWarning BufferStatus = "warning"
)

// EventKind is the closed set of feedback event kinds.
type EventKind string

const (
	EventQuizResult      EventKind = "QUIZ_RESULT"
	EventBlockCompleted  EventKind = "BLOCK_COMPLETED"
	EventSessionFeedback EventKind = "SESSION_FEEDBACK"
)

// Feel is the closed set of session-feedback valences.
type Feel string

const (
	FeelTooMuch Feel = "too_much"
	FeelOK      Feel = "ok"
	FeelMore    Feel = "more"
)

// activityMeta pairs an activity with its fixed phase/type/format tags (spec.md §6 table).
type activityMeta struct {
	Phase  Phase
	Type   string
	Format string
	// Unit is a fixed attribution override (only PROGRAMMING_BLOCK uses one).
	Unit string
}

var activityMetaTable = map[Activity]activityMeta{
	StudyTheme:       {Phase: PhaseDepth, Type: "new_content", Format: "raw_content"},
	Review:           {Phase: PhaseEvalReview, Type: "review", Format: "flashcards"},
	Podcast:          {Phase: PhaseDepth, Type: "new_content", Format: "audio"},
	Flashcard:        {Phase: PhaseEvalReview, Type: "recap", Format: "flashcards"},
	Quiz:             {Phase: PhaseEvalReview, Type: "quiz", Format: "quiz"},
	CasePractice:     {Phase: PhasePractice, Type: "practice", Format: "quiz"},
	CaseMock:         {Phase: PhasePractice, Type: "evaluation", Format: "quiz"},
	ProgrammingBlock: {Phase: PhasePractice, Type: "practice", Format: "raw_content", Unit: "Programación"},
}

// MetaFor returns the fixed phase/type/format (and optional unit override) for an activity.
func MetaFor(a Activity) (phase Phase, typ string, format string, fixedUnit string) {
	m := activityMetaTable[a]
	return m.Phase, m.Type, m.Format, m.Unit
}

// IsTheory reports whether an activity belongs to the theory stream.
func IsTheory(a Activity) bool { return StreamOf(a) == StreamTheory }

// IsSecondaryTheory reports whether an activity is a non-STUDY_THEME theory activity.
func IsSecondaryTheory(a Activity) bool {
	return IsTheory(a) && a != StudyTheme
}
