package domain

import "time"

// FormInputs is the user-provided, immutable-per-run shape (spec.md §3).
type FormInputs struct {
	ExamDate          string     `json:"examDate"` // ISO YYYY-MM-DD
	AvailabilityHours [7]float64 `json:"availabilityHours"` // index 0=Mon ... 6=Sun
	PresentedBefore   bool       `json:"presentedBefore"`
	AlreadyStudying   bool       `json:"alreadyStudying"`
	Region            string     `json:"region"`
	Stage             Stage      `json:"stage"`
	ThemeCount        int        `json:"themeCount,omitempty"` // 0 means "unset" — defaults to 20
	PlanProgramming   *bool      `json:"planProgramming,omitempty"`
	StudentType       StudentType `json:"studentType,omitempty"`
}

// UnitCount returns the effective theme count, defaulting to UnitDefaultCount.
func (f FormInputs) UnitCount() int {
	if f.ThemeCount == 0 {
		return UnitDefaultCount
	}
	return f.ThemeCount
}

// PlanProgrammingEnabled returns the effective plan-programming flag, defaulting to true.
func (f FormInputs) PlanProgrammingEnabled() bool {
	return BoolFromPtrWithDefault(true, f.PlanProgramming)
}

// PlanCapacity is derived once per (inputs, todayISO) — spec.md §3.
type PlanCapacity struct {
	TotalWeeks             int          `json:"totalWeeks"`
	EffectivePlanningWeeks int          `json:"effectivePlanningWeeks"`
	AvailableEffectiveMin  int          `json:"availableEffectiveMin"`
	UnitsCount             int          `json:"unitsCount"`
	TheoryPlanned          int          `json:"theoryPlanned"`
	CasesPlanned           int          `json:"casesPlanned"`
	ProgrammingPlanned     int          `json:"programmingPlanned"`
	PlannedMinutes         int          `json:"plannedMinutes"`
	BufferMinutes          int          `json:"bufferMinutes"`
	BufferRatio            float64      `json:"bufferRatio"`
	BufferStatus           BufferStatus `json:"bufferStatus"`
}

// RequiredMinutes is the per-activity required-minutes ledger for one unit.
type RequiredMinutes struct {
	StudyTheme int `json:"studyTheme"`
	Review     int `json:"review"`
	Podcast    int `json:"podcast"`
	Flashcard  int `json:"flashcard"`
	Quiz       int `json:"quiz"`
}

// DoneMinutes mirrors RequiredMinutes for minutes actually completed.
type DoneMinutes struct {
	StudyTheme int `json:"studyTheme"`
	Review     int `json:"review"`
	Podcast    int `json:"podcast"`
	Flashcard  int `json:"flashcard"`
	Quiz       int `json:"quiz"`
}

// UnitLedger is the per-unit required/done minute ledger, keyed "Unidad k".
type UnitLedger struct {
	Key      string          `json:"key"`
	Index    int             `json:"index"` // 1-based
	Required RequiredMinutes `json:"required"`
	Done     DoneMinutes     `json:"done"`
}

// DefaultRequiredMinutes returns the constant per-activity requirements (spec.md §3).
func DefaultRequiredMinutes() RequiredMinutes {
	return RequiredMinutes{
		StudyTheme: StudyThemeMinutes,
		Review:     ReviewMinutes,
		Podcast:    PodcastMinutes,
		Flashcard:  FlashcardMinutes,
		Quiz:       QuizMaxMinutes,
	}
}

// GlobalLedger tracks case/programming required and done minutes.
type GlobalLedger struct {
	CasesRequired       int `json:"casesRequired"`
	CasesDone           int `json:"casesDone"`
	ProgrammingRequired int `json:"programmingRequired"`
	ProgrammingDone     int `json:"programmingDone"`
}

// PreferenceBounds gives the [lo, hi] clamp for one activity's target block duration.
type PreferenceBounds struct {
	Lo int `json:"lo"`
	Hi int `json:"hi"`
}

// Preferences holds per-activity target block durations plus their bounds.
type Preferences struct {
	Targets map[Activity]int            `json:"targets"`
	Bounds  map[Activity]PreferenceBounds `json:"bounds"`
}

// DefaultPreferences returns the default target durations and bounds (spec.md §3).
func DefaultPreferences() Preferences {
	return Preferences{
		Targets: map[Activity]int{
			StudyTheme:       60,
			Review:           30,
			Podcast:          60,
			Flashcard:        30,
			Quiz:             15,
			CasePractice:     60,
			CaseMock:         60,
			ProgrammingBlock: 60,
		},
		Bounds: map[Activity]PreferenceBounds{
			StudyTheme:       {Lo: 30, Hi: 90},
			Review:           {Lo: 15, Hi: 60},
			Podcast:          {Lo: 30, Hi: 90},
			Flashcard:        {Lo: 15, Hi: 60},
			Quiz:             {Lo: 10, Hi: 30},
			CasePractice:     {Lo: 30, Hi: 90},
			CaseMock:         {Lo: 30, Hi: 90},
			ProgrammingBlock: {Lo: 30, Hi: 90},
		},
	}
}

// Clamp returns the activity's target, clamped into its bounds.
func (p Preferences) Clamp(a Activity) int {
	target := p.Targets[a]
	b, ok := p.Bounds[a]
	if !ok {
		return target
	}
	return ClampInt(target, b.Lo, b.Hi)
}

// Adjust shifts an activity's target by delta, re-clamping into bounds.
func (p *Preferences) Adjust(a Activity, delta int) {
	p.Targets[a] = ClampInt(p.Targets[a]+delta, p.Bounds[a].Lo, p.Bounds[a].Hi)
}

// SlackInfo summarizes planable capacity against remaining required workload.
type SlackInfo struct {
	EffectiveCapacityFuture int          `json:"effectiveCapacityFuture"`
	RequiredMinutesFuture   int          `json:"requiredMinutesFuture"`
	SlackMinutes            int          `json:"slackMinutes"`
	SlackRatio              float64      `json:"slackRatio"`
	Status                  BufferStatus `json:"status"`
}

// StudentMeta bundles StudentState's non-ledger bookkeeping fields.
type StudentMeta struct {
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"createdAt"`
	TodayISO    string    `json:"todayISO"`
	ExamDateISO string    `json:"examDateISO"`
}

// StudentState bundles meta, per-unit ledgers, the global ledger, slack and preferences.
type StudentState struct {
	Meta        StudentMeta  `json:"meta"`
	Units       []UnitLedger `json:"units"` // ordered by Index ascending
	Global      GlobalLedger `json:"global"`
	Slack       SlackInfo    `json:"slack"`
	Preferences Preferences  `json:"preferences"`
}

// UnitByKey finds a unit ledger by its "Unidad k" key, or nil.
func (s *StudentState) UnitByKey(key string) *UnitLedger {
	for i := range s.Units {
		if s.Units[i].Key == key {
			return &s.Units[i]
		}
	}
	return nil
}

// StudyBlock is one scheduled unit of work within a day.
type StudyBlock struct {
	ID              string   `json:"id"`
	DateISO         string   `json:"dateISO"`
	Index           int      `json:"index"` // index within the day
	Activity        Activity `json:"activity"`
	Unit            string   `json:"unit,omitempty"` // "" when not applicable (e.g. programming has a fixed "Programación")
	DurationMinutes int      `json:"durationMinutes"`
	Phase           Phase    `json:"phase"`
	Type            string   `json:"type"`
	Format          string   `json:"format"`
}

// DayPlan is one calendar day's schedule.
type DayPlan struct {
	DateISO string       `json:"dateISO"`
	Weekday int          `json:"weekday"` // 0=Sunday ... 6=Saturday
	Hours   float64      `json:"hours"`
	Blocks  []StudyBlock `json:"blocks"`
}

// WeekActual records what actually got scheduled in one week.
type WeekActual struct {
	WeekIndex       int            `json:"weekIndex"`
	MinutesByStream map[Stream]int `json:"minutesByStream"`
	MissingStreams  []Stream       `json:"missingStreams,omitempty"`
}

// DebugInfo carries optional diagnostic rollups alongside a generated plan.
type DebugInfo struct {
	Capacity        PlanCapacity   `json:"capacity"`
	StreamTotals    map[Stream]int `json:"streamTotals"`
	WeeklyActuals   []WeekActual   `json:"weeklyActuals"`
	StarvationWeeks map[Stream]int `json:"starvationWeeks"`
}

// WeekSummary is a Monday-anchored per-week rollup.
type WeekSummary struct {
	WeekStartISO   string        `json:"weekStartISO"`
	TotalHours     float64       `json:"totalHours"`
	MinutesByPhase map[Phase]int `json:"minutesByPhase"`
}

// PlanMeta carries the generation context.
type PlanMeta struct {
	GeneratedAt time.Time `json:"generatedAt"`
	TodayISO    string    `json:"todayISO"`
	ExamDateISO string    `json:"examDateISO"`
	Region      string    `json:"region"`
	Stage       Stage     `json:"stage"`
	TotalUnits  int       `json:"totalUnits"`
}

// Plan is the immutable output of plan generation.
type Plan struct {
	Meta            PlanMeta      `json:"meta"`
	Days            []DayPlan     `json:"days"`
	WeeklySummaries []WeekSummary `json:"weeklySummaries"`
	Explanations    []string      `json:"explanations,omitempty"`
	Debug           *DebugInfo    `json:"debug,omitempty"`
}

// TotalScheduledMinutes sums every block's duration across the whole plan.
func (p *Plan) TotalScheduledMinutes() int {
	total := 0
	for _, d := range p.Days {
		for _, b := range d.Blocks {
			total += b.DurationMinutes
		}
	}
	return total
}

// StreamTotals sums scheduled minutes per stream across the whole plan.
func (p *Plan) StreamTotals() map[Stream]int {
	totals := map[Stream]int{StreamTheory: 0, StreamCases: 0, StreamProgramming: 0}
	for _, d := range p.Days {
		for _, b := range d.Blocks {
			totals[StreamOf(b.Activity)] += b.DurationMinutes
		}
	}
	return totals
}
