package types

import "time"

// PhaseKind discriminates the seven optimization phases.
type PhaseKind string

// The canonical phase kinds, in workflow order.
const (
	PhaseBlindSpot    PhaseKind = "blindSpot"
	PhaseSummary      PhaseKind = "summary"
	PhaseAchievements PhaseKind = "achievements"
	PhaseGaps         PhaseKind = "gaps"
	PhaseATS          PhaseKind = "ats"
	PhaseFormatting   PhaseKind = "formatting"
	PhaseOutreach     PhaseKind = "outreach"
)

// PhaseOrder is the fixed total order of the optimization state machine.
var PhaseOrder = []PhaseKind{
	PhaseBlindSpot,
	PhaseSummary,
	PhaseAchievements,
	PhaseGaps,
	PhaseATS,
	PhaseFormatting,
	PhaseOutreach,
}

// Suggestion types derived from feedback categories.
const (
	SuggestionContent    = "content"
	SuggestionKeyword    = "keyword"
	SuggestionStructure  = "structure"
	SuggestionFormatting = "formatting"
)

// Suggestion priorities derived from category scores.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// OptimizationMetadata is the mutable optimization state owned by a
// ResumeModel.
type OptimizationMetadata struct {
	TargetJobID    string     `json:"targetJobId,omitempty"`
	TargetJobTitle string     `json:"targetJobTitle,omitempty"`
	TargetCompany  string     `json:"targetCompany,omitempty"`
	AtsScore       float64    `json:"atsScore,omitempty"`
	LastOptimized  *time.Time `json:"lastOptimized,omitempty"`

	AppliedSuggestions []AppliedSuggestion `json:"appliedSuggestions"`
	PendingSuggestions []PendingSuggestion `json:"pendingSuggestions"`

	// OptimizationHistory is append-only; sessions are pushed, never removed.
	OptimizationHistory []OptimizationSession `json:"optimizationHistory"`
}

// AppliedSuggestion records a suggestion that was applied to the resume.
// Declared for forward compatibility; no current operation populates it.
type AppliedSuggestion struct {
	ID               string    `json:"id"`
	Type             string    `json:"type"`
	Section          string    `json:"section"`
	OriginalContent  string    `json:"originalContent"`
	OptimizedContent string    `json:"optimizedContent"`
	AppliedDate      time.Time `json:"appliedDate"`
	ImpactScore      float64   `json:"impactScore,omitempty"`
}

// PendingSuggestion is an unaddressed improvement derived mechanically from
// feedback tips of type "improve".
type PendingSuggestion struct {
	ID              string  `json:"id"`
	Type            string  `json:"type"`
	Section         string  `json:"section"`
	Suggestion      string  `json:"suggestion"`
	Reasoning       string  `json:"reasoning"`
	Priority        string  `json:"priority"`
	EstimatedImpact float64 `json:"estimatedImpact,omitempty"`
}

// OptimizationSession is one improvement run against one target job.
type OptimizationSession struct {
	ID           string     `json:"id"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	TargetJobID  string     `json:"targetJobId"`
	InitialScore float64    `json:"initialScore"`
	FinalScore   float64    `json:"finalScore,omitempty"`

	QuestionsAsked []OptimizationQuestion `json:"questionsAsked"`
	ChangesApplied []string               `json:"changesApplied"`
	Phases         []OptimizationPhase    `json:"phases"`
	CurrentPhase   PhaseKind              `json:"currentPhase,omitempty"`
}

// OptimizationPhase is one step of the guided-optimization state machine.
type OptimizationPhase struct {
	Phase       PhaseKind  `json:"phase"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`

	Improvements []string               `json:"improvements"`
	ScoreImpact  float64                `json:"scoreImpact"`
	Questions    []OptimizationQuestion `json:"questions"`
}

// OptimizationQuestion is a targeted question asked during a phase, together
// with the user's answer once applied.
type OptimizationQuestion struct {
	ID           string     `json:"id"`
	Question     string     `json:"question"`
	Section      string     `json:"section"`
	Reasoning    string     `json:"reasoning"`
	UserResponse string     `json:"userResponse,omitempty"`
	WasApplied   bool       `json:"wasApplied"`
	AppliedDate  *time.Time `json:"appliedDate,omitempty"`
}

// phaseCatalog is the fixed name/description for each canonical phase.
var phaseCatalog = []struct {
	kind        PhaseKind
	name        string
	description string
}{
	{PhaseBlindSpot, "Blind Spot Analysis", "Identify what recruiters look for but might be missing"},
	{PhaseSummary, "Summary Optimization", "Craft a compelling, job-tailored summary"},
	{PhaseAchievements, "Achievement Focus", "Transform responsibilities into measurable achievements"},
	{PhaseGaps, "Gap Reframing", "Turn weaknesses into growth opportunities"},
	{PhaseATS, "ATS Optimization", "Add relevant keywords naturally"},
	{PhaseFormatting, "Format & Structure", "Ensure clean, scannable formatting"},
	{PhaseOutreach, "Outreach Message", "Create compelling hiring manager outreach"},
}

// NewPhaseSet instantiates the seven canonical phases, uncompleted and in
// canonical order. Both session creation paths use this so every session
// carries exactly the same phase sequence.
func NewPhaseSet() []OptimizationPhase {
	phases := make([]OptimizationPhase, 0, len(phaseCatalog))
	for _, entry := range phaseCatalog {
		phases = append(phases, OptimizationPhase{
			Phase:        entry.kind,
			Name:         entry.name,
			Description:  entry.description,
			Improvements: []string{},
			Questions:    []OptimizationQuestion{},
		})
	}
	return phases
}
