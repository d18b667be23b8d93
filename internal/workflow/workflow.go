// Package workflow drives the seven-phase guided-optimization state machine.
//
// A session walks the fixed phase order blindSpot → summary → achievements →
// gaps → ats → formatting → outreach. The engine mutates the passed-in
// ResumeModel and returns it; persisting the result is the caller's job.
// The engine assumes at most one in-flight mutation per model instance.
package workflow

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-review/internal/types"
)

var newID = func() string { return uuid.New().String() }

// JobContext carries the target-job metadata for a session.
type JobContext struct {
	CompanyName    string
	JobTitle       string
	JobDescription string
	Industry       string
}

// StartSession builds a new optimization session positioned at the first
// phase and appends it to the model's history. The session is returned for
// the caller to persist.
func StartSession(model *types.ResumeModel, _ JobContext) *types.OptimizationSession {
	targetJobID := model.Optimization.TargetJobID
	if targetJobID == "" {
		targetJobID = model.ID
	}

	session := types.OptimizationSession{
		ID:             newID(),
		StartDate:      time.Now(),
		TargetJobID:    targetJobID,
		InitialScore:   model.Optimization.AtsScore,
		QuestionsAsked: []types.OptimizationQuestion{},
		ChangesApplied: []string{},
		Phases:         types.NewPhaseSet(),
		CurrentPhase:   types.PhaseBlindSpot,
	}

	model.Optimization.OptimizationHistory = append(model.Optimization.OptimizationHistory, session)
	return &model.Optimization.OptimizationHistory[len(model.Optimization.OptimizationHistory)-1]
}

// ApplyUserResponse records the user's answer to a question and dispatches
// the phase-specific resume mutation. When any lookup fails the model is
// returned unmodified together with a NotFoundError; no partial mutation
// occurs.
func ApplyUserResponse(model *types.ResumeModel, sessionID, questionID, userResponse string, phase types.PhaseKind) (*types.ResumeModel, error) {
	session := findSession(model, sessionID)
	if session == nil {
		return model, &NotFoundError{Entity: "session", ID: sessionID}
	}

	phaseData := findPhase(session, phase)
	if phaseData == nil {
		return model, &NotFoundError{Entity: "phase", ID: string(phase)}
	}

	question := findQuestion(phaseData, questionID)
	if question == nil {
		return model, &NotFoundError{Entity: "question", ID: questionID}
	}

	now := time.Now()
	question.UserResponse = userResponse
	question.WasApplied = true
	question.AppliedDate = &now

	updateResumeFromResponse(model, phase, userResponse, question)

	// Audit line, appended even when the mutation rule was a no-op.
	session.ChangesApplied = append(session.ChangesApplied,
		string(phase)+": "+question.Question+" -> "+userResponse)

	return model, nil
}

// CompletePhase marks a phase completed, records its score impact, and
// advances the session to the next phase. Completing the last phase closes
// the session, setting endDate and finalScore.
func CompletePhase(model *types.ResumeModel, sessionID string, phase types.PhaseKind, scoreImprovement float64) (*types.ResumeModel, error) {
	session := findSession(model, sessionID)
	if session == nil {
		return model, &NotFoundError{Entity: "session", ID: sessionID}
	}

	phaseData := findPhase(session, phase)
	if phaseData == nil {
		return model, &NotFoundError{Entity: "phase", ID: string(phase)}
	}
	if phaseData.Completed {
		return model, &PhaseCompletedError{Phase: string(phase)}
	}

	now := time.Now()
	phaseData.Completed = true
	phaseData.EndDate = &now
	phaseData.ScoreImpact = scoreImprovement

	if next, ok := nextPhase(session, phase); ok {
		session.CurrentPhase = next
	} else {
		session.EndDate = &now
		session.FinalScore = model.Optimization.AtsScore + scoreImprovement
	}

	return model, nil
}

// CurrentPhase returns the phase entry the session currently points at, or
// nil when the session is unknown.
func CurrentPhase(model *types.ResumeModel, sessionID string) *types.OptimizationPhase {
	session := findSession(model, sessionID)
	if session == nil || session.CurrentPhase == "" {
		return nil
	}
	return findPhase(session, session.CurrentPhase)
}

// Progress summarizes a session's completion state.
type Progress struct {
	CompletedPhases  int             `json:"completedPhases"`
	TotalPhases      int             `json:"totalPhases"`
	CurrentPhase     types.PhaseKind `json:"currentPhase,omitempty"`
	ScoreImprovement float64         `json:"scoreImprovement"`
}

// SessionProgress computes completion counts and the accumulated score
// improvement across all phases, completed or not. Unknown sessions yield a
// zeroed struct.
func SessionProgress(model *types.ResumeModel, sessionID string) Progress {
	session := findSession(model, sessionID)
	if session == nil {
		return Progress{}
	}

	progress := Progress{
		TotalPhases:  len(session.Phases),
		CurrentPhase: session.CurrentPhase,
	}
	for _, phase := range session.Phases {
		if phase.Completed {
			progress.CompletedPhases++
		}
		progress.ScoreImprovement += phase.ScoreImpact
	}
	return progress
}

// AttachQuestions records freshly generated questions onto a session's phase
// entry so they survive persistence. Unknown lookups are reported, not
// applied partially.
func AttachQuestions(model *types.ResumeModel, sessionID string, phase types.PhaseKind, questions []types.OptimizationQuestion) error {
	session := findSession(model, sessionID)
	if session == nil {
		return &NotFoundError{Entity: "session", ID: sessionID}
	}
	phaseData := findPhase(session, phase)
	if phaseData == nil {
		return &NotFoundError{Entity: "phase", ID: string(phase)}
	}
	phaseData.Questions = append(phaseData.Questions, questions...)
	return nil
}

func findSession(model *types.ResumeModel, sessionID string) *types.OptimizationSession {
	for i := range model.Optimization.OptimizationHistory {
		if model.Optimization.OptimizationHistory[i].ID == sessionID {
			return &model.Optimization.OptimizationHistory[i]
		}
	}
	return nil
}

func findPhase(session *types.OptimizationSession, phase types.PhaseKind) *types.OptimizationPhase {
	for i := range session.Phases {
		if session.Phases[i].Phase == phase {
			return &session.Phases[i]
		}
	}
	return nil
}

func findQuestion(phase *types.OptimizationPhase, questionID string) *types.OptimizationQuestion {
	for i := range phase.Questions {
		if phase.Questions[i].ID == questionID {
			return &phase.Questions[i]
		}
	}
	return nil
}

func nextPhase(session *types.OptimizationSession, phase types.PhaseKind) (types.PhaseKind, bool) {
	for i := range session.Phases {
		if session.Phases[i].Phase == phase {
			if i+1 < len(session.Phases) {
				return session.Phases[i+1].Phase, true
			}
			return "", false
		}
	}
	return "", false
}
