// Package parser decodes AI feedback responses into the canonical ResumeModel.
//
// The upstream generator is unreliable: responses may be malformed JSON,
// wrapped in markdown fences, or missing whole sections. Every entry point
// absorbs decode failures and returns a structurally valid (possibly empty)
// model instead of an error.
package parser

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-review/internal/llm"
	"github.com/jonathan/resume-review/internal/types"
	"github.com/tidwall/gjson"
)

// newID generates identifiers for new domain entities. Indirect so tests can
// pin deterministic ids.
var newID = func() string { return uuid.New().String() }

// JobContext carries the job metadata the caller collected at upload time.
type JobContext struct {
	CompanyName    string
	JobTitle       string
	JobDescription string
}

// NewEmptyResumeModel creates a fully defaulted resume model. Every slice is
// non-nil so the persisted JSON shape stays stable.
func NewEmptyResumeModel(originalResumeID string) *types.ResumeModel {
	return &types.ResumeModel{
		ID:               newID(),
		Version:          1,
		LastModified:     time.Now(),
		OriginalResumeID: originalResumeID,
		PersonalInfo:     types.PersonalInfo{},
		Summary: types.ProfessionalSummary{
			KeyStrengths: []string{},
		},
		Experience: []types.WorkExperience{},
		Skills: types.SkillsSection{
			Technical:      []types.TechnicalSkill{},
			Soft:           []string{},
			Certifications: []types.Certification{},
			Languages:      []types.Language{},
		},
		Education: []types.Education{},
		Projects:  []types.Project{},
		Optimization: types.OptimizationMetadata{
			AppliedSuggestions:  []types.AppliedSuggestion{},
			PendingSuggestions:  []types.PendingSuggestion{},
			OptimizationHistory: []types.OptimizationSession{},
		},
	}
}

// ResponseShape identifies which parser an AI response calls for.
type ResponseShape string

// Recognized response shapes.
const (
	ShapeEnhanced ResponseShape = "enhanced"
	ShapeLegacy   ResponseShape = "legacy"
	ShapeUnknown  ResponseShape = "unknown"
)

// DetectShape sniffs an AI response for the keys that distinguish the
// enhanced {feedback, extractedData} form from the legacy flat Feedback form.
func DetectShape(raw string) ResponseShape {
	raw = llm.CleanJSONBlock(raw)
	switch {
	case gjson.Get(raw, "feedback").Exists() && gjson.Get(raw, "extractedData").Exists():
		return ShapeEnhanced
	case gjson.Get(raw, "overallScore").Exists() || gjson.Get(raw, "ATS").Exists():
		return ShapeLegacy
	default:
		return ShapeUnknown
	}
}

// ParseAIResponse is the tagged decode attempt over both shapes: enhanced
// first, then legacy, then the empty fallback model.
func ParseAIResponse(raw, originalResumeID string, job JobContext) *types.ResumeModel {
	switch DetectShape(raw) {
	case ShapeEnhanced:
		return ParseEnhancedAIResponse(raw, originalResumeID, job)
	default:
		return ParseLegacyAIResponse(raw, originalResumeID, job)
	}
}

// ParseEnhancedAIResponse decodes an enhanced {feedback, extractedData}
// response. It populates the ATS score, pending suggestions, every present
// extracted subsection, and an initial optimization session seeded with the
// overall score. On decode failure the defaulted model is returned as-is.
func ParseEnhancedAIResponse(raw, originalResumeID string, job JobContext) *types.ResumeModel {
	model := newTargetedModel(originalResumeID, job)

	cleaned := llm.CleanJSONBlock(raw)
	var resp types.EnhancedAIResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		log.Printf("parser: failed to decode enhanced AI response (shape=%s, %d bytes): %v",
			DetectShape(raw), len(raw), err)
		return model
	}

	model.Optimization.AtsScore = resp.Feedback.ATS.Score
	extractSuggestionsFromFeedback(&resp.Feedback, model)
	populateResumeFromExtractedData(model, &resp.ExtractedData)
	model.Optimization.OptimizationHistory = []types.OptimizationSession{
		newInitialSession(originalResumeID, resp.Feedback.OverallScore),
	}

	return model
}

// ParseLegacyAIResponse decodes a flat Feedback response in its JSON-text
// form. Extracted personal/experience/skills data is never populated on this
// path, only the feedback-derived score and suggestions.
func ParseLegacyAIResponse(raw, originalResumeID string, job JobContext) *types.ResumeModel {
	model := newTargetedModel(originalResumeID, job)

	cleaned := llm.CleanJSONBlock(raw)
	var feedback types.Feedback
	if err := json.Unmarshal([]byte(cleaned), &feedback); err != nil {
		log.Printf("parser: failed to decode feedback (shape=%s, %d bytes): %v",
			DetectShape(raw), len(raw), err)
		return model
	}

	model.Optimization.AtsScore = feedback.ATS.Score
	extractSuggestionsFromFeedback(&feedback, model)

	return model
}

// ResumeModelFromFeedback builds a model from an already-decoded Feedback
// object, for callers that stored the parsed critique rather than its text.
func ResumeModelFromFeedback(feedback *types.Feedback, originalResumeID string, job JobContext) *types.ResumeModel {
	model := newTargetedModel(originalResumeID, job)
	if feedback == nil {
		return model
	}

	model.Optimization.AtsScore = feedback.ATS.Score
	extractSuggestionsFromFeedback(feedback, model)

	return model
}

func newTargetedModel(originalResumeID string, job JobContext) *types.ResumeModel {
	model := NewEmptyResumeModel(originalResumeID)
	model.Optimization.TargetJobID = originalResumeID
	model.Optimization.TargetJobTitle = job.JobTitle
	model.Optimization.TargetCompany = job.CompanyName
	return model
}

// newInitialSession creates the session that accompanies a freshly parsed
// model, positioned at the first phase.
func newInitialSession(targetJobID string, initialScore float64) types.OptimizationSession {
	return types.OptimizationSession{
		ID:             newID(),
		StartDate:      time.Now(),
		TargetJobID:    targetJobID,
		InitialScore:   initialScore,
		QuestionsAsked: []types.OptimizationQuestion{},
		ChangesApplied: []string{},
		Phases:         types.NewPhaseSet(),
		CurrentPhase:   types.PhaseBlindSpot,
	}
}
