package prompts

import (
	"strings"

	"github.com/jonathan/resume-review/internal/types"
)

const (
	analysisFile     = "analysis.json"
	optimizationFile = "optimization.json"
)

// AnalysisInstructions builds the flat-feedback analysis prompt. This is the
// reliable format: critique only, no data extraction.
func AnalysisInstructions(jobTitle, jobDescription string) string {
	return Format(MustGet(analysisFile, "analyze-resume"), map[string]string{
		"JobTitle":       jobTitle,
		"JobDescription": jobDescription,
		"ResponseFormat": MustGet(analysisFile, "feedback-format"),
	})
}

// EnhancedAnalysisInstructions builds the two-task prompt asking for both the
// critique and the structured resume data in one response.
func EnhancedAnalysisInstructions(jobTitle, jobDescription string) string {
	responseFormat := Format(MustGet(analysisFile, "enhanced-format"), map[string]string{
		"FeedbackFormat": strings.TrimSpace(MustGet(analysisFile, "feedback-format")),
	})
	return Format(MustGet(analysisFile, "analyze-resume-enhanced"), map[string]string{
		"JobTitle":       jobTitle,
		"JobDescription": jobDescription,
		"ResponseFormat": responseFormat,
	})
}

// OptimizationParams parameterizes a per-phase optimization prompt.
type OptimizationParams struct {
	Phase          types.PhaseKind
	JobTitle       string
	JobDescription string
	Industry       string
	Company        string
	ResumeSection  string
}

// OptimizationInstructions builds the instruction prompt for one phase of
// the guided-optimization workflow. Unknown phases fall back to the plain
// analysis prompt.
func OptimizationInstructions(p OptimizationParams) string {
	template, err := Get(optimizationFile, "phase-"+string(p.Phase))
	if err != nil {
		return AnalysisInstructions(p.JobTitle, p.JobDescription)
	}

	baseContext := Format(MustGet(optimizationFile, "base-context"), map[string]string{
		"JobTitle":       p.JobTitle,
		"Company":        p.Company,
		"Industry":       p.Industry,
		"JobDescription": p.JobDescription,
	})

	resumeSection := p.ResumeSection
	if resumeSection == "" {
		resumeSection = "Not provided"
	}

	return Format(template, map[string]string{
		"BaseContext":    baseContext,
		"JobTitle":       p.JobTitle,
		"JobDescription": p.JobDescription,
		"Industry":       p.Industry,
		"Company":        p.Company,
		"ResumeSection":  resumeSection,
	})
}
