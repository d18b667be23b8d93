package workflow

import (
	"strings"

	"github.com/jonathan/resume-review/internal/types"
)

// placeholderText fills required fields of entries created from a bare user
// answer, until the user supplies the real values.
const placeholderText = "To be specified"

// updateResumeFromResponse applies the phase-specific mutation rule for a
// user answer. Unmatched phase/section combinations are deliberate no-ops.
func updateResumeFromResponse(model *types.ResumeModel, phase types.PhaseKind, response string, question *types.OptimizationQuestion) {
	switch phase {
	case types.PhaseSummary:
		if question.Section == "summary" {
			model.Summary.Content = response
		}

	case types.PhaseAchievements:
		// Multi-entry targeting is not implemented; the answer lands on the
		// first experience entry.
		if question.Section == "experience" && len(model.Experience) > 0 {
			model.Experience[0].Achievements = append(model.Experience[0].Achievements, response)
		}

	case types.PhaseATS:
		if question.Section == "skills" {
			addTechnicalSkills(model, response, "General", true)
		}

	case types.PhaseBlindSpot:
		fillBlindSpot(model, response, question)
	}
}

// fillBlindSpot adds the missing resume content a blind-spot question
// surfaced, keyed on the resume section the question targets.
func fillBlindSpot(model *types.ResumeModel, response string, question *types.OptimizationQuestion) {
	switch question.Section {
	case "experience":
		model.Experience = append(model.Experience, types.WorkExperience{
			ID:           newID(),
			Company:      placeholderText,
			Position:     placeholderText,
			Description:  response,
			Achievements: []string{},
			IsRelevant:   true,
		})

	case "skills":
		addTechnicalSkills(model, response, "Missing Skill", false)

	case "education":
		model.Education = append(model.Education, types.Education{
			ID:          newID(),
			Institution: placeholderText,
			Degree:      placeholderText,
			Field:       response,
			IsRelevant:  true,
		})
	}
}

// addTechnicalSkills splits a comma-separated answer into technical skills.
// When dedupe is set, skills already present by name are skipped.
func addTechnicalSkills(model *types.ResumeModel, response, category string, dedupe bool) {
	for _, raw := range strings.Split(response, ",") {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if dedupe && hasTechnicalSkill(model, name) {
			continue
		}
		model.Skills.Technical = append(model.Skills.Technical, types.TechnicalSkill{
			Name:       name,
			Category:   category,
			IsRelevant: true,
		})
	}
}

func hasTechnicalSkill(model *types.ResumeModel, name string) bool {
	for _, skill := range model.Skills.Technical {
		if skill.Name == name {
			return true
		}
	}
	return false
}
