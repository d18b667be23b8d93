package parser

import (
	"fmt"

	"github.com/jonathan/resume-review/internal/types"
)

// maxQuestionsPerSession caps question generation. The cap is a simple
// truncation in generation order, not a priority sort.
const maxQuestionsPerSession = 5

// questionTemplates embed the suggestion text into a question that asks the
// user for the supporting detail the resume is missing.
var questionTemplates = map[string]string{
	types.SuggestionKeyword:    "I noticed your resume could benefit from more relevant keywords. %s Can you provide specific examples or details about your experience with these areas?",
	types.SuggestionContent:    "To improve your resume content: %s Can you share more details about your achievements and responsibilities?",
	types.SuggestionStructure:  "For better resume structure: %s Would you like help reorganizing this information?",
	types.SuggestionFormatting: "To enhance your resume's tone and style: %s Can you provide the content you'd like to improve?",
}

// GenerateOptimizationQuestions produces up to five questions for a resume:
// one per pending suggestion, then unconditional structural checks for an
// empty experience section and an empty technical-skill list.
func GenerateOptimizationQuestions(model *types.ResumeModel, jobDescription string) []types.OptimizationQuestion {
	questions := make([]types.OptimizationQuestion, 0, maxQuestionsPerSession)

	for _, suggestion := range model.Optimization.PendingSuggestions {
		if question, ok := questionFromSuggestion(suggestion); ok {
			questions = append(questions, question)
		}
	}

	if len(model.Experience) == 0 {
		questions = append(questions, types.OptimizationQuestion{
			ID:        newID(),
			Question:  "Can you tell me about your work experience, including company names, positions, and key achievements?",
			Section:   "experience",
			Reasoning: "Work experience is crucial for ATS scoring and job matching",
		})
	}

	if len(model.Skills.Technical) == 0 {
		questions = append(questions, types.OptimizationQuestion{
			ID:        newID(),
			Question:  fmt.Sprintf("What technical skills do you have that are relevant to %s?", model.Optimization.TargetJobTitle),
			Section:   "skills",
			Reasoning: "Technical skills matching is important for ATS optimization",
		})
	}

	if len(questions) > maxQuestionsPerSession {
		questions = questions[:maxQuestionsPerSession]
	}
	return questions
}

func questionFromSuggestion(suggestion types.PendingSuggestion) (types.OptimizationQuestion, bool) {
	template, ok := questionTemplates[suggestion.Type]
	if !ok {
		return types.OptimizationQuestion{}, false
	}

	return types.OptimizationQuestion{
		ID:        newID(),
		Question:  fmt.Sprintf(template, suggestion.Suggestion),
		Section:   suggestion.Section,
		Reasoning: suggestion.Reasoning,
	}, true
}
