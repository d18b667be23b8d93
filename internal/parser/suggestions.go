package parser

import "github.com/jonathan/resume-review/internal/types"

// extractSuggestionsFromFeedback derives pending suggestions from feedback
// tips of type "improve". Emission order follows category declaration order,
// then tip order within a category. "good" tips never produce a suggestion,
// and duplicates are not collapsed.
func extractSuggestionsFromFeedback(feedback *types.Feedback, model *types.ResumeModel) {
	for _, category := range feedback.Categories() {
		for _, tip := range category.Tips {
			if tip.Type != types.TipImprove {
				continue
			}
			reasoning := tip.Explanation
			if reasoning == "" {
				reasoning = tip.Tip
			}
			model.Optimization.PendingSuggestions = append(model.Optimization.PendingSuggestions,
				types.PendingSuggestion{
					ID:              newID(),
					Type:            suggestionTypeForSection(category.Name),
					Section:         category.Name,
					Suggestion:      tip.Tip,
					Reasoning:       reasoning,
					Priority:        priorityForScore(category.Score),
					EstimatedImpact: impactForScore(category.Score),
				})
		}
	}
}

// suggestionTypeForSection maps a feedback category to a suggestion type.
func suggestionTypeForSection(section string) string {
	switch section {
	case "ATS", "skills":
		return types.SuggestionKeyword
	case "structure":
		return types.SuggestionStructure
	case "toneAndStyle":
		return types.SuggestionFormatting
	default:
		return types.SuggestionContent
	}
}

// priorityForScore derives priority from the owning category's score.
func priorityForScore(score float64) string {
	switch {
	case score < 60:
		return types.PriorityHigh
	case score < 80:
		return types.PriorityMedium
	default:
		return types.PriorityLow
	}
}

// impactForScore estimates the ATS-score headroom left in a category.
func impactForScore(score float64) float64 {
	if score >= 100 {
		return 0
	}
	return 100 - score
}
