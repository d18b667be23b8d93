package workflow

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/jonathan/resume-review/internal/llm"
	"github.com/jonathan/resume-review/internal/prompts"
	"github.com/jonathan/resume-review/internal/types"
	"github.com/tidwall/gjson"
)

// AIChat is the injected chat capability ProcessPhase suspends on. The
// response may be plain text or a serialized message-container object.
type AIChat func(ctx context.Context, prompt string) (string, error)

// PhaseResult carries the parsed output of one phase-processing call.
type PhaseResult struct {
	Questions   []types.OptimizationQuestion `json:"questions"`
	Suggestions []string                     `json:"suggestions"`
	AIResponse  string                       `json:"aiResponse,omitempty"`
}

// phaseResponse is the wire shape the optimization prompts ask the model for.
type phaseResponse struct {
	Questions []struct {
		Question  string `json:"question"`
		Reasoning string `json:"reasoning"`
		Section   string `json:"section"`
	} `json:"questions"`
	Suggestions []string `json:"suggestions"`
}

// ProcessPhase builds the phase instruction from the phase-relevant resume
// slice, invokes the chat capability, and parses the result. Any chat or
// parse failure is logged and yields an empty result; phase state is never
// touched here, so a failed call is safe to retry.
func ProcessPhase(ctx context.Context, phase types.PhaseKind, model *types.ResumeModel, job JobContext, chat AIChat) PhaseResult {
	instructions := prompts.OptimizationInstructions(prompts.OptimizationParams{
		Phase:          phase,
		JobTitle:       job.JobTitle,
		JobDescription: job.JobDescription,
		Industry:       job.Industry,
		Company:        job.CompanyName,
		ResumeSection:  relevantResumeSection(model, phase),
	})

	raw, err := chat(ctx, instructions)
	if err != nil {
		log.Printf("workflow: %s phase chat failed: %v", phase, err)
		return PhaseResult{Questions: []types.OptimizationQuestion{}, Suggestions: []string{}}
	}

	return parsePhaseResponse(phase, raw)
}

// relevantResumeSection extracts the resume slice a phase's prompt needs:
// the summary text, the experience digest, the skills projection, or a full
// JSON dump for the remaining phases.
func relevantResumeSection(model *types.ResumeModel, phase types.PhaseKind) string {
	switch phase {
	case types.PhaseSummary:
		return model.Summary.Content

	case types.PhaseAchievements:
		lines := make([]string, 0, len(model.Experience))
		for _, exp := range model.Experience {
			lines = append(lines, exp.Company+" - "+exp.Position+": "+exp.Description)
		}
		return strings.Join(lines, "\n\n")

	case types.PhaseATS:
		type atsExperience struct {
			Company      string   `json:"company"`
			Position     string   `json:"position"`
			Technologies []string `json:"technologies,omitempty"`
		}
		projection := struct {
			Skills     types.SkillsSection `json:"skills"`
			Experience []atsExperience     `json:"experience"`
		}{Skills: model.Skills, Experience: make([]atsExperience, 0, len(model.Experience))}
		for _, exp := range model.Experience {
			projection.Experience = append(projection.Experience, atsExperience{
				Company:      exp.Company,
				Position:     exp.Position,
				Technologies: exp.Technologies,
			})
		}
		data, err := json.Marshal(projection)
		if err != nil {
			return ""
		}
		return string(data)

	default:
		data, err := json.MarshalIndent(model, "", "  ")
		if err != nil {
			return ""
		}
		return string(data)
	}
}

// parsePhaseResponse unwraps the chat payload and decodes it. The payload
// may be the JSON itself or a message container ({message:{content}} or
// {content}), where content is a string or an array of {text} parts. Any
// failure falls back to an empty result.
func parsePhaseResponse(phase types.PhaseKind, raw string) PhaseResult {
	empty := PhaseResult{Questions: []types.OptimizationQuestion{}, Suggestions: []string{}}

	content := llm.CleanJSONBlock(unwrapMessageContent(raw))

	var resp phaseResponse
	if err := json.Unmarshal([]byte(content), &resp); err != nil {
		log.Printf("workflow: failed to parse %s phase response (%d bytes): %v", phase, len(raw), err)
		return empty
	}

	result := PhaseResult{
		Questions:   make([]types.OptimizationQuestion, 0, len(resp.Questions)),
		Suggestions: resp.Suggestions,
		AIResponse:  content,
	}
	if result.Suggestions == nil {
		result.Suggestions = []string{}
	}
	for _, q := range resp.Questions {
		result.Questions = append(result.Questions, types.OptimizationQuestion{
			ID:        newID(),
			Question:  q.Question,
			Section:   q.Section,
			Reasoning: q.Reasoning,
		})
	}
	return result
}

// unwrapMessageContent digs the text content out of message-container
// shapes the AI client may return. Plain payloads pass through unchanged.
func unwrapMessageContent(raw string) string {
	for _, path := range []string{"message.content", "content"} {
		node := gjson.Get(raw, path)
		if !node.Exists() {
			continue
		}
		if node.IsArray() {
			parts := node.Array()
			if len(parts) > 0 {
				if text := parts[0].Get("text"); text.Exists() {
					return text.String()
				}
			}
			return ""
		}
		return node.String()
	}
	return raw
}
