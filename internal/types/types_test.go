package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPhaseSet(t *testing.T) {
	phases := NewPhaseSet()
	require.Len(t, phases, 7)

	wantNames := map[PhaseKind]string{
		PhaseBlindSpot:    "Blind Spot Analysis",
		PhaseSummary:      "Summary Optimization",
		PhaseAchievements: "Achievement Focus",
		PhaseGaps:         "Gap Reframing",
		PhaseATS:          "ATS Optimization",
		PhaseFormatting:   "Format & Structure",
		PhaseOutreach:     "Outreach Message",
	}

	for i, phase := range phases {
		assert.Equal(t, PhaseOrder[i], phase.Phase, "phase %d follows canonical order", i)
		assert.Equal(t, wantNames[phase.Phase], phase.Name)
		assert.NotEmpty(t, phase.Description)
		assert.False(t, phase.Completed)
		assert.NotNil(t, phase.Improvements)
		assert.NotNil(t, phase.Questions)
		assert.Nil(t, phase.StartDate)
		assert.Nil(t, phase.EndDate)
	}

	t.Run("fresh slice each call", func(t *testing.T) {
		a, b := NewPhaseSet(), NewPhaseSet()
		a[0].Completed = true
		assert.False(t, b[0].Completed)
	})
}

func TestFeedbackCategories(t *testing.T) {
	feedback := &Feedback{
		OverallScore: 72,
		ATS:          CategoryFeedback{Score: 1},
		ToneAndStyle: CategoryFeedback{Score: 2},
		Content:      CategoryFeedback{Score: 3},
		Structure:    CategoryFeedback{Score: 4},
		Skills:       CategoryFeedback{Score: 5},
	}

	categories := feedback.Categories()
	require.Len(t, categories, 5)

	var names []string
	for i, category := range categories {
		names = append(names, category.Name)
		assert.Equal(t, float64(i+1), category.Score)
	}
	assert.Equal(t, []string{"ATS", "toneAndStyle", "content", "structure", "skills"}, names)
}

func TestFeedbackJSON(t *testing.T) {
	raw := `{
	  "overallScore": 55,
	  "ATS": {"score": 50, "tips": [{"type": "improve", "tip": "Add keywords", "explanation": "ATS match is weak"}]},
	  "toneAndStyle": {"score": 70, "tips": []},
	  "content": {"score": 60, "tips": []},
	  "structure": {"score": 80, "tips": []},
	  "skills": {"score": 65, "tips": []}
	}`

	var feedback Feedback
	require.NoError(t, json.Unmarshal([]byte(raw), &feedback))
	assert.Equal(t, 55.0, feedback.OverallScore)
	require.Len(t, feedback.ATS.Tips, 1)
	assert.Equal(t, TipImprove, feedback.ATS.Tips[0].Type)
	assert.Equal(t, "ATS match is weak", feedback.ATS.Tips[0].Explanation)

	data, err := json.Marshal(&feedback)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"ATS"`, "the ATS key keeps its uppercase spelling")
	assert.Contains(t, string(data), `"toneAndStyle"`)
}

func TestRegisterRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr bool
	}{
		{"valid", RegisterRequest{Name: "Jordan", Email: "jordan@example.com", Password: "longenough"}, false},
		{"missing name", RegisterRequest{Email: "jordan@example.com", Password: "longenough"}, true},
		{"bad email", RegisterRequest{Name: "Jordan", Email: "not-an-email", Password: "longenough"}, true},
		{"short password", RegisterRequest{Name: "Jordan", Email: "jordan@example.com", Password: "short"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoginRequestValidate(t *testing.T) {
	valid := LoginRequest{Email: "jordan@example.com", Password: "x"}
	assert.NoError(t, valid.Validate())

	missing := LoginRequest{Email: "jordan@example.com"}
	assert.Error(t, missing.Validate())
}
