package parser

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-review/internal/types"
)

// pinIDs replaces the id generator with a deterministic counter for the
// duration of the test.
func pinIDs(t *testing.T) {
	t.Helper()
	orig := newID
	n := 0
	newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	t.Cleanup(func() { newID = orig })
}

const enhancedResponse = `{
  "feedback": {
    "overallScore": 55,
    "ATS": {
      "score": 50,
      "tips": [
        {"type": "improve", "tip": "Add role-specific keywords"},
        {"type": "good", "tip": "Standard section headings"}
      ]
    },
    "toneAndStyle": {
      "score": 70,
      "tips": [
        {"type": "improve", "tip": "Use active voice", "explanation": "Passive phrasing buries your contribution"}
      ]
    },
    "content": {"score": 95, "tips": [{"type": "improve", "tip": "Quantify outcomes"}]},
    "structure": {"score": 80, "tips": [{"type": "good", "tip": "Clear chronology"}]},
    "skills": {"score": 60, "tips": []}
  },
  "extractedData": {
    "personalInfo": {
      "fullName": "Jordan Lee",
      "email": "jordan@example.com",
      "phone": "555-0100",
      "location": "Portland, OR",
      "github": "github.com/jordanlee"
    },
    "summary": {
      "content": "Backend engineer with platform focus.",
      "keyStrengths": ["Go", "distributed systems"],
      "yearsOfExperience": 6
    },
    "experience": [
      {
        "company": "Acme",
        "position": "Senior Engineer",
        "startDate": "2021-03",
        "endDate": "Present",
        "location": "Remote",
        "description": "Owns the ingestion platform.",
        "achievements": ["Cut p99 latency 40%"],
        "technologies": ["Go", "Postgres"]
      }
    ],
    "skills": {
      "technical": [
        {"name": "Go", "category": "Languages", "proficiency": "Expert"},
        {"name": "Terraform", "category": ""}
      ],
      "soft": ["Mentoring"],
      "certifications": [
        {"name": "CKA", "issuer": "CNCF", "dateObtained": "2023-05"}
      ],
      "languages": [{"name": "Spanish", "proficiency": ""}]
    },
    "education": [
      {
        "institution": "State University",
        "degree": "BSc",
        "field": "Computer Science",
        "startDate": "2013",
        "endDate": "2017",
        "honors": ["cum laude"]
      }
    ],
    "projects": [
      {
        "name": "queuebee",
        "description": "Embedded job queue.",
        "technologies": ["Go"],
        "achievements": [],
        "url": "https://example.com/queuebee"
      }
    ]
  }
}`

const legacyResponse = `{
  "overallScore": 62,
  "ATS": {"score": 58, "tips": [{"type": "improve", "tip": "Mirror the posting's terms"}]},
  "toneAndStyle": {"score": 81, "tips": []},
  "content": {"score": 75, "tips": [{"type": "good", "tip": "Strong verbs"}]},
  "structure": {"score": 90, "tips": []},
  "skills": {"score": 66, "tips": [{"type": "improve", "tip": "Group skills by theme"}]}
}`

func TestDetectShape(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want ResponseShape
	}{
		{"enhanced", enhancedResponse, ShapeEnhanced},
		{"legacy overallScore", legacyResponse, ShapeLegacy},
		{"legacy ATS only", `{"ATS": {"score": 40, "tips": []}}`, ShapeLegacy},
		{"fenced enhanced", "```json\n" + enhancedResponse + "\n```", ShapeEnhanced},
		{"feedback without extractedData", `{"feedback": {"overallScore": 1}}`, ShapeUnknown},
		{"unknown", `{"hello": "world"}`, ShapeUnknown},
		{"not json", "the model apologizes instead of answering", ShapeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectShape(tt.raw))
		})
	}
}

func TestParseAIResponse_Enhanced(t *testing.T) {
	pinIDs(t)

	job := JobContext{CompanyName: "Acme", JobTitle: "Platform Engineer", JobDescription: "Go services"}
	model := ParseAIResponse(enhancedResponse, "resume-1", job)
	require.NotNil(t, model)

	assert.Equal(t, "resume-1", model.OriginalResumeID)
	assert.Equal(t, 1, model.Version)
	assert.Equal(t, "Acme", model.Optimization.TargetCompany)
	assert.Equal(t, "Platform Engineer", model.Optimization.TargetJobTitle)
	assert.Equal(t, "resume-1", model.Optimization.TargetJobID)
	assert.Equal(t, 50.0, model.Optimization.AtsScore)

	assert.Equal(t, "Jordan Lee", model.PersonalInfo.FullName)
	assert.Equal(t, "jordan@example.com", model.PersonalInfo.Email)
	assert.Equal(t, "github.com/jordanlee", model.PersonalInfo.GitHub)

	assert.Equal(t, "Backend engineer with platform focus.", model.Summary.Content)
	assert.Equal(t, []string{"Go", "distributed systems"}, model.Summary.KeyStrengths)
	assert.Equal(t, 6, model.Summary.YearsOfExperience)

	require.Len(t, model.Experience, 1)
	exp := model.Experience[0]
	assert.NotEmpty(t, exp.ID)
	assert.Equal(t, "Acme", exp.Company)
	assert.Equal(t, "Senior Engineer", exp.Position)
	assert.True(t, exp.IsRelevant)
	assert.Equal(t, []string{"Cut p99 latency 40%"}, exp.Achievements)

	require.Len(t, model.Skills.Technical, 2)
	assert.Equal(t, "Languages", model.Skills.Technical[0].Category)
	assert.Equal(t, "General", model.Skills.Technical[1].Category, "empty category defaults")
	assert.Equal(t, []string{"Mentoring"}, model.Skills.Soft)
	require.Len(t, model.Skills.Languages, 1)
	assert.Equal(t, "Basic", model.Skills.Languages[0].Proficiency, "empty proficiency defaults")

	require.Len(t, model.Education, 1)
	assert.Equal(t, "State University", model.Education[0].Institution)
	assert.Equal(t, []string{"cum laude"}, model.Education[0].Honors)

	require.Len(t, model.Projects, 1)
	assert.Equal(t, "queuebee", model.Projects[0].Name)
	assert.NotNil(t, model.Projects[0].Achievements)

	require.Len(t, model.Optimization.OptimizationHistory, 1)
	session := model.Optimization.OptimizationHistory[0]
	assert.Equal(t, 55.0, session.InitialScore)
	assert.Equal(t, types.PhaseBlindSpot, session.CurrentPhase)
	assert.Len(t, session.Phases, 7)
	assert.Empty(t, session.QuestionsAsked)
}

func TestParseAIResponse_Legacy(t *testing.T) {
	pinIDs(t)

	model := ParseAIResponse(legacyResponse, "resume-2", JobContext{JobTitle: "SRE"})
	require.NotNil(t, model)

	assert.Equal(t, 58.0, model.Optimization.AtsScore)
	assert.Empty(t, model.Experience, "legacy responses carry no extracted data")
	assert.Empty(t, model.PersonalInfo.FullName)
	assert.Empty(t, model.Optimization.OptimizationHistory)

	require.Len(t, model.Optimization.PendingSuggestions, 2)
	assert.Equal(t, "Mirror the posting's terms", model.Optimization.PendingSuggestions[0].Suggestion)
	assert.Equal(t, "Group skills by theme", model.Optimization.PendingSuggestions[1].Suggestion)
}

func TestParseAIResponse_Malformed(t *testing.T) {
	pinIDs(t)

	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"truncated json", `{"feedback": {"overallScore": 5`},
		{"prose", "I'm unable to evaluate this resume."},
		{"wrong types", `{"feedback": "not-an-object", "extractedData": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := ParseAIResponse(tt.raw, "resume-3", JobContext{CompanyName: "Acme"})
			require.NotNil(t, model)

			assert.Equal(t, "resume-3", model.OriginalResumeID)
			assert.Equal(t, "Acme", model.Optimization.TargetCompany)
			assert.Zero(t, model.Optimization.AtsScore)
			assert.Empty(t, model.Optimization.PendingSuggestions)

			// The fallback model still has the stable JSON shape.
			assert.NotNil(t, model.Experience)
			assert.NotNil(t, model.Skills.Technical)
			assert.NotNil(t, model.Optimization.OptimizationHistory)
		})
	}
}

func TestParseEnhancedAIResponse_PartialExtractedData(t *testing.T) {
	pinIDs(t)

	raw := `{
	  "feedback": {"overallScore": 40, "ATS": {"score": 30, "tips": []}},
	  "extractedData": {"personalInfo": {"fullName": "Sam Ortiz", "email": "sam@example.com"}}
	}`
	model := ParseEnhancedAIResponse(raw, "resume-4", JobContext{})

	assert.Equal(t, "Sam Ortiz", model.PersonalInfo.FullName)
	assert.Empty(t, model.Summary.Content)
	assert.Empty(t, model.Experience)
	assert.NotNil(t, model.Education)
}

func TestResumeModelFromFeedback(t *testing.T) {
	pinIDs(t)

	feedback := &types.Feedback{
		OverallScore: 70,
		ATS:          types.CategoryFeedback{Score: 65, Tips: []types.Tip{{Type: types.TipImprove, Tip: "Add keywords"}}},
	}
	model := ResumeModelFromFeedback(feedback, "resume-5", JobContext{JobTitle: "Engineer"})
	assert.Equal(t, 65.0, model.Optimization.AtsScore)
	require.Len(t, model.Optimization.PendingSuggestions, 1)

	t.Run("nil feedback", func(t *testing.T) {
		model := ResumeModelFromFeedback(nil, "resume-6", JobContext{})
		require.NotNil(t, model)
		assert.Zero(t, model.Optimization.AtsScore)
		assert.Empty(t, model.Optimization.PendingSuggestions)
	})
}

func TestParsedModelJSONRoundTrip(t *testing.T) {
	pinIDs(t)

	model := ParseAIResponse(enhancedResponse, "resume-7", JobContext{CompanyName: "Acme"})

	data, err := json.Marshal(model)
	require.NoError(t, err)

	var decoded types.ResumeModel
	require.NoError(t, json.Unmarshal(data, &decoded))

	again, err := json.Marshal(&decoded)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
}
