package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEnhancedResponse_Valid(t *testing.T) {
	doc := `{
		"feedback": {
			"overallScore": 72,
			"ATS": {"score": 65, "tips": [{"type": "improve", "tip": "Add keywords", "explanation": "The posting mentions Kubernetes."}]},
			"toneAndStyle": {"score": 80, "tips": []},
			"content": {"score": 70, "tips": []},
			"structure": {"score": 75, "tips": []},
			"skills": {"score": 68, "tips": []}
		},
		"extractedData": {
			"personalInfo": {"fullName": "Jordan Lee", "email": "jordan@example.com"},
			"experience": [{"company": "Acme", "position": "Engineer"}]
		}
	}`

	assert.NoError(t, ValidateEnhancedResponse(doc))
}

func TestValidateEnhancedResponse_MissingFeedback(t *testing.T) {
	err := ValidateEnhancedResponse(`{"extractedData": {}}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateEnhancedResponse_WrongScoreType(t *testing.T) {
	doc := `{"feedback": {"overallScore": "high"}}`

	err := ValidateEnhancedResponse(doc)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "feedback.overallScore", validationErr.Errors[0].Field)
}

func TestValidateEnhancedResponse_BadTipType(t *testing.T) {
	doc := `{
		"feedback": {
			"overallScore": 50,
			"ATS": {"score": 50, "tips": [{"type": "neutral", "tip": "x"}]}
		}
	}`

	err := ValidateEnhancedResponse(doc)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSONString_MalformedDocument(t *testing.T) {
	err := ValidateJSONString(`{"type": "object"}`, "{ not json }")
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{
		{Field: "feedback", Message: "is required"},
	}}
	assert.Contains(t, err.Error(), "1. feedback: is required")
}
