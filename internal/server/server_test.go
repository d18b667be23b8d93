package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-review/internal/store"
	"github.com/jonathan/resume-review/internal/types"
)

// stubAI is a canned llm.Client for handler tests.
type stubAI struct {
	chatResponse     string
	feedbackResponse string
}

func (s *stubAI) Chat(_ context.Context, _ string) (string, error)     { return s.chatResponse, nil }
func (s *stubAI) ChatJSON(_ context.Context, _ string) (string, error) { return s.chatResponse, nil }
func (s *stubAI) Feedback(_ context.Context, _ []byte, _ string) (string, error) {
	return s.feedbackResponse, nil
}
func (s *stubAI) Close() error { return nil }

const enhancedResponseFixture = `{
	"feedback": {
		"overallScore": 55,
		"ATS": {"score": 50, "tips": [{"type": "improve", "tip": "Add role keywords", "explanation": "The posting lists Kubernetes and Terraform."}]},
		"toneAndStyle": {"score": 70, "tips": []},
		"content": {"score": 60, "tips": [{"type": "good", "tip": "Strong verbs"}]},
		"structure": {"score": 75, "tips": []},
		"skills": {"score": 65, "tips": []}
	},
	"extractedData": {
		"personalInfo": {"fullName": "Jordan Lee", "email": "jordan@example.com"},
		"experience": [{"company": "Acme", "position": "Engineer", "achievements": ["Shipped v2"]}],
		"skills": {"technical": [{"name": "Go", "category": "Languages"}]}
	}
}`

const phaseResponseFixture = `{
	"questions": [
		{"question": "Which achievements best match this role?", "reasoning": "Focus the summary", "section": "summary"}
	],
	"suggestions": ["Lead with your platform work"]
}`

type testEnv struct {
	server *httptest.Server
	kv     *store.Memory
	token  string
}

func newTestEnv(t *testing.T, ai *stubAI) *testEnv {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	if ai == nil {
		ai = &stubAI{
			chatResponse:     phaseResponseFixture,
			feedbackResponse: enhancedResponseFixture,
		}
	}

	kv := store.NewMemory()
	s, err := NewWithBackends(Config{Port: 0}, kv, kv, ai)
	require.NoError(t, err)

	ts := httptest.NewServer(s.httpServer.Handler)
	t.Cleanup(ts.Close)

	env := &testEnv{server: ts, kv: kv}
	env.token = env.register(t, "jordan@example.com")
	return env
}

func (e *testEnv) register(t *testing.T, email string) string {
	t.Helper()
	body := `{"name": "Jordan", "email": "` + email + `", "password": "password123"}`
	resp, err := http.Post(e.server.URL+"/auth/register", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var auth types.AuthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&auth))
	require.NotEmpty(t, auth.Token)
	return auth.Token
}

func (e *testEnv) do(t *testing.T, method, path string, body []byte, contentType string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, e.server.URL+path, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+e.token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) analyze(t *testing.T) analyzeResponse {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("resume", "resume.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 stub"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("company_name", "Acme"))
	require.NoError(t, mw.WriteField("job_title", "Backend Engineer"))
	require.NoError(t, mw.WriteField("job_description", "Go, Kubernetes, Terraform"))
	require.NoError(t, mw.Close())

	resp := e.do(t, http.MethodPost, "/resumes/analyze", buf.Bytes(), mw.FormDataContentType())
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var result analyzeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, nil)

	resp, err := http.Get(env.server.URL + "/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuth(t *testing.T) {
	env := newTestEnv(t, nil)

	t.Run("duplicate email rejected", func(t *testing.T) {
		body := `{"name": "Jordan", "email": "jordan@example.com", "password": "password123"}`
		resp, err := http.Post(env.server.URL+"/auth/register", "application/json", bytes.NewBufferString(body))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("login succeeds", func(t *testing.T) {
		body := `{"email": "jordan@example.com", "password": "password123"}`
		resp, err := http.Post(env.server.URL+"/auth/login", "application/json", bytes.NewBufferString(body))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		body := `{"email": "jordan@example.com", "password": "wrong-password"}`
		resp, err := http.Post(env.server.URL+"/auth/login", "application/json", bytes.NewBufferString(body))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("short password rejected", func(t *testing.T) {
		body := `{"name": "Sam", "email": "sam@example.com", "password": "short"}`
		resp, err := http.Post(env.server.URL+"/auth/register", "application/json", bytes.NewBufferString(body))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("resume routes require token", func(t *testing.T) {
		resp, err := http.Get(env.server.URL + "/resumes")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestAnalyze(t *testing.T) {
	env := newTestEnv(t, nil)
	result := env.analyze(t)

	assert.NotEmpty(t, result.ID)
	require.NotNil(t, result.Record)
	assert.Equal(t, "Acme", result.Record.CompanyName)
	assert.Equal(t, "uploads/"+result.ID+".pdf", result.Record.ResumePath)
	require.NotNil(t, result.Record.Feedback)
	assert.Equal(t, float64(55), result.Record.Feedback.OverallScore)

	require.NotNil(t, result.Model)
	assert.Equal(t, float64(50), result.Model.Optimization.AtsScore)
	assert.Equal(t, "Jordan Lee", result.Model.PersonalInfo.Name)
	require.Len(t, result.Model.Optimization.OptimizationHistory, 1)

	t.Run("record retrievable", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/resumes/"+result.ID, nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		record := decodeJSON[types.ResumeRecord](t, resp)
		assert.Equal(t, result.ID, record.ID)
	})

	t.Run("model retrievable", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/resumes/"+result.ID+"/model", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		model := decodeJSON[types.ResumeModel](t, resp)
		assert.Equal(t, result.Model.ID, model.ID)
	})

	t.Run("list includes record", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/resumes", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		list := decodeJSON[map[string][]types.ResumeRecord](t, resp)
		assert.Len(t, list["resumes"], 1)
	})

	t.Run("stored pdf served", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/files/"+result.Record.ResumePath, nil, "")
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	})
}

func TestAnalyze_MissingFile(t *testing.T) {
	env := newTestEnv(t, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("company_name", "Acme"))
	require.NoError(t, mw.Close())

	resp := env.do(t, http.MethodPost, "/resumes/analyze", buf.Bytes(), mw.FormDataContentType())
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetResume_NotFound(t *testing.T) {
	env := newTestEnv(t, nil)

	resp := env.do(t, http.MethodGet, "/resumes/missing", nil, "")
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOptimizationFlow(t *testing.T) {
	env := newTestEnv(t, nil)
	result := env.analyze(t)

	// Start a session
	resp := env.do(t, http.MethodPost, "/resumes/"+result.ID+"/sessions", nil, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	session := decodeJSON[types.OptimizationSession](t, resp)
	require.NotEmpty(t, session.ID)
	assert.Equal(t, types.PhaseBlindSpot, session.CurrentPhase)
	assert.Len(t, session.Phases, 7)

	base := "/resumes/" + result.ID + "/sessions/" + session.ID

	// Process the current phase; stub AI returns one question
	resp = env.do(t, http.MethodPost, base+"/phase", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	phaseOut := decodeJSON[struct {
		Phase  types.PhaseKind `json:"phase"`
		Result struct {
			Questions []types.OptimizationQuestion `json:"questions"`
		} `json:"result"`
	}](t, resp)
	assert.Equal(t, types.PhaseBlindSpot, phaseOut.Phase)
	require.Len(t, phaseOut.Result.Questions, 1)
	questionID := phaseOut.Result.Questions[0].ID
	require.NotEmpty(t, questionID)

	// Answer the question
	body, _ := json.Marshal(applyResponseRequest{
		QuestionID: questionID,
		Response:   "Kubernetes, Terraform",
	})
	resp = env.do(t, http.MethodPost, base+"/responses", body, "application/json")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	model := decodeJSON[types.ResumeModel](t, resp)
	require.Len(t, model.Optimization.OptimizationHistory, 2)

	// Unknown question id is a 404
	body, _ = json.Marshal(applyResponseRequest{QuestionID: "nope", Response: "x"})
	resp = env.do(t, http.MethodPost, base+"/responses", body, "application/json")
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Complete the phase
	body, _ = json.Marshal(completePhaseRequest{ScoreImprovement: 5})
	resp = env.do(t, http.MethodPost, base+"/complete", body, "application/json")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	model = decodeJSON[types.ResumeModel](t, resp)
	session = model.Optimization.OptimizationHistory[len(model.Optimization.OptimizationHistory)-1]
	assert.Equal(t, types.PhaseSummary, session.CurrentPhase)
	assert.True(t, session.Phases[0].Completed)

	// Completing the same phase again conflicts
	body, _ = json.Marshal(completePhaseRequest{Phase: types.PhaseBlindSpot, ScoreImprovement: 1})
	resp = env.do(t, http.MethodPost, base+"/complete", body, "application/json")
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Progress reflects the completed phase
	resp = env.do(t, http.MethodGet, base+"/progress", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	progress := decodeJSON[map[string]any](t, resp)
	assert.Equal(t, float64(1), progress["completedPhases"])
	assert.Equal(t, float64(7), progress["totalPhases"])
	assert.Equal(t, float64(5), progress["scoreImprovement"])
}

func TestHTTPStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusConflict, HTTPStatus(&ErrEmailAlreadyExists{Email: "a@b.c"}))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(&ErrInvalidCredentials{}))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(&ErrValidation{Field: "email", Message: "required"}))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(store.ErrNotFound))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(assert.AnError))
}
