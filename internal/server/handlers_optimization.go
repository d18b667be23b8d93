package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/resume-review/internal/types"
	"github.com/jonathan/resume-review/internal/workflow"
)

// handleStartSession begins a new optimization session for a resume.
func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	record, err := s.resumes.LoadRecord(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	model, err := s.resumes.LoadModel(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	session := workflow.StartSession(model, workflow.JobContext{
		CompanyName:    record.CompanyName,
		JobTitle:       record.JobTitle,
		JobDescription: record.JobDescription,
	})

	if err := s.resumes.SaveModel(r.Context(), id, model); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to save resume model")
		return
	}
	s.jsonResponse(w, http.StatusCreated, session)
}

// handleProcessPhase runs the AI pass for the session's current phase and
// records the generated questions on it.
func (s *Server) handleProcessPhase(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sessionID := r.PathValue("session_id")

	record, err := s.resumes.LoadRecord(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	model, err := s.resumes.LoadModel(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	phase := workflow.CurrentPhase(model, sessionID)
	if phase == nil {
		s.errorResponse(w, http.StatusNotFound, "session not found: "+sessionID)
		return
	}

	result := workflow.ProcessPhase(r.Context(), phase.Phase, model, workflow.JobContext{
		CompanyName:    record.CompanyName,
		JobTitle:       record.JobTitle,
		JobDescription: record.JobDescription,
	}, s.ai.Chat)

	if err := workflow.AttachQuestions(model, sessionID, phase.Phase, result.Questions); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if err := s.resumes.SaveModel(r.Context(), id, model); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to save resume model")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"phase":  phase.Phase,
		"result": result,
	})
}

// applyResponseRequest is the payload for answering an optimization question.
type applyResponseRequest struct {
	QuestionID string          `json:"questionId"`
	Response   string          `json:"response"`
	Phase      types.PhaseKind `json:"phase,omitempty"`
}

// handleApplyResponse applies a user's answer to the resume model.
func (s *Server) handleApplyResponse(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sessionID := r.PathValue("session_id")

	var req applyResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.QuestionID == "" || req.Response == "" {
		s.errorResponse(w, http.StatusBadRequest, "questionId and response are required")
		return
	}

	model, err := s.resumes.LoadModel(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	phase := req.Phase
	if phase == "" {
		current := workflow.CurrentPhase(model, sessionID)
		if current == nil {
			s.errorResponse(w, http.StatusNotFound, "session not found: "+sessionID)
			return
		}
		phase = current.Phase
	}

	model, err = workflow.ApplyUserResponse(model, sessionID, req.QuestionID, req.Response, phase)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if err := s.resumes.SaveModel(r.Context(), id, model); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to save resume model")
		return
	}
	s.jsonResponse(w, http.StatusOK, model)
}

// completePhaseRequest is the payload for closing out a phase.
type completePhaseRequest struct {
	Phase            types.PhaseKind `json:"phase"`
	ScoreImprovement float64         `json:"scoreImprovement"`
}

// handleCompletePhase marks a phase finished and advances the session.
func (s *Server) handleCompletePhase(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sessionID := r.PathValue("session_id")

	var req completePhaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	model, err := s.resumes.LoadModel(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	phase := req.Phase
	if phase == "" {
		current := workflow.CurrentPhase(model, sessionID)
		if current == nil {
			s.errorResponse(w, http.StatusNotFound, "session not found: "+sessionID)
			return
		}
		phase = current.Phase
	}

	model, err = workflow.CompletePhase(model, sessionID, phase, req.ScoreImprovement)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if err := s.resumes.SaveModel(r.Context(), id, model); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to save resume model")
		return
	}
	s.jsonResponse(w, http.StatusOK, model)
}

// handleSessionProgress reports phase completion counts and score gains.
func (s *Server) handleSessionProgress(w http.ResponseWriter, r *http.Request) {
	model, err := s.resumes.LoadModel(r.Context(), r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, workflow.SessionProgress(model, r.PathValue("session_id")))
}
