package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"path"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-review/internal/fetch"
	"github.com/jonathan/resume-review/internal/llm"
	"github.com/jonathan/resume-review/internal/parser"
	"github.com/jonathan/resume-review/internal/pdf"
	"github.com/jonathan/resume-review/internal/prompts"
	"github.com/jonathan/resume-review/internal/schemas"
	"github.com/jonathan/resume-review/internal/types"
)

// analyzeResponse is the payload returned by POST /resumes/analyze.
type analyzeResponse struct {
	ID     string              `json:"id"`
	Record *types.ResumeRecord `json:"record"`
	Model  *types.ResumeModel  `json:"model"`
}

// handleAnalyze ingests a resume PDF with its target job, runs the AI
// review, and persists the record and parsed model.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "missing resume file")
		return
	}
	defer func() { _ = file.Close() }()

	pdfBytes, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read resume file")
		return
	}
	if len(pdfBytes) == 0 {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("empty upload: %s", header.Filename))
		return
	}

	companyName := r.FormValue("company_name")
	jobTitle := r.FormValue("job_title")
	jobDescription := r.FormValue("job_description")
	if jobDescription == "" {
		if jobURL := r.FormValue("job_url"); jobURL != "" {
			jobDescription, err = fetch.JobDescription(r.Context(), jobURL, nil)
			if err != nil {
				s.errorResponse(w, http.StatusBadGateway, fmt.Sprintf("failed to fetch job posting: %v", err))
				return
			}
		}
	}

	id := uuid.New().String()
	record := &types.ResumeRecord{
		ID:             id,
		ResumePath:     path.Join("uploads", id+".pdf"),
		ImagePath:      path.Join("uploads", id+".png"),
		CompanyName:    companyName,
		JobTitle:       jobTitle,
		JobDescription: jobDescription,
	}

	// Store the original PDF and its preview image in parallel.
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		_, err := s.blobs.Upload(ctx, record.ResumePath, pdfBytes, "application/pdf")
		return err
	})
	g.Go(func() error {
		preview, err := pdf.FirstPagePNG(pdfBytes)
		if err != nil {
			// Preview is best-effort; the analysis works from the PDF itself
			log.Printf("preview render failed for %s: %v", id, err)
			record.ImagePath = ""
			return nil
		}
		_, err = s.blobs.Upload(ctx, record.ImagePath, preview, "image/png")
		return err
	})
	if err := g.Wait(); err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, fmt.Sprintf("failed to store resume: %v", err))
		return
	}

	instructions := prompts.EnhancedAnalysisInstructions(jobTitle, jobDescription)
	raw, err := s.ai.Feedback(r.Context(), pdfBytes, instructions)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, fmt.Sprintf("AI analysis failed: %v", err))
		return
	}

	if err := schemas.ValidateEnhancedResponse(llm.CleanJSONBlock(raw)); err != nil {
		// Diagnostic only; the parser tolerates malformed responses
		log.Printf("AI response failed schema validation for %s: %v", id, err)
	}

	model := parser.ParseAIResponse(raw, id, parser.JobContext{
		CompanyName:    companyName,
		JobTitle:       jobTitle,
		JobDescription: jobDescription,
	})
	record.Feedback = feedbackFromResponse(raw)

	if err := s.resumes.SaveRecord(r.Context(), record); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to save resume record")
		return
	}
	if err := s.resumes.SaveModel(r.Context(), id, model); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to save resume model")
		return
	}

	s.jsonResponse(w, http.StatusCreated, analyzeResponse{ID: id, Record: record, Model: model})
}

// feedbackFromResponse decodes the feedback block for display purposes.
// Returns nil when the response does not decode.
func feedbackFromResponse(raw string) *types.Feedback {
	var resp types.EnhancedAIResponse
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(raw)), &resp); err != nil {
		return nil
	}
	return &resp.Feedback
}

// handleListResumes returns every stored resume record.
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	records, err := s.resumes.ListRecords(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list resumes")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"resumes": records})
}

// handleGetResume returns a single resume record.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	record, err := s.resumes.LoadRecord(r.Context(), r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, record)
}

// handleGetResumeModel returns the parsed resume model for a resume.
func (s *Server) handleGetResumeModel(w http.ResponseWriter, r *http.Request) {
	model, err := s.resumes.LoadModel(r.Context(), r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, model)
}

// handleGetFile serves a stored blob (resume PDF or preview image).
func (s *Server) handleGetFile(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := s.blobs.Read(r.Context(), r.PathValue("path"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
