package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/resume-review/internal/config"
	"github.com/jonathan/resume-review/internal/llm"
	"github.com/jonathan/resume-review/internal/server/middleware"
	"github.com/jonathan/resume-review/internal/server/ratelimit"
	"github.com/jonathan/resume-review/internal/store"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	kv          store.KV
	blobs       store.BlobStore
	resumes     *store.Resumes
	ai          llm.Client
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	maxUpload   int64
	closeStore  func()
}

// Config holds server configuration
type Config struct {
	Port           int
	DatabaseURL    string
	APIKey         string
	MaxUploadBytes int64
}

// New creates a server backed by PostgreSQL and the Gemini API.
func New(cfg Config) (*Server, error) {
	pg, err := store.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	aiClient, err := llm.NewClient(context.Background(), llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		pg.Close()
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	}

	s, err := NewWithBackends(cfg, pg, pg, aiClient)
	if err != nil {
		pg.Close()
		_ = aiClient.Close()
		return nil, err
	}
	s.closeStore = pg.Close
	return s, nil
}

// NewWithBackends creates a server on explicit storage and AI backends.
// Used by tests and local development with the in-memory store.
func NewWithBackends(cfg Config, kv store.KV, blobs store.BlobStore, aiClient llm.Client) (*Server, error) {
	s := &Server{
		kv:        kv,
		blobs:     blobs,
		resumes:   store.NewResumes(kv),
		ai:        aiClient,
		maxUpload: cfg.MaxUploadBytes,
	}
	if s.maxUpload <= 0 {
		s.maxUpload = config.DefaultMaxUploadBytes
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(store.NewUsers(kv), passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for AI analysis
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request mux. Resume and optimization endpoints require a
// valid JWT; auth and health endpoints do not.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)

	authed := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	protected := func(pattern string, handler http.HandlerFunc) {
		mux.Handle(pattern, authed(handler))
	}

	// Resume analysis
	protected("POST /resumes/analyze", s.handleAnalyze)
	protected("GET /resumes", s.handleListResumes)
	protected("GET /resumes/{id}", s.handleGetResume)
	protected("GET /resumes/{id}/model", s.handleGetResumeModel)
	protected("GET /files/{path...}", s.handleGetFile)

	// Optimization workflow
	protected("POST /resumes/{id}/sessions", s.handleStartSession)
	protected("POST /resumes/{id}/sessions/{session_id}/phase", s.handleProcessPhase)
	protected("POST /resumes/{id}/sessions/{session_id}/responses", s.handleApplyResponse)
	protected("POST /resumes/{id}/sessions/{session_id}/complete", s.handleCompletePhase)
	protected("GET /resumes/{id}/sessions/{session_id}/progress", s.handleSessionProgress)

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.ai != nil {
		_ = s.ai.Close()
	}
	if s.closeStore != nil {
		s.closeStore()
	}

	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}
	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(response)
}
