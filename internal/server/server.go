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

	"github.com/daniela/resume-optimizer/internal/ai"
	"github.com/daniela/resume-optimizer/internal/config"
	"github.com/daniela/resume-optimizer/internal/db"
	"github.com/daniela/resume-optimizer/internal/provision"
	"github.com/daniela/resume-optimizer/internal/registry"
	"github.com/daniela/resume-optimizer/internal/server/middleware"
	"github.com/daniela/resume-optimizer/internal/server/ratelimit"
	"github.com/daniela/resume-optimizer/internal/storage"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	cfg         *config.Config
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	provisioner *provision.Provisioner
	registry    *registry.Registry
	runner      *ai.Runner
	store       *storage.Store
}

// New creates a new server instance
func New(cfg *config.Config) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Server{
		db:  database,
		cfg: cfg,
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)
	s.provisioner = provision.New(database)
	s.registry = registry.New(database)

	s.store, err = storage.NewStore(cfg.StorageRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object store: %w", err)
	}

	// AI skills are optional; without an API key the endpoints return 503.
	if cfg.GeminiAPIKey != "" {
		client, err := ai.NewGeminiClient(context.Background(), ai.DefaultConfig(), cfg.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create AI client: %w", err)
		}
		s.runner = ai.NewRunner(client, s.registry)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // AI skill calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the router. Everything except health, auth, and public
// avatar reads requires a valid bearer token.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	protected := func(h http.HandlerFunc) http.Handler { return auth(h) }

	mux.HandleFunc("GET /health", s.handleHealth)

	// Authentication
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)

	// Identity-provider provisioning hook
	mux.HandleFunc("POST /internal/provision", s.handleProvisionProfile)

	// Profile
	mux.Handle("GET /users/me", protected(s.handleGetMe))
	mux.Handle("PUT /users/me", protected(s.handleUpdateMe))
	mux.Handle("DELETE /users/me", protected(s.handleDeleteMe))
	mux.Handle("PUT /users/me/password", protected(s.handleUpdatePassword))

	// Resumes and versions
	mux.Handle("POST /resumes", protected(s.handleCreateResume))
	mux.Handle("GET /resumes", protected(s.handleListResumes))
	mux.Handle("GET /resumes/{id}", protected(s.handleGetResume))
	mux.Handle("PUT /resumes/{id}", protected(s.handleRenameResume))
	mux.Handle("DELETE /resumes/{id}", protected(s.handleDeleteResume))
	mux.Handle("POST /resumes/{id}/versions", protected(s.handleCreateVersion))
	mux.Handle("POST /resumes/{id}/import", protected(s.handleImportVersion))
	mux.Handle("GET /resumes/{id}/versions", protected(s.handleListVersions))
	mux.Handle("GET /versions/{id}", protected(s.handleGetVersion))

	// Sections and bullets
	mux.Handle("POST /versions/{id}/sections", protected(s.handleCreateSection))
	mux.Handle("GET /versions/{id}/sections", protected(s.handleListSections))
	mux.Handle("DELETE /sections/{id}", protected(s.handleDeleteSection))
	mux.Handle("POST /sections/{id}/bullets", protected(s.handleCreateBullet))
	mux.Handle("GET /sections/{id}/bullets", protected(s.handleListBullets))
	mux.Handle("DELETE /bullets/{id}", protected(s.handleDeleteBullet))

	// Version skills
	mux.Handle("POST /versions/{id}/skills", protected(s.handleAddResumeSkill))
	mux.Handle("GET /versions/{id}/skills", protected(s.handleListResumeSkills))

	// Skill taxonomy
	mux.Handle("GET /skills", protected(s.handleListSkills))

	// Job descriptions
	mux.Handle("POST /jobs", protected(s.handleCreateJob))
	mux.Handle("GET /jobs", protected(s.handleListJobs))
	mux.Handle("POST /jobs/ingest", protected(s.handleIngestJob))
	mux.Handle("GET /jobs/{id}", protected(s.handleGetJob))
	mux.Handle("DELETE /jobs/{id}", protected(s.handleDeleteJob))
	mux.Handle("POST /jobs/{id}/skills", protected(s.handleAddJobSkill))
	mux.Handle("GET /jobs/{id}/skills", protected(s.handleListJobSkills))
	mux.Handle("POST /jobs/{id}/analyze", protected(s.handleAnalyzeJob))
	mux.Handle("GET /jobs/{id}/gaps", protected(s.handleListGaps))

	// Applications
	mux.Handle("POST /applications", protected(s.handleCreateApplication))
	mux.Handle("GET /applications", protected(s.handleListApplications))
	mux.Handle("GET /applications/{id}", protected(s.handleGetApplication))
	mux.Handle("DELETE /applications/{id}", protected(s.handleDeleteApplication))
	mux.Handle("PUT /applications/{id}/status", protected(s.handleSetApplicationStatus))
	mux.Handle("PUT /applications/{id}/notes", protected(s.handleSetApplicationNotes))

	// AI skills
	mux.Handle("POST /ai/improve-bullet", protected(s.handleImproveBullet))
	mux.Handle("POST /ai/summary", protected(s.handleGenerateSummary))
	mux.Handle("GET /ai/requests", protected(s.handleListAIRequests))
	mux.Handle("POST /ai/evaluations", protected(s.handleEvaluateResponse))

	// Prompt administration. Reads need a token; writes additionally require
	// the admin role, enforced in the handlers.
	mux.Handle("POST /prompts", protected(s.handleCreatePromptDraft))
	mux.Handle("GET /prompts", protected(s.handleListPrompts))
	mux.Handle("GET /prompts/{id}", protected(s.handleGetPrompt))
	mux.Handle("PUT /prompts/{id}", protected(s.handleUpdatePrompt))
	mux.Handle("PUT /prompts/{id}/status", protected(s.handleSetPromptStatus))
	mux.Handle("POST /prompts/candidates", protected(s.handleProposeCandidate))
	mux.Handle("GET /prompts/candidates/promotable", protected(s.handleListPromotable))
	mux.Handle("POST /prompts/candidates/{id}/promote", protected(s.handlePromoteCandidate))

	// Object storage
	mux.Handle("POST /storage/{bucket}/{filename}", protected(s.handleUpload))
	mux.Handle("GET /storage/{bucket}/{owner}/{filename}", protected(s.handleDownload))
	mux.Handle("DELETE /storage/{bucket}/{filename}", protected(s.handleDeleteObject))
	mux.Handle("GET /storage/{bucket}", protected(s.handleListObjects))

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

	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
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
		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		if s.cfg.Verbose {
			log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		}
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
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
// This uses the IP address from RemoteAddr; X-Forwarded-For is deliberately
// ignored since it is client-controlled.
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
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
