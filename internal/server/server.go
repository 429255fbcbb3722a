package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/matheus/jobmatch/internal/adzuna"
	"github.com/matheus/jobmatch/internal/config"
	"github.com/matheus/jobmatch/internal/db"
	"github.com/matheus/jobmatch/internal/extraction"
	"github.com/matheus/jobmatch/internal/hf"
	"github.com/matheus/jobmatch/internal/scoring"
	"github.com/matheus/jobmatch/internal/suggestion"
)

// Extractor runs the résumé entity-extraction pipeline.
type Extractor interface {
	Extract(ctx context.Context, text string) extraction.Result
}

// TitleSuggester guesses a job title from a skill list.
type TitleSuggester interface {
	SuggestTitle(ctx context.Context, skills []string) string
}

// SkillSearcher runs the skills-to-listings search with its fallback
// cascade.
type SkillSearcher interface {
	SearchBySkills(ctx context.Context, req suggestion.SkillSearchRequest) (*suggestion.SkillSearchResult, error)
}

// ScoringAPI is the slice of the scoring-service client the handlers use.
type ScoringAPI interface {
	MatchProfile(ctx context.Context, candidateSkills, jobRequirements []string) *scoring.MatchResult
	InferOccupations(ctx context.Context, resumeText string, topK int, threshold float64) *scoring.OccupationsResult
	InferPrimaryOccupation(ctx context.Context, resumeText string, threshold float64) *scoring.PrimaryOccupationResult
	AnalyzeResume(ctx context.Context, resumeText string) *scoring.AnalysisResult
}

// Server represents the HTTP server and its wired services.
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	rdb         *redis.Client
	userService *UserService
	jwtService  *JWTService
	extractor   Extractor
	suggester   TitleSuggester
	skillSearch SkillSearcher
	jobSearch   adzuna.Searcher
	scoring     ScoringAPI
}

// New connects all dependencies and builds the server.
func New(cfg *config.Config, port int) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.EnsureSchema(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	models := hf.NewClient(cfg.HuggingFace)
	pipeline := extraction.NewPipeline(models, cfg.HuggingFace)
	suggester := suggestion.NewSuggester(models, cfg.HuggingFace.SkillsModel)

	var searcher adzuna.Searcher = adzuna.NewClient(cfg.Adzuna)
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = adzuna.NewRedisClient(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Printf("[server] redis unavailable, search cache disabled: %v", err)
		} else {
			searcher = adzuna.NewCachedClient(searcher, rdb)
		}
	}

	s := &Server{
		db:          database,
		rdb:         rdb,
		userService: NewUserService(database, passwordConfig),
		jwtService:  NewJWTService(jwtConfig),
		extractor:   pipeline,
		suggester:   suggester,
		skillSearch: suggestion.NewService(suggester, searcher),
		jobSearch:   searcher,
		scoring:     scoring.NewClient(cfg.Scoring),
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // resume analysis can take minutes
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// routes builds the router with middleware applied.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	// User endpoints
	mux.HandleFunc("POST /api/v1/users/register", s.handleRegister)
	mux.HandleFunc("POST /api/v1/users/login", s.handleLogin)
	mux.HandleFunc("POST /api/v1/users", s.handleCreateUser)
	mux.HandleFunc("GET /api/v1/users", s.handleListUsers)
	mux.HandleFunc("GET /api/v1/users/{id}", s.handleGetUser)
	mux.HandleFunc("PUT /api/v1/users/{id}", s.requireAuth(s.handleUpdateUser))
	mux.HandleFunc("DELETE /api/v1/users/{id}", s.requireAuth(s.handleDeleteUser))

	// Job search endpoints
	mux.HandleFunc("GET /api/v1/jobs/search", s.handleSearchJobsQuery)
	mux.HandleFunc("POST /api/v1/jobs/search", s.handleSearchJobs)
	mux.HandleFunc("POST /api/v1/jobs/search/skills", s.handleSearchBySkills)
	mux.HandleFunc("POST /api/v1/jobs/suggest", s.handleSuggestTitle)

	// Resume endpoints
	mux.HandleFunc("POST /api/v1/resumes/skills", s.handleExtractSkills)
	mux.HandleFunc("POST /api/v1/resumes/match-jobs", s.handleMatchJobs)
	mux.HandleFunc("POST /api/v1/resumes/infer-occupations", s.handleInferOccupations)
	mux.HandleFunc("POST /api/v1/resumes/analyze", s.handleAnalyzeResume)

	return s.withRequestID(s.withLogging(s.withCORS(mux)))
}

// Start begins listening and blocks until shutdown.
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

	if s.rdb != nil {
		if err := s.rdb.Close(); err != nil {
			log.Printf("[server] closing redis: %v", err)
		}
	}
	s.db.Close()
	log.Println("Server stopped")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// withCORS adds CORS headers.
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

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// withRequestID tags every request with an ID for log correlation.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

// requireAuth rejects requests without a valid bearer token.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const prefix = "Bearer "
		header := r.Header.Get("Authorization")
		if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
			s.errorResponse(w, http.StatusUnauthorized, "Missing or malformed Authorization header")
			return
		}
		if _, err := s.jwtService.ValidateToken(header[len(prefix):]); err != nil {
			s.errorResponse(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		next(w, r)
	}
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[server] encoding response: %v", err)
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
