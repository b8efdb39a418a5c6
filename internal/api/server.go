package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/QTest-hq/qtest-studio/internal/config"
	"github.com/QTest-hq/qtest-studio/internal/db"
	"github.com/QTest-hq/qtest-studio/internal/exporter"
	"github.com/QTest-hq/qtest-studio/internal/generator"
	"github.com/QTest-hq/qtest-studio/internal/notify"
)

// Store is the persistence the API uses. It is satisfied by *db.Store.
type Store interface {
	RecordExport(ctx context.Context, e *db.Export) error
	ListExports(ctx context.Context, projectRoot string, limit, offset int) ([]db.Export, error)
	SaveModel(ctx context.Context, m *db.SavedModel) error
	GetModel(ctx context.Context, id uuid.UUID) (*db.SavedModel, error)
}

// HealthCheck reports whether a dependency is usable
type HealthCheck func(ctx context.Context) error

// Server represents the API server
type Server struct {
	cfg      *config.Config
	router   *chi.Mux
	gen      *generator.Generator
	store    Store
	notifier notify.Notifier
	fs       exporter.FileSystem
	checks   map[string]HealthCheck
}

// Option configures a Server
type Option func(*Server)

// WithStore enables export history and saved models
func WithStore(store Store) Option {
	return func(s *Server) { s.store = store }
}

// WithNotifier sets where export notifications go
func WithNotifier(n notify.Notifier) Option {
	return func(s *Server) { s.notifier = n }
}

// WithFileSystem replaces the local disk for exports
func WithFileSystem(fs exporter.FileSystem) Option {
	return func(s *Server) { s.fs = fs }
}

// WithHealthCheck adds a dependency checked by /ready
func WithHealthCheck(name string, check HealthCheck) Option {
	return func(s *Server) { s.checks[name] = check }
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, opts ...Option) (*Server, error) {
	s := &Server{
		cfg:      cfg,
		router:   chi.NewRouter(),
		gen:      generator.NewGenerator(),
		notifier: notify.NewLogNotifier(),
		fs:       exporter.OSFileSystem{},
		checks:   make(map[string]HealthCheck),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

// Router returns the HTTP router
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))
	s.router.Use(corsMiddleware)
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.healthCheck)
	s.router.Get("/ready", s.readyCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/generate", s.generate)

		r.Route("/exports", func(r chi.Router) {
			r.Post("/", s.createExport)
			r.Get("/", s.listExports)
			r.Get("/check", s.checkExport)
		})

		r.Route("/models", func(r chi.Router) {
			r.Post("/", s.saveModel)
			r.Get("/{modelID}", s.getModel)
		})

		r.Get("/project/tree", s.projectTree)
	})
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readyCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	failed := make(map[string]string)
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			log.Warn().Err(err).Str("dependency", name).Msg("readiness check failed")
			failed[name] = err.Error()
		}
	}

	if len(failed) > 0 {
		respondJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unavailable", "failed": failed})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) projectRoot(r *http.Request) string {
	if root := r.URL.Query().Get("root"); root != "" {
		return root
	}
	if s.cfg != nil {
		return s.cfg.ProjectRoot
	}
	return "."
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
