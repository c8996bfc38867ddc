// internal/api/server.go

// Package api exposes the conversational analytics service over HTTP. Routes
// are versioned under /api/v1; health and metrics sit at the root.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"analytics-dashboard/internal/analytics/feedback"
	"analytics-dashboard/internal/analytics/session"
	"analytics-dashboard/internal/common/config"
	commonerrors "analytics-dashboard/internal/common/errors"
	"analytics-dashboard/internal/common/observability"
	"analytics-dashboard/internal/common/validation"
	"analytics-dashboard/internal/models"
)

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

// Resolver is the single entry point into the analytics core.
type Resolver interface {
	Resolve(ctx context.Context, query string, convCtx *models.Context) *models.Resolution
}

type Server struct {
	router    *mux.Router
	sessions  *session.Store
	resolver  Resolver
	feedback  *feedback.Store
	validator *validation.Validator
	errs      *commonerrors.ErrorHandler
	obs       *observability.Observability
	logger    Logger
	http      *http.Server
}

// NewServer wires the handler graph. The feedback store may be nil when
// postgres is disabled; the route then degrades gracefully.
func NewServer(
	cfg config.ServerConfig,
	sessions *session.Store,
	res Resolver,
	fb *feedback.Store,
	validator *validation.Validator,
	obs *observability.Observability,
	log Logger,
) *Server {
	s := &Server{
		router:    mux.NewRouter(),
		sessions:  sessions,
		resolver:  res,
		feedback:  fb,
		validator: validator,
		obs:       obs,
		logger: log.With(map[string]interface{}{
			"component": "api",
		}),
	}
	s.errs = commonerrors.NewErrorHandler(s.logger)
	s.setupRoutes()

	s.http = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.router,
		ReadTimeout:  config.GetDuration(cfg.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.WriteTimeout),
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.Use(s.loggingMiddleware)
	api.Use(s.corsMiddleware)

	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}/messages", s.handlePostMessage).Methods("POST")
	api.HandleFunc("/sessions/{id}/reset", s.handleResetSession).Methods("POST")
	api.HandleFunc("/sessions/{id}/feedback", s.handlePostFeedback).Methods("POST")

	api.HandleFunc("/widgets", s.handleListWidgets).Methods("GET")
	api.HandleFunc("/widgets/resolve", s.handleResolveWidget).Methods("POST")
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.logger.Info("server listening", map[string]interface{}{
		"address": s.http.Addr,
	})
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		if s.obs != nil {
			s.obs.RecordRequestDuration(r.Context(), time.Since(start), r.URL.Path)
		}
		s.logger.Info("request handled", map[string]interface{}{
			"method":     r.Method,
			"path":       r.URL.Path,
			"durationMs": time.Since(start).Milliseconds(),
		})
	})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
