// File path: internal/api/server.go
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/kaptinlin/jsonschema"

	"github.com/parkworks/parkpilot/internal/common"
	"github.com/parkworks/parkpilot/internal/compose"
	"github.com/parkworks/parkpilot/internal/config"
	"github.com/parkworks/parkpilot/internal/evidence"
)

// Executor produces evidence for a request. In production the real plan
// executor sits behind this; the bundled fixture executor implements it
// for demo deployments.
type Executor interface {
	Execute(ctx context.Context, nlu evidence.NLUResult) (evidence.ExecState, evidence.PlanMetadata, error)
}

// Server is the thin HTTP boundary in front of the composer.
type Server struct {
	router        chi.Router
	cfg           config.Config
	composer      *compose.Composer
	executor      Executor
	requestSchema *jsonschema.Schema
}

// NewServer wires the composer behind the HTTP routes. The executor is
// optional; without one, requests must carry their ExecState inline.
func NewServer(cfg config.Config, composer *compose.Composer, executor Executor) (*Server, error) {
	logger := common.Logger()
	if composer == nil {
		return nil, fmt.Errorf("composer required")
	}
	schema, err := compileRequestSchema()
	if err != nil {
		return nil, fmt.Errorf("compile request schema: %w", err)
	}
	srv := &Server{
		router:        chi.NewRouter(),
		cfg:           cfg,
		composer:      composer,
		executor:      executor,
		requestSchema: schema,
	}
	srv.routes()
	logger.Info("api: server ready", "executor", executor != nil)
	return srv, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	logger := common.Logger()
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":     "ok",
			"time":       time.Now().UTC().Format(time.RFC3339),
			"summarizer": s.cfg.Summarizer.Enabled,
		})
	})

	s.router.Post("/v1/answer", s.handleAnswer)
	s.router.Get("/v1/logs", s.handleLogs)
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"logs": common.LogEntries()})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
