package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/session"
)

var validate = validator.New()

// Server exposes the trees of a session registry over JSON.
type Server struct {
	Sessions *session.Manager
	Streams  *StreamManager

	treeOpts []arbor.Option
	logger   *slog.Logger

	mu   sync.Mutex
	last map[string]*domain.Snapshot
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithTreeOptions adds options applied to every tree created through the API,
// such as a NodeLoader, drop thresholds or metrics hooks.
func WithTreeOptions(opts ...arbor.Option) Option {
	return func(s *Server) {
		s.treeOpts = append(s.treeOpts, opts...)
	}
}

// NewServer creates a Server over sessions.
func NewServer(sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		Sessions: sessions,
		logger:   logging.NewNop(),
		last:     make(map[string]*domain.Snapshot),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)
	return s
}

// NewHandler creates a new HTTP handler over the session registry.
func NewHandler(sessions *session.Manager, opts ...Option) http.Handler {
	return NewServer(sessions, opts...).Routes()
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)

	r.Route("/trees", func(r chi.Router) {
		r.Get("/", s.ListTrees)
		r.Post("/", s.CreateTree)

		r.Route("/{treeID}", func(r chi.Router) {
			r.Delete("/", s.DeleteTree)
			r.Get("/snapshot", s.GetSnapshot)
			r.Get("/rows", s.GetRows)
			r.Get("/events", s.SubscribeEvents)

			r.Post("/expand", s.Expand)
			r.Post("/select", s.Select)
			r.Post("/check", s.Check)
			r.Post("/load", s.Load)
			r.Post("/drag", s.Drag)
		})
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "arbor-http",
		"version": strings.TrimSpace(arbor.Version),
	})
}

// publish diffs the tree against the last published snapshot and broadcasts the change.
func (s *Server) publish(id string, tree *arbor.Tree) *domain.SnapshotDiff {
	s.mu.Lock()
	snap := tree.Snapshot()
	diff := domain.Diff(s.last[id], snap)
	s.last[id] = snap
	s.mu.Unlock()

	if diff == nil {
		s.logger.Debug("no diff calculated", "tree_id", id)
		return nil
	}
	if bytes, err := json.Marshal(diff); err == nil {
		s.Streams.Broadcast(id, string(bytes))
	}
	return diff
}

func (s *Server) forget(id string) {
	s.mu.Lock()
	delete(s.last, id)
	s.mu.Unlock()
	s.Streams.CloseTree(id)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.logger.Warn("invalid request body", "path", r.URL.Path, "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	if err := validate.Struct(v); err != nil {
		s.logger.Warn("request rejected", "path", r.URL.Path, "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrTreeNotFound), errors.Is(err, domain.ErrUnknownKey):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrNotDragging), errors.Is(err, domain.ErrNoLoader):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	http.Error(w, err.Error(), status)
}
