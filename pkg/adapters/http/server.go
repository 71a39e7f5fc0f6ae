package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/tableau/internal/logging"
	"github.com/aretw0/tableau/internal/presentation/graph"
	"github.com/aretw0/tableau/internal/presentation/tui"
	"github.com/aretw0/tableau/internal/validator"
	"github.com/aretw0/tableau/pkg/domain"
	"github.com/aretw0/tableau/pkg/scene"
	"github.com/aretw0/tableau/pkg/schema"
	"github.com/go-chi/chi/v5"
)

// Workspace is the document access the server needs. *workspace.Manager
// implements it.
type Workspace interface {
	List(ctx context.Context) ([]string, error)
	Document(ctx context.Context, id string) (*domain.Document, error)
	Open(ctx context.Context, id string) (*scene.Project, error)
	Layout(ctx context.Context, id string) (int, error)
}

// Server serves scene documents over HTTP.
type Server struct {
	Workspace Workspace
	Streams   *StreamManager

	metrics   http.Handler
	validator *validator.Validator
	logger    *slog.Logger
	version   string
}

// Option configures the server.
type Option func(*Server)

// WithLogger sets the server's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics mounts h at GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithValidator replaces the default strict validator.
func WithValidator(v *validator.Validator) Option {
	return func(s *Server) {
		s.validator = v
	}
}

// WithVersion sets the version reported by /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// NewHandler creates the HTTP handler for a workspace.
func NewHandler(ws Workspace, opts ...Option) http.Handler {
	s := &Server{
		Workspace: ws,
		Streams:   NewStreamManager(),
		logger:    logging.NewNop(),
		version:   "dev",
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.validator == nil {
		s.validator = validator.New()
	}
	s.Streams.logger = s.logger

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	r.Route("/scenes", func(r chi.Router) {
		r.Get("/", s.ListDocuments)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetDocument)
			r.Get("/graph", s.GetGraph)
			r.Get("/report", s.GetReport)
			r.Get("/validate", s.Validate)
			r.Get("/events", s.SubscribeEvents)
			r.Post("/layout", s.Layout)
		})
	})
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ListDocuments handles GET /scenes.
func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Workspace.List(r.Context())
	if err != nil {
		s.fail(w, "List", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"documents": ids})
}

// GetDocument handles GET /scenes/{id}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.Workspace.Document(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "GetDocument", err)
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

// GetGraph handles GET /scenes/{id}/graph and returns a Mermaid flowchart.
// Repeated "highlight" query values mark objects on the graph.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	p, err := s.Workspace.Open(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "GetGraph", err)
		return
	}
	var overlay *graph.Overlay
	if hl := r.URL.Query()["highlight"]; len(hl) > 0 {
		overlay = &graph.Overlay{Highlight: hl}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, graph.GenerateMermaid(p, overlay))
}

// GetReport handles GET /scenes/{id}/report and returns markdown.
func (s *Server) GetReport(w http.ResponseWriter, r *http.Request) {
	p, err := s.Workspace.Open(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "GetReport", err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	fmt.Fprint(w, tui.Report(p))
}

// Validate handles GET /scenes/{id}/validate.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	doc, err := s.Workspace.Document(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "Validate", err)
		return
	}
	problems := []string{}
	if err := s.validator.Validate(doc); err != nil {
		verrs := schema.ValidationErrors(err)
		if len(verrs) == 0 {
			s.fail(w, "Validate", err)
			return
		}
		for _, e := range verrs {
			problems = append(problems, e.Error())
		}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"valid":    len(problems) == 0,
		"problems": problems,
	})
}

// Layout handles POST /scenes/{id}/layout: it re-runs layout on every group,
// saves the document and notifies event subscribers.
func (s *Server) Layout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	groups, err := s.Workspace.Layout(r.Context(), id)
	if err != nil {
		s.fail(w, "Layout", err)
		return
	}
	resp := map[string]any{"document": id, "groups": groups}
	if payload, err := json.Marshal(resp); err == nil {
		s.Streams.Broadcast(id, string(payload))
	}
	s.logger.Debug("layout applied", "document_id", id, "groups", groups)
	s.writeJSON(w, http.StatusOK, resp)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "tableau-http",
		"version": s.version,
	})
}

// SubscribeEvents handles GET /scenes/{id}/events (SSE). Subscribers receive
// one message per layout applied to the document.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	id := chi.URLParam(r, "id")
	ch, cancel := s.Streams.Subscribe(id)
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE client disconnected", "document_id", id)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: layout\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrDocumentNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidDescription), errors.Is(err, domain.ErrNameTaken):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		s.logger.Error(op+" failed", "err", err)
	} else {
		s.logger.Debug(op+" rejected", "err", err, "status", status)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// StreamManager fans layout notifications out to SSE subscribers, keyed by
// document ID.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{}
	logger      *slog.Logger
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
		logger:      logging.NewNop(),
	}
}

func (sm *StreamManager) Subscribe(id string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[id]; !ok {
		sm.subscribers[id] = make(map[chan<- string]struct{})
	}
	sm.subscribers[id][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[id]; ok {
			if _, ok := subs[ch]; !ok {
				return
			}
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, id)
			}
		}
	}
}

// Subscribers returns the number of live subscriptions for id.
func (sm *StreamManager) Subscribers(id string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[id])
}

func (sm *StreamManager) Broadcast(id string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[id] {
		select {
		case ch <- msg:
		default:
			// slow client
			sm.logger.Warn("SSE: Client buffer full, dropping message", "document_id", id)
		}
	}
}
