package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/logicx"
	"github.com/aretw0/logicx/internal/logging"
	"github.com/aretw0/logicx/pkg/domain"
	"github.com/aretw0/logicx/pkg/interaction"
	"github.com/aretw0/logicx/pkg/netlist"
	"github.com/aretw0/logicx/pkg/observability"
	"github.com/aretw0/logicx/pkg/schema"
)

// maxBodySize bounds uploaded documents and netlists.
const maxBodySize = 10 << 20

// Editor defines the editor operations exposed over HTTP.
type Editor interface {
	Load(data []byte, format schema.Format) error
	Save(format schema.Format) ([]byte, error)
	Reset()

	PressInstance(ev interaction.PointerEvent, id domain.InstanceID) bool
	PressTerminal(ev interaction.PointerEvent, endpoint domain.Connection) bool
	PressSurface(ev interaction.PointerEvent) bool
	Move(ev interaction.PointerEvent) bool
	Release(ev interaction.PointerEvent) bool
	DropOnTerminal(ev interaction.PointerEvent, endpoint domain.Connection) (domain.Wire, bool)
	ReleaseOnTerminal(ev interaction.PointerEvent, endpoint domain.Connection) (domain.Wire, bool)
	Wheel(dx, dy float64, shift bool)

	Session() (interaction.Session, bool)
	Pending() (interaction.PendingWire, bool)
	View() interaction.View
	Graph() string

	ApplyNetlist(n *netlist.Netlist) (int, error)

	Snapshot(ctx context.Context, name string) error
	Restore(ctx context.Context, name string) error
	Snapshots(ctx context.Context) ([]string, error)
	DeleteSnapshot(ctx context.Context, name string) error

	Subscribe(fn func(*domain.ChangeEvent)) (unsubscribe func())
}

// Ensure the library Editor satisfies the port.
var _ Editor = (*logicx.Editor)(nil)

// Server serves the editor API.
type Server struct {
	Editor  Editor
	Streams *StreamManager

	metrics     *observability.Metrics
	logger      *slog.Logger
	unsubscribe func()
}

// Option configures the Server.
type Option func(*Server)

// WithMetrics records request latency into m.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a server and starts relaying editor changes to
// event-stream subscribers. Call Close to stop relaying.
func NewServer(editor Editor, opts ...Option) *Server {
	s := &Server{
		Editor: editor,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)

	s.unsubscribe = editor.Subscribe(func(e *domain.ChangeEvent) {
		data, err := json.Marshal(e)
		if err != nil {
			s.logger.Error("change event encode failed", "error", err)
			return
		}
		s.Streams.Broadcast(string(data))
	})
	return s
}

// Close detaches the server from the editor.
func (s *Server) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// NewHandler creates a new HTTP handler for the editor.
func NewHandler(editor Editor, opts ...Option) http.Handler {
	return NewServer(editor, opts...).Handler()
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if s.metrics != nil {
		r.Use(s.observe)
	}

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)

	r.Route("/project", func(r chi.Router) {
		r.Get("/", s.GetProject)
		r.Put("/", s.PutProject)
		r.Post("/reset", s.ResetProject)
	})

	r.Post("/pointer", s.Pointer)
	r.Get("/session", s.GetSession)
	r.Get("/graph", s.GetGraph)
	r.Post("/netlist", s.PostNetlist)
	r.Get("/events", s.SubscribeEvents)

	r.Route("/snapshots", func(r chi.Router) {
		r.Get("/", s.ListSnapshots)
		r.Put("/{name}", s.PutSnapshot)
		r.Post("/{name}/restore", s.RestoreSnapshot)
		r.Delete("/{name}", s.DeleteSnapshot)
	})

	return enableCORS(r)
}

// observe records request latency by route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		s.metrics.RequestDuration.
			WithLabelValues(r.Method, route, fmt.Sprintf("%d", ww.Status())).
			Observe(time.Since(start).Seconds())
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
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
		"app":     "logicx-http",
		"version": strings.TrimSpace(logicx.Version),
	})
}

// GetProject handles the GET /project request.
func (s *Server) GetProject(w http.ResponseWriter, r *http.Request) {
	format, ok := s.format(w, r)
	if !ok {
		return
	}

	data, err := s.Editor.Save(format)
	if err != nil {
		http.Error(w, fmt.Sprintf("Save error: %v", err), http.StatusInternalServerError)
		s.logger.Error("Save failed", "error", err)
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	w.Write(data)
}

// PutProject handles the PUT /project request.
func (s *Server) PutProject(w http.ResponseWriter, r *http.Request) {
	format, ok := s.format(w, r)
	if !ok {
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("PutProject: Invalid request body", "error", err)
		return
	}

	if err := s.Editor.Load(data, format); err != nil {
		resp := map[string]any{"error": err.Error()}
		if details := schema.ValidationErrors(err); len(details) > 0 {
			msgs := make([]string, 0, len(details))
			for _, d := range details {
				msgs = append(msgs, d.Error())
			}
			resp["details"] = msgs
		}
		s.writeJSON(w, http.StatusBadRequest, resp)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"status": "loaded"})
}

// ResetProject handles the POST /project/reset request.
func (s *Server) ResetProject(w http.ResponseWriter, r *http.Request) {
	s.Editor.Reset()
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// GetSession handles the GET /session request.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.state())
}

// GetGraph handles the GET /graph request.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, s.Editor.Graph())
}

// PostNetlist handles the POST /netlist request.
func (s *Server) PostNetlist(w http.ResponseWriter, r *http.Request) {
	n, err := netlist.Parse(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	applied, err := s.Editor.ApplyNetlist(n)
	resp := map[string]any{"applied": applied}
	if err != nil {
		resp["rejected"] = strings.Split(err.Error(), "\n")
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// ListSnapshots handles the GET /snapshots request.
func (s *Server) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	names, err := s.Editor.Snapshots(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		s.logger.Error("ListSnapshots failed", "error", err)
		return
	}
	s.writeJSON(w, http.StatusOK, names)
}

// PutSnapshot handles the PUT /snapshots/{name} request.
func (s *Server) PutSnapshot(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.Editor.Snapshot(r.Context(), name); err != nil {
		http.Error(w, fmt.Sprintf("Snapshot error: %v", err), http.StatusInternalServerError)
		s.logger.Error("Snapshot failed", "name", name, "error", err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]string{"name": name})
}

// RestoreSnapshot handles the POST /snapshots/{name}/restore request.
func (s *Server) RestoreSnapshot(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.Editor.Restore(r.Context(), name); err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Restore error: %v", err), http.StatusInternalServerError)
		s.logger.Error("Restore failed", "name", name, "error", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "restored"})
}

// DeleteSnapshot handles the DELETE /snapshots/{name} request.
func (s *Server) DeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.Editor.DeleteSnapshot(r.Context(), name); err != nil {
		http.Error(w, fmt.Sprintf("Delete error: %v", err), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SubscribeEvents handles the GET /events request (SSE).
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

	ch, cancel := s.Streams.Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE Client Disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: change\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// -- Helpers --

// format reads the ?format= query parameter (default json).
func (s *Server) format(w http.ResponseWriter, r *http.Request) (schema.Format, bool) {
	raw := r.URL.Query().Get("format")
	if raw == "" {
		return schema.FormatJSON, true
	}
	f, err := schema.ParseFormat(raw)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", false
	}
	return f, true
}

func contentType(f schema.Format) string {
	if f == schema.FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func ptr[T any](v T) *T {
	return &v
}
