package server

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/quicktools-app/quicktools/internal/auth"
	"github.com/quicktools-app/quicktools/internal/engine"
	"github.com/quicktools-app/quicktools/internal/registry"
	"github.com/quicktools-app/quicktools/internal/storage"
	"go.uber.org/zap"
)

// Server exposes the catalog and the computation dispatcher over HTTP.
type Server struct {
	catalog registry.Catalog
	engine  *engine.Engine
	auth    auth.Authenticator
	writer  storage.EventWriter
	logger  *zap.Logger
	ready   atomic.Bool
}

// New creates a Server with the given dependencies.
func New(
	catalog registry.Catalog,
	eng *engine.Engine,
	authenticator auth.Authenticator,
	writer storage.EventWriter,
	logger *zap.Logger,
) *Server {
	s := &Server{
		catalog: catalog,
		engine:  eng,
		auth:    authenticator,
		writer:  writer,
		logger:  logger,
	}
	s.ready.Store(true)
	return s
}

// SetReady toggles the health endpoint; main flips it off before draining.
func (s *Server) SetReady(ready bool) {
	s.ready.Store(ready)
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /v1/tools", s.authed(s.handleListTools))
	mux.HandleFunc("GET /v1/tools/{slug}", s.authed(s.handleGetTool))
	mux.HandleFunc("GET /v1/tools/{slug}/related", s.authed(s.handleRelatedTools))
	mux.HandleFunc("POST /v1/compute", s.authed(s.handleCompute))
	return mux
}

type authedHandler func(w http.ResponseWriter, r *http.Request, client *auth.ClientContext)

// authed wraps a handler with bearer-token authentication. Requests
// without credentials are passed through with an empty token so the
// configured authenticator decides whether anonymous access is allowed.
func (s *Server) authed(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, _ := auth.ExtractBearerToken(r.Header)
		client, err := s.auth.Authenticate(r.Context(), token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, "authentication failed")
			return
		}
		next(w, r, client)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	if !s.ready.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("draining"))
		return
	}
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request, _ *auth.ClientContext) {
	tools, err := s.catalog.All(r.Context())
	if err != nil {
		s.logger.Error("catalog list failed", zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "catalog unavailable")
		return
	}
	writeJSON(w, http.StatusOK, tools)
}

func (s *Server) handleGetTool(w http.ResponseWriter, r *http.Request, _ *auth.ClientContext) {
	slug := r.PathValue("slug")
	tool, err := s.catalog.BySlug(r.Context(), slug)
	if err != nil {
		s.logger.Error("catalog lookup failed", zap.String("slug", slug), zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "catalog unavailable")
		return
	}
	if tool == nil {
		writeJSONError(w, http.StatusNotFound, "tool not found")
		return
	}
	writeJSON(w, http.StatusOK, tool)
}

func (s *Server) handleRelatedTools(w http.ResponseWriter, r *http.Request, _ *auth.ClientContext) {
	slug := r.PathValue("slug")
	tool, err := s.catalog.BySlug(r.Context(), slug)
	if err != nil {
		s.logger.Error("catalog lookup failed", zap.String("slug", slug), zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "catalog unavailable")
		return
	}
	if tool == nil {
		writeJSONError(w, http.StatusNotFound, "tool not found")
		return
	}
	related, err := s.catalog.Related(r.Context(), tool)
	if err != nil {
		s.logger.Error("related lookup failed", zap.String("slug", slug), zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "catalog unavailable")
		return
	}
	if related == nil {
		related = []*registry.ToolDescriptor{}
	}
	writeJSON(w, http.StatusOK, related)
}

type computeRequest struct {
	Slug   string        `json:"slug"`
	Inputs engine.Inputs `json:"inputs"`
}

// computeResponse serializes the result union: exactly one of error, note,
// text, or fields is present.
type computeResponse struct {
	RequestID string         `json:"requestId"`
	Error     string         `json:"error,omitempty"`
	Note      string         `json:"note,omitempty"`
	Text      *string        `json:"text,omitempty"`
	Fields    []engine.Field `json:"fields,omitempty"`
	Primary   string         `json:"primary,omitempty"`
	LatencyMs float32        `json:"latencyMs"`
}

func (s *Server) handleCompute(w http.ResponseWriter, r *http.Request, client *auth.ClientContext) {
	start := time.Now()

	var req computeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Slug == "" {
		writeJSONError(w, http.StatusBadRequest, "slug is required")
		return
	}
	if req.Inputs == nil {
		req.Inputs = engine.Inputs{}
	}

	tool, err := s.catalog.BySlug(r.Context(), req.Slug)
	if err != nil {
		s.logger.Error("catalog lookup failed", zap.String("slug", req.Slug), zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "catalog unavailable")
		return
	}
	if tool == nil {
		writeJSONError(w, http.StatusNotFound, "tool not found")
		return
	}

	result := s.engine.Compute(tool, req.Inputs)

	requestID := uuid.New().String()
	latencyMs := float32(float64(time.Since(start)) / float64(time.Millisecond))

	// Fire-and-forget: write event
	s.writeEvent(&req, tool, client, requestID, result, latencyMs)

	resp := computeResponse{
		RequestID: requestID,
		LatencyMs: latencyMs,
	}
	switch result.Kind {
	case engine.KindError:
		resp.Error = result.Err
	case engine.KindNote:
		resp.Note = result.Note
	case engine.KindText:
		text := result.Text
		resp.Text = &text
	default:
		resp.Fields = result.Fields
		resp.Primary = engine.PrimaryField(result)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeEvent(
	req *computeRequest,
	tool *registry.ToolDescriptor,
	client *auth.ClientContext,
	requestID string,
	result engine.Result,
	latencyMs float32,
) {
	inputsJSON, err := json.Marshal(req.Inputs)
	if err != nil {
		inputsJSON = nil
	}

	var clientID string
	if client != nil {
		clientID = client.ClientID
	}

	s.writer.Write(&storage.ComputeEvent{
		RequestID:  requestID,
		ClientID:   clientID,
		Timestamp:  time.Now(),
		Slug:       tool.Slug,
		EngineID:   tool.EngineID,
		InputsJSON: string(inputsJSON),
		ResultKind: kindToString(result.Kind),
		Error:      result.Err,
		Primary:    engine.PrimaryField(result),
		LatencyMs:  latencyMs,
		Source:     "http",
	})
}

func kindToString(k engine.ResultKind) string {
	switch k {
	case engine.KindText:
		return "text"
	case engine.KindError:
		return "error"
	case engine.KindNote:
		return "note"
	default:
		return "fields"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
