package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/natib-dev/tripwise/internal/assistant"
)

// Server is an HTTP API server that exposes the travel assistant.
type Server struct {
	assistant *assistant.Assistant
	logger    *slog.Logger
	authToken string // empty = no auth required

	// Turns within one session must run one at a time; independent
	// sessions proceed in parallel.
	mu       sync.Mutex
	sessions map[string]*sync.Mutex
}

// NewServer creates a new Server with the given dependencies.
func NewServer(a *assistant.Assistant, logger *slog.Logger, authToken string) *Server {
	return &Server{
		assistant: a,
		logger:    logger,
		authToken: authToken,
		sessions:  make(map[string]*sync.Mutex),
	}
}

// Handler returns an http.Handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health check, no auth required.
	mux.HandleFunc("GET /healthz", s.handleHealthz)

	mux.HandleFunc("POST /assistant/ask", s.auth(s.handleAsk))
	mux.HandleFunc("POST /assistant/reset", s.auth(s.handleReset))
	mux.HandleFunc("GET /assistant/summary", s.auth(s.handleSummary))

	return mux
}

// --- middleware ---

// auth wraps a handler with Bearer token authentication when authToken is set.
func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.authToken == "" {
			next(w, r)
			return
		}
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(s.authToken)) != 1 {
			s.writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r)
	}
}

// sessionLock returns the per-session mutex, creating it on first use.
func (s *Server) sessionLock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.sessions[id]
	if !ok {
		lock = &sync.Mutex{}
		s.sessions[id] = lock
	}
	return lock
}

// --- handlers ---

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// askRequest is the body accepted by POST /assistant/ask. The session
// may come from the body or the X-Session-ID header; the body wins.
type askRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		s.writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = r.Header.Get("X-Session-ID")
	}

	if sessionID != "" {
		lock := s.sessionLock(sessionID)
		lock.Lock()
		defer lock.Unlock()
	}

	reply, err := s.assistant.Ask(r.Context(), sessionID, req.Message)
	if err != nil {
		s.logger.Error("ask failed", "session", sessionID, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to generate a response")
		return
	}

	w.Header().Set("X-Session-ID", reply.SessionID)
	s.writeJSON(w, http.StatusOK, reply)
}

// resetRequest is the body accepted by POST /assistant/reset.
type resetRequest struct {
	SessionID string `json:"session_id"`
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = r.Header.Get("X-Session-ID")
	}
	if sessionID == "" {
		s.writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.assistant.Reset(r.Context(), sessionID); err != nil {
		s.logger.Error("reset failed", "session", sessionID, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to reset session")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"reset": true})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		sessionID = r.Header.Get("X-Session-ID")
	}
	if sessionID == "" {
		s.writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	summary, err := s.assistant.Summarize(r.Context(), sessionID)
	if err != nil {
		s.logger.Error("summary failed", "session", sessionID, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to summarize session")
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

// --- helpers ---

// writeJSON encodes v as JSON and writes it to w with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(v); encErr != nil {
		s.logger.Error("failed to encode response", "error", encErr)
	}
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// Shutdown gracefully shuts down an http.Server with the given timeout.
// This is a convenience helper used by the serve command.
func Shutdown(srv *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
