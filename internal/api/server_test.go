package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natib-dev/tripwise/internal/assistant"
	"github.com/natib-dev/tripwise/internal/classifier"
	"github.com/natib-dev/tripwise/internal/extractor"
	"github.com/natib-dev/tripwise/internal/prompts"
	"github.com/natib-dev/tripwise/internal/services"
	"github.com/natib-dev/tripwise/internal/session"
)

func newTestServer(t *testing.T, authToken string) *Server {
	t.Helper()
	a, err := assistant.New(assistant.Deps{
		Classifier: classifier.NewClassifier(nil),
		Extractor:  extractor.NewExtractor(nil),
		Engine:     prompts.NewEngine(nil),
		Visa:       services.NewVisaService(nil),
		Store:      session.NewMemoryStore(),
	})
	require.NoError(t, err)
	return NewServer(a, slog.New(slog.NewTextHandler(io.Discard, nil)), authToken)
}

func postJSON(t *testing.T, handler http.Handler, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	handler := newTestServer(t, "").Handler()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAsk(t *testing.T) {
	handler := newTestServer(t, "").Handler()

	rec := postJSON(t, handler, "/assistant/ask",
		map[string]string{"message": "we're going to Paris for 7 days"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var reply assistant.Reply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.NotEmpty(t, reply.SessionID)
	assert.NotEmpty(t, reply.Answer)
	assert.Equal(t, "Paris", reply.Context.Slots.Destination)

	// The session ID is echoed in the response header for clients that
	// track it out of band.
	assert.Equal(t, reply.SessionID, rec.Header().Get("X-Session-ID"))

	// Follow-up turn via the header rather than the body.
	rec = postJSON(t, handler, "/assistant/ask",
		map[string]string{"message": "how much should i spend?"},
		map[string]string{"X-Session-ID": reply.SessionID})
	require.Equal(t, http.StatusOK, rec.Code)

	var second assistant.Reply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	assert.Equal(t, reply.SessionID, second.SessionID)
	assert.Contains(t, second.Answer, "How much for 7 days in Paris?")
}

func TestAskValidation(t *testing.T) {
	handler := newTestServer(t, "").Handler()

	rec := postJSON(t, handler, "/assistant/ask", map[string]string{"message": "   "}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/assistant/ask", bytes.NewReader([]byte("not json")))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuth(t *testing.T) {
	handler := newTestServer(t, "secret-token").Handler()

	// Health never requires auth.
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	body := map[string]string{"message": "hello"}

	rec = postJSON(t, handler, "/assistant/ask", body, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = postJSON(t, handler, "/assistant/ask", body,
		map[string]string{"Authorization": "Bearer wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = postJSON(t, handler, "/assistant/ask", body,
		map[string]string{"Authorization": "Bearer secret-token"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReset(t *testing.T) {
	handler := newTestServer(t, "").Handler()

	rec := postJSON(t, handler, "/assistant/ask",
		map[string]string{"message": "we're going to Paris for 7 days"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sessionID := rec.Header().Get("X-Session-ID")

	rec = postJSON(t, handler, "/assistant/reset",
		map[string]string{"session_id": sessionID}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"reset":true}`, rec.Body.String())

	// Missing session_id is rejected.
	rec = postJSON(t, handler, "/assistant/reset", map[string]string{}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSummary(t *testing.T) {
	handler := newTestServer(t, "").Handler()

	rec := postJSON(t, handler, "/assistant/ask",
		map[string]string{"message": "we're going to Paris for 7 days"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sessionID := rec.Header().Get("X-Session-ID")

	req := httptest.NewRequest(http.MethodGet, "/assistant/summary?session_id="+sessionID, nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var summary assistant.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, sessionID, summary.SessionID)
	assert.Equal(t, "Paris", summary.Context.Slots.Destination)

	// No session anywhere: reject.
	req = httptest.NewRequest(http.MethodGet, "/assistant/summary", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
