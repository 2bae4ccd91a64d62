package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natib-dev/tripwise/internal/assistant"
	"github.com/natib-dev/tripwise/internal/classifier"
	"github.com/natib-dev/tripwise/internal/extractor"
	"github.com/natib-dev/tripwise/internal/prompts"
	"github.com/natib-dev/tripwise/internal/services"
	"github.com/natib-dev/tripwise/internal/session"
)

func newTestMCPServer(t *testing.T) *Server {
	t.Helper()
	a, err := assistant.New(assistant.Deps{
		Classifier: classifier.NewClassifier(nil),
		Extractor:  extractor.NewExtractor(nil),
		Engine:     prompts.NewEngine(nil),
		Visa:       services.NewVisaService(nil),
		Store:      session.NewMemoryStore(),
	})
	require.NoError(t, err)
	return NewServer(a, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func callRequest(name string, args map[string]any) mcpgo.CallToolRequest {
	req := mcpgo.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

// resultText unwraps the single text content block of a tool result.
func resultText(t *testing.T, result *mcpgo.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcpgo.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func TestHandleAsk(t *testing.T) {
	s := newTestMCPServer(t)

	result, err := s.HandleAsk(context.Background(),
		callRequest("ask", map[string]any{"message": "we're going to Paris for 7 days"}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var reply assistant.Reply
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &reply))
	assert.NotEmpty(t, reply.SessionID)
	assert.NotEmpty(t, reply.Answer)
	assert.Equal(t, "Paris", reply.Context.Slots.Destination)

	// Second turn continues the same session.
	result, err = s.HandleAsk(context.Background(),
		callRequest("ask", map[string]any{
			"message":    "how much should i spend?",
			"session_id": reply.SessionID,
		}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var second assistant.Reply
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &second))
	assert.Equal(t, reply.SessionID, second.SessionID)
	assert.Contains(t, second.Answer, "How much for 7 days in Paris?")
}

func TestHandleAskValidation(t *testing.T) {
	s := newTestMCPServer(t)

	result, err := s.HandleAsk(context.Background(), callRequest("ask", map[string]any{}))
	require.NoError(t, err)
	assert.True(t, result.IsError)

	result, err = s.HandleAsk(context.Background(),
		callRequest("ask", map[string]any{"message": "   "}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleClassify(t *testing.T) {
	s := newTestMCPServer(t)

	result, err := s.HandleClassify(context.Background(),
		callRequest("classify", map[string]any{"message": "do i need a visa for Thailand?"}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.JSONEq(t, `{"intent":"visa"}`, resultText(t, result))
}

func TestHandleExtract(t *testing.T) {
	s := newTestMCPServer(t)

	result, err := s.HandleExtract(context.Background(),
		callRequest("extract", map[string]any{"message": "5 days in Tokyo for food and nightlife"}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var payload struct {
		Entities struct {
			Destination string   `json:"destination"`
			Duration    string   `json:"duration"`
			Interests   []string `json:"interests"`
		} `json:"entities"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &payload))
	assert.Equal(t, "Tokyo", payload.Entities.Destination)
	assert.Equal(t, "5 days", payload.Entities.Duration)
	assert.Equal(t, []string{"food", "nightlife"}, payload.Entities.Interests)
}

func TestHandleResetAndSummary(t *testing.T) {
	s := newTestMCPServer(t)
	ctx := context.Background()

	result, err := s.HandleAsk(ctx,
		callRequest("ask", map[string]any{"message": "we're going to Paris for 7 days"}))
	require.NoError(t, err)
	var reply assistant.Reply
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &reply))

	result, err = s.HandleSummary(ctx,
		callRequest("summary", map[string]any{"session_id": reply.SessionID}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	var summary assistant.Summary
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &summary))
	assert.Equal(t, "Paris", summary.Context.Slots.Destination)

	result, err = s.HandleReset(ctx,
		callRequest("reset", map[string]any{"session_id": reply.SessionID}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.JSONEq(t, `{"reset":true}`, resultText(t, result))

	// Missing session_id is rejected at the tool boundary.
	result, err = s.HandleReset(ctx, callRequest("reset", map[string]any{}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestToolsWithNilAssistant(t *testing.T) {
	s := NewServer(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	result, err := s.HandleAsk(context.Background(),
		callRequest("ask", map[string]any{"message": "hello"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
