// Package mcp implements the Model Context Protocol server for tripwise.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/natib-dev/tripwise/internal/assistant"
)

// Server wraps an MCPServer around the travel assistant.
type Server struct {
	mcp       *mcpserver.MCPServer
	assistant *assistant.Assistant
	logger    *slog.Logger
}

// NewServer creates a new MCP server. A nil assistant makes every tool
// call return an error response instead of panicking.
func NewServer(a *assistant.Assistant, logger *slog.Logger) *Server {
	s := &Server{assistant: a, logger: logger}

	mcpSrv := mcpserver.NewMCPServer(
		"tripwise",
		"1.0.0",
		mcpserver.WithToolCapabilities(true),
	)

	mcpSrv.AddTool(buildAskTool(), s.handleAsk)
	mcpSrv.AddTool(buildClassifyTool(), s.handleClassify)
	mcpSrv.AddTool(buildExtractTool(), s.handleExtract)
	mcpSrv.AddTool(buildResetTool(), s.handleReset)
	mcpSrv.AddTool(buildSummaryTool(), s.handleSummary)

	s.mcp = mcpSrv
	return s
}

// MCPServer returns the underlying mcp-go MCPServer for use with ServeStdio.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcp
}

// HandleAsk is the exported handler for the "ask" tool. It is exposed
// for direct testing without the mcp-go transport layer.
func (s *Server) HandleAsk(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleAsk(ctx, req)
}

// HandleClassify is the exported handler for the "classify" tool.
func (s *Server) HandleClassify(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleClassify(ctx, req)
}

// HandleExtract is the exported handler for the "extract" tool.
func (s *Server) HandleExtract(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleExtract(ctx, req)
}

// HandleReset is the exported handler for the "reset" tool.
func (s *Server) HandleReset(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleReset(ctx, req)
}

// HandleSummary is the exported handler for the "summary" tool.
func (s *Server) HandleSummary(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleSummary(ctx, req)
}

// --- helpers ---

// toolResultJSON marshals v to JSON and returns it as a tool text result.
func toolResultJSON(v any) (*mcpgo.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("mcp: marshaling result: %w", err)
	}
	return mcpgo.NewToolResultText(string(b)), nil
}

// --- tool definitions ---

func buildAskTool() mcpgo.Tool {
	return mcpgo.NewTool("ask",
		mcpgo.WithDescription("Ask the travel assistant a question. Runs the full turn pipeline: intent classification, entity extraction, external lookups, and answer generation."),
		mcpgo.WithString("message",
			mcpgo.Required(),
			mcpgo.Description("The user's travel question"),
		),
		mcpgo.WithString("session_id",
			mcpgo.Description("Session to continue; omit to start a new one"),
		),
	)
}

func buildClassifyTool() mcpgo.Tool {
	return mcpgo.NewTool("classify",
		mcpgo.WithDescription("Classify a travel query into one of the supported intents without touching session state."),
		mcpgo.WithString("message",
			mcpgo.Required(),
			mcpgo.Description("The query to classify"),
		),
	)
}

func buildExtractTool() mcpgo.Tool {
	return mcpgo.NewTool("extract",
		mcpgo.WithDescription("Extract travel entities (destination, duration, budget, interests, citizenship, purpose) from a query without touching session state."),
		mcpgo.WithString("message",
			mcpgo.Required(),
			mcpgo.Description("The query to extract entities from"),
		),
	)
}

func buildResetTool() mcpgo.Tool {
	return mcpgo.NewTool("reset",
		mcpgo.WithDescription("Clear a session's accumulated dialogue state. Resetting a missing session is a no-op."),
		mcpgo.WithString("session_id",
			mcpgo.Required(),
			mcpgo.Description("The session to reset"),
		),
	)
}

func buildSummaryTool() mcpgo.Tool {
	return mcpgo.NewTool("summary",
		mcpgo.WithDescription("Report a session's current slots, topic, trip intent, and recent history without advancing it."),
		mcpgo.WithString("session_id",
			mcpgo.Required(),
			mcpgo.Description("The session to summarize"),
		),
	)
}

// --- tool handlers ---

func (s *Server) handleAsk(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.assistant == nil {
		return mcpgo.NewToolResultError("assistant is unavailable"), nil
	}

	message := req.GetString("message", "")
	if strings.TrimSpace(message) == "" {
		return mcpgo.NewToolResultError("message is required and must not be empty"), nil
	}
	sessionID := req.GetString("session_id", "")

	reply, err := s.assistant.Ask(ctx, sessionID, message)
	if err != nil {
		return mcpgo.NewToolResultErrorf("ask failed: %s", err.Error()), nil
	}

	s.logger.Info("mcp: ask answered", "session", reply.SessionID, "intent", reply.Intent)
	return toolResultJSON(reply)
}

func (s *Server) handleClassify(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.assistant == nil {
		return mcpgo.NewToolResultError("assistant is unavailable"), nil
	}

	message := req.GetString("message", "")
	if strings.TrimSpace(message) == "" {
		return mcpgo.NewToolResultError("message is required and must not be empty"), nil
	}

	intent := s.assistant.Classify(message)
	return toolResultJSON(map[string]any{"intent": intent})
}

func (s *Server) handleExtract(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.assistant == nil {
		return mcpgo.NewToolResultError("assistant is unavailable"), nil
	}

	message := req.GetString("message", "")
	if strings.TrimSpace(message) == "" {
		return mcpgo.NewToolResultError("message is required and must not be empty"), nil
	}

	entities := s.assistant.Extract(message)
	return toolResultJSON(map[string]any{"entities": entities})
}

func (s *Server) handleReset(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.assistant == nil {
		return mcpgo.NewToolResultError("assistant is unavailable"), nil
	}

	sessionID := req.GetString("session_id", "")
	if strings.TrimSpace(sessionID) == "" {
		return mcpgo.NewToolResultError("session_id is required and must not be empty"), nil
	}

	if err := s.assistant.Reset(ctx, sessionID); err != nil {
		return mcpgo.NewToolResultErrorf("reset failed: %s", err.Error()), nil
	}

	s.logger.Info("mcp: reset session", "session", sessionID)
	return toolResultJSON(map[string]any{"reset": true})
}

func (s *Server) handleSummary(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.assistant == nil {
		return mcpgo.NewToolResultError("assistant is unavailable"), nil
	}

	sessionID := req.GetString("session_id", "")
	if strings.TrimSpace(sessionID) == "" {
		return mcpgo.NewToolResultError("session_id is required and must not be empty"), nil
	}

	summary, err := s.assistant.Summarize(ctx, sessionID)
	if err != nil {
		return mcpgo.NewToolResultErrorf("summary failed: %s", err.Error()), nil
	}
	return toolResultJSON(summary)
}
