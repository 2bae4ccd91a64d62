// Package prompts manages the LLM prompt templates and the bounded
// message history rendered into them.
package prompts

import (
	"log/slog"
	"strings"
)

// MaxHistory bounds the stored message history per session.
const MaxHistory = 10

// DefaultRecentMessages is how many history messages are rendered into
// a prompt by default.
const DefaultRecentMessages = 5

// Message is a single conversation message.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Template pairs the system and user prompts for one query type.
type Template struct {
	System         string
	User           string
	ChainOfThought bool
}

// Engine selects and fills prompt templates.
type Engine struct {
	templates map[string]Template
	logger    *slog.Logger
}

// NewEngine creates a prompt engine with the built-in templates.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{templates: defaultTemplates(), logger: logger}
}

func defaultTemplates() map[string]Template {
	return map[string]Template{
		"destination_recommendation": {
			System: "You are a helpful, concise travel expert.\n" +
				"GOALS:\n" +
				"- Recommend destinations tailored to user budget, interests, constraints.\n" +
				"- If hotel/transport info is available, weave it naturally into suggestions.\n" +
				"- Ask at most one clarifying question when needed.\n" +
				"STYLE:\n" +
				"- Use concrete bullet points.\n" +
				"- Keep under ~180 words unless explicitly asked.\n",
			User: "Context:\n{history}\n\n" +
				"User query: {query}\n\n" +
				"External data (JSON): {external_data}\n\n" +
				"Answer concisely with 3-5 recommendations max, each with a one-line why.\n" +
				"If hotels are provided, mention 1-2 nearby options.\n" +
				"If transport info is provided, add how to get around briefly.\n",
		},
		"packing_suggestions": {
			System: "You are a meticulous packing assistant. Think step-by-step internally, " +
				"but only output the final packing list and short justifications.\n" +
				"STYLE: bullet lists grouped by category, concise, quantities when useful.\n" +
				"If hotel info is available, suggest if any dress code applies.\n" +
				"If transport info is available, suggest items like metro cards or walking shoes.\n",
			User: "Think through silently:\n" +
				"1) Climate & season: {climate_info}\n" +
				"2) Trip duration: {duration}\n" +
				"3) Activities: {activities}\n" +
				"4) Hotels nearby: (from external data if available)\n" +
				"5) Transport context: (from external data if available)\n\n" +
				"Now output ONLY the final packing list for: {query}\n" +
				"Context: {history}\n" +
				"Start with a short rationale, then categories (Clothing, Toiletries, Electronics, Documents, Extras).\n",
			ChainOfThought: true,
		},
		"local_attractions": {
			System: "You are a local travel guide. Recommend both classics and hidden gems.\n" +
				"STYLE: concise bullets, practical tips (hours, costs when known), logical mini-itinerary.\n" +
				"If hotels are available, suggest 1-2 nearby as base options.\n" +
				"If transport info is available, include how to reach some attractions.\n",
			User: "Destination: {query}\n" +
				"Context: {history}\n" +
				"External info (JSON): {external_data}\n\n" +
				"Give 6-8 attractions max, grouped by neighborhood/area if sensible.\n" +
				"If transport info is present, explain briefly how to move around.\n" +
				"If hotel info is present, suggest where the user could stay nearby.\n" +
				"Add a 1-day sample path.\n",
		},
	}
}

// Build fills the template for the given query type with the provided
// variables. Unknown query types fall back to the destination template.
func (e *Engine) Build(queryType string, vars map[string]string) (system, user string) {
	template, ok := e.templates[queryType]
	if !ok {
		e.logger.Warn("unknown prompt template, using default", "query_type", queryType)
		template = e.templates["destination_recommendation"]
	}

	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return template.System, strings.NewReplacer(pairs...).Replace(template.User)
}

// AppendHistory appends a message and trims the history to MaxHistory.
func AppendHistory(history []Message, role, content string) []Message {
	history = append(history, Message{Role: role, Content: content})
	if len(history) > MaxHistory {
		history = history[len(history)-MaxHistory:]
	}
	return history
}

// RenderHistory renders the last n messages as "role: content" lines.
func RenderHistory(history []Message, n int) string {
	if n <= 0 {
		n = DefaultRecentMessages
	}
	if len(history) > n {
		history = history[len(history)-n:]
	}
	lines := make([]string, 0, len(history))
	for _, m := range history {
		lines = append(lines, m.Role+": "+m.Content)
	}
	return strings.Join(lines, "\n")
}
