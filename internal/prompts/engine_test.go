package prompts

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFillsVariables(t *testing.T) {
	e := NewEngine(nil)

	system, user := e.Build("destination_recommendation", map[string]string{
		"query":         "somewhere warm in March",
		"history":       "user: hi",
		"external_data": `{"hotels":[]}`,
	})

	assert.NotEmpty(t, system)
	assert.Contains(t, user, "somewhere warm in March")
	assert.Contains(t, user, "user: hi")
	assert.Contains(t, user, `{"hotels":[]}`)
	assert.NotContains(t, user, "{query}")
	assert.NotContains(t, user, "{history}")
}

func TestBuildPackingTemplate(t *testing.T) {
	e := NewEngine(nil)

	_, user := e.Build("packing_suggestions", map[string]string{
		"query":        "what to pack for Norway",
		"history":      "",
		"climate_info": "Cold temps - warm layers.",
		"duration":     "5 days",
		"activities":   "hiking",
	})

	assert.Contains(t, user, "Cold temps - warm layers.")
	assert.Contains(t, user, "5 days")
	assert.Contains(t, user, "hiking")
}

func TestBuildUnknownTypeFallsBack(t *testing.T) {
	e := NewEngine(nil)

	system, user := e.Build("no_such_template", map[string]string{
		"query":         "anywhere",
		"history":       "",
		"external_data": "{}",
	})
	wantSystem, _ := e.Build("destination_recommendation", map[string]string{
		"query":         "anywhere",
		"history":       "",
		"external_data": "{}",
	})

	assert.Equal(t, wantSystem, system)
	assert.Contains(t, user, "anywhere")
}

func TestAppendHistoryTrims(t *testing.T) {
	var history []Message
	for i := 0; i < MaxHistory+4; i++ {
		history = AppendHistory(history, "user", fmt.Sprintf("m%d", i))
	}

	require.Len(t, history, MaxHistory)
	assert.Equal(t, "m4", history[0].Content)
	assert.Equal(t, fmt.Sprintf("m%d", MaxHistory+3), history[len(history)-1].Content)
}

func TestRenderHistory(t *testing.T) {
	history := []Message{
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "hi there"},
		{Role: "user", Content: "weather in Rome?"},
	}

	out := RenderHistory(history, 2)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "assistant: hi there", lines[0])
	assert.Equal(t, "user: weather in Rome?", lines[1])

	// n <= 0 uses the default window.
	assert.Equal(t, 3, len(strings.Split(RenderHistory(history, 0), "\n")))
}

func TestRenderHistoryEmpty(t *testing.T) {
	assert.Empty(t, RenderHistory(nil, 5))
}
