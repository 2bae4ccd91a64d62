// Package assistant orchestrates one conversation turn: classify the
// query, extract entities, gate on clarification, fetch external data,
// then answer via Claude with rule-based responders as fallback.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/natib-dev/tripwise/internal/classifier"
	"github.com/natib-dev/tripwise/internal/conversation"
	"github.com/natib-dev/tripwise/internal/extractor"
	"github.com/natib-dev/tripwise/internal/flow"
	"github.com/natib-dev/tripwise/internal/metrics"
	"github.com/natib-dev/tripwise/internal/models"
	"github.com/natib-dev/tripwise/internal/prompts"
	"github.com/natib-dev/tripwise/internal/services"
	"github.com/natib-dev/tripwise/internal/session"
)

// curatedIntents answer from rule playbooks only; the LLM adds nothing
// reliable for them and could drift from the vetted guidance.
var curatedIntents = map[models.Intent]bool{
	models.IntentWeather:   true,
	models.IntentBestTime:  true,
	models.IntentBudget:    true,
	models.IntentSafety:    true,
	models.IntentVisa:      true,
	models.IntentItinerary: true,
}

// Deps collects the assistant's collaborators. LLM may be nil, which
// degrades every intent to its rule-based responder.
type Deps struct {
	Classifier classifier.Classifier
	Extractor  *extractor.Extractor
	Engine     *prompts.Engine
	LLM        LLM
	Geocoder   *services.Geocoder
	Weather    *services.WeatherService
	Country    *services.CountryService
	Places     *services.PlacesService
	Visa       *services.VisaService
	Store      session.Store
	Logger     *slog.Logger
}

// Assistant runs the per-turn pipeline against a session store.
type Assistant struct {
	deps   Deps
	logger *slog.Logger
}

// New creates an Assistant. Classifier, Extractor, Engine, Visa and
// Store are required; the external data clients and LLM are optional
// and skipped when nil.
func New(deps Deps) (*Assistant, error) {
	if deps.Classifier == nil || deps.Extractor == nil || deps.Engine == nil ||
		deps.Visa == nil || deps.Store == nil {
		return nil, fmt.Errorf("assistant: missing required dependency")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Assistant{deps: deps, logger: deps.Logger}, nil
}

// Reply is the result of one turn.
type Reply struct {
	SessionID     string                `json:"session_id"`
	Answer        string                `json:"answer"`
	Followup      string                `json:"followup,omitempty"`
	Intent        models.Intent         `json:"intent"`
	Clarification bool                  `json:"clarification"`
	Context       conversation.Snapshot `json:"context"`
}

// Ask runs one turn for the given session. An empty sessionID starts a
// new session.
func (a *Assistant) Ask(ctx context.Context, sessionID, input string) (*Reply, error) {
	data, err := a.loadOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	mgr := conversation.NewManagerWithState(data.State, a.logger)
	metrics.Inc(metrics.TurnsTotal)

	intent := a.deps.Classifier.Classify(input)
	entities := a.deps.Extractor.Extract(input, mgr.Slots())

	// The clarification gate runs before Update: a clarified turn
	// leaves slots, topic, and history untouched.
	if conversation.NeedsClarification(intent, entities, mgr.Slots()) {
		metrics.Inc(metrics.ClarificationsTotal)
		answer := conversation.ClarificationPrompt(intent)
		return a.finish(ctx, data, mgr, input, intent, answer, "", true)
	}

	mgr.Update(input, intent, entities)

	if answer, ok := a.metaFastPath(input, intent); ok {
		return a.finish(ctx, data, mgr, input, intent, answer, "", false)
	}

	slots := mgr.Slots()
	external := a.lookupExternal(ctx, intent, slots)

	var tripIntent *models.TripIntent
	switch intent {
	case models.IntentItinerary, models.IntentAccommodation, models.IntentBudget:
		ti := flow.BuildTripIntent(input, slots)
		mgr.SetTripIntent(ti)
		tripIntent = mgr.State().TripIntent
	}

	in := ResponderInput{
		Entities:   entities,
		Slots:      slots,
		External:   external,
		TripIntent: tripIntent,
	}

	var answer, followup string
	if curatedIntents[intent] || a.deps.LLM == nil {
		answer = HeuristicResponse(intent, in)
	} else {
		answer, followup = a.generateAnswer(ctx, input, intent, entities, external, data.History)
		if answer == "" {
			metrics.Inc(metrics.LLMFallbacksTotal)
			data.ConsecutiveErrors++
			answer = HeuristicResponse(intent, in)
		} else {
			data.ConsecutiveErrors = 0
		}
	}

	return a.finish(ctx, data, mgr, input, intent, answer, followup, false)
}

// Reset clears the session's dialogue state. Resetting a missing
// session is a no-op.
func (a *Assistant) Reset(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	data, err := a.deps.Store.Get(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}
	if data == nil {
		return nil
	}

	mgr := conversation.NewManagerWithState(data.State, a.logger)
	mgr.Reset()
	data.History = nil
	data.ConsecutiveErrors = 0
	metrics.Inc(metrics.SessionResetsTotal)

	if err := a.deps.Store.Update(ctx, data); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Summary returns the session's dialogue snapshot plus recent history.
type Summary struct {
	SessionID     string                `json:"session_id"`
	Context       conversation.Snapshot `json:"context"`
	RecentHistory []prompts.Message     `json:"recent_history"`

	// ConsecutiveErrors counts LLM failures in a row; it resets on the
	// next successful generation or a session reset.
	ConsecutiveErrors int `json:"consecutive_errors,omitempty"`
}

// Summarize reports the current session state without advancing it.
func (a *Assistant) Summarize(ctx context.Context, sessionID string) (*Summary, error) {
	data, err := a.loadOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	mgr := conversation.NewManagerWithState(data.State, a.logger)

	history := data.History
	if len(history) > prompts.DefaultRecentMessages {
		history = history[len(history)-prompts.DefaultRecentMessages:]
	}
	return &Summary{
		SessionID:         data.ID,
		Context:           mgr.Snapshot(),
		RecentHistory:     history,
		ConsecutiveErrors: data.ConsecutiveErrors,
	}, nil
}

// Classify exposes the classifier for tooling (MCP, CLI debugging).
func (a *Assistant) Classify(input string) models.Intent {
	return a.deps.Classifier.Classify(input)
}

// Extract exposes the stateless extractor for tooling.
func (a *Assistant) Extract(input string) models.EntitySet {
	return a.deps.Extractor.Extract(input, models.EntitySet{})
}

func (a *Assistant) loadOrCreate(ctx context.Context, sessionID string) (*session.Data, error) {
	if sessionID != "" {
		data, err := a.deps.Store.Get(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf("loading session: %w", err)
		}
		if data != nil {
			if data.State == nil {
				data.State = &conversation.State{}
			}
			return data, nil
		}
	}
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	data := &session.Data{ID: sessionID, State: &conversation.State{}}
	if err := a.deps.Store.Create(ctx, data); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	return data, nil
}

// metaFastPath answers cheap meta questions ("how many days do I
// need?") without a round trip to the LLM.
func (a *Assistant) metaFastPath(input string, intent models.Intent) (string, bool) {
	text := strings.ToLower(input)
	askingDuration := strings.Contains(text, "how many days") ||
		strings.Contains(text, "long should i stay")
	if askingDuration && intent == models.IntentAttractions {
		return "Plan at least **3 full days** to cover highlights.\n" +
			"• Day 1: Icons & river views\n" +
			"• Day 2: Museums & neighborhoods\n" +
			"• Day 3: Old town & markets", true
	}
	return "", false
}

// lookupExternal fetches the external data relevant to this turn.
// Every lookup is best-effort: a failure logs, counts, and leaves the
// field empty.
func (a *Assistant) lookupExternal(ctx context.Context, intent models.Intent, slots models.EntitySet) *services.External {
	external := &services.External{}
	destination := slots.Destination

	if destination != "" && a.deps.Geocoder != nil {
		coords, err := a.deps.Geocoder.Lookup(ctx, destination)
		if err != nil {
			metrics.Inc(metrics.LookupFailuresTotal)
			a.logger.Warn("geocode lookup failed", "destination", destination, "error", err)
		}
		external.Coords = coords

		if coords != nil {
			if a.deps.Weather != nil {
				climate, err := a.deps.Weather.ClimateSummary(ctx, coords.Lat, coords.Lon)
				if err != nil {
					metrics.Inc(metrics.LookupFailuresTotal)
					a.logger.Warn("climate lookup failed", "destination", destination, "error", err)
				}
				external.ClimateInfo = climate
			}
			if a.deps.Places != nil {
				hotels, err := a.deps.Places.HotelsNearby(ctx, coords.Lat, coords.Lon, 5)
				if err != nil {
					metrics.Inc(metrics.LookupFailuresTotal)
					a.logger.Warn("hotel lookup failed", "destination", destination, "error", err)
				}
				external.Hotels = hotels

				stops, err := a.deps.Places.TransportStops(ctx, coords.Lat, coords.Lon, 5)
				if err != nil {
					metrics.Inc(metrics.LookupFailuresTotal)
					a.logger.Warn("transport lookup failed", "destination", destination, "error", err)
				}
				external.Transport = stops
			}
		}
	}

	if destination != "" && a.deps.Country != nil {
		country, err := a.deps.Country.Lookup(ctx, destination)
		if err != nil {
			metrics.Inc(metrics.LookupFailuresTotal)
			a.logger.Warn("country lookup failed", "destination", destination, "error", err)
		}
		external.Country = country
	}

	if intent == models.IntentVisa && isThailand(destination) && slots.Citizenship != "" {
		stayDays := services.EstimateStayDays(slots.Duration)
		external.VisaTH = a.deps.Visa.ThailandAdvice(slots.Citizenship, stayDays, slots.Purpose)
	}

	return external
}

// generateAnswer builds the prompt for the intent and calls Claude.
// Returns empty strings when the call fails or returns nothing.
func (a *Assistant) generateAnswer(ctx context.Context, input string, intent models.Intent,
	entities models.EntitySet, external *services.External, history []prompts.Message) (answer, followup string) {

	externalJSON, err := json.MarshalIndent(external, "", "  ")
	if err != nil {
		externalJSON = []byte("{}")
	}
	climate := external.ClimateInfo
	if climate == "" {
		climate = "N/A"
	}
	duration := entities.Duration
	if duration == "" {
		duration = "Not specified"
	}
	activities := strings.Join(entities.Interests, ", ")
	if activities == "" {
		activities = "Not specified"
	}

	system, user := a.deps.Engine.Build(intent.String(), map[string]string{
		"query":         input,
		"history":       prompts.RenderHistory(history, 0),
		"external_data": string(externalJSON),
		"climate_info":  climate,
		"duration":      duration,
		"activities":    activities,
	})

	answer, err = a.deps.LLM.Generate(ctx, system, []prompts.Message{{Role: "user", Content: user}})
	if err != nil {
		a.logger.Warn("llm call failed", "intent", intent, "error", err)
		return "", ""
	}

	followup = a.generateFollowup(ctx, intent, entities)
	return answer, followup
}

// generateFollowup asks Claude for the single most natural next
// question. Best-effort: failures return empty.
func (a *Assistant) generateFollowup(ctx context.Context, intent models.Intent, entities models.EntitySet) string {
	var known []string
	if entities.Destination != "" {
		known = append(known, "destination: "+entities.Destination)
	}
	if entities.Duration != "" {
		known = append(known, "duration: "+entities.Duration)
	}
	if entities.Budget != "" {
		known = append(known, "budget: "+entities.Budget)
	}
	if len(entities.Interests) > 0 {
		known = append(known, "interests: "+strings.Join(entities.Interests, ", "))
	}
	knownContext := "None yet"
	if len(known) > 0 {
		knownContext = strings.Join(known, "; ")
	}

	system := "You are a friendly, proactive travel planning assistant. " +
		"Ask the single most relevant next question given what you already know. " +
		"Do not repeat prior questions. Keep it short and conversational."
	user := "Current query type: " + intent.String() + "\n" +
		"Known info: " + knownContext + "\n\n" +
		"What is the next most natural follow-up question?"

	followup, err := a.deps.LLM.Generate(ctx, system, []prompts.Message{{Role: "user", Content: user}})
	if err != nil {
		a.logger.Debug("followup generation failed", "error", err)
		return ""
	}
	return strings.TrimSpace(followup)
}

// finish records the turn in history, persists the session, and builds
// the reply.
func (a *Assistant) finish(ctx context.Context, data *session.Data, mgr *conversation.Manager,
	input string, intent models.Intent, answer, followup string, clarification bool) (*Reply, error) {

	data.History = prompts.AppendHistory(data.History, "user", input)
	data.History = prompts.AppendHistory(data.History, "assistant", answer)

	if err := a.deps.Store.Update(ctx, data); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	return &Reply{
		SessionID:     data.ID,
		Answer:        answer,
		Followup:      followup,
		Intent:        intent,
		Clarification: clarification,
		Context:       mgr.Snapshot(),
	}, nil
}
