// Package conversation owns the dialogue state for one session: the
// accumulated slots, topic history, and the merge policy applied each
// turn. It is the only stateful part of the pipeline; classification
// and extraction feed it read-only values.
package conversation

import (
	"log/slog"
	"time"

	"github.com/natib-dev/tripwise/internal/models"
	"github.com/natib-dev/tripwise/pkg/textutil"
)

// MaxTurnHistory bounds the per-session turn history; older turns are
// dropped from the front on append.
const MaxTurnHistory = 50

// State is the accumulated dialogue state of one session. It is owned
// by exactly one Manager; other components only ever see snapshots.
type State struct {
	Slots         models.EntitySet    `json:"slots"`
	TripIntent    *models.TripIntent  `json:"trip_intent,omitempty"`
	CurrentTopic  models.Intent       `json:"current_topic,omitempty"`
	PreviousTopic models.Intent       `json:"previous_topic,omitempty"`
	TurnHistory   []models.TurnRecord `json:"turn_history,omitempty"`

	// AccommodationIntent is sticky: once a turn classifies as
	// accommodation it stays set for the life of the session.
	AccommodationIntent    bool   `json:"accommodation_intent,omitempty"`
	LastAccommodationQuery string `json:"last_accommodation_query,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot is the read-only view of a session handed to external
// collaborators. Intents are serialized as their string values.
type Snapshot struct {
	Slots               models.EntitySet    `json:"slots"`
	TripIntent          map[string]any      `json:"trip_intent,omitempty"`
	CurrentTopic        string              `json:"current_topic,omitempty"`
	PreviousTopic       string              `json:"previous_topic,omitempty"`
	TurnHistory         []models.TurnRecord `json:"turn_history,omitempty"`
	AccommodationIntent bool                `json:"accommodation_intent,omitempty"`
}

// Manager applies the per-turn transition to one session's State.
// It is not safe for concurrent use: callers must serialize turns per
// session. Independent sessions need no coordination.
type Manager struct {
	state  *State
	logger *slog.Logger
}

// NewManager creates a manager over a fresh, empty session state.
func NewManager(logger *slog.Logger) *Manager {
	return NewManagerWithState(&State{}, logger)
}

// NewManagerWithState creates a manager over previously persisted
// state, e.g. one loaded from the session store.
func NewManagerWithState(state *State, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if state == nil {
		state = &State{}
	}
	return &Manager{state: state, logger: logger}
}

// State returns the underlying state for persistence. Callers must not
// mutate it outside the manager.
func (m *Manager) State() *State {
	return m.state
}

// Slots returns the current accumulated slots, used as prior context
// for extraction.
func (m *Manager) Slots() models.EntitySet {
	return m.state.Slots
}

// Update merges one resolved turn into the session state: every
// non-empty extracted entity overwrites the stored slot (last write
// wins, no versioning), topics rotate, and the turn is appended to the
// bounded history. Callers run the clarification gate first; a turn
// that ends in a clarification never reaches Update.
func (m *Manager) Update(input string, intent models.Intent, entities models.EntitySet) {
	if m.state.CurrentTopic != "" {
		m.state.PreviousTopic = m.state.CurrentTopic
	}
	m.state.CurrentTopic = intent

	m.mergeSlots(entities)

	if intent == models.IntentAccommodation {
		m.state.AccommodationIntent = true
		m.state.LastAccommodationQuery = input
	}

	m.state.TurnHistory = append(m.state.TurnHistory, models.TurnRecord{
		Input:    input,
		Intent:   intent,
		Entities: entities,
	})
	if len(m.state.TurnHistory) > MaxTurnHistory {
		m.state.TurnHistory = m.state.TurnHistory[len(m.state.TurnHistory)-MaxTurnHistory:]
	}

	m.state.UpdatedAt = time.Now().UTC()

	m.logger.Debug("session updated",
		"topic", intent,
		"previous_topic", m.state.PreviousTopic,
		"turns", len(m.state.TurnHistory),
		"input", textutil.Truncate(input, 60))
}

// SetTripIntent stores the trip-plan snapshot, fully replacing the
// previous one. TripIntent is never merged field-by-field across turns.
func (m *Manager) SetTripIntent(ti models.TripIntent) {
	m.state.TripIntent = &ti
}

// mergeSlots overwrites stored slots with every non-empty value from
// the turn's entities. Stale or malformed prior values are healed by
// the overwrite on the next positive match.
func (m *Manager) mergeSlots(entities models.EntitySet) {
	if entities.Destination != "" {
		m.state.Slots.Destination = entities.Destination
	}
	if entities.Duration != "" {
		m.state.Slots.Duration = entities.Duration
	}
	if entities.Budget != "" {
		m.state.Slots.Budget = entities.Budget
	}
	if entities.TravelDates != "" {
		m.state.Slots.TravelDates = entities.TravelDates
	}
	if entities.AccommodationType != "" {
		m.state.Slots.AccommodationType = entities.AccommodationType
	}
	if entities.Citizenship != "" {
		m.state.Slots.Citizenship = entities.Citizenship
	}
	if entities.Purpose != "" {
		m.state.Slots.Purpose = entities.Purpose
	}
	if len(entities.Interests) > 0 {
		m.state.Slots.Interests = append([]string(nil), entities.Interests...)
	}
}

// Reset clears the session back to its initial empty state. It is
// idempotent: resetting an already-empty session is a no-op.
func (m *Manager) Reset() {
	*m.state = State{}
	m.logger.Debug("session reset")
}

// Snapshot returns a read-only summary of the session.
func (m *Manager) Snapshot() Snapshot {
	snap := Snapshot{
		Slots:               m.state.Slots,
		CurrentTopic:        m.state.CurrentTopic.String(),
		PreviousTopic:       m.state.PreviousTopic.String(),
		TurnHistory:         append([]models.TurnRecord(nil), m.state.TurnHistory...),
		AccommodationIntent: m.state.AccommodationIntent,
	}
	if m.state.TripIntent != nil {
		snap.TripIntent = m.state.TripIntent.AsContext()
	}
	return snap
}
