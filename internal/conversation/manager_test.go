package conversation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natib-dev/tripwise/internal/models"
)

func TestUpdateMergesSlotsLastWriteWins(t *testing.T) {
	m := NewManager(nil)

	m.Update("I want to visit Rome", models.IntentDestination, models.EntitySet{
		Destination: "Rome",
		Interests:   []string{"food"},
	})
	assert.Equal(t, "Rome", m.Slots().Destination)

	// A later turn with a new destination overwrites; empty fields in
	// the new turn leave stored slots alone.
	m.Update("actually Milan", models.IntentDestination, models.EntitySet{
		Destination: "Milan",
	})
	assert.Equal(t, "Milan", m.Slots().Destination)
	assert.Equal(t, []string{"food"}, m.Slots().Interests)
}

func TestUpdateRotatesTopics(t *testing.T) {
	m := NewManager(nil)

	m.Update("where should I go", models.IntentDestination, models.EntitySet{})
	m.Update("what's the weather in Rome", models.IntentWeather, models.EntitySet{Destination: "Rome"})

	snap := m.Snapshot()
	assert.Equal(t, models.IntentWeather.String(), snap.CurrentTopic)
	assert.Equal(t, models.IntentDestination.String(), snap.PreviousTopic)
}

func TestUpdateStickyAccommodationIntent(t *testing.T) {
	m := NewManager(nil)

	m.Update("need a hotel in Lisbon", models.IntentAccommodation, models.EntitySet{
		Destination:       "Lisbon",
		AccommodationType: "hotel",
	})
	assert.True(t, m.State().AccommodationIntent)
	assert.Equal(t, "need a hotel in Lisbon", m.State().LastAccommodationQuery)

	// The flag survives topic changes.
	m.Update("what about the weather", models.IntentWeather, models.EntitySet{})
	assert.True(t, m.State().AccommodationIntent)
	assert.Equal(t, "need a hotel in Lisbon", m.State().LastAccommodationQuery)
}

func TestUpdateBoundsTurnHistory(t *testing.T) {
	m := NewManager(nil)

	for i := 0; i < MaxTurnHistory+10; i++ {
		m.Update(fmt.Sprintf("turn %d", i), models.IntentGeneral, models.EntitySet{})
	}

	history := m.State().TurnHistory
	require.Len(t, history, MaxTurnHistory)
	// Oldest turns fall off the front.
	assert.Equal(t, "turn 10", history[0].Input)
	assert.Equal(t, fmt.Sprintf("turn %d", MaxTurnHistory+9), history[len(history)-1].Input)
}

func TestSetTripIntentReplacesWholesale(t *testing.T) {
	m := NewManager(nil)

	m.SetTripIntent(models.TripIntent{Destination: "Bangkok", Nights: 14})
	m.SetTripIntent(models.TripIntent{Destination: "Phuket"})

	require.NotNil(t, m.State().TripIntent)
	assert.Equal(t, "Phuket", m.State().TripIntent.Destination)
	// No field-by-field merge: the old nights value is gone.
	assert.Equal(t, 0, m.State().TripIntent.Nights)
}

func TestResetIdempotent(t *testing.T) {
	m := NewManager(nil)

	m.Update("hotel in Rome for 3 nights", models.IntentAccommodation, models.EntitySet{Destination: "Rome"})
	m.SetTripIntent(models.TripIntent{Destination: "Rome"})

	m.Reset()
	assert.Equal(t, models.EntitySet{}, m.Slots())
	assert.Nil(t, m.State().TripIntent)
	assert.Empty(t, m.State().TurnHistory)
	assert.False(t, m.State().AccommodationIntent)

	// Resetting an already-empty session changes nothing.
	m.Reset()
	assert.Equal(t, models.EntitySet{}, m.Slots())
}

func TestSnapshotIsDetached(t *testing.T) {
	m := NewManager(nil)
	m.Update("visiting Tokyo", models.IntentDestination, models.EntitySet{Destination: "Tokyo"})

	snap := m.Snapshot()
	require.Len(t, snap.TurnHistory, 1)

	// Mutating the snapshot's history must not touch the manager's state.
	snap.TurnHistory[0].Input = "mutated"
	snap.TurnHistory = append(snap.TurnHistory, models.TurnRecord{Input: "extra"})
	assert.Len(t, m.State().TurnHistory, 1)
}
