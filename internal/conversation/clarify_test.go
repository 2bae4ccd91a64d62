package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/natib-dev/tripwise/internal/models"
)

func TestNeedsClarification(t *testing.T) {
	tests := []struct {
		name     string
		intent   models.Intent
		entities models.EntitySet
		slots    models.EntitySet
		want     bool
	}{
		{
			name:   "destination with nothing to go on",
			intent: models.IntentDestination,
			want:   true,
		},
		{
			name:     "destination with interests only",
			intent:   models.IntentDestination,
			entities: models.EntitySet{Interests: []string{"beach"}},
			want:     false,
		},
		{
			name:     "packing missing duration",
			intent:   models.IntentPacking,
			entities: models.EntitySet{Destination: "Norway"},
			want:     true,
		},
		{
			name:     "packing duration supplied by session slots",
			intent:   models.IntentPacking,
			entities: models.EntitySet{Destination: "Norway"},
			slots:    models.EntitySet{Duration: "5 days"},
			want:     false,
		},
		{
			name:   "attractions without a city",
			intent: models.IntentAttractions,
			want:   true,
		},
		{
			name:   "attractions ignore session slots",
			intent: models.IntentAttractions,
			slots:  models.EntitySet{Destination: "Paris"},
			want:   true,
		},
		{
			name:   "accommodation destination from slots suffices",
			intent: models.IntentAccommodation,
			slots:  models.EntitySet{Destination: "Lisbon"},
			want:   false,
		},
		{
			name:   "accommodation with no destination anywhere",
			intent: models.IntentAccommodation,
			want:   true,
		},
		{
			name:   "visa never hard-gates",
			intent: models.IntentVisa,
			want:   false,
		},
		{
			name:   "weather never gates",
			intent: models.IntentWeather,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NeedsClarification(tt.intent, tt.entities, tt.slots)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClarificationPrompt(t *testing.T) {
	for _, intent := range []models.Intent{
		models.IntentDestination,
		models.IntentPacking,
		models.IntentAttractions,
		models.IntentAccommodation,
		models.IntentGeneral,
	} {
		assert.NotEmpty(t, ClarificationPrompt(intent), "intent %s", intent)
	}

	assert.Contains(t, ClarificationPrompt(models.IntentPacking), "how many days")

	// Intents without a canonical question fall back to a generic one.
	assert.Equal(t, "Could you provide more details?", ClarificationPrompt(models.IntentWeather))
}
