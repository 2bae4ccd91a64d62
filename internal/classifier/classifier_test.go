package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/natib-dev/tripwise/internal/models"
)

func TestClassifyIntents(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		name  string
		input string
		want  models.Intent
	}{
		{"weather", "What's the weather like in Paris?", models.IntentWeather},
		{"weather forecast", "Show me the forecast for next week in Rome", models.IntentWeather},
		{"visa", "Do I need a visa for Thailand?", models.IntentVisa},
		{"visa passport phrasing", "Is a passport required to enter Japan?", models.IntentVisa},
		{"accommodation", "Can you recommend a hotel in Barcelona?", models.IntentAccommodation},
		{"accommodation where to stay", "Where to stay in Lisbon?", models.IntentAccommodation},
		{"destination", "Where should I go for a beach vacation?", models.IntentDestination},
		{"packing", "What should I pack for Norway?", models.IntentPacking},
		{"attractions", "What are the best attractions in Paris?", models.IntentAttractions},
		{"attractions things to do", "Things to do in Berlin this weekend?", models.IntentAttractions},
		{"budget", "How much should I spend for a week in Europe?", models.IntentBudget},
		{"best time", "When should I visit Bali for surfing?", models.IntentBestTime},
		{"safety", "Is it safe to travel solo in Mexico?", models.IntentSafety},
		{"general fallback", "Tell me something interesting", models.IntentGeneral},
		{"empty input", "", models.IntentGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.input))
		})
	}
}

func TestClassifyPrecedence(t *testing.T) {
	c := NewClassifier(nil)

	// Accommodation cues outrank destination cues when both are present.
	assert.Equal(t, models.IntentAccommodation,
		c.Classify("Where should I go, any hostel recs?"))

	// Weather outranks everything except the itinerary composite.
	assert.Equal(t, models.IntentWeather,
		c.Classify("Is the weather good enough to visit the attractions in Rome?"))
}

func TestClassifyItineraryComposite(t *testing.T) {
	c := NewClassifier(nil)

	// All three cue classes present: stay duration, lodging, temporal anchor.
	assert.Equal(t, models.IntentItinerary,
		c.Classify("I need a hotel in 2 days from now, staying for 14 days"))

	// Two of three is not enough; lodging wins on its own pattern set.
	assert.Equal(t, models.IntentAccommodation,
		c.Classify("I need a hotel for 14 days"))
}

func TestClassifyDeterministic(t *testing.T) {
	c := NewClassifier(nil)
	input := "How much does a hotel cost in Paris next week?"

	first := c.Classify(input)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, c.Classify(input))
	}
}

func TestClassifyTotality(t *testing.T) {
	c := NewClassifier(nil)

	inputs := []string{
		"",
		"???",
		"asdf qwerty",
		"a very long sentence about nothing in particular that mentions no travel words at all",
	}
	for _, input := range inputs {
		got := c.Classify(input)
		assert.True(t, got.IsValid(), "intent %q must be valid for input %q", got, input)
	}
}
