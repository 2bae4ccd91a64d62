package models

// Intent classifies the topic of a user utterance.
type Intent string

const (
	IntentDestination   Intent = "destination_recommendation"
	IntentPacking       Intent = "packing_suggestions"
	IntentAttractions   Intent = "local_attractions"
	IntentAccommodation Intent = "accommodation"
	IntentWeather       Intent = "weather"
	IntentBestTime      Intent = "best_time"
	IntentBudget        Intent = "budget"
	IntentSafety        Intent = "safety"
	IntentVisa          Intent = "visa"
	IntentItinerary     Intent = "itinerary"
	IntentGeneral       Intent = "general"
)

// ValidIntents is the closed set of recognized intents, in classifier
// precedence order for the single-category checks.
var ValidIntents = []Intent{
	IntentItinerary,
	IntentWeather,
	IntentVisa,
	IntentAccommodation,
	IntentDestination,
	IntentPacking,
	IntentAttractions,
	IntentBudget,
	IntentBestTime,
	IntentSafety,
	IntentGeneral,
}

// IsValid returns true if the intent is recognized.
func (i Intent) IsValid() bool {
	for _, v := range ValidIntents {
		if i == v {
			return true
		}
	}
	return false
}

// String returns the stable wire identifier for the intent.
func (i Intent) String() string {
	return string(i)
}
