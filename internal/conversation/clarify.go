package conversation

import "github.com/natib-dev/tripwise/internal/models"

// NeedsClarification decides whether a turn must stop and ask a
// question before any state is merged. Rules are evaluated per intent:
//
//   - destination: both destination and interests absent from the
//     merged entity view.
//   - packing: destination or duration absent from entities and the
//     session slots combined.
//   - attractions: destination absent.
//   - accommodation: destination absent from entities and session slots.
//   - visa: never hard-gated here; the visa flow asks targeted
//     follow-ups progressively instead.
//   - everything else: no clarification.
func NeedsClarification(intent models.Intent, entities models.EntitySet, slots models.EntitySet) bool {
	switch intent {
	case models.IntentDestination:
		return entities.Destination == "" && len(entities.Interests) == 0
	case models.IntentPacking:
		if entities.Destination == "" && slots.Destination == "" {
			return true
		}
		if entities.Duration == "" && slots.Duration == "" {
			return true
		}
		return false
	case models.IntentAttractions:
		return entities.Destination == ""
	case models.IntentAccommodation:
		return entities.Destination == "" && slots.Destination == ""
	default:
		return false
	}
}

// clarificationPrompts is the closed table of canonical clarification
// questions per intent.
var clarificationPrompts = map[models.Intent]string{
	models.IntentDestination: "Great! To narrow it down, do you have a budget range and preferred month? " +
		"Are you into food, museums, outdoors, nightlife, or something else?",
	models.IntentPacking: "Got it. Where are you going and for how many days? " +
		"Any special activities (hiking, beach, business)?",
	models.IntentAttractions: "Perfect! Which city are we focusing on, and do you prefer museums, " +
		"food tours, or outdoor walks?",
	models.IntentAccommodation: "Happy to help with places to stay! What's the destination and rough budget? " +
		"Do you prefer hotel, apartment, hostel, or boutique?",
	models.IntentGeneral: "Are you choosing a destination, figuring out what to do there, " +
		"or looking for where to stay?",
}

// ClarificationPrompt returns the canonical question for the intent,
// or a generic prompt for intents without one.
func ClarificationPrompt(intent models.Intent) string {
	if prompt, ok := clarificationPrompts[intent]; ok {
		return prompt
	}
	return "Could you provide more details?"
}
