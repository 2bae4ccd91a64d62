package flow

import (
	"github.com/natib-dev/tripwise/internal/models"
)

// BuildTripIntent composes the temporal resolver, budget interpreter,
// accommodation planner, and the extracted destination/interests into a
// single normalized snapshot. It is a pure composition: it reads
// nothing from session state and the caller persists the result.
func BuildTripIntent(text string, entities models.EntitySet) models.TripIntent {
	window := ResolveWindow(text)
	unlimited, maxPrice, currency := ParseBudget(text)

	lodgingType := ParseLodgingType(text)
	if lodgingType == "" {
		lodgingType = entities.AccommodationType
		if lodgingType == "boutique" {
			lodgingType = "hotel"
		}
	}
	if lodgingType == "" {
		lodgingType = "hotel"
	}

	vibe := ParseVibe(text)
	if vibe == "" {
		vibe = "any"
	}

	purpose := entities.Purpose
	if purpose == "" {
		purpose = "tourism"
	}

	nights := 0
	if window.Nights != nil {
		nights = *window.Nights
	}

	return models.TripIntent{
		Destination: entities.Destination,
		StartDate:   window.Start,
		EndDate:     window.End,
		Nights:      nights,
		Purpose:     purpose,
		Interests:   append([]string(nil), entities.Interests...),
		Accommodation: models.AccommodationPrefs{
			Type:             lodgingType,
			Vibe:             vibe,
			BudgetUnlimited:  unlimited,
			MaxPricePerNight: maxPrice,
			Currency:         currency,
		},
	}
}
