package models

import "time"

// DateOnly is the wire format for trip dates.
const DateOnly = "2006-01-02"

// AccommodationPrefs captures lodging preferences for a planned trip.
type AccommodationPrefs struct {
	Type             string   `json:"type,omitempty"`
	Vibe             string   `json:"vibe,omitempty"`
	BudgetUnlimited  bool     `json:"budget_unlimited"`
	MaxPricePerNight *float64 `json:"max_price_per_night,omitempty"`
	Currency         string   `json:"currency,omitempty"`
}

// TripIntent is a normalized snapshot of a concrete travel plan. It is
// rebuilt from scratch each turn and replaces the previous snapshot
// wholesale; only EntitySet slots are merged field-by-field across turns.
type TripIntent struct {
	Destination   string             `json:"destination,omitempty"`
	StartDate     *time.Time         `json:"start_date,omitempty"`
	EndDate       *time.Time         `json:"end_date,omitempty"`
	Nights        int                `json:"nights"`
	Purpose       string             `json:"purpose,omitempty"`
	Interests     []string           `json:"interests,omitempty"`
	Accommodation AccommodationPrefs `json:"accommodation"`
}

// AsContext flattens the trip intent into a plain mapping suitable for
// embedding into prompts or session state.
func (t TripIntent) AsContext() map[string]any {
	var start, end any
	if t.StartDate != nil {
		start = t.StartDate.Format(DateOnly)
	}
	if t.EndDate != nil {
		end = t.EndDate.Format(DateOnly)
	}
	return map[string]any{
		"destination": t.Destination,
		"start_date":  start,
		"end_date":    end,
		"nights":      t.Nights,
		"purpose":     t.Purpose,
		"interests":   t.Interests,
		"accommodation": map[string]any{
			"type":                t.Accommodation.Type,
			"vibe":                t.Accommodation.Vibe,
			"budget_unlimited":    t.Accommodation.BudgetUnlimited,
			"max_price_per_night": t.Accommodation.MaxPricePerNight,
			"currency":            t.Accommodation.Currency,
		},
	}
}
