package models

// AccommodationTypes is the closed vocabulary of lodging kinds the
// extractor recognizes, in match precedence order.
var AccommodationTypes = []string{
	"hotel", "hostel", "apartment", "boutique", "guesthouse", "bnb", "motel", "resort",
}

// TravelPurposes is the closed vocabulary of trip purposes, in match
// precedence order.
var TravelPurposes = []string{"tourism", "business", "study", "work"}

// EntitySet holds the slot values extracted from a single utterance.
// A zero value ("" or nil) means the slot was not matched; callers must
// treat every field as possibly absent.
type EntitySet struct {
	Destination string `json:"destination,omitempty"`
	Duration    string `json:"duration,omitempty"`
	// Budget is the raw matched span (e.g. "budget $2000 USD"), not a
	// parsed amount. The flow package re-parses when a numeric value is
	// needed; the two representations are deliberately kept separate.
	Budget            string   `json:"budget,omitempty"`
	Interests         []string `json:"interests,omitempty"`
	TravelDates       string   `json:"travel_dates,omitempty"`
	AccommodationType string   `json:"accommodation_type,omitempty"`
	Citizenship       string   `json:"citizenship,omitempty"`
	Purpose           string   `json:"purpose,omitempty"`
}

// IsEmpty returns true when no slot carries a value.
func (e EntitySet) IsEmpty() bool {
	return e.Destination == "" && e.Duration == "" && e.Budget == "" &&
		len(e.Interests) == 0 && e.TravelDates == "" &&
		e.AccommodationType == "" && e.Citizenship == "" && e.Purpose == ""
}

// HasInterest reports whether the given interest was extracted.
func (e EntitySet) HasInterest(interest string) bool {
	for _, v := range e.Interests {
		if v == interest {
			return true
		}
	}
	return false
}

// TurnRecord is one entry of a session's turn history.
type TurnRecord struct {
	Input    string    `json:"input"`
	Intent   Intent    `json:"intent"`
	Entities EntitySet `json:"entities"`
}
