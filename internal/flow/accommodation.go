package flow

import "regexp"

var lodgingTypePatterns []*regexp.Regexp

func init() {
	for _, t := range lodgingTypeOrder {
		lodgingTypePatterns = append(lodgingTypePatterns, regexp.MustCompile(`(?i)\b`+t+`s?\b`))
	}
}

// lodgingTypeOrder is checked in order; the first hit wins.
var lodgingTypeOrder = []string{
	"hotel", "hostel", "apartment", "resort", "guesthouse", "bnb", "motel", "boutique",
}

var noPreferencePattern = regexp.MustCompile(`(?i)\b(don'?t care|don’t care|no preference|any|flexible)\b`)

// vibeOrder is checked in order; the first hit wins.
var vibeOrder = []string{"luxury", "boutique", "business", "family", "romantic", "party", "quiet"}

var vibePatterns []*regexp.Regexp

func init() {
	for _, v := range vibeOrder {
		vibePatterns = append(vibePatterns, regexp.MustCompile(`(?i)\b`+v+`\b`))
	}
}

// ParseLodgingType returns the lodging type mentioned in the text, or
// "" when none is found. "boutique" is normalized to "hotel" as the
// type; the vibe separately records boutique.
func ParseLodgingType(text string) string {
	for i, p := range lodgingTypePatterns {
		if p.MatchString(text) {
			if lodgingTypeOrder[i] == "boutique" {
				return "hotel"
			}
			return lodgingTypeOrder[i]
		}
	}
	return ""
}

// ParseVibe returns the lodging vibe mentioned in the text, or "" when
// none is found. Explicit no-preference phrasing maps to
// models-agnostic "any".
func ParseVibe(text string) string {
	if noPreferencePattern.MatchString(text) {
		return "any"
	}
	for i, p := range vibePatterns {
		if p.MatchString(text) {
			return vibeOrder[i]
		}
	}
	return ""
}
