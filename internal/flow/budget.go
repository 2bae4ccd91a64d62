package flow

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	unlimitedPattern = regexp.MustCompile(`(?i)\bunlimited\b|\bno\s*limit\b|\bno budget\b`)
	pricePattern     = regexp.MustCompile(`(?i)(\$|€|£)?\s*(\d{2,5})\s*(usd|eur|gbp|dollars|euros|pounds)?\s*(per\s*night|/night)?`)
)

var symbolCurrency = map[string]string{
	"$": "USD",
	"€": "EUR",
	"£": "GBP",
}

var wordCurrency = map[string]string{
	"usd": "USD", "dollars": "USD",
	"eur": "EUR", "euros": "EUR",
	"gbp": "GBP", "pounds": "GBP",
}

// ParseBudget interprets a budget phrase into a typed tuple. An
// "unlimited" cue takes absolute precedence over any numeric match.
// No match at all yields (false, nil, "").
func ParseBudget(text string) (unlimited bool, maxPricePerNight *float64, currency string) {
	if unlimitedPattern.MatchString(text) {
		return true, nil, ""
	}

	m := pricePattern.FindStringSubmatch(text)
	if m == nil {
		return false, nil, ""
	}

	amount, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return false, nil, ""
	}

	if cur, ok := wordCurrency[strings.ToLower(m[3])]; ok {
		currency = cur
	} else if cur, ok := symbolCurrency[m[1]]; ok {
		currency = cur
	}
	return false, &amount, currency
}
