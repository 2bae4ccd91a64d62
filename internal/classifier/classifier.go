// Package classifier maps free-text travel queries to one intent label
// using an ordered list of pattern sets. Overlap between sets is
// resolved purely by list order, not by specificity or match count.
package classifier

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/natib-dev/tripwise/internal/models"
	"github.com/natib-dev/tripwise/pkg/textutil"
)

// Classifier determines the intent of a user utterance.
type Classifier interface {
	Classify(text string) models.Intent
}

// RuleClassifier uses ordered regex pattern sets for classification.
type RuleClassifier struct {
	logger *slog.Logger
}

// NewClassifier creates a new rule-based classifier.
func NewClassifier(logger *slog.Logger) *RuleClassifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &RuleClassifier{logger: logger}
}

func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(p)
	}
	return compiled
}

// Itinerary is a composite signal: the utterance must carry all three
// classes of cue (stay duration, lodging, temporal anchoring) at once.
var (
	stayDurationCues = compileAll(
		`\b\d+[\s-]*(days?|nights?|weeks?)\b`,
		`\bstay(ing)?\s+for\b`,
	)
	lodgingCues = compileAll(
		`\bhotel(s)?\b`, `\bhostel(s)?\b`, `\bguesthouse(s)?\b`, `\bresort(s)?\b`,
		`\b(accommodation|lodging)\b`, `\bwhere to stay\b`, `\bplace to (sleep|stay)\b`,
		`\bbnb\b`, `\bmotel(s)?\b`, `\bapartment(s)?\b`,
	)
	temporalCues = compileAll(
		`\bin\s+\d+\s+(day|days|week|weeks)\b`,
		`\bfrom\s+now\b`, `\btomorrow\b`, `\bnext\s+(week|month)\b`,
	)
)

var weatherPatterns = compileAll(
	`\bweather\b`, `\bforecast\b`, `\btemperature\b`, `\bclimate\b`,
	`\brain(y|ing)?\b`, `\bsunny\b`, `\bhow (hot|cold|warm)\b`, `\bhumid(ity)?\b`,
)

var visaPatterns = compileAll(
	`\bvisa(s)?\b`, `\bimmigration\b`, `\bentry requirements?\b`,
	`\bpassport\b.*\b(need|needed|require|required)\b`,
	`\b(need|require).*\bpassport\b`,
	`\bwork permit\b`, `\bvisa[\s-]*(free|exempt)\b`,
)

var accommodationPatterns = compileAll(
	`\bhotel(s)?\b`, `\bhostel(s)?\b`, `\bguesthouse(s)?\b`,
	`\b(accommodation|lodging)\b`, `\bwhere to stay\b`,
	`\bplace to (sleep|stay)\b`, `\binn\b`, `\bmotel(s)?\b`,
	`\bbnb\b`, `\bbed and breakfast\b`, `\bboutique hotel\b`,
)

var destinationPatterns = compileAll(
	`where.*(should|to).*(go|travel)`, `recommend.*destination`,
	`place.*visit`, `vacation.*ideas`, `trip.*suggestions`,
)

var packingPatterns = compileAll(
	`\bpack\b.*\bwhat\b`, `\bwhat\b.*\bpack\b`, `\bpacking list\b`,
	`\bbring\b.*\btrip\b`, `\bwhat\b.*\bwear\b`, `\bessentials\b.*\bbring\b`,
)

var attractionsPatterns = compileAll(
	`\bthings\b.*\bdo\b`, `\battraction(s)?\b`, `\bsightseeing\b`,
	`\bplaces\b.*\bsee\b`, `\bactivities\b`, `\bwhat\b.*\bdo\b.*\bin\b`,
)

var budgetPatterns = compileAll(
	`\bhow much\b`, `\bcost(s)?\b`, `\bprice(s)?\b`, `\bbudget\b`,
	`\bspend\b`, `\bcheap(er|est)?\b`, `\bexpensive\b`, `\bafford\b`,
	`\bdaily budget\b`,
)

var bestTimePatterns = compileAll(
	`\bbest time\b`, `\bbest (month|season)\b`,
	`\bwhen (should|to)\b.*\b(visit|go|travel)\b`, `\bwhat month\b`,
	`\b(high|low|shoulder) season\b`, `\btime to visit\b`,
)

var safetyPatterns = compileAll(
	`\bsafe(ty|r|st)?\b`, `\bdanger(ous)?\b`, `\bsecurity\b`, `\bcrime\b`,
	`\bsolo (travel|traveler|traveller|female)\b`, `\bscam(s)?\b`, `\bis it safe\b`,
)

// categories are evaluated in order; the first set with a match wins.
// Itinerary is checked separately before these because it is a
// composite of three cue classes rather than a single set.
var categories = []struct {
	intent   models.Intent
	patterns []*regexp.Regexp
}{
	{models.IntentWeather, weatherPatterns},
	{models.IntentVisa, visaPatterns},
	{models.IntentAccommodation, accommodationPatterns},
	{models.IntentDestination, destinationPatterns},
	{models.IntentPacking, packingPatterns},
	{models.IntentAttractions, attractionsPatterns},
	{models.IntentBudget, budgetPatterns},
	{models.IntentBestTime, bestTimePatterns},
	{models.IntentSafety, safetyPatterns},
}

func anyMatch(patterns []*regexp.Regexp, text string) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// Classify returns the intent for the given utterance. It is total:
// every input, including the empty string, yields an intent, with
// "general" as the fallback.
func (c *RuleClassifier) Classify(text string) models.Intent {
	lower := strings.ToLower(textutil.Bound(text, textutil.MaxPatternInput))

	if anyMatch(stayDurationCues, lower) && anyMatch(lodgingCues, lower) && anyMatch(temporalCues, lower) {
		c.logger.Debug("classified query", "intent", models.IntentItinerary, "text", textutil.Truncate(text, 60))
		return models.IntentItinerary
	}

	for _, cat := range categories {
		if anyMatch(cat.patterns, lower) {
			c.logger.Debug("classified query", "intent", cat.intent, "text", textutil.Truncate(text, 60))
			return cat.intent
		}
	}

	c.logger.Debug("classified query", "intent", models.IntentGeneral, "text", textutil.Truncate(text, 60))
	return models.IntentGeneral
}
