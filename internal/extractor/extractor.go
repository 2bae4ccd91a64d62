// Package extractor pulls typed slot candidates (destination, duration,
// budget, interests, lodging type, citizenship, purpose) out of raw
// utterance text. Extraction is deterministic and never fails: an
// unmatched slot is simply left empty, then backfilled from the prior
// session slots where continuity makes sense.
package extractor

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/natib-dev/tripwise/internal/models"
	"github.com/natib-dev/tripwise/pkg/textutil"
)

// properNoun matches capitalized phrases like "New York" or "San-Francisco".
var properNoun = regexp.MustCompile(`\b([A-Z][a-zA-Z]{2,}(?:[\s\-][A-Z][a-zA-Z]{2,})*)\b`)

// cityHint anchors a proper-noun phrase to a preposition: "in Paris", "to London".
var cityHint = regexp.MustCompile(`(?:\bin|\bto|\bfor|\bat)\s+([A-Z][a-zA-Z]{2,}(?:[\s\-][A-Z][a-zA-Z]{2,})*)`)

// Leading interrogatives derail naive destination extraction when they
// start the sentence, so they are stripped before matching.
var questionWords = map[string]bool{
	"which": true, "where": true, "what": true, "when": true,
	"how": true, "who": true, "whom": true, "whose": true,
}

var durationPattern = regexp.MustCompile(`(?i)(\d+)[\s-]*(days?|weeks?|months?)`)

// wordDurations maps colloquial stay phrases to normalized durations.
// Order matters: the first phrase found wins.
var wordDurations = []struct {
	phrase  string
	pattern *regexp.Regexp
	norm    string
}{
	{phrase: "weekend", norm: "2 days (weekend)"},
	{phrase: "couple of days", norm: "2–3 days"},
	{phrase: "few days", norm: "3–4 days"},
	{phrase: "fortnight", norm: "2 weeks"},
}

func init() {
	for i := range wordDurations {
		wordDurations[i].pattern = regexp.MustCompile(`(?i)\b` + wordDurations[i].phrase + `\b`)
	}
}

// budgetPattern captures the raw budget span: optional lead-in, optional
// currency symbol, a number, optional k/thousand multiplier, optional
// currency or per-night unit. The whole match is stored verbatim; the
// flow package does the numeric parsing for trip-intent flows.
var budgetPattern = regexp.MustCompile(
	`(?i)(?:(?:budget|up to|around)\s*)?(\$|€|£)?\s*(\d+(?:,\d{3})*|\d+)` +
		`(?:\s*(k|thousand))?\s*(usd|dollars|eur|euros|gbp|pounds|per night|/night|a night)?`)

// interestVocabulary is matched whole-word; results preserve this order.
var interestVocabulary = []string{
	"beach", "mountain", "city", "culture", "adventure", "food",
	"shopping", "nature", "museum", "nightlife", "family", "romantic",
	"dinner", "formal", "hiking",
}

var (
	interestPatterns      []*regexp.Regexp
	accommodationPatterns []*regexp.Regexp
)

func init() {
	for _, w := range interestVocabulary {
		interestPatterns = append(interestPatterns, regexp.MustCompile(`(?i)\b`+w+`\b`))
	}
	for _, t := range models.AccommodationTypes {
		accommodationPatterns = append(accommodationPatterns, regexp.MustCompile(`(?i)\b`+t+`s?\b`))
	}
}

var (
	passportCitizenship = regexp.MustCompile(`\b([A-Z][a-zA-Z]+)\s+passport\b`)
	citizenStatement    = regexp.MustCompile(`\bI(?:'m|’m| am)\s+an?\s+([A-Z][a-zA-Z]+)\s+(?:citizen|national)\b`)
)

// purposeKeywords is evaluated in order; the first category with a
// keyword hit wins.
var purposeKeywords = []struct {
	purpose  string
	patterns []*regexp.Regexp
}{
	{"tourism", compileWords("tourism", "tourist", "vacation", "holiday", "leisure", "honeymoon")},
	{"business", compileWords("business", "conference", "meeting", "client")},
	{"study", compileWords("study", "studies", "student", "university", "exchange")},
	{"work", compileWords("work", "working", "job", "employment")},
}

func compileWords(words ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		patterns[i] = regexp.MustCompile(`(?i)\b` + w + `\b`)
	}
	return patterns
}

// Extractor extracts slot values from utterances.
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor creates a new entity extractor.
func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// stripLeadingQuestionWords drops interrogatives from the front of the
// utterance ("Which ... ", "Where ...") so they are not mistaken for
// proper nouns downstream.
func stripLeadingQuestionWords(text string) string {
	tokens := strings.Fields(text)
	for len(tokens) > 0 {
		head := strings.ToLower(strings.Trim(tokens[0], ",.?"))
		if !questionWords[head] {
			break
		}
		tokens = tokens[1:]
	}
	return strings.Join(tokens, " ")
}

// Extract returns the slots found in text, falling back to prior
// session slots for continuity where the current turn has no value.
func (e *Extractor) Extract(text string, prior models.EntitySet) models.EntitySet {
	var entities models.EntitySet

	cleaned := stripLeadingQuestionWords(textutil.Bound(text, textutil.MaxPatternInput))

	// Duration: numeric form first, then the colloquial phrase table.
	if m := durationPattern.FindString(cleaned); m != "" {
		entities.Duration = strings.ReplaceAll(m, "-", " ")
	} else {
		for _, wd := range wordDurations {
			if wd.pattern.MatchString(cleaned) {
				entities.Duration = wd.norm
				break
			}
		}
	}

	// Budget: the raw matched span, not a parsed amount.
	if m := budgetPattern.FindString(cleaned); m != "" {
		entities.Budget = m
	}

	for i, p := range interestPatterns {
		if p.MatchString(cleaned) {
			entities.Interests = append(entities.Interests, interestVocabulary[i])
		}
	}

	for i, p := range accommodationPatterns {
		if p.MatchString(cleaned) {
			entities.AccommodationType = models.AccommodationTypes[i]
			break
		}
	}

	// Destination: prefer a preposition-anchored phrase; otherwise take
	// the LAST capitalized phrase, since trailing mentions are more often
	// the actual place in these utterances.
	if m := cityHint.FindStringSubmatch(cleaned); m != nil {
		entities.Destination = m[1]
	} else if all := properNoun.FindAllStringSubmatch(cleaned, -1); len(all) > 0 {
		entities.Destination = all[len(all)-1][1]
	}

	if m := passportCitizenship.FindStringSubmatch(cleaned); m != nil {
		entities.Citizenship = m[1]
	} else if m := citizenStatement.FindStringSubmatch(cleaned); m != nil {
		entities.Citizenship = m[1]
	}

	for _, pk := range purposeKeywords {
		if anyMatch(pk.patterns, cleaned) {
			entities.Purpose = pk.purpose
			break
		}
	}

	e.fillFromPrior(&entities, prior)

	e.logger.Debug("extracted entities",
		"destination", entities.Destination,
		"duration", entities.Duration,
		"interests", entities.Interests,
		"text", textutil.Truncate(text, 60))
	return entities
}

// fillFromPrior copies values from the prior session slots for slots the
// current turn left empty. Interests are replaced as a whole set, never
// merged element-wise.
func (e *Extractor) fillFromPrior(entities *models.EntitySet, prior models.EntitySet) {
	if entities.Destination == "" {
		entities.Destination = prior.Destination
	}
	if entities.Duration == "" {
		entities.Duration = prior.Duration
	}
	if entities.Budget == "" {
		entities.Budget = prior.Budget
	}
	if entities.Citizenship == "" {
		entities.Citizenship = prior.Citizenship
	}
	if entities.Purpose == "" {
		entities.Purpose = prior.Purpose
	}
	if len(entities.Interests) == 0 && len(prior.Interests) > 0 {
		entities.Interests = append([]string(nil), prior.Interests...)
	}
}

func anyMatch(patterns []*regexp.Regexp, text string) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
