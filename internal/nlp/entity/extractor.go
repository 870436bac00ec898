// internal/nlp/entity/extractor.go

// Package entity extracts structured query constraints (category, dietary
// flags, spice level, price bounds, candidate item names) from normalized
// text. Every sub-extraction is optional and additive; the extractor never
// fails a query.
package entity

import (
	"context"
	"regexp"
	"strconv"

	"dinebot/internal/common/logger"
	"dinebot/internal/models"
	"dinebot/internal/nlp/phrase"
)

var (
	reVegetarian = regexp.MustCompile(`\b(vegetarian|veg\b|veggie)`)
	reVegan      = regexp.MustCompile(`\bvegan\b`)
	reNonVeg     = regexp.MustCompile(`\b(non-veg|non veg|nonveg|meat|chicken|fish)`)

	reSpiceHot  = regexp.MustCompile(`\b(spicy|hot|chili)`)
	reSpiceMild = regexp.MustCompile(`\b(mild|less spicy|not spicy)`)

	rePrefLow  = regexp.MustCompile(`\b(cheap|affordable|budget|low price)`)
	rePrefHigh = regexp.MustCompile(`\b(expensive|premium|costly)`)

	reUnder      = regexp.MustCompile(`\b(?:under|below|less than)\s+(\d+)`)
	reOrLess     = regexp.MustCompile(`\b(\d+)\s+or\s+less|up\s+to\s+(\d+)`)
	reAbove      = regexp.MustCompile(`\b(?:above|over|more than|greater than)\s+(\d+)`)
	reOrMore     = regexp.MustCompile(`\b(\d+)\s+or\s+more|at\s+least\s+(\d+)`)
	reBetween    = regexp.MustCompile(`\bbetween\s+(\d+)\s+and\s+(\d+)`)
	reBareNumber = regexp.MustCompile(`\b(\d+)\s*(?:rupees|rs|₹)?`)
	reMaxHint    = regexp.MustCompile(`\b(?:under|less|below)`)
)

// categoryOrder is the lexicon scan order; first hit wins.
var categoryOrder = []string{
	"appetizer", "starter", "main course", "dessert", "beverage", "drink",
}

var reCategory = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(categoryOrder))
	for _, c := range categoryOrder {
		m[c] = regexp.MustCompile(`\b` + regexp.QuoteMeta(c) + `s?\b`)
	}
	return m
}()

// Extractor turns normalized text into an EntitySet. A phrase.Extractor
// may be attached for model-assisted candidate detection; without one the
// food-word lexicon alone is used.
type Extractor struct {
	lexicon *phrase.LexiconExtractor
	phrases phrase.Extractor
	logger  logger.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithPhraseExtractor attaches a model-assisted noun-phrase backend.
func WithPhraseExtractor(p phrase.Extractor) Option {
	return func(e *Extractor) { e.phrases = p }
}

// WithLexicon overrides the default food-word lexicon.
func WithLexicon(l *phrase.LexiconExtractor) Option {
	return func(e *Extractor) { e.lexicon = l }
}

func New(log logger.Logger, opts ...Option) *Extractor {
	e := &Extractor{
		lexicon: phrase.NewLexiconExtractor(),
		logger: log.With(map[string]interface{}{
			"component": "entity-extractor",
		}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract runs every sub-extraction over pre-normalized (trimmed,
// lower-cased) text.
func (e *Extractor) Extract(ctx context.Context, text string) models.EntitySet {
	var out models.EntitySet

	e.extractCategory(text, &out)
	e.extractDietary(text, &out)
	e.extractSpice(text, &out)
	e.extractPriceBounds(text, &out)
	e.extractPricePreference(text, &out)
	e.extractCandidates(ctx, text, &out)

	return out
}

func (e *Extractor) extractCategory(text string, out *models.EntitySet) {
	for _, c := range categoryOrder {
		if reCategory[c].MatchString(text) {
			out.Category = models.NormalizeCategory(c)
			return
		}
	}
}

// extractDietary sets flags from independent lexicon checks. Vegan and
// vegetarian can co-occur here; the filter engine resolves priority.
func (e *Extractor) extractDietary(text string, out *models.EntitySet) {
	if reVegetarian.MatchString(text) {
		out.IsVegetarian = boolPtr(true)
		out.DietaryFilter = "vegetarian"
	}
	if reVegan.MatchString(text) {
		out.IsVegan = boolPtr(true)
		out.DietaryFilter = "vegan"
	}
	if reNonVeg.MatchString(text) {
		out.IsVegetarian = boolPtr(false)
		out.DietaryFilter = "non-vegetarian"
	}
}

func (e *Extractor) extractSpice(text string, out *models.EntitySet) {
	if reSpiceHot.MatchString(text) {
		out.SpiceLevel = models.SpiceHot
	}
	if reSpiceMild.MatchString(text) {
		out.SpiceLevel = models.SpiceMild
	}
}

// extractPriceBounds parses numeric boundaries. Strict phrasings ("under
// 300", "above 200") are pre-adjusted by one so every downstream comparison
// is non-strict; the inclusivity flags only record how the user phrased the
// bound so a renderer can reconstruct it.
func (e *Extractor) extractPriceBounds(text string, out *models.EntitySet) {
	matched := false

	if m := reUnder.FindStringSubmatch(text); m != nil {
		n := mustAtoi(m[1])
		out.MaxPrice = intPtr(n - 1)
		out.MaxInclusive = false
		matched = true
	}
	if m := reOrLess.FindStringSubmatch(text); m != nil {
		n := mustAtoi(firstGroup(m))
		out.MaxPrice = intPtr(n)
		out.MaxInclusive = true
		matched = true
	}
	if m := reAbove.FindStringSubmatch(text); m != nil {
		n := mustAtoi(m[1])
		out.MinPrice = intPtr(n + 1)
		out.MinInclusive = false
		matched = true
	}
	if m := reOrMore.FindStringSubmatch(text); m != nil {
		n := mustAtoi(firstGroup(m))
		out.MinPrice = intPtr(n)
		out.MinInclusive = true
		matched = true
	}
	if m := reBetween.FindStringSubmatch(text); m != nil {
		out.MinPrice = intPtr(mustAtoi(m[1]))
		out.MaxPrice = intPtr(mustAtoi(m[2]))
		out.MinInclusive = true
		out.MaxInclusive = true
		matched = true
	}

	// Bare-number fallback: a lone number only becomes a bound when a
	// "cheaper than" hint appears somewhere in the text. Known heuristic,
	// not load-bearing.
	if !matched {
		if m := reBareNumber.FindStringSubmatch(text); m != nil && reMaxHint.MatchString(text) {
			n := mustAtoi(m[1])
			out.MaxPrice = intPtr(n - 1)
			out.MaxInclusive = false
		}
	}
}

func (e *Extractor) extractPricePreference(text string, out *models.EntitySet) {
	if rePrefLow.MatchString(text) {
		out.PricePreference = "low"
	}
	if rePrefHigh.MatchString(text) {
		out.PricePreference = "high"
	}
}

// extractCandidates unions the food-word lexicon hits with non-generic
// noun phrases from the chunking backend, when one is attached. Backend
// failures degrade to lexicon-only extraction.
func (e *Extractor) extractCandidates(ctx context.Context, text string, out *models.EntitySet) {
	words, _ := e.lexicon.NounPhrases(ctx, text)
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		seen[w] = struct{}{}
		out.CandidateItems = append(out.CandidateItems, w)
	}

	if e.phrases == nil {
		return
	}
	chunks, err := e.phrases.NounPhrases(ctx, text)
	if err != nil {
		e.logger.Warn("phrase backend unavailable, using lexicon only", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	for _, p := range chunks {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out.CandidateItems = append(out.CandidateItems, p)
	}
}

// HasCandidateItem reports whether the text plausibly names a dish: a
// food-lexicon hit, or any non-generic noun phrase from the backend. The
// intent classifier uses this to gate item-specific price intents.
func (e *Extractor) HasCandidateItem(ctx context.Context, text string) bool {
	if e.lexicon.ContainsFoodWord(text) {
		return true
	}
	if e.phrases != nil {
		if chunks, err := e.phrases.NounPhrases(ctx, text); err == nil && len(chunks) > 0 {
			return true
		}
	}
	return false
}

func boolPtr(b bool) *bool { return &b }
func intPtr(n int) *int    { return &n }

// mustAtoi converts digits captured by \d+; the pattern guarantees a valid
// non-negative integer.
func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// firstGroup returns the first non-empty capture of an alternation match.
func firstGroup(m []string) string {
	for _, g := range m[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}
