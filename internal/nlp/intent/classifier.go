// internal/nlp/intent/classifier.go

// Package intent classifies normalized user text into the closed intent
// set. Classification is an ordered rule table evaluated top-down, first
// match wins. Price phrasing is the ambiguous zone: general range wording
// is a superset pattern checked before item-specific wording, and the
// item-specific tiers are additionally gated on a candidate-item signal
// supplied by the entity extractor.
package intent

import (
	"context"
	"regexp"
	"strings"

	"dinebot/internal/models"
)

var reGreeting = regexp.MustCompile(`\b(hi|hello|hey|greetings|good morning|good evening)\b`)

// General price-range phrasing. Checked before item-specific phrasing.
var priceRangePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:menu|all|overall|general)\s*(?:price|cost|rate)`),
	regexp.MustCompile(`\bprice\s*(?:range|list)`),
	regexp.MustCompile(`\bhow much.*(?:everything|menu|all)`),
	regexp.MustCompile(`\bwhat.*(?:price|cost).*(?:in general|overall|menu)`),
	regexp.MustCompile(`\b(?:show|tell|what).*(?:menu|all).*(?:price|cost)`),
}

// Item-specific price phrasing ("pizza cost", "how much is biryani").
var itemPricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\w+\s+(cost|price|rate)`),
	regexp.MustCompile(`\bhow much.*(?:is|for|does)\s+(?:the\s+)?\w+`),
	regexp.MustCompile(`\bprice.*(?:of|for)\s+\w+`),
	regexp.MustCompile(`\bcost.*(?:of|for)\s+\w+`),
	regexp.MustCompile(`\bwhat.*(?:cost|price).*\w+(?:cost|price)`),
}

var reGenericPrice = regexp.MustCompile(`\b(price|cost|how much|rate|expensive|cheap)`)

var categoryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(appetizer|starter|main course|dessert|beverage|drink)`),
	regexp.MustCompile(`\bshow.*(category|type)`),
	regexp.MustCompile(`\b(?:list|show).*(?:appetizer|starter|main|dessert|beverage)`),
}

var infoPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(address|location|where|situated)`),
	regexp.MustCompile(`\b(timing|hours|open|close|when)`),
	regexp.MustCompile(`\b(contact|phone|email|call)`),
	regexp.MustCompile(`\b(about|info).*restaurant`),
	regexp.MustCompile(`\brestaurant.*(?:info|detail|about)`),
}

var detailsPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(tell|what|about|info|details|describe)`),
	regexp.MustCompile(`\b(ingredient|contain|made of|recipe)`),
	// Dietary adjectives route to details even when a price bound
	// follows ("vegetarian items under 300"); this rule sits above the
	// menu-list tier and wins on such phrasing.
	regexp.MustCompile(`\b(vegetarian|vegan|spicy|spice level)`),
}

var menuPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(show|display|list|what).*(menu|items|dishes|food)`),
	regexp.MustCompile(`\bwhat.*(?:have|available|serve)`),
}

var reMenuWord = regexp.MustCompile(`\bmenu\b`)

// CandidateDetector is the secondary lexical signal used to gate
// item-specific price intents. The entity extractor provides it.
type CandidateDetector interface {
	HasCandidateItem(ctx context.Context, text string) bool
}

// rule is one row of the classification table.
type rule struct {
	tag   string
	apply func(ctx context.Context, c *Classifier, text string) (models.IntentResult, bool)
}

// Classifier evaluates the rule table against normalized text.
type Classifier struct {
	detector CandidateDetector
	rules    []rule
}

func NewClassifier(detector CandidateDetector) *Classifier {
	c := &Classifier{detector: detector}
	c.rules = []rule{
		{tag: "greeting", apply: matchGreeting},
		{tag: "price-range", apply: matchPriceRange},
		{tag: "item-price", apply: matchItemPrice},
		{tag: "generic-price", apply: matchGenericPrice},
		{tag: "category", apply: matchCategory},
		{tag: "restaurant-info", apply: matchRestaurantInfo},
		{tag: "item-details", apply: matchDetails},
		{tag: "menu-list", apply: matchMenuList},
		{tag: "default", apply: matchDefault},
	}
	return c
}

// Classify returns the first matching rule's result. The default rule
// always matches, so a result is always produced.
func (c *Classifier) Classify(ctx context.Context, text string) models.IntentResult {
	for _, r := range c.rules {
		if res, ok := r.apply(ctx, c, text); ok {
			return res
		}
	}
	// Unreachable: the default rule is terminal.
	return models.IntentResult{Intent: models.IntentUnknown, Confidence: 0.3}
}

func matchGreeting(_ context.Context, _ *Classifier, text string) (models.IntentResult, bool) {
	if reGreeting.MatchString(text) {
		return models.IntentResult{Intent: models.IntentGreeting, Confidence: 0.9}, true
	}
	return models.IntentResult{}, false
}

func matchPriceRange(_ context.Context, _ *Classifier, text string) (models.IntentResult, bool) {
	if matchAny(priceRangePatterns, text) {
		return models.IntentResult{Intent: models.IntentPriceRangeQuery, Confidence: 0.9}, true
	}
	return models.IntentResult{}, false
}

// matchItemPrice requires both an item-price pattern and the candidate-item
// signal; pattern shape alone is not trusted.
func matchItemPrice(ctx context.Context, c *Classifier, text string) (models.IntentResult, bool) {
	if matchAny(itemPricePatterns, text) && c.detector.HasCandidateItem(ctx, text) {
		return models.IntentResult{Intent: models.IntentItemPriceQuery, Confidence: 0.9}, true
	}
	return models.IntentResult{}, false
}

func matchGenericPrice(ctx context.Context, c *Classifier, text string) (models.IntentResult, bool) {
	if !reGenericPrice.MatchString(text) {
		return models.IntentResult{}, false
	}
	if c.detector.HasCandidateItem(ctx, text) {
		return models.IntentResult{Intent: models.IntentItemPriceQuery, Confidence: 0.75}, true
	}
	return models.IntentResult{Intent: models.IntentPriceRangeQuery, Confidence: 0.7}, true
}

func matchCategory(_ context.Context, _ *Classifier, text string) (models.IntentResult, bool) {
	if matchAny(categoryPatterns, text) {
		return models.IntentResult{Intent: models.IntentCategoryQuery, Confidence: 0.85}, true
	}
	return models.IntentResult{}, false
}

func matchRestaurantInfo(_ context.Context, _ *Classifier, text string) (models.IntentResult, bool) {
	if matchAny(infoPatterns, text) {
		return models.IntentResult{Intent: models.IntentRestaurantInfo, Confidence: 0.85}, true
	}
	return models.IntentResult{}, false
}

func matchDetails(_ context.Context, _ *Classifier, text string) (models.IntentResult, bool) {
	if matchAny(detailsPatterns, text) {
		return models.IntentResult{Intent: models.IntentItemDetails, Confidence: 0.8}, true
	}
	return models.IntentResult{}, false
}

func matchMenuList(_ context.Context, _ *Classifier, text string) (models.IntentResult, bool) {
	if matchAny(menuPatterns, text) {
		return models.IntentResult{Intent: models.IntentMenuList, Confidence: 0.85}, true
	}
	// "menu" on its own, as long as it is not a price question.
	if reMenuWord.MatchString(text) && !strings.Contains(text, "price") {
		return models.IntentResult{Intent: models.IntentMenuList, Confidence: 0.85}, true
	}
	return models.IntentResult{}, false
}

// matchDefault is terminal: short utterances are assumed to name a dish.
func matchDefault(_ context.Context, _ *Classifier, text string) (models.IntentResult, bool) {
	if len(strings.Fields(text)) <= 3 {
		return models.IntentResult{Intent: models.IntentItemDetails, Confidence: 0.6}, true
	}
	return models.IntentResult{Intent: models.IntentUnknown, Confidence: 0.3}, true
}

func matchAny(patterns []*regexp.Regexp, text string) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// InfoType is the secondary classifier for restaurant_info queries.
func InfoType(text string) string {
	switch {
	case regexp.MustCompile(`\b(timing|hours|open|close|when)`).MatchString(text):
		return "hours"
	case regexp.MustCompile(`\b(address|location|where|situated)`).MatchString(text):
		return "address"
	case regexp.MustCompile(`\b(contact|phone|email|call)`).MatchString(text):
		return "contact"
	default:
		return "general"
	}
}
