// internal/nlp/phrase/phrase.go

// Package phrase provides noun-phrase extraction for entity detection.
// Two variants exist: a lexicon-only extractor that needs no external
// service, and a model-assisted extractor backed by an HTTP chunking
// service. Callers depend on the Extractor interface so the pipeline
// degrades gracefully when the model backend is unavailable.
package phrase

import "context"

// Extractor yields candidate noun-phrase strings for a piece of text.
type Extractor interface {
	NounPhrases(ctx context.Context, text string) ([]string, error)
}

// genericNouns are phrases that never identify a dish and are dropped
// from extractor output.
var genericNouns = map[string]struct{}{
	"price":      {},
	"cost":       {},
	"rate":       {},
	"menu":       {},
	"dish":       {},
	"item":       {},
	"food":       {},
	"option":     {},
	"thing":      {},
	"restaurant": {},
	"the price":  {},
}

// IsGeneric reports whether a phrase is too generic to name a dish.
func IsGeneric(p string) bool {
	_, ok := genericNouns[p]
	return ok
}

// FilterGeneric returns phrases with generic nouns removed, preserving order.
func FilterGeneric(phrases []string) []string {
	var out []string
	for _, p := range phrases {
		if !IsGeneric(p) {
			out = append(out, p)
		}
	}
	return out
}
