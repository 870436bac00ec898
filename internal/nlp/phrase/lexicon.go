// internal/nlp/phrase/lexicon.go
package phrase

import (
	"context"
	"strings"
)

// defaultFoodWords is the curated food lexicon. It covers the dish
// vocabulary of the seed menu; deployments can extend it via config.
var defaultFoodWords = []string{
	"pizza", "biryani", "chicken", "paneer", "tikka", "masala",
	"salad", "wings", "rolls", "cake", "lassi", "chai", "soda",
	"jamun", "lava", "spring", "caesar", "mango", "chocolate",
	"butter", "rice",
}

// LexiconExtractor matches a fixed food-word list against the text. It is
// the zero-dependency fallback when no chunking backend is configured.
type LexiconExtractor struct {
	words []string
}

// NewLexiconExtractor builds a lexicon extractor. With no words given it
// uses the default food lexicon.
func NewLexiconExtractor(words ...string) *LexiconExtractor {
	if len(words) == 0 {
		words = defaultFoodWords
	}
	return &LexiconExtractor{words: words}
}

// NounPhrases returns every lexicon word contained in the text, in lexicon
// order. It never fails.
func (l *LexiconExtractor) NounPhrases(_ context.Context, text string) ([]string, error) {
	var out []string
	for _, w := range l.words {
		if strings.Contains(text, w) {
			out = append(out, w)
		}
	}
	return out, nil
}

// ContainsFoodWord reports whether any lexicon word appears in the text.
func (l *LexiconExtractor) ContainsFoodWord(text string) bool {
	for _, w := range l.words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
