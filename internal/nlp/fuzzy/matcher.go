// internal/nlp/fuzzy/matcher.go

// Package fuzzy resolves free-text dish references against the menu. It
// scores each item with three complementary similarity measures and keeps
// the best one, so "chiken biriyani", "biryani" and "chicken biryani
// please" all land on the same item.
package fuzzy

import (
	"regexp"
	"strings"

	fuzzywuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"dinebot/internal/models"
)

// DefaultCutoff is the minimum similarity (0..1) for a match to count.
const DefaultCutoff = 0.6

// reQueryNoise strips price vocabulary before matching so "paneer tikka
// price" compares as "paneer tikka".
var reQueryNoise = regexp.MustCompile(`\b(price|cost|rate|how much|rupees|rs)\b`)

var reSpaces = regexp.MustCompile(`\s+`)

// Matcher scores candidate text against menu item names.
type Matcher struct {
	cutoff float64
}

// NewMatcher builds a matcher with the given similarity cutoff. A
// non-positive cutoff falls back to the default.
func NewMatcher(cutoff float64) *Matcher {
	if cutoff <= 0 {
		cutoff = DefaultCutoff
	}
	return &Matcher{cutoff: cutoff}
}

// CleanQuery removes price noise and collapses whitespace.
func CleanQuery(text string) string {
	cleaned := reQueryNoise.ReplaceAllString(text, " ")
	return strings.TrimSpace(reSpaces.ReplaceAllString(cleaned, " "))
}

// score is the best of three similarity measures, as a fraction.
func score(query, name string) float64 {
	r := fuzzywuzzy.Ratio(query, name)
	if p := fuzzywuzzy.PartialRatio(query, name); p > r {
		r = p
	}
	if t := fuzzywuzzy.TokenSortRatio(query, name); t > r {
		r = t
	}
	return float64(r) / 100.0
}

// BestMatch resolves the query against the item list. It returns the
// first item whose score strictly exceeds every later score, or nil when
// nothing clears the cutoff. Ties keep the earlier item.
func (m *Matcher) BestMatch(query string, items []models.MenuItem) *models.MatchResult {
	cleaned := strings.ToLower(CleanQuery(query))
	if cleaned == "" {
		return nil
	}

	var best *models.MatchResult
	for i := range items {
		s := score(cleaned, strings.ToLower(items[i].Name))
		if s < m.cutoff {
			continue
		}
		if best == nil || s > best.Confidence {
			best = &models.MatchResult{Item: items[i], Confidence: s}
		}
	}
	return best
}

// Rank returns every item clearing the cutoff, highest score first.
// Equal scores preserve menu order.
func (m *Matcher) Rank(query string, items []models.MenuItem) []models.MatchResult {
	cleaned := strings.ToLower(CleanQuery(query))
	if cleaned == "" {
		return nil
	}

	var out []models.MatchResult
	for i := range items {
		s := score(cleaned, strings.ToLower(items[i].Name))
		if s >= m.cutoff {
			out = append(out, models.MatchResult{Item: items[i], Confidence: s})
		}
	}
	// Insertion sort keeps the scan order stable for equal scores.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Confidence > out[j-1].Confidence; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
