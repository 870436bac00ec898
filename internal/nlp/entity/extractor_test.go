// internal/nlp/entity/extractor_test.go
package entity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinebot/internal/common/logger"
	"dinebot/internal/models"
)

// stubPhrases is a canned chunking backend.
type stubPhrases struct {
	phrases []string
	err     error
}

func (s *stubPhrases) NounPhrases(_ context.Context, _ string) ([]string, error) {
	return s.phrases, s.err
}

func newTestExtractor(t *testing.T, opts ...Option) *Extractor {
	return New(logger.NewTestLogger(t), opts...)
}

func TestExtractor_Dietary(t *testing.T) {
	tests := []struct {
		name             string
		text             string
		expectVegetarian *bool
		expectVegan      *bool
		expectedFilter   string
	}{
		{
			name:             "vegetarian",
			text:             "show me vegetarian dishes",
			expectVegetarian: boolPtr(true),
			expectedFilter:   "vegetarian",
		},
		{
			name:           "vegan",
			text:           "any vegan options",
			expectVegan:    boolPtr(true),
			expectedFilter: "vegan",
		},
		{
			name:             "vegan implies vegetarian flag too",
			text:             "vegan and vegetarian food",
			expectVegetarian: boolPtr(true),
			expectVegan:      boolPtr(true),
			expectedFilter:   "vegan",
		},
		{
			name:             "non veg",
			text:             "i want non-veg food",
			expectVegetarian: boolPtr(false),
			expectedFilter:   "non-vegetarian",
		},
		{
			name:             "meat implies non veg",
			text:             "something with meat",
			expectVegetarian: boolPtr(false),
			expectedFilter:   "non-vegetarian",
		},
		{
			name: "no dietary words",
			text: "show me the menu",
		},
	}

	e := newTestExtractor(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := e.Extract(context.Background(), tt.text)
			assert.Equal(t, tt.expectVegetarian, out.IsVegetarian)
			assert.Equal(t, tt.expectVegan, out.IsVegan)
			assert.Equal(t, tt.expectedFilter, out.DietaryFilter)
		})
	}
}

func TestExtractor_SpiceAndCategory(t *testing.T) {
	e := newTestExtractor(t)

	out := e.Extract(context.Background(), "something spicy from the appetizers")
	assert.Equal(t, models.SpiceHot, out.SpiceLevel)
	assert.Equal(t, models.CategoryAppetizer, out.Category)

	out = e.Extract(context.Background(), "mild desserts please")
	assert.Equal(t, models.SpiceMild, out.SpiceLevel)
	assert.Equal(t, models.CategoryDessert, out.Category)

	// "starter" and "drink" normalize onto the canonical categories.
	out = e.Extract(context.Background(), "starters")
	assert.Equal(t, models.CategoryAppetizer, out.Category)

	out = e.Extract(context.Background(), "cold drinks")
	assert.Equal(t, models.CategoryBeverage, out.Category)
}

func TestExtractor_PriceBounds(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		expectedMin  *int
		expectedMax  *int
		minInclusive bool
		maxInclusive bool
	}{
		{
			name:         "under is exclusive and pre-adjusted",
			text:         "items under 300",
			expectedMax:  intPtr(299),
			maxInclusive: false,
		},
		{
			name:         "or less is inclusive",
			text:         "dishes 300 or less",
			expectedMax:  intPtr(300),
			maxInclusive: true,
		},
		{
			name:         "up to is inclusive",
			text:         "anything up to 250",
			expectedMax:  intPtr(250),
			maxInclusive: true,
		},
		{
			name:         "above is exclusive and pre-adjusted",
			text:         "food above 200",
			expectedMin:  intPtr(201),
			minInclusive: false,
		},
		{
			name:         "at least is inclusive",
			text:         "at least 150 rupees",
			expectedMin:  intPtr(150),
			minInclusive: true,
		},
		{
			name:         "between sets both bounds inclusive",
			text:         "between 100 and 300",
			expectedMin:  intPtr(100),
			expectedMax:  intPtr(300),
			minInclusive: true,
			maxInclusive: true,
		},
		{
			name:         "bare number with cheaper-than hint",
			text:         "something less pricey, 200 maybe",
			expectedMax:  intPtr(199),
			maxInclusive: false,
		},
		{
			name: "bare number without hint is ignored",
			text: "table for 4 please",
		},
	}

	e := newTestExtractor(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := e.Extract(context.Background(), tt.text)
			assert.Equal(t, tt.expectedMin, out.MinPrice)
			assert.Equal(t, tt.expectedMax, out.MaxPrice)
			assert.Equal(t, tt.minInclusive, out.MinInclusive)
			assert.Equal(t, tt.maxInclusive, out.MaxInclusive)
		})
	}
}

func TestExtractor_PricePreference(t *testing.T) {
	e := newTestExtractor(t)

	out := e.Extract(context.Background(), "show me cheap dishes")
	assert.Equal(t, "low", out.PricePreference)

	out = e.Extract(context.Background(), "your premium dishes")
	assert.Equal(t, "high", out.PricePreference)

	out = e.Extract(context.Background(), "show me dishes")
	assert.Empty(t, out.PricePreference)
}

func TestExtractor_Candidates(t *testing.T) {
	e := newTestExtractor(t)

	out := e.Extract(context.Background(), "how much is the chicken biryani")
	require.NotEmpty(t, out.CandidateItems)
	assert.Contains(t, out.CandidateItems, "chicken")
	assert.Contains(t, out.CandidateItems, "biryani")

	assert.True(t, e.HasCandidateItem(context.Background(), "paneer tikka price"))
	assert.False(t, e.HasCandidateItem(context.Background(), "what are your opening hours"))
}

func TestExtractor_PhraseBackendUnion(t *testing.T) {
	e := newTestExtractor(t, WithPhraseExtractor(&stubPhrases{
		phrases: []string{"chicken", "house special"},
	}))

	out := e.Extract(context.Background(), "the chicken house special")
	// Lexicon hit plus the backend phrase, deduplicated.
	assert.Equal(t, []string{"chicken", "house special"}, out.CandidateItems)
}

func TestExtractor_PhraseBackendFailureDegrades(t *testing.T) {
	e := newTestExtractor(t, WithPhraseExtractor(&stubPhrases{
		err: errors.New("backend down"),
	}))

	out := e.Extract(context.Background(), "chicken biryani")
	assert.Equal(t, []string{"biryani", "chicken"}, out.CandidateItems)
}
