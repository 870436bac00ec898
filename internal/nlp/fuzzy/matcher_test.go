// internal/nlp/fuzzy/matcher_test.go
package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinebot/internal/models"
)

func menuFixture() []models.MenuItem {
	return []models.MenuItem{
		{Name: "Margherita Pizza", Price: 299},
		{Name: "Chicken Biryani", Price: 349},
		{Name: "Paneer Tikka Masala", Price: 279},
		{Name: "Butter Chicken", Price: 329},
		{Name: "Mango Lassi", Price: 119},
	}
}

func TestCleanQuery(t *testing.T) {
	tests := []struct {
		text     string
		expected string
	}{
		{"paneer tikka price", "paneer tikka"},
		{"how much is the biryani", "is the biryani"},
		{"pizza cost in rupees", "pizza in"},
		{"chicken biryani", "chicken biryani"},
		{"   price   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanQuery(tt.text))
		})
	}
}

func TestMatcher_BestMatch(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		expectedItem string
	}{
		{
			name:         "exact name",
			query:        "chicken biryani",
			expectedItem: "Chicken Biryani",
		},
		{
			name:         "misspelled",
			query:        "chiken biriyani",
			expectedItem: "Chicken Biryani",
		},
		{
			name:         "partial name",
			query:        "margherita",
			expectedItem: "Margherita Pizza",
		},
		{
			name:         "word order reversed",
			query:        "biryani chicken",
			expectedItem: "Chicken Biryani",
		},
		{
			name:         "price noise stripped",
			query:        "mango lassi price",
			expectedItem: "Mango Lassi",
		},
	}

	m := NewMatcher(DefaultCutoff)
	items := menuFixture()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := m.BestMatch(tt.query, items)
			require.NotNil(t, res)
			assert.Equal(t, tt.expectedItem, res.Item.Name)
			assert.GreaterOrEqual(t, res.Confidence, DefaultCutoff)
		})
	}
}

func TestMatcher_BestMatchBelowCutoff(t *testing.T) {
	m := NewMatcher(DefaultCutoff)
	assert.Nil(t, m.BestMatch("quarterly report", menuFixture()))
}

func TestMatcher_BestMatchEmptyAfterCleaning(t *testing.T) {
	m := NewMatcher(DefaultCutoff)
	assert.Nil(t, m.BestMatch("price cost", menuFixture()))
}

func TestMatcher_TieKeepsEarlierItem(t *testing.T) {
	// Identical names score identically; the first one in menu order wins.
	items := []models.MenuItem{
		{Name: "Veg Thali", Price: 199},
		{Name: "Veg Thali", Price: 249},
	}
	m := NewMatcher(DefaultCutoff)
	res := m.BestMatch("veg thali", items)
	require.NotNil(t, res)
	assert.Equal(t, 199, res.Item.Price)
}

func TestMatcher_Rank(t *testing.T) {
	m := NewMatcher(DefaultCutoff)
	ranked := m.Rank("chicken", menuFixture())
	require.NotEmpty(t, ranked)

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Confidence, ranked[i].Confidence)
	}
	// Both chicken dishes clear the cutoff.
	names := make([]string, 0, len(ranked))
	for _, r := range ranked {
		names = append(names, r.Item.Name)
	}
	assert.Contains(t, names, "Chicken Biryani")
	assert.Contains(t, names, "Butter Chicken")
}

func TestNewMatcher_DefaultsCutoff(t *testing.T) {
	m := NewMatcher(0)
	assert.Equal(t, DefaultCutoff, m.cutoff)
}
