// internal/models/query.go
package models

// Intent is the closed set of query intents.
type Intent string

const (
	IntentGreeting        Intent = "greeting"
	IntentMenuList        Intent = "menu_list"
	IntentItemDetails     Intent = "item_details"
	IntentItemPriceQuery  Intent = "item_price_query"
	IntentPriceRangeQuery Intent = "price_range_query"
	IntentCategoryQuery   Intent = "category_query"
	IntentRestaurantInfo  Intent = "restaurant_info"
	IntentUnknown         Intent = "unknown"
)

// IntentResult pairs an intent with the classifier's confidence. Confidence
// is informational; it never gates routing.
type IntentResult struct {
	Intent     Intent  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// EntitySet holds everything the extractor pulled out of one query. All
// fields are optional; pointer fields distinguish "absent" from zero values.
//
// MinPrice/MaxPrice are pre-adjusted at extraction time so that downstream
// comparisons are always non-strict (price >= MinPrice, price <= MaxPrice).
// The inclusivity flags record the user's original phrasing and are consulted
// only when rendering the bound back to text, never when filtering.
type EntitySet struct {
	Category        Category   `json:"category,omitempty"`
	IsVegetarian    *bool      `json:"is_vegetarian,omitempty"`
	IsVegan         *bool      `json:"is_vegan,omitempty"`
	DietaryFilter   string     `json:"dietary_filter,omitempty"` // vegetarian | vegan | non-vegetarian
	SpiceLevel      SpiceLevel `json:"spice_level,omitempty"`
	MinPrice        *int       `json:"min_price,omitempty"`
	MaxPrice        *int       `json:"max_price,omitempty"`
	MinInclusive    bool       `json:"min_inclusive,omitempty"`
	MaxInclusive    bool       `json:"max_inclusive,omitempty"`
	PricePreference string     `json:"price_preference,omitempty"` // low | high
	CandidateItems  []string   `json:"candidate_items,omitempty"`
}

// HasPriceBound reports whether either absolute price bound is set.
func (e *EntitySet) HasPriceBound() bool {
	return e.MinPrice != nil || e.MaxPrice != nil
}

// MatchResult is a fuzzy-resolver hit: the item plus a confidence in [0,1].
type MatchResult struct {
	Item       MenuItem `json:"item"`
	Confidence float64  `json:"confidence"`
}

// PriceStats is the payload of a price_range_query response.
type PriceStats struct {
	Min     int     `json:"min"`
	Max     int     `json:"max"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// QueryResult is the full outcome of one chat query.
type QueryResult struct {
	Intent          Intent      `json:"intent"`
	Confidence      float64     `json:"confidence"`
	Entities        EntitySet   `json:"entities"`
	HasSpecificItem bool        `json:"has_specific_item"`
	Response        string      `json:"response"`
	Data            interface{} `json:"data,omitempty"`
	Count           int         `json:"count,omitempty"`
	Suggestions     []string    `json:"suggestions,omitempty"`
	MatchedItem     string      `json:"matched_item,omitempty"`
	MatchConfidence float64     `json:"match_confidence,omitempty"`
}
