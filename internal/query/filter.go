// internal/query/filter.go
package query

import (
	"sort"

	"dinebot/internal/models"
)

// ApplyDietary narrows items by dietary constraint and spice level. The
// dietary branches are mutually exclusive with fixed priority: vegan beats
// vegetarian beats non-veg, so "vegan and vegetarian" filters to vegan
// only. Spice is an exact match applied after the dietary branch.
func ApplyDietary(items []models.MenuItem, e models.EntitySet) []models.MenuItem {
	out := items

	switch {
	case e.IsVegan != nil && *e.IsVegan:
		out = keep(out, func(it models.MenuItem) bool { return it.IsVegan })
	case e.IsVegetarian != nil && *e.IsVegetarian:
		out = keep(out, func(it models.MenuItem) bool { return it.IsVegetarian })
	case e.IsVegetarian != nil && !*e.IsVegetarian:
		out = keep(out, func(it models.MenuItem) bool { return !it.IsVegetarian })
	}

	if e.SpiceLevel != "" {
		out = keep(out, func(it models.MenuItem) bool { return it.SpiceLevel == e.SpiceLevel })
	}

	return out
}

// ApplyPrice narrows items by the numeric bounds and, last, by the
// relative price preference. Bounds are always non-strict; strict user
// phrasing was already folded into the numbers at extraction time. The
// preference splits the surviving items at their median price, so "cheap
// desserts" means the cheaper half of the desserts, not of the whole menu.
func ApplyPrice(items []models.MenuItem, e models.EntitySet) []models.MenuItem {
	out := items

	if e.MinPrice != nil {
		out = keep(out, func(it models.MenuItem) bool { return it.Price >= *e.MinPrice })
	}
	if e.MaxPrice != nil {
		out = keep(out, func(it models.MenuItem) bool { return it.Price <= *e.MaxPrice })
	}

	if e.PricePreference != "" && len(out) > 0 {
		median := medianPrice(out)
		switch e.PricePreference {
		case "low":
			out = keep(out, func(it models.MenuItem) bool { return it.Price <= median })
		case "high":
			out = keep(out, func(it models.MenuItem) bool { return it.Price >= median })
		}
	}

	return out
}

// Apply runs the full filter chain: category, dietary and spice, then price.
func Apply(items []models.MenuItem, e models.EntitySet) []models.MenuItem {
	out := items
	if e.Category != "" {
		out = keep(out, func(it models.MenuItem) bool { return it.Category == e.Category })
	}
	out = ApplyDietary(out, e)
	out = ApplyPrice(out, e)
	return out
}

// medianPrice is the upper-median of the item prices.
func medianPrice(items []models.MenuItem) int {
	prices := make([]int, len(items))
	for i, it := range items {
		prices[i] = it.Price
	}
	sort.Ints(prices)
	return prices[len(prices)/2]
}

func keep(items []models.MenuItem, pred func(models.MenuItem) bool) []models.MenuItem {
	out := make([]models.MenuItem, 0, len(items))
	for _, it := range items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}

// PriceStats summarizes the price spread of a set of items.
func PriceStats(items []models.MenuItem) models.PriceStats {
	if len(items) == 0 {
		return models.PriceStats{}
	}
	stats := models.PriceStats{
		Min:   items[0].Price,
		Max:   items[0].Price,
		Count: len(items),
	}
	sum := 0
	for _, it := range items {
		if it.Price < stats.Min {
			stats.Min = it.Price
		}
		if it.Price > stats.Max {
			stats.Max = it.Price
		}
		sum += it.Price
	}
	stats.Average = float64(sum) / float64(len(items))
	return stats
}
