// internal/query/format.go
package query

import (
	"fmt"
	"strings"

	"dinebot/internal/models"
)

// priceFilterDescription renders the active price bounds the way the user
// phrased them. Pre-adjusted strict bounds are shifted back by one for
// display, so "under 300" round-trips as "under ₹300".
func priceFilterDescription(e models.EntitySet) string {
	var parts []string

	if e.MaxPrice != nil {
		if e.MaxInclusive {
			parts = append(parts, fmt.Sprintf("₹%d or less", *e.MaxPrice))
		} else {
			parts = append(parts, fmt.Sprintf("under ₹%d", *e.MaxPrice+1))
		}
	}
	if e.MinPrice != nil {
		if e.MinInclusive {
			parts = append(parts, fmt.Sprintf("₹%d or more", *e.MinPrice))
		} else {
			parts = append(parts, fmt.Sprintf("above ₹%d", *e.MinPrice-1))
		}
	}

	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(priced %s)", strings.Join(parts, " and "))
}

// describeAppliedFilters summarizes every active filter for empty-result
// messages.
func describeAppliedFilters(e models.EntitySet) string {
	var filters []string

	if e.Category != "" {
		filters = append(filters, string(e.Category))
	}
	if e.DietaryFilter != "" {
		filters = append(filters, e.DietaryFilter)
	}
	if e.HasPriceBound() {
		filters = append(filters, priceFilterDescription(e))
	}

	if len(filters) == 0 {
		return ""
	}
	return fmt.Sprintf(" matching: %s", strings.Join(filters, ", "))
}

func dietTag(item models.MenuItem) string {
	if item.IsVegetarian {
		return "🥬 Vegetarian"
	}
	return "🍖 Non-Vegetarian"
}

// formatItemDetails renders the full item card.
func formatItemDetails(item models.MenuItem) string {
	veganTag := ""
	if item.IsVegan {
		veganTag = " | 🌱 Vegan"
	}
	spiceTag := ""
	if item.SpiceLevel != models.SpiceNone {
		spiceTag = fmt.Sprintf(" | 🌶️ %s", titleCase(string(item.SpiceLevel)))
	}

	return fmt.Sprintf(
		"🍽️ %s - ₹%d\n%s%s%s\n\n📝 %s\n\n🥘 Ingredients: %s\n⏱️ Prep time: ~%d minutes",
		item.Name, item.Price,
		dietTag(item), veganTag, spiceTag,
		item.Description,
		strings.Join(item.Ingredients, ", "),
		item.PreparationTime,
	)
}

// formatItemPrice renders the compact price card.
func formatItemPrice(item models.MenuItem) string {
	return fmt.Sprintf(
		"💰 %s costs ₹%d\n\n%s | %s\n📝 %s",
		item.Name, item.Price,
		dietTag(item), item.Category,
		item.Description,
	)
}

func formatPriceStats(stats models.PriceStats, e models.EntitySet) string {
	categoryText := ""
	if e.Category != "" {
		categoryText = fmt.Sprintf(" for %s", e.Category)
	}
	dietText := ""
	if e.DietaryFilter != "" {
		dietText = fmt.Sprintf(" (%s)", e.DietaryFilter)
	}

	return fmt.Sprintf(
		"💰 Our prices%s%s:\n\n• Lowest: ₹%d\n• Highest: ₹%d\n• Average: ₹%.0f\n\nTotal items: %d",
		categoryText, dietText,
		stats.Min, stats.Max, stats.Average, stats.Count,
	)
}

func formatRestaurantInfo(infoType string, r models.RestaurantInfo) string {
	switch infoType {
	case "hours":
		return fmt.Sprintf(
			"⏰ Opening Hours:\nWeekdays: %s\nWeekends: %s\nClosed on: %s",
			r.OpeningHours.Weekday, r.OpeningHours.Weekend, r.OpeningHours.Closed,
		)
	case "address":
		return fmt.Sprintf("📍 Location:\n%s\n%s", r.Name, r.Address)
	case "contact":
		return fmt.Sprintf("📞 Contact Us:\nPhone: %s\nEmail: %s", r.Phone, r.Email)
	default:
		return fmt.Sprintf(
			"🍽️ %s\n📍 %s\n📞 %s\n⏰ Open %s (Closed %s)\n🍴 Cuisines: %s\n💺 Seating: %d people\n✨ Facilities: %s",
			r.Name, r.Address, r.Phone,
			r.OpeningHours.Weekday, r.OpeningHours.Closed,
			strings.Join(r.CuisineTypes, ", "),
			r.SeatingCapacity,
			strings.Join(r.Facilities, ", "),
		)
	}
}

// titleCase capitalizes each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
