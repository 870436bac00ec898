// internal/models/menu.go
package models

// Category is the closed set of menu categories.
type Category string

const (
	CategoryAppetizer  Category = "appetizer"
	CategoryMainCourse Category = "main course"
	CategoryDessert    Category = "dessert"
	CategoryBeverage   Category = "beverage"
)

// SpiceLevel is the closed set of spice levels.
type SpiceLevel string

const (
	SpiceNone SpiceLevel = "none"
	SpiceMild SpiceLevel = "mild"
	SpiceHot  SpiceLevel = "hot"
)

// MenuItem is one catalog entry. The catalog owns these; the query core
// treats them as read-only. Price is in whole rupees.
type MenuItem struct {
	Name            string     `json:"name"`
	Price           int        `json:"price"`
	Category        Category   `json:"category"`
	IsVegetarian    bool       `json:"is_vegetarian"`
	IsVegan         bool       `json:"is_vegan"`
	SpiceLevel      SpiceLevel `json:"spice_level"`
	Description     string     `json:"description"`
	Ingredients     []string   `json:"ingredients"`
	PreparationTime int        `json:"preparation_time"` // minutes
}

// MenuItemView is the reduced item record returned in list responses.
type MenuItemView struct {
	Name        string     `json:"name"`
	Price       int        `json:"price"`
	Category    Category   `json:"category"`
	Description string     `json:"description"`
	Vegetarian  bool       `json:"vegetarian"`
	Vegan       bool       `json:"vegan"`
	SpiceLevel  SpiceLevel `json:"spice_level"`
}

// View converts a MenuItem to its list representation.
func (m MenuItem) View() MenuItemView {
	return MenuItemView{
		Name:        m.Name,
		Price:       m.Price,
		Category:    m.Category,
		Description: m.Description,
		Vegetarian:  m.IsVegetarian,
		Vegan:       m.IsVegan,
		SpiceLevel:  m.SpiceLevel,
	}
}

// ViewList converts a slice of items for response payloads.
func ViewList(items []MenuItem) []MenuItemView {
	views := make([]MenuItemView, 0, len(items))
	for _, item := range items {
		views = append(views, item.View())
	}
	return views
}

// NormalizeCategory maps user-facing synonyms onto the closed category set.
// "drink" folds into beverage, "starter" into appetizer. The empty string
// and unknown values pass through unchanged.
func NormalizeCategory(raw string) Category {
	switch raw {
	case "drink":
		return CategoryBeverage
	case "starter":
		return CategoryAppetizer
	default:
		return Category(raw)
	}
}
