// internal/query/orchestrator_test.go
package query

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinebot/internal/catalog"
	"dinebot/internal/common/logger"
	"dinebot/internal/models"
	"dinebot/internal/nlp/entity"
)

func orchestratorFixture() []models.MenuItem {
	return []models.MenuItem{
		{Name: "Margherita Pizza", Price: 299, Category: models.CategoryMainCourse, IsVegetarian: true, SpiceLevel: models.SpiceNone,
			Description: "Classic pizza with tomato and mozzarella", Ingredients: []string{"dough", "tomato", "mozzarella"}, PreparationTime: 20},
		{Name: "Chicken Biryani", Price: 349, Category: models.CategoryMainCourse, SpiceLevel: models.SpiceHot,
			Description: "Fragrant rice layered with spiced chicken", Ingredients: []string{"rice", "chicken"}, PreparationTime: 45},
		{Name: "Paneer Tikka Masala", Price: 279, Category: models.CategoryMainCourse, IsVegetarian: true, SpiceLevel: models.SpiceMild,
			Description: "Grilled paneer in a rich tomato gravy", Ingredients: []string{"paneer", "tomato"}, PreparationTime: 30},
		{Name: "Butter Chicken", Price: 329, Category: models.CategoryMainCourse, SpiceLevel: models.SpiceMild,
			Description: "Tandoori chicken in a buttery tomato sauce", Ingredients: []string{"chicken", "butter"}, PreparationTime: 35},
		{Name: "Chicken Tikka", Price: 249, Category: models.CategoryAppetizer, SpiceLevel: models.SpiceHot,
			Description: "Char-grilled chicken chunks", Ingredients: []string{"chicken", "yogurt"}, PreparationTime: 25},
		{Name: "Chicken Wings", Price: 229, Category: models.CategoryAppetizer, SpiceLevel: models.SpiceHot,
			Description: "Crispy wings in a fiery glaze", Ingredients: []string{"chicken wings", "chili"}, PreparationTime: 20},
		{Name: "Spring Rolls", Price: 149, Category: models.CategoryAppetizer, IsVegetarian: true, IsVegan: true, SpiceLevel: models.SpiceMild,
			Description: "Golden rolls stuffed with vegetables", Ingredients: []string{"wrappers", "cabbage"}, PreparationTime: 15},
		{Name: "Fruit Salad", Price: 129, Category: models.CategoryDessert, IsVegetarian: true, IsVegan: true, SpiceLevel: models.SpiceNone,
			Description: "Seasonal fruits with mint", Ingredients: []string{"apple", "banana"}, PreparationTime: 8},
		{Name: "Gulab Jamun", Price: 99, Category: models.CategoryDessert, IsVegetarian: true, SpiceLevel: models.SpiceNone,
			Description: "Milk dumplings in rose syrup", Ingredients: []string{"khoya", "syrup"}, PreparationTime: 12},
		{Name: "Mango Lassi", Price: 119, Category: models.CategoryBeverage, IsVegetarian: true, SpiceLevel: models.SpiceNone,
			Description: "Yogurt smoothie with mango", Ingredients: []string{"yogurt", "mango"}, PreparationTime: 5},
	}
}

func testRestaurant() models.RestaurantInfo {
	return models.RestaurantInfo{
		Name:    "The Golden Spoon",
		Address: "42 MG Road, Bengaluru",
		Phone:   "+91 80 4000 1234",
		Email:   "hello@goldenspoon.example",
		OpeningHours: models.OpeningHours{
			Weekday: "11:00 AM - 10:00 PM",
			Weekend: "10:00 AM - 11:00 PM",
			Closed:  "Monday",
		},
		CuisineTypes:    []string{"Indian", "Continental"},
		SeatingCapacity: 60,
		Facilities:      []string{"WiFi", "Parking"},
	}
}

func newTestOrchestrator(t *testing.T, store catalog.Store, opts ...Option) *Orchestrator {
	log := logger.NewTestLogger(t)
	cfg := &Config{Restaurant: testRestaurant()}
	opts = append([]Option{WithRandom(func(int) int { return 0 })}, opts...)
	return NewOrchestrator(store, entity.New(log), cfg, log, opts...)
}

func TestOrchestrator_Greeting(t *testing.T) {
	store := catalog.NewMemoryStore(orchestratorFixture())
	o := newTestOrchestrator(t, store)

	res, err := o.Handle(context.Background(), "Hello there!")
	require.NoError(t, err)
	assert.Equal(t, models.IntentGreeting, res.Intent)
	assert.InDelta(t, 0.9, res.Confidence, 0.001)
	assert.Equal(t, DefaultGreetings[0], res.Response)
	assert.Len(t, res.Suggestions, 3)
}

func TestOrchestrator_GreetingUsesInjectedPicker(t *testing.T) {
	store := catalog.NewMemoryStore(orchestratorFixture())
	o := newTestOrchestrator(t, store, WithRandom(func(int) int { return 2 }))

	res, err := o.Handle(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, DefaultGreetings[2], res.Response)
}

func TestOrchestrator_MenuList(t *testing.T) {
	store := catalog.NewMemoryStore(orchestratorFixture())
	o := newTestOrchestrator(t, store)

	res, err := o.Handle(context.Background(), "show me the menu")
	require.NoError(t, err)
	assert.Equal(t, models.IntentMenuList, res.Intent)
	assert.Equal(t, "Here's our complete menu:", res.Response)
	assert.Equal(t, 10, res.Count)

	views, ok := res.Data.([]models.MenuItemView)
	require.True(t, ok)
	assert.Len(t, views, 10)
}

func TestOrchestrator_MenuListVegetarian(t *testing.T) {
	store := catalog.NewMemoryStore(orchestratorFixture())
	o := newTestOrchestrator(t, store)

	res, err := o.Handle(context.Background(), "show me veg dishes")
	require.NoError(t, err)
	assert.Equal(t, models.IntentMenuList, res.Intent)
	assert.Equal(t, "Here's our complete menu: (Vegetarian options)", res.Response)
	assert.Equal(t, 6, res.Count)
}

func TestOrchestrator_MenuListPriceBound(t *testing.T) {
	store := catalog.NewMemoryStore(orchestratorFixture())
	o := newTestOrchestrator(t, store)

	res, err := o.Handle(context.Background(), "show me dishes under 300")
	require.NoError(t, err)
	assert.Equal(t, models.IntentMenuList, res.Intent)
	// The pre-adjusted bound renders back as the user phrased it.
	assert.Equal(t, "Here's our complete menu: (priced under ₹300)", res.Response)
	assert.Equal(t, 8, res.Count)
	require.NotNil(t, res.Entities.MaxPrice)
	assert.Equal(t, 299, *res.Entities.MaxPrice)
	assert.False(t, res.Entities.MaxInclusive)
}

func TestOrchestrator_ItemPrice(t *testing.T) {
	store := catalog.NewMemoryStore(orchestratorFixture())
	o := newTestOrchestrator(t, store)

	res, err := o.Handle(context.Background(), "how much is the chicken biryani")
	require.NoError(t, err)
	assert.Equal(t, models.IntentItemPriceQuery, res.Intent)
	assert.True(t, res.HasSpecificItem)
	assert.Equal(t, "Chicken Biryani", res.MatchedItem)
	assert.Contains(t, res.Response, "💰 Chicken Biryani costs ₹349")

	data, ok := res.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 349, data["price"])
}

func TestOrchestrator_ItemPriceNotFound(t *testing.T) {
	store := catalog.NewMemoryStore(orchestratorFixture())
	o := newTestOrchestrator(t, store)

	// "rice" is a food word but matches no menu item.
	res, err := o.Handle(context.Background(), "how much for rice")
	require.NoError(t, err)
	assert.Equal(t, models.IntentItemPriceQuery, res.Intent)
	assert.Contains(t, res.Response, "couldn't find that specific item")
	assert.NotEmpty(t, res.Suggestions)
}

func TestOrchestrator_PriceRange(t *testing.T) {
	store := catalog.NewMemoryStore(orchestratorFixture())
	o := newTestOrchestrator(t, store)

	res, err := o.Handle(context.Background(), "what are your menu prices")
	require.NoError(t, err)
	assert.Equal(t, models.IntentPriceRangeQuery, res.Intent)

	stats, ok := res.Data.(models.PriceStats)
	require.True(t, ok)
	assert.Equal(t, 99, stats.Min)
	assert.Equal(t, 349, stats.Max)
	assert.Equal(t, 10, stats.Count)
	assert.Contains(t, res.Response, "Lowest: ₹99")
	assert.Contains(t, res.Response, "Highest: ₹349")
}

func TestOrchestrator_ItemDetails(t *testing.T) {
	store := catalog.NewMemoryStore(orchestratorFixture())
	o := newTestOrchestrator(t, store)

	res, err := o.Handle(context.Background(), "tell me about paneer tikka masala")
	require.NoError(t, err)
	assert.Equal(t, models.IntentItemDetails, res.Intent)
	assert.Equal(t, "Paneer Tikka Masala", res.MatchedItem)
	assert.Contains(t, res.Response, "🍽️ Paneer Tikka Masala - ₹279")
	assert.Contains(t, res.Response, "🥬 Vegetarian")
	assert.Contains(t, res.Response, "Prep time: ~30 minutes")
}

func TestOrchestrator_KeywordListing(t *testing.T) {
	store := catalog.NewMemoryStore(orchestratorFixture())
	o := newTestOrchestrator(t, store)

	res, err := o.Handle(context.Background(), "show me details of chicken dishes")
	require.NoError(t, err)
	assert.Equal(t, models.IntentItemDetails, res.Intent)
	assert.Equal(t, "Here are items with chicken:", res.Response)
	assert.Equal(t, 4, res.Count)
}

func TestOrchestrator_CategoryListing(t *testing.T) {
	store := catalog.NewMemoryStore(orchestratorFixture())
	o := newTestOrchestrator(t, store)

	res, err := o.Handle(context.Background(), "show me the category list")
	require.NoError(t, err)
	assert.Equal(t, models.IntentCategoryQuery, res.Intent)
	assert.Equal(t, "We have these categories: main course, appetizer, dessert, beverage. Which would you like to explore?", res.Response)
}

func TestOrchestrator_CategoryItems(t *testing.T) {
	store := catalog.NewMemoryStore(orchestratorFixture())
	o := newTestOrchestrator(t, store)

	res, err := o.Handle(context.Background(), "show me desserts")
	require.NoError(t, err)
	assert.Equal(t, models.IntentCategoryQuery, res.Intent)
	assert.True(t, strings.HasPrefix(res.Response, "Here are our Dessert items"))
	assert.Equal(t, 2, res.Count)
}

func TestOrchestrator_CategoryEmptyAfterFilters(t *testing.T) {
	store := catalog.NewMemoryStore(orchestratorFixture())
	o := newTestOrchestrator(t, store)

	res, err := o.Handle(context.Background(), "show me vegan main course")
	require.NoError(t, err)
	assert.Equal(t, models.IntentCategoryQuery, res.Intent)
	assert.Equal(t, "Sorry, I couldn't find any main course items matching: main course, vegan.", res.Response)
	require.NotEmpty(t, res.Suggestions)
	assert.Equal(t, "Show all main courses", res.Suggestions[0])
}

func TestOrchestrator_RestaurantInfoHours(t *testing.T) {
	store := catalog.NewMemoryStore(orchestratorFixture())
	o := newTestOrchestrator(t, store)

	res, err := o.Handle(context.Background(), "what are your timings")
	require.NoError(t, err)
	assert.Equal(t, models.IntentRestaurantInfo, res.Intent)
	assert.Contains(t, res.Response, "⏰ Opening Hours:")
	assert.Contains(t, res.Response, "Weekdays: 11:00 AM - 10:00 PM")
	assert.Contains(t, res.Response, "Closed on: Monday")
	assert.Equal(t, testRestaurant(), res.Data)
}

func TestOrchestrator_Unknown(t *testing.T) {
	store := catalog.NewMemoryStore(orchestratorFixture())
	o := newTestOrchestrator(t, store)

	res, err := o.Handle(context.Background(), "can you walk my dog tomorrow morning please")
	require.NoError(t, err)
	assert.Equal(t, models.IntentUnknown, res.Intent)
	assert.InDelta(t, 0.3, res.Confidence, 0.001)
	assert.Equal(t, DefaultFallbacks[0], res.Response)
	assert.Len(t, res.Suggestions, 3)
}

// stubStore exercises branches the in-memory fixture cannot reach.
type stubStore struct {
	all        []models.MenuItem
	allErr     error
	searchHits []models.MenuItem
}

func (s *stubStore) GetAllItems(context.Context) ([]models.MenuItem, error) {
	return s.all, s.allErr
}

func (s *stubStore) GetItemsByCategory(context.Context, models.Category) ([]models.MenuItem, error) {
	return s.all, s.allErr
}

func (s *stubStore) SearchItems(context.Context, string) ([]models.MenuItem, error) {
	return s.searchHits, nil
}

func (s *stubStore) GetItemByName(context.Context, string) (*models.MenuItem, error) {
	return nil, catalog.ErrNotFound
}

func (s *stubStore) GetCategories(context.Context) ([]models.Category, error) {
	return nil, nil
}

func TestOrchestrator_ItemPriceDisambiguation(t *testing.T) {
	store := &stubStore{
		searchHits: []models.MenuItem{
			{Name: "Chicken Biryani", Price: 349},
			{Name: "Butter Chicken", Price: 329},
			{Name: "Chicken Tikka", Price: 249},
			{Name: "Chicken Wings", Price: 229},
		},
	}
	o := newTestOrchestrator(t, store)

	res, err := o.Handle(context.Background(), "chicken price")
	require.NoError(t, err)
	assert.Equal(t, models.IntentItemPriceQuery, res.Intent)
	assert.Contains(t, res.Response, "I found multiple items. Which one did you mean?")
	assert.Contains(t, res.Response, "Chicken Biryani (₹349)")
	// The clarification list is capped at three options.
	assert.NotContains(t, res.Response, "Chicken Wings")
	views, ok := res.Data.([]models.MenuItemView)
	require.True(t, ok)
	assert.Len(t, views, 3)
}

func TestOrchestrator_ItemPriceSingleSearchHit(t *testing.T) {
	store := &stubStore{
		searchHits: []models.MenuItem{{Name: "Chicken Biryani", Price: 349}},
	}
	o := newTestOrchestrator(t, store)

	res, err := o.Handle(context.Background(), "chicken price")
	require.NoError(t, err)
	assert.Equal(t, "Chicken Biryani costs ₹349.", res.Response)
}

func TestOrchestrator_StoreErrorIsWrapped(t *testing.T) {
	store := &stubStore{allErr: errors.New("connection refused")}
	o := newTestOrchestrator(t, store)

	_, err := o.Handle(context.Background(), "show me the menu")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "handling menu_list")
	assert.Contains(t, err.Error(), "connection refused")
}
