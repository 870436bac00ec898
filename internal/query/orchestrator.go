// internal/query/orchestrator.go

// Package query routes classified intents to their handlers and produces
// chat responses. Filtering semantics live in filter.go, response text in
// format.go.
package query

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"dinebot/internal/catalog"
	"dinebot/internal/common/logger"
	"dinebot/internal/models"
	"dinebot/internal/nlp/entity"
	"dinebot/internal/nlp/fuzzy"
	"dinebot/internal/nlp/intent"
)

const (
	// maxPriceDisambiguation caps the clarification list for price queries.
	maxPriceDisambiguation = 3
	// maxDetailDisambiguation caps the clarification list for detail queries.
	maxDetailDisambiguation = 5
)

// DefaultGreetings are served round-robin-randomly on greeting intent.
var DefaultGreetings = []string{
	"Hello! Welcome to The Golden Spoon. How can I help you today?",
	"Hi there! I'm DineBot, your virtual assistant. Ask me about our menu!",
	"Greetings! Looking for something delicious? I can help you explore our menu.",
}

// DefaultFallbacks are served on unknown intent.
var DefaultFallbacks = []string{
	"I'm not sure I understood that. You can ask me about our menu, prices, or timings.",
	"Sorry, I didn't catch that. Try something like 'show me the menu' or 'how much is pizza?'.",
	"Hmm, I couldn't work that one out. Ask me about our dishes, prices, or the restaurant.",
}

// reKeywordListing detects "show/list <protein>" phrasings that should
// return a filtered list instead of a single item card.
var reKeywordListing = regexp.MustCompile(`\b(show|list|display).*\b(chicken|fish|meat|paneer|veg)\b`)

// listingKeywords are tried in order against the query when the listing
// shape matches.
var listingKeywords = []string{"chicken", "fish", "paneer"}

// Config holds the orchestrator tunables.
type Config struct {
	FuzzyCutoff float64
	Greetings   []string
	Fallbacks   []string
	Restaurant  models.RestaurantInfo
}

type handlerFunc func(ctx context.Context, text string, e models.EntitySet) (*models.QueryResult, error)

// Orchestrator wires the NLP pipeline to the catalog and renders
// responses.
type Orchestrator struct {
	store      catalog.Store
	classifier *intent.Classifier
	extractor  *entity.Extractor
	matcher    *fuzzy.Matcher
	cfg        *Config
	pick       func(n int) int
	logger     logger.Logger
	handlers   map[models.Intent]handlerFunc
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRandom injects the index picker used for greeting and fallback
// selection. Tests pin it to make responses deterministic.
func WithRandom(pick func(n int) int) Option {
	return func(o *Orchestrator) { o.pick = pick }
}

func NewOrchestrator(store catalog.Store, extractor *entity.Extractor, cfg *Config, log logger.Logger, opts ...Option) *Orchestrator {
	if len(cfg.Greetings) == 0 {
		cfg.Greetings = DefaultGreetings
	}
	if len(cfg.Fallbacks) == 0 {
		cfg.Fallbacks = DefaultFallbacks
	}

	o := &Orchestrator{
		store:      store,
		classifier: intent.NewClassifier(extractor),
		extractor:  extractor,
		matcher:    fuzzy.NewMatcher(cfg.FuzzyCutoff),
		cfg:        cfg,
		pick:       rand.Intn,
		logger: log.With(map[string]interface{}{
			"component": "query-orchestrator",
		}),
	}
	for _, opt := range opts {
		opt(o)
	}

	o.handlers = map[models.Intent]handlerFunc{
		models.IntentGreeting:        o.handleGreeting,
		models.IntentMenuList:        o.handleMenuList,
		models.IntentItemDetails:     o.handleItemDetails,
		models.IntentItemPriceQuery:  o.handleItemPrice,
		models.IntentPriceRangeQuery: o.handlePriceRange,
		models.IntentCategoryQuery:   o.handleCategory,
		models.IntentRestaurantInfo:  o.handleRestaurantInfo,
	}
	return o
}

// Handle runs the full pipeline for one user utterance: normalize,
// classify, extract, route, and stamp the intent metadata onto the
// handler's result.
func (o *Orchestrator) Handle(ctx context.Context, userInput string) (*models.QueryResult, error) {
	text := strings.ToLower(strings.TrimSpace(userInput))

	res := o.classifier.Classify(ctx, text)
	entities := o.extractor.Extract(ctx, text)
	hasItem := o.extractor.HasCandidateItem(ctx, text)

	o.logger.Debug("query classified", map[string]interface{}{
		"intent":     string(res.Intent),
		"confidence": res.Confidence,
		"has_item":   hasItem,
	})

	handler, ok := o.handlers[res.Intent]
	if !ok {
		handler = o.handleUnknown
	}

	result, err := handler(ctx, text, entities)
	if err != nil {
		return nil, fmt.Errorf("handling %s: %w", res.Intent, err)
	}

	result.Intent = res.Intent
	result.Confidence = res.Confidence
	result.Entities = entities
	result.HasSpecificItem = hasItem
	return result, nil
}

func (o *Orchestrator) handleGreeting(_ context.Context, _ string, _ models.EntitySet) (*models.QueryResult, error) {
	return &models.QueryResult{
		Response: o.cfg.Greetings[o.pick(len(o.cfg.Greetings))],
		Suggestions: []string{
			"Show me the menu",
			"What are your timings?",
			"Tell me about desserts",
		},
	}, nil
}

func (o *Orchestrator) handleMenuList(ctx context.Context, _ string, e models.EntitySet) (*models.QueryResult, error) {
	var items []models.MenuItem
	var err error
	var response string

	if e.Category != "" {
		items, err = o.store.GetItemsByCategory(ctx, e.Category)
		response = fmt.Sprintf("Here are our %s items:", titleCase(string(e.Category)))
	} else {
		items, err = o.store.GetAllItems(ctx)
		response = "Here's our complete menu:"
	}
	if err != nil {
		return nil, err
	}

	items = ApplyDietary(items, e)
	items = ApplyPrice(items, e)

	if e.DietaryFilter != "" {
		response += fmt.Sprintf(" (%s options)", titleCase(e.DietaryFilter))
	}
	if e.HasPriceBound() {
		response += " " + priceFilterDescription(e)
	}

	if len(items) == 0 {
		return &models.QueryResult{
			Response: fmt.Sprintf("Sorry, I couldn't find any items matching your criteria%s.", describeAppliedFilters(e)),
			Data:     []models.MenuItemView{},
			Suggestions: []string{
				"Show me the full menu",
				"What vegetarian options do you have?",
				"Show me appetizers",
			},
		}, nil
	}

	return &models.QueryResult{
		Response: response,
		Data:     models.ViewList(items),
		Count:    len(items),
	}, nil
}

func (o *Orchestrator) handleItemPrice(ctx context.Context, text string, e models.EntitySet) (*models.QueryResult, error) {
	allItems, err := o.store.GetAllItems(ctx)
	if err != nil {
		return nil, err
	}

	if match := o.matcher.BestMatch(text, allItems); match != nil {
		item := match.Item
		return &models.QueryResult{
			Response: formatItemPrice(item),
			Data: map[string]interface{}{
				"name":          item.Name,
				"price":         item.Price,
				"category":      item.Category,
				"is_vegetarian": item.IsVegetarian,
				"is_vegan":      item.IsVegan,
			},
			MatchedItem:     item.Name,
			MatchConfidence: match.Confidence,
		}, nil
	}

	// Fuzzy match missed: fall back to keyword search over the candidate
	// item phrases.
	for _, candidate := range e.CandidateItems {
		items, err := o.store.SearchItems(ctx, candidate)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			continue
		}
		if len(items) == 1 {
			item := items[0]
			return &models.QueryResult{
				Response: fmt.Sprintf("%s costs ₹%d.", item.Name, item.Price),
				Data: map[string]interface{}{
					"name":     item.Name,
					"price":    item.Price,
					"category": item.Category,
				},
			}, nil
		}

		if len(items) > maxPriceDisambiguation {
			items = items[:maxPriceDisambiguation]
		}
		var labels []string
		for _, it := range items {
			labels = append(labels, fmt.Sprintf("%s (₹%d)", it.Name, it.Price))
		}
		return &models.QueryResult{
			Response: fmt.Sprintf("I found multiple items. Which one did you mean?\n%s", strings.Join(labels, ", ")),
			Data:     models.ViewList(items),
		}, nil
	}

	return &models.QueryResult{
		Response: "I couldn't find that specific item. Could you try rephrasing? Or type 'show menu' to see all items.",
		Suggestions: []string{
			"Show me the menu",
			"How much is pizza?",
			"What are your prices?",
		},
	}, nil
}

func (o *Orchestrator) handlePriceRange(ctx context.Context, _ string, e models.EntitySet) (*models.QueryResult, error) {
	var items []models.MenuItem
	var err error

	if e.Category != "" {
		items, err = o.store.GetItemsByCategory(ctx, e.Category)
	} else {
		items, err = o.store.GetAllItems(ctx)
	}
	if err != nil {
		return nil, err
	}

	items = ApplyDietary(items, e)

	if len(items) == 0 {
		return &models.QueryResult{
			Response:    fmt.Sprintf("I couldn't find any items matching your criteria%s.", describeAppliedFilters(e)),
			Suggestions: []string{"Show me the full menu"},
		}, nil
	}

	stats := PriceStats(items)
	return &models.QueryResult{
		Response: formatPriceStats(stats, e),
		Data:     stats,
	}, nil
}

func (o *Orchestrator) handleItemDetails(ctx context.Context, text string, e models.EntitySet) (*models.QueryResult, error) {
	// "show chicken items" wants a filtered list, not a single card.
	if reKeywordListing.MatchString(text) {
		for _, keyword := range listingKeywords {
			if !strings.Contains(text, keyword) {
				continue
			}
			items, err := o.store.SearchItems(ctx, keyword)
			if err != nil {
				return nil, err
			}
			if len(items) > 0 {
				return &models.QueryResult{
					Response: fmt.Sprintf("Here are items with %s:", keyword),
					Data:     models.ViewList(items),
					Count:    len(items),
				}, nil
			}
			break
		}
	}

	allItems, err := o.store.GetAllItems(ctx)
	if err != nil {
		return nil, err
	}

	if match := o.matcher.BestMatch(text, allItems); match != nil {
		item := match.Item
		return &models.QueryResult{
			Response:        formatItemDetails(item),
			Data:            item,
			MatchedItem:     item.Name,
			MatchConfidence: match.Confidence,
		}, nil
	}

	for _, candidate := range e.CandidateItems {
		items, err := o.store.SearchItems(ctx, candidate)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			continue
		}
		if len(items) == 1 {
			item := items[0]
			return &models.QueryResult{
				Response:    formatItemDetails(item),
				Data:        item,
				MatchedItem: item.Name,
			}, nil
		}

		if len(items) > maxDetailDisambiguation {
			items = items[:maxDetailDisambiguation]
		}
		var names []string
		for _, it := range items {
			names = append(names, it.Name)
		}
		return &models.QueryResult{
			Response: fmt.Sprintf("I found multiple items. Did you mean: %s?", strings.Join(names, ", ")),
			Data:     models.ViewList(items),
		}, nil
	}

	return &models.QueryResult{
		Response: "I couldn't find that item. Try asking about specific dishes like 'pizza' or 'chicken tikka', or type 'show menu'.",
		Suggestions: []string{
			"Show menu",
			"What are your appetizers?",
			"Tell me about desserts",
		},
	}, nil
}

func (o *Orchestrator) handleCategory(ctx context.Context, _ string, e models.EntitySet) (*models.QueryResult, error) {
	if e.Category == "" {
		categories, err := o.store.GetCategories(ctx)
		if err != nil {
			return nil, err
		}
		names := make([]string, len(categories))
		for i, c := range categories {
			names[i] = string(c)
		}
		return &models.QueryResult{
			Response: fmt.Sprintf("We have these categories: %s. Which would you like to explore?", strings.Join(names, ", ")),
			Data:     map[string]interface{}{"categories": names},
		}, nil
	}

	items, err := o.store.GetItemsByCategory(ctx, e.Category)
	if err != nil {
		return nil, err
	}

	items = ApplyDietary(items, e)
	items = ApplyPrice(items, e)

	if len(items) == 0 {
		return &models.QueryResult{
			Response: fmt.Sprintf("Sorry, I couldn't find any %s items%s.", e.Category, describeAppliedFilters(e)),
			Suggestions: []string{
				fmt.Sprintf("Show all %ss", e.Category),
				"Show me the full menu",
			},
		}, nil
	}

	response := fmt.Sprintf("Here are our %s items", titleCase(string(e.Category)))
	if e.DietaryFilter != "" {
		response += fmt.Sprintf(" (%s)", e.DietaryFilter)
	}
	if e.HasPriceBound() {
		response += " " + priceFilterDescription(e)
	}
	response += ":"

	return &models.QueryResult{
		Response: response,
		Data:     models.ViewList(items),
		Count:    len(items),
	}, nil
}

func (o *Orchestrator) handleRestaurantInfo(_ context.Context, text string, _ models.EntitySet) (*models.QueryResult, error) {
	infoType := intent.InfoType(text)
	return &models.QueryResult{
		Response: formatRestaurantInfo(infoType, o.cfg.Restaurant),
		Data:     o.cfg.Restaurant,
	}, nil
}

func (o *Orchestrator) handleUnknown(_ context.Context, _ string, _ models.EntitySet) (*models.QueryResult, error) {
	return &models.QueryResult{
		Response: o.cfg.Fallbacks[o.pick(len(o.cfg.Fallbacks))],
		Suggestions: []string{
			"Show me the menu",
			"What are your timings?",
			"Tell me about your location",
		},
	}, nil
}
