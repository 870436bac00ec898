// internal/catalog/store.go

// Package catalog provides menu storage. The Store interface is the
// single seam between query handling and persistence; implementations
// exist for an in-memory snapshot, Postgres, Elasticsearch search, and a
// Redis read-through cache that wraps any of them.
package catalog

import (
	"context"
	"errors"

	"dinebot/internal/models"
)

// ErrNotFound is returned when an exact item lookup misses.
var ErrNotFound = errors.New("menu item not found")

// Store is the menu persistence contract.
type Store interface {
	// GetAllItems returns every menu item in stable menu order.
	GetAllItems(ctx context.Context) ([]models.MenuItem, error)

	// GetItemsByCategory returns items of one normalized category.
	GetItemsByCategory(ctx context.Context, category models.Category) ([]models.MenuItem, error)

	// SearchItems returns items whose name contains the keyword,
	// case-insensitively.
	SearchItems(ctx context.Context, keyword string) ([]models.MenuItem, error)

	// GetItemByName returns the item with the exact (case-insensitive)
	// name, or ErrNotFound.
	GetItemByName(ctx context.Context, name string) (*models.MenuItem, error)

	// GetCategories returns the distinct categories present on the menu.
	GetCategories(ctx context.Context) ([]models.Category, error)
}
