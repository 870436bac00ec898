// internal/catalog/memory.go
package catalog

import (
	"context"
	"strings"
	"sync"

	"dinebot/internal/models"
)

// MemoryStore serves a fixed menu snapshot from memory. It backs the CLI
// and tests, and is the fallback when no database is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	items []models.MenuItem
}

func NewMemoryStore(items []models.MenuItem) *MemoryStore {
	s := &MemoryStore{}
	s.Replace(items)
	return s
}

// Replace swaps the snapshot. Items are normalized so vegan implies
// vegetarian and category aliases collapse.
func (s *MemoryStore) Replace(items []models.MenuItem) {
	normalized := make([]models.MenuItem, len(items))
	for i, it := range items {
		it.Category = models.NormalizeCategory(string(it.Category))
		if it.IsVegan {
			it.IsVegetarian = true
		}
		normalized[i] = it
	}
	s.mu.Lock()
	s.items = normalized
	s.mu.Unlock()
}

func (s *MemoryStore) GetAllItems(_ context.Context) ([]models.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.MenuItem, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *MemoryStore) GetItemsByCategory(_ context.Context, category models.Category) ([]models.MenuItem, error) {
	category = models.NormalizeCategory(string(category))
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.MenuItem
	for _, it := range s.items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *MemoryStore) SearchItems(_ context.Context, keyword string) ([]models.MenuItem, error) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.MenuItem
	for _, it := range s.items {
		if strings.Contains(strings.ToLower(it.Name), keyword) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetItemByName(_ context.Context, name string) (*models.MenuItem, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if strings.ToLower(it.Name) == name {
			item := it
			return &item, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetCategories(_ context.Context) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[models.Category]struct{})
	var out []models.Category
	for _, it := range s.items {
		if _, ok := seen[it.Category]; ok {
			continue
		}
		seen[it.Category] = struct{}{}
		out = append(out, it.Category)
	}
	return out, nil
}
