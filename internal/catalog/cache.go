// internal/catalog/cache.go
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"dinebot/internal/common/database"
	"dinebot/internal/common/logger"
	"dinebot/internal/common/metrics"
	"dinebot/internal/models"
)

const (
	keyMenuAll        = "dinebot:menu:all"
	keyMenuCategories = "dinebot:menu:categories"
	keyMenuByCategory = "dinebot:menu:category:"
)

// CachedStore is a read-through Redis cache in front of another Store.
// The full-menu, per-category and category-list reads are cached; keyword
// search and exact lookups always hit the backing store. Cache failures
// degrade to the backing store with a warning.
type CachedStore struct {
	next   Store
	client *database.RedisClient
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedStore(next Store, client *database.RedisClient, ttl time.Duration, log logger.Logger) *CachedStore {
	return &CachedStore{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: log.With(map[string]interface{}{
			"component": "catalog-cache",
		}),
	}
}

func (s *CachedStore) GetAllItems(ctx context.Context) ([]models.MenuItem, error) {
	var cached []models.MenuItem
	if s.readThrough(ctx, keyMenuAll, &cached) {
		return cached, nil
	}

	items, err := s.next.GetAllItems(ctx)
	if err != nil {
		return nil, err
	}
	s.write(ctx, keyMenuAll, items)
	return items, nil
}

func (s *CachedStore) GetItemsByCategory(ctx context.Context, category models.Category) ([]models.MenuItem, error) {
	category = models.NormalizeCategory(string(category))
	key := keyMenuByCategory + string(category)

	var cached []models.MenuItem
	if s.readThrough(ctx, key, &cached) {
		return cached, nil
	}

	items, err := s.next.GetItemsByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	s.write(ctx, key, items)
	return items, nil
}

func (s *CachedStore) SearchItems(ctx context.Context, keyword string) ([]models.MenuItem, error) {
	return s.next.SearchItems(ctx, keyword)
}

func (s *CachedStore) GetItemByName(ctx context.Context, name string) (*models.MenuItem, error) {
	return s.next.GetItemByName(ctx, name)
}

func (s *CachedStore) GetCategories(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	if s.readThrough(ctx, keyMenuCategories, &cached) {
		return cached, nil
	}

	categories, err := s.next.GetCategories(ctx)
	if err != nil {
		return nil, err
	}
	s.write(ctx, keyMenuCategories, categories)
	return categories, nil
}

// Invalidate drops every cached menu key. Called after a menu reload.
func (s *CachedStore) Invalidate(ctx context.Context) error {
	iter := s.client.Client.Scan(ctx, 0, "dinebot:menu:*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...)
}

// readThrough loads a cached value into dst and reports whether it was a
// hit. Misses and errors both return false.
func (s *CachedStore) readThrough(ctx context.Context, key string, dst interface{}) bool {
	raw, err := s.client.Get(ctx, key)
	if errors.Is(err, redis.Nil) {
		metrics.MenuCacheHits.WithLabelValues("miss").Inc()
		return false
	}
	if err != nil {
		metrics.MenuCacheHits.WithLabelValues("error").Inc()
		s.logger.Warn("cache read failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		metrics.MenuCacheHits.WithLabelValues("error").Inc()
		s.logger.Warn("cache entry corrupt, ignoring", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return false
	}
	metrics.MenuCacheHits.WithLabelValues("hit").Inc()
	return true
}

func (s *CachedStore) write(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.client.Set(ctx, key, raw, s.ttl); err != nil {
		s.logger.Warn("cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}
