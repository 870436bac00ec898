// internal/catalog/elastic.go
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"dinebot/internal/common/database"
	"dinebot/internal/common/logger"
	"dinebot/internal/models"
)

// DefaultMenuIndex is the Elasticsearch index holding menu documents.
const DefaultMenuIndex = "menu_items"

// SearchStore upgrades keyword search with Elasticsearch relevance while
// delegating every other read to the backing store. An unreachable
// cluster degrades search back to the backing store.
type SearchStore struct {
	next   Store
	client *database.ElasticsearchClient
	index  string
	logger logger.Logger
}

func NewSearchStore(next Store, client *database.ElasticsearchClient, index string, log logger.Logger) *SearchStore {
	if index == "" {
		index = DefaultMenuIndex
	}
	return &SearchStore{
		next:   next,
		client: client,
		index:  index,
		logger: log.With(map[string]interface{}{
			"component": "catalog-search",
		}),
	}
}

func (s *SearchStore) GetAllItems(ctx context.Context) ([]models.MenuItem, error) {
	return s.next.GetAllItems(ctx)
}

func (s *SearchStore) GetItemsByCategory(ctx context.Context, category models.Category) ([]models.MenuItem, error) {
	return s.next.GetItemsByCategory(ctx, category)
}

func (s *SearchStore) GetItemByName(ctx context.Context, name string) (*models.MenuItem, error) {
	return s.next.GetItemByName(ctx, name)
}

func (s *SearchStore) GetCategories(ctx context.Context) ([]models.Category, error) {
	return s.next.GetCategories(ctx)
}

func (s *SearchStore) SearchItems(ctx context.Context, keyword string) ([]models.MenuItem, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     keyword,
				"fields":    []string{"name^2", "description", "ingredients"},
				"fuzziness": "AUTO",
			},
		},
		"size": 25,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, err
	}

	res, err := s.client.Client.Search(
		s.client.Client.Search.WithContext(ctx),
		s.client.Client.Search.WithIndex(s.index),
		s.client.Client.Search.WithBody(&buf),
	)
	if err != nil {
		s.logger.Warn("search cluster unreachable, using backing store", map[string]interface{}{
			"keyword": keyword,
			"error":   err.Error(),
		})
		return s.next.SearchItems(ctx, keyword)
	}
	defer res.Body.Close()

	if res.IsError() {
		s.logger.Warn("search query rejected, using backing store", map[string]interface{}{
			"keyword": keyword,
			"status":  res.Status(),
		})
		return s.next.SearchItems(ctx, keyword)
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source models.MenuItem `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]models.MenuItem, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		out = append(out, hit.Source)
	}
	return out, nil
}

// IndexMenu bulk-writes the menu into the search index so keyword search
// stays in sync after a reload.
func (s *SearchStore) IndexMenu(ctx context.Context, items []models.MenuItem) error {
	var buf bytes.Buffer
	for _, it := range items {
		meta := map[string]interface{}{
			"index": map[string]interface{}{"_index": s.index, "_id": it.Name},
		}
		if err := json.NewEncoder(&buf).Encode(meta); err != nil {
			return err
		}
		if err := json.NewEncoder(&buf).Encode(it); err != nil {
			return err
		}
	}

	res, err := s.client.Client.Bulk(
		bytes.NewReader(buf.Bytes()),
		s.client.Client.Bulk.WithContext(ctx),
		s.client.Client.Bulk.WithRefresh("true"),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		s.logger.Error("bulk index failed", map[string]interface{}{
			"status": res.Status(),
		})
		return fmt.Errorf("bulk index rejected: %s", res.Status())
	}
	return nil
}
