// internal/catalog/postgres.go
package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"dinebot/internal/common/database"
	cerrors "dinebot/internal/common/errors"
	"dinebot/internal/common/logger"
	"dinebot/internal/models"
)

const menuColumns = `name, price, category, is_vegetarian, is_vegan, spice_level, description, ingredients, preparation_time`

// PostgresStore serves the menu from the menu_items table.
type PostgresStore struct {
	client *database.PostgresClient
	logger logger.Logger
}

func NewPostgresStore(client *database.PostgresClient, log logger.Logger) *PostgresStore {
	return &PostgresStore{
		client: client,
		logger: log.With(map[string]interface{}{
			"component": "postgres-catalog",
		}),
	}
}

func (s *PostgresStore) GetAllItems(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := s.client.Query(ctx,
		`SELECT `+menuColumns+` FROM menu_items ORDER BY id`)
	if err != nil {
		return nil, cerrors.NewQueryExecutionFailedError("all_items", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

func (s *PostgresStore) GetItemsByCategory(ctx context.Context, category models.Category) ([]models.MenuItem, error) {
	category = models.NormalizeCategory(string(category))
	rows, err := s.client.Query(ctx,
		`SELECT `+menuColumns+` FROM menu_items WHERE category = $1 ORDER BY id`,
		string(category))
	if err != nil {
		return nil, cerrors.NewQueryExecutionFailedError("items_by_category", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

func (s *PostgresStore) SearchItems(ctx context.Context, keyword string) ([]models.MenuItem, error) {
	rows, err := s.client.Query(ctx,
		`SELECT `+menuColumns+` FROM menu_items WHERE name ILIKE '%' || $1 || '%' ORDER BY id`,
		keyword)
	if err != nil {
		return nil, cerrors.NewQueryExecutionFailedError("search_items", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

func (s *PostgresStore) GetItemByName(ctx context.Context, name string) (*models.MenuItem, error) {
	row := s.client.QueryRow(ctx,
		`SELECT `+menuColumns+` FROM menu_items WHERE LOWER(name) = LOWER($1)`,
		name)

	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, cerrors.NewQueryExecutionFailedError("item_by_name", err)
	}
	return item, nil
}

func (s *PostgresStore) GetCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.client.Query(ctx,
		`SELECT category FROM menu_items GROUP BY category ORDER BY MIN(id)`)
	if err != nil {
		return nil, cerrors.NewQueryExecutionFailedError("categories", err)
	}
	defer rows.Close()

	var out []models.Category
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, cerrors.NewQueryExecutionFailedError("categories", err)
		}
		out = append(out, models.Category(c))
	}
	if err := rows.Err(); err != nil {
		return nil, cerrors.NewQueryExecutionFailedError("categories", err)
	}
	return out, nil
}

func scanItems(rows *sql.Rows) ([]models.MenuItem, error) {
	var out []models.MenuItem
	for rows.Next() {
		var it models.MenuItem
		if err := rows.Scan(
			&it.Name, &it.Price, &it.Category,
			&it.IsVegetarian, &it.IsVegan, &it.SpiceLevel,
			&it.Description, pq.Array(&it.Ingredients), &it.PreparationTime,
		); err != nil {
			return nil, cerrors.NewQueryExecutionFailedError("scan", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, cerrors.NewQueryExecutionFailedError("rows", err)
	}
	return out, nil
}

func scanItem(row *sql.Row) (*models.MenuItem, error) {
	var it models.MenuItem
	if err := row.Scan(
		&it.Name, &it.Price, &it.Category,
		&it.IsVegetarian, &it.IsVegan, &it.SpiceLevel,
		&it.Description, pq.Array(&it.Ingredients), &it.PreparationTime,
	); err != nil {
		return nil, err
	}
	return &it, nil
}
