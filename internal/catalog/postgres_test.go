// internal/catalog/postgres_test.go
package catalog

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinebot/internal/common/database"
	cerrors "dinebot/internal/common/errors"
	"dinebot/internal/common/logger"
	"dinebot/internal/models"
)

var menuTestColumns = []string{
	"name", "price", "category", "is_vegetarian", "is_vegan",
	"spice_level", "description", "ingredients", "preparation_time",
}

func newPostgresStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	store := NewPostgresStore(&database.PostgresClient{DB: db}, logger.NewTestLogger(t))
	return store, mock, db
}

func TestPostgresStore_GetAllItems(t *testing.T) {
	store, mock, db := newPostgresStore(t)
	defer db.Close()

	rows := sqlmock.NewRows(menuTestColumns).
		AddRow("Chicken Biryani", 349, "main course", false, false, "hot",
			"Fragrant rice with spiced chicken", "{rice,chicken}", 45).
		AddRow("Spring Rolls", 149, "appetizer", true, true, "mild",
			"Golden rolls stuffed with vegetables", "{wrappers,cabbage}", 15)

	mock.ExpectQuery(`SELECT name, price, category, is_vegetarian, is_vegan, spice_level, description, ingredients, preparation_time FROM menu_items ORDER BY id`).
		WillReturnRows(rows)

	items, err := store.GetAllItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Chicken Biryani", items[0].Name)
	assert.Equal(t, 349, items[0].Price)
	assert.Equal(t, models.SpiceHot, items[0].SpiceLevel)
	assert.Equal(t, []string{"rice", "chicken"}, items[0].Ingredients)
	assert.True(t, items[1].IsVegan)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetItemsByCategory(t *testing.T) {
	store, mock, db := newPostgresStore(t)
	defer db.Close()

	rows := sqlmock.NewRows(menuTestColumns).
		AddRow("Gulab Jamun", 99, "dessert", true, false, "none",
			"Milk dumplings in rose syrup", "{khoya,syrup}", 12)

	mock.ExpectQuery(`SELECT .+ FROM menu_items WHERE category = \$1 ORDER BY id`).
		WithArgs("appetizer").
		WillReturnRows(rows)

	// "starter" normalizes to appetizer before the query runs.
	items, err := store.GetItemsByCategory(context.Background(), "starter")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SearchItems(t *testing.T) {
	store, mock, db := newPostgresStore(t)
	defer db.Close()

	rows := sqlmock.NewRows(menuTestColumns).
		AddRow("Chicken Tikka", 249, "appetizer", false, false, "hot",
			"Char-grilled chicken chunks", "{chicken,yogurt}", 25)

	mock.ExpectQuery(`SELECT .+ FROM menu_items WHERE name ILIKE`).
		WithArgs("chicken").
		WillReturnRows(rows)

	items, err := store.SearchItems(context.Background(), "chicken")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Chicken Tikka", items[0].Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetItemByName(t *testing.T) {
	store, mock, db := newPostgresStore(t)
	defer db.Close()

	rows := sqlmock.NewRows(menuTestColumns).
		AddRow("Mango Lassi", 119, "beverage", true, false, "none",
			"Yogurt smoothie with mango", "{yogurt,mango}", 5)

	mock.ExpectQuery(`SELECT .+ FROM menu_items WHERE LOWER\(name\) = LOWER\(\$1\)`).
		WithArgs("mango lassi").
		WillReturnRows(rows)

	item, err := store.GetItemByName(context.Background(), "mango lassi")
	require.NoError(t, err)
	assert.Equal(t, 119, item.Price)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetItemByNameNotFound(t *testing.T) {
	store, mock, db := newPostgresStore(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM menu_items WHERE LOWER\(name\) = LOWER\(\$1\)`).
		WithArgs("tiramisu").
		WillReturnRows(sqlmock.NewRows(menuTestColumns))

	_, err := store.GetItemByName(context.Background(), "tiramisu")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetCategories(t *testing.T) {
	store, mock, db := newPostgresStore(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"category"}).
		AddRow("main course").
		AddRow("appetizer").
		AddRow("dessert")

	mock.ExpectQuery(`SELECT category FROM menu_items GROUP BY category ORDER BY MIN\(id\)`).
		WillReturnRows(rows)

	categories, err := store.GetCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Category{
		models.CategoryMainCourse,
		models.CategoryAppetizer,
		models.CategoryDessert,
	}, categories)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_QueryError(t *testing.T) {
	store, mock, db := newPostgresStore(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM menu_items ORDER BY id`).
		WillReturnError(sql.ErrConnDone)

	_, err := store.GetAllItems(context.Background())
	require.Error(t, err)

	var stdErr *cerrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, cerrors.ErrCodeQueryExecutionFailed, stdErr.Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}
