// cmd/tools/menu-seeder/main.go

// menu-seeder validates a menu seed file and loads it into the configured
// backends: the menu_items table in Postgres and the search index in
// Elasticsearch. Run it after editing the seed file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/lib/pq"

	"dinebot/internal/catalog"
	"dinebot/internal/common/config"
	"dinebot/internal/common/database"
	"dinebot/internal/common/logger"
	"dinebot/internal/models"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	menuPath := flag.String("menu", "configs/menu.json", "path to menu seed file")
	validateOnly := flag.Bool("validate", false, "validate the seed file and exit")
	flag.Parse()

	items, err := catalog.LoadMenuFile(*menuPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "menu seed invalid: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("menu seed OK: %d items\n", len(items))

	if *validateOnly {
		return
	}

	var cfg *config.Config
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if cfg.Database.Postgres.Enabled {
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			fmt.Fprintf(os.Stderr, "postgres connect failed: %v\n", err)
			os.Exit(1)
		}
		defer pg.Close()

		if err := seedPostgres(ctx, pg, items); err != nil {
			fmt.Fprintf(os.Stderr, "postgres seed failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("postgres seeded")
	}

	if cfg.Database.Elasticsearch.Enabled {
		esClient, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			fmt.Fprintf(os.Stderr, "elasticsearch connect failed: %v\n", err)
			os.Exit(1)
		}

		search := catalog.NewSearchStore(catalog.NewMemoryStore(items), esClient, cfg.Menu.SearchIndex, log)
		if err := search.IndexMenu(ctx, items); err != nil {
			fmt.Fprintf(os.Stderr, "elasticsearch index failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("elasticsearch indexed")
	}
}

func seedPostgres(ctx context.Context, pg *database.PostgresClient, items []models.MenuItem) error {
	if _, err := pg.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS menu_items (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			price INTEGER NOT NULL,
			category TEXT NOT NULL,
			is_vegetarian BOOLEAN NOT NULL,
			is_vegan BOOLEAN NOT NULL,
			spice_level TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			ingredients TEXT[] NOT NULL DEFAULT '{}',
			preparation_time INTEGER NOT NULL DEFAULT 0
		)`); err != nil {
		return err
	}

	for _, it := range items {
		if _, err := pg.Exec(ctx, `
			INSERT INTO menu_items
				(name, price, category, is_vegetarian, is_vegan, spice_level, description, ingredients, preparation_time)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (name) DO UPDATE SET
				price = EXCLUDED.price,
				category = EXCLUDED.category,
				is_vegetarian = EXCLUDED.is_vegetarian,
				is_vegan = EXCLUDED.is_vegan,
				spice_level = EXCLUDED.spice_level,
				description = EXCLUDED.description,
				ingredients = EXCLUDED.ingredients,
				preparation_time = EXCLUDED.preparation_time`,
			it.Name, it.Price, string(it.Category), it.IsVegetarian, it.IsVegan,
			string(it.SpiceLevel), it.Description, pq.Array(it.Ingredients), it.PreparationTime,
		); err != nil {
			return err
		}
	}
	return nil
}
