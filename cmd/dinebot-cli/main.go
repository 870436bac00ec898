// cmd/dinebot-cli/main.go

// dinebot-cli is an interactive harness for the chat pipeline. It loads
// the menu seed file into memory and answers queries on stdin, no
// databases required.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"dinebot/internal/catalog"
	"dinebot/internal/common/config"
	"dinebot/internal/common/logger"
	"dinebot/internal/models"
	"dinebot/internal/nlp/entity"
	"dinebot/internal/query"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	menuPath := flag.String("menu", "configs/menu.json", "path to menu seed file")
	flag.Parse()

	log := logger.NewNoOpLogger()

	cfg := &query.Config{}
	if *configPath != "" {
		loaded, err := config.LoadFromFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
			os.Exit(1)
		}
		*menuPath = loaded.Menu.SeedPath
		cfg.FuzzyCutoff = loaded.NLP.FuzzyCutoff
		cfg.Greetings = loaded.Responses.Greetings
		cfg.Fallbacks = loaded.Responses.Fallbacks
		cfg.Restaurant = loaded.Restaurant
	}
	if cfg.Restaurant.Name == "" {
		cfg.Restaurant = models.RestaurantInfo{
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
			Facilities:      []string{"WiFi", "Parking", "Outdoor Seating"},
		}
	}

	items, err := catalog.LoadMenuFile(*menuPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "menu load failed: %v\n", err)
		os.Exit(1)
	}

	store := catalog.NewMemoryStore(items)
	extractor := entity.New(log)
	orch := query.NewOrchestrator(store, extractor, cfg, log)

	fmt.Println("DineBot ready. Type a question, or 'quit' to exit.")

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		result, err := orch.Handle(ctx, line)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}

		fmt.Println(result.Response)
		if len(result.Suggestions) > 0 {
			fmt.Printf("(try: %s)\n", strings.Join(result.Suggestions, " | "))
		}
		fmt.Println()
	}
}
