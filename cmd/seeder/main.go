package main

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/handballito/handballito-time/internal/database"
	"github.com/handballito/handballito-time/internal/league"
	"github.com/joho/godotenv"
)

var roster = []string{
	"Chris", "Guchy", "Pende", "Depol", "Kuba", "Negro", "Nico",
	"Nina", "Juli", "Ailu", "Lau", "Vero", "Pipu", "Nene",
}

var venues = []struct {
	name    string
	address string
}{
	{"CUM", "Gral. Belgrano 2676 B1605CGH, B1605CGH Munro, Provincia de Buenos Aires"},
	{"INDU", "Mendoza 2563, C1428DKQ Munro, Provincia de Buenos Aires"},
}

// Simplified config loading for the script
func loadConfig() map[string]string {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}
	config := map[string]string{"DB_NAME": "handballito.db"}
	for _, key := range []string{"DB_NAME", "TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"} {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

// seed adds every roster player and venue that is not there yet, so running
// it twice is harmless.
func seed(ctx context.Context, store league.Store) (players, locations int, err error) {
	existing, err := store.ListPlayers(ctx)
	if err != nil {
		return 0, 0, err
	}
	known := make(map[string]bool, len(existing))
	for _, p := range existing {
		known[strings.ToLower(p.Name)] = true
	}
	for _, name := range roster {
		if known[strings.ToLower(name)] {
			continue
		}
		if _, err := store.AddPlayer(ctx, name); err != nil {
			return players, locations, err
		}
		players++
	}

	existingLocations, err := store.ListLocations(ctx)
	if err != nil {
		return players, 0, err
	}
	knownLocations := make(map[string]bool, len(existingLocations))
	for _, l := range existingLocations {
		knownLocations[strings.ToLower(l.Name)] = true
	}
	for _, v := range venues {
		if knownLocations[strings.ToLower(v.name)] {
			continue
		}
		address := v.address
		if _, err := store.AddLocation(ctx, v.name, &address); err != nil {
			return players, locations, err
		}
		locations++
	}
	return players, locations, nil
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	players, locations, err := seed(context.Background(), league.New(db))
	if err != nil {
		log.Fatalf("Failed to seed database: %s", err)
	}
	log.Info("Seeding finished", "players_added", players, "locations_added", locations)
}
