// Command seedstore builds the SQLite lookup store from a canonical
// dataset file. It normalizes every name the same way the resolver
// normalizes queries and precomputes the priority-location index for the
// prioritized states, so the online service never writes to the store.
package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/location-resolver/app/models"
	"github.com/location-resolver/internal/gateway"
	"github.com/location-resolver/internal/normalizer"
)

type datasetState struct {
	ID             uint64                `json:"id"`
	Name           string                `json:"name"`
	Municipalities []datasetMunicipality `json:"municipalities"`
}

type datasetMunicipality struct {
	ID        uint64            `json:"id"`
	Name      string            `json:"name"`
	Locations []datasetLocation `json:"locations"`
}

type datasetLocation struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

func main() {
	var (
		dataPath  = flag.String("data", "data/canonical.json", "canonical dataset file")
		storePath = flag.String("store", "data/locations.db", "output SQLite store")
	)
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("cannot initialize logger: %v", err)
	}
	defer logger.Sync()

	states, err := loadDataset(*dataPath)
	if err != nil {
		logger.Fatal("failed to load dataset", zap.Error(err), zap.String("path", *dataPath))
	}

	store, err := gateway.Open(*storePath, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.Error(err), zap.String("path", *storePath))
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		logger.Fatal("failed to apply schema", zap.Error(err))
	}

	counts, err := seed(store.DB(), states)
	if err != nil {
		logger.Fatal("failed to seed store", zap.Error(err))
	}

	logger.Info("store built",
		zap.String("store", *storePath),
		zap.Int("states", counts.states),
		zap.Int("municipalities", counts.municipalities),
		zap.Int("locations", counts.locations),
		zap.Int("priority_entries", counts.priority))
}

func loadDataset(path string) ([]datasetState, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var states []datasetState
	if err := json.Unmarshal(b, &states); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	return states, nil
}

type seedCounts struct {
	states, municipalities, locations, priority int
}

func seed(db *sql.DB, states []datasetState) (seedCounts, error) {
	var counts seedCounts

	tn := normalizer.NewTextNormalizer()

	tx, err := db.Begin()
	if err != nil {
		return counts, err
	}
	defer tx.Rollback()

	for _, st := range states {
		priority := models.StatePriority[st.ID]
		if _, err := tx.Exec(
			`INSERT INTO states (id, name, normalized_name, priority_level) VALUES (?, ?, ?, ?)`,
			st.ID, st.Name, tn.Normalize(st.Name), priority); err != nil {
			return counts, fmt.Errorf("insert state %q: %w", st.Name, err)
		}
		counts.states++

		for _, muni := range st.Municipalities {
			if _, err := tx.Exec(
				`INSERT INTO municipalities (id, state_id, name, normalized_name) VALUES (?, ?, ?, ?)`,
				muni.ID, st.ID, muni.Name, tn.Normalize(muni.Name)); err != nil {
				return counts, fmt.Errorf("insert municipality %q: %w", muni.Name, err)
			}
			counts.municipalities++

			for _, loc := range muni.Locations {
				normalized := tn.Normalize(loc.Name)
				if _, err := tx.Exec(
					`INSERT INTO locations (id, municipality_id, name, normalized_name) VALUES (?, ?, ?, ?)`,
					loc.ID, muni.ID, loc.Name, normalized); err != nil {
					return counts, fmt.Errorf("insert location %q: %w", loc.Name, err)
				}
				counts.locations++

				if priority == 0 {
					continue
				}
				if _, err := tx.Exec(
					`INSERT INTO priority_locations
						(location_id, location_name, municipality_id, municipality_name,
						 state_id, state_name, normalized_name, priority_level)
					 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
					loc.ID, loc.Name, muni.ID, muni.Name,
					st.ID, st.Name, normalized, priority); err != nil {
					return counts, fmt.Errorf("insert priority entry %q: %w", loc.Name, err)
				}
				counts.priority++
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return counts, err
	}
	return counts, nil
}
