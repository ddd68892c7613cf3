package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/trytobebee/gridsnake/pkg/config"
	"github.com/trytobebee/gridsnake/pkg/game"
	"github.com/trytobebee/gridsnake/pkg/store"
)

func main() {
	defaultFile, _ := store.DefaultFilePath()
	from := flag.String("from", defaultFile, "JSON high score file written by the terminal game")
	runsPath := flag.String("runs", "", "optional JSON file with finished runs to import")
	dbPath := flag.String("db", config.DefaultDBPath, "sqlite database to import into")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "migrate"})

	// 1. Check the source exists
	if _, err := os.Stat(*from); os.IsNotExist(err) {
		logger.Fatal("high score file not found", "path", *from)
	}

	// 2. Open SQLite DB (creates tables if the server has not run yet)
	db, err := store.OpenSQLite(*dbPath, logger)
	if err != nil {
		logger.Fatal("failed to open database", "path", *dbPath, "err", err)
	}
	defer db.Close()

	// 3. Import the high score; a lower value never replaces the stored one
	best := store.NewFileStore(*from, logger).HighScore()
	before := db.HighScore()
	if err := db.SetHighScore(best); err != nil {
		logger.Fatal("failed to import high score", "err", err)
	}
	logger.Info("high score imported", "file", best, "before", before, "after", db.HighScore())

	// 4. Import runs
	count := 0
	if *runsPath != "" {
		runs, err := readRuns(*runsPath)
		if err != nil {
			logger.Fatal("failed to read runs", "path", *runsPath, "err", err)
		}
		logger.Info("found runs to migrate", "count", len(runs))
		for _, r := range runs {
			if err := db.RecordRun(context.Background(), r); err != nil {
				logger.Error("failed to migrate run", "score", r.Score, "err", err)
				continue
			}
			count++
		}
	}

	fmt.Printf("✅ Migration complete! High score %d, %d runs imported into %s\n", db.HighScore(), count, *dbPath)
}

// readRuns accepts either a JSON array of runs or an object keyed by any id
func readRuns(path string) ([]game.RunResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read runs file")
	}

	var list []game.RunResult
	if err := json.Unmarshal(content, &list); err == nil {
		return list, nil
	}

	var byID map[string]game.RunResult
	if err := json.Unmarshal(content, &byID); err != nil {
		return nil, errors.Wrap(err, "parse runs file")
	}
	for _, r := range byID {
		list = append(list, r)
	}
	return list, nil
}
