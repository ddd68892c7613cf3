package store

import (
	"context"
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/trytobebee/gridsnake/pkg/game"
	_ "modernc.org/sqlite"
)

// Run is one finished run as stored in the leaderboard
type Run struct {
	ID        int64     `json:"id"`
	Score     int       `json:"score"`
	FoodEaten int       `json:"foodEaten"`
	Length    int       `json:"length"`
	Won       bool      `json:"won"`
	StartedAt time.Time `json:"startedAt"`
	EndedAt   time.Time `json:"endedAt"`
}

// SQLiteStore keeps the high score and run history in a SQLite file
type SQLiteStore struct {
	db     *sql.DB
	logger *log.Logger
}

// OpenSQLite opens (and creates if needed) the database at path
func OpenSQLite(path string, logger *log.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrap(err, "create data directory")
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	// One writer at a time keeps SQLite from returning SQLITE_BUSY
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, logger: logger}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS high_score (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			score INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			score INTEGER NOT NULL,
			food_eaten INTEGER NOT NULL,
			length INTEGER NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			started_at DATETIME,
			ended_at DATETIME
		)`,
		`CREATE INDEX IF NOT EXISTS runs_score ON runs (score DESC)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return errors.Wrapf(err, "create table (%s)", query)
		}
	}
	return nil
}

// HighScore returns the stored best score, or 0 when absent or unreadable
func (s *SQLiteStore) HighScore() int {
	var score int
	err := s.db.QueryRow(`SELECT score FROM high_score WHERE id = 1`).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0
	}
	if err != nil {
		s.logger.Error("failed to read high score", "err", err)
		return 0
	}
	if score < 0 {
		return 0
	}
	return score
}

// SetHighScore stores score unless a higher one is already stored
func (s *SQLiteStore) SetHighScore(score int) error {
	_, err := s.db.Exec(
		`INSERT INTO high_score (id, score, updated_at) VALUES (1, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET
			score = MAX(score, excluded.score),
			updated_at = CURRENT_TIMESTAMP`,
		score,
	)
	return errors.Wrap(err, "store high score")
}

// RecordRun appends a finished run to the history
func (s *SQLiteStore) RecordRun(ctx context.Context, r game.RunResult) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (score, food_eaten, length, won, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.Score, r.FoodEaten, r.Length, r.Won, r.StartedAt.UTC(), r.EndedAt.UTC(),
	)
	return errors.Wrap(err, "record run")
}

// TopRuns returns the best runs, highest score first
func (s *SQLiteStore) TopRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, score, food_eaten, length, won, started_at, ended_at
		 FROM runs ORDER BY score DESC, id ASC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, errors.Wrap(err, "query runs")
	}
	defer rows.Close()

	runs := make([]Run, 0, limit)
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Score, &r.FoodEaten, &r.Length, &r.Won, &r.StartedAt, &r.EndedAt); err != nil {
			return nil, errors.Wrap(err, "scan run")
		}
		runs = append(runs, r)
	}
	return runs, errors.Wrap(rows.Err(), "iterate runs")
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
