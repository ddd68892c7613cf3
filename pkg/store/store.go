// Package store persists the high score and the history of finished runs.
package store

import (
	"context"

	"github.com/trytobebee/gridsnake/pkg/game"
)

// RunLog records finished runs and serves the leaderboard
type RunLog interface {
	RecordRun(ctx context.Context, r game.RunResult) error
	TopRuns(ctx context.Context, limit int) ([]Run, error)
}

// Store is a high score store that also keeps run history
type Store interface {
	game.ScoreStore
	RunLog
}

var (
	_ Store           = (*SQLiteStore)(nil)
	_ Store           = (*MemoryStore)(nil)
	_ game.ScoreStore = (*FileStore)(nil)
)
