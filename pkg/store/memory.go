package store

import (
	"context"
	"sort"
	"sync"

	"github.com/trytobebee/gridsnake/pkg/game"
)

// MemoryStore keeps everything in process memory
type MemoryStore struct {
	mu   sync.Mutex
	best int
	runs []Run
}

func NewMemoryStore(initial int) *MemoryStore {
	return &MemoryStore{best: initial}
}

func (s *MemoryStore) HighScore() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.best
}

func (s *MemoryStore) SetHighScore(score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if score > s.best {
		s.best = score
	}
	return nil
}

func (s *MemoryStore) RecordRun(_ context.Context, r game.RunResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, Run{
		ID:        int64(len(s.runs) + 1),
		Score:     r.Score,
		FoodEaten: r.FoodEaten,
		Length:    r.Length,
		Won:       r.Won,
		StartedAt: r.StartedAt,
		EndedAt:   r.EndedAt,
	})
	return nil
}

func (s *MemoryStore) TopRuns(_ context.Context, limit int) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 {
		limit = 10
	}

	runs := make([]Run, len(s.runs))
	copy(runs, s.runs)
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Score > runs[j].Score })
	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}
