package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/trytobebee/gridsnake/pkg/game"
)

func openTestDB(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "data", "game.db"), nil)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteHighScore(t *testing.T) {
	s := openTestDB(t)

	if got := s.HighScore(); got != 0 {
		t.Fatalf("expected 0 on an empty database, got %d", got)
	}

	if err := s.SetHighScore(100); err != nil {
		t.Fatalf("SetHighScore: %v", err)
	}
	if got := s.HighScore(); got != 100 {
		t.Errorf("expected 100, got %d", got)
	}

	if err := s.SetHighScore(120); err != nil {
		t.Fatalf("SetHighScore: %v", err)
	}
	if got := s.HighScore(); got != 120 {
		t.Errorf("expected 120, got %d", got)
	}

	// A lower score never replaces a higher one
	if err := s.SetHighScore(80); err != nil {
		t.Fatalf("SetHighScore: %v", err)
	}
	if got := s.HighScore(); got != 120 {
		t.Errorf("expected 120 to survive, got %d", got)
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.db")

	s, err := OpenSQLite(path, nil)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := s.SetHighScore(70); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = OpenSQLite(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if got := s.HighScore(); got != 70 {
		t.Errorf("expected 70 after reopen, got %d", got)
	}
}

func TestSQLiteRuns(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	for i, score := range []int{30, 120, 0, 60} {
		r := game.RunResult{
			Score:     score,
			FoodEaten: score / 10,
			Length:    score/10 + 1,
			Won:       score == 120,
			StartedAt: start.Add(time.Duration(i) * time.Minute),
			EndedAt:   start.Add(time.Duration(i)*time.Minute + 30*time.Second),
		}
		if err := s.RecordRun(ctx, r); err != nil {
			t.Fatalf("RecordRun: %v", err)
		}
	}

	runs, err := s.TopRuns(ctx, 3)
	if err != nil {
		t.Fatalf("TopRuns: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	want := []int{120, 60, 30}
	for i, r := range runs {
		if r.Score != want[i] {
			t.Errorf("rank %d: expected %d, got %d", i, want[i], r.Score)
		}
	}
	if !runs[0].Won || runs[0].FoodEaten != 12 || runs[0].Length != 13 {
		t.Errorf("unexpected top run %+v", runs[0])
	}
	if !runs[0].StartedAt.Equal(start.Add(time.Minute)) {
		t.Errorf("expected start %v, got %v", start.Add(time.Minute), runs[0].StartedAt)
	}
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "highscore.json")
	s := NewFileStore(path, nil)

	if got := s.HighScore(); got != 0 {
		t.Fatalf("expected 0 for a missing file, got %d", got)
	}

	if err := s.SetHighScore(100); err != nil {
		t.Fatalf("SetHighScore: %v", err)
	}
	if got := NewFileStore(path, nil).HighScore(); got != 100 {
		t.Errorf("expected 100 from a fresh store, got %d", got)
	}

	if err := s.SetHighScore(80); err != nil {
		t.Fatalf("SetHighScore: %v", err)
	}
	if got := s.HighScore(); got != 100 {
		t.Errorf("expected 100 to survive a lower score, got %d", got)
	}
}

func TestFileStoreCorruptFileDefaultsToZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscore.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	s := NewFileStore(path, nil)
	if got := s.HighScore(); got != 0 {
		t.Errorf("expected 0 for a corrupt file, got %d", got)
	}

	if err := s.SetHighScore(40); err != nil {
		t.Fatalf("SetHighScore over a corrupt file: %v", err)
	}
	if got := s.HighScore(); got != 40 {
		t.Errorf("expected 40, got %d", got)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore(100)
	ctx := context.Background()

	s.SetHighScore(80)
	if got := s.HighScore(); got != 100 {
		t.Errorf("expected 100, got %d", got)
	}
	s.SetHighScore(120)
	if got := s.HighScore(); got != 120 {
		t.Errorf("expected 120, got %d", got)
	}

	for _, score := range []int{10, 50, 20} {
		s.RecordRun(ctx, game.RunResult{Score: score})
	}
	runs, _ := s.TopRuns(ctx, 2)
	if len(runs) != 2 || runs[0].Score != 50 || runs[1].Score != 20 {
		t.Errorf("unexpected leaderboard %+v", runs)
	}
}

func TestGameWithSQLiteStore(t *testing.T) {
	s := openTestDB(t)
	if err := s.SetHighScore(100); err != nil {
		t.Fatal(err)
	}

	g := game.NewGame(game.WithStore(s))
	g.Start()
	g.Score = 120
	g.Snake = game.Snake{{X: 0, Y: 0}}
	g.Heading = game.Left
	g.Update()

	if got := s.HighScore(); got != 120 {
		t.Errorf("expected stored high score 120, got %d", got)
	}

	g.Restart()
	g.Score = 80
	g.Snake = game.Snake{{X: 0, Y: 0}}
	g.Heading = game.Up
	g.Update()

	if got := s.HighScore(); got != 120 {
		t.Errorf("expected stored high score to stay 120, got %d", got)
	}
}
