package renderer

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/trytobebee/gridsnake/pkg/config"
	"github.com/trytobebee/gridsnake/pkg/game"
)

func TestRenderIdleBoard(t *testing.T) {
	var buf bytes.Buffer
	r := NewTerminalRendererTo(&buf, config.GridSize, false)

	g := game.NewGame()
	g.HighScore = 70
	r.Render(g.Snapshot())

	out := buf.String()
	if strings.Contains(out, "\033[H") {
		t.Error("clear sequence written with clear disabled")
	}
	for _, want := range []string{"Score: 0", "Best: 70", "Speed: 150ms", "Press Enter to start"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if n := strings.Count(out, config.CharHead); n != 1 {
		t.Errorf("expected one head, got %d", n)
	}
	if n := strings.Count(out, config.CharFood); n != 1 {
		t.Errorf("expected one food, got %d", n)
	}
}

func TestRenderSnakeAndStatus(t *testing.T) {
	var buf bytes.Buffer
	r := NewTerminalRendererTo(&buf, 5, true)

	s := game.GameState{
		Size:    5,
		Snake:   []game.Point{{X: 2, Y: 2}, {X: 1, Y: 2}, {X: 0, Y: 2}},
		Food:    game.Point{X: 4, Y: 4},
		HasFood: true,
		Status:  game.StatusPaused,
		SpeedMs: 146,
	}
	r.Render(s)

	out := buf.String()
	if !strings.HasPrefix(out, "\033[H") {
		t.Error("expected frame to start with a clear sequence")
	}
	if n := strings.Count(out, config.CharBody); n != 2 {
		t.Errorf("expected two body cells, got %d", n)
	}
	if !strings.Contains(out, "PAUSED") {
		t.Error("expected paused banner")
	}
	if n := strings.Count(out, config.CharFood); n != 1 {
		t.Errorf("expected one food, got %d", n)
	}
}

func TestRenderFullBoardWithoutFood(t *testing.T) {
	var buf bytes.Buffer
	r := NewTerminalRendererTo(&buf, 2, false)

	// The last food was eaten by the head; nothing should be drawn over it
	s := game.GameState{
		Size:    2,
		Snake:   []game.Point{{X: 1, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
		Food:    game.Point{X: 1, Y: 0},
		HasFood: false,
		Status:  game.StatusOver,
		Won:     true,
	}
	r.Render(s)

	out := buf.String()
	if strings.Contains(out, config.CharFood) {
		t.Error("food drawn on a full board")
	}
	if strings.Count(out, config.CharHead) != 1 || strings.Count(out, config.CharBody) != 3 {
		t.Errorf("expected head plus three body cells:\n%s", out)
	}
}

func TestRenderGameOver(t *testing.T) {
	var buf bytes.Buffer
	r := NewTerminalRendererTo(&buf, 5, false)

	// Wall hit: the crash point is off the board so the head is marked
	crash := game.Point{X: 5, Y: 2}
	s := game.GameState{
		Size:       5,
		Snake:      []game.Point{{X: 4, Y: 2}, {X: 3, Y: 2}},
		Food:       game.Point{X: 0, Y: 0},
		Status:     game.StatusOver,
		Score:      30,
		CrashPoint: &crash,
	}
	r.Render(s)

	out := buf.String()
	if !strings.Contains(out, "GAME OVER") || !strings.Contains(out, "Final score: 30") {
		t.Errorf("missing game over overlay:\n%s", out)
	}
	if strings.Count(out, config.CharCrash) != 1 || strings.Contains(out, config.CharHead) {
		t.Error("expected the head to be drawn as the crash cell")
	}

	buf.Reset()
	s.Won = true
	s.CrashPoint = nil
	r.Render(s)
	if !strings.Contains(buf.String(), "BOARD CLEARED") {
		t.Error("expected win overlay")
	}
}

func TestRenderResizesBoard(t *testing.T) {
	var buf bytes.Buffer
	r := NewTerminalRendererTo(&buf, 3, false)

	r.Render(game.GameState{Size: 6, Snake: []game.Point{{X: 5, Y: 5}}, Food: game.Point{X: 0, Y: 0}})
	if len(r.board) != 6 {
		t.Fatalf("expected board to grow to 6 rows, got %d", len(r.board))
	}
	if !strings.Contains(buf.String(), config.CharHead) {
		t.Error("head at (5,5) not drawn after resize")
	}
}

func BenchmarkRender(b *testing.B) {
	r := NewTerminalRendererTo(io.Discard, config.GridSize, true)
	s := game.NewGame().Snapshot()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Render(s)
	}
}

func BenchmarkPreAllocatedBoard(b *testing.B) {
	r := NewTerminalRendererTo(io.Discard, config.GridSize, false)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for y := range r.board {
			for x := range r.board[y] {
				r.board[y][x] = cellEmpty
			}
		}
	}
}
