package main

import (
	"testing"

	"github.com/trytobebee/gridsnake/pkg/game"
)

func TestOverSurvivesFullFrameBuffer(t *testing.T) {
	h := newHostEvents()

	for i := 0; i < 20; i++ {
		h.listen(game.Event{Type: game.EventState, State: game.GameState{Ticks: i, Status: game.StatusRunning}})
	}
	if len(h.frames) != cap(h.frames) {
		t.Fatalf("expected a full frame buffer, got %d", len(h.frames))
	}

	h.listen(game.Event{
		Type:   game.EventOver,
		State:  game.GameState{Status: game.StatusOver, Score: 40},
		Result: &game.RunResult{Score: 40},
	})

	select {
	case ev := <-h.overs:
		if ev.State.Status != game.StatusOver || ev.Result == nil || ev.Result.Score != 40 {
			t.Errorf("unexpected over event %+v", ev)
		}
	default:
		t.Fatal("game over was dropped")
	}

	h.drainFrames()
	if len(h.frames) != 0 {
		t.Errorf("expected stale frames discarded, %d left", len(h.frames))
	}
}

func TestLatestOverWins(t *testing.T) {
	h := newHostEvents()

	h.listen(game.Event{Type: game.EventOver, State: game.GameState{Score: 10}, Result: &game.RunResult{Score: 10}})
	h.listen(game.Event{Type: game.EventOver, State: game.GameState{Score: 20}, Result: &game.RunResult{Score: 20}})

	ev := <-h.overs
	if ev.State.Score != 20 {
		t.Errorf("expected the newest run, got score %d", ev.State.Score)
	}
}
