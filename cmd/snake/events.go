package main

import "github.com/trytobebee/gridsnake/pkg/game"

// hostEvents moves game events out of the tick onto the main loop. Frames
// may be dropped when the loop falls behind; game over is kept apart so
// its final frame and result always arrive.
type hostEvents struct {
	frames chan game.GameState
	overs  chan game.Event
}

func newHostEvents() *hostEvents {
	return &hostEvents{
		frames: make(chan game.GameState, 8),
		overs:  make(chan game.Event, 1),
	}
}

func (h *hostEvents) listen(ev game.Event) {
	switch ev.Type {
	case game.EventState:
		select {
		case h.frames <- ev.State:
		default:
		}
	case game.EventOver:
		// Replace an unread over event instead of dropping the new one
		for {
			select {
			case h.overs <- ev:
				return
			default:
			}
			select {
			case <-h.overs:
			default:
			}
		}
	}
}

// drainFrames discards frames queued before a game over so a stale running
// frame is not drawn over the final one
func (h *hostEvents) drainFrames() {
	for {
		select {
		case <-h.frames:
		default:
			return
		}
	}
}
