package input

import (
	"strings"

	"github.com/trytobebee/gridsnake/pkg/game"
)

// Action is a command from a browser client or the terminal keyboard
type Action int

const (
	ActionNone Action = iota
	ActionHeading
	ActionPause
	ActionStart
	ActionRestart
	ActionReset
	ActionQuit // Terminal only
)

// ParseAction maps a client action name to a command. Direction names and
// the browser key names for arrows and WASD both resolve to ActionHeading.
func ParseAction(name string) (Action, game.Heading) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "up", "arrowup", "w":
		return ActionHeading, game.Up
	case "down", "arrowdown", "s":
		return ActionHeading, game.Down
	case "left", "arrowleft", "a":
		return ActionHeading, game.Left
	case "right", "arrowright", "d":
		return ActionHeading, game.Right
	case "pause", "space":
		return ActionPause, game.Neutral
	case "start":
		return ActionStart, game.Neutral
	case "restart":
		return ActionRestart, game.Neutral
	case "reset":
		return ActionReset, game.Neutral
	}
	// " " trims to ""; treat the raw space key as pause
	if name == " " {
		return ActionPause, game.Neutral
	}
	return ActionNone, game.Neutral
}
