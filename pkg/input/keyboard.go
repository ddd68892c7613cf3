package input

import (
	"sync"
	"unicode"

	"github.com/eiannone/keyboard"
	"github.com/pkg/errors"
	"github.com/trytobebee/gridsnake/pkg/game"
)

// KeyInput is one raw key press
type KeyInput struct {
	Char rune
	Key  keyboard.Key
}

// Keyboard streams key presses from a terminal in raw mode
type Keyboard struct {
	keys chan KeyInput
	stop chan struct{}
	once sync.Once
}

// OpenKeyboard switches the terminal to raw mode and starts reading keys.
// Close restores the terminal.
func OpenKeyboard() (*Keyboard, error) {
	if err := keyboard.Open(); err != nil {
		return nil, errors.Wrap(err, "open keyboard")
	}

	kb := &Keyboard{
		keys: make(chan KeyInput),
		stop: make(chan struct{}),
	}
	go kb.read()
	return kb, nil
}

func (kb *Keyboard) read() {
	for {
		char, key, err := keyboard.GetKey()
		if err != nil {
			return
		}
		select {
		case kb.keys <- KeyInput{Char: char, Key: key}:
		case <-kb.stop:
			return
		}
	}
}

// Keys delivers key presses until Close
func (kb *Keyboard) Keys() <-chan KeyInput {
	return kb.keys
}

// Close stops reading and restores the terminal. Safe to call twice.
func (kb *Keyboard) Close() {
	kb.once.Do(func() {
		close(kb.stop)
		keyboard.Close()
	})
}

type keyBinding struct {
	action  Action
	heading game.Heading
}

var specialKeys = map[keyboard.Key]keyBinding{
	keyboard.KeyArrowUp:    {ActionHeading, game.Up},
	keyboard.KeyArrowDown:  {ActionHeading, game.Down},
	keyboard.KeyArrowLeft:  {ActionHeading, game.Left},
	keyboard.KeyArrowRight: {ActionHeading, game.Right},
	keyboard.KeySpace:      {ActionPause, game.Neutral},
	keyboard.KeyEnter:      {ActionStart, game.Neutral},
	keyboard.KeyEsc:        {ActionQuit, game.Neutral},
	keyboard.KeyCtrlC:      {ActionQuit, game.Neutral},
}

// Letters are matched case-insensitively
var charKeys = map[rune]keyBinding{
	'w': {ActionHeading, game.Up},
	's': {ActionHeading, game.Down},
	'a': {ActionHeading, game.Left},
	'd': {ActionHeading, game.Right},
	'p': {ActionPause, game.Neutral},
	' ': {ActionPause, game.Neutral},
	'n': {ActionStart, game.Neutral},
	'r': {ActionRestart, game.Neutral},
	'q': {ActionQuit, game.Neutral},
}

// Decode maps a key press to the same commands the browser sends. Unbound
// keys decode to ActionNone.
func Decode(in KeyInput) (Action, game.Heading) {
	// Printable keys arrive with Key == 0, so only consult the special
	// table when there is no character
	if in.Char == 0 {
		if b, ok := specialKeys[in.Key]; ok {
			return b.action, b.heading
		}
		return ActionNone, game.Neutral
	}
	if b, ok := charKeys[unicode.ToLower(in.Char)]; ok {
		return b.action, b.heading
	}
	return ActionNone, game.Neutral
}
