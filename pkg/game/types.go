package game

import (
	"fmt"
	"time"
)

// Point represents a cell on the game board
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the cell one heading step away from p
func (p Point) Add(h Heading) Point {
	return Point{X: p.X + h.DX, Y: p.Y + h.DY}
}

// Heading is a unit step applied to the head on every tick
type Heading struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

var (
	Neutral = Heading{DX: 0, DY: 0}
	Up      = Heading{DX: 0, DY: -1}
	Down    = Heading{DX: 0, DY: 1}
	Left    = Heading{DX: -1, DY: 0}
	Right   = Heading{DX: 1, DY: 0}
)

// Opposite returns the reverse heading
func (h Heading) Opposite() Heading {
	return Heading{DX: -h.DX, DY: -h.DY}
}

// IsNeutral reports whether the heading has no movement
func (h Heading) IsNeutral() bool {
	return h == Neutral
}

func (h Heading) String() string {
	switch h {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case Neutral:
		return "neutral"
	}
	return fmt.Sprintf("(%d,%d)", h.DX, h.DY)
}

// Status is the run state of a game
type Status int

const (
	StatusIdle    Status = iota // Before the first start or after a reset
	StatusRunning               // Ticking
	StatusPaused                // Ticking suspended, state retained
	StatusOver                  // Terminal until reset
)

var statusNames = map[Status]string{
	StatusIdle:    "idle",
	StatusRunning: "running",
	StatusPaused:  "paused",
	StatusOver:    "over",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

func (s Status) MarshalText() ([]byte, error) {
	name, ok := statusNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown status %d", int(s))
	}
	return []byte(name), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for k, v := range statusNames {
		if v == string(text) {
			*s = k
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

// GameState is a read-only snapshot of a game for renderers and clients
type GameState struct {
	Size       int     `json:"size"`
	Snake      []Point `json:"snake"`
	Food       Point   `json:"food"`
	HasFood    bool    `json:"hasFood"`
	Heading    Heading `json:"heading"`
	Status     Status  `json:"status"`
	Score      int     `json:"score"`
	HighScore  int     `json:"highScore"`
	FoodEaten  int     `json:"foodEaten"`
	SpeedMs    int     `json:"speedMs"`
	Ticks      int     `json:"ticks"`
	Won        bool    `json:"won"`
	CrashPoint *Point  `json:"crashPoint,omitempty"`
}

// GameConfig is a DTO for the fixed game settings sent to clients on connect
type GameConfig struct {
	Size           int `json:"size"`
	CellPixels     int `json:"cellPixels"`
	InitialSpeedMs int `json:"initialSpeedMs"`
	MinSpeedMs     int `json:"minSpeedMs"`
	Reward         int `json:"reward"`
}

// RunResult summarizes a finished run
type RunResult struct {
	Score     int       `json:"score"`
	FoodEaten int       `json:"foodEaten"`
	Length    int       `json:"length"`
	Ticks     int       `json:"ticks"`
	Won       bool      `json:"won"`
	StartedAt time.Time `json:"startedAt"`
	EndedAt   time.Time `json:"endedAt"`
}

// StepRecord is one recorded frame of a run
type StepRecord struct {
	Tick  int       `json:"tick"`
	Time  time.Time `json:"time"`
	State GameState `json:"state"`
}

// EventType identifies what changed
type EventType int

const (
	EventState EventType = iota // Board changed, redraw
	EventScore                  // Score or high score changed
	EventOver                   // Run ended
)

func (t EventType) String() string {
	switch t {
	case EventState:
		return "state"
	case EventScore:
		return "score"
	case EventOver:
		return "over"
	}
	return fmt.Sprintf("event(%d)", int(t))
}

// Event is delivered to listeners after a state change
type Event struct {
	Type   EventType
	State  GameState
	Result *RunResult // Set for EventOver
}

// Listener receives game events. Listeners run inside the game's serialized
// section and must not block or call back into the Runner.
type Listener func(Event)

// Renderer draws a snapshot
type Renderer interface {
	Render(state GameState)
}

// ScoreStore persists the best score across sessions. HighScore returns 0
// when nothing is stored or the stored value is unreadable.
type ScoreStore interface {
	HighScore() int
	SetHighScore(score int) error
}
