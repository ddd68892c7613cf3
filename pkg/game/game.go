package game

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/trytobebee/gridsnake/pkg/config"
)

// Game is the snake state machine. It is not safe for concurrent use; the
// Runner serializes access and drives the tick cycle.
type Game struct {
	Size       int
	Snake      Snake
	Heading    Heading
	Food       Point
	HasFood    bool // False once the board is full and no food fits
	Score      int
	HighScore  int
	FoodEaten  int
	Speed      time.Duration
	Status     Status
	Won        bool      // Run ended because the board filled up
	CrashPoint Point     // Cell the head tried to enter on game over
	Ticks      int       // Ticks applied in the current run
	StartTime  time.Time // Run start
	EndTime    time.Time // Run end

	placer    FoodPlacer
	store     ScoreStore
	logger    *log.Logger
	listeners []Listener
}

// Option configures a Game
type Option func(*Game)

// WithSize overrides the grid dimension
func WithSize(size int) Option {
	return func(g *Game) { g.Size = size }
}

// WithPlacer sets the food placer
func WithPlacer(p FoodPlacer) Option {
	return func(g *Game) { g.placer = p }
}

// WithStore sets where the high score lives
func WithStore(s ScoreStore) Option {
	return func(g *Game) { g.store = s }
}

// WithLogger sets the logger
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// NewGame creates a game in the Idle state with a fresh board
func NewGame(opts ...Option) *Game {
	g := &Game{Size: config.GridSize}
	for _, opt := range opts {
		opt(g)
	}
	if g.placer == nil {
		g.placer = NewRandomPlacer(time.Now().UnixNano())
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	if g.store != nil {
		g.HighScore = g.store.HighScore()
	}
	g.reset()
	return g
}

// Subscribe registers a listener for game events
func (g *Game) Subscribe(l Listener) {
	g.listeners = append(g.listeners, l)
}

// Start begins a run. Starting from Over resets the board first.
func (g *Game) Start() {
	switch g.Status {
	case StatusRunning, StatusPaused:
		return
	case StatusOver:
		g.reset()
	}

	g.Status = StatusRunning
	g.Heading = Right
	g.StartTime = time.Now()
	g.logger.Debug("run started", "food", g.Food)
	g.emit(EventState)
}

// TogglePause switches between Running and Paused
func (g *Game) TogglePause() {
	switch g.Status {
	case StatusRunning:
		g.Status = StatusPaused
	case StatusPaused:
		g.Status = StatusRunning
	default:
		return
	}
	g.emit(EventState)
}

// Reset returns the board to its initial Idle state
func (g *Game) Reset() {
	g.reset()
	g.emit(EventScore)
	g.emit(EventState)
}

// Restart resets and immediately starts a new run
func (g *Game) Restart() {
	g.Reset()
	g.Start()
}

func (g *Game) reset() {
	g.Snake = Snake{{X: config.StartX, Y: config.StartY}}
	g.Heading = Neutral
	g.Score = 0
	g.FoodEaten = 0
	g.Speed = config.InitialSpeed
	g.Status = StatusIdle
	g.Won = false
	g.CrashPoint = Point{}
	g.Ticks = 0
	g.StartTime = time.Time{}
	g.EndTime = time.Time{}

	food, ok := g.placer.Place(g.Snake.Occupied(), g.Size)
	if !ok {
		g.logger.Warn("no free cell for food on reset", "size", g.Size)
	}
	g.Food = food
	g.HasFood = ok
}

// SetHeading changes the heading for the next tick. Requests outside a
// running game, neutral requests and reversals are ignored.
func (g *Game) SetHeading(h Heading) bool {
	if g.Status != StatusRunning || h.IsNeutral() {
		return false
	}
	if h == g.Heading.Opposite() {
		return false
	}
	if h == g.Heading {
		return false
	}
	g.Heading = h
	return true
}

// Update advances the game by one tick
func (g *Game) Update() {
	if g.Status != StatusRunning {
		return
	}

	newHead := g.Snake.Head().Add(g.Heading)

	if !g.inBounds(newHead) || g.Snake.Contains(newHead) {
		g.CrashPoint = newHead
		g.endRun(false)
		return
	}

	g.Snake = g.Snake.Push(newHead)
	g.Ticks++

	if newHead == g.Food {
		g.Score += config.Reward
		g.FoodEaten++
		g.Speed -= config.SpeedStep
		if g.Speed < config.MinSpeed {
			g.Speed = config.MinSpeed
		}

		food, ok := g.placer.Place(g.Snake.Occupied(), g.Size)
		if !ok {
			// The head sits on the eaten food; there is nothing left to show
			g.HasFood = false
			g.endRun(true)
			return
		}
		g.Food = food
		g.HasFood = true
		g.emit(EventScore)
	} else {
		g.Snake = g.Snake.DropTail()
	}

	g.emit(EventState)
}

func (g *Game) inBounds(p Point) bool {
	return p.X >= 0 && p.X < g.Size && p.Y >= 0 && p.Y < g.Size
}

func (g *Game) endRun(won bool) {
	g.Status = StatusOver
	g.Won = won
	g.EndTime = time.Now()

	best := g.HighScore
	if g.store != nil {
		best = g.store.HighScore()
	}
	if g.Score > best {
		best = g.Score
		if g.store != nil {
			if err := g.store.SetHighScore(g.Score); err != nil {
				g.logger.Error("failed to persist high score", "score", g.Score, "err", err)
			}
		}
	}
	g.HighScore = best

	g.logger.Info("run over", "score", g.Score, "length", len(g.Snake), "won", won)

	result := g.Result()
	g.emit(EventScore)
	g.emit(EventState)
	g.emitOver(result)
}

// Result summarizes the current run
func (g *Game) Result() RunResult {
	return RunResult{
		Score:     g.Score,
		FoodEaten: g.FoodEaten,
		Length:    len(g.Snake),
		Ticks:     g.Ticks,
		Won:       g.Won,
		StartedAt: g.StartTime,
		EndedAt:   g.EndTime,
	}
}

// Snapshot returns a copy of the current state for serialization
func (g *Game) Snapshot() GameState {
	state := GameState{
		Size:      g.Size,
		Snake:     g.Snake.Clone(),
		Food:      g.Food,
		HasFood:   g.HasFood,
		Heading:   g.Heading,
		Status:    g.Status,
		Score:     g.Score,
		HighScore: g.HighScore,
		FoodEaten: g.FoodEaten,
		SpeedMs:   int(g.Speed.Milliseconds()),
		Ticks:     g.Ticks,
		Won:       g.Won,
	}
	if g.Status == StatusOver && !g.Won {
		crash := g.CrashPoint
		state.CrashPoint = &crash
	}
	return state
}

// GetGameConfig returns the fixed settings clients need to draw the board
func (g *Game) GetGameConfig() GameConfig {
	return GameConfig{
		Size:           g.Size,
		CellPixels:     config.CellPixels,
		InitialSpeedMs: int(config.InitialSpeed.Milliseconds()),
		MinSpeedMs:     int(config.MinSpeed.Milliseconds()),
		Reward:         config.Reward,
	}
}

func (g *Game) emit(t EventType) {
	if len(g.listeners) == 0 {
		return
	}
	ev := Event{Type: t, State: g.Snapshot()}
	for _, l := range g.listeners {
		l(ev)
	}
}

func (g *Game) emitOver(result RunResult) {
	if len(g.listeners) == 0 {
		return
	}
	ev := Event{Type: EventOver, State: g.Snapshot(), Result: &result}
	for _, l := range g.listeners {
		l(ev)
	}
}
