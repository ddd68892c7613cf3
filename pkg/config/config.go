package config

import "time"

// Board settings
const (
	GridSize   = 20 // Cells per side, the board is always square
	CellPixels = 20 // Canvas pixels per cell in the browser client
	StartX     = 10
	StartY     = 10
)

// Scoring and speed ramp
const (
	Reward       = 10                     // Points per food
	InitialSpeed = 150 * time.Millisecond // Tick interval at the start of a run
	SpeedStep    = 2 * time.Millisecond   // Interval shaved off per food
	MinSpeed     = 50 * time.Millisecond  // Interval never drops below this
)

// Emoji characters for terminal rendering
const (
	CharEmpty = "· " // Dot plus space to match emoji width
	CharHead  = "🟢"
	CharBody  = "🟩"
	CharFood  = "🔴"
	CharCrash = "💥"
)

// Defaults for the host binaries
const (
	DefaultAddr      = ":8080"
	DefaultDBPath    = "data/game.db"
	DefaultRecordDir = "records"
	DefaultLogLevel  = "info"
)
