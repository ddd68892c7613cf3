package renderer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/trytobebee/gridsnake/pkg/config"
	"github.com/trytobebee/gridsnake/pkg/game"
)

// TerminalRenderer handles terminal-based rendering
type TerminalRenderer struct {
	out    io.Writer
	board  [][]int
	buffer strings.Builder
	clear  bool
}

// Cell types for the board
const (
	cellEmpty = iota
	cellHead
	cellBody
	cellFood
	cellCrash
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#28a745")).
			Bold(true)

	statStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#20c997"))

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333333"))

	gridStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#333333"))

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#dc3545")).
			Padding(0, 2).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

// NewTerminalRenderer creates a renderer for a size×size board writing to
// stdout
func NewTerminalRenderer(size int) *TerminalRenderer {
	return NewTerminalRendererTo(os.Stdout, size, true)
}

// NewTerminalRendererTo creates a renderer writing to out. When clear is
// set each frame starts by clearing the screen.
func NewTerminalRendererTo(out io.Writer, size int, clear bool) *TerminalRenderer {
	// Pre-allocate board to reduce GC pressure
	board := make([][]int, size)
	for i := range board {
		board[i] = make([]int, size)
	}

	return &TerminalRenderer{
		out:   out,
		board: board,
		clear: clear,
	}
}

// ShowCursor shows the cursor (call on exit)
func (r *TerminalRenderer) ShowCursor() {
	fmt.Fprint(r.out, "\033[?25h")
}

// HideCursor hides the cursor (call on start)
func (r *TerminalRenderer) HideCursor() {
	fmt.Fprint(r.out, "\033[?25l")
}

// Render draws one frame
func (r *TerminalRenderer) Render(s game.GameState) {
	if len(r.board) != s.Size {
		*r = *NewTerminalRendererTo(r.out, s.Size, r.clear)
	}

	r.buffer.Reset()
	if r.clear {
		r.buffer.WriteString("\033[H\033[2J\033[3J")
	}

	for y := range r.board {
		for x := range r.board[y] {
			r.board[y][x] = cellEmpty
		}
	}

	if s.HasFood {
		r.set(s.Food, cellFood)
	}
	for i := len(s.Snake) - 1; i >= 0; i-- {
		if i == 0 {
			r.set(s.Snake[i], cellHead)
		} else {
			r.set(s.Snake[i], cellBody)
		}
	}
	if s.CrashPoint != nil {
		// The crash cell is outside the board on wall hits; mark the head instead
		if !r.set(*s.CrashPoint, cellCrash) && len(s.Snake) > 0 {
			r.set(s.Snake[0], cellCrash)
		}
	}

	r.buffer.WriteString("\n  " + titleStyle.Render("🐍 SNAKE") + "\n")
	r.buffer.WriteString("  " + statStyle.Render(fmt.Sprintf("Score: %d  |  Best: %d  |  Speed: %dms  |  Length: %d",
		s.Score, s.HighScore, s.SpeedMs, len(s.Snake))) + "\n\n")

	var rows strings.Builder
	for y, row := range r.board {
		for _, cell := range row {
			switch cell {
			case cellEmpty:
				rows.WriteString(gridStyle.Render(config.CharEmpty))
			case cellHead:
				rows.WriteString(config.CharHead)
			case cellBody:
				rows.WriteString(config.CharBody)
			case cellFood:
				rows.WriteString(config.CharFood)
			case cellCrash:
				rows.WriteString(config.CharCrash)
			}
		}
		if y < len(r.board)-1 {
			rows.WriteString("\n")
		}
	}
	r.buffer.WriteString(indent(boardStyle.Render(rows.String()), "  "))
	r.buffer.WriteString("\n")

	switch s.Status {
	case game.StatusIdle:
		r.buffer.WriteString("\n  " + hintStyle.Render("Press Enter to start") + "\n")
	case game.StatusPaused:
		r.buffer.WriteString("\n  ⏸️  PAUSED - Press Space to continue\n")
	case game.StatusOver:
		msg := fmt.Sprintf("GAME OVER\nFinal score: %d", s.Score)
		if s.Won {
			msg = fmt.Sprintf("BOARD CLEARED!\nFinal score: %d", s.Score)
		}
		r.buffer.WriteString("\n" + indent(overlayStyle.Render(msg), "  ") + "\n")
		r.buffer.WriteString("  " + hintStyle.Render("Press R to restart or Q to quit") + "\n")
	}

	r.buffer.WriteString("\n  " + hintStyle.Render("WASD or arrows to move, Space to pause, Q to quit") + "\n")

	fmt.Fprint(r.out, r.buffer.String())
}

func (r *TerminalRenderer) set(p game.Point, cell int) bool {
	if p.Y < 0 || p.Y >= len(r.board) || p.X < 0 || p.X >= len(r.board[p.Y]) {
		return false
	}
	r.board[p.Y][p.X] = cell
	return true
}

func indent(block, prefix string) string {
	lines := strings.Split(block, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
