package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/trytobebee/gridsnake/pkg/config"
	"github.com/trytobebee/gridsnake/pkg/game"
	"github.com/trytobebee/gridsnake/pkg/renderer"
)

// RecordFile is one recording on disk
type RecordFile struct {
	Name      string
	Size      int64
	Time      time.Time
	SessionID string
}

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#48bb78")).Bold(true)
	metaStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#a0aec0"))
)

func main() {
	recordDir := flag.String("dir", config.DefaultRecordDir, "directory holding recordings")
	speed := flag.Float64("speed", 1, "playback speed multiplier")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: replay [-dir records] [-speed 1] [file.jsonl]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "replay"})

	if flag.NArg() == 0 {
		records, err := listRecords(*recordDir)
		if err != nil {
			logger.Fatal("cannot list recordings", "dir", *recordDir, "err", err)
		}
		printRecords(records)
		return
	}

	path := flag.Arg(0)
	if _, err := os.Stat(path); err != nil {
		path = filepath.Join(*recordDir, flag.Arg(0))
	}
	steps, err := game.ReadRecords(path)
	if err != nil {
		logger.Fatal("cannot read recording", "path", path, "err", err)
	}
	if len(steps) == 0 {
		logger.Fatal("recording has no frames", "path", path)
	}
	if *speed <= 0 {
		*speed = 1
	}

	render := renderer.NewTerminalRenderer(steps[0].State.Size)
	render.HideCursor()
	defer render.ShowCursor()

	for i, step := range steps {
		if i > 0 {
			time.Sleep(frameDelay(steps[i-1], step, *speed))
		}
		render.Render(step.State)
		fmt.Printf("  %s\n", metaStyle.Render(fmt.Sprintf("frame %d/%d  tick %d", i+1, len(steps), step.Tick)))
	}
}

// frameDelay is the recorded gap between two frames, scaled and capped so
// long pauses in the original run do not stall playback
func frameDelay(prev, next game.StepRecord, speed float64) time.Duration {
	d := next.Time.Sub(prev.Time)
	if d <= 0 {
		d = config.InitialSpeed
	}
	if d > time.Second {
		d = time.Second
	}
	return time.Duration(float64(d) / speed)
}

// listRecords finds recordings named game_{sessionID}_{timestamp}.jsonl,
// newest first
func listRecords(dir string) ([]RecordFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var records []RecordFile
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".jsonl" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		sessID := ""
		if parts := strings.Split(e.Name(), "_"); len(parts) >= 2 {
			sessID = parts[1]
		}
		records = append(records, RecordFile{
			Name:      e.Name(),
			Size:      info.Size(),
			Time:      info.ModTime(),
			SessionID: sessID,
		})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Time.After(records[j].Time)
	})
	return records, nil
}

func printRecords(records []RecordFile) {
	fmt.Println(headerStyle.Render("📼 Replay Library"))
	if len(records) == 0 {
		fmt.Println(metaStyle.Render("No recordings yet. Run the game with -record."))
		return
	}
	for _, r := range records {
		fmt.Println(r.Name)
		fmt.Println("  " + metaStyle.Render(fmt.Sprintf("Session: %s | Size: %d bytes | %s",
			r.SessionID, r.Size, r.Time.Format("2006-01-02 15:04:05"))))
	}
}
