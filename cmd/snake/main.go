package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/trytobebee/gridsnake/pkg/config"
	"github.com/trytobebee/gridsnake/pkg/game"
	"github.com/trytobebee/gridsnake/pkg/input"
	"github.com/trytobebee/gridsnake/pkg/renderer"
	"github.com/trytobebee/gridsnake/pkg/store"
)

func main() {
	dbPath := flag.String("db", "", "sqlite database for the high score and run history (default: JSON file in ~/.gridsnake)")
	demo := flag.Bool("demo", false, "let the autopilot steer")
	record := flag.Bool("record", false, "record every frame as JSONL")
	recordDir := flag.String("record-dir", config.DefaultRecordDir, "directory for recordings")
	logPath := flag.String("log", "", "write logs to this file")
	flag.Parse()

	// Raw-mode output owns the terminal, so logs go to a file or nowhere
	logger := log.New(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Println("Error opening log file:", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = log.NewWithOptions(f, log.Options{ReportTimestamp: true, Level: log.DebugLevel})
	}

	scores, runLog, closeStore, err := openStore(*dbPath, logger)
	if err != nil {
		fmt.Println("Error opening score store:", err)
		os.Exit(1)
	}
	defer closeStore()

	kb, err := input.OpenKeyboard()
	if err != nil {
		fmt.Println("Error opening keyboard:", err)
		os.Exit(1)
	}
	defer kb.Close()

	render := renderer.NewTerminalRenderer(config.GridSize)
	render.HideCursor()
	defer render.ShowCursor()

	g := game.NewGame(game.WithStore(scores), game.WithLogger(logger))
	runner := game.NewRunner(g, game.NewTimerScheduler())
	defer runner.Stop()

	if *demo {
		runner.SetPilot(game.GreedyPilot{})
	}

	if *record {
		rec, err := game.NewRecorder(*recordDir, uuid.NewString(), logger)
		if err != nil {
			logger.Error("recording disabled", "err", err)
		} else {
			defer rec.Close()
			runner.Subscribe(rec.Listener())
		}
	}

	// Listeners run inside the tick; hand frames to the main loop
	events := newHostEvents()
	runner.Subscribe(events.listen)

	render.Render(runner.Snapshot())
	if *demo {
		runner.Start()
	}

	// Main game loop
	for {
		select {
		case key := <-kb.Keys():
			action, heading := input.Decode(key)
			switch action {
			case input.ActionQuit:
				fmt.Println("\n  Thanks for playing! 👋")
				return
			case input.ActionRestart:
				runner.Restart()
			case input.ActionPause:
				runner.TogglePause()
			case input.ActionStart:
				runner.Start()
			case input.ActionHeading:
				runner.SetHeading(heading)
			}

		case state := <-events.frames:
			render.Render(state)

		case ev := <-events.overs:
			events.drainFrames()
			render.Render(ev.State)
			if runLog == nil || ev.Result == nil {
				continue
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := runLog.RecordRun(ctx, *ev.Result); err != nil {
				logger.Error("failed to record run", "err", err)
			}
			cancel()
		}
	}
}

// openStore returns the SQLite store when a path is given, otherwise the
// JSON file store, which keeps no run history
func openStore(dbPath string, logger *log.Logger) (game.ScoreStore, store.RunLog, func(), error) {
	if dbPath != "" {
		db, err := store.OpenSQLite(dbPath, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		return db, db, func() { db.Close() }, nil
	}

	path, err := store.DefaultFilePath()
	if err != nil {
		return nil, nil, nil, err
	}
	return store.NewFileStore(path, logger), nil, func() {}, nil
}
