// Package server hosts one snake game per WebSocket connection and serves
// the browser page and a small JSON API.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"io"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/trytobebee/gridsnake/pkg/game"
	"github.com/trytobebee/gridsnake/pkg/input"
	"github.com/trytobebee/gridsnake/pkg/store"
)

//go:embed static
var staticFiles embed.FS

const (
	defaultLeaderboard = 10
	maxLeaderboard     = 100
	outBuffer          = 64
	writeWait          = 5 * time.Second
)

// ServerMessage is sent to the browser
type ServerMessage struct {
	Type       string           `json:"type"`
	Config     *game.GameConfig `json:"config,omitempty"`
	State      *game.GameState  `json:"state,omitempty"`
	FinalScore *int             `json:"finalScore,omitempty"`

	result *game.RunResult
}

// ClientMessage is received from the browser
type ClientMessage struct {
	Action string `json:"action"`
}

// Options configures a Server
type Options struct {
	Store     store.Store
	Logger    *log.Logger
	Record    bool
	RecordDir string

	// NewScheduler overrides the tick scheduler for each connection
	NewScheduler func() game.Scheduler
	// Placer overrides food placement for each connection
	Placer func() game.FoodPlacer
}

// Server routes HTTP and WebSocket traffic
type Server struct {
	opts     Options
	logger   *log.Logger
	upgrader websocket.Upgrader
	router   chi.Router
}

// New creates a server
func New(opts Options) *Server {
	if opts.Store == nil {
		opts.Store = store.NewMemoryStore(0)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.NewScheduler == nil {
		opts.NewScheduler = func() game.Scheduler { return game.NewTimerScheduler() }
	}

	s := &Server{
		opts:   opts,
		logger: opts.Logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins for development
			},
		},
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}

	r.Get("/ws", s.handleWebSocket)
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(10 * time.Second))
		r.Get("/highscore", s.handleHighScore)
		r.Get("/leaderboard", s.handleLeaderboard)
	})
	r.Handle("/*", http.FileServer(http.FS(static)))

	return r
}

func (s *Server) handleHighScore(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"highScore": s.opts.Store.HighScore()})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := defaultLeaderboard
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
		limit = min(n, maxLeaderboard)
	}

	runs, err := s.opts.Store.TopRuns(r.Context(), limit)
	if err != nil {
		s.logger.Error("leaderboard query failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "leaderboard unavailable"})
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	id := uuid.NewString()
	logger := s.logger.With("session", id[:8])
	logger.Info("client connected", "remote", r.RemoteAddr)

	sess := newSession(s, id, conn, logger)
	sess.run()

	logger.Info("client disconnected")
}

// session is one connection's game
type session struct {
	srv      *Server
	id       string
	conn     *websocket.Conn
	logger   *log.Logger
	runner   *game.Runner
	recorder *game.GameRecorder
	out      chan ServerMessage
	done     chan struct{} // closed when the reader stops
	dead     chan struct{} // closed when the writer stops
}

func newSession(srv *Server, id string, conn *websocket.Conn, logger *log.Logger) *session {
	opts := []game.Option{
		game.WithStore(srv.opts.Store),
		game.WithLogger(logger),
	}
	if srv.opts.Placer != nil {
		opts = append(opts, game.WithPlacer(srv.opts.Placer()))
	}

	sess := &session{
		srv:    srv,
		id:     id,
		conn:   conn,
		logger: logger,
		runner: game.NewRunner(game.NewGame(opts...), srv.opts.NewScheduler()),
		out:    make(chan ServerMessage, outBuffer),
		done:   make(chan struct{}),
		dead:   make(chan struct{}),
	}

	if srv.opts.Record {
		rec, err := game.NewRecorder(srv.opts.RecordDir, id, logger)
		if err != nil {
			logger.Error("recording disabled", "err", err)
		} else {
			sess.recorder = rec
			sess.runner.Subscribe(rec.Listener())
		}
	}

	return sess
}

func (s *session) run() {
	cfg := s.runner.Config()
	state := s.runner.Snapshot()
	s.out <- ServerMessage{Type: "config", Config: &cfg}
	s.out <- ServerMessage{Type: "state", State: &state}
	s.runner.Subscribe(s.onEvent)

	go s.writeLoop()

	s.readLoop()

	close(s.done)
	s.runner.Stop()
	<-s.dead

	if s.recorder != nil {
		if err := s.recorder.Close(); err != nil {
			s.logger.Error("close recording", "err", err)
		}
	}
}

// onEvent runs under the runner lock and never blocks on a slow client.
// State frames are dropped when the buffer is full; game over is delivered
// unless the reader or the writer has stopped.
func (s *session) onEvent(ev game.Event) {
	switch ev.Type {
	case game.EventState:
		state := ev.State
		select {
		case s.out <- ServerMessage{Type: "state", State: &state}:
		default:
			s.logger.Debug("state frame dropped", "tick", state.Ticks)
		}
	case game.EventOver:
		state := ev.State
		score := state.Score
		msg := ServerMessage{Type: "over", State: &state, FinalScore: &score, result: ev.Result}
		select {
		case s.out <- msg:
		case <-s.done:
			s.recordRun(*ev.Result)
		case <-s.dead:
			s.logger.Debug("over message dropped, writer stopped", "score", score)
			s.recordRun(*ev.Result)
		}
	}
}

func (s *session) writeLoop() {
	defer close(s.dead)
	for {
		select {
		case msg := <-s.out:
			if msg.result != nil {
				s.recordRun(*msg.result)
			}
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(msg); err != nil {
				s.logger.Debug("write failed", "err", err)
				// Unblock the reader so the session can end
				s.conn.Close()
				return
			}
		case <-s.done:
			return
		}
	}
}

func (s *session) recordRun(r game.RunResult) {
	ctx, cancel := context.WithTimeout(context.Background(), writeWait)
	defer cancel()
	if err := s.srv.opts.Store.RecordRun(ctx, r); err != nil {
		s.logger.Error("failed to record run", "score", r.Score, "err", err)
	}
}

func (s *session) readLoop() {
	for {
		var msg ClientMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("read error", "err", err)
			}
			return
		}
		s.handleAction(msg.Action)
	}
}

func (s *session) handleAction(name string) {
	action, heading := input.ParseAction(name)
	switch action {
	case input.ActionHeading:
		s.runner.SetHeading(heading)
	case input.ActionPause:
		s.runner.TogglePause()
	case input.ActionStart:
		s.runner.Start()
	case input.ActionRestart:
		s.runner.Restart()
	case input.ActionReset:
		s.runner.Reset()
	default:
		s.logger.Debug("unknown action", "action", name)
	}
}
