package game

import "sync"

// Runner drives a Game's tick cycle and serializes every call into it, so
// input and ticks never interleave.
//
// Each tick is a one-shot timer armed for the current Speed. Arming takes
// a new epoch; a callback whose epoch is stale, or that finds the game no
// longer running, does nothing. Pause, reset and Stop bump the epoch, so at
// most one tick loop exists at any time.
type Runner struct {
	mu    sync.Mutex
	game  *Game
	sched Scheduler
	pilot Pilot
	epoch uint64
}

// NewRunner wraps g. The Runner owns g from now on.
func NewRunner(g *Game, s Scheduler) *Runner {
	return &Runner{game: g, sched: s}
}

// SetPilot makes p choose the heading before every tick. Nil disables it.
func (r *Runner) SetPilot(p Pilot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pilot = p
}

// Subscribe registers a listener on the underlying game
func (r *Runner) Subscribe(l Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.game.Subscribe(l)
}

func (r *Runner) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	was := r.game.Status
	r.game.Start()
	r.settle(was)
}

func (r *Runner) TogglePause() {
	r.mu.Lock()
	defer r.mu.Unlock()
	was := r.game.Status
	r.game.TogglePause()
	r.settle(was)
}

func (r *Runner) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disarm()
	r.game.Reset()
}

func (r *Runner) Restart() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disarm()
	r.game.Restart()
	if r.game.Status == StatusRunning {
		r.arm()
	}
}

func (r *Runner) SetHeading(h Heading) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game.SetHeading(h)
}

// Stop cancels any pending tick. The game keeps its state.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disarm()
}

func (r *Runner) Snapshot() GameState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game.Snapshot()
}

func (r *Runner) Config() GameConfig {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game.GetGameConfig()
}

// settle arms or disarms the timer after a transition out of status was
func (r *Runner) settle(was Status) {
	now := r.game.Status
	switch {
	case now == StatusRunning && was != StatusRunning:
		r.arm()
	case now != StatusRunning && was == StatusRunning:
		r.disarm()
	}
}

func (r *Runner) arm() {
	r.epoch++
	r.schedule(r.epoch)
}

func (r *Runner) disarm() {
	r.epoch++
	r.sched.Stop()
}

func (r *Runner) schedule(epoch uint64) {
	r.sched.Schedule(r.game.Speed, func() { r.tick(epoch) })
}

func (r *Runner) tick(epoch uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if epoch != r.epoch || r.game.Status != StatusRunning {
		return
	}

	if r.pilot != nil {
		r.game.SetHeading(r.pilot.NextHeading(r.game.Snapshot()))
	}
	r.game.Update()

	if r.game.Status == StatusRunning {
		r.schedule(epoch)
	}
}
