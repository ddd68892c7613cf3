package game

import (
	"sync"
	"time"
)

// Scheduler runs at most one pending callback. Schedule replaces whatever
// is pending; Stop drops it.
type Scheduler interface {
	Schedule(d time.Duration, fn func())
	Stop()
}

// TimerScheduler schedules callbacks on a wall-clock timer
type TimerScheduler struct {
	mu    sync.Mutex
	timer *time.Timer
}

// NewTimerScheduler creates a scheduler backed by time.AfterFunc
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{}
}

func (s *TimerScheduler) Schedule(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(d, fn)
}

func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// ManualScheduler holds the pending callback until Fire is called. Used to
// step the tick cycle deterministically.
type ManualScheduler struct {
	mu       sync.Mutex
	pending  func()
	interval time.Duration
	count    int
}

func (s *ManualScheduler) Schedule(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = fn
	s.interval = d
	s.count++
}

func (s *ManualScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
}

// Pending reports whether a callback is waiting and its interval
func (s *ManualScheduler) Pending() (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval, s.pending != nil
}

// Scheduled returns how many times Schedule was called
func (s *ManualScheduler) Scheduled() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Fire runs the pending callback, if any, as if its timer expired
func (s *ManualScheduler) Fire() bool {
	s.mu.Lock()
	fn := s.pending
	s.pending = nil
	s.mu.Unlock()

	if fn == nil {
		return false
	}
	fn()
	return true
}

// Capture returns the pending callback without consuming it, so a test can
// run it later as a timer that was already firing when it got stopped
func (s *ManualScheduler) Capture() func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}
