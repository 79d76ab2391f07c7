package sched

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type Timer interface {
	Stop() bool
}

type realClock struct{}

type realTimer struct{ t *time.Timer }

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return realTimer{t: time.AfterFunc(d, f)}
}

func (t realTimer) Stop() bool { return t.t.Stop() }

func RealClock() Clock { return realClock{} }

// Scheduler runs keyed delayed tasks. Scheduling a key that already has a
// pending task replaces it; Cancel stops a pending task before it fires.
type Scheduler struct {
	mu      sync.Mutex
	clock   Clock
	pending map[string]Timer
}

func New() *Scheduler {
	return &Scheduler{clock: realClock{}, pending: make(map[string]Timer)}
}

func (s *Scheduler) WithClock(clock Clock) {
	s.clock = clock
}

func (s *Scheduler) Schedule(key string, delay time.Duration, fn func()) {
	s.mu.Lock()
	if prev, ok := s.pending[key]; ok {
		prev.Stop()
	}
	var timer Timer
	timer = s.clock.AfterFunc(delay, func() {
		s.mu.Lock()
		if s.pending[key] == timer {
			delete(s.pending, key)
		}
		s.mu.Unlock()
		fn()
	})
	s.pending[key] = timer
	s.mu.Unlock()
}

func (s *Scheduler) Cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	timer, ok := s.pending[key]
	if !ok {
		return false
	}
	delete(s.pending, key)
	return timer.Stop()
}
