package sched

import (
	"sync"
	"testing"
	"time"
)

type fakeTimer struct {
	stopped bool
	fn      func()
}

func (t *fakeTimer) Stop() bool {
	t.stopped = true
	return true
}

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) AfterFunc(d time.Duration, fn func()) Timer {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &fakeTimer{fn: fn}
	f.timers = append(f.timers, t)
	return t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	pending := append([]*fakeTimer{}, f.timers...)
	f.timers = nil
	f.mu.Unlock()
	for _, timer := range pending {
		if !timer.stopped {
			timer.fn()
		}
	}
}

func TestScheduleFires(t *testing.T) {
	s := New()
	clock := &fakeClock{now: time.Unix(0, 0)}
	s.WithClock(clock)

	fired := 0
	s.Schedule("k", 5*time.Second, func() { fired++ })
	clock.Advance(5 * time.Second)
	if fired != 1 {
		t.Fatalf("expected 1 fire, got %d", fired)
	}
}

func TestCancelSuppresses(t *testing.T) {
	s := New()
	clock := &fakeClock{now: time.Unix(0, 0)}
	s.WithClock(clock)

	fired := 0
	s.Schedule("k", 5*time.Second, func() { fired++ })
	if !s.Cancel("k") {
		t.Fatalf("expected cancel to find pending task")
	}
	clock.Advance(time.Minute)
	if fired != 0 {
		t.Fatalf("expected no fire after cancel, got %d", fired)
	}
	if s.Cancel("k") {
		t.Fatalf("second cancel should find nothing")
	}
}

func TestRescheduleReplaces(t *testing.T) {
	s := New()
	clock := &fakeClock{now: time.Unix(0, 0)}
	s.WithClock(clock)

	got := ""
	s.Schedule("k", 5*time.Second, func() { got = "first" })
	s.Schedule("k", 5*time.Second, func() { got = "second" })
	clock.Advance(5 * time.Second)
	if got != "second" {
		t.Fatalf("expected replacement task, got %q", got)
	}
}
