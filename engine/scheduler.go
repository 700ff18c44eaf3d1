package engine

import (
	"sync"
	"time"
)

// Timer is a pending callback that can be cancelled.
type Timer interface {
	// Stop cancels the callback. It returns false if the callback already
	// ran or was already stopped.
	Stop() bool
}

// Scheduler runs a callback once after a delay. The engine drives automatic
// descent through it and never touches the wall clock directly.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealScheduler schedules on the runtime timer.
type RealScheduler struct{}

func (RealScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ManualScheduler is a virtual clock for tests and headless runs. Callbacks
// only run from Advance or FireNext, on the calling goroutine.
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	seq     uint64
	pending []*manualTimer
}

type manualTimer struct {
	s   *ManualScheduler
	due time.Duration
	seq uint64
	fn  func()
}

// NewManualScheduler returns a scheduler whose clock starts at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d < 0 {
		d = 0
	}
	s.seq++
	t := &manualTimer{s: s, due: s.now + d, seq: s.seq, fn: f}
	s.pending = append(s.pending, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	return t.s.remove(t)
}

// remove drops t from the pending list. Callers hold s.mu.
func (s *ManualScheduler) remove(t *manualTimer) bool {
	for i, p := range s.pending {
		if p == t {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return true
		}
	}
	return false
}

// popDue removes and returns the earliest timer due at or before limit.
func (s *ManualScheduler) popDue(limit time.Duration) *manualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()

	var next *manualTimer
	for _, t := range s.pending {
		if t.due > limit {
			continue
		}
		if next == nil || t.due < next.due || (t.due == next.due && t.seq < next.seq) {
			next = t
		}
	}
	if next == nil {
		return nil
	}
	s.remove(next)
	if next.due > s.now {
		s.now = next.due
	}
	return next
}

// Advance moves the clock forward by d, running every callback that comes
// due in order. Callbacks scheduled by callbacks run too if they fall inside
// the window. It returns the number of callbacks run.
func (s *ManualScheduler) Advance(d time.Duration) int {
	s.mu.Lock()
	limit := s.now + d
	s.mu.Unlock()

	fired := 0
	for {
		t := s.popDue(limit)
		if t == nil {
			break
		}
		t.fn()
		fired++
	}

	s.mu.Lock()
	if limit > s.now {
		s.now = limit
	}
	s.mu.Unlock()
	return fired
}

// FireNext jumps the clock to the earliest pending callback and runs it.
// It returns false when nothing is pending.
func (s *ManualScheduler) FireNext() bool {
	const forever = time.Duration(1<<63 - 1)
	t := s.popDue(forever)
	if t == nil {
		return false
	}
	t.fn()
	return true
}

// Now is the virtual time elapsed since creation.
func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending is the number of callbacks waiting to run.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
