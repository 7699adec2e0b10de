package scene

import (
	"sort"
	"time"

	"github.com/jmylchreest/poptip/internal/display"
)

// Scheduler runs one-shot callbacks.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) display.Timer
}

// ManualScheduler is a virtual clock. Timers fire only from Advance, on the
// caller's goroutine, in deadline order.
type ManualScheduler struct {
	now     time.Duration
	seq     int
	pending []*manualTimer
}

type manualTimer struct {
	s    *ManualScheduler
	at   time.Duration
	seq  int
	f    func()
	done bool
}

// NewManualScheduler returns a scheduler at time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc schedules f at now+d.
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) display.Timer {
	s.seq++
	t := &manualTimer{s: s, at: s.now + d, seq: s.seq, f: f}
	s.pending = append(s.pending, t)
	return t
}

// Now returns the virtual time elapsed since creation.
func (s *ManualScheduler) Now() time.Duration { return s.now }

// Pending returns the number of timers yet to fire.
func (s *ManualScheduler) Pending() int { return len(s.pending) }

// Advance moves the clock forward by d, firing every timer due on the way,
// including ones scheduled by callbacks. It returns how many fired.
func (s *ManualScheduler) Advance(d time.Duration) int {
	target := s.now + d
	fired := 0
	for {
		t := s.next(target)
		if t == nil {
			break
		}
		s.remove(t)
		t.done = true
		s.now = t.at
		t.f()
		fired++
	}
	s.now = target
	return fired
}

func (s *ManualScheduler) next(deadline time.Duration) *manualTimer {
	if len(s.pending) == 0 {
		return nil
	}
	sort.SliceStable(s.pending, func(i, j int) bool {
		if s.pending[i].at != s.pending[j].at {
			return s.pending[i].at < s.pending[j].at
		}
		return s.pending[i].seq < s.pending[j].seq
	})
	if s.pending[0].at > deadline {
		return nil
	}
	return s.pending[0]
}

func (s *ManualScheduler) remove(t *manualTimer) {
	for i, p := range s.pending {
		if p == t {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

func (t *manualTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	t.s.remove(t)
	return true
}
