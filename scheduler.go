package main

import (
	"sort"
	"time"
)

// Clock supplies the current time to the viewer
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Timer is a callback scheduled on a Scheduler
type Timer struct {
	deadline time.Time
	seq      int
	fn       func()
	stopped  bool
}

// Stop cancels the timer. Returns false if it already fired or was stopped.
func (t *Timer) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Scheduler runs deferred callbacks on the frame loop.
// Nothing runs on its own goroutine: due timers fire inside RunDue.
type Scheduler struct {
	clock  Clock
	timers []*Timer
	seq    int
}

// NewScheduler creates a Scheduler reading time from clock
func NewScheduler(clock Clock) *Scheduler {
	return &Scheduler{clock: clock}
}

// Now returns the scheduler's current time
func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// AfterFunc schedules fn to run once d has elapsed
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) *Timer {
	s.seq++
	t := &Timer{
		deadline: s.clock.Now().Add(d),
		seq:      s.seq,
		fn:       fn,
	}
	s.timers = append(s.timers, t)
	return t
}

// Pending returns the number of timers that have neither fired nor been stopped
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// RunDue fires every timer whose deadline has passed, earliest first.
// Timers scheduled by a callback wait for the next call.
func (s *Scheduler) RunDue() {
	now := s.clock.Now()

	var due, remaining []*Timer
	for _, t := range s.timers {
		switch {
		case t.stopped:
		case !t.deadline.After(now):
			due = append(due, t)
		default:
			remaining = append(remaining, t)
		}
	}
	s.timers = remaining

	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline.Equal(due[j].deadline) {
			return due[i].seq < due[j].seq
		}
		return due[i].deadline.Before(due[j].deadline)
	})

	for _, t := range due {
		if t.stopped {
			continue
		}
		t.stopped = true
		t.fn()
	}
}
