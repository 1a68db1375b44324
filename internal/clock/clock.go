// Package clock provides the one-shot timers the quiz engine schedules.
package clock

import (
	"sort"
	"sync"
	"time"
)

// Handle cancels a scheduled callback. Stop reports whether the call
// prevented the callback from running.
type Handle interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Handle
}

// Real schedules with time.AfterFunc.
type Real struct{}

func (Real) AfterFunc(d time.Duration, f func()) Handle {
	return time.AfterFunc(d, f)
}

// Manual is a scheduler driven by Advance; timers fire on the caller's goroutine.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	m       *Manual
	seq     int
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) AfterFunc(d time.Duration, f func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTimer{m: m, seq: m.seq, at: m.now.Add(d), f: f}
	m.timers = append(m.timers, t)
	return t
}

// Now returns the manual clock's current time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending returns how many timers are scheduled and neither fired nor stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

// Advance moves the clock forward and runs every timer that came due, in due order.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	var due []*manualTimer
	kept := m.timers[:0]
	for _, t := range m.timers {
		if !t.at.After(m.now) {
			t.fired = true
			due = append(due, t)
			continue
		}
		kept = append(kept, t)
	}
	m.timers = kept
	m.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if !due[i].at.Equal(due[j].at) {
			return due[i].at.Before(due[j].at)
		}
		return due[i].seq < due[j].seq
	})
	for _, t := range due {
		t.f()
	}
}

// FireAll advances the clock to the latest pending timer so that all of them fire.
func (m *Manual) FireAll() {
	m.mu.Lock()
	var latest time.Time
	for _, t := range m.timers {
		if t.at.After(latest) {
			latest = t.at
		}
	}
	d := latest.Sub(m.now)
	m.mu.Unlock()
	if d < 0 {
		d = 0
	}
	m.Advance(d)
}

func (t *manualTimer) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	for i, other := range t.m.timers {
		if other == t {
			t.m.timers = append(t.m.timers[:i], t.m.timers[i+1:]...)
			break
		}
	}
	return true
}
