package clock

import (
	"testing"
	"time"
)

func TestManualFiresInDueOrder(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	var order []string
	m.AfterFunc(2*time.Second, func() { order = append(order, "late") })
	m.AfterFunc(time.Second, func() { order = append(order, "early") })

	m.Advance(500 * time.Millisecond)
	if len(order) != 0 {
		t.Fatalf("nothing should fire yet, got %v", order)
	}
	m.Advance(2 * time.Second)
	if len(order) != 2 || order[0] != "early" || order[1] != "late" {
		t.Fatalf("unexpected order %v", order)
	}
	if m.Pending() != 0 {
		t.Fatalf("expected no pending timers, got %d", m.Pending())
	}
}

func TestManualStop(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	fired := false
	h := m.AfterFunc(time.Second, func() { fired = true })

	if !h.Stop() {
		t.Fatalf("first stop should report true")
	}
	if h.Stop() {
		t.Fatalf("second stop should report false")
	}
	m.Advance(time.Minute)
	if fired {
		t.Fatalf("stopped timer fired")
	}
}

func TestManualStopAfterFire(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	h := m.AfterFunc(time.Millisecond, func() {})
	m.FireAll()
	if h.Stop() {
		t.Fatalf("stop after fire should report false")
	}
}

func TestRealFires(t *testing.T) {
	done := make(chan struct{})
	Real{}.AfterFunc(time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("real timer did not fire")
	}
}
