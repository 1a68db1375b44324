package memory

import (
	"context"
	"testing"

	"drb-quiz-service/internal/app"
	"drb-quiz-service/internal/clock"
	"drb-quiz-service/internal/questions"
)

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore()
	engine := app.NewEngine("s1", questions.MustBuiltin(), clock.Real{})

	store.Put(engine)
	if got, ok := store.Get("s1"); !ok || got != engine {
		t.Fatalf("expected session present")
	}
	if live, err := store.Live(context.Background()); err != nil || live != 1 {
		t.Fatalf("expected 1 session, got %d (%v)", live, err)
	}

	store.Delete("s1")
	if _, ok := store.Get("s1"); ok {
		t.Fatalf("expected session removed")
	}
}
