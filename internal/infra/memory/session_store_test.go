package memory

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"quiz-session-service/internal/app"
)

func TestSessionStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()

	session := newSession(t, "s1", time.Now)
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got, ok := store.Get(ctx, "s1"); !ok || got != session {
		t.Fatalf("expected session present")
	}

	store.Delete(ctx, "s1")
	if _, ok := store.Get(ctx, "s1"); ok {
		t.Fatalf("expected session removed")
	}
}

func TestSessionStoreSweep(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	_ = store.Save(ctx, newSession(t, "old", func() time.Time { return base.Add(-time.Hour) }))
	_ = store.Save(ctx, newSession(t, "fresh", func() time.Time { return base.Add(-time.Minute) }))

	if n := store.Sweep(base, 30*time.Minute); n != 1 {
		t.Fatalf("expected 1 swept session, got %d", n)
	}
	if _, ok := store.Get(ctx, "old"); ok {
		t.Fatalf("expected idle session removed")
	}
	if store.Len() != 1 {
		t.Fatalf("expected fresh session kept, have %d", store.Len())
	}
}

func newSession(t *testing.T, id string, now func() time.Time) *app.Session {
	t.Helper()
	quiz, err := app.NewQuizSession(sampleBank().Questions, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("new quiz: %v", err)
	}
	return app.NewSessionWithClock(id, "china", quiz, now)
}
