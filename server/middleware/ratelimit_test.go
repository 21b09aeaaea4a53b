package middleware

import (
	"context"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestRateLimiter_CleanupStopsWithContext(t *testing.T) {
	rl := newRateLimiter(rate.Limit(1), 1, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		rl.cleanup(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup kept running after the context was canceled")
	}
}

func TestRateLimiter_EvictsIdleKeys(t *testing.T) {
	rl := newRateLimiter(rate.Limit(1), 1, time.Minute)
	start := time.Now()
	rl.reserve("old", start)
	rl.reserve("fresh", start.Add(2*time.Minute))

	rl.evict(start.Add(2*time.Minute + time.Second))

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.entries["old"]; ok {
		t.Error("idle key should be evicted")
	}
	if _, ok := rl.entries["fresh"]; !ok {
		t.Error("recent key should be kept")
	}
}
