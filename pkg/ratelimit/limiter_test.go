package ratelimit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestLimiter_Allow(t *testing.T) {
	tests := []struct {
		name      string
		perSecond int
		burst     int
		calls     int
		want      int
	}{
		{"burst defaults to rate", 2, 0, 5, 2},
		{"explicit burst", 1, 3, 5, 3},
		{"under limit", 10, 0, 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.perSecond, tt.burst)
			now := time.Now()

			allowed := 0
			for i := 0; i < tt.calls; i++ {
				if l.Allow("10.0.0.1", now) {
					allowed++
				}
			}
			if allowed != tt.want {
				t.Errorf("allowed %d of %d, want %d", allowed, tt.calls, tt.want)
			}
		})
	}
}

func TestLimiter_SeparateKeys(t *testing.T) {
	l := New(1, 0)
	now := time.Now()

	if !l.Allow("a", now) || !l.Allow("b", now) {
		t.Fatal("first event of each key should be allowed")
	}
	if l.Allow("a", now) {
		t.Error("second event of key a should be limited")
	}
	if got := l.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}

func TestLimiter_Refill(t *testing.T) {
	l := New(10, 0)
	now := time.Now()

	for i := 0; i < 10; i++ {
		l.Allow("k", now)
	}
	if l.Allow("k", now) {
		t.Fatal("bucket should be empty")
	}
	if !l.Allow("k", now.Add(200*time.Millisecond)) {
		t.Error("bucket should refill after 200ms at 10/s")
	}
}

func TestLimiter_SweepsIdleKeys(t *testing.T) {
	l := New(1, 0, WithIdleTTL(time.Minute))
	start := time.Now()

	for _, k := range []string{"a", "b", "c"} {
		l.Allow(k, start)
	}
	if got := l.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}

	// Only "d" is fresh after two TTLs; the next Allow sweeps the rest.
	l.Allow("d", start.Add(2*time.Minute))
	if got := l.Len(); got != 1 {
		t.Errorf("Len() after sweep = %d, want 1", got)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	l := New(50, 0)
	now := time.Now()

	var wg sync.WaitGroup
	var allowed atomic.Int64
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("10.1.1.1", now) {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := allowed.Load(); got != 50 {
		t.Errorf("allowed = %d, want 50", got)
	}
}
