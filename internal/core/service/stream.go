// Package service provides domain services for CheckGrid.
package service

import (
	"context"
	"sync/atomic"
	"time"
)

// DefaultStreamInterval is the delay between two counter events.
const DefaultStreamInterval = time.Second

// StreamService produces the live counter streams.
//
// Every stream is independent: it owns its ticker and counter and shares
// nothing with the grid or with other streams.
type StreamService struct {
	interval time.Duration
	active   atomic.Int64

	// onChange is called with the number of running streams.
	onChange func(active int64)
}

// NewStreamService creates a StreamService that emits one value per interval.
// A non-positive interval falls back to DefaultStreamInterval.
func NewStreamService(interval time.Duration, onChange func(active int64)) *StreamService {
	if interval <= 0 {
		interval = DefaultStreamInterval
	}
	if onChange == nil {
		onChange = func(int64) {}
	}
	return &StreamService{
		interval: interval,
		onChange: onChange,
	}
}

// Interval returns the delay between events.
func (s *StreamService) Interval() time.Duration {
	return s.interval
}

// Active returns the number of running generators.
func (s *StreamService) Active() int64 {
	return s.active.Load()
}

// Counter starts a generator that sends 1, 2, 3, ... on the returned
// channel, the first value one interval after the call.
//
// The channel is unbuffered, so nothing is produced ahead of the reader.
// When ctx is done the generator stops its ticker and closes the channel;
// no goroutine outlives ctx.
func (s *StreamService) Counter(ctx context.Context) <-chan uint64 {
	ch := make(chan uint64)
	s.onChange(s.active.Add(1))

	go func() {
		defer func() {
			// Bookkeeping first: a closed channel means the generator is gone.
			s.onChange(s.active.Add(-1))
			close(ch)
		}()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		var n uint64
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			n++
			select {
			case ch <- n:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch
}
