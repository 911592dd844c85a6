package ratelimit

import (
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/yndnr/checkgrid-go/pkg/cmap"
)

// DefaultIdleTTL is how long an idle key's bucket is kept.
const DefaultIdleTTL = 3 * time.Minute

type bucket struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

// Limiter applies one token bucket per key, typically a client IP.
type Limiter struct {
	limit rate.Limit
	burst int
	ttl   time.Duration

	buckets   *cmap.Map[*bucket]
	nextSweep atomic.Int64
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithIdleTTL sets how long an unused bucket survives.
func WithIdleTTL(ttl time.Duration) Option {
	return func(l *Limiter) {
		if ttl > 0 {
			l.ttl = ttl
		}
	}
}

// New creates a Limiter admitting perSecond events per key.
// burst <= 0 uses perSecond as the burst size.
func New(perSecond, burst int, opts ...Option) *Limiter {
	if burst <= 0 {
		burst = perSecond
	}
	l := &Limiter{
		limit:   rate.Limit(perSecond),
		burst:   burst,
		ttl:     DefaultIdleTTL,
		buckets: cmap.New[*bucket](),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow reports whether key may perform one event at now.
func (l *Limiter) Allow(key string, now time.Time) bool {
	l.sweep(now)

	b, _ := l.buckets.GetOrCreate(key, func() *bucket {
		return &bucket{limiter: rate.NewLimiter(l.limit, l.burst)}
	})
	b.lastSeen.Store(now.UnixNano())
	return b.limiter.AllowN(now, 1)
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	return l.buckets.Count()
}

// sweep drops buckets not used for ttl. At most one caller per ttl
// period does the work.
func (l *Limiter) sweep(now time.Time) {
	due := l.nextSweep.Load()
	if now.UnixNano() < due || !l.nextSweep.CompareAndSwap(due, now.Add(l.ttl).UnixNano()) {
		return
	}
	cutoff := now.Add(-l.ttl).UnixNano()
	l.buckets.DeleteFunc(func(_ string, b *bucket) bool {
		return b.lastSeen.Load() < cutoff
	})
}
