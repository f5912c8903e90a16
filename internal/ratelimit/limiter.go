// Package ratelimit paces concurrent bulk queries against an upstream
// server (spec SUPPLEMENTED BEHAVIOR: cmd/dnsq-bench). It is adapted
// from the ancestor server's per-client-IP inbound limiter into a
// per-server outbound one: instead of guarding a listener against too
// many requests from one source, it guards one upstream server against
// too many requests from this client.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter paces queries per upstream server using a token bucket per
// server, so a bulk run against N servers doesn't flood any single one.
type Limiter struct {
	mu               sync.Mutex
	limitersByServer map[string]*rate.Limiter
	queriesPerSec    rate.Limit
	burstSize        int
}

// Config controls the token bucket applied to each server.
type Config struct {
	QueriesPerSecond float64
	BurstSize        int
}

// DefaultConfig returns a conservative pacing suitable for a bulk-query
// tool hitting public resolvers.
func DefaultConfig() Config {
	return Config{QueriesPerSecond: 100, BurstSize: 20}
}

// New creates a Limiter from cfg.
func New(cfg Config) *Limiter {
	if cfg.QueriesPerSecond <= 0 {
		cfg.QueriesPerSecond = DefaultConfig().QueriesPerSecond
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = DefaultConfig().BurstSize
	}
	return &Limiter{
		limitersByServer: make(map[string]*rate.Limiter),
		queriesPerSec:    rate.Limit(cfg.QueriesPerSecond),
		burstSize:        cfg.BurstSize,
	}
}

func (l *Limiter) limiterFor(server string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.limitersByServer[server]
	if !ok {
		lim = rate.NewLimiter(l.queriesPerSec, l.burstSize)
		l.limitersByServer[server] = lim
	}
	return lim
}

// Wait blocks until server's bucket admits one more query or ctx is
// done.
func (l *Limiter) Wait(ctx context.Context, server string) error {
	return l.limiterFor(server).Wait(ctx)
}

// Servers reports how many distinct servers currently have a tracked
// bucket.
func (l *Limiter) Servers() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limitersByServer)
}
