// Package worker runs a bounded number of DNS lookups at once, so
// cmd/dnsq-bench can fan a bulk run out across many independent queries
// (spec.md §5: "multiple concurrent queries are independent; there is no
// ordering guarantee across queries") without opening one socket per
// lookup in flight simultaneously. It replaces a generic task-queue
// abstraction with something shaped around exactly one job: run
// query.Query and report what came back.
package worker

import (
	"context"
	"sync"

	"github.com/dnsscience/dnsq/internal/query"
)

// Lookup is one query a Pool runs: typically a closure over query.Query
// against a single {qname, qtype, server} triple.
type Lookup func(ctx context.Context) (query.Result, error)

// Outcome is the result of one completed Lookup.
type Outcome struct {
	Result query.Result
	Err    error
}

// Pool bounds how many Lookups run concurrently, so a bulk run against
// thousands of names doesn't exhaust file descriptors or flood the
// resolver under test.
type Pool struct {
	sem chan struct{}
	wg  sync.WaitGroup
}

// New creates a Pool that runs at most workers Lookups concurrently.
func New(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{sem: make(chan struct{}, workers)}
}

// Run blocks until a worker slot is free or ctx is done, then starts fn
// in its own goroutine and delivers its Outcome to results. Run itself
// returns as soon as fn has been started, not when it completes; call
// Wait to block until every started Lookup has finished.
func (p *Pool) Run(ctx context.Context, fn Lookup, results chan<- Outcome) error {
	select {
	case p.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() { <-p.sem }()

		res, err := fn(ctx)
		select {
		case results <- Outcome{Result: res, Err: err}:
		case <-ctx.Done():
		}
	}()
	return nil
}

// Wait blocks until every Lookup started by Run has returned.
func (p *Pool) Wait() {
	p.wg.Wait()
}
