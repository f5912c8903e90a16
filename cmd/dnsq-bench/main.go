// Command dnsq-bench fires many independent queries concurrently against
// one resolver and reports aggregate throughput and RTT, the way
// tools/bench_throughput.go measured the ancestor server's handling
// capacity. It is additive tooling over the single-query coordinator
// (spec.md §5 "multiple concurrent queries are independent"), not a
// change to that contract: every query issued here is a complete,
// independent call into internal/query.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dnsscience/dnsq/internal/catalog"
	"github.com/dnsscience/dnsq/internal/metrics"
	"github.com/dnsscience/dnsq/internal/query"
	"github.com/dnsscience/dnsq/internal/ratelimit"
	"github.com/dnsscience/dnsq/internal/transport"
	"github.com/dnsscience/dnsq/internal/wire"
	"github.com/dnsscience/dnsq/internal/worker"
)

var (
	target   = flag.String("target", "127.0.0.1:53", "DNS server address")
	qtype    = flag.String("type", "A", "query type mnemonic")
	workers  = flag.Int("workers", 10, "number of concurrent workers")
	domain   = flag.String("domain", "example.com.", "domain to query")
	duration = flag.Duration("duration", 10*time.Second, "test duration")
	qps      = flag.Float64("qps", 0, "rate limit, queries/sec against target (0 = unlimited)")
	timeout  = flag.Duration("timeout", 2*time.Second, "per-query timeout")
)

func main() {
	flag.Parse()

	qn, err := wire.ParseName(*domain)
	if err != nil {
		log.Fatalf("parse domain: %v", err)
	}
	qt, err := catalog.ParseType(*qtype)
	if err != nil {
		log.Fatalf("parse type: %v", err)
	}

	log.Printf("benchmarking %s %s against %s with %d workers for %v", *domain, qt, *target, *workers, *duration)

	var limiter *ratelimit.Limiter
	if *qps > 0 {
		limiter = ratelimit.New(ratelimit.Config{QueriesPerSecond: *qps, BurstSize: *workers})
	}
	pool := worker.New(*workers)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	tr := transport.Transport{Kind: transport.KindUDP, Server: *target}
	results := make(chan worker.Outcome, *workers*4)

	var succeeded, failed uint64
	var tally sync.WaitGroup
	tally.Add(1)
	go func() {
		defer tally.Done()
		for outcome := range results {
			if outcome.Err != nil {
				metrics.ObserveError(errorKind(outcome.Err))
				atomic.AddUint64(&failed, 1)
				continue
			}
			metrics.ObserveQuery(tr.Kind.String(), outcome.Result.Message.CombinedRcode().String(), outcome.Result.RTT)
			atomic.AddUint64(&succeeded, 1)
		}
	}()

	// The *workers feeder goroutines keep the pool full for the duration
	// of the run: Run returns as soon as it has started a lookup and
	// blocks while the pool is full, so feeders naturally throttle to the
	// pool's processing rate.
	var feeders sync.WaitGroup
	for i := 0; i < *workers; i++ {
		feeders.Add(1)
		go func() {
			defer feeders.Done()
			for {
				select {
				case <-ctx.Done():
					return
				default:
				}
				lookup := func(jobCtx context.Context) (query.Result, error) {
					if limiter != nil {
						if err := limiter.Wait(jobCtx, *target); err != nil {
							return query.Result{}, err
						}
					}
					m := query.MakeQuery(qn, qt, query.Options{})
					return query.Query(jobCtx, m, tr, *timeout)
				}
				if err := pool.Run(ctx, lookup, results); err != nil {
					return
				}
			}
		}()
	}

	<-ctx.Done()
	feeders.Wait()
	pool.Wait()
	close(results)
	tally.Wait()

	report(atomic.LoadUint64(&succeeded), atomic.LoadUint64(&failed), *duration)
}

// errorKind maps a query failure down to the error-kind taxonomy spec.md
// §7 defines, so the "transport" metrics label reflects what actually
// failed (connect, tls-handshake, timeout, short-read, http-status,
// closed-early) instead of one undifferentiated bucket.
func errorKind(err error) string {
	switch {
	case errors.Is(err, transport.ErrTimeout):
		return "timeout"
	case errors.Is(err, transport.ErrTLSHandshake):
		return "tls-handshake"
	case errors.Is(err, transport.ErrConnect):
		return "connect"
	case errors.Is(err, transport.ErrShortRead):
		return "short-read"
	case errors.Is(err, transport.ErrHTTPStatus):
		return "http-status"
	case errors.Is(err, transport.ErrClosedEarly):
		return "closed-early"
	default:
		return "transport"
	}
}

func report(succeeded, failed uint64, d time.Duration) {
	total := succeeded + failed
	rate := float64(total) / d.Seconds()

	fmt.Fprintf(os.Stdout, "\n--- Results ---\n")
	fmt.Fprintf(os.Stdout, "Total Queries:  %d\n", total)
	fmt.Fprintf(os.Stdout, "Succeeded:      %d\n", succeeded)
	fmt.Fprintf(os.Stdout, "Failed:         %d\n", failed)
	fmt.Fprintf(os.Stdout, "Duration:       %.2fs\n", d.Seconds())
	fmt.Fprintf(os.Stdout, "QPS:            %.2f\n", rate)
}
