package worker

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dnsscience/dnsq/internal/catalog"
	"github.com/dnsscience/dnsq/internal/dnsmsg"
	"github.com/dnsscience/dnsq/internal/query"
	"github.com/dnsscience/dnsq/internal/rdata"
	"github.com/dnsscience/dnsq/internal/transport"
	"github.com/dnsscience/dnsq/internal/wire"
)

func mustName(t *testing.T, s string) wire.Name {
	t.Helper()
	n, err := wire.ParseName(s)
	if err != nil {
		t.Fatalf("ParseName(%q) error: %v", s, err)
	}
	return n
}

// fakeServer answers every well-formed UDP query it receives with an A
// record for the queried name, echoing the transaction id.
func fakeServer(t *testing.T) (*net.UDPConn, net.IP) {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1")})
	if err != nil {
		t.Fatalf("ListenUDP() error: %v", err)
	}
	ip := net.ParseIP("93.184.216.34")
	go func() {
		buf := make([]byte, 512)
		for {
			n, addr, err := conn.ReadFromUDP(buf)
			if err != nil {
				return
			}
			req, err := dnsmsg.Decode(buf[:n])
			if err != nil {
				continue
			}
			reply := &dnsmsg.Message{
				Header:   wire.Header{ID: req.Header.ID, QR: true, RD: true, RA: true},
				Question: req.Question,
				Answer: []dnsmsg.RR{{
					Name:  req.Question[0].Name,
					Type:  catalog.TypeA,
					Class: catalog.ClassIN,
					TTL:   300,
					RData: rdata.RR{Type: catalog.TypeA, Fields: []rdata.Value{{Kind: catalog.KindIP4, IP: ip.To4()}}},
				}},
			}
			out, err := dnsmsg.Encode(reply)
			if err != nil {
				continue
			}
			conn.WriteToUDP(out, addr)
		}
	}()
	return conn, ip
}

func TestPoolRunsQueriesConcurrently(t *testing.T) {
	conn, ip := fakeServer(t)
	defer conn.Close()

	tr := transport.Transport{Kind: transport.KindUDP, Server: conn.LocalAddr().String()}
	pool := New(4)
	results := make(chan Outcome, 8)

	names := []string{"a.example.", "b.example.", "c.example.", "d.example.", "e.example.", "f.example.", "g.example.", "h.example."}
	ctx := context.Background()
	for _, s := range names {
		owner := mustName(t, s)
		lookup := func(ctx context.Context) (query.Result, error) {
			m := query.MakeQuery(owner, catalog.TypeA, query.Options{})
			return query.Query(ctx, m, tr, 2*time.Second)
		}
		if err := pool.Run(ctx, lookup, results); err != nil {
			t.Fatalf("Run() error: %v", err)
		}
	}

	go func() {
		pool.Wait()
		close(results)
	}()

	got := 0
	for outcome := range results {
		got++
		if outcome.Err != nil {
			t.Fatalf("lookup %d failed: %v", got, outcome.Err)
		}
		if len(outcome.Result.Message.Answer) != 1 {
			t.Fatalf("Answer count = %d, want 1", len(outcome.Result.Message.Answer))
		}
		if got := outcome.Result.Message.Answer[0].RData.Fields[0].IP.String(); got != ip.String() {
			t.Errorf("answer address = %s, want %s", got, ip)
		}
	}
	if got != len(names) {
		t.Fatalf("got %d outcomes, want %d", got, len(names))
	}
}

func TestPoolDrainsMoreLookupsThanWorkers(t *testing.T) {
	conn, _ := fakeServer(t)
	defer conn.Close()

	tr := transport.Transport{Kind: transport.KindUDP, Server: conn.LocalAddr().String()}
	pool := New(2)
	results := make(chan Outcome, 6)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		owner := mustName(t, "load.example.")
		lookup := func(ctx context.Context) (query.Result, error) {
			m := query.MakeQuery(owner, catalog.TypeA, query.Options{})
			return query.Query(ctx, m, tr, 2*time.Second)
		}
		if err := pool.Run(ctx, lookup, results); err != nil {
			t.Fatalf("Run() error: %v", err)
		}
	}

	pool.Wait()
	close(results)

	n := 0
	for range results {
		n++
	}
	if n != 6 {
		t.Fatalf("got %d outcomes, want 6", n)
	}
}

func TestPoolRunRespectsCanceledContext(t *testing.T) {
	pool := New(1)
	// Occupy the only slot so a second Run call has to wait on ctx.Done().
	block := make(chan struct{})
	occupied := make(chan struct{})
	results := make(chan Outcome, 2)

	if err := pool.Run(context.Background(), func(ctx context.Context) (query.Result, error) {
		close(occupied)
		<-block
		return query.Result{}, nil
	}, results); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	<-occupied

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := pool.Run(ctx, func(ctx context.Context) (query.Result, error) {
		return query.Result{}, nil
	}, results); err == nil {
		t.Error("Run() should fail when ctx is already canceled and no slot is free")
	}

	close(block)
	pool.Wait()
}
