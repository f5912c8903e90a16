// Package query implements the coordinator that ties the message
// codec, transport multiplexer and correlation checks together into a
// single send-a-query/get-a-reply call (spec §4.7). It is the client
// equivalent of internal/engine's request pipeline in the ancestor
// server, stripped of everything server-side (ACL, rate limiting,
// caching, recursion) that doesn't apply to issuing one query.
package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dnsscience/dnsq/internal/catalog"
	"github.com/dnsscience/dnsq/internal/dnsmsg"
	"github.com/dnsscience/dnsq/internal/ednsopt"
	"github.com/dnsscience/dnsq/internal/metrics"
	"github.com/dnsscience/dnsq/internal/random"
	"github.com/dnsscience/dnsq/internal/transport"
	"github.com/dnsscience/dnsq/internal/wire"
)

// DefaultEDNSSize is the advertised UDP payload size attached when DO
// or any EDNS option is requested (spec §4.7 step 2).
const DefaultEDNSSize = 1232

var (
	ErrIDMismatch       = errors.New("query: reply transaction id does not match query")
	ErrNotAResponse     = errors.New("query: reply QR bit is not set")
	ErrQuestionMismatch = errors.New("query: reply question does not echo the query")
	ErrNonSuccess       = errors.New("query: reply has a non-QUERY opcode or non-NOERROR rcode")
)

// Options controls how MakeQuery attaches EDNS(0) to a question.
type Options struct {
	DO       bool
	EDNSSize uint16
	Cookies  *ednsopt.CookieJar
	Server   string // required when Cookies is set
}

// MakeQuery builds the question/header half of the message the
// coordinator will send (spec §4.7 step 1-2). The random transaction
// ID is generated here, the one process-wide resource safe to call
// from parallel queries (spec §5).
func MakeQuery(qname wire.Name, qtype catalog.Type, opts Options) *dnsmsg.Message {
	m := &dnsmsg.Message{
		Header: wire.Header{
			ID: random.TransactionID(),
			RD: true,
		},
		Question: []dnsmsg.Question{{Name: qname, Type: qtype, Class: catalog.ClassIN}},
	}

	wantsEDNS := opts.DO || opts.Cookies != nil
	if !wantsEDNS {
		return m
	}

	size := opts.EDNSSize
	if size == 0 {
		size = DefaultEDNSSize
	}
	edns := dnsmsg.EDNS{UDPSize: size, DO: opts.DO}
	if opts.Cookies != nil {
		edns.Options = append(edns.Options, opts.Cookies.Option(opts.Server))
	}
	m.Additional = append(m.Additional, dnsmsg.NewOPT(edns))
	return m
}

// Result is what the coordinator hands back to the caller.
type Result struct {
	Message *dnsmsg.Message
	Server  string
	RTT     time.Duration
}

// Query sends m to server over tr and returns the correlated,
// decoded reply (spec §4.7). A TC=1 UDP reply triggers exactly one
// TCP retry to the same server; everything else is surfaced as an
// error without masking the decoded message where one exists.
func Query(ctx context.Context, m *dnsmsg.Message, tr transport.Transport, timeout time.Duration) (Result, error) {
	query, err := dnsmsg.Encode(m)
	if err != nil {
		return Result{}, fmt.Errorf("query: encode: %w", err)
	}

	res, err := transport.Send(ctx, tr, query, timeout)
	if err != nil {
		return Result{}, fmt.Errorf("query: transport: %w", err)
	}

	reply, err := dnsmsg.Decode(res.Response)
	if err != nil {
		return Result{}, fmt.Errorf("query: decode: %w", err)
	}

	if err := correlate(m, reply); err != nil {
		return Result{Message: reply, Server: tr.Server, RTT: res.RTT}, err
	}

	if tr.Kind == transport.KindUDP && reply.Header.TC {
		metrics.ObserveTCPRetry()
		tcpTr := tr
		tcpTr.Kind = transport.KindTCP
		tcpRes, err := transport.Send(ctx, tcpTr, query, timeout)
		if err != nil {
			return Result{Message: reply, Server: tr.Server, RTT: res.RTT}, fmt.Errorf("query: tcp retry: %w", err)
		}
		tcpReply, err := dnsmsg.Decode(tcpRes.Response)
		if err != nil {
			return Result{Message: reply, Server: tr.Server, RTT: res.RTT}, fmt.Errorf("query: tcp retry decode: %w", err)
		}
		if err := correlate(m, tcpReply); err != nil {
			return Result{Message: tcpReply, Server: tcpTr.Server, RTT: tcpRes.RTT}, err
		}
		reply, res = tcpReply, tcpRes
		tr = tcpTr
	}

	result := Result{Message: reply, Server: tr.Server, RTT: res.RTT}
	opcode := catalog.Opcode(reply.Header.Opcode)
	if opcode != catalog.OpcodeQuery || reply.CombinedRcode() != catalog.RcodeNoError {
		return result, fmt.Errorf("%w: opcode=%s rcode=%s", ErrNonSuccess, opcode, reply.CombinedRcode())
	}
	return result, nil
}

func correlate(query, reply *dnsmsg.Message) error {
	if reply.Header.ID != query.Header.ID {
		return ErrIDMismatch
	}
	if !reply.Header.QR {
		return ErrNotAResponse
	}
	if len(reply.Question) != len(query.Question) {
		return ErrQuestionMismatch
	}
	for i, q := range query.Question {
		rq := reply.Question[i]
		if q.Type != rq.Type || q.Class != rq.Class || !q.Name.EqualFold(rq.Name) {
			return ErrQuestionMismatch
		}
	}
	return nil
}
