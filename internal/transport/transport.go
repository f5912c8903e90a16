// Package transport dials the upstream server and exchanges one DNS
// message for another over it (spec §4.6). It is the client-side
// counterpart of the ancestor server's listeners in this same package:
// those accepted connections and dispatched to a Handler; these dial a
// connection and return the single reply. The per-protocol framing
// conventions (length-prefixed TCP/DoT, POST application/dns-message
// DoH) carry over; the accept-loop lifecycle management does not.
package transport

import (
	"context"
	"crypto/tls"
	"errors"
	"time"
)

// ErrUnknownTransport is returned by Send for a Transport value whose
// Kind has no registered sender.
var ErrUnknownTransport = errors.New("transport: unknown transport kind")

// Kind selects the wire transport a Transport value uses.
type Kind int

const (
	KindUDP Kind = iota
	KindTCP
	KindDoT
	KindDoHHTTPS
	KindDoHHTTP
)

func (k Kind) String() string {
	switch k {
	case KindUDP:
		return "udp"
	case KindTCP:
		return "tcp"
	case KindDoT:
		return "dot"
	case KindDoHHTTPS:
		return "doh-https"
	case KindDoHHTTP:
		return "doh-http"
	default:
		return "unknown"
	}
}

// Transport names one way to reach one server (spec §4.6). Server is a
// host:port for UDP/TCP/DoT, or a full URL for DoH. ServerName is the
// TLS SNI/verification name for DoT and DoH-over-HTTPS; it defaults to
// Server's host when empty.
type Transport struct {
	Kind       Kind
	Server     string
	ServerName string
	TLSConfig  *tls.Config // optional override; nil builds a default config
}

// Result is the outcome of one query/response exchange.
type Result struct {
	Response []byte
	RTT      time.Duration
}

// Send encodes nothing itself: it takes an already-encoded query
// message and returns an already-encoded reply, the uniform contract
// every sender in this package implements (spec §4.6, §4.7).
func Send(ctx context.Context, tr Transport, query []byte, timeout time.Duration) (Result, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var resp []byte
	var err error
	switch tr.Kind {
	case KindUDP:
		resp, err = sendUDP(ctx, tr, query)
	case KindTCP:
		resp, err = sendTCP(ctx, tr, query)
	case KindDoT:
		resp, err = sendDoT(ctx, tr, query)
	case KindDoHHTTPS, KindDoHHTTP:
		resp, err = sendDoH(ctx, tr, query)
	default:
		return Result{}, ErrUnknownTransport
	}
	if err != nil {
		return Result{}, err
	}
	return Result{Response: resp, RTT: time.Since(start)}, nil
}
