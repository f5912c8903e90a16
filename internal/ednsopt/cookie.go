// Package ednsopt builds and parses EDNS(0) option data carried in OPT
// RDATA (spec §4, RFC 6891). The DNS Cookie option (RFC 7873, RFC 9018)
// is adapted here from a server's secret-rotation/validation machinery
// into the simpler client role: mint an 8-byte client cookie per
// upstream server and echo back whatever server cookie that server
// last handed us.
package ednsopt

import (
	"crypto/rand"
	"errors"
	"sync"

	"github.com/dchest/siphash"

	"github.com/dnsscience/dnsq/internal/catalog"
	"github.com/dnsscience/dnsq/internal/rdata"
)

var (
	ErrInvalidCookie       = errors.New("ednsopt: invalid cookie option data")
	ErrInvalidClientCookie = errors.New("ednsopt: invalid client cookie length")
	ErrInvalidServerCookie = errors.New("ednsopt: invalid server cookie length")
)

const (
	clientCookieSize = 8
	minServerCookie  = 8
	maxServerCookie  = 32
)

// CookieJar mints a stable client cookie per upstream server address and
// remembers the server cookie most recently returned by that server, so
// later queries to the same server can echo it (RFC 7873 §5.2).
type CookieJar struct {
	mu      sync.Mutex
	key     [16]byte
	servers map[string]serverState
}

type serverState struct {
	clientCookie [8]byte
	serverCookie []byte
}

// NewCookieJar builds a jar keyed by a fresh random SipHash key, used to
// derive each server's client cookie deterministically for the lifetime
// of the jar.
func NewCookieJar() (*CookieJar, error) {
	j := &CookieJar{servers: make(map[string]serverState)}
	if _, err := rand.Read(j.key[:]); err != nil {
		return nil, err
	}
	return j, nil
}

// Option returns the COOKIE option to attach to a query bound for
// server, generating that server's client cookie on first use and
// echoing back any server cookie previously learned from it.
func (j *CookieJar) Option(server string) rdata.Option {
	j.mu.Lock()
	defer j.mu.Unlock()

	st, ok := j.servers[server]
	if !ok {
		st.clientCookie = j.deriveClientCookie(server)
		j.servers[server] = st
	}
	return rdata.Option{
		Code: catalog.OptCodeCookie,
		Data: FormatCookie(st.clientCookie, st.serverCookie),
	}
}

func (j *CookieJar) deriveClientCookie(server string) [8]byte {
	var out [8]byte
	h := siphash.New(j.key[:])
	h.Write([]byte(server))
	v := h.Sum64()
	for i := 0; i < 8; i++ {
		out[i] = byte(v >> (56 - 8*i))
	}
	return out
}

// Observe records the cookie option found in server's reply, if any, so
// future queries to that server can echo its server cookie.
func (j *CookieJar) Observe(server string, opts []rdata.Option) {
	for _, o := range opts {
		if o.Code != catalog.OptCodeCookie {
			continue
		}
		clientCookie, serverCookie, err := ParseCookie(o.Data)
		if err != nil {
			continue
		}
		j.mu.Lock()
		j.servers[server] = serverState{clientCookie: clientCookie, serverCookie: serverCookie}
		j.mu.Unlock()
		return
	}
}

// ParseCookie splits COOKIE option data into its client and optional
// server cookie parts (RFC 7873 §4).
func ParseCookie(data []byte) (clientCookie [8]byte, serverCookie []byte, err error) {
	if len(data) < clientCookieSize {
		return clientCookie, nil, ErrInvalidClientCookie
	}
	copy(clientCookie[:], data[:clientCookieSize])
	if len(data) == clientCookieSize {
		return clientCookie, nil, nil
	}
	serverCookie = append([]byte(nil), data[clientCookieSize:]...)
	if len(serverCookie) < minServerCookie || len(serverCookie) > maxServerCookie {
		return clientCookie, nil, ErrInvalidServerCookie
	}
	return clientCookie, serverCookie, nil
}

// FormatCookie builds COOKIE option data from a client cookie and an
// optional previously-learned server cookie.
func FormatCookie(clientCookie [8]byte, serverCookie []byte) []byte {
	data := make([]byte, clientCookieSize+len(serverCookie))
	copy(data[:clientCookieSize], clientCookie[:])
	copy(data[clientCookieSize:], serverCookie)
	return data
}
