package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Error kinds a caller can distinguish with errors.Is (spec.md §7): a
// failed dial, a failed TLS handshake, a deadline expiring mid-exchange,
// a connection that closed after delivering part of a frame, a non-200
// DoH response, and a connection that closed before anything came back
// at all each call for a different response from a caller deciding
// whether to retry, fail over to another transport, or give up.
var (
	ErrConnect      = errors.New("transport: connect failed")
	ErrTLSHandshake = errors.New("transport: tls handshake failed")
	ErrTimeout      = errors.New("transport: timed out")
	ErrShortRead    = errors.New("transport: connection closed before a full message was read")
	ErrHTTPStatus   = errors.New("transport: unexpected http status")
	ErrClosedEarly  = errors.New("transport: connection closed before any response was read")
)

// isTimeout reports whether err is a deadline expiring, whether
// reported by net.Conn/net.Dialer (a net.Error with Timeout() true) or
// by the context package directly.
func isTimeout(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) {
		return ne.Timeout()
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// wrapConnErr classifies a DialContext failure.
func wrapConnErr(err error) error {
	if err == nil {
		return nil
	}
	if isTimeout(err) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrConnect, err)
}

// wrapTLSErr classifies a TLS handshake failure.
func wrapTLSErr(err error) error {
	if err == nil {
		return nil
	}
	if isTimeout(err) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrTLSHandshake, err)
}

// wrapWriteErr classifies a failure sending the query itself: a
// deadline expiring, or the peer having closed the connection before
// any of the query could be delivered.
func wrapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	if isTimeout(err) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrClosedEarly, err)
}

// wrapReadErr classifies a failure reading the reply. gotAny reports
// whether any part of this response had already been read when err
// occurred: if so the peer closed mid-message (a short read); if not,
// it closed before returning anything at all.
func wrapReadErr(err error, gotAny bool) error {
	if err == nil {
		return nil
	}
	if isTimeout(err) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	if gotAny {
		return fmt.Errorf("%w: %v", ErrShortRead, err)
	}
	return fmt.Errorf("%w: %v", ErrClosedEarly, err)
}
