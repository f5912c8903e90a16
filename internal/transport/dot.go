// DNS-over-TLS client, RFC 7858. Reuses the ancestor listener's
// length-prefixed framing convention (internal/transport/tcp.go's
// exchangeFramed) over a TLS client connection wrapped around a plain
// TCP dial.
package transport

import (
	"context"
	"crypto/tls"
	"net"
)

func sendDoT(ctx context.Context, tr Transport, query []byte) ([]byte, error) {
	serverName := tr.ServerName
	if serverName == "" {
		host, _, err := net.SplitHostPort(tr.Server)
		if err == nil {
			serverName = host
		}
	}

	cfg := tr.TLSConfig
	if cfg == nil {
		cfg = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	if cfg.ServerName == "" && serverName != "" {
		cfg = cfg.Clone()
		cfg.ServerName = serverName
	}

	var d net.Dialer
	raw, err := d.DialContext(ctx, "tcp", tr.Server)
	if err != nil {
		return nil, wrapConnErr(err)
	}
	defer raw.Close()

	conn := tls.Client(raw, cfg)
	if err := conn.HandshakeContext(ctx); err != nil {
		return nil, wrapTLSErr(err)
	}

	return exchangeFramed(ctx, conn, query)
}
