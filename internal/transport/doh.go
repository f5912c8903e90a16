// DNS-over-HTTPS client, RFC 8484. The ancestor listener decoded a
// POSTed application/dns-message body and packed a reply; the client
// role here is the mirror image: POST the query bytes and read back
// the body of an application/dns-message response.
package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const dnsMessageContentType = "application/dns-message"

var defaultDoHClient = &http.Client{}

func sendDoH(ctx context.Context, tr Transport, query []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tr.Server, bytes.NewReader(query))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}
	req.Header.Set("Content-Type", dnsMessageContentType)
	req.Header.Set("Accept", dnsMessageContentType)

	client := defaultDoHClient
	if tr.Kind == KindDoHHTTPS && (tr.TLSConfig != nil || tr.ServerName != "") {
		cfg := tr.TLSConfig
		if cfg == nil {
			cfg = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		if cfg.ServerName == "" && tr.ServerName != "" {
			cfg = cfg.Clone()
			cfg.ServerName = tr.ServerName
		}
		client = &http.Client{Transport: &http.Transport{TLSClientConfig: cfg}}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, classifyHTTPErr(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrHTTPStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 65535))
	if err != nil {
		return nil, wrapReadErr(err, len(body) > 0)
	}
	return body, nil
}

// classifyHTTPErr classifies a client.Do failure: http.Client already
// unwraps deadline and TLS errors into its returned *url.Error, so
// errors.As sees straight through to the underlying cause.
func classifyHTTPErr(err error) error {
	if isTimeout(err) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return fmt.Errorf("%w: %v", ErrTLSHandshake, err)
	}
	var recErr tls.RecordHeaderError
	if errors.As(err, &recErr) {
		return fmt.Errorf("%w: %v", ErrTLSHandshake, err)
	}
	return fmt.Errorf("%w: %v", ErrConnect, err)
}
