package transport

import (
	"context"
	"net"

	"github.com/dnsscience/dnsq/internal/bufpool"
)

func sendUDP(ctx context.Context, tr Transport, query []byte) ([]byte, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "udp", tr.Server)
	if err != nil {
		return nil, wrapConnErr(err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	if _, err := conn.Write(query); err != nil {
		return nil, wrapWriteErr(err)
	}

	buf := bufpool.GetLarge()
	defer bufpool.PutLarge(buf)

	n, err := conn.Read(buf)
	if err != nil {
		return nil, wrapReadErr(err, false)
	}
	out := make([]byte, n)
	copy(out, buf[:n])
	return out, nil
}
