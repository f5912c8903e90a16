package query

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dnsscience/dnsq/internal/catalog"
	"github.com/dnsscience/dnsq/internal/dnsmsg"
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

func aRecord(owner wire.Name, ip net.IP) dnsmsg.RR {
	return dnsmsg.RR{
		Name:  owner,
		Type:  catalog.TypeA,
		Class: catalog.ClassIN,
		TTL:   300,
		RData: rdata.RR{Type: catalog.TypeA, Fields: []rdata.Value{{Kind: catalog.KindIP4, IP: ip.To4()}}},
	}
}

func TestQueryUDPRoundTrip(t *testing.T) {
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1")})
	if err != nil {
		t.Fatalf("ListenUDP() error: %v", err)
	}
	defer conn.Close()

	owner := mustName(t, "example.com.")
	go func() {
		buf := make([]byte, 512)
		n, addr, err := conn.ReadFromUDP(buf)
		if err != nil {
			return
		}
		req, err := dnsmsg.Decode(buf[:n])
		if err != nil {
			return
		}
		reply := &dnsmsg.Message{
			Header: wire.Header{ID: req.Header.ID, QR: true, RD: true, RA: true},
			Question: req.Question,
			Answer:   []dnsmsg.RR{aRecord(owner, net.ParseIP("93.184.216.34"))},
		}
		out, err := dnsmsg.Encode(reply)
		if err != nil {
			return
		}
		conn.WriteToUDP(out, addr)
	}()

	m := MakeQuery(owner, catalog.TypeA, Options{})
	tr := transport.Transport{Kind: transport.KindUDP, Server: conn.LocalAddr().String()}
	result, err := Query(context.Background(), m, tr, time.Second)
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if len(result.Message.Answer) != 1 {
		t.Fatalf("Answer count = %d, want 1", len(result.Message.Answer))
	}
	if !result.Message.Answer[0].Name.EqualFold(owner) {
		t.Error("answer owner does not match queried name")
	}
}

func TestQueryIDMismatch(t *testing.T) {
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1")})
	if err != nil {
		t.Fatalf("ListenUDP() error: %v", err)
	}
	defer conn.Close()

	owner := mustName(t, "example.com.")
	go func() {
		buf := make([]byte, 512)
		n, addr, err := conn.ReadFromUDP(buf)
		if err != nil {
			return
		}
		req, err := dnsmsg.Decode(buf[:n])
		if err != nil {
			return
		}
		reply := &dnsmsg.Message{
			Header:   wire.Header{ID: req.Header.ID ^ 0xFFFF, QR: true},
			Question: req.Question,
		}
		out, err := dnsmsg.Encode(reply)
		if err != nil {
			return
		}
		conn.WriteToUDP(out, addr)
	}()

	m := MakeQuery(owner, catalog.TypeA, Options{})
	tr := transport.Transport{Kind: transport.KindUDP, Server: conn.LocalAddr().String()}
	_, err = Query(context.Background(), m, tr, time.Second)
	if err == nil {
		t.Fatal("Query() should fail on transaction id mismatch")
	}
}

func TestQueryTCRetry(t *testing.T) {
	udpConn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1")})
	if err != nil {
		t.Fatalf("ListenUDP() error: %v", err)
	}
	defer udpConn.Close()

	tcpLn, err := net.Listen("tcp", "127.0.0.1:"+udpPort(t, udpConn))
	if err != nil {
		t.Fatalf("Listen() error: %v", err)
	}
	defer tcpLn.Close()

	owner := mustName(t, "example.com.")

	go func() {
		buf := make([]byte, 512)
		n, addr, err := udpConn.ReadFromUDP(buf)
		if err != nil {
			return
		}
		req, err := dnsmsg.Decode(buf[:n])
		if err != nil {
			return
		}
		reply := &dnsmsg.Message{
			Header:   wire.Header{ID: req.Header.ID, QR: true, TC: true},
			Question: req.Question,
		}
		out, err := dnsmsg.Encode(reply)
		if err != nil {
			return
		}
		udpConn.WriteToUDP(out, addr)
	}()

	go func() {
		conn, err := tcpLn.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		var lenBuf [2]byte
		if _, err := readFull(conn, lenBuf[:]); err != nil {
			return
		}
		msgLen := int(lenBuf[0])<<8 | int(lenBuf[1])
		reqBytes := make([]byte, msgLen)
		if _, err := readFull(conn, reqBytes); err != nil {
			return
		}
		req, err := dnsmsg.Decode(reqBytes)
		if err != nil {
			return
		}
		reply := &dnsmsg.Message{
			Header:   wire.Header{ID: req.Header.ID, QR: true},
			Question: req.Question,
			Answer:   []dnsmsg.RR{aRecord(owner, net.ParseIP("93.184.216.34"))},
		}
		out, err := dnsmsg.Encode(reply)
		if err != nil {
			return
		}
		header := []byte{byte(len(out) >> 8), byte(len(out))}
		conn.Write(header)
		conn.Write(out)
	}()

	m := MakeQuery(owner, catalog.TypeA, Options{})
	tr := transport.Transport{Kind: transport.KindUDP, Server: udpConn.LocalAddr().String()}
	result, err := Query(context.Background(), m, tr, time.Second)
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if len(result.Message.Answer) != 1 {
		t.Fatalf("Answer count after TCP retry = %d, want 1", len(result.Message.Answer))
	}
}

func udpPort(t *testing.T, conn *net.UDPConn) string {
	t.Helper()
	_, port, err := net.SplitHostPort(conn.LocalAddr().String())
	if err != nil {
		t.Fatalf("SplitHostPort() error: %v", err)
	}
	return port
}

func readFull(conn net.Conn, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := conn.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
