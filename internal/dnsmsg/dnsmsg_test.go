package dnsmsg

import (
	"net"
	"testing"

	"github.com/dnsscience/dnsq/internal/catalog"
	"github.com/dnsscience/dnsq/internal/rdata"
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

func TestEncodeDecodeRoundTrip(t *testing.T) {
	qname := mustName(t, "example.com.")
	m := &Message{
		Header: wire.Header{ID: 0x1234, RD: true, QR: false, Opcode: uint8(catalog.OpcodeQuery)},
		Question: []Question{
			{Name: qname, Type: catalog.TypeA, Class: catalog.ClassIN},
		},
	}
	buf, err := Encode(m)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	got, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if got.Header.ID != 0x1234 {
		t.Errorf("ID = %x, want 0x1234", got.Header.ID)
	}
	if !got.Header.RD {
		t.Error("RD = false, want true")
	}
	if len(got.Question) != 1 || !got.Question[0].Name.EqualFold(qname) {
		t.Fatalf("Question = %+v", got.Question)
	}
	if got.Question[0].Type != catalog.TypeA {
		t.Errorf("Type = %v, want A", got.Question[0].Type)
	}
}

func TestEncodeDecodeWithAnswerRR(t *testing.T) {
	qname := mustName(t, "example.com.")
	m := &Message{
		Header: wire.Header{ID: 1, QR: true, RA: true},
		Question: []Question{
			{Name: qname, Type: catalog.TypeA, Class: catalog.ClassIN},
		},
		Answer: []RR{
			{
				Name: qname, Type: catalog.TypeA, Class: catalog.ClassIN, TTL: 300,
				RData: rdata.RR{Type: catalog.TypeA, Fields: []rdata.Value{
					{Kind: catalog.KindIP4, IP: net.ParseIP("93.184.216.34")},
				}},
			},
		},
	}
	buf, err := Encode(m)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	got, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if len(got.Answer) != 1 {
		t.Fatalf("Answer = %+v, want 1 entry", got.Answer)
	}
	if got.Answer[0].TTL != 300 {
		t.Errorf("TTL = %d, want 300", got.Answer[0].TTL)
	}
	if !got.Answer[0].RData.Fields[0].IP.Equal(net.ParseIP("93.184.216.34")) {
		t.Errorf("Address = %v", got.Answer[0].RData.Fields[0].IP)
	}
}

func TestOPTHelpers(t *testing.T) {
	e := EDNS{UDPSize: 1232, Version: 0, DO: true, Options: []rdata.Option{
		{Code: catalog.OptCodeCookie, Data: []byte("abcdefgh")},
	}}
	rr := NewOPT(e)
	m := &Message{
		Header:     wire.Header{ID: 1, RD: true},
		Question:   []Question{{Name: wire.Root, Type: catalog.TypeA, Class: catalog.ClassIN}},
		Additional: []RR{rr},
	}

	buf, err := Encode(m)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	got, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	opt, ok := got.OPT()
	if !ok {
		t.Fatal("OPT() not found")
	}
	if opt.UDPSize != 1232 {
		t.Errorf("UDPSize = %d, want 1232", opt.UDPSize)
	}
	if !opt.DO {
		t.Error("DO = false, want true")
	}
	if len(opt.Options) != 1 || opt.Options[0].Code != catalog.OptCodeCookie {
		t.Errorf("Options = %+v", opt.Options)
	}
}

func TestEncodeMovesOPTLast(t *testing.T) {
	opt := NewOPT(EDNS{UDPSize: 1232})
	other := RR{
		Name: wire.Root, Type: catalog.TypeA, Class: catalog.ClassIN, TTL: 60,
		RData: rdata.RR{Type: catalog.TypeA, Fields: []rdata.Value{{Kind: catalog.KindIP4, IP: net.ParseIP("127.0.0.1")}}},
	}
	m := &Message{
		Header:     wire.Header{ID: 1},
		Additional: []RR{opt, other},
	}
	buf, err := Encode(m)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	got, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if len(got.Additional) != 2 {
		t.Fatalf("Additional = %+v", got.Additional)
	}
	if got.Additional[1].Type != catalog.TypeOPT {
		t.Errorf("last Additional record = %v, want OPT", got.Additional[1].Type)
	}
}

func TestDecodeRejectsTwoOPT(t *testing.T) {
	opt1 := NewOPT(EDNS{UDPSize: 1232})
	opt2 := NewOPT(EDNS{UDPSize: 4096})
	m := &Message{Header: wire.Header{ID: 1}, Additional: []RR{opt1, opt2}}

	h := m.Header
	h.ARCount = 2
	buf := h.Encode(nil)
	var err error
	for _, rr := range []RR{opt1, opt2} {
		buf, err = encodeRR(buf, rr)
		if err != nil {
			t.Fatalf("encodeRR() error: %v", err)
		}
	}

	if _, err := Decode(buf); err != ErrTooManyOPT {
		t.Errorf("Decode() error = %v, want ErrTooManyOPT", err)
	}
}

func TestEncodeRejectsTwoOPT(t *testing.T) {
	opt1 := NewOPT(EDNS{UDPSize: 1232})
	opt2 := NewOPT(EDNS{UDPSize: 4096})
	m := &Message{Header: wire.Header{ID: 1}, Additional: []RR{opt1, opt2}}
	if _, err := Encode(m); err != ErrTooManyOPT {
		t.Errorf("Encode() error = %v, want ErrTooManyOPT", err)
	}
}

func TestCombinedRcode(t *testing.T) {
	m := &Message{
		Header:     wire.Header{Rcode: 1}, // FORMERR low nibble
		Additional: []RR{NewOPT(EDNS{ExtendedRcode: 1})},
	}
	// extended rcode 1 in high bits + low nibble 1 = 0x11 = 17? verify math: rc = 1 | (1<<4) = 0x11 = 17
	if got := m.CombinedRcode(); got != catalog.Rcode(0x11) {
		t.Errorf("CombinedRcode() = %v (%d), want 17", got, got)
	}
}

func TestDecodeShortBuffer(t *testing.T) {
	if _, err := Decode([]byte{1, 2, 3}); err == nil {
		t.Error("Decode() of a too-short buffer should error")
	}
}
