// Package dnsmsg assembles the name/primitive/RDATA codecs in
// internal/wire, internal/catalog and internal/rdata into the full DNS
// message envelope: header plus the four counted sections, including the
// OPT pseudo-record (spec §3, §4.4). It is the direct descendant of
// internal/packet/parser.go in the ancestor DNS server, generalized from
// an opaque-RDATA parser into one that dispatches through the typed
// RDATA schema.
package dnsmsg

import (
	"errors"

	"github.com/dnsscience/dnsq/internal/catalog"
	"github.com/dnsscience/dnsq/internal/rdata"
	"github.com/dnsscience/dnsq/internal/wire"
)

var (
	ErrTooManyOPT    = errors.New("dnsmsg: more than one OPT record")
	ErrSectionCount  = errors.New("dnsmsg: section count does not match entries")
	ErrMessageTooBig = errors.New("dnsmsg: message exceeds 65535 octets")
)

// Question is one entry of the header's Question section.
type Question struct {
	Name  wire.Name
	Type  catalog.Type
	Class catalog.Class
}

// RR is one resource record: owner name, type, class, TTL, and typed
// RDATA (spec §3).
type RR struct {
	Name  wire.Name
	Type  catalog.Type
	Class catalog.Class
	TTL   uint32
	RData rdata.RR
}

// Message is a full DNS message: header plus the four sections.
type Message struct {
	Header     wire.Header
	Question   []Question
	Answer     []RR
	Authority  []RR
	Additional []RR
}

// OPT returns the message's EDNS pseudo-record, if any, reinterpreting
// its class/ttl/rdata fields per RFC 6891 §6.1.
func (m *Message) OPT() (EDNS, bool) {
	for _, rr := range m.Additional {
		if rr.Type == catalog.TypeOPT {
			return decodeEDNS(rr), true
		}
	}
	return EDNS{}, false
}

// EDNS is the decoded form of an OPT pseudo-record.
type EDNS struct {
	UDPSize       uint16
	ExtendedRcode uint8
	Version       uint8
	DO            bool
	Options       []rdata.Option
}

func decodeEDNS(rr RR) EDNS {
	e := EDNS{UDPSize: uint16(rr.Class)}
	e.ExtendedRcode = uint8(rr.TTL >> 24)
	e.Version = uint8(rr.TTL >> 16)
	e.DO = rr.TTL&catalog.EDNSFlagDO != 0
	for _, f := range rr.RData.Fields {
		if f.Kind == catalog.KindOptions {
			e.Options = f.Options
		}
	}
	return e
}

// NewOPT builds the OPT pseudo-RR for e.
func NewOPT(e EDNS) RR {
	ttl := uint32(e.ExtendedRcode)<<24 | uint32(e.Version)<<16
	if e.DO {
		ttl |= catalog.EDNSFlagDO
	}
	return RR{
		Name:  wire.Root,
		Type:  catalog.TypeOPT,
		Class: catalog.Class(e.UDPSize),
		TTL:   ttl,
		RData: rdata.RR{Type: catalog.TypeOPT, Fields: []rdata.Value{
			{Kind: catalog.KindOptions, Options: e.Options},
		}},
	}
}

// CombinedRcode returns the 12-bit rcode formed from the header's 4-bit
// field and the OPT extended-rcode high bits (spec §4, §6).
func (m *Message) CombinedRcode() catalog.Rcode {
	rc := uint16(m.Header.Rcode)
	if e, ok := m.OPT(); ok {
		rc |= uint16(e.ExtendedRcode) << 4
	}
	return catalog.Rcode(rc)
}

func countOPT(rrs []RR) int {
	n := 0
	for _, rr := range rrs {
		if rr.Type == catalog.TypeOPT {
			n++
		}
	}
	return n
}
