// Package rdata implements the typed RDATA codec: decoding and
// re-encoding the payload of a resource record according to the schema
// internal/catalog assigns its type. Every supported type in spec §4.3
// has an entry; anything absent from the catalog decodes as an opaque
// blob per RFC 3597.
package rdata

import (
	"errors"
	"net"

	"github.com/dnsscience/dnsq/internal/catalog"
	"github.com/dnsscience/dnsq/internal/wire"
)

var (
	ErrRDLengthMismatch = errors.New("rdata: decoded length does not match rdlength")
	ErrUnsupportedKind  = errors.New("rdata: unsupported field kind")
	ErrMalformedCAA     = errors.New("rdata: malformed CAA property")
)

// Option is one EDNS(0) option from an OPT RDATA options list.
type Option struct {
	Code catalog.EDNSOption
	Data []byte
}

// CAAProperty is the CAA RDATA's tag+value pair (spec §4.3).
type CAAProperty struct {
	Tag   string
	Value []byte
}

// Value holds one decoded schema field. Exactly the member matching Kind
// is populated; the rest are zero, except that a Property value also
// carries the CAA flags octet in U8.
type Value struct {
	Kind     catalog.FieldKind
	IP       net.IP
	Name     wire.Name
	U8       uint8
	U16      uint16
	U32      uint32
	Bytes    []byte        // String / Base64 / Hex / Salt / Hash / RemainingBytes
	Texts    [][]byte      // Text
	QType    catalog.Type  // QType
	Options  []Option      // Options
	Types    []catalog.Type // Types (NSEC/NSEC3 bitmap, decoded)
	Property CAAProperty   // Property
}

// RR is a fully decoded RDATA payload: its type and the ordered field
// values the schema describes.
type RR struct {
	Type   catalog.Type
	Fields []Value
	// Raw holds the unmodified wire bytes whenever Type has no schema
	// entry (RFC 3597 "unknown RR" fallback).
	Raw []byte
}
