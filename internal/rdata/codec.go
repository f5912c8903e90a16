package rdata

import (
	"net"

	"github.com/dnsscience/dnsq/internal/catalog"
	"github.com/dnsscience/dnsq/internal/wire"
)

// Decode parses the RDATA of a record of the given type, found in msg at
// [start, end). msg is the whole message so that qname fields inside the
// RDATA may follow compression pointers (RFC 1035 places no restriction
// on where a pointer may be used); every other field is strictly bounded
// to [start, end). Decode fails with ErrRDLengthMismatch if the fields
// described by the type's schema do not consume exactly end-start octets.
func Decode(msg []byte, start, end int, t catalog.Type) (RR, error) {
	if end < start || end > len(msg) {
		return RR{}, ErrRDLengthMismatch
	}
	schema, ok := catalog.Lookup(t)
	if !ok {
		raw := make([]byte, end-start)
		copy(raw, msg[start:end])
		return RR{Type: t, Raw: raw}, nil
	}

	cursor := start
	fields := make([]Value, 0, len(schema))
	for i, f := range schema {
		last := i == len(schema)-1
		v, next, err := decodeField(msg, cursor, end, f.Kind, last)
		if err != nil {
			return RR{}, err
		}
		fields = append(fields, v)
		cursor = next
	}
	if cursor != end {
		return RR{}, ErrRDLengthMismatch
	}
	return RR{Type: t, Fields: fields}, nil
}

func decodeField(msg []byte, cursor, end int, kind catalog.FieldKind, last bool) (Value, int, error) {
	remain := end - cursor
	if remain < 0 {
		return Value{}, 0, ErrRDLengthMismatch
	}

	switch kind {
	case catalog.KindIP4:
		if remain < 4 {
			return Value{}, 0, ErrRDLengthMismatch
		}
		ip := make(net.IP, 4)
		copy(ip, msg[cursor:cursor+4])
		return Value{Kind: kind, IP: ip}, cursor + 4, nil

	case catalog.KindIP6:
		if remain < 16 {
			return Value{}, 0, ErrRDLengthMismatch
		}
		ip := make(net.IP, 16)
		copy(ip, msg[cursor:cursor+16])
		return Value{Kind: kind, IP: ip}, cursor + 16, nil

	case catalog.KindName:
		n, next, err := wire.DecodeName(msg, cursor)
		if err != nil {
			return Value{}, 0, err
		}
		if next > end {
			return Value{}, 0, ErrRDLengthMismatch
		}
		return Value{Kind: kind, Name: n}, next, nil

	case catalog.KindU8:
		if remain < 1 {
			return Value{}, 0, ErrRDLengthMismatch
		}
		return Value{Kind: kind, U8: msg[cursor]}, cursor + 1, nil

	case catalog.KindU16:
		if remain < 2 {
			return Value{}, 0, ErrRDLengthMismatch
		}
		v, next, _ := wire.Uint16(msg, cursor)
		return Value{Kind: kind, U16: v}, next, nil

	case catalog.KindU32:
		if remain < 4 {
			return Value{}, 0, ErrRDLengthMismatch
		}
		v, next, _ := wire.Uint32(msg, cursor)
		return Value{Kind: kind, U32: v}, next, nil

	case catalog.KindTime:
		if remain < 4 {
			return Value{}, 0, ErrRDLengthMismatch
		}
		v, next, _ := wire.Uint32(msg, cursor)
		return Value{Kind: kind, U32: v}, next, nil

	case catalog.KindQType:
		if remain < 2 {
			return Value{}, 0, ErrRDLengthMismatch
		}
		v, next, _ := wire.Uint16(msg, cursor)
		return Value{Kind: kind, QType: catalog.Type(v)}, next, nil

	case catalog.KindString:
		if remain < 1 {
			return Value{}, 0, ErrRDLengthMismatch
		}
		s, next, err := wire.CharString(msg[:end], cursor)
		if err != nil {
			return Value{}, 0, err
		}
		return Value{Kind: kind, Bytes: s}, next, nil

	case catalog.KindText:
		texts, err := wire.Text(msg[cursor:end])
		if err != nil {
			return Value{}, 0, err
		}
		return Value{Kind: kind, Texts: texts}, end, nil

	case catalog.KindBase64, catalog.KindHex, catalog.KindRemainingBytes:
		b := make([]byte, remain)
		copy(b, msg[cursor:end])
		return Value{Kind: kind, Bytes: b}, end, nil

	case catalog.KindSalt:
		if remain < 1 {
			return Value{}, 0, ErrRDLengthMismatch
		}
		n := int(msg[cursor])
		cursor++
		if end-cursor < n {
			return Value{}, 0, ErrRDLengthMismatch
		}
		b := make([]byte, n)
		copy(b, msg[cursor:cursor+n])
		return Value{Kind: kind, Bytes: b}, cursor + n, nil

	case catalog.KindHash:
		if remain < 1 {
			return Value{}, 0, ErrRDLengthMismatch
		}
		n := int(msg[cursor])
		cursor++
		if end-cursor < n {
			return Value{}, 0, ErrRDLengthMismatch
		}
		b := make([]byte, n)
		copy(b, msg[cursor:cursor+n])
		return Value{Kind: kind, Bytes: b}, cursor + n, nil

	case catalog.KindOptions:
		opts, err := decodeOptions(msg[cursor:end])
		if err != nil {
			return Value{}, 0, err
		}
		return Value{Kind: kind, Options: opts}, end, nil

	case catalog.KindTypes:
		types, err := decodeTypeBitmap(msg[cursor:end])
		if err != nil {
			return Value{}, 0, err
		}
		return Value{Kind: kind, Types: types}, end, nil

	case catalog.KindProperty:
		if remain < 2 {
			return Value{}, 0, ErrRDLengthMismatch
		}
		flags := msg[cursor]
		taglen := int(msg[cursor+1])
		cursor += 2
		if end-cursor < taglen {
			return Value{}, 0, ErrMalformedCAA
		}
		tag := string(msg[cursor : cursor+taglen])
		cursor += taglen
		value := make([]byte, end-cursor)
		copy(value, msg[cursor:end])
		return Value{Kind: kind, U8: flags, Property: CAAProperty{Tag: tag, Value: value}}, end, nil
	}
	return Value{}, 0, ErrUnsupportedKind
}

// Encode appends the wire form of rr to buf. For types with no schema
// entry, the raw bytes captured at decode time (or supplied directly by
// the caller) are emitted verbatim.
func Encode(buf []byte, rr RR) ([]byte, error) {
	schema, ok := catalog.Lookup(rr.Type)
	if !ok {
		return append(buf, rr.Raw...), nil
	}
	if len(rr.Fields) != len(schema) {
		return nil, ErrUnsupportedKind
	}
	var err error
	for i, f := range schema {
		buf, err = encodeField(buf, f.Kind, rr.Fields[i])
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func encodeField(buf []byte, kind catalog.FieldKind, v Value) ([]byte, error) {
	switch kind {
	case catalog.KindIP4:
		ip := v.IP.To4()
		if ip == nil {
			return nil, ErrUnsupportedKind
		}
		return append(buf, ip...), nil
	case catalog.KindIP6:
		ip := v.IP.To16()
		if ip == nil {
			return nil, ErrUnsupportedKind
		}
		return append(buf, ip...), nil
	case catalog.KindName:
		return v.Name.Encode(buf)
	case catalog.KindU8:
		return wire.PutUint8(buf, v.U8), nil
	case catalog.KindU16:
		return wire.PutUint16(buf, v.U16), nil
	case catalog.KindU32, catalog.KindTime:
		return wire.PutUint32(buf, v.U32), nil
	case catalog.KindQType:
		return wire.PutUint16(buf, uint16(v.QType)), nil
	case catalog.KindString:
		return wire.PutCharString(buf, v.Bytes), nil
	case catalog.KindText:
		return wire.PutText(buf, v.Texts), nil
	case catalog.KindBase64, catalog.KindHex, catalog.KindRemainingBytes:
		return append(buf, v.Bytes...), nil
	case catalog.KindSalt, catalog.KindHash:
		buf = append(buf, byte(len(v.Bytes)))
		return append(buf, v.Bytes...), nil
	case catalog.KindOptions:
		return encodeOptions(buf, v.Options), nil
	case catalog.KindTypes:
		return encodeTypeBitmap(buf, v.Types), nil
	case catalog.KindProperty:
		buf = append(buf, v.U8, byte(len(v.Property.Tag)))
		buf = append(buf, v.Property.Tag...)
		return append(buf, v.Property.Value...), nil
	}
	return nil, ErrUnsupportedKind
}

// Len returns the exact encoded length of rr's RDATA.
func Len(rr RR) int {
	buf, err := Encode(nil, rr)
	if err != nil {
		return 0
	}
	return len(buf)
}
