package rdata

import (
	"github.com/dnsscience/dnsq/internal/catalog"
	"github.com/dnsscience/dnsq/internal/wire"
)

// decodeOptions parses a sequence of {code u16, len u16, data} EDNS(0)
// options filling the given slice exactly (spec §4.3 "options" kind).
func decodeOptions(b []byte) ([]Option, error) {
	var opts []Option
	off := 0
	for off < len(b) {
		if len(b)-off < 4 {
			return nil, ErrRDLengthMismatch
		}
		code, next, _ := wire.Uint16(b, off)
		n, next2, _ := wire.Uint16(b, next)
		off = next2
		if len(b)-off < int(n) {
			return nil, ErrRDLengthMismatch
		}
		data := make([]byte, n)
		copy(data, b[off:off+int(n)])
		opts = append(opts, Option{Code: catalog.EDNSOption(code), Data: data})
		off += int(n)
	}
	return opts, nil
}

func encodeOptions(buf []byte, opts []Option) []byte {
	for _, o := range opts {
		buf = wire.PutUint16(buf, uint16(o.Code))
		buf = wire.PutUint16(buf, uint16(len(o.Data)))
		buf = append(buf, o.Data...)
	}
	return buf
}

// OptionsLen returns the exact encoded length of an OPT options list.
func OptionsLen(opts []Option) int {
	n := 0
	for _, o := range opts {
		n += 4 + len(o.Data)
	}
	return n
}
