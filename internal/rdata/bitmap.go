package rdata

import (
	"sort"

	"github.com/dnsscience/dnsq/internal/catalog"
)

// decodeTypeBitmap parses the NSEC/NSEC3 type bitmap: a series of
// {window u8, bitmap-len u8 (1..32), bits} windows (spec §4.3).
func decodeTypeBitmap(b []byte) ([]catalog.Type, error) {
	var types []catalog.Type
	off := 0
	for off < len(b) {
		if len(b)-off < 2 {
			return nil, ErrRDLengthMismatch
		}
		window := int(b[off])
		length := int(b[off+1])
		off += 2
		if length < 1 || length > 32 || len(b)-off < length {
			return nil, ErrRDLengthMismatch
		}
		for i := 0; i < length; i++ {
			byt := b[off+i]
			for bit := 0; bit < 8; bit++ {
				if byt&(0x80>>uint(bit)) != 0 {
					types = append(types, catalog.Type(window*256+i*8+bit))
				}
			}
		}
		off += length
	}
	return types, nil
}

// encodeTypeBitmap serializes types into NSEC/NSEC3 bitmap windows, sorted
// ascending by window with each window's trailing zero octets trimmed.
func encodeTypeBitmap(buf []byte, types []catalog.Type) []byte {
	byWindow := make(map[int][]byte)
	for _, t := range types {
		window := int(t) / 256
		idx := int(t) % 256
		bm := byWindow[window]
		need := idx/8 + 1
		for len(bm) < need {
			bm = append(bm, 0)
		}
		bm[idx/8] |= 0x80 >> uint(idx%8)
		byWindow[window] = bm
	}

	windows := make([]int, 0, len(byWindow))
	for w := range byWindow {
		windows = append(windows, w)
	}
	sort.Ints(windows)

	for _, w := range windows {
		bm := byWindow[w]
		last := len(bm) - 1
		for last >= 0 && bm[last] == 0 {
			last--
		}
		bm = bm[:last+1]
		if len(bm) == 0 {
			continue
		}
		buf = append(buf, byte(w), byte(len(bm)))
		buf = append(buf, bm...)
	}
	return buf
}
