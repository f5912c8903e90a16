package dnsmsg

import (
	"github.com/dnsscience/dnsq/internal/catalog"
	"github.com/dnsscience/dnsq/internal/rdata"
	"github.com/dnsscience/dnsq/internal/wire"
)

// Decode parses a complete DNS message (spec §4.4). Section counts in the
// header are trusted as loop bounds but every entry is still bounds
// checked; a short buffer aborts with wire.ErrShortBuffer, or with
// wire.ErrTruncated when a fixed-width field is cut off.
func Decode(msg []byte) (*Message, error) {
	h, err := wire.DecodeHeader(msg)
	if err != nil {
		return nil, err
	}

	cursor := wire.HeaderSize
	m := &Message{Header: h}

	m.Question = make([]Question, 0, h.QDCount)
	for i := 0; i < int(h.QDCount); i++ {
		q, next, err := decodeQuestion(msg, cursor)
		if err != nil {
			return nil, err
		}
		m.Question = append(m.Question, q)
		cursor = next
	}

	sections := []struct {
		count int
		dst   *[]RR
	}{
		{int(h.ANCount), &m.Answer},
		{int(h.NSCount), &m.Authority},
		{int(h.ARCount), &m.Additional},
	}
	for _, s := range sections {
		rrs := make([]RR, 0, s.count)
		for i := 0; i < s.count; i++ {
			rr, next, err := decodeRR(msg, cursor)
			if err != nil {
				return nil, err
			}
			rrs = append(rrs, rr)
			cursor = next
		}
		*s.dst = rrs
	}

	if countOPT(m.Answer)+countOPT(m.Authority)+countOPT(m.Additional) > 1 {
		return nil, ErrTooManyOPT
	}
	return m, nil
}

func decodeQuestion(msg []byte, offset int) (Question, int, error) {
	name, next, err := wire.DecodeName(msg, offset)
	if err != nil {
		return Question{}, 0, err
	}
	t, next, err := wire.Uint16(msg, next)
	if err != nil {
		return Question{}, 0, err
	}
	c, next, err := wire.Uint16(msg, next)
	if err != nil {
		return Question{}, 0, err
	}
	return Question{Name: name, Type: catalog.Type(t), Class: catalog.Class(c)}, next, nil
}

func decodeRR(msg []byte, offset int) (RR, int, error) {
	name, next, err := wire.DecodeName(msg, offset)
	if err != nil {
		return RR{}, 0, err
	}
	t, next, err := wire.Uint16(msg, next)
	if err != nil {
		return RR{}, 0, err
	}
	c, next, err := wire.Uint16(msg, next)
	if err != nil {
		return RR{}, 0, err
	}
	ttl, next, err := wire.Uint32(msg, next)
	if err != nil {
		return RR{}, 0, err
	}
	rdlen, next, err := wire.Uint16(msg, next)
	if err != nil {
		return RR{}, 0, err
	}
	if next+int(rdlen) > len(msg) {
		return RR{}, 0, wire.ErrShortBuffer
	}
	rd, err := rdata.Decode(msg, next, next+int(rdlen), catalog.Type(t))
	if err != nil {
		return RR{}, 0, err
	}
	return RR{Name: name, Type: catalog.Type(t), Class: catalog.Class(c), TTL: ttl, RData: rd}, next + int(rdlen), nil
}

// Encode serializes m. Section counts are derived from the slice lengths,
// not trusted from any caller-set Header counts. The OPT RR, if present
// in Additional, is moved to the end of that section before encoding
// (spec §4.4).
func Encode(m *Message) ([]byte, error) {
	h := m.Header
	h.QDCount = uint16(len(m.Question))
	h.ANCount = uint16(len(m.Answer))
	h.NSCount = uint16(len(m.Authority))

	additional := moveOPTLast(m.Additional)
	h.ARCount = uint16(len(additional))

	if countOPT(m.Answer)+countOPT(m.Authority)+countOPT(additional) > 1 {
		return nil, ErrTooManyOPT
	}

	buf := make([]byte, 0, 512)
	buf = h.Encode(buf)

	var err error
	for _, q := range m.Question {
		buf, err = encodeQuestion(buf, q)
		if err != nil {
			return nil, err
		}
	}
	for _, rrs := range [][]RR{m.Answer, m.Authority, additional} {
		for _, rr := range rrs {
			buf, err = encodeRR(buf, rr)
			if err != nil {
				return nil, err
			}
		}
	}
	if len(buf) > 65535 {
		return nil, ErrMessageTooBig
	}
	return buf, nil
}

func moveOPTLast(rrs []RR) []RR {
	idx := -1
	for i, rr := range rrs {
		if rr.Type == catalog.TypeOPT {
			idx = i
			break
		}
	}
	if idx == -1 || idx == len(rrs)-1 {
		return rrs
	}
	out := make([]RR, 0, len(rrs))
	out = append(out, rrs[:idx]...)
	out = append(out, rrs[idx+1:]...)
	out = append(out, rrs[idx])
	return out
}

func encodeQuestion(buf []byte, q Question) ([]byte, error) {
	buf, err := q.Name.Encode(buf)
	if err != nil {
		return nil, err
	}
	buf = wire.PutUint16(buf, uint16(q.Type))
	buf = wire.PutUint16(buf, uint16(q.Class))
	return buf, nil
}

func encodeRR(buf []byte, rr RR) ([]byte, error) {
	buf, err := rr.Name.Encode(buf)
	if err != nil {
		return nil, err
	}
	buf = wire.PutUint16(buf, uint16(rr.Type))
	buf = wire.PutUint16(buf, uint16(rr.Class))
	buf = wire.PutUint32(buf, rr.TTL)

	rdBytes, err := rdata.Encode(nil, rr.RData)
	if err != nil {
		return nil, err
	}
	buf = wire.PutUint16(buf, uint16(len(rdBytes)))
	buf = append(buf, rdBytes...)
	return buf, nil
}
