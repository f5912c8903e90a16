package dnssec

import (
	"errors"

	"github.com/dnsscience/dnsq/internal/catalog"
	"github.com/dnsscience/dnsq/internal/dnsmsg"
	"github.com/dnsscience/dnsq/internal/wire"
)

var ErrNotRRSIG = errors.New("dnssec: record is not an RRSIG")
var ErrNotDNSKEY = errors.New("dnssec: record is not a DNSKEY")

// RRSIGFields is the typed view of an RRSIG's RDATA, matching the field
// order internal/catalog assigns TypeRRSIG.
type RRSIGFields struct {
	TypeCovered catalog.Type
	Algorithm   catalog.DNSSECAlgorithm
	Labels      uint8
	OriginalTTL uint32
	Expiration  uint32
	Inception   uint32
	KeyTag      uint16
	SignerName  wire.Name
	Signature   []byte
}

// ExtractRRSIG reads the typed fields out of rr's decoded RDATA.
func ExtractRRSIG(rr dnsmsg.RR) (RRSIGFields, error) {
	if rr.Type != catalog.TypeRRSIG || len(rr.RData.Fields) != 9 {
		return RRSIGFields{}, ErrNotRRSIG
	}
	f := rr.RData.Fields
	return RRSIGFields{
		TypeCovered: f[0].QType,
		Algorithm:   catalog.DNSSECAlgorithm(f[1].U8),
		Labels:      f[2].U8,
		OriginalTTL: f[3].U32,
		Expiration:  f[4].U32,
		Inception:   f[5].U32,
		KeyTag:      f[6].U16,
		SignerName:  f[7].Name,
		Signature:   f[8].Bytes,
	}, nil
}

// DNSKEYFields is the typed view of a DNSKEY's RDATA.
type DNSKEYFields struct {
	Flags     uint16
	Protocol  uint8
	Algorithm catalog.DNSSECAlgorithm
	PublicKey []byte
}

// ExtractDNSKEY reads the typed fields out of rr's decoded RDATA.
func ExtractDNSKEY(rr dnsmsg.RR) (DNSKEYFields, error) {
	if rr.Type != catalog.TypeDNSKEY || len(rr.RData.Fields) != 4 {
		return DNSKEYFields{}, ErrNotDNSKEY
	}
	f := rr.RData.Fields
	return DNSKEYFields{
		Flags:     f[0].U16,
		Protocol:  f[1].U8,
		Algorithm: catalog.DNSSECAlgorithm(f[2].U8),
		PublicKey: f[3].Bytes,
	}, nil
}

// signedData builds the RRSIG_RDATA(without signature) || canonical RRset
// octet stream RFC 4035 §5.3.2 defines, over set's records in canonical
// order under sig.
func signedData(sig RRSIGFields, set RRSet) ([]byte, error) {
	ordered, err := canonicalOrder(set, sig.OriginalTTL)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, 256)
	buf = wire.PutUint16(buf, uint16(sig.TypeCovered))
	buf = wire.PutUint8(buf, uint8(sig.Algorithm))
	buf = wire.PutUint8(buf, sig.Labels)
	buf = wire.PutUint32(buf, sig.OriginalTTL)
	buf = wire.PutUint32(buf, sig.Expiration)
	buf = wire.PutUint32(buf, sig.Inception)
	buf = wire.PutUint16(buf, sig.KeyTag)
	buf, err = sig.SignerName.Canonical().Encode(buf)
	if err != nil {
		return nil, err
	}

	for _, rr := range ordered {
		buf, err = rr.Name.Encode(buf)
		if err != nil {
			return nil, err
		}
		buf = wire.PutUint16(buf, uint16(rr.Type))
		buf = wire.PutUint16(buf, uint16(rr.Class))
		buf = wire.PutUint32(buf, rr.TTL)
		rdBytes, err := canonicalRDataBytes(rr)
		if err != nil {
			return nil, err
		}
		buf = wire.PutUint16(buf, uint16(len(rdBytes)))
		buf = append(buf, rdBytes...)
	}
	return buf, nil
}
