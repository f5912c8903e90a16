package dnssec

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"math/big"
	"time"

	"github.com/dnsscience/dnsq/internal/catalog"
	"github.com/dnsscience/dnsq/internal/dnsmsg"
)

const year68 = 1 << 31 // RFC 1982 serial-arithmetic half-range, seconds

// Verify checks that rrsig is a valid signature over set, produced by
// dnskey, as of now (spec §4.5, §4.7). It does not consult any trust
// anchor or DS record: the caller supplies the DNSKEY directly.
func Verify(set RRSet, rrsigRR dnsmsg.RR, dnskeyRR dnsmsg.RR, now time.Time) error {
	sig, err := ExtractRRSIG(rrsigRR)
	if err != nil {
		return err
	}
	key, err := ExtractDNSKEY(dnskeyRR)
	if err != nil {
		return err
	}

	if sig.TypeCovered != set.Type || rrsigRR.Class != set.Class || !rrsigRR.Name.EqualFold(set.Owner) {
		return ErrRRsetTypeMismatch
	}
	if !validityPeriod(sig, now) {
		if laterThanExpiration(sig, now) {
			return ErrExpired
		}
		return ErrNotYetValid
	}

	data, err := signedData(sig, set)
	if err != nil {
		return err
	}

	switch sig.Algorithm {
	case catalog.AlgRSASHA1, catalog.AlgRSASHA1NSEC3SHA1, catalog.AlgRSASHA256, catalog.AlgRSASHA512:
		pub, err := parseRSAKey(key.PublicKey)
		if err != nil {
			return err
		}
		hash, hashed, err := hashRSA(sig.Algorithm, data)
		if err != nil {
			return err
		}
		if err := rsa.VerifyPKCS1v15(pub, hash, hashed, sig.Signature); err != nil {
			return ErrBadSignature
		}
		return nil

	case catalog.AlgECDSAP256SHA256:
		pub, err := parseECDSAKey(key.PublicKey, elliptic.P256())
		if err != nil {
			return err
		}
		if len(sig.Signature) != 64 {
			return ErrBadSignature
		}
		r := new(big.Int).SetBytes(sig.Signature[:32])
		s := new(big.Int).SetBytes(sig.Signature[32:])
		sum := sha256.Sum256(data)
		if !ecdsa.Verify(pub, sum[:], r, s) {
			return ErrBadSignature
		}
		return nil

	default:
		return ErrUnsupportedAlgo
	}
}

func hashRSA(alg catalog.DNSSECAlgorithm, data []byte) (crypto.Hash, []byte, error) {
	switch alg {
	case catalog.AlgRSASHA1, catalog.AlgRSASHA1NSEC3SHA1:
		sum := sha1.Sum(data)
		return crypto.SHA1, sum[:], nil
	case catalog.AlgRSASHA256:
		sum := sha256.Sum256(data)
		return crypto.SHA256, sum[:], nil
	case catalog.AlgRSASHA512:
		sum := sha512.Sum512(data)
		return crypto.SHA512, sum[:], nil
	}
	return 0, nil, ErrUnsupportedAlgo
}

// parseRSAKey decodes the RFC 3110 {exp-len, exponent, modulus} public key
// encoding used by DNSKEY RDATA.
func parseRSAKey(buf []byte) (*rsa.PublicKey, error) {
	if len(buf) < 3 {
		return nil, ErrMalformedKey
	}
	explen := int(buf[0])
	off := 1
	if explen == 0 {
		if len(buf) < 3 {
			return nil, ErrMalformedKey
		}
		explen = int(buf[1])<<8 | int(buf[2])
		off = 3
	}
	if explen == 0 || off+explen >= len(buf) {
		return nil, ErrMalformedKey
	}
	var e int
	for _, b := range buf[off : off+explen] {
		e = e<<8 | int(b)
	}
	modulus := buf[off+explen:]
	if len(modulus) == 0 || e == 0 {
		return nil, ErrMalformedKey
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(modulus), E: e}, nil
}

// parseECDSAKey decodes the SEC1 uncompressed X||Y public key encoding
// (64 octets for P-256) used by algorithm 13 DNSKEY RDATA.
func parseECDSAKey(buf []byte, curve elliptic.Curve) (*ecdsa.PublicKey, error) {
	size := (curve.Params().BitSize + 7) / 8
	if len(buf) != 2*size {
		return nil, ErrMalformedKey
	}
	return &ecdsa.PublicKey{
		Curve: curve,
		X:     new(big.Int).SetBytes(buf[:size]),
		Y:     new(big.Int).SetBytes(buf[size:]),
	}, nil
}

// validityPeriod reports whether now falls within [inception, expiration]
// using RFC 1982 serial arithmetic, mirroring how inception/expiration
// timestamps that have wrapped the 32-bit epoch are still ordered
// correctly relative to "now".
func validityPeriod(sig RRSIGFields, now time.Time) bool {
	utc := now.UTC().Unix()
	modi := (int64(sig.Inception) - utc) / year68
	mode := (int64(sig.Expiration) - utc) / year68
	ti := int64(sig.Inception) + modi*year68
	te := int64(sig.Expiration) + mode*year68
	return ti <= utc && utc <= te
}

func laterThanExpiration(sig RRSIGFields, now time.Time) bool {
	utc := now.UTC().Unix()
	mode := (int64(sig.Expiration) - utc) / year68
	te := int64(sig.Expiration) + mode*year68
	return utc > te
}
