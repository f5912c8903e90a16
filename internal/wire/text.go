package wire

import (
	"encoding/base32"
	"encoding/base64"
	"encoding/hex"
)

// These wrap the standard library's textual codecs for RDATA presentation
// only; the wire form of every field remains raw bytes. DESIGN.md records
// why this one corner of the codec uses the standard library rather than a
// pack dependency: no example repo in the retrieval set reaches for a
// third-party base16/32/64 codec, and the RFCs the spec cites (3548/4648)
// are exactly what the standard library implements.

func HexString(b []byte) string {
	return hex.EncodeToString(b)
}

func DecodeHex(s string) ([]byte, error) {
	return hex.DecodeString(s)
}

// Base32Hash renders bytes as unpadded base32 (RFC 4648 base32hex-less
// variant used by NSEC3 next-hashed-owner presentation; the salt renders
// as hex).
func Base32Hash(b []byte) string {
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(b)
}

func DecodeBase32Hash(s string) ([]byte, error) {
	return base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(s)
}

func Base64String(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

func DecodeBase64(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}
