// Package bufpool reduces per-query allocation pressure for a client
// issuing many concurrent lookups (spec §4.6, §8). It is adapted from
// the ancestor server's sync.Pool buffer tiers, retargeted from
// *dns.Msg reuse (a server concern, reused across inbound connections)
// to the byte-buffer tiers a transport needs for send/receive.
package bufpool

import "sync"

const (
	// SmallBufferSize covers a plain UDP query/response (spec §4.7).
	SmallBufferSize = 512
	// MediumBufferSize covers an EDNS0 response up to a typical
	// requestor UDP payload size.
	MediumBufferSize = 4096
	// LargeBufferSize covers the maximum DNS message size; sendUDP reads
	// every datagram into a buffer of this tier.
	LargeBufferSize = 65535
)

var smallPool = sync.Pool{New: func() interface{} { b := make([]byte, SmallBufferSize); return &b }}
var mediumPool = sync.Pool{New: func() interface{} { b := make([]byte, MediumBufferSize); return &b }}
var largePool = sync.Pool{New: func() interface{} { b := make([]byte, LargeBufferSize); return &b }}

// GetSmall returns a 512-byte buffer.
func GetSmall() []byte {
	p := smallPool.Get().(*[]byte)
	return (*p)[:SmallBufferSize]
}

// PutSmall returns buf to the small pool. Undersized buffers are
// dropped rather than pooled.
func PutSmall(buf []byte) {
	if cap(buf) < SmallBufferSize {
		return
	}
	buf = buf[:cap(buf)]
	smallPool.Put(&buf)
}

// GetMedium returns a 4096-byte buffer.
func GetMedium() []byte {
	p := mediumPool.Get().(*[]byte)
	return (*p)[:MediumBufferSize]
}

// PutMedium returns buf to the medium pool.
func PutMedium(buf []byte) {
	if cap(buf) < MediumBufferSize {
		return
	}
	buf = buf[:cap(buf)]
	mediumPool.Put(&buf)
}

// GetLarge returns a 65535-byte buffer.
func GetLarge() []byte {
	p := largePool.Get().(*[]byte)
	return (*p)[:LargeBufferSize]
}

// PutLarge returns buf to the large pool.
func PutLarge(buf []byte) {
	if cap(buf) < LargeBufferSize {
		return
	}
	buf = buf[:cap(buf)]
	largePool.Put(&buf)
}

// Get selects the smallest tier that can hold size bytes.
func Get(size int) []byte {
	switch {
	case size <= SmallBufferSize:
		return GetSmall()
	case size <= MediumBufferSize:
		return GetMedium()
	default:
		return GetLarge()
	}
}

// Put returns buf to whichever tier its capacity matches. Buffers of a
// capacity that doesn't match a tier exactly are left for the garbage
// collector.
func Put(buf []byte) {
	switch cap(buf) {
	case SmallBufferSize:
		PutSmall(buf)
	case MediumBufferSize:
		PutMedium(buf)
	case LargeBufferSize:
		PutLarge(buf)
	}
}
