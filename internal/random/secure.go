// Package random generates the one process-wide resource the query
// coordinator needs a cryptographically secure source for: the 16-bit
// transaction ID (spec §4.7, §5). Source-port randomization and pool
// management from the ancestor server package don't apply to a client
// that dials one local socket per query and leaves ephemeral port
// selection to the kernel.
package random

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// TransactionID generates a cryptographically random 16-bit transaction
// ID. Never use math/rand here: a predictable ID reopens the off-path
// cache poisoning attack transaction IDs exist to guard against.
func TransactionID() uint16 {
	var buf [2]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return binary.BigEndian.Uint16(buf[:])
}
