// Package uuid generates UUID v7 identifiers. The timestamp prefix keeps
// values sortable by creation time; the tail comes from crypto/rand so
// identifiers are not guessable. Used for token IDs, where predictability
// would matter.
package uuid

import (
	"crypto/rand"
	"fmt"
	"time"
)

// UUID is a 128-bit UUID v7 identifier.
type UUID [16]byte

// NewV7 generates a UUID v7 per RFC 9562: 48 bits of Unix milliseconds,
// then the version and variant bits over 74 random bits.
func NewV7() UUID {
	var u UUID

	now := time.Now().UnixMilli()
	u[0] = byte(now >> 40)
	u[1] = byte(now >> 32)
	u[2] = byte(now >> 24)
	u[3] = byte(now >> 16)
	u[4] = byte(now >> 8)
	u[5] = byte(now)

	// Fill bytes 6-15 with randomness, then stamp the version nibble
	// (0111) into byte 6 and the RFC 4122 variant (10xxxxxx) into byte 7.
	if _, err := rand.Read(u[6:]); err != nil {
		panic(fmt.Sprintf("uuid: reading random bytes: %v", err))
	}
	u[6] = 0x70 | (u[6] & 0x0f)
	u[7] = 0x80 | (u[7] & 0x3f)

	return u
}

// NewString returns a freshly generated UUID v7 in canonical form.
func NewString() string {
	return NewV7().String()
}

// String returns the UUID in the canonical 8-4-4-4-12 form.
func (u UUID) String() string {
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		u[0:4],
		u[4:6],
		u[6:8],
		u[8:10],
		u[10:16],
	)
}
