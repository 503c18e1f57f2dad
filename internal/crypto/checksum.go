package crypto

import (
	"crypto/subtle"

	"golang.org/x/crypto/sha3"
)

// ChecksumSize is the length of a content checksum (SHA3-256).
const ChecksumSize = 32

// Checksum returns the SHA3-256 digest of b.
func Checksum(b []byte) []byte {
	sum := sha3.Sum256(b)
	return sum[:]
}

// ChecksumEqual compares two checksums in constant time.
func ChecksumEqual(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
