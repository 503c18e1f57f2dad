// Package crypto provides the key material and cryptographic primitives for
// ImageVault containers.
// This is AUDIT-CRITICAL code - changes here directly affect encryption/decryption.
package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"ImageVault/internal/errors"
)

// randReader is the random source for keys and nonces.
// Tests replace it through SetRandReaderForTesting.
var randReader io.Reader = rand.Reader

// RandomBytes generates n cryptographically secure random bytes.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(randReader, b); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrRandFailure, err)
	}

	// Sanity check: bytes should not be all zeros
	allZero := true
	for _, v := range b {
		if v != 0 {
			allZero = false
			break
		}
	}
	if allZero && n > 0 {
		return nil, fmt.Errorf("%w: produced zero bytes", errors.ErrRandFailure)
	}

	return b, nil
}

// SetRandReaderForTesting sets the random reader used by RandomBytes.
// It returns a function that restores the original reader.
// This should only be used in tests.
func SetRandReaderForTesting(r io.Reader) func() {
	original := randReader
	randReader = r
	return func() { randReader = original }
}
