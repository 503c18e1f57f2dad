package container

import (
	"errors"
	"testing"

	ivErrors "ImageVault/internal/errors"
)

// FuzzContainerDecrypt feeds arbitrary bytes to Decrypt. It must never panic
// and every failure must belong to the container taxonomy.
// Run with: go test -fuzz=FuzzContainerDecrypt -fuzztime=60s
func FuzzContainerDecrypt(f *testing.F) {
	key := zeroKey(f)
	valid := seal(f, key, testPNG(f, 4, 4), "fuzz.png")

	f.Add(valid)
	for i := 0; i < len(valid); i += 9 {
		f.Add(valid[:i])
	}
	f.Add([]byte{})
	f.Add([]byte{byte(CurrentVersion)})
	f.Add(make([]byte, Overhead))

	f.Fuzz(func(t *testing.T, data []byte) {
		res, err := Decrypt(key, data)
		if err == nil {
			if res == nil || res.Envelope == nil {
				t.Fatal("nil result without error")
			}
			return
		}
		if res != nil {
			t.Fatal("result returned with error")
		}
		switch {
		case errors.Is(err, ivErrors.ErrUnsupportedVersion),
			errors.Is(err, ivErrors.ErrMalformedContainer),
			errors.Is(err, ivErrors.ErrAuthenticationFailed),
			errors.Is(err, ivErrors.ErrMalformedEnvelope),
			errors.Is(err, ivErrors.ErrIntegrityMismatch):
		default:
			t.Fatalf("unexpected error class: %v", err)
		}
	})
}
