package crypto

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"ImageVault/internal/errors"

	"golang.org/x/crypto/sha3"
)

// Key sizes
const (
	KeySize        = 32 // AES-256 / ChaCha20 key
	KeyTextSize    = 44 // standard padded base64 of KeySize bytes
	fingerprintLen = 8
)

var keyEncoding = base64.StdEncoding.Strict()

// Key is a 256-bit symmetric key. It is never persisted by the codec and
// prints as REDACTED under every fmt verb.
type Key struct {
	km *KeyMaterial
}

// NewKey copies a raw 32-byte key.
func NewKey(b []byte) (*Key, error) {
	if len(b) != KeySize {
		return nil, fmt.Errorf("%w: key must be %d bytes, got %d", errors.ErrInvalidKeyFormat, KeySize, len(b))
	}
	return &Key{km: NewKeyMaterial(b)}, nil
}

// GenerateKey returns a fresh random key.
func GenerateKey() (*Key, error) {
	b, err := RandomBytes(KeySize)
	if err != nil {
		return nil, err
	}
	defer SecureZero(b)
	return NewKey(b)
}

// DecodeKey parses the textual form produced by EncodeKey. Surrounding
// whitespace is ignored; anything else that is not exactly 44 characters of
// standard padded base64 decoding to 32 bytes is ErrInvalidKeyFormat.
func DecodeKey(text string) (*Key, error) {
	text = strings.TrimSpace(text)
	if len(text) != KeyTextSize {
		return nil, fmt.Errorf("%w: expected %d characters, got %d", errors.ErrInvalidKeyFormat, KeyTextSize, len(text))
	}

	b, err := keyEncoding.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("%w: not base64", errors.ErrInvalidKeyFormat)
	}
	defer SecureZero(b)

	return NewKey(b)
}

// EncodeKey returns the 44-character base64 text of k, or "" if k is closed.
func EncodeKey(k *Key) string {
	var text string
	k.with(func(b []byte) { text = keyEncoding.EncodeToString(b) })
	return text
}

// Bytes returns the raw key. Returns nil once the key is closed.
// Callers must not retain or modify the slice.
func (k *Key) Bytes() []byte {
	if k == nil || k.km == nil {
		return nil
	}
	return k.km.Bytes()
}

// Fingerprint is a short, non-secret identifier for k: the first 8 bytes of
// SHA3-256(key) in hex.
func (k *Key) Fingerprint() string {
	var fp string
	k.with(func(b []byte) {
		sum := sha3.Sum256(b)
		fp = hex.EncodeToString(sum[:fingerprintLen])
	})
	return fp
}

func (k *Key) with(fn func(b []byte)) bool {
	if k == nil || k.km == nil {
		return false
	}
	return k.km.With(fn)
}

// Close zeroes the key. It is idempotent.
func (k *Key) Close() {
	if k == nil || k.km == nil {
		return
	}
	k.km.Close()
}

// IsClosed reports whether Close has been called.
func (k *Key) IsClosed() bool {
	return k == nil || k.km == nil || k.km.IsClosed()
}

func (k *Key) String() string { return "crypto.Key(REDACTED)" }

func (k *Key) GoString() string { return "crypto.Key(REDACTED)" }
