package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"ImageVault/internal/errors"

	"golang.org/x/crypto/chacha20poly1305"
)

// Suite identifies an AEAD construction. Every suite uses a 256-bit key,
// a 96-bit nonce and a 128-bit tag.
type Suite uint8

const (
	SuiteAES256GCM Suite = iota + 1
	SuiteChaCha20Poly1305
)

// AEAD parameters shared by all suites
const (
	NonceSize = 12
	TagSize   = 16
)

func (s Suite) String() string {
	switch s {
	case SuiteAES256GCM:
		return "aes-256-gcm"
	case SuiteChaCha20Poly1305:
		return "chacha20-poly1305"
	default:
		return fmt.Sprintf("suite(%d)", uint8(s))
	}
}

// ParseSuite maps a configuration name to a Suite.
func ParseSuite(name string) (Suite, error) {
	switch name {
	case "aes-256-gcm", "aes", "gcm":
		return SuiteAES256GCM, nil
	case "chacha20-poly1305", "chacha20", "chacha":
		return SuiteChaCha20Poly1305, nil
	default:
		return 0, errors.NewValidationError("cipher", fmt.Sprintf("unknown cipher %q", name))
	}
}

// NewAEAD creates the AEAD for suite keyed with k.
//
// The returned AEAD holds its own key schedule; k may be closed afterwards.
func NewAEAD(suite Suite, k *Key) (cipher.AEAD, error) {
	var (
		aead cipher.AEAD
		err  error
	)
	ok := k.with(func(key []byte) {
		switch suite {
		case SuiteAES256GCM:
			var block cipher.Block
			block, err = aes.NewCipher(key)
			if err == nil {
				aead, err = cipher.NewGCM(block)
			}
		case SuiteChaCha20Poly1305:
			aead, err = chacha20poly1305.New(key)
		default:
			err = fmt.Errorf("unknown suite %s", suite)
		}
	})
	if !ok {
		return nil, errors.ErrKeyClosed
	}
	if err != nil {
		return nil, errors.NewCryptoError("aead", fmt.Errorf("%w: %w", errors.ErrCipherFailure, err))
	}

	if aead.NonceSize() != NonceSize || aead.Overhead() != TagSize {
		return nil, errors.NewCryptoError("aead", errors.ErrCipherFailure)
	}
	return aead, nil
}
