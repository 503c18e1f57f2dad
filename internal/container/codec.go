package container

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"ImageVault/internal/crypto"
	"ImageVault/internal/envelope"
	"ImageVault/internal/errors"
)

// newAEAD builds the cipher for a version. Tests replace it to observe
// that unknown versions never reach a primitive.
var newAEAD = crypto.NewAEAD

type options struct {
	version Version
}

// Option configures Encrypt.
type Option func(*options)

// WithVersion selects the container version and therefore the AEAD suite.
func WithVersion(v Version) Option {
	return func(o *options) {
		o.version = v
	}
}

// Result is a successfully decrypted and verified container.
type Result struct {
	Envelope *envelope.Envelope
	Payload  []byte
}

// Encrypt seals the serialized envelope and payload under key and returns a
// complete container. A fresh nonce is drawn for every call.
//
// Inner plaintext: envelopeLen(4, big-endian) | envelope | payload.
// The version byte is the additional authenticated data.
func Encrypt(key *crypto.Key, envelopeBytes, payload []byte, opts ...Option) ([]byte, error) {
	o := options{version: CurrentVersion}
	for _, opt := range opts {
		opt(&o)
	}

	suite, ok := o.version.Suite()
	if !ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrUnsupportedVersion, o.version)
	}
	if uint64(len(envelopeBytes)) > math.MaxUint32 {
		return nil, errors.NewFormatError("envelope", fmt.Errorf("%w: too large", errors.ErrMalformedEnvelope))
	}

	aead, err := newAEAD(suite, key)
	if err != nil {
		return nil, err
	}

	nonce, err := crypto.RandomBytes(NonceSize)
	if err != nil {
		return nil, err
	}

	inner := make([]byte, innerLenSize, innerLenSize+len(envelopeBytes)+len(payload)+TagSize)
	binary.BigEndian.PutUint32(inner, uint32(len(envelopeBytes)))
	inner = append(inner, envelopeBytes...)
	inner = append(inner, payload...)
	plainLen := len(inner)

	// Seal in place; the plaintext is overwritten by the ciphertext
	sealed := aead.Seal(inner[:0], nonce, inner, aad(o.version))

	c := &Container{
		Version:    o.version,
		Nonce:      nonce,
		Ciphertext: sealed[:plainLen],
		Tag:        sealed[plainLen:],
	}

	var buf bytes.Buffer
	buf.Grow(c.Size())
	if _, err := NewWriter(&buf).WriteContainer(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decrypt parses, authenticates and verifies data.
//
// Checks run in a fixed order and each failure is a *StageError naming the
// last stage passed:
//
//	version -> lengths -> tag -> envelope -> checksum
//
// An unknown version is rejected before any cipher is constructed. No
// plaintext is returned unless every check passes.
func Decrypt(key *crypto.Key, data []byte) (*Result, error) {
	r := NewReader(bytes.NewReader(data), int64(len(data)))

	v, err := r.ReadVersion()
	if err != nil {
		return nil, &StageError{Stage: StageStart, Err: err}
	}
	suite, ok := v.Suite()
	if !ok {
		return nil, &StageError{Stage: StageStart, Err: errors.NewFormatError("version", fmt.Errorf("%w: %s", errors.ErrUnsupportedVersion, v))}
	}

	c, err := r.ReadBody(v)
	if err != nil {
		return nil, &StageError{Stage: StageVersionChecked, Err: err}
	}

	aead, err := newAEAD(suite, key)
	if err != nil {
		return nil, &StageError{Stage: StageLengthsValidated, Err: err}
	}

	sealed := make([]byte, 0, len(c.Ciphertext)+TagSize)
	sealed = append(sealed, c.Ciphertext...)
	sealed = append(sealed, c.Tag...)
	plain, err := aead.Open(sealed[:0], c.Nonce, sealed, aad(v))
	if err != nil {
		return nil, &StageError{Stage: StageLengthsValidated, Err: errors.ErrAuthenticationFailed}
	}

	env, payload, err := splitInner(plain)
	if err != nil {
		crypto.SecureZero(plain)
		return nil, &StageError{Stage: StageTagVerified, Err: err}
	}

	if err := env.Verify(payload); err != nil {
		crypto.SecureZero(plain)
		return nil, &StageError{Stage: StageEnvelopeParsed, Err: err}
	}

	return &Result{Envelope: env, Payload: payload}, nil
}

func splitInner(plain []byte) (*envelope.Envelope, []byte, error) {
	if len(plain) < innerLenSize {
		return nil, nil, errors.NewFormatError("envelope length", fmt.Errorf("%w: inner buffer of %d bytes", errors.ErrMalformedEnvelope, len(plain)))
	}
	envLen := uint64(binary.BigEndian.Uint32(plain))
	rest := plain[innerLenSize:]
	if envLen > uint64(len(rest)) {
		return nil, nil, errors.NewFormatError("envelope length", fmt.Errorf("%w: declared %d bytes, %d remain", errors.ErrMalformedEnvelope, envLen, len(rest)))
	}

	env, err := envelope.Unmarshal(rest[:envLen])
	if err != nil {
		return nil, nil, err
	}
	return env, rest[envLen:], nil
}

func aad(v Version) []byte {
	return []byte{byte(v)}
}

// Info describes a container without decrypting it.
type Info struct {
	Version       Version
	Suite         crypto.Suite
	Nonce         []byte
	CiphertextLen uint64
	Size          int
}

// Inspect parses the public fields of data. It needs no key and performs
// the same structural checks as Decrypt up to the tag.
func Inspect(data []byte) (*Info, error) {
	r := NewReader(bytes.NewReader(data), int64(len(data)))

	v, err := r.ReadVersion()
	if err != nil {
		return nil, err
	}
	suite, ok := v.Suite()
	if !ok {
		return nil, errors.NewFormatError("version", fmt.Errorf("%w: %s", errors.ErrUnsupportedVersion, v))
	}

	c, err := r.ReadBody(v)
	if err != nil {
		return nil, err
	}
	return &Info{
		Version:       v,
		Suite:         suite,
		Nonce:         c.Nonce,
		CiphertextLen: uint64(len(c.Ciphertext)),
		Size:          len(data),
	}, nil
}
