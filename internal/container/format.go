// Package container reads and writes ImageVault containers: an authenticated
// encryption of the metadata envelope and image bytes under a single key.
// This is AUDIT-CRITICAL code - changes here directly affect file format compatibility.
package container

import (
	"fmt"

	"ImageVault/internal/crypto"
)

// Version is the first byte of every container. It selects the AEAD suite and
// is authenticated as additional data.
type Version uint8

const (
	VersionAES256GCM        Version = 0x01
	VersionChaCha20Poly1305 Version = 0x02

	CurrentVersion = VersionAES256GCM
)

// suites maps every readable version to its AEAD
var suites = map[Version]crypto.Suite{
	VersionAES256GCM:        crypto.SuiteAES256GCM,
	VersionChaCha20Poly1305: crypto.SuiteChaCha20Poly1305,
}

// Suite returns the AEAD suite of v. ok is false for unknown versions.
func (v Version) Suite() (crypto.Suite, bool) {
	s, ok := suites[v]
	return s, ok
}

// Supported reports whether v can be read and written.
func (v Version) Supported() bool {
	_, ok := suites[v]
	return ok
}

func (v Version) String() string {
	if s, ok := v.Suite(); ok {
		return fmt.Sprintf("0x%02x (%s)", uint8(v), s)
	}
	return fmt.Sprintf("0x%02x (unknown)", uint8(v))
}

// VersionForSuite returns the container version that carries suite.
func VersionForSuite(s crypto.Suite) (Version, bool) {
	for v, vs := range suites {
		if vs == s {
			return v, true
		}
	}
	return 0, false
}

// Container field sizes
const (
	VersionSize = 1
	NonceSize   = crypto.NonceSize // 96-bit, fresh per encryption
	LengthSize  = 8                // uint64 ciphertext length, tag excluded
	TagSize     = crypto.TagSize

	// HeaderSize is everything before the ciphertext (21 bytes)
	HeaderSize = VersionSize + NonceSize + LengthSize

	// Overhead is the fixed size added to the inner buffer (37 bytes)
	Overhead = HeaderSize + TagSize

	// innerLenSize prefixes the envelope inside the plaintext
	innerLenSize = 4

	// InnerOverhead is what the plaintext adds besides envelope and image
	InnerOverhead = innerLenSize
)

// Stage is a checkpoint of Decrypt. Stages are passed strictly in order.
type Stage int

const (
	StageStart Stage = iota
	StageVersionChecked
	StageLengthsValidated
	StageTagVerified
	StageEnvelopeParsed
	StageChecksumValidated
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageStart:
		return "start"
	case StageVersionChecked:
		return "version checked"
	case StageLengthsValidated:
		return "lengths validated"
	case StageTagVerified:
		return "tag verified"
	case StageEnvelopeParsed:
		return "envelope parsed"
	case StageChecksumValidated:
		return "checksum validated"
	case StageDone:
		return "done"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// StageError records the last stage Decrypt completed before it failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("decrypt failed after %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Container is the parsed, still-encrypted form.
type Container struct {
	Version    Version
	Nonce      []byte
	Ciphertext []byte
	Tag        []byte
}

// Size returns the serialized length of c.
func (c *Container) Size() int {
	return HeaderSize + len(c.Ciphertext) + TagSize
}
