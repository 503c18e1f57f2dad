package errors

import "errors"

// Kind is the small, user-meaningful taxonomy every container failure maps to.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidKeyFormat
	KindUnsupportedFormat
	KindUnsupportedVersion
	KindMalformedContainer
	KindMalformedEnvelope
	KindAuthenticationFailed
	KindIntegrityMismatch
	KindCancelled
	KindInputTooLarge
)

func (k Kind) String() string {
	switch k {
	case KindInvalidKeyFormat:
		return "InvalidKeyFormat"
	case KindUnsupportedFormat:
		return "UnsupportedFormat"
	case KindUnsupportedVersion:
		return "UnsupportedVersion"
	case KindMalformedContainer:
		return "MalformedContainer"
	case KindMalformedEnvelope:
		return "MalformedEnvelope"
	case KindAuthenticationFailed:
		return "AuthenticationFailed"
	case KindIntegrityMismatch:
		return "IntegrityMismatch"
	case KindCancelled:
		return "Cancelled"
	case KindInputTooLarge:
		return "InputTooLarge"
	default:
		return "Unknown"
	}
}

// kinds is checked in order; the first sentinel found in the chain wins.
var kinds = []struct {
	sentinel error
	kind     Kind
}{
	{ErrAuthenticationFailed, KindAuthenticationFailed},
	{ErrIntegrityMismatch, KindIntegrityMismatch},
	{ErrDecryptionFailed, KindAuthenticationFailed},
	{ErrUnsupportedVersion, KindUnsupportedVersion},
	{ErrMalformedContainer, KindMalformedContainer},
	{ErrMalformedEnvelope, KindMalformedEnvelope},
	{ErrUnsupportedFormat, KindUnsupportedFormat},
	{ErrInvalidKeyFormat, KindInvalidKeyFormat},
	{ErrCancelled, KindCancelled},
	{ErrInputTooLarge, KindInputTooLarge},
}

// Classify maps err to its Kind. Errors outside the taxonomy are KindUnknown.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	for _, k := range kinds {
		if errors.Is(err, k.sentinel) {
			return k.kind
		}
	}
	return KindUnknown
}

// Public returns the form of err that may be shown on any channel an attacker
// controlling the input file can observe.
//
// AuthenticationFailed and IntegrityMismatch collapse into the same
// ErrDecryptionFailed value. Their timing is not equalized: an integrity
// mismatch is only reachable after the tag verified, so it already implies
// the right key and reveals nothing a forger could use. Other taxonomy kinds
// are reduced to their bare sentinel so no parsing offsets or wrapped causes
// leak. Errors outside the taxonomy (file system) are returned unchanged.
func Public(err error) error {
	switch Classify(err) {
	case KindAuthenticationFailed, KindIntegrityMismatch:
		return ErrDecryptionFailed
	case KindUnsupportedVersion:
		return ErrUnsupportedVersion
	case KindMalformedContainer:
		return ErrMalformedContainer
	case KindMalformedEnvelope:
		return ErrMalformedEnvelope
	case KindUnsupportedFormat:
		return ErrUnsupportedFormat
	case KindInvalidKeyFormat:
		return ErrInvalidKeyFormat
	case KindInputTooLarge:
		return ErrInputTooLarge
	case KindCancelled:
		return ErrCancelled
	default:
		return err
	}
}

// UserMessage returns display text for err, suitable for a dialog or terminal.
// It calls Public first, so it is safe to pass internal errors.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	pub := Public(err)
	switch Classify(pub) {
	case KindAuthenticationFailed:
		return "Decryption failed: wrong key or corrupted file"
	case KindUnsupportedVersion:
		return "This file was created by an unsupported version and cannot be opened"
	case KindMalformedContainer:
		return "The file is not a valid encrypted image or is truncated"
	case KindMalformedEnvelope:
		return "The encrypted image metadata is damaged"
	case KindUnsupportedFormat:
		return "Unsupported image format (supported: PNG, JPEG, BMP, GIF, WebP)"
	case KindInvalidKeyFormat:
		return "The key is not valid: expected 44 characters of base64 encoding 32 bytes"
	case KindInputTooLarge:
		return "The image is too large to encrypt"
	case KindCancelled:
		return "Operation cancelled"
	default:
		return pub.Error()
	}
}
