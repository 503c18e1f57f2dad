// Package errors provides typed errors for ImageVault operations.
// This enables callers to use errors.Is() and errors.As() for specific error handling.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the container taxonomy.
// Use errors.Is(err, errors.ErrAuthenticationFailed) to check for specific errors.
var (
	// Key provider
	ErrInvalidKeyFormat = errors.New("invalid key format")

	// Envelope
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrMalformedEnvelope = errors.New("malformed metadata envelope")

	// Container
	ErrUnsupportedVersion   = errors.New("unsupported container version")
	ErrMalformedContainer   = errors.New("malformed container")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrIntegrityMismatch    = errors.New("content checksum mismatch")

	// ErrDecryptionFailed is the only shape AuthenticationFailed and
	// IntegrityMismatch take outside the process. See Public.
	ErrDecryptionFailed = errors.New("decryption failed: wrong key or corrupted file")

	// Operation errors
	ErrCancelled     = errors.New("operation cancelled")
	ErrInputTooLarge = errors.New("input exceeds maximum image size")
	ErrNoInput       = errors.New("no input specified")
	ErrNoKey         = errors.New("no key provided")
	ErrFileExists    = errors.New("file already exists")

	// Crypto errors
	ErrRandFailure   = errors.New("crypto/rand failure")
	ErrCipherFailure = errors.New("cipher initialization failed")
	ErrKeyClosed     = errors.New("key material has been zeroed")
)

// CryptoError represents an error during cryptographic operations.
// It wraps the underlying error with operation context.
type CryptoError struct {
	Op  string // Operation name: "rand", "aead", "seal"
	Err error  // Underlying error
}

func (e *CryptoError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("crypto %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("crypto %s failed", e.Op)
}

func (e *CryptoError) Unwrap() error {
	return e.Err
}

// NewCryptoError creates a new CryptoError.
func NewCryptoError(op string, err error) *CryptoError {
	return &CryptoError{Op: op, Err: err}
}

// FileError represents an error during file operations.
type FileError struct {
	Op   string // Operation: "open", "read", "write", "stat", "rename"
	Path string // File path
	Err  error  // Underlying error
}

func (e *FileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s failed", e.Op, e.Path)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// NewFileError creates a new FileError.
func NewFileError(op, path string, err error) *FileError {
	return &FileError{Op: op, Path: path, Err: err}
}

// ValidationError represents an input validation error.
type ValidationError struct {
	Field   string // Field name that failed validation
	Message string // Human-readable error message
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// FormatError reports which field of a container or envelope failed to parse.
// Err is always one of the taxonomy sentinels, possibly with extra context.
type FormatError struct {
	Field string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s invalid", e.Field)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// NewFormatError creates a new FormatError.
func NewFormatError(field string, err error) *FormatError {
	return &FormatError{Field: field, Err: err}
}

// Is checks if target matches any of our sentinel errors.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New is errors.New, re-exported so callers need only this package.
func New(text string) error {
	return errors.New(text)
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsCancelled checks if the error indicates a cancelled operation.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// IsAuthFailed checks if the error indicates the tag did not verify.
func IsAuthFailed(err error) bool {
	return errors.Is(err, ErrAuthenticationFailed)
}

// IsCorrupt checks if the error indicates a structurally damaged container or envelope.
func IsCorrupt(err error) bool {
	return errors.Is(err, ErrMalformedContainer) || errors.Is(err, ErrMalformedEnvelope)
}
