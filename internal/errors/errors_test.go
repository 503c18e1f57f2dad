package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrInvalidKeyFormat", ErrInvalidKeyFormat},
		{"ErrUnsupportedFormat", ErrUnsupportedFormat},
		{"ErrMalformedEnvelope", ErrMalformedEnvelope},
		{"ErrUnsupportedVersion", ErrUnsupportedVersion},
		{"ErrMalformedContainer", ErrMalformedContainer},
		{"ErrAuthenticationFailed", ErrAuthenticationFailed},
		{"ErrIntegrityMismatch", ErrIntegrityMismatch},
		{"ErrDecryptionFailed", ErrDecryptionFailed},
		{"ErrCancelled", ErrCancelled},
		{"ErrInputTooLarge", ErrInputTooLarge},
		{"ErrNoInput", ErrNoInput},
		{"ErrNoKey", ErrNoKey},
		{"ErrFileExists", ErrFileExists},
		{"ErrRandFailure", ErrRandFailure},
		{"ErrCipherFailure", ErrCipherFailure},
		{"ErrKeyClosed", ErrKeyClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Error("sentinel error should not be nil")
			}
			if tt.err.Error() == "" {
				t.Error("sentinel error should have a message")
			}
		})
	}
}

func TestCryptoError(t *testing.T) {
	baseErr := errors.New("underlying error")
	cryptoErr := NewCryptoError("rand", baseErr)

	if cryptoErr.Error() != "crypto rand: underlying error" {
		t.Errorf("unexpected error message: %s", cryptoErr.Error())
	}

	if cryptoErr.Unwrap() != baseErr {
		t.Error("Unwrap should return underlying error")
	}

	cryptoErrNil := NewCryptoError("aead", nil)
	if cryptoErrNil.Error() != "crypto aead failed" {
		t.Errorf("unexpected error message for nil: %s", cryptoErrNil.Error())
	}
}

func TestFileError(t *testing.T) {
	baseErr := errors.New("permission denied")
	fileErr := NewFileError("open", "/path/to/file", baseErr)

	if fileErr.Error() != "open /path/to/file: permission denied" {
		t.Errorf("unexpected error message: %s", fileErr.Error())
	}

	if fileErr.Unwrap() != baseErr {
		t.Error("Unwrap should return underlying error")
	}

	fileErrNil := NewFileError("stat", "/some/path", nil)
	if fileErrNil.Error() != "stat /some/path failed" {
		t.Errorf("unexpected error message for nil: %s", fileErrNil.Error())
	}
}

func TestValidationError(t *testing.T) {
	validErr := NewValidationError("filename", "must be valid UTF-8")

	expected := "validation: filename: must be valid UTF-8"
	if validErr.Error() != expected {
		t.Errorf("unexpected error message: %s", validErr.Error())
	}
}

func TestFormatError(t *testing.T) {
	fmtErr := NewFormatError("nonce", ErrMalformedContainer)

	if fmtErr.Error() != "nonce: malformed container" {
		t.Errorf("unexpected error message: %s", fmtErr.Error())
	}

	if !errors.Is(fmtErr, ErrMalformedContainer) {
		t.Error("FormatError should unwrap to its sentinel")
	}

	if NewFormatError("width", nil).Error() != "width invalid" {
		t.Error("unexpected message for nil cause")
	}
}

func TestWrap(t *testing.T) {
	baseErr := errors.New("base")
	wrapped := Wrap(baseErr, "context")

	if wrapped.Error() != "context: base" {
		t.Errorf("unexpected wrapped message: %s", wrapped.Error())
	}

	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestConvenienceFunctions(t *testing.T) {
	if !IsCancelled(ErrCancelled) {
		t.Error("IsCancelled should return true for ErrCancelled")
	}

	if IsCancelled(ErrAuthenticationFailed) {
		t.Error("IsCancelled should return false for other errors")
	}

	if !IsAuthFailed(fmt.Errorf("open: %w", ErrAuthenticationFailed)) {
		t.Error("IsAuthFailed should see through wrapping")
	}

	if !IsCorrupt(ErrMalformedContainer) || !IsCorrupt(ErrMalformedEnvelope) {
		t.Error("IsCorrupt should cover both malformed kinds")
	}

	if IsCorrupt(ErrAuthenticationFailed) {
		t.Error("IsCorrupt should not report auth failures")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{nil, KindUnknown},
		{errors.New("disk full"), KindUnknown},
		{ErrInvalidKeyFormat, KindInvalidKeyFormat},
		{fmt.Errorf("build: %w", ErrUnsupportedFormat), KindUnsupportedFormat},
		{NewFormatError("version", ErrUnsupportedVersion), KindUnsupportedVersion},
		{NewFormatError("length", ErrMalformedContainer), KindMalformedContainer},
		{NewFormatError("filename", ErrMalformedEnvelope), KindMalformedEnvelope},
		{fmt.Errorf("tag: %w", ErrAuthenticationFailed), KindAuthenticationFailed},
		{ErrIntegrityMismatch, KindIntegrityMismatch},
		{ErrDecryptionFailed, KindAuthenticationFailed},
		{fmt.Errorf("ctx: %w", ErrCancelled), KindCancelled},
		{ErrInputTooLarge, KindInputTooLarge},
	}

	for _, tt := range tests {
		if got := Classify(tt.err); got != tt.want {
			t.Errorf("Classify(%v) = %s; want %s", tt.err, got, tt.want)
		}
	}
}

func TestKindString(t *testing.T) {
	if KindAuthenticationFailed.String() != "AuthenticationFailed" {
		t.Errorf("unexpected name: %s", KindAuthenticationFailed)
	}
	if Kind(99).String() != "Unknown" {
		t.Errorf("out of range kind should be Unknown, got %s", Kind(99))
	}
}

func TestPublicCollapsesAuthAndIntegrity(t *testing.T) {
	auth := Public(NewFormatError("tag", ErrAuthenticationFailed))
	integrity := Public(fmt.Errorf("checksum at offset 42: %w", ErrIntegrityMismatch))

	if auth != integrity {
		t.Fatalf("auth and integrity failures must share one public error: %v vs %v", auth, integrity)
	}
	if auth != ErrDecryptionFailed {
		t.Errorf("Public = %v; want ErrDecryptionFailed", auth)
	}
	if auth.Error() != integrity.Error() {
		t.Error("public messages must be identical")
	}
}

func TestPublicStripsDetail(t *testing.T) {
	err := NewFormatError("ciphertext length", fmt.Errorf("%w: declared 900 bytes, 12 remain", ErrMalformedContainer))
	pub := Public(err)

	if pub != ErrMalformedContainer {
		t.Errorf("Public = %q; want bare sentinel", pub)
	}

	other := errors.New("permission denied")
	if Public(other) != other {
		t.Error("errors outside the taxonomy should pass through")
	}
}

func TestUserMessage(t *testing.T) {
	if UserMessage(nil) != "" {
		t.Error("nil error should have empty message")
	}

	authMsg := UserMessage(ErrAuthenticationFailed)
	integrityMsg := UserMessage(ErrIntegrityMismatch)
	if authMsg != integrityMsg {
		t.Errorf("messages differ: %q vs %q", authMsg, integrityMsg)
	}

	if UserMessage(ErrUnsupportedVersion) == authMsg {
		t.Error("unsupported version may report its specific cause")
	}

	if UserMessage(errors.New("boom")) != "boom" {
		t.Error("unknown errors should use their own text")
	}
}
