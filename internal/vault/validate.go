package vault

import (
	"fmt"

	"ImageVault/internal/errors"
)

// Validate checks that the EncryptRequest has a usable key and image.
// Returns nil if valid, or an error describing the first failure.
func (req *EncryptRequest) Validate() error {
	if req == nil || len(req.Image) == 0 {
		return errors.ErrNoInput
	}

	if req.Key == nil || req.Key.IsClosed() {
		return errors.ErrNoKey
	}

	if req.Version != 0 && !req.Version.Supported() {
		return fmt.Errorf("%w: %s", errors.ErrUnsupportedVersion, req.Version)
	}

	if req.MaxImageSize < 0 {
		return errors.NewValidationError("MaxImageSize", "must not be negative")
	}

	if limit := req.maxImageSize(); int64(len(req.Image)) > limit {
		return fmt.Errorf("%w: %d bytes exceeds %d", errors.ErrInputTooLarge, len(req.Image), limit)
	}

	return nil
}

func (req *EncryptRequest) maxImageSize() int64 {
	if req.MaxImageSize > 0 {
		return req.MaxImageSize
	}
	return DefaultMaxImageSize
}
