// Package vault is the boundary between callers (the CLI, a GUI) and the
// container core. It turns an image into a sealed container and back.
//
// Encryption pipeline:
//  1. Validate: key present, image non-empty and within MaxImageSize
//  2. Build envelope: sniff format, read dimensions, checksum the image
//  3. Seal: AEAD over envelope and image (container package)
//  4. Armor (optional): Reed-Solomon wrapper for storage bit-rot
//
// Decryption pipeline:
//  1. Unarmor if the data carries the armor magic
//  2. Open: version, lengths, tag, envelope, checksum (container package)
//  3. Return the image with its stored name, format and dimensions
//
// The context is checked before work starts and after it completes. A
// cancelled operation returns ErrCancelled and never a partial result.
package vault

import (
	"context"
	"fmt"

	"ImageVault/internal/container"
	"ImageVault/internal/crypto"
	"ImageVault/internal/encoding"
	"ImageVault/internal/envelope"
	"ImageVault/internal/errors"
	"ImageVault/internal/log"
	"ImageVault/internal/util"
)

// DefaultMaxImageSize bounds the image accepted by EncryptImage when the
// request does not set its own limit.
const DefaultMaxImageSize = 256 * util.MiB

// ProgressReporter receives status updates during an operation.
// Implementations must be safe for concurrent use.
type ProgressReporter interface {
	SetStatus(text string)
	SetProgress(fraction float32, info string)
}

// EncryptRequest holds everything needed to seal one image.
type EncryptRequest struct {
	Image    []byte // Raw image bytes, stored unchanged
	Filename string // Stored as its base name; empty becomes "image.<ext>"
	Format   string // Declared format; a recognized signature in Image wins

	Key     *crypto.Key
	Version container.Version // Zero selects container.CurrentVersion

	ReedSolomon  bool
	MaxImageSize int64 // Zero selects DefaultMaxImageSize

	Reporter ProgressReporter  // May be nil
	RSCodecs *encoding.RSCodecs // Created per call when nil
}

// DecryptResult is a verified image restored from a container.
type DecryptResult struct {
	Image    []byte
	Filename string
	Format   envelope.Format
	Width    uint32 // Zero when unknown
	Height   uint32
}

// MaxContainerSize returns the largest file that can hold an image of
// maxImage bytes, armored or not. Callers use it to bound reads before
// DecryptImage.
func MaxContainerSize(maxImage int64) int64 {
	if maxImage <= 0 {
		maxImage = DefaultMaxImageSize
	}
	raw := maxImage + int64(container.Overhead+container.InnerOverhead+envelope.MaxSize)
	return int64(encoding.ArmoredSize(int(raw)))
}

func cancelled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrCancelled, err)
	}
	return nil
}

func status(r ProgressReporter, text string) {
	if r != nil {
		r.SetStatus(text)
	}
}

func progress(r ProgressReporter, fraction float32, info string) {
	if r != nil {
		r.SetProgress(fraction, info)
	}
}

// audit records the internal kind and stage of a rejected operation.
// Only the public form of the error ever leaves this package's callers.
func audit(op string, err error) {
	fields := []log.Field{
		log.String("op", op),
		log.Stringer("kind", errors.Classify(err)),
	}
	var se *container.StageError
	if errors.As(err, &se) {
		fields = append(fields, log.Stringer("stage", se.Stage))
	}
	if errors.IsCancelled(err) {
		log.Info("Operation cancelled", fields...)
		return
	}
	log.Warn("Operation rejected", append(fields, log.Err(err))...)
}
