package container

import (
	"encoding/binary"
	"fmt"
	"io"

	"ImageVault/internal/errors"
)

// Writer handles writing containers to an output stream
type Writer struct {
	w io.Writer
}

// NewWriter creates a container writer for the given output stream
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteContainer writes c in wire order and returns the number of bytes written.
//
// Container format (total = 37 + ciphertext bytes):
//   - Version:          1 byte
//   - Nonce:            12 bytes
//   - CiphertextLength: 8 bytes (uint64 big-endian, tag excluded)
//   - Ciphertext:       variable
//   - Tag:              16 bytes
func (w *Writer) WriteContainer(c *Container) (int, error) {
	if len(c.Nonce) != NonceSize {
		return 0, errors.NewFormatError("nonce", fmt.Errorf("%w: length %d", errors.ErrMalformedContainer, len(c.Nonce)))
	}
	if len(c.Tag) != TagSize {
		return 0, errors.NewFormatError("tag", fmt.Errorf("%w: length %d", errors.ErrMalformedContainer, len(c.Tag)))
	}

	var totalWritten int

	n, err := w.w.Write([]byte{byte(c.Version)})
	totalWritten += n
	if err != nil {
		return totalWritten, fmt.Errorf("write version: %w", err)
	}

	n, err = w.w.Write(c.Nonce)
	totalWritten += n
	if err != nil {
		return totalWritten, fmt.Errorf("write nonce: %w", err)
	}

	n, err = w.w.Write(binary.BigEndian.AppendUint64(nil, uint64(len(c.Ciphertext))))
	totalWritten += n
	if err != nil {
		return totalWritten, fmt.Errorf("write ciphertext length: %w", err)
	}

	n, err = w.w.Write(c.Ciphertext)
	totalWritten += n
	if err != nil {
		return totalWritten, fmt.Errorf("write ciphertext: %w", err)
	}

	n, err = w.w.Write(c.Tag)
	totalWritten += n
	if err != nil {
		return totalWritten, fmt.Errorf("write tag: %w", err)
	}

	return totalWritten, nil
}
