package container

import (
	"encoding/binary"
	"fmt"
	"io"

	"ImageVault/internal/errors"
)

// Reader handles reading containers from an input stream of known size.
// The size bounds every declared length so a forged header cannot make the
// reader allocate or read past the end of the input.
type Reader struct {
	r         io.Reader
	remaining int64
}

// NewReader creates a container reader for r, which holds exactly size bytes.
func NewReader(r io.Reader, size int64) *Reader {
	return &Reader{r: r, remaining: size}
}

// ReadVersion reads the version byte. It does not check whether the version
// is supported; that is the caller's gate.
func (r *Reader) ReadVersion() (Version, error) {
	b, err := r.readN(VersionSize, "version")
	if err != nil {
		return 0, err
	}
	return Version(b[0]), nil
}

// ReadBody reads nonce, length, ciphertext and tag following the version
// byte, and requires the input to end exactly after the tag.
func (r *Reader) ReadBody(v Version) (*Container, error) {
	c := &Container{Version: v}

	var err error
	if c.Nonce, err = r.readN(NonceSize, "nonce"); err != nil {
		return nil, err
	}

	lenBytes, err := r.readN(LengthSize, "ciphertext length")
	if err != nil {
		return nil, err
	}
	ctLen := binary.BigEndian.Uint64(lenBytes)

	if r.remaining < TagSize || ctLen > uint64(r.remaining-TagSize) {
		return nil, malformed("ciphertext length", fmt.Errorf("declared %d bytes, %d remain", ctLen, r.remaining))
	}
	if c.Ciphertext, err = r.readN(int64(ctLen), "ciphertext"); err != nil {
		return nil, err
	}

	if c.Tag, err = r.readN(TagSize, "tag"); err != nil {
		return nil, err
	}

	if r.remaining != 0 {
		return nil, malformed("trailer", fmt.Errorf("%d unexpected bytes after tag", r.remaining))
	}
	return c, nil
}

// ReadContainer reads a complete container without checking the version.
func (r *Reader) ReadContainer() (*Container, error) {
	v, err := r.ReadVersion()
	if err != nil {
		return nil, err
	}
	return r.ReadBody(v)
}

func (r *Reader) readN(n int64, field string) ([]byte, error) {
	if n > r.remaining {
		return nil, malformed(field, io.ErrUnexpectedEOF)
	}
	b := make([]byte, n)
	read, err := io.ReadFull(r.r, b)
	r.remaining -= int64(read)
	if err != nil {
		return nil, malformed(field, err)
	}
	return b, nil
}

func malformed(field string, err error) error {
	return errors.NewFormatError(field, fmt.Errorf("%w: %v", errors.ErrMalformedContainer, err))
}
