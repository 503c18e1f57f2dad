package envelope

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"ImageVault/internal/crypto"
	"ImageVault/internal/errors"
	"ImageVault/internal/log"
)

// Serialization constants
const (
	Revision       = 0x01
	MaxFilenameLen = 0xFFFF
	maxFormatLen   = 0xFF

	// revision + filename length + format length + width + height + checksum length + checksum
	MinSize = 1 + 2 + 1 + 4 + 4 + 1 + crypto.ChecksumSize

	// MaxSize is the largest serialized envelope
	MaxSize = MinSize + MaxFilenameLen + maxFormatLen
)

// Envelope is the metadata sealed together with the image bytes.
// Width and Height are 0 when the image header could not be parsed.
type Envelope struct {
	Filename string
	Format   Format
	Width    uint32
	Height   uint32
	Checksum []byte
}

// Build creates the envelope for src.
//
// A recognized signature in src wins over declared; a disagreement is logged.
// Without one, declared must name a supported format.
// filename is reduced to its final path element; an empty name becomes
// "image" plus the format extension.
func Build(src []byte, filename, declared string) (*Envelope, error) {
	if len(src) == 0 {
		return nil, fmt.Errorf("%w: empty image", errors.ErrNoInput)
	}

	format, err := resolveFormat(src, declared)
	if err != nil {
		return nil, err
	}

	name := baseName(filename)
	if name == "" {
		name = "image" + format.Extension()
	}
	if err := validateFilename(name); err != nil {
		return nil, err
	}

	env := &Envelope{
		Filename: name,
		Format:   format,
		Checksum: crypto.Checksum(src),
	}
	if w, h, ok := Dimensions(src); ok {
		env.Width, env.Height = w, h
	} else {
		log.Debug("image dimensions unknown", log.String("format", format.String()))
	}
	return env, nil
}

func resolveFormat(src []byte, declared string) (Format, error) {
	sniffed, ok := Sniff(src)
	if ok {
		if declared != "" {
			if d, err := ParseFormat(declared); err != nil || d != sniffed {
				log.Warn("declared format does not match content",
					log.String("declared", declared),
					log.String("detected", sniffed.String()))
			}
		}
		return sniffed, nil
	}
	if declared == "" {
		return "", fmt.Errorf("%w: unrecognized content and no declared format", errors.ErrUnsupportedFormat)
	}
	return ParseFormat(declared)
}

func baseName(filename string) string {
	return filename[strings.LastIndexAny(filename, `/\`)+1:]
}

func validateFilename(name string) error {
	if len(name) > MaxFilenameLen {
		return errors.NewFormatError("filename", fmt.Errorf("%w: %d bytes exceeds %d", errors.ErrMalformedEnvelope, len(name), MaxFilenameLen))
	}
	if !utf8.ValidString(name) {
		return errors.NewFormatError("filename", fmt.Errorf("%w: not valid UTF-8", errors.ErrMalformedEnvelope))
	}
	return nil
}

// Verify recomputes the checksum of payload and compares it in constant time.
func (e *Envelope) Verify(payload []byte) error {
	if !crypto.ChecksumEqual(crypto.Checksum(payload), e.Checksum) {
		return errors.ErrIntegrityMismatch
	}
	return nil
}

// MarshalBinary serializes the envelope. Field order is fixed:
//
//	revision(1) | filenameLen(2) | filename | formatLen(1) | format |
//	width(4) | height(4) | checksumLen(1) | checksum(32)
//
// All integers are big-endian.
func (e *Envelope) MarshalBinary() ([]byte, error) {
	if err := validateFilename(e.Filename); err != nil {
		return nil, err
	}
	if !e.Format.Supported() || len(e.Format) > maxFormatLen {
		return nil, errors.NewFormatError("format", fmt.Errorf("%w: %q", errors.ErrUnsupportedFormat, string(e.Format)))
	}
	if len(e.Checksum) != crypto.ChecksumSize {
		return nil, errors.NewFormatError("checksum", fmt.Errorf("%w: length %d", errors.ErrMalformedEnvelope, len(e.Checksum)))
	}

	var buf bytes.Buffer
	buf.Grow(MinSize + len(e.Filename) + len(e.Format))
	w := &writer{w: &buf}

	w.writeByte(Revision)
	w.writeUint16(uint16(len(e.Filename)))
	w.writeBytes([]byte(e.Filename))
	w.writeByte(byte(len(e.Format)))
	w.writeBytes([]byte(e.Format))
	w.writeUint32(e.Width)
	w.writeUint32(e.Height)
	w.writeByte(byte(len(e.Checksum)))
	w.writeBytes(e.Checksum)
	if w.err != nil {
		return nil, fmt.Errorf("write envelope: %w", w.err)
	}
	return buf.Bytes(), nil
}

// Unmarshal parses b, which must contain exactly one envelope.
// Every failure wraps ErrMalformedEnvelope.
func Unmarshal(b []byte) (*Envelope, error) {
	r := bytes.NewReader(b)
	e := &Envelope{}

	rev, err := readByte(r, "revision")
	if err != nil {
		return nil, err
	}
	if rev != Revision {
		return nil, malformed("revision", fmt.Errorf("unknown revision 0x%02x", rev))
	}

	var nameLen uint16
	if err := binary.Read(r, binary.BigEndian, &nameLen); err != nil {
		return nil, malformed("filename length", err)
	}
	name, err := readN(r, int(nameLen), "filename")
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(name) {
		return nil, malformed("filename", fmt.Errorf("not valid UTF-8"))
	}
	e.Filename = string(name)

	formatLen, err := readByte(r, "format length")
	if err != nil {
		return nil, err
	}
	tag, err := readN(r, int(formatLen), "format")
	if err != nil {
		return nil, err
	}
	e.Format = Format(tag)
	if !e.Format.Supported() {
		return nil, malformed("format", fmt.Errorf("unsupported tag %q", tag))
	}

	if err := binary.Read(r, binary.BigEndian, &e.Width); err != nil {
		return nil, malformed("width", err)
	}
	if err := binary.Read(r, binary.BigEndian, &e.Height); err != nil {
		return nil, malformed("height", err)
	}

	sumLen, err := readByte(r, "checksum length")
	if err != nil {
		return nil, err
	}
	if sumLen != crypto.ChecksumSize {
		return nil, malformed("checksum length", fmt.Errorf("got %d, want %d", sumLen, crypto.ChecksumSize))
	}
	if e.Checksum, err = readN(r, int(sumLen), "checksum"); err != nil {
		return nil, err
	}

	if r.Len() != 0 {
		return nil, malformed("trailer", fmt.Errorf("%d unexpected bytes", r.Len()))
	}
	return e, nil
}

func malformed(field string, err error) error {
	return errors.NewFormatError(field, fmt.Errorf("%w: %v", errors.ErrMalformedEnvelope, err))
}

func readByte(r *bytes.Reader, field string) (byte, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, malformed(field, io.ErrUnexpectedEOF)
	}
	return b, nil
}

// readN never allocates more than what remains in r.
func readN(r *bytes.Reader, n int, field string) ([]byte, error) {
	if n > r.Len() {
		return nil, malformed(field, fmt.Errorf("declared %d bytes, %d remain", n, r.Len()))
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, malformed(field, err)
	}
	return b, nil
}

// writer accumulates the first error, like a bufio.Writer.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) writeBytes(b []byte) {
	if w.err == nil {
		_, w.err = w.w.Write(b)
	}
}

func (w *writer) writeByte(b byte) {
	w.writeBytes([]byte{b})
}

func (w *writer) writeUint16(v uint16) {
	w.writeBytes(binary.BigEndian.AppendUint16(nil, v))
}

func (w *writer) writeUint32(v uint32) {
	w.writeBytes(binary.BigEndian.AppendUint32(nil, v))
}
