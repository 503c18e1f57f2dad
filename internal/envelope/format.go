// Package envelope builds and (de)serializes the metadata envelope sealed
// together with every image: filename, format, dimensions and checksum.
package envelope

import (
	"fmt"
	"strings"

	"ImageVault/internal/errors"
)

// Format is the canonical tag of a supported image kind.
// The tag string is what gets serialized.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatGIF  Format = "gif"
	FormatBMP  Format = "bmp"
	FormatWebP Format = "webp"
)

// formatInfo describes the naming of each supported format.
var formatInfo = map[Format]struct {
	ext  string
	mime string
}{
	FormatPNG:  {".png", "image/png"},
	FormatJPEG: {".jpg", "image/jpeg"},
	FormatGIF:  {".gif", "image/gif"},
	FormatBMP:  {".bmp", "image/bmp"},
	FormatWebP: {".webp", "image/webp"},
}

// aliases maps normalized names to formats
var aliases = map[string]Format{
	"png":  FormatPNG,
	"jpeg": FormatJPEG,
	"jpg":  FormatJPEG,
	"jpe":  FormatJPEG,
	"jfif": FormatJPEG,
	"gif":  FormatGIF,
	"bmp":  FormatBMP,
	"dib":  FormatBMP,
	"webp": FormatWebP,
}

// ParseFormat accepts an extension, a name or a MIME type, case-insensitive,
// with or without a leading dot: ".JPG", "jpeg", "image/png".
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.TrimPrefix(name, "image/")
	name = strings.TrimPrefix(name, ".")
	if f, ok := aliases[name]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", errors.ErrUnsupportedFormat, s)
}

// Supported reports whether f is a known format tag.
func (f Format) Supported() bool {
	_, ok := formatInfo[f]
	return ok
}

// Extension returns the preferred file extension, including the dot.
func (f Format) Extension() string {
	return formatInfo[f].ext
}

// MIMEType returns the media type of f.
func (f Format) MIMEType() string {
	return formatInfo[f].mime
}

func (f Format) String() string {
	return string(f)
}

// Formats lists the supported formats in display order.
func Formats() []Format {
	return []Format{FormatPNG, FormatJPEG, FormatBMP, FormatGIF, FormatWebP}
}
