package envelope

import (
	"bytes"
	"image"

	// Registered decoders for DecodeConfig
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var (
	magicPNG  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	magicJPEG = []byte{0xFF, 0xD8, 0xFF}
	magicGIF7 = []byte("GIF87a")
	magicGIF9 = []byte("GIF89a")
	magicBMP  = []byte("BM")
	magicRIFF = []byte("RIFF")
	magicWEBP = []byte("WEBP")
)

// Sniff identifies the format of src from its leading signature.
func Sniff(src []byte) (Format, bool) {
	switch {
	case bytes.HasPrefix(src, magicPNG):
		return FormatPNG, true
	case bytes.HasPrefix(src, magicJPEG):
		return FormatJPEG, true
	case bytes.HasPrefix(src, magicGIF7), bytes.HasPrefix(src, magicGIF9):
		return FormatGIF, true
	case len(src) >= 12 && bytes.HasPrefix(src, magicRIFF) && bytes.Equal(src[8:12], magicWEBP):
		return FormatWebP, true
	case len(src) >= 14 && bytes.HasPrefix(src, magicBMP):
		// "BM" alone is too weak; require room for the file header.
		return FormatBMP, true
	}
	return "", false
}

// Dimensions reads the pixel size from the image header without decoding
// pixels. ok is false when the header cannot be parsed.
func Dimensions(src []byte) (width, height uint32, ok bool) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(src))
	if err != nil || cfg.Width < 0 || cfg.Height < 0 {
		return 0, 0, false
	}
	return uint32(cfg.Width), uint32(cfg.Height), true
}
