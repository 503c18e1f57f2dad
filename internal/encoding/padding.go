package encoding

import "bytes"

// BlockSize is the chunk size for RS128 encoding and PKCS#7 padding.
const BlockSize = RS128DataSize

// Pad applies PKCS#7 padding so data fills whole 128-byte blocks.
//
// N bytes of value N are appended, where N is the number of bytes needed to
// reach a multiple of BlockSize. If data is already a multiple of BlockSize,
// a full block of padding (128 bytes of 0x80) is added.
//
// Example: 100-byte data → 128 bytes (28 bytes of value 0x1C appended)
func Pad(data []byte) []byte {
	padLen := BlockSize - len(data)%BlockSize
	padding := bytes.Repeat([]byte{byte(padLen)}, padLen)
	return append(data, padding...)
}

// Unpad removes PKCS#7 padding from the final 128-byte block.
//
// Returns data unchanged if it is shorter than BlockSize or the padding value
// is invalid (0 or > 128).
func Unpad(data []byte) []byte {
	if len(data) < BlockSize {
		return data
	}
	padLen := int(data[BlockSize-1])
	if padLen > BlockSize || padLen == 0 {
		return data
	}
	return data[:BlockSize-padLen]
}
