package encoding

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"ImageVault/internal/errors"
)

// ArmorMagic marks an armored container. No container version starts with 'I'.
var ArmorMagic = []byte("IVRS")

// armorHeaderSize is magic + RS8-encoded length
const armorHeaderSize = 4 + RS8EncodedSize

// IsArmored reports whether data starts with the armor magic.
func IsArmored(data []byte) bool {
	return bytes.HasPrefix(data, ArmorMagic)
}

// ArmoredSize returns the armored length of an n-byte container.
func ArmoredSize(n int) int {
	return armorHeaderSize + (n/BlockSize+1)*RS128EncodedSize
}

// Armor wraps a finished container in Reed-Solomon parity so it survives
// storage bit-rot.
//
// Layout:
//
//	magic "IVRS"(4) | RS8(uint64 length)(24) | RS128 blocks of Pad(container)
func Armor(rs *RSCodecs, container []byte) []byte {
	out := make([]byte, 0, ArmoredSize(len(container)))
	out = append(out, ArmorMagic...)
	out = append(out, Encode(rs.RS8, binary.BigEndian.AppendUint64(nil, uint64(len(container))))...)

	full := len(container) - len(container)%BlockSize
	for i := 0; i < full; i += BlockSize {
		out = append(out, Encode(rs.RS128, container[i:i+BlockSize])...)
	}
	last := Pad(bytes.Clone(container[full:]))
	out = append(out, Encode(rs.RS128, last)...)
	return out
}

// Unarmor corrects and strips the armor, returning the original container.
// Uncorrectable damage, a bad magic or an inconsistent length is
// ErrMalformedContainer.
func Unarmor(rs *RSCodecs, data []byte) ([]byte, error) {
	if !IsArmored(data) {
		return nil, malformed("armor magic", fmt.Errorf("missing"))
	}
	if len(data) < armorHeaderSize+RS128EncodedSize {
		return nil, malformed("armor", fmt.Errorf("%d bytes is too short", len(data)))
	}

	lenBytes, err := Decode(rs.RS8, data[len(ArmorMagic):armorHeaderSize])
	if err != nil {
		return nil, malformed("armor length", err)
	}
	n := binary.BigEndian.Uint64(lenBytes)

	body := data[armorHeaderSize:]
	if len(body)%RS128EncodedSize != 0 {
		return nil, malformed("armor body", fmt.Errorf("%d bytes is not a whole number of blocks", len(body)))
	}
	blocks := len(body) / RS128EncodedSize
	if n/BlockSize+1 != uint64(blocks) {
		return nil, malformed("armor length", fmt.Errorf("declared %d bytes, have %d blocks", n, blocks))
	}

	out := make([]byte, 0, blocks*BlockSize)
	for i := 0; i < blocks; i++ {
		block, err := Decode(rs.RS128, body[i*RS128EncodedSize:(i+1)*RS128EncodedSize])
		if err != nil {
			return nil, malformed("armor block", fmt.Errorf("block %d: %w", i, err))
		}
		if i == blocks-1 {
			block = Unpad(block)
		}
		out = append(out, block...)
	}

	if uint64(len(out)) != n {
		return nil, malformed("armor padding", fmt.Errorf("decoded %d bytes, declared %d", len(out), n))
	}
	return out, nil
}

func malformed(field string, err error) error {
	return errors.NewFormatError(field, fmt.Errorf("%w: %v", errors.ErrMalformedContainer, err))
}
