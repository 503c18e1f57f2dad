// Package encoding provides Reed-Solomon error correction and PKCS#7 padding
// for the optional armor around ImageVault containers.
//
// Two RS configurations are used:
//
//   - RS8 (8->24):      For the armored length field (highest redundancy)
//   - RS128 (128->136): For container blocks (minimal overhead for bulk data)
//
// RS128 can correct up to 4 byte errors per 136-byte block; RS8 up to 8 per
// 24-byte block.
package encoding

import (
	"errors"

	"github.com/Picocrypt/infectious"
)

// Reed-Solomon chunk sizes
const (
	RS8DataSize      = 8
	RS8EncodedSize   = 24
	RS128DataSize    = 128 // Input chunk size for RS128
	RS128EncodedSize = 136 // Output chunk size for RS128 (128 + 8 parity)
)

// RSCodecs holds initialized Reed-Solomon Forward Error Correction (FEC) codecs.
// A set is not shared between goroutines; create one per operation.
type RSCodecs struct {
	RS8   *infectious.FEC // 8 data -> 24 total bytes - armored length
	RS128 *infectious.FEC // 128 data -> 136 total bytes (6% overhead) - container blocks
}

// NewRSCodecs initializes all Reed-Solomon codecs.
func NewRSCodecs() (*RSCodecs, error) {
	rs8, err1 := infectious.NewFEC(RS8DataSize, RS8EncodedSize)
	rs128, err2 := infectious.NewFEC(RS128DataSize, RS128EncodedSize)

	if err1 != nil || err2 != nil {
		return nil, errors.New("failed to initialize Reed-Solomon codecs")
	}

	return &RSCodecs{
		RS8:   rs8,
		RS128: rs128,
	}, nil
}

// Encode applies Reed-Solomon encoding to data using the specified codec.
// The input data length must match the codec's Required() size.
// Returns encoded data with parity bytes appended (length = codec.Total()).
//
// Example: Encode(rs128, 128-byte-data) -> 136 bytes with 8 parity bytes.
func Encode(rs *infectious.FEC, data []byte) []byte {
	res := make([]byte, rs.Total())
	if err := rs.Encode(data, func(s infectious.Share) {
		res[s.Number] = s.Data[0]
	}); err != nil {
		// This should never happen with correct input size
		panic("rs.Encode failed: " + err.Error())
	}
	return res
}

// Decode attempts to decode and repair Reed-Solomon encoded data.
// data must be exactly codec.Total() bytes.
//
// Returns the original bytes without parity, or an error if too many bytes
// are corrupted to recover. On error the uncorrected data bytes are returned
// as well.
func Decode(rs *infectious.FEC, data []byte) ([]byte, error) {
	if len(data) != rs.Total() {
		return nil, errors.New("reed-solomon block has wrong size")
	}

	tmp := make([]infectious.Share, rs.Total())
	for i := range rs.Total() {
		tmp[i].Number = i
		tmp[i].Data = append(tmp[i].Data, data[i])
	}
	res, err := rs.Decode(nil, tmp)
	if err != nil {
		return data[:rs.Required()], err
	}
	return res, nil
}
