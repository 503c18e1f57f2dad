package encoding

import (
	"testing"
)

var codecs *RSCodecs

func init() {
	var err error
	codecs, err = NewRSCodecs()
	if err != nil {
		panic(err)
	}
}

// BenchmarkPad measures PKCS#7 padding performance.
func BenchmarkPad(b *testing.B) {
	data := make([]byte, 100) // Typical partial chunk size
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Pad(data[:100:100])
	}
}

// BenchmarkRS128Encode measures RS128 encoding performance (per 128-byte block).
func BenchmarkRS128Encode(b *testing.B) {
	data := make([]byte, RS128DataSize)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Encode(codecs.RS128, data)
	}
}

// BenchmarkRS128Decode measures RS128 decoding of an undamaged block.
func BenchmarkRS128Decode(b *testing.B) {
	data := Encode(codecs.RS128, make([]byte, RS128DataSize))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Decode(codecs.RS128, data)
	}
}

// BenchmarkArmor1MiB measures armoring a 1 MiB container.
func BenchmarkArmor1MiB(b *testing.B) {
	data := make([]byte, 1<<20)
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Armor(codecs, data)
	}
}

// BenchmarkUnarmor1MiB measures unarmoring a 1 MiB container.
func BenchmarkUnarmor1MiB(b *testing.B) {
	armored := Armor(codecs, make([]byte, 1<<20))
	b.SetBytes(int64(len(armored)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Unarmor(codecs, armored)
	}
}
