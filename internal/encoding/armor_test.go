package encoding

import (
	"bytes"
	"errors"
	"testing"

	ivErrors "ImageVault/internal/errors"
)

func TestArmorRoundtrip(t *testing.T) {
	codecs, err := NewRSCodecs()
	if err != nil {
		t.Fatal(err)
	}

	for _, size := range []int{0, 1, 37, 127, 128, 129, 255, 256, 1000} {
		data := make([]byte, size)
		for i := range data {
			data[i] = byte(i * 7)
		}

		armored := Armor(codecs, data)
		if !IsArmored(armored) {
			t.Errorf("size %d: missing magic", size)
		}
		if len(armored) != ArmoredSize(size) {
			t.Errorf("size %d: armored length = %d; want %d", size, len(armored), ArmoredSize(size))
		}

		got, err := Unarmor(codecs, armored)
		if err != nil {
			t.Fatalf("size %d: Unarmor failed: %v", size, err)
		}
		if !bytes.Equal(got, data) {
			t.Errorf("size %d: round trip mismatch", size)
		}
	}
}

func TestArmorDoesNotModifyInput(t *testing.T) {
	codecs, _ := NewRSCodecs()
	data := make([]byte, 10, 200)
	copy(data, "0123456789")
	spare := data[:200]

	Armor(codecs, data)
	if !bytes.Equal(spare[10:], make([]byte, 190)) {
		t.Error("Armor wrote into the caller's spare capacity")
	}
}

func TestArmorRepairsDamage(t *testing.T) {
	codecs, _ := NewRSCodecs()
	data := bytes.Repeat([]byte("container bytes "), 40) // 640 bytes, 6 blocks
	armored := Armor(codecs, data)

	damaged := bytes.Clone(armored)
	// Length field: up to 8 bytes
	for i := 0; i < 5; i++ {
		damaged[4+i] ^= 0xFF
	}
	// Every body block: up to 4 bytes each
	for blk := 0; blk < (len(damaged)-armorHeaderSize)/RS128EncodedSize; blk++ {
		base := armorHeaderSize + blk*RS128EncodedSize
		damaged[base] ^= 0x01
		damaged[base+60] ^= 0x10
		damaged[base+135] ^= 0xFE
	}

	got, err := Unarmor(codecs, damaged)
	if err != nil {
		t.Fatalf("Unarmor failed on correctable damage: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("repaired data differs from original")
	}
}

func TestUnarmorRejects(t *testing.T) {
	codecs, _ := NewRSCodecs()
	data := bytes.Repeat([]byte{0x5A}, 300)
	armored := Armor(codecs, data)

	heavy := bytes.Clone(armored)
	for i := 0; i < 40; i++ {
		heavy[armorHeaderSize+i] ^= byte(i + 1)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"no magic", armored[4:]},
		{"magic only", armored[:4]},
		{"truncated body", armored[:len(armored)-1]},
		{"extra block", append(bytes.Clone(armored), make([]byte, RS128EncodedSize)...)},
		{"missing block", armored[:len(armored)-RS128EncodedSize]},
		{"uncorrectable block", heavy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unarmor(codecs, tt.data)
			if !errors.Is(err, ivErrors.ErrMalformedContainer) {
				t.Errorf("err = %v; want ErrMalformedContainer", err)
			}
		})
	}
}

func TestIsArmored(t *testing.T) {
	if IsArmored([]byte{0x01, 'I', 'V', 'R', 'S'}) {
		t.Error("raw container should not be detected as armored")
	}
	if IsArmored([]byte("IVR")) {
		t.Error("partial magic should not match")
	}
	if !IsArmored([]byte("IVRS....")) {
		t.Error("magic should match")
	}
}
