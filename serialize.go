package clk

import (
	"encoding/base64"
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Serialize packs v into a base64 string.
//
// Bits are packed most significant bit first: bit 0 of v is the high bit of
// the first byte. A length that is not a multiple of 8 is padded with zero
// bits, so Deserialize needs the bit length to recover v exactly.
func Serialize(v *bitset.BitSet) string {
	return base64.StdEncoding.EncodeToString(packBits(v))
}

// Deserialize decodes a string produced by Serialize into a vector of l
// bits.
func Deserialize(s string, l uint) (*bitset.BitSet, error) {
	buf, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	if want := (l + 7) / 8; uint(len(buf)) != want {
		return nil, fmt.Errorf("%w: got %d bytes, expected %d for %d bits", ErrInvalidData, len(buf), want, l)
	}

	v := bitset.New(l)
	for i, b := range buf {
		for j := range 8 {
			if b&(0x80>>j) == 0 {
				continue
			}
			pos := uint(i*8 + j)
			if pos >= l {
				return nil, fmt.Errorf("%w: padding bit %d is set", ErrInvalidData, pos)
			}
			v.Set(pos)
		}
	}
	return v, nil
}

// Popcount returns the number of set bits in v.
func Popcount(v *bitset.BitSet) int {
	return int(v.Count())
}

func packBits(v *bitset.BitSet) []byte {
	buf := make([]byte, (v.Len()+7)/8)
	for i, ok := v.NextSet(0); ok && i < v.Len(); i, ok = v.NextSet(i + 1) {
		buf[i/8] |= 0x80 >> (i % 8)
	}
	return buf
}
