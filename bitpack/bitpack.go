// Package bitpack converts between flat bit sequences and bytes.
//
// A bit sequence is a []byte in which every element holds 0 or 1.  Bytes are
// assembled most-significant-bit first: the first bit of each group of 8 lands
// in bit position 7.
//
// Pack drops a trailing group shorter than 8 bits instead of zero-padding it,
// so Pack and Unpack are exact inverses only when the bit count is a multiple
// of 8.
//
package bitpack

import (
	"fmt"
	"strings"

	"github.com/chronos-tachyon/assert"
)

// BitsPerByte is the number of bits consumed by Pack for each output byte.
const BitsPerByte = 8

// PackedLen returns the number of bytes Pack produces for nbits bits.
func PackedLen(nbits int) int {
	assert.Assertf(nbits >= 0, "nbits %d < 0", nbits)
	return nbits / BitsPerByte
}

// Pack groups bits into bytes, MSB first.  Any trailing partial group is
// dropped.
func Pack(bits []byte) []byte {
	out := make([]byte, 0, PackedLen(len(bits)))

	var b byte
	var n uint
	for index, bit := range bits {
		assert.Assertf(bit <= 1, "bits[%d] = %d is not a bit", index, bit)
		b = (b << 1) | bit
		n++
		if n == BitsPerByte {
			out = append(out, b)
			b, n = 0, 0
		}
	}
	return out
}

// Unpack expands each byte into 8 bits, MSB first.
func Unpack(data []byte) []byte {
	out := make([]byte, 0, len(data)*BitsPerByte)
	for _, b := range data {
		for shift := BitsPerByte - 1; shift >= 0; shift-- {
			out = append(out, (b>>uint(shift))&1)
		}
	}
	return out
}

// Bitstring renders bits as a string of '0' and '1' characters.
func Bitstring(bits []byte) string {
	var sb strings.Builder
	sb.Grow(len(bits))
	for index, bit := range bits {
		assert.Assertf(bit <= 1, "bits[%d] = %d is not a bit", index, bit)
		sb.WriteByte('0' + bit)
	}
	return sb.String()
}

// ParseBitstring is the inverse of Bitstring.
func ParseBitstring(s string) ([]byte, error) {
	out := make([]byte, len(s))
	for index := 0; index < len(s); index++ {
		switch ch := s[index]; ch {
		case '0', '1':
			out[index] = ch - '0'
		default:
			return nil, fmt.Errorf("invalid character %q at offset %d in bitstring", ch, index)
		}
	}
	return out, nil
}
