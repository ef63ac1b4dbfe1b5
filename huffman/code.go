package huffman

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chronos-tachyon/assert"
)

// MaxCodeSize is the longest codeword a Code can hold.  Reaching it would
// take a text with more symbols than fit in memory.
const MaxCodeSize = 64

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The least significant bit
	// of Bits is the first bit.
	Bits uint64
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size byte, bits uint64) Code {
	assert.Assertf(size <= MaxCodeSize, "size %d > MaxCodeSize %d", size, MaxCodeSize)
	return Code{Size: size, Bits: bits}
}

// ParseCode parses a string of '0' and '1' characters, first bit first.
func ParseCode(s string) (Code, error) {
	if len(s) > MaxCodeSize {
		return Code{}, fmt.Errorf("codeword %q is %d bits long, max %d", s, len(s), MaxCodeSize)
	}
	var hc Code
	for index := 0; index < len(s); index++ {
		bit, ok := parseBit(s[index])
		if !ok {
			return Code{}, fmt.Errorf("invalid character %q at offset %d in codeword %q", s[index], index, s)
		}
		hc = hc.Append(bit)
	}
	return hc, nil
}

// Append returns this Code extended by one bit.
func (hc Code) Append(bit byte) Code {
	assert.Assertf(hc.Size < MaxCodeSize, "cannot extend a %d-bit code", hc.Size)
	assert.Assertf(bit <= 1, "bit %d is not 0 or 1", bit)
	return Code{Size: hc.Size + 1, Bits: hc.Bits | uint64(bit)<<hc.Size}
}

// Bit returns the bit at index i, counting from the first bit.
func (hc Code) Bit(i byte) byte {
	assert.Assertf(i < hc.Size, "index %d out of range for %d-bit code", i, hc.Size)
	return byte(hc.Bits>>i) & 1
}

// HasPrefix returns true iff the first p.Size bits of this Code equal p.
func (hc Code) HasPrefix(p Code) bool {
	if p.Size > hc.Size {
		return false
	}
	if p.Size == MaxCodeSize {
		return hc.Bits == p.Bits
	}
	mask := uint64(1)<<p.Size - 1
	return hc.Bits&mask == p.Bits
}

// Bitstring returns the bits of this Code as '0' and '1' characters, first
// bit first.
func (hc Code) Bitstring() string {
	var sb strings.Builder
	sb.Grow(int(hc.Size))
	for i := byte(0); i < hc.Size; i++ {
		sb.WriteByte('0' + hc.Bit(i))
	}
	return sb.String()
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	return strconv.Quote(hc.Bitstring())
}

var _ fmt.Stringer = Code{}
