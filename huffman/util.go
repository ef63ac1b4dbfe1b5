package huffman

import (
	mathbits "math/bits"
)

// log2ceil returns the number of bits needed to represent x, treating 0 as 1.
func log2ceil(x int) int {
	if x <= 0 {
		x = 1
	}
	return mathbits.Len(uint(x))
}

// parseBit maps '0' and '1' to 0 and 1.
func parseBit(ch byte) (byte, bool) {
	switch ch {
	case '0':
		return 0, true
	case '1':
		return 1, true
	default:
		return 0, false
	}
}
