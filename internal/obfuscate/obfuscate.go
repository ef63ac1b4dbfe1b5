// Package obfuscate undoes and reapplies the fixed byte transform used by
// code files.  Every bit is stored as one byte equal to the bit XOR 0x30, so
// a code file reads as a run of ASCII '0' and '1' characters.
package obfuscate

import (
	"errors"
	"fmt"
)

// Key is the constant every byte is XORed with.
const Key = 0x30

// ErrNotBit is returned by Reveal when a byte does not decode to 0 or 1.
var ErrNotBit = errors.New("byte does not encode a bit")

// Reveal XORs each byte of data with Key and returns the resulting bits.
// ASCII whitespace is skipped, so line-wrapped files decode the same as
// single-line ones.
func Reveal(data []byte) ([]byte, error) {
	bits := make([]byte, 0, len(data))
	for offset, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			continue
		}
		bit := b ^ Key
		if bit > 1 {
			return nil, fmt.Errorf("%w: %q at offset %d", ErrNotBit, b, offset)
		}
		bits = append(bits, bit)
	}
	return bits, nil
}

// Conceal is the inverse of Reveal.
func Conceal(bits []byte) []byte {
	out := make([]byte, len(bits))
	for i, bit := range bits {
		out[i] = (bit & 1) ^ Key
	}
	return out
}
