package huffman

import (
	"unicode"
)

// Symbol represents one Unicode code point of the compressed alphabet.
// Negative symbols are not valid.
type Symbol int32

// MaxSymbol is the maximum valid symbol.
const MaxSymbol = Symbol(unicode.MaxRune)

// InvalidSymbol is returned by some functions to clearly indicate that no
// symbol is being returned.
const InvalidSymbol = Symbol(-1)

// IsValid returns true iff this Symbol is a code point.
func (s Symbol) IsValid() bool {
	return s >= 0 && s <= MaxSymbol
}
