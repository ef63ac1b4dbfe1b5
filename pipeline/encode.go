package pipeline

import (
	"fmt"

	"github.com/chronos-tachyon/decrypter/bitpack"
	"github.com/chronos-tachyon/decrypter/hamming"
	"github.com/chronos-tachyon/decrypter/internal/obfuscate"
	"github.com/chronos-tachyon/decrypter/internal/vigenere"
)

// EncodeMessage produces the contents of a code file for plain: the inverse
// of the read, correct, reduce, assemble and decipher stages.  Characters
// above U+00FF cannot be stored in one byte and are rejected.
func EncodeMessage(plain string, key string) ([]byte, error) {
	cipher, err := vigenere.Encrypt(plain, key)
	if err != nil {
		return nil, err
	}

	raw := make([]byte, 0, len(cipher))
	for offset, ch := range cipher {
		if ch > 0xff {
			return nil, fmt.Errorf("character %q at offset %d does not fit in a byte", ch, offset)
		}
		raw = append(raw, byte(ch))
	}

	return obfuscate.Conceal(hamming.Encode(bitpack.Unpack(raw))), nil
}
