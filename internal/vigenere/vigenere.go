// Package vigenere implements a repeating-key rotation cipher over the ASCII
// letters.  Every other character is copied through unchanged and does not
// advance the key.
package vigenere

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// DefaultKey is the key the stock code files are enciphered with.
const DefaultKey = "python"

// ErrInvalidKey is returned for an empty key or one containing non-letters.
var ErrInvalidKey = errors.New("invalid cipher key")

// Encrypt rotates each letter of text forward by the matching key letter,
// where 'a' and 'A' shift by 0 and 'z' and 'Z' by 25.
func Encrypt(text string, key string) (string, error) {
	return rotate(text, key, 1)
}

// Decrypt is the inverse of Encrypt.
func Decrypt(text string, key string) (string, error) {
	return rotate(text, key, -1)
}

// RandomKey returns n letters drawn uniformly from [a-zA-Z].
func RandomKey(n int, r *rand.Rand) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = letters[r.Intn(len(letters))]
	}
	return string(buf)
}

// ValidateKey checks that key is non-empty and made of ASCII letters.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	for i := 0; i < len(key); i++ {
		if letterBase(key[i]) == 0 {
			return fmt.Errorf("%w: %q at offset %d is not a letter", ErrInvalidKey, key[i], i)
		}
	}
	return nil
}

func rotate(text string, key string, dir int) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.Grow(len(text))
	k := 0
	for _, ch := range text {
		if ch >= 0x80 {
			sb.WriteRune(ch)
			continue
		}
		base := letterBase(byte(ch))
		if base == 0 {
			sb.WriteRune(ch)
			continue
		}
		kb := key[k]
		shift := int(kb - letterBase(kb))
		offset := (int(byte(ch)-base) + dir*shift + 26) % 26
		sb.WriteByte(base + byte(offset))
		k = (k + 1) % len(key)
	}
	return sb.String(), nil
}

func letterBase(ch byte) byte {
	switch {
	case ch >= 'a' && ch <= 'z':
		return 'a'
	case ch >= 'A' && ch <= 'Z':
		return 'A'
	default:
		return 0
	}
}
