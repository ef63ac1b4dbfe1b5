package huffman

import (
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"
)

var (
	// ErrEmptyInput is returned when asked to compress an empty text.
	ErrEmptyInput = errors.New("empty input")

	// ErrInvalidUTF8 is returned when a text is not valid UTF-8 and so
	// cannot be split into symbols without loss.
	ErrInvalidUTF8 = errors.New("input is not valid UTF-8")
)

// Frequencies maps each Symbol to its number of occurrences.
type Frequencies map[Symbol]uint64

// CountFrequencies counts the runes of text.
func CountFrequencies(text string) (Frequencies, error) {
	if text == "" {
		return nil, ErrEmptyInput
	}
	if !utf8.ValidString(text) {
		offset := 0
		for offset < len(text) {
			ch, size := utf8.DecodeRuneInString(text[offset:])
			if ch == utf8.RuneError && size == 1 {
				break
			}
			offset += size
		}
		return nil, fmt.Errorf("%w: bad byte at offset %d", ErrInvalidUTF8, offset)
	}

	freqs := make(Frequencies)
	for _, ch := range text {
		freqs[Symbol(ch)]++
	}
	return freqs, nil
}

// sorted returns the symbols with a non-zero frequency in ascending order.
func (freqs Frequencies) sorted() []symbolAndFreq {
	out := make([]symbolAndFreq, 0, len(freqs))
	for symbol, freq := range freqs {
		if freq != 0 {
			out = append(out, symbolAndFreq{symbol, freq})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].symbol < out[j].symbol
	})
	return out
}

type symbolAndFreq struct {
	symbol Symbol
	freq   uint64
}
