package huffman

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Encoder maps symbols to their Huffman codewords.
type Encoder struct {
	codes   map[Symbol]Code
	minSize byte
	maxSize byte
}

// Init initializes this Encoder with the Huffman code for the given symbol
// frequencies.  Symbols with a frequency of 0 are left out of the code.
func (e *Encoder) Init(freqs Frequencies) {
	leaves := freqs.sorted()
	t := buildTree(leaves)

	codes := make(map[Symbol]Code, len(leaves))
	var minSize, maxSize byte
	t.assignCodes(func(symbol Symbol, hc Code) {
		if len(codes) == 0 {
			minSize, maxSize = hc.Size, hc.Size
		} else if minSize > hc.Size {
			minSize = hc.Size
		} else if maxSize < hc.Size {
			maxSize = hc.Size
		}
		codes[symbol] = hc
	})

	*e = Encoder{
		codes:   codes,
		minSize: minSize,
		maxSize: maxSize,
	}
}

// Encode returns the codeword for a Symbol.  The second return value is false
// if the Symbol is not part of this code.
func (e Encoder) Encode(symbol Symbol) (Code, bool) {
	hc, found := e.codes[symbol]
	return hc, found
}

// EncodeString concatenates the codewords of every rune in text.
func (e Encoder) EncodeString(text string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(text) * int(e.maxSize))
	for offset, ch := range text {
		hc, found := e.codes[Symbol(ch)]
		if !found {
			return "", fmt.Errorf("symbol %q at offset %d has no codeword", ch, offset)
		}
		sb.WriteString(hc.Bitstring())
	}
	return sb.String(), nil
}

// NumSymbols is the number of symbols with a codeword.
func (e Encoder) NumSymbols() int {
	return len(e.codes)
}

// MinSize is the bit length of the shortest legal code.
func (e Encoder) MinSize() byte {
	return e.minSize
}

// MaxSize is the bit length of the longest legal code.
func (e Encoder) MaxSize() byte {
	return e.maxSize
}

// Table returns the code table needed to decode this Encoder's output.
func (e Encoder) Table() Table {
	entries := make([]Entry, 0, len(e.codes))
	for symbol, hc := range e.codes {
		entries = append(entries, Entry{Symbol: symbol, Code: hc})
	}
	return makeTable(entries)
}

// Dump writes a programmer-readable debugging dump of the Encoder's current
// state to the given writer.
func (e Encoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Encoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", e.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", e.maxSize)
	for _, entry := range e.Table().entries {
		fmt.Fprintf(&buf, "\tEncode(%q) = %s\n", rune(entry.Symbol), entry.Code)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
