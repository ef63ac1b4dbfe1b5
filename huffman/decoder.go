package huffman

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ErrDecodeMismatch is returned when a bitstring is not an exact
// concatenation of codewords from the table.
var ErrDecodeMismatch = errors.New("bitstring does not match code table")

// Decoder maps codewords back to symbols.
type Decoder struct {
	table   map[Code]decoderData
	numSyms int
	minSize byte
	maxSize byte
}

// Init initializes this Decoder from a code table.
//
// The table must be prefix-free: no codeword may be empty, longer than
// MaxCodeSize, equal to another codeword, or a prefix of another codeword.
// A table with zero symbols is permitted and decodes only the empty string.
//
func (d *Decoder) Init(t Table) error {
	numSyms := len(t.entries)
	if numSyms == 0 {
		*d = Decoder{}
		return nil
	}

	// Insert short codewords first, so that a codeword which is a prefix
	// of another is always found before the longer one's parent chain.
	sorted := make(bySize, numSyms)
	copy(sorted, t.entries)
	sorted.Sort()

	// len(table) is approximately n×log2(n) when filled.
	table := make(map[Code]decoderData, numSyms*log2ceil(numSyms))

	minSize := sorted[0].Code.Size
	maxSize := sorted[numSyms-1].Code.Size
	for _, entry := range sorted {
		symbol, hc := entry.Symbol, entry.Code
		if !symbol.IsValid() {
			return fmt.Errorf("%w: symbol %d is not a valid code point", ErrInvalidTable, symbol)
		}
		if hc.Size == 0 || hc.Size > MaxCodeSize {
			return fmt.Errorf("%w: codeword for %q has invalid length %d", ErrInvalidTable, rune(symbol), hc.Size)
		}
		if dd, found := table[hc]; found {
			if dd.symbol != InvalidSymbol {
				return fmt.Errorf("%w: symbols %q and %q share codeword %s", ErrInvalidTable, rune(dd.symbol), rune(symbol), hc)
			}
			return fmt.Errorf("%w: codeword %s for %q is a prefix of another codeword", ErrInvalidTable, hc, rune(symbol))
		}
		for p := (Code{Size: 1}); p.Size < hc.Size; p.Size++ {
			p.Bits = hc.Bits & (uint64(1)<<p.Size - 1)
			if dd, found := table[p]; found && dd.symbol != InvalidSymbol {
				return fmt.Errorf("%w: codeword %s for %q is a prefix of %s for %q", ErrInvalidTable, p, rune(dd.symbol), hc, rune(symbol))
			}
		}
		fillTable(table, symbol, hc)
	}

	*d = Decoder{
		table:   table,
		numSyms: numSyms,
		minSize: minSize,
		maxSize: maxSize,
	}
	return nil
}

// Decode attempts to decode a Huffman code into a Symbol.
//
// If the Decode is completely successful, symbol >= 0 and minSize == maxSize.
//
// If the Decode fails due to insufficient bits, symbol == InvalidSymbol and at
// least (minSize - hc.Size) additional bits are required to decode this
// symbol.  No more than (maxSize - hc.Size) additional bits will be required.
//
// If the Decode fails due to unreasonable input, symbol == InvalidSymbol and
// minSize == maxSize == 0.
//
func (d Decoder) Decode(hc Code) (symbol Symbol, minSize byte, maxSize byte) {
	dd, found := d.table[hc]
	if !found {
		return InvalidSymbol, 0, 0
	}
	return dd.symbol, dd.minSize, dd.maxSize
}

// DecodeString reads bitstring one bit at a time, emitting a symbol each
// time the accumulated bits form a codeword.  It returns ErrDecodeMismatch
// if the bits stop being a prefix of any codeword, if a character other than
// '0' or '1' appears, or if the bitstring ends partway through a codeword.
func (d Decoder) DecodeString(bitstring string) (string, error) {
	var sb strings.Builder
	var acc Code
	start := 0
	for index := 0; index < len(bitstring); index++ {
		bit, ok := parseBit(bitstring[index])
		if !ok {
			return "", fmt.Errorf("%w: invalid character %q at offset %d", ErrDecodeMismatch, bitstring[index], index)
		}
		acc = acc.Append(bit)

		dd, found := d.table[acc]
		if !found {
			return "", fmt.Errorf("%w: bits %s at offset %d are not a prefix of any codeword", ErrDecodeMismatch, acc, start)
		}
		if dd.symbol != InvalidSymbol {
			sb.WriteRune(rune(dd.symbol))
			acc = Code{}
			start = index + 1
		}
	}
	if acc.Size != 0 {
		return "", fmt.Errorf("%w: %d trailing bits %s at offset %d do not complete a codeword", ErrDecodeMismatch, acc.Size, acc, start)
	}
	return sb.String(), nil
}

// NumSymbols is the number of symbols in the code.
func (d Decoder) NumSymbols() int {
	return d.numSyms
}

// MinSize is the bit length of the shortest legal code.
func (d Decoder) MinSize() byte {
	return d.minSize
}

// MaxSize is the bit length of the longest legal code.
func (d Decoder) MaxSize() byte {
	return d.maxSize
}

// Dump writes a programmer-readable debugging dump of the Decoder's current
// state to the given writer.
func (d Decoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Decoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", d.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", d.maxSize)
	keys := make(byCode, 0, len(d.table))
	for hc := range d.table {
		keys = append(keys, hc)
	}
	keys.Sort()
	for _, hc := range keys {
		dd := d.table[hc]
		fmt.Fprintf(&buf, "\tDecode(%s) = {%d, %d, %d}\n", hc, dd.symbol, dd.minSize, dd.maxSize)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

type decoderData struct {
	symbol  Symbol
	minSize byte
	maxSize byte
}

// fillTable records hc → symbol, then walks up through every proper prefix
// of hc, recording for each one the range of codeword lengths reachable
// below it.
func fillTable(table map[Code]decoderData, symbol Symbol, hc Code) {
	dd := decoderData{symbol, hc.Size, hc.Size}
	table[hc] = dd

	for hc.Size != 0 {
		// For each hc "xxx...a", compute "xxx...A" where A = NOT a.

		bit := uint64(1) << (hc.Size - 1)
		hc.Bits ^= bit

		// Merge the dd's from "xxx...a" (dd) and "xxx...A" (ddSibling)
		// into ddNew (the new parent for dd and ddSibling).

		ddNew := decoderData{InvalidSymbol, dd.minSize, dd.maxSize}
		if ddSibling, found := table[hc]; found {
			if ddNew.minSize > ddSibling.minSize {
				ddNew.minSize = ddSibling.minSize
			}
			if ddNew.maxSize < ddSibling.maxSize {
				ddNew.maxSize = ddSibling.maxSize
			}
		}

		// Mutate hc from "xxx...A" to "xxx...".

		hc.Size--
		hc.Bits &^= bit

		// If table[hc] already equals ddNew, we can stop recursing.

		if ddOld, found := table[hc]; found && ddOld == ddNew {
			break
		}

		table[hc] = ddNew
		dd = ddNew
	}
}

// type bySize + type byCode {{{

type bySize []Entry

func (list bySize) Sort() {
	sort.Sort(list)
}

func (list bySize) Len() int {
	return len(list)
}

func (list bySize) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list bySize) Less(i, j int) bool {
	a, b := list[i], list[j]
	if a.Code.Size != b.Code.Size {
		return a.Code.Size < b.Code.Size
	}
	return a.Symbol < b.Symbol
}

var _ sort.Interface = bySize(nil)

type byCode []Code

func (list byCode) Sort() {
	sort.Sort(list)
}

func (list byCode) Len() int {
	return len(list)
}

func (list byCode) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byCode) Less(i, j int) bool {
	a, b := list[i], list[j]
	if a.Size != b.Size {
		return a.Size < b.Size
	}
	return a.Bitstring() < b.Bitstring()
}

var _ sort.Interface = byCode(nil)

// }}}
