package huffman

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"
)

// ErrInvalidTable is returned when a code table cannot be used for decoding.
var ErrInvalidTable = errors.New("invalid code table")

// Entry pairs a Symbol with its codeword.
type Entry struct {
	Symbol Symbol
	Code   Code
}

// Table is the symbol-to-codeword mapping produced by Compress and consumed
// by Decompress.  The entries are kept sorted by Symbol.
type Table struct {
	entries []Entry
}

// NewTable builds a Table from a symbol-to-codeword map and checks that it
// describes a usable prefix-free code.
func NewTable(codes map[Symbol]Code) (Table, error) {
	entries := make([]Entry, 0, len(codes))
	for symbol, hc := range codes {
		entries = append(entries, Entry{Symbol: symbol, Code: hc})
	}
	t := makeTable(entries)

	var d Decoder
	if err := d.Init(t); err != nil {
		return Table{}, err
	}
	return t, nil
}

func makeTable(entries []Entry) Table {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Symbol < entries[j].Symbol
	})
	return Table{entries: entries}
}

// Len returns the number of symbols in this Table.
func (t Table) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the entries, sorted by Symbol.
func (t Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Lookup returns the codeword for a Symbol.
func (t Table) Lookup(symbol Symbol) (Code, bool) {
	i := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].Symbol >= symbol
	})
	if i < len(t.entries) && t.entries[i].Symbol == symbol {
		return t.entries[i].Code, true
	}
	return Code{}, false
}

// Pairs returns the Table as symbol → bitstring pairs.
func (t Table) Pairs() map[string]string {
	out := make(map[string]string, len(t.entries))
	for _, entry := range t.entries {
		out[string(rune(entry.Symbol))] = entry.Code.Bitstring()
	}
	return out
}

type jsonEntry struct {
	Symbol string `json:"symbol"`
	Code   string `json:"code"`
}

// MarshalJSON encodes this Table as a list of {"symbol", "code"} objects.
func (t Table) MarshalJSON() ([]byte, error) {
	list := make([]jsonEntry, len(t.entries))
	for i, entry := range t.entries {
		list[i] = jsonEntry{
			Symbol: string(rune(entry.Symbol)),
			Code:   entry.Code.Bitstring(),
		}
	}
	return json.Marshal(list)
}

// UnmarshalJSON decodes a Table written by MarshalJSON.  The result must be
// a prefix-free code.
func (t *Table) UnmarshalJSON(raw []byte) error {
	var list []jsonEntry
	if err := json.Unmarshal(raw, &list); err != nil {
		return err
	}

	codes := make(map[Symbol]Code, len(list))
	for index, item := range list {
		ch, size := utf8.DecodeRuneInString(item.Symbol)
		if size == 0 || size != len(item.Symbol) || (ch == utf8.RuneError && size == 1) {
			return fmt.Errorf("%w: entry %d: symbol %q is not a single rune", ErrInvalidTable, index, item.Symbol)
		}
		hc, err := ParseCode(item.Code)
		if err != nil {
			return fmt.Errorf("%w: entry %d: %v", ErrInvalidTable, index, err)
		}
		if _, dup := codes[Symbol(ch)]; dup {
			return fmt.Errorf("%w: entry %d: duplicate symbol %q", ErrInvalidTable, index, ch)
		}
		codes[Symbol(ch)] = hc
	}

	parsed, err := NewTable(codes)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

var _ json.Marshaler = Table{}
var _ json.Unmarshaler = (*Table)(nil)
