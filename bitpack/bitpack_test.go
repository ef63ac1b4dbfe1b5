package bitpack

import (
	"bytes"
	"testing"
)

func TestPack(t *testing.T) {
	type testRow struct {
		name   string
		bits   []byte
		expect []byte
	}

	testData := [...]testRow{
		{name: "empty", bits: nil, expect: []byte{}},
		{name: "0xAA", bits: []byte{1, 0, 1, 0, 1, 0, 1, 0}, expect: []byte{0xaa}},
		{name: "MSB-first", bits: []byte{1, 0, 0, 0, 0, 0, 0, 0}, expect: []byte{0x80}},
		{name: "two bytes", bits: []byte{0, 1, 0, 0, 1, 0, 0, 0, 0, 1, 1, 0, 1, 0, 0, 1}, expect: []byte("Hi")},
		{name: "partial dropped", bits: []byte{1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 1}, expect: []byte{0xff}},
		{name: "short only", bits: []byte{1, 1, 1, 1, 1, 1, 1}, expect: []byte{}},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			actual := Pack(row.bits)
			if !bytes.Equal(row.expect, actual) {
				t.Errorf("wrong output:\n\texpect: %#v\n\tactual: %#v", row.expect, actual)
			}
			if len(actual) != PackedLen(len(row.bits)) {
				t.Errorf("PackedLen(%d) = %d, but Pack produced %d bytes", len(row.bits), PackedLen(len(row.bits)), len(actual))
			}
		})
	}
}

func TestUnpack(t *testing.T) {
	expect := []byte{1, 0, 1, 0, 1, 0, 1, 1, 1, 1, 0, 0, 1, 1, 0, 1}
	actual := Unpack([]byte{0xab, 0xcd})
	if !bytes.Equal(expect, actual) {
		t.Errorf("wrong output:\n\texpect: %#v\n\tactual: %#v", expect, actual)
	}
}

func TestRoundTrip(t *testing.T) {
	for n := 0; n <= 64; n++ {
		bits := make([]byte, n)
		for i := range bits {
			bits[i] = byte((i*7 + n) % 3 % 2)
		}

		actual := Unpack(Pack(bits))
		truncated := n - n%BitsPerByte
		if len(actual) != truncated {
			t.Errorf("n=%d: expected %d bits after round trip, got %d", n, truncated, len(actual))
			continue
		}
		if !bytes.Equal(bits[:truncated], actual) {
			t.Errorf("n=%d: wrong output:\n\texpect: %v\n\tactual: %v", n, bits[:truncated], actual)
		}
	}
}

func TestBitstring(t *testing.T) {
	bits := []byte{0, 1, 1, 0, 1}
	s := Bitstring(bits)
	if s != "01101" {
		t.Errorf("expected %q, got %q", "01101", s)
	}

	parsed, err := ParseBitstring(s)
	if err != nil {
		t.Fatalf("ParseBitstring failed: %v", err)
	}
	if !bytes.Equal(bits, parsed) {
		t.Errorf("wrong output:\n\texpect: %v\n\tactual: %v", bits, parsed)
	}

	if _, err := ParseBitstring("01x1"); err == nil {
		t.Error("expected an error for non-bit character, got nil")
	}
}

func TestPack_NotABit(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for bit value 2")
		}
	}()
	Pack([]byte{0, 2, 0, 0, 0, 0, 0, 0})
}
