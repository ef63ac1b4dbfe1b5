package hamming

import (
	"bytes"
	"errors"
	"testing"
)

func TestStrip(t *testing.T) {
	bits := []byte{
		1, 0, 1, 1, 0, 1, 0,
		0, 1, 1, 0, 1, 1, 1,
		1, 1, 1,
	}
	expect := []byte{1, 0, 1, 1, 0, 1, 1, 0}

	actual := Strip(bits)
	if !bytes.Equal(expect, actual) {
		t.Errorf("wrong output:\n\texpect: %v\n\tactual: %v", expect, actual)
	}
}

func TestStrip_Length(t *testing.T) {
	for n := 0; n < 5*GroupSize; n++ {
		if actual := len(Strip(make([]byte, n))); actual != DataBits*(n/GroupSize) {
			t.Errorf("n=%d: expected %d bits, got %d", n, DataBits*(n/GroupSize), actual)
		}
	}
}

func TestStrip_InvertsEncode(t *testing.T) {
	data := []byte{1, 1, 0, 1, 0, 0, 1, 0, 1, 1, 1, 1}
	actual := Strip(Encode(data))
	if !bytes.Equal(data, actual) {
		t.Errorf("wrong output:\n\texpect: %v\n\tactual: %v", data, actual)
	}
}

func TestStripStrict(t *testing.T) {
	if _, err := StripStrict(make([]byte, 21)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := StripStrict(make([]byte, 20)); !errors.Is(err, ErrMalformedGroup) {
		t.Errorf("expected ErrMalformedGroup, got %v", err)
	}
}
