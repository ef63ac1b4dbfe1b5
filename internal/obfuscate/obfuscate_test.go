package obfuscate

import (
	"bytes"
	"errors"
	"testing"
)

func TestReveal(t *testing.T) {
	bits, err := Reveal([]byte("0110\n1 0\r\n"))
	if err != nil {
		t.Fatalf("Reveal failed: %v", err)
	}
	expect := []byte{0, 1, 1, 0, 1, 0}
	if !bytes.Equal(expect, bits) {
		t.Errorf("wrong output:\n\texpect: %v\n\tactual: %v", expect, bits)
	}
}

func TestReveal_NotBit(t *testing.T) {
	_, err := Reveal([]byte("01a"))
	if !errors.Is(err, ErrNotBit) {
		t.Errorf("expected ErrNotBit, got %v", err)
	}
}

func TestConceal(t *testing.T) {
	out := Conceal([]byte{1, 0, 0, 1})
	if string(out) != "1001" {
		t.Errorf("expected %q, got %q", "1001", out)
	}

	bits, err := Reveal(out)
	if err != nil || !bytes.Equal(bits, []byte{1, 0, 0, 1}) {
		t.Errorf("Reveal(Conceal(x)) = %v, %v", bits, err)
	}
}
