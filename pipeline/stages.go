package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chronos-tachyon/decrypter/archive"
	"github.com/chronos-tachyon/decrypter/bitpack"
	"github.com/chronos-tachyon/decrypter/hamming"
	"github.com/chronos-tachyon/decrypter/huffman"
	"github.com/chronos-tachyon/decrypter/internal/obfuscate"
	"github.com/chronos-tachyon/decrypter/internal/vigenere"
)

// ErrInputAccess is returned when the code file cannot be read.
var ErrInputAccess = errors.New("input not accessible")

// ErrRoundTrip is returned when decompression does not reproduce the
// compressor's input.
var ErrRoundTrip = errors.New("decompressed text differs from compressed text")

// Stage is one step of the pipeline.
type Stage struct {
	// Name is a short identifier, e.g. "correct".
	Name string

	// Description is used in error messages, e.g. "error correction".
	Description string

	// Needs lists the artifacts that must exist for the stage to run.
	Needs []Artifact

	// Run performs the stage and returns a one-line summary of its output.
	Run func(ctx context.Context, s *State) (string, error)
}

// stages returns the pipeline in execution order.
func (r *Runner) stages() []Stage {
	return []Stage{
		{Name: "read", Description: "reading the code file", Run: r.read},
		{Name: "correct", Description: "error correction", Needs: []Artifact{ArtBits}, Run: r.correct},
		{Name: "reduce", Description: "removing check bits", Needs: []Artifact{ArtCorrected}, Run: r.reduce},
		{Name: "assemble", Description: "assembling bytes", Needs: []Artifact{ArtReduced}, Run: r.assemble},
		{Name: "decipher", Description: "deciphering", Needs: []Artifact{ArtText}, Run: r.decipher},
		{Name: "encipher", Description: "re-enciphering with a random key", Needs: []Artifact{ArtPlain}, Run: r.encipher},
		{Name: "compress", Description: "compressing", Needs: []Artifact{ArtCipher}, Run: r.compress},
		{Name: "decompress", Description: "decompressing", Needs: []Artifact{ArtCompressed, ArtCipher}, Run: r.decompress},
	}
}

func (r *Runner) read(ctx context.Context, s *State) (string, error) {
	raw, err := r.opts.ReadFile(r.opts.Input)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInputAccess, err)
	}
	s.Raw = raw
	s.put(ArtRaw)

	bits, err := obfuscate.Reveal(raw)
	if err != nil {
		return "", err
	}
	s.Bits = bits
	s.put(ArtBits)
	return r.printer.Sprintf("%d bits read from %s", len(bits), r.opts.Input), nil
}

func (r *Runner) correct(ctx context.Context, s *State) (string, error) {
	var corrected []byte
	var positions []int
	var err error
	switch {
	case r.opts.Strict:
		corrected, positions, err = hamming.CorrectStrict(s.Bits)
	case r.opts.Workers > 1:
		corrected, positions, err = hamming.CorrectParallel(ctx, s.Bits, r.opts.Workers)
	default:
		corrected, positions = hamming.Correct(s.Bits)
	}
	if err != nil {
		return "", err
	}
	s.Corrected = corrected
	s.Positions = positions
	s.put(ArtCorrected)

	if len(positions) == 0 {
		return r.printer.Sprintf("%d groups, no errors detected", len(corrected)/hamming.GroupSize), nil
	}
	summary := r.printer.Sprintf("%d groups, %d bits corrected", len(corrected)/hamming.GroupSize, len(positions))
	return summary + fmt.Sprint(" at ", positions), nil
}

func (r *Runner) reduce(ctx context.Context, s *State) (string, error) {
	var reduced []byte
	if r.opts.Strict {
		var err error
		if reduced, err = hamming.StripStrict(s.Corrected); err != nil {
			return "", err
		}
	} else {
		reduced = hamming.Strip(s.Corrected)
	}
	s.Reduced = reduced
	s.put(ArtReduced)
	return r.printer.Sprintf("%d data bits", len(reduced)), nil
}

func (r *Runner) assemble(ctx context.Context, s *State) (string, error) {
	packed := bitpack.Pack(s.Reduced)

	// Each byte becomes the code point of the same value, so bytes above
	// 0x7f survive as Latin-1 characters instead of invalid UTF-8.
	var sb strings.Builder
	for _, b := range packed {
		sb.WriteRune(rune(b))
	}
	s.Text = sb.String()
	s.put(ArtText)
	return fmt.Sprintf("%q", s.Text), nil
}

func (r *Runner) decipher(ctx context.Context, s *State) (string, error) {
	plain, err := vigenere.Decrypt(s.Text, r.opts.Key)
	if err != nil {
		return "", err
	}
	s.Plain = plain
	s.put(ArtPlain)
	return fmt.Sprintf("%q", plain), nil
}

func (r *Runner) encipher(ctx context.Context, s *State) (string, error) {
	key := vigenere.RandomKey(len([]rune(s.Plain)), r.opts.Rand)
	if key == "" {
		// An empty message still needs a valid key.
		key = vigenere.RandomKey(1, r.opts.Rand)
	}
	cipher, err := vigenere.Encrypt(s.Plain, key)
	if err != nil {
		return "", err
	}
	s.Cipher = cipher
	s.CipherKey = key
	s.put(ArtCipher)
	return fmt.Sprintf("%q with key %q", cipher, key), nil
}

func (r *Runner) compress(ctx context.Context, s *State) (string, error) {
	bitstring, table, err := huffman.Compress(s.Cipher)
	if err != nil {
		return "", err
	}
	s.Bitstring = bitstring
	s.Table = table
	s.put(ArtCompressed)

	summary := r.printer.Sprintf("%d bits, %d symbols", len(bitstring), table.Len())
	if r.opts.Archive == "" {
		return summary, nil
	}

	data, err := archive.Marshal(bitstring, table)
	if err != nil {
		return summary, err
	}
	if err := r.opts.WriteFile(r.opts.Archive, data); err != nil {
		return summary, fmt.Errorf("write archive: %w", err)
	}
	return summary + r.printer.Sprintf(", archive %s (%d bytes)", r.opts.Archive, len(data)), nil
}

func (r *Runner) decompress(ctx context.Context, s *State) (string, error) {
	restored, err := huffman.Decompress(s.Bitstring, s.Table)
	if err != nil {
		return "", err
	}
	s.Restored = restored
	s.put(ArtRestored)
	if restored != s.Cipher {
		return "", ErrRoundTrip
	}
	return fmt.Sprintf("%q", restored), nil
}
