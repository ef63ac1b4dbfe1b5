package pipeline

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/chronos-tachyon/decrypter/archive"
	"github.com/chronos-tachyon/decrypter/hamming"
	"github.com/chronos-tachyon/decrypter/huffman"
)

const testMessage = "Hello, World! Ceci est un message secret."

type fakeFS struct {
	files   map[string][]byte
	written map[string][]byte
	failW   bool
}

func newFakeFS() *fakeFS {
	return &fakeFS{files: make(map[string][]byte), written: make(map[string][]byte)}
}

func (fs *fakeFS) ReadFile(path string) ([]byte, error) {
	data, found := fs.files[path]
	if !found {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return data, nil
}

func (fs *fakeFS) WriteFile(path string, data []byte) error {
	if fs.failW {
		return &os.PathError{Op: "write", Path: path, Err: os.ErrPermission}
	}
	fs.written[path] = data
	return nil
}

func newTestRunner(fs *fakeFS, opts Options) *Runner {
	if opts.Input == "" {
		opts.Input = "code.txt"
	}
	if opts.Key == "" {
		opts.Key = "python"
	}
	opts.Rand = rand.New(rand.NewSource(1))
	opts.ReadFile = fs.ReadFile
	opts.WriteFile = fs.WriteFile
	return New(opts)
}

func statuses(report *Report) map[string]Status {
	out := make(map[string]Status, len(report.Stages))
	for _, result := range report.Stages {
		out[result.Name] = result.Status
	}
	return out
}

func TestRun_HappyPath(t *testing.T) {
	code, err := EncodeMessage(testMessage, "python")
	require.NoError(t, err)

	fs := newFakeFS()
	fs.files["code.txt"] = code

	core, logs := observer.New(zap.DebugLevel)
	report := newTestRunner(fs, Options{Logger: zap.New(core)}).Run(context.Background())

	require.True(t, report.OK(), "errors: %v", report.Errors())
	require.Len(t, report.Stages, 8)

	s := report.State
	assert.Empty(t, s.Positions)
	assert.Equal(t, testMessage, s.Plain)
	assert.Equal(t, len(testMessage)*8, len(s.Reduced))
	assert.Len(t, s.CipherKey, len([]rune(testMessage)))
	assert.NotEqual(t, testMessage, s.Cipher)
	assert.Equal(t, s.Cipher, s.Restored)
	assert.NotEmpty(t, report.RunID)

	assert.Equal(t, 8, logs.FilterMessage("Stage finished").Len())
	for _, entry := range logs.All() {
		assert.Equal(t, report.RunID, entry.ContextMap()["run_id"])
	}
}

func TestRun_CorrectsFlippedBits(t *testing.T) {
	code, err := EncodeMessage(testMessage, "python")
	require.NoError(t, err)

	flips := []int{0, 3*hamming.GroupSize + 1, 10*hamming.GroupSize + 3}
	for _, pos := range flips {
		code[pos] ^= 1
	}

	for _, workers := range []int{1, 4} {
		fs := newFakeFS()
		fs.files["code.txt"] = code

		report := newTestRunner(fs, Options{Workers: workers}).Run(context.Background())
		require.True(t, report.OK(), "errors: %v", report.Errors())
		assert.Equal(t, flips, report.State.Positions)
		assert.Equal(t, testMessage, report.State.Plain)

		result, found := report.Stage("correct")
		require.True(t, found)
		assert.Contains(t, result.Summary, "3 bits corrected")
	}
}

func TestRun_MissingInput(t *testing.T) {
	report := newTestRunner(newFakeFS(), Options{}).Run(context.Background())

	result, found := report.Stage("read")
	require.True(t, found)
	assert.Equal(t, StatusFailed, result.Status)
	assert.True(t, errors.Is(result.Err, ErrInputAccess))

	for _, name := range []string{"correct", "reduce", "assemble", "decipher", "encipher", "compress", "decompress"} {
		assert.Equal(t, StatusSkipped, statuses(report)[name], name)
	}
	require.Len(t, report.Errors(), 1)
	assert.Contains(t, report.Errors()[0], "error while reading the code file")
}

func TestRun_NotBits(t *testing.T) {
	fs := newFakeFS()
	fs.files["code.txt"] = []byte("0101xyz")

	report := newTestRunner(fs, Options{}).Run(context.Background())
	assert.Equal(t, StatusFailed, statuses(report)["read"])
	assert.True(t, report.State.Has(ArtRaw))
	assert.False(t, report.State.Has(ArtBits))
	assert.Equal(t, StatusSkipped, statuses(report)["correct"])
}

func TestRun_StrictRejectsPartialGroup(t *testing.T) {
	code, err := EncodeMessage("abc", "python")
	require.NoError(t, err)

	fs := newFakeFS()
	fs.files["code.txt"] = append(code, '1', '0')

	report := newTestRunner(fs, Options{Strict: true}).Run(context.Background())
	result, _ := report.Stage("correct")
	assert.Equal(t, StatusFailed, result.Status)
	assert.True(t, errors.Is(result.Err, hamming.ErrMalformedGroup))
	assert.Equal(t, StatusSkipped, statuses(report)["reduce"])

	// The default policy drops the remainder instead.
	report = newTestRunner(fs, Options{}).Run(context.Background())
	require.True(t, report.OK(), "errors: %v", report.Errors())
	assert.Equal(t, "abc", report.State.Plain)
}

func TestRun_Archive(t *testing.T) {
	code, err := EncodeMessage(testMessage, "python")
	require.NoError(t, err)

	fs := newFakeFS()
	fs.files["code.txt"] = code

	report := newTestRunner(fs, Options{Archive: "out.huf"}).Run(context.Background())
	require.True(t, report.OK(), "errors: %v", report.Errors())

	data, found := fs.written["out.huf"]
	require.True(t, found)
	bitstring, table, err := archive.Unmarshal(data)
	require.NoError(t, err)
	text, err := huffman.Decompress(bitstring, table)
	require.NoError(t, err)
	assert.Equal(t, report.State.Cipher, text)
}

func TestRun_ArchiveWriteFailureDoesNotBlockDecompress(t *testing.T) {
	code, err := EncodeMessage(testMessage, "python")
	require.NoError(t, err)

	fs := newFakeFS()
	fs.files["code.txt"] = code
	fs.failW = true

	report := newTestRunner(fs, Options{Archive: "out.huf"}).Run(context.Background())
	assert.Equal(t, StatusFailed, statuses(report)["compress"])
	assert.Equal(t, StatusOK, statuses(report)["decompress"])
	assert.Equal(t, report.State.Cipher, report.State.Restored)
	require.Len(t, report.Errors(), 1)
	assert.Contains(t, report.Errors()[0], "write archive")
}

func TestRun_EmptyInput(t *testing.T) {
	fs := newFakeFS()
	fs.files["code.txt"] = []byte("\n")

	report := newTestRunner(fs, Options{}).Run(context.Background())
	st := statuses(report)
	for _, name := range []string{"read", "correct", "reduce", "assemble", "decipher", "encipher"} {
		assert.Equal(t, StatusOK, st[name], name)
	}
	result, _ := report.Stage("compress")
	assert.Equal(t, StatusFailed, result.Status)
	assert.True(t, errors.Is(result.Err, huffman.ErrEmptyInput))
	assert.Equal(t, StatusSkipped, st["decompress"])
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := newTestRunner(newFakeFS(), Options{}).Run(ctx)
	for _, result := range report.Stages {
		assert.Equal(t, StatusSkipped, result.Status, result.Name)
	}
	assert.Empty(t, report.Errors())
	assert.False(t, report.OK())
}

func TestRun_PanicBecomesFailure(t *testing.T) {
	report := &Report{State: newState()}
	st := Stage{
		Name: "boom",
		Run: func(ctx context.Context, s *State) (string, error) {
			panic("kaboom")
		},
	}
	_, err := runStage(context.Background(), st, report.State)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")
}

func TestReport_WriteTo(t *testing.T) {
	report := newTestRunner(newFakeFS(), Options{}).Run(context.Background())

	var buf strings.Builder
	_, err := report.WriteTo(&buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Stage 1: read [failed]")
	assert.Contains(t, out, "Stage 8: decompress [skipped]")
	assert.Contains(t, out, "\nErrors:\n")
}

func TestEncodeMessage_RejectsWideRunes(t *testing.T) {
	_, err := EncodeMessage("snow ☃", "python")
	assert.Error(t, err)
}
