// Package archive stores a Huffman bitstring together with its code table in
// a single zstd-compressed blob.
//
// Layout before compression:
//
//     magic      4 bytes  "HUF1"
//     tableLen   uint32   big-endian length of the JSON table
//     table      JSON     huffman.Table
//     bitCount   uint64   big-endian number of valid bits
//     payload    bytes    bits packed MSB-first, zero-padded to a byte
//
package archive

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/chronos-tachyon/decrypter/bitpack"
	"github.com/chronos-tachyon/decrypter/huffman"
)

const magic = "HUF1"

// ErrBadMagic is returned when the decompressed data does not start with the
// archive magic.
var ErrBadMagic = errors.New("not a huffman archive")

// Marshal packs bitstring and table into an archive.
func Marshal(bitstring string, table huffman.Table) ([]byte, error) {
	bits, err := bitpack.ParseBitstring(bitstring)
	if err != nil {
		return nil, err
	}
	bitCount := uint64(len(bits))
	if rem := len(bits) % bitpack.BitsPerByte; rem != 0 {
		bits = append(bits, make([]byte, bitpack.BitsPerByte-rem)...)
	}

	tableJSON, err := json.Marshal(table)
	if err != nil {
		return nil, fmt.Errorf("encode table: %w", err)
	}

	var raw bytes.Buffer
	raw.WriteString(magic)
	_ = binary.Write(&raw, binary.BigEndian, uint32(len(tableJSON)))
	raw.Write(tableJSON)
	_ = binary.Write(&raw, binary.BigEndian, bitCount)
	raw.Write(bitpack.Pack(bits))

	return compressZstd(raw.Bytes()), nil
}

// Unmarshal is the inverse of Marshal.
func Unmarshal(data []byte) (string, huffman.Table, error) {
	raw, err := decompressZstd(data)
	if err != nil {
		return "", huffman.Table{}, fmt.Errorf("zstd decode: %w", err)
	}

	r := bytes.NewReader(raw)
	head := make([]byte, len(magic))
	if _, err := io.ReadFull(r, head); err != nil || string(head) != magic {
		return "", huffman.Table{}, ErrBadMagic
	}

	var tableLen uint32
	if err := binary.Read(r, binary.BigEndian, &tableLen); err != nil {
		return "", huffman.Table{}, fmt.Errorf("read table length: %w", err)
	}
	if uint64(tableLen) > uint64(r.Len()) {
		return "", huffman.Table{}, fmt.Errorf("table length %d exceeds remaining %d bytes", tableLen, r.Len())
	}
	tableJSON := make([]byte, tableLen)
	if _, err := io.ReadFull(r, tableJSON); err != nil {
		return "", huffman.Table{}, fmt.Errorf("read table: %w", err)
	}

	var table huffman.Table
	if err := json.Unmarshal(tableJSON, &table); err != nil {
		return "", huffman.Table{}, fmt.Errorf("decode table: %w", err)
	}

	var bitCount uint64
	if err := binary.Read(r, binary.BigEndian, &bitCount); err != nil {
		return "", huffman.Table{}, fmt.Errorf("read bit count: %w", err)
	}
	payload := raw[len(raw)-r.Len():]
	if have := uint64(len(payload)) * bitpack.BitsPerByte; bitCount > have {
		return "", huffman.Table{}, fmt.Errorf("bit count %d exceeds payload of %d bits", bitCount, have)
	}

	bits := bitpack.Unpack(payload)[:bitCount]
	return bitpack.Bitstring(bits), table, nil
}

// --- ZSTD helpers ---

func mustNewZstdEncoder() *zstd.Encoder {
	enc, err := zstd.NewWriter(
		nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
	)
	if err != nil {
		panic(err)
	}
	return enc
}

func mustNewZstdDecoder() *zstd.Decoder {
	dec, err := zstd.NewReader(
		nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
	)
	if err != nil {
		panic(err)
	}
	return dec
}

var zstdEncPool = sync.Pool{
	New: func() any {
		return mustNewZstdEncoder()
	},
}

var zstdDecPool = sync.Pool{
	New: func() any {
		return mustNewZstdDecoder()
	},
}

func compressZstd(data []byte) []byte {
	enc := zstdEncPool.Get().(*zstd.Encoder)
	out := enc.EncodeAll(data, nil)
	zstdEncPool.Put(enc)
	return out
}

func decompressZstd(data []byte) ([]byte, error) {
	dec := zstdDecPool.Get().(*zstd.Decoder)
	out, err := dec.DecodeAll(data, nil)
	zstdDecPool.Put(dec)
	return out, err
}
