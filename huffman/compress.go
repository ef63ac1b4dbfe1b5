package huffman

// Compress builds the Huffman code for text and encodes text with it.  It
// returns the encoded bitstring, made of '0' and '1' characters, together
// with the Table needed to decode it.
func Compress(text string) (string, Table, error) {
	freqs, err := CountFrequencies(text)
	if err != nil {
		return "", Table{}, err
	}

	var e Encoder
	e.Init(freqs)

	bitstring, err := e.EncodeString(text)
	if err != nil {
		return "", Table{}, err
	}
	return bitstring, e.Table(), nil
}

// Decompress decodes a bitstring produced by Compress using its Table.
func Decompress(bitstring string, t Table) (string, error) {
	var d Decoder
	if err := d.Init(t); err != nil {
		return "", err
	}
	return d.DecodeString(bitstring)
}
