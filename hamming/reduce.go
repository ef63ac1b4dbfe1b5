package hamming

// Strip keeps the four data bits of every complete group and discards the
// check bits.  The result holds exactly DataBits*(len(bits)/GroupSize) bits.
func Strip(bits []byte) []byte {
	numGroups := len(bits) / GroupSize
	out := make([]byte, 0, numGroups*DataBits)
	for g := 0; g < numGroups; g++ {
		base := g * GroupSize
		out = append(out, bits[base:base+DataBits]...)
	}
	return out
}

// StripStrict is like Strip, but returns ErrMalformedGroup if bits does not
// hold a whole number of groups.
func StripStrict(bits []byte) ([]byte, error) {
	if err := checkLength(len(bits)); err != nil {
		return nil, err
	}
	return Strip(bits), nil
}
