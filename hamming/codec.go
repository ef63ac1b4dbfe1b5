package hamming

import (
	"errors"
	"fmt"

	"github.com/chronos-tachyon/assert"
)

const (
	// GroupSize is the number of bits in one code group.
	GroupSize = 7

	// DataBits is the number of payload bits at the start of each group.
	DataBits = 4

	// CheckBits is the number of parity bits at the end of each group.
	CheckBits = GroupSize - DataBits
)

// ErrMalformedGroup is returned by the strict functions when the input ends
// with an incomplete group.
var ErrMalformedGroup = errors.New("incomplete bit group")

// Syndrome classifies a received group.  Zero means "no correction"; values
// 1 through 4 name the 1-based data bit that must be flipped.
type Syndrome byte

// NoError is the Syndrome of a group that is left untouched.
const NoError = Syndrome(0)

// Offset returns the 0-based index within the group of the bit this Syndrome
// flips, or -1 for NoError.
func (s Syndrome) Offset() int {
	if s == NoError {
		return -1
	}
	return int(s) - 1
}

// String returns a human-readable form of this Syndrome.
func (s Syndrome) String() string {
	if s == NoError {
		return "none"
	}
	return fmt.Sprintf("c%d", byte(s))
}

var _ fmt.Stringer = Syndrome(0)

// mismatch is indexed by (c5 != p1)<<2 | (c6 != p2)<<1 | (c7 != p3).
var mismatch = [8]Syndrome{
	0b110: 1,
	0b111: 2,
	0b101: 3,
	0b011: 4,
}

// Check computes the Syndrome of a single group.
func Check(group [GroupSize]byte) Syndrome {
	for index, bit := range group {
		assert.Assertf(bit <= 1, "group[%d] = %d is not a bit", index, bit)
	}

	c1, c2, c3, c4 := group[0], group[1], group[2], group[3]
	p1 := c1 ^ c2 ^ c3
	p2 := c1 ^ c2 ^ c4
	p3 := c2 ^ c3 ^ c4

	key := (group[4]^p1)<<2 | (group[5]^p2)<<1 | (group[6] ^ p3)
	return mismatch[key]
}

// CorrectGroup returns the group with the bit named by its Syndrome flipped,
// along with that Syndrome.
func CorrectGroup(group [GroupSize]byte) ([GroupSize]byte, Syndrome) {
	s := Check(group)
	if s != NoError {
		group[s.Offset()] ^= 1
	}
	return group, s
}

// Correct repairs every complete group in bits.  It returns the corrected
// stream and the absolute 0-based offsets of the bits it flipped, in
// ascending order.  A trailing partial group is dropped.
func Correct(bits []byte) (corrected []byte, positions []int) {
	numGroups := len(bits) / GroupSize
	corrected = make([]byte, numGroups*GroupSize)
	positions = correctRange(corrected, bits, 0, numGroups, nil)
	return corrected, positions
}

// CorrectStrict is like Correct, but returns ErrMalformedGroup if bits does
// not hold a whole number of groups.
func CorrectStrict(bits []byte) ([]byte, []int, error) {
	if err := checkLength(len(bits)); err != nil {
		return nil, nil, err
	}
	corrected, positions := Correct(bits)
	return corrected, positions, nil
}

// correctRange corrects groups [first, last) of src into dst, appending the
// flipped offsets to positions.
func correctRange(dst []byte, src []byte, first int, last int, positions []int) []int {
	var group [GroupSize]byte
	for g := first; g < last; g++ {
		base := g * GroupSize
		copy(group[:], src[base:base+GroupSize])

		fixed, s := CorrectGroup(group)
		copy(dst[base:base+GroupSize], fixed[:])
		if s != NoError {
			positions = append(positions, base+s.Offset())
		}
	}
	return positions
}

// EncodeGroup appends the three check bits to four data bits.
func EncodeGroup(data [DataBits]byte) [GroupSize]byte {
	for index, bit := range data {
		assert.Assertf(bit <= 1, "data[%d] = %d is not a bit", index, bit)
	}

	c1, c2, c3, c4 := data[0], data[1], data[2], data[3]
	return [GroupSize]byte{
		c1, c2, c3, c4,
		c1 ^ c2 ^ c3,
		c1 ^ c2 ^ c4,
		c2 ^ c3 ^ c4,
	}
}

// Encode protects every complete 4-bit nibble of bits with EncodeGroup.  A
// trailing partial nibble is dropped.
func Encode(bits []byte) []byte {
	numGroups := len(bits) / DataBits
	out := make([]byte, 0, numGroups*GroupSize)

	var data [DataBits]byte
	for g := 0; g < numGroups; g++ {
		copy(data[:], bits[g*DataBits:])
		group := EncodeGroup(data)
		out = append(out, group[:]...)
	}
	return out
}

func checkLength(n int) error {
	if rem := n % GroupSize; rem != 0 {
		return fmt.Errorf("%w: %d bits leave %d after the last full group of %d", ErrMalformedGroup, n, rem, GroupSize)
	}
	return nil
}
