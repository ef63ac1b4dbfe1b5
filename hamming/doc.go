// Package hamming implements the 7-bit parity block code used to protect
// message bits in transit.
//
// Each group holds four data bits (indices 0..3) followed by three check bits
// (indices 4..6):
//
//     p1 = c1 ^ c2 ^ c3
//     p2 = c1 ^ c2 ^ c4
//     p3 = c2 ^ c3 ^ c4
//
// The decoder compares the received check bits against the recomputed ones
// and uses a fixed four-row table to decide which data bit, if any, to flip.
// Every single data-bit error is repaired.  A disagreement in exactly one
// check bit is classified as "no error": the data bits are still intact, and
// the check bit is passed through as received.
//
// Streams whose length is not a multiple of 7 have their trailing partial
// group dropped by Correct and Strip.  CorrectStrict and StripStrict reject
// such streams with ErrMalformedGroup instead.
//
package hamming
