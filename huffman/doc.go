// Package huffman builds Huffman codes over the runes of a text and uses them
// to compress the text into a string of '0' and '1' characters.
//
// The code table is the only side channel between compressor and
// decompressor: Compress returns it next to the bitstring, and Decompress
// needs the same Table to recover the text.  A Table round-trips through JSON
// as a list of (symbol, codeword) pairs.
//
// Tree construction is deterministic.  Leaves enter the min-heap in ascending
// symbol order, internal nodes follow in creation order, and ties on
// frequency are broken by that insertion order.  The first node popped
// becomes the left child ("0"), the second the right child ("1").  A text
// with a single distinct symbol gets the 1-bit codeword "0".
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffman
