// Package deflate implements a from-scratch DEFLATE compressor for
// github.com/openalgz/plotz.
//
// The output is a single fixed-Huffman block (BFINAL=1, BTYPE=01) fed
// by a greedy LZ77 match search over a 32KB window, exactly the subset
// of RFC 1951 a PNG encoder needs. CompressZlib adds the RFC 1950
// envelope around the same stream. There is no dynamic Huffman coding
// and no block splitting; ratio is traded for self-containment.
package deflate

import (
	"github.com/openalgz/plotz/internal/bitio"
	"github.com/openalgz/plotz/internal/checksum"
)

const (
	// windowSize is the maximum LZ77 back-reference distance.
	windowSize = 32768

	minMatch = 3
	maxMatch = 258

	// endOfBlock terminates every DEFLATE block.
	endOfBlock = 256
)

// codeRange maps a match length or distance to its code's base value
// and extra-bit count, per the RFC 1951 fixed tables.
type codeRange struct {
	base  uint16
	extra uint8
}

// lengthTable rows correspond to length codes 257..285.
var lengthTable = [29]codeRange{
	{3, 0}, {4, 0}, {5, 0}, {6, 0}, {7, 0}, {8, 0}, {9, 0}, {10, 0},
	{11, 1}, {13, 1}, {15, 1}, {17, 1}, {19, 2}, {23, 2}, {27, 2}, {31, 2},
	{35, 3}, {43, 3}, {51, 3}, {59, 3}, {67, 4}, {83, 4}, {99, 4}, {115, 4},
	{131, 5}, {163, 5}, {195, 5}, {227, 5}, {258, 0},
}

// distanceTable rows correspond to distance codes 0..29.
var distanceTable = [30]codeRange{
	{1, 0}, {2, 0}, {3, 0}, {4, 0}, {5, 1}, {7, 1}, {9, 2}, {13, 2},
	{17, 3}, {25, 3}, {33, 4}, {49, 4}, {65, 5}, {97, 5}, {129, 6}, {193, 6},
	{257, 7}, {385, 7}, {513, 8}, {769, 8}, {1025, 9}, {1537, 9}, {2049, 10},
	{3073, 10}, {4097, 11}, {6145, 11}, {8193, 12}, {12289, 12}, {16385, 13}, {24577, 13},
}

// huffCode is a fixed Huffman code in its canonical MSB-first form.
// Codes are bit-reversed at emission time for LSB-first packing.
type huffCode struct {
	code uint16
	bits uint8
}

var (
	fixedLitCodes  [288]huffCode
	fixedDistCodes [30]huffCode
)

func init() {
	// RFC 1951 fixed literal/length code assignment:
	//   0-143   8 bits, codes 48-191
	//   144-255 9 bits, codes 400-511
	//   256-279 7 bits, codes 0-23
	//   280-287 8 bits, codes 192-199
	for i := 0; i <= 143; i++ {
		fixedLitCodes[i] = huffCode{uint16(i + 48), 8}
	}
	for i := 144; i <= 255; i++ {
		fixedLitCodes[i] = huffCode{uint16(i - 144 + 400), 9}
	}
	for i := 256; i <= 279; i++ {
		fixedLitCodes[i] = huffCode{uint16(i - 256), 7}
	}
	for i := 280; i <= 287; i++ {
		fixedLitCodes[i] = huffCode{uint16(i - 280 + 192), 8}
	}
	// All fixed distance codes are 5 bits, code value == distance code.
	for i := range fixedDistCodes {
		fixedDistCodes[i] = huffCode{uint16(i), 5}
	}
}

// findMatch searches backward through the window for the longest run of
// bytes at pos that also occurs earlier in data. The scan walks the
// window oldest-first and only a strictly longer match replaces the
// current best, so equal-length candidates resolve to the farthest
// occurrence. Matches may overlap pos (run encoding). Reports false
// when no match of at least minMatch bytes exists.
func findMatch(data []byte, pos int) (distance, length int, ok bool) {
	if pos+minMatch > len(data) {
		return 0, 0, false
	}

	windowStart := 0
	if pos > windowSize {
		windowStart = pos - windowSize
	}

	for i := windowStart; i < pos; i++ {
		if data[i] != data[pos] {
			continue
		}
		n := 0
		for pos+n < len(data) && data[i+n] == data[pos+n] && n < maxMatch {
			n++
		}
		if n >= minMatch && n > length {
			length = n
			distance = pos - i
			if n == maxMatch {
				break
			}
		}
	}
	return distance, length, length >= minMatch
}

// writeCode emits a canonical Huffman code LSB-first.
func writeCode(w *bitio.Writer, c huffCode) {
	w.WriteBits(bitio.Reverse(uint32(c.code), uint(c.bits)), uint(c.bits))
}

// writeMatch emits the length and distance codes for a back-reference,
// each followed by its extra bits (extra bits are packed as plain
// integers, not Huffman codes).
func writeMatch(w *bitio.Writer, length, distance int) {
	for i, r := range lengthTable {
		if length >= int(r.base) && length <= int(r.base)+(1<<r.extra)-1 {
			writeCode(w, fixedLitCodes[257+i])
			if r.extra > 0 {
				w.WriteBits(uint32(length-int(r.base)), uint(r.extra))
			}
			break
		}
	}
	for i, r := range distanceTable {
		if distance >= int(r.base) && distance <= int(r.base)+(1<<r.extra)-1 {
			writeCode(w, fixedDistCodes[i])
			if r.extra > 0 {
				w.WriteBits(uint32(distance-int(r.base)), uint(r.extra))
			}
			break
		}
	}
}

// compressTo writes data as one fixed-Huffman DEFLATE block into w and
// flushes the final partial byte.
func compressTo(w *bitio.Writer, data []byte) {
	// BFINAL=1, BTYPE=01, LSB-first.
	w.WriteBits(0b011, 3)

	pos := 0
	for pos < len(data) {
		if distance, length, ok := findMatch(data, pos); ok {
			writeMatch(w, length, distance)
			pos += length
		} else {
			writeCode(w, fixedLitCodes[data[pos]])
			pos++
		}
	}

	writeCode(w, fixedLitCodes[endOfBlock])
	w.FlushBits()
}

// Compress returns data as a raw DEFLATE stream consisting of a single
// fixed-Huffman final block.
func Compress(data []byte) []byte {
	var w bitio.Writer
	compressTo(&w, data)
	return w.Bytes()
}

// CompressZlib returns data wrapped in an RFC 1950 zlib stream:
// CMF/FLG header, the DEFLATE payload, and a big-endian Adler-32 of the
// uncompressed input.
func CompressZlib(data []byte) []byte {
	var w bitio.Writer

	// CMF: window size 32KB (7), method DEFLATE (8).
	cmf := byte(7<<4 | 8)
	// FLG: default compression level, no preset dictionary; FCHECK
	// makes the 16-bit CMF|FLG value a multiple of 31.
	flg := byte(2 << 6)
	fcheck := 31 - (uint16(cmf)<<8|uint16(flg))%31
	flg |= byte(fcheck)

	w.WriteByte(cmf)
	w.WriteByte(flg)
	compressTo(&w, data)
	w.WriteUint32BE(checksum.Adler32(data))

	return w.Bytes()
}
