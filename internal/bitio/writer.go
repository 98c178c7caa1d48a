// Package bitio provides a growable output buffer with LSB-first bit
// packing for github.com/openalgz/plotz.
//
// DEFLATE streams pack bits least-significant-bit first within each
// byte, while PNG chunk framing needs byte-aligned big-endian integers.
// Writer supports both against a single underlying buffer: bit writes
// accumulate until full bytes spill into the buffer, and byte-aligned
// writes flush any pending bits (zero-padded) before appending.
package bitio

// Writer accumulates bytes and LSB-first packed bits. The zero value is
// ready to use.
//
// Writer is not safe for concurrent use.
type Writer struct {
	buf      []byte
	bitBuf   uint32
	bitCount uint
}

// WriteBits appends the low n bits of v, least significant bit first.
// Pending bits spill into the buffer as soon as full bytes are
// available. n must be at most 24 so the accumulator cannot overflow
// with up to 7 bits already pending.
func (w *Writer) WriteBits(v uint32, n uint) {
	w.bitBuf |= v << w.bitCount
	w.bitCount += n
	for w.bitCount >= 8 {
		w.buf = append(w.buf, byte(w.bitBuf))
		w.bitBuf >>= 8
		w.bitCount -= 8
	}
}

// FlushBits writes any pending bits as a final byte, padding the unused
// high bits with zeros. A no-op when the writer is byte-aligned.
func (w *Writer) FlushBits() {
	if w.bitCount > 0 {
		w.buf = append(w.buf, byte(w.bitBuf))
		w.bitBuf = 0
		w.bitCount = 0
	}
}

// WriteByte appends a single byte, flushing pending bits first.
func (w *Writer) WriteByte(b byte) {
	w.FlushBits()
	w.buf = append(w.buf, b)
}

// Write appends p, flushing pending bits first.
func (w *Writer) Write(p []byte) {
	w.FlushBits()
	w.buf = append(w.buf, p...)
}

// WriteUint32BE appends v in big-endian byte order, flushing pending
// bits first.
func (w *Writer) WriteUint32BE(v uint32) {
	w.FlushBits()
	w.buf = append(w.buf,
		byte(v>>24),
		byte(v>>16),
		byte(v>>8),
		byte(v),
	)
}

// Bytes returns the accumulated buffer. Pending bits that have not been
// flushed are not included. The returned slice aliases the writer's
// storage and is valid until the next write.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len reports the number of complete bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Reset truncates the writer to empty, retaining the underlying storage
// for reuse.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
	w.bitBuf = 0
	w.bitCount = 0
}

// Reverse returns the low n bits of v in reversed order. Huffman codes
// are defined most-significant-bit first and must be reversed before
// LSB-first packing.
func Reverse(v uint32, n uint) uint32 {
	var r uint32
	for range n {
		r = r<<1 | v&1
		v >>= 1
	}
	return r
}
