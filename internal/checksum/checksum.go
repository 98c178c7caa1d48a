// Package checksum implements the two checksums required by PNG
// output: CRC-32 for chunk framing and Adler-32 for the zlib envelope.
//
// Both are computed from first principles so the encoder stays free of
// external compression and hashing packages.
package checksum

// crcTable holds the byte-indexed remainders for the reflected CRC-32
// polynomial 0xEDB88320 used by PNG.
var crcTable [256]uint32

func init() {
	for i := range uint32(256) {
		c := i
		for range 8 {
			if c&1 != 0 {
				c = 0xEDB88320 ^ (c >> 1)
			} else {
				c >>= 1
			}
		}
		crcTable[i] = c
	}
}

// CRC32 returns the CRC-32 of data with the standard 0xFFFFFFFF
// pre- and post-conditioning.
func CRC32(data []byte) uint32 {
	return CRC32Update(0xFFFFFFFF, data) ^ 0xFFFFFFFF
}

// CRC32Update folds data into a running CRC. Seed with 0xFFFFFFFF and
// XOR the result with 0xFFFFFFFF after the final update. This allows a
// chunk's CRC to cover its type bytes and data without concatenating
// them first.
func CRC32Update(crc uint32, data []byte) uint32 {
	for _, b := range data {
		crc = crcTable[byte(crc)^b] ^ (crc >> 8)
	}
	return crc
}

// adlerMod is the largest prime below 2^16, per the zlib spec.
const adlerMod = 65521

// Adler32 returns the Adler-32 checksum of data: two running 16-bit
// sums combined as (b<<16)|a.
func Adler32(data []byte) uint32 {
	a, b := uint32(1), uint32(0)
	for _, d := range data {
		a = (a + uint32(d)) % adlerMod
		b = (b + a) % adlerMod
	}
	return b<<16 | a
}
