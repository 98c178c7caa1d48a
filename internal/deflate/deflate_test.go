package deflate

import (
	"bytes"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
)

// inflate decompresses a raw DEFLATE stream through an independent
// implementation.
func inflate(t *testing.T, compressed []byte) []byte {
	t.Helper()
	r := flate.NewReader(bytes.NewReader(compressed))
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("inflate: %v", err)
	}
	return out
}

func TestCompressRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	random := make([]byte, 4096)
	rng.Read(random)

	allBytes := make([]byte, 256)
	for i := range allBytes {
		allBytes[i] = byte(i)
	}

	// Long-range repetition: the same 512-byte chunk at the start and
	// past the 32KB window midpoint exercises maximum distances.
	longRange := make([]byte, 40000)
	rng.Read(longRange)
	copy(longRange[36000:], longRange[:512])

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"single byte", []byte{42}},
		{"short literal run", []byte("Hello, PNG!")},
		{"repetitive", []byte(strings.Repeat("abcabc", 500))},
		{"long run", bytes.Repeat([]byte{7}, 3000)},
		{"all byte values", allBytes},
		{"random incompressible", random},
		{"long range matches", longRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inflate(t, Compress(tt.data))
			if !bytes.Equal(got, tt.data) {
				t.Errorf("round trip mismatch: got %d bytes, want %d", len(got), len(tt.data))
			}
		})
	}
}

func TestCompressEmptyBlock(t *testing.T) {
	// Header bits 011 plus the 7-bit end-of-block code pack into the
	// canonical two-byte empty fixed block.
	if got := Compress(nil); !bytes.Equal(got, []byte{0x03, 0x00}) {
		t.Fatalf("Compress(nil) = %x, want 0300", got)
	}
}

func TestCompressZlibRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	mixed := make([]byte, 10000)
	rng.Read(mixed)
	copy(mixed[5000:], bytes.Repeat([]byte("scanline"), 300))

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"text", []byte("filtered scanline stream")},
		{"mixed", mixed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zr, err := zlib.NewReader(bytes.NewReader(CompressZlib(tt.data)))
			if err != nil {
				t.Fatalf("zlib.NewReader: %v", err)
			}
			defer zr.Close()
			got, err := io.ReadAll(zr)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if !bytes.Equal(got, tt.data) {
				t.Errorf("round trip mismatch: got %d bytes, want %d", len(got), len(tt.data))
			}
		})
	}
}

func TestZlibHeader(t *testing.T) {
	out := CompressZlib([]byte("x"))
	if len(out) < 2 {
		t.Fatalf("stream too short: %x", out)
	}
	if out[0] != 0x78 {
		t.Errorf("CMF = %#02x, want 0x78", out[0])
	}
	if v := uint16(out[0])<<8 | uint16(out[1]); v%31 != 0 {
		t.Errorf("CMF|FLG = %#04x, not a multiple of 31", v)
	}
	if out[1]&0x20 != 0 {
		t.Errorf("FLG = %#02x, FDICT must be unset", out[1])
	}
}

func TestFindMatch(t *testing.T) {
	tests := []struct {
		name         string
		data         string
		pos          int
		wantDistance int
		wantLength   int
		wantOK       bool
	}{
		{"no match in distinct bytes", "abcdef", 3, 0, 0, false},
		{"two bytes is below minimum", "abXabY", 3, 0, 0, false},
		{"overlapping run", "aaaaaaa", 1, 1, 6, true},
		{"periodic overlap", "abcabcabc", 3, 3, 6, true},
		{"too close to end", "abcab", 3, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			distance, length, ok := findMatch([]byte(tt.data), tt.pos)
			if ok != tt.wantOK || distance != tt.wantDistance || length != tt.wantLength {
				t.Errorf("findMatch(%q, %d) = (%d, %d, %v), want (%d, %d, %v)",
					tt.data, tt.pos, distance, length, ok,
					tt.wantDistance, tt.wantLength, tt.wantOK)
			}
		})
	}
}

func TestFindMatchPrefersFarthestOnTies(t *testing.T) {
	// Both occurrences of "abc" match with length 3; the oldest-first
	// scan with strictly-greater replacement keeps the farther one.
	distance, length, ok := findMatch([]byte("abcZabcYabc"), 8)
	if !ok || length != 3 || distance != 8 {
		t.Fatalf("findMatch = (%d, %d, %v), want (8, 3, true)", distance, length, ok)
	}
}

func TestFindMatchCapsAtMaxMatch(t *testing.T) {
	data := bytes.Repeat([]byte{'a'}, 300)
	distance, length, ok := findMatch(data, 1)
	if !ok || distance != 1 || length != maxMatch {
		t.Fatalf("findMatch = (%d, %d, %v), want (1, %d, true)", distance, length, ok, maxMatch)
	}
}

func TestFixedCodeTables(t *testing.T) {
	tests := []struct {
		sym      int
		wantCode uint16
		wantBits uint8
	}{
		{0, 48, 8},
		{143, 191, 8},
		{144, 400, 9},
		{255, 511, 9},
		{256, 0, 7},
		{279, 23, 7},
		{280, 192, 8},
		{287, 199, 8},
	}
	for _, tt := range tests {
		c := fixedLitCodes[tt.sym]
		if c.code != tt.wantCode || c.bits != tt.wantBits {
			t.Errorf("fixedLitCodes[%d] = {%d, %d}, want {%d, %d}",
				tt.sym, c.code, c.bits, tt.wantCode, tt.wantBits)
		}
	}
	for i, c := range fixedDistCodes {
		if c.code != uint16(i) || c.bits != 5 {
			t.Errorf("fixedDistCodes[%d] = {%d, %d}, want {%d, 5}", i, c.code, c.bits, i)
		}
	}
}
