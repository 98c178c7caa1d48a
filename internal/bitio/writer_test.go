package bitio

import (
	"bytes"
	"testing"
)

func TestWriteBitsLSBFirst(t *testing.T) {
	tests := []struct {
		name   string
		writes []struct {
			v uint32
			n uint
		}
		want []byte
	}{
		{
			// 0b1 then 0b01 then 0b01101 packs as 0b01101_01_1 = 0x6B.
			name: "single byte from three writes",
			writes: []struct {
				v uint32
				n uint
			}{{1, 1}, {1, 2}, {0b01101, 5}},
			want: []byte{0x6B},
		},
		{
			name: "exact byte",
			writes: []struct {
				v uint32
				n uint
			}{{0xA5, 8}},
			want: []byte{0xA5},
		},
		{
			name: "spill across bytes",
			writes: []struct {
				v uint32
				n uint
			}{{0xFFF, 12}, {0x0, 4}},
			want: []byte{0xFF, 0x0F},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w Writer
			for _, wr := range tt.writes {
				w.WriteBits(wr.v, wr.n)
			}
			w.FlushBits()
			if !bytes.Equal(w.Bytes(), tt.want) {
				t.Errorf("Bytes() = %x, want %x", w.Bytes(), tt.want)
			}
		})
	}
}

func TestFlushBitsPadsWithZeros(t *testing.T) {
	var w Writer
	w.WriteBits(0b101, 3)
	w.FlushBits()
	if got := w.Bytes(); len(got) != 1 || got[0] != 0b101 {
		t.Fatalf("Bytes() = %x, want [05]", got)
	}
	// Flushing again must not emit another byte.
	w.FlushBits()
	if w.Len() != 1 {
		t.Fatalf("Len() after double flush = %d, want 1", w.Len())
	}
}

func TestByteAlignedWritesFlushPendingBits(t *testing.T) {
	var w Writer
	w.WriteBits(1, 1)
	w.WriteByte(0xAB)
	if got := w.Bytes(); !bytes.Equal(got, []byte{0x01, 0xAB}) {
		t.Fatalf("Bytes() = %x, want 01ab", got)
	}

	w.Reset()
	w.WriteBits(1, 1)
	w.Write([]byte{0xDE, 0xAD})
	if got := w.Bytes(); !bytes.Equal(got, []byte{0x01, 0xDE, 0xAD}) {
		t.Fatalf("Bytes() = %x, want 01dead", got)
	}
}

func TestWriteUint32BE(t *testing.T) {
	var w Writer
	w.WriteUint32BE(0x0A0B0C0D)
	if got := w.Bytes(); !bytes.Equal(got, []byte{0x0A, 0x0B, 0x0C, 0x0D}) {
		t.Fatalf("Bytes() = %x, want 0a0b0c0d", got)
	}
}

func TestReset(t *testing.T) {
	var w Writer
	w.Write([]byte{1, 2, 3})
	w.WriteBits(1, 1)
	w.Reset()
	if w.Len() != 0 {
		t.Fatalf("Len() after Reset = %d, want 0", w.Len())
	}
	w.WriteBits(0, 7)
	w.FlushBits()
	if got := w.Bytes(); !bytes.Equal(got, []byte{0}) {
		t.Fatalf("Bytes() after Reset = %x, want 00", got)
	}
}

func TestReverse(t *testing.T) {
	tests := []struct {
		name string
		v    uint32
		n    uint
		want uint32
	}{
		{"3 bits", 0b110, 3, 0b011},
		{"8 bits", 0b10000001, 8, 0b10000001},
		{"8 bits asymmetric", 0b11010000, 8, 0b00001011},
		{"9 bits", 0b110010000, 9, 0b000010011},
		{"zero", 0, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reverse(tt.v, tt.n); got != tt.want {
				t.Errorf("Reverse(%b, %d) = %b, want %b", tt.v, tt.n, got, tt.want)
			}
		})
	}
}
