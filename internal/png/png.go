// Package png encodes raw pixel buffers into the PNG file format for
// github.com/openalgz/plotz.
//
// The encoder is self-contained: chunk framing, adaptive per-row
// filtering, DEFLATE compression, and checksums all come from this
// module rather than the standard library's image stack. Output is
// always non-interlaced 8-bit RGB or RGBA, which is everything the
// plot renderers produce.
package png

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/openalgz/plotz/internal/bitio"
	"github.com/openalgz/plotz/internal/checksum"
	"github.com/openalgz/plotz/internal/deflate"
)

// Encoding errors.
var (
	// ErrFormat is returned for pixel formats other than RGB and RGBA.
	ErrFormat = errors.New("png: unsupported pixel format")

	// ErrDimensions is returned when width or height is non-positive.
	ErrDimensions = errors.New("png: invalid dimensions")

	// ErrPixLength is returned when the pixel slice does not match
	// width*height*bytes-per-pixel.
	ErrPixLength = errors.New("png: pixel data length mismatch")
)

// signature is the fixed 8-byte PNG file header.
var signature = [8]byte{137, 80, 78, 71, 13, 10, 26, 10}

// Format selects the pixel layout of an Image.
type Format int

const (
	// FormatRGB is 3 bytes per pixel, PNG color type 2.
	FormatRGB Format = iota
	// FormatRGBA is 4 bytes per pixel, PNG color type 6.
	FormatRGBA
)

// BytesPerPixel returns the pixel stride for the format, or 0 if the
// format is unknown.
func (f Format) BytesPerPixel() int {
	switch f {
	case FormatRGB:
		return 3
	case FormatRGBA:
		return 4
	default:
		return 0
	}
}

// colorType returns the PNG color type byte for the format.
func (f Format) colorType() byte {
	if f == FormatRGB {
		return 2
	}
	return 6
}

// Image describes one frame of raw pixels to encode. Pix is row-major,
// Width*Height*BytesPerPixel bytes, top row first.
type Image struct {
	Width  int
	Height int
	Format Format
	Pix    []uint8
}

func (img *Image) validate() error {
	bpp := img.Format.BytesPerPixel()
	if bpp == 0 {
		return ErrFormat
	}
	if img.Width <= 0 || img.Height <= 0 {
		return ErrDimensions
	}
	if len(img.Pix) != img.Width*img.Height*bpp {
		return fmt.Errorf("%w: have %d bytes, want %d",
			ErrPixLength, len(img.Pix), img.Width*img.Height*bpp)
	}
	return nil
}

// Row filter types, in selection order.
const (
	filterNone = iota
	filterSub
	filterUp
	filterAverage
	filterPaeth
	numFilters
)

// paeth returns the Paeth predictor of the left, above, and above-left
// bytes, breaking ties in that order.
func paeth(a, b, c uint8) uint8 {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// applyFilter writes the filtered form of row into dst. prev is the
// previous raw row, or nil on the first row (treated as all zeros).
func applyFilter(filter int, dst, row, prev []byte, bpp int) {
	switch filter {
	case filterNone:
		copy(dst, row)
	case filterSub:
		for i := range row {
			var a byte
			if i >= bpp {
				a = row[i-bpp]
			}
			dst[i] = row[i] - a
		}
	case filterUp:
		for i := range row {
			var b byte
			if prev != nil {
				b = prev[i]
			}
			dst[i] = row[i] - b
		}
	case filterAverage:
		for i := range row {
			var a, b byte
			if i >= bpp {
				a = row[i-bpp]
			}
			if prev != nil {
				b = prev[i]
			}
			dst[i] = row[i] - byte((int(a)+int(b))/2)
		}
	case filterPaeth:
		for i := range row {
			var a, b, c byte
			if i >= bpp {
				a = row[i-bpp]
			}
			if prev != nil {
				b = prev[i]
				if i >= bpp {
					c = prev[i-bpp]
				}
			}
			dst[i] = row[i] - paeth(a, b, c)
		}
	}
}

// sumAbs scores a filtered row by the sum of its bytes interpreted as
// signed values. Lower means more compressible.
func sumAbs(p []byte) int {
	sum := 0
	for _, b := range p {
		sum += abs(int(int8(b)))
	}
	return sum
}

// chooseFilter fills all candidate buffers with the five filtered forms
// of row and returns the index of the one with the smallest absolute
// sum. Ties resolve to the lowest filter type.
func chooseFilter(candidates *[numFilters][]byte, row, prev []byte, bpp int) int {
	best, bestSum := filterNone, int(^uint(0)>>1)
	for f := range numFilters {
		applyFilter(f, candidates[f], row, prev, bpp)
		if sum := sumAbs(candidates[f]); sum < bestSum {
			best, bestSum = f, sum
		}
	}
	return best
}

// filterImage produces the deflate input: for every row, one filter
// type byte followed by the row filtered with the winning type.
func filterImage(img *Image) []byte {
	bpp := img.Format.BytesPerPixel()
	rowBytes := img.Width * bpp

	var candidates [numFilters][]byte
	for i := range candidates {
		candidates[i] = make([]byte, rowBytes)
	}

	out := make([]byte, 0, (rowBytes+1)*img.Height)
	var prev []byte
	for y := range img.Height {
		row := img.Pix[y*rowBytes : (y+1)*rowBytes]
		best := chooseFilter(&candidates, row, prev, bpp)
		out = append(out, byte(best))
		out = append(out, candidates[best]...)
		prev = row
	}
	return out
}

// writeChunk frames one chunk: big-endian length, 4-byte type, data,
// and a CRC-32 covering type and data.
func writeChunk(w *bitio.Writer, typ string, data []byte) {
	w.WriteUint32BE(uint32(len(data))) //nolint:gosec // chunk data is bounded by encode input size
	w.Write([]byte(typ))
	w.Write(data)
	crc := checksum.CRC32Update(0xFFFFFFFF, []byte(typ))
	crc = checksum.CRC32Update(crc, data)
	w.WriteUint32BE(crc ^ 0xFFFFFFFF)
}

// ihdr builds the fixed 13-byte IHDR payload: dimensions, bit depth 8,
// color type, and zero compression/filter/interlace methods.
func ihdr(img *Image) []byte {
	var b [13]byte
	w := uint32(img.Width)  //nolint:gosec // validated positive
	h := uint32(img.Height) //nolint:gosec // validated positive
	b[0], b[1], b[2], b[3] = byte(w>>24), byte(w>>16), byte(w>>8), byte(w)
	b[4], b[5], b[6], b[7] = byte(h>>24), byte(h>>16), byte(h>>8), byte(h)
	b[8] = 8 // bit depth
	b[9] = img.Format.colorType()
	b[10] = 0 // compression method
	b[11] = 0 // filter method
	b[12] = 0 // interlace method
	return b[:]
}

// EncodeBytes returns img serialized as a complete PNG file.
func EncodeBytes(img *Image) ([]byte, error) {
	if err := img.validate(); err != nil {
		return nil, err
	}

	idat := deflate.CompressZlib(filterImage(img))

	var w bitio.Writer
	w.Write(signature[:])
	writeChunk(&w, "IHDR", ihdr(img))
	writeChunk(&w, "IDAT", idat)
	writeChunk(&w, "IEND", nil)
	return w.Bytes(), nil
}

// Encode writes img as a PNG stream to w.
func Encode(w io.Writer, img *Image) error {
	buf, err := EncodeBytes(img)
	if err != nil {
		return err
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("png: write: %w", err)
	}
	return nil
}

// WriteFile encodes img and writes it to path. The file is not left
// behind as a readable partial result on error paths that occur after
// creation.
func WriteFile(path string, img *Image) error {
	buf, err := EncodeBytes(img)
	if err != nil {
		return err
	}
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("png: create file: %w", err)
	}
	if _, err := f.Write(buf); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("png: write file: %w", err)
	}
	return f.Close()
}
