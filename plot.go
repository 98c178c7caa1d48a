package plotz

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/openalgz/plotz/internal/png"
)

// Shared errors for the render engines and save paths.
var (
	// ErrDimensions is returned when a constructor receives a
	// non-positive width, height, bin count, or grid shape.
	ErrDimensions = errors.New("plotz: invalid dimensions")

	// ErrSaturation is returned by RenderSaturated when saturation is
	// not strictly positive.
	ErrSaturation = errors.New("plotz: saturation must be positive")

	// ErrScheme is returned when a render is given an empty color
	// scheme.
	ErrScheme = errors.New("plotz: empty color scheme")
)

// Rect is an axis-aligned rectangle in data space, used by the scale
// overlay to label axes.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Plot is the data-range surface every render engine exposes to the
// scale overlay: the rectangle its samples span and optional axis
// labels.
type Plot interface {
	DataRect() Rect
	AxisLabels() (x, y string)
}

// plotInfo carries the data-space rectangle and axis labels shared by
// every engine. Engines embed it to satisfy Plot.
type plotInfo struct {
	rect           Rect
	xLabel, yLabel string
}

// DataRect reports the data-space rectangle labels are drawn against.
func (p *plotInfo) DataRect() Rect { return p.rect }

// AxisLabels reports the configured x and y axis label strings.
func (p *plotInfo) AxisLabels() (x, y string) { return p.xLabel, p.yLabel }

// SetDataRect overrides the data-space rectangle the scale overlay
// labels. The default is the buffer's pixel bounds.
func (p *plotInfo) SetDataRect(r Rect) { p.rect = r }

// SetAxisLabels sets the axis label strings drawn by the scale overlay.
func (p *plotInfo) SetAxisLabels(x, y string) { p.xLabel, p.yLabel = x, y }

// extrema tracks the running minimum and maximum of all values ever
// written to a buffer. A fresh instance holds the +Inf/-Inf sentinel
// pair so the first sample always narrows both sides.
type extrema struct {
	min, max float32
}

func newExtrema() extrema {
	return extrema{min: float32(math.Inf(1)), max: float32(math.Inf(-1))}
}

func (e *extrema) widen(v float32) {
	if v < e.min {
		e.min = v
	}
	if v > e.max {
		e.max = v
	}
}

func (e *extrema) merge(o extrema) {
	if o.min < e.min {
		e.min = o.min
	}
	if o.max > e.max {
		e.max = o.max
	}
}

// shiftNonNegative adds -min to every value so the smallest becomes
// zero, widening max by the same amount. A no-op once min >= 0, which
// makes repeated shifts idempotent and covers the untouched-buffer
// sentinel.
func shiftNonNegative(values []float32, e *extrema) {
	if e.min >= 0 {
		return
	}
	shift := -e.min
	for i := range values {
		values[i] += shift
	}
	e.max += shift
	e.min = 0
}

// saturationFor derives the default render saturation from a buffer
// maximum: the maximum itself when positive, else 1 so empty buffers
// normalize to zero instead of dividing by zero.
func saturationFor(max float32) float64 {
	if max > 0 {
		return float64(max)
	}
	return 1.0
}

// colorIndex maps one value through the normalization law: clamp
// value/saturation into [0,1], scale by the table's top index, round,
// and clamp to the table.
func colorIndex(v, saturation float32, n int) int {
	norm := v / saturation
	if norm < 0 {
		norm = 0
	} else if norm > 1 {
		norm = 1
	}
	idx := int(float32(n-1)*norm + 0.5)
	if idx > n-1 {
		idx = n - 1
	}
	return idx
}

// colorize maps every value into an RGBA byte buffer using the shared
// normalization law.
func colorize(values []float32, saturation float64, scheme []Color) ([]uint8, error) {
	if len(scheme) == 0 {
		return nil, ErrScheme
	}
	if !(saturation > 0) {
		return nil, ErrSaturation
	}

	Logger().Debug("colorize", "cells", len(values), "saturation", saturation)

	sat := float32(saturation)
	n := len(scheme)
	out := make([]uint8, len(values)*4)
	for i, v := range values {
		c := scheme[colorIndex(v, sat, n)]
		copy(out[i*4:i*4+4], c[:])
	}
	return out, nil
}

// SavePNG writes a rendered RGBA buffer to path as an 8-bit PNG.
func SavePNG(path string, pix []uint8, width, height int) error {
	err := png.WriteFile(path, &png.Image{
		Width:  width,
		Height: height,
		Format: png.FormatRGBA,
		Pix:    pix,
	})
	if err != nil {
		return err
	}
	Logger().Debug("saved png", "path", path, "width", width, "height", height)
	return nil
}

// SavePNGRGB writes an opaque RGB buffer (3 bytes per pixel) to path.
func SavePNGRGB(path string, pix []uint8, width, height int) error {
	return png.WriteFile(path, &png.Image{
		Width:  width,
		Height: height,
		Format: png.FormatRGB,
		Pix:    pix,
	})
}

// EncodePNG writes a rendered RGBA buffer to w as an 8-bit PNG stream.
func EncodePNG(w io.Writer, pix []uint8, width, height int) error {
	buf, err := png.EncodeBytes(&png.Image{
		Width:  width,
		Height: height,
		Format: png.FormatRGBA,
		Pix:    pix,
	})
	if err != nil {
		return err
	}
	Logger().Debug("encoded png", "width", width, "height", height, "bytes", len(buf))
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("plotz: write png: %w", err)
	}
	return nil
}
