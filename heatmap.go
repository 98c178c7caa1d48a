package plotz

import "math"

// defaultStampRadius is the radius of the stamp a Heatmap uses when no
// WithStamp option is given.
const defaultStampRadius = 4

// Stamp is a small kernel of non-negative intensities splatted onto a
// Heatmap at each added point. The anchor cell is (width/2, height/2).
type Stamp struct {
	width, height int
	data          []float32
}

// NewStamp generates a radial stamp of odd side 2*radius+1. Each cell
// holds 1 - clamp(d/(radius+1), 0, 1) where d is the Euclidean
// distance from the center in cell units, so intensity falls off
// linearly and reaches zero just past the radius. A negative radius is
// treated as zero.
func NewStamp(radius int) *Stamp {
	return NewStampShaped(radius, func(d float64) float64 { return d })
}

// NewStampShaped generates a radial stamp like NewStamp but passes the
// normalized center distance through shape before clamping, so callers
// can sharpen or soften the falloff. shape should be monotonically
// increasing on [0, 1].
func NewStampShaped(radius int, shape func(float64) float64) *Stamp {
	if radius < 0 {
		radius = 0
	}
	side := 2*radius + 1
	s := &Stamp{
		width:  side,
		height: side,
		data:   make([]float32, side*side),
	}
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			dx := float64(x - radius)
			dy := float64(y - radius)
			dist := math.Sqrt(dx*dx+dy*dy) / float64(radius+1)
			ds := shape(dist)
			if ds < 0 {
				ds = 0
			} else if ds > 1 {
				ds = 1
			}
			s.data[y*side+x] = float32(1 - ds)
		}
	}
	return s
}

// NewStampData wraps a caller-supplied kernel. The data slice is used
// directly, not copied, and must hold width*height values.
func NewStampData(width, height int, data []float32) (*Stamp, error) {
	if width <= 0 || height <= 0 || len(data) != width*height {
		return nil, ErrDimensions
	}
	return &Stamp{width: width, height: height, data: data}, nil
}

// Width reports the stamp's width in cells.
func (s *Stamp) Width() int { return s.width }

// Height reports the stamp's height in cells.
func (s *Stamp) Height() int { return s.height }

// Heatmap accumulates point density on a width x height grid. Every
// added point splats a stamp of intensities around its coordinate, and
// overlapping stamps add up, so hot spots emerge where points cluster.
//
// Heat never goes negative (stamps and weights are non-negative), so
// only the running maximum is tracked and Render never shifts the
// buffer.
type Heatmap struct {
	plotInfo

	width, height int
	values        []float32
	maxHeat       float32
	stamp         *Stamp
}

type heatmapOptions struct {
	stamp *Stamp
}

// HeatmapOption configures a Heatmap at construction.
type HeatmapOption func(*heatmapOptions)

// WithStamp replaces the default radius-4 stamp used by AddPoint and
// AddPointWeighted.
func WithStamp(s *Stamp) HeatmapOption {
	return func(o *heatmapOptions) {
		o.stamp = s
	}
}

// NewHeatmap creates an empty heatmap with a width x height buffer.
func NewHeatmap(width, height int, opts ...HeatmapOption) (*Heatmap, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrDimensions
	}
	var o heatmapOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.stamp == nil {
		o.stamp = NewStamp(defaultStampRadius)
	}
	h := &Heatmap{
		width:  width,
		height: height,
		values: make([]float32, width*height),
		stamp:  o.stamp,
	}
	h.rect = Rect{MaxX: float64(width), MaxY: float64(height)}
	return h, nil
}

// AddPoint splats the configured stamp centered at (x, y) with weight
// 1. Points outside the buffer are ignored.
func (h *Heatmap) AddPoint(x, y int) {
	h.splat(x, y, h.stamp, 1)
}

// AddPointWeighted splats the configured stamp centered at (x, y),
// scaling every stamp cell by weight. Points outside the buffer and
// negative weights are ignored.
func (h *Heatmap) AddPointWeighted(x, y int, weight float32) {
	h.splat(x, y, h.stamp, weight)
}

// AddPointStamp splats an arbitrary stamp centered at (x, y) with the
// given weight. Points outside the buffer, negative weights, and nil
// stamps are ignored.
func (h *Heatmap) AddPointStamp(x, y int, s *Stamp, weight float32) {
	h.splat(x, y, s, weight)
}

// splat accumulates stamp*weight into the buffer around (x, y),
// visiting only the sub-rectangle where the stamp overlaps the buffer.
// Overlap beyond any edge is clipped, never wrapped.
func (h *Heatmap) splat(x, y int, s *Stamp, weight float32) {
	if s == nil || x < 0 || y < 0 || x >= h.width || y >= h.height || weight < 0 {
		return
	}

	sw, sh := s.width, s.height
	x0, y0 := 0, 0
	if x < sw/2 {
		x0 = sw/2 - x
	}
	if y < sh/2 {
		y0 = sh/2 - y
	}
	x1, y1 := sw, sh
	if x+sw/2 >= h.width {
		x1 = sw/2 + (h.width - x)
	}
	if y+sh/2 >= h.height {
		y1 = sh/2 + (h.height - y)
	}

	for iy := y0; iy < y1; iy++ {
		bufIdx := (y+iy-sh/2)*h.width + (x + x0 - sw/2)
		stampIdx := iy*sw + x0
		for ix := x0; ix < x1; ix++ {
			h.values[bufIdx] += s.data[stampIdx] * weight
			if h.values[bufIdx] > h.maxHeat {
				h.maxHeat = h.values[bufIdx]
			}
			bufIdx++
			stampIdx++
		}
	}
}

// MaxHeat reports the hottest accumulated cell value so far.
func (h *Heatmap) MaxHeat() float32 { return h.maxHeat }

// Width reports the rendered image width in pixels.
func (h *Heatmap) Width() int { return h.width }

// Height reports the rendered image height in pixels.
func (h *Heatmap) Height() int { return h.height }

// Reset zeroes the buffer and the running maximum.
func (h *Heatmap) Reset() {
	clear(h.values)
	h.maxHeat = 0
}

// Render colorizes the buffer with the hottest cell mapped to the top
// of the scheme. An empty buffer renders as all scheme[0].
func (h *Heatmap) Render(scheme []Color) ([]uint8, error) {
	return h.RenderSaturated(scheme, saturationFor(h.maxHeat))
}

// RenderSaturated colorizes the buffer with an explicit saturation
// ceiling. Values at or above saturation map to the last scheme entry.
func (h *Heatmap) RenderSaturated(scheme []Color, saturation float64) ([]uint8, error) {
	return colorize(h.values, saturation, scheme)
}
