package plotz

// Magnitude stores one scalar field sample per pixel on a
// width x height grid. AddPoint overwrites the cell rather than
// accumulating, so the buffer always holds the latest sample of the
// field, and both extrema are tracked for normalization.
type Magnitude struct {
	plotInfo

	width, height int
	values        []float32
	ext           extrema
}

// NewMagnitude creates an empty magnitude plot with a width x height
// buffer.
func NewMagnitude(width, height int) (*Magnitude, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrDimensions
	}
	m := &Magnitude{
		width:  width,
		height: height,
		values: make([]float32, width*height),
		ext:    newExtrema(),
	}
	m.rect = Rect{MaxX: float64(width), MaxY: float64(height)}
	return m, nil
}

// AddPoint stores v at (x, y), replacing any previous sample there,
// and widens the running extrema. Points outside the buffer are
// ignored.
func (m *Magnitude) AddPoint(x, y int, v float32) {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return
	}
	m.values[y*m.width+x] = v
	m.ext.widen(v)
}

// Width reports the rendered image width in pixels.
func (m *Magnitude) Width() int { return m.width }

// Height reports the rendered image height in pixels.
func (m *Magnitude) Height() int { return m.height }

// Min reports the smallest sample stored so far, or +Inf before any
// sample.
func (m *Magnitude) Min() float32 { return m.ext.min }

// Max reports the largest sample stored so far, or -Inf before any
// sample.
func (m *Magnitude) Max() float32 { return m.ext.max }

// ShiftNonNegative adds -min to every cell so the smallest sample
// becomes zero. A no-op when min >= 0 already, so repeated calls are
// safe. Render calls this automatically.
func (m *Magnitude) ShiftNonNegative() {
	shiftNonNegative(m.values, &m.ext)
}

// Reset zeroes the buffer and restores the extrema sentinels.
func (m *Magnitude) Reset() {
	clear(m.values)
	m.ext = newExtrema()
}

// Render shifts the buffer non-negative, then colorizes it with the
// shifted maximum as saturation. Partially-negative data therefore
// spreads over the full scheme instead of clipping at zero.
func (m *Magnitude) Render(scheme []Color) ([]uint8, error) {
	m.ShiftNonNegative()
	return m.RenderSaturated(scheme, saturationFor(m.ext.max))
}

// RenderSaturated colorizes the buffer with an explicit saturation
// ceiling. The non-negative shift is not applied; callers wanting it
// use ShiftNonNegative first.
func (m *Magnitude) RenderSaturated(scheme []Color, saturation float64) ([]uint8, error) {
	return colorize(m.values, saturation, scheme)
}
