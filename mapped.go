package plotz

// MagnitudeMapped accumulates scalar field samples from an
// inWidth x inHeight logical grid onto an imgWidth x imgHeight pixel
// buffer. Each logical cell covers a proportional pixel rectangle:
// upscaling fans one sample out to many pixels, downscaling collapses
// several cells onto one pixel by repeated addition. Downscale is
// additive, never averaged, so dense regions grow hotter instead of
// flattening out.
type MagnitudeMapped struct {
	plotInfo

	inWidth, inHeight   int
	imgWidth, imgHeight int
	values              []float32
	ext                 extrema
}

// NewMagnitudeMapped creates an empty mapped plot accumulating an
// inWidth x inHeight logical grid onto an imgWidth x imgHeight buffer.
func NewMagnitudeMapped(inWidth, inHeight, imgWidth, imgHeight int) (*MagnitudeMapped, error) {
	if inWidth <= 0 || inHeight <= 0 || imgWidth <= 0 || imgHeight <= 0 {
		return nil, ErrDimensions
	}
	m := &MagnitudeMapped{
		inWidth:   inWidth,
		inHeight:  inHeight,
		imgWidth:  imgWidth,
		imgHeight: imgHeight,
		values:    make([]float32, imgWidth*imgHeight),
		ext:       newExtrema(),
	}
	m.rect = Rect{MaxX: float64(inWidth), MaxY: float64(inHeight)}
	return m, nil
}

// mapSpan projects one logical coordinate onto its covered pixel range
// [start, end). Every in-range coordinate covers at least its start
// pixel, so downscaled samples are never dropped between pixels.
func mapSpan(in int, scale float32, imgDim int) (start, end int) {
	start = int(float32(in) * scale)
	end = int(float32(in+1) * scale)
	if end == start {
		end = start + 1
	}
	if end > imgDim {
		end = imgDim
	}
	return start, end
}

// AddPoint accumulates v into every pixel covered by logical cell
// (inX, inY), widening the extrema with each touched pixel's new
// total. Cells outside the logical grid are ignored.
func (m *MagnitudeMapped) AddPoint(inX, inY int, v float32) {
	if inX < 0 || inY < 0 || inX >= m.inWidth || inY >= m.inHeight {
		return
	}

	scaleX := float32(m.imgWidth) / float32(m.inWidth)
	scaleY := float32(m.imgHeight) / float32(m.inHeight)
	startX, endX := mapSpan(inX, scaleX, m.imgWidth)
	startY, endY := mapSpan(inY, scaleY, m.imgHeight)

	for y := startY; y < endY; y++ {
		for x := startX; x < endX; x++ {
			idx := y*m.imgWidth + x
			m.values[idx] += v
			m.ext.widen(m.values[idx])
		}
	}
}

// Width reports the rendered image width in pixels.
func (m *MagnitudeMapped) Width() int { return m.imgWidth }

// Height reports the rendered image height in pixels.
func (m *MagnitudeMapped) Height() int { return m.imgHeight }

// Min reports the smallest accumulated pixel value so far, or +Inf
// before any sample.
func (m *MagnitudeMapped) Min() float32 { return m.ext.min }

// Max reports the largest accumulated pixel value so far, or -Inf
// before any sample.
func (m *MagnitudeMapped) Max() float32 { return m.ext.max }

// ShiftNonNegative adds -min to every pixel so the smallest becomes
// zero. A no-op when min >= 0 already. Render calls this
// automatically.
func (m *MagnitudeMapped) ShiftNonNegative() {
	shiftNonNegative(m.values, &m.ext)
}

// Reset zeroes the buffer and restores the extrema sentinels.
func (m *MagnitudeMapped) Reset() {
	clear(m.values)
	m.ext = newExtrema()
}

// Render shifts the buffer non-negative, then colorizes it with the
// shifted maximum as saturation.
func (m *MagnitudeMapped) Render(scheme []Color) ([]uint8, error) {
	m.ShiftNonNegative()
	return m.RenderSaturated(scheme, saturationFor(m.ext.max))
}

// RenderSaturated colorizes the buffer with an explicit saturation
// ceiling, without shifting.
func (m *MagnitudeMapped) RenderSaturated(scheme []Color, saturation float64) ([]uint8, error) {
	return colorize(m.values, saturation, scheme)
}
