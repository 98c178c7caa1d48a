package plotz

// MagnitudeGrid arranges rows x cols independent MagnitudeMapped plots
// into one composite image. All plots share a single normalization:
// the global extrema over every plot drive one shift and one
// saturation, so the same value renders as the same color in every
// tile.
type MagnitudeGrid struct {
	plotInfo

	rows, cols            int
	inWidth, inHeight     int
	plotWidth, plotHeight int
	plots                 []*MagnitudeMapped
	ext                   extrema
}

// NewMagnitudeGrid creates a rows x cols grid of empty mapped plots,
// each accumulating an inWidth x inHeight logical grid onto a
// plotWidth x plotHeight tile.
func NewMagnitudeGrid(rows, cols, inWidth, inHeight, plotWidth, plotHeight int) (*MagnitudeGrid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrDimensions
	}
	plots := make([]*MagnitudeMapped, rows*cols)
	for i := range plots {
		p, err := NewMagnitudeMapped(inWidth, inHeight, plotWidth, plotHeight)
		if err != nil {
			return nil, err
		}
		plots[i] = p
	}
	g := &MagnitudeGrid{
		rows:       rows,
		cols:       cols,
		inWidth:    inWidth,
		inHeight:   inHeight,
		plotWidth:  plotWidth,
		plotHeight: plotHeight,
		plots:      plots,
		ext:        newExtrema(),
	}
	g.rect = Rect{MaxX: float64(cols * plotWidth), MaxY: float64(rows * plotHeight)}
	return g, nil
}

// At returns the plot at (row, col), or nil when the cell is outside
// the grid.
func (g *MagnitudeGrid) At(row, col int) *MagnitudeMapped {
	if row < 0 || col < 0 || row >= g.rows || col >= g.cols {
		return nil
	}
	return g.plots[row*g.cols+col]
}

// SetPlot replaces the plot at (row, col) and recomputes the global
// extrema. The plot's logical and tile dimensions must match the
// grid's.
func (g *MagnitudeGrid) SetPlot(row, col int, p *MagnitudeMapped) error {
	if row < 0 || col < 0 || row >= g.rows || col >= g.cols {
		return ErrDimensions
	}
	if p == nil || p.inWidth != g.inWidth || p.inHeight != g.inHeight ||
		p.imgWidth != g.plotWidth || p.imgHeight != g.plotHeight {
		return ErrDimensions
	}
	g.plots[row*g.cols+col] = p
	g.updateGlobalExtrema()
	return nil
}

// AddPoint accumulates v into the plot at (row, col) and widens the
// global extrema. Cells outside the grid are ignored, as are logical
// coordinates outside the plot.
func (g *MagnitudeGrid) AddPoint(row, col, inX, inY int, v float32) {
	p := g.At(row, col)
	if p == nil {
		return
	}
	p.AddPoint(inX, inY, v)
	g.ext.merge(p.ext)
}

// Width reports the composite image width in pixels.
func (g *MagnitudeGrid) Width() int { return g.cols * g.plotWidth }

// Height reports the composite image height in pixels.
func (g *MagnitudeGrid) Height() int { return g.rows * g.plotHeight }

// Min reports the smallest accumulated value across all plots, or +Inf
// before any sample.
func (g *MagnitudeGrid) Min() float32 { return g.ext.min }

// Max reports the largest accumulated value across all plots, or -Inf
// before any sample.
func (g *MagnitudeGrid) Max() float32 { return g.ext.max }

// updateGlobalExtrema recomputes the global extrema from scratch as
// the pointwise min/max over every plot's extrema. Incremental
// widening in AddPoint only ever grows the range; this also shrinks it
// after SetPlot or per-plot resets.
func (g *MagnitudeGrid) updateGlobalExtrema() {
	g.ext = newExtrema()
	for _, p := range g.plots {
		g.ext.merge(p.ext)
	}
}

// shiftAll applies one global non-negative shift across every plot's
// buffer, keeping per-plot extrema consistent so later per-plot
// renders see shifted data.
func (g *MagnitudeGrid) shiftAll() {
	if g.ext.min >= 0 {
		return
	}
	shift := -g.ext.min
	for _, p := range g.plots {
		for i := range p.values {
			p.values[i] += shift
		}
		p.ext.min += shift
		p.ext.max += shift
	}
	g.ext.max += shift
	g.ext.min = 0
}

// Reset resets every plot and restores the global extrema sentinels.
func (g *MagnitudeGrid) Reset() {
	for _, p := range g.plots {
		p.Reset()
	}
	g.ext = newExtrema()
}

// Render recomputes the global extrema, applies the global shift, and
// renders every tile with the shared saturation into a composite
// (cols*plotWidth) x (rows*plotHeight) RGBA buffer.
func (g *MagnitudeGrid) Render(scheme []Color) ([]uint8, error) {
	g.updateGlobalExtrema()
	g.shiftAll()
	return g.RenderSaturated(scheme, saturationFor(g.ext.max))
}

// RenderSaturated renders every tile with an explicit shared
// saturation into the composite buffer, without shifting.
func (g *MagnitudeGrid) RenderSaturated(scheme []Color, saturation float64) ([]uint8, error) {
	totalWidth := g.cols * g.plotWidth
	totalHeight := g.rows * g.plotHeight
	out := make([]uint8, totalWidth*totalHeight*4)

	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			tile, err := g.plots[row*g.cols+col].RenderSaturated(scheme, saturation)
			if err != nil {
				return nil, err
			}
			startX := col * g.plotWidth
			startY := row * g.plotHeight
			for y := 0; y < g.plotHeight; y++ {
				src := tile[y*g.plotWidth*4 : (y+1)*g.plotWidth*4]
				dst := ((startY+y)*totalWidth + startX) * 4
				copy(out[dst:dst+len(src)], src)
			}
		}
	}
	return out, nil
}
