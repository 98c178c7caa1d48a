package plotz

// BarStyle selects how Spectrum draws its vertical bars.
type BarStyle int

const (
	// BarStyleSolid fills each bar with the single color its
	// normalized value selects.
	BarStyleSolid BarStyle = iota
	// BarStyleGradient colors every row by its own vertical fraction
	// of the full height, independent of bar height.
	BarStyleGradient
	// BarStyleSegmented draws 16 LED-style segments, lighting those at
	// or below the normalized value.
	BarStyleSegmented
)

// segmentCount is the fixed number of LED segments in
// BarStyleSegmented bars.
const segmentCount = 16

// Spectrum renders a row of frequency-bin magnitudes as vertical bars,
// in the manner of an audio analyzer. A parallel peak buffer remembers
// recent maxima per bin, snapping up on louder samples and decaying
// linearly otherwise, so transients stay visible for a few frames.
type Spectrum struct {
	plotInfo

	numBins       int
	width, height int
	values        []float32
	peaks         []float32
	ext           extrema

	style          BarStyle
	peakDecay      float32
	showPeaks      bool
	barWidthFactor float32
	smoothing      float32
	background     Color
}

type spectrumOptions struct {
	style          BarStyle
	peakDecay      float32
	showPeaks      bool
	barWidthFactor float32
	smoothing      float32
	background     Color
}

func defaultSpectrumOptions() spectrumOptions {
	return spectrumOptions{
		style:          BarStyleSolid,
		barWidthFactor: 0.8,
	}
}

// SpectrumOption configures a Spectrum at construction.
type SpectrumOption func(*spectrumOptions)

// WithBarStyle selects the bar drawing style. The default is
// BarStyleSolid.
func WithBarStyle(style BarStyle) SpectrumOption {
	return func(o *spectrumOptions) {
		o.style = style
	}
}

// WithBarWidthFactor sets the fraction of each bin's pixel span the
// bar occupies, leaving symmetric gaps between bars. The value is
// clamped to [0, 1]; the default is 0.8.
func WithBarWidthFactor(factor float64) SpectrumOption {
	return func(o *spectrumOptions) {
		if factor < 0 {
			factor = 0
		} else if factor > 1 {
			factor = 1
		}
		o.barWidthFactor = float32(factor)
	}
}

// WithPeaks enables the per-bin peak indicator row. Peaks decay by
// decay per update, clamped to never drop below zero decay; a zero
// decay holds peaks forever.
func WithPeaks(decay float64) SpectrumOption {
	return func(o *spectrumOptions) {
		if decay < 0 {
			decay = 0
		}
		o.showPeaks = true
		o.peakDecay = float32(decay)
	}
}

// WithSmoothing blends each update with the previous bin value:
// stored = prev*s + new*(1-s). s is clamped to [0, 1]; zero disables
// smoothing.
func WithSmoothing(s float64) SpectrumOption {
	return func(o *spectrumOptions) {
		if s < 0 {
			s = 0
		} else if s > 1 {
			s = 1
		}
		o.smoothing = float32(s)
	}
}

// WithBackground pre-fills the canvas with c before bars are drawn.
// The default is fully transparent, which leaves the canvas untouched.
func WithBackground(c Color) SpectrumOption {
	return func(o *spectrumOptions) {
		o.background = c
	}
}

// NewSpectrum creates an empty spectrum of numBins bins rendered onto
// a width x height canvas.
func NewSpectrum(numBins, width, height int, opts ...SpectrumOption) (*Spectrum, error) {
	if numBins <= 0 || width <= 0 || height <= 0 {
		return nil, ErrDimensions
	}
	o := defaultSpectrumOptions()
	for _, opt := range opts {
		opt(&o)
	}
	s := &Spectrum{
		numBins:        numBins,
		width:          width,
		height:         height,
		values:         make([]float32, numBins),
		peaks:          make([]float32, numBins),
		ext:            newExtrema(),
		style:          o.style,
		peakDecay:      o.peakDecay,
		showPeaks:      o.showPeaks,
		barWidthFactor: o.barWidthFactor,
		smoothing:      o.smoothing,
		background:     o.background,
	}
	s.rect = Rect{MaxX: float64(numBins), MaxY: 1}
	return s, nil
}

// storeBin writes one smoothed magnitude into a bin, widening the
// extrema and applying the peak snap/decay rule.
func (s *Spectrum) storeBin(bin int, v float32) {
	v = s.values[bin]*s.smoothing + v*(1-s.smoothing)
	s.values[bin] = v
	s.ext.widen(v)

	if v > s.peaks[bin] {
		s.peaks[bin] = v
	} else if s.peakDecay > 0 {
		s.peaks[bin] -= s.peakDecay
		if s.peaks[bin] < v {
			s.peaks[bin] = v
		}
	}
}

// Update overwrites the first min(numBins, len(values)) bins with new
// magnitudes. Bins beyond the input keep their previous value and
// peak.
func (s *Spectrum) Update(values []float32) {
	n := min(s.numBins, len(values))
	for i := 0; i < n; i++ {
		s.storeBin(i, values[i])
	}
}

// UpdateBin overwrites a single bin's magnitude. Out-of-range bins are
// ignored.
func (s *Spectrum) UpdateBin(bin int, v float32) {
	if bin < 0 || bin >= s.numBins {
		return
	}
	s.storeBin(bin, v)
}

// Width reports the rendered image width in pixels.
func (s *Spectrum) Width() int { return s.width }

// Height reports the rendered image height in pixels.
func (s *Spectrum) Height() int { return s.height }

// Min reports the smallest stored magnitude so far, or +Inf before any
// update.
func (s *Spectrum) Min() float32 { return s.ext.min }

// Max reports the largest stored magnitude so far, or -Inf before any
// update.
func (s *Spectrum) Max() float32 { return s.ext.max }

// ShiftNonNegative adds -min to every bin and peak so the smallest
// magnitude becomes zero. A no-op when min >= 0 already. Render calls
// this automatically.
func (s *Spectrum) ShiftNonNegative() {
	if s.ext.min >= 0 {
		return
	}
	shift := -s.ext.min
	for i := range s.values {
		s.values[i] += shift
	}
	for i := range s.peaks {
		s.peaks[i] += shift
	}
	s.ext.max += shift
	s.ext.min = 0
}

// Reset zeroes all bins and peaks and restores the extrema sentinels.
func (s *Spectrum) Reset() {
	clear(s.values)
	clear(s.peaks)
	s.ext = newExtrema()
}

// Render shifts the bins non-negative, then draws them with the
// shifted maximum as saturation.
func (s *Spectrum) Render(scheme []Color) ([]uint8, error) {
	s.ShiftNonNegative()
	return s.RenderSaturated(scheme, saturationFor(s.ext.max))
}

// RenderSaturated draws the bins with an explicit saturation ceiling
// onto a width x height RGBA canvas. Bins and pixel columns resample
// against each other: with no more bins than columns each bin expands
// to a pixel span, otherwise each column takes the maximum over its
// bin range.
func (s *Spectrum) RenderSaturated(scheme []Color, saturation float64) ([]uint8, error) {
	if len(scheme) == 0 {
		return nil, ErrScheme
	}
	if !(saturation > 0) {
		return nil, ErrSaturation
	}

	Logger().Debug("render spectrum", "bins", s.numBins, "saturation", saturation)

	out := make([]uint8, s.width*s.height*4)
	if s.background != (Color{}) {
		for i := 0; i < len(out); i += 4 {
			copy(out[i:i+4], s.background[:])
		}
	}

	if s.numBins <= s.width {
		s.renderExpand(out, scheme, float32(saturation))
	} else {
		s.renderAggregate(out, scheme, float32(saturation))
	}
	return out, nil
}

// styleTables builds the per-row gradient index table and the
// per-segment color index table for the configured style.
func (s *Spectrum) styleTables(n int) (gradient, segments []int) {
	switch s.style {
	case BarStyleGradient:
		gradient = make([]int, s.height)
		for y := range gradient {
			gradient[y] = colorIndex(float32(y)/float32(s.height), 1, n)
		}
	case BarStyleSegmented:
		segments = make([]int, segmentCount)
		for seg := range segments {
			segments[seg] = colorIndex(float32(seg)/(segmentCount-1), 1, n)
		}
	}
	return gradient, segments
}

// renderExpand draws one bar per bin across its pixel span, for the
// numBins <= width case.
func (s *Spectrum) renderExpand(out []uint8, scheme []Color, saturation float32) {
	gradient, segments := s.styleTables(len(scheme))
	ratio := float32(s.width) / float32(s.numBins)

	for bin := 0; bin < s.numBins; bin++ {
		norm := clampUnit(s.values[bin] / saturation)
		peakNorm := clampUnit(s.peaks[bin] / saturation)

		startX := int(float32(bin) * ratio)
		endX := int(float32(bin+1) * ratio)
		if startX == endX && endX < s.width {
			endX = startX + 1
		}

		if s.barWidthFactor < 1 {
			fullWidth := endX - startX
			barWidth := int(float32(fullWidth) * s.barWidthFactor)
			if barWidth == 0 && fullWidth > 0 {
				barWidth = 1
			}
			startX += (fullWidth - barWidth) / 2
			endX = startX + barWidth
		}
		if endX > s.width {
			endX = s.width
		}

		for x := startX; x < endX; x++ {
			s.drawBar(out, x, norm, scheme, gradient, segments)
		}
		if s.showPeaks && peakNorm > 0 {
			for x := startX; x < endX; x++ {
				s.drawPeak(out, x, peakNorm, scheme)
			}
		}
	}
}

// renderAggregate draws one bar per pixel column from the maximum of
// its bin range, for the numBins > width case.
func (s *Spectrum) renderAggregate(out []uint8, scheme []Color, saturation float32) {
	gradient, segments := s.styleTables(len(scheme))
	ratio := float32(s.numBins) / float32(s.width)

	columnValues := make([]float32, s.width)
	columnPeaks := make([]float32, s.width)
	for x := 0; x < s.width; x++ {
		startBin := int(float32(x) * ratio)
		endBin := int(float32(x+1) * ratio)
		if endBin > s.numBins {
			endBin = s.numBins
		}
		var maxVal, maxPeak float32
		for bin := startBin; bin < endBin; bin++ {
			if s.values[bin] > maxVal {
				maxVal = s.values[bin]
			}
			if s.peaks[bin] > maxPeak {
				maxPeak = s.peaks[bin]
			}
		}
		columnValues[x] = maxVal
		columnPeaks[x] = maxPeak
	}

	// Alternate columns become gaps when bars are narrowed.
	if s.barWidthFactor < 1 {
		for x := range columnValues {
			if float32(x%2)/2 > s.barWidthFactor {
				columnValues[x] = 0
				columnPeaks[x] = 0
			}
		}
	}

	for x := 0; x < s.width; x++ {
		norm := clampUnit(columnValues[x] / saturation)
		peakNorm := clampUnit(columnPeaks[x] / saturation)

		s.drawBar(out, x, norm, scheme, gradient, segments)
		if s.showPeaks && peakNorm > 0 {
			s.drawPeak(out, x, peakNorm, scheme)
		}
	}
}

// drawBar draws one pixel column of a bar in the configured style.
// Bars grow bottom-up.
func (s *Spectrum) drawBar(out []uint8, x int, norm float32, scheme []Color, gradient, segments []int) {
	switch s.style {
	case BarStyleSolid:
		barHeight := int(norm*float32(s.height) + 0.5)
		c := scheme[colorIndex(norm, 1, len(scheme))]
		for y := 0; y < barHeight; y++ {
			idx := ((s.height-y-1)*s.width + x) * 4
			copy(out[idx:idx+4], c[:])
		}

	case BarStyleGradient:
		barHeight := int(norm*float32(s.height) + 0.5)
		for y := 0; y < barHeight; y++ {
			idx := ((s.height-y-1)*s.width + x) * 4
			copy(out[idx:idx+4], scheme[gradient[y]][:])
		}

	case BarStyleSegmented:
		segHeight := s.height / segmentCount
		segValue := float32(1) / segmentCount
		for seg := 0; seg < segmentCount; seg++ {
			if norm < float32(seg)*segValue {
				continue
			}
			startY := s.height - (seg+1)*segHeight
			endY := s.height - seg*segHeight
			// One-pixel gap above and below each segment.
			for y := startY + 1; y < endY-1; y++ {
				idx := (y*s.width + x) * 4
				copy(out[idx:idx+4], scheme[segments[seg]][:])
			}
		}
	}
}

// drawPeak draws the single-row peak indicator for one column in the
// topmost scheme color.
func (s *Spectrum) drawPeak(out []uint8, x int, peakNorm float32, scheme []Color) {
	peakPos := s.height - int(peakNorm*float32(s.height)+0.5) - 1
	if peakPos < 0 || peakPos >= s.height {
		return
	}
	idx := (peakPos*s.width + x) * 4
	copy(out[idx:idx+4], scheme[len(scheme)-1][:])
}

func clampUnit(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
