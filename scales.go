package plotz

import (
	"math"
	"strconv"

	"github.com/openalgz/plotz/text"
)

// ScaleType selects linear or logarithmic tick spacing.
type ScaleType int

const (
	ScaleLinear ScaleType = iota
	ScaleLog
)

// ScaleOptions configures the axis overlay. Start from DefaultScaleOptions
// and override fields; the zero value disables both axes.
type ScaleOptions struct {
	// Color is the axis and tick color. Its alpha channel drives the line
	// blending.
	Color Color
	// LineWidth is the axis and tick stroke width in pixels.
	LineWidth int
	// GridLines draws lines across the plot area at interior ticks.
	GridLines bool
	// GridLineAlpha scales the grid line opacity relative to Color.
	GridLineAlpha float64

	ShowXAxis bool
	ShowYAxis bool
	XScale    ScaleType
	YScale    ScaleType

	XTickCount int
	YTickCount int
	// TickLength is how far tick marks extend outside the plot area.
	TickLength int

	// ShowLabels draws a numeric label at every tick.
	ShowLabels bool
	// FontSizePercent sizes labels as a percentage of the image height.
	FontSizePercent float64
	// FontFamily and FontStyle select the label font from the registry.
	// An empty or unregistered family falls back to the built-in bitmap
	// face.
	FontFamily string
	FontStyle  text.Style
	TextColor  Color
	// LabelPrecision is the number of digits after the decimal point.
	LabelPrecision int
	// Scientific formats tick labels in scientific notation.
	Scientific bool

	// Axis ranges. Nil values are filled from the plot's data rect, or
	// 0..1 when there is no plot.
	XMin, XMax *float64
	YMin, YMax *float64

	// XMapper and YMapper transform tick values before formatting, for
	// unit conversions such as bins to hertz or magnitude to decibels.
	XMapper func(float64) float64
	YMapper func(float64) float64

	// Axis titles. The "X" and "Y" placeholders are replaced by the
	// plot's own labels when one is passed to DrawScales.
	XLabel         string
	YLabel         string
	ShowAxisLabels bool

	LeftMargin   int
	RightMargin  int
	BottomMargin int
	TopMargin    int
}

// DefaultScaleOptions returns white 1px axes with five ticks per axis,
// labels at 2% of the image height, and margins sized for tick labels on
// the left and bottom edges.
func DefaultScaleOptions() ScaleOptions {
	return ScaleOptions{
		Color:           Color{255, 255, 255, 255},
		LineWidth:       1,
		GridLineAlpha:   0.3,
		ShowXAxis:       true,
		ShowYAxis:       true,
		XTickCount:      5,
		YTickCount:      5,
		TickLength:      5,
		ShowLabels:      true,
		FontSizePercent: 2.0,
		TextColor:       Color{255, 255, 255, 255},
		LabelPrecision:  2,
		XLabel:          "X",
		YLabel:          "Y",
		LeftMargin:      50,
		RightMargin:     20,
		BottomMargin:    30,
		TopMargin:       20,
	}
}

// PlotArea is the pixel region inside the overlay margins where plot
// content belongs.
type PlotArea struct {
	Left, Top, Right, Bottom int
}

// Width returns the plot area width in pixels.
func (a PlotArea) Width() int { return a.Right - a.Left }

// Height returns the plot area height in pixels.
func (a PlotArea) Height() int { return a.Bottom - a.Top }

// ContentArea returns the plot area the overlay leaves inside the margins
// of a width by height image.
func ContentArea(width, height int, opts ScaleOptions) PlotArea {
	return PlotArea{
		Left:   opts.LeftMargin,
		Top:    opts.TopMargin,
		Right:  width - opts.RightMargin,
		Bottom: height - opts.BottomMargin,
	}
}

// Renderer is a Plot that can produce its own RGBA image.
type Renderer interface {
	Plot
	Render(scheme []Color) ([]uint8, error)
	Width() int
	Height() int
}

// RenderWithScales renders the plot and draws the axis overlay over the
// result in one step.
func RenderWithScales(p Renderer, scheme []Color, reg *text.Registry, opts ScaleOptions) ([]uint8, error) {
	pix, err := p.Render(scheme)
	if err != nil {
		return nil, err
	}
	if err := DrawScales(pix, p.Width(), p.Height(), p, reg, opts); err != nil {
		return nil, err
	}
	return pix, nil
}

// DrawScales draws axis lines, tick marks, optional grid lines, and labels
// over an already rendered RGBA buffer. Ranges and axis titles left unset
// in opts are taken from the plot; a nil plot defaults the ranges to 0..1.
// Label fonts come from reg; when reg is nil or the family is not
// registered, the built-in bitmap face is used so labels degrade rather
// than fail.
func DrawScales(img []uint8, width, height int, plot Plot, reg *text.Registry, opts ScaleOptions) error {
	if width <= 0 || height <= 0 || len(img) < width*height*4 {
		return ErrDimensions
	}

	if plot != nil {
		applyPlot(&opts, plot)
	}
	clampScaleOptions(&opts)

	s := &scaleState{
		img:    img,
		width:  width,
		height: height,
		area:   ContentArea(width, height, opts),
		x:      resolveRange(opts.XMin, opts.XMax, opts.XScale),
		y:      resolveRange(opts.YMin, opts.YMax, opts.YScale),
		font:   labelFont(reg, opts),
		opts:   opts,
	}

	// Grid lines go down first so the axes draw over them.
	if opts.GridLines {
		s.drawGrid()
	}
	if opts.ShowXAxis {
		if err := s.drawXAxis(); err != nil {
			return err
		}
	}
	if opts.ShowYAxis {
		if err := s.drawYAxis(); err != nil {
			return err
		}
	}
	if opts.ShowAxisLabels {
		if err := s.drawAxisLabels(); err != nil {
			return err
		}
	}
	return nil
}

// applyPlot fills unset ranges from the plot's data rect and replaces the
// placeholder axis titles with the plot's own.
func applyPlot(opts *ScaleOptions, plot Plot) {
	rect := plot.DataRect()
	if opts.XMin == nil {
		v := rect.MinX
		opts.XMin = &v
	}
	if opts.XMax == nil {
		v := rect.MaxX
		opts.XMax = &v
	}
	if opts.YMin == nil {
		v := rect.MinY
		opts.YMin = &v
	}
	if opts.YMax == nil {
		v := rect.MaxY
		opts.YMax = &v
	}

	xLabel, yLabel := plot.AxisLabels()
	if opts.XLabel == "X" {
		opts.XLabel = xLabel
	}
	if opts.YLabel == "Y" {
		opts.YLabel = yLabel
	}
}

// clampScaleOptions coerces degenerate counts and widths so the tick loops
// are well defined.
func clampScaleOptions(opts *ScaleOptions) {
	opts.LineWidth = max(1, opts.LineWidth)
	opts.XTickCount = max(1, opts.XTickCount)
	opts.YTickCount = max(1, opts.YTickCount)
	opts.TickLength = max(0, opts.TickLength)
	opts.GridLineAlpha = min(1, max(0, opts.GridLineAlpha))
}

// axisRange is a resolved numeric range for one axis.
type axisRange struct {
	min, max float64
}

// resolveRange turns optional endpoints into a usable range: unset ends
// default to 0..1, an empty or inverted range is widened to one unit, and
// logarithmic axes are forced positive.
func resolveRange(minP, maxP *float64, scale ScaleType) axisRange {
	r := axisRange{0, 1}
	if minP != nil {
		r.min = *minP
	}
	if maxP != nil {
		r.max = *maxP
	}
	if r.min >= r.max {
		r.max = r.min + 1
	}
	if scale == ScaleLog && r.min <= 0 {
		r.min = 1
	}
	if scale == ScaleLog && r.min >= r.max {
		r.max = r.min * 10
	}
	return r
}

// value interpolates the tick value at ratio along the range, in log10
// space for logarithmic axes.
func (r axisRange) value(ratio float64, scale ScaleType) float64 {
	if scale == ScaleLog {
		logMin := math.Log10(r.min)
		logMax := math.Log10(r.max)
		return math.Pow(10, logMin+ratio*(logMax-logMin))
	}
	return r.min + ratio*(r.max-r.min)
}

// labelFont resolves the tick label font, falling back to the built-in
// face when the registry has no match.
func labelFont(reg *text.Registry, opts ScaleOptions) *text.Font {
	if reg == nil || opts.FontFamily == "" {
		return nil
	}
	f, err := reg.Lookup(opts.FontFamily, opts.FontStyle)
	if err != nil {
		Logger().Debug("label font not registered, using builtin face", "family", opts.FontFamily)
		return nil
	}
	return f
}

// scaleState carries one DrawScales invocation.
type scaleState struct {
	img           []uint8
	width, height int
	area          PlotArea
	x, y          axisRange
	font          *text.Font
	opts          ScaleOptions
}

// hline blends a horizontal line from x1 to x2 inclusive. Wider strokes
// alternate strands above and below the center row.
func (s *scaleState) hline(y, x1, x2 int, c Color, lineWidth int) {
	alpha := float64(c[3]) / 255
	inv := 1 - alpha
	for ly := 0; ly < lineWidth; ly++ {
		py := y - ly/2
		if ly%2 != 0 {
			py++
		}
		if py < 0 || py >= s.height {
			continue
		}
		for x := x1; x <= x2; x++ {
			if x < 0 || x >= s.width {
				continue
			}
			idx := (py*s.width + x) * 4
			s.img[idx] = uint8(float64(s.img[idx])*inv + float64(c[0])*alpha)
			s.img[idx+1] = uint8(float64(s.img[idx+1])*inv + float64(c[1])*alpha)
			s.img[idx+2] = uint8(float64(s.img[idx+2])*inv + float64(c[2])*alpha)
			s.img[idx+3] = 255
		}
	}
}

// vline blends a vertical line from y1 to y2 inclusive.
func (s *scaleState) vline(x, y1, y2 int, c Color, lineWidth int) {
	alpha := float64(c[3]) / 255
	inv := 1 - alpha
	for lx := 0; lx < lineWidth; lx++ {
		px := x - lx/2
		if lx%2 != 0 {
			px++
		}
		if px < 0 || px >= s.width {
			continue
		}
		for y := y1; y <= y2; y++ {
			if y < 0 || y >= s.height {
				continue
			}
			idx := (y*s.width + px) * 4
			s.img[idx] = uint8(float64(s.img[idx])*inv + float64(c[0])*alpha)
			s.img[idx+1] = uint8(float64(s.img[idx+1])*inv + float64(c[1])*alpha)
			s.img[idx+2] = uint8(float64(s.img[idx+2])*inv + float64(c[2])*alpha)
			s.img[idx+3] = 255
		}
	}
}

func (s *scaleState) drawXAxis() error {
	yPos := s.area.Bottom
	s.hline(yPos, s.area.Left, s.area.Right, s.opts.Color, s.opts.LineWidth)

	for i := 0; i <= s.opts.XTickCount; i++ {
		ratio := float64(i) / float64(s.opts.XTickCount)
		xPos := s.area.Left + int(ratio*float64(s.area.Width()))
		s.vline(xPos, yPos, yPos+s.opts.TickLength, s.opts.Color, s.opts.LineWidth)

		if !s.opts.ShowLabels {
			continue
		}
		label := s.formatValue(s.x.value(ratio, s.opts.XScale), s.opts.XMapper)
		err := text.StampAt(s.img, s.width, s.height, label, s.font, s.opts.FontSizePercent,
			s.opts.TextColor, xPos, yPos+s.opts.TickLength+10, text.AnchorCenter)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *scaleState) drawYAxis() error {
	xPos := s.area.Left
	s.vline(xPos, s.area.Top, s.area.Bottom, s.opts.Color, s.opts.LineWidth)

	for i := 0; i <= s.opts.YTickCount; i++ {
		ratio := float64(i) / float64(s.opts.YTickCount)
		yPos := s.area.Bottom - int(ratio*float64(s.area.Height()))
		s.hline(yPos, xPos-s.opts.TickLength, xPos, s.opts.Color, s.opts.LineWidth)

		if !s.opts.ShowLabels {
			continue
		}
		label := s.formatValue(s.y.value(ratio, s.opts.YScale), s.opts.YMapper)
		err := text.StampAt(s.img, s.width, s.height, label, s.font, s.opts.FontSizePercent,
			s.opts.TextColor, xPos-s.opts.TickLength-5, yPos, text.AnchorRight)
		if err != nil {
			return err
		}
	}
	return nil
}

// drawGrid blends dimmed lines across the plot area at interior ticks; the
// endpoint ticks coincide with the axes and plot edge, so they are skipped.
func (s *scaleState) drawGrid() {
	gridColor := s.opts.Color
	gridColor[3] = uint8(s.opts.GridLineAlpha * 255)

	for i := 1; i < s.opts.XTickCount; i++ {
		ratio := float64(i) / float64(s.opts.XTickCount)
		xPos := s.area.Left + int(ratio*float64(s.area.Width()))
		s.vline(xPos, s.area.Top, s.area.Bottom, gridColor, 1)
	}
	for i := 1; i < s.opts.YTickCount; i++ {
		ratio := float64(i) / float64(s.opts.YTickCount)
		yPos := s.area.Bottom - int(ratio*float64(s.area.Height()))
		s.hline(yPos, s.area.Left, s.area.Right, gridColor, 1)
	}
}

func (s *scaleState) drawAxisLabels() error {
	if s.opts.XLabel != "" && s.opts.ShowXAxis {
		x := s.area.Left + s.area.Width()/2
		y := s.height - s.opts.BottomMargin/2
		err := text.StampAt(s.img, s.width, s.height, s.opts.XLabel, s.font,
			s.opts.FontSizePercent, s.opts.TextColor, x, y, text.AnchorCenter)
		if err != nil {
			return err
		}
	}
	if s.opts.YLabel != "" && s.opts.ShowYAxis {
		x := s.opts.LeftMargin / 3
		y := s.area.Top + s.area.Height()/2
		if err := s.stampVertical(s.opts.YLabel, x, y); err != nil {
			return err
		}
	}
	return nil
}

// stampVertical stacks the label's runes top to bottom with a small gap,
// centered on (x, y), standing in for rotated text.
func (s *scaleState) stampVertical(label string, x, y int) error {
	runes := []rune(label)
	if len(runes) == 0 {
		return nil
	}
	_, lineH, err := text.Box(label, s.font, s.height, s.opts.FontSizePercent)
	if err != nil {
		return err
	}

	step := lineH + 2
	total := len(runes)*step - 2
	yPos := y - total/2 + lineH/2
	for _, r := range runes {
		err := text.StampAt(s.img, s.width, s.height, string(r), s.font,
			s.opts.FontSizePercent, s.opts.TextColor, x, yPos, text.AnchorCenter)
		if err != nil {
			return err
		}
		yPos += step
	}
	return nil
}

// formatValue maps and formats one tick value for display.
func (s *scaleState) formatValue(v float64, mapper func(float64) float64) string {
	if mapper != nil {
		v = mapper(v)
	}
	if s.opts.Scientific {
		return strconv.FormatFloat(v, 'e', s.opts.LabelPrecision, 64)
	}
	return strconv.FormatFloat(v, 'f', s.opts.LabelPrecision, 64)
}
