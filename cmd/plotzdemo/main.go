// Command plotzdemo renders a gallery of sample plots, one scene per
// render engine, and saves each as a PNG file.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/openalgz/plotz"
	"github.com/openalgz/plotz/text"
	"golang.org/x/image/font/gofont/goregular"
)

func main() {
	var (
		out     = flag.String("out", ".", "output directory")
		size    = flag.Int("size", 1024, "base image size in pixels")
		verbose = flag.Bool("v", false, "log library debug detail")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	plotz.SetLogger(logger)

	if err := os.MkdirAll(*out, 0o750); err != nil {
		slog.Error("create output directory", "dir", *out, "err", err)
		os.Exit(1)
	}

	reg := text.NewRegistry()
	if _, err := reg.RegisterData(goregular.TTF, "Go", text.StyleRegular); err != nil {
		slog.Error("register demo font", "err", err)
		os.Exit(1)
	}

	scenes := []struct {
		name   string
		render func(dir string, size int, reg *text.Registry) error
	}{
		{"spiral heatmap", renderHeatmap},
		{"ripple magnitude", renderRipple},
		{"mandelbrot mapped", renderMandelbrot},
		{"lissajous grid", renderLissajousGrid},
		{"spectrum frames", renderSpectrumFrames},
		{"palette sheet", renderPaletteSheet},
		{"scales overlay", renderScalesOverlay},
	}
	for _, sc := range scenes {
		if err := sc.render(*out, *size, reg); err != nil {
			slog.Error("scene failed", "scene", sc.name, "err", err)
			os.Exit(1)
		}
	}
	slog.Info("demo complete", "scenes", len(scenes), "dir", *out)
}

// save writes pix to dir/name as a PNG and logs the result.
func save(dir, name string, pix []uint8, width, height int) error {
	path := filepath.Join(dir, name)
	if err := plotz.SavePNG(path, pix, width, height); err != nil {
		return err
	}
	slog.Info("wrote", "path", path, "width", width, "height", height)
	return nil
}

// spiralPoints traces numPoints points along a spiral that winds turns
// times from the center of a width x height square to its edge.
func spiralPoints(width, height, numPoints int, turns float64) [][2]float64 {
	pts := make([][2]float64, 0, numPoints)
	cx := float64(width) / 2
	cy := float64(height) / 2
	maxRadius := math.Min(float64(width), float64(height)) / 2
	for i := range numPoints {
		t := float64(i) / float64(numPoints)
		angle := turns * 2 * math.Pi * t
		radius := maxRadius * t
		pts = append(pts, [2]float64{cx + radius*math.Cos(angle), cy + radius*math.Sin(angle)})
	}
	return pts
}

// renderHeatmap splats one spiral twice: once with the default stamp
// and weights ramping up along the curve, once with a wider stamp whose
// squared falloff keeps a broad hot core around each point.
func renderHeatmap(dir string, size int, reg *text.Registry) error {
	const (
		numPoints = 4000
		turns     = 10
	)
	pts := spiralPoints(size, size, numPoints, turns)

	hm, err := plotz.NewHeatmap(size, size)
	if err != nil {
		return err
	}
	for i, p := range pts {
		weight := 0.25 + 0.75*float32(i)/numPoints
		hm.AddPointWeighted(int(p[0]), int(p[1]), weight)
	}
	pix, err := hm.Render(plotz.DefaultScheme())
	if err != nil {
		return err
	}
	if err := save(dir, "heatmap.png", pix, hm.Width(), hm.Height()); err != nil {
		return err
	}

	soft, err := plotz.NewHeatmap(size, size, plotz.WithStamp(
		plotz.NewStampShaped(9, func(d float64) float64 { return d * d })))
	if err != nil {
		return err
	}
	for _, p := range pts {
		soft.AddPoint(int(p[0]), int(p[1]))
	}
	pix, err = soft.Render(plotz.Viridis)
	if err != nil {
		return err
	}
	return save(dir, "heatmap_soft.png", pix, soft.Width(), soft.Height())
}

// renderRipple fills a magnitude plot with concentric sine rings
// radiating from the image center.
func renderRipple(dir string, size int, reg *text.Registry) error {
	plot, err := plotz.NewMagnitude(size, size)
	if err != nil {
		return err
	}
	cx := float64(size) / 2
	cy := float64(size) / 2
	maxDist := math.Hypot(cx, cy)
	const frequency = 20
	for y := range size {
		for x := range size {
			dist := math.Hypot(float64(x)-cx, float64(y)-cy)
			plot.AddPoint(x, y, float32((math.Sin(dist/maxDist*frequency)+1)/2))
		}
	}
	pix, err := plot.Render(plotz.Viridis)
	if err != nil {
		return err
	}
	font, err := reg.Lookup("Go", text.StyleRegular)
	if err != nil {
		return err
	}
	if err := text.Stamp(pix, size, size, "Ripple Interference", font, 3, plotz.White); err != nil {
		return err
	}
	return save(dir, "ripple.png", pix, plot.Width(), plot.Height())
}

// renderMandelbrot computes escape-time iteration counts on a coarse
// grid and lets the mapped plot scale the blocks up to image size.
func renderMandelbrot(dir string, size int, reg *text.Registry) error {
	const (
		inW     = 224
		inH     = 128
		maxIter = 96
	)
	imgW := size
	imgH := size * inH / inW
	plot, err := plotz.NewMagnitudeMapped(inW, inH, imgW, imgH)
	if err != nil {
		return err
	}
	for py := range inH {
		for px := range inW {
			x0 := float64(px)/inW*3.5 - 2.5
			y0 := float64(py)/inH*2.0 - 1.0
			var x, y float64
			iter := 0
			for x*x+y*y <= 4 && iter < maxIter {
				x, y = x*x-y*y+x0, 2*x*y+y0
				iter++
			}
			plot.AddPoint(px, py, float32(iter))
		}
	}
	pix, err := plot.Render(plotz.Inferno)
	if err != nil {
		return err
	}
	font, err := reg.Lookup("Go", text.StyleRegular)
	if err != nil {
		return err
	}
	if err := text.Stamp(pix, imgW, imgH, "Mandelbrot escape time", font, 2, plotz.White); err != nil {
		return err
	}
	return save(dir, "mandelbrot.png", pix, imgW, imgH)
}

// renderLissajousGrid traces four frequency ratios into a 2x2 grid,
// brightening each curve along its parameter so direction is visible.
func renderLissajousGrid(dir string, size int, reg *text.Registry) error {
	const (
		cell      = 256
		numPoints = 6000
	)
	half := size / 2
	grid, err := plotz.NewMagnitudeGrid(2, 2, cell, cell, half, half)
	if err != nil {
		return err
	}
	params := [4][2]float64{{1, 2}, {3, 2}, {3, 4}, {5, 4}}
	for i, p := range params {
		row, col := i/2, i%2
		a, b := p[0], p[1]
		for j := range numPoints {
			t := float64(j) / numPoints * 2 * math.Pi
			x := 0.5*cell + 0.45*cell*math.Sin(a*t+math.Pi/2)
			y := 0.5*cell + 0.45*cell*math.Sin(b*t)
			grid.AddPoint(row, col, int(x), int(y), 0.3+0.7*float32(j)/numPoints)
		}
	}
	pix, err := grid.Render(plotz.Turbo)
	if err != nil {
		return err
	}
	font, err := reg.Lookup("Go", text.StyleRegular)
	if err != nil {
		return err
	}
	for i, p := range params {
		row, col := i/2, i%2
		label := fmt.Sprintf("%g:%g", p[0], p[1])
		x := col*half + half/2
		y := row*half + half - 28
		if err := text.StampAt(pix, grid.Width(), grid.Height(), label, font, 2, plotz.White, x, y, text.AnchorCenter); err != nil {
			return err
		}
	}
	return save(dir, "lissajous.png", pix, grid.Width(), grid.Height())
}

// gaussian is a unit-height bump centered at mu with width sigma.
func gaussian(x, mu, sigma float64) float64 {
	d := (x - mu) / sigma
	return math.Exp(-d * d / 2)
}

// renderSpectrumFrames feeds eight synthetic analyzer frames through
// one spectrum: a bump sweeping left to right, a pulsing band, and a
// seeded noise floor. Saturation is pinned so frames share one color
// mapping and the decaying peak row trails the sweep.
func renderSpectrumFrames(dir string, size int, reg *text.Registry) error {
	const (
		numBins = 48
		frames  = 8
	)
	width, height := size, size*9/16
	spec, err := plotz.NewSpectrum(numBins, width, height,
		plotz.WithBarStyle(plotz.BarStyleSegmented),
		plotz.WithPeaks(0.04),
		plotz.WithSmoothing(0.4),
		plotz.WithBackground(plotz.Color{10, 12, 20, 255}),
	)
	if err != nil {
		return err
	}
	rng := rand.New(rand.NewPCG(7, 9))
	values := make([]float32, numBins)
	for frame := range frames {
		t := float64(frame) / frames
		for b := range numBins {
			pos := float64(b) / float64(numBins-1)
			sweep := gaussian(pos, 0.1+0.8*t, 0.06)
			pulse := (0.5 + 0.5*math.Sin(2*math.Pi*t)) * gaussian(pos, 0.72, 0.1)
			values[b] = float32(sweep + 0.8*pulse + 0.05*rng.Float64())
		}
		spec.Update(values)
		pix, err := spec.RenderSaturated(plotz.Jet, 1.2)
		if err != nil {
			return err
		}
		name := fmt.Sprintf("spectrum_%02d.png", frame)
		if err := save(dir, name, pix, spec.Width(), spec.Height()); err != nil {
			return err
		}
	}
	return nil
}

// renderPaletteSheet lays every named color scheme out as a labeled
// horizontal strip.
func renderPaletteSheet(dir string, size int, reg *text.Registry) error {
	schemes := []struct {
		name  string
		table []plotz.Color
	}{
		{"Rainbow", plotz.Rainbow},
		{"Viridis", plotz.Viridis},
		{"Jet", plotz.Jet},
		{"Soft", plotz.Soft},
		{"Inferno", plotz.Inferno},
		{"Turbo", plotz.Turbo},
		{"Pastel", plotz.Pastel},
		{"Temperature", plotz.Temperature},
	}
	const stripH = 72
	width := size
	height := stripH * len(schemes)
	pix := make([]uint8, width*height*4)
	for s, sc := range schemes {
		for x := range width {
			c := sc.table[x*(len(sc.table)-1)/(width-1)]
			for y := s * stripH; y < (s+1)*stripH; y++ {
				copy(pix[(y*width+x)*4:], c[:])
			}
		}
	}
	font, err := reg.Lookup("Go", text.StyleRegular)
	if err != nil {
		return err
	}
	for s, sc := range schemes {
		if err := text.StampAt(pix, width, height, sc.name, font, 2.2, plotz.White, 16, s*stripH+stripH/2, text.AnchorLeft); err != nil {
			return err
		}
	}
	return save(dir, "palettes.png", pix, width, height)
}

// renderScalesOverlay draws a standing-wave field and overlays grid,
// ticks, and axis titles mapped to physical units via the data rect.
func renderScalesOverlay(dir string, size int, reg *text.Registry) error {
	width, height := size, size*3/4
	plot, err := plotz.NewMagnitude(width, height)
	if err != nil {
		return err
	}
	for y := range height {
		for x := range width {
			u := float64(x) / float64(width) * 4 * math.Pi
			v := float64(y) / float64(height) * 3 * math.Pi
			plot.AddPoint(x, y, float32((math.Sin(u)*math.Cos(v)+1)/2))
		}
	}
	plot.SetDataRect(plotz.Rect{MaxX: 2.5, MaxY: 8})
	plot.SetAxisLabels("time (s)", "frequency (kHz)")

	opts := plotz.DefaultScaleOptions()
	opts.GridLines = true
	opts.ShowAxisLabels = true
	opts.FontFamily = "Go"
	opts.FontSizePercent = 2.2
	pix, err := plotz.RenderWithScales(plot, plotz.Soft, reg, opts)
	if err != nil {
		return err
	}
	return save(dir, "scales.png", pix, width, height)
}
