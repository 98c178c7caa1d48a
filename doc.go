// Package plotz renders 2D data plots into raw RGBA pixel buffers and
// encodes them as PNG files.
//
// # Overview
//
// plotz is built around accumulate-then-render engines. Each engine
// owns a float32 value buffer: points or samples are added one at a
// time, then a single Render call normalizes the buffer and maps every
// value through a color scheme lookup table.
//
// # Quick Start
//
//	import "github.com/openalgz/plotz"
//
//	hm, _ := plotz.NewHeatmap(1024, 1024)
//	hm.AddPoint(512, 512)
//	hm.AddPointWeighted(300, 700, 2.5)
//
//	pix, _ := hm.Render(plotz.DefaultScheme())
//	_ = plotz.SavePNG("heatmap.png", pix, hm.Width(), hm.Height())
//
// # Engines
//
//   - Heatmap: point density, each point splats a radial stamp.
//   - Magnitude: direct per-pixel scalar field.
//   - MagnitudeMapped: coarse data grid scaled up to image blocks.
//   - MagnitudeGrid: rows x cols of mapped plots in one image.
//   - Spectrum: frequency-bin bars with optional peak indicators.
//
// All engines share one normalization law, so rendering two plots with
// the same explicit saturation gives them a comparable color mapping.
//
// # PNG Encoding
//
// SavePNG and EncodePNG write 8-bit images through the module's own
// encoder: chunk framing, adaptive row filtering, DEFLATE compression,
// and checksums are implemented here rather than delegated to
// image/png.
//
// # Overlays
//
// DrawScales draws axis lines, ticks, grid lines, and numeric labels
// over a rendered buffer. Label text comes from the text subpackage,
// which shapes runs with HarfBuzz for measurement and rasterizes glyph
// masks onto the pixel buffer.
//
// # Coordinate System
//
// Uses standard raster coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// # Concurrency
//
// Engines are single-writer: adding points and rendering must not be
// called concurrently. Color scheme tables and rendered buffers are
// plain data and safe to share once built.
package plotz

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
