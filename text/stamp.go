package text

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Anchor selects how a stamped string is placed relative to the given point.
type Anchor int

const (
	// AnchorCenter centers the text box on the point.
	AnchorCenter Anchor = iota
	// AnchorLeft puts the point at the left edge, vertically centered.
	AnchorLeft
	// AnchorRight puts the point at the right edge, vertically centered.
	AnchorRight
)

// Stamp draws s horizontally centered near the bottom edge of an RGBA
// buffer, sized as a percentage of the image height (clamped to 1..100).
// The glyph coverage is alpha-blended over the existing pixels; the alpha
// channel of color is ignored. A nil font uses the built-in bitmap face.
func Stamp(img []uint8, width, height int, s string, f *Font, sizePercent float64, color [4]uint8) error {
	face, err := faceFor(f, height, sizePercent)
	if err != nil {
		return err
	}

	textW, ascent, textH := textBox(face, s)
	if textW == 0 {
		return nil
	}

	left := max(0, (width-textW)/2)
	baseline := min(height, max(0, height-(height+textH)/10))
	stampMask(img, width, height, s, face, color, left, baseline-ascent)
	return nil
}

// StampAt draws s anchored at the pixel (x, y), sized as a percentage of
// the image height (clamped to 1..100). Pixels falling outside the buffer
// are dropped. The alpha channel of color is ignored. A nil font uses the
// built-in bitmap face.
func StampAt(img []uint8, width, height int, s string, f *Font, sizePercent float64, color [4]uint8, x, y int, anchor Anchor) error {
	face, err := faceFor(f, height, sizePercent)
	if err != nil {
		return err
	}

	textW, _, textH := textBox(face, s)
	if textW == 0 {
		return nil
	}

	left := x
	switch anchor {
	case AnchorCenter:
		left = x - textW/2
	case AnchorRight:
		left = x - textW
	}
	stampMask(img, width, height, s, face, color, left, y-textH/2)
	return nil
}

// Box returns the stamped text box size in pixels for s at the given image
// height and size percentage. StampAt anchors with the same measurement, so
// callers can reserve layout space for labels before drawing them.
func Box(s string, f *Font, height int, sizePercent float64) (w, h int, err error) {
	face, err := faceFor(f, height, sizePercent)
	if err != nil {
		return 0, 0, err
	}
	textW, _, textH := textBox(face, s)
	return textW, textH, nil
}

// faceFor resolves the rasterizer face for a stamp call. The size is
// sizePercent of the image height; nil fonts get the fixed-size built-in
// face instead.
func faceFor(f *Font, height int, sizePercent float64) (font.Face, error) {
	if f == nil {
		return basicfont.Face7x13, nil
	}
	sizePercent = min(100, max(1, sizePercent))
	return f.face(int(float64(height) * sizePercent / 100))
}

// builtinAdvance measures s with the built-in bitmap face.
func builtinAdvance(s string) float64 {
	return float64(font.MeasureString(basicfont.Face7x13, s)) / 64
}

// textBox measures s with the rasterizer's own metrics so the mask matches
// what the drawer emits. Returns advance width, ascent, and line height in
// whole pixels.
func textBox(face font.Face, s string) (textW, ascent, textH int) {
	if s == "" {
		return 0, 0, 0
	}
	m := face.Metrics()
	ascent = m.Ascent.Ceil()
	textH = ascent + m.Descent.Ceil()
	textW = font.MeasureString(face, s).Ceil()
	return textW, ascent, textH
}

// stampMask rasterizes s into an alpha mask and blends it over img with the
// text box's top-left corner at (left, top).
func stampMask(img []uint8, width, height int, s string, face font.Face, color [4]uint8, left, top int) {
	textW, ascent, textH := textBox(face, s)

	mask := image.NewAlpha(image.Rect(0, 0, textW, textH))
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.White,
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: fixed.I(ascent)},
	}
	d.DrawString(s)

	for my := 0; my < textH; my++ {
		py := top + my
		if py < 0 || py >= height {
			continue
		}
		row := mask.Pix[my*mask.Stride : my*mask.Stride+textW]
		for mx, a := range row {
			if a == 0 {
				continue
			}
			px := left + mx
			if px < 0 || px >= width {
				continue
			}
			idx := (py*width + px) * 4
			inv := 255 - int(a)
			img[idx] = uint8((int(img[idx])*inv + int(color[0])*int(a)) / 255)
			img[idx+1] = uint8((int(img[idx+1])*inv + int(color[1])*int(a)) / 255)
			img[idx+2] = uint8((int(img[idx+2])*inv + int(color[2])*int(a)) / 255)
			img[idx+3] = uint8(min(255, int(img[idx+3])+int(a)))
		}
	}
}
