// Package text stamps alpha-blended strings onto raw RGBA buffers.
//
// Fonts are held in an explicitly passed Registry rather than process-wide
// state, so two renderers never share a font cache by accident:
//
//	reg := text.NewRegistry()
//	font, err := reg.RegisterData(goregular.TTF, "", text.StyleRegular)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = text.StampAt(pix, w, h, "42.00", font, 2.0, color, x, y, text.AnchorCenter)
//
// Stamp sizes are given as a percentage of the target image height, so the
// same overlay code scales with the plot it is drawn onto. Measurement uses
// HarfBuzz shaping via go-text/typesetting; rasterization uses
// golang.org/x/image/font. A nil *Font falls back to a built-in bitmap face,
// so labels degrade rather than fail when no font is registered.
package text
