package text

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"
)

// shapedFont is the go-text parse of a Font's data, cached after first use.
// font.Font is read-only and safe for concurrent use; the lightweight
// font.Face wrappers are created per call.
type shapedFont struct {
	font *font.Font
}

// shaperPool pools HarfbuzzShaper instances. HarfbuzzShaper has internal
// mutable state and is not safe for concurrent use, but reusing instances
// across sequential calls avoids reallocating its buffers.
var shaperPool = sync.Pool{
	New: func() any {
		return &shaping.HarfbuzzShaper{}
	},
}

// Measure returns the shaped advance width of s in pixels at the given
// pixel size. Shaping runs through HarfBuzz, so kerning, ligatures, and
// complex scripts are accounted for; the paragraph direction is resolved
// with the Unicode bidi algorithm. A nil font measures with the built-in
// bitmap face, which has a fixed size. Returns 0 when the font data cannot
// be parsed for shaping.
func Measure(s string, f *Font, ppem float64) float64 {
	if s == "" {
		return 0
	}
	if f == nil {
		return builtinAdvance(s)
	}

	shaped, err := f.shapedFace()
	if err != nil {
		return 0
	}

	runes := []rune(s)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: paragraphDirection(s),
		Face:      font.NewFace(shaped),
		Size:      fixed.Int26_6(ppem * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	shaper := shaperPool.Get().(*shaping.HarfbuzzShaper)
	out := shaper.Shape(input)
	shaperPool.Put(shaper)

	return float64(out.Advance) / 64
}

// shapedFace returns the cached go-text font, parsing the raw data on
// first use.
func (f *Font) shapedFace() (*font.Font, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.shaped != nil {
		return f.shaped.font, nil
	}

	face, err := font.ParseTTF(bytes.NewReader(f.data))
	if err != nil {
		return nil, err
	}
	f.shaped = &shapedFont{font: face.Font}
	return face.Font, nil
}

// paragraphDirection resolves the base direction of s from its first strong
// character.
func paragraphDirection(s string) di.Direction {
	p := bidi.Paragraph{}
	if _, err := p.SetString(s); err == nil && !p.IsLeftToRight() {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

// detectScript returns the script of the first non-space rune. Mixed-script
// strings should be split into runs before shaping; axis labels never are.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
