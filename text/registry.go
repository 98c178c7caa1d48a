package text

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Sentinel errors for the text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrUnknownFamily is returned when Lookup finds no registered font.
	ErrUnknownFamily = errors.New("text: font family not registered")
)

// Style selects a variant within a font family.
type Style int

const (
	StyleRegular Style = iota
	StyleBold
	StyleItalic
	StyleBoldItalic
)

// String returns the style name.
func (s Style) String() string {
	switch s {
	case StyleRegular:
		return "regular"
	case StyleBold:
		return "bold"
	case StyleItalic:
		return "italic"
	case StyleBoldItalic:
		return "bold italic"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

// Font is a loaded font. It keeps the raw data alongside the parsed form so
// the shaping backend can parse it independently, and caches rasterizer
// faces per pixel size.
//
// A Font is created through a Registry and shared; the face cache is
// mutex-protected, but an individual cached face must not be drawn with from
// two goroutines at once.
type Font struct {
	data   []byte
	parsed *opentype.Font
	family string
	style  Style

	mu     sync.Mutex
	faces  map[int]font.Face
	shaped *shapedFont
}

// Family returns the font family name.
func (f *Font) Family() string { return f.family }

// Style returns the registered style.
func (f *Font) Style() Style { return f.style }

// face returns a rasterizer face at the given pixel size, building and
// caching it on first use.
func (f *Font) face(size int) (font.Face, error) {
	if size < 1 {
		size = 1
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if face, ok := f.faces[size]; ok {
		return face, nil
	}

	face, err := opentype.NewFace(f.parsed, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("text: failed to build %dpx face for %q: %w", size, f.family, err)
	}
	f.faces[size] = face
	return face, nil
}

// Registry is an owned font store mapping family names to loaded fonts.
// Pass one Registry through the code that needs text; there is no package
// level registry. Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	fonts map[string]map[Style]*Font
}

// NewRegistry creates an empty font registry.
func NewRegistry() *Registry {
	return &Registry{fonts: make(map[string]map[Style]*Font)}
}

// RegisterData parses TTF or OTF data and registers it under the given
// family and style. An empty family derives the name from the font's own
// name table. The data slice is copied and can be reused after this call.
func (r *Registry) RegisterData(data []byte, family string, style Style) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}

	if family == "" {
		family = fontFamilyName(parsed)
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	f := &Font{
		data:   dataCopy,
		parsed: parsed,
		family: family,
		style:  style,
		faces:  make(map[int]font.Face),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	styles, ok := r.fonts[family]
	if !ok {
		styles = make(map[Style]*Font)
		r.fonts[family] = styles
	}
	styles[style] = f

	return f, nil
}

// RegisterFile loads a font file and registers it under the family name from
// its name table.
func (r *Registry) RegisterFile(path string, style Style) (*Font, error) {
	// #nosec G304 -- font file path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}
	return r.RegisterData(data, "", style)
}

// Lookup returns the registered font for family and style. If the exact
// style is missing it falls back to StyleRegular, then to any style of the
// family. Returns ErrUnknownFamily when the family has no fonts at all.
func (r *Registry) Lookup(family string, style Style) (*Font, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	styles, ok := r.fonts[family]
	if !ok || len(styles) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, family)
	}
	if f, ok := styles[style]; ok {
		return f, nil
	}
	if f, ok := styles[StyleRegular]; ok {
		return f, nil
	}
	for _, f := range styles {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, family)
}

// Families returns the registered family names in sorted order.
func (r *Registry) Families() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.fonts))
	for name := range r.fonts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// fontFamilyName extracts the family name from the parsed font's name
// table, falling back to the full name.
func fontFamilyName(parsed *opentype.Font) string {
	if name, err := parsed.Name(nil, sfnt.NameIDFamily); err == nil && name != "" {
		return name
	}
	if name, err := parsed.Name(nil, sfnt.NameIDFull); err == nil && name != "" {
		return name
	}
	return "unknown"
}
