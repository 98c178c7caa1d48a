package plotz

// Color is one RGBA sample with 8-bit channels.
type Color [4]uint8

// Basic colors used by overlay defaults.
var (
	White = Color{255, 255, 255, 255}
	Black = Color{0, 0, 0, 255}
)

// DefaultSteps is the number of interpolated samples generated between
// each pair of adjacent key colors.
const DefaultSteps = 128

// interpolateColors fills dst with steps samples blending c1 into c2.
// steps must be at least 2 (the ratio divides by steps-1); MakeScheme
// guarantees this for public callers.
func interpolateColors(dst []Color, c1, c2 Color, steps int) {
	for i := range steps {
		ratio := float64(i) / float64(steps-1)
		for ch := range 4 {
			dst[i][ch] = uint8(float64(c1[ch]) + ratio*float64(int(c2[ch])-int(c1[ch])) + 0.5)
		}
	}
}

// MakeScheme builds a flat color lookup table from ordered key colors:
// for each adjacent key pair it appends stepsBetweenKeys interpolated
// samples, so the result has (len(keys)-1)*stepsBetweenKeys entries.
// Segment boundaries repeat the shared key color. Returns nil when
// fewer than two keys are given. stepsBetweenKeys below 2 is treated
// as DefaultSteps.
func MakeScheme(keys []Color, stepsBetweenKeys int) []Color {
	if len(keys) < 2 {
		return nil
	}
	if stepsBetweenKeys < 2 {
		stepsBetweenKeys = DefaultSteps
	}

	segments := len(keys) - 1
	table := make([]Color, segments*stepsBetweenKeys)
	for s := range segments {
		interpolateColors(table[s*stepsBetweenKeys:(s+1)*stepsBetweenKeys], keys[s], keys[s+1], stepsBetweenKeys)
	}
	return table
}

// Named color schemes. Each is a ready-to-use lookup table built from
// its key palette with DefaultSteps samples per segment. Temperature is
// the conventional default for the render engines.
var (
	Rainbow = MakeScheme([]Color{
		{148, 0, 211, 255}, // violet
		{75, 0, 130, 255},  // indigo
		{0, 0, 255, 255},   // blue
		{0, 255, 0, 255},   // green
		{255, 255, 0, 255}, // yellow
		{255, 127, 0, 255}, // orange
		{255, 0, 0, 255},   // red
	}, DefaultSteps)

	Viridis = MakeScheme([]Color{
		{68, 1, 84, 255},
		{72, 35, 116, 255},
		{64, 67, 135, 255},
		{52, 94, 141, 255},
		{33, 145, 140, 255},
		{94, 201, 98, 255},
		{253, 231, 37, 255},
	}, DefaultSteps)

	Jet = MakeScheme([]Color{
		{0, 0, 131, 255},
		{0, 60, 170, 255},
		{5, 255, 255, 255},
		{255, 255, 0, 255},
		{250, 0, 0, 255},
		{128, 0, 0, 255},
	}, DefaultSteps)

	Soft = MakeScheme([]Color{
		{30, 30, 150, 255},
		{50, 50, 200, 255},
		{50, 120, 220, 255},
		{180, 180, 180, 255},
		{220, 140, 80, 255},
		{200, 80, 80, 255},
		{150, 50, 50, 255},
	}, DefaultSteps)

	Inferno = MakeScheme([]Color{
		{0, 0, 4, 255},
		{68, 1, 84, 255},
		{148, 64, 161, 255},
		{236, 112, 199, 255},
		{253, 181, 98, 255},
		{253, 231, 37, 255},
		{252, 255, 164, 255},
	}, DefaultSteps)

	Turbo = MakeScheme([]Color{
		{48, 18, 59, 255},
		{49, 54, 149, 255},
		{33, 113, 181, 255},
		{94, 201, 98, 255},
		{253, 231, 37, 255},
		{224, 163, 0, 255},
		{136, 0, 0, 255},
	}, DefaultSteps)

	Pastel = MakeScheme([]Color{
		{151, 136, 157, 255},
		{152, 154, 202, 255},
		{144, 184, 218, 255},
		{174, 228, 176, 255},
		{254, 243, 146, 255},
		{239, 209, 128, 255},
		{195, 127, 127, 255},
	}, DefaultSteps)

	Temperature = MakeScheme([]Color{
		{48, 18, 59, 255},   // dark purple
		{49, 54, 149, 255},  // blue
		{253, 231, 37, 255}, // yellow
		{224, 163, 0, 255},  // orange
		{136, 0, 0, 255},    // dark red
	}, DefaultSteps)
)

// DefaultScheme returns the Temperature lookup table.
func DefaultScheme() []Color {
	return Temperature
}
