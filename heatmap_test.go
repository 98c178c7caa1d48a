package plotz

import (
	"errors"
	"math"
	"testing"
)

// TestNewStampValues verifies the procedurally generated radial stamp
// against known radius-4 kernel values.
func TestNewStampValues(t *testing.T) {
	s := NewStamp(4)
	if s.Width() != 9 || s.Height() != 9 {
		t.Fatalf("stamp size = %dx%d, want 9x9", s.Width(), s.Height())
	}

	refs := []struct {
		x, y int
		want float32
	}{
		{4, 4, 1.0},
		{4, 0, 0.2},
		{0, 0, 0.0},
		{1, 0, 0.0},
		{2, 0, 0.1055728},
		{3, 0, 0.1753789},
		{3, 1, 0.3675445},
		{2, 2, 0.4343146},
		{3, 3, 0.7171573},
		{4, 2, 0.6},
	}
	for _, ref := range refs {
		got := s.data[ref.y*s.width+ref.x]
		if math.Abs(float64(got-ref.want)) > 1e-5 {
			t.Errorf("stamp[%d,%d] = %v, want %v", ref.x, ref.y, got, ref.want)
		}
	}
}

// TestNewStampNegativeRadius verifies a negative radius degenerates to
// a single full-intensity cell.
func TestNewStampNegativeRadius(t *testing.T) {
	s := NewStamp(-3)
	if s.Width() != 1 || s.Height() != 1 {
		t.Fatalf("stamp size = %dx%d, want 1x1", s.Width(), s.Height())
	}
	if s.data[0] != 1 {
		t.Errorf("stamp[0,0] = %v, want 1", s.data[0])
	}
}

// TestNewStampShaped verifies the distance-shaping hook changes the
// falloff curve.
func TestNewStampShaped(t *testing.T) {
	s := NewStampShaped(4, func(d float64) float64 { return d * d })

	if got := s.data[4*9+4]; got != 1 {
		t.Errorf("center = %v, want 1", got)
	}
	// At (4,0) the normalized distance is 0.8, so 1 - 0.8^2 = 0.36.
	if got := s.data[0*9+4]; math.Abs(float64(got)-0.36) > 1e-5 {
		t.Errorf("stamp[4,0] = %v, want 0.36", got)
	}
	// Shape outputs above 1 clamp to zero intensity.
	if got := s.data[0*9+0]; got != 0 {
		t.Errorf("corner = %v, want 0", got)
	}
}

// TestNewStampData verifies wrapping raw kernels and its dimension
// validation.
func TestNewStampData(t *testing.T) {
	data := []float32{1, 2, 3, 4, 5, 6}
	s, err := NewStampData(3, 2, data)
	if err != nil {
		t.Fatalf("NewStampData: %v", err)
	}
	if s.Width() != 3 || s.Height() != 2 {
		t.Errorf("stamp size = %dx%d, want 3x2", s.Width(), s.Height())
	}

	invalid := []struct {
		name string
		w, h int
		data []float32
	}{
		{"zero width", 0, 2, nil},
		{"negative height", 3, -1, data},
		{"length mismatch", 3, 2, data[:5]},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewStampData(tt.w, tt.h, tt.data); !errors.Is(err, ErrDimensions) {
				t.Errorf("NewStampData(%d, %d, len %d) error = %v, want ErrDimensions",
					tt.w, tt.h, len(tt.data), err)
			}
		})
	}
}

// singleCellStamp builds a 1x1 stamp so accumulation tests touch
// exactly one buffer cell per point.
func singleCellStamp(t *testing.T, v float32) *Stamp {
	t.Helper()
	s, err := NewStampData(1, 1, []float32{v})
	if err != nil {
		t.Fatalf("NewStampData: %v", err)
	}
	return s
}

// TestHeatmapAccumulates verifies overlapping points add up and the
// running maximum follows.
func TestHeatmapAccumulates(t *testing.T) {
	h, err := NewHeatmap(3, 3, WithStamp(singleCellStamp(t, 1)))
	if err != nil {
		t.Fatalf("NewHeatmap: %v", err)
	}

	h.AddPoint(1, 1)
	h.AddPoint(1, 1)
	h.AddPoint(2, 0)

	if got := h.values[1*3+1]; got != 2 {
		t.Errorf("cell (1,1) = %v, want 2", got)
	}
	if got := h.values[0*3+2]; got != 1 {
		t.Errorf("cell (2,0) = %v, want 1", got)
	}
	if got := h.MaxHeat(); got != 2 {
		t.Errorf("MaxHeat() = %v, want 2", got)
	}
}

// TestHeatmapClipping verifies a stamp centered at the corner touches
// only in-bounds cells.
func TestHeatmapClipping(t *testing.T) {
	h, err := NewHeatmap(10, 10)
	if err != nil {
		t.Fatalf("NewHeatmap: %v", err)
	}
	h.AddPoint(0, 0)

	// The visible quadrant of the radius-4 stamp covers [0,5)x[0,5),
	// with the stamp center landing on the corner cell.
	if got := h.values[0]; got != 1 {
		t.Errorf("corner cell = %v, want 1", got)
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if x < 5 && y < 5 {
				continue
			}
			if got := h.values[y*10+x]; got != 0 {
				t.Errorf("cell (%d,%d) = %v, want 0 outside the clipped stamp", x, y, got)
			}
		}
	}
	if got := h.MaxHeat(); got != 1 {
		t.Errorf("MaxHeat() = %v, want 1", got)
	}
}

// TestHeatmapIgnoresOutOfRange verifies points off the buffer and
// negative weights leave no trace.
func TestHeatmapIgnoresOutOfRange(t *testing.T) {
	h, err := NewHeatmap(4, 4, WithStamp(singleCellStamp(t, 1)))
	if err != nil {
		t.Fatalf("NewHeatmap: %v", err)
	}

	h.AddPoint(-1, 0)
	h.AddPoint(0, -1)
	h.AddPoint(4, 0)
	h.AddPoint(0, 4)
	h.AddPointWeighted(1, 1, -0.5)
	h.AddPointStamp(1, 1, nil, 1)

	for i, v := range h.values {
		if v != 0 {
			t.Fatalf("cell %d = %v after out-of-range adds, want 0", i, v)
		}
	}
	if h.MaxHeat() != 0 {
		t.Errorf("MaxHeat() = %v, want 0", h.MaxHeat())
	}
}

// TestHeatmapWeighted verifies the weight scales every stamp cell.
func TestHeatmapWeighted(t *testing.T) {
	h, err := NewHeatmap(3, 3, WithStamp(singleCellStamp(t, 2)))
	if err != nil {
		t.Fatalf("NewHeatmap: %v", err)
	}

	h.AddPointWeighted(1, 1, 2.5)
	if got := h.values[1*3+1]; got != 5 {
		t.Errorf("cell (1,1) = %v, want 5", got)
	}

	custom := singleCellStamp(t, 4)
	h.AddPointStamp(0, 0, custom, 0.25)
	if got := h.values[0]; got != 1 {
		t.Errorf("cell (0,0) = %v, want 1", got)
	}
}

// TestHeatmapRender verifies normalization against the running
// maximum and the explicit-saturation path.
func TestHeatmapRender(t *testing.T) {
	scheme := []Color{{0, 0, 0, 255}, {128, 128, 128, 255}, {255, 255, 255, 255}}

	h, err := NewHeatmap(2, 1, WithStamp(singleCellStamp(t, 1)))
	if err != nil {
		t.Fatalf("NewHeatmap: %v", err)
	}

	// Empty buffer renders with saturation 1, all cells at scheme[0].
	pix, err := h.Render(scheme)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for i := 0; i < 2; i++ {
		if got := Color(pix[i*4 : i*4+4]); got != scheme[0] {
			t.Errorf("empty pixel %d = %v, want %v", i, got, scheme[0])
		}
	}

	h.AddPoint(1, 0)
	pix, err = h.Render(scheme)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := Color(pix[0:4]); got != scheme[0] {
		t.Errorf("cold pixel = %v, want %v", got, scheme[0])
	}
	if got := Color(pix[4:8]); got != scheme[2] {
		t.Errorf("hot pixel = %v, want %v", got, scheme[2])
	}

	// Doubling the saturation drops the hot cell to the middle entry.
	pix, err = h.RenderSaturated(scheme, 2)
	if err != nil {
		t.Fatalf("RenderSaturated: %v", err)
	}
	if got := Color(pix[4:8]); got != scheme[1] {
		t.Errorf("half-saturated pixel = %v, want %v", got, scheme[1])
	}
}

// TestHeatmapRenderErrors verifies the render precondition errors.
func TestHeatmapRenderErrors(t *testing.T) {
	h, err := NewHeatmap(2, 2)
	if err != nil {
		t.Fatalf("NewHeatmap: %v", err)
	}

	if _, err := h.Render(nil); !errors.Is(err, ErrScheme) {
		t.Errorf("Render(nil) error = %v, want ErrScheme", err)
	}
	if _, err := h.RenderSaturated(DefaultScheme(), 0); !errors.Is(err, ErrSaturation) {
		t.Errorf("RenderSaturated(_, 0) error = %v, want ErrSaturation", err)
	}
	if _, err := h.RenderSaturated(DefaultScheme(), -3); !errors.Is(err, ErrSaturation) {
		t.Errorf("RenderSaturated(_, -3) error = %v, want ErrSaturation", err)
	}
	if _, err := h.RenderSaturated(DefaultScheme(), math.NaN()); !errors.Is(err, ErrSaturation) {
		t.Errorf("RenderSaturated(_, NaN) error = %v, want ErrSaturation", err)
	}
}

// TestHeatmapReset verifies reset clears the buffer and maximum.
func TestHeatmapReset(t *testing.T) {
	h, err := NewHeatmap(3, 3)
	if err != nil {
		t.Fatalf("NewHeatmap: %v", err)
	}
	h.AddPoint(1, 1)
	h.Reset()

	for i, v := range h.values {
		if v != 0 {
			t.Fatalf("cell %d = %v after Reset, want 0", i, v)
		}
	}
	if h.MaxHeat() != 0 {
		t.Errorf("MaxHeat() = %v after Reset, want 0", h.MaxHeat())
	}
}

// TestNewHeatmapErrors verifies dimension validation.
func TestNewHeatmapErrors(t *testing.T) {
	if _, err := NewHeatmap(0, 5); !errors.Is(err, ErrDimensions) {
		t.Errorf("NewHeatmap(0, 5) error = %v, want ErrDimensions", err)
	}
	if _, err := NewHeatmap(5, -1); !errors.Is(err, ErrDimensions) {
		t.Errorf("NewHeatmap(5, -1) error = %v, want ErrDimensions", err)
	}
}

// BenchmarkHeatmapAddPoint measures default-stamp accumulation.
func BenchmarkHeatmapAddPoint(b *testing.B) {
	h, err := NewHeatmap(512, 512)
	if err != nil {
		b.Fatalf("NewHeatmap: %v", err)
	}
	x, y := 0, 0
	for b.Loop() {
		h.AddPoint(x, y)
		x = (x + 37) % 512
		y = (y + 19) % 512
	}
}
