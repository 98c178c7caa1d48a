package plotz

import "testing"

func TestMakeSchemeTwoKeys(t *testing.T) {
	c1 := Color{0, 0, 0, 255}
	c2 := Color{255, 255, 255, 255}
	const steps = 64

	table := MakeScheme([]Color{c1, c2}, steps)
	if len(table) != steps {
		t.Fatalf("len(table) = %d, want %d", len(table), steps)
	}
	if table[0] != c1 {
		t.Errorf("table[0] = %v, want %v", table[0], c1)
	}
	if table[len(table)-1] != c2 {
		t.Errorf("table[last] = %v, want %v", table[len(table)-1], c2)
	}
}

func TestMakeSchemeSegments(t *testing.T) {
	keys := []Color{
		{0, 0, 0, 255},
		{100, 50, 0, 255},
		{200, 100, 0, 255},
	}
	const steps = 16

	table := MakeScheme(keys, steps)
	if want := (len(keys) - 1) * steps; len(table) != want {
		t.Fatalf("len(table) = %d, want %d", len(table), want)
	}
	// Segment boundaries carry the shared key color on both sides.
	if table[steps-1] != keys[1] || table[steps] != keys[1] {
		t.Errorf("boundary = %v / %v, want both %v", table[steps-1], table[steps], keys[1])
	}
}

func TestMakeSchemeMonotoneChannel(t *testing.T) {
	table := MakeScheme([]Color{{0, 0, 0, 255}, {255, 0, 0, 255}}, 128)
	for i := 1; i < len(table); i++ {
		if table[i][0] < table[i-1][0] {
			t.Fatalf("red channel decreases at %d: %d -> %d", i, table[i-1][0], table[i][0])
		}
	}
}

func TestMakeSchemeTooFewKeys(t *testing.T) {
	if got := MakeScheme(nil, 128); got != nil {
		t.Errorf("MakeScheme(nil) = %v, want nil", got)
	}
	if got := MakeScheme([]Color{{1, 2, 3, 4}}, 128); got != nil {
		t.Errorf("MakeScheme(one key) = %v, want nil", got)
	}
}

func TestMakeSchemeStepFloor(t *testing.T) {
	// Degenerate step counts fall back to the default instead of
	// dividing by zero in the interpolation ratio.
	table := MakeScheme([]Color{{0, 0, 0, 255}, {255, 255, 255, 255}}, 1)
	if len(table) != DefaultSteps {
		t.Fatalf("len(table) = %d, want %d", len(table), DefaultSteps)
	}
}

func TestNamedPaletteEndpoints(t *testing.T) {
	tests := []struct {
		name        string
		table       []Color
		first, last Color
	}{
		{"rainbow", Rainbow, Color{148, 0, 211, 255}, Color{255, 0, 0, 255}},
		{"viridis", Viridis, Color{68, 1, 84, 255}, Color{253, 231, 37, 255}},
		{"jet", Jet, Color{0, 0, 131, 255}, Color{128, 0, 0, 255}},
		{"temperature", Temperature, Color{48, 18, 59, 255}, Color{136, 0, 0, 255}},
		{"inferno", Inferno, Color{0, 0, 4, 255}, Color{252, 255, 164, 255}},
		{"turbo", Turbo, Color{48, 18, 59, 255}, Color{136, 0, 0, 255}},
		{"soft", Soft, Color{30, 30, 150, 255}, Color{150, 50, 50, 255}},
		{"pastel", Pastel, Color{151, 136, 157, 255}, Color{195, 127, 127, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.table) == 0 {
				t.Fatal("palette is empty")
			}
			if tt.table[0] != tt.first {
				t.Errorf("first = %v, want %v", tt.table[0], tt.first)
			}
			if got := tt.table[len(tt.table)-1]; got != tt.last {
				t.Errorf("last = %v, want %v", got, tt.last)
			}
			for i, c := range tt.table {
				if c[3] != 255 {
					t.Fatalf("entry %d alpha = %d, want opaque", i, c[3])
				}
			}
		})
	}
}

func TestDefaultScheme(t *testing.T) {
	if len(DefaultScheme()) != len(Temperature) {
		t.Fatal("DefaultScheme must alias the Temperature table")
	}
}
