package core

import "testing"

func TestBoxOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        NewBox(0, 0, 10, 10),
			b:        NewBox(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewBox(0, 0, 10, 10),
			b:        NewBox(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "non-overlapping vertical",
			a:        NewBox(0, 0, 10, 10),
			b:        NewBox(0, 15, 10, 10),
			expected: false,
		},
		{
			name:     "touching edges (no overlap)",
			a:        NewBox(0, 0, 10, 10),
			b:        NewBox(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "contained box",
			a:        NewBox(0, 0, 20, 20),
			b:        NewBox(5, 5, 5, 5),
			expected: true,
		},
		{
			name:     "fractional overlap",
			a:        NewBox(0, 0, 10, 10),
			b:        NewBox(9.5, 9.5, 10, 10),
			expected: true,
		},
		{
			name:     "negative coordinates",
			a:        NewBox(-12, -12, 6, 12),
			b:        NewBox(-10, -5, 4, 4),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxClampInside(t *testing.T) {
	tests := []struct {
		name string
		in   Box
		want Box
	}{
		{"inside", NewBox(10, 10, 50, 40), NewBox(10, 10, 50, 40)},
		{"past left", NewBox(-5, 10, 50, 40), NewBox(0, 10, 50, 40)},
		{"past right", NewBox(880, 10, 50, 40), NewBox(850, 10, 50, 40)},
		{"past top", NewBox(10, -3, 50, 40), NewBox(10, 0, 50, 40)},
		{"past bottom", NewBox(10, 640, 50, 40), NewBox(10, 610, 50, 40)},
		{"past corner", NewBox(1000, 1000, 50, 40), NewBox(850, 610, 50, 40)},
		{"larger than bounds", NewBox(5, 5, 1000, 1000), NewBox(0, 0, 1000, 1000)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.ClampInside(900, 650)
			if got != tc.want {
				t.Errorf("ClampInside() = %+v, expected %+v", got, tc.want)
			}
		})
	}
}

func TestBoxEdges(t *testing.T) {
	b := NewBox(5, 10, 20, 15)

	if b.Right() != 25 {
		t.Errorf("Right() = %f, expected 25", b.Right())
	}
	if b.Bottom() != 25 {
		t.Errorf("Bottom() = %f, expected 25", b.Bottom())
	}
	if b.CenterX() != 15 {
		t.Errorf("CenterX() = %f, expected 15", b.CenterX())
	}
}

func TestBoxToCells(t *testing.T) {
	// 900x650 field onto an 90x65 grid
	b := NewBox(425, 580, 50, 40)
	r := b.ToCells(0.1, 0.1)
	if r != NewRect(42, 58, 5, 4) {
		t.Errorf("ToCells() = %+v, expected {42 58 5 4}", r)
	}

	// Tiny boxes still occupy one cell
	tiny := NewBox(100, 100, 2, 2).ToCells(0.1, 0.1)
	if tiny.W != 1 || tiny.H != 1 {
		t.Errorf("ToCells() of a tiny box = %+v, expected 1x1", tiny)
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(5, 10) != 5 {
		t.Error("Min(5, 10) should be 5")
	}
	if Max(5, 10) != 10 {
		t.Error("Max(5, 10) should be 10")
	}
}
