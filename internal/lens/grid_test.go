package lens

import (
	"math"
	"testing"
)

func TestNewUniformCoords(t *testing.T) {
	g, err := NewUniform([2]int{3, 3}, 1.0, 1)
	if err != nil {
		t.Fatalf("grid failed: %v", err)
	}

	if g.SubLen() != 9 {
		t.Fatalf("expected 9 coords, got %d", g.SubLen())
	}

	// Centre pixel sits on the origin, row 0 holds max y.
	centre := g.Coords()[4]
	if centre.Y != 0 || centre.X != 0 {
		t.Errorf("centre should be origin, got (%f, %f)", centre.Y, centre.X)
	}
	topLeft := g.Coords()[0]
	if topLeft.Y != 1.0 || topLeft.X != -1.0 {
		t.Errorf("top-left should be (1, -1), got (%f, %f)", topLeft.Y, topLeft.X)
	}
}

func TestNewUniformInvalid(t *testing.T) {
	tests := []struct {
		name  string
		shape [2]int
		scale float64
		sub   int
	}{
		{"zero rows", [2]int{0, 3}, 1.0, 1},
		{"zero sub", [2]int{3, 3}, 1.0, 0},
		{"zero scale", [2]int{3, 3}, 0, 1},
		{"negative scale", [2]int{3, 3}, -0.1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewUniform(tt.shape, tt.scale, tt.sub); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestAxesSpacing(t *testing.T) {
	g, _ := NewUniform([2]int{4, 6}, 0.5, 2)

	ys := g.AxisY()
	xs := g.AxisX()

	if len(ys) != 8 || len(xs) != 12 {
		t.Fatalf("expected 8x12 sub axes, got %dx%d", len(ys), len(xs))
	}

	// Sub-grid spacing is pixel scale over sub size; y descends, x ascends.
	if math.Abs((ys[0]-ys[1])-0.25) > 1e-12 {
		t.Errorf("y spacing: got %f, expected 0.25", ys[0]-ys[1])
	}
	if math.Abs((xs[1]-xs[0])-0.25) > 1e-12 {
		t.Errorf("x spacing: got %f, expected 0.25", xs[1]-xs[0])
	}
}

func TestBinArray(t *testing.T) {
	g, _ := NewUniform([2]int{2, 2}, 1.0, 2)

	sub := Zeros(g.SubLen())
	// Fill the top-left native pixel's four sub-pixels.
	sub[0], sub[1], sub[4], sub[5] = 1, 2, 3, 4

	binned := g.BinArray(sub)
	if len(binned) != 4 {
		t.Fatalf("expected 4 native pixels, got %d", len(binned))
	}
	if math.Abs(binned[0]-2.5) > 1e-12 {
		t.Errorf("expected mean 2.5, got %f", binned[0])
	}
	for i := 1; i < 4; i++ {
		if binned[i] != 0 {
			t.Errorf("pixel %d should be zero, got %f", i, binned[i])
		}
	}
}

func TestBinCoords(t *testing.T) {
	g, _ := NewUniform([2]int{1, 1}, 1.0, 2)

	sub := Coords{{1, 0}, {3, 2}, {5, 4}, {7, 6}}
	binned := g.BinCoords(sub)

	if len(binned) != 1 {
		t.Fatalf("expected 1 native vector, got %d", len(binned))
	}
	if math.Abs(binned[0].Y-4) > 1e-12 || math.Abs(binned[0].X-3) > 1e-12 {
		t.Errorf("expected (4, 3), got (%f, %f)", binned[0].Y, binned[0].X)
	}
}

func TestPhysicalFromContour(t *testing.T) {
	g, _ := NewUniform([2]int{5, 5}, 1.0, 1)

	// The central pixel index maps back to the origin.
	coords := g.PhysicalFromContour([][2]float64{{2, 2}})
	if coords[0].Y != 0 || coords[0].X != 0 {
		t.Errorf("expected origin, got (%f, %f)", coords[0].Y, coords[0].X)
	}

	coords = g.PhysicalFromContour([][2]float64{{0, 4}})
	if coords[0].Y != 2 || coords[0].X != 2 {
		t.Errorf("expected (2, 2), got (%f, %f)", coords[0].Y, coords[0].X)
	}
}

func TestBlurringRing(t *testing.T) {
	g, _ := NewUniform([2]int{4, 4}, 1.0, 1)

	ring := g.Blurring([2]int{3, 3})

	want := 6*6 - 4*4
	if len(ring) != want {
		t.Fatalf("expected %d ring pixels, got %d", want, len(ring))
	}

	// First ring pixel is the top-left corner of the padded frame.
	first := ring[0]
	if math.Abs(first.Y-2.5) > 1e-12 || math.Abs(first.X+2.5) > 1e-12 {
		t.Errorf("expected (2.5, -2.5), got (%f, %f)", first.Y, first.X)
	}
}

func TestArrayHelpers(t *testing.T) {
	a := Array{1, math.NaN(), 3}
	if a.IsValid() {
		t.Error("NaN array should be invalid")
	}

	b := Array{1, 2, 3}
	if !b.IsValid() {
		t.Error("finite array should be valid")
	}
	if b.Max() != 3 {
		t.Errorf("expected max 3, got %f", b.Max())
	}

	scaled := b.Scale(2)
	if scaled[2] != 6 {
		t.Errorf("expected 6, got %f", scaled[2])
	}
}

func TestCoordsSub(t *testing.T) {
	a := Coords{{2, 3}, {4, 5}}
	b := Coords{{1, 1}, {1, 2}}

	diff := a.Sub(b)
	if diff[0] != (Coord{1, 2}) || diff[1] != (Coord{3, 3}) {
		t.Errorf("unexpected difference: %v", diff)
	}
}
