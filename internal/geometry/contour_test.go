package geometry

import (
	"math"
	"testing"
)

// radialField builds f(r, c) = level0 - distance from the field centre.
func radialField(rows, cols int, level0 float64) [][]float64 {
	cy, cx := float64(rows-1)/2, float64(cols-1)/2
	field := make([][]float64, rows)
	for r := range field {
		field[r] = make([]float64, cols)
		for c := range field[r] {
			dr, dc := float64(r)-cy, float64(c)-cx
			field[r][c] = level0 - math.Hypot(dr, dc)
		}
	}
	return field
}

func TestFindContoursCircle(t *testing.T) {
	field := radialField(41, 41, 10.0)

	paths := findContours(field, 0)
	if len(paths) == 0 {
		t.Fatal("expected a contour")
	}

	// Every point of the first contour lies close to radius 10 around the
	// field centre.
	for _, p := range paths[0] {
		radius := math.Hypot(p[0]-20, p[1]-20)
		if math.Abs(radius-10.0) > 0.2 {
			t.Fatalf("contour point at radius %f, expected ~10", radius)
		}
	}

	// A closed circle of radius 10 has a healthy number of points.
	if len(paths[0]) < 40 {
		t.Errorf("contour suspiciously short: %d points", len(paths[0]))
	}
}

func TestFindContoursNoCrossing(t *testing.T) {
	field := [][]float64{
		{1, 1, 1},
		{1, 1, 1},
		{1, 1, 1},
	}
	if paths := findContours(field, 0); len(paths) != 0 {
		t.Errorf("constant field should have no contours, got %d", len(paths))
	}
}

func TestFindContoursSkipsNonFinite(t *testing.T) {
	field := radialField(21, 21, 5.0)
	field[10][10] = math.Inf(1)

	// A singular centre must not break extraction of the surrounding ring.
	paths := findContours(field, 0)
	if len(paths) == 0 {
		t.Fatal("expected a contour despite the singular pixel")
	}
}

func TestFindContoursTinyField(t *testing.T) {
	if paths := findContours([][]float64{{1, -1}}, 0); paths != nil {
		t.Error("single-row field should yield no contours")
	}
	if paths := findContours(nil, 0); paths != nil {
		t.Error("empty field should yield no contours")
	}
}

func TestChainSegmentsOrdersPath(t *testing.T) {
	// Three collinear segments, supplied out of order, chain into one path.
	segs := []segment{
		{contourPoint{0, 1}, contourPoint{0, 2}},
		{contourPoint{0, 0}, contourPoint{0, 1}},
		{contourPoint{0, 2}, contourPoint{0, 3}},
	}
	paths := chainSegments(segs)
	if len(paths) != 1 {
		t.Fatalf("expected one path, got %d", len(paths))
	}
	if len(paths[0]) != 4 {
		t.Fatalf("expected 4 points, got %d", len(paths[0]))
	}
	for i := 1; i < len(paths[0]); i++ {
		if math.Abs(paths[0][i][1]-paths[0][i-1][1]) != 1 {
			t.Fatalf("path not ordered: %v", paths[0])
		}
	}
}
