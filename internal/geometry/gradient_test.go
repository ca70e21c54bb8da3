package geometry

import (
	"math"
	"testing"
)

func TestGradientLinearField(t *testing.T) {
	// f(r, c) = 3*x + 2*y with x ascending and y descending.
	xs := []float64{-1, 0, 1, 2}
	ys := []float64{1, 0.5, 0, -0.5}

	field := make([][]float64, len(ys))
	for r := range field {
		field[r] = make([]float64, len(xs))
		for c := range field[r] {
			field[r][c] = 3*xs[c] + 2*ys[r]
		}
	}

	ddx := Gradient(field, xs, 1)
	ddy := Gradient(field, ys, 0)

	for r := range field {
		for c := range field[r] {
			if math.Abs(ddx[r][c]-3) > 1e-12 {
				t.Fatalf("d/dx at (%d,%d): got %f, expected 3", r, c, ddx[r][c])
			}
			if math.Abs(ddy[r][c]-2) > 1e-12 {
				t.Fatalf("d/dy at (%d,%d): got %f, expected 2", r, c, ddy[r][c])
			}
		}
	}
}

func TestGradientQuadraticInterior(t *testing.T) {
	// Central differences are exact for quadratics on uniform spacing.
	xs := []float64{0, 1, 2, 3, 4}
	field := [][]float64{{0, 1, 4, 9, 16}}

	ddx := Gradient(field, xs, 1)
	for c := 1; c < 4; c++ {
		want := 2 * xs[c]
		if math.Abs(ddx[0][c]-want) > 1e-12 {
			t.Errorf("interior d/dx at %d: got %f, expected %f", c, ddx[0][c], want)
		}
	}
}
