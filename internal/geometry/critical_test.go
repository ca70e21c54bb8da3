package geometry

import (
	"math"
	"testing"

	"github.com/san-kum/lenslab/internal/galaxy"
	"github.com/san-kum/lenslab/internal/lens"
	"github.com/san-kum/lenslab/internal/profile"
)

func sisGalaxy(t *testing.T, einstein float64) *galaxy.Galaxy {
	t.Helper()
	g, err := galaxy.NewBuilder(0.5).
		WithMass(profile.NewIsothermal(lens.Coord{}, einstein)).
		Build()
	if err != nil {
		t.Fatalf("galaxy failed: %v", err)
	}
	return g
}

func TestJacobianIdentityForNoMass(t *testing.T) {
	g, _ := galaxy.NewBuilder(0.5).Build()
	gr, _ := lens.NewUniform([2]int{8, 8}, 0.5, 1)

	j := NewJacobian(g, gr)
	for i := range j.A11 {
		if j.A11[i] != 1 || j.A22[i] != 1 || j.A12[i] != 0 || j.A21[i] != 0 {
			t.Fatal("zero deflections should give the identity Jacobian")
		}
	}

	mag := Magnification(g, gr)
	for _, v := range mag {
		if v != 1 {
			t.Fatalf("magnification should be 1 everywhere, got %f", v)
		}
	}
}

func TestConvergenceViaJacobianMatchesAnalytic(t *testing.T) {
	gal := sisGalaxy(t, 1.0)
	gr, _ := lens.NewUniform([2]int{60, 60}, 0.1, 1)

	kappa := ConvergenceViaJacobian(gal, gr)
	direct := gal.ConvergenceFromGrid(gr)

	// Compare away from the central singularity, where finite differences
	// are accurate.
	for i, c := range gr.Coords() {
		r := c.Radius()
		if r < 0.5 || r > 2.0 {
			continue
		}
		if math.Abs(kappa[i]-direct[i]) > 0.05 {
			t.Fatalf("kappa mismatch at r=%.2f: jacobian %f, analytic %f", r, kappa[i], direct[i])
		}
	}
}

func TestShearEqualsConvergenceForSIS(t *testing.T) {
	gal := sisGalaxy(t, 1.0)
	gr, _ := lens.NewUniform([2]int{60, 60}, 0.1, 1)

	kappa := ConvergenceViaJacobian(gal, gr)
	gamma := ShearViaJacobian(gal, gr)

	for i, c := range gr.Coords() {
		r := c.Radius()
		if r < 0.5 || r > 2.0 {
			continue
		}
		if math.Abs(kappa[i]-gamma[i]) > 0.05 {
			t.Fatalf("SIS shear should equal convergence at r=%.2f: %f vs %f", r, gamma[i], kappa[i])
		}
	}
}

func TestTangentialCriticalCurveSIS(t *testing.T) {
	// An SIS with Einstein radius 1 has its tangential critical curve at
	// radius 1.
	gal := sisGalaxy(t, 1.0)
	gr, _ := lens.NewUniform([2]int{60, 60}, 0.1, 1)

	curve := TangentialCriticalCurve(gal, gr)
	if len(curve) == 0 {
		t.Fatal("expected a tangential critical curve")
	}

	mean := 0.0
	for _, c := range curve {
		mean += c.Radius()
	}
	mean /= float64(len(curve))
	if math.Abs(mean-1.0) > 0.1 {
		t.Errorf("mean critical radius %f, expected ~1", mean)
	}
}

func TestTangentialCausticSIS(t *testing.T) {
	// The SIS tangential caustic degenerates to a point at the origin.
	gal := sisGalaxy(t, 1.0)
	gr, _ := lens.NewUniform([2]int{60, 60}, 0.1, 1)

	caustic := TangentialCaustic(gal, gr)
	if len(caustic) == 0 {
		t.Fatal("expected a tangential caustic")
	}
	for _, c := range caustic {
		if c.Radius() > 0.15 {
			t.Fatalf("caustic point at radius %f, expected near origin", c.Radius())
		}
	}
}

func TestNoMassYieldsEmptyCurves(t *testing.T) {
	g, _ := galaxy.NewBuilder(0.5).Build()
	gr, _ := lens.NewUniform([2]int{30, 30}, 0.1, 1)

	curves := CriticalCurves(g, gr)
	if len(curves[0]) != 0 || len(curves[1]) != 0 {
		t.Error("massless galaxy should have empty critical curves")
	}

	caustics := Caustics(g, gr)
	if len(caustics[0]) != 0 || len(caustics[1]) != 0 {
		t.Error("empty critical curves should give empty caustics, not errors")
	}
}

func TestDeflectionsViaPotentialMatchesDirect(t *testing.T) {
	gal := sisGalaxy(t, 1.0)
	gr, _ := lens.NewUniform([2]int{50, 50}, 0.1, 1)

	viaPotential := DeflectionsViaPotential(gal, gr)
	direct := gal.DeflectionsFromGrid(gr)

	for i, c := range gr.Coords() {
		r := c.Radius()
		if r < 0.5 || r > 2.0 {
			continue
		}
		if math.Abs(viaPotential[i].Y-direct[i].Y) > 0.05 ||
			math.Abs(viaPotential[i].X-direct[i].X) > 0.05 {
			t.Fatalf("deflection mismatch at r=%.2f: %v vs %v", r, viaPotential[i], direct[i])
		}
	}
}
