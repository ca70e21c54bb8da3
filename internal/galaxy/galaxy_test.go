package galaxy

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/lenslab/internal/lens"
	"github.com/san-kum/lenslab/internal/profile"
)

func mustGrid(t *testing.T, shape [2]int, scale float64, sub int) *lens.Grid {
	t.Helper()
	g, err := lens.NewUniform(shape, scale, sub)
	if err != nil {
		t.Fatalf("grid failed: %v", err)
	}
	return g
}

func TestBuildPixelizationPair(t *testing.T) {
	pix := Pixelization{Shape: [2]int{20, 20}}
	reg := Regularization{Coefficient: 1.0}

	tests := []struct {
		name    string
		build   func() (*Galaxy, error)
		wantErr bool
	}{
		{"neither", func() (*Galaxy, error) { return NewBuilder(0.5).Build() }, false},
		{"both", func() (*Galaxy, error) {
			return NewBuilder(0.5).WithPixelization(pix).WithRegularization(reg).Build()
		}, false},
		{"pixelization only", func() (*Galaxy, error) {
			return NewBuilder(0.5).WithPixelization(pix).Build()
		}, true},
		{"regularization only", func() (*Galaxy, error) {
			return NewBuilder(0.5).WithRegularization(reg).Build()
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			if tt.wantErr && !errors.Is(err, lens.ErrPixelizationPair) {
				t.Errorf("expected ErrPixelizationPair, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestBuildInvalidRedshift(t *testing.T) {
	if _, err := NewBuilder(0).Build(); !errors.Is(err, lens.ErrRedshift) {
		t.Errorf("expected ErrRedshift, got %v", err)
	}
	if _, err := NewBuilder(-1).Build(); !errors.Is(err, lens.ErrRedshift) {
		t.Errorf("expected ErrRedshift, got %v", err)
	}
}

func TestZeroProfileFallbacks(t *testing.T) {
	g, _ := NewBuilder(0.5).Build()
	gr := mustGrid(t, [2]int{4, 5}, 0.1, 2)

	image := g.ImageFromGrid(gr)
	if len(image) != gr.Len() {
		t.Fatalf("expected native length %d, got %d", gr.Len(), len(image))
	}
	for i, v := range image {
		if v != 0 {
			t.Fatalf("image[%d] should be exactly zero, got %f", i, v)
		}
	}

	for _, field := range []lens.Array{g.ConvergenceFromGrid(gr), g.PotentialFromGrid(gr)} {
		if len(field) != gr.Len() {
			t.Fatalf("expected native length %d, got %d", gr.Len(), len(field))
		}
		for _, v := range field {
			if v != 0 {
				t.Fatal("mass field should be exactly zero")
			}
		}
	}

	defl := g.DeflectionsFromGrid(gr)
	if len(defl) != gr.Len() {
		t.Fatalf("expected %d deflection vectors, got %d", gr.Len(), len(defl))
	}
	for _, d := range defl {
		if d.Y != 0 || d.X != 0 {
			t.Fatal("deflections should be exactly zero")
		}
	}
}

func TestIntegralSentinels(t *testing.T) {
	g, _ := NewBuilder(0.5).Build()

	if _, ok := g.MassWithinCircle(1.0); ok {
		t.Error("mass with no mass profiles should be not-applicable")
	}
	if _, ok := g.LuminosityWithinCircle(1.0); ok {
		t.Error("luminosity with no light profiles should be not-applicable")
	}
	if _, ok := g.EinsteinRadius(); ok {
		t.Error("einstein radius with no mass profiles should be not-applicable")
	}
}

func TestAggregationSums(t *testing.T) {
	sis := profile.NewIsothermal(lens.Coord{}, 1.0)
	single, _ := NewBuilder(0.5).WithMass(sis).Build()
	double, _ := NewBuilder(0.5).WithMass(sis, sis).Build()

	gr := mustGrid(t, [2]int{6, 6}, 0.3, 1)

	one := single.ConvergenceFromGrid(gr)
	two := double.ConvergenceFromGrid(gr)
	for i := range one {
		if math.Abs(two[i]-2*one[i]) > 1e-12 {
			t.Fatalf("double galaxy convergence should be twice single at %d", i)
		}
	}

	d1 := single.DeflectionsFromGrid(gr)
	d2 := double.DeflectionsFromGrid(gr)
	for i := range d1 {
		if math.Abs(d2[i].Y-2*d1[i].Y) > 1e-12 || math.Abs(d2[i].X-2*d1[i].X) > 1e-12 {
			t.Fatalf("double galaxy deflections should be twice single at %d", i)
		}
	}

	m1, _ := single.MassWithinCircle(2.0)
	m2, _ := double.MassWithinCircle(2.0)
	if math.Abs(m2-2*m1) > 1e-12 {
		t.Errorf("double galaxy mass should be twice single: %f vs %f", m2, m1)
	}
}

func TestProfileImagePeaksAtCentre(t *testing.T) {
	// An elliptical light profile at the origin on a symmetric 5x5 grid
	// peaks at the grid point nearest the origin.
	sersic := profile.NewSersic(lens.Coord{}, 0.8, 30.0, 1.0, 1.0, 2.0)
	g, _ := NewBuilder(0.5).WithLight(sersic).Build()

	gr := mustGrid(t, [2]int{5, 5}, 1.0, 1)
	image := g.ImageFromGrid(gr)

	maxIdx := 0
	for i, v := range image {
		if v > image[maxIdx] {
			maxIdx = i
		}
	}
	if maxIdx != 12 {
		t.Errorf("expected peak at centre pixel 12, got %d", maxIdx)
	}
}

func TestGalaxyEquality(t *testing.T) {
	sis := profile.NewIsothermal(lens.Coord{}, 1.0)
	sersic := profile.NewSersic(lens.Coord{}, 1.0, 0.0, 1.0, 1.0, 1.0)

	a, _ := NewBuilder(0.5).WithLight(sersic).WithMass(sis).Build()
	b, _ := NewBuilder(0.5).WithLight(sersic).WithMass(sis).Build()

	if !a.Equal(a) {
		t.Error("equality should be reflexive")
	}
	if !a.Equal(b) || !b.Equal(a) {
		t.Error("identically built galaxies should be equal both ways")
	}
	if a.ID() == b.ID() {
		t.Error("identities should be distinct")
	}

	c, _ := NewBuilder(0.7).WithLight(sersic).WithMass(sis).Build()
	if a.Equal(c) {
		t.Error("redshift difference should break equality")
	}

	d, _ := NewBuilder(0.5).WithMass(sis).Build()
	if a.Equal(d) {
		t.Error("profile list difference should break equality")
	}

	e, _ := NewBuilder(0.5).WithLight(sersic).WithMass(profile.NewIsothermal(lens.Coord{}, 2.0)).Build()
	if a.Equal(e) {
		t.Error("profile parameter difference should break equality")
	}

	counter := &Counter{}
	f, _ := NewBuilder(0.5).WithLight(sersic).WithMass(sis).
		WithHyper(NewHyperGalaxy(1, 1, 1, counter)).Build()
	if a.Equal(f) {
		t.Error("hyper galaxy difference should break equality")
	}
}

func TestBlurredImageUsesConvolver(t *testing.T) {
	sersic := profile.NewSersic(lens.Coord{}, 1.0, 0.0, 1.0, 1.0, 1.0)
	g, _ := NewBuilder(0.5).WithLight(sersic).Build()
	gr := mustGrid(t, [2]int{3, 3}, 1.0, 1)

	conv := &stubConvolver{}
	blurring := gr.Blurring([2]int{3, 3})

	out, err := g.BlurredImage(gr, conv, blurring)
	if err != nil {
		t.Fatalf("blurred image failed: %v", err)
	}
	if len(out) != gr.Len() {
		t.Fatalf("expected %d pixels, got %d", gr.Len(), len(out))
	}
	if conv.gotImage != gr.Len() || conv.gotBlurring != len(blurring) {
		t.Errorf("convolver saw %d/%d values, expected %d/%d",
			conv.gotImage, conv.gotBlurring, gr.Len(), len(blurring))
	}
}

type stubConvolver struct {
	gotImage    int
	gotBlurring int
}

func (s *stubConvolver) Convolve(image, blurring lens.Array) (lens.Array, error) {
	s.gotImage = len(image)
	s.gotBlurring = len(blurring)
	return image.Clone(), nil
}

func TestVisibilitiesUsesTransformer(t *testing.T) {
	sersic := profile.NewSersic(lens.Coord{}, 1.0, 0.0, 1.0, 1.0, 1.0)
	g, _ := NewBuilder(0.5).WithLight(sersic).Build()
	gr := mustGrid(t, [2]int{3, 3}, 1.0, 1)

	tr := &stubTransformer{}
	vis, err := g.Visibilities(gr, tr)
	if err != nil {
		t.Fatalf("visibilities failed: %v", err)
	}
	if tr.gotImage != gr.Len() {
		t.Errorf("transformer saw %d pixels, expected %d", tr.gotImage, gr.Len())
	}
	if len(vis) != gr.Len() {
		t.Errorf("expected %d visibilities, got %d", gr.Len(), len(vis))
	}
}

type stubTransformer struct {
	gotImage int
}

func (s *stubTransformer) Visibilities(image lens.Array) (lens.Visibilities, error) {
	s.gotImage = len(image)
	return make(lens.Visibilities, len(image)), nil
}

func TestSummarize(t *testing.T) {
	sis := profile.NewIsothermal(lens.Coord{}, 1.0)
	g, _ := NewBuilder(0.5).WithMass(sis).Build()

	lines := g.Summarize([]float64{1.0, 2.0})
	if len(lines) < 5 {
		t.Fatalf("expected a mass summary, got %d lines", len(lines))
	}
	if lines[0] != "Galaxy" {
		t.Errorf("unexpected header: %q", lines[0])
	}
}
