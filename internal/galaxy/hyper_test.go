package galaxy

import (
	"math"
	"testing"

	"github.com/san-kum/lenslab/internal/lens"
)

func TestHyperGalaxyEqualityIgnoresComponentNumber(t *testing.T) {
	counter := &Counter{}

	a := NewHyperGalaxy(1.0, 2.0, 1.5, counter)
	b := NewHyperGalaxy(1.0, 2.0, 1.5, counter)

	if a.ComponentNumber == b.ComponentNumber {
		t.Error("component numbers should be distinct")
	}
	if !a.Equal(b) || !b.Equal(a) {
		t.Error("equal parameters should compare equal regardless of component number")
	}

	c := NewHyperGalaxy(1.0, 2.0, 2.0, counter)
	if a.Equal(c) {
		t.Error("parameter difference should break equality")
	}
}

func TestCounterSequence(t *testing.T) {
	counter := &Counter{}
	for want := 0; want < 3; want++ {
		if got := counter.Next(); got != want {
			t.Fatalf("expected %d, got %d", want, got)
		}
	}
}

func TestContributionMapRangeAndMax(t *testing.T) {
	h := NewHyperGalaxy(0.5, 1.0, 1.0, nil)

	model := lens.Array{2.0, 4.0, 10.0, 1.0}
	image := lens.Array{1.0, 2.0, 9.0, 0.5}

	contrib := h.ContributionMap(model, image)

	max := 0.0
	for _, v := range contrib {
		if v < 0 || v > 1 {
			t.Fatalf("contribution out of [0,1]: %f", v)
		}
		if v > max {
			max = v
		}
	}
	if max != 1.0 {
		t.Errorf("maximum should be exactly 1, got %f", max)
	}
}

func TestHyperNoiseMapLinearInNoiseFactor(t *testing.T) {
	noise := lens.Array{1.0, 2.0, 3.0}
	contrib := lens.Array{0.1, 0.5, 1.0}

	h1 := HyperGalaxy{NoiseFactor: 1.0, NoisePower: 2.0}
	h2 := HyperGalaxy{NoiseFactor: 2.0, NoisePower: 2.0}

	n1 := h1.HyperNoiseMap(noise, contrib)
	n2 := h2.HyperNoiseMap(noise, contrib)

	for i := range n1 {
		if math.Abs(n2[i]-2*n1[i]) > 1e-12 {
			t.Fatalf("doubling noise factor should double output at %d: %f vs %f", i, n2[i], n1[i])
		}
	}
}

func TestHyperNoiseMapFromImagesComposes(t *testing.T) {
	h := NewHyperGalaxy(0.2, 1.5, 1.2, nil)

	model := lens.Array{2.0, 4.0, 10.0}
	image := lens.Array{1.0, 2.0, 9.0}
	noise := lens.Array{1.0, 1.5, 2.0}

	composed := h.HyperNoiseMapFromImages(model, image, noise)
	manual := h.HyperNoiseMap(noise, h.ContributionMap(model, image))

	for i := range composed {
		if composed[i] != manual[i] {
			t.Fatalf("composition mismatch at %d: %f vs %f", i, composed[i], manual[i])
		}
	}
}

func TestContributionMapDegenerateAllZero(t *testing.T) {
	h := NewHyperGalaxy(1.0, 1.0, 1.0, nil)

	contrib := h.ContributionMap(lens.Array{1, 1}, lens.Array{0, 0})
	for _, v := range contrib {
		if !math.IsNaN(v) {
			t.Errorf("all-zero galaxy image should degenerate to NaN, got %f", v)
		}
	}
}
