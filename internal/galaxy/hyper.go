package galaxy

import (
	"math"
	"sync"

	"github.com/san-kum/lenslab/internal/lens"
)

// Counter hands out component numbers to hyper galaxies. The model-assembly
// context owns one, which keeps numbering reproducible per run instead of
// leaking across runs through package state.
type Counter struct {
	mu sync.Mutex
	n  int
}

func (c *Counter) Next() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.n
	c.n++
	return n
}

// HyperGalaxy scales a noise map in the regions of the image attributed to
// one galaxy, preventing that galaxy from being over-fit. It is a pure value
// object; all methods are stateless transforms.
type HyperGalaxy struct {
	// ContributionFactor regularizes the contribution map where the model
	// image is near zero.
	ContributionFactor float64
	// NoiseFactor scales the noise increase in the galaxy's regions.
	NoiseFactor float64
	// NoisePower is the exponent applied to the scaled noise map.
	NoisePower float64
	// ComponentNumber distinguishes multiple hyper galaxies, e.g. for
	// labelling. Excluded from equality.
	ComponentNumber int
}

// NewHyperGalaxy builds a hyper galaxy, drawing its component number from
// the given counter. A nil counter yields component number 0.
func NewHyperGalaxy(contributionFactor, noiseFactor, noisePower float64, c *Counter) HyperGalaxy {
	n := 0
	if c != nil {
		n = c.Next()
	}
	return HyperGalaxy{
		ContributionFactor: contributionFactor,
		NoiseFactor:        noiseFactor,
		NoisePower:         noisePower,
		ComponentNumber:    n,
	}
}

// Equal compares the three noise parameters; the component number is
// labelling only.
func (h HyperGalaxy) Equal(o HyperGalaxy) bool {
	return h.ContributionFactor == o.ContributionFactor &&
		h.NoiseFactor == o.NoiseFactor &&
		h.NoisePower == o.NoisePower
}

// ContributionMap computes the fraction of flux in each pixel attributed to
// this galaxy, normalized so the map's maximum is exactly 1. If the galaxy
// image is all zeros the maximum is zero and the map degenerates to NaNs;
// callers must guard against an all-zero-contribution galaxy.
func (h HyperGalaxy) ContributionMap(hyperModelImage, hyperGalaxyImage lens.Array) lens.Array {
	out := lens.Zeros(len(hyperGalaxyImage))
	for i := range out {
		out[i] = hyperGalaxyImage[i] / (hyperModelImage[i] + h.ContributionFactor)
	}
	max := out.Max()
	for i := range out {
		out[i] /= max
	}
	return out
}

// HyperNoiseMap scales a baseline noise map by the contribution map:
// NoiseFactor * (noise * contribution)^NoisePower, elementwise.
func (h HyperGalaxy) HyperNoiseMap(noiseMap, contributionMap lens.Array) lens.Array {
	out := lens.Zeros(len(noiseMap))
	for i := range out {
		out[i] = h.NoiseFactor * math.Pow(noiseMap[i]*contributionMap[i], h.NoisePower)
	}
	return out
}

// HyperNoiseMapFromImages composes ContributionMap and HyperNoiseMap.
func (h HyperGalaxy) HyperNoiseMapFromImages(hyperModelImage, hyperGalaxyImage, noiseMap lens.Array) lens.Array {
	contribution := h.ContributionMap(hyperModelImage, hyperGalaxyImage)
	return h.HyperNoiseMap(noiseMap, contribution)
}
