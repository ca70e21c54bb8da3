package profile

import (
	"math"

	"github.com/san-kum/lenslab/internal/lens"
)

// Gaussian is a spherical Gaussian light profile,
// I(r) = I_0 * exp(-r^2 / (2 sigma^2)).
type Gaussian struct {
	Centre    lens.Coord
	Intensity float64
	Sigma     float64
}

func NewGaussian(centre lens.Coord, intensity, sigma float64) Gaussian {
	return Gaussian{Centre: centre, Intensity: intensity, Sigma: sigma}
}

func (p Gaussian) ImageFromCoords(cs lens.Coords) lens.Array {
	out := lens.Zeros(len(cs))
	lens.ParallelFor(len(cs), minChunk, func(start, end int) {
		for i := start; i < end; i++ {
			dy, dx := cs[i].Y-p.Centre.Y, cs[i].X-p.Centre.X
			r2 := dy*dy + dx*dx
			out[i] = p.Intensity * math.Exp(-r2/(2*p.Sigma*p.Sigma))
		}
	})
	return out
}

// LuminosityWithinCircle has the closed form
// 2*pi*sigma^2*I_0*(1 - exp(-R^2/(2 sigma^2))).
func (p Gaussian) LuminosityWithinCircle(radius float64) float64 {
	if radius <= 0 {
		return 0
	}
	s2 := p.Sigma * p.Sigma
	return 2 * math.Pi * s2 * p.Intensity * (1 - math.Exp(-radius*radius/(2*s2)))
}

func (p Gaussian) LuminosityWithinEllipse(major float64) float64 {
	return p.LuminosityWithinCircle(major)
}
