package profile

import (
	"math"

	"github.com/san-kum/lenslab/internal/lens"
)

// Isothermal is a singular isothermal sphere (SIS) mass profile. Its
// convergence is theta_E / (2r) and its deflection angle has constant
// magnitude theta_E, pointing radially away from the centre.
type Isothermal struct {
	Centre   lens.Coord
	Einstein float64 // Einstein radius
}

func NewIsothermal(centre lens.Coord, einsteinRadius float64) Isothermal {
	return Isothermal{Centre: centre, Einstein: einsteinRadius}
}

func (p Isothermal) ConvergenceFromCoords(cs lens.Coords) lens.Array {
	out := lens.Zeros(len(cs))
	lens.ParallelFor(len(cs), minChunk, func(start, end int) {
		for i := start; i < end; i++ {
			dy, dx := cs[i].Y-p.Centre.Y, cs[i].X-p.Centre.X
			// Divergent at the centre; Inf propagates as data.
			out[i] = p.Einstein / (2 * math.Hypot(dy, dx))
		}
	})
	return out
}

func (p Isothermal) PotentialFromCoords(cs lens.Coords) lens.Array {
	out := lens.Zeros(len(cs))
	lens.ParallelFor(len(cs), minChunk, func(start, end int) {
		for i := start; i < end; i++ {
			dy, dx := cs[i].Y-p.Centre.Y, cs[i].X-p.Centre.X
			out[i] = p.Einstein * math.Hypot(dy, dx)
		}
	})
	return out
}

func (p Isothermal) DeflectionsFromCoords(cs lens.Coords) lens.Coords {
	out := lens.ZeroCoords(len(cs))
	lens.ParallelFor(len(cs), minChunk, func(start, end int) {
		for i := start; i < end; i++ {
			dy, dx := cs[i].Y-p.Centre.Y, cs[i].X-p.Centre.X
			r := math.Hypot(dy, dx)
			if r == 0 {
				continue
			}
			out[i] = lens.Coord{Y: p.Einstein * dy / r, X: p.Einstein * dx / r}
		}
	})
	return out
}

func (p Isothermal) MassWithinCircle(radius float64) float64 {
	return math.Pi * p.Einstein * radius
}

func (p Isothermal) MassWithinEllipse(major float64) float64 {
	return p.MassWithinCircle(major)
}

func (p Isothermal) EinsteinRadius() float64 { return p.Einstein }

func (p Isothermal) EinsteinMass() float64 {
	return math.Pi * p.Einstein * p.Einstein
}
