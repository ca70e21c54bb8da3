package profile

import (
	"math"

	"github.com/san-kum/lenslab/internal/lens"
)

// PointMass is a point lens with deflection theta_E^2 / r directed radially.
// Its convergence is zero everywhere off-centre.
type PointMass struct {
	Centre   lens.Coord
	Einstein float64
}

func NewPointMass(centre lens.Coord, einsteinRadius float64) PointMass {
	return PointMass{Centre: centre, Einstein: einsteinRadius}
}

func (p PointMass) ConvergenceFromCoords(cs lens.Coords) lens.Array {
	return lens.Zeros(len(cs))
}

func (p PointMass) PotentialFromCoords(cs lens.Coords) lens.Array {
	out := lens.Zeros(len(cs))
	lens.ParallelFor(len(cs), minChunk, func(start, end int) {
		for i := start; i < end; i++ {
			dy, dx := cs[i].Y-p.Centre.Y, cs[i].X-p.Centre.X
			out[i] = p.Einstein * p.Einstein * math.Log(math.Hypot(dy, dx))
		}
	})
	return out
}

func (p PointMass) DeflectionsFromCoords(cs lens.Coords) lens.Coords {
	out := lens.ZeroCoords(len(cs))
	lens.ParallelFor(len(cs), minChunk, func(start, end int) {
		for i := start; i < end; i++ {
			dy, dx := cs[i].Y-p.Centre.Y, cs[i].X-p.Centre.X
			r2 := dy*dy + dx*dx
			if r2 == 0 {
				continue
			}
			t2 := p.Einstein * p.Einstein
			out[i] = lens.Coord{Y: t2 * dy / r2, X: t2 * dx / r2}
		}
	})
	return out
}

// MassWithinCircle is the full point mass for any enclosing radius.
func (p PointMass) MassWithinCircle(radius float64) float64 {
	if radius <= 0 {
		return 0
	}
	return p.EinsteinMass()
}

func (p PointMass) MassWithinEllipse(major float64) float64 {
	return p.MassWithinCircle(major)
}

func (p PointMass) EinsteinRadius() float64 { return p.Einstein }

func (p PointMass) EinsteinMass() float64 {
	return math.Pi * p.Einstein * p.Einstein
}
