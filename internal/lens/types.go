package lens

import "math"

// Array is a flat field of per-pixel values, ordered row-major over the grid
// it was evaluated on.
type Array []float64

// Zeros returns an all-zero Array of length n.
func Zeros(n int) Array {
	return make(Array, n)
}

func (a Array) Clone() Array {
	c := make(Array, len(a))
	copy(c, a)
	return c
}

func (a Array) IsValid() bool {
	for _, v := range a {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Max returns the largest element, or 0 for an empty array.
func (a Array) Max() float64 {
	if len(a) == 0 {
		return 0
	}
	max := a[0]
	for _, v := range a[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

func (a Array) Add(other Array) Array {
	result := make(Array, len(a))
	for i := range a {
		if i < len(other) {
			result[i] = a[i] + other[i]
		} else {
			result[i] = a[i]
		}
	}
	return result
}

func (a Array) Scale(factor float64) Array {
	result := make(Array, len(a))
	for i := range a {
		result[i] = a[i] * factor
	}
	return result
}

// Coord is a physical (y, x) position. The y-before-x ordering follows the
// row-major layout of image arrays.
type Coord struct {
	Y, X float64
}

// Radius returns the distance of the coordinate from the origin.
func (c Coord) Radius() float64 {
	return math.Hypot(c.Y, c.X)
}

// Coords is an ordered collection of (y, x) positions.
type Coords []Coord

// ZeroCoords returns n zero vectors.
func ZeroCoords(n int) Coords {
	return make(Coords, n)
}

func (cs Coords) Clone() Coords {
	c := make(Coords, len(cs))
	copy(c, cs)
	return c
}

func (cs Coords) Add(other Coords) Coords {
	result := make(Coords, len(cs))
	for i := range cs {
		result[i] = cs[i]
		if i < len(other) {
			result[i].Y += other[i].Y
			result[i].X += other[i].X
		}
	}
	return result
}

func (cs Coords) Sub(other Coords) Coords {
	result := make(Coords, len(cs))
	for i := range cs {
		result[i] = cs[i]
		if i < len(other) {
			result[i].Y -= other[i].Y
			result[i].X -= other[i].X
		}
	}
	return result
}

// Visibilities holds complex interferometric visibilities.
type Visibilities []complex128

// LightProfile is a parametric description of a galaxy's light. All methods
// are pure functions of the profile parameters.
type LightProfile interface {
	// ImageFromCoords evaluates the surface brightness at each coordinate.
	ImageFromCoords(cs Coords) Array
	// LuminosityWithinCircle integrates the profile within a circle of the
	// given radius.
	LuminosityWithinCircle(radius float64) float64
	// LuminosityWithinEllipse integrates the profile within an ellipse of
	// the given major axis, aligned with the profile.
	LuminosityWithinEllipse(major float64) float64
}

// MassProfile is a parametric description of a lensing mass distribution.
type MassProfile interface {
	// ConvergenceFromCoords evaluates the dimensionless surface density.
	ConvergenceFromCoords(cs Coords) Array
	// PotentialFromCoords evaluates the lensing potential.
	PotentialFromCoords(cs Coords) Array
	// DeflectionsFromCoords evaluates the (y, x) deflection angles.
	DeflectionsFromCoords(cs Coords) Coords
	// MassWithinCircle is the angular mass inside a circle of the given
	// radius.
	MassWithinCircle(radius float64) float64
	// MassWithinEllipse is the angular mass inside an ellipse of the given
	// major axis.
	MassWithinEllipse(major float64) float64
	EinsteinRadius() float64
	EinsteinMass() float64
}

// Deflector produces a deflection field from arbitrary coordinates. It is
// the minimal capability the lensing geometry calculations require; Galaxy
// satisfies it, as does any single MassProfile.
type Deflector interface {
	DeflectionsFromCoords(cs Coords) Coords
}

// Convolver combines an image with values from a blurring region into a
// single PSF-convolved image.
type Convolver interface {
	Convolve(image, blurring Array) (Array, error)
}

// Transformer maps an image into the visibility (Fourier) domain.
type Transformer interface {
	Visibilities(image Array) (Visibilities, error)
}
