package geometry

import "github.com/san-kum/lenslab/internal/lens"

// TangentialCriticalCurve traces the zero level set of the tangential
// eigenvalue field and maps it to physical coordinates. The result is empty
// when the mass model has no tangential critical structure.
func TangentialCriticalCurve(def lens.Deflector, g *lens.Grid) lens.Coords {
	j := NewJacobian(def, g)
	paths := findContours(g.SubArray2D(j.TangentialEigenvalues()), 0)
	if len(paths) == 0 {
		return nil
	}
	return g.PhysicalFromContour(paths[0])
}

// RadialCriticalCurve traces the zero level set of the radial eigenvalue
// field.
func RadialCriticalCurve(def lens.Deflector, g *lens.Grid) lens.Coords {
	j := NewJacobian(def, g)
	paths := findContours(g.SubArray2D(j.RadialEigenvalues()), 0)
	if len(paths) == 0 {
		return nil
	}
	return g.PhysicalFromContour(paths[0])
}

// TangentialCaustic maps the tangential critical curve into the source
// plane: caustic = curve - deflections(curve). Empty in, empty out.
func TangentialCaustic(def lens.Deflector, g *lens.Grid) lens.Coords {
	curve := TangentialCriticalCurve(def, g)
	if len(curve) == 0 {
		return nil
	}
	return curve.Sub(def.DeflectionsFromCoords(curve))
}

// RadialCaustic maps the radial critical curve into the source plane.
func RadialCaustic(def lens.Deflector, g *lens.Grid) lens.Coords {
	curve := RadialCriticalCurve(def, g)
	if len(curve) == 0 {
		return nil
	}
	return curve.Sub(def.DeflectionsFromCoords(curve))
}

// CriticalCurves returns the tangential and radial critical curves.
func CriticalCurves(def lens.Deflector, g *lens.Grid) [2]lens.Coords {
	return [2]lens.Coords{
		TangentialCriticalCurve(def, g),
		RadialCriticalCurve(def, g),
	}
}

// Caustics returns the tangential and radial caustics.
func Caustics(def lens.Deflector, g *lens.Grid) [2]lens.Coords {
	return [2]lens.Coords{
		TangentialCaustic(def, g),
		RadialCaustic(def, g),
	}
}
