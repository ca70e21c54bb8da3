package geometry

import (
	"math"

	"github.com/san-kum/lenslab/internal/lens"
)

// Jacobian holds the four entries of the lensing Jacobian
//
//	A = | 1 - dax/dx    -dax/dy |
//	    |   -day/dx   1 - day/dy |
//
// evaluated on the grid's sub-grid layout, row-major.
type Jacobian struct {
	A11, A12, A21, A22 lens.Array

	grid *lens.Grid
}

// NewJacobian differentiates the deflector's deflection field on the grid.
func NewJacobian(def lens.Deflector, g *lens.Grid) *Jacobian {
	defl := def.DeflectionsFromCoords(g.Coords())

	shape := g.SubShape()
	rows, cols := shape[0], shape[1]
	ay := make([][]float64, rows)
	ax := make([][]float64, rows)
	for r := 0; r < rows; r++ {
		ay[r] = make([]float64, cols)
		ax[r] = make([]float64, cols)
		for c := 0; c < cols; c++ {
			ay[r][c] = defl[r*cols+c].Y
			ax[r][c] = defl[r*cols+c].X
		}
	}

	ys, xs := g.AxisY(), g.AxisX()
	dxdx := Gradient(ax, xs, 1)
	dxdy := Gradient(ax, ys, 0)
	dydx := Gradient(ay, xs, 1)
	dydy := Gradient(ay, ys, 0)

	j := &Jacobian{
		A11:  lens.Zeros(rows * cols),
		A12:  lens.Zeros(rows * cols),
		A21:  lens.Zeros(rows * cols),
		A22:  lens.Zeros(rows * cols),
		grid: g,
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			i := r*cols + c
			j.A11[i] = 1 - dxdx[r][c]
			j.A12[i] = -dxdy[r][c]
			j.A21[i] = -dydx[r][c]
			j.A22[i] = 1 - dydy[r][c]
		}
	}
	return j
}

// Convergence is 1 - (A11 + A22)/2 on the sub-grid.
func (j *Jacobian) Convergence() lens.Array {
	out := lens.Zeros(len(j.A11))
	for i := range out {
		out[i] = 1 - 0.5*(j.A11[i]+j.A22[i])
	}
	return out
}

// Shear is the magnitude of (gamma1, gamma2) on the sub-grid.
func (j *Jacobian) Shear() lens.Array {
	out := lens.Zeros(len(j.A11))
	for i := range out {
		g1 := 0.5 * (j.A22[i] - j.A11[i])
		g2 := -0.5 * (j.A12[i] + j.A21[i])
		out[i] = math.Sqrt(g1*g1 + g2*g2)
	}
	return out
}

// TangentialEigenvalues is 1 - kappa - gamma on the sub-grid. Its zero level
// set is the tangential critical curve.
func (j *Jacobian) TangentialEigenvalues() lens.Array {
	kappa, gamma := j.Convergence(), j.Shear()
	out := lens.Zeros(len(kappa))
	for i := range out {
		out[i] = 1 - kappa[i] - gamma[i]
	}
	return out
}

// RadialEigenvalues is 1 - kappa + gamma on the sub-grid.
func (j *Jacobian) RadialEigenvalues() lens.Array {
	kappa, gamma := j.Convergence(), j.Shear()
	out := lens.Zeros(len(kappa))
	for i := range out {
		out[i] = 1 - kappa[i] + gamma[i]
	}
	return out
}

// Determinant is A11*A22 - A12*A21 on the sub-grid.
func (j *Jacobian) Determinant() lens.Array {
	out := lens.Zeros(len(j.A11))
	for i := range out {
		out[i] = j.A11[i]*j.A22[i] - j.A12[i]*j.A21[i]
	}
	return out
}

// Magnification is 1/det(A). It diverges on critical curves; Inf and NaN
// propagate as data.
func (j *Jacobian) Magnification() lens.Array {
	det := j.Determinant()
	out := lens.Zeros(len(det))
	for i := range out {
		out[i] = 1 / det[i]
	}
	return out
}

// ConvergenceViaJacobian returns the Jacobian-derived convergence binned to
// the grid's native layout.
func ConvergenceViaJacobian(def lens.Deflector, g *lens.Grid) lens.Array {
	return g.BinArray(NewJacobian(def, g).Convergence())
}

// ShearViaJacobian returns the Jacobian-derived shear magnitude binned to
// the grid's native layout.
func ShearViaJacobian(def lens.Deflector, g *lens.Grid) lens.Array {
	return g.BinArray(NewJacobian(def, g).Shear())
}

// TangentialEigenvalues returns 1 - kappa - gamma binned to the native layout.
func TangentialEigenvalues(def lens.Deflector, g *lens.Grid) lens.Array {
	return g.BinArray(NewJacobian(def, g).TangentialEigenvalues())
}

// RadialEigenvalues returns 1 - kappa + gamma binned to the native layout.
func RadialEigenvalues(def lens.Deflector, g *lens.Grid) lens.Array {
	return g.BinArray(NewJacobian(def, g).RadialEigenvalues())
}

// Magnification returns 1/det(A) binned to the native layout.
func Magnification(def lens.Deflector, g *lens.Grid) lens.Array {
	return g.BinArray(NewJacobian(def, g).Magnification())
}

// PotentialProvider supplies a lensing potential at arbitrary coordinates.
type PotentialProvider interface {
	PotentialFromCoords(cs lens.Coords) lens.Array
}

// DeflectionsViaPotential differentiates the lensing potential to recover
// the deflection field, binned to the native layout.
func DeflectionsViaPotential(p PotentialProvider, g *lens.Grid) lens.Coords {
	pot := g.SubArray2D(p.PotentialFromCoords(g.Coords()))
	dy := Gradient(pot, g.AxisY(), 0)
	dx := Gradient(pot, g.AxisX(), 1)

	shape := g.SubShape()
	out := lens.ZeroCoords(shape[0] * shape[1])
	for r := 0; r < shape[0]; r++ {
		for c := 0; c < shape[1]; c++ {
			out[r*shape[1]+c] = lens.Coord{Y: dy[r][c], X: dx[r][c]}
		}
	}
	return g.BinCoords(out)
}
