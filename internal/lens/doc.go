// Package lens provides core primitives for strong gravitational lensing
// calculations.
//
// The package defines the fundamental types and interfaces shared by the
// rest of the module:
//
//   - [Array]: flat field of per-pixel values
//   - [Coords]: ordered (y, x) coordinate collection
//   - [Grid]: uniform, sub-sampled evaluation grid
//   - [LightProfile], [MassProfile]: grid-evaluated profile interfaces
//   - [Deflector]: anything that produces a deflection field
//
// # Example
//
//	g, _ := lens.NewUniform([2]int{100, 100}, 0.05, 2)
//	gal, _ := galaxy.NewBuilder(0.5).WithMass(profile.NewIsothermal(...)).Build()
//	kappa := gal.ConvergenceFromGrid(g)
//
// # Thread Safety
//
// Grids and profiles are immutable after construction and safe for
// concurrent use. Evaluation methods allocate fresh output arrays.
package lens
