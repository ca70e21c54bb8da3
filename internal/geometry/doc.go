// Package geometry derives lensing geometry from deflection fields.
//
// Given any [lens.Deflector] and a grid, the package computes the lensing
// Jacobian by finite differences, the convergence, shear, eigenvalues and
// magnification it implies, and the critical curves and caustics of the
// mass model via contour extraction.
//
// Near true critical curves the magnification diverges; Inf and NaN values
// propagate as data rather than errors. Contour extraction operates on the
// eigenvalue fields, which pass through zero smoothly, so singular
// magnifications never reach the tracer. A mass model with no critical
// structure legitimately yields empty curves.
package geometry
