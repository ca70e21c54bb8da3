// Package galaxy composes light and mass profiles into galaxies and
// aggregates their grid-evaluated observables.
//
// A [Galaxy] is assembled through a [Builder] with typed profile lists and
// is immutable afterwards, except for the hyper-image buffers an external
// fitting loop writes between iterations. All aggregation methods are pure
// functions of the galaxy and the grid: a galaxy with no profiles of the
// requested kind returns zero fields sized from the grid, while integral
// quantities report ok=false to distinguish "not applicable" from zero.
//
// [HyperGalaxy] is the per-galaxy noise-scaling model used to de-weight
// pixels a galaxy dominates during iterative fitting.
package galaxy
