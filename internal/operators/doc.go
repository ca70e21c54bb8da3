// Package operators implements the linear operators that map a model image
// into the observed data space: PSF convolution for imaging data and Fourier
// transforms for interferometer visibilities.
//
// Convolution runs over a padded frame: the grid image occupies the interior
// and the blurring ring, evaluated on the coordinates lens.Grid.Blurring
// returns, fills the surrounding border. Light from the ring then spills into
// the grid under the kernel exactly as it would for a larger observation.
package operators
