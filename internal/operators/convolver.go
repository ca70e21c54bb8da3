package operators

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/san-kum/lenslab/internal/lens"
)

var (
	// ErrKernelShape indicates a PSF kernel with even or non-positive
	// dimensions. Odd dimensions keep the kernel centre on a pixel.
	ErrKernelShape = errors.New("operators: psf kernel dimensions must be odd and positive")

	// ErrKernelData indicates kernel data whose length does not match the
	// declared shape.
	ErrKernelData = errors.New("operators: psf kernel data does not match shape")
)

// PSF is a point spread function kernel, row-major with odd dimensions so
// the central pixel is well defined.
type PSF struct {
	shape [2]int
	data  lens.Array
}

// NewPSF validates and wraps a kernel. The data is copied.
func NewPSF(shape [2]int, data lens.Array) (*PSF, error) {
	if shape[0] <= 0 || shape[1] <= 0 || shape[0]%2 == 0 || shape[1]%2 == 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrKernelShape, shape[0], shape[1])
	}
	if len(data) != shape[0]*shape[1] {
		return nil, fmt.Errorf("%w: %d values for %dx%d", ErrKernelData, len(data), shape[0], shape[1])
	}
	return &PSF{shape: shape, data: data.Clone()}, nil
}

// NewGaussianPSF builds a unit-sum Gaussian kernel with the given sigma in
// pixels.
func NewGaussianPSF(shape [2]int, sigma float64) (*PSF, error) {
	if shape[0] <= 0 || shape[1] <= 0 || shape[0]%2 == 0 || shape[1]%2 == 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrKernelShape, shape[0], shape[1])
	}
	data := lens.Zeros(shape[0] * shape[1])
	cy, cx := shape[0]/2, shape[1]/2
	sum := 0.0
	for r := 0; r < shape[0]; r++ {
		for c := 0; c < shape[1]; c++ {
			dy, dx := float64(r-cy), float64(c-cx)
			v := gaussian2D(dy, dx, sigma)
			data[r*shape[1]+c] = v
			sum += v
		}
	}
	for i := range data {
		data[i] /= sum
	}
	return &PSF{shape: shape, data: data}, nil
}

func gaussian2D(dy, dx, sigma float64) float64 {
	return math.Exp(-(dy*dy + dx*dx) / (2 * sigma * sigma))
}

// Shape is the kernel (rows, cols) shape.
func (p *PSF) Shape() [2]int { return p.shape }

// Data returns the kernel values, row-major.
func (p *PSF) Data() lens.Array { return p.data }

// Normalized returns a copy of the PSF rescaled to unit sum.
func (p *PSF) Normalized() *PSF {
	sum := 0.0
	for _, v := range p.data {
		sum += v
	}
	out := p.data.Clone()
	if sum != 0 {
		out = out.Scale(1 / sum)
	}
	return &PSF{shape: p.shape, data: out}
}

// FFTConvolver convolves grid images with a fixed PSF. The kernel spectrum
// and FFT plans are computed once per (kernel, grid shape) pair, so repeated
// convolutions in a fit loop only pay for the image transforms.
type FFTConvolver struct {
	gridShape [2]int
	pad       [2]int
	frame     [2]int

	fh, fw    int
	rowFFT    *fourier.CmplxFFT
	colFFT    *fourier.CmplxFFT
	kernelHat [][]complex128
}

// NewFFTConvolver plans convolution of images on a grid of the given native
// shape with the PSF.
func NewFFTConvolver(psf *PSF, gridShape [2]int) (*FFTConvolver, error) {
	if gridShape[0] <= 0 || gridShape[1] <= 0 {
		return nil, lens.ErrGridShape
	}
	kh, kw := psf.shape[0], psf.shape[1]
	pad := [2]int{kh / 2, kw / 2}
	frame := [2]int{gridShape[0] + 2*pad[0], gridShape[1] + 2*pad[1]}

	c := &FFTConvolver{
		gridShape: gridShape,
		pad:       pad,
		frame:     frame,
		fh:        nextPow2(frame[0] + kh - 1),
		fw:        nextPow2(frame[1] + kw - 1),
	}
	c.rowFFT = fourier.NewCmplxFFT(c.fw)
	c.colFFT = fourier.NewCmplxFFT(c.fh)

	// Kernel embedded top-left; the matching "same" crop offset is applied
	// when the interior is extracted.
	c.kernelHat = makeComplex2D(c.fh, c.fw)
	for r := 0; r < kh; r++ {
		for col := 0; col < kw; col++ {
			c.kernelHat[r][col] = complex(psf.data[r*kw+col], 0)
		}
	}
	c.fft2(c.kernelHat, true)
	return c, nil
}

// BlurringLen is the number of blurring-ring values Convolve expects,
// matching lens.Grid.Blurring for the same kernel shape.
func (c *FFTConvolver) BlurringLen() int {
	return c.frame[0]*c.frame[1] - c.gridShape[0]*c.gridShape[1]
}

// Convolve blurs a native-resolution grid image together with its blurring
// ring. The blurring values must be ordered the way lens.Grid.Blurring
// orders its coordinates: row-major over the padded frame, interior skipped.
func (c *FFTConvolver) Convolve(image, blurring lens.Array) (lens.Array, error) {
	if len(image) != c.gridShape[0]*c.gridShape[1] {
		return nil, fmt.Errorf("%w: image has %d values, grid is %dx%d",
			lens.ErrFieldLength, len(image), c.gridShape[0], c.gridShape[1])
	}
	if len(blurring) != c.BlurringLen() {
		return nil, fmt.Errorf("%w: blurring ring has %d values, expected %d",
			lens.ErrFieldLength, len(blurring), c.BlurringLen())
	}

	a := makeComplex2D(c.fh, c.fw)
	bi := 0
	for r := 0; r < c.frame[0]; r++ {
		for col := 0; col < c.frame[1]; col++ {
			interior := r >= c.pad[0] && r < c.pad[0]+c.gridShape[0] &&
				col >= c.pad[1] && col < c.pad[1]+c.gridShape[1]
			if interior {
				a[r][col] = complex(image[(r-c.pad[0])*c.gridShape[1]+(col-c.pad[1])], 0)
			} else {
				a[r][col] = complex(blurring[bi], 0)
				bi++
			}
		}
	}

	c.fft2(a, true)
	for r := 0; r < c.fh; r++ {
		for col := 0; col < c.fw; col++ {
			a[r][col] *= c.kernelHat[r][col]
		}
	}
	c.fft2(a, false)

	// Forward-then-inverse is unnormalized, so divide by the transform size.
	// The "same" crop of the frame starts at (pad, pad) within the full
	// result; the grid interior sits a further (pad, pad) in.
	scale := float64(c.fh * c.fw)
	out := lens.Zeros(len(image))
	for r := 0; r < c.gridShape[0]; r++ {
		for col := 0; col < c.gridShape[1]; col++ {
			out[r*c.gridShape[1]+col] = real(a[r+2*c.pad[0]][col+2*c.pad[1]]) / scale
		}
	}
	return out, nil
}

func (c *FFTConvolver) fft2(a [][]complex128, forward bool) {
	for r := 0; r < c.fh; r++ {
		if forward {
			c.rowFFT.Coefficients(a[r], a[r])
		} else {
			c.rowFFT.Sequence(a[r], a[r])
		}
	}
	col := make([]complex128, c.fh)
	for x := 0; x < c.fw; x++ {
		for r := 0; r < c.fh; r++ {
			col[r] = a[r][x]
		}
		if forward {
			c.colFFT.Coefficients(col, col)
		} else {
			c.colFFT.Sequence(col, col)
		}
		for r := 0; r < c.fh; r++ {
			a[r][x] = col[r]
		}
	}
}

func makeComplex2D(h, w int) [][]complex128 {
	m := make([][]complex128, h)
	for i := range m {
		m[i] = make([]complex128, w)
	}
	return m
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
