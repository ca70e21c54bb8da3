package operators

import (
	"fmt"
	"math"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/lenslab/internal/lens"
)

// UVPoint is a single interferometer baseline coordinate, in units of the
// observed wavelength.
type UVPoint struct {
	U, V float64
}

// TransformerDFT maps grid images to visibilities at arbitrary uv points by
// direct summation. The phase factors depend only on the grid and the uv
// coverage, so they are computed once and reused for every image.
type TransformerDFT struct {
	gridLen int
	phases  [][]complex128 // [visibility][pixel]
}

// NewTransformerDFT precomputes the transform from the grid's native pixels
// to the given uv points.
func NewTransformerDFT(uv []UVPoint, g *lens.Grid) *TransformerDFT {
	// Native-resolution coordinates: bin the sub-grid positions the same way
	// image values are binned.
	coords := g.BinCoords(g.Coords())

	t := &TransformerDFT{
		gridLen: g.Len(),
		phases:  make([][]complex128, len(uv)),
	}
	for j, p := range uv {
		row := make([]complex128, len(coords))
		for i, c := range coords {
			arg := 2 * math.Pi * (c.X*p.U + c.Y*p.V)
			row[i] = complex(math.Cos(arg), math.Sin(arg))
		}
		t.phases[j] = row
	}
	return t
}

// Visibilities sums the image against the precomputed phases.
func (t *TransformerDFT) Visibilities(image lens.Array) (lens.Visibilities, error) {
	if len(image) != t.gridLen {
		return nil, fmt.Errorf("%w: image has %d values, transformer expects %d",
			lens.ErrFieldLength, len(image), t.gridLen)
	}
	vis := make(lens.Visibilities, len(t.phases))
	for j, row := range t.phases {
		var sum complex128
		for i, v := range image {
			sum += complex(v, 0) * row[i]
		}
		vis[j] = sum
	}
	return vis, nil
}

// TransformerFFT maps grid images to the full regular uv lattice via a 2D
// FFT. It suits densely sampled uv planes where the DFT's per-point cost is
// prohibitive.
type TransformerFFT struct {
	shape [2]int
}

// NewTransformerFFT builds a transformer for images of the given native grid
// shape.
func NewTransformerFFT(g *lens.Grid) *TransformerFFT {
	return &TransformerFFT{shape: g.Shape()}
}

// Visibilities returns the 2D FFT of the image flattened row-major over the
// uv lattice.
func (t *TransformerFFT) Visibilities(image lens.Array) (lens.Visibilities, error) {
	if len(image) != t.shape[0]*t.shape[1] {
		return nil, fmt.Errorf("%w: image has %d values, transformer expects %dx%d",
			lens.ErrFieldLength, len(image), t.shape[0], t.shape[1])
	}

	rows := make([][]float64, t.shape[0])
	for r := range rows {
		rows[r] = image[r*t.shape[1] : (r+1)*t.shape[1]]
	}
	spectrum := fft.FFT2Real(rows)

	vis := make(lens.Visibilities, 0, len(image))
	for _, row := range spectrum {
		vis = append(vis, row...)
	}
	return vis, nil
}
