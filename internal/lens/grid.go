package lens

// Grid is a uniform, centre-symmetric evaluation grid of (y, x) coordinates.
//
// The grid has a native pixel shape (rows, cols) and an optional sub-sampling
// factor: each native pixel is split into sub*sub sub-pixels, and quantities
// evaluated on the sub-grid are binned back to the native layout by averaging.
// Row 0 holds the maximum y (image convention); x increases with column.
type Grid struct {
	shape       [2]int
	pixelScales [2]float64
	origin      Coord
	sub         int
	coords      Coords
}

// NewUniform builds a grid with square pixels centred on the origin.
func NewUniform(shape [2]int, pixelScale float64, sub int) (*Grid, error) {
	return NewUniformAt(shape, [2]float64{pixelScale, pixelScale}, Coord{}, sub)
}

// NewUniformAt builds a grid with per-axis pixel scales centred on origin.
func NewUniformAt(shape [2]int, pixelScales [2]float64, origin Coord, sub int) (*Grid, error) {
	if shape[0] <= 0 || shape[1] <= 0 || sub <= 0 {
		return nil, ErrGridShape
	}
	if pixelScales[0] <= 0 || pixelScales[1] <= 0 {
		return nil, ErrPixelScale
	}

	g := &Grid{
		shape:       shape,
		pixelScales: pixelScales,
		origin:      origin,
		sub:         sub,
	}

	rows, cols := g.SubShape()[0], g.SubShape()[1]
	g.coords = make(Coords, rows*cols)
	for r := 0; r < rows; r++ {
		y := g.subY(float64(r))
		for c := 0; c < cols; c++ {
			g.coords[r*cols+c] = Coord{Y: y, X: g.subX(float64(c))}
		}
	}
	return g, nil
}

func (g *Grid) subY(row float64) float64 {
	scale := g.pixelScales[0] / float64(g.sub)
	rows := float64(g.shape[0] * g.sub)
	return g.origin.Y + ((rows-1)/2-row)*scale
}

func (g *Grid) subX(col float64) float64 {
	scale := g.pixelScales[1] / float64(g.sub)
	cols := float64(g.shape[1] * g.sub)
	return g.origin.X + (col-(cols-1)/2)*scale
}

// Shape is the native (rows, cols) pixel shape.
func (g *Grid) Shape() [2]int { return g.shape }

// SubShape is the sub-sampled (rows, cols) shape.
func (g *Grid) SubShape() [2]int {
	return [2]int{g.shape[0] * g.sub, g.shape[1] * g.sub}
}

func (g *Grid) PixelScales() [2]float64 { return g.pixelScales }
func (g *Grid) Origin() Coord           { return g.origin }
func (g *Grid) SubSize() int            { return g.sub }

// Len is the number of native pixels.
func (g *Grid) Len() int { return g.shape[0] * g.shape[1] }

// SubLen is the number of sub-grid points.
func (g *Grid) SubLen() int { return len(g.coords) }

// Coords returns the sub-grid coordinates, row-major. The slice is owned by
// the grid and must be treated as read-only.
func (g *Grid) Coords() Coords { return g.coords }

// AxisY returns the physical y coordinate of each sub-grid row, descending.
func (g *Grid) AxisY() []float64 {
	rows := g.shape[0] * g.sub
	ys := make([]float64, rows)
	for r := range ys {
		ys[r] = g.subY(float64(r))
	}
	return ys
}

// AxisX returns the physical x coordinate of each sub-grid column, ascending.
func (g *Grid) AxisX() []float64 {
	cols := g.shape[1] * g.sub
	xs := make([]float64, cols)
	for c := range xs {
		xs[c] = g.subX(float64(c))
	}
	return xs
}

// BinArray averages a sub-grid array into the native pixel layout. Arrays
// already at native length pass through unchanged, so sub=1 grids and
// native-resolution fields need no special casing by callers.
func (g *Grid) BinArray(sub Array) Array {
	if g.sub == 1 || len(sub) == g.Len() {
		return sub.Clone()
	}
	out := Zeros(g.Len())
	cols := g.shape[1] * g.sub
	frac := 1.0 / float64(g.sub*g.sub)
	for i, v := range sub {
		r, c := i/cols, i%cols
		n := (r/g.sub)*g.shape[1] + c/g.sub
		out[n] += v * frac
	}
	return out
}

// BinCoords averages a sub-grid vector field into the native pixel layout.
func (g *Grid) BinCoords(sub Coords) Coords {
	if g.sub == 1 || len(sub) == g.Len() {
		return sub.Clone()
	}
	out := ZeroCoords(g.Len())
	cols := g.shape[1] * g.sub
	frac := 1.0 / float64(g.sub*g.sub)
	for i, v := range sub {
		r, c := i/cols, i%cols
		n := (r/g.sub)*g.shape[1] + c/g.sub
		out[n].Y += v.Y * frac
		out[n].X += v.X * frac
	}
	return out
}

// SubArray2D reshapes a sub-grid array into its 2D layout.
func (g *Grid) SubArray2D(a Array) [][]float64 {
	rows, cols := g.shape[0]*g.sub, g.shape[1]*g.sub
	out := make([][]float64, rows)
	for r := 0; r < rows; r++ {
		out[r] = a[r*cols : (r+1)*cols]
	}
	return out
}

// PhysicalFromContour maps fractional (row, col) sub-grid pixel coordinates,
// as produced by contour tracing, to physical (y, x) coordinates.
func (g *Grid) PhysicalFromContour(path [][2]float64) Coords {
	out := make(Coords, len(path))
	for i, p := range path {
		out[i] = Coord{Y: g.subY(p[0]), X: g.subX(p[1])}
	}
	return out
}

// Blurring returns the coordinates of the ring of native pixels surrounding
// the grid that a PSF of the given kernel shape can blur into it. Pixels are
// ordered row-major over the padded frame, skipping the grid interior; the
// convolver relies on this ordering.
func (g *Grid) Blurring(kernelShape [2]int) Coords {
	padY, padX := kernelShape[0]/2, kernelShape[1]/2
	rows, cols := g.shape[0]+2*padY, g.shape[1]+2*padX

	out := make(Coords, 0, rows*cols-g.Len())
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if r >= padY && r < padY+g.shape[0] && c >= padX && c < padX+g.shape[1] {
				continue
			}
			// Native-resolution coordinates, extrapolated past the edge.
			y := g.origin.Y + (float64(g.shape[0]-1)/2-float64(r-padY))*g.pixelScales[0]
			x := g.origin.X + (float64(c-padX)-float64(g.shape[1]-1)/2)*g.pixelScales[1]
			out = append(out, Coord{Y: y, X: x})
		}
	}
	return out
}
