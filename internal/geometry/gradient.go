package geometry

// Gradient differentiates a 2D field along the given axis (0 = rows,
// 1 = columns) against the physical coordinate of each row or column:
// central differences on the interior, one-sided at the edges. Using the
// coordinate values rather than index spacing keeps the result correct for
// any pixel scale and for the descending y axis.
func Gradient(field [][]float64, coords []float64, axis int) [][]float64 {
	rows := len(field)
	if rows == 0 {
		return nil
	}
	cols := len(field[0])

	out := make([][]float64, rows)
	for r := range out {
		out[r] = make([]float64, cols)
	}

	if axis == 0 {
		if rows < 2 {
			return out
		}
		for c := 0; c < cols; c++ {
			out[0][c] = (field[1][c] - field[0][c]) / (coords[1] - coords[0])
			for r := 1; r < rows-1; r++ {
				out[r][c] = (field[r+1][c] - field[r-1][c]) / (coords[r+1] - coords[r-1])
			}
			out[rows-1][c] = (field[rows-1][c] - field[rows-2][c]) / (coords[rows-1] - coords[rows-2])
		}
		return out
	}

	if cols < 2 {
		return out
	}
	for r := 0; r < rows; r++ {
		out[r][0] = (field[r][1] - field[r][0]) / (coords[1] - coords[0])
		for c := 1; c < cols-1; c++ {
			out[r][c] = (field[r][c+1] - field[r][c-1]) / (coords[c+1] - coords[c-1])
		}
		out[r][cols-1] = (field[r][cols-1] - field[r][cols-2]) / (coords[cols-1] - coords[cols-2])
	}
	return out
}
