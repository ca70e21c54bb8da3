package viz

import (
	"math"
	"strings"

	"github.com/san-kum/lenslab/internal/lens"
)

// shades orders characters from empty to full coverage.
var shades = []rune{' ', '░', '▒', '▓', '█'}

// Heatmap renders a native-resolution field as shaded characters, one per
// pixel. Values are scaled linearly between the finite minimum and maximum;
// NaN and Inf pixels render as '·' so singular centres stay visible without
// saturating the scale.
func Heatmap(field lens.Array, shape [2]int) string {
	min, max := finiteRange(field)

	var b strings.Builder
	for r := 0; r < shape[0]; r++ {
		for c := 0; c < shape[1]; c++ {
			v := field[r*shape[1]+c]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				b.WriteRune('·')
				continue
			}
			b.WriteRune(shade(v, min, max))
		}
		b.WriteRune('\n')
	}
	return b.String()
}

// LogHeatmap renders log10 of the field's positive values, which suits
// quantities spanning decades like convergence near a lens centre.
func LogHeatmap(field lens.Array, shape [2]int) string {
	logged := make(lens.Array, len(field))
	for i, v := range field {
		if v > 0 {
			logged[i] = math.Log10(v)
		} else {
			logged[i] = math.NaN()
		}
	}
	return Heatmap(logged, shape)
}

func shade(v, min, max float64) rune {
	if max <= min {
		return shades[0]
	}
	idx := int((v - min) / (max - min) * float64(len(shades)-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(shades) {
		idx = len(shades) - 1
	}
	return shades[idx]
}

func finiteRange(field lens.Array) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range field {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min > max {
		return 0, 0
	}
	return min, max
}
