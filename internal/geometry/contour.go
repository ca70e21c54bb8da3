package geometry

import "math"

// findContours extracts the level crossings of a 2D field as ordered paths
// of fractional (row, col) coordinates, marching-squares style: each cell of
// four neighbouring samples contributes line segments with endpoints placed
// on cell edges by linear interpolation, and segments sharing endpoints are
// chained into paths. Cells containing non-finite samples are skipped, so a
// divergent value elsewhere in the field cannot break extraction.
func findContours(field [][]float64, level float64) [][][2]float64 {
	rows := len(field)
	if rows < 2 {
		return nil
	}
	cols := len(field[0])
	if cols < 2 {
		return nil
	}

	var segs []segment
	for r := 0; r < rows-1; r++ {
		for c := 0; c < cols-1; c++ {
			segs = append(segs, cellSegments(field, r, c, level)...)
		}
	}
	return chainSegments(segs)
}

type contourPoint struct {
	r, c float64
}

type segment struct {
	a, b contourPoint
}

// frac places the crossing between two samples straddling the level.
func frac(a, b, level float64) float64 {
	return (level - a) / (b - a)
}

func cellSegments(field [][]float64, r, c int, level float64) []segment {
	ul := field[r][c]
	ur := field[r][c+1]
	ll := field[r+1][c]
	lr := field[r+1][c+1]

	for _, v := range [4]float64{ul, ur, ll, lr} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
	}

	idx := 0
	if ul > level {
		idx |= 8
	}
	if ur > level {
		idx |= 4
	}
	if lr > level {
		idx |= 2
	}
	if ll > level {
		idx |= 1
	}
	if idx == 0 || idx == 15 {
		return nil
	}

	top := func() contourPoint { return contourPoint{float64(r), float64(c) + frac(ul, ur, level)} }
	bottom := func() contourPoint { return contourPoint{float64(r) + 1, float64(c) + frac(ll, lr, level)} }
	left := func() contourPoint { return contourPoint{float64(r) + frac(ul, ll, level), float64(c)} }
	right := func() contourPoint { return contourPoint{float64(r) + frac(ur, lr, level), float64(c) + 1} }

	switch idx {
	case 1, 14:
		return []segment{{left(), bottom()}}
	case 2, 13:
		return []segment{{bottom(), right()}}
	case 3, 12:
		return []segment{{left(), right()}}
	case 4, 11:
		return []segment{{top(), right()}}
	case 6, 9:
		return []segment{{top(), bottom()}}
	case 7, 8:
		return []segment{{left(), top()}}
	case 5:
		// Saddle: disambiguate with the cell-centre average.
		if (ul+ur+ll+lr)/4 > level {
			return []segment{{left(), top()}, {bottom(), right()}}
		}
		return []segment{{left(), bottom()}, {top(), right()}}
	case 10:
		if (ul+ur+ll+lr)/4 > level {
			return []segment{{top(), right()}, {left(), bottom()}}
		}
		return []segment{{left(), top()}, {bottom(), right()}}
	}
	return nil
}

type endpointKey struct {
	r, c int64
}

func keyOf(p contourPoint) endpointKey {
	const quantum = 1e8
	return endpointKey{int64(math.Round(p.r * quantum)), int64(math.Round(p.c * quantum))}
}

// chainSegments links segments sharing endpoints into ordered paths. Paths
// come out in the order their first segment was generated, so the tracer's
// "first contour" is the one encountered first in the row-major scan.
func chainSegments(segs []segment) [][][2]float64 {
	if len(segs) == 0 {
		return nil
	}

	adjacency := make(map[endpointKey][]int, 2*len(segs))
	for i, s := range segs {
		adjacency[keyOf(s.a)] = append(adjacency[keyOf(s.a)], i)
		adjacency[keyOf(s.b)] = append(adjacency[keyOf(s.b)], i)
	}

	used := make([]bool, len(segs))
	takeNext := func(at endpointKey, self int) (int, bool) {
		for _, i := range adjacency[at] {
			if !used[i] && i != self {
				return i, true
			}
		}
		return -1, false
	}

	var paths [][][2]float64
	for start := range segs {
		if used[start] {
			continue
		}
		used[start] = true

		forward := []contourPoint{segs[start].a, segs[start].b}
		// Extend forward from the tail.
		for {
			i, ok := takeNext(keyOf(forward[len(forward)-1]), -1)
			if !ok {
				break
			}
			used[i] = true
			tail := keyOf(forward[len(forward)-1])
			if keyOf(segs[i].a) == tail {
				forward = append(forward, segs[i].b)
			} else {
				forward = append(forward, segs[i].a)
			}
		}
		// Extend backward from the head.
		var backward []contourPoint
		for {
			head := keyOf(forward[0])
			if len(backward) > 0 {
				head = keyOf(backward[len(backward)-1])
			}
			i, ok := takeNext(head, -1)
			if !ok {
				break
			}
			used[i] = true
			if keyOf(segs[i].a) == head {
				backward = append(backward, segs[i].b)
			} else {
				backward = append(backward, segs[i].a)
			}
		}

		path := make([][2]float64, 0, len(forward)+len(backward))
		for i := len(backward) - 1; i >= 0; i-- {
			path = append(path, [2]float64{backward[i].r, backward[i].c})
		}
		for _, p := range forward {
			path = append(path, [2]float64{p.r, p.c})
		}
		paths = append(paths, path)
	}
	return paths
}
