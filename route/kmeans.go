// seehuhn.de/go/plot - pen plotter route synthesis
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package route

import (
	"fmt"
	"math"
	"math/rand/v2"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/geometry"
)

// GroupKMeans splits points into n clusters using Lloyd's algorithm.
//
// The initial centres are chosen with the k-means++ rule, using rng.  The
// result has one entry per cluster; a cluster may end up empty.  Points keep
// their input order within a cluster.  If there are fewer than n points,
// every point forms its own cluster.
func GroupKMeans(points []vec.Vec2, n int, rng *rand.Rand) ([][]vec.Vec2, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%d clusters: %w", n, plot.ErrInvalidInput)
	}
	for i, p := range points {
		if err := geometry.CheckPoint(p); err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
	}
	if len(points) == 0 {
		return nil, nil
	}
	n = min(n, len(points))

	centres := seedCentres(points, n, rng)
	assign := make([]int, len(points))
	for i := range assign {
		assign[i] = -1
	}

	sum := make([]vec.Vec2, n)
	count := make([]int, n)
	iter := 0
	for ; iter < maxKMeansIterations; iter++ {
		changed := false
		for i, p := range points {
			c := nearest(centres, p)
			if c != assign[i] {
				assign[i] = c
				changed = true
			}
		}
		if !changed {
			break
		}

		clear(sum)
		clear(count)
		for i, p := range points {
			sum[assign[i]] = sum[assign[i]].Add(p)
			count[assign[i]]++
		}
		for c := range centres {
			if count[c] > 0 {
				centres[c] = sum[c].Mul(1 / float64(count[c]))
			}
		}
	}

	groups := make([][]vec.Vec2, n)
	for i, p := range points {
		groups[assign[i]] = append(groups[assign[i]], p)
	}
	plot.Logger().Debug("k-means grouping",
		"points", len(points),
		"clusters", n,
		"iterations", iter)
	return groups, nil
}

// seedCentres picks n initial centres.  Each new centre is drawn with
// probability proportional to the squared distance from the closest centre
// chosen so far.
func seedCentres(points []vec.Vec2, n int, rng *rand.Rand) []vec.Vec2 {
	centres := make([]vec.Vec2, 0, n)
	centres = append(centres, points[rng.IntN(len(points))])

	d2 := make([]float64, len(points))
	for i, p := range points {
		d2[i] = sqDist(p, centres[0])
	}
	for len(centres) < n {
		var total float64
		for _, d := range d2 {
			total += d
		}

		k := rng.IntN(len(points))
		if total > 0 {
			x := rng.Float64() * total
			for i, d := range d2 {
				if d == 0 {
					continue
				}
				k = i
				x -= d
				if x < 0 {
					break
				}
			}
		}
		c := points[k]
		centres = append(centres, c)
		for i, p := range points {
			d2[i] = min(d2[i], sqDist(p, c))
		}
	}
	return centres
}

// nearest returns the index of the centre closest to p.  Ties go to the
// lower index.
func nearest(centres []vec.Vec2, p vec.Vec2) int {
	best := math.Inf(1)
	res := 0
	for c, q := range centres {
		if d := sqDist(p, q); d < best {
			best = d
			res = c
		}
	}
	return res
}

func sqDist(a, b vec.Vec2) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// maxKMeansIterations bounds the number of Lloyd iterations.
const maxKMeansIterations = 100
