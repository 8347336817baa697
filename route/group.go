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
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/geometry"
)

// GroupByProximity splits points into groups in a single greedy pass.
//
// Every point joins the first group (in order of creation) which already
// holds a point closer than threshold.  If there is no such group, the
// point starts a new group.  Points keep their input order within a group.
func GroupByProximity(points []vec.Vec2, threshold float64) [][]vec.Vec2 {
	var groups [][]vec.Vec2
	switch {
	case len(points) == 0:
		return nil
	case !(threshold > 0):
		for _, p := range points {
			groups = append(groups, []vec.Vec2{p})
		}
		return groups
	case math.IsInf(threshold, 1):
		return [][]vec.Vec2{append([]vec.Vec2(nil), points...)}
	}

	type member struct {
		p     vec.Vec2
		group int
	}
	buckets := make(map[[2]int][]member)
	key := func(p vec.Vec2) [2]int {
		return [2]int{int(math.Floor(p.X / threshold)), int(math.Floor(p.Y / threshold))}
	}

	for _, p := range points {
		k := key(p)
		g := -1
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				for _, m := range buckets[[2]int{k[0] + dx, k[1] + dy}] {
					if (g < 0 || m.group < g) && geometry.Dist(m.p, p) < threshold {
						g = m.group
					}
				}
			}
		}
		if g < 0 {
			g = len(groups)
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], p)
		buckets[k] = append(buckets[k], member{p: p, group: g})
	}
	return groups
}

// Round snaps every point of r to a multiple of precision.
func Round(r plot.Route, precision float64) plot.Route {
	res := make(plot.Route, len(r))
	for i, p := range r {
		res[i] = geometry.RoundPoint(p, precision)
	}
	return res
}

// Length returns the total length of r.
func Length(r plot.Route) float64 {
	var l float64
	for i := 1; i < len(r); i++ {
		l += geometry.Dist(r[i-1], r[i])
	}
	return l
}
