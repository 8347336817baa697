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

// Package voronoi partitions the unit square into the Voronoi cells of a
// point set.
//
// Every cell is obtained by clipping the unit square with the half-planes
// bounded by the perpendicular bisectors between its site and the other
// sites.  The cells are convex and are computed independently of each
// other, which allows them to be computed in parallel.
package voronoi

import (
	"fmt"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/geometry"
)

// Partition maps the points into the square [pad, 1-pad]² and returns the
// Voronoi cell of every mapped point, clipped to the unit square.
//
// Cell i belongs to points[i].  The cells tile the unit square.  If a point
// occurs more than once, the first occurrence owns the cell and all later
// occurrences get an empty polygon.
func Partition(points []vec.Vec2, pad float64) ([]plot.Polygon, error) {
	if !(pad >= 0 && pad < 0.5) {
		return nil, fmt.Errorf("padding %g: %w", pad, plot.ErrInvalidInput)
	}
	sites := make([]vec.Vec2, len(points))
	for i, p := range points {
		if err := geometry.CheckPoint(p); err != nil {
			return nil, fmt.Errorf("site %d: %w", i, err)
		}
		sites[i] = vec.Vec2{
			X: pad + (1-2*pad)*p.X,
			Y: pad + (1-2*pad)*p.Y,
		}
	}

	cells := make([]plot.Polygon, len(sites))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range sites {
		g.Go(func() error {
			cells[i] = cell(sites, i)
			return nil
		})
	}
	g.Wait()

	plot.Logger().Debug("voronoi partition", "sites", len(sites), "pad", pad)
	return cells, nil
}

type neighbour struct {
	idx  int
	dist float64
}

// cell computes the Voronoi cell of sites[i].
func cell(sites []vec.Vec2, i int) plot.Polygon {
	s := sites[i]

	others := make([]neighbour, 0, len(sites)-1)
	for j, q := range sites {
		if j == i {
			continue
		}
		if q == s {
			if j < i {
				return plot.Polygon{}
			}
			continue
		}
		others = append(others, neighbour{idx: j, dist: geometry.Dist(s, q)})
	}
	slices.SortFunc(others, func(a, b neighbour) int {
		if a.dist < b.dist {
			return -1
		} else if a.dist > b.dist {
			return 1
		}
		return a.idx - b.idx
	})

	poly := []vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	var buf []vec.Vec2
	radius := maxDist(s, poly)
	for _, o := range others {
		// The bisector is at distance o.dist/2 from s.  Once this exceeds
		// the cell radius, no later site can cut the cell.
		if o.dist > 2*radius {
			break
		}
		q := sites[o.idx]
		n := q.Sub(s)
		c := n.Dot(vec.Vec2{X: (s.X + q.X) / 2, Y: (s.Y + q.Y) / 2})
		buf = clipHalfPlane(buf[:0], poly, n, c)
		poly, buf = buf, poly
		if len(poly) < 3 {
			return plot.Polygon{}
		}
		radius = maxDist(s, poly)
	}
	return plot.Polygon(slices.Clone(poly))
}

// clipHalfPlane appends to res the part of the convex polygon poly which
// satisfies n·x <= c.
func clipHalfPlane(res, poly []vec.Vec2, n vec.Vec2, c float64) []vec.Vec2 {
	res = slices.Grow(res, len(poly)+1)
	k := len(poly)
	a := poly[k-1]
	da := n.Dot(a) - c
	for _, b := range poly {
		db := n.Dot(b) - c
		if (da < 0 && db > 0) || (da > 0 && db < 0) {
			t := da / (da - db)
			res = append(res, vec.Vec2{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)})
		}
		if db <= 0 {
			res = append(res, b)
		}
		a, da = b, db
	}
	return res
}

func maxDist(s vec.Vec2, poly []vec.Vec2) float64 {
	var r float64
	for _, p := range poly {
		r = max(r, geometry.Dist(s, p))
	}
	return r
}

// FilterBySquareEdge returns the non-empty polygons whose bounding square
// has an edge shorter than threshold.  The input slice is reused.
func FilterBySquareEdge(polys []plot.Polygon, threshold float64) []plot.Polygon {
	res := polys[:0]
	for _, poly := range polys {
		if len(poly) < 3 {
			continue
		}
		edge, err := geometry.BoundingSquareEdge(poly)
		if err != nil || !(edge < threshold) {
			continue
		}
		res = append(res, poly)
	}
	dropped := len(polys) - len(res)
	if dropped > 0 {
		plot.Logger().Debug("dropped large voronoi cells",
			"dropped", dropped, "threshold", threshold)
	}
	return res
}
