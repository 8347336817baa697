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
	"slices"

	"github.com/tidwall/rtree"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/plot/geometry"
)

// segment is a piece of a route, stored in the collision index.
type segment struct {
	route, seg int
	a, b       vec.Vec2
}

// index finds the route segments crossing a query segment.
//
// Every segment is stored once in an R-tree under its bounding box,
// enlarged by a small margin so that segments touching at an endpoint
// have overlapping boxes.
type index struct {
	tree rtree.RTreeG[*segment]
	pad  float64
	cand []*segment
}

// newIndex returns an empty index.  The margin around the segments is
// chosen relative to scale, the size of the drawing.
func newIndex(scale float64) *index {
	return &index{pad: indexPadding * max(scale, 1)}
}

func (idx *index) box(a, b vec.Vec2) (lo, hi [2]float64) {
	lo = [2]float64{min(a.X, b.X) - idx.pad, min(a.Y, b.Y) - idx.pad}
	hi = [2]float64{max(a.X, b.X) + idx.pad, max(a.Y, b.Y) + idx.pad}
	return lo, hi
}

// add stores segment seg of the given route.
func (idx *index) add(route, seg int, a, b vec.Vec2) {
	lo, hi := idx.box(a, b)
	idx.tree.Insert(lo, hi, &segment{route: route, seg: seg, a: a, b: b})
}

// collide returns the crossing of the segment from-to with the stored
// segments of all routes other than skip.
//
// If there are several crossings, the one with the smallest horizontal
// distance to from is returned.  Ties go to the lowest route index and then
// to the earliest segment.
func (idx *index) collide(from, to vec.Vec2, skip int) (vec.Vec2, bool) {
	cand := idx.cand[:0]
	lo, hi := idx.box(from, to)
	idx.tree.Search(lo, hi, func(_, _ [2]float64, s *segment) bool {
		if s.route != skip {
			cand = append(cand, s)
		}
		return true
	})
	slices.SortFunc(cand, func(s, t *segment) int {
		if s.route != t.route {
			return s.route - t.route
		}
		return s.seg - t.seg
	})
	idx.cand = cand

	best := math.Inf(1)
	var res vec.Vec2
	hit := false
	for _, s := range cand {
		q, ok := geometry.SegmentIntersection(from, to, s.a, s.b)
		if !ok {
			continue
		}
		if dx := math.Abs(q.X - from.X); dx < best {
			best = dx
			res = q
			hit = true
		}
	}
	return res, hit
}

// indexPadding is the relative amount by which segment bounding boxes are
// enlarged.
const indexPadding = 1e-9
