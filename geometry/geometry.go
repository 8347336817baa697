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

// Package geometry implements the 2D primitives used for route synthesis:
// segment intersection, point in polygon tests and clipping against
// rectangles.
//
// All functions are pure and safe for concurrent use. Degenerate input, such
// as zero-length or parallel segments, results in "no intersection" rather
// than an error.
package geometry

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/plot"
)

// SegmentIntersection returns the intersection point of the segments p1-p2
// and q1-q2.
//
// Both segments are treated as closed, so segments sharing only an endpoint
// do intersect. Parallel segments never intersect, even if they are
// collinear and overlap.
func SegmentIntersection(p1, p2, q1, q2 vec.Vec2) (vec.Vec2, bool) {
	r := p2.Sub(p1)
	s := q2.Sub(q1)

	rxs := cross(r, s)
	if rxs == 0 {
		return vec.Vec2{}, false
	}

	qp := q1.Sub(p1)
	t := cross(qp, s) / rxs
	u := cross(qp, r) / rxs
	if !(t >= 0 && t <= 1 && u >= 0 && u <= 1) {
		return vec.Vec2{}, false
	}
	return vec.Vec2{X: p1.X + t*r.X, Y: p1.Y + t*r.Y}, true
}

// cross returns the z-component of the cross product a × b.
func cross(a, b vec.Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

// PointInPolygon reports whether p lies inside the polygon.
//
// The test counts crossings of a ray in +x direction. Boundaries are
// half-open: for an axis-aligned rectangle, points on the lower and left
// edges are inside while points on the upper and right edges are outside.
// Two polygons sharing an edge therefore never both contain a point on that
// edge.
func PointInPolygon(p vec.Vec2, poly plot.Polygon) bool {
	n := len(poly)
	if n < 3 {
		return false
	}

	inside := false
	j := n - 1
	for i := range n {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// ClipToBoundaries returns the point where the segment p1-p2 leaves the
// rectangle r.
//
// If both endpoints are strictly inside r, no clipping is needed and
// the function returns false. Otherwise the edges of r are tried in the
// order bottom, left, right, top, and the first intersection found is
// returned.
func ClipToBoundaries(p1, p2 vec.Vec2, r rect.Rect) (vec.Vec2, bool) {
	if StrictlyInBoundaries(p1, r) && StrictlyInBoundaries(p2, r) {
		return vec.Vec2{}, false
	}

	ll := vec.Vec2{X: r.LLx, Y: r.LLy}
	lr := vec.Vec2{X: r.URx, Y: r.LLy}
	ul := vec.Vec2{X: r.LLx, Y: r.URy}
	ur := vec.Vec2{X: r.URx, Y: r.URy}
	edges := [4][2]vec.Vec2{
		{ll, lr},
		{ll, ul},
		{lr, ur},
		{ul, ur},
	}
	for _, e := range edges {
		if q, ok := SegmentIntersection(p1, p2, e[0], e[1]); ok {
			return q, true
		}
	}
	return vec.Vec2{}, false
}

// Bounds returns the bounding rectangle of a polygon.
func Bounds(poly plot.Polygon) (rect.Rect, error) {
	if len(poly) == 0 {
		return rect.Rect{}, plot.ErrEmptyPolygon
	}
	return PointsBounds(poly), nil
}

// PointsBounds returns the bounding rectangle of a non-empty point set.
// For an empty set the zero rectangle is returned.
func PointsBounds(pts []vec.Vec2) rect.Rect {
	if len(pts) == 0 {
		return rect.Rect{}
	}
	b := rect.Rect{LLx: pts[0].X, LLy: pts[0].Y, URx: pts[0].X, URy: pts[0].Y}
	for _, p := range pts[1:] {
		b.LLx = min(b.LLx, p.X)
		b.LLy = min(b.LLy, p.Y)
		b.URx = max(b.URx, p.X)
		b.URy = max(b.URy, p.Y)
	}
	return b
}

// BoundingSquareEdge returns the side length of the smallest axis-aligned
// square containing the polygon's bounding rectangle.
func BoundingSquareEdge(poly plot.Polygon) (float64, error) {
	b, err := Bounds(poly)
	if err != nil {
		return 0, err
	}
	return max(b.URx-b.LLx, b.URy-b.LLy), nil
}

// Area returns the (unsigned) area enclosed by the polygon.
func Area(poly plot.Polygon) float64 {
	n := len(poly)
	if n < 3 {
		return 0
	}
	var sum float64
	j := n - 1
	for i := range n {
		sum += cross(poly[j], poly[i])
		j = i
	}
	return math.Abs(sum) / 2
}

// CheckPoint returns an error wrapping [plot.ErrInvalidInput] if p has a NaN
// or infinite coordinate.
func CheckPoint(p vec.Vec2) error {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
		return fmt.Errorf("point %v: %w", p, plot.ErrInvalidInput)
	}
	return nil
}
