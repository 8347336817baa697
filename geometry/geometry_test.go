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

package geometry

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/tdewolff/test"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/plot"
)

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

func TestSegmentIntersection(t *testing.T) {
	var tts = []struct {
		p1, p2, q1, q2 vec.Vec2
		ok             bool
		want           vec.Vec2
	}{
		// crossing diagonals
		{pt(0, 0), pt(2, 2), pt(0, 2), pt(2, 0), true, pt(1, 1)},
		// shared endpoint
		{pt(0, 0), pt(1, 1), pt(1, 1), pt(2, 0), true, pt(1, 1)},
		// T junction
		{pt(0, 0), pt(4, 0), pt(2, -1), pt(2, 0), true, pt(2, 0)},
		// parallel
		{pt(0, 0), pt(1, 0), pt(0, 1), pt(1, 1), false, vec.Vec2{}},
		// collinear and overlapping
		{pt(0, 0), pt(2, 0), pt(1, 0), pt(3, 0), false, vec.Vec2{}},
		// lines cross, segments do not
		{pt(0, 0), pt(1, 1), pt(3, 0), pt(2, 1), false, vec.Vec2{}},
		// zero length
		{pt(0, 0), pt(0, 0), pt(-1, 0), pt(1, 0), false, vec.Vec2{}},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			got, ok := SegmentIntersection(tt.p1, tt.p2, tt.q1, tt.q2)
			test.T(t, ok, tt.ok)
			if ok {
				test.Float(t, got.X, tt.want.X)
				test.Float(t, got.Y, tt.want.Y)
			}
		})
	}
}

func TestSegmentIntersectionSymmetric(t *testing.T) {
	a, okA := SegmentIntersection(pt(0, 0), pt(3, 1), pt(1, -1), pt(2, 2))
	b, okB := SegmentIntersection(pt(1, -1), pt(2, 2), pt(0, 0), pt(3, 1))
	test.That(t, okA && okB, "both orders should intersect")
	test.FloatDiff(t, a.X, b.X, 1e-12)
	test.FloatDiff(t, a.Y, b.Y, 1e-12)
}

func TestPointInPolygon(t *testing.T) {
	square := plot.Polygon{pt(0, 0), pt(1, 0), pt(1, 1), pt(0, 1)}
	triangle := plot.Polygon{pt(0, 0), pt(4, 0), pt(0, 4)}

	var tts = []struct {
		name string
		poly plot.Polygon
		p    vec.Vec2
		want bool
	}{
		{"centre", square, pt(0.5, 0.5), true},
		{"outside", square, pt(1.5, 0.5), false},
		{"left edge", square, pt(0, 0.5), true},
		{"bottom edge", square, pt(0.5, 0), true},
		{"right edge", square, pt(1, 0.5), false},
		{"top edge", square, pt(0.5, 1), false},
		{"lower left corner", square, pt(0, 0), true},
		{"upper right corner", square, pt(1, 1), false},
		{"triangle inside", triangle, pt(1, 1), true},
		{"triangle outside", triangle, pt(3, 3), false},
		{"degenerate", plot.Polygon{pt(0, 0), pt(1, 1)}, pt(0.5, 0.5), false},
	}
	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			test.T(t, PointInPolygon(tt.p, tt.poly), tt.want)
		})
	}
}

// TestPointInPolygonSharedEdge checks that a point on an edge shared by two
// adjacent cells is claimed by exactly one of them.
func TestPointInPolygonSharedEdge(t *testing.T) {
	left := plot.Polygon{pt(0, 0), pt(1, 0), pt(1, 1), pt(0, 1)}
	right := plot.Polygon{pt(1, 0), pt(2, 0), pt(2, 1), pt(1, 1)}
	for _, y := range []float64{0.1, 0.5, 0.9} {
		p := pt(1, y)
		n := 0
		if PointInPolygon(p, left) {
			n++
		}
		if PointInPolygon(p, right) {
			n++
		}
		if n != 1 {
			t.Errorf("point %v claimed by %d cells", p, n)
		}
	}
}

func TestClipToBoundaries(t *testing.T) {
	r := rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 10}

	_, ok := ClipToBoundaries(pt(1, 1), pt(9, 9), r)
	test.That(t, !ok, "segment inside needs no clipping")

	q, ok := ClipToBoundaries(pt(5, 5), pt(15, 5), r)
	test.That(t, ok, "segment leaving through the right edge")
	test.T(t, q, pt(10, 5))

	q, ok = ClipToBoundaries(pt(5, 5), pt(5, -5), r)
	test.That(t, ok, "segment leaving through the bottom edge")
	test.T(t, q, pt(5, 0))

	// an endpoint on the boundary is not strictly inside
	q, ok = ClipToBoundaries(pt(0, 5), pt(5, 5), r)
	test.That(t, ok, "segment touching the left edge")
	test.T(t, q, pt(0, 5))

	_, ok = ClipToBoundaries(pt(20, 20), pt(30, 30), r)
	test.That(t, !ok, "segment outside the rectangle")
}

func TestBounds(t *testing.T) {
	_, err := Bounds(nil)
	if !errors.Is(err, plot.ErrEmptyPolygon) {
		t.Errorf("expected ErrEmptyPolygon, got %v", err)
	}

	poly := plot.Polygon{pt(1, 2), pt(4, 3), pt(2, 7)}
	b, err := Bounds(poly)
	test.Error(t, err)
	test.T(t, b, rect.Rect{LLx: 1, LLy: 2, URx: 4, URy: 7})

	edge, err := BoundingSquareEdge(poly)
	test.Error(t, err)
	test.Float(t, edge, 5)
}

func TestArea(t *testing.T) {
	square := plot.Polygon{pt(0, 0), pt(2, 0), pt(2, 2), pt(0, 2)}
	test.Float(t, Area(square), 4)

	// orientation does not matter
	cw := plot.Polygon{pt(0, 0), pt(0, 2), pt(2, 2), pt(2, 0)}
	test.Float(t, Area(cw), 4)

	test.Float(t, Area(plot.Polygon{pt(0, 0), pt(1, 1)}), 0)
}

func TestProjectNormalize(t *testing.T) {
	r := rect.Rect{LLx: 10, LLy: 20, URx: 110, URy: 70}
	p := pt(0.25, 0.5)
	q := ProjectInBoundaries(p, r)
	test.T(t, q, pt(35, 45))
	back := NormalizeInBoundaries(q, r)
	test.Float(t, back.X, p.X)
	test.Float(t, back.Y, p.Y)
}

func TestBoundariesRoute(t *testing.T) {
	r := rect.Rect{LLx: 0, LLy: 0, URx: 2, URy: 1}
	route := BoundariesRoute(r)
	test.T(t, len(route), 5)
	test.T(t, route[0], route[4])
}

func TestRoundPoint(t *testing.T) {
	test.T(t, RoundPoint(pt(1.26, -0.74), 0.5), pt(1.5, -0.5))
}

func TestCheckPoint(t *testing.T) {
	test.Error(t, CheckPoint(pt(1, 2)))
	for _, p := range []vec.Vec2{pt(math.NaN(), 0), pt(0, math.Inf(1))} {
		if err := CheckPoint(p); !errors.Is(err, plot.ErrInvalidInput) {
			t.Errorf("CheckPoint(%v) = %v, want ErrInvalidInput", p, err)
		}
	}
}

func TestBoundaryHelpers(t *testing.T) {
	r := rect.Rect{LLx: 0, LLy: 0, URx: 2, URy: 1}
	test.That(t, !OutOfBoundaries(pt(2, 1), r))
	test.That(t, OutOfBoundaries(pt(2.1, 0.5), r))
	test.That(t, !StrictlyInBoundaries(pt(2, 0.5), r))
	test.That(t, StrictlyInBoundaries(pt(1, 0.5), r))

	test.T(t, PreserveRatioInside(pt(1, 1), 2, 1), pt(1.5, 1))
	test.T(t, PreserveRatioOutside(pt(1, 1), 2, 1), pt(1, 0.75))
	test.T(t, PreserveRatioInside(pt(0.5, 0.5), 3, 7), pt(0.5, 0.5))

	test.Float(t, Dist(pt(0, 0), pt(3, 4)), 5)
	q := FollowAngle(pt(1, 1), math.Pi/2, 2)
	test.FloatDiff(t, q.X, 1, 1e-12)
	test.FloatDiff(t, q.Y, 3, 1e-12)
}
