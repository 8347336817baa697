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

// Package plot holds the types shared by the route synthesis packages.
//
// Points are [vec.Vec2] values, either in normalized coordinates (0..1) or in
// page millimetres. A [Route] is drawn in the order of its points; a
// [Polygon] is a closed ring whose closing point is implicit.
//
// The work is split over the sub-packages:
//   - geometry: segment intersection, point in polygon, clipping
//   - sample: rejection sampling under a density field
//   - voronoi: Voronoi cells inside the unit square
//   - passage: a coarse counter limiting how often a cell is crossed
//   - route: incremental route construction with collision handling
//   - tour: spiral ordering and the tour solver contract
//   - pen, preview: SVG/PDF output and raster previews
//   - stipple: the Voronoi stipple pipeline tying everything together
package plot

import (
	"errors"

	"seehuhn.de/go/geom/vec"
)

// Route is an ordered sequence of points, drawn from first to last.
// Routes with fewer than two points are degenerate.
type Route []vec.Vec2

// IsDegenerate reports whether the route has nothing to draw.
func (r Route) IsDegenerate() bool {
	return len(r) <= 1
}

// Polygon is the exterior ring of a polygon. The first point is not repeated
// at the end.
type Polygon []vec.Vec2

// DropDegenerate returns the routes with at least two points, in their
// original order.  The argument is not modified.
func DropDegenerate(routes []Route) []Route {
	var res []Route
	for _, r := range routes {
		if !r.IsDegenerate() {
			res = append(res, r)
		}
	}
	return res
}

var (
	// ErrInvalidInput is returned for malformed arguments, for example NaN
	// coordinates or non-positive grid sizes.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyPolygon is returned when a polygon without any points is used
	// where a bounding rectangle is needed.
	ErrEmptyPolygon = errors.New("empty polygon")
)
