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
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/plot"
)

// ProjectInBoundaries maps a normalized point (0..1 in both coordinates)
// into the rectangle r.
func ProjectInBoundaries(p vec.Vec2, r rect.Rect) vec.Vec2 {
	return vec.Vec2{
		X: p.X*(r.URx-r.LLx) + r.LLx,
		Y: p.Y*(r.URy-r.LLy) + r.LLy,
	}
}

// NormalizeInBoundaries is the inverse of [ProjectInBoundaries].
func NormalizeInBoundaries(p vec.Vec2, r rect.Rect) vec.Vec2 {
	return vec.Vec2{
		X: (p.X - r.LLx) / (r.URx - r.LLx),
		Y: (p.Y - r.LLy) / (r.URy - r.LLy),
	}
}

// OutOfBoundaries reports whether p lies outside the closed rectangle r.
func OutOfBoundaries(p vec.Vec2, r rect.Rect) bool {
	return p.X < r.LLx || p.X > r.URx || p.Y < r.LLy || p.Y > r.URy
}

// StrictlyInBoundaries reports whether p lies in the interior of r.
func StrictlyInBoundaries(p vec.Vec2, r rect.Rect) bool {
	return p.X > r.LLx && p.X < r.URx && p.Y > r.LLy && p.Y < r.URy
}

// BoundariesRoute returns the closed outline of r as a route.
func BoundariesRoute(r rect.Rect) plot.Route {
	return plot.Route{
		{X: r.LLx, Y: r.LLy},
		{X: r.URx, Y: r.LLy},
		{X: r.URx, Y: r.URy},
		{X: r.LLx, Y: r.URy},
		{X: r.LLx, Y: r.LLy},
	}
}

// PreserveRatioInside rescales a normalized point around the centre so that
// a square drawing fits inside a w×h page without distortion.
func PreserveRatioInside(p vec.Vec2, w, h float64) vec.Vec2 {
	m := min(w, h)
	return vec.Vec2{
		X: 0.5 + (p.X-0.5)*w/m,
		Y: 0.5 + (p.Y-0.5)*h/m,
	}
}

// PreserveRatioOutside is like [PreserveRatioInside], but the square covers
// the whole page.
func PreserveRatioOutside(p vec.Vec2, w, h float64) vec.Vec2 {
	m := max(w, h)
	return vec.Vec2{
		X: 0.5 + (p.X-0.5)*w/m,
		Y: 0.5 + (p.Y-0.5)*h/m,
	}
}

// Dist returns the euclidean distance between a and b.
func Dist(a, b vec.Vec2) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// FollowAngle returns the point at distance amp from o in direction a
// (radians).
func FollowAngle(o vec.Vec2, a, amp float64) vec.Vec2 {
	return vec.Vec2{X: o.X + amp*math.Cos(a), Y: o.Y + amp*math.Sin(a)}
}

// RoundPoint rounds both coordinates to a multiple of precision.
func RoundPoint(p vec.Vec2, precision float64) vec.Vec2 {
	return vec.Vec2{
		X: math.Round(p.X/precision) * precision,
		Y: math.Round(p.Y/precision) * precision,
	}
}
