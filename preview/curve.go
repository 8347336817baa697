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

package preview

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/plot/pen"
)

// linearDevice applies the linear part of the CTM to v.
func (r *Rasterizer) linearDevice(v vec.Vec2) vec.Vec2 {
	m := r.CTM
	return vec.Vec2{
		X: m[0]*v.X + m[2]*v.Y,
		Y: m[1]*v.X + m[3]*v.Y,
	}
}

// flattenQuadratic approximates the quadratic Bézier curve p0, p1, p2 by
// line segments.  The number of segments is chosen so that the error in
// device space is at most r.Flatness.
func (r *Rasterizer) flattenQuadratic(p0, p1, p2 vec.Vec2, segment func(a, b vec.Vec2)) {
	e := r.linearDevice(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)).Length()
	n := 1
	if e > r.Flatness {
		n = int(math.Ceil(math.Sqrt(e / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		q := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		segment(prev, q)
		prev = q
	}
}

// flattenCubic is like flattenQuadratic for cubic curves, using Wang's
// bound for the number of segments.
func (r *Rasterizer) flattenCubic(p0, p1, p2, p3 vec.Vec2, segment func(a, b vec.Vec2)) {
	d1 := r.linearDevice(p0.Sub(p1.Mul(2)).Add(p2)).Length()
	d2 := r.linearDevice(p1.Sub(p2.Mul(2)).Add(p3)).Length()
	n := 1
	if m := max(d1, d2); m > 0 {
		if f := math.Sqrt(3 * m / (4 * r.Flatness)); f > 1 {
			n = int(math.Ceil(f))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		q := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		segment(prev, q)
		prev = q
	}
}

// discSides returns the number of polygon sides needed to approximate a
// circle of radius h (user space) within r.Flatness device pixels.
func (r *Rasterizer) discSides(h float64) int {
	m := r.CTM
	rd := h * math.Sqrt(math.Abs(m[0]*m[3]-m[1]*m[2]))
	if rd <= r.Flatness {
		return minDiscSides
	}
	n := int(math.Ceil(math.Pi / math.Acos(1-r.Flatness/rd)))
	return min(max(n, minDiscSides), maxDiscSides)
}

// appendDisc adds a closed polygon with n corners around a circle.  The
// corners run clockwise for a y-up coordinate system, like the stroke
// quads.
func appendDisc(p *pen.Path, c vec.Vec2, h float64, n int) {
	p.MoveTo(vec.Vec2{X: c.X + h, Y: c.Y})
	for k := 1; k < n; k++ {
		a := 2 * math.Pi * float64(k) / float64(n)
		p.LineTo(vec.Vec2{X: c.X + h*math.Cos(a), Y: c.Y - h*math.Sin(a)})
	}
	p.Close()
}

const (
	minDiscSides = 16
	maxDiscSides = 64
)
