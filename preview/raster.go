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

// Package preview renders pen documents to grayscale images.
//
// The rasterizer computes the exact area coverage of every pixel by a
// filled path.  Strokes are filled as the union of one quadrilateral per
// segment and one disk per vertex, which matches a pen with a round tip.
package preview

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/plot/pen"
)

// edge is a non-horizontal line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64
}

// Rasterizer converts paths to per-pixel coverage values between 0 and 1.
//
// A Rasterizer reuses its buffers between calls and must not be used
// concurrently.
type Rasterizer struct {
	// CTM maps user space to device space.
	CTM matrix.Matrix

	// Clip is the device space region where output is produced.
	// The coordinates must be integers.
	Clip rect.Rect

	// Flatness is the maximal distance in device pixels between a curve
	// and its approximating polygon.
	Flatness float64

	// Width is the pen width in user space units.
	Width float64

	cover  []float32
	area   []float32
	edges  []edge
	active []int

	outline *pen.Path
	bbox    rect.Rect
	hasBBox bool
}

// NewRasterizer returns a rasterizer for the given device space region,
// with an identity CTM and a pen width of 1.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	return &Rasterizer{
		CTM:      matrix.Identity,
		Clip:     clip,
		Flatness: defaultFlatness,
		Width:    1,
		outline:  &pen.Path{},
	}
}

// FillNonZero fills p using the nonzero winding rule.
// The coverage slice passed to emit is only valid during the call.
func (r *Rasterizer) FillNonZero(p path.Path, emit func(y, xMin int, coverage []float32)) {
	r.edges = r.edges[:0]
	r.hasBBox = false
	r.walk(p, r.addEdge, true)
	if len(r.edges) == 0 {
		return
	}

	xMin := max(int(math.Floor(r.bbox.LLx)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(r.bbox.URx))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(r.bbox.LLy)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(r.bbox.URy))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}
	r.scan(xMin, xMax, yMin, yMax, emit)
}

// StrokePath draws p with a round pen of diameter r.Width.
func (r *Rasterizer) StrokePath(p path.Path, emit func(y, xMin int, coverage []float32)) {
	if !(r.Width > 0) {
		return
	}
	out := r.outline
	out.Reset()

	h := r.Width / 2
	n := r.discSides(h)
	first := true
	var last vec.Vec2
	r.walk(p, func(a, b vec.Vec2) {
		if first || a != last {
			appendDisc(out, a, h, n)
			first = false
		}
		// nv is the left normal of d, so all quads have the same
		// orientation as the discs and overlaps never cancel.
		d := b.Sub(a)
		if l := d.Length(); l > zeroLengthThreshold {
			nv := vec.Vec2{X: -d.Y, Y: d.X}.Mul(h / l)
			out.MoveTo(a.Add(nv)).LineTo(b.Add(nv)).LineTo(b.Sub(nv)).LineTo(a.Sub(nv)).Close()
		}
		appendDisc(out, b, h, n)
		last = b
	}, false)
	r.FillNonZero(out.All(), emit)
}

// walk flattens p and calls segment for every line segment, in user
// space.  If closeAll is set, open subpaths are closed.
func (r *Rasterizer) walk(p path.Path, segment func(a, b vec.Vec2), closeAll bool) {
	var current, start vec.Vec2
	open := false
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			if closeAll && open && current != start {
				segment(current, start)
			}
			current = pts[0]
			start = current
			open = true
		case path.CmdLineTo:
			segment(current, pts[0])
			current = pts[0]
		case path.CmdQuadTo:
			r.flattenQuadratic(current, pts[0], pts[1], segment)
			current = pts[1]
		case path.CmdCubeTo:
			r.flattenCubic(current, pts[0], pts[1], pts[2], segment)
			current = pts[2]
		case path.CmdClose:
			if current != start {
				segment(current, start)
			}
			current = start
			open = false
		}
	}
	if closeAll && open && current != start {
		segment(current, start)
	}
}

// device maps a user space point to device space.
func (r *Rasterizer) device(p vec.Vec2) vec.Vec2 {
	m := r.CTM
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// addEdge stores the user space segment a-b as a device space edge.
func (r *Rasterizer) addEdge(a, b vec.Vec2) {
	p0 := r.device(a)
	p1 := r.device(b)
	dy := p1.Y - p0.Y
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{
		x0: p0.X, y0: p0.Y,
		x1: p1.X, y1: p1.Y,
		dxdy: (p1.X - p0.X) / dy,
	})

	lo := vec.Vec2{X: min(p0.X, p1.X), Y: min(p0.Y, p1.Y)}
	hi := vec.Vec2{X: max(p0.X, p1.X), Y: max(p0.Y, p1.Y)}
	if !r.hasBBox {
		r.bbox = rect.Rect{LLx: lo.X, LLy: lo.Y, URx: hi.X, URy: hi.Y}
		r.hasBBox = true
		return
	}
	r.bbox.LLx = min(r.bbox.LLx, lo.X)
	r.bbox.LLy = min(r.bbox.LLy, lo.Y)
	r.bbox.URx = max(r.bbox.URx, hi.X)
	r.bbox.URy = max(r.bbox.URy, hi.Y)
}

// scan runs the scanline loop over the bounding box, with an active edge
// list sorted by the top of the edges.
func (r *Rasterizer) scan(xMin, xMax, yMin, yMax int, emit func(y, xMin int, coverage []float32)) {
	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})
	r.active = r.active[:0]
	next := 0

	for y := yMin; y < yMax; y++ {
		top := float64(y)
		bot := float64(y + 1)

		for next < len(r.edges) && min(r.edges[next].y0, r.edges[next].y1) < bot {
			r.active = append(r.active, next)
			next++
		}
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.active); {
			e := &r.edges[r.active[i]]
			if max(e.y0, e.y1) <= top {
				r.active[i] = r.active[len(r.active)-1]
				r.active = r.active[:len(r.active)-1]
				continue
			}
			if r.accumulate(e, y, xMin, xMax) {
				touched = true
			}
			i++
		}
		if !touched {
			continue
		}

		integrateNonZero(r.cover, r.area)
		if trimmed, offset := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+offset, trimmed)
		}
	}
}

// accumulate adds the contribution of e within scanline y to the cover
// and area buffers, which are indexed by x - xMin.  Contributions left of
// xMin are folded into the first pixel.  The return value reports whether
// the edge crosses the scanline at all.
//
// For a pixel crossed by an edge piece of signed height h, cover gets h
// and area gets h times the fraction of the pixel right of the piece.
// The coverage of a pixel is the sum of area at the pixel and cover of all
// pixels to its left.
func (r *Rasterizer) accumulate(e *edge, y, xMin, xMax int) bool {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return false
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xa := e.x0 + e.dxdy*(yTop-e.y0)
	xb := e.x0 + e.dxdy*(yBot-e.y0)
	left := int(math.Floor(min(xa, xb)))
	right := int(math.Floor(max(xa, xb)))

	if right < xMin {
		c := sign * float32(yBot-yTop)
		r.cover[0] += c
		r.area[0] += c
		return true
	}
	if left >= xMax {
		return true
	}

	for pix := left; pix <= right; pix++ {
		y0, y1 := yTop, yBot
		if left != right {
			// y range of the edge within this pixel column
			ya := e.y0 + (float64(pix)-e.x0)/e.dxdy
			yb := e.y0 + (float64(pix+1)-e.x0)/e.dxdy
			y0 = max(min(ya, yb), yTop)
			y1 = min(max(ya, yb), yBot)
			if y1 <= y0 {
				continue
			}
		}
		c := sign * float32(y1-y0)
		switch {
		case pix < xMin:
			r.cover[0] += c
			r.area[0] += c
		case pix < xMax:
			xMid := e.x0 + e.dxdy*((y0+y1)/2-e.y0)
			frac := xMid - float64(pix)
			r.cover[pix-xMin] += c
			r.area[pix-xMin] += c * float32(1-frac)
		}
	}
	return true
}

// integrateNonZero turns accumulated cover and area values into coverage,
// in place.
func integrateNonZero(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		if v < 0 {
			v = -v
		}
		cover[i] = min(v, 1)
	}
}

// trimZeros returns the part of coverage between the first and the last
// non-zero entry, together with its offset.
func trimZeros(coverage []float32) ([]float32, int) {
	lo := 0
	for lo < len(coverage) && coverage[lo] == 0 {
		lo++
	}
	if lo == len(coverage) {
		return nil, 0
	}
	hi := len(coverage) - 1
	for coverage[hi] == 0 {
		hi--
	}
	return coverage[lo : hi+1], lo
}

const (
	// defaultFlatness is the curve tolerance in device pixels.
	defaultFlatness = 0.25

	// horizontalEdgeThreshold is the smallest vertical extent of an edge
	// which contributes to coverage.
	horizontalEdgeThreshold = 1e-10

	// zeroLengthThreshold is the shortest segment which gets a quad.
	zeroLengthThreshold = 1e-10
)
