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

// Package pen turns routes into pen plotter documents.
//
// A [Document] is a page of fixed size in millimetres, holding one
// [Layer] per pen.  Routes are appended to the path of a layer, and the
// document is written as SVG with Inkscape layers or as a one-page PDF.
package pen

import (
	"image/color"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/geometry"
)

// Document is a drawing on a page of Width×Height millimetres.
// The origin is the top left corner, the y axis points down.
type Document struct {
	Width, Height float64

	// Background is the page color.  If nil, no background is drawn.
	Background color.Color

	Layers []Layer
}

// Layer is the part of a drawing made with one pen.
type Layer struct {
	Name        string
	Color       color.Color
	StrokeWidth float64 // in millimetres
	Path        *Path
}

// A4Portrait returns an empty A4 page in portrait orientation.
func A4Portrait(bg color.Color) Document {
	return Document{Width: 210, Height: 297, Background: bg}
}

// A4Landscape returns an empty A4 page in landscape orientation.
func A4Landscape(bg color.Color) Document {
	return Document{Width: 297, Height: 210, Background: bg}
}

// Portrait24x30 returns an empty 24cm×30cm page.
func Portrait24x30(bg color.Color) Document {
	return Document{Width: 240, Height: 300, Background: bg}
}

// Landscape24x30 returns an empty 30cm×24cm page.
func Landscape24x30(bg color.Color) Document {
	return Document{Width: 300, Height: 240, Background: bg}
}

// AddLayer appends a new layer with an empty path and returns it.
// The pointer is valid until the next call to AddLayer.
func (d *Document) AddLayer(name string, col color.Color, strokeWidth float64) *Layer {
	d.Layers = append(d.Layers, Layer{
		Name:        name,
		Color:       col,
		StrokeWidth: strokeWidth,
		Path:        &Path{},
	})
	return &d.Layers[len(d.Layers)-1]
}

// AppendRoute draws r as one connected line.
func AppendRoute(p *Path, r plot.Route) *Path {
	if len(r) == 0 {
		return p
	}
	p = p.MoveTo(r[0])
	for _, q := range r[1:] {
		p = p.LineTo(q)
	}
	return p
}

// AppendRouteWhen draws r, lifting the pen between consecutive points for
// which connect returns false.
func AppendRouteWhen(p *Path, r plot.Route, connect func(a, b vec.Vec2) bool) *Path {
	if len(r) == 0 {
		return p
	}
	p = p.MoveTo(r[0])
	up := false
	last := r[0]
	for _, q := range r[1:] {
		if connect(last, q) {
			if up {
				p = p.MoveTo(last)
				up = false
			}
			p = p.LineTo(q)
		} else {
			up = true
		}
		last = q
	}
	return p
}

// AppendRouteCurve draws r as a smooth curve.  Each point of the route is
// used as the control point of a quadratic Bézier segment ending half way
// to the following point.  The curve ends at the last point of r.
func AppendRouteCurve(p *Path, r plot.Route) *Path {
	if len(r) == 0 {
		return p
	}
	p = p.MoveTo(r[0])
	last := r[0]
	for _, q := range r[1:] {
		mid := vec.Vec2{X: (last.X + q.X) / 2, Y: (last.Y + q.Y) / 2}
		p = p.QuadTo(last, mid)
		last = q
	}
	if len(r) > 1 {
		p = p.LineTo(last)
	}
	return p
}

// AppendPolygon draws the closed outline of poly.
func AppendPolygon(p *Path, poly plot.Polygon) *Path {
	if len(poly) == 0 {
		return p
	}
	p = AppendRoute(p, plot.Route(poly))
	return p.Close()
}

// MaxDistance returns a connect predicate for [AppendRouteWhen] which
// accepts points closer than d.
func MaxDistance(d float64) func(a, b vec.Vec2) bool {
	return func(a, b vec.Vec2) bool {
		return geometry.Dist(a, b) < d
	}
}

// luma returns the brightness of c in [0, 1].
func luma(c color.Color) float64 {
	g := color.GrayModel.Convert(c).(color.Gray)
	return float64(g.Y) / 255
}
