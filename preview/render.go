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
	"fmt"
	"image"
	"image/color"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/pen"
)

// Render draws doc at dpmm pixels per millimetre.
//
// Layers are painted in order, each with the luma of its color.  Without
// a background color the page is white.
func Render(doc pen.Document, dpmm float64) (*image.Gray, error) {
	if !(dpmm > 0) || !(doc.Width > 0) || !(doc.Height > 0) {
		return nil, fmt.Errorf("preview of %gx%g mm at %g dpmm: %w",
			doc.Width, doc.Height, dpmm, plot.ErrInvalidInput)
	}
	w := int(math.Ceil(doc.Width * dpmm))
	h := int(math.Ceil(doc.Height * dpmm))
	img := image.NewGray(image.Rect(0, 0, w, h))

	bg := uint8(255)
	if doc.Background != nil {
		bg = gray(doc.Background)
	}
	for i := range img.Pix {
		img.Pix[i] = bg
	}

	r := NewRasterizer(rect.Rect{URx: float64(w), URy: float64(h)})
	r.CTM = matrix.Scale(dpmm, dpmm)
	for _, l := range doc.Layers {
		if l.Path.IsEmpty() {
			continue
		}
		ink := float32(0)
		if l.Color != nil {
			ink = float32(gray(l.Color))
		}
		r.Width = l.StrokeWidth
		r.StrokePath(l.Path.All(), func(y, xMin int, coverage []float32) {
			row := img.Pix[y*img.Stride+xMin:]
			for i, c := range coverage {
				old := float32(row[i])
				row[i] = uint8(old + (ink-old)*c + 0.5)
			}
		})
	}

	plot.Logger().Debug("rendered preview", "width", w, "height", h, "layers", len(doc.Layers))
	return img, nil
}

func gray(c color.Color) uint8 {
	return color.GrayModel.Convert(c).(color.Gray).Y
}
