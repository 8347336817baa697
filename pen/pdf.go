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

package pen

import (
	"fmt"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/plot"
)

// ptPerMM is the number of PDF points in a millimetre.
const ptPerMM = 72 / 25.4

// WritePDF writes doc as a one-page PDF file.
//
// Colors are converted to DeviceGray.  All layers are stroked with round
// caps and joins, in the order they appear in doc.
func WritePDF(fname string, doc Document) error {
	if !(doc.Width > 0) || !(doc.Height > 0) {
		return fmt.Errorf("page size %gx%g: %w", doc.Width, doc.Height, plot.ErrInvalidInput)
	}

	paper := &pdf.Rectangle{
		URx: doc.Width * ptPerMM,
		URy: doc.Height * ptPerMM,
	}
	page, err := document.CreateSinglePage(fname, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	if doc.Background != nil {
		page.SetFillColor(color.DeviceGray(luma(doc.Background)))
		page.Rectangle(0, 0, paper.URx, paper.URy)
		page.Fill()
	}

	// millimetres with the origin at the top left
	page.Transform(matrix.Matrix{ptPerMM, 0, 0, -ptPerMM, 0, paper.URy})

	page.SetLineCap(graphics.LineCapRound)
	page.SetLineJoin(graphics.LineJoinRound)
	for _, l := range doc.Layers {
		if l.Path.IsEmpty() {
			continue
		}
		gray := 0.0
		if l.Color != nil {
			gray = luma(l.Color)
		}
		page.SetStrokeColor(color.DeviceGray(gray))
		page.SetLineWidth(l.StrokeWidth)

		var current, start vec.Vec2
		for cmd, pts := range l.Path.All() {
			switch cmd {
			case path.CmdMoveTo:
				current = pts[0]
				start = current
				page.MoveTo(current.X, current.Y)
			case path.CmdLineTo:
				current = pts[0]
				page.LineTo(current.X, current.Y)
			case path.CmdQuadTo:
				// PDF has no quadratic curves
				c, end := pts[0], pts[1]
				c1 := current.Add(c.Sub(current).Mul(2.0 / 3))
				c2 := end.Add(c.Sub(end).Mul(2.0 / 3))
				page.CurveTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
				current = end
			case path.CmdCubeTo:
				page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
				current = pts[2]
			case path.CmdClose:
				page.ClosePath()
				current = start
			}
		}
		page.Stroke()
	}

	plot.Logger().Debug("wrote pdf", "file", fname, "layers", len(doc.Layers))
	return page.Close()
}
