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
	"bufio"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"

	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/plot"
)

const inkscapeNS = `xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape"`

// WriteSVG writes doc as an SVG file.
//
// The page size is given in millimetres and the user coordinates are
// millimetres as well.  Every layer becomes an Inkscape layer, holding a
// single path.
func WriteSVG(w io.Writer, doc Document) error {
	if !(doc.Width > 0) || !(doc.Height > 0) {
		return fmt.Errorf("page size %gx%g: %w", doc.Width, doc.Height, plot.ErrInvalidInput)
	}

	bw := bufio.NewWriter(w)
	canvas := svg.New(bw)

	attrs := []string{
		fmt.Sprintf(`viewBox="0 0 %s %s"`, formatNum(doc.Width), formatNum(doc.Height)),
		inkscapeNS,
	}
	if doc.Background != nil {
		attrs = append(attrs, fmt.Sprintf(`style="background:%s"`, cssColor(doc.Background)))
	}
	canvas.Startunit(int(math.Ceil(doc.Width)), int(math.Ceil(doc.Height)), "mm", attrs...)

	for i, l := range doc.Layers {
		name := l.Name
		if name == "" {
			name = "layer" + strconv.Itoa(i+1)
		}
		canvas.Group(
			`inkscape:groupmode="layer"`,
			fmt.Sprintf(`inkscape:label=%q`, name),
		)
		if d := pathData(l.Path); d != "" {
			canvas.Path(d,
				`fill="none"`,
				fmt.Sprintf(`stroke="%s"`, cssColor(l.Color)),
				fmt.Sprintf(`stroke-width="%s"`, formatNum(l.StrokeWidth)),
				`stroke-linecap="round"`,
				`stroke-linejoin="round"`,
			)
		}
		canvas.Gend()
	}
	canvas.End()

	return bw.Flush()
}

// pathData converts p to the SVG path syntax.
func pathData(p *Path) string {
	var b strings.Builder
	for cmd, pts := range p.All() {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		switch cmd {
		case path.CmdMoveTo:
			b.WriteByte('M')
		case path.CmdLineTo:
			b.WriteByte('L')
		case path.CmdQuadTo:
			b.WriteByte('Q')
		case path.CmdCubeTo:
			b.WriteByte('C')
		case path.CmdClose:
			b.WriteByte('Z')
		}
		for i, c := range pts {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(formatNum(c.X))
			b.WriteByte(',')
			b.WriteString(formatNum(c.Y))
		}
	}
	return b.String()
}

// formatNum formats x with at most three decimals.
func formatNum(x float64) string {
	s := strconv.FormatFloat(x, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		s = "0"
	}
	return s
}

func cssColor(c color.Color) string {
	if c == nil {
		return "black"
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}
