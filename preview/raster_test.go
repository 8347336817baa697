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
	"image"
	"image/color"
	"math"
	"testing"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/pen"
)

// The triangle (0,0)→(10,0)→(10,1)→close has a diagonal edge y = x/10.
// Each pixel X should have coverage (2X+1)/20: 0.05, 0.15, ..., 0.95.
func TestTriangleCoverage(t *testing.T) {
	triangle := (&pen.Path{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 1}).
		Close()

	r := NewRasterizer(rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 1})

	got := make([]float32, 10)
	r.FillNonZero(triangle.All(), func(y, xMin int, coverage []float32) {
		if y != 0 {
			t.Errorf("unexpected row %d", y)
			return
		}
		copy(got[xMin:], coverage)
	})

	for x := range 10 {
		want := float32(2*x+1) / 20
		if math.Abs(float64(got[x]-want)) > 1e-6 {
			t.Errorf("pixel %d: coverage %g, want %g", x, got[x], want)
		}
	}
}

// TestAgainstVector compares the coverage of a filled polygon with the
// output of golang.org/x/image/vector.
func TestAgainstVector(t *testing.T) {
	const size = 40
	pts := []vec.Vec2{{X: 3.3, Y: 2.1}, {X: 36.5, Y: 8.7}, {X: 28.2, Y: 37.4}, {X: 5.9, Y: 30.2}}

	p := &pen.Path{}
	p = p.MoveTo(pts[0])
	for _, q := range pts[1:] {
		p = p.LineTo(q)
	}
	p = p.Close()

	got := make([]float32, size*size)
	r := NewRasterizer(rect.Rect{URx: size, URy: size})
	r.FillNonZero(p.All(), func(y, xMin int, coverage []float32) {
		copy(got[y*size+xMin:], coverage)
	})

	v := vector.NewRasterizer(size, size)
	v.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, q := range pts[1:] {
		v.LineTo(float32(q.X), float32(q.Y))
	}
	v.ClosePath()
	ref := image.NewAlpha(image.Rect(0, 0, size, size))
	v.Draw(ref, ref.Bounds(), image.NewUniform(color.Alpha{A: 255}), image.Point{})

	for i, c := range got {
		want := float32(ref.Pix[i]) / 255
		if math.Abs(float64(c-want)) > 0.02 {
			t.Errorf("pixel (%d,%d): coverage %g, vector %g", i%size, i/size, c, want)
		}
	}
}

func TestStrokeOverlap(t *testing.T) {
	// A route doubling back on itself must not cancel out.
	p := (&pen.Path{}).
		MoveTo(vec.Vec2{X: 2, Y: 5}).
		LineTo(vec.Vec2{X: 18, Y: 5}).
		LineTo(vec.Vec2{X: 10, Y: 5.0001})

	r := NewRasterizer(rect.Rect{URx: 20, URy: 10})
	r.Width = 4

	var sum float64
	center := float32(0)
	r.StrokePath(p.All(), func(y, xMin int, coverage []float32) {
		for i, c := range coverage {
			if c < 0 || c > 1 {
				t.Errorf("coverage %g out of range", c)
			}
			sum += float64(c)
			if y == 4 && xMin+i == 14 {
				center = c
			}
		}
	})
	if center != 1 {
		t.Errorf("centre pixel coverage %g, want 1", center)
	}
	// a 16×4 rectangle plus two round caps of radius 2
	want := 16*4 + math.Pi*4
	if math.Abs(sum-want) > 1 {
		t.Errorf("total ink %g, want about %g", sum, want)
	}
}

func TestRender(t *testing.T) {
	doc := pen.A4Portrait(nil)
	l := doc.AddLayer("black", color.Black, 1)
	l.Path = pen.AppendRoute(l.Path, plot.Route{{X: 10, Y: 10}, {X: 100, Y: 10}})

	img, err := Render(doc, 2)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 420 || b.Dy() != 594 {
		t.Fatalf("image size %v", b)
	}
	if v := img.GrayAt(100, 20).Y; v != 0 {
		t.Errorf("line pixel %d, want 0", v)
	}
	if v := img.GrayAt(100, 100).Y; v != 255 {
		t.Errorf("background pixel %d, want 255", v)
	}

	if _, err := Render(doc, 0); err == nil {
		t.Error("expected error for zero resolution")
	}
}

func BenchmarkStroke(b *testing.B) {
	p := zigzag()
	r := NewRasterizer(rect.Rect{URx: 800, URy: 800})
	r.Width = 1.5
	b.ReportAllocs()
	for b.Loop() {
		r.StrokePath(p.All(), func(int, int, []float32) {})
	}
}

// BenchmarkVectorFill fills the stroke outline with x/image/vector for
// comparison.
func BenchmarkVectorFill(b *testing.B) {
	r := NewRasterizer(rect.Rect{URx: 800, URy: 800})
	r.Width = 1.5
	r.StrokePath(zigzag().All(), func(int, int, []float32) {})
	outline := r.outline

	v := vector.NewRasterizer(800, 800)
	dst := image.NewAlpha(image.Rect(0, 0, 800, 800))
	src := image.NewUniform(color.Alpha{A: 255})
	b.ReportAllocs()
	for b.Loop() {
		v.Reset(800, 800)
		for cmd, pts := range outline.All() {
			switch cmd {
			case path.CmdMoveTo:
				v.MoveTo(float32(pts[0].X), float32(pts[0].Y))
			case path.CmdLineTo:
				v.LineTo(float32(pts[0].X), float32(pts[0].Y))
			case path.CmdClose:
				v.ClosePath()
			}
		}
		v.Draw(dst, dst.Bounds(), src, image.Point{})
	}
}

func zigzag() *pen.Path {
	p := (&pen.Path{}).MoveTo(vec.Vec2{X: 10, Y: 10})
	for i := 1; i < 200; i++ {
		p = p.LineTo(vec.Vec2{X: 10 + float64(i)*3.9, Y: 10 + float64(i%2)*700})
	}
	return p
}
