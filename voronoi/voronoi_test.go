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

package voronoi

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/tdewolff/test"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/geometry"
)

func randomPoints(n int, seed uint64) []vec.Vec2 {
	rng := rand.New(rand.NewPCG(seed, 0))
	pts := make([]vec.Vec2, n)
	for i := range pts {
		pts[i] = vec.Vec2{X: rng.Float64(), Y: rng.Float64()}
	}
	return pts
}

func TestTwoSites(t *testing.T) {
	cells, err := Partition([]vec.Vec2{{X: 0.25, Y: 0.5}, {X: 0.75, Y: 0.5}}, 0)
	test.Error(t, err)
	test.T(t, len(cells), 2)
	test.Float(t, geometry.Area(cells[0]), 0.5)
	test.Float(t, geometry.Area(cells[1]), 0.5)

	b, err := geometry.Bounds(cells[0])
	test.Error(t, err)
	test.Float(t, b.URx, 0.5)
}

func TestSingleSite(t *testing.T) {
	cells, err := Partition([]vec.Vec2{{X: 0.3, Y: 0.8}}, 0.1)
	test.Error(t, err)
	test.T(t, len(cells), 1)
	test.Float(t, geometry.Area(cells[0]), 1)
}

func TestTiling(t *testing.T) {
	for _, n := range []int{3, 10, 100, 500} {
		pts := randomPoints(n, uint64(n))
		const pad = 0.02
		cells, err := Partition(pts, pad)
		test.Error(t, err)
		test.T(t, len(cells), n)

		var total float64
		for i, c := range cells {
			total += geometry.Area(c)
			site := vec.Vec2{X: pad + (1-2*pad)*pts[i].X, Y: pad + (1-2*pad)*pts[i].Y}
			test.That(t, geometry.PointInPolygon(site, c), "site", i, "outside its cell")
		}
		test.FloatDiff(t, total, 1, 1e-9)

		// no overlaps and no gaps
		queries := randomPoints(1000, 12345)
		for _, p := range queries {
			owners := 0
			for _, c := range cells {
				if geometry.PointInPolygon(p, c) {
					owners++
				}
			}
			if owners != 1 {
				t.Errorf("n=%d: point %v lies in %d cells", n, p, owners)
			}
		}
	}
}

func TestDuplicateSites(t *testing.T) {
	pts := []vec.Vec2{{X: 0.2, Y: 0.2}, {X: 0.7, Y: 0.6}, {X: 0.2, Y: 0.2}}
	cells, err := Partition(pts, 0)
	test.Error(t, err)
	test.That(t, len(cells[0]) >= 3, "first occurrence owns the cell")
	test.T(t, len(cells[2]), 0)
	test.FloatDiff(t, geometry.Area(cells[0])+geometry.Area(cells[1]), 1, 1e-12)
}

func TestPartitionInvalid(t *testing.T) {
	_, err := Partition([]vec.Vec2{{X: math.NaN(), Y: 0}}, 0)
	if !errors.Is(err, plot.ErrInvalidInput) {
		t.Errorf("NaN site: got %v", err)
	}
	for _, pad := range []float64{-0.1, 0.5, math.NaN()} {
		_, err := Partition(nil, pad)
		if !errors.Is(err, plot.ErrInvalidInput) {
			t.Errorf("pad %g: got %v", pad, err)
		}
	}
}

func TestFilterBySquareEdge(t *testing.T) {
	polys := []plot.Polygon{
		{},
		{{X: 0, Y: 0}, {X: 0.1, Y: 0}, {X: 0.1, Y: 0.1}},
		{{X: 0, Y: 0}, {X: 0.6, Y: 0}, {X: 0.6, Y: 0.1}},
		{{X: 0, Y: 0}, {X: 0.2, Y: 0}, {X: 0, Y: 0.3}},
	}
	res := FilterBySquareEdge(polys, 0.5)
	test.T(t, len(res), 2)
	test.Float(t, res[0][1].X, 0.1)
	test.Float(t, res[1][2].Y, 0.3)
}

func BenchmarkPartition(b *testing.B) {
	pts := randomPoints(900, 1)
	for b.Loop() {
		Partition(pts, 0.02)
	}
}
