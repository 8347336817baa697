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

package tour

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/route"
)

func randomPoints(n int, seed uint64) []vec.Vec2 {
	rng := rand.New(rand.NewPCG(seed, 1))
	pts := make([]vec.Vec2, n)
	for i := range pts {
		pts[i] = vec.Vec2{X: rng.Float64(), Y: rng.Float64()}
	}
	return pts
}

func sameMultiset(a, b []vec.Vec2) bool {
	if len(a) != len(b) {
		return false
	}
	cmp := func(p, q vec.Vec2) int {
		if p.X != q.X {
			if p.X < q.X {
				return -1
			}
			return 1
		}
		if p.Y < q.Y {
			return -1
		} else if p.Y > q.Y {
			return 1
		}
		return 0
	}
	a = slices.SortedFunc(slices.Values(a), cmp)
	b = slices.SortedFunc(slices.Values(b), cmp)
	return slices.Equal(a, b)
}

func TestSpiralSquare(t *testing.T) {
	pts := []vec.Vec2{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 0}}
	got := Spiral(pts)
	want := plot.Route{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSpiralNearTie(t *testing.T) {
	// the turns towards the last two points differ by less than 1e-6
	// radians, so the earlier point is visited first
	pts := []vec.Vec2{{X: 0, Y: 0}, {X: -1, Y: 1}, {X: -1, Y: 1 + 1e-8}}
	got := Spiral(pts)
	if !slices.Equal(got, plot.Route(pts)) {
		t.Errorf("got %v, want %v", got, pts)
	}
}

func TestSpiralPermutation(t *testing.T) {
	for _, n := range []int{1, 2, 5, 50, 300} {
		pts := randomPoints(n, uint64(n))
		got := Spiral(pts)
		if !sameMultiset(got, pts) {
			t.Errorf("n=%d: result is not a permutation of the input", n)
		}
	}
}

func TestSpiralDuplicates(t *testing.T) {
	p := vec.Vec2{X: 0.5, Y: 0.5}
	pts := []vec.Vec2{p, {X: 0, Y: 0}, p, {X: 1, Y: 1}, p}
	got := Spiral(pts)
	if len(got) != len(pts) {
		t.Fatalf("got %d points, want %d", len(got), len(pts))
	}
	if !sameMultiset(got, pts) {
		t.Error("duplicate points were lost")
	}
}

func TestSpiralEmpty(t *testing.T) {
	if got := Spiral(nil); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestAnnealer(t *testing.T) {
	pts := randomPoints(100, 7)
	a := NewAnnealer(1)
	a.MaxIterations = 50000

	ctx := context.Background()
	r, err := Order(ctx, a, pts, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if !sameMultiset(r, pts) {
		t.Fatal("annealer did not return a permutation")
	}
	if l, s := route.Length(r), route.Length(Spiral(pts)); l > s+1e-9 {
		t.Errorf("annealed tour %g longer than start tour %g", l, s)
	}

	again, err := Order(ctx, a, pts, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(r, again) {
		t.Error("same seed gave different tours")
	}
}

func TestAnnealerClosed(t *testing.T) {
	pts := randomPoints(30, 3)
	a := NewAnnealer(2)
	a.Closed = true
	a.MaxIterations = 20000
	perm, err := a.Solve(context.Background(), pts, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if err := checkPermutation(perm, len(pts)); err != nil {
		t.Error(err)
	}
}

func TestAnnealerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pts := randomPoints(20, 4)
	perm, err := NewAnnealer(0).Solve(ctx, pts, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(perm, spiralOrder(pts)) {
		t.Error("cancelled search should return the start tour")
	}
}

func TestOrderValidation(t *testing.T) {
	pts := randomPoints(3, 5)
	for _, perm := range [][]int{
		{0, 1},
		{0, 1, 1},
		{0, 1, 3},
		{-1, 0, 1},
	} {
		s := SolverFunc(func(context.Context, []vec.Vec2, time.Duration) ([]int, error) {
			return perm, nil
		})
		_, err := Order(context.Background(), s, pts, time.Second)
		if !errors.Is(err, plot.ErrInvalidInput) {
			t.Errorf("%v: got %v", perm, err)
		}
	}

	s := SolverFunc(func(context.Context, []vec.Vec2, time.Duration) ([]int, error) {
		return []int{2, 0, 1}, nil
	})
	r, err := Order(context.Background(), s, pts, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if r[0] != pts[2] || r[1] != pts[0] || r[2] != pts[1] {
		t.Errorf("wrong order: %v", r)
	}
}

func BenchmarkSpiral(b *testing.B) {
	pts := randomPoints(1000, 1)
	for b.Loop() {
		Spiral(pts)
	}
}
