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

package passage

import (
	"errors"
	"math"
	"sync"
	"testing"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/plot"
)

func TestNew(t *testing.T) {
	c, err := New(3, 10, 6)
	if err != nil {
		t.Fatal(err)
	}
	cols, rows := c.Size()
	if cols != 4 || rows != 2 {
		t.Errorf("grid size %dx%d, want 4x2", cols, rows)
	}

	for _, args := range [][3]float64{
		{0, 10, 10},
		{-1, 10, 10},
		{1, 0, 10},
		{1, 10, math.NaN()},
		{math.Inf(1), 10, 10},
	} {
		_, err := New(args[0], args[1], args[2])
		if !errors.Is(err, plot.ErrInvalidInput) {
			t.Errorf("New(%v): got %v", args, err)
		}
	}
}

func TestCountMonotone(t *testing.T) {
	c, err := New(1, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	p := vec.Vec2{X: 2.5, Y: 3.5}
	for want := 1; want <= 5; want++ {
		if got := c.Get(p); got != want-1 {
			t.Errorf("Get before Count: got %d, want %d", got, want-1)
		}
		if got := c.Count(p); got != want {
			t.Errorf("Count: got %d, want %d", got, want)
		}
	}
	// Get does not increment
	for range 3 {
		if got := c.Get(p); got != 5 {
			t.Errorf("Get: got %d, want 5", got)
		}
	}

	// another point in the same cell shares the counter
	if got := c.Count(vec.Vec2{X: 2.9, Y: 3.1}); got != 6 {
		t.Errorf("same cell: got %d, want 6", got)
	}
	if got := c.Get(vec.Vec2{X: 3.1, Y: 3.1}); got != 0 {
		t.Errorf("neighbour cell: got %d, want 0", got)
	}

	c.Reset()
	if got := c.Get(p); got != 0 {
		t.Errorf("after Reset: got %d, want 0", got)
	}
}

func TestClamp(t *testing.T) {
	c, err := New(1, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	c.Count(vec.Vec2{X: -5, Y: -5})
	c.Count(vec.Vec2{X: math.NaN(), Y: 0.5})
	if got := c.Get(vec.Vec2{X: 0.5, Y: 0.5}); got != 2 {
		t.Errorf("lower corner: got %d, want 2", got)
	}

	c.Count(vec.Vec2{X: 100, Y: 4})
	if got := c.Get(vec.Vec2{X: 3.5, Y: 3.5}); got != 1 {
		t.Errorf("upper corner: got %d, want 1", got)
	}
}

func TestLocked(t *testing.T) {
	c, err := New(1, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	l := NewLocked(c)
	p := vec.Vec2{X: 0.5, Y: 0.5}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				l.Count(p)
			}
		}()
	}
	wg.Wait()
	if got := l.Get(p); got != 800 {
		t.Errorf("got %d, want 800", got)
	}
	l.Reset()
	if got := l.Get(p); got != 0 {
		t.Errorf("after Reset: got %d", got)
	}
}
