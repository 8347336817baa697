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

// Package passage implements a coarse grid which counts how often routes
// pass through each of its cells.
//
// Route builders use the counts to stop routes in areas which are already
// dense.
package passage

import (
	"fmt"
	"math"
	"sync"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/plot"
)

// Counter is a grid of passage counts over a width×height region.
// A Counter must not be used concurrently; see [Locked].
type Counter struct {
	granularity float64
	cols, rows  int
	counts      []int
}

// New allocates a counter with cells of size granularity.
// The grid has ⌈width/granularity⌉ columns and ⌈height/granularity⌉ rows.
func New(granularity, width, height float64) (*Counter, error) {
	if !(granularity > 0) || !(width > 0) || !(height > 0) ||
		math.IsInf(granularity, 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return nil, fmt.Errorf("passage grid %gx%g with granularity %g: %w",
			width, height, granularity, plot.ErrInvalidInput)
	}
	cols := int(math.Ceil(width / granularity))
	rows := int(math.Ceil(height / granularity))
	return &Counter{
		granularity: granularity,
		cols:        cols,
		rows:        rows,
		counts:      make([]int, cols*rows),
	}, nil
}

// Size returns the number of columns and rows of the grid.
func (c *Counter) Size() (cols, rows int) {
	return c.cols, c.rows
}

// Count increments the counter of the cell containing p and returns the new
// value.
func (c *Counter) Count(p vec.Vec2) int {
	k := c.index(p)
	c.counts[k]++
	return c.counts[k]
}

// Get returns the counter of the cell containing p.
func (c *Counter) Get(p vec.Vec2) int {
	return c.counts[c.index(p)]
}

// Reset sets all counters to zero.
func (c *Counter) Reset() {
	clear(c.counts)
}

// index returns the cell for p.  Points outside the region, including NaN
// coordinates, map to the nearest border cell.
func (c *Counter) index(p vec.Vec2) int {
	i := clampIndex(p.X/c.granularity, c.cols)
	j := clampIndex(p.Y/c.granularity, c.rows)
	return j*c.cols + i
}

func clampIndex(x float64, n int) int {
	if !(x > 0) {
		return 0
	}
	if x >= float64(n) {
		return n - 1
	}
	return int(x)
}

// Locked wraps a [Counter] with a mutex, so that it can be shared between
// goroutines.
type Locked struct {
	mu sync.Mutex
	c  *Counter
}

// NewLocked wraps c.
func NewLocked(c *Counter) *Locked {
	return &Locked{c: c}
}

// Count is the synchronized version of [Counter.Count].
func (l *Locked) Count(p vec.Vec2) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Count(p)
}

// Get is the synchronized version of [Counter.Get].
func (l *Locked) Get(p vec.Vec2) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Get(p)
}

// Reset is the synchronized version of [Counter.Reset].
func (l *Locked) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.c.Reset()
}
