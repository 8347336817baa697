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
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/geometry"
)

// Annealer is a [Solver] using simulated annealing with 2-opt moves.
//
// The search starts from the [Spiral] order.  For a fixed Seed and a
// MaxIterations limit which is reached before the time budget runs out,
// the result is deterministic.
type Annealer struct {
	// Seed initialises the random number generator.
	Seed uint64

	// Closed selects whether the tour returns to its first point.
	Closed bool

	// Temperature is the initial temperature, relative to the mean
	// distance between consecutive points of the start tour.
	Temperature float64

	// Cooling is the factor applied to the temperature after every move.
	Cooling float64

	// MaxIterations limits the number of proposed moves.  Zero means no
	// limit other than the time budget.
	MaxIterations int
}

// NewAnnealer returns an annealer with default settings.
func NewAnnealer(seed uint64) *Annealer {
	return &Annealer{
		Seed:        seed,
		Temperature: 1,
		Cooling:     0.9999,
	}
}

// Solve implements the [Solver] interface.
// The search stops when the budget is used up, when ctx is cancelled, or
// after MaxIterations moves.  In all cases the best tour found so far is
// returned.
func (a *Annealer) Solve(ctx context.Context, points []vec.Vec2, budget time.Duration) ([]int, error) {
	n := len(points)
	order := spiralOrder(points)
	if n < 4 {
		return order, nil
	}

	rng := rand.New(rand.NewPCG(a.Seed, 0x7f4a7c15))
	deadline := time.Now().Add(budget)

	dist := func(i, j int) float64 {
		return geometry.Dist(points[order[i]], points[order[j]])
	}
	cost := a.length(points, order)
	best := slices.Clone(order)
	bestCost := cost

	edges := n - 1
	if a.Closed {
		edges = n
	}
	temp := a.Temperature * cost / float64(edges)
	cooling := a.Cooling
	if !(cooling > 0 && cooling < 1) {
		cooling = 0.9999
	}

	accepted := 0
	iter := 0
	for ; a.MaxIterations <= 0 || iter < a.MaxIterations; iter++ {
		if iter%checkInterval == 0 {
			if ctx.Err() != nil || time.Now().After(deadline) {
				break
			}
		}

		i := rng.IntN(n - 1)
		j := i + 1 + rng.IntN(n-1-i)
		if a.Closed && i == 0 && j == n-1 {
			continue
		}

		// reversing order[i..j] replaces the edges (i-1, i) and (j, j+1)
		var delta float64
		if i > 0 || a.Closed {
			prev := (i - 1 + n) % n
			delta += dist(prev, j) - dist(prev, i)
		}
		if j < n-1 || a.Closed {
			next := (j + 1) % n
			delta += dist(i, next) - dist(j, next)
		}

		if delta < 0 || (temp > 0 && rng.Float64() < math.Exp(-delta/temp)) {
			slices.Reverse(order[i : j+1])
			cost += delta
			accepted++
			if cost < bestCost-1e-12 {
				bestCost = cost
				copy(best, order)
			}
		}
		temp *= cooling
	}

	plot.Logger().Debug("annealing finished",
		"points", n,
		"iterations", iter,
		"accepted", accepted,
		"length", bestCost)
	return best, nil
}

// length returns the length of the tour given by order.
func (a *Annealer) length(points []vec.Vec2, order []int) float64 {
	var l float64
	for i := 1; i < len(order); i++ {
		l += geometry.Dist(points[order[i-1]], points[order[i]])
	}
	if a.Closed && len(order) > 1 {
		l += geometry.Dist(points[order[len(order)-1]], points[order[0]])
	}
	return l
}

// checkInterval is the number of moves between two checks of the clock.
const checkInterval = 1024
