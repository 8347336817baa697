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

// Package tour orders unordered point sets into routes.
//
// [Spiral] is a cheap greedy heuristic which sweeps around the point set.
// Shorter tours are found by a [Solver], for example the [Annealer].
package tour

import (
	"math"
	"slices"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/plot"
)

// Spiral orders the points by always turning in the same direction.
//
// The route starts at the point with the smallest y coordinate.  At every
// step the remaining point with the smallest counter-clockwise rotation
// from the current heading is chosen, with turns compared at a resolution
// of 1e-6 radians.  The result is a permutation of the
// input; repeated points are visited repeatedly.
func Spiral(points []vec.Vec2) plot.Route {
	order := spiralOrder(points)
	if order == nil {
		return nil
	}
	res := make(plot.Route, len(order))
	for i, k := range order {
		res[i] = points[k]
	}
	return res
}

// spiralOrder returns the visiting order used by [Spiral].
func spiralOrder(points []vec.Vec2) []int {
	if len(points) == 0 {
		return nil
	}

	start := 0
	for i, p := range points {
		if p.Y < points[start].Y {
			start = i
		}
	}

	remaining := make([]int, 0, len(points)-1)
	for i := range points {
		if i != start {
			remaining = append(remaining, i)
		}
	}

	order := make([]int, 1, len(points))
	order[0] = start
	p := points[start]
	heading := 0.0
	for len(remaining) > 0 {
		best := 0
		bestKey := math.MaxInt
		for k, idx := range remaining {
			q := points[idx]
			turn := math.Mod(2*math.Pi+math.Atan2(p.Y-q.Y, p.X-q.X)-heading, 2*math.Pi)
			key := int(turn * angleResolution)
			if key < bestKey {
				best = k
				bestKey = key
			}
		}
		q := points[remaining[best]]
		heading = math.Atan2(p.Y-q.Y, p.X-q.X)
		p = q
		order = append(order, remaining[best])
		remaining = slices.Delete(remaining, best, best+1)
	}
	return order
}

// angleResolution is the number of steps per radian used to rank the
// candidates.  Turns which fall into the same step count as equal, and the
// earlier candidate wins.
const angleResolution = 1e6
