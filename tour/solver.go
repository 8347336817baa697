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
	"fmt"
	"time"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/plot"
)

// Solver finds a short tour through a set of points.
//
// Solve returns a visiting order, as a permutation of the indices of
// points.  The budget limits the wall-clock time spent searching.
type Solver interface {
	Solve(ctx context.Context, points []vec.Vec2, budget time.Duration) ([]int, error)
}

// SolverFunc adapts an ordinary function to the [Solver] interface.
type SolverFunc func(ctx context.Context, points []vec.Vec2, budget time.Duration) ([]int, error)

// Solve calls f.
func (f SolverFunc) Solve(ctx context.Context, points []vec.Vec2, budget time.Duration) ([]int, error) {
	return f(ctx, points, budget)
}

// Order asks s for a tour through points and returns the points in
// visiting order.  An answer which is not a permutation of the point
// indices results in an error wrapping [plot.ErrInvalidInput].
func Order(ctx context.Context, s Solver, points []vec.Vec2, budget time.Duration) (plot.Route, error) {
	if len(points) == 0 {
		return nil, nil
	}
	perm, err := s.Solve(ctx, points, budget)
	if err != nil {
		return nil, err
	}
	if err := checkPermutation(perm, len(points)); err != nil {
		return nil, err
	}
	res := make(plot.Route, len(perm))
	for i, k := range perm {
		res[i] = points[k]
	}
	return res, nil
}

func checkPermutation(perm []int, n int) error {
	if len(perm) != n {
		return fmt.Errorf("tour has %d points, want %d: %w", len(perm), n, plot.ErrInvalidInput)
	}
	seen := make([]bool, n)
	for _, k := range perm {
		if k < 0 || k >= n {
			return fmt.Errorf("tour index %d out of range: %w", k, plot.ErrInvalidInput)
		}
		if seen[k] {
			return fmt.Errorf("tour visits point %d twice: %w", k, plot.ErrInvalidInput)
		}
		seen[k] = true
	}
	return nil
}
