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

// Package sample draws candidate points from a density field by rejection
// sampling on a regular lattice.
//
// Results depend only on the field, the lattice size, the number of samples
// and the state of the random generator, so that a fixed seed always
// reproduces the same drawing.
package sample

import (
	"fmt"
	"math/rand/v2"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/plot"
)

// Field maps a normalized point to a value in [0, 1].
// A value of 0 means the point is never sampled, 1 means it is always
// sampled. Fields must be pure functions; they may be evaluated concurrently.
type Field func(p vec.Vec2) float64

// Predicate is the boolean special case of a [Field].
type Predicate func(p vec.Vec2) bool

// Sample evaluates f on a dim×dim lattice over [0, 1)² and keeps every
// lattice point whose density exceeds a uniform random draw. The kept points
// are shuffled and at most maxSamples of them are returned.
//
// One value is drawn from rng for every lattice point, whether or not the
// point is kept.
func Sample(f Field, dim, maxSamples int, rng *rand.Rand) ([]vec.Vec2, error) {
	if err := checkArgs(dim, maxSamples); err != nil {
		return nil, err
	}

	var candidates []vec.Vec2
	scale := 1 / float64(dim)
	for x := range dim {
		for y := range dim {
			p := vec.Vec2{X: float64(x) * scale, Y: float64(y) * scale}
			if f(p) > rng.Float64() {
				candidates = append(candidates, p)
			}
		}
	}
	return shuffleTruncate(candidates, maxSamples, rng), nil
}

// SamplePredicate keeps every lattice point for which pred returns true,
// then shuffles and truncates the result like [Sample].
func SamplePredicate(pred Predicate, dim, maxSamples int, rng *rand.Rand) ([]vec.Vec2, error) {
	if err := checkArgs(dim, maxSamples); err != nil {
		return nil, err
	}

	var candidates []vec.Vec2
	scale := 1 / float64(dim)
	for x := range dim {
		for y := range dim {
			p := vec.Vec2{X: float64(x) * scale, Y: float64(y) * scale}
			if pred(p) {
				candidates = append(candidates, p)
			}
		}
	}
	return shuffleTruncate(candidates, maxSamples, rng), nil
}

func checkArgs(dim, maxSamples int) error {
	if dim <= 0 {
		return fmt.Errorf("lattice size %d: %w", dim, plot.ErrInvalidInput)
	}
	if maxSamples < 0 {
		return fmt.Errorf("sample count %d: %w", maxSamples, plot.ErrInvalidInput)
	}
	return nil
}

func shuffleTruncate(candidates []vec.Vec2, n int, rng *rand.Rand) []vec.Vec2 {
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}
