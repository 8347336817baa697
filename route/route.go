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

// Package route grows routes point by point from a set of origins.
//
// The caller supplies a [StepFunc] which proposes the next point of a
// route.  The builder decides whether the proposal is accepted.  Depending
// on the [Discipline], a proposed segment which crosses another route is
// cut at the crossing point, and the route ends there.
package route

import (
	"fmt"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/geometry"
)

// StepFunc proposes the point following cur.
//
// The argument i is the index of the point to build (the origin has index
// 0, so the first call for every route has i == 1) and j is the index of
// the route.  If ok is false, the route has no further points.  If ends is
// true, next is the last point of the route.
//
// The builder does not limit the number of steps.  A StepFunc which never
// ends a route makes the builder loop forever.
type StepFunc func(cur vec.Vec2, i, j int) (next vec.Vec2, ends, ok bool)

// Discipline selects how collisions between routes are resolved.
type Discipline int

const (
	// Plain builds every route without collision checks.
	Plain Discipline = iota

	// Sequential builds the routes one after another, in input order.
	// A route is cut where it first meets one of the routes built before
	// it.
	Sequential

	// Parallel advances all routes one step at a time.  At every step, a
	// route is cut where it meets the current state of any other route.
	Parallel
)

func (d Discipline) String() string {
	switch d {
	case Plain:
		return "plain"
	case Sequential:
		return "sequential"
	case Parallel:
		return "parallel"
	default:
		return fmt.Sprintf("Discipline(%d)", int(d))
	}
}

// PassageCounter counts the accepted points of a route.
// Both *passage.Counter and *passage.Locked implement this interface.
type PassageCounter interface {
	Count(p vec.Vec2) int
}

// Builder holds the parameters for building a set of routes.
// The zero value builds routes without collision checks.
type Builder struct {
	Discipline Discipline

	// Passage, if set, counts every accepted point.  When the count for a
	// point exceeds MaxPassage, the route ends at this point.  A MaxPassage
	// of zero disables the limit, but the points are still counted.
	Passage    PassageCounter
	MaxPassage int
}

// Build grows one route from every origin and returns the routes with
// more than one point, in the order of their origins.
func (b *Builder) Build(origins []vec.Vec2, step StepFunc) ([]plot.Route, error) {
	for i, p := range origins {
		if err := geometry.CheckPoint(p); err != nil {
			return nil, fmt.Errorf("origin %d: %w", i, err)
		}
	}

	var routes []plot.Route
	var err error
	switch b.Discipline {
	case Plain:
		routes, err = b.buildPlain(origins, step)
	case Sequential:
		routes, err = b.buildSequential(origins, step)
	case Parallel:
		routes, err = b.buildParallel(origins, step)
	default:
		return nil, fmt.Errorf("discipline %d: %w", int(b.Discipline), plot.ErrInvalidInput)
	}
	if err != nil {
		return nil, err
	}

	n := len(routes)
	routes = plot.DropDegenerate(routes)
	plot.Logger().Debug("built routes",
		"discipline", b.Discipline,
		"origins", len(origins),
		"routes", len(routes),
		"degenerate", n-len(routes))
	return routes, nil
}

// Build grows routes without collision checks.
func Build(origins []vec.Vec2, step StepFunc) ([]plot.Route, error) {
	b := &Builder{Discipline: Plain}
	return b.Build(origins, step)
}

// BuildSequential grows routes using the [Sequential] discipline.
func BuildSequential(origins []vec.Vec2, step StepFunc) ([]plot.Route, error) {
	b := &Builder{Discipline: Sequential}
	return b.Build(origins, step)
}

// BuildParallel grows routes using the [Parallel] discipline.
func BuildParallel(origins []vec.Vec2, step StepFunc) ([]plot.Route, error) {
	b := &Builder{Discipline: Parallel}
	return b.Build(origins, step)
}

// Collide truncates precomputed routes as if they had been grown with the
// given discipline.  Routes with fewer than two points are dropped.
func Collide(routes []plot.Route, d Discipline) ([]plot.Route, error) {
	var src []plot.Route
	for _, r := range routes {
		if !r.IsDegenerate() {
			src = append(src, r)
		}
	}
	origins := make([]vec.Vec2, len(src))
	for j, r := range src {
		origins[j] = r[0]
	}
	replay := func(_ vec.Vec2, i, j int) (vec.Vec2, bool, bool) {
		r := src[j]
		if i >= len(r) {
			return vec.Vec2{}, false, false
		}
		return r[i], i == len(r)-1, true
	}
	b := &Builder{Discipline: d}
	return b.Build(origins, replay)
}

// propose calls step and validates the result.
func propose(step StepFunc, cur vec.Vec2, i, j int) (vec.Vec2, bool, bool, error) {
	next, ends, ok := step(cur, i, j)
	if !ok {
		return vec.Vec2{}, false, false, nil
	}
	if err := geometry.CheckPoint(next); err != nil {
		return vec.Vec2{}, false, false, fmt.Errorf("route %d, point %d: %w", j, i, err)
	}
	return next, ends, true, nil
}

// record counts p and reports whether the passage limit is exceeded.
func (b *Builder) record(p vec.Vec2) bool {
	if b.Passage == nil {
		return false
	}
	n := b.Passage.Count(p)
	return b.MaxPassage > 0 && n > b.MaxPassage
}

func (b *Builder) buildPlain(origins []vec.Vec2, step StepFunc) ([]plot.Route, error) {
	routes := make([]plot.Route, 0, len(origins))
	for j, origin := range origins {
		r := plot.Route{origin}
		cur := origin
		for i := 1; ; i++ {
			next, ends, ok, err := propose(step, cur, i, j)
			if err != nil {
				return nil, err
			}
			if !ok {
				break
			}
			r = append(r, next)
			if ends || b.record(next) {
				break
			}
			cur = next
		}
		routes = append(routes, r)
	}
	return routes, nil
}

func (b *Builder) buildSequential(origins []vec.Vec2, step StepFunc) ([]plot.Route, error) {
	idx := newIndex(scale(origins))
	routes := make([]plot.Route, 0, len(origins))
	for j, origin := range origins {
		r := plot.Route{origin}
		cur := origin
		for i := 1; ; i++ {
			next, ends, ok, err := propose(step, cur, i, j)
			if err != nil {
				return nil, err
			}
			if !ok {
				break
			}
			if q, hit := idx.collide(cur, next, j); hit {
				r = append(r, q)
				b.record(q)
				break
			}
			r = append(r, next)
			if ends || b.record(next) {
				break
			}
			cur = next
		}
		for k := 1; k < len(r); k++ {
			idx.add(j, k-1, r[k-1], r[k])
		}
		routes = append(routes, r)
	}
	return routes, nil
}

func (b *Builder) buildParallel(origins []vec.Vec2, step StepFunc) ([]plot.Route, error) {
	idx := newIndex(scale(origins))
	routes := make([]plot.Route, len(origins))
	finished := make([]bool, len(origins))
	for j, origin := range origins {
		routes[j] = plot.Route{origin}
	}

	for i := 1; ; i++ {
		continues := false
		for j := range routes {
			if finished[j] {
				continue
			}
			r := routes[j]
			cur := r[len(r)-1]
			next, ends, ok, err := propose(step, cur, i, j)
			if err != nil {
				return nil, err
			}
			if !ok {
				finished[j] = true
				continue
			}
			if q, hit := idx.collide(cur, next, j); hit {
				idx.add(j, len(r)-1, cur, q)
				routes[j] = append(r, q)
				b.record(q)
				finished[j] = true
				continue
			}
			idx.add(j, len(r)-1, cur, next)
			routes[j] = append(r, next)
			if ends || b.record(next) {
				finished[j] = true
				continue
			}
			continues = true
		}
		if !continues {
			break
		}
	}
	return routes, nil
}

// scale returns the size of the region spanned by the origins.
func scale(origins []vec.Vec2) float64 {
	r := geometry.PointsBounds(origins)
	return max(r.URx-r.LLx, r.URy-r.LLy)
}
