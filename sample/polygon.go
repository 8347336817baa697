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

package sample

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/geometry"
)

// Polygon samples points inside poly.
//
// The lattice is laid over the bounding rectangle of the polygon and f is
// evaluated at the projected lattice points. Points outside the polygon have
// density zero. The returned points are in the coordinate space of poly.
func Polygon(poly plot.Polygon, f Field, dim, maxSamples int, rng *rand.Rand) ([]vec.Vec2, error) {
	bounds, err := geometry.Bounds(poly)
	if err != nil {
		return nil, err
	}
	local := func(p vec.Vec2) float64 {
		q := geometry.ProjectInBoundaries(p, bounds)
		if !geometry.PointInPolygon(q, poly) {
			return 0
		}
		return f(q)
	}
	pts, err := Sample(local, dim, maxSamples, rng)
	if err != nil {
		return nil, err
	}
	for i, p := range pts {
		pts[i] = geometry.ProjectInBoundaries(p, bounds)
	}
	return pts, nil
}

// PolygonConfig controls [Polygons].
type PolygonConfig struct {
	// Field is the density evaluated in the coordinate space of the
	// polygons.
	Field Field

	// Dim is the lattice size used for every polygon.
	Dim int

	// MaxSamples is the maximum number of points per polygon.
	MaxSamples int

	// MinPoints is the smallest useful result.  Polygons with fewer samples
	// yield an empty slice.
	MinPoints int

	// Seed is the parent seed.  Polygon i uses Seed.Derive(i).
	Seed Seed

	// Workers limits the number of polygons sampled at the same time.
	// Zero means runtime.GOMAXPROCS(0).
	Workers int
}

// Polygons samples every polygon concurrently.
// Result i belongs to polys[i], independent of the order in which the
// workers finish.
func Polygons(ctx context.Context, polys []plot.Polygon, cfg PolygonConfig) ([][]vec.Vec2, error) {
	if cfg.Field == nil {
		return nil, fmt.Errorf("missing density field: %w", plot.ErrInvalidInput)
	}
	if err := checkArgs(cfg.Dim, cfg.MaxSamples); err != nil {
		return nil, err
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	res := make([][]vec.Vec2, len(polys))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, poly := range polys {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := NewRand(cfg.Seed.Derive(i))
			pts, err := Polygon(poly, cfg.Field, cfg.Dim, cfg.MaxSamples, rng)
			if err != nil {
				return fmt.Errorf("polygon %d: %w", i, err)
			}
			if len(pts) < cfg.MinPoints {
				pts = nil
			}
			res[i] = pts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger := plot.Logger()
	var dropped int
	for _, pts := range res {
		if len(pts) == 0 {
			dropped++
		}
	}
	if dropped > 0 {
		logger.Warn("polygons without samples", "dropped", dropped, "total", len(polys))
	}
	logger.Debug("sampled polygons", "polygons", len(polys), "workers", workers)
	return res, nil
}
