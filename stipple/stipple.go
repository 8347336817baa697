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

// Package stipple draws a density as clusters of short pen strokes.
//
// Voronoi sites are placed with a radial density, so that the cells are
// small near the centre of the page and large near the border.  Cells which
// are too large are dropped.  Inside every remaining cell, points are sampled
// under the image density and joined into one route.
package stipple

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/geometry"
	"seehuhn.de/go/plot/pen"
	"seehuhn.de/go/plot/route"
	"seehuhn.de/go/plot/sample"
	"seehuhn.de/go/plot/tour"
	"seehuhn.de/go/plot/voronoi"
)

// Radial is 1 at the centre of the unit square and falls off linearly with
// the distance from the centre.
func Radial(p vec.Vec2) float64 {
	return 1 - 1.5*geometry.Dist(p, vec.Vec2{X: 0.5, Y: 0.5})
}

// ImageDensity returns a field which is high where the green channel of img
// is dark.
func ImageDensity(img image.Image) sample.Field {
	green := sample.ImageField(img, sample.Green)
	return func(p vec.Vec2) float64 {
		return sample.Smoothstep(1, 0, green(p))
	}
}

// Run computes the routes of a stipple drawing, in page millimetres.
//
// The density is evaluated in normalized coordinates.  For a given
// configuration, density and seed the result is always the same, except
// when cfg.Order is [OrderAnneal] and the time budget runs out.
func Run(ctx context.Context, cfg Config, density sample.Field, seed sample.Seed) ([]plot.Route, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if density == nil {
		return nil, fmt.Errorf("missing density: %w", plot.ErrInvalidInput)
	}
	logger := plot.Logger()

	rng := sample.NewRand(seed)
	sites, err := sample.Sample(Radial, cfg.CandidateDim, cfg.VoronoiSize, rng)
	if err != nil {
		return nil, err
	}
	logger.Info("placed sites", "sites", len(sites))

	cells, err := voronoi.Partition(sites, cfg.Pad)
	if err != nil {
		return nil, err
	}
	cells = voronoi.FilterBySquareEdge(cells, cfg.CellThreshold)
	logger.Info("partitioned page", "cells", len(cells))

	clusters, err := sample.Polygons(ctx, cells, sample.PolygonConfig{
		Field: func(p vec.Vec2) float64 {
			return cfg.SampleRadius * density(p)
		},
		Dim:        cfg.Resolution,
		MaxSamples: cfg.MaxSamples,
		MinPoints:  cfg.MinPoints,
		Seed:       seed,
		Workers:    cfg.Workers,
	})
	if err != nil {
		return nil, err
	}

	routes := make([]plot.Route, len(clusters))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers(cfg))
	for i, pts := range clusters {
		if len(pts) == 0 {
			continue
		}
		g.Go(func() error {
			r := make(plot.Route, len(pts))
			for k, p := range pts {
				r[k] = vec.Vec2{X: p.X * cfg.Width, Y: p.Y * cfg.Height}
			}
			r, err := order(ctx, cfg, r, i)
			if err != nil {
				return fmt.Errorf("cell %d: %w", i, err)
			}
			if cfg.Precision > 0 {
				r = route.Round(r, cfg.Precision)
			}
			routes[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	routes = plot.DropDegenerate(routes)

	logger.Info("sampled routes", "routes", len(routes), "order", cfg.Order)
	return routes, nil
}

func order(ctx context.Context, cfg Config, r plot.Route, cell int) (plot.Route, error) {
	switch cfg.Order {
	case OrderSpiral:
		return tour.Spiral(r), nil
	case OrderAnneal:
		a := tour.NewAnnealer(uint64(cell) + 1)
		a.MaxIterations = 200 * len(r)
		budget := time.Duration(cfg.AnnealMillis) * time.Millisecond
		return tour.Order(ctx, a, r, budget)
	default:
		return r, nil
	}
}

func workers(cfg Config) int {
	if cfg.Workers > 0 {
		return cfg.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Document returns a white page of the configured size, with all routes on
// one black layer.
// The pen is lifted for moves longer than cfg.ConnectDistance.
func Document(cfg Config, routes []plot.Route) pen.Document {
	doc := pen.Document{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Background: color.White,
	}
	layer := doc.AddLayer("black", color.Black, cfg.StrokeWidth)
	connect := pen.MaxDistance(cfg.ConnectDistance)
	for _, r := range routes {
		layer.Path = pen.AppendRouteWhen(layer.Path, r, connect)
	}
	return doc
}
