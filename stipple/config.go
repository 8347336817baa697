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

package stipple

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"seehuhn.de/go/plot"
)

// Order selects how the points of a cell are connected.
type Order string

// These are the supported values for [Config.Order].
const (
	OrderSample Order = "sample" // the order in which points were drawn
	OrderSpiral Order = "spiral" // inward spiral, see tour.Spiral
	OrderAnneal Order = "anneal" // short open tour, see tour.Annealer
)

// Config holds the parameters of a stipple drawing.
// The zero value is not useful, start from [DefaultConfig].
type Config struct {
	// VoronoiSize is the maximum number of Voronoi sites.
	VoronoiSize int `json:"voronoi_size"`

	// CandidateDim is the lattice size used to place the Voronoi sites.
	CandidateDim int `json:"candidate_dim"`

	// Pad is the margin kept free of sites, as a fraction of the page.
	Pad float64 `json:"pad"`

	// CellThreshold removes cells whose bounding square edge is at least
	// this large (in normalized units).
	CellThreshold float64 `json:"cell_threshold"`

	// Resolution is the lattice size used inside every cell.
	Resolution int `json:"resolution"`

	// MaxSamples is the maximum number of points per cell.
	MaxSamples int `json:"max_samples"`

	// MinPoints is the smallest number of points for a cell to be drawn.
	MinPoints int `json:"min_points"`

	// SampleRadius scales the density inside the cells.
	SampleRadius float64 `json:"sample_radius"`

	// Width and Height give the page size in millimetres.
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// ConnectDistance is the longest pen move drawn as a line, in
	// millimetres.  Longer moves lift the pen.
	ConnectDistance float64 `json:"connect_distance"`

	// StrokeWidth is the pen width in millimetres.
	StrokeWidth float64 `json:"stroke_width"`

	// Precision rounds the output coordinates.  Zero disables rounding.
	Precision float64 `json:"precision"`

	Order Order `json:"order"`

	// AnnealMillis is the time budget per cell for [OrderAnneal].
	AnnealMillis int `json:"anneal_millis"`

	// Workers limits the number of cells processed at the same time.
	// Zero means one per CPU.
	Workers int `json:"workers"`
}

// DefaultConfig returns the settings of the bitcoin portrait drawing on an
// A4 portrait page.
func DefaultConfig() Config {
	return Config{
		VoronoiSize:     900,
		CandidateDim:    800,
		Pad:             0.02,
		CellThreshold:   0.5,
		Resolution:      80,
		MaxSamples:      80,
		MinPoints:       5,
		SampleRadius:    0.04,
		Width:           210,
		Height:          297,
		ConnectDistance: 20,
		StrokeWidth:     0.2,
		Order:           OrderSample,
		AnnealMillis:    20,
	}
}

// LoadConfig reads a JSON file.  Fields missing from the file keep their
// default values.
func LoadConfig(fname string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(fname)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", fname, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", fname, err)
	}
	return cfg, nil
}

// Validate checks that all parameters are in range.
func (c *Config) Validate() error {
	bad := func(name string, val any) error {
		return fmt.Errorf("%s = %v: %w", name, val, plot.ErrInvalidInput)
	}
	positive := func(x float64) bool {
		return x > 0 && !math.IsInf(x, 0)
	}

	switch {
	case c.VoronoiSize < 1:
		return bad("voronoi_size", c.VoronoiSize)
	case c.CandidateDim < 1:
		return bad("candidate_dim", c.CandidateDim)
	case !(c.Pad >= 0 && c.Pad < 0.5):
		return bad("pad", c.Pad)
	case !positive(c.CellThreshold):
		return bad("cell_threshold", c.CellThreshold)
	case c.Resolution < 1:
		return bad("resolution", c.Resolution)
	case c.MaxSamples < 0:
		return bad("max_samples", c.MaxSamples)
	case c.MinPoints < 0:
		return bad("min_points", c.MinPoints)
	case !(c.SampleRadius >= 0 && c.SampleRadius <= 1):
		return bad("sample_radius", c.SampleRadius)
	case !positive(c.Width):
		return bad("width", c.Width)
	case !positive(c.Height):
		return bad("height", c.Height)
	case !(c.ConnectDistance >= 0):
		return bad("connect_distance", c.ConnectDistance)
	case !positive(c.StrokeWidth):
		return bad("stroke_width", c.StrokeWidth)
	case !(c.Precision >= 0) || math.IsInf(c.Precision, 0):
		return bad("precision", c.Precision)
	case c.AnnealMillis < 0:
		return bad("anneal_millis", c.AnnealMillis)
	case c.Workers < 0:
		return bad("workers", c.Workers)
	}

	switch c.Order {
	case OrderSample, OrderSpiral, OrderAnneal:
	default:
		return bad("order", c.Order)
	}
	return nil
}
