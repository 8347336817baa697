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
	"image"
	"image/color"
	"math"

	"seehuhn.de/go/geom/vec"
)

// RGB is a color with components in [0, 1].
type RGB struct {
	R, G, B float64
}

// Channel selects one component of an [RGB] value.
type Channel int

// These are the channels understood by [ImageField].
const (
	Red Channel = iota
	Green
	Blue
	Gray
)

// ImageColor returns a lookup function for img.
//
// The argument of the returned function is a normalized point, with (0, 0)
// at the top left pixel and (1, 1) at the bottom right pixel. Coordinates
// outside [0, 1] are clamped. The nearest pixel is used, no interpolation
// takes place.  The color channels are read without alpha premultiplication,
// so transparency does not darken the image.
func ImageColor(img image.Image) func(p vec.Vec2) RGB {
	b := img.Bounds()
	w := b.Dx()
	h := b.Dy()
	return func(p vec.Vec2) RGB {
		if w == 0 || h == 0 {
			return RGB{}
		}
		xi := int(clamp01(p.X) * float64(w-1))
		yi := int(clamp01(p.Y) * float64(h-1))
		return straightRGB(img.At(b.Min.X+xi, b.Min.Y+yi))
	}
}

// straightRGB returns the non-premultiplied color channels of c.
func straightRGB(c color.Color) RGB {
	if n, ok := c.(color.NRGBA); ok {
		return RGB{
			R: float64(n.R) / 0xff,
			G: float64(n.G) / 0xff,
			B: float64(n.B) / 0xff,
		}
	}
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return RGB{
		R: float64(n.R) / 0xffff,
		G: float64(n.G) / 0xffff,
		B: float64(n.B) / 0xffff,
	}
}

// ImageField returns a field which reads the given channel of img.
// Bright pixels map to high density; combine with [Smoothstep] to invert.
func ImageField(img image.Image, ch Channel) Field {
	get := ImageColor(img)
	return func(p vec.Vec2) float64 {
		c := get(p)
		switch ch {
		case Red:
			return c.R
		case Green:
			return c.G
		case Blue:
			return c.B
		default:
			return Grayscale(c)
		}
	}
}

// Grayscale returns the luma of c, using the Rec. 601 weights.
func Grayscale(c RGB) float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// Smoothstep maps x to [0, 1] with a cubic Hermite ramp between a and b.
// If a > b the ramp is reversed.
func Smoothstep(a, b, x float64) float64 {
	k := clamp01((x - a) / (b - a))
	return k * k * (3 - 2*k)
}

// RGBToCMYK converts c to the naive CMYK model.
// For black, the chromatic components are zero.
func RGBToCMYK(c RGB) (cyan, magenta, yellow, black float64) {
	black = 1 - max(c.R, c.G, c.B)
	if black >= 1 {
		return 0, 0, 0, 1
	}
	cyan = (1 - c.R - black) / (1 - black)
	magenta = (1 - c.G - black) / (1 - black)
	yellow = (1 - c.B - black) / (1 - black)
	return cyan, magenta, yellow, black
}

// EuclideanRGBDistance returns the distance of a and b in RGB space.
func EuclideanRGBDistance(a, b RGB) float64 {
	return math.Sqrt((a.R-b.R)*(a.R-b.R) + (a.G-b.G)*(a.G-b.G) + (a.B-b.B)*(a.B-b.B))
}

func clamp01(x float64) float64 {
	return min(max(x, 0), 1)
}
