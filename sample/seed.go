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
	"encoding/binary"
	"math"
	"math/rand/v2"
)

// Seed is the 16 byte state used to initialise a generator.
type Seed [16]byte

// SeedFromByte returns a seed whose first byte is b and all other bytes
// are zero.
func SeedFromByte(b byte) Seed {
	return Seed{0: b}
}

// SeedFromFloat stores the IEEE 754 bits of s, big-endian, in the first
// eight bytes of the seed.
func SeedFromFloat(s float64) Seed {
	var seed Seed
	binary.BigEndian.PutUint64(seed[:8], math.Float64bits(s))
	return seed
}

// Derive returns a new seed for the sub-task with index i.
// Seeds derived from the same parent with different indices are different.
func (s Seed) Derive(i int) Seed {
	res := s
	hi := binary.BigEndian.Uint64(res[8:])
	binary.BigEndian.PutUint64(res[8:], hi^(uint64(i)+1)*0x9e3779b97f4a7c15)
	return res
}

// NewRand returns a PCG generator seeded with the two big-endian halves of
// seed.
func NewRand(seed Seed) *rand.Rand {
	lo := binary.BigEndian.Uint64(seed[:8])
	hi := binary.BigEndian.Uint64(seed[8:])
	return rand.New(rand.NewPCG(lo, hi))
}

// RandFromFloat returns a generator seeded from s which has already been
// advanced by [warmupDraws] values, so that small seeds do not start with
// correlated output.
func RandFromFloat(s float64) *rand.Rand {
	rng := NewRand(SeedFromFloat(s))
	for range warmupDraws {
		rng.Float64()
	}
	return rng
}

const warmupDraws = 50
