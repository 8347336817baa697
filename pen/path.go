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

package pen

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Path records the movements of a pen.
// The zero value is an empty path.
type Path struct {
	Cmds   []path.Command
	Coords []vec.Vec2
}

// MoveTo lifts the pen and puts it down at p.
func (p *Path) MoveTo(v vec.Vec2) *Path {
	p.Cmds = append(p.Cmds, path.CmdMoveTo)
	p.Coords = append(p.Coords, v)
	return p
}

// LineTo draws a straight line to v.
func (p *Path) LineTo(v vec.Vec2) *Path {
	p.Cmds = append(p.Cmds, path.CmdLineTo)
	p.Coords = append(p.Coords, v)
	return p
}

// QuadTo draws a quadratic Bézier curve with control point c.
func (p *Path) QuadTo(c, v vec.Vec2) *Path {
	p.Cmds = append(p.Cmds, path.CmdQuadTo)
	p.Coords = append(p.Coords, c, v)
	return p
}

// CubeTo draws a cubic Bézier curve with control points c1 and c2.
func (p *Path) CubeTo(c1, c2, v vec.Vec2) *Path {
	p.Cmds = append(p.Cmds, path.CmdCubeTo)
	p.Coords = append(p.Coords, c1, c2, v)
	return p
}

// Close draws a line back to the start of the current subpath.
func (p *Path) Close() *Path {
	p.Cmds = append(p.Cmds, path.CmdClose)
	return p
}

// Reset removes all commands, keeping the allocated memory.
func (p *Path) Reset() {
	p.Cmds = p.Cmds[:0]
	p.Coords = p.Coords[:0]
}

// IsEmpty reports whether p contains no commands.  A nil path is empty.
func (p *Path) IsEmpty() bool {
	return p == nil || len(p.Cmds) == 0
}

// All iterates over the commands of p.  The point slices passed to yield
// are only valid during the call.
func (p *Path) All() path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		if p == nil {
			return
		}
		k := 0
		for _, cmd := range p.Cmds {
			n := coordCount(cmd)
			if !yield(cmd, p.Coords[k:k+n]) {
				return
			}
			k += n
		}
	}
}

func coordCount(cmd path.Command) int {
	switch cmd {
	case path.CmdMoveTo, path.CmdLineTo:
		return 1
	case path.CmdQuadTo:
		return 2
	case path.CmdCubeTo:
		return 3
	default:
		return 0
	}
}
