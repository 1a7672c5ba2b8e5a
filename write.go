// seehuhn.de/go/lut - 3D colour lookup tables for colour grading
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

package lut

import (
	"bytes"
	"fmt"
	"math"
)

// Encode serialises the grid in the given format.
// Only [FormatCube] and [Format3DL] are supported for writing.
func Encode(g *Grid, f Format) ([]byte, error) {
	switch f {
	case FormatCube:
		return g.EncodeCube(), nil
	case Format3DL:
		return g.Encode3DL(), nil
	default:
		return nil, fmt.Errorf("%w: cannot write %v", ErrUnsupportedFormat, f)
	}
}

// EncodeCube serialises the grid in the .cube format, with six decimal
// places per channel. The row order is the grid's internal order, red
// axis fastest.
func (g *Grid) EncodeCube() []byte {
	var buf bytes.Buffer

	if g.Title != "" {
		fmt.Fprintf(&buf, "TITLE %q\n", g.Title)
	}
	fmt.Fprintf(&buf, "LUT_3D_SIZE %d\n", g.Size)
	fmt.Fprintf(&buf, "DOMAIN_MIN %g %g %g\n",
		g.DomainMin[0], g.DomainMin[1], g.DomainMin[2])
	fmt.Fprintf(&buf, "DOMAIN_MAX %g %g %g\n",
		g.DomainMax[0], g.DomainMax[1], g.DomainMax[2])
	for _, c := range g.Comments {
		fmt.Fprintf(&buf, "%s\n", c)
	}
	buf.WriteByte('\n')

	for i := 0; i < len(g.Data); i += 3 {
		fmt.Fprintf(&buf, "%.6f %.6f %.6f\n",
			g.Data[i], g.Data[i+1], g.Data[i+2])
	}
	return buf.Bytes()
}

// Encode3DL serialises the grid in the .3dl format, with each channel
// quantised to a 12-bit integer.
func (g *Grid) Encode3DL() []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%d %d %d\n", g.Size, g.Size, g.Size)
	buf.WriteString("Mesh\n")
	for i := 0; i < len(g.Data); i += 3 {
		fmt.Fprintf(&buf, "%d %d %d\n",
			quantize12(g.Data[i]),
			quantize12(g.Data[i+1]),
			quantize12(g.Data[i+2]))
	}
	return buf.Bytes()
}

func quantize12(v float64) int {
	return int(math.Round(clamp(v, 0, 1) * 4095))
}
