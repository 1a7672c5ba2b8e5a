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
	"fmt"
	"math"
)

// Apply transforms every pixel of src through the grid and returns a
// new buffer of the same dimensions; src is left untouched.
//
// strength is a 0-100 percentage: 0 returns the source colours
// unchanged, 100 the fully transformed colours, and intermediate
// values blend linearly between the two. The alpha channel is copied
// from the source. Strength outside 0-100 returns
// [ErrInvalidParameter].
func Apply(src *Image, g *Grid, strength int) (*Image, error) {
	if strength < 0 || strength > 100 {
		return nil, fmt.Errorf("%w: strength %d", ErrInvalidParameter, strength)
	}
	if err := g.validate(); err != nil {
		return nil, err
	}

	out := NewImage(src.Width, src.Height)
	s := float64(strength) / 100

	parallelRows(src.Height, func(y0, y1 int) {
		for i := y0 * src.Width * 4; i < y1*src.Width*4; i += 4 {
			r := float64(src.Pix[i]) / 255
			gg := float64(src.Pix[i+1]) / 255
			b := float64(src.Pix[i+2]) / 255

			tr, tg, tb := g.Lookup(r, gg, b)

			out.Pix[i] = quantize8(tr*s + r*(1-s))
			out.Pix[i+1] = quantize8(tg*s + gg*(1-s))
			out.Pix[i+2] = quantize8(tb*s + b*(1-s))
			out.Pix[i+3] = src.Pix[i+3]
		}
	})
	return out, nil
}

// quantize8 converts a [0, 1] channel value to a byte with rounding.
func quantize8(v float64) uint8 {
	return uint8(math.Round(clamp(v, 0, 1) * 255))
}
