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

// Adjustments describes a custom grade as three scalar controls.
// The zero value is a no-op grade.
type Adjustments struct {
	// Exposure shifts brightness in stops; each full stop doubles or
	// halves the channel values.
	Exposure float64

	// Contrast is on the -255..255 scale of the classic 259-contrast
	// formula. Values outside that range are clamped.
	Contrast float64

	// Saturation is a percentage offset: -100 removes all colour,
	// 0 leaves it unchanged, 100 doubles the distance from gray.
	Saturation float64
}

// Compile builds a grid that applies the given adjustments. The
// result depends only on size and adj, never on any source image, so
// grids for the same parameter tuple may be cached and reused.
//
// Per grid coordinate the adjustments are applied in order: exposure,
// contrast, saturation; the final value is clamped to [0, 1].
func Compile(size int, adj Adjustments) (*Grid, error) {
	if size < 2 {
		return nil, fmt.Errorf("%w: grid size %d", ErrInvalidParameter, size)
	}

	gain := math.Exp2(adj.Exposure)
	c := clamp(adj.Contrast, -255, 255)
	cf := 259 * (c + 255) / (255 * (259 - c))
	sat := 1 + adj.Saturation/100

	g := &Grid{
		Size:      size,
		DomainMin: [3]float64{0, 0, 0},
		DomainMax: [3]float64{1, 1, 1},
		Data:      make([]float64, size*size*size*3),
	}
	scale := float64(size - 1)
	i := 0
	for bi := range size {
		for gi := range size {
			for ri := range size {
				r := float64(ri) / scale * gain
				gg := float64(gi) / scale * gain
				b := float64(bi) / scale * gain

				r = cf*(r-0.5) + 0.5
				gg = cf*(gg-0.5) + 0.5
				b = cf*(b-0.5) + 0.5

				gray := luma(r, gg, b)
				r = gray + (r-gray)*sat
				gg = gray + (gg-gray)*sat
				b = gray + (b-gray)*sat

				g.Data[i] = clamp(r, 0, 1)
				g.Data[i+1] = clamp(gg, 0, 1)
				g.Data[i+2] = clamp(b, 0, 1)
				i += 3
			}
		}
	}
	return g, nil
}
