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

// trilinearInterp3D performs trilinear interpolation in a 3D LUT.
// The input r, g, b values are in [0, 1].
// The data slice contains flattened RGB triples with the red axis
// fastest, then green, then blue.
// size is the number of grid points per dimension (same for all three).
func trilinearInterp3D(data []float64, size int, r, g, b float64) (float64, float64, float64) {
	if size < 2 {
		if len(data) >= 3 {
			return data[0], data[1], data[2]
		}
		return 0, 0, 0
	}

	// scale to grid coordinates
	scale := float64(size - 1)
	rPos := clamp(r, 0, 1) * scale
	gPos := clamp(g, 0, 1) * scale
	bPos := clamp(b, 0, 1) * scale

	// grid indices, clamped to [0, size-1]
	ri := min(int(rPos), size-1)
	gi := min(int(gPos), size-1)
	bi := min(int(bPos), size-1)

	// the neighbour index collapses onto the edge at the boundary,
	// holding the edge colour instead of extrapolating
	ri1 := min(ri+1, size-1)
	gi1 := min(gi+1, size-1)
	bi1 := min(bi+1, size-1)

	// fractional parts
	fr := clamp(rPos-float64(ri), 0, 1)
	fg := clamp(gPos-float64(gi), 0, 1)
	fb := clamp(bPos-float64(bi), 0, 1)

	// compute offsets of the 8 cube corners
	rStride := 3
	gStride := size * 3
	bStride := size * size * 3

	base := bi*bStride + gi*gStride + ri*rStride
	dr := (ri1 - ri) * rStride
	dg := (gi1 - gi) * gStride
	db := (bi1 - bi) * bStride

	c000 := base
	c001 := base + db
	c010 := base + dg
	c011 := base + dg + db
	c100 := base + dr
	c101 := base + dr + db
	c110 := base + dr + dg
	c111 := base + dr + dg + db

	var out [3]float64
	for i := range 3 {
		// interpolate along blue first (4 pairs -> 4 values)
		v00 := lerp(data[c000+i], data[c001+i], fb)
		v01 := lerp(data[c010+i], data[c011+i], fb)
		v10 := lerp(data[c100+i], data[c101+i], fb)
		v11 := lerp(data[c110+i], data[c111+i], fb)

		// then along green (2 pairs -> 2 values)
		v0 := lerp(v00, v01, fg)
		v1 := lerp(v10, v11, fg)

		// finally along red
		out[i] = lerp(v0, v1, fr)
	}
	return out[0], out[1], out[2]
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}
