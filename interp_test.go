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
	"math"
	"testing"
)

func TestTrilinearIdentity(t *testing.T) {
	// trilinear interpolation of per-channel linear data is exact, so
	// an identity grid must reproduce every input
	for _, size := range []int{2, 5, 17, 33} {
		g := Identity(size)
		inputs := [][3]float64{
			{0, 0, 0},
			{1, 1, 1},
			{0.5, 0.5, 0.5},
			{0.25, 0.75, 0.5},
			{0.1, 0.2, 0.3},
			{0.99, 0.01, 0.5},
		}
		for _, in := range inputs {
			r, gg, b := g.Lookup(in[0], in[1], in[2])
			if math.Abs(r-in[0]) > 1e-9 ||
				math.Abs(gg-in[1]) > 1e-9 ||
				math.Abs(b-in[2]) > 1e-9 {
				t.Errorf("size %d: Lookup(%v) = (%g, %g, %g), want identity",
					size, in, r, gg, b)
			}
		}
	}
}

func TestTrilinearEdgeHold(t *testing.T) {
	// out-of-domain input holds at the boundary colour
	g := Identity(5)
	tests := []struct {
		in   [3]float64
		want [3]float64
	}{
		{[3]float64{1.2, -0.5, 0.5}, [3]float64{1, 0, 0.5}},
		{[3]float64{-1, 2, 0}, [3]float64{0, 1, 0}},
		{[3]float64{1, 1, 1.0001}, [3]float64{1, 1, 1}},
	}
	for _, tt := range tests {
		r, gg, b := g.Lookup(tt.in[0], tt.in[1], tt.in[2])
		if math.Abs(r-tt.want[0]) > 1e-9 ||
			math.Abs(gg-tt.want[1]) > 1e-9 ||
			math.Abs(b-tt.want[2]) > 1e-9 {
			t.Errorf("Lookup(%v) = (%g, %g, %g), want %v",
				tt.in, r, gg, b, tt.want)
		}
	}
}

func TestTrilinearCornerExact(t *testing.T) {
	// grid corners are returned without interpolation error
	g, err := Generate(LookTealOrange)
	if err != nil {
		t.Fatal(err)
	}
	scale := float64(g.Size - 1)
	for _, c := range [][3]int{{0, 0, 0}, {32, 32, 32}, {16, 8, 24}} {
		wr, wg, wb := g.At(c[0], c[1], c[2])
		r, gg, b := g.Lookup(float64(c[0])/scale, float64(c[1])/scale, float64(c[2])/scale)
		if math.Abs(r-wr) > 1e-12 || math.Abs(gg-wg) > 1e-12 || math.Abs(b-wb) > 1e-12 {
			t.Errorf("corner %v: Lookup = (%g, %g, %g), want (%g, %g, %g)",
				c, r, gg, b, wr, wg, wb)
		}
	}
}

func TestTrilinearMidpoint(t *testing.T) {
	// halfway between two grid points along one axis, the result is
	// the average of the two corner values
	g := &Grid{
		Size:      2,
		DomainMin: [3]float64{0, 0, 0},
		DomainMax: [3]float64{1, 1, 1},
		Data: []float64{
			0.1, 0.2, 0.3, // (0,0,0)
			0.5, 0.2, 0.3, // (1,0,0)
			0.1, 0.8, 0.3, // (0,1,0)
			0.5, 0.8, 0.3, // (1,1,0)
			0.1, 0.2, 0.9, // (0,0,1)
			0.5, 0.2, 0.9, // (1,0,1)
			0.1, 0.8, 0.9, // (0,1,1)
			0.5, 0.8, 0.9, // (1,1,1)
		},
	}
	r, gg, b := g.Lookup(0.5, 0.5, 0.5)
	if math.Abs(r-0.3) > 1e-12 || math.Abs(gg-0.5) > 1e-12 || math.Abs(b-0.6) > 1e-12 {
		t.Errorf("Lookup(0.5, 0.5, 0.5) = (%g, %g, %g), want (0.3, 0.5, 0.6)", r, gg, b)
	}
}
