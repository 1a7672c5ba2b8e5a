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

// Package lut reads, writes, generates and applies 3D colour lookup
// tables (LUTs) for colour grading.
//
// A 3D LUT maps input RGB triples to output RGB triples over a regular
// grid; colours between grid points are found by trilinear
// interpolation.
//
// # Reading and Writing LUTs
//
// Use [Decode] to parse LUT file data in one of the supported text
// formats, and [Grid.EncodeCube] or [Grid.Encode3DL] to serialise a
// grid back to an interchange format:
//
//	g, err := lut.Decode(lut.FormatCube, data)
//	if err != nil {
//	    // handle error
//	}
//	out := g.EncodeCube()
//
// # Grading Images
//
// [Apply] transforms an RGBA pixel buffer through a grid, and [Blend]
// composites the result with the original using a named blend mode:
//
//	graded, err := lut.Apply(img, g, 80)
//
// # Managing a Library
//
// A [Catalog] keeps a set of LUTs together with their metadata and
// user state (favourites, ratings, tags), and orchestrates parsing,
// preview rendering and application by id:
//
//	c := lut.NewCatalog()
//	rec, err := c.Add("Autumn Warmth", lut.FormatCube, data)
//	graded, err := c.Apply(rec.ID, img, 100, lut.BlendNormal)
package lut

import (
	"errors"
	"fmt"
)

// Grid is a 3D colour lookup table over a regular grid.
//
// Data holds Size³ RGB triples with the red axis fastest, then green,
// then blue: the triple for grid coordinate (r, g, b) starts at index
// (b·Size² + g·Size + r)·3. A Grid is immutable once constructed; all
// operations in this package treat it as read-only.
type Grid struct {
	Size                 int        // grid points per axis
	DomainMin, DomainMax [3]float64 // input colour range, normally [0,0,0]-[1,1,1]
	Data                 []float64  // Size³ × 3 values, red axis fastest

	// Title and Comments carry metadata from the source file, if any.
	Title    string
	Comments []string
}

// Identity returns a grid of the given size that maps every colour to
// itself.
func Identity(size int) *Grid {
	g := &Grid{
		Size:      size,
		DomainMin: [3]float64{0, 0, 0},
		DomainMax: [3]float64{1, 1, 1},
		Data:      make([]float64, size*size*size*3),
	}
	scale := float64(size - 1)
	i := 0
	for b := range size {
		for gg := range size {
			for r := range size {
				g.Data[i] = float64(r) / scale
				g.Data[i+1] = float64(gg) / scale
				g.Data[i+2] = float64(b) / scale
				i += 3
			}
		}
	}
	return g
}

// validate checks the grid size invariant.
func (g *Grid) validate() error {
	if g.Size < 2 {
		return fmt.Errorf("%w: grid size %d", ErrInvalidGridSize, g.Size)
	}
	if want := g.Size * g.Size * g.Size * 3; len(g.Data) != want {
		return fmt.Errorf("%w: have %d values, want %d",
			ErrInvalidGridSize, len(g.Data), want)
	}
	return nil
}

// dataIndex returns the start index of the triple at grid coordinate
// (ri, gi, bi).
func (g *Grid) dataIndex(ri, gi, bi int) int {
	return (bi*g.Size*g.Size + gi*g.Size + ri) * 3
}

// At returns the RGB triple stored at grid coordinate (ri, gi, bi).
func (g *Grid) At(ri, gi, bi int) (float64, float64, float64) {
	i := g.dataIndex(ri, gi, bi)
	return g.Data[i], g.Data[i+1], g.Data[i+2]
}

// Lookup samples the grid at the input colour (r, g, b) using
// trilinear interpolation. Inputs outside the grid domain are clamped
// to the domain boundary, so out-of-domain colours hold at the edge
// colour rather than extrapolating.
func (g *Grid) Lookup(r, gg, b float64) (float64, float64, float64) {
	r = normalizeToDomain(r, g.DomainMin[0], g.DomainMax[0])
	gg = normalizeToDomain(gg, g.DomainMin[1], g.DomainMax[1])
	b = normalizeToDomain(b, g.DomainMin[2], g.DomainMax[2])
	return trilinearInterp3D(g.Data, g.Size, r, gg, b)
}

// ByteSize returns the storage size of the grid data, assuming 32-bit
// floats per channel.
func (g *Grid) ByteSize() int {
	return len(g.Data) * 4
}

func normalizeToDomain(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	return clamp((v-lo)/(hi-lo), 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// luma returns the Rec.601 luminance of an RGB triple.
func luma(r, g, b float64) float64 {
	return 0.299*r + 0.587*g + 0.114*b
}

var (
	// ErrUnsupportedFormat indicates a LUT file format that this
	// package cannot read or write.
	ErrUnsupportedFormat = errors.New("lut: unsupported format")

	// ErrMalformedInput indicates LUT file data that cannot be parsed.
	ErrMalformedInput = errors.New("lut: malformed input")

	// ErrInvalidGridSize indicates that the number of grid values does
	// not match the declared or inferred grid size.
	ErrInvalidGridSize = errors.New("lut: grid size does not match data")

	// ErrLUTNotFound indicates a catalog id that does not refer to an
	// installed LUT.
	ErrLUTNotFound = errors.New("lut: not found")

	// ErrInvalidParameter indicates an out-of-range argument, for
	// example a strength outside 0-100.
	ErrInvalidParameter = errors.New("lut: invalid parameter")
)
