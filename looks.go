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

	"github.com/lucasb-eyer/go-colorful"
)

// BuiltinLook identifies one of the procedurally generated LUTs that
// ship with this package.
type BuiltinLook int

// The built-in looks.
const (
	LookRec709ToSRGB BuiltinLook = iota
	LookTealOrange
	LookVintageFilm
	LookPortraitGlow
	LookLandscapeVivid
	LookGoldenHour
)

// generatedSize is the grid resolution of all built-in looks.
const generatedSize = 33

type lookInfo struct {
	name        string
	description string
	category    Category
	fn          func(r, g, b float64) (float64, float64, float64)
}

var builtinLooks = map[BuiltinLook]lookInfo{
	LookRec709ToSRGB: {
		name:        "Rec.709 to sRGB",
		description: "Gamma conversion from Rec.709 to the sRGB tone curve",
		category:    CategoryTechnical,
		fn:          rec709ToSRGB,
	},
	LookTealOrange: {
		name:        "Teal & Orange",
		description: "Cinematic split-tone pushing highlights orange and shadows teal",
		category:    CategoryCinematic,
		fn:          tealOrange,
	},
	LookVintageFilm: {
		name:        "Vintage Film",
		description: "Faded warmth with lifted reds and muted blues",
		category:    CategoryVintage,
		fn:          vintageFilm,
	},
	LookPortraitGlow: {
		name:        "Portrait Glow",
		description: "Gentle boost of skin tones, neutral elsewhere",
		category:    CategoryPortrait,
		fn:          portraitGlow,
	},
	LookLandscapeVivid: {
		name:        "Landscape Vivid",
		description: "Saturation boost around the luminance axis",
		category:    CategoryLandscape,
		fn:          landscapeVivid,
	},
	LookGoldenHour: {
		name:        "Golden Hour",
		description: "Warm hue pull towards amber for late-afternoon light",
		category:    CategoryCreative,
		fn:          goldenHour,
	},
}

func (l BuiltinLook) String() string {
	if info, ok := builtinLooks[l]; ok {
		return info.name
	}
	return fmt.Sprintf("BuiltinLook(%d)", int(l))
}

// Looks returns all built-in looks in a fixed order.
func Looks() []BuiltinLook {
	return []BuiltinLook{
		LookRec709ToSRGB,
		LookTealOrange,
		LookVintageFilm,
		LookPortraitGlow,
		LookLandscapeVivid,
		LookGoldenHour,
	}
}

// Generate builds the grid for a built-in look by sampling its colour
// transform at every grid coordinate. The result is deterministic and
// involves no I/O.
func Generate(look BuiltinLook) (*Grid, error) {
	info, ok := builtinLooks[look]
	if !ok {
		return nil, fmt.Errorf("%w: unknown look %d", ErrInvalidParameter, int(look))
	}

	size := generatedSize
	g := &Grid{
		Size:      size,
		DomainMin: [3]float64{0, 0, 0},
		DomainMax: [3]float64{1, 1, 1},
		Data:      make([]float64, size*size*size*3),
		Title:     info.name,
	}
	scale := float64(size - 1)
	i := 0
	for bi := range size {
		for gi := range size {
			for ri := range size {
				r, gg, b := info.fn(
					float64(ri)/scale,
					float64(gi)/scale,
					float64(bi)/scale)
				g.Data[i] = r
				g.Data[i+1] = gg
				g.Data[i+2] = b
				i += 3
			}
		}
	}
	return g, nil
}

// rec709ToSRGB approximates the Rec.709 to sRGB conversion with a
// pure 1/2.4 power curve per channel.
func rec709ToSRGB(r, g, b float64) (float64, float64, float64) {
	const e = 1 / 2.4
	return math.Pow(r, e), math.Pow(g, e), math.Pow(b, e)
}

// tealOrange pushes warm colours further towards orange and cool
// colours towards teal.
func tealOrange(r, g, b float64) (float64, float64, float64) {
	orange := math.Max(0, r+g-b)
	teal := math.Max(0, g+b-r)
	return clamp(r+orange*0.2, 0, 1), g, clamp(b+teal*0.3, 0, 1)
}

// vintageFilm lifts and warms the reds, slightly lifts the greens and
// mutes the blues.
func vintageFilm(r, g, b float64) (float64, float64, float64) {
	return clamp(r*1.1+0.05, 0, 1),
		clamp(g*1.05+0.03, 0, 1),
		clamp(b*0.9, 0, 1)
}

// portraitGlow boosts colours inside a heuristic skin-tone region and
// passes everything else through unchanged.
func portraitGlow(r, g, b float64) (float64, float64, float64) {
	if r > 0.4 && g > 0.3 && b > 0.2 {
		return clamp(r*1.1, 0, 1), clamp(g*1.045, 0, 1), clamp(b*0.99, 0, 1)
	}
	return r, g, b
}

// landscapeVivid scales each channel's deviation from the luminance
// axis, increasing saturation without shifting brightness.
func landscapeVivid(r, g, b float64) (float64, float64, float64) {
	gray := luma(r, g, b)
	const k = 1.3
	return clamp(gray+(r-gray)*k, 0, 1),
		clamp(gray+(g-gray)*k, 0, 1),
		clamp(gray+(b-gray)*k, 0, 1)
}

// goldenHour pulls hues in the warm window towards amber and adds a
// slight warm cast overall.
func goldenHour(r, g, b float64) (float64, float64, float64) {
	h, s, v := colorful.Color{R: r, G: g, B: b}.Hsv()
	if h >= 15 && h <= 75 {
		h += (40 - h) * 0.3
		s = math.Min(1, s*1.2)
	}
	c := colorful.Hsv(h, s, v)
	return clamp(c.R*1.05, 0, 1), clamp(c.G*1.02, 0, 1), clamp(c.B*0.95, 0, 1)
}
