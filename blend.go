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

import "fmt"

// BlendMode selects the compositing formula used by [Blend].
type BlendMode int

// The supported blend modes.
const (
	BlendNormal     BlendMode = iota // overlay replaces base
	BlendMultiply                    // base · overlay
	BlendScreen                      // 1 - (1-base)(1-overlay)
	BlendLuminosity                  // base colours at overlay's luminance
	BlendColor                       // overlay colours at base's luminance
)

func (m BlendMode) String() string {
	switch m {
	case BlendNormal:
		return "normal"
	case BlendMultiply:
		return "multiply"
	case BlendScreen:
		return "screen"
	case BlendLuminosity:
		return "luminosity"
	case BlendColor:
		return "color"
	default:
		return fmt.Sprintf("BlendMode(%d)", int(m))
	}
}

// ParseBlendMode converts a blend mode name to its [BlendMode] value.
func ParseBlendMode(s string) (BlendMode, error) {
	switch s {
	case "normal":
		return BlendNormal, nil
	case "multiply":
		return BlendMultiply, nil
	case "screen":
		return BlendScreen, nil
	case "luminosity":
		return BlendLuminosity, nil
	case "color":
		return BlendColor, nil
	default:
		return 0, fmt.Errorf("%w: blend mode %q", ErrInvalidParameter, s)
	}
}

// Blend composites overlay onto base using the given mode and returns
// a new buffer; neither input is modified. The alpha channel is always
// taken from base. The two buffers must have identical dimensions.
func Blend(base, overlay *Image, mode BlendMode) (*Image, error) {
	if base.Width != overlay.Width || base.Height != overlay.Height {
		return nil, fmt.Errorf("%w: buffer dimensions %dx%d vs %dx%d",
			ErrInvalidParameter, base.Width, base.Height, overlay.Width, overlay.Height)
	}

	out := NewImage(base.Width, base.Height)
	parallelRows(base.Height, func(y0, y1 int) {
		for i := y0 * base.Width * 4; i < y1*base.Width*4; i += 4 {
			br := float64(base.Pix[i]) / 255
			bg := float64(base.Pix[i+1]) / 255
			bb := float64(base.Pix[i+2]) / 255
			or := float64(overlay.Pix[i]) / 255
			og := float64(overlay.Pix[i+1]) / 255
			ob := float64(overlay.Pix[i+2]) / 255

			var r, g, b float64
			switch mode {
			case BlendMultiply:
				r, g, b = br*or, bg*og, bb*ob

			case BlendScreen:
				r = 1 - (1-br)*(1-or)
				g = 1 - (1-bg)*(1-og)
				b = 1 - (1-bb)*(1-ob)

			case BlendLuminosity:
				// base colours rescaled to overlay's luminance
				baseLum := luma(br, bg, bb)
				overlayLum := luma(or, og, ob)
				factor := 1.0
				if baseLum > 0 {
					factor = overlayLum / baseLum
				}
				r = clamp(br*factor, 0, 1)
				g = clamp(bg*factor, 0, 1)
				b = clamp(bb*factor, 0, 1)

			case BlendColor:
				// overlay's hue and chroma at base's luminance
				baseLum := luma(br, bg, bb)
				overlayLum := luma(or, og, ob)
				factor := 1.0
				if overlayLum > 0 {
					factor = baseLum / overlayLum
				}
				r = clamp(or*factor, 0, 1)
				g = clamp(og*factor, 0, 1)
				b = clamp(ob*factor, 0, 1)

			default:
				r, g, b = or, og, ob
			}

			out.Pix[i] = quantize8(r)
			out.Pix[i+1] = quantize8(g)
			out.Pix[i+2] = quantize8(b)
			out.Pix[i+3] = base.Pix[i+3]
		}
	})
	return out, nil
}
