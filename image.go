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
	"image"
	"image/color"
	"runtime"
	"sync"
)

// Image is a rectangular RGBA pixel buffer, 8 bits per channel,
// row-major. It is the input and output type for [Apply] and [Blend];
// neither ever modifies a buffer in place.
type Image struct {
	Width  int
	Height int
	Pix    []uint8 // 4 bytes per pixel
}

// NewImage creates a zeroed pixel buffer with the given dimensions.
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}
}

// FromImage converts any image to a pixel buffer.
func FromImage(img image.Image) *Image {
	bounds := img.Bounds()
	p := NewImage(bounds.Dx(), bounds.Dy())

	if src, ok := img.(*image.RGBA); ok && src.Stride == p.Width*4 {
		copy(p.Pix, src.Pix)
		return p
	}

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			p.Pix[i] = uint8(r >> 8)
			p.Pix[i+1] = uint8(g >> 8)
			p.Pix[i+2] = uint8(b >> 8)
			p.Pix[i+3] = uint8(a >> 8)
			i += 4
		}
	}
	return p
}

// ToRGBA converts the pixel buffer to an image.RGBA.
func (p *Image) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	copy(img.Pix, p.Pix)
	return img
}

// At implements the image.Image interface.
func (p *Image) At(x, y int) color.Color {
	if x < 0 || x >= p.Width || y < 0 || y >= p.Height {
		return color.RGBA{}
	}
	i := (y*p.Width + x) * 4
	return color.RGBA{p.Pix[i], p.Pix[i+1], p.Pix[i+2], p.Pix[i+3]}
}

// Bounds implements the image.Image interface.
func (p *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.Width, p.Height)
}

// ColorModel implements the image.Image interface.
func (p *Image) ColorModel() color.Model {
	return color.RGBAModel
}

// gradientTestPattern renders the two-axis gradient used for LUT
// preview thumbnails: red increases left to right, green top to
// bottom, and blue falls off against their sum so that every corner
// of the pattern probes a different region of the grid.
func gradientTestPattern(size int) *Image {
	p := NewImage(size, size)
	scale := float64(size - 1)
	i := 0
	for y := range size {
		for x := range size {
			r := float64(x) / scale
			g := float64(y) / scale
			b := 1 - (r+g)/2
			p.Pix[i] = quantize8(r)
			p.Pix[i+1] = quantize8(g)
			p.Pix[i+2] = quantize8(b)
			p.Pix[i+3] = 0xFF
			i += 4
		}
	}
	return p
}

// parallelRows splits rows into contiguous bands and runs fn on the
// bands concurrently. Pixels are independent in every transform in
// this package, so banding is safe.
func parallelRows(height int, fn func(y0, y1 int)) {
	workers := min(runtime.GOMAXPROCS(0), height)
	if workers <= 1 {
		fn(0, height)
		return
	}

	var wg sync.WaitGroup
	for i := range workers {
		y0 := i * height / workers
		y1 := (i + 1) * height / workers
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(y0, y1)
		}()
	}
	wg.Wait()
}
