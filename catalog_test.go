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
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestCatalogLifecycle(t *testing.T) {
	c := NewCatalog()
	fixed := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return fixed }

	rec, err := c.AddBuiltin(LookVintageFilm)
	if err != nil {
		t.Fatal(err)
	}
	if rec.ID == "" || !rec.Installed {
		t.Errorf("record = %+v, want installed with an id", rec)
	}
	if rec.Created != fixed {
		t.Errorf("created = %v, want %v", rec.Created, fixed)
	}
	if rec.ByteSize != 33*33*33*3*4 {
		t.Errorf("byte size = %d, want %d", rec.ByteSize, 33*33*33*3*4)
	}
	if rec.Dimension != "3D" {
		t.Errorf("dimension = %q, want %q", rec.Dimension, "3D")
	}
	if c.Len() != 1 {
		t.Errorf("len = %d, want 1", c.Len())
	}

	fav, err := c.ToggleFavorite(rec.ID)
	if err != nil || !fav {
		t.Errorf("first toggle = %v, %v, want true", fav, err)
	}
	fav, err = c.ToggleFavorite(rec.ID)
	if err != nil || fav {
		t.Errorf("second toggle = %v, %v, want false", fav, err)
	}

	if err := c.Remove(rec.ID); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 0 {
		t.Errorf("len after remove = %d, want 0", c.Len())
	}
	if _, err := c.Get(rec.ID); !errors.Is(err, ErrLUTNotFound) {
		t.Errorf("Get after remove: err = %v, want ErrLUTNotFound", err)
	}
	if _, err := c.Apply(rec.ID, testBuffer(), 100, BlendNormal); !errors.Is(err, ErrLUTNotFound) {
		t.Errorf("Apply after remove: err = %v, want ErrLUTNotFound", err)
	}
	if err := c.Remove(rec.ID); !errors.Is(err, ErrLUTNotFound) {
		t.Errorf("double remove: err = %v, want ErrLUTNotFound", err)
	}
}

func TestCatalogAddMetadata(t *testing.T) {
	c := NewCatalog()
	rec, err := c.Add("identity", FormatCube, []byte(identityCube))
	if err != nil {
		t.Fatal(err)
	}
	if rec.Format != "cube" {
		t.Errorf("format = %q, want %q", rec.Format, "cube")
	}
	if rec.Description != "Identity" { // the TITLE line from the file
		t.Errorf("description = %q, want %q", rec.Description, "Identity")
	}
	if rec.Category != CategoryCreative {
		t.Errorf("category = %v, want %v", rec.Category, CategoryCreative)
	}
	if rec.InputColorSpace != "" || rec.OutputColorSpace != "" {
		t.Errorf("colour spaces = %q, %q, want unset",
			rec.InputColorSpace, rec.OutputColorSpace)
	}

	// camera LUTs carry their colour space conversion as metadata
	vlt := "# panasonic vlt\n0 0 0\n4095 0 0\n0 4095 0\n4095 4095 0\n" +
		"0 0 4095\n4095 0 4095\n0 4095 4095\n4095 4095 4095\n"
	rec, err = c.Add("V-Log to 709", FormatVLT, []byte(vlt))
	if err != nil {
		t.Fatal(err)
	}
	if rec.Category != CategoryTechnical {
		t.Errorf("category = %v, want %v", rec.Category, CategoryTechnical)
	}
	if rec.InputColorSpace != "V-Log" || rec.OutputColorSpace != "Rec.709" {
		t.Errorf("colour spaces = %q, %q, want V-Log, Rec.709",
			rec.InputColorSpace, rec.OutputColorSpace)
	}
}

func TestCatalogAddParseFailure(t *testing.T) {
	c := NewCatalog()
	_, err := c.Add("broken", FormatCube, []byte("LUT_3D_SIZE 2\n0 0\n"))
	if !errors.Is(err, ErrMalformedInput) {
		t.Errorf("err = %v, want ErrMalformedInput", err)
	}
	if c.Len() != 0 {
		t.Errorf("len = %d, want 0 after failed add", c.Len())
	}
}

func TestCatalogRateClamps(t *testing.T) {
	c := NewCatalog()
	rec, err := c.AddBuiltin(LookTealOrange)
	if err != nil {
		t.Fatal(err)
	}

	for _, test := range []struct {
		rating, want int
	}{
		{3, 3},
		{7, 5},
		{0, 1},
		{-2, 1},
	} {
		if err := c.Rate(rec.ID, test.rating); err != nil {
			t.Fatal(err)
		}
		got, err := c.Get(rec.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.Rating != test.want {
			t.Errorf("Rate(%d): rating = %d, want %d",
				test.rating, got.Rating, test.want)
		}
	}

	if err := c.Rate("lut-99", 3); !errors.Is(err, ErrLUTNotFound) {
		t.Errorf("err = %v, want ErrLUTNotFound", err)
	}
}

func TestCatalogTags(t *testing.T) {
	c := NewCatalog()
	rec, err := c.AddBuiltin(LookPortraitGlow)
	if err != nil {
		t.Fatal(err)
	}

	if err := c.AddTags(rec.ID, "warm", "skin"); err != nil {
		t.Fatal(err)
	}
	if err := c.AddTags(rec.ID, "skin", "soft"); err != nil {
		t.Fatal(err)
	}

	got, err := c.Get(rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"warm", "skin", "soft"}
	if d := cmp.Diff(want, got.Tags); d != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", d)
	}

	// mutating the returned copy must not leak into the catalog
	got.Tags[0] = "cold"
	again, err := c.Get(rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if again.Tags[0] != "warm" {
		t.Error("mutating a returned record changed the catalog")
	}
}

func TestCatalogUsage(t *testing.T) {
	c := NewCatalog()
	rec, err := c.AddBuiltin(LookLandscapeVivid)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if err := c.RecordUsage(rec.ID); err != nil {
			t.Fatal(err)
		}
	}
	got, err := c.Get(rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.UsageCount != 3 {
		t.Errorf("usage count = %d, want 3", got.UsageCount)
	}
}

func TestCatalogSearch(t *testing.T) {
	c := NewCatalog()
	rec1, err := c.AddBuiltin(LookVintageFilm)
	if err != nil {
		t.Fatal(err)
	}
	rec2, err := c.AddBuiltin(LookTealOrange)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.AddTags(rec2.ID, "Blockbuster"); err != nil {
		t.Fatal(err)
	}

	names := func(recs []*Record) []string {
		var out []string
		for _, r := range recs {
			out = append(out, r.ID)
		}
		return out
	}

	for _, test := range []struct {
		query string
		want  []string
	}{
		{"VINTAGE", []string{rec1.ID}},     // name, case-insensitive
		{"blockbuster", []string{rec2.ID}}, // tag
		{"", []string{rec2.ID, rec1.ID}},   // empty matches all, sorted by name
		{"no such lut", nil},
	} {
		got := names(c.Search(test.query))
		if d := cmp.Diff(test.want, got, cmpopts.EquateEmpty()); d != "" {
			t.Errorf("Search(%q) mismatch (-want +got):\n%s", test.query, d)
		}
	}
}

func TestCatalogByCategory(t *testing.T) {
	c := NewCatalog()
	if _, err := c.AddBuiltin(LookVintageFilm); err != nil {
		t.Fatal(err)
	}
	if _, err := c.AddBuiltin(LookPortraitGlow); err != nil {
		t.Fatal(err)
	}

	hits := c.ByCategory(CategoryVintage)
	if len(hits) != 1 || hits[0].Category != CategoryVintage {
		t.Errorf("ByCategory(vintage) = %d records, want 1", len(hits))
	}
	if hits := c.ByCategory(CategoryTechnical); len(hits) != 0 {
		t.Errorf("ByCategory(technical) = %d records, want 0", len(hits))
	}
}

func TestCatalogApplyBlend(t *testing.T) {
	c := NewCatalog()
	rec, err := c.Add("identity", FormatCube, []byte(identityCube))
	if err != nil {
		t.Fatal(err)
	}

	src := testBuffer()
	out, err := c.Apply(rec.ID, src, 100, BlendNormal)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(src.Pix, out.Pix); d != "" {
		t.Errorf("identity apply mismatch (-want +got):\n%s", d)
	}

	// multiply of the source with its identity-graded self squares the
	// normalised channel values
	out, err = c.Apply(rec.ID, src, 100, BlendMultiply)
	if err != nil {
		t.Fatal(err)
	}
	want := make([]uint8, len(src.Pix))
	for i := 0; i < len(src.Pix); i += 4 {
		for k := 0; k < 3; k++ {
			v := float64(src.Pix[i+k]) / 255
			want[i+k] = quantize8(v * v)
		}
		want[i+3] = src.Pix[i+3]
	}
	if d := cmp.Diff(want, out.Pix); d != "" {
		t.Errorf("multiply apply mismatch (-want +got):\n%s", d)
	}
}

func TestCatalogExport(t *testing.T) {
	c := NewCatalog()
	rec, err := c.AddCustom("punchy", 17, Adjustments{Contrast: 30, Saturation: 20})
	if err != nil {
		t.Fatal(err)
	}
	if rec.Format != "custom" || rec.Category != CategoryCreative {
		t.Errorf("record = %q/%v, want custom/creative", rec.Format, rec.Category)
	}

	data, err := c.Export(rec.ID, FormatCube)
	if err != nil {
		t.Fatal(err)
	}
	g, err := Decode(FormatCube, data)
	if err != nil {
		t.Fatal(err)
	}
	if g.Size != 17 {
		t.Errorf("exported size = %d, want 17", g.Size)
	}

	if _, err := c.Export(rec.ID, FormatCSP); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := c.Export("lut-99", FormatCube); !errors.Is(err, ErrLUTNotFound) {
		t.Errorf("err = %v, want ErrLUTNotFound", err)
	}
}

func TestCatalogThumbnail(t *testing.T) {
	c := NewCatalog()
	rec, err := c.Add("identity", FormatCube, []byte(identityCube))
	if err != nil {
		t.Fatal(err)
	}

	thumb, err := c.Thumbnail(rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if thumb.Width != 64 || thumb.Height != 64 {
		t.Errorf("thumbnail = %dx%d, want 64x64", thumb.Width, thumb.Height)
	}

	// an identity LUT reproduces the test pattern exactly
	want := gradientTestPattern(64)
	if d := cmp.Diff(want.Pix, thumb.Pix); d != "" {
		t.Errorf("thumbnail mismatch (-want +got):\n%s", d)
	}

	got, err := c.Get(rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Thumbnail == nil {
		t.Error("thumbnail not stored on the record")
	}

	if _, err := c.Thumbnail("lut-99"); !errors.Is(err, ErrLUTNotFound) {
		t.Errorf("err = %v, want ErrLUTNotFound", err)
	}
}

func TestCatalogThumbnailFromImage(t *testing.T) {
	c := NewCatalog()
	rec, err := c.Add("identity", FormatCube, []byte(identityCube))
	if err != nil {
		t.Fatal(err)
	}

	src := NewImage(128, 128)
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i] = 180
		src.Pix[i+1] = 90
		src.Pix[i+2] = 45
		src.Pix[i+3] = 255
	}
	thumb, err := c.ThumbnailFromImage(rec.ID, src.ToRGBA())
	if err != nil {
		t.Fatal(err)
	}
	if thumb.Width != 64 || thumb.Height != 64 {
		t.Errorf("thumbnail = %dx%d, want 64x64", thumb.Width, thumb.Height)
	}
	// scaling a constant image is still constant
	if thumb.Pix[0] != 180 || thumb.Pix[1] != 90 || thumb.Pix[2] != 45 {
		t.Errorf("pixel = (%d, %d, %d), want (180, 90, 45)",
			thumb.Pix[0], thumb.Pix[1], thumb.Pix[2])
	}
}
