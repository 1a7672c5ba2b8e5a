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
	"bufio"
	"bytes"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

// Format identifies one of the supported LUT file formats.
type Format int

// The supported LUT file formats. All are line-oriented UTF-8 text;
// binary LUT formats are not supported.
const (
	FormatCube Format = iota // Adobe/IRIDAS .cube
	Format3DL                // Autodesk/Lustre .3dl
	FormatLUT                // Autodesk .lut
	FormatCSP                // Cinespace .csp
	FormatVLT                // Panasonic VariCam .vlt
)

func (f Format) String() string {
	switch f {
	case FormatCube:
		return "cube"
	case Format3DL:
		return "3dl"
	case FormatLUT:
		return "lut"
	case FormatCSP:
		return "csp"
	case FormatVLT:
		return "vlt"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Extension returns the file name extension conventionally used for
// the format, including the leading dot.
func (f Format) Extension() string {
	return "." + f.String()
}

// FormatForPath guesses the LUT format from a file name extension.
// Unknown extensions return [ErrUnsupportedFormat].
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cube":
		return FormatCube, nil
	case ".3dl":
		return Format3DL, nil
	case ".lut":
		return FormatLUT, nil
	case ".csp":
		return FormatCSP, nil
	case ".vlt":
		return FormatVLT, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// defaultCategory returns the catalog category implied by the format.
// Camera log conversion formats are technical; everything else
// defaults to creative.
func (f Format) defaultCategory() Category {
	if f == FormatVLT {
		return CategoryTechnical
	}
	return CategoryCreative
}

// colorSpaces returns the input and output colour space labels implied
// by the format, or empty strings if the format does not imply any.
func (f Format) colorSpaces() (in, out string) {
	if f == FormatVLT {
		return "V-Log", "Rec.709"
	}
	return "", ""
}

// Decode parses LUT file data in the given format.
//
// On any validation failure no grid is returned; a partially parsed
// grid is never handed to the caller.
func Decode(f Format, data []byte) (*Grid, error) {
	switch f {
	case FormatCube:
		return parseCube(data)
	case Format3DL:
		return parse3DL(data)
	case FormatLUT:
		return parseLUT(data)
	case FormatCSP:
		return parseCSP(data)
	case FormatVLT:
		return parseVLT(data)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
}

// parseCube parses the Adobe/IRIDAS .cube format. The format is
// line-oriented: TITLE, LUT_3D_SIZE, DOMAIN_MIN, DOMAIN_MAX and
// "#" comment lines may appear in any order before or between the
// data rows, which are triples of floats.
func parseCube(data []byte) (*Grid, error) {
	g := &Grid{
		DomainMin: [3]float64{0, 0, 0},
		DomainMax: [3]float64{1, 1, 1},
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	declaredSize := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		switch {
		case fields[0] == "TITLE":
			// extract quoted title
			if start := strings.Index(line, `"`); start >= 0 {
				if end := strings.LastIndex(line, `"`); end > start {
					g.Title = line[start+1 : end]
				}
			}

		case fields[0] == "LUT_3D_SIZE":
			if len(fields) != 2 {
				return nil, malformed(lineNo, "bad LUT_3D_SIZE line")
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil || n < 2 {
				return nil, malformed(lineNo, "bad LUT_3D_SIZE value")
			}
			declaredSize = n

		case fields[0] == "DOMAIN_MIN":
			v, ok := parseTriple(fields[1:])
			if !ok {
				return nil, malformed(lineNo, "bad DOMAIN_MIN line")
			}
			g.DomainMin = v

		case fields[0] == "DOMAIN_MAX":
			v, ok := parseTriple(fields[1:])
			if !ok {
				return nil, malformed(lineNo, "bad DOMAIN_MAX line")
			}
			g.DomainMax = v

		case strings.HasPrefix(line, "#"):
			g.Comments = append(g.Comments, line)

		case len(fields) == 3:
			v, ok := parseTriple(fields)
			if !ok {
				return nil, malformed(lineNo, "bad data row")
			}
			g.Data = append(g.Data, v[0], v[1], v[2])

		default:
			return nil, malformed(lineNo, "unrecognised line")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, malformed(lineNo, err.Error())
	}

	if declaredSize == 0 {
		declaredSize = 33
	}
	g.Size = declaredSize
	if want := declaredSize * declaredSize * declaredSize; len(g.Data) != want*3 {
		return nil, badGridSize(fmt.Sprintf("have %d triples, want %d",
			len(g.Data)/3, want))
	}
	return g, nil
}

// parse3DL parses the Autodesk .3dl format: everything before the
// "Mesh" marker line (typically the shaper row) is ignored, and every
// numeric triple after it is a grid row. The grid size is inferred
// from the row count.
func parse3DL(data []byte) (*Grid, error) {
	samples, err := collectTriples(data, "Mesh")
	if err != nil {
		return nil, err
	}
	return gridFromTriples(samples)
}

// parseLUT parses the Autodesk .lut format: rows follow a "3D" marker
// line and may carry trailing columns, of which only the first three
// are used.
func parseLUT(data []byte) (*Grid, error) {
	samples, err := collectTriples(data, "3D")
	if err != nil {
		return nil, err
	}
	return gridFromTriples(samples)
}

// parseCSP parses the Cinespace .csp format. Header lines are not
// validated; every numeric triple in the file is taken as a grid row.
// This permissive behaviour matches parseVLT by design of the format
// family, and means a mislabelled file from a sibling format still
// loads.
func parseCSP(data []byte) (*Grid, error) {
	samples, err := collectTriples(data, "")
	if err != nil {
		return nil, err
	}
	return gridFromTriples(samples)
}

// parseVLT parses the Panasonic .vlt format with the same permissive
// triple-collection strategy as parseCSP. The V-Log to Rec.709 colour
// space convention is applied at the catalog level.
func parseVLT(data []byte) (*Grid, error) {
	samples, err := collectTriples(data, "")
	if err != nil {
		return nil, err
	}
	return gridFromTriples(samples)
}

// collectTriples gathers numeric triples from line-oriented text.
// If marker is non-empty, all lines up to and including the first line
// starting with the marker are skipped, and a missing marker is an
// error. Rows need at least three fields; extra trailing fields are
// tolerated and ignored. Non-numeric lines are skipped.
func collectTriples(data []byte, marker string) ([]float64, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	seenMarker := marker == ""
	var samples []float64
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if !seenMarker {
			if fields[0] == marker {
				seenMarker = true
			}
			continue
		}
		if len(fields) < 3 {
			continue
		}
		v, ok := parseTriple(fields[:3])
		if !ok {
			continue
		}
		samples = append(samples, v[0], v[1], v[2])
	}
	if err := scanner.Err(); err != nil {
		return nil, malformed(lineNo, err.Error())
	}
	if !seenMarker {
		return nil, malformed(0, fmt.Sprintf("missing %q marker", marker))
	}
	if len(samples) == 0 {
		return nil, malformed(0, "no data rows")
	}
	return samples, nil
}

// gridFromTriples builds a grid from collected samples, inferring the
// grid size as the rounded cube root of the triple count.
func gridFromTriples(samples []float64) (*Grid, error) {
	n := len(samples) / 3
	size := int(math.Round(math.Cbrt(float64(n))))
	if size < 2 || size*size*size != n {
		return nil, badGridSize(fmt.Sprintf("%d triples is not a cube", n))
	}
	return &Grid{
		Size:      size,
		DomainMin: [3]float64{0, 0, 0},
		DomainMax: [3]float64{1, 1, 1},
		Data:      samples,
	}, nil
}

func parseTriple(fields []string) ([3]float64, bool) {
	var v [3]float64
	if len(fields) != 3 {
		return v, false
	}
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return v, false
		}
		v[i] = x
	}
	return v, true
}

// InvalidLUTError indicates LUT file data that could not be parsed
// into a valid grid. It wraps either [ErrMalformedInput] or
// [ErrInvalidGridSize], so callers can distinguish the two with
// [errors.Is].
type InvalidLUTError struct {
	Line   int // 1-based line number, 0 if not line-specific
	Reason string

	kind error
}

func malformed(line int, reason string) error {
	return &InvalidLUTError{Line: line, Reason: reason, kind: ErrMalformedInput}
}

func badGridSize(reason string) error {
	return &InvalidLUTError{Reason: reason, kind: ErrInvalidGridSize}
}

func (e *InvalidLUTError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("lut: invalid LUT (line %d): %s", e.Line, e.Reason)
	}
	return "lut: invalid LUT: " + e.Reason
}

func (e *InvalidLUTError) Unwrap() error {
	return e.kind
}
