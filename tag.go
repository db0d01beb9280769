// seehuhn.de/go/dxf - a library for reading and writing DXF files
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

package dxf

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Value represents a tag value in a DXF file.  There are five native value
// types, which implement this interface: String, Integer, Float, Point and
// Binary.  Handle values are represented by the Handle type.
type Value interface {
	// DXF writes the DXF file representation of the value to w.
	// Point values cannot be written this way, since their wire form
	// interleaves group codes; they are expanded by the tag writer.
	DXF(w io.Writer) error
}

// String represents a text value in a DXF file.
type String string

// DXF implements the Value interface.
func (x String) DXF(w io.Writer) error {
	_, err := io.WriteString(w, string(x))
	return err
}

// Integer represents an integer value in a DXF file.  The wire format does
// not distinguish between the 16, 32 and 64 bit variants, the group code
// determines the valid range.
type Integer int64

// DXF implements the Value interface.
func (x Integer) DXF(w io.Writer) error {
	_, err := io.WriteString(w, strconv.FormatInt(int64(x), 10))
	return err
}

// Float represents a floating point value in a DXF file.
type Float float64

// DXF implements the Value interface.
func (x Float) DXF(w io.Writer) error {
	_, err := io.WriteString(w, formatFloat(float64(x)))
	return err
}

func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Point represents a 2D or 3D coordinate value.  On the wire a point is a
// run of two or three tags: the x value with the base group code, y at base
// code +10 and z at base code +20.  A 2D point reads back with Z == 0.
type Point struct {
	X, Y, Z float64

	// Dim records the wire arity: 2 for a point read without a z tag,
	// otherwise 3.  The zero value counts as 3, so that authored points
	// default to full coordinates.
	Dim int
}

// DXF implements the Value interface.  This writes the x component only;
// the tag writer expands the full coordinate run.
func (x Point) DXF(w io.Writer) error {
	_, err := io.WriteString(w, formatFloat(x.X))
	return err
}

// Binary represents a chunk of binary data, written as uppercase
// hexadecimal text.
type Binary []byte

// DXF implements the Value interface.
func (x Binary) DXF(w io.Writer) error {
	_, err := io.WriteString(w, strings.ToUpper(hex.EncodeToString(x)))
	return err
}

// Tag is the atomic unit of a DXF stream, a (group code, value) pair.
type Tag struct {
	Code  int
	Value Value
}

func (t Tag) String() string {
	return fmt.Sprintf("(%d, %v)", t.Code, t.Value)
}

// AsString returns the tag value as a string.  Non-string values are
// converted to their DXF text representation.
func (t Tag) AsString() string {
	switch v := t.Value.(type) {
	case String:
		return string(v)
	case Handle:
		return string(v)
	case Integer:
		return strconv.FormatInt(int64(v), 10)
	case Float:
		return formatFloat(float64(v))
	case Binary:
		return strings.ToUpper(hex.EncodeToString(v))
	default:
		return fmt.Sprint(v)
	}
}

// AsInt returns the tag value as an integer and reports whether the
// conversion was possible.
func (t Tag) AsInt() (int64, bool) {
	switch v := t.Value.(type) {
	case Integer:
		return int64(v), true
	case Float:
		return int64(v), true
	case String:
		x, err := strconv.ParseInt(strings.TrimSpace(string(v)), 10, 64)
		return x, err == nil
	}
	return 0, false
}

// AsFloat returns the tag value as a float and reports whether the
// conversion was possible.
func (t Tag) AsFloat() (float64, bool) {
	switch v := t.Value.(type) {
	case Float:
		return float64(v), true
	case Integer:
		return float64(v), true
	case String:
		x, err := strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
		return x, err == nil
	}
	return 0, false
}

// AsHandle returns the tag value as a Handle and reports whether the value
// is a handle.
func (t Tag) AsHandle() (Handle, bool) {
	h, ok := t.Value.(Handle)
	return h, ok
}

// Tags is a list of DXF tags.
type Tags []Tag

// Find returns the first tag with the given group code, or -1.
func (tt Tags) Find(code int) int {
	for i, t := range tt {
		if t.Code == code {
			return i
		}
	}
	return -1
}

// Get returns the value of the first tag with the given group code.
func (tt Tags) Get(code int) (Value, bool) {
	if i := tt.Find(code); i >= 0 {
		return tt[i].Value, true
	}
	return nil, false
}

// Clone returns a copy of the tag list.  Tag values are immutable, so a
// shallow copy of the slice is sufficient.
func (tt Tags) Clone() Tags {
	res := make(Tags, len(tt))
	copy(res, tt)
	return res
}
