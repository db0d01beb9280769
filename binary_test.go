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
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// binaryBuilder assembles binary DXF streams for tests.  With wide set,
// group codes are written as 16-bit values (R13 and later).
type binaryBuilder struct {
	buf  bytes.Buffer
	wide bool
}

func newBinaryBuilder(wide bool) *binaryBuilder {
	b := &binaryBuilder{wide: wide}
	b.buf.Write(binarySentinel)
	return b
}

func (b *binaryBuilder) code(code int) {
	if b.wide {
		binary.Write(&b.buf, binary.LittleEndian, uint16(code))
	} else if code > 254 {
		b.buf.WriteByte(255)
		binary.Write(&b.buf, binary.LittleEndian, uint16(code))
	} else {
		b.buf.WriteByte(byte(code))
	}
}

func (b *binaryBuilder) str(code int, s string) {
	b.code(code)
	b.buf.WriteString(s)
	b.buf.WriteByte(0)
}

func (b *binaryBuilder) int16(code int, v int16) {
	b.code(code)
	binary.Write(&b.buf, binary.LittleEndian, v)
}

func (b *binaryBuilder) float(code int, v float64) {
	b.code(code)
	binary.Write(&b.buf, binary.LittleEndian, math.Float64bits(v))
}

func (b *binaryBuilder) chunk(code int, data []byte) {
	b.code(code)
	b.buf.WriteByte(byte(len(data)))
	b.buf.Write(data)
}

func TestBinaryReadR12(t *testing.T) {
	b := newBinaryBuilder(false)
	b.str(0, "SECTION")
	b.str(2, "HEADER")
	b.str(9, "$ACADVER")
	b.str(1, "AC1009")
	b.str(0, "ENDSEC")
	b.str(0, "LINE")
	b.int16(70, 3)
	b.float(10, 1.5)
	b.float(20, 2.5)
	b.float(30, 3.5)
	b.str(330, "1F") // extended group code, escaped with 255
	b.chunk(310, []byte{0xCA, 0xFE})
	b.str(0, "EOF")

	tags, version, err := readBinaryTags(b.buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if version != R12 {
		t.Errorf("expected R12, got %v", version)
	}
	want := Tags{
		{Code: 0, Value: String("SECTION")},
		{Code: 2, Value: String("HEADER")},
		{Code: 9, Value: String("$ACADVER")},
		{Code: 1, Value: String("AC1009")},
		{Code: 0, Value: String("ENDSEC")},
		{Code: 0, Value: String("LINE")},
		{Code: 70, Value: Integer(3)},
		{Code: 10, Value: Point{X: 1.5, Y: 2.5, Z: 3.5, Dim: 3}},
		{Code: 330, Value: Handle("1F")},
		{Code: 310, Value: Binary{0xCA, 0xFE}},
		{Code: 0, Value: String("EOF")},
	}
	if d := cmp.Diff(want, tags); d != "" {
		t.Errorf("unexpected tags (-want +got):\n%s", d)
	}
}

func TestBinaryReadWideCodes(t *testing.T) {
	b := newBinaryBuilder(true)
	b.str(0, "SECTION")
	b.str(2, "HEADER")
	b.str(9, "$ACADVER")
	b.str(1, "AC1015")
	b.str(9, "$DWGCODEPAGE")
	b.str(3, "ANSI_1252")
	b.str(0, "ENDSEC")
	b.str(0, "TEXT")
	b.str(1, "caf\xe9")
	b.str(0, "EOF")

	tags, version, err := readBinaryTags(b.buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if version != R2000 {
		t.Errorf("expected R2000, got %v", version)
	}
	// the last code 1 tag is the TEXT payload
	var text string
	for _, tag := range tags {
		if tag.Code == 1 {
			text = tag.AsString()
		}
	}
	if text != "café" {
		t.Errorf("code page not decoded, got %q", text)
	}
}

func TestBinaryReadErrors(t *testing.T) {
	_, _, err := readBinaryTags([]byte("  0\nSECTION\n"))
	var sErr *StructureError
	if !errors.As(err, &sErr) {
		t.Fatalf("expected *StructureError for text input, got %v", err)
	}

	b := newBinaryBuilder(false)
	b.code(70) // int16 value missing
	b.buf.WriteByte(1)
	_, _, err = readBinaryTags(b.buf.Bytes())
	if !errors.As(err, &sErr) {
		t.Fatalf("expected *StructureError for truncated value, got %v", err)
	}
}

func TestCoalescePoints(t *testing.T) {
	in := Tags{
		{Code: 10, Value: Float(1)},
		{Code: 20, Value: Float(2)},
		{Code: 11, Value: Float(3)},
		{Code: 21, Value: Float(4)},
		{Code: 31, Value: Float(5)},
	}
	out, err := coalescePoints(in)
	if err != nil {
		t.Fatal(err)
	}
	want := Tags{
		{Code: 10, Value: Point{X: 1, Y: 2, Dim: 2}},
		{Code: 11, Value: Point{X: 3, Y: 4, Z: 5, Dim: 3}},
	}
	if d := cmp.Diff(want, out); d != "" {
		t.Errorf("unexpected tags (-want +got):\n%s", d)
	}

	_, err = coalescePoints(Tags{{Code: 10, Value: Float(1)}})
	if !errors.Is(err, ErrMalformedPoint) {
		t.Errorf("expected ErrMalformedPoint, got %v", err)
	}
}
