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
	"fmt"
	"math"

	"golang.org/x/text/encoding"
)

// Binary DXF files demultiplex to the same tag stream as text DXF files.
// Only reading is supported; the writer always emits text DXF.

var binarySentinel = []byte("AutoCAD Binary DXF\r\n\x1a\x00")

// isBinaryDXF reports whether data starts with the binary DXF sentinel.
func isBinaryDXF(data []byte) bool {
	return bytes.HasPrefix(data, binarySentinel)
}

type binaryScalar int

const (
	binString binaryScalar = iota // zero-terminated, code-page encoded
	binInt16
	binInt32
	binInt64
	binByte
	binDouble
	binChunk // length-prefixed binary data
)

func binaryScalarKind(code int) binaryScalar {
	switch {
	case code >= 10 && code < 60, code >= 110 && code < 150,
		code >= 210 && code < 240, code >= 460 && code < 470,
		code >= 1010 && code < 1060:
		return binDouble
	case code >= 60 && code < 80, code >= 170 && code < 180,
		code >= 270 && code < 290, code >= 370 && code < 390,
		code >= 400 && code < 410, code >= 1060 && code < 1071:
		return binInt16
	case code >= 90 && code < 100, code >= 420 && code < 430,
		code >= 440 && code < 460, code == 1071:
		return binInt32
	case code >= 160 && code < 170:
		return binInt64
	case code >= 290 && code < 300:
		return binByte
	case code >= 310 && code < 320, code == 1004:
		return binChunk
	default:
		return binString
	}
}

// scanBinaryParameters locates $ACADVER and $DWGCODEPAGE in the first
// kilobyte of a binary DXF file, before the group code width is known.
func scanBinaryParameters(data []byte) (Version, string) {
	version := R12
	codepage := "ANSI_1252"

	limit := len(data)
	if limit > 1024 {
		limit = 1024
	}
	head := data[:limit]

	if i := bytes.Index(head, []byte("$ACADVER")); i >= 0 {
		start := i + len("$ACADVER") + 2 // variable name, terminator, group code
		if start < len(data) && data[start] != 'A' {
			start++ // 2-byte group code
		}
		if start+6 <= len(data) {
			if v, err := ParseVersion(string(data[start : start+6])); err == nil {
				version = v
			}
		}
	}
	if version < R2007 {
		if i := bytes.Index(head, []byte("$DWGCODEPAGE")); i >= 0 {
			start := i + len("$DWGCODEPAGE") + 2
			if start < len(data) && data[start] != 'A' {
				start++
			}
			end := start
			for end < len(data) && data[end] != 0 {
				end++
			}
			codepage = string(data[start:end])
		}
	}
	return version, codepage
}

// readBinaryTags decodes a whole binary DXF file into a typed tag list.
func readBinaryTags(data []byte) (Tags, Version, error) {
	if !isBinaryDXF(data) {
		return nil, 0, &StructureError{Err: errors.New("not a binary DXF file")}
	}
	version, codepage := scanBinaryParameters(data)
	var dec *encoding.Decoder
	if version < R2007 {
		dec = codePageEncoding(codepage).NewDecoder()
	}

	r12 := version <= R12
	pos := len(binarySentinel)
	var tags Tags
	le := binary.LittleEndian

	fail := func(msg string) (Tags, Version, error) {
		return nil, 0, &StructureError{
			Err: fmt.Errorf("binary DXF: %s at byte %d", msg, pos),
		}
	}

	for pos < len(data) {
		var code int
		if r12 {
			code = int(data[pos])
			pos++
			if code == 255 { // escaped extended group code
				if pos+2 > len(data) {
					return fail("truncated group code")
				}
				code = int(le.Uint16(data[pos:]))
				pos += 2
			}
		} else {
			if pos+2 > len(data) {
				return fail("truncated group code")
			}
			code = int(le.Uint16(data[pos:]))
			pos += 2
		}

		var value Value
		switch binaryScalarKind(code) {
		case binInt16:
			if pos+2 > len(data) {
				return fail("truncated int16 value")
			}
			value = Integer(int16(le.Uint16(data[pos:])))
			pos += 2
		case binInt32:
			if pos+4 > len(data) {
				return fail("truncated int32 value")
			}
			value = Integer(int32(le.Uint32(data[pos:])))
			pos += 4
		case binInt64:
			if pos+8 > len(data) {
				return fail("truncated int64 value")
			}
			value = Integer(int64(le.Uint64(data[pos:])))
			pos += 8
		case binByte:
			if pos+1 > len(data) {
				return fail("truncated byte value")
			}
			value = Integer(data[pos])
			pos++
		case binDouble:
			if pos+8 > len(data) {
				return fail("truncated float value")
			}
			value = Float(math.Float64frombits(le.Uint64(data[pos:])))
			pos += 8
		case binChunk:
			if pos >= len(data) {
				return fail("truncated binary chunk")
			}
			n := int(data[pos])
			pos++
			if pos+n > len(data) {
				return fail("truncated binary chunk")
			}
			value = Binary(bytes.Clone(data[pos : pos+n]))
			pos += n
		default:
			end := bytes.IndexByte(data[pos:], 0)
			if end < 0 {
				return fail("unterminated string value")
			}
			s := string(data[pos : pos+end])
			pos += end + 1
			if dec != nil {
				if u, err := dec.String(s); err == nil {
					s = u
				}
			}
			if codeKind(code) == kindHandle {
				value = Handle(s)
			} else {
				value = String(s)
			}
		}
		tags = append(tags, Tag{Code: code, Value: value})
		if code == codeStructure {
			if s, ok := value.(String); ok && s == "EOF" {
				break
			}
		}
	}

	tags, err := coalescePoints(tags)
	if err != nil {
		return nil, 0, err
	}
	return tags, version, nil
}

// coalescePoints merges x, y[, z] coordinate tag runs into Point tags.
func coalescePoints(in Tags) (Tags, error) {
	out := make(Tags, 0, len(in))
	for i := 0; i < len(in); i++ {
		t := in[i]
		if !isPointStart(t.Code) {
			out = append(out, t)
			continue
		}
		x, ok := t.AsFloat()
		if !ok {
			return nil, &StructureError{Err: fmt.Errorf(
				"%w: invalid x value for code %d", ErrMalformedPoint, t.Code)}
		}
		if i+1 >= len(in) || in[i+1].Code != t.Code+10 {
			return nil, &StructureError{Err: fmt.Errorf(
				"%w: missing y coordinate for code %d", ErrMalformedPoint, t.Code)}
		}
		y, _ := in[i+1].AsFloat()
		i++
		point := Point{X: x, Y: y, Dim: 2}
		if i+1 < len(in) && in[i+1].Code == t.Code+20 {
			z, _ := in[i+1].AsFloat()
			point.Z = z
			point.Dim = 3
			i++
		}
		out = append(out, Tag{Code: t.Code, Value: point})
	}
	return out, nil
}
