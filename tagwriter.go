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
	"fmt"
	"io"
)

// tagWriter emits DXF tags into a text stream.  Group codes are written
// right-aligned in three columns, lines end with CR LF, and string values
// are transcoded into the target code page for pre-R2007 versions.
type tagWriter struct {
	w       io.Writer
	version Version
	enc     *textEncoder
}

func newTagWriter(w io.Writer, version Version, codepage string) *tagWriter {
	return &tagWriter{
		w:       w,
		version: version,
		enc:     newTextEncoder(version, codepage),
	}
}

func (tw *tagWriter) writeTag(t Tag) error {
	switch v := t.Value.(type) {
	case Point:
		if err := tw.writeFloat(t.Code, v.X); err != nil {
			return err
		}
		if err := tw.writeFloat(t.Code+10, v.Y); err != nil {
			return err
		}
		if v.Dim == 2 {
			return nil
		}
		return tw.writeFloat(t.Code+20, v.Z)
	case String:
		return tw.writeString(t.Code, string(v))
	case appDataRef:
		return v.DXF(tw.w) // always an error, placeholders must be expanded
	default:
		if err := tw.writeCode(t.Code); err != nil {
			return err
		}
		if err := t.Value.DXF(tw.w); err != nil {
			return err
		}
		return tw.writeEOL()
	}
}

func (tw *tagWriter) writeTags(tags Tags) error {
	for _, t := range tags {
		if err := tw.writeTag(t); err != nil {
			return err
		}
	}
	return nil
}

func (tw *tagWriter) writeCode(code int) error {
	_, err := fmt.Fprintf(tw.w, "%3d\r\n", code)
	return err
}

func (tw *tagWriter) writeEOL() error {
	_, err := io.WriteString(tw.w, "\r\n")
	return err
}

func (tw *tagWriter) writeString(code int, s string) error {
	if err := tw.writeCode(code); err != nil {
		return err
	}
	out, err := tw.enc.Encode(s)
	if err != nil {
		return err
	}
	if _, err := tw.w.Write(out); err != nil {
		return err
	}
	return tw.writeEOL()
}

func (tw *tagWriter) writeFloat(code int, v float64) error {
	if err := tw.writeCode(code); err != nil {
		return err
	}
	if _, err := io.WriteString(tw.w, formatFloat(v)); err != nil {
		return err
	}
	return tw.writeEOL()
}

func (tw *tagWriter) writeInt(code int, v int64) error {
	if err := tw.writeCode(code); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw.w, "%d", v); err != nil {
		return err
	}
	return tw.writeEOL()
}

// writeStructure writes a (0, name) control tag.
func (tw *tagWriter) writeStructure(name string) error {
	return tw.writeString(codeStructure, name)
}

// writeVertex2 writes a 2D coordinate pair, without a z tag.
func (tw *tagWriter) writeVertex2(code int, x, y float64) error {
	if err := tw.writeFloat(code, x); err != nil {
		return err
	}
	return tw.writeFloat(code+10, y)
}
