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

// LinetypeDash is one element of an LTYPE dash pattern.  Complex
// linetypes attach shape or text data to a dash; those extra tags
// (group codes 74, 75, 340, 46, 50, 44, 45, 9) are kept verbatim.
type LinetypeDash struct {
	Length float64
	Extra  Tags
}

// LinetypeData is the dash pattern of an LTYPE table entry.
type LinetypeData struct {
	Dashes []LinetypeDash
}

const subclassLinetype = "AcDbLinetypeTableRecord"

func linetypePayloadCode(code int) bool {
	switch code {
	case 73, 49, 74, 75, 340, 46, 50, 44, 45, 9:
		return true
	}
	return false
}

func decodeLinetype(e *Entity, payload map[string]Tags) error {
	data := &LinetypeData{}
	var cur *LinetypeDash
	for _, t := range payload[subclassLinetype] {
		switch t.Code {
		case 73:
			// dash count, recomputed on write
		case 49:
			v, _ := t.AsFloat()
			data.Dashes = append(data.Dashes, LinetypeDash{Length: v})
			cur = &data.Dashes[len(data.Dashes)-1]
		default:
			if cur != nil {
				cur.Extra = append(cur.Extra, t)
			}
		}
	}
	e.Complex = data
	return nil
}

func encodeLinetype(e *Entity, subclass, mark string, tw *tagWriter) error {
	data, _ := e.Complex.(*LinetypeData)
	if data == nil {
		data = &LinetypeData{}
	}
	if mark == "count" {
		return tw.writeInt(73, int64(len(data.Dashes)))
	}
	for _, d := range data.Dashes {
		if err := tw.writeFloat(49, d.Length); err != nil {
			return err
		}
		if err := tw.writeTags(d.Extra); err != nil {
			return err
		}
	}
	return nil
}
