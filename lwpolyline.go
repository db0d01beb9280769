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
	"seehuhn.de/go/geom/vec"
)

// LWPolylineVertex is one vertex of a lightweight polyline, together
// with its optional per-vertex widths and bulge.
type LWPolylineVertex struct {
	Point      vec.Vec2
	StartWidth float64
	EndWidth   float64
	Bulge      float64

	// ID is the persistent vertex identifier (R2010+), 0 if unset.
	ID int64
}

// LWPolylineData is the variable-length payload of an LWPOLYLINE entity.
type LWPolylineData struct {
	Vertices []LWPolylineVertex
}

const subclassPolyline = "AcDbPolyline"

func lwpolylinePayloadCode(code int) bool {
	switch code {
	case 90, 10, 40, 41, 42, 91:
		return true
	}
	return false
}

func decodeLWPolyline(e *Entity, payload map[string]Tags) error {
	data := &LWPolylineData{}
	var cur *LWPolylineVertex
	for _, t := range payload[subclassPolyline] {
		switch t.Code {
		case 90:
			// vertex count, recomputed on write
		case 10:
			p, ok := t.Value.(Point)
			if !ok {
				return &StructureError{Entity: e.describe(), Err: ErrMalformedPoint}
			}
			data.Vertices = append(data.Vertices, LWPolylineVertex{
				Point: vec.Vec2{X: p.X, Y: p.Y},
			})
			cur = &data.Vertices[len(data.Vertices)-1]
		case 40, 41, 42:
			if cur == nil {
				continue
			}
			v, _ := t.AsFloat()
			switch t.Code {
			case 40:
				cur.StartWidth = v
			case 41:
				cur.EndWidth = v
			case 42:
				cur.Bulge = v
			}
		case 91:
			if cur != nil {
				cur.ID, _ = t.AsInt()
			}
		}
	}
	e.Complex = data
	return nil
}

func encodeLWPolyline(e *Entity, subclass, mark string, tw *tagWriter) error {
	data, _ := e.Complex.(*LWPolylineData)
	if data == nil {
		data = &LWPolylineData{}
	}
	if mark == "count" {
		return tw.writeInt(90, int64(len(data.Vertices)))
	}
	for _, v := range data.Vertices {
		if err := tw.writeVertex2(10, v.Point.X, v.Point.Y); err != nil {
			return err
		}
		if v.StartWidth != 0 || v.EndWidth != 0 {
			if err := tw.writeFloat(40, v.StartWidth); err != nil {
				return err
			}
			if err := tw.writeFloat(41, v.EndWidth); err != nil {
				return err
			}
		}
		if v.Bulge != 0 {
			if err := tw.writeFloat(42, v.Bulge); err != nil {
				return err
			}
		}
		if v.ID != 0 && tw.version >= R2010 {
			if err := tw.writeInt(91, v.ID); err != nil {
				return err
			}
		}
	}
	return nil
}
