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

// SplineData is the variable-length payload of a SPLINE entity.  The
// count tags in the file are ignored on read and recomputed from the
// slice lengths on write.
type SplineData struct {
	Knots   []float64
	Weights []float64
	Control []Point
	Fit     []Point
}

const subclassSpline = "AcDbSpline"

func splinePayloadCode(code int) bool {
	switch code {
	case 72, 73, 74, 40, 41, 10, 11:
		return true
	}
	return false
}

func decodeSpline(e *Entity, payload map[string]Tags) error {
	data := &SplineData{}
	for _, t := range payload[subclassSpline] {
		switch t.Code {
		case 72, 73, 74:
			// counts, recomputed on write
		case 40:
			v, _ := t.AsFloat()
			data.Knots = append(data.Knots, v)
		case 41:
			v, _ := t.AsFloat()
			data.Weights = append(data.Weights, v)
		case 10, 11:
			p, ok := t.Value.(Point)
			if !ok {
				return &StructureError{Entity: e.describe(), Err: ErrMalformedPoint}
			}
			if t.Code == 10 {
				data.Control = append(data.Control, p)
			} else {
				data.Fit = append(data.Fit, p)
			}
		}
	}
	e.Complex = data
	return nil
}

func encodeSpline(e *Entity, subclass, mark string, tw *tagWriter) error {
	data, _ := e.Complex.(*SplineData)
	if data == nil {
		data = &SplineData{}
	}
	if mark == "counts" {
		if err := tw.writeInt(72, int64(len(data.Knots))); err != nil {
			return err
		}
		if err := tw.writeInt(73, int64(len(data.Control))); err != nil {
			return err
		}
		return tw.writeInt(74, int64(len(data.Fit)))
	}
	for _, k := range data.Knots {
		if err := tw.writeFloat(40, k); err != nil {
			return err
		}
	}
	for _, w := range data.Weights {
		if err := tw.writeFloat(41, w); err != nil {
			return err
		}
	}
	for _, p := range data.Control {
		if err := tw.writeTag(Tag{Code: 10, Value: p}); err != nil {
			return err
		}
	}
	for _, p := range data.Fit {
		if err := tw.writeTag(Tag{Code: 11, Value: p}); err != nil {
			return err
		}
	}
	return nil
}
