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

// XRECORD objects and the ACIS modeler entities (BODY, 3DSOLID, REGION)
// carry payloads this package does not interpret.  Both round-trip
// verbatim; XRECORD reference tags still take part in purge protection.

// XRecordData is the tag payload of an XRECORD object, preserved
// verbatim.
type XRecordData struct {
	Tags Tags
}

func (d *XRecordData) hardRefs() []Handle {
	var out []Handle
	for _, t := range d.Tags {
		if !refKindOf(t.Code).Hard() {
			continue
		}
		if h, ok := t.AsHandle(); ok {
			out = append(out, h)
		}
	}
	return out
}

const subclassXRecord = "AcDbXrecord"

func xrecordPayloadCode(code int) bool {
	// everything except the cloning flag is payload
	return code != 280
}

func decodeXRecord(e *Entity, payload map[string]Tags) error {
	e.Complex = &XRecordData{Tags: payload[subclassXRecord].Clone()}
	return nil
}

func encodeXRecord(e *Entity, subclass, mark string, tw *tagWriter) error {
	data, _ := e.Complex.(*XRecordData)
	if data == nil {
		return nil
	}
	return tw.writeTags(data.Tags)
}

// ACISData is the proprietary modeler geometry of BODY, 3DSOLID and
// REGION entities: SAT text lines in (1, ...) tags with (3, ...)
// continuations, or binary SAB chunks in (310, ...) tags for R2013+.
type ACISData struct {
	Data Tags
}

const subclassModelerGeometry = "AcDbModelerGeometry"

func acisPayloadCode(code int) bool {
	switch code {
	case 1, 3, 310:
		return true
	}
	return false
}

func decodeACIS(e *Entity, payload map[string]Tags) error {
	e.Complex = &ACISData{Data: payload[subclassModelerGeometry].Clone()}
	return nil
}

func encodeACIS(e *Entity, subclass, mark string, tw *tagWriter) error {
	data, _ := e.Complex.(*ACISData)
	if data == nil {
		return nil
	}
	return tw.writeTags(data.Data)
}
