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

// ViewportData holds the variable-length part of a VIEWPORT entity:
// the list of layers frozen in this viewport, stored as repeated
// (331, handle) tags.
type ViewportData struct {
	FrozenLayers []Handle
}

func viewportPayloadCode(code int) bool {
	return code == 331
}

func decodeViewport(e *Entity, payload map[string]Tags) error {
	data := &ViewportData{}
	for _, t := range payload["AcDbViewport"] {
		if h, ok := t.AsHandle(); ok {
			data.FrozenLayers = append(data.FrozenLayers, h)
		}
	}
	e.Complex = data
	return nil
}

func encodeViewport(e *Entity, subclass, mark string, tw *tagWriter) error {
	data, _ := e.Complex.(*ViewportData)
	if data == nil {
		return nil
	}
	for _, h := range data.FrozenLayers {
		if err := tw.writeString(331, string(h)); err != nil {
			return err
		}
	}
	return nil
}
