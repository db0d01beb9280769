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

// MeshData is the variable-length payload of a MESH entity.  The face
// list is unpacked from its flat count-then-indices encoding into one
// index slice per face; the packed form is rebuilt on write.
type MeshData struct {
	Vertices []Point
	Faces    [][]int
	Edges    [][2]int
	Creases  []float64

	// Overrides holds the property override sub-records verbatim.
	Overrides Tags
}

const subclassMesh = "AcDbSubDMesh"

func meshPayloadCode(code int) bool {
	switch code {
	case 92, 93, 94, 95, 90, 10, 140:
		return true
	}
	return false
}

func decodeMesh(e *Entity, payload map[string]Tags) error {
	data := &MeshData{}
	cur := &tagCursor{tags: payload[subclassMesh], ent: e.describe()}

	n, err := cur.expectInt(92)
	if err != nil {
		return err
	}
	for i := int64(0); i < n; i++ {
		t, err := cur.expect(10)
		if err != nil {
			return err
		}
		p, ok := t.Value.(Point)
		if !ok {
			return cur.errf("group code 10: point expected")
		}
		data.Vertices = append(data.Vertices, p)
	}

	// the face list is flat: per face a vertex count, then the indices
	n, err = cur.expectInt(93)
	if err != nil {
		return err
	}
	flat := make([]int, 0, n)
	for i := int64(0); i < n; i++ {
		v, err := cur.expectInt(90)
		if err != nil {
			return err
		}
		flat = append(flat, int(v))
	}
	for i := 0; i < len(flat); {
		cnt := flat[i]
		i++
		if cnt < 0 || i+cnt > len(flat) {
			return cur.errf("malformed face list")
		}
		face := make([]int, cnt)
		copy(face, flat[i:i+cnt])
		data.Faces = append(data.Faces, face)
		i += cnt
	}

	n, err = cur.expectInt(94)
	if err != nil {
		return err
	}
	for i := int64(0); i < n; i++ {
		a, err := cur.expectInt(90)
		if err != nil {
			return err
		}
		b, err := cur.expectInt(90)
		if err != nil {
			return err
		}
		data.Edges = append(data.Edges, [2]int{int(a), int(b)})
	}

	n, err = cur.expectInt(95)
	if err != nil {
		return err
	}
	for i := int64(0); i < n; i++ {
		v, err := cur.expectFloat(140)
		if err != nil {
			return err
		}
		data.Creases = append(data.Creases, v)
	}

	// property overrides, preserved verbatim
	for !cur.done() {
		data.Overrides = append(data.Overrides, cur.next())
	}

	e.Complex = data
	return nil
}

func encodeMesh(e *Entity, subclass, mark string, tw *tagWriter) error {
	data, _ := e.Complex.(*MeshData)
	if data == nil {
		data = &MeshData{}
	}

	if err := tw.writeInt(92, int64(len(data.Vertices))); err != nil {
		return err
	}
	for _, p := range data.Vertices {
		if err := tw.writeTag(Tag{Code: 10, Value: p}); err != nil {
			return err
		}
	}

	flatLen := 0
	for _, f := range data.Faces {
		flatLen += 1 + len(f)
	}
	if err := tw.writeInt(93, int64(flatLen)); err != nil {
		return err
	}
	for _, f := range data.Faces {
		if err := tw.writeInt(90, int64(len(f))); err != nil {
			return err
		}
		for _, idx := range f {
			if err := tw.writeInt(90, int64(idx)); err != nil {
				return err
			}
		}
	}

	if err := tw.writeInt(94, int64(len(data.Edges))); err != nil {
		return err
	}
	for _, edge := range data.Edges {
		if err := tw.writeInt(90, int64(edge[0])); err != nil {
			return err
		}
		if err := tw.writeInt(90, int64(edge[1])); err != nil {
			return err
		}
	}

	if err := tw.writeInt(95, int64(len(data.Creases))); err != nil {
		return err
	}
	for _, c := range data.Creases {
		if err := tw.writeFloat(140, c); err != nil {
			return err
		}
	}

	return tw.writeTags(data.Overrides)
}
