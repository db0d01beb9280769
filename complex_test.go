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
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/geom/vec"
)

// rewrite writes the document and reads it back.
func rewrite(t *testing.T, doc *Document, opt *WriterOptions) *Document {
	t.Helper()
	out := writeToString(t, doc, opt)
	doc2, err := ReadBytes([]byte(out))
	if err != nil {
		t.Fatal(err)
	}
	return doc2
}

func TestLWPolylineRoundTrip(t *testing.T) {
	doc := NewDocument(R2000)
	e := NewEntity("LWPOLYLINE")
	data := &LWPolylineData{
		Vertices: []LWPolylineVertex{
			{Point: vec.Vec2{X: 0, Y: 0}, Bulge: 0.5},
			{Point: vec.Vec2{X: 10, Y: 0}, StartWidth: 0.1, EndWidth: 0.2},
			{Point: vec.Vec2{X: 10, Y: 5}},
		},
	}
	e.Complex = data
	if _, err := doc.Bind(e); err != nil {
		t.Fatal(err)
	}
	doc.Entities = append(doc.Entities, e)

	out := writeToString(t, doc, nil)
	tags := scanOutput(t, out)
	count := -1
	for i, tag := range tags {
		if isStructure(tag, "LWPOLYLINE") {
			for _, u := range tags[i:] {
				if u.Code == 90 {
					v, _ := u.AsInt()
					count = int(v)
					break
				}
			}
			break
		}
	}
	if count != 3 {
		t.Errorf("expected vertex count 3, got %d", count)
	}

	doc2, err := ReadBytes([]byte(out))
	if err != nil {
		t.Fatal(err)
	}
	got, ok := doc2.Entities[0].Complex.(*LWPolylineData)
	if !ok {
		t.Fatal("payload not decoded")
	}
	if d := cmp.Diff(data, got); d != "" {
		t.Errorf("payload changed over the round trip (-want +got):\n%s", d)
	}
}

func TestLWPolylineVertexID(t *testing.T) {
	doc := NewDocument(R2010)
	e := NewEntity("LWPOLYLINE")
	e.Complex = &LWPolylineData{
		Vertices: []LWPolylineVertex{
			{Point: vec.Vec2{X: 1, Y: 2}, ID: 7},
		},
	}
	if _, err := doc.Bind(e); err != nil {
		t.Fatal(err)
	}
	doc.Entities = append(doc.Entities, e)

	doc2 := rewrite(t, doc, nil)
	got := doc2.Entities[0].Complex.(*LWPolylineData)
	if got.Vertices[0].ID != 7 {
		t.Errorf("expected vertex ID 7, got %d", got.Vertices[0].ID)
	}

	// vertex identifiers are an R2010 extension
	doc2 = rewrite(t, doc, &WriterOptions{Version: R2004})
	got = doc2.Entities[0].Complex.(*LWPolylineData)
	if got.Vertices[0].ID != 0 {
		t.Errorf("vertex ID must be dropped for R2004, got %d", got.Vertices[0].ID)
	}
}

func TestMTextRoundTrip(t *testing.T) {
	text := strings.Repeat("abcdefghij", 60)

	doc := NewDocument(R2000)
	e := NewEntity("MTEXT")
	if err := e.Set("insert", Point{X: 1, Y: 2, Z: 0}); err != nil {
		t.Fatal(err)
	}
	if err := e.Set("char_height", Float(2.5)); err != nil {
		t.Fatal(err)
	}
	if err := e.Set("text", String(text)); err != nil {
		t.Fatal(err)
	}
	if _, err := doc.Bind(e); err != nil {
		t.Fatal(err)
	}
	doc.Entities = append(doc.Entities, e)

	out := writeToString(t, doc, nil)

	// 600 characters make two continuation chunks and the final tag
	tags := scanOutput(t, out)
	start := -1
	for i, tag := range tags {
		if isStructure(tag, "MTEXT") {
			start = i
			break
		}
	}
	if start < 0 {
		t.Fatal("no MTEXT in output")
	}
	nCont := 0
	for _, tag := range tags[start+1:] {
		if tag.Code == 0 {
			break
		}
		if tag.Code == 3 {
			nCont++
		}
	}
	if nCont != 2 {
		t.Errorf("expected 2 continuation tags, got %d", nCont)
	}

	doc2, err := ReadBytes([]byte(out))
	if err != nil {
		t.Fatal(err)
	}
	got, err := doc2.Entities[0].GetString("text")
	if err != nil {
		t.Fatal(err)
	}
	if got != text {
		t.Error("text changed over the round trip")
	}
}

func TestSplitMTextChunks(t *testing.T) {
	short := "hello"
	chunks, rest := splitMTextChunks(short)
	if len(chunks) != 0 || rest != short {
		t.Errorf("unexpected split of short text: %d chunks, rest %q",
			len(chunks), rest)
	}

	long := strings.Repeat("x", 600)
	chunks, rest = splitMTextChunks(long)
	if len(chunks) != 2 || len(chunks[0]) != 250 || len(rest) != 100 {
		t.Errorf("unexpected split: %d chunks, rest length %d",
			len(chunks), len(rest))
	}

	// a chunk boundary must not separate a backslash from its escape
	text := strings.Repeat("a", 249) + `\P` + strings.Repeat("b", 300)
	chunks, rest = splitMTextChunks(text)
	if len(chunks[0]) != 249 {
		t.Errorf("expected the first chunk to stop before the escape, got length %d",
			len(chunks[0]))
	}
	if strings.Join(chunks, "")+rest != text {
		t.Error("split does not reassemble to the input")
	}
}

func TestHatchSolidRoundTrip(t *testing.T) {
	doc := NewDocument(R2000)
	e := NewEntity("HATCH")
	if err := e.Set("pattern_name", String("SOLID")); err != nil {
		t.Fatal(err)
	}
	if err := e.Set("solid_fill", Integer(1)); err != nil {
		t.Fatal(err)
	}
	data := &HatchData{
		Paths: []HatchPath{{
			Type: HatchPathExternal | HatchPathPolyline,
			Polyline: &HatchPolylinePath{
				HasBulge: true,
				Closed:   true,
				Vertices: []HatchVertex{
					{Point: vec.Vec2{X: 0, Y: 0}},
					{Point: vec.Vec2{X: 10, Y: 0}, Bulge: 0.5},
					{Point: vec.Vec2{X: 10, Y: 10}},
				},
			},
		}},
	}
	e.Complex = data
	if _, err := doc.Bind(e); err != nil {
		t.Fatal(err)
	}
	doc.Entities = append(doc.Entities, e)

	doc2 := rewrite(t, doc, nil)
	got := doc2.Entities[0]
	name, _ := got.GetString("pattern_name")
	if name != "SOLID" {
		t.Errorf("expected pattern SOLID, got %q", name)
	}
	solid, _ := got.GetInt("solid_fill")
	if solid != 1 {
		t.Errorf("expected solid_fill 1, got %d", solid)
	}
	if d := cmp.Diff(data, got.Complex.(*HatchData)); d != "" {
		t.Errorf("payload changed over the round trip (-want +got):\n%s", d)
	}
}

func TestHatchPatternRoundTrip(t *testing.T) {
	doc := NewDocument(R2000)
	e := NewEntity("HATCH")
	if err := e.Set("pattern_angle", Float(45)); err != nil {
		t.Fatal(err)
	}
	if err := e.Set("pattern_scale", Float(2)); err != nil {
		t.Fatal(err)
	}
	data := &HatchData{
		Paths: []HatchPath{{
			Type: HatchPathExternal,
			Edges: []HatchEdge{
				{
					Type:  HatchEdgeLine,
					Start: vec.Vec2{X: 0, Y: 0},
					End:   vec.Vec2{X: 5, Y: 0},
				},
				{
					Type:       HatchEdgeArc,
					Start:      vec.Vec2{X: 5, Y: 5},
					Radius:     2,
					StartAngle: 0,
					EndAngle:   180,
					CCW:        true,
				},
			},
		}},
		Pattern: []HatchPatternLine{{
			Angle:  45,
			Offset: vec.Vec2{X: 0, Y: 0.125},
			Dashes: []float64{0.2, -0.1},
		}},
		Seeds: []vec.Vec2{{X: 1, Y: 1}},
	}
	e.Complex = data
	if _, err := doc.Bind(e); err != nil {
		t.Fatal(err)
	}
	doc.Entities = append(doc.Entities, e)

	doc2 := rewrite(t, doc, nil)
	got := doc2.Entities[0]
	scale, _ := got.GetFloat("pattern_scale")
	if scale != 2 {
		t.Errorf("expected pattern_scale 2, got %g", scale)
	}
	if d := cmp.Diff(data, got.Complex.(*HatchData)); d != "" {
		t.Errorf("payload changed over the round trip (-want +got):\n%s", d)
	}
}

func TestHatchSplineEdgeRoundTrip(t *testing.T) {
	newDoc := func(t *testing.T, version Version, edge HatchEdge) (*HatchData, *Document) {
		t.Helper()
		doc := NewDocument(version)
		e := NewEntity("HATCH")
		data := &HatchData{
			Paths: []HatchPath{{
				Type:  HatchPathExternal,
				Edges: []HatchEdge{edge},
			}},
		}
		e.Complex = data
		if _, err := doc.Bind(e); err != nil {
			t.Fatal(err)
		}
		doc.Entities = append(doc.Entities, e)
		return data, doc
	}

	spline := HatchEdge{
		Type:   HatchEdgeSpline,
		Degree: 3,
		Knots:  []float64{0, 0, 0, 0, 1, 1, 1, 1},
		Control: []vec.Vec2{
			{X: 0, Y: 0}, {X: 1, Y: 2}, {X: 3, Y: 2}, {X: 4, Y: 0},
		},
	}

	// without fit points R2010+ writes a bare (97, 0) and no tangent
	// tags, older versions no fit count at all
	for _, version := range []Version{R2000, R2010} {
		data, doc := newDoc(t, version, spline)
		doc2 := rewrite(t, doc, nil)
		got := doc2.Entities[0].Complex.(*HatchData)
		if d := cmp.Diff(data, got); d != "" {
			t.Errorf("%s: payload changed over the round trip (-want +got):\n%s",
				version.Release(), d)
		}
	}

	withFit := spline
	withFit.Fit = []vec.Vec2{{X: 0, Y: 0}, {X: 4, Y: 0}}
	withFit.StartTan = vec.Vec2{X: 1, Y: 2}
	withFit.EndTan = vec.Vec2{X: 1, Y: -2}
	data, doc := newDoc(t, R2010, withFit)
	doc2 := rewrite(t, doc, nil)
	got := doc2.Entities[0].Complex.(*HatchData)
	if d := cmp.Diff(data, got); d != "" {
		t.Errorf("fit points changed over the round trip (-want +got):\n%s", d)
	}
}

func TestMeshRoundTrip(t *testing.T) {
	doc := NewDocument(R2010)
	e := NewEntity("MESH")
	data := &MeshData{
		Vertices: []Point{
			{X: 0, Y: 0, Z: 0, Dim: 3},
			{X: 1, Y: 0, Z: 0, Dim: 3},
			{X: 1, Y: 1, Z: 0, Dim: 3},
			{X: 0, Y: 1, Z: 1, Dim: 3},
		},
		Faces:   [][]int{{0, 1, 2, 3}},
		Edges:   [][2]int{{0, 1}, {1, 2}},
		Creases: []float64{1.5, 0},
	}
	e.Complex = data
	if _, err := doc.Bind(e); err != nil {
		t.Fatal(err)
	}
	doc.Entities = append(doc.Entities, e)

	doc2 := rewrite(t, doc, nil)
	got, ok := doc2.Entities[0].Complex.(*MeshData)
	if !ok {
		t.Fatal("payload not decoded")
	}
	if d := cmp.Diff(data, got); d != "" {
		t.Errorf("payload changed over the round trip (-want +got):\n%s", d)
	}
}

func TestSplineRoundTrip(t *testing.T) {
	doc := NewDocument(R2000)
	e := NewEntity("SPLINE")
	if err := e.Set("degree", Integer(3)); err != nil {
		t.Fatal(err)
	}
	if err := e.Set("flags", Integer(8)); err != nil {
		t.Fatal(err)
	}
	data := &SplineData{
		Knots: []float64{0, 0, 0, 0, 1, 1, 1, 1},
		Control: []Point{
			{X: 0, Y: 0, Z: 0, Dim: 3},
			{X: 1, Y: 2, Z: 0, Dim: 3},
			{X: 3, Y: 2, Z: 0, Dim: 3},
			{X: 4, Y: 0, Z: 0, Dim: 3},
		},
	}
	e.Complex = data
	if _, err := doc.Bind(e); err != nil {
		t.Fatal(err)
	}
	doc.Entities = append(doc.Entities, e)

	doc2 := rewrite(t, doc, nil)
	got := doc2.Entities[0]
	degree, _ := got.GetInt("degree")
	if degree != 3 {
		t.Errorf("expected degree 3, got %d", degree)
	}
	if d := cmp.Diff(data, got.Complex.(*SplineData)); d != "" {
		t.Errorf("payload changed over the round trip (-want +got):\n%s", d)
	}
}

func TestLinetypeRoundTrip(t *testing.T) {
	doc := NewDocument(R2000)
	lt := NewEntity("LTYPE")
	if err := lt.Set("name", String("DASHED")); err != nil {
		t.Fatal(err)
	}
	if err := lt.Set("description", String("__ __ __")); err != nil {
		t.Fatal(err)
	}
	if err := lt.Set("pattern_length", Float(0.75)); err != nil {
		t.Fatal(err)
	}
	data := &LinetypeData{
		Dashes: []LinetypeDash{{Length: 0.5}, {Length: -0.25}},
	}
	lt.Complex = data
	if _, err := doc.Bind(lt); err != nil {
		t.Fatal(err)
	}
	table := doc.Tables.Get("LTYPE")
	table.Entries = append(table.Entries, lt)

	doc2 := rewrite(t, doc, nil)
	table2 := doc2.Tables.Lookup("LTYPE")
	if table2 == nil {
		t.Fatal("LTYPE table lost")
	}
	got, ok := table2.Find("dashed")
	if !ok {
		t.Fatal("table entry lost")
	}
	length, _ := got.GetFloat("pattern_length")
	if length != 0.75 {
		t.Errorf("expected pattern length 0.75, got %g", length)
	}
	if d := cmp.Diff(data, got.Complex.(*LinetypeData)); d != "" {
		t.Errorf("dash pattern changed over the round trip (-want +got):\n%s", d)
	}
}

func TestDictionaryRoundTrip(t *testing.T) {
	doc := NewDocument(R2000)

	xrec := NewEntity("XRECORD")
	xrec.Complex = &XRecordData{Tags: Tags{
		{Code: 1, Value: String("note")},
		{Code: 90, Value: Integer(42)},
	}}
	if _, err := doc.Bind(xrec); err != nil {
		t.Fatal(err)
	}

	dict := NewEntity("DICTIONARY")
	data := &DictionaryData{}
	data.Put("ACAD_SOFT", xrec.Handle(), false)
	data.Put("ACAD_HARD", xrec.Handle(), true)
	dict.Complex = data
	if _, err := doc.Bind(dict); err != nil {
		t.Fatal(err)
	}
	doc.Objects = append(doc.Objects, dict, xrec)

	doc2 := rewrite(t, doc, nil)
	var gotDict, gotXrec *Entity
	for _, o := range doc2.Objects {
		switch o.DXFType() {
		case "DICTIONARY":
			gotDict = o
		case "XRECORD":
			gotXrec = o
		}
	}
	if gotDict == nil || gotXrec == nil {
		t.Fatal("objects lost over the round trip")
	}

	entries := gotDict.Complex.(*DictionaryData).Entries
	if d := cmp.Diff(data.Entries, entries); d != "" {
		t.Errorf("entries changed over the round trip (-want +got):\n%s", d)
	}
	h, ok := gotDict.Complex.(*DictionaryData).Find("ACAD_HARD")
	if !ok || h != gotXrec.Handle() {
		t.Errorf("expected ACAD_HARD to name %q, got %q", gotXrec.Handle(), h)
	}

	gotTags := gotXrec.Complex.(*XRecordData).Tags
	if d := cmp.Diff(xrec.Complex.(*XRecordData).Tags, gotTags); d != "" {
		t.Errorf("XRECORD payload changed over the round trip (-want +got):\n%s", d)
	}
}
