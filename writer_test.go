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
	"errors"
	"strings"
	"testing"
)

func writeToString(t *testing.T, doc *Document, opt *WriterOptions) string {
	t.Helper()
	var buf bytes.Buffer
	if err := doc.Write(&buf, opt); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

// scanOutput re-reads writer output as a flat tag list.
func scanOutput(t *testing.T, out string) Tags {
	t.Helper()
	tags, err := newScanner(strings.NewReader(out)).ReadTags()
	if err != nil {
		t.Fatal(err)
	}
	return tags
}

func newLine(t *testing.T) *Entity {
	t.Helper()
	line := NewEntity("LINE")
	if err := line.Set("start", Point{X: 1, Y: 2, Z: 0}); err != nil {
		t.Fatal(err)
	}
	if err := line.Set("end", Point{X: 3, Y: 4, Z: 0}); err != nil {
		t.Fatal(err)
	}
	return line
}

func TestWriteRoundTrip(t *testing.T) {
	doc := NewDocument(R2000)
	line := newLine(t)
	if _, err := doc.Bind(line); err != nil {
		t.Fatal(err)
	}
	doc.Entities = append(doc.Entities, line)

	out1 := writeToString(t, doc, nil)

	doc2, err := ReadBytes([]byte(out1))
	if err != nil {
		t.Fatal(err)
	}
	if doc2.Version != R2000 {
		t.Errorf("expected R2000, got %v", doc2.Version)
	}
	if len(doc2.Entities) != 1 {
		t.Fatalf("expected 1 entity, got %d", len(doc2.Entities))
	}
	got := doc2.Entities[0]
	start, err := got.GetPoint("start")
	if err != nil || start.X != 1 || start.Y != 2 {
		t.Errorf("unexpected start %v (%v)", start, err)
	}
	if got.Handle() != line.Handle() {
		t.Errorf("handle changed over the round trip: %q vs %q",
			got.Handle(), line.Handle())
	}

	// writing the same drawing again must give the same bytes
	out2 := writeToString(t, doc2, nil)
	if out1 != out2 {
		t.Error("round trip is not stable")
	}
}

func TestWriteOptionalDefaults(t *testing.T) {
	doc := NewDocument(R2000)
	line := newLine(t)
	if err := line.Set("color", Integer(256)); err != nil {
		t.Fatal(err)
	}
	if _, err := doc.Bind(line); err != nil {
		t.Fatal(err)
	}
	doc.Entities = append(doc.Entities, line)

	out := writeToString(t, doc, nil)
	doc2, err := ReadBytes([]byte(out))
	if err != nil {
		t.Fatal(err)
	}
	got := doc2.Entities[0]
	// an optional attribute equal to its default is not written
	if got.Has("color") {
		t.Error("default color must be omitted")
	}
	color, _ := got.GetInt("color")
	if color != 256 {
		t.Errorf("expected default 256, got %d", color)
	}

	if err := line.Set("color", Integer(1)); err != nil {
		t.Fatal(err)
	}
	out = writeToString(t, doc, nil)
	doc2, err = ReadBytes([]byte(out))
	if err != nil {
		t.Fatal(err)
	}
	got = doc2.Entities[0]
	if !got.Has("color") {
		t.Error("non-default color must be written")
	}
	color, _ = got.GetInt("color")
	if color != 1 {
		t.Errorf("expected color 1, got %d", color)
	}
}

func TestWriteR12Flat(t *testing.T) {
	doc := NewDocument(R12)
	line := newLine(t)
	if _, err := doc.Bind(line); err != nil {
		t.Fatal(err)
	}
	doc.Entities = append(doc.Entities, line)

	out := writeToString(t, doc, nil)
	if strings.Contains(out, "AcDbEntity") || strings.Contains(out, "AcDbLine") {
		t.Error("R12 output must not contain subclass markers")
	}

	// without the $HANDLING flag R12 entities carry no handles
	tags := scanOutput(t, out)
	i := 0
	for ; i < len(tags); i++ {
		if isStructure(tags[i], "LINE") {
			break
		}
	}
	if i == len(tags) {
		t.Fatal("no LINE in output")
	}
	if tags[i+1].Code == 5 {
		t.Error("unexpected handle tag in R12 output")
	}

	doc.Header.SetVar("$HANDLING", Tags{{Code: 70, Value: Integer(1)}})
	out = writeToString(t, doc, nil)
	tags = scanOutput(t, out)
	for i = 0; i < len(tags); i++ {
		if isStructure(tags[i], "LINE") {
			break
		}
	}
	if tags[i+1].Code != 5 {
		t.Error("expected handle tag with $HANDLING set")
	}
}

func TestWriteTableEntryCount(t *testing.T) {
	data := `  0
SECTION
  2
HEADER
  9
$ACADVER
  1
AC1015
  0
ENDSEC
  0
SECTION
  2
TABLES
  0
TABLE
  2
LAYER
  5
2
100
AcDbSymbolTable
 70
5
  0
LAYER
  5
10
100
AcDbSymbolTableRecord
100
AcDbLayerTableRecord
  2
Walls
 70
0
 62
1
  6
Continuous
  0
LAYER
  5
11
100
AcDbSymbolTableRecord
100
AcDbLayerTableRecord
  2
WALLS
 70
0
 62
3
  6
Continuous
  0
ENDTAB
  0
ENDSEC
  0
EOF
`
	doc, err := ReadBytes([]byte(data))
	if err != nil {
		t.Fatal(err)
	}

	// the stale head count must be replaced by the number of entries
	// that survived the duplicate merge
	out := writeToString(t, doc, nil)
	tags := scanOutput(t, out)
	i := 0
	for ; i < len(tags); i++ {
		if isStructure(tags[i], "TABLE") {
			break
		}
	}
	if i == len(tags) {
		t.Fatal("no TABLE in output")
	}
	count := int64(-1)
	for _, tag := range tags[i+1:] {
		if tag.Code == 0 {
			break
		}
		if tag.Code == 70 {
			count, _ = tag.AsInt()
		}
	}
	if count != 1 {
		t.Errorf("expected entry count 1, got %d", count)
	}
}

func TestWriteVersionGate(t *testing.T) {
	doc := NewDocument(R2000)
	mesh := NewEntity("MESH")
	if _, err := doc.Bind(mesh); err != nil {
		t.Fatal(err)
	}
	doc.Entities = append(doc.Entities, mesh)

	// MESH needs R2010; by default the entity is dropped
	out := writeToString(t, doc, nil)
	if strings.Contains(out, "MESH") {
		t.Error("MESH must be dropped for R2000 output")
	}

	var buf bytes.Buffer
	err := doc.Write(&buf, &WriterOptions{Strict: true})
	var vErr *VersionError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *VersionError, got %v", err)
	}
	if vErr.Name != "MESH" || vErr.Min != R2010 {
		t.Errorf("unexpected error fields: %v", vErr)
	}
}

func TestWriteVersionGateAttr(t *testing.T) {
	doc := NewDocument(R2000)
	line := newLine(t)
	if err := line.Set("lineweight", Integer(25)); err != nil {
		t.Fatal(err)
	}
	if _, err := doc.Bind(line); err != nil {
		t.Fatal(err)
	}
	doc.Entities = append(doc.Entities, line)

	// downgrading to R12 drops the attribute silently
	out := writeToString(t, doc, &WriterOptions{Version: R12})
	doc2, err := ReadBytes([]byte(out))
	if err != nil {
		t.Fatal(err)
	}
	if doc2.Entities[0].Has("lineweight") {
		t.Error("lineweight must be dropped for R12 output")
	}

	var buf bytes.Buffer
	err = doc.Write(&buf, &WriterOptions{Version: R12, Strict: true})
	var vErr *VersionError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *VersionError, got %v", err)
	}
}

func TestWriteUnknownTags(t *testing.T) {
	data := `  0
SECTION
  2
HEADER
  9
$ACADVER
  1
AC1015
  0
ENDSEC
  0
SECTION
  2
ENTITIES
  0
LINE
  5
1C
100
AcDbEntity
  8
0
100
AcDbLine
 10
0.0
 20
0.0
 11
1.0
 21
1.0
348
ABC
  0
ENDSEC
  0
EOF
`
	doc, err := ReadBytes([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	out := writeToString(t, doc, nil)
	tags := scanOutput(t, out)

	// the unknown tag survives, in place after the end point
	found := -1
	for i, tag := range tags {
		if tag.Code == 348 {
			found = i
			break
		}
	}
	if found < 0 {
		t.Fatal("unknown tag (348, ...) not re-emitted")
	}
	if h, ok := tags[found].AsHandle(); !ok || h != Handle("ABC") {
		t.Errorf("unexpected value %v", tags[found].Value)
	}
	if tags[found-1].Code != 11 {
		t.Errorf("unknown tag moved, follows code %d", tags[found-1].Code)
	}
}

func TestWriteSeqendSynthesized(t *testing.T) {
	doc := NewDocument(R12)
	pl := NewEntity("POLYLINE")
	v := NewEntity("VERTEX")
	if err := v.Set("location", Point{X: 1, Y: 2, Z: 0}); err != nil {
		t.Fatal(err)
	}
	pl.sub = append(pl.sub, v)
	if _, err := doc.Bind(pl); err != nil {
		t.Fatal(err)
	}
	if _, err := doc.Bind(v); err != nil {
		t.Fatal(err)
	}
	doc.Entities = append(doc.Entities, pl)

	out := writeToString(t, doc, nil)
	tags := scanOutput(t, out)
	seen := false
	for _, tag := range tags {
		if isStructure(tag, "SEQEND") {
			seen = true
		}
	}
	if !seen {
		t.Error("missing synthesized SEQEND")
	}
}

func TestWriteInsertChain(t *testing.T) {
	doc := NewDocument(R2000)
	ins := NewEntity("INSERT")
	if err := ins.Set("name", String("Door")); err != nil {
		t.Fatal(err)
	}
	if err := ins.Set("insert", Point{X: 0, Y: 0, Z: 0}); err != nil {
		t.Fatal(err)
	}
	att := NewEntity("ATTRIB")
	if err := att.Set("tag", String("ROOM")); err != nil {
		t.Fatal(err)
	}
	ins.sub = append(ins.sub, att)
	for _, e := range []*Entity{ins, att} {
		if _, err := doc.Bind(e); err != nil {
			t.Fatal(err)
		}
	}
	doc.Entities = append(doc.Entities, ins)

	out := writeToString(t, doc, nil)
	doc2, err := ReadBytes([]byte(out))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc2.Entities) != 1 {
		t.Fatalf("expected 1 top-level entity, got %d", len(doc2.Entities))
	}
	got := doc2.Entities[0]
	// attribs_follow is forced so the chain reads back attached
	if len(got.SubEntities()) != 1 {
		t.Fatalf("ATTRIB not linked, got %d sub-entities", len(got.SubEntities()))
	}
	tag, _ := got.SubEntities()[0].GetString("tag")
	if tag != "ROOM" {
		t.Errorf("expected tag ROOM, got %q", tag)
	}
	if got.seqend == nil {
		t.Error("missing SEQEND after round trip")
	}
}

func TestWriteThumbnail(t *testing.T) {
	doc := NewDocument(R2004)
	data := make([]byte, 300)
	for i := range data {
		data[i] = byte(i)
	}
	doc.Thumbnail = &Thumbnail{Data: data}

	out := writeToString(t, doc, nil)
	doc2, err := ReadBytes([]byte(out))
	if err != nil {
		t.Fatal(err)
	}
	if doc2.Thumbnail == nil {
		t.Fatal("thumbnail lost")
	}
	if !bytes.Equal(doc2.Thumbnail.Data, data) {
		t.Error("thumbnail data changed over the round trip")
	}

	// R12 output carries no THUMBNAILIMAGE section
	out = writeToString(t, doc, &WriterOptions{Version: R12})
	if strings.Contains(out, "THUMBNAILIMAGE") {
		t.Error("unexpected THUMBNAILIMAGE section in R12 output")
	}
}
