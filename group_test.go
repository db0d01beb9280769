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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTagGroupSubclasses(t *testing.T) {
	tags := Tags{
		{Code: 0, Value: String("CIRCLE")},
		{Code: 5, Value: Handle("2A")},
		{Code: 100, Value: String("AcDbEntity")},
		{Code: 8, Value: String("0")},
		{Code: 100, Value: String("AcDbCircle")},
		{Code: 10, Value: Point{X: 1, Y: 2, Z: 3, Dim: 3}},
		{Code: 40, Value: Float(0.5)},
	}
	g, err := NewTagGroup(tags)
	if err != nil {
		t.Fatal(err)
	}
	if g.DXFType() != "CIRCLE" {
		t.Errorf("expected type CIRCLE, got %q", g.DXFType())
	}
	if g.Handle() != Handle("2A") {
		t.Errorf("expected handle 2A, got %q", g.Handle())
	}
	if len(g.Subclasses) != 3 {
		t.Fatalf("expected 3 subclasses, got %d", len(g.Subclasses))
	}
	sc, ok := g.Subclass("AcDbCircle")
	if !ok {
		t.Fatal("subclass AcDbCircle not found")
	}
	if len(sc) != 3 || sc[2].Code != 40 {
		t.Errorf("unexpected AcDbCircle tags: %v", sc)
	}
	if d := cmp.Diff(tags, g.Tags()); d != "" {
		t.Errorf("flattened tags differ (-want +got):\n%s", d)
	}
}

func TestTagGroupAppData(t *testing.T) {
	tags := Tags{
		{Code: 0, Value: String("LINE")},
		{Code: 5, Value: Handle("1C")},
		{Code: 102, Value: String("{ACAD_REACTORS")},
		{Code: 330, Value: Handle("10")},
		{Code: 102, Value: String("}")},
		{Code: 100, Value: String("AcDbEntity")},
		{Code: 8, Value: String("0")},
	}
	g, err := NewTagGroup(tags)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.AppData) != 1 {
		t.Fatalf("expected 1 app data block, got %d", len(g.AppData))
	}
	block, ok := g.AppDataBlock("{ACAD_REACTORS")
	if !ok {
		t.Fatal("reactors block not found")
	}
	if len(block) != 3 || block[1].Code != 330 {
		t.Errorf("unexpected app data block: %v", block)
	}
	// the placeholder in the base class must expand back in place
	if d := cmp.Diff(tags, g.Tags()); d != "" {
		t.Errorf("flattened tags differ (-want +got):\n%s", d)
	}
}

func TestTagGroupUnclosedAppData(t *testing.T) {
	tags := Tags{
		{Code: 0, Value: String("LINE")},
		{Code: 102, Value: String("{ACAD_REACTORS")},
		{Code: 330, Value: Handle("10")},
	}
	_, err := NewTagGroup(tags)
	var sErr *StructureError
	if !errors.As(err, &sErr) {
		t.Fatalf("expected *StructureError, got %v", err)
	}
}

func TestTagGroupXData(t *testing.T) {
	tags := Tags{
		{Code: 0, Value: String("LINE")},
		{Code: 100, Value: String("AcDbEntity")},
		{Code: 8, Value: String("0")},
		{Code: 1001, Value: String("ACAD")},
		{Code: 1000, Value: String("text")},
		{Code: 1001, Value: String("OTHER")},
		{Code: 1070, Value: Integer(7)},
	}
	g, err := NewTagGroup(tags)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.XData) != 2 {
		t.Fatalf("expected 2 XDATA blocks, got %d", len(g.XData))
	}
	if g.XData[1][1].Code != 1070 {
		t.Errorf("unexpected second XDATA block: %v", g.XData[1])
	}
	if d := cmp.Diff(tags, g.Tags()); d != "" {
		t.Errorf("flattened tags differ (-want +got):\n%s", d)
	}
}

func TestTagGroupEmbedded(t *testing.T) {
	tags := Tags{
		{Code: 0, Value: String("MTEXT")},
		{Code: 100, Value: String("AcDbEntity")},
		{Code: 100, Value: String("AcDbMText")},
		{Code: 1, Value: String("abc")},
		{Code: 101, Value: String("Embedded Object")},
		{Code: 10, Value: Point{X: 1, Y: 0, Z: 0, Dim: 3}},
		{Code: 1001, Value: String("ACAD")},
		{Code: 1000, Value: String("x")},
	}
	g, err := NewTagGroup(tags)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Embedded) != 1 {
		t.Fatalf("expected 1 embedded object, got %d", len(g.Embedded))
	}
	if len(g.XData) != 1 {
		t.Fatalf("expected 1 XDATA block, got %d", len(g.XData))
	}
	if d := cmp.Diff(tags, g.Tags()); d != "" {
		t.Errorf("flattened tags differ (-want +got):\n%s", d)
	}
}

func TestTagGroupDimstyleHandle(t *testing.T) {
	g, err := NewTagGroup(Tags{
		{Code: 0, Value: String("DIMSTYLE")},
		{Code: 105, Value: Handle("27")},
		{Code: 100, Value: String("AcDbSymbolTableRecord")},
	})
	if err != nil {
		t.Fatal(err)
	}
	if g.Handle() != Handle("27") {
		t.Errorf("expected handle 27, got %q", g.Handle())
	}
}

func TestTagGroupFlatten(t *testing.T) {
	g, err := NewTagGroup(Tags{
		{Code: 0, Value: String("LINE")},
		{Code: 100, Value: String("AcDbEntity")},
		{Code: 8, Value: String("0")},
		{Code: 100, Value: String("AcDbLine")},
		{Code: 10, Value: Point{X: 0, Y: 0, Dim: 2}},
	})
	if err != nil {
		t.Fatal(err)
	}
	g.FlattenSubclasses()
	want := Tags{
		{Code: 0, Value: String("LINE")},
		{Code: 8, Value: String("0")},
		{Code: 10, Value: Point{X: 0, Y: 0, Dim: 2}},
	}
	if d := cmp.Diff(want, g.Tags()); d != "" {
		t.Errorf("flattened tags differ (-want +got):\n%s", d)
	}
}
