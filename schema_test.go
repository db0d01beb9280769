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
)

func mustEntity(t *testing.T, version Version, tags Tags) *Entity {
	t.Helper()
	g, err := NewTagGroup(tags)
	if err != nil {
		t.Fatal(err)
	}
	e, err := entityFromGroup(g, version)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestEntityFromGroup(t *testing.T) {
	e := mustEntity(t, R2000, Tags{
		{Code: 0, Value: String("LINE")},
		{Code: 5, Value: Handle("1C")},
		{Code: 330, Value: Handle("1F")},
		{Code: 100, Value: String("AcDbEntity")},
		{Code: 8, Value: String("Walls")},
		{Code: 100, Value: String("AcDbLine")},
		{Code: 10, Value: Point{X: 1, Y: 2, Z: 3, Dim: 3}},
		{Code: 11, Value: Point{X: 4, Y: 5, Z: 6, Dim: 3}},
	})
	if e.Handle() != Handle("1C") || e.Owner() != Handle("1F") {
		t.Errorf("handle/owner not extracted: %q/%q", e.Handle(), e.Owner())
	}
	layer, err := e.GetString("layer")
	if err != nil || layer != "Walls" {
		t.Errorf("expected layer Walls, got %q (%v)", layer, err)
	}
	start, err := e.GetPoint("start")
	if err != nil || start.X != 1 || start.Y != 2 || start.Z != 3 {
		t.Errorf("unexpected start point %v (%v)", start, err)
	}

	// absent optional attributes read back as their default, without
	// becoming present
	if e.Has("linetype") {
		t.Error("linetype must not be present")
	}
	lt, err := e.GetString("linetype")
	if err != nil || lt != "ByLayer" {
		t.Errorf("expected default ByLayer, got %q (%v)", lt, err)
	}
}

func TestEntityFlatParse(t *testing.T) {
	// R12 records carry no subclass markers; attributes match across all
	// schema subclasses in declaration order
	e := mustEntity(t, R12, Tags{
		{Code: 0, Value: String("ARC")},
		{Code: 8, Value: String("0")},
		{Code: 10, Value: Point{X: 0, Y: 0, Z: 0, Dim: 3}},
		{Code: 40, Value: Float(2)},
		{Code: 50, Value: Float(30)},
		{Code: 51, Value: Float(60)},
	})
	r, err := e.GetFloat("radius")
	if err != nil || r != 2 {
		t.Errorf("expected radius 2, got %v (%v)", r, err)
	}
	a0, _ := e.GetFloat("start_angle")
	a1, _ := e.GetFloat("end_angle")
	if a0 != 30 || a1 != 60 {
		t.Errorf("expected angles 30/60, got %v/%v", a0, a1)
	}
}

func TestEntityRepeatedSubclass(t *testing.T) {
	// TEXT uses the AcDbText marker twice; code 73 is valign only in the
	// second subclass
	e := mustEntity(t, R2000, Tags{
		{Code: 0, Value: String("TEXT")},
		{Code: 100, Value: String("AcDbEntity")},
		{Code: 8, Value: String("0")},
		{Code: 100, Value: String("AcDbText")},
		{Code: 10, Value: Point{X: 0, Y: 0, Z: 0, Dim: 3}},
		{Code: 40, Value: Float(2.5)},
		{Code: 1, Value: String("hello")},
		{Code: 100, Value: String("AcDbText")},
		{Code: 73, Value: Integer(2)},
	})
	v, err := e.GetInt("valign")
	if err != nil || v != 2 {
		t.Errorf("expected valign 2, got %v (%v)", v, err)
	}
}

func TestEntitySubclassAlias(t *testing.T) {
	e := mustEntity(t, R2000, Tags{
		{Code: 0, Value: String("POLYLINE")},
		{Code: 100, Value: String("AcDbEntity")},
		{Code: 8, Value: String("0")},
		{Code: 100, Value: String("AcDb3dPolyline")},
		{Code: 66, Value: Integer(1)},
		{Code: 10, Value: Point{X: 0, Y: 0, Z: 0, Dim: 3}},
		{Code: 70, Value: Integer(8)},
	})
	flags, err := e.GetInt("flags")
	if err != nil || flags != 8 {
		t.Errorf("expected flags 8, got %v (%v)", flags, err)
	}
	// the alias seen in the file is used for re-emission
	if got := e.subclassMarker("AcDb2dPolyline"); got != "AcDb3dPolyline" {
		t.Errorf("expected alias AcDb3dPolyline, got %q", got)
	}
}

func TestEntityUnknownType(t *testing.T) {
	tags := Tags{
		{Code: 0, Value: String("WIPEOUT")},
		{Code: 5, Value: Handle("99")},
		{Code: 100, Value: String("AcDbEntity")},
		{Code: 8, Value: String("0")},
		{Code: 100, Value: String("AcDbWipeout")},
		{Code: 90, Value: Integer(0)},
	}
	e := mustEntity(t, R2000, tags)
	if e.raw == nil {
		t.Fatal("unmodeled type must keep its raw tag group")
	}
	if e.Handle() != Handle("99") {
		t.Errorf("expected handle 99, got %q", e.Handle())
	}
}

func TestAttributeError(t *testing.T) {
	e := NewEntity("LINE")
	_, err := e.Get("radius")
	var aErr *AttributeError
	if !errors.As(err, &aErr) {
		t.Fatalf("expected *AttributeError, got %v", err)
	}
	if aErr.Type != "LINE" || aErr.Name != "radius" {
		t.Errorf("unexpected error fields: %v", aErr)
	}
	if err := e.Set("radius", Float(1)); !errors.As(err, &aErr) {
		t.Errorf("expected *AttributeError from Set, got %v", err)
	}
	if err := e.Delete("radius"); !errors.As(err, &aErr) {
		t.Errorf("expected *AttributeError from Delete, got %v", err)
	}
}

func TestVersionErrorOnSet(t *testing.T) {
	doc := NewDocument(R12)
	e := NewEntity("LINE")
	if _, err := doc.Bind(e); err != nil {
		t.Fatal(err)
	}

	err := e.Set("lineweight", Integer(25))
	var vErr *VersionError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *VersionError, got %v", err)
	}
	if vErr.Min != R2000 || vErr.Have != R12 {
		t.Errorf("unexpected versions in error: %v", vErr)
	}
	// the value is stored anyway; the writer decides what to do with it
	if !e.Has("lineweight") {
		t.Error("value must be stored despite the version error")
	}
}

func TestAttributeDelete(t *testing.T) {
	e := NewEntity("CIRCLE")
	if err := e.Set("extrusion", Point{X: 0, Y: 0, Z: -1}); err != nil {
		t.Fatal(err)
	}
	p, _ := e.GetPoint("extrusion")
	if p.Z != -1 {
		t.Errorf("expected stored extrusion, got %v", p)
	}
	if err := e.Delete("extrusion"); err != nil {
		t.Fatal(err)
	}
	p, _ = e.GetPoint("extrusion")
	if p.Z != 1 {
		t.Errorf("expected default extrusion after delete, got %v", p)
	}
}
