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
	"io"
	"strings"
)

// appDataRef is a placeholder tag value inside a subclass which records
// the original position of an app data block.  It refers into
// TagGroup.AppData by index and is expanded again on write.
type appDataRef int

// DXF implements the Value interface.  Placeholders are expanded by the
// tag writer and must never be written directly.
func (x appDataRef) DXF(w io.Writer) error {
	return errors.New("app data placeholder written without expansion")
}

// TagGroup is one classified entity record: the tags of a single
// top-level (0, name) record, partitioned into subclasses with nested
// app data blocks, XDATA sections and embedded objects split out.
type TagGroup struct {
	// Subclasses holds the entity's tags partitioned by (100, name)
	// markers.  Subclasses[0] is the unnamed base class starting with the
	// (0, name) tag; named subclasses start with their marker tag.
	Subclasses []Tags

	// AppData holds (102, "{APPID") ... (102, "}") blocks including both
	// marker tags.  Their position inside the owning subclass is recorded
	// by appDataRef placeholder tags.
	AppData []Tags

	// XData holds extended data blocks, each starting with its
	// (1001, appid) tag.
	XData []Tags

	// Embedded holds embedded objects, each starting with the
	// (101, "Embedded Object") marker.
	Embedded []Tags
}

func isAppDataStart(t Tag) bool {
	if t.Code != codeAppData {
		return false
	}
	s, ok := t.Value.(String)
	return ok && strings.HasPrefix(string(s), "{")
}

func isEmbeddedObjStart(t Tag) bool {
	if t.Code != codeEmbeddedObj {
		return false
	}
	s, ok := t.Value.(String)
	return ok && string(s) == embeddedObjStr
}

// endOfClass reports whether t terminates the current (sub)class.
func endOfClass(t Tag) bool {
	switch t.Code {
	case codeSubclass, codeXData:
		return true
	case codeEmbeddedObj:
		return isEmbeddedObjStart(t)
	}
	return false
}

// NewTagGroup classifies the flat tags of one entity record.  tags must
// start with the (0, name) tag of the record.
func NewTagGroup(tags Tags) (*TagGroup, error) {
	g := &TagGroup{}
	pos := 0
	n := len(tags)

	collectAppData := func(start Tag) error {
		data := Tags{start}
		name, _ := start.Value.(String)
		closing := string(name[1:]) + "}"
		for {
			if pos >= n {
				return &StructureError{
					Entity: g.describe(),
					Err:    errors.New("missing closing (102, \"}\") tag in app data"),
				}
			}
			t := tags[pos]
			pos++
			data = append(data, t)
			if t.Code == codeAppData {
				if s, ok := t.Value.(String); ok && (s == "}" || string(s) == closing) {
					break
				}
			}
		}
		g.AppData = append(g.AppData, data)
		return nil
	}

	// base class: may contain app data, ends at the first subclass
	// marker, embedded object or XDATA tag
	base := Tags{}
	for pos < n && !endOfClass(tags[pos]) {
		t := tags[pos]
		pos++
		if isAppDataStart(t) {
			base = append(base, Tag{Code: codeAppData, Value: appDataRef(len(g.AppData))})
			if err := collectAppData(t); err != nil {
				return nil, err
			}
		} else {
			base = append(base, t)
		}
	}
	g.Subclasses = append(g.Subclasses, base)

	// named subclasses
	for pos < n && tags[pos].Code == codeSubclass {
		data := Tags{tags[pos]}
		pos++
		for pos < n && !endOfClass(tags[pos]) {
			t := tags[pos]
			pos++
			if isAppDataStart(t) {
				data = append(data, Tag{Code: codeAppData, Value: appDataRef(len(g.AppData))})
				if err := collectAppData(t); err != nil {
					return nil, err
				}
			} else {
				data = append(data, t)
			}
		}
		g.Subclasses = append(g.Subclasses, data)
	}

	// embedded objects, stored verbatim
	for pos < n && isEmbeddedObjStart(tags[pos]) {
		data := Tags{tags[pos]}
		pos++
		for pos < n && !isEmbeddedObjStart(tags[pos]) && tags[pos].Code != codeXData {
			data = append(data, tags[pos])
			pos++
		}
		g.Embedded = append(g.Embedded, data)
	}

	// XDATA is always last
	for pos < n && tags[pos].Code == codeXData {
		data := Tags{tags[pos]}
		pos++
		for pos < n && tags[pos].Code != codeXData {
			data = append(data, tags[pos])
			pos++
		}
		g.XData = append(g.XData, data)
	}

	if pos < n {
		return nil, &StructureError{
			Entity: g.describe(),
			Err:    errors.New("unexpected tag " + tags[pos].String() + " at end of entity"),
		}
	}
	return g, nil
}

// DXFType returns the record's type string, e.g. "LINE".
func (g *TagGroup) DXFType() string {
	if len(g.Subclasses) == 0 {
		return ""
	}
	base := g.Subclasses[0]
	if len(base) == 0 || base[0].Code != codeStructure {
		return ""
	}
	s, _ := base[0].Value.(String)
	return string(s)
}

// Handle returns the record's handle, or NoHandle.  DIMSTYLE table
// entries store their handle under group code 105.
func (g *TagGroup) Handle() Handle {
	if len(g.Subclasses) == 0 {
		return NoHandle
	}
	code := 5
	if g.DXFType() == "DIMSTYLE" {
		code = 105
	}
	for _, t := range g.Subclasses[0] {
		if t.Code == code {
			if h, ok := t.AsHandle(); ok {
				return h
			}
		}
	}
	return NoHandle
}

// Owner returns the record's owner handle, or NoHandle.
func (g *TagGroup) Owner() Handle {
	if len(g.Subclasses) == 0 {
		return NoHandle
	}
	for _, t := range g.Subclasses[0] {
		if t.Code == 330 {
			if h, ok := t.AsHandle(); ok {
				return h
			}
		}
	}
	return NoHandle
}

// Subclass returns the tags of the named subclass including its marker
// tag.  The unnamed base class has the name "".
func (g *TagGroup) Subclass(name string) (Tags, bool) {
	if name == "" {
		return g.Subclasses[0], true
	}
	for _, sc := range g.Subclasses[1:] {
		if len(sc) > 0 {
			if s, ok := sc[0].Value.(String); ok && string(s) == name {
				return sc, true
			}
		}
	}
	return nil, false
}

// AppDataBlock returns the app data block for the given appid, including
// the surrounding marker tags.
func (g *TagGroup) AppDataBlock(appid string) (Tags, bool) {
	for _, block := range g.AppData {
		if len(block) > 0 {
			if s, ok := block[0].Value.(String); ok && string(s) == appid {
				return block, true
			}
		}
	}
	return nil, false
}

// FlattenSubclasses merges all named subclasses into the base class,
// dropping the subclass markers.  DXF R12 has no subclasses, but R12
// files with subclass markers exist in the wild and parse only after
// flattening.
func (g *TagGroup) FlattenSubclasses() {
	if len(g.Subclasses) < 2 {
		return
	}
	base := g.Subclasses[0]
	for _, sc := range g.Subclasses[1:] {
		if len(sc) > 0 {
			base = append(base, sc[1:]...) // drop the (100, name) marker
		}
	}
	g.Subclasses = []Tags{base}
}

// Tags returns the record's flat tag sequence, with app data blocks
// expanded at their recorded positions.
func (g *TagGroup) Tags() Tags {
	var out Tags
	for _, sc := range g.Subclasses {
		for _, t := range sc {
			if ref, ok := t.Value.(appDataRef); ok {
				out = append(out, g.AppData[ref]...)
			} else {
				out = append(out, t)
			}
		}
	}
	for _, e := range g.Embedded {
		out = append(out, e...)
	}
	for _, x := range g.XData {
		out = append(out, x...)
	}
	return out
}

// describe names the entity for error messages, e.g. "LINE(#1C4)".
func (g *TagGroup) describe() string {
	name := g.DXFType()
	if h := g.Handle(); h != NoHandle {
		name += "(#" + string(h) + ")"
	}
	return name
}
