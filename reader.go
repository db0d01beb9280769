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
	"fmt"
	"io"
	"os"
)

// Open reads the DXF file with the given name.
func Open(fileName string) (*Document, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}
	return ReadBytes(data)
}

// Read reads a DXF drawing.  The whole stream is buffered: the text
// encoding of pre-R2007 files is only known after the header has been
// seen.
func Read(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ReadBytes(data)
}

// ReadBytes reads a DXF drawing from memory.  Both text and binary
// encoded files are accepted.
func ReadBytes(data []byte) (*Document, error) {
	var tags Tags
	var version Version
	var codepage string
	var err error

	if isBinaryDXF(data) {
		_, codepage = scanBinaryParameters(data)
		tags, version, err = readBinaryTags(data)
		if err != nil {
			return nil, err
		}
	} else {
		_, codepage = scanParameters(data)
		r, ver, err := decodingReader(data)
		if err != nil {
			return nil, err
		}
		version = ver
		s := newScanner(r)
		tags, err = s.ReadTags()
		if err != nil {
			return nil, err
		}
	}

	doc := &Document{
		Version:  version,
		Codepage: codepage,
		Header:   &Header{},
		Tables:   &Tables{},
		DB:       NewDB(),
	}
	if doc.Codepage == "" {
		doc.Codepage = "ANSI_1252"
	}

	if err := doc.readSections(tags); err != nil {
		return nil, err
	}
	if err := doc.wireHandles(); err != nil {
		return nil, err
	}
	return doc, nil
}

func isStructure(t Tag, name string) bool {
	if t.Code != codeStructure {
		return false
	}
	s, ok := t.Value.(String)
	return ok && string(s) == name
}

func (d *Document) readSections(tags Tags) error {
	pos := 0
	for pos < len(tags) {
		t := tags[pos]
		if isStructure(t, "EOF") {
			return nil
		}
		if !isStructure(t, "SECTION") {
			return &StructureError{
				Err: fmt.Errorf("expected (0, SECTION), got %s", t),
			}
		}
		pos++
		if pos >= len(tags) || tags[pos].Code != 2 {
			return &StructureError{
				Err: errors.New("SECTION without a (2, name) tag"),
			}
		}
		name := tags[pos].AsString()
		pos++

		end := pos
		for end < len(tags) && !isStructure(tags[end], "ENDSEC") {
			end++
		}
		if end >= len(tags) {
			return &StructureError{
				Entity: "SECTION " + name,
				Err:    ErrUnexpectedEOF,
			}
		}
		body := tags[pos:end]
		pos = end + 1

		var err error
		switch name {
		case "HEADER":
			err = d.readHeader(body)
		case "CLASSES":
			err = d.readClasses(body)
		case "TABLES":
			err = d.readTables(body)
		case "BLOCKS":
			err = d.readBlocks(body)
		case "ENTITIES":
			d.Entities, err = d.readEntitySpace(body)
		case "OBJECTS":
			err = d.readObjects(body)
		case "THUMBNAILIMAGE":
			d.Thumbnail, err = readThumbnailSection(body)
		default:
			d.Extra = append(d.Extra, RawSection{Name: name, Tags: body.Clone()})
		}
		if err != nil {
			return err
		}
	}
	d.warnf("missing (0, EOF) tag")
	return nil
}

func (d *Document) readHeader(body Tags) error {
	var name string
	var value Tags
	flush := func() {
		if name == "" {
			return
		}
		if _, exists := d.Header.Var(name); exists {
			d.warnf("duplicate header variable %s ignored", name)
		} else {
			d.Header.SetVar(name, value)
		}
	}
	for _, t := range body {
		if t.Code == 9 {
			flush()
			name = t.AsString()
			value = nil
			continue
		}
		value = append(value, t)
	}
	flush()

	if v, ok := d.Header.Var("$DWGCODEPAGE"); ok {
		if s, found := v.Get(3); found {
			d.Codepage = Tag{Value: s}.AsString()
		}
	}
	return nil
}

// splitRecords splits a section body at its (0, name) tags.
func splitRecords(body Tags) []Tags {
	var out []Tags
	start := -1
	for i, t := range body {
		if t.Code == codeStructure {
			if start >= 0 {
				out = append(out, body[start:i])
			}
			start = i
		}
	}
	if start >= 0 {
		out = append(out, body[start:])
	}
	return out
}

func (d *Document) readClasses(body Tags) error {
	for _, rec := range splitRecords(body) {
		g, err := NewTagGroup(rec)
		if err != nil {
			return err
		}
		d.Classes = append(d.Classes, g)
	}
	return nil
}

func (d *Document) readTables(body Tags) error {
	records := splitRecords(body)
	i := 0
	for i < len(records) {
		rec := records[i]
		if !isStructure(rec[0], "TABLE") {
			return &StructureError{
				Err: fmt.Errorf("expected (0, TABLE), got %s", rec[0]),
			}
		}
		if len(rec) < 2 || rec[1].Code != 2 {
			return &StructureError{
				Err: errors.New("TABLE without a (2, name) tag"),
			}
		}
		table := d.Tables.Get(rec[1].AsString())
		for _, t := range rec[2:] {
			switch t.Code {
			case 5:
				table.handle, _ = t.AsHandle()
			case 330:
				table.owner, _ = t.AsHandle()
			case 70:
				// entry count, recomputed on write
			default:
				table.head = append(table.head, t)
			}
		}
		i++

		closed := false
		for i < len(records) {
			rec = records[i]
			if isStructure(rec[0], "ENDTAB") {
				i++
				closed = true
				break
			}
			g, err := NewTagGroup(rec)
			if err != nil {
				return err
			}
			e, err := entityFromGroup(g, d.Version)
			if err != nil {
				return err
			}
			e.doc = d
			if name, err := e.GetString("name"); err == nil && name != "" {
				if _, dup := table.Find(name); dup {
					d.warnf("duplicate %s entry %q ignored", table.Name, name)
					i++
					continue
				}
			}
			table.Entries = append(table.Entries, e)
			i++
		}
		if !closed {
			return &StructureError{
				Entity: "TABLE " + table.Name,
				Err:    ErrUnexpectedEOF,
			}
		}
	}
	return nil
}

func (d *Document) readBlocks(body Tags) error {
	entities, err := d.readEntitySpace(body)
	if err != nil {
		return err
	}
	var block *Block
	for _, e := range entities {
		switch e.DXFType() {
		case "BLOCK":
			if block != nil {
				return &StructureError{
					Entity: e.describe(),
					Err:    errors.New("BLOCK without a closing ENDBLK"),
				}
			}
			block = &Block{Head: e}
		case "ENDBLK":
			if block == nil {
				return &StructureError{
					Entity: e.describe(),
					Err:    errors.New("ENDBLK without a BLOCK"),
				}
			}
			block.End = e
			if _, dup := d.FindBlock(block.Name()); dup {
				d.warnf("duplicate block %q ignored", block.Name())
			} else {
				d.Blocks = append(d.Blocks, block)
			}
			block = nil
		default:
			if block == nil {
				return &StructureError{
					Entity: e.describe(),
					Err:    errors.New("entity outside of a BLOCK"),
				}
			}
			block.Entities = append(block.Entities, e)
		}
	}
	if block != nil {
		return &StructureError{
			Entity: block.Head.describe(),
			Err:    ErrUnexpectedEOF,
		}
	}
	return nil
}

// readEntitySpace builds the entities of a BLOCKS or ENTITIES body and
// links POLYLINE/VERTEX and INSERT/ATTRIB chains to their parents.
func (d *Document) readEntitySpace(body Tags) ([]*Entity, error) {
	var flat []*Entity
	for _, rec := range splitRecords(body) {
		g, err := NewTagGroup(rec)
		if err != nil {
			return nil, err
		}
		e, err := entityFromGroup(g, d.Version)
		if err != nil {
			return nil, err
		}
		e.doc = d
		flat = append(flat, e)
	}

	var out []*Entity
	i := 0
	for i < len(flat) {
		e := flat[i]
		i++
		if !wantsChain(e) {
			out = append(out, e)
			continue
		}
		for i < len(flat) {
			sub := flat[i]
			if sub.DXFType() == "SEQEND" {
				e.seqend = sub
				i++
				break
			}
			if !isChainMember(e, sub) {
				d.warnf("%s chain not terminated by SEQEND", e.describe())
				break
			}
			e.sub = append(e.sub, sub)
			i++
		}
		out = append(out, e)
	}
	return out, nil
}

func wantsChain(e *Entity) bool {
	switch e.DXFType() {
	case "POLYLINE":
		return true
	case "INSERT":
		follow, err := e.GetInt("attribs_follow")
		return err == nil && follow != 0
	}
	return false
}

func isChainMember(parent, e *Entity) bool {
	switch parent.DXFType() {
	case "POLYLINE":
		return e.DXFType() == "VERTEX"
	case "INSERT":
		return e.DXFType() == "ATTRIB"
	}
	return false
}

func (d *Document) readObjects(body Tags) error {
	for _, rec := range splitRecords(body) {
		g, err := NewTagGroup(rec)
		if err != nil {
			return err
		}
		e, err := entityFromGroup(g, d.Version)
		if err != nil {
			return err
		}
		e.doc = d
		d.Objects = append(d.Objects, e)
	}
	return nil
}

// eachEntity visits every entity of the document, including table
// entries, block contents and linked sub-entities.
func (d *Document) eachEntity(fn func(*Entity) error) error {
	visit := func(e *Entity) error {
		if e == nil {
			return nil
		}
		if err := fn(e); err != nil {
			return err
		}
		for _, sub := range e.sub {
			if err := fn(sub); err != nil {
				return err
			}
		}
		if e.seqend != nil {
			return fn(e.seqend)
		}
		return nil
	}

	if d.Tables != nil {
		for _, t := range d.Tables.All() {
			for _, e := range t.Entries {
				if err := visit(e); err != nil {
					return err
				}
			}
		}
	}
	for _, b := range d.Blocks {
		if err := visit(b.Head); err != nil {
			return err
		}
		for _, e := range b.Entities {
			if err := visit(e); err != nil {
				return err
			}
		}
		if err := visit(b.End); err != nil {
			return err
		}
	}
	for _, e := range d.Entities {
		if err := visit(e); err != nil {
			return err
		}
	}
	for _, e := range d.Objects {
		if err := visit(e); err != nil {
			return err
		}
	}
	return nil
}

// wireHandles is the second pass after the sections have been read:
// all entities with a handle are registered first, then the generator
// is seeded, entities without handles get fresh ones, and owner links
// are checked.
func (d *Document) wireHandles() error {
	err := d.eachEntity(func(e *Entity) error {
		e.doc = d
		if e.handle == NoHandle {
			return nil
		}
		_, err := d.DB.Register(e)
		return err
	})
	if err != nil {
		return err
	}

	if v, ok := d.Header.Var("$HANDSEED"); ok {
		if i := v.Find(5); i >= 0 {
			if h, ok := v[i].AsHandle(); ok {
				d.DB.gen.SetSeed(h)
			}
		}
	}

	err = d.eachEntity(func(e *Entity) error {
		if e.handle != NoHandle {
			return nil
		}
		_, err := d.DB.Register(e)
		return err
	})
	if err != nil {
		return err
	}

	// forward references are legal, so owners resolve only now
	return d.eachEntity(func(e *Entity) error {
		if e.owner == NoHandle {
			return nil
		}
		if _, err := d.DB.Resolve(e.owner); err != nil {
			if e.IsGraphical() {
				return &StructureError{
					Entity: e.describe(),
					Err:    fmt.Errorf("owner #%s: %w", e.owner, err),
				}
			}
			d.warnf("%s: dangling owner #%s", e.describe(), e.owner)
		}
		return nil
	})
}
