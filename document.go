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
	"fmt"
	"strings"
)

// Document is a DXF drawing: header variables, symbol tables, block
// definitions, the entity spaces, the object section and the handle
// database tying them together.
type Document struct {
	Version  Version
	Codepage string // $DWGCODEPAGE, used for pre-R2007 text encoding

	Header  *Header
	Classes []*TagGroup // CLASSES section records, kept verbatim
	Tables  *Tables
	Blocks  []*Block

	// Entities holds the records of the ENTITIES section: model space
	// and (pre-R2000) paper space.  Sub-entities of POLYLINE and INSERT
	// chains are linked to their parent and not listed here.
	Entities []*Entity

	// Objects holds the non-graphical objects of the OBJECTS section.
	// Objects[0] is the root dictionary when present.
	Objects []*Entity

	Thumbnail *Thumbnail

	// Extra preserves sections this package does not model.
	Extra []RawSection

	DB *DB

	// Warnings collects non-fatal findings from reading, for example
	// duplicate table entries resolved first-wins.
	Warnings []string
}

// RawSection is an unmodeled section, preserved verbatim without the
// surrounding SECTION/ENDSEC tags.
type RawSection struct {
	Name string
	Tags Tags
}

// NewDocument creates an empty drawing for the given DXF version.
func NewDocument(version Version) *Document {
	doc := &Document{
		Version:  version,
		Codepage: "ANSI_1252",
		Header:   &Header{},
		Tables:   &Tables{},
		DB:       NewDB(),
	}
	doc.Header.SetVar("$ACADVER", Tags{{Code: 1, Value: String(version.String())}})
	return doc
}

func (d *Document) warnf(format string, args ...any) {
	d.Warnings = append(d.Warnings, fmt.Sprintf(format, args...))
}

// Bind attaches an entity to this document and registers it in the
// handle database.
func (d *Document) Bind(e *Entity) (Handle, error) {
	e.doc = d
	return d.DB.Register(e)
}

// Header holds the HEADER section variables in file order.
type Header struct {
	vars  []headerVar
	index map[string]int
}

type headerVar struct {
	name string
	tags Tags
}

// Var returns the value tags of a header variable, e.g. "$INSUNITS".
func (h *Header) Var(name string) (Tags, bool) {
	i, ok := h.index[name]
	if !ok {
		return nil, false
	}
	return h.vars[i].tags, true
}

// SetVar sets a header variable, keeping the position of an existing
// variable and appending new ones at the end.
func (h *Header) SetVar(name string, tags Tags) {
	if i, ok := h.index[name]; ok {
		h.vars[i].tags = tags
		return
	}
	if h.index == nil {
		h.index = make(map[string]int)
	}
	h.index[name] = len(h.vars)
	h.vars = append(h.vars, headerVar{name: name, tags: tags})
}

// DeleteVar removes a header variable.
func (h *Header) DeleteVar(name string) {
	i, ok := h.index[name]
	if !ok {
		return
	}
	h.vars = append(h.vars[:i], h.vars[i+1:]...)
	delete(h.index, name)
	for n, j := range h.index {
		if j > i {
			h.index[n] = j - 1
		}
	}
}

// Names returns the variable names in file order.
func (h *Header) Names() []string {
	names := make([]string, len(h.vars))
	for i, v := range h.vars {
		names[i] = v.name
	}
	return names
}

// Tables holds the symbol tables of the TABLES section.
type Tables struct {
	list []*Table
}

// tableOrder is the conventional emission order of the TABLES section.
var tableOrder = []string{
	"VPORT", "LTYPE", "LAYER", "STYLE", "VIEW", "UCS", "APPID",
	"DIMSTYLE", "BLOCK_RECORD",
}

// Table is one symbol table, e.g. the LAYER table.
type Table struct {
	Name    string
	Entries []*Entity

	handle Handle
	owner  Handle

	// head preserves unmodeled tags of the table head record.
	head Tags
}

// Handle returns the handle of the table head record.
func (t *Table) Handle() Handle {
	return t.handle
}

// Find returns the entry with the given name.  Symbol table names
// compare case-insensitively.
func (t *Table) Find(name string) (*Entity, bool) {
	for _, e := range t.Entries {
		n, err := e.GetString("name")
		if err == nil && strings.EqualFold(n, name) {
			return e, true
		}
	}
	return nil, false
}

// Get returns the symbol table with the given name, creating it if
// missing.
func (tt *Tables) Get(name string) *Table {
	name = strings.ToUpper(name)
	for _, t := range tt.list {
		if t.Name == name {
			return t
		}
	}
	t := &Table{Name: name}
	tt.list = append(tt.list, t)
	return t
}

// Lookup returns the symbol table with the given name, or nil.
func (tt *Tables) Lookup(name string) *Table {
	name = strings.ToUpper(name)
	for _, t := range tt.list {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// All returns the tables in conventional emission order, followed by
// any tables with unconventional names in file order.
func (tt *Tables) All() []*Table {
	var out []*Table
	seen := make(map[string]bool)
	for _, name := range tableOrder {
		if t := tt.Lookup(name); t != nil {
			out = append(out, t)
			seen[name] = true
		}
	}
	for _, t := range tt.list {
		if !seen[t.Name] {
			out = append(out, t)
		}
	}
	return out
}

// Block is one block definition: the BLOCK head entity, the contained
// entities and the closing ENDBLK entity.
type Block struct {
	Head     *Entity // the BLOCK entity
	Entities []*Entity
	End      *Entity // the ENDBLK entity
}

// Name returns the block name.
func (b *Block) Name() string {
	if b.Head == nil {
		return ""
	}
	name, _ := b.Head.GetString("name")
	return name
}

// IsReserved reports whether the block is one of the reserved layout
// blocks (*Model_Space, *Paper_Space...), which every drawing must keep.
func (b *Block) IsReserved() bool {
	return strings.HasPrefix(b.Name(), "*")
}

// FindBlock returns the block definition with the given name.  Block
// names compare case-insensitively.
func (d *Document) FindBlock(name string) (*Block, bool) {
	for _, b := range d.Blocks {
		if strings.EqualFold(b.Name(), name) {
			return b, true
		}
	}
	return nil, false
}

// RootDict returns the root dictionary object, or nil for drawings
// without an OBJECTS section.
func (d *Document) RootDict() *Entity {
	for _, o := range d.Objects {
		if o.DXFType() == "DICTIONARY" && o.Owner() == NoHandle {
			return o
		}
	}
	return nil
}
