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
	"bufio"
	"bytes"
	"io"
	"os"
)

// WriterOptions controls serialization.
type WriterOptions struct {
	// Version is the target DXF version.  The zero value keeps the
	// document's version.
	Version Version

	// Strict makes the writer fail with a *VersionError where it would
	// otherwise silently drop attributes or entities not supported by
	// the target version.
	Strict bool
}

// WriteFile saves the drawing as a text DXF file.
func (d *Document) WriteFile(fileName string, opt *WriterOptions) error {
	f, err := os.Create(fileName)
	if err != nil {
		return err
	}
	if err := d.Write(f, opt); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write serializes the drawing as text DXF.
func (d *Document) Write(w io.Writer, opt *WriterOptions) error {
	if opt == nil {
		opt = &WriterOptions{}
	}
	version := opt.Version
	if version == 0 {
		version = d.Version
	}

	d.updateHeader(version)

	buf := bufio.NewWriter(w)
	tw := newTagWriter(buf, version, d.Codepage)
	ew := &entityWriter{doc: d, tw: tw, version: version, strict: opt.Strict}

	if err := d.writeHeaderSection(tw); err != nil {
		return err
	}
	if version >= R13 && len(d.Classes) > 0 {
		if err := d.writeClassesSection(tw); err != nil {
			return err
		}
	}
	if err := d.writeTablesSection(ew); err != nil {
		return err
	}
	if len(d.Blocks) > 0 {
		if err := d.writeBlocksSection(ew); err != nil {
			return err
		}
	}
	if err := d.writeEntitiesSection(ew); err != nil {
		return err
	}
	if version >= R13 && len(d.Objects) > 0 {
		if err := d.writeObjectsSection(ew); err != nil {
			return err
		}
	}
	if d.Thumbnail != nil && version >= R2000 {
		if err := writeSection(tw, "THUMBNAILIMAGE", d.Thumbnail.thumbnailTags()); err != nil {
			return err
		}
	}
	for _, sec := range d.Extra {
		if err := writeSection(tw, sec.Name, sec.Tags); err != nil {
			return err
		}
	}
	if err := tw.writeStructure("EOF"); err != nil {
		return err
	}
	return buf.Flush()
}

func (d *Document) updateHeader(version Version) {
	token, err := version.ToString()
	if err == nil {
		d.Header.SetVar("$ACADVER", Tags{{Code: 1, Value: String(token)}})
	}
	d.Header.SetVar("$HANDSEED", Tags{{Code: 5, Value: d.DB.gen.Seed()}})
	if version < R2007 {
		d.Header.SetVar("$DWGCODEPAGE", Tags{{Code: 3, Value: String(d.Codepage)}})
	}
}

func writeSection(tw *tagWriter, name string, body Tags) error {
	if err := tw.writeStructure("SECTION"); err != nil {
		return err
	}
	if err := tw.writeString(2, name); err != nil {
		return err
	}
	if err := tw.writeTags(body); err != nil {
		return err
	}
	return tw.writeStructure("ENDSEC")
}

func (d *Document) writeHeaderSection(tw *tagWriter) error {
	if err := tw.writeStructure("SECTION"); err != nil {
		return err
	}
	if err := tw.writeString(2, "HEADER"); err != nil {
		return err
	}
	for _, v := range d.Header.vars {
		if err := tw.writeString(9, v.name); err != nil {
			return err
		}
		if err := tw.writeTags(v.tags); err != nil {
			return err
		}
	}
	return tw.writeStructure("ENDSEC")
}

func (d *Document) writeClassesSection(tw *tagWriter) error {
	if err := tw.writeStructure("SECTION"); err != nil {
		return err
	}
	if err := tw.writeString(2, "CLASSES"); err != nil {
		return err
	}
	for _, g := range d.Classes {
		if err := tw.writeTags(g.Tags()); err != nil {
			return err
		}
	}
	return tw.writeStructure("ENDSEC")
}

func (d *Document) writeTablesSection(ew *entityWriter) error {
	tw := ew.tw
	if err := tw.writeStructure("SECTION"); err != nil {
		return err
	}
	if err := tw.writeString(2, "TABLES"); err != nil {
		return err
	}
	for _, table := range d.Tables.All() {
		if table.Name == "BLOCK_RECORD" && ew.version < R13 {
			continue
		}
		if err := tw.writeStructure("TABLE"); err != nil {
			return err
		}
		if err := tw.writeString(2, table.Name); err != nil {
			return err
		}
		if ew.version >= R13 {
			if table.handle != NoHandle {
				if err := tw.writeString(5, string(table.handle)); err != nil {
					return err
				}
			}
			if table.owner != NoHandle {
				if err := tw.writeString(330, string(table.owner)); err != nil {
					return err
				}
			}
			if err := tw.writeTags(table.head); err != nil {
				return err
			}
		}
		if err := tw.writeInt(70, int64(len(table.Entries))); err != nil {
			return err
		}
		for _, e := range table.Entries {
			if err := ew.writeChain(e); err != nil {
				return err
			}
		}
		if err := tw.writeStructure("ENDTAB"); err != nil {
			return err
		}
	}
	return tw.writeStructure("ENDSEC")
}

func (d *Document) writeBlocksSection(ew *entityWriter) error {
	tw := ew.tw
	if err := tw.writeStructure("SECTION"); err != nil {
		return err
	}
	if err := tw.writeString(2, "BLOCKS"); err != nil {
		return err
	}
	for _, b := range d.Blocks {
		if err := ew.writeChain(b.Head); err != nil {
			return err
		}
		for _, e := range b.Entities {
			if err := ew.writeChain(e); err != nil {
				return err
			}
		}
		if b.End != nil {
			if err := ew.writeChain(b.End); err != nil {
				return err
			}
		}
	}
	return tw.writeStructure("ENDSEC")
}

func (d *Document) writeEntitiesSection(ew *entityWriter) error {
	tw := ew.tw
	if err := tw.writeStructure("SECTION"); err != nil {
		return err
	}
	if err := tw.writeString(2, "ENTITIES"); err != nil {
		return err
	}
	for _, e := range d.Entities {
		if err := ew.writeChain(e); err != nil {
			return err
		}
	}
	return tw.writeStructure("ENDSEC")
}

func (d *Document) writeObjectsSection(ew *entityWriter) error {
	tw := ew.tw
	if err := tw.writeStructure("SECTION"); err != nil {
		return err
	}
	if err := tw.writeString(2, "OBJECTS"); err != nil {
		return err
	}
	for _, e := range d.Objects {
		if err := ew.writeChain(e); err != nil {
			return err
		}
	}
	return tw.writeStructure("ENDSEC")
}

// entityWriter serializes entities for one target version.
type entityWriter struct {
	doc     *Document
	tw      *tagWriter
	version Version
	strict  bool
}

// writeChain writes an entity together with its linked sub-entities and
// the terminating SEQEND.
func (ew *entityWriter) writeChain(e *Entity) error {
	if len(e.sub) > 0 && e.DXFType() == "INSERT" {
		e.attrs["attribs_follow"] = Integer(1)
	}
	if err := ew.write(e); err != nil {
		return err
	}
	for _, sub := range e.sub {
		if err := ew.write(sub); err != nil {
			return err
		}
	}
	if e.seqend != nil {
		return ew.write(e.seqend)
	}
	if len(e.sub) > 0 {
		// chains must be closed even if the file omitted the SEQEND
		seqend := NewEntity("SEQEND")
		seqend.doc = ew.doc
		return ew.write(seqend)
	}
	return nil
}

func (ew *entityWriter) write(e *Entity) error {
	if e.raw != nil {
		return ew.tw.writeTags(e.raw.Tags())
	}
	if e.schema != nil && e.schema.Min > ew.version {
		if ew.strict {
			return &VersionError{Name: e.DXFType(), Min: e.schema.Min, Have: ew.version}
		}
		return nil
	}

	tw := ew.tw
	if err := tw.writeStructure(e.typ); err != nil {
		return err
	}

	if e.handle != NoHandle && ew.writeHandles() {
		code := 5
		if e.typ == "DIMSTYLE" {
			code = 105
		}
		if err := tw.writeString(code, string(e.handle)); err != nil {
			return err
		}
	}

	if ew.version >= R13 {
		if len(e.reactors) > 0 {
			if err := tw.writeString(codeAppData, acadReactors); err != nil {
				return err
			}
			for _, h := range e.reactors {
				if err := tw.writeString(330, string(h)); err != nil {
					return err
				}
			}
			if err := tw.writeString(codeAppData, "}"); err != nil {
				return err
			}
		}
		if e.xdict != NoHandle {
			if err := tw.writeString(codeAppData, acadXDict); err != nil {
				return err
			}
			if err := tw.writeString(360, string(e.xdict)); err != nil {
				return err
			}
			if err := tw.writeString(codeAppData, "}"); err != nil {
				return err
			}
		}
		for _, block := range e.appData {
			if err := tw.writeTags(block); err != nil {
				return err
			}
		}
		if e.owner != NoHandle {
			if err := tw.writeString(330, string(e.owner)); err != nil {
				return err
			}
		}
	}

	if e.schema != nil {
		if err := ew.writeSubclasses(e); err != nil {
			return err
		}
	}

	for _, sc := range e.extra {
		if ew.version >= R13 {
			if err := tw.writeTags(sc); err != nil {
				return err
			}
		} else if len(sc) > 0 {
			if err := tw.writeTags(sc[1:]); err != nil {
				return err
			}
		}
	}
	if ew.version >= R2007 {
		for _, block := range e.embedded {
			if err := tw.writeTags(block); err != nil {
				return err
			}
		}
	}
	for _, block := range e.xdata {
		if err := tw.writeTags(block); err != nil {
			return err
		}
	}
	return nil
}

// writeHandles reports whether handle tags are emitted.  R12 files only
// carry handles when the $HANDLING header flag is set.
func (ew *entityWriter) writeHandles() bool {
	if ew.version >= R13 {
		return true
	}
	v, ok := ew.doc.Header.Var("$HANDLING")
	if !ok {
		return false
	}
	if i := v.Find(70); i >= 0 {
		flag, _ := v[i].AsInt()
		return flag != 0
	}
	return false
}

func (ew *entityWriter) writeSubclasses(e *Entity) error {
	flat := ew.version < R13
	for i := range e.schema.Subclasses {
		sc := &e.schema.Subclasses[i]
		if sc.Name == "" {
			// base class attributes were written with the envelope
			if err := ew.writeUnknown(e, sc.Name, ""); err != nil {
				return err
			}
			continue
		}
		if !flat {
			if err := ew.tw.writeString(codeSubclass, e.subclassMarker(sc.Name)); err != nil {
				return err
			}
			if err := ew.writeUnknown(e, sc.Name, ""); err != nil {
				return err
			}
		}
		for j := range sc.Attrs {
			def := &sc.Attrs[j]
			if def.isPayloadMark() {
				if e.schema.encode != nil {
					if err := e.schema.encode(e, sc.Name, def.Name, ew.tw); err != nil {
						return err
					}
				}
				continue
			}
			if err := ew.writeAttr(e, sc.Name, def); err != nil {
				return err
			}
		}
	}
	return nil
}

func (ew *entityWriter) writeAttr(e *Entity, subclass string, def *AttrDef) error {
	if e.schema.payloadCode(subclass, def.Code) {
		// the payload codec owns this group code
		return ew.writeUnknown(e, subclass, def.Name)
	}

	v, present := e.attrs[def.Name]
	if !present {
		if def.Optional || def.Default == nil {
			return ew.writeUnknown(e, subclass, def.Name)
		}
		v = def.Default
	}
	if def.Min > ew.version {
		if ew.strict && present {
			return &VersionError{Name: def.Name, Min: def.Min, Have: ew.version}
		}
		return ew.writeUnknown(e, subclass, def.Name)
	}
	if def.Optional && valueEqual(v, def.Default) {
		return ew.writeUnknown(e, subclass, def.Name)
	}
	if err := ew.tw.writeTag(Tag{Code: def.Code, Value: v}); err != nil {
		return err
	}
	return ew.writeUnknown(e, subclass, def.Name)
}

// writeUnknown re-emits preserved unknown tags anchored after the named
// attribute of a subclass.
func (ew *entityWriter) writeUnknown(e *Entity, subclass, after string) error {
	for _, u := range e.unknown {
		if u.after != after {
			continue
		}
		if u.subclass != subclass && ew.version >= R13 {
			continue
		}
		if err := ew.tw.writeTag(u.tag); err != nil {
			return err
		}
	}
	return nil
}

// valueEqual compares two tag values.  Binary values are not comparable
// with == and need an explicit check.
func valueEqual(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if x, ok := a.(Binary); ok {
		y, ok := b.(Binary)
		return ok && bytes.Equal(x, y)
	}
	if _, ok := b.(Binary); ok {
		return false
	}
	if p, ok := a.(Point); ok {
		q, ok := b.(Point)
		return ok && p.X == q.X && p.Y == q.Y && p.Z == q.Z &&
			normDim(p.Dim) == normDim(q.Dim)
	}
	return a == b
}

// normDim maps the zero value of Point.Dim to the 3D wire arity.
func normDim(d int) int {
	if d == 0 {
		return 3
	}
	return d
}
