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

// The schema registry drives both directions of the codec: it maps group
// codes to named attributes per DXF type and subclass on read, and
// determines tag order, defaults and version gating on write.  Entity
// types are described by data tables instead of per-type code; only the
// variable-length payloads of complex entities get dedicated codecs.

// AttrDef describes one DXF attribute: its group code, default value and
// the DXF version which introduced it.
type AttrDef struct {
	Name string
	Code int

	// Default is substituted when reading an absent attribute.
	// nil means the attribute has no default.
	Default Value

	// Min is the DXF version which introduced the attribute.
	// The zero value means the attribute has always existed.
	Min Version

	// Optional attributes are omitted on write when equal to their
	// default.
	Optional bool
}

// payloadMark is a pseudo attribute marking a position where part of a
// complex entity's variable-length payload is emitted within its
// subclass.  A subclass may carry several marks; the name tells the
// codec which part to write.
func payloadMark(name string) AttrDef {
	return AttrDef{Name: name, Code: -1}
}

func (d *AttrDef) isPayloadMark() bool {
	return d.Code < 0
}

// SubclassDef lists the attributes of one subclass in emission order.
type SubclassDef struct {
	Name string // subclass marker name, "" for the unnamed base class

	// Aliases are alternative marker names for the same attribute layout.
	// VERTEX, for example, uses AcDb3dPolylineVertex or AcDbFaceRecord in
	// place of AcDb2dVertex depending on the owning POLYLINE flavor.
	Aliases []string

	Attrs []AttrDef
}

func (sc *SubclassDef) matches(name string) bool {
	if name == sc.Name {
		return true
	}
	for _, a := range sc.Aliases {
		if name == a {
			return true
		}
	}
	return false
}

// Schema describes the tag layout of one DXF entity type.
type Schema struct {
	Type      string
	Min       Version // minimum DXF version of the entity type
	Graphical bool    // entity lives in an entity space, owner is a BLOCK_RECORD

	Subclasses []SubclassDef

	// payload reports, per subclass, which group codes belong to the
	// variable-length payload instead of scalar attributes.
	payload map[string]func(code int) bool

	// decode builds the Complex payload from the collected payload tags.
	decode func(e *Entity, payload map[string]Tags) error

	// encode writes the payload tags at one payload mark.  Counts are
	// recomputed from the live collections, never taken from the file.
	encode func(e *Entity, subclass, mark string, tw *tagWriter) error

	byName map[string]*AttrDef
}

func (s *Schema) attr(name string) *AttrDef {
	return s.byName[name]
}

var schemaRegistry = map[string]*Schema{}

func registerSchema(s *Schema) *Schema {
	if _, exists := schemaRegistry[s.Type]; exists {
		panic("duplicate schema for " + s.Type)
	}
	s.byName = make(map[string]*AttrDef)
	for i := range s.Subclasses {
		sc := &s.Subclasses[i]
		// Payload marks are indexed too, so that codec-backed attributes
		// like the MTEXT "text" resolve through Get and Set.
		for j := range sc.Attrs {
			def := &sc.Attrs[j]
			if _, dup := s.byName[def.Name]; dup {
				panic("duplicate attribute " + def.Name + " in " + s.Type)
			}
			s.byName[def.Name] = def
		}
	}
	schemaRegistry[s.Type] = s
	return s
}

// LookupSchema returns the schema for a DXF type, if the type is modeled.
func LookupSchema(dxftype string) (*Schema, bool) {
	s, ok := schemaRegistry[dxftype]
	return s, ok
}

func (s *Schema) payloadCode(subclass string, code int) bool {
	if s.payload == nil {
		return false
	}
	fn, ok := s.payload[subclass]
	return ok && fn(code)
}

// entityFromGroup constructs a typed entity from a classified tag group.
// Unmodeled DXF types are preserved verbatim.
func entityFromGroup(g *TagGroup, version Version) (*Entity, error) {
	typ := g.DXFType()
	e := &Entity{
		typ:    typ,
		handle: g.Handle(),
		owner:  g.Owner(),
		attrs:  make(map[string]Value),
	}

	// split reactors and the extension dictionary off the app data
	for _, block := range g.AppData {
		name, _ := block[0].Value.(String)
		switch string(name) {
		case acadReactors:
			for _, t := range block[1 : len(block)-1] {
				if h, ok := t.AsHandle(); ok {
					e.reactors = append(e.reactors, h)
				}
			}
		case acadXDict:
			for _, t := range block[1 : len(block)-1] {
				if h, ok := t.AsHandle(); ok {
					e.xdict = h
				}
			}
		default:
			e.appData = append(e.appData, block.Clone())
		}
	}
	e.xdata = cloneTagLists(g.XData)
	e.embedded = cloneTagLists(g.Embedded)

	schema, ok := LookupSchema(typ)
	if !ok {
		// forward compatibility: unknown types round-trip verbatim
		e.raw = g
		return e, nil
	}
	e.schema = schema

	payload := make(map[string]Tags)
	if version < R13 || len(g.Subclasses) == 1 {
		if err := e.loadFlat(g, payload); err != nil {
			return nil, err
		}
	} else {
		if err := e.loadSubclasses(g, payload); err != nil {
			return nil, err
		}
	}

	if schema.decode != nil {
		if err := schema.decode(e, payload); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// attrQueue assigns tags to attribute definitions by group code, honoring
// declaration order when a code appears more than once in a subclass.
type attrQueue map[int][]*AttrDef

func (q attrQueue) add(def *AttrDef) {
	q[def.Code] = append(q[def.Code], def)
}

func (q attrQueue) take(code int) *AttrDef {
	defs := q[code]
	if len(defs) == 0 {
		return nil
	}
	q[code] = defs[1:]
	return defs[0]
}

func skipInBaseClass(t Tag, typ string) bool {
	switch t.Code {
	case codeStructure, 330:
		return true
	case 5:
		return typ != "DIMSTYLE" // DIMSTYLE handles live in code 105
	case 105:
		return typ == "DIMSTYLE"
	case codeAppData:
		_, isRef := t.Value.(appDataRef)
		return isRef
	}
	return false
}

// loadSubclasses parses a R13+ tag group, matching schema subclasses to
// tag subclasses by name.
func (e *Entity) loadSubclasses(g *TagGroup, payload map[string]Tags) error {
	used := make([]bool, len(g.Subclasses))
	used[0] = true
	cursor := 1

	for i := range e.schema.Subclasses {
		scDef := &e.schema.Subclasses[i]
		var tags Tags
		if scDef.Name == "" {
			tags = g.Subclasses[0]
		} else {
			found := -1
			for j := cursor; j < len(g.Subclasses); j++ {
				if used[j] {
					continue
				}
				sc := g.Subclasses[j]
				if len(sc) > 0 {
					if s, ok := sc[0].Value.(String); ok && scDef.matches(string(s)) {
						if string(s) != scDef.Name {
							if e.subAlias == nil {
								e.subAlias = make(map[string]string)
							}
							e.subAlias[scDef.Name] = string(s)
						}
						found = j
						break
					}
				}
			}
			if found < 0 {
				continue // subclass absent, all its attributes unset
			}
			used[found] = true
			if found == cursor {
				cursor++
			}
			tags = g.Subclasses[found][1:] // drop the (100, name) marker
		}
		e.loadAttrs(scDef, tags, payload)
	}

	for j := 1; j < len(g.Subclasses); j++ {
		if !used[j] {
			e.extra = append(e.extra, g.Subclasses[j].Clone())
		}
	}
	return nil
}

// loadFlat parses a legacy tag group without subclass markers, matching
// attributes across all schema subclasses in declaration order.
func (e *Entity) loadFlat(g *TagGroup, payload map[string]Tags) error {
	flat := g.Subclasses[0].Clone()
	for _, sc := range g.Subclasses[1:] {
		if len(sc) > 0 {
			flat = append(flat, sc[1:]...)
		}
	}

	queue := make(attrQueue)
	for i := range e.schema.Subclasses {
		sc := &e.schema.Subclasses[i]
		for j := range sc.Attrs {
			if !sc.Attrs[j].isPayloadMark() {
				queue.add(&sc.Attrs[j])
			}
		}
	}

	isPayload := func(code int) bool {
		for name := range e.schema.payload {
			if e.schema.payloadCode(name, code) {
				return true
			}
		}
		return false
	}

	last := ""
	for _, t := range flat {
		if skipInBaseClass(t, e.typ) || t.Code == codeSubclass {
			continue
		}
		if isPayload(t.Code) {
			key := e.flatPayloadKey(t.Code)
			payload[key] = append(payload[key], t)
			continue
		}
		if def := queue.take(t.Code); def != nil {
			e.attrs[def.Name] = t.Value
			last = def.Name
			continue
		}
		e.unknown = append(e.unknown, unknownTag{after: last, tag: t})
	}
	return nil
}

// flatPayloadKey maps a payload code to the subclass which owns it, so
// that codecs see the same keys on both parse paths.
func (e *Entity) flatPayloadKey(code int) string {
	for name := range e.schema.payload {
		if e.schema.payloadCode(name, code) {
			return name
		}
	}
	return ""
}

func (e *Entity) loadAttrs(scDef *SubclassDef, tags Tags, payload map[string]Tags) {
	queue := make(attrQueue)
	for j := range scDef.Attrs {
		if !scDef.Attrs[j].isPayloadMark() {
			queue.add(&scDef.Attrs[j])
		}
	}

	last := ""
	for _, t := range tags {
		if scDef.Name == "" && skipInBaseClass(t, e.typ) {
			continue
		}
		if e.schema.payloadCode(scDef.Name, t.Code) {
			payload[scDef.Name] = append(payload[scDef.Name], t)
			continue
		}
		if def := queue.take(t.Code); def != nil {
			e.attrs[def.Name] = t.Value
			last = def.Name
			continue
		}
		e.unknown = append(e.unknown, unknownTag{subclass: scDef.Name, after: last, tag: t})
	}
}

func cloneTagLists(in []Tags) []Tags {
	if in == nil {
		return nil
	}
	out := make([]Tags, len(in))
	for i, tt := range in {
		out[i] = tt.Clone()
	}
	return out
}
