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

// Entity is a resolved, typed DXF database record: a graphical entity, a
// table entry or a non-graphical object.  Relationships to other records
// are stored as handles and resolved through the document's database.
type Entity struct {
	typ    string
	schema *Schema // nil for types not modeled by the schema registry

	handle Handle
	owner  Handle

	// attrs holds explicitly present attributes.  Absent optional
	// attributes are not stored; their defaults are substituted on read.
	attrs map[string]Value

	// unknown preserves tags whose group codes are not part of the
	// schema, in their original position, for round-tripping files from
	// newer DXF revisions.
	unknown []unknownTag

	// extra preserves whole subclasses not modeled by the schema.
	extra []Tags

	reactors []Handle // persistent reactor handles
	xdict    Handle   // extension dictionary, hard-owned
	appData  []Tags   // app data blocks other than reactors/xdict
	xdata    []Tags   // extended data, keyed by appid
	embedded []Tags   // embedded objects, stored verbatim

	// subAlias records, per schema subclass name, the alias marker which
	// actually appeared in the file, for faithful re-emission.
	subAlias map[string]string

	// raw holds the verbatim tag group for unmodeled entity types.
	raw *TagGroup

	// Complex holds the decoded variable-length payload of entities like
	// LWPOLYLINE, HATCH, MESH or SPLINE.  Its concrete type depends on
	// the entity type.
	Complex any

	// linked sub-entities: the VERTEX chain of a POLYLINE or the ATTRIB
	// chain of an INSERT, terminated by seqend
	sub    []*Entity
	seqend *Entity

	doc *Document // nil while unbound
}

type unknownTag struct {
	subclass string // name of the owning subclass, "" for the base class
	after    string // preceding schema attribute, "" for subclass start
	tag      Tag
}

// NewEntity creates an unbound entity of the given DXF type.  For types
// modeled by the schema registry the entity starts with all attributes
// absent; reading an absent optional attribute yields its default.
func NewEntity(dxftype string) *Entity {
	schema, _ := LookupSchema(dxftype)
	return &Entity{
		typ:    dxftype,
		schema: schema,
		attrs:  make(map[string]Value),
	}
}

// DXFType returns the entity's type string, e.g. "LINE".
func (e *Entity) DXFType() string {
	return e.typ
}

// Handle returns the entity's handle, or NoHandle if the entity has not
// been registered yet.
func (e *Entity) Handle() Handle {
	return e.handle
}

// Owner returns the handle of the owning container: a BLOCK_RECORD for
// graphical entities, a DICTIONARY for objects.
func (e *Entity) Owner() Handle {
	return e.owner
}

// IsGraphical reports whether the entity belongs to an entity space.
func (e *Entity) IsGraphical() bool {
	return e.schema != nil && e.schema.Graphical
}

// Has reports whether the attribute is explicitly present.  This
// distinguishes an absent optional attribute from one stored with its
// default value.
func (e *Entity) Has(name string) bool {
	_, ok := e.attrs[name]
	return ok
}

// Get returns the value of a DXF attribute.  Absent optional attributes
// yield their schema default; the default is substituted on read only and
// never stored.  Accessing an attribute which is not part of the entity's
// schema returns an *AttributeError.
func (e *Entity) Get(name string) (Value, error) {
	def, err := e.attrDef(name)
	if err != nil {
		return nil, err
	}
	if v, ok := e.attrs[name]; ok {
		return v, nil
	}
	if def.Default == nil {
		return nil, nil
	}
	return def.Default, nil
}

// Set stores a DXF attribute value.  Setting an attribute which is not in
// the entity's schema returns an *AttributeError; setting an attribute
// below its minimum DXF version while the entity is bound to a document
// returns a *VersionError (the value is stored anyway, the writer decides
// how to handle it).
func (e *Entity) Set(name string, v Value) error {
	def, err := e.attrDef(name)
	if err != nil {
		return err
	}
	if e.attrs == nil {
		e.attrs = make(map[string]Value)
	}
	e.attrs[name] = v
	if e.doc != nil && def.Min > e.doc.Version {
		return &VersionError{Name: name, Min: def.Min, Have: e.doc.Version}
	}
	return nil
}

// Delete removes an explicitly stored attribute.  Reading it afterwards
// yields the schema default again.
func (e *Entity) Delete(name string) error {
	if _, err := e.attrDef(name); err != nil {
		return err
	}
	delete(e.attrs, name)
	return nil
}

func (e *Entity) attrDef(name string) (*AttrDef, error) {
	if e.schema != nil {
		if def := e.schema.attr(name); def != nil {
			return def, nil
		}
	}
	return nil, &AttributeError{Type: e.typ, Name: name}
}

// GetString returns a string attribute.
func (e *Entity) GetString(name string) (string, error) {
	v, err := e.Get(name)
	if err != nil {
		return "", err
	}
	switch x := v.(type) {
	case String:
		return string(x), nil
	case Handle:
		return string(x), nil
	case nil:
		return "", nil
	}
	return Tag{Value: v}.AsString(), nil
}

// GetInt returns an integer attribute.
func (e *Entity) GetInt(name string) (int64, error) {
	v, err := e.Get(name)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, nil
	}
	x, _ := Tag{Value: v}.AsInt()
	return x, nil
}

// GetFloat returns a float attribute.
func (e *Entity) GetFloat(name string) (float64, error) {
	v, err := e.Get(name)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, nil
	}
	x, _ := Tag{Value: v}.AsFloat()
	return x, nil
}

// GetPoint returns a coordinate attribute.
func (e *Entity) GetPoint(name string) (Point, error) {
	v, err := e.Get(name)
	if err != nil {
		return Point{}, err
	}
	if p, ok := v.(Point); ok {
		return p, nil
	}
	return Point{}, nil
}

// GetHandle returns a handle-valued attribute.
func (e *Entity) GetHandle(name string) (Handle, error) {
	v, err := e.Get(name)
	if err != nil {
		return NoHandle, err
	}
	if h, ok := v.(Handle); ok {
		return h, nil
	}
	return NoHandle, nil
}

// Reactors returns the persistent reactor handles.
func (e *Entity) Reactors() []Handle {
	return e.reactors
}

// SetReactors replaces the persistent reactor handles.
func (e *Entity) SetReactors(handles []Handle) {
	e.reactors = handles
}

// ExtensionDict returns the handle of the extension dictionary, or
// NoHandle.
func (e *Entity) ExtensionDict() Handle {
	return e.xdict
}

// XData returns the extended data block for the given appid, without the
// leading (1001, appid) tag.
func (e *Entity) XData(appid string) (Tags, bool) {
	for _, block := range e.xdata {
		if len(block) > 0 {
			if s, ok := block[0].Value.(String); ok && string(s) == appid {
				return block[1:], true
			}
		}
	}
	return nil, false
}

// SetXData replaces or adds the extended data block for the given appid.
func (e *Entity) SetXData(appid string, tags Tags) {
	block := append(Tags{{Code: codeXData, Value: String(appid)}}, tags...)
	for i, old := range e.xdata {
		if len(old) > 0 {
			if s, ok := old[0].Value.(String); ok && string(s) == appid {
				e.xdata[i] = block
				return
			}
		}
	}
	e.xdata = append(e.xdata, block)
}

// SubEntities returns the linked sub-entity chain: the VERTEX entities of
// a POLYLINE or the ATTRIB entities of an INSERT.
func (e *Entity) SubEntities() []*Entity {
	return e.sub
}

// subclassMarker returns the marker name to emit for a schema subclass,
// honoring aliases seen on read.
func (e *Entity) subclassMarker(name string) string {
	if alias, ok := e.subAlias[name]; ok {
		return alias
	}
	return name
}

// SetSubclassMarker overrides the marker name emitted for a schema
// subclass, e.g. AcDb3dPolyline in place of AcDb2dPolyline.
func (e *Entity) SetSubclassMarker(name, alias string) {
	if e.subAlias == nil {
		e.subAlias = make(map[string]string)
	}
	if alias == name {
		delete(e.subAlias, name)
		return
	}
	e.subAlias[name] = alias
}

// describe names the entity for error messages, e.g. "LINE(#1C4)".
func (e *Entity) describe() string {
	name := e.typ
	if e.handle != NoHandle {
		name += "(#" + string(e.handle) + ")"
	}
	return name
}

func (e *Entity) String() string {
	return e.describe()
}
