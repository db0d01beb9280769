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
	"sort"

	"golang.org/x/exp/maps"
)

// Entity types which never get a database entry.
var dbExclude = map[string]bool{
	"SECTION": true,
	"ENDSEC":  true,
	"EOF":     true,
	"TABLE":   true,
	"ENDTAB":  true,
	"CLASS":   true,
}

// DB is the entity database of one document: a handle-keyed arena of all
// records.  Handles are never reused while the document is open.
//
// A DB is not safe for concurrent mutation; one document load or save is
// a single logical transaction owned by one goroutine.
type DB struct {
	entities map[Handle]*Entity
	gen      handleGenerator
}

// NewDB creates an empty entity database.
func NewDB() *DB {
	return &DB{entities: make(map[Handle]*Entity)}
}

// Len returns the number of registered entities.
func (db *DB) Len() int {
	return len(db.entities)
}

// Register inserts an entity into the database, assigning a fresh handle
// if the entity has none.  Re-registering a handle which is already in
// use fails with a *DuplicateHandleError.
func (db *DB) Register(e *Entity) (Handle, error) {
	if dbExclude[e.DXFType()] {
		return NoHandle, nil
	}
	h := e.handle
	if h == NoHandle {
		h = db.NextHandle()
		e.handle = h
	} else {
		if old, exists := db.entities[h]; exists {
			if old == e {
				return h, nil
			}
			return NoHandle, &DuplicateHandleError{Handle: h}
		}
		db.gen.Bump(h)
	}
	db.entities[h] = e
	return h, nil
}

// Resolve returns the entity for a handle.  Dangling handles resolve to
// ErrNotFound; callers treating soft references must tolerate this.
func (db *DB) Resolve(h Handle) (*Entity, error) {
	if e, ok := db.entities[h]; ok {
		return e, nil
	}
	return nil, ErrNotFound
}

// Get returns the entity for a handle, or nil.
func (db *DB) Get(h Handle) *Entity {
	return db.entities[h]
}

// NextHandle returns a fresh, unused handle.
func (db *DB) NextHandle() Handle {
	for {
		h := db.gen.Next()
		if _, used := db.entities[h]; !used {
			return h
		}
	}
}

// Handles returns all registered handles in sorted order.
func (db *DB) Handles() []Handle {
	hh := maps.Keys(db.entities)
	sort.Slice(hh, func(i, j int) bool { return hh[i] < hh[j] })
	return hh
}

// SetOwner links an entity to its owning container.  Every entity has
// exactly one owner; a previous owner link is overwritten.  The owner
// handle is not validated eagerly, forward references are legal.
func (db *DB) SetOwner(e *Entity, owner Handle) {
	e.owner = owner
}

// hardRefHolder is implemented by complex payloads which hold hard
// references, for example dictionary entries.
type hardRefHolder interface {
	hardRefs() []Handle
}

// refsTo reports whether entity f holds a hard reference to target.
func refsTo(f *Entity, target Handle) bool {
	if f.xdict == target {
		return true // extension dictionaries are hard-owned
	}
	if f.schema != nil {
		for name, v := range f.attrs {
			h, ok := v.(Handle)
			if !ok || h != target {
				continue
			}
			if def := f.schema.attr(name); def != nil && refKindOf(def.Code).Hard() {
				return true
			}
		}
	}
	for _, u := range f.unknown {
		if h, ok := u.tag.AsHandle(); ok && h == target && refKindOf(u.tag.Code).Hard() {
			return true
		}
	}
	if f.raw != nil {
		for _, t := range f.raw.Tags() {
			if h, ok := t.AsHandle(); ok && h == target && refKindOf(t.Code).Hard() {
				return true
			}
		}
	}
	if holder, ok := f.Complex.(hardRefHolder); ok {
		for _, h := range holder.hardRefs() {
			if h == target {
				return true
			}
		}
	}
	return false
}

// HardReferrers returns the handles of all entities holding a hard
// reference to target, including its owning container.
func (db *DB) HardReferrers(target *Entity) []Handle {
	var res []Handle
	if target.owner != NoHandle {
		if owner, ok := db.entities[target.owner]; ok {
			res = append(res, owner.handle)
		}
	}
	for h, f := range db.entities {
		if f == target {
			continue
		}
		if refsTo(f, target.handle) {
			res = append(res, h)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}

// Purge removes an entity from the database.  The entity must not be
// protected: while its owning container or any hard pointer to it
// survives, Purge fails with a *ProtectedEntityError.  Soft references to
// a purged entity are left dangling and resolve to ErrNotFound.
func (db *DB) Purge(e *Entity) error {
	if e.handle == NoHandle {
		return nil
	}
	if refs := db.HardReferrers(e); len(refs) > 0 {
		return &ProtectedEntityError{Handle: e.handle, RefBy: refs}
	}
	delete(db.entities, e.handle)
	// sub-entities share the lifetime of their parent
	for _, sub := range e.sub {
		delete(db.entities, sub.handle)
	}
	if e.seqend != nil {
		delete(db.entities, e.seqend.handle)
	}
	return nil
}
