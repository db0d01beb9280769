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

// DictEntry is one name/handle pair of a DICTIONARY object.
type DictEntry struct {
	Name   string
	Handle Handle

	// Hard records whether the entry was stored as a hard-owner
	// reference (group code 360) rather than soft (350).
	Hard bool
}

// DictionaryData is the entry list of a DICTIONARY object.
type DictionaryData struct {
	Entries []DictEntry

	// hardOwner mirrors the dictionary's hard-owner flag (group code
	// 280): when set, even soft entries protect their targets.
	hardOwner bool
}

// Find returns the handle stored under the given name.
func (d *DictionaryData) Find(name string) (Handle, bool) {
	for _, e := range d.Entries {
		if e.Name == name {
			return e.Handle, true
		}
	}
	return NoHandle, false
}

// Put adds or replaces the entry for the given name.
func (d *DictionaryData) Put(name string, h Handle, hard bool) {
	for i := range d.Entries {
		if d.Entries[i].Name == name {
			d.Entries[i].Handle = h
			d.Entries[i].Hard = hard
			return
		}
	}
	d.Entries = append(d.Entries, DictEntry{Name: name, Handle: h, Hard: hard})
}

// Remove deletes the entry for the given name.
func (d *DictionaryData) Remove(name string) bool {
	for i := range d.Entries {
		if d.Entries[i].Name == name {
			d.Entries = append(d.Entries[:i], d.Entries[i+1:]...)
			return true
		}
	}
	return false
}

func (d *DictionaryData) hardRefs() []Handle {
	var out []Handle
	for _, e := range d.Entries {
		if e.Hard || d.hardOwner {
			out = append(out, e.Handle)
		}
	}
	return out
}

const subclassDictionary = "AcDbDictionary"

func dictionaryPayloadCode(code int) bool {
	switch code {
	case 3, 350, 360:
		return true
	}
	return false
}

func decodeDictionary(e *Entity, payload map[string]Tags) error {
	data := &DictionaryData{}
	var name string
	haveName := false
	for _, t := range payload[subclassDictionary] {
		switch t.Code {
		case 3:
			name = t.AsString()
			haveName = true
		case 350, 360:
			if !haveName {
				return &StructureError{
					Entity: e.describe(),
					Err:    errDictEntry,
				}
			}
			h, _ := t.AsHandle()
			data.Entries = append(data.Entries, DictEntry{
				Name:   name,
				Handle: h,
				Hard:   t.Code == 360,
			})
			haveName = false
		}
	}
	if flag, err := e.GetInt("hard_owner"); err == nil {
		data.hardOwner = flag != 0
	}
	e.Complex = data
	return nil
}

func encodeDictionary(e *Entity, subclass, mark string, tw *tagWriter) error {
	data, _ := e.Complex.(*DictionaryData)
	if data == nil {
		return nil
	}
	for _, entry := range data.Entries {
		if err := tw.writeString(3, entry.Name); err != nil {
			return err
		}
		code := 350
		if entry.Hard {
			code = 360
		}
		if err := tw.writeString(code, string(entry.Handle)); err != nil {
			return err
		}
	}
	return nil
}
