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

// Package dxf provides support for reading and writing DXF files.
//
// This package treats DXF files as streams of (group code, value) tags
// which are assembled into a drawing: header variables, symbol tables,
// block definitions, graphical entities and non-graphical objects,
// cross-linked by handles through a per-document database.
//
// A drawing can be loaded from a file:
//
//	doc, err := dxf.Open("in.dxf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, e := range doc.Entities {
//	    ... inspect the entities of the model space ...
//	}
//
// and written back out, optionally targeting a different DXF version:
//
//	err = doc.WriteFile("out.dxf", &dxf.WriterOptions{Version: dxf.R2000})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Both text and binary encoded DXF files are read; output is always
// text.  Tags which are not modeled by the entity schemas are preserved
// verbatim, so that drawings from newer DXF revisions survive a
// read/write cycle unchanged.
package dxf
