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
	"io"
	"strconv"
	"strings"
)

// Handle identifies a database object within one document.  Handles are
// hexadecimal strings without leading zeros, unique for the lifetime of
// the document.  The empty string means "no handle assigned yet".
type Handle string

// NoHandle is the zero value of Handle.
const NoHandle Handle = ""

// DXF implements the Value interface.
func (h Handle) DXF(w io.Writer) error {
	_, err := io.WriteString(w, string(h))
	return err
}

// IsValid reports whether h is a well-formed, non-null handle.
func (h Handle) IsValid() bool {
	if h == "" || h == "0" {
		return false
	}
	_, err := strconv.ParseUint(string(h), 16, 64)
	return err == nil
}

func makeHandle(v uint64) Handle {
	return Handle(strings.ToUpper(strconv.FormatUint(v, 16)))
}

// handleGenerator hands out monotonically increasing handles.  The seed is
// taken from the $HANDSEED header variable on load; authored documents
// start at 1.
type handleGenerator struct {
	next uint64
}

func (g *handleGenerator) Next() Handle {
	if g.next == 0 {
		g.next = 1
	}
	h := makeHandle(g.next)
	g.next++
	return h
}

// Bump makes sure the generator will not hand out h or any smaller handle
// again.
func (g *handleGenerator) Bump(h Handle) {
	v, err := strconv.ParseUint(string(h), 16, 64)
	if err != nil {
		return
	}
	if v >= g.next {
		g.next = v + 1
	}
}

// SetSeed restores the generator position from a $HANDSEED value, which
// names the next available handle.  The position never moves backwards.
func (g *handleGenerator) SetSeed(h Handle) {
	v, err := strconv.ParseUint(string(h), 16, 64)
	if err != nil {
		return
	}
	if v > g.next {
		g.next = v
	}
}

// Seed returns the next unused handle value without consuming it.  This is
// the value written back to $HANDSEED.
func (g *handleGenerator) Seed() Handle {
	if g.next == 0 {
		return makeHandle(1)
	}
	return makeHandle(g.next)
}
