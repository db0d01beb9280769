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

// Structural group codes.  The value type of every other group code is
// determined by the ranges in codeKind below.
const (
	codeStructure   = 0   // (0, name) starts a new entity or control tag
	codeSubclass    = 100 // (100, name) starts a subclass section
	codeEmbeddedObj = 101 // (101, "Embedded Object")
	codeAppData     = 102 // (102, "{APPID") ... (102, "}")
	codeXData       = 1001
	codeComment     = 999

	maxGroupCode = 1071
)

const embeddedObjStr = "Embedded Object"

// app data blocks with reserved meaning
const (
	acadReactors = "{ACAD_REACTORS"
	acadXDict    = "{ACAD_XDICTIONARY"
)

type valueKind int

const (
	kindString valueKind = iota
	kindInteger
	kindFloat
	kindBinary
	kindHandle
)

// codeKind returns the value type of a scalar group code.  Coordinate
// group codes report kindFloat; grouping x/y/z runs into Point values is
// the scanner's job (see isPointStart).
func codeKind(code int) valueKind {
	switch {
	case code == 5 || code == 105:
		return kindHandle
	case code >= 320 && code < 370, code >= 390 && code < 400,
		code == 480, code == 481, code == 1005:
		return kindHandle
	case code >= 10 && code < 60, code >= 110 && code < 150,
		code >= 210 && code < 240, code >= 460 && code < 470,
		code >= 1010 && code < 1060:
		return kindFloat
	case code >= 60 && code < 80, code >= 90 && code < 100,
		code >= 160 && code < 180, code >= 270 && code < 300,
		code >= 370 && code < 390, code >= 400 && code < 410,
		code >= 420 && code < 430, code >= 440 && code < 460,
		code >= 1060 && code <= 1071:
		return kindInteger
	case code >= 310 && code < 320, code == 1004:
		return kindBinary
	default:
		return kindString
	}
}

// isPointStart reports whether code starts an x, y[, z] coordinate run.
// Only the x codes are listed; y is always x+10 and z is x+20.
func isPointStart(code int) bool {
	switch {
	case code >= 10 && code <= 18:
		return true
	case code >= 110 && code <= 112:
		return true
	case code >= 210 && code <= 213:
		return true
	case code >= 1010 && code <= 1013:
		return true
	}
	return false
}

// RefKind classifies a handle reference by its group code.  Hard
// references protect the referent from being purged, soft references do
// not.  Owner references additionally express containment.
type RefKind int

const (
	RefNone      RefKind = iota
	RefArbitrary         // 320-329, taken "as is"
	RefSoftPointer
	RefHardPointer
	RefSoftOwner
	RefHardOwner
)

func refKindOf(code int) RefKind {
	switch {
	case code >= 320 && code < 330:
		return RefArbitrary
	case code >= 330 && code < 340, code == 1005:
		return RefSoftPointer
	case code >= 340 && code < 350, code >= 390 && code < 400,
		code == 480, code == 481:
		return RefHardPointer
	case code >= 350 && code < 360:
		return RefSoftOwner
	case code >= 360 && code < 370:
		return RefHardOwner
	}
	return RefNone
}

// Hard reports whether the reference kind protects the referent from
// being purged.
func (k RefKind) Hard() bool {
	return k == RefHardPointer || k == RefHardOwner
}

func (k RefKind) String() string {
	switch k {
	case RefArbitrary:
		return "arbitrary"
	case RefSoftPointer:
		return "soft-pointer"
	case RefHardPointer:
		return "hard-pointer"
	case RefSoftOwner:
		return "soft-owner"
	case RefHardOwner:
		return "hard-owner"
	}
	return "none"
}
