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

import "strconv"

// Version represents a revision of the DXF file format.
type Version int

// DXF versions supported by this library.  The names follow the AutoCAD
// release names; the on-disk tokens ("AC1009" etc.) are returned by the
// String method.
const (
	_ Version = iota
	R12
	R13
	R14
	R2000
	R2004
	R2007
	R2010
	R2013
	R2018
	tooHighVersion
)

var versionTokens = map[Version]string{
	R12:   "AC1009",
	R13:   "AC1012",
	R14:   "AC1014",
	R2000: "AC1015",
	R2004: "AC1018",
	R2007: "AC1021",
	R2010: "AC1024",
	R2013: "AC1027",
	R2018: "AC1032",
}

var versionNames = map[Version]string{
	R12:   "R12",
	R13:   "R13",
	R14:   "R14",
	R2000: "R2000",
	R2004: "R2004",
	R2007: "R2007",
	R2010: "R2010",
	R2013: "R2013",
	R2018: "R2018",
}

// ParseVersion parses a DXF version string.  Both the $ACADVER tokens
// ("AC1009" ... "AC1032") and the release names ("R12" ... "R2018") are
// accepted.  Tokens of intermediate AutoCAD releases which did not change
// the file format are mapped to the nearest supported version.
func ParseVersion(s string) (Version, error) {
	switch s {
	// ACAD releases 13c3 and 14.01 bumped the token without changing
	// the format in a way that matters here.
	case "AC1013":
		return R13, nil
	case "AC1500":
		return R2000, nil
	}
	for ver, token := range versionTokens {
		if s == token {
			return ver, nil
		}
	}
	for ver, name := range versionNames {
		if s == name {
			return ver, nil
		}
	}
	return 0, errVersion
}

// ToString returns the $ACADVER token for ver, e.g. "AC1015".
// If ver is not a supported DXF version, an error is returned.
func (ver Version) ToString() (string, error) {
	token, ok := versionTokens[ver]
	if !ok {
		return "", errVersion
	}
	return token, nil
}

func (ver Version) String() string {
	token, err := ver.ToString()
	if err != nil {
		token = "dxf.Version(" + strconv.Itoa(int(ver)) + ")"
	}
	return token
}

// Release returns the AutoCAD release name for ver, e.g. "R2000".
func (ver Version) Release() string {
	name, ok := versionNames[ver]
	if !ok {
		return "unknown"
	}
	return name
}
