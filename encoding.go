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
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"
)

// Text in DXF files before R2007 is stored in the code page named by the
// $DWGCODEPAGE header variable; R2007 and later files are UTF-8.
// Characters outside the code page use the \U+nnnn escape convention.

var codePages = map[string]encoding.Encoding{
	"ANSI_874":  charmap.Windows874,
	"ANSI_932":  japanese.ShiftJIS,
	"ANSI_936":  simplifiedchinese.GBK,
	"ANSI_949":  korean.EUCKR,
	"ANSI_950":  traditionalchinese.Big5,
	"ANSI_1250": charmap.Windows1250,
	"ANSI_1251": charmap.Windows1251,
	"ANSI_1252": charmap.Windows1252,
	"ANSI_1253": charmap.Windows1253,
	"ANSI_1254": charmap.Windows1254,
	"ANSI_1255": charmap.Windows1255,
	"ANSI_1256": charmap.Windows1256,
	"ANSI_1257": charmap.Windows1257,
	"ANSI_1258": charmap.Windows1258,
}

// codePageEncoding returns the encoding for a $DWGCODEPAGE value.
// Unknown code pages fall back to ANSI_1252, the historical default.
func codePageEncoding(codepage string) encoding.Encoding {
	if enc, ok := codePages[strings.ToUpper(codepage)]; ok {
		return enc
	}
	return charmap.Windows1252
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// scanParameters inspects the HEADER section of raw text DXF data for the
// $ACADVER and $DWGCODEPAGE variables.  The scan treats the input as
// Latin-1, which is safe because both values are plain ASCII in every
// supported code page.
func scanParameters(data []byte) (Version, string) {
	version := R12
	codepage := "ANSI_1252"

	limit := len(data)
	if limit > 16*1024 {
		limit = 16 * 1024
	}
	lines := strings.Split(string(data[:limit]), "\n")
	for i := 0; i+2 < len(lines); i++ {
		name := strings.TrimSpace(lines[i])
		if name != "$ACADVER" && name != "$DWGCODEPAGE" {
			continue
		}
		value := strings.TrimSpace(lines[i+2])
		if name == "$ACADVER" {
			if v, err := ParseVersion(value); err == nil {
				version = v
			}
		} else {
			codepage = value
		}
	}
	return version, codepage
}

// decodingReader wraps raw file data in a reader that yields UTF-8 text.
// The DXF version and the declared code page are returned alongside.
func decodingReader(data []byte) (io.Reader, Version, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	version, codepage := scanParameters(data)
	if version >= R2007 {
		return bytes.NewReader(data), version, nil
	}
	dec := codePageEncoding(codepage).NewDecoder()
	return transform.NewReader(bytes.NewReader(data), dec), version, nil
}

// DecodeTextEscapes decodes the \U+nnnn escape convention embedded in DXF
// text back to native characters.  Invalid escapes are left verbatim.
func DecodeTextEscapes(s string) string {
	if !strings.Contains(s, `\U+`) && !strings.Contains(s, `\u+`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		if i+7 <= len(s) && s[i] == '\\' && (s[i+1] == 'U' || s[i+1] == 'u') && s[i+2] == '+' {
			if v, err := strconv.ParseUint(s[i+3:i+7], 16, 32); err == nil {
				b.WriteRune(rune(v))
				i += 7
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// EncodeTextEscapes replaces every rune which canEncode rejects with its
// \U+nnnn escape.  Runes outside the basic multilingual plane are encoded
// as surrogate pairs, matching the convention used by CAD applications.
func EncodeTextEscapes(s string, canEncode func(r rune) bool) string {
	var b strings.Builder
	for _, r := range s {
		if canEncode(r) {
			b.WriteRune(r)
			continue
		}
		if r > 0xFFFF {
			r1, r2 := utf16Split(r)
			fmt.Fprintf(&b, `\U+%04X\U+%04X`, r1, r2)
		} else {
			fmt.Fprintf(&b, `\U+%04X`, r)
		}
	}
	return b.String()
}

func utf16Split(r rune) (uint16, uint16) {
	r -= 0x10000
	return uint16(0xD800 + (r >> 10)), uint16(0xDC00 + (r & 0x3FF))
}

// textEncoder encodes UTF-8 strings into the target code page, escaping
// unsupported characters.  For R2007+ the identity encoder is used.
type textEncoder struct {
	enc *encoding.Encoder // nil for UTF-8 output
}

func newTextEncoder(version Version, codepage string) *textEncoder {
	if version >= R2007 {
		return &textEncoder{}
	}
	return &textEncoder{enc: codePageEncoding(codepage).NewEncoder()}
}

// Encode returns the byte representation of s in the target encoding.
func (e *textEncoder) Encode(s string) ([]byte, error) {
	if e.enc == nil {
		return []byte(s), nil
	}
	out, err := e.enc.Bytes([]byte(s))
	if err == nil {
		return out, nil
	}
	// retry with unsupported runes escaped
	escaped := EncodeTextEscapes(s, func(r rune) bool {
		_, err := e.enc.Bytes([]byte(string(r)))
		return err == nil
	})
	return e.enc.Bytes([]byte(escaped))
}
