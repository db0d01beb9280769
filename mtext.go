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

// Long MTEXT content is split into chunks on disk: any number of
// (3, ...) continuation tags followed by one final (1, ...) tag.  On
// read the chunks are joined into the single "text" attribute; on write
// the text is re-chunked.

const subclassMText = "AcDbMText"

// mtextChunkSize is the maximum chunk length used by CAD applications.
const mtextChunkSize = 250

func mtextPayloadCode(code int) bool {
	return code == 1 || code == 3
}

func decodeMText(e *Entity, payload map[string]Tags) error {
	var text string
	for _, t := range payload[subclassMText] {
		text += t.AsString()
	}
	e.attrs["text"] = String(text)
	return nil
}

func encodeMText(e *Entity, subclass, mark string, tw *tagWriter) error {
	text, err := e.GetString("text")
	if err != nil {
		return err
	}
	chunks, rest := splitMTextChunks(text)
	for _, chunk := range chunks {
		if err := tw.writeString(3, chunk); err != nil {
			return err
		}
	}
	return tw.writeString(1, rest)
}

// splitMTextChunks returns the (3, ...) continuation chunks and the
// remainder for the final (1, ...) tag.  Chunk boundaries never split a
// backslash or caret escape.
func splitMTextChunks(text string) ([]string, string) {
	var chunks []string
	for len(text) > mtextChunkSize {
		end := mtextChunkSize
		// keep escape introducers together with their payload
		for end > 0 && (text[end-1] == '\\' || text[end-1] == '^') {
			end--
		}
		if end == 0 {
			end = mtextChunkSize
		}
		chunks = append(chunks, text[:end])
		text = text[end:]
	}
	return chunks, text
}
