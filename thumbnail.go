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
	"encoding/binary"
	"errors"
	"image"

	"golang.org/x/image/bmp"
)

// Thumbnail is the preview image of the THUMBNAILIMAGE section.  The
// data is a BMP image without the 14-byte BITMAPFILEHEADER, as stored
// in the file.
type Thumbnail struct {
	Data []byte
}

// Image decodes the thumbnail.  The missing BMP file header is
// reconstructed from the stored info header.
func (t *Thumbnail) Image() (image.Image, error) {
	if len(t.Data) < 18 {
		return nil, errors.New("thumbnail data too short")
	}
	infoSize := binary.LittleEndian.Uint32(t.Data[0:4])
	bitCount := binary.LittleEndian.Uint16(t.Data[14:16])
	var clrUsed uint32
	if len(t.Data) >= 36 {
		clrUsed = binary.LittleEndian.Uint32(t.Data[32:36])
	}
	if clrUsed == 0 && bitCount <= 8 {
		clrUsed = 1 << bitCount
	}
	offset := 14 + infoSize + 4*clrUsed

	var buf bytes.Buffer
	buf.WriteString("BM")
	var head [12]byte
	binary.LittleEndian.PutUint32(head[0:4], uint32(14+len(t.Data)))
	binary.LittleEndian.PutUint32(head[8:12], offset)
	buf.Write(head[:])
	buf.Write(t.Data)
	return bmp.Decode(&buf)
}

// readThumbnailSection parses the tags of a THUMBNAILIMAGE section.
func readThumbnailSection(tags Tags) (*Thumbnail, error) {
	var data []byte
	for _, t := range tags {
		switch t.Code {
		case 90:
			// declared byte count, recomputed on write
		case 310:
			if b, ok := t.Value.(Binary); ok {
				data = append(data, b...)
			}
		}
	}
	return &Thumbnail{Data: data}, nil
}

// thumbnailTags renders the section body: the byte count followed by
// the data in chunks of at most 128 bytes.
func (t *Thumbnail) thumbnailTags() Tags {
	tags := Tags{{Code: 90, Value: Integer(len(t.Data))}}
	data := t.Data
	for len(data) > 0 {
		n := len(data)
		if n > 128 {
			n = 128
		}
		chunk := make(Binary, n)
		copy(chunk, data[:n])
		tags = append(tags, Tag{Code: 310, Value: chunk})
		data = data[n:]
	}
	return tags
}
