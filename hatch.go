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
	"errors"
	"fmt"

	"seehuhn.de/go/geom/vec"
)

// Hatch boundary path type flags (group code 92).
const (
	HatchPathExternal  = 1
	HatchPathPolyline  = 2
	HatchPathDerived   = 4
	HatchPathTextbox   = 8
	HatchPathOutermost = 16
)

// Hatch boundary edge types (group code 72 within a non-polyline path).
const (
	HatchEdgeLine    = 1
	HatchEdgeArc     = 2
	HatchEdgeEllipse = 3
	HatchEdgeSpline  = 4
)

// HatchData is the variable-length payload of a HATCH entity: boundary
// paths, pattern definition lines, seed points and the optional gradient
// record.
type HatchData struct {
	Paths   []HatchPath
	Pattern []HatchPatternLine
	Seeds   []vec.Vec2

	// Gradient holds the raw gradient tags (group codes 450-470, R2004+)
	// verbatim.
	Gradient Tags
}

// HatchPath is one boundary path.  Either Polyline is set, or Edges.
type HatchPath struct {
	Type     int64 // combination of HatchPath* flags
	Polyline *HatchPolylinePath
	Edges    []HatchEdge

	// Source lists the handles of the entities this path was derived
	// from.  The references are soft: purging a source entity leaves
	// the path intact.
	Source []Handle
}

// HatchPolylinePath is a closed polyline boundary.
type HatchPolylinePath struct {
	HasBulge bool
	Closed   bool
	Vertices []HatchVertex
}

// HatchVertex is one vertex of a polyline boundary.
type HatchVertex struct {
	Point vec.Vec2
	Bulge float64
}

// HatchEdge is one edge of a non-polyline boundary path.  The fields
// used depend on Type.
type HatchEdge struct {
	Type int64

	Start vec.Vec2 // line start; center of arc and ellipse
	End   vec.Vec2 // line end; ellipse major axis endpoint, relative to center

	Radius     float64 // arc radius; ellipse minor/major ratio
	StartAngle float64
	EndAngle   float64
	CCW        bool

	// spline edges only
	Degree   int64
	Rational bool
	Periodic bool
	Knots    []float64
	Control  []vec.Vec2
	Weights  []float64
	Fit      []vec.Vec2
	StartTan vec.Vec2
	EndTan   vec.Vec2
}

// HatchPatternLine is one definition line of a hatch pattern.
type HatchPatternLine struct {
	Angle  float64
	Base   vec.Vec2
	Offset vec.Vec2
	Dashes []float64
}

const subclassHatch = "AcDbHatch"

func hatchPayloadCode(code int) bool {
	// the whole subclass belongs to the codec
	return true
}

// tagCursor walks a tag list during positional decoding.
type tagCursor struct {
	tags Tags
	pos  int
	ent  string
}

func (c *tagCursor) done() bool {
	return c.pos >= len(c.tags)
}

func (c *tagCursor) peek() Tag {
	return c.tags[c.pos]
}

func (c *tagCursor) next() Tag {
	t := c.tags[c.pos]
	c.pos++
	return t
}

func (c *tagCursor) errf(format string, args ...any) error {
	return &StructureError{Entity: c.ent, Err: fmt.Errorf(format, args...)}
}

// expect consumes the next tag, which must have the given group code.
func (c *tagCursor) expect(code int) (Tag, error) {
	if c.done() {
		return Tag{}, c.errf("missing (%d, ...) tag", code)
	}
	t := c.next()
	if t.Code != code {
		return Tag{}, c.errf("expected group code %d, got %d", code, t.Code)
	}
	return t, nil
}

func (c *tagCursor) expectInt(code int) (int64, error) {
	t, err := c.expect(code)
	if err != nil {
		return 0, err
	}
	v, ok := t.AsInt()
	if !ok {
		return 0, c.errf("group code %d: integer value expected", code)
	}
	return v, nil
}

func (c *tagCursor) expectFloat(code int) (float64, error) {
	t, err := c.expect(code)
	if err != nil {
		return 0, err
	}
	v, ok := t.AsFloat()
	if !ok {
		return 0, c.errf("group code %d: float value expected", code)
	}
	return v, nil
}

func (c *tagCursor) expectVertex(code int) (vec.Vec2, error) {
	t, err := c.expect(code)
	if err != nil {
		return vec.Vec2{}, err
	}
	p, ok := t.Value.(Point)
	if !ok {
		return vec.Vec2{}, c.errf("group code %d: point expected", code)
	}
	return vec.Vec2{X: p.X, Y: p.Y}, nil
}

// takeInt consumes an optional (code, int) tag.
func (c *tagCursor) takeInt(code int, dst *int64) bool {
	if c.done() || c.peek().Code != code {
		return false
	}
	*dst, _ = c.next().AsInt()
	return true
}

func (c *tagCursor) takeFloat(code int, dst *float64) bool {
	if c.done() || c.peek().Code != code {
		return false
	}
	*dst, _ = c.next().AsFloat()
	return true
}

func decodeHatch(e *Entity, payload map[string]Tags) error {
	data := &HatchData{}
	cur := &tagCursor{tags: payload[subclassHatch], ent: e.describe()}

	for !cur.done() {
		t := cur.next()
		switch t.Code {
		case 10:
			if p, ok := t.Value.(Point); ok {
				e.attrs["elevation"] = Float(p.Z)
			}
		case 210:
			e.attrs["extrusion"] = t.Value
		case 2:
			e.attrs["pattern_name"] = t.Value
		case 70:
			e.attrs["solid_fill"] = t.Value
		case 71:
			e.attrs["associative"] = t.Value
		case 75:
			e.attrs["style"] = t.Value
		case 76:
			e.attrs["pattern_type"] = t.Value
		case 52:
			e.attrs["pattern_angle"] = t.Value
		case 41:
			e.attrs["pattern_scale"] = t.Value
		case 77:
			e.attrs["pattern_double"] = t.Value
		case 47:
			e.attrs["pixel_size"] = t.Value
		case 91:
			// the path count is ignored, the block is delimited by
			// its group codes and recounted on write
			var boundary Tags
			for !cur.done() && hatchBoundaryCode(cur.peek().Code) {
				boundary = append(boundary, cur.next())
			}
			paths, err := decodeHatchPaths(boundary, cur.ent)
			if err != nil {
				return err
			}
			data.Paths = paths
		case 78:
			n, _ := t.AsInt()
			for i := int64(0); i < n; i++ {
				line, err := decodeHatchPatternLine(cur)
				if err != nil {
					return err
				}
				data.Pattern = append(data.Pattern, line)
			}
		case 98:
			n, _ := t.AsInt()
			for i := int64(0); i < n; i++ {
				pt, err := cur.expectVertex(10)
				if err != nil {
					return err
				}
				data.Seeds = append(data.Seeds, pt)
			}
		default:
			if t.Code >= 450 && t.Code <= 470 {
				data.Gradient = append(data.Gradient, t)
			} else {
				e.unknown = append(e.unknown,
					unknownTag{subclass: subclassHatch, tag: t})
			}
		}
	}

	e.Complex = data
	return nil
}

// hatchBoundaryCode reports whether a group code can occur inside the
// boundary path block following the (91, n) tag.
func hatchBoundaryCode(code int) bool {
	switch code {
	case 92, 93, 97, 330, 72, 73, 74, 94, 95, 96,
		40, 42, 50, 51, 10, 11, 12, 13:
		return true
	}
	return false
}

// decodeHatchPaths splits the boundary block at its (92, flags) tags.
func decodeHatchPaths(tags Tags, ent string) ([]HatchPath, error) {
	var paths []HatchPath
	pos := 0
	for pos < len(tags) {
		if tags[pos].Code != 92 {
			return nil, &StructureError{
				Entity: ent,
				Err:    fmt.Errorf("expected group code 92, got %d", tags[pos].Code),
			}
		}
		end := pos + 1
		for end < len(tags) && tags[end].Code != 92 {
			end++
		}
		path, err := decodeHatchPath(tags[pos:end], ent)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
		pos = end
	}
	return paths, nil
}

func decodeHatchPath(tags Tags, ent string) (HatchPath, error) {
	var path HatchPath
	flags, ok := tags[0].AsInt()
	if !ok {
		return path, &StructureError{
			Entity: ent,
			Err:    errors.New("group code 92: integer value expected"),
		}
	}
	path.Type = flags
	body := tags[1:]

	// the source entity handles trail the path: (97, n), then n
	// (330, ...) tags
	cut := len(body)
	for cut > 0 && body[cut-1].Code == 330 {
		cut--
	}
	if cut > 0 && body[cut-1].Code == 97 {
		for _, t := range body[cut:] {
			if h, ok := t.AsHandle(); ok {
				path.Source = append(path.Source, h)
			}
		}
		body = body[:cut-1]
	}

	if flags&HatchPathPolyline != 0 {
		pl, err := decodeHatchPolyline(body, ent)
		if err != nil {
			return path, err
		}
		path.Polyline = pl
	} else {
		edges, err := decodeHatchEdges(body, ent)
		if err != nil {
			return path, err
		}
		path.Edges = edges
	}
	return path, nil
}

func decodeHatchPolyline(tags Tags, ent string) (*HatchPolylinePath, error) {
	cur := &tagCursor{tags: tags, ent: ent}
	pl := &HatchPolylinePath{}
	var hasBulge, closed int64
	cur.takeInt(72, &hasBulge)
	cur.takeInt(73, &closed)
	pl.HasBulge = hasBulge != 0
	pl.Closed = closed != 0
	n, err := cur.expectInt(93)
	if err != nil {
		return nil, err
	}
	for i := int64(0); i < n; i++ {
		var v HatchVertex
		v.Point, err = cur.expectVertex(10)
		if err != nil {
			return nil, err
		}
		cur.takeFloat(42, &v.Bulge)
		pl.Vertices = append(pl.Vertices, v)
	}
	return pl, nil
}

// decodeHatchEdges splits an edge path at its (72, type) tags.  The
// (93, n) edge count is ignored, like all other counts on read.
func decodeHatchEdges(tags Tags, ent string) ([]HatchEdge, error) {
	var edges []HatchEdge
	pos := 0
	for pos < len(tags) && tags[pos].Code == 93 {
		pos++
	}
	for pos < len(tags) {
		if tags[pos].Code != 72 {
			return nil, &StructureError{
				Entity: ent,
				Err:    fmt.Errorf("expected group code 72, got %d", tags[pos].Code),
			}
		}
		end := pos + 1
		for end < len(tags) && tags[end].Code != 72 {
			end++
		}
		edge, err := decodeHatchEdge(tags[pos:end], ent)
		if err != nil {
			return nil, err
		}
		edges = append(edges, edge)
		pos = end
	}
	return edges, nil
}

// decodeHatchEdge is tag-driven: fit points and tangents of spline
// edges are optional, and the trailing (97, 0) fit count written by
// R2010+ appears with no fit data at all.
func decodeHatchEdge(tags Tags, ent string) (HatchEdge, error) {
	var edge HatchEdge
	etype, _ := tags[0].AsInt()
	switch etype {
	case HatchEdgeLine, HatchEdgeArc, HatchEdgeEllipse, HatchEdgeSpline:
	default:
		return edge, &StructureError{
			Entity: ent,
			Err:    fmt.Errorf("unknown hatch edge type %d", etype),
		}
	}
	edge.Type = etype
	spline := etype == HatchEdgeSpline

	for _, t := range tags[1:] {
		switch t.Code {
		case 10, 11, 12, 13:
			p, ok := t.Value.(Point)
			if !ok {
				return edge, &StructureError{Entity: ent, Err: ErrMalformedPoint}
			}
			v := vec.Vec2{X: p.X, Y: p.Y}
			switch {
			case t.Code == 10 && spline:
				edge.Control = append(edge.Control, v)
			case t.Code == 10:
				edge.Start = v
			case t.Code == 11 && spline:
				edge.Fit = append(edge.Fit, v)
			case t.Code == 11:
				edge.End = v
			case t.Code == 12:
				edge.StartTan = v
			case t.Code == 13:
				edge.EndTan = v
			}
		case 40:
			v, _ := t.AsFloat()
			if spline {
				edge.Knots = append(edge.Knots, v)
			} else {
				edge.Radius = v
			}
		case 42:
			v, _ := t.AsFloat()
			edge.Weights = append(edge.Weights, v)
		case 50:
			edge.StartAngle, _ = t.AsFloat()
		case 51:
			edge.EndAngle, _ = t.AsFloat()
		case 73:
			v, _ := t.AsInt()
			if spline {
				edge.Rational = v != 0
			} else {
				edge.CCW = v != 0
			}
		case 74:
			v, _ := t.AsInt()
			edge.Periodic = v != 0
		case 94:
			edge.Degree, _ = t.AsInt()
		case 95, 96, 97:
			// counts, recomputed on write
		}
	}
	return edge, nil
}

func decodeHatchPatternLine(cur *tagCursor) (HatchPatternLine, error) {
	var line HatchPatternLine
	var err error
	if line.Angle, err = cur.expectFloat(53); err != nil {
		return line, err
	}
	var bx, by, ox, oy float64
	if bx, err = cur.expectFloat(43); err != nil {
		return line, err
	}
	if by, err = cur.expectFloat(44); err != nil {
		return line, err
	}
	if ox, err = cur.expectFloat(45); err != nil {
		return line, err
	}
	if oy, err = cur.expectFloat(46); err != nil {
		return line, err
	}
	line.Base = vec.Vec2{X: bx, Y: by}
	line.Offset = vec.Vec2{X: ox, Y: oy}
	nDash, err := cur.expectInt(79)
	if err != nil {
		return line, err
	}
	for i := int64(0); i < nDash; i++ {
		d, err := cur.expectFloat(49)
		if err != nil {
			return line, err
		}
		line.Dashes = append(line.Dashes, d)
	}
	return line, nil
}

func encodeHatch(e *Entity, subclass, mark string, tw *tagWriter) error {
	data, _ := e.Complex.(*HatchData)
	if data == nil {
		data = &HatchData{}
	}

	elev, err := e.GetFloat("elevation")
	if err != nil {
		return err
	}
	if err := tw.writeTag(Tag{Code: 10, Value: Point{Z: elev}}); err != nil {
		return err
	}
	extr, err := e.GetPoint("extrusion")
	if err != nil {
		return err
	}
	if err := tw.writeTag(Tag{Code: 210, Value: extr}); err != nil {
		return err
	}
	name, err := e.GetString("pattern_name")
	if err != nil {
		return err
	}
	if err := tw.writeString(2, name); err != nil {
		return err
	}
	solid, err := e.GetInt("solid_fill")
	if err != nil {
		return err
	}
	if err := tw.writeInt(70, solid); err != nil {
		return err
	}
	assoc, err := e.GetInt("associative")
	if err != nil {
		return err
	}
	if err := tw.writeInt(71, assoc); err != nil {
		return err
	}

	if err := tw.writeInt(91, int64(len(data.Paths))); err != nil {
		return err
	}
	for i := range data.Paths {
		if err := encodeHatchPath(&data.Paths[i], tw); err != nil {
			return err
		}
	}

	style, err := e.GetInt("style")
	if err != nil {
		return err
	}
	if err := tw.writeInt(75, style); err != nil {
		return err
	}
	ptype, err := e.GetInt("pattern_type")
	if err != nil {
		return err
	}
	if err := tw.writeInt(76, ptype); err != nil {
		return err
	}

	if solid == 0 {
		angle, err := e.GetFloat("pattern_angle")
		if err != nil {
			return err
		}
		if err := tw.writeFloat(52, angle); err != nil {
			return err
		}
		scale, err := e.GetFloat("pattern_scale")
		if err != nil {
			return err
		}
		if err := tw.writeFloat(41, scale); err != nil {
			return err
		}
		double, err := e.GetInt("pattern_double")
		if err != nil {
			return err
		}
		if err := tw.writeInt(77, double); err != nil {
			return err
		}
		if err := tw.writeInt(78, int64(len(data.Pattern))); err != nil {
			return err
		}
		for i := range data.Pattern {
			if err := encodeHatchPatternLine(&data.Pattern[i], tw); err != nil {
				return err
			}
		}
	}

	if e.Has("pixel_size") {
		px, err := e.GetFloat("pixel_size")
		if err != nil {
			return err
		}
		if err := tw.writeFloat(47, px); err != nil {
			return err
		}
	}
	if err := tw.writeInt(98, int64(len(data.Seeds))); err != nil {
		return err
	}
	for _, s := range data.Seeds {
		if err := tw.writeVertex2(10, s.X, s.Y); err != nil {
			return err
		}
	}
	if tw.version >= R2004 {
		if err := tw.writeTags(data.Gradient); err != nil {
			return err
		}
	}
	return nil
}

func encodeHatchPath(path *HatchPath, tw *tagWriter) error {
	if err := tw.writeInt(92, path.Type); err != nil {
		return err
	}
	if path.Type&HatchPathPolyline != 0 {
		pl := path.Polyline
		if pl == nil {
			return errors.New("polyline hatch path without vertex data")
		}
		if err := tw.writeInt(72, b2i(pl.HasBulge)); err != nil {
			return err
		}
		if err := tw.writeInt(73, b2i(pl.Closed)); err != nil {
			return err
		}
		if err := tw.writeInt(93, int64(len(pl.Vertices))); err != nil {
			return err
		}
		for _, v := range pl.Vertices {
			if err := tw.writeVertex2(10, v.Point.X, v.Point.Y); err != nil {
				return err
			}
			if pl.HasBulge {
				if err := tw.writeFloat(42, v.Bulge); err != nil {
					return err
				}
			}
		}
	} else {
		if err := tw.writeInt(93, int64(len(path.Edges))); err != nil {
			return err
		}
		for i := range path.Edges {
			if err := encodeHatchEdge(&path.Edges[i], tw); err != nil {
				return err
			}
		}
	}
	if err := tw.writeInt(97, int64(len(path.Source))); err != nil {
		return err
	}
	for _, h := range path.Source {
		if err := tw.writeString(330, string(h)); err != nil {
			return err
		}
	}
	return nil
}

func encodeHatchEdge(edge *HatchEdge, tw *tagWriter) error {
	if err := tw.writeInt(72, edge.Type); err != nil {
		return err
	}
	switch edge.Type {
	case HatchEdgeLine:
		if err := tw.writeVertex2(10, edge.Start.X, edge.Start.Y); err != nil {
			return err
		}
		return tw.writeVertex2(11, edge.End.X, edge.End.Y)
	case HatchEdgeArc, HatchEdgeEllipse:
		if err := tw.writeVertex2(10, edge.Start.X, edge.Start.Y); err != nil {
			return err
		}
		if edge.Type == HatchEdgeEllipse {
			if err := tw.writeVertex2(11, edge.End.X, edge.End.Y); err != nil {
				return err
			}
		}
		if err := tw.writeFloat(40, edge.Radius); err != nil {
			return err
		}
		if err := tw.writeFloat(50, edge.StartAngle); err != nil {
			return err
		}
		if err := tw.writeFloat(51, edge.EndAngle); err != nil {
			return err
		}
		return tw.writeInt(73, b2i(edge.CCW))
	case HatchEdgeSpline:
		if err := tw.writeInt(94, edge.Degree); err != nil {
			return err
		}
		if err := tw.writeInt(73, b2i(edge.Rational)); err != nil {
			return err
		}
		if err := tw.writeInt(74, b2i(edge.Periodic)); err != nil {
			return err
		}
		if err := tw.writeInt(95, int64(len(edge.Knots))); err != nil {
			return err
		}
		if err := tw.writeInt(96, int64(len(edge.Control))); err != nil {
			return err
		}
		for _, k := range edge.Knots {
			if err := tw.writeFloat(40, k); err != nil {
				return err
			}
		}
		for i, p := range edge.Control {
			if err := tw.writeVertex2(10, p.X, p.Y); err != nil {
				return err
			}
			if i < len(edge.Weights) {
				if err := tw.writeFloat(42, edge.Weights[i]); err != nil {
					return err
				}
			}
		}
		if len(edge.Fit) > 0 {
			if err := tw.writeInt(97, int64(len(edge.Fit))); err != nil {
				return err
			}
			for _, p := range edge.Fit {
				if err := tw.writeVertex2(11, p.X, p.Y); err != nil {
					return err
				}
			}
			if err := tw.writeVertex2(12, edge.StartTan.X, edge.StartTan.Y); err != nil {
				return err
			}
			return tw.writeVertex2(13, edge.EndTan.X, edge.EndTan.Y)
		}
		if tw.version >= R2010 {
			// a bare (97, 0) fit count is required by newer CAD versions
			return tw.writeInt(97, 0)
		}
		return nil
	default:
		return fmt.Errorf("unknown hatch edge type %d", edge.Type)
	}
}

func encodeHatchPatternLine(line *HatchPatternLine, tw *tagWriter) error {
	if err := tw.writeFloat(53, line.Angle); err != nil {
		return err
	}
	if err := tw.writeFloat(43, line.Base.X); err != nil {
		return err
	}
	if err := tw.writeFloat(44, line.Base.Y); err != nil {
		return err
	}
	if err := tw.writeFloat(45, line.Offset.X); err != nil {
		return err
	}
	if err := tw.writeFloat(46, line.Offset.Y); err != nil {
		return err
	}
	if err := tw.writeInt(79, int64(len(line.Dashes))); err != nil {
		return err
	}
	for _, d := range line.Dashes {
		if err := tw.writeFloat(49, d); err != nil {
			return err
		}
	}
	return nil
}

func b2i(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
