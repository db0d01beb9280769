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

// This file holds the attribute tables of all modeled DXF types, in
// subclass emission order.  Attribute names follow the DXF reference
// terminology in lower_snake_case.

// req declares a required attribute without a default.
func req(name string, code int) AttrDef {
	return AttrDef{Name: name, Code: code}
}

// def declares an attribute which is always written but falls back to a
// default when absent on read.
func def(name string, code int, v Value) AttrDef {
	return AttrDef{Name: name, Code: code, Default: v}
}

// opt declares an attribute which is omitted on write when unset or
// equal to its default.
func opt(name string, code int, v Value) AttrDef {
	return AttrDef{Name: name, Code: code, Default: v, Optional: true}
}

// since gates an attribute to a minimum DXF version.
func since(d AttrDef, v Version) AttrDef {
	d.Min = v
	return d
}

var defaultExtrusion = Point{X: 0, Y: 0, Z: 1}

// acDbEntity returns the shared attribute list of all graphical
// entities.  Each schema gets its own copy.
func acDbEntity() SubclassDef {
	return SubclassDef{
		Name: "AcDbEntity",
		Attrs: []AttrDef{
			opt("paperspace", 67, Integer(0)),
			def("layer", 8, String("0")),
			opt("linetype", 6, String("ByLayer")),
			opt("color", 62, Integer(256)),
			since(opt("lineweight", 370, Integer(-1)), R2000),
			opt("linetype_scale", 48, Float(1)),
			opt("invisible", 60, Integer(0)),
			since(opt("true_color", 420, nil), R2004),
			since(opt("color_name", 430, nil), R2004),
			since(opt("transparency", 440, nil), R2004),
			since(opt("plotstyle", 390, nil), R2000),
			since(opt("material", 347, nil), R2007),
			since(opt("shadow_mode", 284, nil), R2007),
		},
	}
}

func graphical(typ string, min Version, subclasses ...SubclassDef) *Schema {
	all := append([]SubclassDef{{Name: ""}, acDbEntity()}, subclasses...)
	return &Schema{Type: typ, Min: min, Graphical: true, Subclasses: all}
}

func tableRecord(typ, subclass string, attrs ...AttrDef) *Schema {
	return &Schema{
		Type: typ,
		Subclasses: []SubclassDef{
			{Name: ""},
			{Name: "AcDbSymbolTableRecord"},
			{Name: subclass, Attrs: attrs},
		},
	}
}

func init() {
	registerSchema(graphical("LINE", 0, SubclassDef{
		Name: "AcDbLine",
		Attrs: []AttrDef{
			opt("thickness", 39, Float(0)),
			req("start", 10),
			req("end", 11),
			opt("extrusion", 210, defaultExtrusion),
		},
	}))

	registerSchema(graphical("POINT", 0, SubclassDef{
		Name: "AcDbPoint",
		Attrs: []AttrDef{
			opt("thickness", 39, Float(0)),
			req("location", 10),
			opt("angle", 50, Float(0)),
			opt("extrusion", 210, defaultExtrusion),
		},
	}))

	registerSchema(graphical("CIRCLE", 0, SubclassDef{
		Name: "AcDbCircle",
		Attrs: []AttrDef{
			opt("thickness", 39, Float(0)),
			req("center", 10),
			req("radius", 40),
			opt("extrusion", 210, defaultExtrusion),
		},
	}))

	registerSchema(graphical("ARC", 0,
		SubclassDef{
			Name: "AcDbCircle",
			Attrs: []AttrDef{
				opt("thickness", 39, Float(0)),
				req("center", 10),
				req("radius", 40),
				opt("extrusion", 210, defaultExtrusion),
			},
		},
		SubclassDef{
			Name: "AcDbArc",
			Attrs: []AttrDef{
				def("start_angle", 50, Float(0)),
				def("end_angle", 51, Float(360)),
			},
		},
	))

	registerSchema(graphical("ELLIPSE", R13, SubclassDef{
		Name: "AcDbEllipse",
		Attrs: []AttrDef{
			req("center", 10),
			req("major_axis", 11),
			opt("extrusion", 210, defaultExtrusion),
			def("ratio", 40, Float(1)),
			def("start_param", 41, Float(0)),
			def("end_param", 42, Float(6.283185307179586)),
		},
	}))

	registerSchema(graphical("XLINE", R13, SubclassDef{
		Name: "AcDbXline",
		Attrs: []AttrDef{
			req("start", 10),
			req("unit_vector", 11),
		},
	}))

	registerSchema(graphical("RAY", R13, SubclassDef{
		Name: "AcDbRay",
		Attrs: []AttrDef{
			req("start", 10),
			req("unit_vector", 11),
		},
	}))

	// TEXT splits its attributes over two subclasses which share the
	// AcDbText marker.
	registerSchema(graphical("TEXT", 0,
		SubclassDef{
			Name: "AcDbText",
			Attrs: []AttrDef{
				opt("thickness", 39, Float(0)),
				req("insert", 10),
				req("height", 40),
				def("text", 1, String("")),
				opt("rotation", 50, Float(0)),
				opt("width", 41, Float(1)),
				opt("oblique", 51, Float(0)),
				opt("style", 7, String("Standard")),
				opt("text_generation_flag", 71, Integer(0)),
				opt("halign", 72, Integer(0)),
				opt("align_point", 11, nil),
				opt("extrusion", 210, defaultExtrusion),
			},
		},
		SubclassDef{
			Name: "AcDbText",
			Attrs: []AttrDef{
				opt("valign", 73, Integer(0)),
			},
		},
	))

	textPartial := func() SubclassDef {
		return SubclassDef{
			Name: "AcDbText",
			Attrs: []AttrDef{
				opt("thickness", 39, Float(0)),
				req("insert", 10),
				req("height", 40),
				def("text", 1, String("")),
				opt("rotation", 50, Float(0)),
				opt("width", 41, Float(1)),
				opt("oblique", 51, Float(0)),
				opt("style", 7, String("Standard")),
				opt("text_generation_flag", 71, Integer(0)),
				opt("halign", 72, Integer(0)),
				opt("align_point", 11, nil),
				opt("extrusion", 210, defaultExtrusion),
			},
		}
	}

	registerSchema(graphical("ATTRIB", 0,
		textPartial(),
		SubclassDef{
			Name: "AcDbAttribute",
			Attrs: []AttrDef{
				since(opt("attrib_version", 280, Integer(0)), R2010),
				req("tag", 2),
				def("flags", 70, Integer(0)),
				opt("field_length", 73, Integer(0)),
				opt("valign", 74, Integer(0)),
				since(opt("lock_position", 280, Integer(0)), R2010),
			},
		},
	))

	registerSchema(graphical("ATTDEF", 0,
		textPartial(),
		SubclassDef{
			Name: "AcDbAttributeDefinition",
			Attrs: []AttrDef{
				since(opt("attdef_version", 280, Integer(0)), R2010),
				def("prompt", 3, String("")),
				req("tag", 2),
				def("flags", 70, Integer(0)),
				opt("field_length", 73, Integer(0)),
				opt("valign", 74, Integer(0)),
				since(opt("lock_position", 280, Integer(0)), R2010),
			},
		},
	))

	mtext := graphical("MTEXT", R13, SubclassDef{
		Name: subclassMText,
		Attrs: []AttrDef{
			req("insert", 10),
			req("char_height", 40),
			opt("width", 41, Float(0)),
			since(opt("defined_height", 46, Float(0)), R2007),
			def("attachment_point", 71, Integer(1)),
			def("flow_direction", 72, Integer(1)),
			payloadMark("text"),
			opt("style", 7, String("Standard")),
			opt("extrusion", 210, defaultExtrusion),
			opt("text_direction", 11, nil),
			opt("rect_width", 42, nil),
			opt("rect_height", 43, nil),
			opt("rotation", 50, Float(0)),
			opt("line_spacing_style", 73, Integer(1)),
			opt("line_spacing_factor", 44, Float(1)),
			since(opt("box_fill_scale", 45, Float(1.5)), R2007),
			since(opt("bg_fill", 90, Integer(0)), R2007),
			since(opt("bg_fill_color", 63, Integer(256)), R2007),
			since(opt("bg_fill_true_color", 421, nil), R2007),
			since(opt("bg_fill_color_name", 431, nil), R2007),
			since(opt("bg_fill_transparency", 441, nil), R2007),
		},
	})
	mtext.payload = map[string]func(int) bool{subclassMText: mtextPayloadCode}
	mtext.decode = decodeMText
	mtext.encode = encodeMText
	registerSchema(mtext)

	lwpolyline := graphical("LWPOLYLINE", R14, SubclassDef{
		Name: subclassPolyline,
		Attrs: []AttrDef{
			payloadMark("count"),
			def("flags", 70, Integer(0)),
			opt("const_width", 43, Float(0)),
			opt("elevation", 38, Float(0)),
			opt("thickness", 39, Float(0)),
			payloadMark("vertices"),
			opt("extrusion", 210, defaultExtrusion),
		},
	})
	lwpolyline.payload = map[string]func(int) bool{subclassPolyline: lwpolylinePayloadCode}
	lwpolyline.decode = decodeLWPolyline
	lwpolyline.encode = encodeLWPolyline
	registerSchema(lwpolyline)

	registerSchema(graphical("POLYLINE", 0, SubclassDef{
		Name: "AcDb2dPolyline",
		Aliases: []string{
			"AcDb3dPolyline",
			"AcDbPolyFaceMesh",
			"AcDbPolygonMesh",
		},
		Attrs: []AttrDef{
			opt("entities_follow", 66, Integer(1)),
			def("elevation", 10, Point{}),
			opt("thickness", 39, Float(0)),
			def("flags", 70, Integer(0)),
			opt("default_start_width", 40, Float(0)),
			opt("default_end_width", 41, Float(0)),
			opt("m_count", 71, Integer(0)),
			opt("n_count", 72, Integer(0)),
			opt("m_smooth_density", 73, Integer(0)),
			opt("n_smooth_density", 74, Integer(0)),
			opt("smooth_type", 75, Integer(0)),
			opt("extrusion", 210, defaultExtrusion),
		},
	}))

	registerSchema(graphical("VERTEX", 0,
		SubclassDef{Name: "AcDbVertex"},
		SubclassDef{
			Name: "AcDb2dVertex",
			Aliases: []string{
				"AcDb3dPolylineVertex",
				"AcDbPolygonMeshVertex",
				"AcDbPolyFaceMeshVertex",
				"AcDbFaceRecord",
			},
			Attrs: []AttrDef{
				req("location", 10),
				opt("start_width", 40, Float(0)),
				opt("end_width", 41, Float(0)),
				opt("bulge", 42, Float(0)),
				def("flags", 70, Integer(0)),
				opt("tangent", 50, Float(0)),
				opt("vtx0", 71, Integer(0)),
				opt("vtx1", 72, Integer(0)),
				opt("vtx2", 73, Integer(0)),
				opt("vtx3", 74, Integer(0)),
				since(opt("vertex_identifier", 91, Integer(0)), R2010),
			},
		},
	))

	registerSchema(graphical("SEQEND", 0))

	registerSchema(graphical("INSERT", 0, SubclassDef{
		Name:    "AcDbBlockReference",
		Aliases: []string{"AcDbMInsertBlock"},
		Attrs: []AttrDef{
			opt("attribs_follow", 66, Integer(0)),
			req("name", 2),
			req("insert", 10),
			opt("xscale", 41, Float(1)),
			opt("yscale", 42, Float(1)),
			opt("zscale", 43, Float(1)),
			opt("rotation", 50, Float(0)),
			opt("column_count", 70, Integer(1)),
			opt("row_count", 71, Integer(1)),
			opt("column_spacing", 44, Float(0)),
			opt("row_spacing", 45, Float(0)),
			opt("extrusion", 210, defaultExtrusion),
		},
	}))

	quad := func() []AttrDef {
		return []AttrDef{
			req("vtx0", 10),
			req("vtx1", 11),
			req("vtx2", 12),
			req("vtx3", 13),
		}
	}
	registerSchema(graphical("SOLID", 0, SubclassDef{
		Name: "AcDbTrace",
		Attrs: append(quad(),
			opt("thickness", 39, Float(0)),
			opt("extrusion", 210, defaultExtrusion)),
	}))
	registerSchema(graphical("TRACE", 0, SubclassDef{
		Name: "AcDbTrace",
		Attrs: append(quad(),
			opt("thickness", 39, Float(0)),
			opt("extrusion", 210, defaultExtrusion)),
	}))
	registerSchema(graphical("3DFACE", 0, SubclassDef{
		Name:  "AcDbFace",
		Attrs: append(quad(), opt("invisible_edges", 70, Integer(0))),
	}))

	spline := graphical("SPLINE", R13, SubclassDef{
		Name: subclassSpline,
		Attrs: []AttrDef{
			opt("extrusion", 210, defaultExtrusion),
			def("flags", 70, Integer(0)),
			def("degree", 71, Integer(3)),
			payloadMark("counts"),
			opt("knot_tolerance", 42, Float(1e-10)),
			opt("control_tolerance", 43, Float(1e-10)),
			opt("fit_tolerance", 44, Float(1e-10)),
			opt("start_tangent", 12, nil),
			opt("end_tangent", 13, nil),
			payloadMark("data"),
		},
	})
	spline.payload = map[string]func(int) bool{subclassSpline: splinePayloadCode}
	spline.decode = decodeSpline
	spline.encode = encodeSpline
	registerSchema(spline)

	hatch := graphical("HATCH", R14, SubclassDef{
		Name: subclassHatch,
		Attrs: []AttrDef{
			def("elevation", 10, Float(0)),
			def("extrusion", 210, defaultExtrusion),
			def("pattern_name", 2, String("ANSI31")),
			def("solid_fill", 70, Integer(0)),
			def("associative", 71, Integer(0)),
			def("style", 75, Integer(1)),
			def("pattern_type", 76, Integer(1)),
			def("pattern_angle", 52, Float(0)),
			def("pattern_scale", 41, Float(1)),
			def("pattern_double", 77, Integer(0)),
			opt("pixel_size", 47, nil),
			payloadMark("all"),
		},
	})
	hatch.payload = map[string]func(int) bool{subclassHatch: hatchPayloadCode}
	hatch.decode = decodeHatch
	hatch.encode = encodeHatch
	registerSchema(hatch)

	mesh := graphical("MESH", R2010, SubclassDef{
		Name: subclassMesh,
		Attrs: []AttrDef{
			def("version", 71, Integer(2)),
			def("blend_crease", 72, Integer(0)),
			def("subdivision_levels", 91, Integer(0)),
			payloadMark("data"),
		},
	})
	mesh.payload = map[string]func(int) bool{subclassMesh: meshPayloadCode}
	mesh.decode = decodeMesh
	mesh.encode = encodeMesh
	registerSchema(mesh)

	registerSchema(graphical("DIMENSION", 0,
		SubclassDef{
			Name: "AcDbDimension",
			Attrs: []AttrDef{
				since(opt("dim_version", 280, Integer(0)), R2010),
				def("geometry", 2, String("")),
				req("defpoint", 10),
				def("text_midpoint", 11, Point{}),
				def("dimtype", 70, Integer(0)),
				since(def("attachment_point", 71, Integer(5)), R13),
				since(opt("line_spacing_style", 72, Integer(1)), R2000),
				since(opt("line_spacing_factor", 41, Float(1)), R2000),
				since(opt("actual_measurement", 42, nil), R2000),
				opt("text", 1, String("")),
				opt("text_rotation", 53, Float(0)),
				opt("horizontal_direction", 51, nil),
				since(def("dimstyle", 3, String("Standard")), R13),
			},
		},
		SubclassDef{
			Name: "AcDbAlignedDimension",
			Aliases: []string{
				"AcDbRotatedDimension",
				"AcDbRadialDimension",
				"AcDbDiametricDimension",
				"AcDb3PointAngularDimension",
				"AcDb2LineAngularDimension",
				"AcDbOrdinateDimension",
			},
			Attrs: []AttrDef{
				opt("insert", 12, nil),
				opt("defpoint2", 13, nil),
				opt("defpoint3", 14, nil),
				opt("defpoint4", 15, nil),
				opt("defpoint5", 16, nil),
				opt("leader_length", 40, nil),
				opt("angle", 50, Float(0)),
				opt("oblique_angle", 52, Float(0)),
			},
		},
	))

	viewport := graphical("VIEWPORT", 0, SubclassDef{
		Name: "AcDbViewport",
		Attrs: []AttrDef{
			req("center", 10),
			req("width", 40),
			req("height", 41),
			def("status", 68, Integer(0)),
			def("id", 69, Integer(1)),
			def("view_center", 12, Point{}),
			def("snap_base", 13, Point{}),
			def("snap_spacing", 14, Point{X: 10, Y: 10, Dim: 2}),
			def("grid_spacing", 15, Point{X: 10, Y: 10, Dim: 2}),
			def("view_direction", 16, Point{Z: 1}),
			def("view_target", 17, Point{}),
			opt("perspective_lens_length", 42, Float(50)),
			opt("front_clip", 43, Float(0)),
			opt("back_clip", 44, Float(0)),
			def("view_height", 45, Float(1)),
			opt("snap_angle", 50, Float(0)),
			opt("view_twist", 51, Float(0)),
			opt("circle_zoom", 72, Integer(100)),
			payloadMark("frozen_layers"),
			since(def("flags", 90, Integer(0)), R2000),
			since(opt("clipping_boundary", 340, nil), R2000),
			since(opt("plotstyle_name", 1, String("")), R2000),
			since(opt("render_mode", 281, Integer(0)), R2000),
			since(opt("ucs_per_viewport", 71, Integer(0)), R2000),
			since(opt("ucs_origin", 110, nil), R2000),
			since(opt("ucs_xaxis", 111, nil), R2000),
			since(opt("ucs_yaxis", 112, nil), R2000),
			since(opt("ucs_ortho_type", 79, Integer(0)), R2000),
			since(opt("elevation", 146, Float(0)), R2000),
		},
	})
	viewport.payload = map[string]func(int) bool{"AcDbViewport": viewportPayloadCode}
	viewport.decode = decodeViewport
	viewport.encode = encodeViewport
	registerSchema(viewport)

	// table entries

	registerSchema(tableRecord("LAYER", "AcDbLayerTableRecord",
		req("name", 2),
		def("flags", 70, Integer(0)),
		def("color", 62, Integer(7)),
		since(opt("true_color", 420, nil), R2004),
		def("linetype", 6, String("Continuous")),
		since(opt("plot", 290, Integer(1)), R2000),
		since(opt("lineweight", 370, Integer(-3)), R2000),
		since(opt("plotstyle", 390, nil), R2000),
		since(opt("material", 347, nil), R2007),
	))

	ltype := tableRecord("LTYPE", subclassLinetype,
		req("name", 2),
		def("flags", 70, Integer(0)),
		def("description", 3, String("")),
		def("alignment", 72, Integer(65)),
		payloadMark("count"),
		def("pattern_length", 40, Float(0)),
		payloadMark("dashes"),
	)
	ltype.payload = map[string]func(int) bool{subclassLinetype: linetypePayloadCode}
	ltype.decode = decodeLinetype
	ltype.encode = encodeLinetype
	registerSchema(ltype)

	registerSchema(tableRecord("STYLE", "AcDbTextStyleTableRecord",
		req("name", 2),
		def("flags", 70, Integer(0)),
		def("height", 40, Float(0)),
		def("width", 41, Float(1)),
		def("oblique", 50, Float(0)),
		def("generation_flags", 71, Integer(0)),
		def("last_height", 42, Float(2.5)),
		def("font", 3, String("txt")),
		def("bigfont", 4, String("")),
	))

	registerSchema(tableRecord("DIMSTYLE", "AcDbDimStyleTableRecord",
		req("name", 2),
		def("flags", 70, Integer(0)),
		opt("dimpost", 3, String("")),
		opt("dimapost", 4, String("")),
		opt("dimscale", 40, Float(1)),
		opt("dimasz", 41, Float(0.18)),
		opt("dimexo", 42, Float(0.0625)),
		opt("dimdli", 43, Float(0.38)),
		opt("dimexe", 44, Float(0.18)),
		opt("dimtxt", 140, Float(0.18)),
		opt("dimcen", 141, Float(0.09)),
		opt("dimtsz", 142, Float(0)),
		opt("dimtol", 71, Integer(0)),
		opt("dimlim", 72, Integer(0)),
		opt("dimtih", 73, Integer(1)),
		opt("dimtoh", 74, Integer(1)),
		opt("dimse1", 75, Integer(0)),
		opt("dimse2", 76, Integer(0)),
		opt("dimtad", 77, Integer(0)),
		opt("dimzin", 78, Integer(0)),
		opt("dimclrd", 176, Integer(0)),
		opt("dimclre", 177, Integer(0)),
		opt("dimclrt", 178, Integer(0)),
		since(opt("dimdec", 271, Integer(4)), R13),
		since(opt("dimlwd", 371, Integer(-2)), R2000),
		since(opt("dimlwe", 372, Integer(-2)), R2000),
		since(opt("dimtxsty_handle", 340, nil), R13),
		since(opt("dimblk_handle", 342, nil), R13),
		since(opt("dimblk1_handle", 343, nil), R13),
		since(opt("dimblk2_handle", 344, nil), R13),
	))

	registerSchema(tableRecord("APPID", "AcDbRegAppTableRecord",
		req("name", 2),
		def("flags", 70, Integer(0)),
	))

	blockRecord := tableRecord("BLOCK_RECORD", "AcDbBlockTableRecord",
		req("name", 2),
		since(opt("layout", 340, nil), R2000),
		since(opt("units", 70, Integer(0)), R2007),
		since(opt("explode", 280, Integer(1)), R2007),
		since(opt("scale", 281, Integer(0)), R2007),
	)
	blockRecord.Min = R13
	registerSchema(blockRecord)

	registerSchema(tableRecord("UCS", "AcDbUCSTableRecord",
		req("name", 2),
		def("flags", 70, Integer(0)),
		def("origin", 10, Point{}),
		def("xaxis", 11, Point{X: 1}),
		def("yaxis", 12, Point{Y: 1}),
	))

	registerSchema(tableRecord("VIEW", "AcDbViewTableRecord",
		req("name", 2),
		def("flags", 70, Integer(0)),
		def("height", 40, Float(1)),
		def("center", 10, Point{Dim: 2}),
		def("width", 41, Float(1)),
		def("direction", 11, Point{Z: 1}),
		def("target", 12, Point{}),
		opt("lens_length", 42, Float(50)),
		opt("front_clip", 43, Float(0)),
		opt("back_clip", 44, Float(0)),
		opt("twist", 50, Float(0)),
		opt("view_mode", 71, Integer(0)),
	))

	registerSchema(tableRecord("VPORT", "AcDbViewportTableRecord",
		req("name", 2),
		def("flags", 70, Integer(0)),
		def("lower_left", 10, Point{Dim: 2}),
		def("upper_right", 11, Point{X: 1, Y: 1, Dim: 2}),
		def("center", 12, Point{Dim: 2}),
		def("snap_base", 13, Point{Dim: 2}),
		def("snap_spacing", 14, Point{X: 10, Y: 10, Dim: 2}),
		def("grid_spacing", 15, Point{X: 10, Y: 10, Dim: 2}),
		def("direction", 16, Point{Z: 1}),
		def("target", 17, Point{}),
		def("view_height", 40, Float(1)),
		def("aspect_ratio", 41, Float(1)),
		def("lens_length", 42, Float(50)),
		def("front_clip", 43, Float(0)),
		def("back_clip", 44, Float(0)),
		def("snap_rotation", 50, Float(0)),
		def("view_twist", 51, Float(0)),
		def("status", 68, Integer(0)),
		def("circle_zoom", 72, Integer(100)),
		def("fast_zoom", 73, Integer(1)),
		def("ucsicon", 74, Integer(3)),
		def("snap_on", 75, Integer(0)),
		def("grid_on", 76, Integer(0)),
		def("snap_style", 77, Integer(0)),
		def("snap_isopair", 78, Integer(0)),
	))

	// block delimiters

	registerSchema(&Schema{
		Type:      "BLOCK",
		Graphical: true,
		Subclasses: []SubclassDef{
			{Name: ""},
			acDbEntity(),
			{
				Name: "AcDbBlockBegin",
				Attrs: []AttrDef{
					req("name", 2),
					def("flags", 70, Integer(0)),
					def("base", 10, Point{}),
					def("name2", 3, String("")),
					opt("xref", 1, String("")),
					opt("description", 4, String("")),
				},
			},
		},
	})
	registerSchema(&Schema{
		Type:      "ENDBLK",
		Graphical: true,
		Subclasses: []SubclassDef{
			{Name: ""},
			acDbEntity(),
			{Name: "AcDbBlockEnd"},
		},
	})

	// objects

	dict := &Schema{
		Type: "DICTIONARY",
		Min:  R13,
		Subclasses: []SubclassDef{
			{Name: ""},
			{
				Name: subclassDictionary,
				Attrs: []AttrDef{
					opt("hard_owner", 280, Integer(0)),
					opt("cloning", 281, Integer(1)),
					payloadMark("entries"),
				},
			},
		},
	}
	dict.payload = map[string]func(int) bool{subclassDictionary: dictionaryPayloadCode}
	dict.decode = decodeDictionary
	dict.encode = encodeDictionary
	registerSchema(dict)

	xrecord := &Schema{
		Type: "XRECORD",
		Min:  R14,
		Subclasses: []SubclassDef{
			{Name: ""},
			{
				Name: subclassXRecord,
				Attrs: []AttrDef{
					opt("cloning", 280, Integer(1)),
					payloadMark("data"),
				},
			},
		},
	}
	xrecord.payload = map[string]func(int) bool{subclassXRecord: xrecordPayloadCode}
	xrecord.decode = decodeXRecord
	xrecord.encode = encodeXRecord
	registerSchema(xrecord)

	registerSchema(&Schema{
		Type: "LAYOUT",
		Min:  R2000,
		Subclasses: []SubclassDef{
			{Name: ""},
			{
				Name: "AcDbPlotSettings",
				Attrs: []AttrDef{
					def("page_setup_name", 1, String("")),
					def("printer", 2, String("none_device")),
					def("paper_size", 4, String("")),
					def("plot_view_name", 6, String("")),
					def("left_margin", 40, Float(0)),
					def("bottom_margin", 41, Float(0)),
					def("right_margin", 42, Float(0)),
					def("top_margin", 43, Float(0)),
					def("paper_width", 44, Float(0)),
					def("paper_height", 45, Float(0)),
					def("plot_origin_x", 46, Float(0)),
					def("plot_origin_y", 47, Float(0)),
					def("window_x1", 48, Float(0)),
					def("window_y1", 49, Float(0)),
					def("window_x2", 140, Float(0)),
					def("window_y2", 141, Float(0)),
					def("scale_numerator", 142, Float(1)),
					def("scale_denominator", 143, Float(1)),
					def("plot_layout_flags", 70, Integer(688)),
					def("paper_units", 72, Integer(1)),
					def("plot_rotation", 73, Integer(0)),
					def("plot_type", 74, Integer(5)),
					def("current_stylesheet", 7, String("")),
					def("standard_scale_type", 75, Integer(16)),
					since(def("scale_factor", 147, Float(1)), R2000),
					since(def("paper_image_origin_x", 148, Float(0)), R2000),
					since(def("paper_image_origin_y", 149, Float(0)), R2000),
				},
			},
			{
				Name: "AcDbLayout",
				Attrs: []AttrDef{
					req("name", 1),
					def("layout_flags", 70, Integer(1)),
					def("tab_order", 71, Integer(1)),
					def("limmin", 10, Point{Dim: 2}),
					def("limmax", 11, Point{X: 12, Y: 9, Dim: 2}),
					def("insert_base", 12, Point{}),
					def("extmin", 14, Point{}),
					def("extmax", 15, Point{}),
					opt("elevation", 146, Float(0)),
					def("ucs_origin", 13, Point{}),
					def("ucs_xaxis", 16, Point{X: 1}),
					def("ucs_yaxis", 17, Point{Y: 1}),
					def("ucs_type", 76, Integer(1)),
					req("block_record", 330),
					opt("viewport", 331, nil),
					opt("ucs", 345, nil),
					opt("base_ucs", 346, nil),
				},
			},
		},
	})

	acis := func(typ string, extra ...SubclassDef) {
		s := &Schema{
			Type:      typ,
			Min:       R13,
			Graphical: true,
			Subclasses: append([]SubclassDef{
				{Name: ""},
				acDbEntity(),
				{
					Name: subclassModelerGeometry,
					Attrs: []AttrDef{
						def("version", 70, Integer(1)),
						payloadMark("data"),
					},
				},
			}, extra...),
		}
		s.payload = map[string]func(int) bool{subclassModelerGeometry: acisPayloadCode}
		s.decode = decodeACIS
		s.encode = encodeACIS
		registerSchema(s)
	}
	acis("BODY")
	acis("REGION")
	acis("3DSOLID", SubclassDef{
		Name: "AcDb3dSolid",
		Attrs: []AttrDef{
			since(opt("history", 350, nil), R2007),
		},
	})
}
