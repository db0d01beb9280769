package dxf

import (
	"errors"
	"strconv"
)

var (
	errVersion   = errors.New("unsupported DXF version")
	errDictEntry = errors.New("dictionary entry handle without a name")

	// ErrMalformedPoint indicates coordinate tags out of x, y[, z] order.
	ErrMalformedPoint = errors.New("malformed point coordinates")

	// ErrUnexpectedEOF indicates that the tag stream ended inside an open
	// structure, for example a SECTION without a matching ENDSEC.
	ErrUnexpectedEOF = errors.New("unexpected end of tag stream")

	// ErrNotFound is returned when a handle does not resolve to an entity.
	ErrNotFound = errors.New("no entity for handle")
)

// StructureError indicates that the DXF file could not be parsed.
// Parsing stops at the first structure error, no partial document is
// returned.
type StructureError struct {
	Line   int64  // input line number, 0 if unknown
	Entity string // nearest enclosing entity, e.g. "LINE(#1C4)", may be empty
	Err    error
}

func (err *StructureError) Error() string {
	msg := "not a valid DXF file"
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	if err.Entity != "" {
		msg += " in " + err.Entity
	}
	if err.Line > 0 {
		msg += " (near line " + strconv.FormatInt(err.Line, 10) + ")"
	}
	return msg
}

func (err *StructureError) Unwrap() error {
	return err.Err
}

// DuplicateHandleError is returned when an entity is registered under a
// handle which is already in use in the same document.
type DuplicateHandleError struct {
	Handle Handle
}

func (err *DuplicateHandleError) Error() string {
	return "handle #" + string(err.Handle) + " already in use"
}

// ProtectedEntityError is returned when an entity cannot be purged because
// hard references to it survive.
type ProtectedEntityError struct {
	Handle Handle
	RefBy  []Handle // entities holding hard references
}

func (err *ProtectedEntityError) Error() string {
	msg := "entity #" + string(err.Handle) + " is protected by hard references"
	if n := len(err.RefBy); n > 0 {
		msg += " (" + strconv.Itoa(n) + " referencing entities)"
	}
	return msg
}

// AttributeError is returned when an attribute is accessed which is not
// part of the entity's schema.
type AttributeError struct {
	Type string // DXF type of the entity
	Name string // attribute name
}

func (err *AttributeError) Error() string {
	return "DXF attribute " + err.Name + " is not supported by " + err.Type
}

// VersionError is returned when an attribute or entity requires a newer
// DXF version than the one in effect.
type VersionError struct {
	Name string  // attribute or entity name
	Min  Version // minimum DXF version required
	Have Version // version in effect
}

func (err *VersionError) Error() string {
	return err.Name + " requires DXF " + err.Min.Release() +
		" or later (have " + err.Have.Release() + ")"
}
