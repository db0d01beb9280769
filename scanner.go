package dxf

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// rawTag is a group code with its undecoded value line.
type rawTag struct {
	code  int
	value string
}

// scanner turns a character stream into a sequence of typed tags.
// It coalesces x, y[, z] coordinate runs into Point values, decodes binary
// chunks and skips comment tags.  All errors carry the input line number.
type scanner struct {
	r    *bufio.Reader
	line int64

	undo   *rawTag // one-slot pushback for point coalescing
	sawEOF bool    // a (0, "EOF") tag has been read
}

func newScanner(r io.Reader) *scanner {
	return &scanner{r: bufio.NewReaderSize(r, 1<<16)}
}

func (s *scanner) error(err error) error {
	return &StructureError{Line: s.line, Err: err}
}

// readLine reads one input line without the line terminator.  DXF files
// use CR LF, but lone LF is accepted.
func (s *scanner) readLine() (string, error) {
	l, err := s.r.ReadString('\n')
	if err != nil {
		if err == io.EOF && l != "" {
			// a final line without terminator still counts
			s.line++
			return strings.TrimRight(l, "\r"), nil
		}
		return "", err
	}
	s.line++
	return strings.TrimRight(l, "\r\n"), nil
}

// readRawTag reads one (code, value) line pair.  io.EOF is returned at the
// clean end of input; a code line without a value line is an error.
func (s *scanner) readRawTag() (rawTag, error) {
	if s.undo != nil {
		t := *s.undo
		s.undo = nil
		return t, nil
	}
	if s.sawEOF {
		// data beyond the (0, "EOF") tag is ignored
		return rawTag{}, io.EOF
	}

	var codeLine string
	var err error
	for {
		codeLine, err = s.readLine()
		if err != nil {
			return rawTag{}, err
		}
		if strings.TrimSpace(codeLine) != "" {
			break
		}
		// skip blank lines between tags, some exporters emit them
	}
	code, err := strconv.Atoi(strings.TrimSpace(codeLine))
	if err != nil {
		return rawTag{}, s.error(fmt.Errorf("invalid group code %q", codeLine))
	}

	value, err := s.readLine()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return rawTag{}, s.error(err)
	}

	if code == codeStructure && strings.TrimSpace(value) == "EOF" {
		s.sawEOF = true
	}
	return rawTag{code: code, value: value}, nil
}

func (s *scanner) unreadRawTag(t rawTag) {
	s.undo = &t
}

// ReadTag returns the next typed tag.  Comment tags (group code 999) are
// skipped.  At the clean end of input io.EOF is returned.
func (s *scanner) ReadTag() (Tag, error) {
	for {
		raw, err := s.readRawTag()
		if err != nil {
			return Tag{}, err
		}
		if raw.code == codeComment {
			continue
		}
		if isPointStart(raw.code) {
			return s.readPoint(raw)
		}
		return s.compile(raw)
	}
}

// readPoint assembles an x, y[, z] coordinate run into a single Point tag.
// The y coordinate is mandatory, z is optional and defaults to 0.
func (s *scanner) readPoint(x rawTag) (Tag, error) {
	xv, err := strconv.ParseFloat(strings.TrimSpace(x.value), 64)
	if err != nil {
		return Tag{}, s.error(fmt.Errorf("%w: invalid x value %q",
			ErrMalformedPoint, x.value))
	}

	y, err := s.readRawTag()
	if err != nil || y.code != x.code+10 {
		if err == nil {
			s.unreadRawTag(y)
		}
		return Tag{}, s.error(fmt.Errorf("%w: missing y coordinate for code %d",
			ErrMalformedPoint, x.code))
	}
	yv, err := strconv.ParseFloat(strings.TrimSpace(y.value), 64)
	if err != nil {
		return Tag{}, s.error(fmt.Errorf("%w: invalid y value %q",
			ErrMalformedPoint, y.value))
	}

	point := Point{X: xv, Y: yv, Dim: 2}
	z, err := s.readRawTag()
	if err == nil {
		if z.code == x.code+20 {
			zv, err := strconv.ParseFloat(strings.TrimSpace(z.value), 64)
			if err != nil {
				return Tag{}, s.error(fmt.Errorf("%w: invalid z value %q",
					ErrMalformedPoint, z.value))
			}
			point.Z = zv
			point.Dim = 3
		} else {
			s.unreadRawTag(z)
		}
	} else if err != io.EOF {
		return Tag{}, err
	}

	return Tag{Code: x.code, Value: point}, nil
}

// compile converts a raw tag into its typed form according to the group
// code ranges.
func (s *scanner) compile(raw rawTag) (Tag, error) {
	switch codeKind(raw.code) {
	case kindInteger:
		v := strings.TrimSpace(raw.value)
		x, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			// some exporters store integers as floats
			f, ferr := strconv.ParseFloat(v, 64)
			if ferr != nil {
				return Tag{}, s.error(fmt.Errorf(
					"invalid integer value %q for group code %d", raw.value, raw.code))
			}
			x = int64(f)
		}
		return Tag{Code: raw.code, Value: Integer(x)}, nil
	case kindFloat:
		x, err := strconv.ParseFloat(strings.TrimSpace(raw.value), 64)
		if err != nil {
			return Tag{}, s.error(fmt.Errorf(
				"invalid float value %q for group code %d", raw.value, raw.code))
		}
		return Tag{Code: raw.code, Value: Float(x)}, nil
	case kindBinary:
		data, err := hex.DecodeString(strings.TrimSpace(raw.value))
		if err != nil {
			return Tag{}, s.error(fmt.Errorf(
				"invalid binary data for group code %d", raw.code))
		}
		return Tag{Code: raw.code, Value: Binary(data)}, nil
	case kindHandle:
		return Tag{Code: raw.code, Value: Handle(strings.TrimSpace(raw.value))}, nil
	default:
		value := raw.value
		if raw.code == codeStructure {
			value = strings.TrimSpace(value)
		}
		return Tag{Code: raw.code, Value: String(value)}, nil
	}
}

// ReadTags reads the whole stream into a tag list.
func (s *scanner) ReadTags() (Tags, error) {
	var tags Tags
	for {
		t, err := s.ReadTag()
		if err == io.EOF {
			return tags, nil
		}
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
}
