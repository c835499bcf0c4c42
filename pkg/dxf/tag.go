package dxf

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/dxfview/pkg/errors"
)

// binarySentinel starts every binary DXF file.
var binarySentinel = []byte("AutoCAD Binary DXF")

// Tag is one group code/value pair.
type Tag struct {
	Code  int
	Value string
	Line  int // line number of the group code, 1-based
}

// Float parses the value as a float.
func (t Tag) Float() (float64, error) {
	v, err := strconv.ParseFloat(t.Value, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeParseFailure, err, "line %d: group %d: bad number %q", t.Line+1, t.Code, t.Value)
	}
	return v, nil
}

// Int parses the value as an integer. Some writers emit integer groups as
// "1.0", so a float value with no fraction is accepted too.
func (t Tag) Int() (int, error) {
	if v, err := strconv.Atoi(t.Value); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(t.Value, 64)
	if err != nil || f != float64(int(f)) {
		return 0, errors.New(errors.ErrCodeParseFailure, "line %d: group %d: bad integer %q", t.Line+1, t.Code, t.Value)
	}
	return int(f), nil
}

// is reports whether t is the record start "0 <name>".
func (t Tag) is(name string) bool {
	return t.Code == 0 && t.Value == name
}

// scanner yields tags with one tag of pushback.
type scanner struct {
	sc     *bufio.Scanner
	line   int
	peeked *Tag
	err    error
}

func newScanner(r io.Reader) *scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	return &scanner{sc: sc}
}

func (s *scanner) readLine() (string, bool) {
	if !s.sc.Scan() {
		return "", false
	}
	s.line++
	return strings.TrimSpace(s.sc.Text()), true
}

// next returns the next tag, or false at the end of input or on error.
func (s *scanner) next() (Tag, bool) {
	if s.peeked != nil {
		t := *s.peeked
		s.peeked = nil
		return t, true
	}
	if s.err != nil {
		return Tag{}, false
	}

	codeLine, ok := s.readLine()
	for ok && codeLine == "" {
		codeLine, ok = s.readLine()
	}
	if !ok {
		s.err = s.sc.Err()
		return Tag{}, false
	}
	line := s.line
	code, err := strconv.Atoi(codeLine)
	if err != nil {
		s.err = errors.New(errors.ErrCodeParseFailure, "line %d: bad group code %q", line, codeLine)
		return Tag{}, false
	}
	value, ok := s.readLine()
	if !ok {
		if s.err = s.sc.Err(); s.err == nil {
			s.err = errors.New(errors.ErrCodeParseFailure, "line %d: group %d has no value", line, code)
		}
		return Tag{}, false
	}
	return Tag{Code: code, Value: value, Line: line}, true
}

// unread pushes t back so the next call to next returns it.
func (s *scanner) unread(t Tag) {
	s.peeked = &t
}

// skipRecord discards tags up to the next record start.
func (s *scanner) skipRecord() {
	for {
		t, ok := s.next()
		if !ok {
			return
		}
		if t.Code == 0 {
			s.unread(t)
			return
		}
	}
}

func isBinary(head []byte) bool {
	return bytes.HasPrefix(head, binarySentinel)
}
