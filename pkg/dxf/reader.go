package dxf

import (
	"bufio"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dxfview/pkg/drawing"
	"github.com/matzehuels/dxfview/pkg/errors"
)

// Option configures [Read].
type Option func(*reader)

// WithLogger sets the logger for skipped records. The default discards.
func WithLogger(l *log.Logger) Option {
	return func(r *reader) {
		if l != nil {
			r.logger = l
		}
	}
}

type reader struct {
	s        *scanner
	logger   *log.Logger
	skipped  map[string]int
	sections int
}

// ReadFile opens path and reads it with [Read].
func ReadFile(path string, opts ...Option) (*drawing.Model, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParseFailure, err, "open %s", path)
	}
	defer f.Close()
	return Read(f, opts...)
}

// Read decodes an ASCII DXF stream. All failures carry the PARSE_FAILURE
// code.
func Read(in io.Reader, opts ...Option) (*drawing.Model, error) {
	br := bufio.NewReader(in)
	if head, _ := br.Peek(len(binarySentinel)); isBinary(head) {
		return nil, errors.New(errors.ErrCodeParseFailure, "binary DXF is not supported")
	}

	r := &reader{
		s:       newScanner(br),
		logger:  log.NewWithOptions(io.Discard, log.Options{}),
		skipped: make(map[string]int),
	}
	for _, opt := range opts {
		opt(r)
	}

	m, err := r.read()
	if err != nil {
		if errors.GetCode(err) == "" {
			err = errors.Wrap(errors.ErrCodeParseFailure, err, "read dxf")
		}
		return nil, err
	}
	if len(r.skipped) > 0 {
		r.logger.Debug("skipped unsupported entities", "types", slices.Sorted(maps.Keys(r.skipped)))
	}
	return m, nil
}

func (r *reader) read() (*drawing.Model, error) {
	m := &drawing.Model{Blocks: drawing.Library{}}
	for {
		t, ok := r.s.next()
		if !ok || t.is("EOF") {
			break
		}
		if !t.is("SECTION") {
			continue
		}
		r.sections++

		name, ok := r.s.next()
		if !ok {
			break
		}
		if name.Code != 2 {
			r.s.unread(name)
			r.skipSection()
			continue
		}
		switch name.Value {
		case "ENTITIES":
			es, err := r.entities("ENDSEC")
			if err != nil {
				return nil, err
			}
			m.Entities = append(m.Entities, es...)
		case "BLOCKS":
			if err := r.blocks(m.Blocks); err != nil {
				return nil, err
			}
		default:
			r.skipSection()
		}
	}
	if r.s.err != nil {
		return nil, r.s.err
	}
	if r.s.line == 0 {
		return nil, errors.New(errors.ErrCodeParseFailure, "empty input")
	}
	if r.sections == 0 {
		return nil, errors.New(errors.ErrCodeParseFailure, "no SECTION records found")
	}
	r.logger.Debug("read dxf", "entities", len(m.Entities), "blocks", len(m.Blocks), "lines", r.s.line)
	return m, nil
}

func (r *reader) skipSection() {
	for {
		t, ok := r.s.next()
		if !ok {
			return
		}
		if t.is("ENDSEC") {
			r.s.skipRecord()
			return
		}
	}
}

// entities decodes records until the record named end. A block missing its
// ENDBLK stops at the enclosing ENDSEC.
func (r *reader) entities(end string) ([]drawing.Entity, error) {
	var out []drawing.Entity
	for {
		t, ok := r.s.next()
		if !ok {
			return out, nil
		}
		if t.Code != 0 {
			continue
		}
		if t.Value == end {
			r.s.skipRecord()
			return out, nil
		}
		if t.Value == "ENDSEC" {
			r.s.unread(t)
			return out, nil
		}
		e, err := r.entity(t)
		if err != nil {
			return nil, err
		}
		if e != nil {
			out = append(out, e)
		}
	}
}

func (r *reader) entity(start Tag) (drawing.Entity, error) {
	d := newDecoder(start.Value)
	if d == nil {
		r.skipped[start.Value]++
		r.s.skipRecord()
		return nil, nil
	}
	if err := r.record(d.Decode); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParseFailure, err, "%s at line %d", start.Value, start.Line)
	}
	if vs, ok := d.(vertexSink); ok && start.Value == "POLYLINE" {
		if err := r.vertices(vs); err != nil {
			return nil, errors.Wrap(errors.ErrCodeParseFailure, err, "%s at line %d", start.Value, start.Line)
		}
	}
	return d.Entity(), nil
}

// record feeds tags to decode until the next record start.
func (r *reader) record(decode func(Tag) error) error {
	for {
		t, ok := r.s.next()
		if !ok {
			return nil
		}
		if t.Code == 0 {
			r.s.unread(t)
			return nil
		}
		if err := decode(t); err != nil {
			return err
		}
	}
}

func (r *reader) vertices(vs vertexSink) error {
	for {
		t, ok := r.s.next()
		if !ok {
			return nil
		}
		switch {
		case t.is("VERTEX"):
			var v vertexDecoder
			if err := r.record(v.Decode); err != nil {
				return err
			}
			vs.AddVertex(v.p)
		case t.is("SEQEND"):
			r.s.skipRecord()
			return nil
		default:
			r.s.unread(t)
			return nil
		}
	}
}

type blockHeader struct {
	name string
}

func (h *blockHeader) Decode(t Tag) error {
	switch t.Code {
	case 2:
		h.name = t.Value
	case 3:
		if h.name == "" {
			h.name = t.Value
		}
	}
	return nil
}

func (r *reader) blocks(lib drawing.Library) error {
	for {
		t, ok := r.s.next()
		if !ok {
			return nil
		}
		if t.is("ENDSEC") {
			r.s.skipRecord()
			return nil
		}
		if !t.is("BLOCK") {
			if t.Code == 0 {
				r.s.skipRecord()
			}
			continue
		}

		var h blockHeader
		if err := r.record(h.Decode); err != nil {
			return err
		}
		es, err := r.entities("ENDBLK")
		if err != nil {
			return err
		}
		if h.name == "" {
			r.logger.Warn("skipping unnamed block", "line", t.Line)
			continue
		}
		lib[h.name] = &drawing.Block{Name: h.name, Entities: es}
	}
}
