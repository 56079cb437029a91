// Package parse turns log lines into records.
//
// A Parser holds compiled settings and is shared by all workers. Each
// worker creates a Session, which owns the container, the record and the
// format state, and parses one line at a time:
//
//	p, err := parse.New(parse.WithSettings(s))
//	...
//	sess := p.NewSession()
//	for line := range lines {
//		rec, err := sess.Parse(line)
//		...
//	}
package parse

import (
	"bytes"
	"fmt"
	"io"

	"github.com/signadot/logv/ast"
	"github.com/signadot/logv/autofmt"
	"github.com/signadot/logv/debug"
	"github.com/signadot/logv/format"
	"github.com/signadot/logv/jsonfmt"
	"github.com/signadot/logv/logfmt"
	"github.com/signadot/logv/record"
	"github.com/signadot/logv/settings"
	"github.com/signadot/logv/token"
)

// Parser is immutable and safe for concurrent use.
type Parser struct {
	format     format.Format
	candidates []format.Format
	settings   *record.Settings
	capacity   int
}

func New(opts ...ParseOption) (*Parser, error) {
	pOpts := &parseOpts{format: format.AutoFormat}
	for _, f := range opts {
		f(pOpts)
	}
	if pOpts.settings == nil {
		pOpts.settings = settings.Default()
	}
	s, err := record.NewSettings(pOpts.settings)
	if err != nil {
		return nil, err
	}
	if pOpts.maxDepth > 0 {
		s = s.WithMaxDepth(pOpts.maxDepth)
	}
	p := &Parser{
		format:     pOpts.format,
		candidates: pOpts.candidates,
		settings:   s,
		capacity:   pOpts.capacity,
	}
	if p.format.IsAuto() {
		// validate candidates once rather than in every session
		if _, err := autofmt.NewParser(nil, p.candidates...); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Parser) Format() format.Format { return p.format }

func (p *Parser) Settings() *record.Settings { return p.settings }

// Session parses lines one at a time. It is not safe for concurrent use.
type Session struct {
	fp  format.Parser
	c   *ast.Container
	rec *record.Record
	b   *record.Builder
	ent format.Entry
}

func (p *Parser) NewSession() *Session {
	c := ast.NewContainer(p.capacity)
	rec := record.New(c)
	b, err := record.NewBuilder(p.settings, ast.Attach(c.Metaroot(), rec))
	if err != nil {
		panic(err)
	}
	return &Session{fp: p.newFormatParser(), c: c, rec: rec, b: b}
}

func (p *Parser) newFormatParser() format.Parser {
	switch p.format {
	case format.JSONFormat:
		return jsonfmt.NewParser(nil)
	case format.LogfmtFormat:
		return logfmt.NewParser(nil)
	default:
		ap, err := autofmt.NewParser(nil, p.candidates...)
		if err != nil {
			// candidates were validated by New
			panic(err)
		}
		return ap
	}
}

// Parse parses the entry on line. Anything but whitespace after the entry
// is an ErrTrailing error. The record and the strings it
// refers to borrow from line and stay valid until the next call to Parse.
// Line must not be modified meanwhile.
func (s *Session) Parse(line []byte) (*record.Record, error) {
	s.c.Clear()
	s.rec.Reset()
	s.fp.Reset(line)
	cp := s.b.Checkpoint()
	ent, err := s.fp.ParseEntry(s.b)
	switch {
	case err == io.EOF:
		return nil, ErrEmpty
	case err != nil:
		s.b.Rollback(cp)
		if debug.Parse() {
			debug.Logf("parse: %q: %v", line, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	s.ent = ent
	if rest := line[ent.Span.End:]; len(bytes.TrimSpace(rest)) != 0 {
		sp := token.Span{Start: ent.Span.End, End: len(line)}
		if debug.Parse() {
			debug.Logf("parse: %q: trailing data at %s", line, sp)
		}
		return nil, token.NewError(ErrTrailing, sp)
	}
	if _, ok := s.rec.Root(); !ok {
		return nil, fmt.Errorf("%w: %w at %s", ErrParse, record.ErrNotObject, ent.Span)
	}
	return s.rec, nil
}

// Entry returns the span of the entry parsed last.
func (s *Session) Entry() format.Entry { return s.ent }

// Format reports the format of the last entry, or the format that will be
// tried first under automatic detection.
func (s *Session) Format() format.Format {
	if ap, ok := s.fp.(*autofmt.Parser); ok {
		return ap.Format()
	}
	switch s.fp.(type) {
	case *jsonfmt.Parser:
		return format.JSONFormat
	default:
		return format.LogfmtFormat
	}
}

// Stats reports automatic detection statistics. It is zero for fixed
// formats.
func (s *Session) Stats() autofmt.Stats {
	if ap, ok := s.fp.(*autofmt.Parser); ok {
		return ap.Stats()
	}
	return autofmt.Stats{}
}
