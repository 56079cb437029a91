package autofmt

import (
	"fmt"
	"io"

	"github.com/signadot/logv/ast"
	"github.com/signadot/logv/debug"
	"github.com/signadot/logv/format"
)

// Parser implements format.Parser over a set of candidate parsers.
type Parser struct {
	formats []format.Format
	parsers []format.Parser
	data    []byte
	current int
	off     int
	errs    []error
	stats   Stats
}

// NewParser returns a parser trying candidates in order. With no
// candidates all concrete formats are used.
func NewParser(data []byte, candidates ...format.Format) (*Parser, error) {
	if len(candidates) == 0 {
		candidates = format.AllFormats()
	}
	if err := checkCandidates(candidates); err != nil {
		return nil, err
	}
	p := &Parser{formats: candidates, data: data}
	for _, f := range candidates {
		p.parsers = append(p.parsers, newParser(f, data))
	}
	return p, nil
}

// Format returns the candidate tried first for the next entry.
func (p *Parser) Format() format.Format { return p.formats[p.current] }

func (p *Parser) Stats() Stats { return p.stats }

func (p *Parser) Offset() int { return p.off }

func (p *Parser) Seek(off int) { p.off = off }

// Reset starts over on data, keeping the detected format.
func (p *Parser) Reset(data []byte) {
	p.data = data
	for _, c := range p.parsers {
		c.Reset(data)
	}
	p.off = 0
}

// ParseEntry parses the next entry into b, rolling b back between
// attempts. When every candidate fails, b is left as it was, the entry's
// line is skipped and an *ExhaustedError is returned.
func (p *Parser) ParseEntry(b ast.Build) (format.Entry, error) {
	start := p.off
	cp := b.Checkpoint()
	p.errs = p.errs[:0]
	idx := p.current
	tried := uint8(0)
	var err error
	for {
		tried |= 1 << idx
		c := p.parsers[idx]
		c.Seek(start)
		var ent format.Entry
		ent, err = c.ParseEntry(b)
		if err == nil {
			p.stats.Entries++
			p.stats.Attempts++
			if idx != p.current || p.stats.Entries == 1 {
				p.stats.Detections++
			}
			p.current = idx
			p.off = c.Offset()
			return ent, nil
		}
		if err == io.EOF {
			p.off = c.Offset()
			return ent, err
		}
		p.stats.Attempts++
		b.Rollback(cp)
		p.errs = append(p.errs, fmt.Errorf("%s: %w", p.formats[idx], err))
		next, ok := untried(tried, len(p.parsers))
		if !ok {
			break
		}
		if debug.Rotate() {
			debug.Logf("autofmt: %s failed at offset %d (%v), trying %s", p.formats[idx], start, err, p.formats[next])
		}
		p.stats.Rotations++
		idx = next
	}
	p.off = format.SkipLine(p.data, start)
	if len(p.parsers) == 1 {
		return format.Entry{}, err
	}
	return format.Entry{}, newExhausted(p.errs)
}
