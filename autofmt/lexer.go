package autofmt

import (
	"fmt"
	"io"

	"github.com/signadot/logv/debug"
	"github.com/signadot/logv/format"
	"github.com/signadot/logv/token"
)

// Lexer implements format.Lexer over a set of candidate lexers.
type Lexer struct {
	formats []format.Format
	lexers  []format.Lexer
	data    []byte

	current int
	active  int
	tried   uint8

	// boundary is set between entries; checkpoint is where the current
	// entry started.
	boundary   bool
	checkpoint int
	errs       []error
	stats      Stats
}

// NewLexer returns a lexer trying candidates in order. With no candidates
// all concrete formats are used.
func NewLexer(data []byte, candidates ...format.Format) (*Lexer, error) {
	if len(candidates) == 0 {
		candidates = format.AllFormats()
	}
	if err := checkCandidates(candidates); err != nil {
		return nil, err
	}
	l := &Lexer{formats: candidates, data: data, boundary: true}
	for _, f := range candidates {
		l.lexers = append(l.lexers, newLexer(f, data))
	}
	return l, nil
}

// Format returns the candidate tried first for the next entry.
func (l *Lexer) Format() format.Format { return l.formats[l.current] }

func (l *Lexer) Stats() Stats { return l.stats }

func (l *Lexer) Offset() int { return l.lexers[l.active].Offset() }

func (l *Lexer) Seek(off int) {
	l.active = l.current
	l.lexers[l.active].Seek(off)
	l.boundary = true
}

// Reset starts over on data, keeping the detected format.
func (l *Lexer) Reset(data []byte) {
	l.data = data
	for _, lx := range l.lexers {
		lx.Reset(data)
	}
	l.active = l.current
	l.boundary = true
}

func (l *Lexer) Next() (token.Token, error) {
	for {
		lx := l.lexers[l.active]
		if l.boundary {
			l.checkpoint = lx.Offset()
			l.tried = 1 << l.active
			l.errs = l.errs[:0]
			l.boundary = false
		}
		tok, err := lx.Next()
		if err == nil {
			if tok.Type == token.TEntryEnd {
				l.finish()
			}
			return tok, nil
		}
		if err == io.EOF {
			l.boundary = true
			return tok, err
		}
		l.stats.Attempts++
		l.errs = append(l.errs, fmt.Errorf("%s: %w", l.formats[l.active], err))
		next, ok := untried(l.tried, len(l.lexers))
		if ok {
			if debug.Rotate() {
				debug.Logf("autofmt: %s failed at offset %d (%v), trying %s", l.formats[l.active], l.checkpoint, err, l.formats[next])
			}
			l.stats.Rotations++
			l.tried |= 1 << next
			l.active = next
			l.lexers[next].Seek(l.checkpoint)
			continue
		}
		l.Seek(format.SkipLine(l.data, l.checkpoint))
		if len(l.lexers) == 1 {
			return token.Token{}, err
		}
		return token.Token{}, newExhausted(l.errs)
	}
}

func (l *Lexer) finish() {
	l.stats.Entries++
	l.stats.Attempts++
	if l.active != l.current || l.stats.Entries == 1 {
		l.stats.Detections++
	}
	l.current = l.active
	l.boundary = true
}
