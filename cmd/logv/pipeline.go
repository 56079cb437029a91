package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"sync/atomic"

	"github.com/expr-lang/expr/vm"
	"golang.org/x/sync/errgroup"

	"github.com/signadot/logv/encode"
	"github.com/signadot/logv/parse"
)

const (
	batchLines   = 256
	maxLineBytes = 16 << 20
)

// batch holds consecutive input lines. Workers fill out, and close done
// when finished.
type batch struct {
	data []byte
	ends []int
	out  bytes.Buffer
	done chan struct{}
}

func (b *batch) lines(yield func([]byte) bool) {
	start := 0
	for _, end := range b.ends {
		if !yield(b.data[start:end]) {
			return
		}
		start = end
	}
}

type counts struct {
	lines, parsed, failed, filtered atomic.Int64
}

type pipeline struct {
	parser  *parse.Parser
	filter  *filter
	encOpts []encode.EncodeOption
	workers int
	counts  counts
}

// run parses the lines of r on p.workers sessions and writes the results
// to w in input order.
func (p *pipeline) run(ctx context.Context, r io.Reader, w io.Writer) error {
	g, ctx := errgroup.WithContext(ctx)
	work := make(chan *batch, p.workers)
	ordered := make(chan *batch, 2*p.workers)

	g.Go(func() error {
		defer close(work)
		defer close(ordered)
		return p.read(ctx, r, work, ordered)
	})
	for range p.workers {
		g.Go(func() error {
			sess := p.parser.NewSession()
			var machine vm.VM
			for b := range work {
				err := p.process(sess, &machine, b)
				close(b.done)
				if err != nil {
					return err
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		for b := range ordered {
			select {
			case <-b.done:
			case <-ctx.Done():
				return ctx.Err()
			}
			if _, err := w.Write(b.out.Bytes()); err != nil {
				return err
			}
		}
		return nil
	})
	return g.Wait()
}

func (p *pipeline) read(ctx context.Context, r io.Reader, work, ordered chan<- *batch) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64<<10), maxLineBytes)
	b := &batch{done: make(chan struct{})}
	send := func() error {
		for _, ch := range []chan<- *batch{ordered, work} {
			select {
			case ch <- b:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		b = &batch{done: make(chan struct{})}
		return nil
	}
	for sc.Scan() {
		b.data = append(b.data, sc.Bytes()...)
		b.ends = append(b.ends, len(b.data))
		if len(b.ends) == batchLines {
			if err := send(); err != nil {
				return err
			}
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if len(b.ends) == 0 {
		return nil
	}
	return send()
}

func (p *pipeline) process(sess *parse.Session, machine *vm.VM, b *batch) error {
	for line := range b.lines {
		p.counts.lines.Add(1)
		rec, err := sess.Parse(line)
		if errors.Is(err, parse.ErrEmpty) {
			continue
		}
		if err != nil {
			p.counts.failed.Add(1)
			theLog.Debug("unparsed line", "error", err)
			if p.filter == nil {
				b.out.Write(line)
				b.out.WriteByte('\n')
			}
			continue
		}
		p.counts.parsed.Add(1)
		if p.filter != nil {
			ok, err := p.filter.match(machine, rec)
			if err != nil {
				theLog.Debug("filter failed", "error", err)
			}
			if !ok {
				p.counts.filtered.Add(1)
				continue
			}
		}
		if err := encode.Encode(rec, &b.out, p.encOpts...); err != nil {
			return err
		}
	}
	return nil
}
