package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

type input struct {
	io.Reader
	closers []func() error
}

func (in *input) Close() error {
	var first error
	for i := len(in.closers) - 1; i >= 0; i-- {
		if err := in.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// openInput opens name, decompressing by suffix. "-" is stdin.
func openInput(name string, stdin io.Reader) (*input, error) {
	if name == "-" {
		return &input{Reader: stdin}, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", name, err)
	}
	in := &input{Reader: f, closers: []func() error{f.Close}}
	switch filepath.Ext(name) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		in.Reader = zr
		in.closers = append(in.closers, zr.Close)
	case ".zst", ".zstd":
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		in.Reader = zr
		in.closers = append(in.closers, func() error { zr.Close(); return nil })
	case ".lz4":
		in.Reader = lz4.NewReader(f)
	}
	return in, nil
}
