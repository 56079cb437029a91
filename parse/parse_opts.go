package parse

import (
	"github.com/signadot/logv/format"
	"github.com/signadot/logv/settings"
)

type parseOpts struct {
	format     format.Format
	candidates []format.Format
	settings   *settings.Settings
	maxDepth   int
	capacity   int
}

type ParseOption func(*parseOpts)

// WithFormat selects the input format. The default is format.AutoFormat.
func WithFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}

// WithCandidates sets the formats tried, in order, by automatic detection.
func WithCandidates(fs ...format.Format) ParseOption {
	return func(o *parseOpts) { o.candidates = fs }
}

func WithSettings(s *settings.Settings) ParseOption {
	return func(o *parseOpts) { o.settings = s }
}

// WithMaxDepth bounds the nesting kept in records. See record.DefaultMaxDepth.
func WithMaxDepth(n int) ParseOption {
	return func(o *parseOpts) { o.maxDepth = n }
}

// WithCapacity reserves room for n nodes in every session's container.
func WithCapacity(n int) ParseOption {
	return func(o *parseOpts) { o.capacity = n }
}
