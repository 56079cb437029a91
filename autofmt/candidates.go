package autofmt

import (
	"fmt"

	"github.com/signadot/logv/format"
	"github.com/signadot/logv/jsonfmt"
	"github.com/signadot/logv/logfmt"
)

// MaxCandidates bounds the number of formats tried per entry.
const MaxCandidates = 8

// Stats counts detection work.
type Stats struct {
	// Entries is the number of entries parsed successfully.
	Entries int
	// Attempts counts every candidate tried, failed or not.
	Attempts int
	// Rotations counts switches to another candidate within an entry.
	Rotations int
	// Detections counts entries whose format had to be determined: the
	// first entry and every entry that needed a rotation.
	Detections int
}

func checkCandidates(fs []format.Format) error {
	if len(fs) == 0 {
		return ErrNoCandidates
	}
	if len(fs) > MaxCandidates {
		return fmt.Errorf("%w: %d > %d", ErrTooManyCandidates, len(fs), MaxCandidates)
	}
	for i, f := range fs {
		if f != format.JSONFormat && f != format.LogfmtFormat {
			return fmt.Errorf("%w: %s", ErrBadCandidate, f)
		}
		for _, g := range fs[:i] {
			if f == g {
				return fmt.Errorf("%w: duplicate %s", ErrBadCandidate, f)
			}
		}
	}
	return nil
}

func newLexer(f format.Format, data []byte) format.Lexer {
	if f == format.JSONFormat {
		return jsonfmt.NewLexer(data)
	}
	return logfmt.NewLexer(data)
}

func newParser(f format.Format, data []byte) format.Parser {
	if f == format.JSONFormat {
		return jsonfmt.NewParser(data)
	}
	return logfmt.NewParser(data)
}

// untried returns the first candidate index not set in tried.
func untried(tried uint8, n int) (int, bool) {
	for i := range n {
		if tried&(1<<i) == 0 {
			return i, true
		}
	}
	return 0, false
}
