package debug

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/signadot/logv/encstr"
	"github.com/signadot/logv/token"
)

var theLog = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
	Level: slog.LevelDebug,
	ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey {
			return slog.Attr{}
		}
		return a
	},
}))

// Logger returns the debug logger.
func Logger() *slog.Logger { return theLog }

// Logf formats msg with args and writes it at debug level. Encoded strings
// are written decoded and spans as start..end.
func Logf(msg string, args ...any) {
	for i, a := range args {
		switch x := a.(type) {
		case encstr.String:
			if s, err := x.Text(); err == nil {
				args[i] = s
			} else {
				args[i] = x.Source()
			}
		case token.Span:
			args[i] = x.String()
		}
	}
	theLog.Debug(fmt.Sprintf(msg, args...))
}
