package encode

import (
	"time"

	"github.com/signadot/logv/record"
)

type EncodeOption func(*EncState)

// EncodeJSON writes one normalized JSON object per record.
func EncodeJSON(v bool) EncodeOption {
	return func(es *EncState) { es.json = v }
}

// EncodeHidden writes the fields claimed by predefined fields along with
// the others.
func EncodeHidden(v bool) EncodeOption {
	return func(es *EncState) { es.hidden = v }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		es.Color = c.Color
		es.LevelColor = c.Level
	}
}

// EncodeTimeFormat sets the layout of parsed timestamps in text output.
func EncodeTimeFormat(layout string) EncodeOption {
	return func(es *EncState) { es.timeFormat = layout }
}

// EncodeLocation sets the time zone timestamps are shown in. The default
// is UTC.
func EncodeLocation(loc *time.Location) EncodeOption {
	return func(es *EncState) { es.loc = loc }
}

// LevelName returns the fixed width label of a level in text output.
func LevelName(l record.Level) string {
	switch l {
	case record.LevelTrace:
		return "TRC"
	case record.LevelDebug:
		return "DBG"
	case record.LevelInfo:
		return "INF"
	case record.LevelWarning:
		return "WRN"
	case record.LevelError:
		return "ERR"
	default:
		return "???"
	}
}
