package record

import (
	"math"
	"strconv"
	"time"

	"github.com/signadot/logv/settings"
)

// Timestamp is the unparsed time of an entry.
type Timestamp struct {
	Raw  string
	Unit settings.UnixUnit
}

var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// Time interprets the timestamp as RFC 3339 text or as a unix time. Unix
// times are read in Unit, or in a unit guessed from their magnitude.
func (t Timestamp) Time() (time.Time, bool) {
	if len(t.Raw) == 0 {
		return time.Time{}, false
	}
	if c := t.Raw[0]; c != '-' && (c < '0' || c > '9') {
		return time.Time{}, false
	}
	if i, err := strconv.ParseInt(t.Raw, 10, 64); err == nil {
		return fromInt(i, t.unit(float64(i))), true
	}
	for _, layout := range layouts {
		if tm, err := time.Parse(layout, t.Raw); err == nil {
			return tm, true
		}
	}
	f, err := strconv.ParseFloat(t.Raw, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return time.Time{}, false
	}
	secs := f / perSecond(t.unit(f))
	whole := math.Floor(secs)
	return time.Unix(int64(whole), int64(math.Round((secs-whole)*1e9))), true
}

func (t Timestamp) unit(v float64) settings.UnixUnit {
	if t.Unit != settings.UnixAuto {
		return t.Unit
	}
	switch v = math.Abs(v); {
	case v < 1e11:
		return settings.UnixSeconds
	case v < 1e14:
		return settings.UnixMilliseconds
	case v < 1e17:
		return settings.UnixMicroseconds
	default:
		return settings.UnixNanoseconds
	}
}

func perSecond(u settings.UnixUnit) float64 {
	switch u {
	case settings.UnixMilliseconds:
		return 1e3
	case settings.UnixMicroseconds:
		return 1e6
	case settings.UnixNanoseconds:
		return 1e9
	default:
		return 1
	}
}

func fromInt(i int64, u settings.UnixUnit) time.Time {
	switch u {
	case settings.UnixMilliseconds:
		return time.UnixMilli(i)
	case settings.UnixMicroseconds:
		return time.UnixMicro(i)
	case settings.UnixNanoseconds:
		return time.Unix(0, i)
	default:
		return time.Unix(i, 0)
	}
}
