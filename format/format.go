package format

import (
	"errors"
	"fmt"
)

type Format int

const (
	JSONFormat Format = iota
	LogfmtFormat
	AutoFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	switch v {
	case "j", "json":
		return JSONFormat, nil
	case "l", "logfmt":
		return LogfmtFormat, nil
	case "a", "auto":
		return AutoFormat, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case JSONFormat:
		return []byte("json"), nil
	case LogfmtFormat:
		return []byte("logfmt"), nil
	case AutoFormat:
		return []byte("auto"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsJSON() bool   { return f == JSONFormat }
func (f Format) IsLogfmt() bool { return f == LogfmtFormat }
func (f Format) IsAuto() bool   { return f == AutoFormat }

// AllFormats returns the concrete formats in detection order.
func AllFormats() []Format {
	return []Format{JSONFormat, LogfmtFormat}
}
