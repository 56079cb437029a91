package settings

import (
	"errors"
	"fmt"
)

// UnixUnit is the unit of numeric timestamps.
type UnixUnit int

const (
	UnixAuto UnixUnit = iota
	UnixSeconds
	UnixMilliseconds
	UnixMicroseconds
	UnixNanoseconds
)

var ErrBadUnit = errors.New("bad unix timestamp unit")

func ParseUnixUnit(v string) (UnixUnit, error) {
	switch v {
	case "", "auto":
		return UnixAuto, nil
	case "s", "sec", "seconds":
		return UnixSeconds, nil
	case "ms", "milliseconds":
		return UnixMilliseconds, nil
	case "us", "microseconds":
		return UnixMicroseconds, nil
	case "ns", "nanoseconds":
		return UnixNanoseconds, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadUnit, v)
}

func (u UnixUnit) String() string {
	d, err := u.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (u UnixUnit) MarshalText() ([]byte, error) {
	switch u {
	case UnixAuto:
		return []byte("auto"), nil
	case UnixSeconds:
		return []byte("s"), nil
	case UnixMilliseconds:
		return []byte("ms"), nil
	case UnixMicroseconds:
		return []byte("us"), nil
	case UnixNanoseconds:
		return []byte("ns"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a unit>", u)
	}
}

func (u *UnixUnit) UnmarshalText(d []byte) error {
	pu, err := ParseUnixUnit(string(d))
	if err != nil {
		return err
	}
	*u = pu
	return nil
}
