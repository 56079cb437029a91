package settings

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadOverridesDefaults(t *testing.T) {
	s, err := Load(strings.NewReader(`
fields:
  message:
    names: [text, some.deep.message]
  caller-file:
    names: [file]
ignore: [kubernetes, "agent*"]
unix-timestamp-unit: ms
`))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"text", "some.deep.message"}, s.Fields.Message.Names); diff != "" {
		t.Error(diff)
	}
	if diff := cmp.Diff([]string{"file"}, s.Fields.CallerFile.Names); diff != "" {
		t.Error(diff)
	}
	if diff := cmp.Diff(Default().Fields.Time, s.Fields.Time); diff != "" {
		t.Errorf("time names changed: %s", diff)
	}
	if len(s.Ignore) != 2 || s.UnixTimestampUnit != UnixMilliseconds {
		t.Errorf("ignore %v unit %s", s.Ignore, s.UnixTimestampUnit)
	}
}

func TestLoadEmpty(t *testing.T) {
	s, err := Load(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), s); diff != "" {
		t.Error(diff)
	}
}

func TestLoadBadUnit(t *testing.T) {
	_, err := Load(strings.NewReader("unix-timestamp-unit: weeks\n"))
	if err == nil {
		t.Error("expected error")
	}
	if _, err := ParseUnixUnit("weeks"); !errors.Is(err, ErrBadUnit) {
		t.Errorf("got %v", err)
	}
}
