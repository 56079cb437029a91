package parse

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/sync/errgroup"

	"github.com/signadot/logv/autofmt"
	"github.com/signadot/logv/format"
	"github.com/signadot/logv/record"
	"github.com/signadot/logv/settings"
	"github.com/signadot/logv/token"
)

func newParser(t *testing.T, opts ...ParseOption) *Parser {
	t.Helper()
	p, err := New(opts...)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func message(t *testing.T, rec *record.Record) string {
	t.Helper()
	v, ok := rec.Message()
	if !ok {
		return ""
	}
	s, err := v.Text.Text()
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSessionDetectsFormats(t *testing.T) {
	sess := newParser(t).NewSession()
	type result struct {
		Format  format.Format
		Level   record.Level
		Message string
		Fields  []string
	}
	var got []result
	for _, line := range []string{
		`{"level":"info","msg":"started","port":8080}`,
		`level=error msg="lost \"peer\"" peer=10.0.0.2`,
		`level=debug msg=again`,
	} {
		rec, err := sess.Parse([]byte(line))
		if err != nil {
			t.Fatalf("%s: %v", line, err)
		}
		lvl, _ := rec.Level()
		r := result{Format: sess.Format(), Level: lvl, Message: message(t, rec), Fields: []string{}}
		for f := range rec.Fields() {
			r.Fields = append(r.Fields, f.Key.String())
		}
		got = append(got, r)
	}
	want := []result{
		{format.JSONFormat, record.LevelInfo, "started", []string{"port"}},
		{format.LogfmtFormat, record.LevelError, `lost "peer"`, []string{"peer"}},
		{format.LogfmtFormat, record.LevelDebug, "again", []string{}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Error(diff)
	}
	if st := sess.Stats(); st.Detections != 2 || st.Entries != 3 {
		t.Errorf("stats %+v", st)
	}
}

func TestSessionErrors(t *testing.T) {
	sess := newParser(t, WithFormat(format.JSONFormat)).NewSession()
	if _, err := sess.Parse([]byte("  \n")); !errors.Is(err, ErrEmpty) || !errors.Is(err, ErrParse) {
		t.Errorf("empty: %v", err)
	}
	_, err := sess.Parse([]byte(`{"a":`))
	if !errors.Is(err, ErrParse) || !errors.Is(err, token.ErrUnexpectedEOF) {
		t.Errorf("truncated: %v", err)
	}
	if sp, ok := token.SpanOf(err); !ok || sp.Start != 5 {
		t.Errorf("span %v %v", sp, ok)
	}
	if _, err := sess.Parse([]byte(`[1,2]`)); !errors.Is(err, record.ErrNotObject) {
		t.Errorf("array: %v", err)
	}
	rec, err := sess.Parse([]byte(`{"msg":"fine"}`))
	if err != nil {
		t.Fatal(err)
	}
	if got := message(t, rec); got != "fine" {
		t.Errorf("message %q", got)
	}
	if sess.Entry().Span != (token.Span{Start: 0, End: 14}) {
		t.Errorf("entry %v", sess.Entry())
	}
}

func TestSessionExhausted(t *testing.T) {
	sess := newParser(t).NewSession()
	_, err := sess.Parse([]byte(`{"a" oops`))
	if !errors.Is(err, autofmt.ErrNoFormat) {
		t.Fatalf("got %v", err)
	}
	var ex *autofmt.ExhaustedError
	if !errors.As(err, &ex) || len(ex.Errs) != 2 {
		t.Errorf("got %#v", ex)
	}
}

func TestOptions(t *testing.T) {
	s := settings.Default()
	s.Ignore = []string{"secret*"}
	p := newParser(t,
		WithFormat(format.LogfmtFormat),
		WithSettings(s),
		WithMaxDepth(3),
		WithCapacity(32),
	)
	if p.Settings().MaxDepth() != 3 {
		t.Errorf("max depth %d", p.Settings().MaxDepth())
	}
	rec, err := p.NewSession().Parse([]byte("msg=hi secret_token=abc user=bob"))
	if err != nil {
		t.Fatal(err)
	}
	var keys []string
	for f := range rec.FieldsForSearch() {
		keys = append(keys, f.Key.String())
	}
	if diff := cmp.Diff([]string{"msg", "user"}, keys); diff != "" {
		t.Error(diff)
	}

	if _, err := New(WithCandidates(format.AutoFormat)); !errors.Is(err, autofmt.ErrBadCandidate) {
		t.Errorf("candidates: %v", err)
	}
	bad := settings.Default()
	bad.Ignore = []string{"[x"}
	if _, err := New(WithSettings(bad)); !errors.Is(err, record.ErrBadPattern) {
		t.Errorf("settings: %v", err)
	}
}

func TestSessionsInParallel(t *testing.T) {
	p := newParser(t)
	var g errgroup.Group
	for w := range 4 {
		g.Go(func() error {
			sess := p.NewSession()
			for i := range 50 {
				line := fmt.Sprintf(`{"msg":"w%d-%d","n":%d}`, w, i, i)
				if i%2 == 1 {
					line = fmt.Sprintf(`msg=w%d-%d n=%d`, w, i, i)
				}
				rec, err := sess.Parse([]byte(line))
				if err != nil {
					return err
				}
				v, _ := rec.Message()
				txt, _ := v.Text.Text()
				if want := fmt.Sprintf("w%d-%d", w, i); txt != want {
					return fmt.Errorf("got message %q want %q", txt, want)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}

func TestSessionTrailingData(t *testing.T) {
	sess := newParser(t).NewSession()
	line := `{"a":1} x=2 junk`
	_, err := sess.Parse([]byte(line))
	if !errors.Is(err, ErrTrailing) || !errors.Is(err, ErrParse) {
		t.Fatalf("got %v", err)
	}
	if sp, ok := token.SpanOf(err); !ok || sp != (token.Span{Start: 7, End: len(line)}) {
		t.Errorf("span %v %v", sp, ok)
	}
	rec, err := sess.Parse([]byte("{\"msg\":\"ok\"}  \r"))
	if err != nil {
		t.Fatal(err)
	}
	if got := message(t, rec); got != "ok" {
		t.Errorf("message %q", got)
	}
}
