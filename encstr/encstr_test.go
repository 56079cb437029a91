package encstr

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func collect(t *testing.T, s String) []Token {
	t.Helper()
	var res []Token
	ts := s.Tokens()
	for {
		tok, err := ts.Next()
		if err == io.EOF {
			return res
		}
		if err != nil {
			t.Fatalf("%s: %v", s.Source(), err)
		}
		res = append(res, tok)
	}
}

func TestRawTokens(t *testing.T) {
	s := Raw("hello, world!")
	got := collect(t, s)
	want := []Token{SequenceToken("hello, world!")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Error(diff)
	}
	if got := collect(t, Raw("")); len(got) != 0 {
		t.Errorf("empty raw string yielded %v", got)
	}
}

func TestJSONTokens(t *testing.T) {
	s := JSON(`"hello, \"world\"!"`)
	got := collect(t, s)
	want := []Token{
		SequenceToken("hello, "),
		CharToken('"'),
		SequenceToken("world"),
		CharToken('"'),
		SequenceToken("!"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Error(diff)
	}
	ts := s.Tokens()
	for range want {
		ts.Next()
	}
	for range 2 {
		if _, err := ts.Next(); err != io.EOF {
			t.Errorf("expected io.EOF after exhaustion, got %v", err)
		}
	}
}

func TestDecode(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`""`, ""},
		{`"plain"`, "plain"},
		{`"\\\/\b\f\n\r\t"`, "\\/\b\f\n\r\t"},
		{`"\u2023"`, "‣"},
		{`"\u00e9t\u00E9"`, "été"},
		{`"\ud83d\ude00!"`, "😀!"},
		{`"naïve ☃"`, "naïve ☃"},
	}
	for _, c := range cases {
		got, err := JSON(c.in).Text()
		if err != nil {
			t.Errorf("%s: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("%s: got %q want %q", c.in, got, c.want)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		in     string
		err    error
		prefix string
	}{
		{`"ab\x"`, ErrInvalidEscape, "ab"},
		{`"ab\u12"`, ErrUnexpectedEndOfHexEscape, "ab"},
		{`"\u12zz"`, ErrInvalidEscape, ""},
		{`"x\ud83d"`, ErrLoneLeadingSurrogate, "x"},
		{`"x\ud83dabc"`, ErrLoneLeadingSurrogate, "x"},
		{`"\ud83d\u0041"`, ErrInvalidUnicodeCodePoint, ""},
		{`"ok\ude00"`, ErrInvalidUnicodeCodePoint, "ok"},
	}
	for _, c := range cases {
		b := NewBuilder(0)
		err := JSON(c.in).Decode(b)
		if !errors.Is(err, c.err) {
			t.Errorf("%s: got %v want %v", c.in, err, c.err)
		}
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Errorf("%s: expected *DecodeError, got %T", c.in, err)
		}
		if b.String() != c.prefix {
			t.Errorf("%s: prefix %q want %q", c.in, b.String(), c.prefix)
		}
	}
}

func TestInvalidJSONSourcePanics(t *testing.T) {
	for _, src := range []string{``, `"`, `abc`, `"abc`} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("JSON(%q) did not panic", src)
				}
			}()
			JSON(src)
		}()
	}
}

func TestRoundTrip(t *testing.T) {
	var ascii []byte
	for c := byte(0x20); c < 0x7f; c++ {
		ascii = append(ascii, c)
	}
	var ctl []byte
	for c := byte(0); c < 0x20; c++ {
		ctl = append(ctl, c)
	}
	inputs := []string{
		string(ascii),
		string(ctl),
		"multi: héllo wörld ✓ 日本語",
		"astral: 😀 𝄞",
		"",
	}
	for _, in := range inputs {
		first := Quote(in)
		decoded, err := first.Text()
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		second := Quote(decoded)
		again, err := second.Text()
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if again != in {
			t.Errorf("round trip mismatch: %q != %q", again, in)
		}
	}
	// escaped surrogate pairs decode to the same text as literal UTF-8
	got, err := JSON(`"\ud834\udd1e"`).Text()
	if err != nil {
		t.Fatal(err)
	}
	back, err := Quote(got).Text()
	if err != nil || back != "𝄞" {
		t.Errorf("got %q, %v", back, err)
	}
}

func TestChars(t *testing.T) {
	cs := JSON(`"a\täß"`).Chars()
	var got []rune
	for {
		r, err := cs.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, r)
	}
	if diff := cmp.Diff([]rune{'a', '\t', 'ä', 'ß'}, got); diff != "" {
		t.Error(diff)
	}
}

func TestBytes(t *testing.T) {
	d, err := io.ReadAll(JSON(`"x\u2023y"`).Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != "x‣y" {
		t.Errorf("got %q", d)
	}
	r := Raw("ab").Bytes()
	for _, want := range []byte("ab") {
		b, err := r.ReadByte()
		if err != nil || b != want {
			t.Fatalf("got %q, %v", b, err)
		}
	}
	if _, err := r.ReadByte(); err != io.EOF {
		t.Errorf("expected EOF, got %v", err)
	}
}

func TestIgnorerValidates(t *testing.T) {
	if err := JSON(`"fine\n"`).Decode(Ignorer{}); err != nil {
		t.Error(err)
	}
	if err := JSON(`"bad\q"`).Decode(Ignorer{}); !errors.Is(err, ErrInvalidEscape) {
		t.Errorf("got %v", err)
	}
}

func TestEqualUsesEncodedBytes(t *testing.T) {
	if !JSON(`"a"`).Equal(JSON(`"a"`)) {
		t.Error("identical sources should be equal")
	}
	if JSON(`"a"`).Equal(JSON(`"\u0061"`)) {
		t.Error("different encodings of the same text compare unequal")
	}
	m := map[String]int{Raw("k"): 1}
	if m[Raw("k")] != 1 {
		t.Error("String should be usable as a map key")
	}
}

func TestTextNoEscapeNoCopy(t *testing.T) {
	src := `"abc"`
	s := JSON(src)
	if s.NeedsDecoding() {
		t.Error("no escapes present")
	}
	txt, _ := s.Text()
	if txt != "abc" {
		t.Errorf("got %q", txt)
	}
}
