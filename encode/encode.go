package encode

import (
	"io"
	"iter"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/signadot/logv/ast"
	"github.com/signadot/logv/encstr"
	"github.com/signadot/logv/record"
)

// DefaultTimeFormat is the layout of parsed timestamps in text output.
const DefaultTimeFormat = "2006-01-02 15:04:05.000"

type EncState struct {
	json       bool
	hidden     bool
	timeFormat string
	loc        *time.Location

	Color      func(ast.Kind, ColorAttr, string) string
	LevelColor func(record.Level, string) string

	buf []byte
}

// Encode writes rec to w followed by a newline.
func Encode(rec *record.Record, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		timeFormat: DefaultTimeFormat,
		loc:        time.UTC,
	}
	for _, opt := range opts {
		opt(es)
	}
	if es.json {
		es.encodeJSON(rec)
	} else {
		es.encodeText(rec)
	}
	es.buf = append(es.buf, '\n')
	_, err := w.Write(es.buf)
	return err
}

func (es *EncState) color(k ast.Kind, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(k, a, s)
}

func (es *EncState) sep() {
	if len(es.buf) != 0 {
		es.buf = append(es.buf, ' ')
	}
}

func (es *EncState) fields(rec *record.Record) iter.Seq[record.Field] {
	if es.hidden {
		return rec.FieldsForSearch()
	}
	return rec.Fields()
}

func (es *EncState) encodeText(rec *record.Record) {
	if ts, ok := rec.Time(); ok {
		s := ts.Raw
		if tm, ok := ts.Time(); ok {
			s = tm.In(es.loc).Format(es.timeFormat)
		}
		es.buf = append(es.buf, es.color(ast.KindString, TimeColor, s)...)
	}
	if lvl, ok := rec.Level(); ok {
		es.sep()
		s := "|" + LevelName(lvl) + "|"
		if es.LevelColor != nil {
			s = es.LevelColor(lvl, s)
		}
		es.buf = append(es.buf, s...)
	}
	if lg, ok := rec.Logger(); ok {
		es.sep()
		es.buf = append(es.buf, es.color(ast.KindString, LoggerColor, lg+":")...)
	}
	if msg, ok := rec.MessageValue(); ok {
		es.sep()
		es.buf = append(es.buf, es.color(ast.KindString, MessageColor, messageText(msg))...)
	}
	for f := range es.fields(rec) {
		es.sep()
		es.buf = append(es.buf, es.color(ast.KindField, FieldColor, f.Key.String())...)
		es.buf = append(es.buf, es.color(f.Value.Kind(), SepColor, "=")...)
		es.buf = append(es.buf, es.color(f.Value.Kind(), ValueColor, string(appendTextValue(nil, f.Value)))...)
	}
	if c, ok := rec.Caller(); ok {
		es.sep()
		es.buf = append(es.buf, es.color(ast.KindString, CallerColor, "@ "+c.String())...)
	}
}

func (es *EncState) encodeJSON(rec *record.Record) {
	es.buf = append(es.buf, '{')
	n := 0
	key := func(k string) {
		if n != 0 {
			es.buf = append(es.buf, ',')
		}
		n++
		es.buf = encstr.AppendQuoted(es.buf, k)
		es.buf = append(es.buf, ':')
	}
	if ts, ok := rec.Time(); ok {
		key("time")
		s := ts.Raw
		if tm, ok := ts.Time(); ok {
			s = tm.In(es.loc).Format(time.RFC3339Nano)
		}
		es.buf = encstr.AppendQuoted(es.buf, s)
	}
	if lvl, ok := rec.Level(); ok {
		key("level")
		es.buf = encstr.AppendQuoted(es.buf, lvl.String())
	}
	if lg, ok := rec.Logger(); ok {
		key("logger")
		es.buf = encstr.AppendQuoted(es.buf, lg)
	}
	if msg, ok := rec.MessageValue(); ok {
		key("message")
		es.buf = appendJSON(es.buf, msg)
	}
	if c, ok := rec.Caller(); ok {
		key("caller")
		es.buf = encstr.AppendQuoted(es.buf, c.String())
	}
	for f := range es.fields(rec) {
		if n != 0 {
			es.buf = append(es.buf, ',')
		}
		n++
		es.buf = appendStringJSON(es.buf, f.Key)
		es.buf = append(es.buf, ':')
		es.buf = appendJSON(es.buf, f.Value)
	}
	es.buf = append(es.buf, '}')
}

// messageText writes composite messages as JSON.
func messageText(v record.Value) string {
	switch v.Kind() {
	case ast.KindString:
		return v.String().String()
	case ast.KindArray, ast.KindObject:
		return string(appendJSON(nil, v))
	default:
		return v.Scalar().AsText().Source()
	}
}

// appendTextValue writes strings bare unless they would be ambiguous in
// key=value output, and composites as JSON.
func appendTextValue(dst []byte, v record.Value) []byte {
	switch v.Kind() {
	case ast.KindString:
		s := v.String().String()
		if needsQuotes(s) {
			return encstr.AppendQuoted(dst, s)
		}
		return append(dst, s...)
	case ast.KindArray, ast.KindObject:
		return appendJSON(dst, v)
	default:
		return append(dst, v.Scalar().AsText().Source()...)
	}
}

func needsQuotes(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if r == ' ' || r == '=' || r == '"' || r == utf8.RuneError || !unicode.IsPrint(r) {
			return true
		}
	}
	return false
}

func appendJSON(dst []byte, v record.Value) []byte {
	switch v.Kind() {
	case ast.KindArray:
		dst = append(dst, '[')
		i := 0
		for e := range v.Elems() {
			if i != 0 {
				dst = append(dst, ',')
			}
			i++
			dst = appendJSON(dst, e)
		}
		return append(dst, ']')
	case ast.KindObject:
		dst = append(dst, '{')
		i := 0
		for f := range v.Fields() {
			if i != 0 {
				dst = append(dst, ',')
			}
			i++
			dst = appendStringJSON(dst, f.Key)
			dst = append(dst, ':')
			dst = appendJSON(dst, f.Value)
		}
		return append(dst, '}')
	default:
		return appendScalarJSON(dst, v.Scalar())
	}
}

func appendScalarJSON(dst []byte, v ast.Value) []byte {
	switch v.Kind {
	case ast.KindString:
		return appendStringJSON(dst, v.Text)
	case ast.KindNull, ast.KindBool, ast.KindNumber:
		return append(dst, v.AsText().Source()...)
	default:
		return append(dst, "null"...)
	}
}

// appendStringJSON reuses JSON sources, which lexers have validated.
func appendStringJSON(dst []byte, s encstr.String) []byte {
	if s.Encoding() == encstr.JSONEncoding {
		return append(dst, s.Source()...)
	}
	return encstr.AppendQuoted(dst, s.Source())
}
