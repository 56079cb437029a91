package encode

import (
	"strings"

	"github.com/fatih/color"

	"github.com/signadot/logv/ast"
	"github.com/signadot/logv/record"
)

type Colorable struct {
	Kind ast.Kind
	Attr ColorAttr
}

type ColorAttr int

const (
	FieldColor ColorAttr = iota
	ValueColor
	SepColor
	TimeColor
	LoggerColor
	MessageColor
	CallerColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
	Levels  map[record.Level]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
		Levels:  map[record.Level]func(string, ...any) string{},
	}
	for _, k := range []ast.Kind{ast.KindNull, ast.KindBool, ast.KindNumber, ast.KindString, ast.KindArray, ast.KindObject} {
		colors.Map[Colorable{Kind: k, Attr: SepColor}] = color.RGB(255, 0, 196).SprintfFunc()
	}
	able := Colorable{Kind: ast.KindField, Attr: FieldColor}
	colors.Map[able] = color.RGB(196, 96, 16).SprintfFunc()

	able.Attr = ValueColor
	able.Kind = ast.KindNumber
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	able.Kind = ast.KindNull
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()
	able.Kind = ast.KindBool
	colors.Map[able] = color.CyanString
	able.Kind = ast.KindString
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()
	able.Kind = ast.KindArray
	colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()
	able.Kind = ast.KindObject
	colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()

	able.Kind = ast.KindString
	able.Attr = TimeColor
	colors.Map[able] = color.RGB(96, 96, 96).SprintfFunc()
	able.Attr = LoggerColor
	colors.Map[able] = color.BlueString
	able.Attr = MessageColor
	colors.Map[able] = color.New(color.Bold).SprintfFunc()
	able.Attr = CallerColor
	colors.Map[able] = color.RGB(96, 96, 96).SprintfFunc()

	colors.Levels[record.LevelTrace] = color.RGB(96, 96, 96).SprintfFunc()
	colors.Levels[record.LevelDebug] = color.MagentaString
	colors.Levels[record.LevelInfo] = color.CyanString
	colors.Levels[record.LevelWarning] = color.YellowString
	colors.Levels[record.LevelError] = color.New(color.FgRed, color.Bold).SprintfFunc()
	for k, f := range colors.Map {
		colors.Map[k] = escapePercent(f)
	}
	for k, f := range colors.Levels {
		colors.Levels[k] = escapePercent(f)
	}
	return colors
}

func escapePercent(f func(string, ...any) string) func(string, ...any) string {
	return func(v string, _ ...any) string {
		return f(strings.ReplaceAll(v, "%", "%%"))
	}
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(k ast.Kind, a ColorAttr, s string) string {
	return c.Get(k, a)(s)
}

func (c *Colors) Get(k ast.Kind, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Kind: k, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}

func (c *Colors) Level(l record.Level, s string) string {
	f := c.Levels[l]
	if f == nil {
		return c.Default(s)
	}
	return f(s)
}
