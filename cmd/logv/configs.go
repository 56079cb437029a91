package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/logv/encode"
	"github.com/signadot/logv/format"
	"github.com/signadot/logv/parse"
	"github.com/signadot/logv/settings"
)

type MainConfig struct {
	J      bool   `cli:"name=j aliases=json desc='output normalized json'"`
	Color  bool   `cli:"name=color desc='output with color'"`
	Hidden bool   `cli:"name=H aliases=hidden desc='also show fields used for time, level, message, logger and caller'"`
	Where  string `cli:"name=where desc='only show records for which this expression is true'"`
	Ignore string `cli:"name=ignore desc='comma separated globs of top level fields to drop'"`
	Config string `cli:"name=config desc='settings file (yaml)'"`
	P      int    `cli:"name=P desc='number of parsing workers'"`
	V      bool   `cli:"name=v desc='verbose logging'"`

	InFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func defaultWorkers() int {
	return max(1, runtime.GOMAXPROCS(0))
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) loadSettings() (*settings.Settings, error) {
	s := settings.Default()
	if cfg.Config != "" {
		var err error
		s, err = settings.LoadFile(cfg.Config)
		if err != nil {
			return nil, err
		}
	}
	for _, g := range strings.Split(cfg.Ignore, ",") {
		if g = strings.TrimSpace(g); g != "" {
			s.Ignore = append(s.Ignore, g)
		}
	}
	return s, nil
}

func (cfg *MainConfig) parseOpts() ([]parse.ParseOption, error) {
	s, err := cfg.loadSettings()
	if err != nil {
		return nil, err
	}
	res := []parse.ParseOption{parse.WithSettings(s)}
	if cfg.InFormat != nil {
		res = append(res, parse.WithFormat(*cfg.InFormat))
	}
	return res, nil
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeJSON(cfg.J),
		encode.EncodeHidden(cfg.Hidden),
	}
	if cfg.J {
		return res
	}
	if cfg.Color {
		return append(res, encode.EncodeColors(encode.NewColors()))
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}
