package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/scott-cotton/cli"

	"github.com/signadot/logv/parse"
)

func logvMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.V {
		logLevel.Set(slog.LevelDebug)
	}
	if cfg.P < 1 {
		return fmt.Errorf("%w: -P must be positive", cli.ErrUsage)
	}
	pOpts, err := cfg.parseOpts()
	if err != nil {
		return err
	}
	parser, err := parse.New(pOpts...)
	if err != nil {
		return err
	}
	p := &pipeline{
		parser:  parser,
		encOpts: cfg.encOpts(cc.Out),
		workers: cfg.P,
	}
	if cfg.Where != "" {
		p.filter, err = newFilter(cfg.Where)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	for _, name := range args {
		if err := p.runFile(ctx, cc, name); err != nil {
			return err
		}
	}
	theLog.Info("done",
		"lines", p.counts.lines.Load(),
		"parsed", p.counts.parsed.Load(),
		"failed", p.counts.failed.Load(),
		"filtered", p.counts.filtered.Load(),
		"format", parser.Format())
	return nil
}

func (p *pipeline) runFile(ctx context.Context, cc *cli.Context, name string) error {
	in, err := openInput(name, cc.In)
	if err != nil {
		return err
	}
	defer in.Close()
	if err := p.run(ctx, in, cc.Out); err != nil {
		return fmt.Errorf("error processing %s: %w", name, err)
	}
	return nil
}
