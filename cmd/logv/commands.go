package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{P: defaultWorkers()}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: json/j, logfmt/l, auto/a",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		},
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "logv").
		WithSynopsis("logv [opts] [files]").
		WithDescription("logv shows JSON and logfmt logs in a uniform, readable way. " +
			"Files ending in .gz, .zst or .lz4 are decompressed; - or no files reads stdin.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return logvMain(cfg, cc, args)
		})
}
