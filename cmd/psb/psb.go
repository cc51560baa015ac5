package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
	"github.com/uyjulian/psbfile/archive"
	"github.com/uyjulian/psbfile/node"
)

// Exit codes for failures reading or converting archives. Other errors,
// such as a difference found by diff, keep their own codes.
const (
	exitBadArchive = 2
	exitIO         = 3
)

func psbMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer cfg.closeOut()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if err := cfg.setup(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: try 'psb convert file.psb' or 'psb types'", cli.ErrNoCommandProvided)
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	if code := exitCode(err); code != 0 {
		cfg.logger().Error(err.Error())
		return cli.ExitCodeErr(code)
	}
	return err
}

// setup checks the output selection and fills in options from the
// configuration file.
func (cfg *MainConfig) setup() error {
	if count(cfg.T, cfg.J, cfg.Y) > 1 {
		return fmt.Errorf("%w: must specify at most one of -j[son] -t[ony] -y[aml]", cli.ErrUsage)
	}
	if cfg.MaxDepth < 0 {
		return fmt.Errorf("%w: negative -maxdepth %d", cli.ErrUsage, cfg.MaxDepth)
	}
	return cfg.loadFileConfig(os.Getenv(configEnv))
}

// exitCode maps archive failures to their exit code, or 0 for errors the
// cli package reports itself.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, archive.ErrIO):
		return exitIO
	case errors.Is(err, node.ErrFormat),
		errors.Is(err, node.ErrTypeMismatch),
		errors.Is(err, node.ErrUnsupportedType),
		errors.Is(err, node.ErrInvalidNumberType),
		errors.Is(err, node.ErrEncoding):
		return exitBadArchive
	}
	return 0
}

func count(vs ...bool) int {
	ttl := 0
	for _, v := range vs {
		if v {
			ttl++
		}
	}
	return ttl
}

func (cfg *MainConfig) closeOut() {
	if cfg.CloseOut == nil {
		return
	}
	if err := cfg.CloseOut(); err != nil {
		cfg.logger().Error("closing output", "file", cfg.Out, "error", err)
	}
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
