package main

import (
	"fmt"
	"io"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"
	"github.com/uyjulian/psbfile"
	"github.com/uyjulian/psbfile/encode"
	"github.com/uyjulian/psbfile/libdiff"
	"github.com/uyjulian/psbfile/value"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := psbfile.Open(args[0], psbfile.WithConvertOptions(cfg.convertOpts()...))
	if err != nil {
		return err
	}
	b, err := psbfile.Open(args[1], psbfile.WithConvertOptions(cfg.convertOpts()...))
	if err != nil {
		return err
	}
	from, to := a.Root(), b.Root()
	if cfg.Reverse {
		from, to = to, from
	}
	var differs bool
	if cfg.Merge {
		differs, err = mergePatch(cc.Out, from, to)
	} else {
		differs, err = diffValues(cfg, cc.Out, from, to)
	}
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func diffValues(cfg *DiffConfig, w io.Writer, from, to *value.Value) (bool, error) {
	d := libdiff.Diff(from, to)
	if d == nil {
		return false, nil
	}
	if err := encode.Encode(d, w, cfg.encOpts(w)...); err != nil {
		return false, err
	}
	return true, nil
}

func mergePatch(w io.Writer, from, to *value.Value) (bool, error) {
	if value.Equal(from, to) {
		return false, nil
	}
	a, err := from.MarshalJSON()
	if err != nil {
		return false, err
	}
	b, err := to.MarshalJSON()
	if err != nil {
		return false, err
	}
	p, err := jsonpatch.CreateMergePatch(a, b)
	if err != nil {
		return false, fmt.Errorf("error creating merge patch: %w", err)
	}
	if _, err := w.Write(append(p, '\n')); err != nil {
		return false, err
	}
	return true, nil
}
