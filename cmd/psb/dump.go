package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/scott-cotton/cli"
	"github.com/uyjulian/psbfile/archive"
	"github.com/uyjulian/psbfile/dump"
)

func dumpFiles(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: dump requires at least one file", cli.ErrUsage)
	}
	if cfg.Indent < 0 {
		return fmt.Errorf("%w: negative indent %d", cli.ErrUsage, cfg.Indent)
	}
	opts := []dump.Option{dump.WithMaxDepth(cfg.MaxDepth)}
	if cfg.Indent != 0 {
		opts = append(opts, dump.WithIndent(strings.Repeat(" ", cfg.Indent)))
	}
	for i, file := range args {
		if i > 0 {
			if _, err := io.WriteString(cc.Out, "---\n"); err != nil {
				return err
			}
		}
		r, err := archive.Open(file)
		if err != nil {
			return err
		}
		if err := dump.Dump(r.Root(), r, cc.Out, opts...); err != nil {
			return fmt.Errorf("error dumping %s: %w", file, err)
		}
	}
	return nil
}
