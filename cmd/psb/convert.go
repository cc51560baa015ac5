package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
	"github.com/uyjulian/psbfile"
	"github.com/uyjulian/psbfile/encode"
)

func convertFiles(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: convert requires at least one file", cli.ErrUsage)
	}
	for i, file := range args {
		if i > 0 {
			if _, err := io.WriteString(cc.Out, "---\n"); err != nil {
				return err
			}
		}
		if err := convertFile(cfg, cc.Out, file); err != nil {
			return err
		}
	}
	return nil
}

func convertFile(cfg *ConvertConfig, w io.Writer, file string) error {
	opts := []psbfile.Option{psbfile.WithConvertOptions(cfg.convertOpts()...)}
	if cfg.Dump {
		opts = append(opts, psbfile.WithDumpTo(os.Stderr))
	}
	f, err := psbfile.Open(file, opts...)
	if err != nil {
		return err
	}
	cfg.logger().Debug("converted", "file", file, "kind", f.Root().Kind)
	if err := encode.Encode(f.Root(), w, cfg.encOpts(w)...); err != nil {
		return fmt.Errorf("error encoding %s: %w", file, err)
	}
	return nil
}
