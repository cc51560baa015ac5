package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/scott-cotton/cli"
	"github.com/uyjulian/psbfile"
	"github.com/uyjulian/psbfile/encode"
	"github.com/uyjulian/psbfile/eval"
	"github.com/uyjulian/psbfile/value"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: get requires a path or expression and at least one file", cli.ErrUsage)
	}
	query := args[0]
	if query == "" {
		return fmt.Errorf("%w: invalid query \"\"", cli.ErrUsage)
	}
	for i, file := range args[1:] {
		if i > 0 {
			if _, err := io.WriteString(cc.Out, "---\n"); err != nil {
				return err
			}
		}
		if err := getFile(cfg, cc.Out, file, query); err != nil {
			return fmt.Errorf("error querying %s with %s: %w", file, query, err)
		}
	}
	return nil
}

func getFile(cfg *GetConfig, w io.Writer, file, query string) error {
	f, err := psbfile.Open(file, psbfile.WithConvertOptions(cfg.convertOpts()...))
	if err != nil {
		return err
	}
	res, err := query1(f.Root(), query)
	if err != nil {
		return err
	}
	if res == nil {
		res = value.Null()
	}
	return encode.Encode(res, w, cfg.encOpts(w)...)
}

func query1(root *value.Value, query string) (*value.Value, error) {
	if strings.HasPrefix(query, "$") {
		return root.GetPath(query)
	}
	return eval.Eval(query, root)
}
