package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/uyjulian/psbfile/archive"
	"github.com/uyjulian/psbfile/encode"
	"github.com/uyjulian/psbfile/node"
	"github.com/uyjulian/psbfile/value"
)

func types(cfg *TypesConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Types.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: types takes no arguments", cli.ErrUsage)
	}
	return encode.Encode(typesValue(), cc.Out, cfg.encOpts(cc.Out)...)
}

func typesValue() *value.Value {
	strs := func(ss []string) *value.Value {
		res := value.NewArray(len(ss))
		for _, s := range ss {
			res.Append(value.FromString(s))
		}
		return res
	}
	var ts, ns, ks []string
	for _, t := range node.Types() {
		ts = append(ts, t.String())
	}
	for _, n := range node.NumberSubtypes() {
		ns = append(ns, n.String())
	}
	for _, k := range value.Kinds() {
		ks = append(ks, k.String())
	}
	return value.FromKeyVals([]value.KeyVal{
		{Key: "types", Val: strs(ts)},
		{Key: "numbers", Val: strs(ns)},
		{Key: "kinds", Val: strs(ks)},
		{Key: "suffixes", Val: strs(archive.Suffixes())},
	})
}
