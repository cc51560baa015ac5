package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/uyjulian/psbfile/convert"
	"github.com/uyjulian/psbfile/encode"
	"github.com/uyjulian/psbfile/format"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	B       bool `cli:"name=b desc='encode with brackets'"`
	Color   bool `cli:"name=color desc='encode with color'"`
	WireOut bool `cli:"name=wire desc='output in compact format'"`

	T bool `cli:"name=t aliases=tony desc='output tony'"`
	J bool `cli:"name=j aliases=json desc='output json'"`
	Y bool `cli:"name=y aliases=yaml desc='output yaml'"`

	Lossy    bool   `cli:"name=lossy desc='replace invalid UTF-8 instead of failing'"`
	NoCache  bool   `cli:"name=nocache desc='resolve shared nodes at every use'"`
	MaxDepth int    `cli:"name=maxdepth desc='fail on nesting deeper than this, 0 for no limit'"`
	Verbose  bool   `cli:"name=v aliases=verbose desc='log conversion details to stderr'"`
	Config   string `cli:"name=config desc='TOML or YAML configuration file (default $PSB_CONFIG)'"`

	OutFormat *format.Format

	Out      string
	CloseOut func() error

	colorFromFile bool
	log           *slog.Logger

	Main *cli.Command
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

// isSet reports whether the main option name was given on the command
// line.
func (cfg *MainConfig) isSet(name string) bool {
	if cfg.Main == nil {
		return false
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != name {
			continue
		}
		return opt.Value != nil
	}
	return false
}

func (cfg *MainConfig) outFormat() format.Format {
	var f format.Format
	switch {
	case cfg.T:
		f = format.TonyFormat
	case cfg.Y:
		f = format.YAMLFormat
	case cfg.J:
		f = format.JSONFormat
	case cfg.OutFormat == nil && cfg.Out != "":
		f, _ = format.FromName(cfg.Out)
	}
	if cfg.OutFormat != nil {
		f = *cfg.OutFormat
	}
	return f
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat()),
		encode.EncodeWire(cfg.WireOut),
		encode.EncodeBrackets(cfg.B),
	}
	if cfg.Color {
		res = append(res, encode.EncodeColors(encode.NewColors()))
		return res
	}
	if cfg.isSet("color") || cfg.colorFromFile {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
		return res
	}
	return res
}

func (cfg *MainConfig) logger() *slog.Logger {
	if cfg.log == nil {
		level := slog.LevelInfo
		if cfg.Verbose {
			level = slog.LevelDebug
		}
		cfg.log = newLog(os.Stderr, level)
	}
	return cfg.log
}

func (cfg *MainConfig) convertOpts() []convert.Option {
	policy := convert.RejectInvalidUTF8
	if cfg.Lossy {
		policy = convert.ReplaceInvalidUTF8
	}
	return []convert.Option{
		convert.WithInvalidUTF8(policy),
		convert.WithCache(!cfg.NoCache),
		convert.WithMaxDepth(cfg.MaxDepth),
		convert.WithLogger(cfg.logger()),
	}
}

type ConvertConfig struct {
	*MainConfig
	Dump bool `cli:"name=dump desc='dump the node tree to stderr before converting'"`

	Convert *cli.Command
}

type DumpConfig struct {
	*MainConfig
	Indent int `cli:"name=indent desc='spaces per nesting level (default 2)'"`

	Dump *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`
	Merge   bool `cli:"name=merge desc='print a JSON merge patch (RFC 7386)'"`

	Diff *cli.Command
}

type TypesConfig struct {
	*MainConfig

	Types *cli.Command
}
