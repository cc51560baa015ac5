package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/uyjulian/psbfile/convert"
	"github.com/uyjulian/psbfile/format"
)

const configEnv = "PSB_CONFIG"

// FileConfig holds defaults read from a configuration file. Command line
// options take precedence.
type FileConfig struct {
	Format      string `toml:"format" yaml:"format"`
	Brackets    bool   `toml:"brackets" yaml:"brackets"`
	Wire        bool   `toml:"wire" yaml:"wire"`
	Color       *bool  `toml:"color" yaml:"color"`
	InvalidUTF8 string `toml:"invalid_utf8" yaml:"invalid_utf8"`
	Cache       *bool  `toml:"cache" yaml:"cache"`
	MaxDepth    int    `toml:"max_depth" yaml:"max_depth"`
	Verbose     bool   `toml:"verbose" yaml:"verbose"`
}

func readFileConfig(name string) (*FileConfig, error) {
	fc := &FileConfig{}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		d, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
		if err := yaml.UnmarshalWithOptions(d, fc, yaml.DisallowUnknownField()); err != nil {
			return nil, fmt.Errorf("error decoding config %s: %w", name, err)
		}
	default:
		md, err := toml.DecodeFile(name, fc)
		if err != nil {
			return nil, fmt.Errorf("error decoding config %s: %w", name, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) != 0 {
			return nil, fmt.Errorf("error decoding config %s: unknown keys %v", name, undecoded)
		}
	}
	return fc, nil
}

// loadFileConfig applies the file named by -config, or else envName, to
// every option not given on the command line.
func (cfg *MainConfig) loadFileConfig(envName string) error {
	name := cfg.Config
	if name == "" {
		name = envName
	}
	if name == "" {
		return nil
	}
	fc, err := readFileConfig(name)
	if err != nil {
		return err
	}
	return cfg.apply(fc)
}

func (cfg *MainConfig) apply(fc *FileConfig) error {
	if fc.Format != "" && cfg.OutFormat == nil && count(cfg.T, cfg.J, cfg.Y) == 0 {
		f, err := format.ParseFormat(fc.Format)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		cfg.OutFormat = &f
	}
	if !cfg.isSet("b") {
		cfg.B = fc.Brackets
	}
	if !cfg.isSet("wire") {
		cfg.WireOut = fc.Wire
	}
	if fc.Color != nil && !cfg.isSet("color") {
		cfg.Color = *fc.Color
		cfg.colorFromFile = true
	}
	if fc.InvalidUTF8 != "" && !cfg.isSet("lossy") {
		var p convert.UTF8Policy
		if err := p.UnmarshalText([]byte(fc.InvalidUTF8)); err != nil {
			return fmt.Errorf("config: %w", err)
		}
		cfg.Lossy = p == convert.ReplaceInvalidUTF8
	}
	if fc.Cache != nil && !cfg.isSet("nocache") {
		cfg.NoCache = !*fc.Cache
	}
	if fc.MaxDepth != 0 && !cfg.isSet("maxdepth") {
		cfg.MaxDepth = fc.MaxDepth
	}
	if !cfg.isSet("v") {
		cfg.Verbose = fc.Verbose
	}
	return nil
}
