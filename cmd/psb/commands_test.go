package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uyjulian/psbfile/archive"
	"github.com/uyjulian/psbfile/format"
	"github.com/uyjulian/psbfile/node"
	"github.com/uyjulian/psbfile/value"
)

func jsonWire() *MainConfig {
	f := format.JSONFormat
	return &MainConfig{OutFormat: &f, WireOut: true}
}

func TestConvertFile(t *testing.T) {
	cfg := &ConvertConfig{MainConfig: jsonWire()}
	buf := &bytes.Buffer{}
	require.NoError(t, convertFile(cfg, buf, "testdata/hero.yaml"))
	require.Equal(t,
		`{"name":"hero","hp":100,"tags":[1,2],"stats":{"speed":1.5,"ratio":1.5,"grid":[3,1,2],"alive":true,"owner":null},"icon":"iVBORw=="}`,
		buf.String())
}

func TestConvertFileMissing(t *testing.T) {
	cfg := &ConvertConfig{MainConfig: jsonWire()}
	require.Error(t, convertFile(cfg, &bytes.Buffer{}, "testdata/missing.yaml"))
}

func TestGetFile(t *testing.T) {
	tests := []struct {
		query, want string
	}{
		{"$.stats.grid[0]", "3"},
		{"$.nothing", "null"},
		{"$.name", `"hero"`},
		{`hp / 4`, "25.0"},
		{`len(tags)`, "2"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			cfg := &GetConfig{MainConfig: jsonWire()}
			buf := &bytes.Buffer{}
			require.NoError(t, getFile(cfg, buf, "testdata/hero.yaml", tt.query))
			require.Equal(t, tt.want, buf.String())
		})
	}
}

func TestQueryErrors(t *testing.T) {
	root := value.FromKeyVals([]value.KeyVal{{Key: "a", Val: value.FromInt(1)}})
	_, err := query1(root, "$[")
	require.ErrorIs(t, err, value.ErrPath)
	_, err = query1(root, "a +")
	require.Error(t, err)
}

func TestDiffValues(t *testing.T) {
	cfg := &DiffConfig{MainConfig: jsonWire()}
	a := value.FromKeyVals([]value.KeyVal{{Key: "hp", Val: value.FromInt(1)}})
	b := value.FromKeyVals([]value.KeyVal{{Key: "hp", Val: value.FromInt(2)}})

	buf := &bytes.Buffer{}
	differs, err := diffValues(cfg, buf, a, a.Clone())
	require.NoError(t, err)
	require.False(t, differs)
	require.Empty(t, buf.String())

	differs, err = diffValues(cfg, buf, a, b)
	require.NoError(t, err)
	require.True(t, differs)
	require.Equal(t, `{"hp":{"-":1,"+":2}}`, buf.String())
}

func TestMergePatch(t *testing.T) {
	a := value.FromKeyVals([]value.KeyVal{
		{Key: "hp", Val: value.FromInt(1)},
		{Key: "gone", Val: value.FromBool(true)},
	})
	b := value.FromKeyVals([]value.KeyVal{{Key: "hp", Val: value.FromInt(2)}})

	buf := &bytes.Buffer{}
	differs, err := mergePatch(buf, a, a.Clone())
	require.NoError(t, err)
	require.False(t, differs)

	differs, err = mergePatch(buf, a, b)
	require.NoError(t, err)
	require.True(t, differs)
	require.JSONEq(t, `{"hp":2,"gone":null}`, buf.String())
}

func TestTypesValue(t *testing.T) {
	v := typesValue()
	ts, ok := v.Get("types")
	require.True(t, ok)
	require.Equal(t, "null", ts.Index(0).String)
	sfx, ok := v.Get("suffixes")
	require.True(t, ok)
	require.NotZero(t, sfx.Len())
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"io", &archive.IOError{Source: "x.psb", Stage: "read", Err: io.ErrUnexpectedEOF}, exitIO},
		{"format", fmt.Errorf("$.a: %w", node.ErrFormat), exitBadArchive},
		{"unsupported", &node.UnsupportedTypeError{Tag: node.GenericType}, exitBadArchive},
		{"number", node.ErrInvalidNumberType, exitBadArchive},
		{"encoding", node.ErrEncoding, exitBadArchive},
		{"other", errors.New("something else"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestExitCodeOfBrokenFile(t *testing.T) {
	cfg := &ConvertConfig{MainConfig: jsonWire()}
	err := convertFile(cfg, &bytes.Buffer{}, "../../testdata/broken.json")
	require.Equal(t, exitBadArchive, exitCode(err))
	err = convertFile(cfg, &bytes.Buffer{}, "testdata/missing.yaml")
	require.Equal(t, exitIO, exitCode(err))
}

func TestSetup(t *testing.T) {
	t.Setenv(configEnv, "")
	require.NoError(t, (&MainConfig{T: true}).setup())
	require.Error(t, (&MainConfig{T: true, J: true}).setup())
	require.Error(t, (&MainConfig{MaxDepth: -1}).setup())
}
