package psbfile

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uyjulian/psbfile/archive"
	"github.com/uyjulian/psbfile/convert"
	"github.com/uyjulian/psbfile/node"
	"github.com/uyjulian/psbfile/value"
)

func TestOpen(t *testing.T) {
	f, err := Open("testdata/hero.yaml")
	require.NoError(t, err)
	require.Equal(t, "testdata/hero.yaml", f.Name())
	require.Equal(t, []string{"name", "hp", "tags", "stats", "icon"}, f.Root().Fields)

	hp, ok := f.Root().Get("hp")
	require.True(t, ok)
	require.True(t, value.Equal(value.FromInt(100), hp))
	require.Same(t, f.Root(), f.Root())

	m, ok := f.Reader().(*archive.Memory)
	require.True(t, ok)
	require.Zero(t, m.Live())
}

func TestOpenErrors(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.psb"))
	require.ErrorIs(t, err, archive.ErrIO)

	_, err = Open("testdata/broken.json")
	require.ErrorIs(t, err, node.ErrInvalidNumberType)
	require.Contains(t, err.Error(), "testdata/broken.json")
	require.Contains(t, err.Error(), "$.hp")
}

func TestNewWithOptions(t *testing.T) {
	b := &archive.Builder{}
	s := b.Add(node.FromStringBytes([]byte("bad\xff")))
	m := b.BuildRef(b.Objects(node.KeyRef{Key: "s", Ref: s}))

	_, err := New(m)
	require.ErrorIs(t, err, node.ErrEncoding)

	buf := &bytes.Buffer{}
	f, err := New(m, WithDumpTo(buf), WithConvertOptions(convert.WithInvalidUTF8(convert.ReplaceInvalidUTF8)))
	require.NoError(t, err)
	require.Equal(t, "", f.Name())
	got, _ := f.Root().Get("s")
	require.Equal(t, "bad�", got.String)
	require.True(t, strings.HasPrefix(buf.String(), "{\n  \"s\": "))
}

func TestDumpFailureStopsLoad(t *testing.T) {
	b := &archive.Builder{}
	m := b.BuildRef(b.Collection(b.Add(&node.Node{Type: 99})))
	_, err := New(m, WithDumpTo(&bytes.Buffer{}))
	require.True(t, errors.Is(err, node.ErrUnsupportedType))
	require.Contains(t, err.Error(), "dumping")
}
