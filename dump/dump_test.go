package dump

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/uyjulian/psbfile/archive"
	"github.com/uyjulian/psbfile/node"
)

func TestDump(t *testing.T) {
	b := &archive.Builder{}
	name := b.Add(node.FromString("hero"))
	grid := b.Add(node.FromInts(3, 1, 2))
	tags := b.Collection(
		b.Add(node.FromInt(1)),
		b.Add(&node.Node{Type: node.NumberType, Subtype: 9}),
		b.Add(node.FromFloat32(1.5)),
		b.Add(node.FromFloat64(0.1)),
	)
	misc := b.Collection(
		b.Add(node.Null()),
		b.Add(node.FromBool(false)),
		b.Add(node.FromResource([]byte{1, 2, 3, 4})),
		b.Objects(),
	)
	m := b.BuildRef(b.Objects(
		node.KeyRef{Key: "name", Ref: name},
		node.KeyRef{Key: "grid", Ref: grid},
		node.KeyRef{Key: "tags", Ref: tags},
		node.KeyRef{Key: "a b", Ref: misc},
	))

	got, err := String(m.Root(), m)
	if err != nil {
		t.Fatal(err)
	}
	want := `{
  "name": "hero",
  "grid": [3, 1, 2],
  "tags": [
    int(1),
    <invalid number 9>,
    f32(1.5),
    f64(0.1),
  ],
  "a b": [
    null,
    false,
    <resource 4 bytes>,
    {
    },
  ],
}
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if m.Live() != 0 || m.Strays() != 0 {
		t.Errorf("live = %d strays = %d", m.Live(), m.Strays())
	}
}

func TestDumpLeafRoot(t *testing.T) {
	m := archive.NewMemory(node.FromStringBytes([]byte("a\xffb")), nil)
	got, err := String(m.Root(), m, WithIndent("\t"))
	if err != nil {
		t.Fatal(err)
	}
	if got != "\"a\\xffb\"\n" {
		t.Errorf("got %q", got)
	}
}

func TestDumpUnsupported(t *testing.T) {
	b := &archive.Builder{}
	bad := b.Add(&node.Node{Type: 31})
	m := b.BuildRef(b.Collection(b.Add(node.FromInt(1)), bad))
	buf := &strings.Builder{}
	err := Dump(m.Root(), m, buf)
	if !errors.Is(err, node.ErrUnsupportedType) {
		t.Fatalf("got %v", err)
	}
	if !strings.HasPrefix(buf.String(), "[\n  int(1),\n") {
		t.Errorf("partial dump not written: %q", buf.String())
	}
	if m.Live() != 0 {
		t.Errorf("live = %d", m.Live())
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestDumpWriteError(t *testing.T) {
	m := archive.NewMemory(node.FromInt(1), nil)
	if err := Dump(m.Root(), m, failWriter{}); err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("got %v", err)
	}
}
