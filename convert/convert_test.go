package convert

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/uyjulian/psbfile/archive"
	"github.com/uyjulian/psbfile/node"
	"github.com/uyjulian/psbfile/value"
)

func checkReleased(t *testing.T, m *archive.Memory) {
	t.Helper()
	if m.Live() != 0 {
		t.Errorf("%d resolved nodes not released", m.Live())
	}
	if m.Strays() != 0 {
		t.Errorf("%d stray releases", m.Strays())
	}
}

func diffValues(want, got *value.Value) string {
	return cmp.Diff(want, got, cmpopts.EquateEmpty())
}

func TestHero(t *testing.T) {
	b := &archive.Builder{}
	name := b.Add(node.FromString("hero"))
	hp := b.Add(node.FromInt(100))
	tags := b.Collection(b.Add(node.FromInt(1)), b.Add(node.FromInt(2)))
	root := b.Objects(
		node.KeyRef{Key: "name", Ref: name},
		node.KeyRef{Key: "hp", Ref: hp},
		node.KeyRef{Key: "tags", Ref: tags},
	)
	for _, cache := range []bool{true, false} {
		t.Run(fmt.Sprintf("cache=%v", cache), func(t *testing.T) {
			m := b.BuildRef(root)
			got, err := Convert(m.Root(), m, WithCache(cache))
			if err != nil {
				t.Fatal(err)
			}
			want := value.FromKeyVals([]value.KeyVal{
				{Key: "name", Val: value.FromString("hero")},
				{Key: "hp", Val: value.FromInt(100)},
				{Key: "tags", Val: value.FromInts(1, 2)},
			})
			if diff := diffValues(want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]string{"name", "hp", "tags"}, got.Fields); diff != "" {
				t.Errorf("key order: %s", diff)
			}
			checkReleased(t, m)
		})
	}
}

func TestFixture(t *testing.T) {
	r, err := archive.Open("testdata/hero.yaml")
	if err != nil {
		t.Fatal(err)
	}
	got, err := ConvertReader(r)
	if err != nil {
		t.Fatal(err)
	}
	want := value.FromKeyVals([]value.KeyVal{
		{Key: "name", Val: value.FromString("hero")},
		{Key: "hp", Val: value.FromInt(100)},
		{Key: "tags", Val: value.FromInts(1, 2)},
		{Key: "stats", Val: value.FromKeyVals([]value.KeyVal{
			{Key: "speed", Val: value.FromFloat32(1.5)},
			{Key: "ratio", Val: value.FromFloat64(1.5)},
			{Key: "grid", Val: value.FromInts(3, 1, 2)},
			{Key: "alive", Val: value.FromBool(true)},
			{Key: "owner", Val: value.Null()},
		})},
		{Key: "icon", Val: value.FromBytes([]byte{0x89, 'P', 'N', 'G'})},
	})
	if diff := diffValues(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	checkReleased(t, r.(*archive.Memory))
}

func TestObjectsKeepOrder(t *testing.T) {
	b := &archive.Builder{}
	one := b.Add(node.FromInt(1))
	keys := []string{"zeta", "alpha", "mid", "beta"}
	var kvs []node.KeyRef
	for _, k := range keys {
		kvs = append(kvs, node.KeyRef{Key: k, Ref: one})
	}
	m := b.BuildRef(b.Objects(kvs...))
	got, err := Convert(m.Root(), m)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(keys, got.Fields); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	checkReleased(t, m)
}

func TestArrayWithoutResolving(t *testing.T) {
	m := archive.NewMemory(node.FromInts(1, 2, 3), nil)
	got, err := Convert(m.Root(), m)
	if err != nil {
		t.Fatal(err)
	}
	if diff := diffValues(value.FromInts(1, 2, 3), got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if m.Resolves() != 0 {
		t.Errorf("array conversion resolved %d nodes", m.Resolves())
	}
}

func TestArrayIsNotCollection(t *testing.T) {
	b := &archive.Builder{}
	// refs 0 and 1 exist, so a mixup would convert without error
	b.Add(node.FromString("a"))
	b.Add(node.FromString("b"))
	arr := b.Add(node.FromInts(0, 1))
	coll := b.Collection(0, 1)
	m := b.BuildRef(b.Objects(node.KeyRef{Key: "array", Ref: arr}, node.KeyRef{Key: "collection", Ref: coll}))
	got, err := Convert(m.Root(), m)
	if err != nil {
		t.Fatal(err)
	}
	want := value.FromKeyVals([]value.KeyVal{
		{Key: "array", Val: value.FromInts(0, 1)},
		{Key: "collection", Val: value.FromSlice([]*value.Value{value.FromString("a"), value.FromString("b")})},
	})
	if diff := diffValues(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDeepCollections(t *testing.T) {
	for _, depth := range []int{1000, 100000} {
		t.Run(fmt.Sprint(depth), func(t *testing.T) {
			b := &archive.Builder{}
			ref := b.Add(node.FromInt(42))
			for range depth {
				ref = b.Collection(ref)
			}
			m := b.BuildRef(ref)
			got, err := Convert(m.Root(), m)
			if err != nil {
				t.Fatal(err)
			}
			n := 0
			v := got
			for v.Kind == value.ArrayKind {
				if len(v.Values) != 1 {
					t.Fatalf("level %d has %d elements", n, len(v.Values))
				}
				v = v.Values[0]
				n++
			}
			if n != depth || v.Kind != value.IntKind || v.Int != 42 {
				t.Errorf("got %d levels ending in %s", n, v.Kind)
			}
			checkReleased(t, m)
		})
	}
}

func TestFloatsStayDistinct(t *testing.T) {
	b := &archive.Builder{}
	f32 := b.Add(node.FromFloat32(0.5))
	f64 := b.Add(node.FromFloat64(0.5))
	m := b.BuildRef(b.Collection(f32, f64))
	got, err := Convert(m.Root(), m)
	if err != nil {
		t.Fatal(err)
	}
	if got.Values[0].Kind != value.Float32Kind || got.Values[1].Kind != value.Float64Kind {
		t.Errorf("kinds %s, %s", got.Values[0].Kind, got.Values[1].Kind)
	}
	if value.Equal(got.Values[0], got.Values[1]) {
		t.Errorf("float32 and float64 of the same magnitude compare equal")
	}
}

func TestInvalidUTF8(t *testing.T) {
	bad := []byte("ab\xffc\xfe\xfd")
	build := func() *archive.Memory {
		b := &archive.Builder{}
		s := b.Add(node.FromStringBytes(bad))
		return b.BuildRef(b.Objects(node.KeyRef{Key: "s", Ref: s}))
	}

	m := build()
	_, err := Convert(m.Root(), m)
	if !errors.Is(err, node.ErrEncoding) {
		t.Errorf("reject policy: got %v", err)
	}
	checkReleased(t, m)

	m = build()
	got, err := Convert(m.Root(), m, WithInvalidUTF8(ReplaceInvalidUTF8))
	if err != nil {
		t.Fatal(err)
	}
	s, _ := got.Get("s")
	if s.String != "ab�c�" {
		t.Errorf("replace policy: got %q", s.String)
	}
}

func TestInvalidUTF8Key(t *testing.T) {
	b := &archive.Builder{}
	one := b.Add(node.FromInt(1))
	m := b.BuildRef(b.Objects(node.KeyRef{Key: "k\xc0", Ref: one}))
	if _, err := Convert(m.Root(), m); !errors.Is(err, node.ErrEncoding) {
		t.Errorf("got %v", err)
	}
	got, err := Convert(m.Root(), m, WithInvalidUTF8(ReplaceInvalidUTF8))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"k�"}, got.Fields); diff != "" {
		t.Error(diff)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		root func(b *archive.Builder) node.Ref
		opts []Option
		is   error
	}{
		{
			name: "unsupported tag",
			root: func(b *archive.Builder) node.Ref {
				return b.Collection(b.Add(node.FromInt(1)), b.Add(&node.Node{Type: 200}))
			},
			is: node.ErrUnsupportedType,
		},
		{
			name: "generic tag",
			root: func(b *archive.Builder) node.Ref {
				return b.Collection(b.Add(&node.Node{Type: node.GenericType}))
			},
			is: node.ErrUnsupportedType,
		},
		{
			name: "number subtype",
			root: func(b *archive.Builder) node.Ref {
				return b.Collection(b.Add(&node.Node{Type: node.NumberType, Subtype: 7}))
			},
			is: node.ErrInvalidNumberType,
		},
		{
			name: "resource length",
			root: func(b *archive.Builder) node.Ref {
				return b.Collection(b.Add(&node.Node{Type: node.ResourceType, Resource: []byte{1}, Length: 3}))
			},
			is: node.ErrTypeMismatch,
		},
		{
			name: "duplicate key",
			root: func(b *archive.Builder) node.Ref {
				one := b.Add(node.FromInt(1))
				return b.Objects(node.KeyRef{Key: "a", Ref: one}, node.KeyRef{Key: "a", Ref: one})
			},
			is: node.ErrFormat,
		},
		{
			name: "dangling ref",
			root: func(b *archive.Builder) node.Ref {
				return b.Collection(1000)
			},
			is: node.ErrFormat,
		},
		{
			name: "cycle",
			root: func(b *archive.Builder) node.Ref {
				self := node.Ref(1)
				b.Add(node.Null())
				return b.Collection(b.Collection(self))
			},
			is: node.ErrFormat,
		},
		{
			name: "depth",
			root: func(b *archive.Builder) node.Ref {
				return b.Collection(b.Collection(b.Collection()))
			},
			opts: []Option{WithMaxDepth(2)},
			is:   node.ErrFormat,
		},
	}
	for _, tt := range tests {
		for _, cache := range []bool{true, false} {
			t.Run(fmt.Sprintf("%s/cache=%v", tt.name, cache), func(t *testing.T) {
				b := &archive.Builder{}
				m := b.BuildRef(tt.root(b))
				got, err := Convert(m.Root(), m, append(tt.opts, WithCache(cache))...)
				if !errors.Is(err, tt.is) {
					t.Fatalf("got error %v, want %v", err, tt.is)
				}
				if got != nil {
					t.Errorf("partial value returned: %v", got)
				}
				checkReleased(t, m)
			})
		}
	}
}

func TestDeterministic(t *testing.T) {
	r, err := archive.Open("testdata/hero.yaml")
	if err != nil {
		t.Fatal(err)
	}
	a, err := ConvertReader(r)
	if err != nil {
		t.Fatal(err)
	}
	b, err := ConvertReader(r, WithCache(false))
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(a, b) {
		t.Errorf("conversions differ:\n%s", diffValues(a, b))
	}
	if a.Hash() != b.Hash() {
		t.Errorf("hashes differ: %x %x", a.Hash(), b.Hash())
	}
}

func TestResourceNotAliased(t *testing.T) {
	b := &archive.Builder{}
	res := b.Add(node.FromResource([]byte{1, 2, 3}))
	m := b.BuildRef(b.Collection(res))
	got, err := Convert(m.Root(), m)
	if err != nil {
		t.Fatal(err)
	}
	stored, err := m.Resolve(res)
	if err != nil {
		t.Fatal(err)
	}
	stored.Resource[0] = 99
	m.Release(stored)
	if got.Values[0].Bytes[0] != 1 {
		t.Errorf("converted bytes share memory with the archive")
	}
}

func TestUTF8PolicyText(t *testing.T) {
	for _, p := range []UTF8Policy{RejectInvalidUTF8, ReplaceInvalidUTF8} {
		d, err := p.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var q UTF8Policy
		if err := q.UnmarshalText(d); err != nil || q != p {
			t.Errorf("%s: round trip gave %s, %v", p, q, err)
		}
	}
	var q UTF8Policy
	if err := q.UnmarshalText([]byte("ignore")); err == nil {
		t.Error("expected an error for an unknown policy")
	}
}
