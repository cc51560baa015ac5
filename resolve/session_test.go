package resolve

import (
	"errors"
	"testing"

	"github.com/uyjulian/psbfile/archive"
	"github.com/uyjulian/psbfile/node"
)

func testArchive() (*archive.Memory, node.Ref, node.Ref) {
	b := &archive.Builder{}
	a := b.Add(node.FromInt(1))
	s := b.Add(node.FromString("x"))
	root := b.Collection(a, s, a)
	return b.BuildRef(root), a, s
}

func TestAcquireRelease(t *testing.T) {
	m, a, _ := testArchive()
	s := New(m)
	defer s.Close()

	h, err := s.Acquire(a)
	if err != nil {
		t.Fatal(err)
	}
	if h.Node().Int != 1 || h.Ref() != a {
		t.Fatalf("unexpected node %+v", h.Node())
	}
	if m.Live() != 1 {
		t.Fatalf("live = %d, want 1", m.Live())
	}
	h.Release()
	h.Release()
	if m.Live() != 0 || m.Strays() != 0 {
		t.Errorf("live = %d strays = %d after release", m.Live(), m.Strays())
	}
	if h.Node() != nil {
		t.Errorf("released handle still has a node")
	}
}

func TestCloseReleasesEverything(t *testing.T) {
	for _, cache := range []bool{false, true} {
		m, a, str := testArchive()
		s := New(m, WithCache(cache))
		for _, ref := range []node.Ref{a, str, a} {
			if _, err := s.Acquire(ref); err != nil {
				t.Fatal(err)
			}
		}
		if m.Live() == 0 {
			t.Fatalf("cache=%v: nothing held before close", cache)
		}
		s.Close()
		s.Close()
		if m.Live() != 0 || m.Strays() != 0 {
			t.Errorf("cache=%v: live = %d strays = %d after close", cache, m.Live(), m.Strays())
		}
		if _, err := s.Acquire(a); !errors.Is(err, ErrClosed) {
			t.Errorf("cache=%v: acquire after close: %v", cache, err)
		}
	}
}

func TestCache(t *testing.T) {
	m, a, _ := testArchive()
	s := New(m, WithCache(true))
	defer s.Close()
	for range 5 {
		h, err := s.Acquire(a)
		if err != nil {
			t.Fatal(err)
		}
		h.Release()
	}
	st := s.Stats()
	if st.Resolves != 1 || st.Hits != 4 || st.Held != 1 {
		t.Errorf("stats = %+v", st)
	}
	if m.Resolves() != 1 {
		t.Errorf("archive resolves = %d, want 1", m.Resolves())
	}
}

func TestNoCache(t *testing.T) {
	m, a, _ := testArchive()
	s := New(m, WithCache(false))
	defer s.Close()
	for range 3 {
		h, err := s.Acquire(a)
		if err != nil {
			t.Fatal(err)
		}
		h.Release()
	}
	if st := s.Stats(); st.Resolves != 3 || st.Hits != 0 || st.Held != 0 {
		t.Errorf("stats = %+v", st)
	}
}

type brokenResolver struct{}

func (brokenResolver) Resolve(node.Ref) (*node.Node, error) {
	return nil, errors.New("crc mismatch")
}
func (brokenResolver) Release(*node.Node) {}

func TestAcquireErrors(t *testing.T) {
	m, _, _ := testArchive()
	s := New(m)
	defer s.Close()
	if _, err := s.Acquire(99); !errors.Is(err, node.ErrFormat) {
		t.Errorf("out of range: %v", err)
	}

	bs := New(brokenResolver{})
	defer bs.Close()
	_, err := bs.Acquire(0)
	if !errors.Is(err, node.ErrFormat) {
		t.Errorf("reader corruption not reported as format error: %v", err)
	}
}
