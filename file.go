package psbfile

import (
	"fmt"
	"io"
	"os"

	"github.com/uyjulian/psbfile/archive"
	"github.com/uyjulian/psbfile/convert"
	"github.com/uyjulian/psbfile/debug"
	"github.com/uyjulian/psbfile/dump"
	"github.com/uyjulian/psbfile/value"
)

// File is a converted archive.
type File struct {
	name   string
	reader archive.Reader
	root   *value.Value
}

type config struct {
	convertOpts []convert.Option
	dumpTo      io.Writer
}

type Option func(*config)

func WithConvertOptions(opts ...convert.Option) Option {
	return func(c *config) { c.convertOpts = append(c.convertOpts, opts...) }
}

// WithDumpTo writes a diagnostic dump of the node tree to w before
// converting it.
func WithDumpTo(w io.Writer) Option {
	return func(c *config) { c.dumpTo = w }
}

// Open reads and converts the archive file name.
func Open(name string, opts ...Option) (*File, error) {
	r, err := archive.Open(name)
	if err != nil {
		return nil, err
	}
	f, err := load(name, r, opts)
	if err != nil {
		return nil, fmt.Errorf("error converting %s: %w", name, err)
	}
	return f, nil
}

// New converts the archive read by r.
func New(r archive.Reader, opts ...Option) (*File, error) {
	return load("", r, opts)
}

func load(name string, r archive.Reader, opts []Option) (*File, error) {
	cfg := &config{}
	if debug.Dump() {
		cfg.dumpTo = os.Stderr
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.dumpTo != nil {
		if err := dump.Dump(r.Root(), r, cfg.dumpTo); err != nil {
			return nil, fmt.Errorf("error dumping: %w", err)
		}
	}
	root, err := convert.ConvertReader(r, cfg.convertOpts...)
	if err != nil {
		return nil, err
	}
	return &File{name: name, reader: r, root: root}, nil
}

// Root returns the converted root value. It is shared, not copied.
func (f *File) Root() *value.Value {
	return f.root
}

// Name returns the file name f was opened from, or "" if it was made with
// New.
func (f *File) Name() string {
	return f.name
}

// Reader returns the archive reader f was converted from.
func (f *File) Reader() archive.Reader {
	return f.reader
}
