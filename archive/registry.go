package archive

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/uyjulian/psbfile/node"
)

// DecodeFunc parses the bytes of an archive into a Reader.
type DecodeFunc func(d []byte) (Reader, error)

var (
	decodersMu sync.RWMutex
	decoders   = map[string]DecodeFunc{}
)

func init() {
	for _, suffix := range []string{".yaml", ".yml", ".json"} {
		Register(suffix, decodeFixture)
	}
}

func decodeFixture(d []byte) (Reader, error) {
	return DecodeFixture(d)
}

// Register makes f the decoder for files named with suffix, such as ".psb".
// It replaces any decoder previously registered for suffix.
func Register(suffix string, f DecodeFunc) {
	decodersMu.Lock()
	defer decodersMu.Unlock()
	decoders[strings.ToLower(suffix)] = f
}

// Suffixes returns the suffixes which have a registered decoder.
func Suffixes() []string {
	decodersMu.RLock()
	defer decodersMu.RUnlock()
	res := make([]string, 0, len(decoders))
	for s := range decoders {
		res = append(res, s)
	}
	slices.Sort(res)
	return res
}

func lookup(name string) (DecodeFunc, string) {
	suffix := strings.ToLower(filepath.Ext(name))
	decodersMu.RLock()
	defer decodersMu.RUnlock()
	return decoders[suffix], suffix
}

// Open reads the archive file name and decodes it with the decoder
// registered for its suffix.
func Open(name string) (Reader, error) {
	d, err := ReadFile(name)
	if err != nil {
		return nil, err
	}
	dec, suffix := lookup(name)
	if dec == nil {
		return nil, fmt.Errorf("%w: no decoder registered for %q (%s)", node.ErrFormat, suffix, name)
	}
	r, err := dec(d)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", name, err)
	}
	return r, nil
}
