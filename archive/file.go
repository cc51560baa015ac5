package archive

import (
	"errors"
	"fmt"
	"io"
	"os"
)

var ErrIO = errors.New("archive: i/o error")

// Stage names the step of reading an archive which failed.
type Stage string

const (
	StageOpen Stage = "open"
	StageSeek Stage = "seek"
	StageRead Stage = "read"
)

// IOError is returned when an archive cannot be read into memory.
type IOError struct {
	Source string
	Stage  Stage
	Err    error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("cannot %s %s: %v", e.Stage, e.Source, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// ReadFile reads the whole archive file name into memory.
func ReadFile(name string) ([]byte, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, &IOError{Source: name, Stage: StageOpen, Err: err}
	}
	defer f.Close()
	return ReadAll(name, f)
}

// ReadAll reads the whole of rs, measuring its size by seeking to the end
// and reading exactly that many bytes from the start. source names rs in
// errors.
func ReadAll(source string, rs io.ReadSeeker) ([]byte, error) {
	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, &IOError{Source: source, Stage: StageSeek, Err: err}
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, &IOError{Source: source, Stage: StageSeek, Err: err}
	}
	if size < 0 || int64(int(size)) != size {
		return nil, &IOError{Source: source, Stage: StageSeek, Err: fmt.Errorf("invalid size %d", size)}
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(rs, buf); err != nil {
		return nil, &IOError{Source: source, Stage: StageRead, Err: err}
	}
	return buf, nil
}
