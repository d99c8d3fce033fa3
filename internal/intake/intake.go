// Package intake reads uploaded study material into memory as text.
package intake

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"
)

type ErrorKind string

const (
	KindEmpty    ErrorKind = "empty"
	KindTooLarge ErrorKind = "too_large"
	KindBinary   ErrorKind = "binary"
	KindIO       ErrorKind = "io"
)

var ErrRead = errors.New("file could not be read")

type ReadError struct {
	Name  string
	Kind  ErrorKind
	Limit int64
	Err   error
}

func (e *ReadError) Error() string {
	switch e.Kind {
	case KindEmpty:
		return fmt.Sprintf("%s is empty", e.Name)
	case KindTooLarge:
		return fmt.Sprintf("%s exceeds the %d byte limit", e.Name, e.Limit)
	case KindBinary:
		return fmt.Sprintf("%s is not a text file", e.Name)
	default:
		return fmt.Sprintf("reading %s: %v", e.Name, e.Err)
	}
}

func (e *ReadError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrRead, e.Err}
	}
	return []error{ErrRead}
}

type File struct {
	Name    string
	Content string
	Size    int64
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Read consumes r completely (up to limit bytes) and returns its text content.
func Read(r io.Reader, name string, limit int64) (*File, error) {
	name = filepath.Base(name)

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, &ReadError{Name: name, Kind: KindIO, Err: err}
	}
	if int64(len(data)) > limit {
		return nil, &ReadError{Name: name, Kind: KindTooLarge, Limit: limit}
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &ReadError{Name: name, Kind: KindEmpty}
	}
	if bytes.IndexByte(data, 0) >= 0 || !utf8.Valid(data) {
		return nil, &ReadError{Name: name, Kind: KindBinary}
	}

	return &File{Name: name, Content: string(data), Size: int64(len(data))}, nil
}

func ReadFile(path string, limit int64) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ReadError{Name: filepath.Base(path), Kind: KindIO, Err: err}
	}
	defer f.Close()
	return Read(f, path, limit)
}
