package intake

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"
)

func TestRead(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		limit    int64
		wantKind ErrorKind
		want     string
	}{
		{name: "plain text", input: "photosynthesis notes", limit: 100, want: "photosynthesis notes"},
		{name: "strips bom", input: "\xEF\xBB\xBFhello", limit: 100, want: "hello"},
		{name: "exactly at limit", input: "12345", limit: 5, want: "12345"},
		{name: "too large", input: "123456", limit: 5, wantKind: KindTooLarge},
		{name: "whitespace only", input: " \n\t ", limit: 100, wantKind: KindEmpty},
		{name: "nul byte", input: "ab\x00cd", limit: 100, wantKind: KindBinary},
		{name: "invalid utf8", input: "ab\xff\xfe", limit: 100, wantKind: KindBinary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Read(strings.NewReader(tt.input), "dir/notes.txt", tt.limit)
			if tt.wantKind != "" {
				var readErr *ReadError
				if !errors.As(err, &readErr) {
					t.Fatalf("err = %v, want *ReadError", err)
				}
				if readErr.Kind != tt.wantKind {
					t.Errorf("Kind = %q, want %q", readErr.Kind, tt.wantKind)
				}
				if !errors.Is(err, ErrRead) {
					t.Errorf("errors.Is(err, ErrRead) = false")
				}
				return
			}
			if err != nil {
				t.Fatalf("Read returned error: %v", err)
			}
			if f.Content != tt.want {
				t.Errorf("Content = %q, want %q", f.Content, tt.want)
			}
			if f.Name != "notes.txt" {
				t.Errorf("Name = %q, want notes.txt", f.Name)
			}
		})
	}
}

func TestReadIOError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Read(iotest.ErrReader(boom), "x.txt", 10)

	var readErr *ReadError
	if !errors.As(err, &readErr) || readErr.Kind != KindIO {
		t.Fatalf("err = %v, want io ReadError", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("underlying error not preserved")
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.go")
	if err := os.WriteFile(path, []byte("package main\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	f, err := ReadFile(path, 1024)
	if err != nil {
		t.Fatalf("ReadFile returned error: %v", err)
	}
	if f.Name != "main.go" || f.Size != int64(len("package main\n")) {
		t.Errorf("File = %+v", f)
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt"), 1024); err == nil {
		t.Errorf("expected error for missing file")
	}
}
