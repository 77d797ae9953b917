// Package stream opens the converter's input and output, transparently
// handling gzip and zstd compressed files.
package stream

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Stdio is the path that selects stdin or stdout.
const Stdio = "-"

type readCloser struct {
	io.Reader
	closers []func() error
}

func (r *readCloser) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type writeCloser struct {
	io.Writer
	closers []func() error
}

func (w *writeCloser) Close() error {
	var first error
	for _, c := range w.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func isStdio(path string) bool {
	return path == "" || path == Stdio
}

func compression(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// OpenInput opens path for reading. An empty path or "-" reads stdin,
// which is never closed.
func OpenInput(path string) (io.ReadCloser, error) {
	if isStdio(path) {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input %s: %w", path, err)
	}

	switch compression(path) {
	case ".gz":
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("opening gzip input %s: %w", path, err)
		}
		return &readCloser{Reader: gz, closers: []func() error{gz.Close, f.Close}}, nil
	case ".zst":
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("opening zstd input %s: %w", path, err)
		}
		release := func() error { dec.Close(); return nil }
		return &readCloser{Reader: dec, closers: []func() error{release, f.Close}}, nil
	default:
		return f, nil
	}
}

// CreateOutput creates or truncates path for writing. An empty path or "-"
// writes to stdout, which is never closed.
func CreateOutput(path string) (io.WriteCloser, error) {
	if isStdio(path) {
		return &writeCloser{Writer: os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output %s: %w", path, err)
	}

	switch compression(path) {
	case ".gz":
		gz := gzip.NewWriter(f)
		return &writeCloser{Writer: gz, closers: []func() error{gz.Close, f.Close}}, nil
	case ".zst":
		enc, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("creating zstd output %s: %w", path, err)
		}
		return &writeCloser{Writer: enc, closers: []func() error{enc.Close, f.Close}}, nil
	default:
		return f, nil
	}
}
