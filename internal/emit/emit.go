// Package emit renders fixture sequences to file contents and writes or
// verifies them on disk.
package emit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/calvinalkan/smilegen/internal/fixture"
	"github.com/calvinalkan/smilegen/internal/fs"
)

const (
	dirPerms  = 0o755
	filePerms = 0o644
)

// ErrDuplicateName is returned when a sequence yields the same name twice.
var ErrDuplicateName = errors.New("duplicate fixture name")

// File is a rendered fixture.
type File struct {
	// Name is the file name, extension included.
	Name string
	Data []byte
}

// Render encodes every fixture in order. It fails on the first encoding
// error or repeated name, before anything is written.
func Render(ctx context.Context, fixtures iter.Seq[fixture.Fixture], opts fixture.EncodeOptions) ([]File, error) {
	var files []File

	seen := make(map[string]struct{})

	for f := range fixtures {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if _, dup := seen[f.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, f.Name)
		}

		seen[f.Name] = struct{}{}

		data, err := f.Encode(opts)
		if err != nil {
			return nil, err
		}

		files = append(files, File{Name: f.FileName(), Data: data})
	}

	return files, nil
}

// Writer writes rendered fixtures into a directory.
type Writer struct {
	fs fs.FS
}

// NewWriter returns a Writer on fsys. Panics if fsys is nil.
func NewWriter(fsys fs.FS) *Writer {
	if fsys == nil {
		panic("fs is nil")
	}

	return &Writer{fs: fsys}
}

// Write creates dir if needed and replaces each file in it. The context is
// checked between files; a cancelled run leaves earlier files in place.
// Returns the number of files written.
func (w *Writer) Write(ctx context.Context, dir string, files []File) (int, error) {
	if err := w.fs.MkdirAll(dir, dirPerms); err != nil {
		return 0, fmt.Errorf("creating %s: %w", dir, err)
	}

	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return i, err
		}

		path := filepath.Join(dir, f.Name)

		if err := w.fs.WriteFileAtomic(path, f.Data, filePerms); err != nil {
			return i, fmt.Errorf("writing %s: %w", path, err)
		}
	}

	return len(files), nil
}

// Report lists the differences between rendered fixtures and a directory.
type Report struct {
	Missing []string
	Stale   []string
	// Extra holds .json files in the directory that no fixture produces.
	Extra []string
}

// Clean reports whether every fixture is present and current. Extra files
// do not make a report unclean.
func (r Report) Clean() bool {
	return len(r.Missing) == 0 && len(r.Stale) == 0
}

// Check compares files against the contents of dir without writing.
func (w *Writer) Check(dir string, files []File) (Report, error) {
	var report Report

	expected := make(map[string]struct{}, len(files))

	for _, f := range files {
		expected[f.Name] = struct{}{}

		data, err := w.fs.ReadFile(filepath.Join(dir, f.Name))
		if errors.Is(err, os.ErrNotExist) {
			report.Missing = append(report.Missing, f.Name)

			continue
		}

		if err != nil {
			return Report{}, fmt.Errorf("reading %s: %w", f.Name, err)
		}

		if !bytes.Equal(data, f.Data) {
			report.Stale = append(report.Stale, f.Name)
		}
	}

	entries, err := w.fs.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return report, nil
	}

	if err != nil {
		return Report{}, fmt.Errorf("listing %s: %w", dir, err)
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fixture.Ext) {
			continue
		}

		if _, ok := expected[e.Name()]; !ok {
			report.Extra = append(report.Extra, e.Name())
		}
	}

	slices.Sort(report.Extra)

	return report, nil
}
