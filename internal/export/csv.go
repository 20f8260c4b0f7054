// Package export writes generated datasets to delimited text files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/studentgen/studentgen/internal/models"
)

// Options controls the output format.
type Options struct {
	// Comma is the field delimiter. Zero means ','.
	Comma rune
}

// Result describes a completed write.
type Result struct {
	Path  string
	Rows  int
	Bytes int64
}

// Name returns the base name of the written file.
func (r *Result) Name() string {
	return filepath.Base(r.Path)
}

// Write encodes the header and one row per student to w.
// It returns the number of data rows written.
func Write(w io.Writer, students []*models.Student, opts Options) (int, error) {
	cw := csv.NewWriter(w)
	if opts.Comma != 0 {
		cw.Comma = opts.Comma
	}

	if err := cw.Write(models.Columns); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	rows := 0
	for i, s := range students {
		if err := cw.Write(s.Row()); err != nil {
			return rows, fmt.Errorf("writing row %d: %w", i, err)
		}
		rows++
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return rows, fmt.Errorf("flushing rows: %w", err)
	}

	return rows, nil
}

// WriteCSV writes the dataset to path, replacing any existing file.
// The parent directory is created if missing.
func WriteCSV(path string, students []*models.Student, opts Options) (*Result, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening output file: %w", err)
	}

	cw := &countingWriter{w: f}
	rows, err := Write(cw, students, opts)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("closing output file: %w", err)
	}

	slog.Debug("dataset written", "path", path, "rows", rows, "bytes", cw.n)

	return &Result{Path: path, Rows: rows, Bytes: cw.n}, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
