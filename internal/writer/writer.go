// Package writer serializes records to CSV files.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// MapperFunc converts one item to a CSV record.
type MapperFunc[T any] func(T) []string

// HeaderFunc returns the CSV header row.
type HeaderFunc func() []string

// CSVWriter writes items of type T as CSV: one header row followed by one
// row per item. Files are always replaced, never appended to.
type CSVWriter[T any] struct {
	mapper MapperFunc[T]
	header HeaderFunc
	perm   os.FileMode
}

// NewCSVWriter returns a writer using mapper for rows and header for the
// header row. Files are created with mode 0644.
func NewCSVWriter[T any](mapper MapperFunc[T], header HeaderFunc) *CSVWriter[T] {
	return &CSVWriter[T]{
		mapper: mapper,
		header: header,
		perm:   0644,
	}
}

// Write writes the header and one record per item to w.
//
// Fields containing commas, double quotes or line breaks are quoted, with
// embedded quotes doubled. A record made of a single empty field is written
// as "" so that it still reads back as a row rather than a blank line.
func (cw *CSVWriter[T]) Write(w io.Writer, data []T) error {
	writer := csv.NewWriter(w)

	if err := writeRecord(writer, w, cw.header()); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, item := range data {
		if err := writeRecord(writer, w, cw.mapper(item)); err != nil {
			return fmt.Errorf("writing CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}

func writeRecord(writer *csv.Writer, w io.Writer, record []string) error {
	if len(record) == 1 && record[0] == "" {
		// encoding/csv writes a lone empty field as an empty line, which
		// readers skip.
		writer.Flush()
		if err := writer.Error(); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\"\"\n")
		return err
	}
	return writer.Write(record)
}

// WriteFile writes data to path, replacing any existing file, and returns
// the absolute path written.
//
// The content goes to a temporary file in the destination directory which is
// then renamed over path, so a failed write never leaves a truncated file
// behind. Missing parent directories are created.
func (cw *CSVWriter[T]) WriteFile(path string, data []T) (string, error) {
	outputPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving output path: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(outputPath)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("opening CSV file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := cw.Write(tmp, data); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing CSV file: %w", err)
	}
	if err := os.Chmod(tmpPath, cw.perm); err != nil {
		return "", fmt.Errorf("setting CSV file mode: %w", err)
	}
	if err := os.Rename(tmpPath, outputPath); err != nil {
		return "", fmt.Errorf("replacing CSV file: %w", err)
	}

	return outputPath, nil
}
