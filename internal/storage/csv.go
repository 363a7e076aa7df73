package storage

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"depositScanner/internal/model"
)

// CSVStorage appends deposit rows to a CSV file with a fixed header.
type CSVStorage struct {
	path string

	mu            sync.Mutex
	headerChecked bool
}

func NewCSVStorage(path string) *CSVStorage {
	return &CSVStorage{path: path}
}

// Path returns the output file path.
func (s *CSVStorage) Path() string {
	return s.path
}

// PutRows appends rows in a single write. A missing or empty file gets the
// header first, even when rows is empty.
func (s *CSVStorage) PutRows(_ context.Context, rows []model.LogRow) error {
	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat output file: %w", err)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if stat.Size() == 0 {
		if err := writer.Write(model.Columns); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	} else if !s.headerChecked {
		if err := checkHeader(file); err != nil {
			return err
		}
	}
	s.headerChecked = true

	for _, row := range rows {
		if err := writer.Write(row.Record()); err != nil {
			return fmt.Errorf("encode row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("encode rows: %w", err)
	}

	if buf.Len() == 0 {
		return nil
	}
	if _, err := file.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}
	return nil
}

func checkHeader(file *os.File) error {
	// O_APPEND only affects writes; reads start from the current offset.
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seek output file: %w", err)
	}
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read header: %w", err)
	}
	if !slices.Equal(header, model.Columns) {
		return fmt.Errorf("unexpected header %v in %s, want %v", header, file.Name(), model.Columns)
	}
	return nil
}
