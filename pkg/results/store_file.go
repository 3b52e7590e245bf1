package results

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileStore appends result lines to a text file. Only the combined
// concealment and the detection flag survive a round trip.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store appending to path, creating parent
// directories as needed.
func NewFileStore(path string) (*FileStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return &FileStore{path: path}, nil
}

// Append writes one result line for rec.
func (s *FileStore) Append(_ context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open results file: %w", err)
	}
	if _, err := fmt.Fprintln(f, FormatResultLine(rec.Concealment, rec.Detected)); err != nil {
		f.Close()
		return fmt.Errorf("failed to append result: %w", err)
	}
	return f.Close()
}

// List parses every non-blank line. A missing file holds no records.
func (s *FileStore) List(_ context.Context) ([]*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []*Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open results file: %w", err)
	}
	defer f.Close()

	records := make([]*Record, 0)
	sc := bufio.NewScanner(f)
	for lineNo := 1; sc.Scan(); lineNo++ {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		value, detected, err := ParseResultLine(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", s.path, lineNo, err)
		}
		records = append(records, &Record{Concealment: value, Detected: detected})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read results file: %w", err)
	}
	return records, nil
}

// Close is a no-op; every Append opens and closes the file.
func (s *FileStore) Close() error {
	return nil
}
