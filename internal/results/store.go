package results

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

// ErrCorrupt reports a store file whose contents are not a valid JSON array.
var ErrCorrupt = errors.New("results store corrupt")

// Store manages one JSON array file of records.
type Store struct {
	path string

	mu   sync.Mutex
	lock *flock.Flock
}

// NewStore binds a store to the JSON file at path.
func NewStore(path string) *Store {
	return &Store{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path returns the store file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads every record in append order. A missing file yields an empty
// store; a file that fails to parse yields an error wrapping ErrCorrupt so
// the caller can decide whether to abort or quarantine and proceed.
func (s *Store) Load() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.lock.Lock(); err != nil {
		return nil, fmt.Errorf("lock results store: %w", err)
	}
	defer s.lock.Unlock()
	return s.loadLocked()
}

// Append adds one record to the end of the store, rewriting the whole file.
// Concurrent appenders are serialized; an interrupted writer never leaves a
// partially written store behind.
func (s *Store) Append(record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock results store: %w", err)
	}
	defer s.lock.Unlock()

	records, err := s.loadLocked()
	if err != nil {
		return err
	}
	records = append(records, record)
	return s.writeLocked(records)
}

// QuarantineCorrupt moves a damaged store file aside so a fresh store can be
// written without destroying the evidence. Returns the quarantine path.
func (s *Store) QuarantineCorrupt() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.lock.Lock(); err != nil {
		return "", fmt.Errorf("lock results store: %w", err)
	}
	defer s.lock.Unlock()

	quarantine := fmt.Sprintf("%s.corrupt-%s", s.path, time.Now().UTC().Format("20060102T150405Z"))
	if err := os.Rename(s.path, quarantine); err != nil {
		return "", fmt.Errorf("quarantine results store: %w", err)
	}
	return quarantine, nil
}

func (s *Store) loadLocked() ([]Record, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read results store: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	return records, nil
}

func (s *Store) writeLocked(records []Record) error {
	encoded, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode results store: %w", err)
	}
	encoded = append(encoded, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create results directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".results-*.json")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp store: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace results store: %w", err)
	}
	return nil
}
