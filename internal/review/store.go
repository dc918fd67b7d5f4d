package review

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"fieldlens/internal/fileutil"
	"fieldlens/internal/results"
)

// Review statuses. Every entry starts pending and moves to approved or
// rejected by hand.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Importance buckets derived from model severity.
const (
	ImportanceHigh   = "high"
	ImportanceMedium = "medium"
	ImportanceLow    = "low"
)

var (
	// ErrNotFound reports an update against an id the store has never seen.
	ErrNotFound = errors.New("review entry not found")
	// ErrUnknownField reports an update naming a field reviewers may not edit.
	ErrUnknownField = errors.New("field not editable")
	// ErrInvalidStatus reports a status outside pending/approved/rejected.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrCorrupt reports a review data file that is not a valid JSON array.
	ErrCorrupt = errors.New("review store corrupt")
)

// Entry is one reviewable finding. The analysis fields are copied in at
// bootstrap; Task, Description, Importance and Status are the reviewer's to
// change.
type Entry struct {
	ID          string    `json:"id"`
	Folder      string    `json:"folder"`
	Filename    string    `json:"filename"`
	GroupName   string    `json:"group_name,omitempty"`
	ImagePath   string    `json:"image_path"`
	PhotoPaths  []string  `json:"photo_paths,omitempty"`
	Status      string    `json:"status"`
	Task        string    `json:"task"`
	Description string    `json:"description"`
	Importance  string    `json:"importance"`
	Severity    string    `json:"severity,omitempty"`
	HasIssues   bool      `json:"has_issues"`
	AnalyzedAt  time.Time `json:"analyzed_at,omitzero"`
}

// ImportanceForSeverity maps model severity onto the reviewer-facing
// importance scale. Unknown severities land on low rather than blocking.
func ImportanceForSeverity(severity string) string {
	switch strings.ToLower(strings.TrimSpace(severity)) {
	case "severe", "critical":
		return ImportanceHigh
	case "moderate":
		return ImportanceMedium
	default:
		return ImportanceLow
	}
}

// Store manages the review data file and its backups.
type Store struct {
	path      string
	backupDir string

	mu   sync.Mutex
	lock *flock.Flock
}

// NewStore binds a store to the review data file at path. Backups land in
// backupDir before every save; empty disables backups.
func NewStore(path, backupDir string) *Store {
	return &Store{
		path:      path,
		backupDir: backupDir,
		lock:      flock.New(path + ".lock"),
	}
}

// Path returns the review data file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads every entry. A missing file yields an empty store.
func (s *Store) Load() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.lock.Lock(); err != nil {
		return nil, fmt.Errorf("lock review store: %w", err)
	}
	defer s.lock.Unlock()
	return s.loadLocked()
}

// Bootstrap folds analysis records into the review file, adding a pending
// entry for every record not already present. Existing entries keep their
// reviewer edits untouched. Returns the number of entries added.
func (s *Store) Bootstrap(records []results.Record) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.lock.Lock(); err != nil {
		return 0, fmt.Errorf("lock review store: %w", err)
	}
	defer s.lock.Unlock()

	entries, err := s.loadLocked()
	if err != nil {
		return 0, err
	}
	known := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		known[entry.ID] = struct{}{}
	}

	added := 0
	for _, record := range records {
		if _, ok := known[record.ID()]; ok {
			continue
		}
		entries = append(entries, Entry{
			ID:          record.ID(),
			Folder:      record.Folder,
			Filename:    record.Filename,
			GroupName:   record.GroupName,
			ImagePath:   filepath.Join(record.Folder, record.Filename),
			PhotoPaths:  record.PhotoPaths,
			Status:      StatusPending,
			Task:        record.TaskDerived,
			Description: record.Analysis.Description,
			Importance:  ImportanceForSeverity(record.Analysis.Severity),
			Severity:    record.Analysis.Severity,
			HasIssues:   record.Analysis.HasIssues,
			AnalyzedAt:  record.AnalyzedAt,
		})
		known[record.ID()] = struct{}{}
		added++
	}
	if added == 0 {
		return 0, nil
	}
	if err := s.saveLocked(entries); err != nil {
		return 0, err
	}
	return added, nil
}

// Update applies reviewer edits to the entry with the given id and saves the
// store, backing up the previous file first. Only status, task, description
// and importance may change; a bad field or status rejects the whole update.
func (s *Store) Update(id string, updates map[string]string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.lock.Lock(); err != nil {
		return Entry{}, fmt.Errorf("lock review store: %w", err)
	}
	defer s.lock.Unlock()

	entries, err := s.loadLocked()
	if err != nil {
		return Entry{}, err
	}
	idx := -1
	for i := range entries {
		if entries[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	for field, value := range updates {
		switch field {
		case "status":
			status := strings.ToLower(strings.TrimSpace(value))
			switch status {
			case StatusPending, StatusApproved, StatusRejected:
				entries[idx].Status = status
			default:
				return Entry{}, fmt.Errorf("%w: %q", ErrInvalidStatus, value)
			}
		case "task":
			entries[idx].Task = value
		case "description":
			entries[idx].Description = value
		case "importance":
			entries[idx].Importance = strings.ToLower(strings.TrimSpace(value))
		default:
			return Entry{}, fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	}

	if err := s.saveLocked(entries); err != nil {
		return Entry{}, err
	}
	return entries[idx], nil
}

// Approved returns approved entries sorted by folder then task, the order
// the export renders them in.
func (s *Store) Approved() ([]Entry, error) {
	entries, err := s.Load()
	if err != nil {
		return nil, err
	}
	approved := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.Status == StatusApproved {
			approved = append(approved, entry)
		}
	}
	sort.SliceStable(approved, func(i, j int) bool {
		if approved[i].Folder != approved[j].Folder {
			return approved[i].Folder < approved[j].Folder
		}
		return approved[i].Task < approved[j].Task
	})
	return approved, nil
}

func (s *Store) loadLocked() ([]Entry, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read review store: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	return entries, nil
}

func (s *Store) saveLocked(entries []Entry) error {
	if err := s.backupLocked(); err != nil {
		return err
	}
	encoded, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode review store: %w", err)
	}
	encoded = append(encoded, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create review directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".review-*.json")
	if err != nil {
		return fmt.Errorf("create temp review file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp review file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp review file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace review file: %w", err)
	}
	return nil
}

func (s *Store) backupLocked() error {
	if s.backupDir == "" || !fileutil.Exists(s.path) {
		return nil
	}
	if err := fileutil.EnsureDir(s.backupDir); err != nil {
		return fmt.Errorf("create backup directory: %w", err)
	}
	stamp := time.Now().UTC().Format("20060102T150405Z")
	name := fmt.Sprintf("%s.%s.bak", filepath.Base(s.path), stamp)
	if err := fileutil.CopyFilePreserving(s.path, filepath.Join(s.backupDir, name)); err != nil {
		return fmt.Errorf("back up review file: %w", err)
	}
	return nil
}
