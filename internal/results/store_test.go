package results

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "analysis_results.json"))
}

func sampleRecord(n int) Record {
	return Record{
		Folder:    "Nov 3 Inspection",
		Filename:  fmt.Sprintf("photo-%d.jpg", n),
		GroupName: fmt.Sprintf("area %d", n),
		Analysis: Analysis{
			HasIssues:   n%2 == 0,
			Description: "scuffed baseboard",
			Severity:    "minor",
		},
		AnalyzedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
}

func TestLoadMissingFile(t *testing.T) {
	store := newTestStore(t)
	records, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty store, got %d records", len(records))
	}
}

func TestAppendPreservesOrder(t *testing.T) {
	store := newTestStore(t)
	for i := 0; i < 5; i++ {
		if err := store.Append(sampleRecord(i)); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}
	records, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("expected 5 records, got %d", len(records))
	}
	for i, record := range records {
		if record.Filename != fmt.Sprintf("photo-%d.jpg", i) {
			t.Fatalf("record %d out of order: %q", i, record.Filename)
		}
	}
}

func TestConcurrentAppendsLoseNothing(t *testing.T) {
	store := newTestStore(t)
	const workers = 8

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			errs <- store.Append(sampleRecord(n))
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	records, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != workers {
		t.Fatalf("expected %d records, got %d", workers, len(records))
	}
	seen := make(map[string]struct{}, workers)
	for _, record := range records {
		seen[record.Filename] = struct{}{}
	}
	if len(seen) != workers {
		t.Fatalf("expected %d distinct records, got %d", workers, len(seen))
	}
}

func TestLoadCorruptFile(t *testing.T) {
	store := newTestStore(t)
	if err := os.WriteFile(store.Path(), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}
	_, err := store.Load()
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestQuarantineCorrupt(t *testing.T) {
	store := newTestStore(t)
	if err := os.WriteFile(store.Path(), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}
	quarantine, err := store.QuarantineCorrupt()
	if err != nil {
		t.Fatalf("QuarantineCorrupt: %v", err)
	}
	if !strings.Contains(quarantine, ".corrupt-") {
		t.Fatalf("unexpected quarantine path %q", quarantine)
	}
	if _, err := os.Stat(quarantine); err != nil {
		t.Fatalf("quarantine file missing: %v", err)
	}
	records, err := store.Load()
	if err != nil {
		t.Fatalf("Load after quarantine: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected fresh store, got %d records", len(records))
	}
}

func TestStoreFileIsIndentedArray(t *testing.T) {
	store := newTestStore(t)
	if err := store.Append(sampleRecord(1)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	raw, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("read store: %v", err)
	}
	if !strings.HasPrefix(string(raw), "[\n  {") {
		t.Fatalf("expected indented array, got %q", string(raw[:20]))
	}
	var generic []map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		t.Fatalf("store not valid JSON: %v", err)
	}
}

func TestGroupKeys(t *testing.T) {
	records := []Record{
		{GroupName: "Pool Area"},
		{GroupName: "kitchen"},
		{GroupName: ""},
	}
	keys := GroupKeys(records)
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(keys))
	}
	if _, ok := keys["pool area"]; !ok {
		t.Fatal("expected lowercased pool area key")
	}
}
