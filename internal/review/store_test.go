package review

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fieldlens/internal/results"
)

func sampleRecords() []results.Record {
	return []results.Record{
		{
			Folder:   "week1",
			Filename: "Pool Area.jpg",
			Analysis: results.Analysis{
				HasIssues:   true,
				Description: "standing water near the drain",
				Severity:    "severe",
			},
			TaskDerived: "Pool Area",
			AnalyzedAt:  time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC),
		},
		{
			Folder:   "week1",
			Filename: "Roof Vent.jpg",
			Analysis: results.Analysis{
				Description: "no visible problems",
				Severity:    "none",
			},
			TaskDerived: "Roof Vent",
		},
	}
}

func TestImportanceForSeverity(t *testing.T) {
	cases := map[string]string{
		"severe":   ImportanceHigh,
		"critical": ImportanceHigh,
		"CRITICAL": ImportanceHigh,
		"moderate": ImportanceMedium,
		"minor":    ImportanceLow,
		"none":     ImportanceLow,
		"":         ImportanceLow,
		"unknown":  ImportanceLow,
	}
	for severity, want := range cases {
		if got := ImportanceForSeverity(severity); got != want {
			t.Errorf("ImportanceForSeverity(%q) = %q, want %q", severity, got, want)
		}
	}
}

func TestBootstrapSeedsPendingEntries(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "inspection.json"), "")

	added, err := store.Bootstrap(sampleRecords())
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if added != 2 {
		t.Fatalf("added = %d, want 2", added)
	}

	entries, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries", len(entries))
	}
	pool := entries[0]
	if pool.ID != "week1/Pool Area.jpg" {
		t.Fatalf("ID = %q", pool.ID)
	}
	if pool.Status != StatusPending {
		t.Fatalf("Status = %q", pool.Status)
	}
	if pool.Importance != ImportanceHigh {
		t.Fatalf("Importance = %q", pool.Importance)
	}
	if pool.ImagePath != filepath.Join("week1", "Pool Area.jpg") {
		t.Fatalf("ImagePath = %q", pool.ImagePath)
	}
	if pool.Task != "Pool Area" || pool.Description != "standing water near the drain" {
		t.Fatalf("analysis fields not carried: %+v", pool)
	}
}

func TestBootstrapKeepsReviewerEdits(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "inspection.json"), "")

	if _, err := store.Bootstrap(sampleRecords()); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Update("week1/Pool Area.jpg", map[string]string{
		"status": StatusApproved,
		"task":   "Drain and reseal the pool deck",
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	added, err := store.Bootstrap(sampleRecords())
	if err != nil {
		t.Fatalf("second Bootstrap: %v", err)
	}
	if added != 0 {
		t.Fatalf("added = %d, want 0", added)
	}
	entries, _ := store.Load()
	if entries[0].Status != StatusApproved || entries[0].Task != "Drain and reseal the pool deck" {
		t.Fatalf("edits lost: %+v", entries[0])
	}
}

func TestUpdateValidation(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "inspection.json"), "")
	if _, err := store.Bootstrap(sampleRecords()); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Update("nope/missing.jpg", map[string]string{"status": StatusApproved}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing id: %v", err)
	}
	if _, err := store.Update("week1/Pool Area.jpg", map[string]string{"status": "archived"}); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("bad status: %v", err)
	}
	if _, err := store.Update("week1/Pool Area.jpg", map[string]string{"severity": "low"}); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("locked field: %v", err)
	}

	entry, err := store.Update("week1/Pool Area.jpg", map[string]string{"importance": "Medium"})
	if err != nil {
		t.Fatalf("valid update: %v", err)
	}
	if entry.Importance != ImportanceMedium {
		t.Fatalf("Importance = %q", entry.Importance)
	}
}

func TestUpdateWritesBackup(t *testing.T) {
	dir := t.TempDir()
	backups := filepath.Join(dir, "backups")
	store := NewStore(filepath.Join(dir, "inspection.json"), backups)
	if _, err := store.Bootstrap(sampleRecords()); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Update("week1/Roof Vent.jpg", map[string]string{"status": StatusRejected}); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(backups)
	if err != nil {
		t.Fatalf("backup dir: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("no backup written before save")
	}
}

func TestApprovedSortsByFolderThenTask(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "inspection.json"), "")
	records := []results.Record{
		{Folder: "week2", Filename: "b.jpg", TaskDerived: "Zeta"},
		{Folder: "week1", Filename: "a.jpg", TaskDerived: "Alpha"},
		{Folder: "week1", Filename: "c.jpg", TaskDerived: "Beta"},
	}
	if _, err := store.Bootstrap(records); err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"week2/b.jpg", "week1/c.jpg", "week1/a.jpg"} {
		if _, err := store.Update(id, map[string]string{"status": StatusApproved}); err != nil {
			t.Fatal(err)
		}
	}

	approved, err := store.Approved()
	if err != nil {
		t.Fatal(err)
	}
	var order []string
	for _, entry := range approved {
		order = append(order, entry.ID)
	}
	want := []string{"week1/a.jpg", "week1/c.jpg", "week2/b.jpg"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}
