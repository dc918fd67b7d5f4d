package review

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fieldlens/internal/results"
)

func newTestServer(t *testing.T) (*Server, *Store, string) {
	t.Helper()
	dir := t.TempDir()

	resultsStore := results.NewStore(filepath.Join(dir, "results.json"))
	for _, record := range sampleRecords() {
		if err := resultsStore.Append(record); err != nil {
			t.Fatal(err)
		}
	}

	store := NewStore(filepath.Join(dir, "inspection.json"), filepath.Join(dir, "backups"))
	srv, err := NewServer(ServerOptions{
		Bind:        "127.0.0.1:0",
		Store:       store,
		Results:     resultsStore,
		FilesRoot:   dir,
		ReportTitle: "Inspection Report",
	})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv, store, dir
}

func TestHandleDataBootstrapsFromResults(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/data", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}

	var entries []Entry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries", len(entries))
	}
	if entries[0].Status != StatusPending {
		t.Fatalf("Status = %q", entries[0].Status)
	}
}

func TestHandleUpdate(t *testing.T) {
	srv, store, _ := newTestServer(t)

	// Seed via the data endpoint first.
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/data", nil))

	post := func(payload string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/update", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		srv.Handler().ServeHTTP(rec, req)
		return rec
	}

	if rec := post(`{"id":"week1/Pool Area.jpg","status":"approved","task":"Reseal the deck"}`); rec.Code != http.StatusOK {
		t.Fatalf("valid update: %d %s", rec.Code, rec.Body)
	}
	if rec := post(`{"status":"approved"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing id: %d", rec.Code)
	}
	if rec := post(`{"id":"week1/Pool Area.jpg","severity":"low"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("no allowed fields: %d", rec.Code)
	}
	if rec := post(`{"id":"week1/Pool Area.jpg","status":"archived"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad status: %d", rec.Code)
	}
	if rec := post(`{"id":"week9/ghost.jpg","status":"approved"}`); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown id: %d", rec.Code)
	}

	entries, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if entry.ID == "week1/Pool Area.jpg" {
			if entry.Status != StatusApproved || entry.Task != "Reseal the deck" {
				t.Fatalf("update not persisted: %+v", entry)
			}
			return
		}
	}
	t.Fatal("entry missing after update")
}

func TestHandleExportRendersApprovedOnly(t *testing.T) {
	srv, store, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/data", nil))
	if _, err := store.Update("week1/Pool Area.jpg", map[string]string{"status": StatusApproved}); err != nil {
		t.Fatal(err)
	}

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "standing water near the drain") {
		t.Fatal("approved finding missing from export")
	}
	if strings.Contains(body, "Roof Vent.jpg") {
		t.Fatal("pending finding leaked into export")
	}
	if rec.Header().Get("Content-Disposition") != "" {
		t.Fatal("inline export should not set disposition")
	}

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export?download=1", nil))
	if !strings.Contains(rec.Header().Get("Content-Disposition"), "attachment") {
		t.Fatal("download export should set attachment disposition")
	}
}

func TestHandleFiles(t *testing.T) {
	srv, _, dir := newTestServer(t)

	sub := filepath.Join(dir, "week1")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "photo.jpg"), []byte("jpeg bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/week1/photo.jpg", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != "jpeg bytes" {
		t.Fatalf("body = %q", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/../secret.txt", nil))
	if rec.Code == http.StatusOK {
		t.Fatal("path traversal served a file")
	}
}

func TestHealthz(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
