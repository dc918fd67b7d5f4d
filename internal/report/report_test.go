package report

import (
	"strings"
	"testing"
	"time"
)

func TestRenderGroupsByFolder(t *testing.T) {
	items := []Item{
		{Folder: "week1", Filename: "Pool Area.jpg", ImagePath: "week1/Pool Area.jpg", Task: "Drain the deck", Description: "standing water", Importance: "high"},
		{Folder: "week2", Filename: "Fence.jpg", ImagePath: "week2/Fence.jpg", Description: "loose post", Importance: "medium"},
		{Folder: "week1", Filename: "Vent.jpg", ImagePath: "week1/Vent.jpg", Description: "rust streaks", Importance: "low"},
	}
	page, err := Render(items, Options{
		Title:       "Inspection Report",
		GeneratedAt: time.Date(2025, 8, 25, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := string(page)

	if !strings.Contains(html, "<h2>week1</h2>") || !strings.Contains(html, "<h2>week2</h2>") {
		t.Fatal("folder sections missing")
	}
	if strings.Count(html, "<h2>week1</h2>") != 1 {
		t.Fatal("week1 rendered as more than one section")
	}
	if !strings.Contains(html, `src="/files/week1/Pool Area.jpg"`) {
		t.Fatal("image URL not rooted at /files/")
	}
	if !strings.Contains(html, `pill high`) || !strings.Contains(html, "High importance") {
		t.Fatal("importance pill missing")
	}
	if !strings.Contains(html, "Drain the deck") {
		t.Fatal("task box missing")
	}
	if !strings.Contains(html, "August 25, 2025") {
		t.Fatal("generated date missing")
	}
}

func TestRenderDefaults(t *testing.T) {
	page, err := Render([]Item{
		{Filename: "x.jpg", ImagePath: "x.jpg", Description: "d", Importance: "urgent"},
	}, Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := string(page)
	if !strings.Contains(html, "<h2>Uncategorized</h2>") {
		t.Fatal("empty folder should fall back to Uncategorized")
	}
	if !strings.Contains(html, "pill low") {
		t.Fatal("unknown importance should fall back to low")
	}
	if !strings.Contains(html, "<h1>Inspection Report</h1>") {
		t.Fatal("default title missing")
	}
	if strings.Contains(html, "task-box") {
		t.Fatal("task box rendered with no task")
	}
}

func TestRenderEscapesContent(t *testing.T) {
	page, err := Render([]Item{
		{Folder: "w", Filename: "x.jpg", ImagePath: "x.jpg", Description: `<script>alert("x")</script>`, Importance: "low"},
	}, Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(string(page), "<script>alert") {
		t.Fatal("description not escaped")
	}
}
