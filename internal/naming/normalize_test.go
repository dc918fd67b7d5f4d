package naming

import "testing"

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{"leading marker and shot number", "- Audio system brand speaker locations controller 1.jpg", "audio system brand speaker locations controller"},
		{"duplicate counter", "Pool Area (2).png", "pool area"},
		{"counter without space", "Pool Area(3).png", "pool area"},
		{"plain name", "Kitchen sink.jpg", "kitchen sink"},
		{"no removable suffix", "garage.webp", "garage"},
		{"marker only", "- Living room couch.jpg", "living room couch"},
		{"digits inside name survive", "Apartment 2B hallway.jpg", "apartment 2b hallway"},
		{"whitespace trimmed", "  Deck stairs 4.jpeg", "deck stairs"},
		{"uppercase extension", "FRONT DOOR 2.JPG", "front door"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Key(tt.filename); got != tt.want {
				t.Fatalf("Key(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}

func TestNormalizeLabelPreservesCase(t *testing.T) {
	_, label := Normalize("- TVs remotes apple box eeros etc 1.jpg")
	if label != "TVs remotes apple box eeros etc" {
		t.Fatalf("unexpected label %q", label)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"- Living room couch 1.jpg",
		"Pool Area (2).png",
		"garage.webp",
	}
	for _, input := range inputs {
		key, label := Normalize(input)
		againKey, _ := Normalize(label)
		if againKey != key {
			t.Fatalf("Normalize not idempotent for %q: %q then %q", input, key, againKey)
		}
	}
}

func TestGroupingAcrossVariants(t *testing.T) {
	first := Key("- Living room couch 1.jpg")
	second := Key("- Living room couch (2).jpg")
	if first != second {
		t.Fatalf("expected matching keys, got %q and %q", first, second)
	}
	if first != "living room couch" {
		t.Fatalf("unexpected key %q", first)
	}
}

func TestDisplayTitle(t *testing.T) {
	if got := DisplayTitle("living room couch"); got != "Living Room Couch" {
		t.Fatalf("DisplayTitle = %q", got)
	}
	if got := DisplayTitle("  "); got != "" {
		t.Fatalf("expected empty title, got %q", got)
	}
}
