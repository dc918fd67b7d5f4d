package naming

import (
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	leadingMarkerPattern   = regexp.MustCompile(`^-\s*`)
	trailingNumberPattern  = regexp.MustCompile(`\s+\d+$`)
	trailingCounterPattern = regexp.MustCompile(`\s*\(\d+\)$`)
)

// Normalize reduces a raw filename to a grouping key and a display label.
// The key is the lowercased base name with the extension, a single leading
// dash marker, a trailing run of digits, and a trailing "(N)" counter
// removed; the label is the same text with its original casing.
func Normalize(filename string) (key, label string) {
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	name = leadingMarkerPattern.ReplaceAllString(name, "")
	name = trailingNumberPattern.ReplaceAllString(name, "")
	name = trailingCounterPattern.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)
	return strings.ToLower(name), name
}

// Key returns only the grouping key for filename.
func Key(filename string) string {
	key, _ := Normalize(filename)
	return key
}

// DisplayTitle title-cases a normalized label for report headings.
func DisplayTitle(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return ""
	}
	return cases.Title(language.Und).String(label)
}
