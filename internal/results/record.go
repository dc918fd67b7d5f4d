package results

import (
	"strings"
	"time"
)

// Analysis is the structured verdict attached to a record. Fields are always
// present after classification; severity is stored lowercased.
type Analysis struct {
	HasIssues       bool   `json:"has_issues"`
	Description     string `json:"description"`
	Severity        string `json:"severity"`
	ChangesOverTime string `json:"changes_over_time,omitempty"`
}

// Record is one classification outcome. Records are appended once and never
// mutated in place; the review dashboard layers its own mutable state on top
// keyed by ID.
type Record struct {
	Folder      string    `json:"folder"`
	Filename    string    `json:"filename"`
	GroupName   string    `json:"group_name,omitempty"`
	PhotoPaths  []string  `json:"photo_paths,omitempty"`
	Analysis    Analysis  `json:"analysis"`
	TaskDerived string    `json:"task_derived,omitempty"`
	AnalyzedAt  time.Time `json:"analyzed_at"`
}

// ID returns the stable identity the review API keys records by.
func (r Record) ID() string {
	return r.Folder + "/" + r.Filename
}

// GroupKeys returns the set of group names present in records, lowercased,
// for resumability checks.
func GroupKeys(records []Record) map[string]struct{} {
	keys := make(map[string]struct{}, len(records))
	for _, record := range records {
		name := strings.ToLower(strings.TrimSpace(record.GroupName))
		if name != "" {
			keys[name] = struct{}{}
		}
	}
	return keys
}
