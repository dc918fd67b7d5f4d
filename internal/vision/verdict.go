package vision

import (
	"context"
	"fmt"
	"strings"
)

// Severity values the review prompts may return. Unknown values pass through
// lowercased so the review dashboard can still bucket them.
const (
	SeverityNone     = "none"
	SeverityMinor    = "minor"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
	SeverityUnknown  = "unknown"
)

// Verdict is the parsed outcome of a guest-readiness review.
type Verdict struct {
	HasIssues       bool   `json:"has_issues"`
	Description     string `json:"description"`
	Severity        string `json:"severity"`
	ChangesOverTime string `json:"changes_over_time,omitempty"`
	Raw             string `json:"-"`
}

// DamageVerdict is the parsed outcome of a strict damage-only check.
type DamageVerdict struct {
	HasDamage bool   `json:"has_damage"`
	Reason    string `json:"reason"`
	Raw       string `json:"-"`
}

// CheckDamage classifies a single photo as damaged or clean.
func (c *Client) CheckDamage(ctx context.Context, imageURI string) (DamageVerdict, error) {
	var verdict DamageVerdict
	content, err := c.complete(ctx, damageCheckPrompt, []string{imageURI}, "vision damage check")
	if err != nil {
		return verdict, err
	}
	if err := DecodeModelJSON(content, &verdict); err != nil {
		return verdict, fmt.Errorf("vision damage check: parse payload: %w", err)
	}
	verdict.Raw = content
	verdict.Reason = strings.TrimSpace(verdict.Reason)
	if verdict.Reason == "" {
		verdict.Reason = "No reason provided"
	}
	return verdict, nil
}

// ReviewPhoto reviews a single photo for anything a guest would object to.
func (c *Client) ReviewPhoto(ctx context.Context, imageURI string) (Verdict, error) {
	return c.review(ctx, reviewPhotoPrompt, []string{imageURI}, "vision photo review", false)
}

// ReviewGroup reviews photos of the same area across dates in one call. The
// verdict covers every member and includes any change over time.
func (c *Client) ReviewGroup(ctx context.Context, imageURIs []string) (Verdict, error) {
	if len(imageURIs) == 1 {
		return c.ReviewPhoto(ctx, imageURIs[0])
	}
	return c.review(ctx, reviewGroupPrompt, imageURIs, "vision group review", true)
}

func (c *Client) review(ctx context.Context, prompt string, imageURIs []string, op string, grouped bool) (Verdict, error) {
	var verdict Verdict
	content, err := c.complete(ctx, prompt, imageURIs, op)
	if err != nil {
		return verdict, err
	}
	if err := DecodeModelJSON(content, &verdict); err != nil {
		return verdict, fmt.Errorf("%s: parse payload: %w", op, err)
	}
	verdict.Raw = content
	verdict.Description = strings.TrimSpace(verdict.Description)
	verdict.Severity = strings.ToLower(strings.TrimSpace(verdict.Severity))
	if verdict.Severity == "" {
		verdict.Severity = SeverityUnknown
	}
	verdict.ChangesOverTime = strings.TrimSpace(verdict.ChangesOverTime)
	if grouped && verdict.ChangesOverTime == "" {
		verdict.ChangesOverTime = "none"
	}
	return verdict, nil
}
