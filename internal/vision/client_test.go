package vision

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

const testImageURI = "data:image/jpeg;base64,Zm9v"

func replyWith(t *testing.T, content string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]any{
			"choices": []any{
				map[string]any{
					"message": map[string]any{"content": content},
				},
			},
		}
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	}
}

func TestHealthCheck(t *testing.T) {
	server := httptest.NewServer(replyWith(t, `{"ok":true}`))
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo-model"})
	if err := client.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck returned error: %v", err)
	}
}

func TestReviewPhotoCodeFence(t *testing.T) {
	server := httptest.NewServer(replyWith(t,
		"```json\n{\"has_issues\": true, \"description\": \"crack in wall\", \"severity\": \"Moderate\"}\n```"))
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo-model"})
	verdict, err := client.ReviewPhoto(context.Background(), testImageURI)
	if err != nil {
		t.Fatalf("ReviewPhoto returned error: %v", err)
	}
	if !verdict.HasIssues {
		t.Fatal("expected has_issues true")
	}
	if verdict.Description != "crack in wall" {
		t.Fatalf("unexpected description %q", verdict.Description)
	}
	if verdict.Severity != SeverityModerate {
		t.Fatalf("expected lowercased severity moderate, got %q", verdict.Severity)
	}
	if verdict.Raw == "" || !strings.Contains(verdict.Raw, "```") {
		t.Fatalf("expected raw payload to retain code fence, got %q", verdict.Raw)
	}
}

func TestReviewPhotoMissingFieldsDefault(t *testing.T) {
	server := httptest.NewServer(replyWith(t, `{"description": "all good"}`))
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo-model"})
	verdict, err := client.ReviewPhoto(context.Background(), testImageURI)
	if err != nil {
		t.Fatalf("ReviewPhoto returned error: %v", err)
	}
	if verdict.HasIssues {
		t.Fatal("expected has_issues to default to false")
	}
	if verdict.Severity != SeverityUnknown {
		t.Fatalf("expected severity to default to unknown, got %q", verdict.Severity)
	}
}

func TestReviewGroupDefaultsChanges(t *testing.T) {
	server := httptest.NewServer(replyWith(t, `{"has_issues": false, "description": "tidy"}`))
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo-model"})
	verdict, err := client.ReviewGroup(context.Background(), []string{testImageURI, testImageURI})
	if err != nil {
		t.Fatalf("ReviewGroup returned error: %v", err)
	}
	if verdict.ChangesOverTime != "none" {
		t.Fatalf("expected changes_over_time to default to none, got %q", verdict.ChangesOverTime)
	}
}

func TestCheckDamageDefaultsReason(t *testing.T) {
	server := httptest.NewServer(replyWith(t, `{"has_damage": true}`))
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo-model"})
	verdict, err := client.CheckDamage(context.Background(), testImageURI)
	if err != nil {
		t.Fatalf("CheckDamage returned error: %v", err)
	}
	if !verdict.HasDamage {
		t.Fatal("expected has_damage true")
	}
	if verdict.Reason != "No reason provided" {
		t.Fatalf("unexpected default reason %q", verdict.Reason)
	}
}

func TestRequestShape(t *testing.T) {
	var captured []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read request: %v", err)
		}
		captured = body
		replyWith(t, `{"has_issues": false, "description": "", "severity": "none"}`)(w, r)
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo-model", Referer: "https://example.test"})
	if _, err := client.ReviewGroup(context.Background(), []string{testImageURI, testImageURI}); err != nil {
		t.Fatalf("ReviewGroup returned error: %v", err)
	}

	var request struct {
		Model          string            `json:"model"`
		ResponseFormat map[string]string `json:"response_format"`
		Messages       []struct {
			Role    string `json:"role"`
			Content []struct {
				Type     string `json:"type"`
				ImageURL *struct {
					URL string `json:"url"`
				} `json:"image_url"`
			} `json:"content"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(captured, &request); err != nil {
		t.Fatalf("decode captured request: %v", err)
	}
	if request.Model != "demo-model" {
		t.Fatalf("unexpected model %q", request.Model)
	}
	if request.ResponseFormat["type"] != "json_object" {
		t.Fatalf("expected json_object response format, got %v", request.ResponseFormat)
	}
	if len(request.Messages) != 1 {
		t.Fatalf("expected one message, got %d", len(request.Messages))
	}
	content := request.Messages[0].Content
	if len(content) != 3 {
		t.Fatalf("expected text part plus two images, got %d parts", len(content))
	}
	if content[0].Type != "text" {
		t.Fatalf("expected leading text part, got %q", content[0].Type)
	}
	for _, part := range content[1:] {
		if part.Type != "image_url" || part.ImageURL == nil || part.ImageURL.URL != testImageURI {
			t.Fatalf("unexpected image part %+v", part)
		}
	}
}

func TestRetryOnServerError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		replyWith(t, `{"has_damage": false, "reason": "clean"}`)(w, r)
	}))
	defer server.Close()

	client := NewClient(
		Config{APIKey: "test", BaseURL: server.URL, Model: "demo-model"},
		WithRetryMaxAttempts(3),
		WithSleeper(func(time.Duration) {}),
	)
	verdict, err := client.CheckDamage(context.Background(), testImageURI)
	if err != nil {
		t.Fatalf("CheckDamage returned error: %v", err)
	}
	if verdict.HasDamage {
		t.Fatal("expected clean verdict")
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 calls, got %d", calls.Load())
	}
}

func TestNoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(
		Config{APIKey: "test", BaseURL: server.URL, Model: "demo-model"},
		WithRetryMaxAttempts(3),
		WithSleeper(func(time.Duration) {}),
	)
	if _, err := client.ReviewPhoto(context.Background(), testImageURI); err == nil {
		t.Fatal("expected error for http 400")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single call, got %d", calls.Load())
	}
}

func TestDecodeModelJSONSurroundingProse(t *testing.T) {
	var parsed struct {
		HasIssues bool `json:"has_issues"`
	}
	payload := "Here is the result you asked for:\n{\"has_issues\": true}\nLet me know if you need more."
	if err := DecodeModelJSON(payload, &parsed); err != nil {
		t.Fatalf("DecodeModelJSON: %v", err)
	}
	if !parsed.HasIssues {
		t.Fatal("expected has_issues true")
	}
}

func TestDecodeModelJSONMalformed(t *testing.T) {
	var parsed map[string]any
	if err := DecodeModelJSON("the photo looks fine to me", &parsed); err == nil {
		t.Fatal("expected decode failure for prose-only payload")
	}
}
