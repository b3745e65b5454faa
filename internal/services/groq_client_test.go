package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wayfarelabs/wayfare-backend/internal/repos/testutil"
)

func newTestGroqClient(t *testing.T, baseURL string) *groqClient {
	t.Helper()
	return &groqClient{
		log:        testutil.Logger(t),
		baseURL:    baseURL,
		apiKey:     "test-key",
		model:      "llama-3.3-70b-versatile",
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestGroqClient_CompleteJSON(t *testing.T) {
	var gotBody map[string]any
	var gotAuth string
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "{\"days\": []}"}, "finish_reason": "stop"}]}`))
	}))
	defer srv.Close()

	client := newTestGroqClient(t, srv.URL)
	out, err := client.CompleteJSON(context.Background(), "sys", "user", GenerationParams{Temperature: 0.8, MaxTokens: 4096})
	if err != nil {
		t.Fatalf("CompleteJSON: %v", err)
	}
	if out != `{"days": []}` {
		t.Fatalf("content = %q", out)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one request, got %d", calls)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("auth header = %q", gotAuth)
	}

	rf, _ := gotBody["response_format"].(map[string]any)
	if rf["type"] != "json_object" {
		t.Fatalf("response_format = %v", gotBody["response_format"])
	}
	if gotBody["temperature"] != 0.8 {
		t.Fatalf("temperature = %v", gotBody["temperature"])
	}
	if gotBody["max_tokens"] != float64(4096) {
		t.Fatalf("max_tokens = %v", gotBody["max_tokens"])
	}
}

func TestGroqClient_NoRetryOnFailure(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"code": "rate_limit_exceeded"}}`))
	}))
	defer srv.Close()

	client := newTestGroqClient(t, srv.URL)
	_, err := client.CompleteJSON(context.Background(), "sys", "user", GenerationParams{})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("client must not retry, made %d requests", calls)
	}
	if !IsRateLimited(err) {
		t.Fatalf("429 must classify as rate limited: %v", err)
	}
}

func TestIsRateLimited(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"429", &groqHTTPError{StatusCode: 429, Body: "slow down"}, true},
		{"body marker", &groqHTTPError{StatusCode: 400, Body: `{"error": {"code": "rate_limit_exceeded"}}`}, true},
		{"plain 500", &groqHTTPError{StatusCode: 500, Body: "boom"}, false},
		{"unrelated error", errors.New("connection refused"), false},
		{"nil", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsRateLimited(tc.err); got != tc.want {
				t.Fatalf("IsRateLimited = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestGroqClient_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	client := newTestGroqClient(t, srv.URL)
	if _, err := client.CompleteJSON(context.Background(), "sys", "user", GenerationParams{}); err == nil {
		t.Fatal("expected error for empty choices")
	}
}
