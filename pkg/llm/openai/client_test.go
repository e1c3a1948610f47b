package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dskvich/image-generator/pkg/domain"
	"github.com/openai/openai-go/v2/option"
)

type recordedRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model"`
	N      int64  `json:"n"`
	Size   string `json:"size"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := NewClient("test-key", option.WithBaseURL(server.URL+"/v1/"), option.WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	return c
}

func TestNewClient_EmptyToken(t *testing.T) {
	if _, err := NewClient(""); err == nil {
		t.Error("expected error for empty token")
	}
}

func TestGenerateImages(t *testing.T) {
	var got recordedRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/images/generations") {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Error("Missing or wrong Authorization header")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"created":1,"data":[{"url":"https://img/a.png"},{"b64_json":"AAAA"},{"url":"https://img/b.png"}]}`))
	})

	urls, err := c.GenerateImages(context.Background(), domain.ImageRequest{
		Prompt: "a red fox",
		Count:  3,
		Size:   domain.Size1024x1792,
		Model:  domain.DallE3Model,
	})
	if err != nil {
		t.Fatalf("GenerateImages error: %v", err)
	}

	want := []string{"https://img/a.png", "https://img/b.png"}
	if len(urls) != len(want) || urls[0] != want[0] || urls[1] != want[1] {
		t.Errorf("urls = %v, want %v", urls, want)
	}
	if got.Prompt != "a red fox" || got.Model != "dall-e-3" || got.N != 3 || got.Size != "1024x1792" {
		t.Errorf("request = %+v", got)
	}
}

func TestGenerateImages_NoURLs(t *testing.T) {
	var got recordedRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"created":1,"data":[{"b64_json":"AAAA"}]}`))
	})

	urls, err := c.GenerateImages(context.Background(), domain.ImageRequest{
		Prompt: "x",
		Count:  1,
		Size:   domain.Size512x512,
		Model:  domain.DallE2Model,
	})
	if err != nil {
		t.Fatalf("GenerateImages error: %v", err)
	}
	if len(urls) != 0 {
		t.Errorf("urls = %v, want none", urls)
	}
	if got.N != 1 || got.Model != "dall-e-2" || got.Size != "512x512" {
		t.Errorf("request = %+v", got)
	}
}

func TestGenerateImages_APIError(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"content policy violation","type":"invalid_request_error"}}`))
	})

	_, err := c.GenerateImages(context.Background(), domain.ImageRequest{Prompt: "x", Count: 1})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("server called %d times, want 1 (no retries)", calls)
	}
}

func TestGenerateImages_ServerErrorNotRetried(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	})

	if _, err := c.GenerateImages(context.Background(), domain.ImageRequest{Prompt: "x", Count: 1}); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("server called %d times, want 1", calls)
	}
}
