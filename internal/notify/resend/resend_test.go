package resend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestValidateConfig(t *testing.T) {
	if err := ValidateConfig(nil); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid for nil config, got %v", err)
	}
	if err := ValidateConfig(&Config{APIKey: "key"}); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid for missing from, got %v", err)
	}
	if err := ValidateConfig(&Config{APIKey: "key", From: "shop@example.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSendBuildsRequest(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/emails" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer key" {
			t.Errorf("unexpected auth header: %s", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request failed: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_123"}`))
	}))
	defer server.Close()

	cfg := &Config{
		APIKey:     "key",
		APIBaseURL: server.URL,
		From:       "shop@example.com",
		FromName:   "Test Shop",
	}
	result, err := Send(context.Background(), cfg, SendInput{
		To:      []string{"buyer@example.com"},
		Subject: "Order confirmed",
		Text:    "Thanks!",
	})
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if result.MessageID != "msg_123" {
		t.Fatalf("message id want msg_123 got %s", result.MessageID)
	}
	if gotBody["from"] != "Test Shop <shop@example.com>" {
		t.Fatalf("unexpected from: %v", gotBody["from"])
	}
	if gotBody["subject"] != "Order confirmed" {
		t.Fatalf("unexpected subject: %v", gotBody["subject"])
	}
}

func TestSendRejectsMissingRecipient(t *testing.T) {
	cfg := &Config{APIKey: "key", From: "shop@example.com"}
	if _, err := Send(context.Background(), cfg, SendInput{Subject: "s"}); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid, got %v", err)
	}
}

func TestSendSurfacesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from"}`))
	}))
	defer server.Close()

	cfg := &Config{APIKey: "key", APIBaseURL: server.URL, From: "shop@example.com"}
	_, err := Send(context.Background(), cfg, SendInput{
		To:      []string{"buyer@example.com"},
		Subject: "Order confirmed",
	})
	if !errors.Is(err, ErrResponseInvalid) {
		t.Fatalf("expected ErrResponseInvalid, got %v", err)
	}
}
