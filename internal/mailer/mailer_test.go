package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSendVerificationMail(t *testing.T) {
	var got mailRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/send" {
			t.Errorf("path = %q, want /api/send", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %q, want application/json", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	link := "http://localhost:8080/api/auth/verify-email?token=abc"
	if err := c.SendVerificationMail(context.Background(), "user@example.com", link); err != nil {
		t.Fatalf("SendVerificationMail error: %v", err)
	}

	if got.To != "user@example.com" {
		t.Fatalf("to = %q, want user@example.com", got.To)
	}
	if got.Subject != "MarketHub - Verify Your Email" {
		t.Fatalf("subject = %q", got.Subject)
	}
	if !strings.Contains(got.Body, link) {
		t.Fatalf("body %q does not contain verification link", got.Body)
	}
}

func TestSendVerificationMail_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	err := c.SendVerificationMail(context.Background(), "user@example.com", "http://example.com/verify")
	if err == nil {
		t.Fatalf("expected error for non-2xx relay response")
	}
}

func TestSendVerificationMail_NotConfigured(t *testing.T) {
	var c *Client

	err := c.SendVerificationMail(context.Background(), "user@example.com", "http://example.com/verify")
	if err == nil {
		t.Fatalf("expected error for unconfigured mailer")
	}
}
