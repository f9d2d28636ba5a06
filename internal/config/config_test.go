package config

import (
	"testing"
	"time"
)

func TestBuildSettings_Defaults(t *testing.T) {
	settings, err := BuildSettings(Options{})
	if err != nil {
		t.Fatalf("BuildSettings() error = %v", err)
	}
	if settings.APIBaseURL != DefaultAPIBaseURL {
		t.Fatalf("APIBaseURL = %q, want %q", settings.APIBaseURL, DefaultAPIBaseURL)
	}
	if settings.APIDirectURL != DefaultAPIDirectURL {
		t.Fatalf("APIDirectURL = %q, want %q", settings.APIDirectURL, DefaultAPIDirectURL)
	}
	if settings.WSURL != DefaultWSURL {
		t.Fatalf("WSURL = %q, want %q", settings.WSURL, DefaultWSURL)
	}
	if settings.RequestTimeout != 30*time.Second {
		t.Fatalf("RequestTimeout = %v, want 30s", settings.RequestTimeout)
	}
	if settings.RetryAttempts != 3 {
		t.Fatalf("RetryAttempts = %d, want 3", settings.RetryAttempts)
	}
	if settings.SessionKey != "estation_session" {
		t.Fatalf("SessionKey = %q", settings.SessionKey)
	}
}

func TestBuildSettings_Overrides(t *testing.T) {
	settings, err := BuildSettings(Options{
		APIBaseURL:    "https://estation.example.com/api/",
		WSURL:         "wss://estation.example.com/ws",
		TimeoutMS:     5000,
		RetryAttempts: 5,
		SessionKey:    "custom_session",
	})
	if err != nil {
		t.Fatalf("BuildSettings() error = %v", err)
	}
	if settings.APIBaseURL != "https://estation.example.com/api" {
		t.Fatalf("APIBaseURL = %q (trailing slash not trimmed)", settings.APIBaseURL)
	}
	if settings.WSURL != "wss://estation.example.com/ws" {
		t.Fatalf("WSURL = %q", settings.WSURL)
	}
	if settings.RequestTimeout != 5*time.Second {
		t.Fatalf("RequestTimeout = %v", settings.RequestTimeout)
	}
	if settings.RetryAttempts != 5 {
		t.Fatalf("RetryAttempts = %d", settings.RetryAttempts)
	}
	if settings.SessionKey != "custom_session" {
		t.Fatalf("SessionKey = %q", settings.SessionKey)
	}
}

func TestBuildSettings_RejectsMalformedURLs(t *testing.T) {
	cases := []Options{
		{APIBaseURL: "not a url"},
		{APIBaseURL: "ftp://example.com"},
		{WSURL: "https://example.com"},
		{APIDirectURL: "localhost:8000"},
	}
	for _, opts := range cases {
		if _, err := BuildSettings(opts); err == nil {
			t.Fatalf("BuildSettings(%+v) expected error", opts)
		}
	}
}
