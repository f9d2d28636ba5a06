// Package api implements the resilient HTTP client for the eStation
// dashboard backend: bearer-token auth from the session store, a hard
// per-attempt timeout, and linear-backoff retries for transport failures.
package api

import (
	"net/http"
	"time"

	"estation-client/internal/config"
	"estation-client/internal/logging"
	"estation-client/internal/session"
)

type Client struct {
	http       *http.Client
	baseURL    string
	directURL  string
	timeout    time.Duration
	retries    int
	retryBase  time.Duration
	sessions   session.Store
	sessionKey string
	logger     *logging.Logger
}

type Config struct {
	BaseURL   string
	DirectURL string
	// Timeout bounds each attempt, not the logical call.
	Timeout time.Duration
	// RetryAttempts is the total attempt budget per logical call.
	RetryAttempts int
	// RetryBaseDelay scales the linear backoff; attempt n waits n×base.
	RetryBaseDelay time.Duration
	SessionKey     string
	HTTP           *http.Client
	Logger         *logging.Logger
}

func New(cfg Config, sessions session.Store) *Client {
	if sessions == nil {
		panic("api.New: session store must not be nil")
	}
	client := &Client{
		http:       cfg.HTTP,
		baseURL:    cfg.BaseURL,
		directURL:  cfg.DirectURL,
		timeout:    cfg.Timeout,
		retries:    cfg.RetryAttempts,
		retryBase:  cfg.RetryBaseDelay,
		sessions:   sessions,
		sessionKey: cfg.SessionKey,
		logger:     cfg.Logger,
	}
	if client.http == nil {
		client.http = http.DefaultClient
	}
	if client.baseURL == "" {
		client.baseURL = config.DefaultAPIBaseURL
	}
	if client.directURL == "" {
		client.directURL = config.DefaultAPIDirectURL
	}
	if client.timeout <= 0 {
		client.timeout = config.DefaultTimeout
	}
	if client.retries <= 0 {
		client.retries = config.DefaultRetryAttempts
	}
	if client.retryBase <= 0 {
		client.retryBase = time.Second
	}
	if client.sessionKey == "" {
		client.sessionKey = config.DefaultSessionKey
	}
	return client
}

// FromSettings builds a client from validated configuration.
func FromSettings(settings config.Settings, sessions session.Store, logger *logging.Logger) *Client {
	return New(Config{
		BaseURL:       settings.APIBaseURL,
		DirectURL:     settings.APIDirectURL,
		Timeout:       settings.RequestTimeout,
		RetryAttempts: settings.RetryAttempts,
		SessionKey:    settings.SessionKey,
		Logger:        logger,
	}, sessions)
}
