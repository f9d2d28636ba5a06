package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	flags "github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

type Options struct {
	APIBaseURL    string `long:"api-url" env:"ESTATION_API_URL" description:"eStation API base URL"`
	APIDirectURL  string `long:"api-direct-url" env:"ESTATION_API_DIRECT_URL" description:"Direct backend URL used for development health checks"`
	WSURL         string `long:"ws-url" env:"ESTATION_WS_URL" description:"Realtime WebSocket endpoint"`
	TimeoutMS     int    `long:"api-timeout" env:"ESTATION_API_TIMEOUT_MS" description:"Per-attempt request timeout in milliseconds"`
	RetryAttempts int    `long:"api-retry-attempts" env:"ESTATION_API_RETRY_ATTEMPTS" description:"Maximum request attempts per logical call"`
	SessionKey    string `long:"session-key" env:"ESTATION_SESSION_KEY" description:"Key name the session credential is stored under"`
	Username      string `long:"username" env:"ESTATION_USERNAME" description:"Username for the login command"`
	Password      string `long:"password" env:"ESTATION_PASSWORD" description:"Password for the login command"`
	Debug         bool   `long:"debug" env:"ESTATION_DEBUG" description:"Enable verbose debug output"`
}

// Settings is the validated, default-filled form of Options that the
// clients are constructed from.
type Settings struct {
	APIBaseURL     string
	APIDirectURL   string
	WSURL          string
	RequestTimeout time.Duration
	RetryAttempts  int
	SessionKey     string
	Username       string
	Password       string
	Debug          bool
}

const (
	DefaultAPIBaseURL    = "https://localhost/api"
	DefaultAPIDirectURL  = "http://localhost:8000"
	DefaultWSURL         = "wss://localhost/ws"
	DefaultTimeout       = 30 * time.Second
	DefaultRetryAttempts = 3
	DefaultSessionKey    = "estation_session"
)

// ParseOptions loads a .env file when present, then parses flags and
// environment variables. The remaining positional arguments (the command
// verb) are returned alongside.
func ParseOptions() (Options, []string, error) {
	_ = godotenv.Load()
	opts := Options{}
	args, err := flags.Parse(&opts)
	if err != nil {
		return Options{}, nil, err
	}
	return opts, args, nil
}

// BuildSettings validates options and fills in documented defaults. Absent
// values never fail; only malformed ones do.
func BuildSettings(opts Options) (Settings, error) {
	settings := Settings{
		APIBaseURL:     DefaultAPIBaseURL,
		APIDirectURL:   DefaultAPIDirectURL,
		WSURL:          DefaultWSURL,
		RequestTimeout: DefaultTimeout,
		RetryAttempts:  DefaultRetryAttempts,
		SessionKey:     DefaultSessionKey,
		Username:       strings.TrimSpace(opts.Username),
		Password:       opts.Password,
		Debug:          opts.Debug,
	}

	if raw := strings.TrimSpace(opts.APIBaseURL); raw != "" {
		normalized, err := normalizeURL(raw, "http", "https")
		if err != nil {
			return Settings{}, fmt.Errorf("invalid API base URL: %w", err)
		}
		settings.APIBaseURL = normalized
	}
	if raw := strings.TrimSpace(opts.APIDirectURL); raw != "" {
		normalized, err := normalizeURL(raw, "http", "https")
		if err != nil {
			return Settings{}, fmt.Errorf("invalid direct backend URL: %w", err)
		}
		settings.APIDirectURL = normalized
	}
	if raw := strings.TrimSpace(opts.WSURL); raw != "" {
		normalized, err := normalizeURL(raw, "ws", "wss")
		if err != nil {
			return Settings{}, fmt.Errorf("invalid WebSocket URL: %w", err)
		}
		settings.WSURL = normalized
	}
	if opts.TimeoutMS > 0 {
		settings.RequestTimeout = time.Duration(opts.TimeoutMS) * time.Millisecond
	}
	if opts.RetryAttempts > 0 {
		settings.RetryAttempts = opts.RetryAttempts
	}
	if key := strings.TrimSpace(opts.SessionKey); key != "" {
		settings.SessionKey = key
	}
	return settings, nil
}

func normalizeURL(raw string, schemes ...string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", errors.New("expected absolute URL like https://example.com")
	}
	schemeOK := false
	for _, scheme := range schemes {
		if strings.EqualFold(parsed.Scheme, scheme) {
			schemeOK = true
			break
		}
	}
	if !schemeOK {
		return "", fmt.Errorf("URL scheme must be one of %v", schemes)
	}
	return strings.TrimRight(parsed.String(), "/"), nil
}
