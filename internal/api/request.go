package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/cenkalti/backoff/v5"

	"estation-client/internal/logging"
)

const maxResponseBytes = 8 << 20

type RequestOptions struct {
	// Method defaults to GET.
	Method string
	// Body is JSON-encoded when non-nil.
	Body any
	// Header entries override the default header set.
	Header http.Header
}

// Request performs one logical call against the API base URL and decodes the
// JSON response into T. Transport failures are retried with deterministic
// linear backoff; 401 purges the session credential and fails immediately;
// other non-2xx statuses fail immediately with the server's status.
func Request[T any](ctx context.Context, c *Client, endpoint string, opts RequestOptions) (T, error) {
	var out T
	data, err := c.do(ctx, endpoint, opts)
	if err != nil {
		return out, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return out, nil
}

func decodeBody(r io.Reader, out any) error {
	data, err := io.ReadAll(io.LimitReader(r, maxResponseBytes))
	if err != nil {
		return &TransportError{Cause: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

func (c *Client) do(ctx context.Context, endpoint string, opts RequestOptions) ([]byte, error) {
	attempt := 0
	operation := func() ([]byte, error) {
		attempt++
		data, err := c.attempt(ctx, c.baseURL+endpoint, opts, attempt)
		if err == nil {
			return data, nil
		}
		var transportErr *TransportError
		if errors.As(err, &transportErr) {
			return nil, err
		}
		return nil, backoff.Permanent(err)
	}

	data, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(newLinearBackOff(c.retryBase)),
		backoff.WithMaxTries(uint(c.retries)),
	)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// attempt issues a single HTTP attempt with its own hard timeout. The
// deadline aborts the in-flight request, not just the wait for it.
func (c *Client) attempt(ctx context.Context, url string, opts RequestOptions, attempt int) ([]byte, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var bodyReader io.Reader
	if opts.Body != nil {
		payload, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token, ok := c.sessions.Get(c.sessionKey); ok && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for key, values := range opts.Header {
		req.Header[http.CanonicalHeaderKey(key)] = append([]string(nil), values...)
	}

	c.logger.Debugf("%s %s (attempt %d)", method, url, attempt)

	resp, err := c.http.Do(req)
	if err != nil {
		timedOut := errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil
		return nil, &TransportError{Cause: err, Timeout: timedOut}
	}
	defer resp.Body.Close()

	data, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))

	if resp.StatusCode == http.StatusUnauthorized {
		if deleteErr := c.sessions.Delete(c.sessionKey); deleteErr != nil {
			c.logger.Warn("failed to purge rejected session credential", logging.Field("error", deleteErr))
		}
		c.logger.Warn("request rejected, session credential purged",
			logging.Field("url", url),
			logging.Field("response", logging.FormatHTTPPayload(data)),
		)
		return nil, ErrAuthRequired
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("request failed",
			logging.Field("url", url),
			logging.Field("status", resp.Status),
			logging.Field("response", logging.FormatHTTPPayload(data)),
		)
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	if readErr != nil {
		return nil, &TransportError{Cause: readErr}
	}

	c.logger.Debugf("%s %s -> %s", method, url, resp.Status)
	return data, nil
}
