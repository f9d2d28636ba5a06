package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

func (c *Client) HealthCheck(ctx context.Context) (HealthReport, error) {
	return Request[HealthReport](ctx, c, "/health", RequestOptions{})
}

// DirectHealth queries the backend bypassing the API gateway. Development
// aid: single attempt, no auth, no retry.
func (c *Client) DirectHealth(ctx context.Context) (map[string]any, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, c.directURL+"/health", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Cause: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	report := map[string]any{}
	if err := decodeBody(resp.Body, &report); err != nil {
		return nil, err
	}
	return report, nil
}

func (c *Client) ServiceStatus(ctx context.Context) ([]ServiceStatus, error) {
	return Request[[]ServiceStatus](ctx, c, "/monitoring/services", RequestOptions{})
}

func (c *Client) ServiceHistory(ctx context.Context, serviceID string, hours int) ([]ServiceStatus, error) {
	if hours <= 0 {
		hours = 24
	}
	endpoint := fmt.Sprintf("/monitoring/services/%s/history?hours=%d", url.PathEscape(serviceID), hours)
	return Request[[]ServiceStatus](ctx, c, endpoint, RequestOptions{})
}
