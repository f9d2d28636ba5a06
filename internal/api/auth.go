package api

import (
	"context"
	"net/http"
)

// Login authenticates and persists the returned token so subsequent calls
// (and the realtime client) pick it up.
func (c *Client) Login(ctx context.Context, creds Credentials) (LoginResponse, error) {
	resp, err := Request[LoginResponse](ctx, c, "/auth/login", RequestOptions{
		Method: http.MethodPost,
		Body:   creds,
	})
	if err != nil {
		return LoginResponse{}, err
	}
	if err := c.sessions.Set(c.sessionKey, resp.Token); err != nil {
		return LoginResponse{}, err
	}
	return resp, nil
}

// Logout tells the server to end the session and removes the credential
// locally even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	_, err := Request[struct{}](ctx, c, "/auth/logout", RequestOptions{Method: http.MethodPost})
	if deleteErr := c.sessions.Delete(c.sessionKey); deleteErr != nil && err == nil {
		err = deleteErr
	}
	return err
}

// RefreshToken exchanges the current token for a fresh one and persists it.
func (c *Client) RefreshToken(ctx context.Context) (TokenResponse, error) {
	resp, err := Request[TokenResponse](ctx, c, "/auth/refresh", RequestOptions{Method: http.MethodPost})
	if err != nil {
		return TokenResponse{}, err
	}
	if err := c.sessions.Set(c.sessionKey, resp.Token); err != nil {
		return TokenResponse{}, err
	}
	return resp, nil
}
