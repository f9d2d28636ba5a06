package api

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) Workspaces(ctx context.Context) ([]Workspace, error) {
	return Request[[]Workspace](ctx, c, "/workspaces", RequestOptions{})
}

func (c *Client) Workspace(ctx context.Context, id string) (Workspace, error) {
	return Request[Workspace](ctx, c, "/workspaces/"+url.PathEscape(id), RequestOptions{})
}

func (c *Client) CreateWorkspace(ctx context.Context, workspace Workspace) (Workspace, error) {
	return Request[Workspace](ctx, c, "/workspaces", RequestOptions{
		Method: http.MethodPost,
		Body:   workspace,
	})
}

func (c *Client) UpdateWorkspace(ctx context.Context, id string, updates Workspace) (Workspace, error) {
	return Request[Workspace](ctx, c, "/workspaces/"+url.PathEscape(id), RequestOptions{
		Method: http.MethodPut,
		Body:   updates,
	})
}

func (c *Client) DeleteWorkspace(ctx context.Context, id string) error {
	_, err := Request[struct{}](ctx, c, "/workspaces/"+url.PathEscape(id), RequestOptions{
		Method: http.MethodDelete,
	})
	return err
}
