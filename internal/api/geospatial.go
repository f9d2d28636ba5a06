package api

import (
	"context"
	"net/url"
)

func (c *Client) Datasets(ctx context.Context) ([]Dataset, error) {
	return Request[[]Dataset](ctx, c, "/geospatial/datasets", RequestOptions{})
}

// Products lists the product catalog, optionally filtered to one dataset.
func (c *Client) Products(ctx context.Context, datasetID string) ([]Product, error) {
	endpoint := "/geospatial/products"
	if datasetID != "" {
		endpoint += "?dataset_id=" + url.QueryEscape(datasetID)
	}
	return Request[[]Product](ctx, c, endpoint, RequestOptions{})
}

func (c *Client) ProductCategories(ctx context.Context) ([]ProductCategory, error) {
	return Request[[]ProductCategory](ctx, c, "/geospatial/products/categories", RequestOptions{})
}

func (c *Client) DatasetCompleteness(ctx context.Context) ([]CompletenessPoint, error) {
	return Request[[]CompletenessPoint](ctx, c, "/analytics/dataset-completeness", RequestOptions{})
}

func (c *Client) ProductDistribution(ctx context.Context) ([]DistributionSlice, error) {
	return Request[[]DistributionSlice](ctx, c, "/analytics/product-distribution", RequestOptions{})
}
