package catalog

import (
	"context"
	"fmt"

	"github.com/sfshop/storefront-client/internal/api"
)

// Client fetches product data from the shop catalog. Unlike the account
// resources, the catalog endpoints return bare JSON with no data envelope.
type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) (*Client, error) {
	if apiClient == nil {
		return nil, fmt.Errorf("api client required")
	}
	return &Client{api: apiClient}, nil
}

// FetchProducts retrieves the product list.
func (c *Client) FetchProducts(ctx context.Context) ([]Product, error) {
	var page ProductPage
	if err := c.api.Get(ctx, "/products", &page); err != nil {
		return nil, err
	}
	return page.Products, nil
}

// FetchProduct retrieves a single product by ID.
func (c *Client) FetchProduct(ctx context.Context, id int64) (*Product, error) {
	var product Product
	if err := c.api.Get(ctx, fmt.Sprintf("/products/%d", id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}
