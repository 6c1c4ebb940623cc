package orders

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sfshop/storefront-client/internal/api"
	pkgerrors "github.com/sfshop/storefront-client/pkg/errors"
)

const basePath = "/api/orders"

// Item is one cart line in an order submission.
type Item struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// ShippingAddress is the destination attached to a submission.
type ShippingAddress struct {
	AddressLine string `json:"addressLine"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postalCode"`
}

// Submission is the order payload sent at checkout.
type Submission struct {
	Items           []Item          `json:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
}

// Line is one purchased item as the shop recorded it.
type Line struct {
	ProductID  int64           `json:"product"`
	Name       string          `json:"name"`
	ImageURL   string          `json:"imageUrl"`
	Quantity   int             `json:"quantity"`
	FinalPrice decimal.Decimal `json:"finalPrice"`
}

// Order is a placed order as returned by the shop.
type Order struct {
	ID          string          `json:"_id"`
	Status      string          `json:"status"`
	Items       []Line          `json:"orderItems"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type submitEnvelope struct {
	Data struct {
		Order Order `json:"order"`
	} `json:"data"`
}

type listEnvelope struct {
	Data struct {
		Orders []Order `json:"orders"`
	} `json:"data"`
}

// Client submits and lists the user's orders.
type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) (*Client, error) {
	if apiClient == nil {
		return nil, fmt.Errorf("api client required")
	}
	return &Client{api: apiClient}, nil
}

// Submit places the order and returns the shop's record of it.
func (c *Client) Submit(ctx context.Context, sub Submission) (*Order, error) {
	if len(sub.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "your cart is empty")
	}
	var envelope submitEnvelope
	if err := c.api.Post(ctx, basePath, sub, &envelope); err != nil {
		return nil, err
	}
	order := envelope.Data.Order
	return &order, nil
}

// List returns the user's order history, newest first.
func (c *Client) List(ctx context.Context) ([]Order, error) {
	var envelope listEnvelope
	if err := c.api.Get(ctx, basePath, &envelope); err != nil {
		return nil, err
	}
	list := envelope.Data.Orders
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

// Fetch returns a single order.
func (c *Client) Fetch(ctx context.Context, id string) (*Order, error) {
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	var envelope submitEnvelope
	if err := c.api.Get(ctx, fmt.Sprintf("%s/%s", basePath, id), &envelope); err != nil {
		return nil, err
	}
	order := envelope.Data.Order
	return &order, nil
}
