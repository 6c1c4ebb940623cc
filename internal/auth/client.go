package auth

import (
	"context"
	"fmt"

	"github.com/sfshop/storefront-client/internal/api"
	"github.com/sfshop/storefront-client/internal/users"

	pkgerrors "github.com/sfshop/storefront-client/pkg/errors"
)

// Credentials is the login form payload.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterInput is the registration form payload.
type RegisterInput struct {
	Username  string `json:"username" validate:"required,min=3,max=32"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName" validate:"required,max=64"`
	LastName  string `json:"lastName" validate:"required,max=64"`
}

type loginResponse struct {
	Token string `json:"token"`
	Data  struct {
		User *users.User `json:"user"`
	} `json:"data"`
}

type registerResponse struct {
	Data struct {
		User users.User `json:"user"`
	} `json:"data"`
}

// Client talks to the shop's auth endpoints.
type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) (*Client, error) {
	if apiClient == nil {
		return nil, fmt.Errorf("api client required")
	}
	return &Client{api: apiClient}, nil
}

// Login exchanges credentials for a bearer token. The user payload may be
// absent; callers then fetch the profile with the fresh token.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, *users.User, error) {
	var resp loginResponse
	if err := c.api.Post(ctx, "/api/auth/login", creds, &resp); err != nil {
		return "", nil, err
	}
	if resp.Token == "" {
		return "", nil, pkgerrors.New(pkgerrors.CodeInternal, "login response carried no token")
	}
	return resp.Token, resp.Data.User, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*users.User, error) {
	var resp registerResponse
	if err := c.api.Post(ctx, "/api/auth/register", input, &resp); err != nil {
		return nil, err
	}
	user := resp.Data.User
	return &user, nil
}
