package users

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sfshop/storefront-client/internal/api"
	pkgerrors "github.com/sfshop/storefront-client/pkg/errors"
)

const profilePath = "/api/users/profile"

// ProfileInput is the editable slice of the profile form. It is validated
// locally; malformed input never reaches the network layer.
type ProfileInput struct {
	FirstName string `json:"firstName" validate:"required,max=64"`
	LastName  string `json:"lastName" validate:"required,max=64"`
	Phone     string `json:"phone" validate:"omitempty,max=32"`
}

type profileEnvelope struct {
	Data struct {
		User User `json:"user"`
	} `json:"data"`
}

// Client reads and updates the authenticated user's profile.
type Client struct {
	api      *api.Client
	validate *validator.Validate
}

func NewClient(apiClient *api.Client) (*Client, error) {
	if apiClient == nil {
		return nil, fmt.Errorf("api client required")
	}
	return &Client{
		api:      apiClient,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

// FetchProfile retrieves the current user's profile.
func (c *Client) FetchProfile(ctx context.Context) (*User, error) {
	var envelope profileEnvelope
	if err := c.api.Get(ctx, profilePath, &envelope); err != nil {
		return nil, err
	}
	user := envelope.Data.User
	return &user, nil
}

// UpdateProfile validates and persists the profile form.
func (c *Client) UpdateProfile(ctx context.Context, input ProfileInput) (*User, error) {
	if err := c.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, validationReason(err))
	}

	var envelope profileEnvelope
	if err := c.api.Put(ctx, profilePath, input, &envelope); err != nil {
		return nil, err
	}
	user := envelope.Data.User
	return &user, nil
}

func validationReason(err error) string {
	var fieldErrors validator.ValidationErrors
	if ok := asValidationErrors(err, &fieldErrors); ok && len(fieldErrors) > 0 {
		fe := fieldErrors[0]
		switch fe.Tag() {
		case "required":
			return fmt.Sprintf("%s is required", fieldLabel(fe.Field()))
		case "max":
			return fmt.Sprintf("%s is too long", fieldLabel(fe.Field()))
		}
		return fmt.Sprintf("%s is invalid", fieldLabel(fe.Field()))
	}
	return "please check your input"
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return false
	}
	*target = ve
	return true
}

func fieldLabel(field string) string {
	switch field {
	case "FirstName":
		return "first name"
	case "LastName":
		return "last name"
	case "Phone":
		return "phone"
	}
	return field
}
