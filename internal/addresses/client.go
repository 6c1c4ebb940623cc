package addresses

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sfshop/storefront-client/internal/api"
	pkgerrors "github.com/sfshop/storefront-client/pkg/errors"
)

const basePath = "/api/users/addresses"

// Address is a saved shipping address on the user's account.
type Address struct {
	ID          string `json:"_id"`
	AddressLine string `json:"addressLine"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postalCode"`
	IsDefault   bool   `json:"isDefault"`
}

// Input is the create/update form for an address.
type Input struct {
	AddressLine string `json:"addressLine" validate:"required,max=128"`
	City        string `json:"city" validate:"required,max=64"`
	State       string `json:"state" validate:"required,max=64"`
	PostalCode  string `json:"postalCode" validate:"required,max=16"`
	IsDefault   bool   `json:"isDefault"`
}

type listEnvelope struct {
	Data struct {
		Addresses []Address `json:"addresses"`
	} `json:"data"`
}

type singleEnvelope struct {
	Data struct {
		Address Address `json:"address"`
	} `json:"data"`
}

// Client manages the user's address book.
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

// List returns all saved addresses.
func (c *Client) List(ctx context.Context) ([]Address, error) {
	var envelope listEnvelope
	if err := c.api.Get(ctx, basePath, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data.Addresses, nil
}

// Create saves a new address.
func (c *Client) Create(ctx context.Context, input Input) (*Address, error) {
	if err := c.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, inputReason(err))
	}
	var envelope singleEnvelope
	if err := c.api.Post(ctx, basePath, input, &envelope); err != nil {
		return nil, err
	}
	addr := envelope.Data.Address
	return &addr, nil
}

// Update replaces an existing address.
func (c *Client) Update(ctx context.Context, id string, input Input) (*Address, error) {
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address id required")
	}
	if err := c.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, inputReason(err))
	}
	var envelope singleEnvelope
	if err := c.api.Put(ctx, fmt.Sprintf("%s/%s", basePath, id), input, &envelope); err != nil {
		return nil, err
	}
	addr := envelope.Data.Address
	return &addr, nil
}

// Delete removes a saved address.
func (c *Client) Delete(ctx context.Context, id string) error {
	if id == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "address id required")
	}
	return c.api.Delete(ctx, fmt.Sprintf("%s/%s", basePath, id))
}

// SetDefault marks the address as the default shipping choice.
func (c *Client) SetDefault(ctx context.Context, id string) (*Address, error) {
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address id required")
	}
	var envelope singleEnvelope
	if err := c.api.Patch(ctx, fmt.Sprintf("%s/%s/default", basePath, id), nil, &envelope); err != nil {
		return nil, err
	}
	addr := envelope.Data.Address
	return &addr, nil
}

// Default picks the address checkout should preselect: the one flagged as
// default, or the first saved one.
func Default(list []Address) *Address {
	for i := range list {
		if list[i].IsDefault {
			addr := list[i]
			return &addr
		}
	}
	if len(list) > 0 {
		addr := list[0]
		return &addr
	}
	return nil
}

func inputReason(err error) string {
	if fieldErrors, ok := err.(validator.ValidationErrors); ok && len(fieldErrors) > 0 {
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

func fieldLabel(field string) string {
	switch field {
	case "AddressLine":
		return "address line"
	case "City":
		return "city"
	case "State":
		return "state"
	case "PostalCode":
		return "postal code"
	}
	return field
}
