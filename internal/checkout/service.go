package checkout

import (
	"context"
	"fmt"

	"github.com/sfshop/storefront-client/internal/addresses"
	"github.com/sfshop/storefront-client/internal/cart"
	"github.com/sfshop/storefront-client/internal/orders"
	"github.com/sfshop/storefront-client/pkg/logger"

	pkgerrors "github.com/sfshop/storefront-client/pkg/errors"
)

type cartStore interface {
	Lines() []cart.Line
	Clear()
}

type orderSubmitter interface {
	Submit(ctx context.Context, sub orders.Submission) (*orders.Order, error)
}

type sessionReader interface {
	IsAuthenticated() bool
}

type addressLister interface {
	List(ctx context.Context) ([]addresses.Address, error)
}

// ServiceParams carries the checkout dependencies. Addresses is optional;
// without it a nil address is rejected instead of falling back to the
// default one.
type ServiceParams struct {
	Cart      cartStore
	Orders    orderSubmitter
	Sessions  sessionReader
	Addresses addressLister
	Logger    *logger.Logger
}

// Service turns the current cart into an order submission. The cart is only
// cleared after the shop accepts the order; any failure leaves it intact.
type Service struct {
	cart      cartStore
	orders    orderSubmitter
	sessions  sessionReader
	addresses addressLister
	logg      *logger.Logger
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Cart == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("orders client required")
	}
	if params.Sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	return &Service{
		cart:      params.Cart,
		orders:    params.Orders,
		sessions:  params.Sessions,
		addresses: params.Addresses,
		logg:      params.Logger,
	}, nil
}

// PlaceOrder submits the cart to the selected address. A nil address falls
// back to the account's default one.
func (s *Service) PlaceOrder(ctx context.Context, addr *addresses.Address) (*orders.Order, error) {
	if !s.sessions.IsAuthenticated() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "please log in to check out")
	}
	if addr == nil && s.addresses != nil {
		saved, err := s.addresses.List(ctx)
		if err != nil {
			return nil, err
		}
		addr = addresses.Default(saved)
	}
	if addr == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "please select a shipping address")
	}

	lines := s.cart.Lines()
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "your cart is empty")
	}

	items := make([]orders.Item, 0, len(lines))
	for _, line := range lines {
		items = append(items, orders.Item{ProductID: line.ProductID, Quantity: line.Quantity})
	}

	order, err := s.orders.Submit(ctx, orders.Submission{
		Items: items,
		ShippingAddress: orders.ShippingAddress{
			AddressLine: addr.AddressLine,
			City:        addr.City,
			State:       addr.State,
			PostalCode:  addr.PostalCode,
		},
	})
	if err != nil {
		return nil, err
	}

	s.cart.Clear()
	if s.logg != nil {
		s.logg.Info(ctx, fmt.Sprintf("order %s placed with %d items", order.ID, len(items)))
	}
	return order, nil
}
