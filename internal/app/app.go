package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/sfshop/storefront-client/internal/addresses"
	"github.com/sfshop/storefront-client/internal/api"
	"github.com/sfshop/storefront-client/internal/auth"
	"github.com/sfshop/storefront-client/internal/cart"
	"github.com/sfshop/storefront-client/internal/catalog"
	"github.com/sfshop/storefront-client/internal/checkout"
	"github.com/sfshop/storefront-client/internal/notices"
	"github.com/sfshop/storefront-client/internal/orders"
	"github.com/sfshop/storefront-client/internal/session"
	"github.com/sfshop/storefront-client/internal/stock"
	"github.com/sfshop/storefront-client/internal/users"
	"github.com/sfshop/storefront-client/pkg/config"
	"github.com/sfshop/storefront-client/pkg/logger"
	"github.com/sfshop/storefront-client/pkg/metrics"

	pkgerrors "github.com/sfshop/storefront-client/pkg/errors"
)

// App assembles the storefront: the shop API clients, the local stores the
// views observe, and the services that connect them.
type App struct {
	Config   *config.Config
	Logger   *logger.Logger
	Metrics  *metrics.ClientMetrics
	Registry *prometheus.Registry

	Sessions  *session.Store
	Cart      *cart.Store
	Notices   *notices.Center
	ClearCart *notices.Confirmer

	Catalog   *catalog.Client
	Detail    *catalog.DetailLoader
	Users     *users.Client
	Addresses *addresses.Client
	Orders    *orders.Client

	Auth     *auth.Service
	Checkout *checkout.Service
}

func New(cfg *config.Config, logg *logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}

	registry := prometheus.NewRegistry()
	clientMetrics := metrics.NewClientMetrics(registry)

	sessions := session.NewStore()
	cartStore := cart.NewStore()
	center := notices.NewCenter(cfg.UI.NoticeTTL)

	// The 401 hook fires from inside api responses, before the auth
	// service exists; the indirection closes the cycle.
	var authService *auth.Service
	apiClient, err := api.NewClient(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithTokenSource(sessions),
		api.WithLogger(logg),
		api.WithMetrics(clientMetrics),
		api.WithUnauthorizedHook(func() {
			if authService != nil {
				authService.ForceLogout()
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("creating api client: %w", err)
	}

	catalogClient, err := catalog.NewClient(apiClient)
	if err != nil {
		return nil, fmt.Errorf("creating catalog client: %w", err)
	}
	usersClient, err := users.NewClient(apiClient)
	if err != nil {
		return nil, fmt.Errorf("creating users client: %w", err)
	}
	addressesClient, err := addresses.NewClient(apiClient)
	if err != nil {
		return nil, fmt.Errorf("creating addresses client: %w", err)
	}
	ordersClient, err := orders.NewClient(apiClient)
	if err != nil {
		return nil, fmt.Errorf("creating orders client: %w", err)
	}
	authClient, err := auth.NewClient(apiClient)
	if err != nil {
		return nil, fmt.Errorf("creating auth client: %w", err)
	}

	tokens, err := auth.NewFileTokenStore(cfg.Session.TokenPath)
	if err != nil {
		return nil, fmt.Errorf("creating token store: %w", err)
	}
	authService, err = auth.NewService(auth.ServiceParams{
		Sessions: sessions,
		Client:   authClient,
		Profiles: usersClient,
		Tokens:   tokens,
		Logger:   logg,
	})
	if err != nil {
		return nil, fmt.Errorf("creating auth service: %w", err)
	}

	checkoutService, err := checkout.NewService(checkout.ServiceParams{
		Cart:      cartStore,
		Orders:    ordersClient,
		Sessions:  sessions,
		Addresses: addressesClient,
		Logger:    logg,
	})
	if err != nil {
		return nil, fmt.Errorf("creating checkout service: %w", err)
	}

	app := &App{
		Config:    cfg,
		Logger:    logg,
		Metrics:   clientMetrics,
		Registry:  registry,
		Sessions:  sessions,
		Cart:      cartStore,
		Notices:   center,
		Catalog:   catalogClient,
		Detail:    catalog.NewDetailLoader(catalogClient, logg),
		Users:     usersClient,
		Addresses: addressesClient,
		Orders:    ordersClient,
		Auth:      authService,
		Checkout:  checkoutService,
	}
	app.ClearCart = notices.NewConfirmer(cfg.UI.ConfirmClearWindow, func() {
		cartStore.Clear()
		clientMetrics.IncCartOp("clear")
		center.Publish(notices.LevelInfo, "cart cleared")
	})
	return app, nil
}

// AddToCart runs the stock guard before mutating the cart and surfaces the
// outcome as a notice.
func (a *App) AddToCart(ctx context.Context, product catalog.Product, quantity int) error {
	decision := stock.CheckAdd(product, quantity, a.Cart.QuantityFor(product.ID))
	if !decision.OK {
		a.Metrics.IncCartOp("add_rejected")
		a.Notices.Publish(notices.LevelWarning, decision.Reason)
		a.Logger.Debug(a.Logger.WithProductID(ctx, product.ID), "add to cart rejected: "+decision.Reason)
		return decision.Err()
	}

	a.Cart.Add(product, quantity)
	a.Metrics.IncCartOp("add")
	a.Notices.Publish(notices.LevelSuccess, fmt.Sprintf("%s added to cart", product.Title))
	return nil
}

// RemoveFromCart drops the product's line entirely.
func (a *App) RemoveFromCart(productID int64) {
	a.Cart.Remove(productID)
	a.Metrics.IncCartOp("remove")
}

// PlaceOrder checks out the cart and reports the outcome as a notice.
func (a *App) PlaceOrder(ctx context.Context, addr *addresses.Address) (*orders.Order, error) {
	order, err := a.Checkout.PlaceOrder(ctx, addr)
	if err != nil {
		a.Notices.Publish(notices.LevelError, reason(err))
		return nil, err
	}
	a.Notices.Publish(notices.LevelSuccess, "order placed")
	return order, nil
}

// Close releases the app's timers. Stores hold no external resources.
func (a *App) Close() error {
	var errs error
	if a.ClearCart != nil {
		errs = multierr.Append(errs, a.ClearCart.Close())
	}
	if a.Notices != nil {
		errs = multierr.Append(errs, a.Notices.Close())
	}
	return errs
}

func reason(err error) string {
	if typed := pkgerrors.As(err); typed != nil {
		return typed.Reason()
	}
	return "something went wrong"
}
