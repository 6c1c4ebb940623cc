package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/sfshop/storefront-client/internal/addresses"
	"github.com/sfshop/storefront-client/internal/auth"
	"github.com/sfshop/storefront-client/internal/catalog"
	"github.com/sfshop/storefront-client/pkg/config"
	"github.com/sfshop/storefront-client/pkg/logger"

	pkgerrors "github.com/sfshop/storefront-client/pkg/errors"
)

func newTestApp(t *testing.T) (*App, *chi.Mux) {
	t.Helper()
	router := chi.NewRouter()
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		App: config.AppConfig{Env: config.AppEnvDev, LogLevel: "error"},
		API: config.APIConfig{BaseURL: server.URL, Timeout: 5 * time.Second},
		Session: config.SessionConfig{
			TokenPath: filepath.Join(t.TempDir(), "token"),
		},
		UI: config.UIConfig{NoticeTTL: time.Hour, ConfirmClearWindow: 3 * time.Second},
	}

	a, err := New(cfg, logger.New(logger.Options{ServiceName: "storefront-test"}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a, router
}

func TestShoppingFlow(t *testing.T) {
	a, router := newTestApp(t)
	router.Post("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token":"tok-1","data":{"user":{"_id":"u1","username":"kai"}}}`))
	})
	router.Post("/api/orders", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"missing token"}`))
			return
		}
		_, _ = w.Write([]byte(`{"data":{"order":{"_id":"o1","status":"pending"}}}`))
	})

	ctx := context.Background()
	if _, err := a.Auth.Login(ctx, auth.Credentials{Username: "kai", Password: "secret"}); err != nil {
		t.Fatalf("login: %v", err)
	}

	chair := catalog.Product{ID: 7, Title: "Chair", Price: decimal.NewFromInt(90), Stock: 5}
	if err := a.AddToCart(ctx, chair, 2); err != nil {
		t.Fatalf("add to cart: %v", err)
	}

	order, err := a.PlaceOrder(ctx, &addresses.Address{
		AddressLine: "12 Pine St",
		City:        "Austin",
		State:       "TX",
		PostalCode:  "78701",
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if order.ID != "o1" {
		t.Fatalf("unexpected order %+v", order)
	}
	if a.Cart.Len() != 0 {
		t.Fatal("cart must be empty after checkout")
	}
}

func TestAddToCartGuard(t *testing.T) {
	a, _ := newTestApp(t)
	chair := catalog.Product{ID: 7, Title: "Chair", Price: decimal.NewFromInt(90), Stock: 5}

	if err := a.AddToCart(context.Background(), chair, 3); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := a.AddToCart(context.Background(), chair, 2); err != nil {
		t.Fatalf("boundary add: %v", err)
	}

	err := a.AddToCart(context.Background(), chair, 1)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStockLimit {
		t.Fatalf("expected stock limit error, got %v", err)
	}
	if got := a.Cart.QuantityFor(7); got != 5 {
		t.Fatalf("rejected add must not change the cart, got quantity %d", got)
	}

	active := a.Notices.Active()
	if len(active) != 3 {
		t.Fatalf("expected 3 notices, got %d", len(active))
	}
}

func TestForcedLogoutOn401(t *testing.T) {
	a, router := newTestApp(t)
	router.Post("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token":"tok-1","data":{"user":{"_id":"u1"}}}`))
	})
	router.Get("/api/orders", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"token revoked"}}`))
	})

	ctx := context.Background()
	if _, err := a.Auth.Login(ctx, auth.Credentials{Username: "kai", Password: "secret"}); err != nil {
		t.Fatalf("login: %v", err)
	}

	_, err := a.Orders.List(ctx)
	if !pkgerrors.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if a.Sessions.IsAuthenticated() {
		t.Fatal("a 401 must force a logout")
	}
}

func TestClearCartConfirmer(t *testing.T) {
	a, _ := newTestApp(t)
	chair := catalog.Product{ID: 7, Title: "Chair", Price: decimal.NewFromInt(90), Stock: 5}
	if err := a.AddToCart(context.Background(), chair, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	if a.ClearCart.Press() {
		t.Fatal("first press must only arm")
	}
	if a.Cart.Len() != 1 {
		t.Fatal("arming must not clear the cart")
	}
	if !a.ClearCart.Press() {
		t.Fatal("second press must confirm")
	}
	if a.Cart.Len() != 0 {
		t.Fatal("confirmed press must clear the cart")
	}
}
