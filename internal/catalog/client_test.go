package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/sfshop/storefront-client/internal/api"
	pkgerrors "github.com/sfshop/storefront-client/pkg/errors"
)

const listBody = `{
  "products": [
    {"id": 1, "title": "Essence Mascara", "price": 9.99, "discountPercentage": 7.17, "stock": 5, "rating": 4.94, "thumbnail": "t1.jpg", "images": ["a.jpg"], "category": "beauty", "brand": "Essence"},
    {"id": 2, "title": "Eyeshadow Palette", "price": 19.99, "discountPercentage": 0, "stock": 44, "rating": 3.28, "thumbnail": "t2.jpg"}
  ],
  "total": 2, "skip": 0, "limit": 30
}`

func newTestClient(t *testing.T) (*Client, *chi.Mux) {
	t.Helper()
	router := chi.NewRouter()
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	apiClient, err := api.NewClient(server.URL)
	if err != nil {
		t.Fatalf("api client: %v", err)
	}
	client, err := NewClient(apiClient)
	if err != nil {
		t.Fatalf("catalog client: %v", err)
	}
	return client, router
}

func TestFetchProducts(t *testing.T) {
	client, router := newTestClient(t)
	router.Get("/products", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(listBody))
	})

	products, err := client.FetchProducts(context.Background())
	if err != nil {
		t.Fatalf("fetch products: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].Title != "Essence Mascara" || products[0].Stock != 5 {
		t.Fatalf("unexpected first product %+v", products[0])
	}
	if !products[0].Price.Equal(decimal.RequireFromString("9.99")) {
		t.Fatalf("price must decode as decimal, got %s", products[0].Price)
	}
	if !products[1].DiscountPercentage.IsZero() {
		t.Fatalf("expected zero discount, got %s", products[1].DiscountPercentage)
	}
}

func TestFetchProduct(t *testing.T) {
	client, router := newTestClient(t)
	router.Get("/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "id") != "7" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"product not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id": 7, "title": "Chair", "price": 49.5, "discountPercentage": 10, "stock": 3, "thumbnail": "c.jpg"}`))
	})

	product, err := client.FetchProduct(context.Background(), 7)
	if err != nil {
		t.Fatalf("fetch product: %v", err)
	}
	if product.ID != 7 || product.Title != "Chair" {
		t.Fatalf("unexpected product %+v", product)
	}

	_, err = client.FetchProduct(context.Background(), 8)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
