package catalog

import "github.com/shopspring/decimal"

// Product mirrors the shop API's product payload. Prices and discount
// percentages stay decimal end to end; views round for display only.
type Product struct {
	ID                 int64           `json:"id"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Category           string          `json:"category"`
	Brand              string          `json:"brand"`
	Price              decimal.Decimal `json:"price"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	Rating             float64         `json:"rating"`
	Stock              int             `json:"stock"`
	Thumbnail          string          `json:"thumbnail"`
	Images             []string        `json:"images"`
}

// ProductPage is the shape of the product list endpoint.
type ProductPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}
