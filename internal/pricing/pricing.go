package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// EffectiveUnitPrice applies the discount percentage to the unit price:
// price * (1 - discount/100). The result is exact; rounding happens only at
// the point of display or total accumulation so multiplying by a quantity
// never compounds rounding error.
func EffectiveUnitPrice(unitPrice, discountPercent decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(hundred.Sub(discountPercent)).Shift(-2)
}

// LineTotal multiplies an (unrounded) unit price by the line quantity.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// RoundDisplay rounds a monetary amount to two decimal places for display.
func RoundDisplay(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// ShowsDiscountBadge reports whether a view should render the on-sale badge.
// A discount that rounds to 0% is suppressed visually but still applies to
// every computed total.
func ShowsDiscountBadge(discountPercent decimal.Decimal) bool {
	return discountPercent.Round(0).GreaterThan(decimal.Zero)
}
