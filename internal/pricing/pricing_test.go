package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestEffectiveUnitPriceZeroDiscountIsIdentity(t *testing.T) {
	price := dec("19.99")
	got := EffectiveUnitPrice(price, decimal.Zero)
	if !got.Equal(price) {
		t.Fatalf("expected identity price %s, got %s", price, got)
	}
}

func TestEffectiveUnitPriceAppliesDiscountExactly(t *testing.T) {
	got := EffectiveUnitPrice(dec("100"), dec("10"))
	if !got.Equal(dec("90")) {
		t.Fatalf("expected 90, got %s", got)
	}

	// 0.4% rounds to a hidden badge but still discounts arithmetically.
	got = EffectiveUnitPrice(dec("100"), dec("0.4"))
	if !got.Equal(dec("99.6")) {
		t.Fatalf("expected 99.6, got %s", got)
	}
}

func TestLineTotalUsesUnroundedPrice(t *testing.T) {
	// 33.335 * 3 = 100.005; rounding the unit price first would give 100.02.
	unit := EffectiveUnitPrice(dec("66.67"), dec("50"))
	total := LineTotal(unit, 3)
	if !RoundDisplay(total).Equal(dec("100.01")) {
		t.Fatalf("expected 100.01 after a single rounding, got %s", RoundDisplay(total))
	}
}

func TestShowsDiscountBadge(t *testing.T) {
	if ShowsDiscountBadge(dec("0.4")) {
		t.Fatal("0.4%% rounds to zero and must hide the badge")
	}
	if !ShowsDiscountBadge(dec("0.5")) {
		t.Fatal("0.5%% rounds to one and must show the badge")
	}
	if ShowsDiscountBadge(decimal.Zero) {
		t.Fatal("zero discount must hide the badge")
	}
}
