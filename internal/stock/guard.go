package stock

import (
	"fmt"

	"github.com/sfshop/storefront-client/internal/catalog"
	"github.com/sfshop/storefront-client/pkg/errors"
)

// Decision is the guard's verdict on a requested add-to-cart quantity.
// Remaining is the largest additional quantity the guard would still accept.
type Decision struct {
	OK        bool
	Reason    string
	Remaining int
}

// Err converts a rejection into a coded error carrying the human-readable
// reason. Accepted decisions return nil.
func (d Decision) Err() error {
	if d.OK {
		return nil
	}
	return errors.New(errors.CodeStockLimit, d.Reason)
}

// CheckAdd decides whether requestedQty of the product may be added given
// inCart units already committed. The boundary is inclusive: a request that
// lands exactly on the available stock is accepted.
func CheckAdd(product catalog.Product, requestedQty, inCart int) Decision {
	if requestedQty < 1 {
		return Decision{
			Reason:    "quantity must be at least 1",
			Remaining: remaining(product.Stock, inCart),
		}
	}

	rem := remaining(product.Stock, inCart)
	if requestedQty <= rem {
		return Decision{OK: true, Remaining: rem - requestedQty}
	}

	return Decision{
		Reason:    rejectionReason(product, rem, inCart),
		Remaining: rem,
	}
}

// ClampQuantity fits a quantity-selector value into the acceptable range
// and explains any adjustment. The UI shows the reason instead of silently
// refusing the increment.
func ClampQuantity(product catalog.Product, desired, inCart int) (int, Decision) {
	rem := remaining(product.Stock, inCart)
	switch {
	case desired < 1:
		if rem < 1 {
			return 0, Decision{Reason: rejectionReason(product, rem, inCart)}
		}
		return 1, Decision{OK: true, Reason: "quantity must be at least 1", Remaining: rem - 1}
	case desired > rem:
		if rem < 1 {
			return 0, Decision{Reason: rejectionReason(product, rem, inCart)}
		}
		return rem, Decision{OK: true, Reason: rejectionReason(product, rem, inCart)}
	default:
		return desired, Decision{OK: true, Remaining: rem - desired}
	}
}

func remaining(stock, inCart int) int {
	rem := stock - inCart
	if rem < 0 {
		return 0
	}
	return rem
}

func rejectionReason(product catalog.Product, rem, inCart int) string {
	if rem < 1 {
		if inCart > 0 {
			return fmt.Sprintf("no more %q available: all %d in stock are already in your cart", product.Title, product.Stock)
		}
		return fmt.Sprintf("%q is out of stock", product.Title)
	}
	if inCart > 0 {
		return fmt.Sprintf("only %d of %q left in stock (%d already in your cart)", rem, product.Title, inCart)
	}
	return fmt.Sprintf("only %d of %q left in stock", rem, product.Title)
}
