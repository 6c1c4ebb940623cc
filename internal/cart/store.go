package cart

import (
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sfshop/storefront-client/internal/catalog"
	"github.com/sfshop/storefront-client/internal/pricing"
)

// Line is one cart entry. Display fields are snapshotted from the product
// at the time of first add; only the quantity mutates afterwards.
type Line struct {
	ProductID          int64
	Title              string
	Thumbnail          string
	UnitPrice          decimal.Decimal
	DiscountPercentage decimal.Decimal
	Quantity           int
}

// Store holds the in-memory cart: at most one line per product, quantity
// always >= 1. Mutations are atomic and notify subscribers after the state
// change. The store enforces no stock limits; callers consult the stock
// guard before Add.
type Store struct {
	mu      sync.Mutex
	lines   map[int64]*Line
	order   []int64
	subs    map[int]func()
	nextSub int
}

func NewStore() *Store {
	return &Store{
		lines: make(map[int64]*Line),
		subs:  make(map[int]func()),
	}
}

// Add merges the quantity into an existing line for the product, or creates
// a new line snapshotting the product's display fields. A non-positive
// quantity counts as 1, matching the quantity selector's floor.
func (s *Store) Add(product catalog.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	if line, ok := s.lines[product.ID]; ok {
		line.Quantity += quantity
	} else {
		s.lines[product.ID] = &Line{
			ProductID:          product.ID,
			Title:              product.Title,
			Thumbnail:          product.Thumbnail,
			UnitPrice:          product.Price,
			DiscountPercentage: product.DiscountPercentage,
			Quantity:           quantity,
		}
		s.order = append(s.order, product.ID)
	}
	subs := s.snapshotSubs()
	s.mu.Unlock()

	notify(subs)
}

// Remove deletes the line for the product if present; absent IDs are a no-op.
func (s *Store) Remove(productID int64) {
	s.mu.Lock()
	if _, ok := s.lines[productID]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.lines, productID)
	for i, id := range s.order {
		if id == productID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	subs := s.snapshotSubs()
	s.mu.Unlock()

	notify(subs)
}

// Clear empties the cart unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	s.lines = make(map[int64]*Line)
	s.order = nil
	subs := s.snapshotSubs()
	s.mu.Unlock()

	notify(subs)
}

// Total derives the cart total on read: exact per-line totals are summed
// first and the grand total is rounded once. Summing pre-rounded line
// totals would drift; see the store tests for the counterexample.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, id := range s.order {
		line := s.lines[id]
		unit := pricing.EffectiveUnitPrice(line.UnitPrice, line.DiscountPercentage)
		total = total.Add(pricing.LineTotal(unit, line.Quantity))
	}
	return pricing.RoundDisplay(total)
}

// QuantityFor returns the quantity held for the product, 0 when absent.
func (s *Store) QuantityFor(productID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if line, ok := s.lines[productID]; ok {
		return line.Quantity
	}
	return 0
}

// Lines returns a copy of the cart lines in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Line, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.lines[id])
	}
	return out
}

// Len returns the number of distinct lines.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// Subscribe registers a callback invoked after every mutation and returns
// its cancel func. Callbacks run outside the store lock.
func (s *Store) Subscribe(fn func()) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) snapshotSubs() []func() {
	out := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}

func notify(subs []func()) {
	for _, fn := range subs {
		fn()
	}
}
