package catalog

import (
	"context"
	"sync"

	"github.com/sfshop/storefront-client/internal/latest"
	"github.com/sfshop/storefront-client/pkg/logger"
)

const detailKey = "product-detail"

type productFetcher interface {
	FetchProduct(ctx context.Context, id int64) (*Product, error)
}

// DetailLoader drives the product detail view. Navigating quickly between
// products fires overlapping fetches; the loader applies only the result of
// the last-issued request, whatever order the responses land in.
type DetailLoader struct {
	fetch   productFetcher
	tracker *latest.Tracker
	logg    *logger.Logger

	mu      sync.Mutex
	product *Product
	err     error
	loading bool
	subs    map[int]func()
	nextSub int
}

func NewDetailLoader(fetch productFetcher, logg *logger.Logger) *DetailLoader {
	return &DetailLoader{
		fetch:   fetch,
		tracker: latest.NewTracker(),
		logg:    logg,
		subs:    make(map[int]func()),
	}
}

// Load issues a fetch for the product and returns immediately. The result
// is applied asynchronously unless a newer Load supersedes it first.
func (l *DetailLoader) Load(ctx context.Context, id int64) {
	ticket := l.tracker.Begin(detailKey)

	l.mu.Lock()
	l.loading = true
	subs := l.snapshotSubs()
	l.mu.Unlock()
	notifyAll(subs)

	if l.logg != nil {
		ctx = l.logg.WithProductID(ctx, id)
		l.logg.Debug(ctx, "loading product detail")
	}

	go func() {
		product, err := l.fetch.FetchProduct(ctx, id)
		if !l.applyResult(ticket, product, err) && l.logg != nil {
			l.logg.Debug(ctx, "dropping superseded product detail response")
		}
	}()
}

// Snapshot returns the current view state: the last applied product (nil
// when none or not found), whether a load is in flight, and the last error.
func (l *DetailLoader) Snapshot() (*Product, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.product == nil {
		return nil, l.loading, l.err
	}
	copied := *l.product
	return &copied, l.loading, l.err
}

// Subscribe registers a callback invoked after every applied state change.
func (l *DetailLoader) Subscribe(fn func()) (cancel func()) {
	l.mu.Lock()
	id := l.nextSub
	l.nextSub++
	l.subs[id] = fn
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.subs, id)
		l.mu.Unlock()
	}
}

func (l *DetailLoader) applyResult(ticket latest.Ticket, product *Product, err error) bool {
	applied := ticket.Apply(func() {
		l.mu.Lock()
		l.loading = false
		if err != nil {
			l.product = nil
			l.err = err
		} else {
			l.product = product
			l.err = nil
		}
		subs := l.snapshotSubs()
		l.mu.Unlock()
		notifyAll(subs)
	})
	return applied
}

func (l *DetailLoader) snapshotSubs() []func() {
	out := make([]func(), 0, len(l.subs))
	for _, fn := range l.subs {
		out = append(out, fn)
	}
	return out
}

func notifyAll(subs []func()) {
	for _, fn := range subs {
		fn()
	}
}
