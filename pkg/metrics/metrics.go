package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ClientMetrics records storefront client activity: remote API calls and
// cart mutations. All methods tolerate a nil receiver so wiring metrics
// stays optional.
type ClientMetrics struct {
	apiDuration *prometheus.HistogramVec
	apiFailures *prometheus.CounterVec
	cartOps     *prometheus.CounterVec
}

// NewClientMetrics registers the storefront metrics on the provided registerer.
func NewClientMetrics(reg prometheus.Registerer) *ClientMetrics {
	if reg == nil {
		return &ClientMetrics{}
	}
	apiDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_api_request_duration_seconds",
		Help:    "Duration of remote shop API requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
	apiFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_api_request_failures",
		Help: "Failed remote shop API requests by error code.",
	}, []string{"endpoint", "code"})
	cartOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cart_operations",
		Help: "Cart store mutations by operation.",
	}, []string{"op"})
	reg.MustRegister(apiDuration, apiFailures, cartOps)
	return &ClientMetrics{
		apiDuration: apiDuration,
		apiFailures: apiFailures,
		cartOps:     cartOps,
	}
}

// ObserveAPIRequest records the duration of a remote call.
func (c *ClientMetrics) ObserveAPIRequest(endpoint string, duration time.Duration) {
	if c == nil || c.apiDuration == nil {
		return
	}
	c.apiDuration.WithLabelValues(normalizeLabel(endpoint)).Observe(duration.Seconds())
}

// IncAPIFailure increments the failure counter for the endpoint and code.
func (c *ClientMetrics) IncAPIFailure(endpoint, code string) {
	if c == nil || c.apiFailures == nil {
		return
	}
	c.apiFailures.WithLabelValues(normalizeLabel(endpoint), normalizeLabel(code)).Inc()
}

// IncCartOp increments the counter for the named cart operation.
func (c *ClientMetrics) IncCartOp(op string) {
	if c == nil || c.cartOps == nil {
		return
	}
	c.cartOps.WithLabelValues(normalizeLabel(op)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
