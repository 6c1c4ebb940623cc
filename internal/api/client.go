package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sfshop/storefront-client/pkg/logger"
	"github.com/sfshop/storefront-client/pkg/metrics"
	"github.com/sfshop/storefront-client/pkg/types"

	pkgerrors "github.com/sfshop/storefront-client/pkg/errors"
)

const responseBodyReadLimit int64 = 4096

var errBaseURLRequired = errors.New("api base url is required")

// TokenSource supplies the bearer token attached to authenticated requests.
// An empty token means the request goes out anonymous.
type TokenSource interface {
	Token() string
}

// Client is the thin HTTP wrapper every remote collaborator shares. It does
// not retry and does not cache; failures surface as coded errors and the
// caller decides what to show.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	tokens         TokenSource
	logg           *logger.Logger
	metrics        *metrics.ClientMetrics
	onUnauthorized func()
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithTokenSource attaches a bearer token source.
func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) {
		c.tokens = tokens
	}
}

// WithLogger attaches structured logging to every request.
func WithLogger(logg *logger.Logger) Option {
	return func(c *Client) {
		c.logg = logg
	}
}

// WithMetrics records request durations and failures.
func WithMetrics(m *metrics.ClientMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithUnauthorizedHook registers the callback fired on any 401 response,
// before the error is returned. The session layer uses it to force logout.
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

// NewClient builds the shop API client for the configured base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, errBaseURLRequired
	}

	client := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return client, nil
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "api client not configured")
	}

	endpoint := endpointLabel(path)
	if c.logg != nil {
		ctx = c.logg.WithRequestID(ctx, uuid.NewString())
		ctx = c.logg.WithEndpoint(ctx, endpoint)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+strings.TrimLeft(path, "/"), reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ObserveAPIRequest(endpoint, time.Since(start))
	if err != nil {
		c.metrics.IncAPIFailure(endpoint, string(pkgerrors.CodeNetwork))
		if c.logg != nil {
			c.logg.Error(ctx, "shop api unreachable", err)
		}
		return pkgerrors.Wrap(pkgerrors.CodeNetwork, err, "the shop is unreachable right now")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.failure(ctx, endpoint, resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.metrics.IncAPIFailure(endpoint, string(pkgerrors.CodeNetwork))
			return pkgerrors.Wrap(pkgerrors.CodeNetwork, err, "decode response")
		}
	}

	if c.logg != nil {
		c.logg.Debug(ctx, "shop api request completed")
	}
	return nil
}

func (c *Client) failure(ctx context.Context, endpoint string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	code := pkgerrors.FromStatus(resp.StatusCode)
	message := apiMessage(raw)
	if message == "" {
		message = pkgerrors.MetadataFor(code).PublicMessage
	}

	c.metrics.IncAPIFailure(endpoint, string(code))
	if c.logg != nil {
		c.logg.Warn(ctx, fmt.Sprintf("shop api returned status %d: %s", resp.StatusCode, message))
	}

	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}

	return pkgerrors.Wrap(code, fmt.Errorf("status %d", resp.StatusCode), message)
}

// apiMessage digs the human-readable reason out of an error body. The API's
// history produced three shapes; all are accepted here and nowhere else.
func apiMessage(raw []byte) string {
	var envelope types.ErrorEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}

	var flat struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &flat); err == nil {
		if flat.Message != "" {
			return flat.Message
		}
		if flat.Error != "" {
			return flat.Error
		}
	}
	return ""
}

// endpointLabel collapses ID segments so metric cardinality stays bounded.
func endpointLabel(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, segment := range segments {
		if segment != "" && strings.Trim(segment, "0123456789") == "" {
			segments[i] = ":id"
		}
	}
	return "/" + strings.Join(segments, "/")
}
