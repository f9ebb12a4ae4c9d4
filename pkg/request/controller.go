package request

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/climapyg/climapyg-dashboard/pkg/httpclient"
)

// State is the observable lifecycle of the last request a Controller ran.
// A nil Data means "absent", an empty Error means "no error".
type State[T any] struct {
	Data    *T
	Loading bool
	Error   string
}

// HasData reports whether a successful response is held.
func (s State[T]) HasData() bool { return s.Data != nil }

// Failed reports whether the last settled request failed.
func (s State[T]) Failed() bool { return s.Error != "" }

// Controller wraps one HTTP call at a time and exposes its outcome as State.
// Creating a Controller never issues a request; only Execute does.
//
// Overlapping Execute calls are not serialized. By default the call that
// resolves last decides the final state, regardless of issue order. With
// WithLatestOnly only the most recently issued call may commit state.
type Controller[T any] struct {
	client     httpclient.Client
	log        Logger
	latestOnly bool
	observers  []func()

	mu     sync.Mutex
	state  State[T]
	issued uint64
}

// New builds a controller on top of client. The client owns the base URL.
func New[T any](client httpclient.Client, opts ...Option) *Controller[T] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	return &Controller[T]{
		client:     client,
		log:        ensureLogger(o.log),
		latestOnly: o.latestOnly,
		observers:  o.observers,
	}
}

// Execute performs a single request and returns the decoded body, or nil on
// failure. It never panics on transport or decoding errors; failures are
// recorded in State.Error instead.
func (c *Controller[T]) Execute(ctx context.Context, method, endpoint string, payload any) *T {
	method = strings.ToUpper(strings.TrimSpace(method))
	if ctx == nil {
		ctx = context.Background()
	}

	c.mu.Lock()
	c.issued++
	seq := c.issued
	c.state.Loading = true
	c.state.Error = ""
	c.mu.Unlock()
	c.notify()

	data, errMsg := c.roundTrip(ctx, method, endpoint, payload)

	c.mu.Lock()
	if c.latestOnly && seq != c.issued {
		c.mu.Unlock()
		c.log.DebugObj("stale response discarded", "request_stale", map[string]any{
			"method":   method,
			"endpoint": endpoint,
			"seq":      seq,
		})
		return data
	}
	c.state.Data = data
	c.state.Error = errMsg
	c.state.Loading = false
	c.mu.Unlock()
	c.notify()

	return data
}

func (c *Controller[T]) roundTrip(ctx context.Context, method, endpoint string, payload any) (*T, string) {
	if c.client == nil {
		return nil, ConnectivityErrorMessage
	}

	var body any
	if carriesBody(method) {
		body = payload
	}

	resp, err := c.client.Do(ctx, method, endpoint, body, nil)
	if err != nil {
		c.log.ErrorObj("request failed without response", "request_error", map[string]any{
			"method":   method,
			"endpoint": endpoint,
			"error":    err.Error(),
		})
		return nil, ConnectivityErrorMessage
	}

	status := resp.StatusCode()
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		msg := serverErrorMessage(status, resp.Body())
		c.log.ErrorObj("request failed with server error", "request_error", map[string]any{
			"method":   method,
			"endpoint": endpoint,
			"status":   status,
			"error":    msg,
		})
		return nil, msg
	}

	var out T
	raw := resp.Body()
	if len(bytes.TrimSpace(raw)) == 0 {
		// 204 and friends: success with the zero value
		c.log.DebugObj("request succeeded without body", "request_result", map[string]any{
			"method":   method,
			"endpoint": endpoint,
			"status":   status,
		})
		return &out, ""
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		msg := formatServerError(status, malformedBodyDetail)
		c.log.ErrorObj("response decode failed", "request_error", map[string]any{
			"method":   method,
			"endpoint": endpoint,
			"status":   status,
			"error":    err.Error(),
		})
		return nil, msg
	}

	c.log.DebugObj("request succeeded", "request_result", map[string]any{
		"method":   method,
		"endpoint": endpoint,
		"status":   status,
	})
	return &out, ""
}

// State returns a consistent snapshot of data, loading and error.
func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Data returns the last successfully decoded body, or nil.
func (c *Controller[T]) Data() *T { return c.State().Data }

// Loading reports whether a request is in flight.
func (c *Controller[T]) Loading() bool { return c.State().Loading }

// Err returns the last failure message, or "".
func (c *Controller[T]) Err() string { return c.State().Error }

func (c *Controller[T]) notify() {
	for _, fn := range c.observers {
		fn()
	}
}

func carriesBody(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	default:
		return true
	}
}
