// Package client is a typed HTTP client for the to-do API. It is built
// with the API base URL the server computes for its deployment mode.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"

	"github.com/shaharia-lab/todo/internal/storage"
)

// APIError is a non-2xx response from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned status %d", e.Status)
	}
	return fmt.Sprintf("api returned status %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == http.StatusNotFound
}

const defaultTimeout = 10 * time.Second

// Client talks to the /api endpoints.
type Client struct {
	http        *resty.Client
	baseURL     string
	maxRetries  uint64
	initialWait time.Duration
}

// Option customises a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

// WithRetries sets how many times idempotent calls are retried and the
// first backoff interval.
func WithRetries(n uint64, initial time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = n
		c.initialWait = initial
	}
}

// WithHTTPClient replaces the transport-level client. hc is copied; the
// timeout already configured is kept unless hc sets its own.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		cp := *hc
		if cp.Timeout == 0 {
			cp.Timeout = c.http.GetClient().Timeout
		}
		c.http = resty.NewWithClient(&cp).
			SetBaseURL(c.baseURL).
			SetHeader("Accept", "application/json")
	}
}

// New returns a client for baseURL, which must be absolute. Use
// ResolveBaseURL to turn the relative production base URL into one.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || !u.IsAbs() {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}
	base := strings.TrimRight(baseURL, "/")
	c := &Client{
		http: resty.New().
			SetBaseURL(base).
			SetHeader("Accept", "application/json").
			SetTimeout(defaultTimeout),
		baseURL:     base,
		maxRetries:  3,
		initialWait: 200 * time.Millisecond,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// ResolveBaseURL resolves a possibly relative base URL against the
// server origin. Absolute base URLs are returned unchanged.
func ResolveBaseURL(origin, baseURL string) (string, error) {
	ref, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}
	if ref.IsAbs() {
		return baseURL, nil
	}
	o, err := url.Parse(origin)
	if err != nil || !o.IsAbs() {
		return "", fmt.Errorf("server origin %q must be absolute", origin)
	}
	return o.ResolveReference(ref).String(), nil
}

// BaseURL returns the API root this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List returns all todos.
func (c *Client) List(ctx context.Context) ([]storage.Todo, error) {
	var todos []storage.Todo
	err := c.retry(ctx, func() (*resty.Response, error) {
		return c.http.R().SetContext(ctx).SetResult(&todos).Get("/todos")
	})
	if err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}
	return todos, nil
}

// Create adds a todo. It is not retried since the server is not idempotent
// for creates.
func (c *Client) Create(ctx context.Context, body string) (*storage.Todo, error) {
	var todo storage.Todo
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"body": body}).
		SetResult(&todo).
		Post("/todos")
	if err != nil {
		return nil, fmt.Errorf("creating todo: %w", err)
	}
	if err := checkResponse(resp); err != nil {
		return nil, fmt.Errorf("creating todo: %w", err)
	}
	return &todo, nil
}

// Complete marks a todo as done.
func (c *Client) Complete(ctx context.Context, id string) error {
	err := c.retry(ctx, func() (*resty.Response, error) {
		return c.http.R().SetContext(ctx).SetPathParam("id", id).Patch("/todos/{id}")
	})
	if err != nil {
		return fmt.Errorf("completing todo %q: %w", id, err)
	}
	return nil
}

// Delete removes a todo.
func (c *Client) Delete(ctx context.Context, id string) error {
	err := c.retry(ctx, func() (*resty.Response, error) {
		return c.http.R().SetContext(ctx).SetPathParam("id", id).Delete("/todos/{id}")
	})
	if err != nil {
		return fmt.Errorf("deleting todo %q: %w", id, err)
	}
	return nil
}

// retry runs do with exponential backoff. Transport errors and 5xx
// responses are retried; other API errors are returned at once.
func (c *Client) retry(ctx context.Context, do func() (*resty.Response, error)) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.initialWait
	exp.Multiplier = 2
	exp.MaxInterval = 5 * time.Second

	op := func() error {
		resp, err := do()
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		if err := checkResponse(resp); err != nil {
			var ae *APIError
			if errors.As(err, &ae) && ae.Status >= http.StatusInternalServerError {
				return err
			}
			return backoff.Permanent(err)
		}
		return nil
	}

	return backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(exp, c.maxRetries), ctx))
}

func checkResponse(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	ae := &APIError{Status: resp.StatusCode()}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		ae.Message = body.Error
	}
	return ae
}
