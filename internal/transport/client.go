// Package transport provides authenticated HTTP client functionality shared
// by the survey-source and record-store API clients, including bounded
// retry with backoff for transient failures.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/hearthops/intake/pkg/constants"
	"github.com/hearthops/intake/pkg/errors"
	"github.com/hearthops/intake/pkg/logging"
)

// Client provides HTTP client functionality with authentication and retry.
type Client struct {
	http       *http.Client
	auth       Authenticator
	service    string
	headers    map[string]string
	maxRetries int
	backoff    time.Duration
}

// Option customizes a transport client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Tests use this to
// point at an httptest server with custom timeouts.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithHeader sets a header applied to every request, such as an API
// version pin.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithMaxRetries bounds the number of retry attempts for transient failures.
func WithMaxRetries(n int) Option {
	return func(c *Client) { c.maxRetries = n }
}

// WithBackoff sets the base backoff duration between retries.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) { c.backoff = d }
}

// New creates a transport client for the named service with the given
// authenticator.
func New(service string, auth Authenticator, opts ...Option) *Client {
	c := &Client{
		http:       &http.Client{Timeout: constants.DefaultHTTPTimeout},
		auth:       auth,
		service:    service,
		headers:    make(map[string]string),
		maxRetries: constants.MaxRetries,
		backoff:    constants.RetryBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetJSON performs a GET request and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, url string, out any) error {
	return c.doJSON(ctx, http.MethodGet, url, nil, out)
}

// PostJSON performs a POST request with a JSON body and decodes the JSON
// response into out. A nil out discards the response body.
func (c *Client) PostJSON(ctx context.Context, url string, in, out any) error {
	return c.doJSON(ctx, http.MethodPost, url, in, out)
}

// PatchJSON performs a PATCH request with a JSON body and decodes the JSON
// response into out. A nil out discards the response body.
func (c *Client) PatchJSON(ctx context.Context, url string, in, out any) error {
	return c.doJSON(ctx, http.MethodPatch, url, in, out)
}

// doJSON builds, sends (with retries), and decodes one JSON request.
func (c *Client) doJSON(ctx context.Context, method, url string, in, out any) error {
	var body []byte
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return errors.WrapParse("json", "request body", err)
		}
	}

	resp, err := c.do(ctx, method, url, body)
	if err != nil {
		return err
	}
	return c.decode(resp, out)
}

// do sends one request, retrying retryable failures (network errors,
// timeouts, 429, and 5xx responses) up to maxRetries times with exponential
// backoff. A 429 Retry-After header, when present, overrides the computed
// backoff.
func (c *Client) do(ctx context.Context, method, url string, body []byte) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := c.wait(ctx, attempt, lastErr); err != nil {
				return nil, err
			}
			logging.Ctx(ctx).Debug().
				Str("service", c.service).
				Str("url", url).
				Int("attempt", attempt).
				Msg("Retrying request")
		}

		req, err := c.newRequest(ctx, method, url, body)
		if err != nil {
			return nil, err
		}

		resp, err := c.http.Do(req)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return nil, errors.ErrCanceled
			}
			lastErr = wrapNetError(c.service, err)
		case resp.StatusCode >= 400:
			lastErr = readAPIError(c.service, resp)
		default:
			return resp, nil
		}
		if !errors.IsRetryable(lastErr) {
			return nil, lastErr
		}
	}

	return nil, lastErr
}

// wrapNetError classifies a failed round trip: client-side timeouts become
// ErrTimeout, everything else counts as the service being unavailable. Both
// are retryable.
func wrapNetError(service string, err error) error {
	cause := errors.ErrUnavailable
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		cause = errors.ErrTimeout
	}
	return &errors.APIError{
		Service: service,
		Message: err.Error(),
		Err:     cause,
	}
}

// newRequest constructs one request with authentication and common headers.
func (c *Client) newRequest(ctx context.Context, method, url string, body []byte) (*http.Request, error) {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, errors.WrapAPI(c.service, 0, err)
	}

	c.auth.Apply(req)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

// wait sleeps before a retry, honoring context cancellation and any
// Retry-After hint carried by the previous response error.
func (c *Client) wait(ctx context.Context, attempt int, lastErr error) error {
	delay := c.backoff << (attempt - 1)
	if delay > constants.MaxRetryBackoff {
		delay = constants.MaxRetryBackoff
	}
	var apiErr *errors.APIError
	if errors.As(lastErr, &apiErr) && apiErr.RetryAfter > 0 {
		delay = time.Duration(apiErr.RetryAfter) * time.Second
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return errors.ErrCanceled
	case <-timer.C:
		return nil
	}
}

// readAPIError drains and closes a retryable error response, capturing any
// Retry-After hint for the backoff calculation.
func readAPIError(service string, resp *http.Response) error {
	defer resp.Body.Close() //nolint:errcheck // nothing useful to do with a close error

	apiErr := &errors.APIError{
		Service:    service,
		StatusCode: resp.StatusCode,
		Message:    readErrorMessage(resp),
		Endpoint:   resp.Request.URL.Path,
	}
	if ra := resp.Header.Get("Retry-After"); ra != "" {
		if secs, err := strconv.Atoi(ra); err == nil {
			apiErr.RetryAfter = secs
		}
	}
	return apiErr
}

// readAPIErrorBody translates a terminal non-2xx response into an APIError.
// The caller is responsible for closing the body.
func readAPIErrorBody(service string, resp *http.Response) error {
	return &errors.APIError{
		Service:    service,
		StatusCode: resp.StatusCode,
		Message:    readErrorMessage(resp),
		Endpoint:   resp.Request.URL.Path,
	}
}

// readErrorMessage pulls a short message out of an error response body,
// preferring the "message" field of a JSON error payload.
func readErrorMessage(resp *http.Response) string {
	var payload struct {
		Message     string `json:"message"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Description != "" {
			return payload.Description
		}
	}
	return http.StatusText(resp.StatusCode)
}

// decode reads a JSON response into target, translating non-2xx statuses
// into APIErrors. A nil target discards the body.
func (c *Client) decode(resp *http.Response, target any) error {
	defer resp.Body.Close() //nolint:errcheck // nothing useful to do with a close error

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readAPIErrorBody(c.service, resp)
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return errors.WrapParse("json", c.service+" response", err)
	}
	return nil
}
