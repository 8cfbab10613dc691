// Package apiclient is the single choke point for requests to the learnhub
// backend. Every privileged call goes through Client.Request so that bearer
// headers and the 401-triggers-logout behavior are applied in one place.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/learnhub-dev/learnhub/internal/tokenstore"
)

const (
	defaultTimeout = 30 * time.Second
	apiPrefix      = "/api"

	// maxErrorBody bounds how much of an error response is read for its message
	maxErrorBody = 64 << 10
)

// Navigator performs the "go to login" side effect
type Navigator interface {
	Navigate(target string)
}

// NavigatorFunc adapts a function to Navigator
type NavigatorFunc func(target string)

func (f NavigatorFunc) Navigate(target string) { f(target) }

// Tokens is the subset of tokenstore.TokenStore the client needs
type Tokens interface {
	Get(role tokenstore.Role) (string, bool)
	Clear(role tokenstore.Role) error
}

// Options allows overriding client dependencies
type Options struct {
	HTTPClient *http.Client
	Tokens     Tokens
	Navigator  Navigator
	Logger     *zerolog.Logger
}

// Client talks to <baseURL>/api on behalf of a role
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	tokens     Tokens
	navigator  Navigator
	logger     zerolog.Logger
}

// New creates a new API client
func New(baseURL string, opts Options) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("baseURL is empty")
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse baseURL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("baseURL must be absolute: %q", baseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	navigator := opts.Navigator
	if navigator == nil {
		navigator = NavigatorFunc(func(string) {})
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	return &Client{
		baseURL:    parsed,
		httpClient: httpClient,
		tokens:     opts.Tokens,
		navigator:  navigator,
		logger:     logger,
	}, nil
}

// WithSession returns a copy of the client bound to another token store and navigator.
// The web server uses it to bind the shared client to one request.
func (c *Client) WithSession(tokens Tokens, navigator Navigator) *Client {
	clone := *c
	clone.tokens = tokens
	if navigator != nil {
		clone.navigator = navigator
	}
	return &clone
}

// BaseURL returns the configured backend origin
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// RequestOptions carries per-call overrides.
// Body may be nil, []byte, json.RawMessage, io.Reader, or any JSON-encodable value.
type RequestOptions struct {
	Method  string
	Body    any
	Headers http.Header
}

// Request performs an HTTP call against <base>/api<path> and decodes a 2xx JSON body into out.
//
// A 401 clears the role's token, navigates to its login page and returns ErrUnauthorized.
// Other non-2xx responses return *APIError. Transport failures return *NetworkError and
// leave the token alone.
func (c *Client) Request(ctx context.Context, role tokenstore.Role, path string, opts RequestOptions, out any) error {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	body, err := encodeBody(opts.Body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.applyHeaders(req, role, opts.Headers)
	if id := RequestIDFromContext(ctx); id != "" {
		req.Header.Set(RequestIDHeader, id)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("backend unreachable")
		return &NetworkError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Str("role", role.String()).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("backend request")

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return c.handleUnauthorized(role, path)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &APIError{Status: resp.StatusCode, Message: errorMessage(resp)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Method: method, Path: path, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) endpoint(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL.String() + apiPrefix + path
}

// applyHeaders merges caller headers over the JSON default, then sets the bearer
// header last so it cannot be dropped or spoofed by the caller.
func (c *Client) applyHeaders(req *http.Request, role tokenstore.Role, extra http.Header) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for key, values := range extra {
		if http.CanonicalHeaderKey(key) == "Authorization" {
			continue
		}
		if len(values) == 0 {
			continue
		}
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if c.tokens == nil {
		return
	}
	if token, ok := c.tokens.Get(role); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) handleUnauthorized(role tokenstore.Role, path string) error {
	c.logger.Info().Str("role", role.String()).Str("path", path).Msg("session rejected by backend, logging out")
	if c.tokens != nil {
		if err := c.tokens.Clear(role); err != nil {
			c.logger.Error().Err(err).Str("role", role.String()).Msg("failed to clear token")
		}
	}
	c.navigator.Navigate(role.LoginPath())
	return fmt.Errorf("%s %s: %w", role, path, ErrUnauthorized)
}

func encodeBody(body any) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return bytes.NewReader(b), nil
	case json.RawMessage:
		return bytes.NewReader(b), nil
	case string:
		return strings.NewReader(b), nil
	case io.Reader:
		return b, nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(data), nil
	}
}

// errorMessage pulls a human-readable message out of an error body.
// Malformed or empty bodies are treated as {}.
func errorMessage(resp *http.Response) string {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return genericMessage(resp.StatusCode)
	}
	if msg := strings.TrimSpace(payload.Message); msg != "" {
		return msg
	}
	if msg := strings.TrimSpace(payload.Error); msg != "" {
		return msg
	}
	return genericMessage(resp.StatusCode)
}
