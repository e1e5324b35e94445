// Package client talks to the daybook backend over HTTP.
//
// A Client is constructed once per process and handed to whatever needs it.
// It never retries, never caches and applies no timeout of its own; the
// caller's context is the only way to abandon a request.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:4000/api"

// RequestIDHeader carries a fresh identifier on every request.
const RequestIDHeader = "X-Request-ID"

type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
	secret  *secretHeader
	debug   bool
}

type secretHeader struct {
	name  string
	value string
}

// New constructs a Client rooted at baseURL. Paths such as /tasks are
// appended to it verbatim.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("client: invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("client: base url %q must be http or https", baseURL)
	}

	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		log:     zerolog.Nop(),
		debug:   debugLoggingRequested(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.debug {
		c.http = &http.Client{
			Transport:     &debugTransport{base: c.http.Transport, log: c.log},
			CheckRedirect: c.http.CheckRedirect,
			Jar:           c.http.Jar,
			Timeout:       c.http.Timeout,
		}
	}
	return c, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// HasDevSecret reports whether privileged calls can attach a secret header.
func (c *Client) HasDevSecret() bool { return c.secret != nil }

type request struct {
	op         string
	method     string
	path       string
	query      url.Values
	body       any
	privileged bool
}

// do performs the request and returns the raw body of a 2xx response.
func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	fail := func(status int, body string, err error) error {
		return &Error{Op: r.op, Method: r.method, Path: r.path, StatusCode: status, Body: body, Err: err}
	}

	var payload io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, fail(0, "", fmt.Errorf("encode body: %w", err))
		}
		payload = bytes.NewReader(b)
	}

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, r.method, target, payload)
	if err != nil {
		return nil, fail(0, "", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())
	if r.privileged && c.secret != nil {
		req.Header.Set(c.secret.name, c.secret.value)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observe(r.op, 0, time.Since(start))
		return nil, fail(0, "", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	observe(r.op, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, fail(resp.StatusCode, "", fmt.Errorf("read body: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fail(resp.StatusCode, string(body), nil)
	}
	return body, nil
}

// decode unmarshals a 2xx body into out, reporting failures as *Error.
func decode(r request, body []byte, out any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return &Error{Op: r.op, Method: r.method, Path: r.path, Err: fmt.Errorf("empty response body")}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Op: r.op, Method: r.method, Path: r.path, Body: string(body), Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func debugLoggingRequested() bool {
	return os.Getenv("DAYBOOK_DEBUG") == "true"
}
