package client

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// Option configures a Client during construction in New.
type Option func(*Client) error

// WithHTTPClient replaces the underlying http.Client. Its transport is kept;
// debug logging, when enabled, wraps it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return errors.New("http client must not be nil")
		}
		c.http = hc
		return nil
	}
}

// WithDevSecret configures the shared-secret header that privileged calls may
// opt into. An empty name or value leaves the secret unconfigured, in which
// case privileged calls go out without it.
func WithDevSecret(name, value string) Option {
	return func(c *Client) error {
		name, value = strings.TrimSpace(name), strings.TrimSpace(value)
		if name == "" || value == "" {
			c.secret = nil
			return nil
		}
		c.secret = &secretHeader{name: http.CanonicalHeaderKey(name), value: value}
		return nil
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) error {
		c.log = l
		return nil
	}
}

// WithDebugLogging wraps the transport so each request and response is dumped
// at debug level. Dumps include headers, so the dev secret shows up in them.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		c.debug = enabled
		return nil
	}
}
