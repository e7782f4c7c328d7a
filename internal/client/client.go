// Package client talks to the Way2enjoy compression API.
//
// A Client uploads files, reads back the compression result and drives the
// follow-up requests (resize, store to S3, download) against the result URL
// the server hands out. Every call is synchronous and returns the HTTP status
// of the exchange it performed; a Client keeps no per-request state, so one
// instance can be shared.
package client

import (
	"encoding/base64"
	"net/http"
	"time"
)

// DefaultEndpoint is the upload URL of the public API.
const DefaultEndpoint = "https://way2enjoy.com/modules/compress-png/way2enjoy-cli2.php"

// HTTPDoer is the subset of *http.Client the Client needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	base64APIKey string
	endpoint     string
	httpClient   HTTPDoer
	timeout      time.Duration
}

type Option func(*Client)

// WithEndpoint overrides the upload URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(h HTTPDoer) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithTimeout bounds every exchange. Zero keeps the transport default. It
// applies to the default client or to an *http.Client passed with
// WithHTTPClient, whatever the option order; other HTTPDoers are left as is.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New builds a Client for apiKey. The key is only kept in its Basic-Auth
// encoded form.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		base64APIKey: base64.StdEncoding.EncodeToString([]byte(apiKey)),
		endpoint:     DefaultEndpoint,
		httpClient:   http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	if hc, ok := c.httpClient.(*http.Client); ok && c.timeout > 0 {
		bounded := *hc
		bounded.Timeout = c.timeout
		c.httpClient = &bounded
	}
	return c
}

// Endpoint returns the upload URL in use.
func (c *Client) Endpoint() string {
	return c.endpoint
}

func (c *Client) authorization() string {
	return "Basic " + c.base64APIKey
}
