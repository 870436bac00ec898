// Package http wraps the outbound client used for the optional
// noun-phrase chunking service.
package http

import (
	"net/http"
	"time"
)

// Client is a plain HTTP client with a hard per-request timeout.
// Callers carry deadlines on the request context; the timeout here is
// the backstop when they do not.
type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}
