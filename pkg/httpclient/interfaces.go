// Package httpclient wraps resty behind small interfaces so callers can swap
// the transport in tests.
package httpclient

import "context"

// Response is the part of an HTTP response callers inspect.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client issues GET requests. query values are URL-encoded onto the request;
// either map may be nil.
type Client interface {
	Get(ctx context.Context, url string, query, headers map[string]string) (Response, error)
}
