package httpclient

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultUserAgent identifies the console to the services it calls.
const DefaultUserAgent = "namematch-console"

// Options configures a resty client.
type Options struct {
	Timeout time.Duration
	// UserAgent defaults to DefaultUserAgent.
	UserAgent string
	// Retries is the number of extra attempts after a failed request. Zero
	// reports every failure to the caller as-is.
	Retries int
}

// NewResty builds a resty.Client for callers needing verbs beyond GET.
func NewResty(opts Options) *resty.Client {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}

	c := resty.New().
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", opts.UserAgent).
		SetRetryCount(opts.Retries)
	if opts.Retries > 0 {
		c.SetRetryWaitTime(200 * time.Millisecond).
			SetRetryMaxWaitTime(2 * time.Second).
			AddRetryCondition(func(r *resty.Response, err error) bool {
				return err != nil || r.StatusCode() >= 500
			})
	}
	return c
}

// RestyClient implements Client on top of resty.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient returns a Client configured by opts.
func NewRestyClient(opts Options) *RestyClient {
	return &RestyClient{client: NewResty(opts)}
}

// Get performs a GET with the given query parameters and headers.
func (r *RestyClient) Get(ctx context.Context, url string, query, headers map[string]string) (Response, error) {
	req := r.client.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	resp, err := req.Get(url)
	if err != nil {
		return nil, err
	}
	return restyResponse{resp}, nil
}

type restyResponse struct {
	*resty.Response
}
