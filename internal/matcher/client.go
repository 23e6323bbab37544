package matcher

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/samvad-hq/namematch-console/internal/config"
	"github.com/samvad-hq/namematch-console/internal/domain"
	"github.com/samvad-hq/namematch-console/pkg/httpclient"
)

const (
	// ComparePath is appended to the base URL for comparison requests.
	ComparePath = "/api/v1/utility/util"
	// HealthPath is appended to the base URL for health checks.
	HealthPath = "/health"

	defaultRequestTimeout = 30 * time.Second
	defaultHealthTimeout  = 5 * time.Second
)

// Options configures a Client.
type Options struct {
	BaseURL        string
	RequestTimeout time.Duration
	HealthTimeout  time.Duration
	// HTTP overrides the transport; a resty client with RequestTimeout is used when nil.
	HTTP httpclient.Client
	// Now overrides the clock used for timestamps and latency.
	Now func() time.Time
}

// Client talks to the remote name-matching service.
type Client struct {
	baseURL       string
	http          httpclient.Client
	healthTimeout time.Duration
	now           func() time.Time
}

// New builds a client for the given base URL.
func New(opts Options) (*Client, error) {
	base, err := config.NormalizeBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	if opts.HealthTimeout <= 0 {
		opts.HealthTimeout = defaultHealthTimeout
	}
	if opts.HTTP == nil {
		opts.HTTP = httpclient.NewRestyClient(httpclient.Options{Timeout: opts.RequestTimeout})
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Client{
		baseURL:       base,
		http:          opts.HTTP,
		healthTimeout: opts.HealthTimeout,
		now:           opts.Now,
	}, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Endpoint returns the full comparison URL derived from the base URL.
func (c *Client) Endpoint() string { return c.baseURL + ComparePath }

// apiResponse is the wire shape of a successful comparison.
type apiResponse struct {
	IsMatch         *string  `json:"is_match"`
	ConfidenceScore *float64 `json:"confidence_score"`
	Reason          string   `json:"reason"`
}

// Compare asks the service whether name1 and name2 refer to the same entity.
// Empty names are rejected with domain.ErrEmptyName before any network call.
func (c *Client) Compare(ctx context.Context, name1, name2 string) (domain.ComparisonResult, error) {
	req := domain.ComparisonRequest{Name1: name1, Name2: name2}.Normalize()
	if err := req.Validate(); err != nil {
		return domain.ComparisonResult{}, err
	}

	target := c.Endpoint()
	query := map[string]string{"name1": req.Name1, "name2": req.Name2}
	headers := map[string]string{"accept": "application/json"}

	start := c.now()
	resp, err := c.http.Get(ctx, target, query, headers)
	elapsed := c.now().Sub(start)
	if err != nil {
		return domain.ComparisonResult{}, classifyTransportError(target, err)
	}

	body := resp.Body()
	if resp.StatusCode() != http.StatusOK {
		return domain.ComparisonResult{}, &Error{
			Kind:       KindAPIError,
			URL:        target,
			StatusCode: resp.StatusCode(),
			Body:       string(body),
		}
	}

	result, err := decodeResult(body)
	if err != nil {
		return domain.ComparisonResult{}, &Error{Kind: KindUnexpected, URL: target, Message: err.Error(), Err: err}
	}

	result.ResponseTimeMs = roundMillis(elapsed)
	result.Timestamp = c.now().Format(domain.TimestampLayout)
	result.InputName1 = req.Name1
	result.InputName2 = req.Name2
	return result, nil
}

func decodeResult(body []byte) (domain.ComparisonResult, error) {
	var wire apiResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return domain.ComparisonResult{}, fmt.Errorf("decode response: %w", err)
	}
	if wire.IsMatch == nil {
		return domain.ComparisonResult{}, fmt.Errorf("decode response: is_match missing")
	}
	verdict, err := domain.ParseVerdict(*wire.IsMatch)
	if err != nil {
		return domain.ComparisonResult{}, fmt.Errorf("decode response: %w", err)
	}
	if wire.ConfidenceScore == nil {
		return domain.ComparisonResult{}, fmt.Errorf("decode response: confidence_score missing")
	}
	score := *wire.ConfidenceScore
	if math.IsNaN(score) || score < 0 || score > 1 {
		return domain.ComparisonResult{}, fmt.Errorf("decode response: confidence_score %v outside [0, 1]", score)
	}

	return domain.ComparisonResult{
		IsMatch:         verdict,
		ConfidenceScore: score,
		Reason:          strings.TrimSpace(wire.Reason),
	}, nil
}

func roundMillis(d time.Duration) float64 {
	if d < 0 {
		return 0
	}
	ms := float64(d) / float64(time.Millisecond)
	return math.Round(ms*100) / 100
}
