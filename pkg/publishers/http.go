package publishers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/samvad-hq/namematch-console/pkg/httpclient"
)

const maxErrorSnippet = 512

// webhookPublisher posts events as JSON to an HTTP endpoint.
type webhookPublisher struct {
	id      string
	method  string
	url     string
	headers map[string]string
	client  *resty.Client
	log     Logger
}

func newHTTPPublisher(_ context.Context, cfg PublisherConfig, log Logger) (Publisher, error) {
	if cfg.HTTP == nil {
		return nil, fmt.Errorf("publisher %q missing http configuration", cfg.ID)
	}

	return &webhookPublisher{
		id:      cfg.ID,
		method:  cfg.HTTP.Method,
		url:     cfg.HTTP.URL,
		headers: cfg.HTTP.Headers,
		client: httpclient.NewResty(httpclient.Options{
			Timeout: time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second,
			Retries: cfg.HTTP.Retries,
		}),
		log: ensureLogger(log),
	}, nil
}

func (h *webhookPublisher) ID() string   { return h.id }
func (h *webhookPublisher) Type() string { return TypeHTTP }

// Publish sends the event. The routing label and event id are duplicated into
// headers so receivers can route without parsing the body.
func (h *webhookPublisher) Publish(ctx context.Context, evt Event) error {
	req := h.client.R().
		SetContext(ctx).
		SetHeaders(h.headers).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Routing-Label", string(evt.RoutingLabel)).
		SetHeader("X-Event-ID", evt.ID).
		SetBody(evt)

	resp, err := req.Execute(h.method, h.url)
	if err != nil {
		return fmt.Errorf("%s %s: %w", h.method, h.url, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%s %s: status %d: %s", h.method, h.url, resp.StatusCode(), snippet(resp.Body()))
	}

	h.log.DebugObj("webhook delivered event", "publisher_http_delivery", map[string]any{
		"publisher_id":  h.id,
		"event_id":      evt.ID,
		"routing_label": evt.RoutingLabel,
		"status":        resp.StatusCode(),
	})
	return nil
}

func snippet(body []byte) string {
	if len(body) > maxErrorSnippet {
		body = body[:maxErrorSnippet]
	}
	return strings.TrimSpace(string(body))
}
