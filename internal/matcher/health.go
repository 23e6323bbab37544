package matcher

import (
	"context"
	"net/http"
)

// HealthState is the outcome of a health probe.
type HealthState string

const (
	Healthy     HealthState = "healthy"
	Unhealthy   HealthState = "unhealthy"
	Unreachable HealthState = "unreachable"
	Failed      HealthState = "failed"
)

// HealthStatus describes the target's reachability.
type HealthStatus struct {
	State      HealthState `json:"state"`
	URL        string      `json:"url"`
	StatusCode int         `json:"status_code,omitempty"`
	Message    string      `json:"message,omitempty"`
}

// Health probes {base}/health, bounded by the health timeout.
func (c *Client) Health(ctx context.Context) HealthStatus {
	target := c.baseURL + HealthPath

	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	resp, err := c.http.Get(ctx, target, nil, nil)
	if err != nil {
		cerr := classifyTransportError(target, err)
		if cerr.Kind == KindConnectionFailed {
			return HealthStatus{State: Unreachable, URL: target, Message: err.Error()}
		}
		return HealthStatus{State: Failed, URL: target, Message: cerr.Error()}
	}

	if resp.StatusCode() != http.StatusOK {
		return HealthStatus{State: Unhealthy, URL: target, StatusCode: resp.StatusCode()}
	}
	return HealthStatus{State: Healthy, URL: target, StatusCode: resp.StatusCode()}
}
