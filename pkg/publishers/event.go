package publishers

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samvad-hq/namematch-console/internal/domain"
)

// Event represents a comparison outcome published downstream.
type Event struct {
	ID           string                  `json:"id"`
	Key          string                  `json:"key"`
	RoutingLabel domain.RoutingLabel     `json:"routing_label"`
	Target       string                  `json:"target"`
	Endpoint     string                  `json:"endpoint"`
	Result       domain.ComparisonResult `json:"result"`
	PublishedAt  time.Time               `json:"published_at"`
}

// NewEvent constructs an Event for a comparison result fetched from endpoint.
func NewEvent(endpoint string, result domain.ComparisonResult) Event {
	label := result.Route()
	return Event{
		ID:           uuid.NewString(),
		Key:          ResultKey(result),
		RoutingLabel: label,
		Target:       label.TargetName(),
		Endpoint:     endpoint,
		Result:       result,
		PublishedAt:  time.Now().UTC(),
	}
}

// ResultKey identifies an outcome by its case-folded inputs and verdict.
// Repeating a comparison yields the same key.
func ResultKey(result domain.ComparisonResult) string {
	parts := []string{
		strings.ToLower(strings.TrimSpace(result.InputName1)),
		strings.ToLower(strings.TrimSpace(result.InputName2)),
		string(result.IsMatch),
	}
	sum := sha1.Sum([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}

// attributes returns the message attributes attached by queue/topic publishers.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"routing_label": string(e.RoutingLabel),
		"is_match":      string(e.Result.IsMatch),
	}
}

// fifo reports whether a queue URL or topic ARN names a FIFO destination.
func fifo(target string) bool { return strings.HasSuffix(target, ".fifo") }
