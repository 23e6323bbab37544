package export

import (
	"context"

	"github.com/samvad-hq/namematch-console/pkg/publishers"
)

// EventPublisher publishes comparison events downstream.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// Deduper tracks comparison outcomes that were already exported.
type Deduper interface {
	SeenComparison(key string) (bool, error)
	MarkComparison(key string) error
}
