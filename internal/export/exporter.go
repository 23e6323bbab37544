package export

import (
	"context"
	"fmt"

	"github.com/samvad-hq/namematch-console/internal/domain"
	"github.com/samvad-hq/namematch-console/internal/logger"
	"github.com/samvad-hq/namematch-console/pkg/publishers"
)

// Service forwards comparison results to the configured publishers, skipping
// outcomes that were exported recently.
type Service struct {
	publisher EventPublisher
	deduper   Deduper
	log       logger.Logger
}

// NewService wires an exporter. A nil deduper exports every result.
func NewService(pub EventPublisher, log logger.Logger, deduper Deduper) *Service {
	return &Service{
		publisher: pub,
		deduper:   deduper,
		log:       logger.Ensure(log),
	}
}

// Export publishes result as an event. It reports whether an event was sent.
func (s *Service) Export(ctx context.Context, endpoint string, result domain.ComparisonResult) (bool, error) {
	if s == nil || s.publisher == nil {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	evt := publishers.NewEvent(endpoint, result)
	key := evt.Key
	if s.seen(key) {
		s.log.DebugObj("comparison already exported", "export_skip", map[string]any{
			"dedupe_key": key,
		})
		return false, nil
	}

	delivered, err := s.publisher.Publish(ctx, evt)
	if delivered == 0 {
		if err == nil {
			return false, nil
		}
		return false, fmt.Errorf("publish event %s: %w", evt.ID, err)
	}
	if err != nil {
		s.log.WarnObj("event partially published", "export_partial", map[string]any{
			"event_id":  evt.ID,
			"delivered": delivered,
			"error":     err.Error(),
		})
	}

	if s.deduper != nil {
		if merr := s.deduper.MarkComparison(key); merr != nil {
			s.log.WarnObj("dedupe mark failed", "export_dedupe_error", map[string]any{
				"dedupe_key": key,
				"error":      merr.Error(),
			})
		}
	}

	s.log.InfoObj("comparison exported", "export_result", map[string]any{
		"event_id":      evt.ID,
		"routing_label": evt.RoutingLabel,
		"delivered":     delivered,
	})
	return true, nil
}

func (s *Service) seen(key string) bool {
	if s.deduper == nil {
		return false
	}
	seen, err := s.deduper.SeenComparison(key)
	if err != nil {
		s.log.WarnObj("dedupe lookup failed", "export_dedupe_error", map[string]any{
			"dedupe_key": key,
			"error":      err.Error(),
		})
		return false
	}
	return seen
}
