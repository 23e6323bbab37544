package publishers

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Builder creates a Publisher from a config entry.
type Builder func(ctx context.Context, cfg PublisherConfig, log Logger) (Publisher, error)

// Registry maps a publisher type to the builder for that sink.
type Registry struct {
	builders map[string]Builder
}

// NewRegistry returns a registry over builders. Type names are matched
// case-insensitively; blank names and nil builders are ignored.
func NewRegistry(builders map[string]Builder) *Registry {
	r := &Registry{builders: make(map[string]Builder, len(builders))}
	for typ, b := range builders {
		if typ = strings.ToLower(strings.TrimSpace(typ)); typ != "" && b != nil {
			r.builders[typ] = b
		}
	}
	return r
}

// DefaultRegistry knows every sink shipped with the console.
func DefaultRegistry() *Registry {
	return NewRegistry(map[string]Builder{
		TypeHTTP:      newHTTPPublisher,
		TypeSQS:       newSQSPublisher,
		TypeSNS:       newSNSPublisher,
		TypeGCPPubSub: newPubSubPublisher,
	})
}

// Build constructs the publisher described by cfg.
func (r *Registry) Build(ctx context.Context, cfg PublisherConfig, log Logger) (Publisher, error) {
	builder, ok := r.builders[strings.ToLower(cfg.Type)]
	if !ok {
		return nil, fmt.Errorf("unsupported publisher type %q", cfg.Type)
	}
	return builder(ctx, cfg, log)
}

// BuildAll instantiates enabled publishers for cfgs. When one fails, the
// publishers already built are closed before the error is returned.
func BuildAll(ctx context.Context, reg *Registry, cfgs []PublisherConfig, log Logger) ([]Publisher, error) {
	if reg == nil || len(cfgs) == 0 {
		return nil, nil
	}

	var pubs []Publisher
	for _, cfg := range cfgs {
		if !cfg.EnabledValue() {
			continue
		}
		pub, err := reg.Build(ctx, cfg, log)
		if err != nil {
			return nil, fmt.Errorf("build publisher %q: %w", cfg.ID, errors.Join(err, closeAll(pubs)))
		}
		pubs = append(pubs, pub)
	}
	return pubs, nil
}
