package publishers

import (
	"context"
	"errors"
	"testing"
)

type stubPublisher struct {
	id    string
	typ   string
	err   error
	calls int
}

func (s *stubPublisher) ID() string   { return s.id }
func (s *stubPublisher) Type() string { return s.typ }
func (s *stubPublisher) Publish(context.Context, Event) error {
	s.calls++
	return s.err
}

func TestFanoutPublishAggregatesErrors(t *testing.T) {
	fanout := NewFanout([]Publisher{
		&stubPublisher{id: "ok", typ: "http"},
		&stubPublisher{id: "bad", typ: "http", err: errors.New("failed")},
	})

	count, err := fanout.Publish(context.Background(), Event{})
	if count != 1 {
		t.Fatalf("expected 1 success, got %d", count)
	}
	if err == nil {
		t.Fatalf("expected aggregated error")
	}
}

func TestBuildAllWithDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	pubs, err := BuildAll(context.Background(), reg, []PublisherConfig{
		{ID: "http", Type: TypeHTTP, HTTP: &HTTPPublisherConfig{URL: "https://example.com"}},
	}, nil)
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}
	if len(pubs) != 1 {
		t.Fatalf("expected 1 publisher, got %d", len(pubs))
	}
}

type closingPublisher struct {
	stubPublisher
	closed bool
}

func (c *closingPublisher) Close() error {
	c.closed = true
	return nil
}

func TestFanoutCloseReleasesClosers(t *testing.T) {
	closer := &closingPublisher{stubPublisher: stubPublisher{id: "c", typ: TypeGCPPubSub}}
	fanout := NewFanout([]Publisher{nil, &stubPublisher{id: "plain"}, closer})

	if fanout.Size() != 2 {
		t.Fatalf("nil publishers must be skipped, size=%d", fanout.Size())
	}
	if err := fanout.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !closer.closed {
		t.Fatalf("closer was not closed")
	}
}

func TestNilFanoutIsNoop(t *testing.T) {
	var f *Fanout
	if n, err := f.Publish(context.Background(), Event{}); n != 0 || err != nil {
		t.Fatalf("nil fanout publish = %d, %v", n, err)
	}
}

func TestBuildAllClosesBuiltPublishersOnFailure(t *testing.T) {
	built := &closingPublisher{stubPublisher: stubPublisher{id: "first", typ: "stub"}}
	reg := NewRegistry(map[string]Builder{
		"stub": func(context.Context, PublisherConfig, Logger) (Publisher, error) { return built, nil },
		"bad": func(context.Context, PublisherConfig, Logger) (Publisher, error) {
			return nil, errors.New("no credentials")
		},
	})

	disabled := false
	pubs, err := BuildAll(context.Background(), reg, []PublisherConfig{
		{ID: "first", Type: "stub"},
		{ID: "off", Type: "bad", Enabled: &disabled},
		{ID: "second", Type: "bad"},
	}, nil)
	if err == nil || pubs != nil {
		t.Fatalf("expected build failure, got %v, %v", pubs, err)
	}
	if !built.closed {
		t.Fatalf("already built publishers must be closed")
	}
}

func TestRegistryRejectsUnknownType(t *testing.T) {
	reg := NewRegistry(map[string]Builder{" STUB ": func(context.Context, PublisherConfig, Logger) (Publisher, error) {
		return &stubPublisher{id: "s"}, nil
	}})

	if _, err := reg.Build(context.Background(), PublisherConfig{ID: "s", Type: "stub"}, nil); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, err := reg.Build(context.Background(), PublisherConfig{ID: "k", Type: "kafka"}, nil); err == nil {
		t.Fatal("expected error for unregistered type")
	}
}
