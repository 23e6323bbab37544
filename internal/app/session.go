package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/samvad-hq/namematch-console/internal/config"
	"github.com/samvad-hq/namematch-console/internal/domain"
	"github.com/samvad-hq/namematch-console/internal/export"
	"github.com/samvad-hq/namematch-console/internal/history"
	"github.com/samvad-hq/namematch-console/internal/logger"
	"github.com/samvad-hq/namematch-console/internal/matcher"
	"github.com/samvad-hq/namematch-console/internal/storage"
	"github.com/samvad-hq/namematch-console/pkg/httpclient"
	"github.com/samvad-hq/namematch-console/pkg/publishers"
)

// Session is the console runtime. It owns the matcher client for the current
// base URL, the comparison history and the optional result exporter.
type Session struct {
	mu         sync.RWMutex
	client     *matcher.Client
	clientOpts matcher.Options

	cfg      *config.Config
	history  *history.Buffer
	exporter *export.Service
	fanout   *publishers.Fanout
	store    storage.Store
	log      logger.Logger
}

// Option customizes a Session.
type Option func(*sessionOptions)

type sessionOptions struct {
	http      httpclient.Client
	now       func() time.Time
	publisher export.EventPublisher
}

// WithHTTPClient replaces the transport used for comparisons and health checks.
func WithHTTPClient(c httpclient.Client) Option {
	return func(o *sessionOptions) { o.http = c }
}

// WithClock replaces the clock used for timestamps and latency.
func WithClock(now func() time.Time) Option {
	return func(o *sessionOptions) { o.now = now }
}

// WithPublisher exports results to pub instead of the publishers file.
func WithPublisher(pub export.EventPublisher) Option {
	return func(o *sessionOptions) { o.publisher = pub }
}

// NewSession builds a session from config.
func NewSession(ctx context.Context, cfg *config.Config, log logger.Logger, opts ...Option) (*Session, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	log = logger.Ensure(log)

	var so sessionOptions
	for _, opt := range opts {
		opt(&so)
	}

	clientOpts := matcher.Options{
		BaseURL:        cfg.APIBaseURL,
		RequestTimeout: cfg.RequestTimeout,
		HealthTimeout:  cfg.HealthTimeout,
		HTTP:           so.http,
		Now:            so.now,
	}
	client, err := matcher.New(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("init matcher client: %w", err)
	}

	s := &Session{
		client:     client,
		clientOpts: clientOpts,
		cfg:        cfg,
		history:    history.New(cfg.HistoryCapacity),
		log:        log,
	}

	if err := s.initExporter(ctx, so.publisher); err != nil {
		_ = s.Close()
		return nil, err
	}

	log.DebugObj("session initialized", "session_config", map[string]any{
		"api_base_url":     client.BaseURL(),
		"history_capacity": s.history.Capacity(),
		"export_enabled":   s.exporter != nil,
	})
	return s, nil
}

// initExporter wires publishers and the dedupe store when export is configured.
func (s *Session) initExporter(ctx context.Context, pub export.EventPublisher) error {
	if pub == nil {
		if s.cfg.PublishersFile == "" {
			return nil
		}

		publisherReg, err := publishers.LoadRegistry(s.cfg.PublishersFile)
		if err != nil {
			return fmt.Errorf("load publishers registry: %w", err)
		}
		enabled := publisherReg.Enabled()
		if len(enabled) == 0 {
			s.log.WarnObj("no enabled publishers; export disabled", "publishers_file", s.cfg.PublishersFile)
			return nil
		}

		pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, s.log)
		if err != nil {
			return fmt.Errorf("build publishers: %w", err)
		}
		s.fanout = publishers.NewFanout(pubClients)
		pub = s.fanout

		summaries := make([]map[string]string, 0, len(enabled))
		for _, c := range enabled {
			summaries = append(summaries, map[string]string{"id": c.ID, "type": c.Type})
		}
		s.log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
			"count":      len(summaries),
			"publishers": summaries,
		})
	}

	store, err := storage.NewStore(s.cfg.StorageType, s.cfg.BBoltPath, storage.Options{
		EntryTTL:        s.cfg.DedupeTTL,
		CleanupInterval: s.cfg.StorageCleanupInterval,
	})
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	s.store = store
	s.log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     s.cfg.StorageType,
		"path":                     s.cfg.BBoltPath,
		"dedupe_ttl_seconds":       int(s.cfg.DedupeTTL.Seconds()),
		"cleanup_interval_seconds": int(s.cfg.StorageCleanupInterval.Seconds()),
	})

	s.exporter = export.NewService(pub, s.log, store)
	return nil
}

func (s *Session) current() *matcher.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client
}

// Compare runs a comparison and records successful results in history.
// Export failures are logged and never returned.
func (s *Session) Compare(ctx context.Context, name1, name2 string) (domain.ComparisonResult, error) {
	client := s.current()
	result, err := client.Compare(ctx, name1, name2)
	if err != nil {
		if !errors.Is(err, domain.ErrEmptyName) {
			s.log.WarnObj("comparison failed", "compare_error", map[string]any{
				"endpoint": client.Endpoint(),
				"kind":     matcher.KindOf(err),
				"error":    err.Error(),
			})
		}
		return domain.ComparisonResult{}, err
	}

	s.history.Record(result)
	s.log.DebugObj("comparison completed", "compare_result", map[string]any{
		"is_match":         result.IsMatch,
		"confidence_score": result.ConfidenceScore,
		"response_time_ms": result.ResponseTimeMs,
		"routing_label":    result.Route(),
	})

	if s.exporter != nil {
		if _, err := s.exporter.Export(ctx, client.Endpoint(), result); err != nil {
			s.log.ErrorObj("result export failed", "export_error", err.Error())
		}
	}
	return result, nil
}

// SetBaseURL points the session at a different API. The previous client stays
// in place when raw is invalid.
func (s *Session) SetBaseURL(raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	opts := s.clientOpts
	opts.BaseURL = raw
	client, err := matcher.New(opts)
	if err != nil {
		return err
	}
	s.client = client
	s.clientOpts = opts
	s.log.InfoObj("api base url changed", "api_base_url", client.BaseURL())
	return nil
}

// BaseURL returns the current normalized base URL.
func (s *Session) BaseURL() string { return s.current().BaseURL() }

// Endpoint returns the comparison URL for the current base URL.
func (s *Session) Endpoint() string { return s.current().Endpoint() }

// Health checks the current API.
func (s *Session) Health(ctx context.Context) matcher.HealthStatus {
	return s.current().Health(ctx)
}

// History returns recorded results, newest first.
func (s *Session) History() []domain.ComparisonResult { return s.history.List() }

// ClearHistory drops every recorded result.
func (s *Session) ClearHistory() { s.history.Clear() }

// ExportEnabled reports whether results are forwarded to publishers.
func (s *Session) ExportEnabled() bool { return s.exporter != nil }

// Close releases publishers and the dedupe store.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.fanout != nil {
		if err := s.fanout.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.log.ErrorObj("storage close failed", "error", err.Error())
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
