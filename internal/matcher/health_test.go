package matcher

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestHealthHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != HealthPath {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	status := c.Health(context.Background())
	if status.State != Healthy {
		t.Fatalf("State = %s", status.State)
	}
}

func TestHealthUnhealthy(t *testing.T) {
	fake := &fakeHTTPClient{resp: fakeResponse{statusCode: http.StatusServiceUnavailable}}
	c := newTestClient(t, fake)

	status := c.Health(context.Background())
	if status.State != Unhealthy || status.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("unexpected status %+v", status)
	}
	if fake.url != "http://names.test/health" {
		t.Fatalf("url = %q", fake.url)
	}
}

func TestHealthUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()

	c, err := New(Options{BaseURL: base})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if status := c.Health(context.Background()); status.State != Unreachable {
		t.Fatalf("State = %s (%s)", status.State, status.Message)
	}
}

func TestHealthFailed(t *testing.T) {
	c := newTestClient(t, &fakeHTTPClient{err: errors.New("tls handshake exploded")})
	status := c.Health(context.Background())
	if status.State != Failed || status.Message == "" {
		t.Fatalf("unexpected status %+v", status)
	}
}

func TestHealthUsesTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL, HealthTimeout: 50 * time.Millisecond})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if status := c.Health(context.Background()); status.State != Failed {
		t.Fatalf("State = %s want failed", status.State)
	}
}

func TestHealthDialTimeoutIsUnreachable(t *testing.T) {
	dialErr := &url.Error{Op: "Get", URL: "http://names.test/health", Err: &net.OpError{Op: "dial", Net: "tcp", Err: timeoutError{}}}
	c := newTestClient(t, &fakeHTTPClient{err: dialErr})

	if status := c.Health(context.Background()); status.State != Unreachable {
		t.Fatalf("State = %s want unreachable", status.State)
	}
}
