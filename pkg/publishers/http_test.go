package publishers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type capturedRequest struct {
	method  string
	headers http.Header
	body    []byte
}

func newCaptureServer(t *testing.T, status int) (*httptest.Server, <-chan capturedRequest) {
	t.Helper()
	ch := make(chan capturedRequest, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		ch <- capturedRequest{method: r.Method, headers: r.Header.Clone(), body: body}
		if status >= 400 {
			http.Error(w, "nope", status)
			return
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, ch
}

func webhookConfig(url string, headers map[string]string) PublisherConfig {
	return sanitizePublisherConfig(PublisherConfig{
		ID:   "hook",
		Type: TypeHTTP,
		HTTP: &HTTPPublisherConfig{URL: url, Headers: headers, TimeoutSeconds: 2},
	})
}

func TestHTTPPublisherSuccess(t *testing.T) {
	srv, reqs := newCaptureServer(t, http.StatusAccepted)

	pub, err := newHTTPPublisher(context.Background(), webhookConfig(srv.URL, map[string]string{"X-Test": "1"}), nil)
	if err != nil {
		t.Fatalf("newHTTPPublisher: %v", err)
	}

	evt := sampleEvent()
	if err := pub.Publish(context.Background(), evt); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	got := <-reqs
	if got.method != http.MethodPost {
		t.Fatalf("expected default POST, got %s", got.method)
	}
	if got.headers.Get("X-Test") != "1" {
		t.Fatalf("custom header missing: %v", got.headers)
	}
	if got.headers.Get("X-Routing-Label") != "True" || got.headers.Get("X-Event-ID") != evt.ID {
		t.Fatalf("routing headers wrong: %v", got.headers)
	}

	var decoded Event
	if err := json.Unmarshal(got.body, &decoded); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if decoded.ID != evt.ID || decoded.Result.InputName2 != "JOHNSMITH123" {
		t.Fatalf("unexpected body %+v", decoded)
	}
}

func TestHTTPPublisherErrorOnNon2xx(t *testing.T) {
	srv, _ := newCaptureServer(t, http.StatusBadRequest)

	pub, err := newHTTPPublisher(context.Background(), webhookConfig(srv.URL, nil), nil)
	if err != nil {
		t.Fatalf("newHTTPPublisher: %v", err)
	}

	err = pub.Publish(context.Background(), sampleEvent())
	if err == nil || !strings.Contains(err.Error(), "status 400: nope") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestHTTPPublisherRequiresConfig(t *testing.T) {
	if _, err := newHTTPPublisher(context.Background(), PublisherConfig{ID: "x", Type: TypeHTTP}, nil); err == nil {
		t.Fatal("expected error without http block")
	}
}
