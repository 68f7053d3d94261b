package metrics

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestServerExposesRegistry(t *testing.T) {
	registry := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "adenine_test_calls_total",
		Help: "Calls observed by the test.",
	})
	registry.MustRegister(counter)
	counter.Add(3)

	srv, err := Listen("127.0.0.1:0", registry, nil)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	resp, err := http.Get("http://" + srv.Addr() + Path)
	if err != nil {
		cancel()
		t.Fatalf("get metrics: %v", err)
	}
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		cancel()
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), "adenine_test_calls_total 3") {
		cancel()
		t.Fatalf("metrics body missing counter:\n%s", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for metrics shutdown")
	}
}

func TestListenRejectsBadAddress(t *testing.T) {
	if _, err := Listen("256.0.0.1:bad", nil, nil); err == nil {
		t.Fatal("expected listen error")
	}
}

func TestNilServer(t *testing.T) {
	var srv *Server
	if srv.Addr() != "" {
		t.Fatal("expected empty addr")
	}
	if err := srv.Serve(context.Background()); err == nil {
		t.Fatal("expected error for nil server")
	}
}
