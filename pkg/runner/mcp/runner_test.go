package mcp

import (
	"context"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestRunnerServesMetrics(t *testing.T) {
	svc, _ := newService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listening := make(chan string, 1)
	r := Runner{
		Service:        svc,
		Transport:      TransportHTTP,
		HTTPListenAddr: "127.0.0.1:0",
		MetricsPath:    "/metrics",
	}
	r.OnHTTPListening = func(a net.Addr) { listening <- r.URL(a) }

	done := make(chan error, 1)
	go func() { done <- r.Do(ctx) }()

	var url string
	select {
	case url = <-listening:
	case err := <-done:
		t.Fatalf("runner exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("runner never listened")
	}
	if !strings.HasSuffix(url, "/mcp") || !strings.HasPrefix(url, "http://127.0.0.1:") {
		t.Fatalf("unexpected url %q", url)
	}

	resp, err := http.Get(strings.TrimSuffix(url, "/mcp") + "/metrics")
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("metrics status %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("runner: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not stop")
	}
}

func TestRunnerRequiresService(t *testing.T) {
	if err := (Runner{}).Do(context.Background()); err == nil {
		t.Fatal("expected error without a service")
	}
}

func TestRunnerURL(t *testing.T) {
	r := Runner{HTTPEndpointPath: "tools", HTTPServerCert: "c", HTTPServerKey: "k"}
	got := r.URL(&net.TCPAddr{IP: net.IPv6unspecified, Port: 9000})
	if got != "https://127.0.0.1:9000/tools" {
		t.Fatalf("URL = %q", got)
	}
}
