package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Transport selects the mechanism used to expose the MCP server.
type Transport string

const (
	// TransportHTTP serves MCP via the streamable HTTP transport.
	TransportHTTP Transport = "http"
	// TransportStdio serves MCP over stdio.
	TransportStdio Transport = "stdio"
)

const (
	defaultListenAddr   = "127.0.0.1:8080"
	defaultEndpointPath = "/mcp"
	shutdownGrace       = 5 * time.Second
)

// Runner coordinates MCP server startup.
type Runner struct {
	Service *Service
	Name    string
	Version string
	Log     zerolog.Logger

	Transport        Transport
	HTTPListenAddr   string
	HTTPEndpointPath string
	// MetricsPath serves the client request metrics next to the MCP
	// endpoint. Empty disables it.
	MetricsPath     string
	OnHTTPListening func(net.Addr)
	HTTPServerCert  string
	HTTPServerKey   string
}

// Do executes the runner.
func (r Runner) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("mcp runner requires a service")
	}
	srv := r.newServer()

	switch t := r.Transport; t {
	case "", TransportHTTP:
		return r.serveHTTP(ctx, srv)
	case TransportStdio:
		r.Log.Debug().Msg("Serving MCP over stdio")
		return server.ServeStdio(srv)
	default:
		return fmt.Errorf("unknown MCP transport %q", t)
	}
}

func (r Runner) newServer() *server.MCPServer {
	name := r.Name
	if name == "" {
		name = "daybook"
	}
	version := r.Version
	if version == "" {
		version = "dev"
	}
	srv := server.NewMCPServer(
		fmt.Sprintf("%s MCP", name),
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Manage daybook tasks and reminders, and write or review journal entries with their sentiment, via MCP."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)
	registerResources(srv, r.Service)
	registerTools(srv, r.Service)
	return srv
}

func (r Runner) endpointPath() string {
	path := r.HTTPEndpointPath
	if path == "" {
		return defaultEndpointPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

func (r Runner) tls() bool {
	return r.HTTPServerCert != "" && r.HTTPServerKey != ""
}

// URL is the address clients should use once the server listens on a.
// Unspecified hosts are shown as loopback.
func (r Runner) URL(a net.Addr) string {
	scheme := "http"
	if r.tls() {
		scheme = "https"
	}
	host, port := "127.0.0.1", ""
	if tcp, ok := a.(*net.TCPAddr); ok {
		port = fmt.Sprint(tcp.Port)
		if tcp.IP != nil && !tcp.IP.IsUnspecified() {
			host = tcp.IP.String()
		}
	} else if h, p, err := net.SplitHostPort(a.String()); err == nil {
		host, port = h, p
	}
	return fmt.Sprintf("%s://%s%s", scheme, net.JoinHostPort(host, port), r.endpointPath())
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer) error {
	if (r.HTTPServerCert == "") != (r.HTTPServerKey == "") {
		return errors.New("both http tls cert and key must be provided")
	}

	path := r.endpointPath()
	mux := http.NewServeMux()
	mux.Handle(path, server.NewStreamableHTTPServer(srv))
	if r.MetricsPath != "" {
		mux.Handle(r.MetricsPath, promhttp.Handler())
	}
	httpSrv := &http.Server{Handler: mux}

	addr := r.HTTPListenAddr
	if addr == "" {
		addr = defaultListenAddr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	r.Log.Info().Str("addr", ln.Addr().String()).Str("path", path).Msg("Serving MCP over HTTP")
	if r.OnHTTPListening != nil {
		r.OnHTTPListening(ln.Addr())
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	if r.tls() {
		err = httpSrv.ServeTLS(ln, r.HTTPServerCert, r.HTTPServerKey)
	} else {
		err = httpSrv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
