package commands

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	var (
		transport   string
		httpHost    string
		httpPort    int
		httpPath    string
		httpTLSCert string
		httpTLSKey  string
		metricsPath string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: `Launch an MCP server that exposes tasks, reminders and the journal
through the Model Context Protocol. One task list and one journal are kept
for the life of the server.`,
		Example: `
daybook mcp --transport stdio
daybook mcp --http-port 0
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}
			svc := mcp.NewService(s.tasks, s.journal, s.log)
			svc.JournalLimit = s.cfg.JournalLimit()

			r := mcp.Runner{
				Service:          svc,
				Name:             "daybook",
				Version:          version,
				Log:              s.log,
				HTTPEndpointPath: strings.TrimSpace(httpPath),
				MetricsPath:      strings.TrimSpace(metricsPath),
				HTTPServerCert:   strings.TrimSpace(httpTLSCert),
				HTTPServerKey:    strings.TrimSpace(httpTLSKey),
			}

			switch mcp.Transport(strings.ToLower(strings.TrimSpace(transport))) {
			case "", mcp.TransportHTTP:
				if httpPort < 0 || httpPort > 65535 {
					return fmt.Errorf("invalid http-port %d", httpPort)
				}
				host := strings.TrimSpace(httpHost)
				if host == "" {
					host = "127.0.0.1"
				}
				r.Transport = mcp.TransportHTTP
				r.HTTPListenAddr = net.JoinHostPort(host, strconv.Itoa(httpPort))
				r.OnHTTPListening = func(a net.Addr) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "MCP HTTP server listening on %s\n", r.URL(a))
				}
			case mcp.TransportStdio:
				r.Transport = mcp.TransportStdio
			default:
				return fmt.Errorf("unsupported transport %q (expected http or stdio)", transport)
			}

			return r.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&transport, "transport", string(mcp.TransportHTTP), "transport to use: http or stdio")
	cmd.Flags().StringVar(&httpHost, "http-host", "127.0.0.1", "host/interface for HTTP transport")
	cmd.Flags().IntVar(&httpPort, "http-port", 8080, "port for HTTP transport (use 0 for random)")
	cmd.Flags().StringVar(&httpPath, "http-path", "/mcp", "HTTP endpoint path")
	cmd.Flags().StringVar(&httpTLSCert, "http-tls-cert", "", "TLS certificate file for HTTPS")
	cmd.Flags().StringVar(&httpTLSKey, "http-tls-key", "", "TLS private key file for HTTPS")
	cmd.Flags().StringVar(&metricsPath, "metrics-path", "/metrics", "HTTP path for Prometheus metrics, empty to disable")

	topLevel.AddCommand(cmd)
}
