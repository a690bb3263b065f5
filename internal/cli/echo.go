package cli

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/BonEvil/DPSessionManager/bootstrap"
	"github.com/BonEvil/DPSessionManager/logger"
	"github.com/BonEvil/DPSessionManager/server"
)

type echoOptions struct {
	configPath  string
	addr        string
	contentType string
	status      int
}

func newEchoCommand() *cobra.Command {
	o := &echoOptions{}
	cmd := &cobra.Command{
		Use:   "echo",
		Short: "Run an HTTP server that echoes requests",
		Long: `Run an HTTP server that echoes requests back with a configurable
Content-Type and status. Useful for exercising descriptors locally.

Routes:
  /echo    JSON description of the request, or the raw body for non-JSON types
  /empty   empty body with the configured Content-Type
  /health  liveness

The response type and status can be overridden per request with the
content_type and status query parameters.

Example:
  dpsession echo --addr 127.0.0.1:8080 --content-type "text/html; charset=utf-8"`,
		Args: cobra.NoArgs,
		RunE: o.run,
	}

	f := cmd.Flags()
	f.StringVarP(&o.configPath, "config", "c", "", "Path to configuration file")
	f.StringVarP(&o.addr, "addr", "a", "", "Listen address host:port (default from config, 127.0.0.1 on an ephemeral port)")
	f.StringVar(&o.contentType, "content-type", "", "Content-Type declared on responses (\"none\" omits it)")
	f.IntVar(&o.status, "status", 0, "Response status code")
	return cmd
}

func (o *echoOptions) run(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return err
	}
	if o.addr != "" {
		host, port, err := splitAddr(o.addr)
		if err != nil {
			return err
		}
		cfg.Server.Host, cfg.Server.Port = host, port
	}
	if o.contentType != "" {
		cfg.Server.ContentType = o.contentType
	}
	if o.status != 0 {
		cfg.Server.Status = o.status
	}

	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}
	srv := server.New(cfg.Server, app.Logger.WithComponent("echo"))
	if err := app.RegisterComponent(server.NewComponent(srv)); err != nil {
		return err
	}
	app.OnStart(func(ctx context.Context) error {
		app.Logger.Info("Echo server listening", logger.Fields(
			"url", srv.URL(),
			"content_type", cfg.Server.ContentType,
		))
		return nil
	})
	return app.Run(cmd.Context())
}

// splitAddr parses host:port. An empty host listens on all interfaces.
func splitAddr(addr string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid --addr %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid --addr %q: port must be numeric", addr)
	}
	if host == "" {
		host = "0.0.0.0"
	}
	return host, port, nil
}
