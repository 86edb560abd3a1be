package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"

	"github.com/allisson/rotator-admin/cmd/app/commands"
	"github.com/allisson/rotator-admin/internal/app"
	"github.com/allisson/rotator-admin/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "dev-proxy",
			Usage: "Start the development proxy forwarding admin and LLM routes to the backend",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()

				// Set Gin mode based on log level
				gin.SetMode(cfg.GetGinMode())

				container := app.NewContainer(cfg)
				logger := container.Logger()
				defer commands.CloseContainer(container, logger)

				server, err := container.HTTPServer()
				if err != nil {
					return fmt.Errorf("failed to initialize HTTP server: %w", err)
				}
				servers := []commands.NamedServer{{Name: "proxy", Server: server}}

				metricsServer, err := container.MetricsServer()
				if err != nil {
					return fmt.Errorf("failed to initialize metrics server: %w", err)
				}
				if metricsServer != nil {
					servers = append(servers, commands.NamedServer{Name: "metrics", Server: metricsServer})
				}

				return commands.RunDevProxy(ctx, logger, version, cfg.HTTPTimeout, servers...)
			},
		},
	}
}
