// Package main provides the entry point for the admin client with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
)

// Build information. Populated at build-time via -ldflags.
var (
	version = "dev"
)

func main() {
	cmd := &cli.Command{
		Name:     "rotator-admin",
		Usage:    "Administration client for proxy configs, LLM configs and rotating API keys",
		Version:  version,
		Commands: getCommands(version),
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
