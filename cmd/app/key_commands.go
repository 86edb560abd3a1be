package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/rotator-admin/cmd/app/commands"
	adminDomain "github.com/allisson/rotator-admin/internal/adminapi/domain"
	"github.com/allisson/rotator-admin/internal/guard"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "keys",
			Usage: "Manage the rotating API keys of a config",
			Commands: []*cli.Command{
				{
					Name:      "list",
					Usage:     "List the keys of a config",
					ArgsUsage: "<config-id>",
					Flags:     []cli.Flag{formatFlag()},
					Action: adminAction(guard.RouteKeys, func(ctx context.Context, cmd *cli.Command, deps adminDeps) error {
						configID, err := commands.ParseID(cmd.Args().First())
						if err != nil {
							return err
						}
						return commands.RunListKeys(ctx, deps.api, configID, cmd.String("format"), deps.writer)
					}),
				},
				{
					Name:      "add",
					Usage:     "Add a key to a config",
					ArgsUsage: "<config-id>",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:     "key",
							Aliases:  []string{"k"},
							Required: true,
							Usage:    "Key value",
						},
						activeFlag(),
						formatFlag(),
					},
					Action: adminAction(guard.RouteKeys, func(ctx context.Context, cmd *cli.Command, deps adminDeps) error {
						configID, err := commands.ParseID(cmd.Args().First())
						if err != nil {
							return err
						}
						input := adminDomain.APIKeyInput{KeyValue: cmd.String("key"), IsActive: cmd.Bool("active")}
						return commands.RunAddKey(
							ctx,
							deps.api,
							deps.container.Logger(),
							configID,
							input,
							cmd.String("format"),
							deps.writer,
						)
					}),
				},
				{
					Name:      "status",
					Usage:     "Enable or disable a key",
					ArgsUsage: "<key-id>",
					Flags:     []cli.Flag{activeFlag()},
					Action: adminAction(guard.RouteKeys, func(ctx context.Context, cmd *cli.Command, deps adminDeps) error {
						keyID, err := commands.ParseID(cmd.Args().First())
						if err != nil {
							return err
						}
						return commands.RunKeyStatus(ctx, deps.api, deps.container.Logger(), keyID, cmd.Bool("active"), deps.writer)
					}),
				},
				{
					Name:      "delete",
					Usage:     "Delete a key",
					ArgsUsage: "<key-id>",
					Action: adminAction(guard.RouteKeys, func(ctx context.Context, cmd *cli.Command, deps adminDeps) error {
						keyID, err := commands.ParseID(cmd.Args().First())
						if err != nil {
							return err
						}
						return commands.RunDeleteKey(ctx, deps.api, deps.container.Logger(), keyID, deps.writer)
					}),
				},
				{
					Name:      "import",
					Usage:     "Add one key per line from a file",
					ArgsUsage: "<config-id>",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:    "file",
							Aliases: []string{"i"},
							Value:   "-",
							Usage:   "File with one key per line ('-' reads stdin)",
						},
						&cli.IntFlag{
							Name:    "concurrency",
							Aliases: []string{"c"},
							Usage:   "Maximum requests in flight (defaults to IMPORT_CONCURRENCY)",
						},
						activeFlag(),
						formatFlag(),
					},
					Action: adminAction(guard.RouteKeys, func(ctx context.Context, cmd *cli.Command, deps adminDeps) error {
						configID, err := commands.ParseID(cmd.Args().First())
						if err != nil {
							return err
						}

						source, closeSource, err := openSource(cmd.String("file"))
						if err != nil {
							return err
						}
						defer closeSource()

						concurrency := int(cmd.Int("concurrency"))
						if concurrency <= 0 {
							concurrency = deps.container.Config().ImportConcurrency
						}

						return commands.RunImportKeys(
							ctx,
							deps.api,
							deps.container.Logger(),
							configID,
							source,
							cmd.Bool("active"),
							concurrency,
							cmd.String("format"),
							deps.writer,
						)
					}),
				},
			},
		},
	}
}

// openSource opens path for reading, or stdin for "-".
func openSource(path string) (io.Reader, func(), error) {
	if path == "-" || path == "" {
		return os.Stdin, func() {}, nil
	}

	f, err := os.Open(path) //nolint:gosec // path chosen by the operator
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open key file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
