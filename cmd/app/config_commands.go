package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/rotator-admin/cmd/app/commands"
	adminDomain "github.com/allisson/rotator-admin/internal/adminapi/domain"
	"github.com/allisson/rotator-admin/internal/guard"
)

func getConfigCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "configs",
			Usage: "Manage proxy configs",
			Commands: []*cli.Command{
				{
					Name:  "list",
					Usage: "List all configs",
					Flags: []cli.Flag{formatFlag()},
					Action: adminAction(guard.RouteConfigs, func(ctx context.Context, cmd *cli.Command, deps adminDeps) error {
						return commands.RunListConfigs(ctx, deps.api, cmd.String("format"), deps.writer)
					}),
				},
				{
					Name:      "get",
					Usage:     "Show a config",
					ArgsUsage: "<id>",
					Flags:     []cli.Flag{formatFlag()},
					Action: adminAction(guard.RouteConfigs, func(ctx context.Context, cmd *cli.Command, deps adminDeps) error {
						id, err := commands.ParseID(cmd.Args().First())
						if err != nil {
							return err
						}
						return commands.RunGetConfig(ctx, deps.api, id, cmd.String("format"), deps.writer)
					}),
				},
				{
					Name:  "create",
					Usage: "Create a generic proxy config",
					Flags: append(genericConfigFlags(), formatFlag()),
					Action: adminAction(guard.RouteConfigs, func(ctx context.Context, cmd *cli.Command, deps adminDeps) error {
						input := genericConfigInput(cmd)
						return commands.RunSaveConfig(ctx, deps.api, deps.container.Logger(), 0, input, cmd.String("format"), deps.writer)
					}),
				},
				{
					Name:      "update",
					Usage:     "Replace a generic proxy config",
					ArgsUsage: "<id>",
					Flags:     append(genericConfigFlags(), formatFlag()),
					Action: adminAction(guard.RouteConfigs, func(ctx context.Context, cmd *cli.Command, deps adminDeps) error {
						id, err := commands.ParseID(cmd.Args().First())
						if err != nil {
							return err
						}
						input := genericConfigInput(cmd)
						return commands.RunSaveConfig(ctx, deps.api, deps.container.Logger(), id, input, cmd.String("format"), deps.writer)
					}),
				},
				{
					Name:      "status",
					Usage:     "Enable or disable a config",
					ArgsUsage: "<id>",
					Flags:     []cli.Flag{activeFlag()},
					Action: adminAction(guard.RouteConfigs, func(ctx context.Context, cmd *cli.Command, deps adminDeps) error {
						id, err := commands.ParseID(cmd.Args().First())
						if err != nil {
							return err
						}
						return commands.RunConfigStatus(ctx, deps.api, deps.container.Logger(), id, cmd.Bool("active"), deps.writer)
					}),
				},
				{
					Name:      "delete",
					Usage:     "Delete a config and its keys",
					ArgsUsage: "<id>",
					Action: adminAction(guard.RouteConfigs, func(ctx context.Context, cmd *cli.Command, deps adminDeps) error {
						id, err := commands.ParseID(cmd.Args().First())
						if err != nil {
							return err
						}
						return commands.RunDeleteConfig(ctx, deps.api, deps.container.Logger(), id, deps.writer)
					}),
				},
			},
		},
		{
			Name:  "llm",
			Usage: "Manage LLM configs",
			Commands: []*cli.Command{
				{
					Name:  "create",
					Usage: "Create an LLM config",
					Flags: append(llmConfigFlags(), formatFlag()),
					Action: adminAction(guard.RouteConfigs, func(ctx context.Context, cmd *cli.Command, deps adminDeps) error {
						input := llmConfigInput(cmd)
						return commands.RunSaveConfig(ctx, deps.api, deps.container.Logger(), 0, input, cmd.String("format"), deps.writer)
					}),
				},
				{
					Name:      "update",
					Usage:     "Replace an LLM config",
					ArgsUsage: "<id>",
					Flags:     append(llmConfigFlags(), formatFlag()),
					Action: adminAction(guard.RouteConfigs, func(ctx context.Context, cmd *cli.Command, deps adminDeps) error {
						id, err := commands.ParseID(cmd.Args().First())
						if err != nil {
							return err
						}
						input := llmConfigInput(cmd)
						return commands.RunSaveConfig(ctx, deps.api, deps.container.Logger(), id, input, cmd.String("format"), deps.writer)
					}),
				},
			},
		},
		{
			Name:  "app-config",
			Usage: "Show the backend application settings",
			Flags: []cli.Flag{formatFlag()},
			Action: adminAction(guard.RouteAppConfig, func(ctx context.Context, cmd *cli.Command, deps adminDeps) error {
				return commands.RunAppConfig(ctx, deps.api, cmd.String("format"), deps.writer)
			}),
		},
	}
}

func commonConfigFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "name",
			Aliases:  []string{"n"},
			Required: true,
			Usage:    "Display name",
		},
		&cli.StringFlag{
			Name:     "slug",
			Aliases:  []string{"s"},
			Required: true,
			Usage:    "Path segment the proxy is served under",
		},
		activeFlag(),
	}
}

func genericConfigFlags() []cli.Flag {
	return append(commonConfigFlags(),
		&cli.StringFlag{
			Name:     "target-url",
			Aliases:  []string{"t"},
			Required: true,
			Usage:    "Upstream URL requests are forwarded to",
		},
		&cli.StringFlag{
			Name:    "method",
			Aliases: []string{"m"},
			Value:   "GET",
			Usage:   "Upstream HTTP method",
		},
		&cli.StringFlag{
			Name:  "api-key-location",
			Usage: "Where the rotating key is injected: 'header' or 'query'",
		},
		&cli.StringFlag{
			Name:  "api-key-name",
			Usage: "Header or query parameter name carrying the key",
		},
	)
}

func llmConfigFlags() []cli.Flag {
	return append(commonConfigFlags(),
		&cli.StringFlag{
			Name:     "target-base-url",
			Aliases:  []string{"t"},
			Required: true,
			Usage:    "Base URL of the upstream LLM API",
		},
		&cli.StringFlag{
			Name:  "api-format",
			Usage: "API format spoken by the upstream",
		},
		&cli.StringFlag{
			Name:  "output-format",
			Usage: "API format exposed to clients",
		},
	)
}

func activeFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "active",
		Aliases: []string{"a"},
		Value:   true,
		Usage:   "Whether the resource is active (use --active=false to disable)",
	}
}

func genericConfigInput(cmd *cli.Command) adminDomain.ProxyConfigInput {
	method := cmd.String("method")
	targetURL := cmd.String("target-url")
	return adminDomain.ProxyConfigInput{
		Name:           cmd.String("name"),
		Slug:           cmd.String("slug"),
		ConfigType:     adminDomain.ConfigTypeGeneric,
		IsActive:       cmd.Bool("active"),
		Method:         &method,
		TargetURL:      &targetURL,
		APIKeyLocation: optionalString(cmd, "api-key-location"),
		APIKeyName:     optionalString(cmd, "api-key-name"),
	}
}

func llmConfigInput(cmd *cli.Command) adminDomain.ProxyConfigInput {
	targetBaseURL := cmd.String("target-base-url")
	return adminDomain.ProxyConfigInput{
		Name:          cmd.String("name"),
		Slug:          cmd.String("slug"),
		ConfigType:    adminDomain.ConfigTypeLLM,
		IsActive:      cmd.Bool("active"),
		TargetBaseURL: &targetBaseURL,
		APIFormat:     optionalString(cmd, "api-format"),
		OutputFormat:  optionalString(cmd, "output-format"),
	}
}

// optionalString returns nil for flags the user did not set.
func optionalString(cmd *cli.Command, name string) *string {
	if !cmd.IsSet(name) {
		return nil
	}
	value := cmd.String(name)
	return &value
}
