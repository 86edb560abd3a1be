package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/rotator-admin/cmd/app/commands"
	"github.com/allisson/rotator-admin/internal/app"
	"github.com/allisson/rotator-admin/internal/config"
	"github.com/allisson/rotator-admin/internal/guard"
	"github.com/allisson/rotator-admin/internal/locale"
)

func getSessionCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "login",
			Usage: "Sign in and store the session credential",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "username",
					Aliases: []string{"u"},
					Usage:   "Admin username (prompted when omitted)",
				},
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Sources: cli.EnvVars("ADMIN_PASSWORD"),
					Usage:   "Admin password (prompted when omitted)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withNavigation(ctx, guard.RouteLogin, func(ctx context.Context, container *app.Container) error {
					session, err := container.Session()
					if err != nil {
						return err
					}
					api, err := container.AdminAPI()
					if err != nil {
						return err
					}
					return commands.RunLogin(
						ctx,
						api,
						session,
						container.Logger(),
						cmd.String("username"),
						cmd.String("password"),
						commands.DefaultIO(),
					)
				})
			},
		},
		{
			Name:  "logout",
			Usage: "Clear the session credential",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withNavigation(ctx, guard.RouteLogout, func(ctx context.Context, container *app.Container) error {
					session, err := container.Session()
					if err != nil {
						return err
					}
					return commands.RunLogout(ctx, session, container.Logger(), commands.DefaultIO().Writer)
				})
			},
		},
		{
			Name:  "status",
			Usage: "Show the session state and the configured backend",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer commands.CloseContainer(container, container.Logger())

				session, err := container.Session()
				if err != nil {
					return err
				}
				store, err := container.SessionStore()
				if err != nil {
					return err
				}

				info := commands.StatusInfo{
					Locale:    locale.Load(ctx, store).String(),
					APIBase:   cfg.APIBaseURL,
					AdminPath: cfg.APIAdminPrefix,
				}
				return commands.RunStatus(ctx, session, info, cmd.String("format"), commands.DefaultIO().Writer)
			},
		},
		{
			Name:  "dashboard",
			Usage: "Show a summary of configs and keys",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withNavigation(ctx, guard.RouteDashboard, func(ctx context.Context, container *app.Container) error {
					api, err := container.AdminAPI()
					if err != nil {
						return err
					}
					return commands.RunDashboard(ctx, api, cmd.String("format"), commands.DefaultIO().Writer)
				})
			},
		},
		{
			Name:  "locale",
			Usage: "Show or change the UI locale",
			Commands: []*cli.Command{
				{
					Name:  "get",
					Usage: "Show the selected locale",
					Flags: []cli.Flag{formatFlag()},
					Action: func(ctx context.Context, cmd *cli.Command) error {
						return withNavigation(ctx, guard.RouteLocale, func(ctx context.Context, container *app.Container) error {
							store, err := container.SessionStore()
							if err != nil {
								return err
							}
							return commands.RunLocaleGet(ctx, store, cmd.String("format"), commands.DefaultIO().Writer)
						})
					},
				},
				{
					Name:      "set",
					Usage:     "Select the UI locale (zh-CN or en)",
					ArgsUsage: "<locale>",
					Action: func(ctx context.Context, cmd *cli.Command) error {
						return withNavigation(ctx, guard.RouteLocale, func(ctx context.Context, container *app.Container) error {
							store, err := container.SessionStore()
							if err != nil {
								return err
							}
							return commands.RunLocaleSet(
								ctx,
								store,
								container.Logger(),
								cmd.Args().First(),
								commands.DefaultIO().Writer,
							)
						})
					},
				},
			},
		},
	}
}
