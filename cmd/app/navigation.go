package main

import (
	"context"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/rotator-admin/cmd/app/commands"
	adminUseCase "github.com/allisson/rotator-admin/internal/adminapi/usecase"
	"github.com/allisson/rotator-admin/internal/app"
	"github.com/allisson/rotator-admin/internal/config"
)

// withNavigation builds the container and runs action once the navigation guard admits routeName.
// Redirect notices and the sign-in prompt go to stderr so command output stays parseable.
func withNavigation(
	ctx context.Context,
	routeName string,
	action func(ctx context.Context, container *app.Container) error,
) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer commands.CloseContainer(container, logger)

	routeGuard, err := container.Guard()
	if err != nil {
		return err
	}
	session, err := container.Session()
	if err != nil {
		return err
	}
	api, err := container.AdminAPI()
	if err != nil {
		return err
	}

	promptIO := commands.IOTuple{Reader: os.Stdin, Writer: os.Stderr}
	login := func(ctx context.Context) error {
		return commands.RunLogin(ctx, api, session, logger, "", "", promptIO)
	}
	landing := func(ctx context.Context) error {
		return commands.RunDashboard(ctx, api, "text", commands.DefaultIO().Writer)
	}

	navigator := commands.NewNavigator(routeGuard, login, landing, logger, os.Stderr)
	return navigator.Navigate(ctx, routeName, func(ctx context.Context) error {
		return action(ctx, container)
	})
}

// adminDeps carries what an admin-surface action needs.
type adminDeps struct {
	container *app.Container
	api       adminUseCase.API
	writer    io.Writer
}

// adminAction wraps run in navigation for routeName and resolves the admin API.
func adminAction(
	routeName string,
	run func(ctx context.Context, cmd *cli.Command, deps adminDeps) error,
) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		return withNavigation(ctx, routeName, func(ctx context.Context, container *app.Container) error {
			api, err := container.AdminAPI()
			if err != nil {
				return err
			}
			return run(ctx, cmd, adminDeps{
				container: container,
				api:       api,
				writer:    commands.DefaultIO().Writer,
			})
		})
	}
}
