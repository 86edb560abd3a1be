package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/allisson/rotator-admin/internal/gateway"
	"github.com/allisson/rotator-admin/internal/guard"
)

// maxNavigationHops bounds the redirects followed for a single command.
const maxNavigationHops = 3

// ErrNavigationLoop is returned when redirects do not settle on a route.
var ErrNavigationLoop = errors.New("navigation did not settle")

// RouteChecker evaluates a route transition against the current session.
type RouteChecker interface {
	Check(ctx context.Context, route guard.Route) guard.Decision
}

// Action is the work a command performs once its route is admitted.
type Action func(ctx context.Context) error

// Navigator gates every command through the navigation guard. A redirect to login runs the login
// prompt and then re-evaluates the original route; a redirect to the landing route runs the dashboard
// instead of the requested command.
type Navigator struct {
	guard   RouteChecker
	login   Action
	landing Action
	logger  *slog.Logger
	writer  io.Writer
}

// NewNavigator creates a Navigator. login and landing are the actions run on the corresponding
// redirects.
func NewNavigator(checker RouteChecker, login, landing Action, logger *slog.Logger, writer io.Writer) *Navigator {
	return &Navigator{
		guard:   checker,
		login:   login,
		landing: landing,
		logger:  logger,
		writer:  writer,
	}
}

// Navigate evaluates the named route and runs action if admitted.
func (n *Navigator) Navigate(ctx context.Context, routeName string, action Action) error {
	route, err := guard.Lookup(routeName)
	if err != nil {
		return err
	}

	for range maxNavigationHops {
		decision := n.guard.Check(ctx, route)
		n.logger.Debug("route evaluated",
			slog.String("route", route.Name),
			slog.String("action", decision.Action.String()),
			slog.String("target", decision.Target.Name),
		)

		switch decision.Action {
		case guard.Proceed:
			return n.run(ctx, action)
		case guard.RedirectToLanding:
			_, _ = fmt.Fprintln(n.writer, "Already signed in.")
			return n.run(ctx, n.landing)
		case guard.RedirectToLogin:
			_, _ = fmt.Fprintf(n.writer, "Sign in required for %s\n", route.Path)
			if err := n.login(ctx); err != nil {
				return err
			}
		}
	}

	return fmt.Errorf("%w: route %q", ErrNavigationLoop, route.Name)
}

func (n *Navigator) run(ctx context.Context, action Action) error {
	err := action(ctx)
	if errors.Is(err, gateway.ErrStaleSession) {
		_, _ = fmt.Fprintln(n.writer, "Session rejected by the server. Run 'logout' and then 'login' to sign in again.")
	}
	return err
}
