// Package guard decides whether a route transition proceeds or is redirected, based solely on the
// session state at the moment of evaluation.
package guard

import (
	"context"

	apperrors "github.com/allisson/rotator-admin/internal/errors"
	sessionDomain "github.com/allisson/rotator-admin/internal/session/domain"
)

// Route is a named, path-addressed destination.
type Route struct {
	Name         string
	Path         string
	RequiresAuth bool
}

// Route names.
const (
	RouteLogin     = "login"
	RouteDashboard = "dashboard"
	RouteConfigs   = "configs"
	RouteKeys      = "keys"
	RouteAppConfig = "app-config"
	RouteLocale    = "locale"
	RouteLogout    = "logout"
)

var routes = []Route{
	{Name: RouteLogin, Path: "/login"},
	{Name: RouteDashboard, Path: "/", RequiresAuth: true},
	{Name: RouteConfigs, Path: "/configs", RequiresAuth: true},
	{Name: RouteKeys, Path: "/configs/:id/keys", RequiresAuth: true},
	{Name: RouteAppConfig, Path: "/app-config", RequiresAuth: true},
	{Name: RouteLocale, Path: "/locale"},
	{Name: RouteLogout, Path: "/logout"},
}

// ErrUnknownRoute is returned by Lookup for names outside the route table.
var ErrUnknownRoute = apperrors.Wrap(apperrors.ErrNotFound, "unknown route")

// Routes returns the static route table.
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// Lookup finds a route by name.
func Lookup(name string) (Route, error) {
	for _, r := range routes {
		if r.Name == name {
			return r, nil
		}
	}
	return Route{}, apperrors.Wrapf(ErrUnknownRoute, "route %q", name)
}

// Login returns the login route.
func Login() Route {
	r, _ := Lookup(RouteLogin)
	return r
}

// Landing returns the default authenticated landing route.
func Landing() Route {
	r, _ := Lookup(RouteDashboard)
	return r
}

// Action is the outcome of an evaluation.
type Action int

const (
	Proceed Action = iota
	RedirectToLogin
	RedirectToLanding
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case RedirectToLogin:
		return "redirect-to-login"
	case RedirectToLanding:
		return "redirect-to-landing"
	default:
		return "proceed"
	}
}

// Decision is the result of evaluating a transition. Target is the route to show: the requested one
// on Proceed, otherwise the redirect destination.
type Decision struct {
	Action Action
	Target Route
}

// Evaluate applies the transition table to state and the requested route. It performs no I/O.
func Evaluate(state sessionDomain.State, route Route) Decision {
	isLogin := route.Name == RouteLogin

	switch {
	case state == sessionDomain.Authenticated && isLogin:
		return Decision{Action: RedirectToLanding, Target: Landing()}
	case state != sessionDomain.Authenticated && !isLogin && route.RequiresAuth:
		return Decision{Action: RedirectToLogin, Target: Login()}
	default:
		return Decision{Action: Proceed, Target: route}
	}
}

// StateSource yields the current session state.
type StateSource interface {
	State(ctx context.Context) sessionDomain.State
}

// Guard evaluates transitions against the live session.
type Guard struct {
	session StateSource
}

// New creates a Guard reading state from session.
func New(session StateSource) *Guard {
	return &Guard{session: session}
}

// Check derives the session state now and evaluates route. Nothing is cached between calls.
func (g *Guard) Check(ctx context.Context, route Route) Decision {
	return Evaluate(g.session.State(ctx), route)
}
