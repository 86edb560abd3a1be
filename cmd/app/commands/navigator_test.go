package commands

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/rotator-admin/internal/gateway"
	"github.com/allisson/rotator-admin/internal/guard"
	sessionDomain "github.com/allisson/rotator-admin/internal/session/domain"
)

type navigationRecorder struct {
	logins   int
	landings int
	actions  int
}

func (r *navigationRecorder) action(ctx context.Context) error {
	r.actions++
	return nil
}

func (r *navigationRecorder) landing(ctx context.Context) error {
	r.landings++
	return nil
}

func TestNavigator_Navigate(t *testing.T) {
	ctx := context.Background()

	t.Run("anonymous user is sent to login then resumes the command", func(t *testing.T) {
		session, _ := newTestSession()
		rec := &navigationRecorder{}
		login := func(ctx context.Context) error {
			rec.logins++
			return session.Login(ctx, "token-1")
		}
		var out bytes.Buffer
		nav := NewNavigator(guard.New(session), login, rec.landing, discardLogger(), &out)

		err := nav.Navigate(ctx, guard.RouteConfigs, rec.action)

		require.NoError(t, err)
		assert.Equal(t, 1, rec.logins)
		assert.Equal(t, 1, rec.actions)
		assert.Equal(t, 0, rec.landings)
		assert.Contains(t, out.String(), "Sign in required for /configs")
		assert.Equal(t, sessionDomain.Authenticated, session.State(ctx))
	})

	t.Run("anonymous user reaches login", func(t *testing.T) {
		session, _ := newTestSession()
		rec := &navigationRecorder{}
		login := func(ctx context.Context) error {
			rec.logins++
			return nil
		}
		nav := NewNavigator(guard.New(session), login, rec.landing, discardLogger(), &bytes.Buffer{})

		require.NoError(t, nav.Navigate(ctx, guard.RouteLogin, rec.action))
		assert.Equal(t, 0, rec.logins)
		assert.Equal(t, 1, rec.actions)
	})

	t.Run("anonymous user reaches public locale route", func(t *testing.T) {
		session, _ := newTestSession()
		rec := &navigationRecorder{}
		nav := NewNavigator(guard.New(session), nil, rec.landing, discardLogger(), &bytes.Buffer{})

		require.NoError(t, nav.Navigate(ctx, guard.RouteLocale, rec.action))
		assert.Equal(t, 1, rec.actions)
	})

	t.Run("logout while signed out succeeds without a login prompt", func(t *testing.T) {
		session, _ := newTestSession()
		login := func(ctx context.Context) error {
			return errors.New("login must not be requested")
		}
		var status, out bytes.Buffer
		nav := NewNavigator(guard.New(session), login, nil, discardLogger(), &status)

		err := nav.Navigate(ctx, guard.RouteLogout, func(ctx context.Context) error {
			return RunLogout(ctx, session, discardLogger(), &out)
		})

		require.NoError(t, err)
		assert.Empty(t, status.String())
		assert.Equal(t, "Signed out\n", out.String())
		assert.Equal(t, sessionDomain.Anonymous, session.State(ctx))
	})

	t.Run("authenticated user opening login lands on the dashboard", func(t *testing.T) {
		session, _ := newTestSession()
		require.NoError(t, session.Login(ctx, "token-1"))
		rec := &navigationRecorder{}
		var out bytes.Buffer
		nav := NewNavigator(guard.New(session), nil, rec.landing, discardLogger(), &out)

		require.NoError(t, nav.Navigate(ctx, guard.RouteLogin, rec.action))
		assert.Equal(t, 0, rec.actions)
		assert.Equal(t, 1, rec.landings)
		assert.Contains(t, out.String(), "Already signed in")
	})

	t.Run("authenticated user proceeds to protected route", func(t *testing.T) {
		session, _ := newTestSession()
		require.NoError(t, session.Login(ctx, "token-1"))
		rec := &navigationRecorder{}
		nav := NewNavigator(guard.New(session), nil, rec.landing, discardLogger(), &bytes.Buffer{})

		require.NoError(t, nav.Navigate(ctx, guard.RouteKeys, rec.action))
		assert.Equal(t, 1, rec.actions)
	})

	t.Run("failed login stops navigation", func(t *testing.T) {
		session, _ := newTestSession()
		rec := &navigationRecorder{}
		loginErr := errors.New("bad credentials")
		login := func(ctx context.Context) error { return loginErr }
		nav := NewNavigator(guard.New(session), login, rec.landing, discardLogger(), &bytes.Buffer{})

		err := nav.Navigate(ctx, guard.RouteDashboard, rec.action)

		require.ErrorIs(t, err, loginErr)
		assert.Equal(t, 0, rec.actions)
		assert.Equal(t, sessionDomain.Anonymous, session.State(ctx))
	})

	t.Run("login that stores nothing does not loop forever", func(t *testing.T) {
		session, _ := newTestSession()
		rec := &navigationRecorder{}
		login := func(ctx context.Context) error {
			rec.logins++
			return nil
		}
		nav := NewNavigator(guard.New(session), login, rec.landing, discardLogger(), &bytes.Buffer{})

		err := nav.Navigate(ctx, guard.RouteAppConfig, rec.action)

		require.ErrorIs(t, err, ErrNavigationLoop)
		assert.Equal(t, maxNavigationHops, rec.logins)
		assert.Equal(t, 0, rec.actions)
	})

	t.Run("unknown route", func(t *testing.T) {
		session, _ := newTestSession()
		rec := &navigationRecorder{}
		nav := NewNavigator(guard.New(session), nil, rec.landing, discardLogger(), &bytes.Buffer{})

		err := nav.Navigate(ctx, "settings", rec.action)

		require.ErrorIs(t, err, guard.ErrUnknownRoute)
		assert.Equal(t, 0, rec.actions)
	})

	t.Run("rejected credential prints a hint and keeps the session", func(t *testing.T) {
		session, _ := newTestSession()
		require.NoError(t, session.Login(ctx, "expired"))
		var out bytes.Buffer
		nav := NewNavigator(guard.New(session), nil, nil, discardLogger(), &out)
		failure := &gateway.RequestFailure{Method: "GET", Path: "/admin/proxy-configs", Status: 401}

		err := nav.Navigate(ctx, guard.RouteConfigs, func(ctx context.Context) error { return failure })

		require.ErrorIs(t, err, gateway.ErrStaleSession)
		assert.Contains(t, out.String(), "Session rejected by the server")
		assert.Equal(t, sessionDomain.Authenticated, session.State(ctx))
	})
}
