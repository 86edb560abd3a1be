package guard

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/rotator-admin/internal/errors"
	sessionDomain "github.com/allisson/rotator-admin/internal/session/domain"
	"github.com/allisson/rotator-admin/internal/session/store"
	sessionUseCase "github.com/allisson/rotator-admin/internal/session/usecase"
)

func TestEvaluate(t *testing.T) {
	configs, err := Lookup(RouteConfigs)
	require.NoError(t, err)
	localeRoute, err := Lookup(RouteLocale)
	require.NoError(t, err)
	logout, err := Lookup(RouteLogout)
	require.NoError(t, err)

	tests := []struct {
		name       string
		state      sessionDomain.State
		route      Route
		wantAction Action
		wantTarget string
	}{
		{"anonymous to protected", sessionDomain.Anonymous, configs, RedirectToLogin, RouteLogin},
		{"anonymous to public", sessionDomain.Anonymous, localeRoute, Proceed, RouteLocale},
		{"anonymous to login", sessionDomain.Anonymous, Login(), Proceed, RouteLogin},
		{"authenticated to protected", sessionDomain.Authenticated, configs, Proceed, RouteConfigs},
		{"authenticated to public", sessionDomain.Authenticated, localeRoute, Proceed, RouteLocale},
		{"authenticated to login", sessionDomain.Authenticated, Login(), RedirectToLanding, RouteDashboard},
		{"anonymous to logout", sessionDomain.Anonymous, logout, Proceed, RouteLogout},
		{"authenticated to logout", sessionDomain.Authenticated, logout, Proceed, RouteLogout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Evaluate(tt.state, tt.route)
			assert.Equal(t, tt.wantAction, d.Action)
			assert.Equal(t, tt.wantTarget, d.Target.Name)
		})
	}
}

func TestEvaluate_AllProtectedRoutes(t *testing.T) {
	for _, r := range Routes() {
		if !r.RequiresAuth {
			continue
		}
		t.Run(r.Name, func(t *testing.T) {
			assert.Equal(t, RedirectToLogin, Evaluate(sessionDomain.Anonymous, r).Action)
			assert.Equal(t, Proceed, Evaluate(sessionDomain.Authenticated, r).Action)
		})
	}
}

func TestRoutes(t *testing.T) {
	t.Run("login is public and landing is protected", func(t *testing.T) {
		assert.False(t, Login().RequiresAuth)
		assert.True(t, Landing().RequiresAuth)
		assert.Equal(t, "/", Landing().Path)
	})

	t.Run("returns a copy", func(t *testing.T) {
		rs := Routes()
		rs[0].Name = "changed"
		assert.Equal(t, RouteLogin, Routes()[0].Name)
	})

	t.Run("unknown route", func(t *testing.T) {
		_, err := Lookup("settings")
		assert.ErrorIs(t, err, ErrUnknownRoute)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "proceed", Proceed.String())
	assert.Equal(t, "redirect-to-login", RedirectToLogin.String())
	assert.Equal(t, "redirect-to-landing", RedirectToLanding.String())
}

func TestGuard_Check(t *testing.T) {
	ctx := context.Background()
	s := sessionUseCase.NewSession(store.NewMemoryStore(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	g := New(s)
	configs, err := Lookup(RouteConfigs)
	require.NoError(t, err)

	assert.Equal(t, RedirectToLogin, g.Check(ctx, configs).Action)

	require.NoError(t, s.Login(ctx, "T1"))
	assert.Equal(t, Proceed, g.Check(ctx, configs).Action)
	assert.Equal(t, RedirectToLanding, g.Check(ctx, Login()).Action)

	require.NoError(t, s.Logout(ctx))
	assert.Equal(t, RedirectToLogin, g.Check(ctx, configs).Action)
	assert.Equal(t, Proceed, g.Check(ctx, Login()).Action)
}

func TestGuard_InitialStateFromStorage(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	require.NoError(t, st.Set(ctx, sessionDomain.CredentialKey, "persisted"))

	s := sessionUseCase.NewSession(st, slog.New(slog.NewTextHandler(io.Discard, nil)))
	g := New(s)

	assert.Equal(t, Proceed, g.Check(ctx, Landing()).Action)
}
