// Package usecase implements the session context object: the single owner of the stored
// credential, passed by reference to the request gateway and the navigation guard.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	sessionDomain "github.com/allisson/rotator-admin/internal/session/domain"
)

// Session reads the credential from persistent storage on every call and exposes Login and
// Logout as the only mutators. Nothing is cached, so a write is observed by the next read.
type Session struct {
	store  sessionDomain.Store
	logger *slog.Logger
}

// NewSession creates a Session backed by store.
func NewSession(store sessionDomain.Store, logger *slog.Logger) *Session {
	return &Session{store: store, logger: logger}
}

// Credential returns the stored credential. A storage failure is logged and reported as absent,
// so callers fail closed to Anonymous.
func (s *Session) Credential(ctx context.Context) (sessionDomain.Credential, bool) {
	value, ok, err := s.store.Get(ctx, sessionDomain.CredentialKey)
	if err != nil {
		s.logger.Warn("failed to read credential, treating session as anonymous", slog.Any("error", err))
		return "", false
	}
	if !ok || value == "" {
		return "", false
	}
	return sessionDomain.Credential(value), true
}

// State derives Anonymous or Authenticated from the stored credential.
func (s *Session) State(ctx context.Context) sessionDomain.State {
	credential, _ := s.Credential(ctx)
	return sessionDomain.StateOf(credential)
}

// Login stores token as the session credential, replacing any previous one.
func (s *Session) Login(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return sessionDomain.ErrEmptyCredential
	}

	if err := s.store.Set(ctx, sessionDomain.CredentialKey, token); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}

	s.logger.Debug("session credential stored")
	return nil
}

// Logout removes the session credential. Logging out an anonymous session is a no-op.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, sessionDomain.CredentialKey); err != nil {
		return fmt.Errorf("failed to clear credential: %w", err)
	}

	s.logger.Debug("session credential cleared")
	return nil
}
