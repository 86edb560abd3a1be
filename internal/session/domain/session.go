// Package domain defines the session model: an opaque credential and the two-valued
// authentication state derived from its presence.
package domain

import (
	"context"

	apperrors "github.com/allisson/rotator-admin/internal/errors"
)

// Well-known keys in the persistent key-value storage.
const (
	// CredentialKey holds the session credential string.
	CredentialKey = "authToken"
	// LocaleKey holds the selected UI locale.
	LocaleKey = "locale"
)

// Credential is an opaque token proving a prior successful login.
type Credential string

// String masks the credential so it never leaks into logs.
func (c Credential) String() string {
	if c == "" {
		return ""
	}
	return "****"
}

// Value returns the raw token for transport.
func (c Credential) Value() string {
	return string(c)
}

// State is the authentication status projected from credential presence.
type State int

const (
	// Anonymous means no credential is stored.
	Anonymous State = iota
	// Authenticated means a non-empty credential is stored.
	Authenticated
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// StateOf derives the session state from a credential value.
func StateOf(c Credential) State {
	if c == "" {
		return Anonymous
	}
	return Authenticated
}

// Store is persistent key-value storage that survives process restarts until explicitly cleared.
// Writes replace the previous value and are visible to the next read.
type Store interface {
	// Get returns the value stored under key. The boolean is false when the key is absent.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set replaces the value stored under key.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// ErrEmptyCredential is returned when a login attempts to store an empty token.
var ErrEmptyCredential = apperrors.Wrap(apperrors.ErrInvalidInput, "credential cannot be empty")
