package store

import (
	"context"
	"encoding/base64"
	"fmt"

	"gocloud.dev/secrets"

	sessionDomain "github.com/allisson/rotator-admin/internal/session/domain"

	// Register the keeper drivers accepted by SESSION_KEY_URI
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// Keeper encrypts and decrypts small payloads. *secrets.Keeper implements it.
type Keeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
}

// OpenKeeper opens a secrets.Keeper for the given URI.
// Supports: base64key:// (local key) and hashivault://.
func OpenKeeper(ctx context.Context, keyURI string) (*secrets.Keeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open session keeper: %w", err)
	}
	return keeper, nil
}

// SealedStore encrypts values before handing them to the next store and decrypts them on read.
// Keys are stored in clear so the document stays inspectable.
type SealedStore struct {
	next   sessionDomain.Store
	keeper Keeper
}

// NewSealedStore wraps next so that every value is sealed with keeper.
func NewSealedStore(next sessionDomain.Store, keeper Keeper) *SealedStore {
	return &SealedStore{next: next, keeper: keeper}
}

// Get returns the decrypted value stored under key.
func (s *SealedStore) Get(ctx context.Context, key string) (string, bool, error) {
	sealed, ok, err := s.next.Get(ctx, key)
	if err != nil || !ok {
		return "", ok, err
	}

	ciphertext, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", false, fmt.Errorf("failed to decode sealed value for %q: %w", key, err)
	}

	plaintext, err := s.keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return "", false, fmt.Errorf("failed to decrypt value for %q: %w", key, err)
	}
	return string(plaintext), true, nil
}

// Set encrypts value and stores it under key.
func (s *SealedStore) Set(ctx context.Context, key, value string) error {
	ciphertext, err := s.keeper.Encrypt(ctx, []byte(value))
	if err != nil {
		return fmt.Errorf("failed to encrypt value for %q: %w", key, err)
	}
	return s.next.Set(ctx, key, base64.StdEncoding.EncodeToString(ciphertext))
}

// Delete removes key.
func (s *SealedStore) Delete(ctx context.Context, key string) error {
	return s.next.Delete(ctx, key)
}

var _ sessionDomain.Store = (*SealedStore)(nil)
