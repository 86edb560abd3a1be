package store

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/secrets/localsecrets"

	sessionDomain "github.com/allisson/rotator-admin/internal/session/domain"
)

// storeContract exercises the behavior every Store implementation must share.
func storeContract(t *testing.T, newStore func(t *testing.T) sessionDomain.Store) {
	ctx := context.Background()

	t.Run("missing key is absent", func(t *testing.T) {
		s := newStore(t)
		value, ok, err := s.Get(ctx, sessionDomain.CredentialKey)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, value)
	})

	t.Run("set is visible to the next get", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, sessionDomain.CredentialKey, "token-1"))

		value, ok, err := s.Get(ctx, sessionDomain.CredentialKey)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "token-1", value)
	})

	t.Run("set replaces previous value", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, sessionDomain.CredentialKey, "token-1"))
		require.NoError(t, s.Set(ctx, sessionDomain.CredentialKey, "token-2"))

		value, _, err := s.Get(ctx, sessionDomain.CredentialKey)
		require.NoError(t, err)
		assert.Equal(t, "token-2", value)
	})

	t.Run("delete clears only the given key", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, sessionDomain.CredentialKey, "token-1"))
		require.NoError(t, s.Set(ctx, sessionDomain.LocaleKey, "en"))

		require.NoError(t, s.Delete(ctx, sessionDomain.CredentialKey))

		_, ok, err := s.Get(ctx, sessionDomain.CredentialKey)
		require.NoError(t, err)
		assert.False(t, ok)

		locale, ok, err := s.Get(ctx, sessionDomain.LocaleKey)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "en", locale)
	})

	t.Run("delete of absent key is not an error", func(t *testing.T) {
		s := newStore(t)
		assert.NoError(t, s.Delete(ctx, sessionDomain.CredentialKey))
	})
}

func newTestKeeper(t *testing.T) Keeper {
	t.Helper()
	key, err := localsecrets.NewRandomKey()
	require.NoError(t, err)
	keeper := localsecrets.NewKeeper(key)
	t.Cleanup(func() { _ = keeper.Close() })
	return keeper
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, func(t *testing.T) sessionDomain.Store {
		return NewMemoryStore()
	})
}

func TestFileStore(t *testing.T) {
	storeContract(t, func(t *testing.T) sessionDomain.Store {
		return NewFileStore(filepath.Join(t.TempDir(), "nested", "session.json"))
	})
}

func TestSealedStore(t *testing.T) {
	storeContract(t, func(t *testing.T) sessionDomain.Store {
		return NewSealedStore(NewMemoryStore(), newTestKeeper(t))
	})
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	first := NewFileStore(path)
	require.NoError(t, first.Set(ctx, sessionDomain.CredentialKey, "persisted"))

	second := NewFileStore(path)
	value, ok, err := second.Get(ctx, sessionDomain.CredentialKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "persisted", value)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_CorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := NewFileStore(path)
	_, _, err := s.Get(ctx, sessionDomain.CredentialKey)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal session file")
}

func TestSealedStore_ValuesAreEncryptedAtRest(t *testing.T) {
	ctx := context.Background()
	backing := NewMemoryStore()
	s := NewSealedStore(backing, newTestKeeper(t))

	require.NoError(t, s.Set(ctx, sessionDomain.CredentialKey, "plain-token"))

	raw, ok, err := backing.Get(ctx, sessionDomain.CredentialKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotContains(t, raw, "plain-token")
}

func TestSealedStore_WrongKeyFailsToDecrypt(t *testing.T) {
	ctx := context.Background()
	backing := NewMemoryStore()

	require.NoError(t, NewSealedStore(backing, newTestKeeper(t)).Set(ctx, sessionDomain.CredentialKey, "token"))

	_, _, err := NewSealedStore(backing, newTestKeeper(t)).Get(ctx, sessionDomain.CredentialKey)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decrypt value")
}

func TestOpenKeeper(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_LocalSecrets", func(t *testing.T) {
		key := make([]byte, 32)
		_, err := rand.Read(key)
		require.NoError(t, err)

		keeper, err := OpenKeeper(ctx, "base64key://"+base64.URLEncoding.EncodeToString(key))
		require.NoError(t, err)
		defer func() { assert.NoError(t, keeper.Close()) }()

		ciphertext, err := keeper.Encrypt(ctx, []byte("value"))
		require.NoError(t, err)
		plaintext, err := keeper.Decrypt(ctx, ciphertext)
		require.NoError(t, err)
		assert.Equal(t, "value", string(plaintext))
	})

	t.Run("Error_InvalidURI", func(t *testing.T) {
		keeper, err := OpenKeeper(ctx, "invalid://uri")
		assert.Error(t, err)
		assert.Nil(t, keeper)
		assert.Contains(t, err.Error(), "failed to open session keeper")
	})
}
