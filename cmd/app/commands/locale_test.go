package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/rotator-admin/internal/errors"
	sessionDomain "github.com/allisson/rotator-admin/internal/session/domain"
	sessionStore "github.com/allisson/rotator-admin/internal/session/store"
)

func TestRunLocale(t *testing.T) {
	ctx := context.Background()

	t.Run("default locale", func(t *testing.T) {
		store := sessionStore.NewMemoryStore()

		var out bytes.Buffer
		require.NoError(t, RunLocaleGet(ctx, store, "json", &out))

		var got localeOutput
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, "zh-CN", got.Locale)
		assert.Equal(t, []string{"zh-CN", "en"}, got.Supported)
	})

	t.Run("set then get", func(t *testing.T) {
		store := sessionStore.NewMemoryStore()

		var out bytes.Buffer
		require.NoError(t, RunLocaleSet(ctx, store, discardLogger(), "en-US", &out))
		assert.Equal(t, "Locale set to en\n", out.String())

		out.Reset()
		require.NoError(t, RunLocaleGet(ctx, store, "text", &out))
		assert.Contains(t, out.String(), "Locale: en\n")
	})

	t.Run("unsupported locale keeps the stored one", func(t *testing.T) {
		store := sessionStore.NewMemoryStore()
		require.NoError(t, store.Set(ctx, sessionDomain.LocaleKey, "en"))

		err := RunLocaleSet(ctx, store, discardLogger(), "fr", &bytes.Buffer{})

		require.ErrorIs(t, err, apperrors.ErrInvalidInput)
		value, _, _ := store.Get(ctx, sessionDomain.LocaleKey)
		assert.Equal(t, "en", value)
	})
}
