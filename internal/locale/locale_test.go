package locale

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/rotator-admin/internal/errors"
	sessionDomain "github.com/allisson/rotator-admin/internal/session/domain"
	sessionStore "github.com/allisson/rotator-admin/internal/session/store"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{"simplified chinese", "zh-CN", "zh-CN"},
		{"english", "en", "en"},
		{"regional english", "en-US", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, err := Parse(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tag.String())
		})
	}

	t.Run("malformed tag", func(t *testing.T) {
		_, err := Parse("not a locale!")
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})
}

func TestMessagesFor(t *testing.T) {
	assert.Equal(t, "请求失败", MessagesFor(SimplifiedChinese).RequestFailed)
	assert.Equal(t, "网络错误或服务器无响应", MessagesFor(SimplifiedChinese).NetworkFailure)
	assert.Equal(t, "Request failed", MessagesFor(English).RequestFailed)
	assert.Equal(t, "Network error or server not responding", MessagesFor(English).NetworkFailure)
}

func TestLoadSave(t *testing.T) {
	ctx := context.Background()
	store := sessionStore.NewMemoryStore()

	assert.Equal(t, Default, Load(ctx, store))

	tag, err := Save(ctx, store, "en-GB")
	require.NoError(t, err)
	assert.Equal(t, English, tag)
	assert.Equal(t, English, Load(ctx, store))

	stored, ok, err := store.Get(ctx, sessionDomain.LocaleKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "en", stored)
}

func TestLoad_InvalidStoredValueFallsBack(t *testing.T) {
	ctx := context.Background()
	store := sessionStore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, sessionDomain.LocaleKey, "!!"))

	assert.Equal(t, Default, Load(ctx, store))
}

func TestSource_FollowsStoredLocale(t *testing.T) {
	ctx := context.Background()
	store := sessionStore.NewMemoryStore()
	source := NewSource(store)

	assert.Equal(t, "请求失败", source.Messages(ctx).RequestFailed)

	_, err := Save(ctx, store, "en")
	require.NoError(t, err)
	assert.Equal(t, "Request failed", source.Messages(ctx).RequestFailed)
}
