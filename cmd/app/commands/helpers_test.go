package commands

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/rotator-admin/internal/errors"
	sessionStore "github.com/allisson/rotator-admin/internal/session/store"
	sessionUseCase "github.com/allisson/rotator-admin/internal/session/usecase"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSession() (*sessionUseCase.Session, *sessionStore.MemoryStore) {
	store := sessionStore.NewMemoryStore()
	return sessionUseCase.NewSession(store, discardLogger()), store
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "valid", input: "42", want: 42},
		{name: "surrounding whitespace", input: " 7 ", want: 7},
		{name: "empty", input: "", wantErr: true},
		{name: "zero", input: "0", wantErr: true},
		{name: "negative", input: "-3", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestValidateFormat(t *testing.T) {
	require.NoError(t, validateFormat("text"))
	require.NoError(t, validateFormat("json"))

	err := validateFormat("yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestWriteRaw(t *testing.T) {
	t.Run("indents the body", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, writeRaw(&out, json.RawMessage(`{"a":1}`)))
		assert.Equal(t, "{\n  \"a\": 1\n}\n", out.String())
	})

	t.Run("empty body", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, writeRaw(&out, nil))
		assert.Equal(t, "null\n", out.String())
	})

	t.Run("invalid json", func(t *testing.T) {
		var out bytes.Buffer
		require.Error(t, writeRaw(&out, json.RawMessage(`{`)))
	})
}
