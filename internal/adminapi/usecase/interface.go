// Package usecase implements the admin API facade: a fixed catalog of named operations, each a thin
// wrapper over the request gateway with a fixed verb and path. Payloads pass through untouched.
package usecase

import (
	"context"
	"encoding/json"

	"github.com/allisson/rotator-admin/internal/gateway"
)

// Doer dispatches a request on a gateway surface. Implemented by *gateway.Gateway.
type Doer interface {
	Do(ctx context.Context, surface gateway.Surface, method, path string, body any) ([]byte, error)
}

// API is the admin operation catalog. Every method returns the raw response body unmodified.
type API interface {
	Login(ctx context.Context, payload any) (json.RawMessage, error)
	ListConfigs(ctx context.Context) (json.RawMessage, error)
	GetConfig(ctx context.Context, id int64) (json.RawMessage, error)
	CreateProxyConfig(ctx context.Context, payload any) (json.RawMessage, error)
	UpdateProxyConfig(ctx context.Context, id int64, payload any) (json.RawMessage, error)
	UpdateConfigStatus(ctx context.Context, id int64, isActive bool) (json.RawMessage, error)
	DeleteConfig(ctx context.Context, id int64) (json.RawMessage, error)
	CreateLLMConfig(ctx context.Context, payload any) (json.RawMessage, error)
	UpdateLLMConfig(ctx context.Context, id int64, payload any) (json.RawMessage, error)
	ListKeys(ctx context.Context, configID int64) (json.RawMessage, error)
	AddKey(ctx context.Context, configID int64, payload any) (json.RawMessage, error)
	UpdateKeyStatus(ctx context.Context, keyID int64, isActive bool) (json.RawMessage, error)
	DeleteKey(ctx context.Context, keyID int64) (json.RawMessage, error)
	GetAppConfig(ctx context.Context) (json.RawMessage, error)
}
