package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	adminDomain "github.com/allisson/rotator-admin/internal/adminapi/domain"
	"github.com/allisson/rotator-admin/internal/gateway"
)

type api struct {
	doer Doer
}

// NewAPI creates the facade over doer.
func NewAPI(doer Doer) API {
	return &api{doer: doer}
}

func (a *api) call(
	ctx context.Context,
	surface gateway.Surface,
	method, path string,
	body any,
) (json.RawMessage, error) {
	resp, err := a.doer.Do(ctx, surface, method, path, body)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(resp), nil
}

// Login posts the credentials to the unauthenticated login surface.
func (a *api) Login(ctx context.Context, payload any) (json.RawMessage, error) {
	return a.call(ctx, gateway.SurfaceLogin, http.MethodPost, "/login", payload)
}

func (a *api) ListConfigs(ctx context.Context) (json.RawMessage, error) {
	return a.call(ctx, gateway.SurfaceAdmin, http.MethodGet, "/proxy-configs", nil)
}

func (a *api) GetConfig(ctx context.Context, id int64) (json.RawMessage, error) {
	return a.call(ctx, gateway.SurfaceAdmin, http.MethodGet, configPath(id), nil)
}

func (a *api) CreateProxyConfig(ctx context.Context, payload any) (json.RawMessage, error) {
	return a.call(ctx, gateway.SurfaceAdmin, http.MethodPost, "/proxy-configs", payload)
}

func (a *api) UpdateProxyConfig(ctx context.Context, id int64, payload any) (json.RawMessage, error) {
	return a.call(ctx, gateway.SurfaceAdmin, http.MethodPut, configPath(id), payload)
}

// UpdateConfigStatus uses PUT on the status sub-resource.
func (a *api) UpdateConfigStatus(ctx context.Context, id int64, isActive bool) (json.RawMessage, error) {
	return a.call(
		ctx,
		gateway.SurfaceAdmin,
		http.MethodPut,
		configPath(id)+"/status",
		adminDomain.StatusUpdate{IsActive: isActive},
	)
}

func (a *api) DeleteConfig(ctx context.Context, id int64) (json.RawMessage, error) {
	return a.call(ctx, gateway.SurfaceAdmin, http.MethodDelete, configPath(id), nil)
}

func (a *api) CreateLLMConfig(ctx context.Context, payload any) (json.RawMessage, error) {
	return a.call(ctx, gateway.SurfaceAdmin, http.MethodPost, "/llm-configs", payload)
}

func (a *api) UpdateLLMConfig(ctx context.Context, id int64, payload any) (json.RawMessage, error) {
	return a.call(ctx, gateway.SurfaceAdmin, http.MethodPut, fmt.Sprintf("/llm-configs/%d", id), payload)
}

func (a *api) ListKeys(ctx context.Context, configID int64) (json.RawMessage, error) {
	return a.call(ctx, gateway.SurfaceAdmin, http.MethodGet, configPath(configID)+"/keys", nil)
}

func (a *api) AddKey(ctx context.Context, configID int64, payload any) (json.RawMessage, error) {
	return a.call(ctx, gateway.SurfaceAdmin, http.MethodPost, configPath(configID)+"/keys", payload)
}

// UpdateKeyStatus uses PATCH on the key itself.
func (a *api) UpdateKeyStatus(ctx context.Context, keyID int64, isActive bool) (json.RawMessage, error) {
	return a.call(
		ctx,
		gateway.SurfaceAdmin,
		http.MethodPatch,
		keyPath(keyID),
		adminDomain.StatusUpdate{IsActive: isActive},
	)
}

func (a *api) DeleteKey(ctx context.Context, keyID int64) (json.RawMessage, error) {
	return a.call(ctx, gateway.SurfaceAdmin, http.MethodDelete, keyPath(keyID), nil)
}

func (a *api) GetAppConfig(ctx context.Context) (json.RawMessage, error) {
	return a.call(ctx, gateway.SurfaceAdmin, http.MethodGet, "/app-config", nil)
}

func configPath(id int64) string {
	return fmt.Sprintf("/proxy-configs/%d", id)
}

func keyPath(id int64) string {
	return fmt.Sprintf("/keys/%d", id)
}
