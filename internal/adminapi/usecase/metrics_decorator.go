package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/allisson/rotator-admin/internal/metrics"
)

// apiWithMetrics decorates API with metrics instrumentation.
type apiWithMetrics struct {
	next    API
	metrics metrics.BusinessMetrics
}

// NewAPIWithMetrics wraps an API with metrics recording.
func NewAPIWithMetrics(next API, m metrics.BusinessMetrics) API {
	return &apiWithMetrics{
		next:    next,
		metrics: m,
	}
}

func (a *apiWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "admin", operation, status)
	a.metrics.RecordDuration(ctx, "admin", operation, time.Since(start), status)
}

func (a *apiWithMetrics) Login(ctx context.Context, payload any) (json.RawMessage, error) {
	start := time.Now()
	resp, err := a.next.Login(ctx, payload)
	a.record(ctx, "login", start, err)
	return resp, err
}

func (a *apiWithMetrics) ListConfigs(ctx context.Context) (json.RawMessage, error) {
	start := time.Now()
	resp, err := a.next.ListConfigs(ctx)
	a.record(ctx, "config_list", start, err)
	return resp, err
}

func (a *apiWithMetrics) GetConfig(ctx context.Context, id int64) (json.RawMessage, error) {
	start := time.Now()
	resp, err := a.next.GetConfig(ctx, id)
	a.record(ctx, "config_get", start, err)
	return resp, err
}

func (a *apiWithMetrics) CreateProxyConfig(ctx context.Context, payload any) (json.RawMessage, error) {
	start := time.Now()
	resp, err := a.next.CreateProxyConfig(ctx, payload)
	a.record(ctx, "config_create", start, err)
	return resp, err
}

func (a *apiWithMetrics) UpdateProxyConfig(ctx context.Context, id int64, payload any) (json.RawMessage, error) {
	start := time.Now()
	resp, err := a.next.UpdateProxyConfig(ctx, id, payload)
	a.record(ctx, "config_update", start, err)
	return resp, err
}

func (a *apiWithMetrics) UpdateConfigStatus(ctx context.Context, id int64, isActive bool) (json.RawMessage, error) {
	start := time.Now()
	resp, err := a.next.UpdateConfigStatus(ctx, id, isActive)
	a.record(ctx, "config_status", start, err)
	return resp, err
}

func (a *apiWithMetrics) DeleteConfig(ctx context.Context, id int64) (json.RawMessage, error) {
	start := time.Now()
	resp, err := a.next.DeleteConfig(ctx, id)
	a.record(ctx, "config_delete", start, err)
	return resp, err
}

func (a *apiWithMetrics) CreateLLMConfig(ctx context.Context, payload any) (json.RawMessage, error) {
	start := time.Now()
	resp, err := a.next.CreateLLMConfig(ctx, payload)
	a.record(ctx, "llm_config_create", start, err)
	return resp, err
}

func (a *apiWithMetrics) UpdateLLMConfig(ctx context.Context, id int64, payload any) (json.RawMessage, error) {
	start := time.Now()
	resp, err := a.next.UpdateLLMConfig(ctx, id, payload)
	a.record(ctx, "llm_config_update", start, err)
	return resp, err
}

func (a *apiWithMetrics) ListKeys(ctx context.Context, configID int64) (json.RawMessage, error) {
	start := time.Now()
	resp, err := a.next.ListKeys(ctx, configID)
	a.record(ctx, "key_list", start, err)
	return resp, err
}

func (a *apiWithMetrics) AddKey(ctx context.Context, configID int64, payload any) (json.RawMessage, error) {
	start := time.Now()
	resp, err := a.next.AddKey(ctx, configID, payload)
	a.record(ctx, "key_add", start, err)
	return resp, err
}

func (a *apiWithMetrics) UpdateKeyStatus(ctx context.Context, keyID int64, isActive bool) (json.RawMessage, error) {
	start := time.Now()
	resp, err := a.next.UpdateKeyStatus(ctx, keyID, isActive)
	a.record(ctx, "key_status", start, err)
	return resp, err
}

func (a *apiWithMetrics) DeleteKey(ctx context.Context, keyID int64) (json.RawMessage, error) {
	start := time.Now()
	resp, err := a.next.DeleteKey(ctx, keyID)
	a.record(ctx, "key_delete", start, err)
	return resp, err
}

func (a *apiWithMetrics) GetAppConfig(ctx context.Context) (json.RawMessage, error) {
	start := time.Now()
	resp, err := a.next.GetAppConfig(ctx)
	a.record(ctx, "app_config_get", start, err)
	return resp, err
}
