// Package mocks provides mock implementations of the admin API for testing.
package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"
)

// MockAPI is a mock implementation of usecase.API.
type MockAPI struct {
	mock.Mock
}

func rawResult(args mock.Arguments) (json.RawMessage, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

// Login mocks the Login method of API.
func (m *MockAPI) Login(ctx context.Context, payload any) (json.RawMessage, error) {
	return rawResult(m.Called(ctx, payload))
}

// ListConfigs mocks the ListConfigs method of API.
func (m *MockAPI) ListConfigs(ctx context.Context) (json.RawMessage, error) {
	return rawResult(m.Called(ctx))
}

// GetConfig mocks the GetConfig method of API.
func (m *MockAPI) GetConfig(ctx context.Context, id int64) (json.RawMessage, error) {
	return rawResult(m.Called(ctx, id))
}

// CreateProxyConfig mocks the CreateProxyConfig method of API.
func (m *MockAPI) CreateProxyConfig(ctx context.Context, payload any) (json.RawMessage, error) {
	return rawResult(m.Called(ctx, payload))
}

// UpdateProxyConfig mocks the UpdateProxyConfig method of API.
func (m *MockAPI) UpdateProxyConfig(ctx context.Context, id int64, payload any) (json.RawMessage, error) {
	return rawResult(m.Called(ctx, id, payload))
}

// UpdateConfigStatus mocks the UpdateConfigStatus method of API.
func (m *MockAPI) UpdateConfigStatus(ctx context.Context, id int64, isActive bool) (json.RawMessage, error) {
	return rawResult(m.Called(ctx, id, isActive))
}

// DeleteConfig mocks the DeleteConfig method of API.
func (m *MockAPI) DeleteConfig(ctx context.Context, id int64) (json.RawMessage, error) {
	return rawResult(m.Called(ctx, id))
}

// CreateLLMConfig mocks the CreateLLMConfig method of API.
func (m *MockAPI) CreateLLMConfig(ctx context.Context, payload any) (json.RawMessage, error) {
	return rawResult(m.Called(ctx, payload))
}

// UpdateLLMConfig mocks the UpdateLLMConfig method of API.
func (m *MockAPI) UpdateLLMConfig(ctx context.Context, id int64, payload any) (json.RawMessage, error) {
	return rawResult(m.Called(ctx, id, payload))
}

// ListKeys mocks the ListKeys method of API.
func (m *MockAPI) ListKeys(ctx context.Context, configID int64) (json.RawMessage, error) {
	return rawResult(m.Called(ctx, configID))
}

// AddKey mocks the AddKey method of API.
func (m *MockAPI) AddKey(ctx context.Context, configID int64, payload any) (json.RawMessage, error) {
	return rawResult(m.Called(ctx, configID, payload))
}

// UpdateKeyStatus mocks the UpdateKeyStatus method of API.
func (m *MockAPI) UpdateKeyStatus(ctx context.Context, keyID int64, isActive bool) (json.RawMessage, error) {
	return rawResult(m.Called(ctx, keyID, isActive))
}

// DeleteKey mocks the DeleteKey method of API.
func (m *MockAPI) DeleteKey(ctx context.Context, keyID int64) (json.RawMessage, error) {
	return rawResult(m.Called(ctx, keyID))
}

// GetAppConfig mocks the GetAppConfig method of API.
func (m *MockAPI) GetAppConfig(ctx context.Context) (json.RawMessage, error) {
	return rawResult(m.Called(ctx))
}
