// Package domain defines the payloads exchanged with the backend's admin surface. The facade passes
// payloads through as raw JSON; these types are used by callers to build requests and render
// responses.
package domain

import "time"

// Config types.
const (
	ConfigTypeGeneric = "generic"
	ConfigTypeLLM     = "llm"
)

// API key locations for generic configs.
const (
	KeyLocationHeader = "header"
	KeyLocationQuery  = "query"
)

// ProxyConfig is a reverse-proxy configuration as returned by the backend.
type ProxyConfig struct {
	ID             int32     `json:"id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	ConfigType     string    `json:"config_type"`
	APIKeyLocation *string   `json:"api_key_location,omitempty"`
	APIKeyName     *string   `json:"api_key_name,omitempty"`
	IsActive       bool      `json:"is_active"`
	Method         *string   `json:"method,omitempty"`
	TargetURL      *string   `json:"target_url,omitempty"`
	TargetBaseURL  *string   `json:"target_base_url,omitempty"`
	APIFormat      *string   `json:"api_format,omitempty"`
	OutputFormat   *string   `json:"output_format,omitempty"`
	APIKeys        []APIKey  `json:"api_keys"`
	CreatedAt      time.Time `json:"created_at,omitzero"`
	UpdatedAt      time.Time `json:"updated_at,omitzero"`
}

// ProxyConfigInput is the create/update payload for both generic and LLM configs.
type ProxyConfigInput struct {
	Name           string  `json:"name"`
	Slug           string  `json:"slug"`
	ConfigType     string  `json:"config_type"`
	APIKeyLocation *string `json:"api_key_location,omitempty"`
	APIKeyName     *string `json:"api_key_name,omitempty"`
	IsActive       bool    `json:"is_active"`
	Method         *string `json:"method,omitempty"`
	TargetURL      *string `json:"target_url,omitempty"`
	TargetBaseURL  *string `json:"target_base_url,omitempty"`
	APIFormat      *string `json:"api_format,omitempty"`
	OutputFormat   *string `json:"output_format,omitempty"`
}

// APIKey is a credential key attached to a config.
type APIKey struct {
	ID            int32  `json:"id"`
	KeyValue      string `json:"key_value"`
	IsActive      bool   `json:"is_active"`
	ProxyConfigID int32  `json:"proxy_config_id"`
}

// APIKeyInput is the payload for adding a key.
type APIKeyInput struct {
	KeyValue string `json:"key_value"`
	IsActive bool   `json:"is_active"`
}

// StatusUpdate toggles is_active on a config or key.
type StatusUpdate struct {
	IsActive bool `json:"is_active"`
}

// AppConfig is the backend's public application settings.
type AppConfig struct {
	ProxyPublicBaseURL string `json:"proxy_public_base_url"`
}

// LoginRequest carries the admin credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// MaskKey hides all but the last four characters of a key value.
func MaskKey(value string) string {
	const visible = 4
	if len(value) <= visible {
		return "****"
	}
	return "****" + value[len(value)-visible:]
}
