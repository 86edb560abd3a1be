package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "****", MaskKey(""))
	assert.Equal(t, "****", MaskKey("abcd"))
	assert.Equal(t, "****bcde", MaskKey("sk-abcde"))
}

func TestProxyConfigInput_OmitsUnsetOptionalFields(t *testing.T) {
	input := ProxyConfigInput{Name: "OpenAI", Slug: "openai", ConfigType: ConfigTypeLLM, IsActive: true}

	data, err := json.Marshal(input)
	require.NoError(t, err)

	assert.JSONEq(t, `{"name":"OpenAI","slug":"openai","config_type":"llm","is_active":true}`, string(data))
}

func TestProxyConfig_DecodeBackendResponse(t *testing.T) {
	body := `{
		"id": 3,
		"name": "Weather",
		"slug": "weather",
		"config_type": "generic",
		"api_key_location": "query",
		"api_key_name": "appid",
		"is_active": false,
		"method": "GET",
		"target_url": "https://api.example.com/weather",
		"api_keys": [{"id": 9, "key_value": "k1", "is_active": true, "proxy_config_id": 3}]
	}`

	var cfg ProxyConfig
	require.NoError(t, json.Unmarshal([]byte(body), &cfg))

	assert.Equal(t, int32(3), cfg.ID)
	assert.Equal(t, ConfigTypeGeneric, cfg.ConfigType)
	require.NotNil(t, cfg.APIKeyLocation)
	assert.Equal(t, KeyLocationQuery, *cfg.APIKeyLocation)
	assert.Nil(t, cfg.TargetBaseURL)
	require.Len(t, cfg.APIKeys, 1)
	assert.Equal(t, int32(3), cfg.APIKeys[0].ProxyConfigID)
}
